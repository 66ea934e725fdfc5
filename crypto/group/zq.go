// Copyright © 2026 OpenVote
//
// This file is part of OpenVote. The full OpenVote copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package group

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/openvote/mixnet/common"
)

// ZqGroup is the ring of integers modulo q, the exponent ring of a G_q
// group of the same order.
type ZqGroup struct {
	q *big.Int
}

func NewZqGroup(q *big.Int) (*ZqGroup, error) {
	if q == nil || q.Cmp(two) < 0 {
		return nil, errors.New("NewZqGroup: q must be an integer of at least 2")
	}
	return &ZqGroup{q: new(big.Int).Set(q)}, nil
}

// ZqGroupSameOrderAs returns the exponent ring of a G_q group.
func ZqGroupSameOrderAs(group *GqGroup) *ZqGroup {
	return &ZqGroup{q: group.q}
}

func (z *ZqGroup) Q() *big.Int {
	return z.q
}

func (z *ZqGroup) Equals(other *ZqGroup) bool {
	if z == other {
		return true
	}
	return other != nil && z.q.Cmp(other.q) == 0
}

// Zero returns the additive identity.
func (z *ZqGroup) Zero() *ZqElement {
	return &ZqElement{group: z, value: big.NewInt(0)}
}

// One returns the multiplicative identity.
func (z *ZqGroup) One() *ZqElement {
	return &ZqElement{group: z, value: big.NewInt(1)}
}

// Reduce returns v mod q as an element.
func (z *ZqGroup) Reduce(v *big.Int) *ZqElement {
	return &ZqElement{group: z, value: new(big.Int).Mod(v, z.q)}
}

// RandomElement draws a uniform element of Z_q from the source.
func (z *ZqGroup) RandomElement(source common.RandomSource) (*ZqElement, error) {
	v, err := source.GenRandomInteger(z.q)
	if err != nil {
		return nil, err
	}
	return &ZqElement{group: z, value: v}, nil
}

// RandomElementVector draws size independent uniform elements.
func (z *ZqGroup) RandomElementVector(size int, source common.RandomSource) (*ZqVector, error) {
	if size <= 0 {
		return nil, errors.New("RandomElementVector: size must be strictly positive")
	}
	elements := make([]*ZqElement, size)
	for i := range elements {
		e, err := z.RandomElement(source)
		if err != nil {
			return nil, err
		}
		elements[i] = e
	}
	return NewZqVector(elements)
}

// ZqElement is an integer v with 0 <= v < q. Immutable.
type ZqElement struct {
	group *ZqGroup
	value *big.Int
}

func NewZqElement(value *big.Int, group *ZqGroup) (*ZqElement, error) {
	if value == nil || group == nil {
		return nil, errors.New("NewZqElement: value and group must not be nil")
	}
	if value.Sign() < 0 || value.Cmp(group.q) >= 0 {
		return nil, errors.Errorf("NewZqElement: value must be in [0, q), got %s", value)
	}
	return &ZqElement{group: group, value: new(big.Int).Set(value)}, nil
}

func (e *ZqElement) Value() *big.Int {
	return e.value
}

func (e *ZqElement) Group() *ZqGroup {
	return e.group
}

func (e *ZqElement) Add(other *ZqElement) *ZqElement {
	e.mustShareGroupWith(other)
	return &ZqElement{group: e.group, value: common.ModInt(e.group.q).Add(e.value, other.value)}
}

func (e *ZqElement) Subtract(other *ZqElement) *ZqElement {
	e.mustShareGroupWith(other)
	return &ZqElement{group: e.group, value: common.ModInt(e.group.q).Sub(e.value, other.value)}
}

func (e *ZqElement) Negate() *ZqElement {
	return &ZqElement{group: e.group, value: common.ModInt(e.group.q).Neg(e.value)}
}

func (e *ZqElement) Multiply(other *ZqElement) *ZqElement {
	e.mustShareGroupWith(other)
	return &ZqElement{group: e.group, value: common.ModInt(e.group.q).Mul(e.value, other.value)}
}

// Exponentiate returns e^k mod q for a non-negative integer k.
func (e *ZqElement) Exponentiate(k *big.Int) *ZqElement {
	if k == nil || k.Sign() < 0 {
		panic("group: exponent must be a non-negative integer")
	}
	return &ZqElement{group: e.group, value: common.ModInt(e.group.q).Exp(e.value, k)}
}

func (e *ZqElement) Equals(other *ZqElement) bool {
	if other == nil {
		return false
	}
	return e.group.Equals(other.group) && e.value.Cmp(other.value) == 0
}

func (e *ZqElement) String() string {
	return e.value.String()
}

func (e *ZqElement) mustShareGroupWith(other *ZqElement) {
	if other == nil || !e.group.Equals(other.group) {
		panic("group: operation on elements of different rings")
	}
}
