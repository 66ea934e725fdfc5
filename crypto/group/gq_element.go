// Copyright © 2026 OpenVote
//
// This file is part of OpenVote. The full OpenVote copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package group

import (
	"math/big"

	"github.com/otiai10/primes"
	"github.com/pkg/errors"

	"github.com/openvote/mixnet/common"
)

const maxSmallPrimeMembers = 10000

// GqElement is a member of G_q: an integer v with 1 <= v < p and
// v^q = 1 (mod p). Immutable.
type GqElement struct {
	group *GqGroup
	value *big.Int
}

// NewGqElement checks group membership of value and wraps it.
func NewGqElement(value *big.Int, group *GqGroup) (*GqElement, error) {
	if value == nil || group == nil {
		return nil, errors.New("NewGqElement: value and group must not be nil")
	}
	if value.Sign() <= 0 || value.Cmp(group.p) >= 0 {
		return nil, errors.Errorf("NewGqElement: value must be in [1, p), got %s", value)
	}
	if new(big.Int).Exp(value, group.q, group.p).Cmp(one) != 0 {
		return nil, errors.Errorf("NewGqElement: %s is not a member of the group", value)
	}
	return &GqElement{group: group, value: new(big.Int).Set(value)}, nil
}

// NewGqElementFromSquareRoot returns x^2 mod p, which is a quadratic
// residue and hence a group member for any 0 < x < q. This is the
// canonical way to embed arbitrary integers into G_q.
func NewGqElementFromSquareRoot(x *big.Int, group *GqGroup) (*GqElement, error) {
	if x == nil || group == nil {
		return nil, errors.New("NewGqElementFromSquareRoot: x and group must not be nil")
	}
	if x.Sign() <= 0 || x.Cmp(group.q) >= 0 {
		return nil, errors.New("NewGqElementFromSquareRoot: x must be in (0, q)")
	}
	value := common.ModInt(group.p).Mul(x, x)
	return &GqElement{group: group, value: value}, nil
}

func (e *GqElement) Value() *big.Int {
	return e.value
}

func (e *GqElement) Group() *GqGroup {
	return e.group
}

// Multiply returns e * other mod p. The elements must belong to the same
// group; membership is preserved by closure.
func (e *GqElement) Multiply(other *GqElement) *GqElement {
	e.mustShareGroupWith(other)
	value := common.ModInt(e.group.p).Mul(e.value, other.value)
	return &GqElement{group: e.group, value: value}
}

// Exponentiate returns e^exp mod p for an exponent of the group's order.
func (e *GqElement) Exponentiate(exp *ZqElement) *GqElement {
	if exp == nil || e.group.q.Cmp(exp.group.q) != 0 {
		panic("group: exponentiated element with exponent of a different order")
	}
	return e.exponentiate(exp.value)
}

// ExponentiateInt returns e^k mod p for a non-negative integer k.
func (e *GqElement) ExponentiateInt(k *big.Int) *GqElement {
	if k == nil || k.Sign() < 0 {
		panic("group: exponent must be a non-negative integer")
	}
	return e.exponentiate(k)
}

func (e *GqElement) exponentiate(k *big.Int) *GqElement {
	if e.value.Cmp(one) == 0 {
		return e.group.Identity()
	}
	value := common.ModInt(e.group.p).Exp(e.value, k)
	return &GqElement{group: e.group, value: value}
}

// Invert returns the multiplicative inverse of e.
func (e *GqElement) Invert() *GqElement {
	value := common.ModInt(e.group.p).ModInverse(e.value)
	return &GqElement{group: e.group, value: value}
}

// Divide returns e * other^-1.
func (e *GqElement) Divide(other *GqElement) *GqElement {
	e.mustShareGroupWith(other)
	return e.Multiply(other.Invert())
}

// Equals reports whether both elements belong to the same group and hold
// the same value.
func (e *GqElement) Equals(other *GqElement) bool {
	if other == nil {
		return false
	}
	return e.group.Equals(other.group) && e.value.Cmp(other.value) == 0
}

func (e *GqElement) IsIdentity() bool {
	return e.value.Cmp(one) == 0
}

func (e *GqElement) String() string {
	return e.value.String()
}

func (e *GqElement) mustShareGroupWith(other *GqElement) {
	if other == nil || !e.group.Equals(other.group) {
		panic("group: operation on elements of different groups")
	}
}

// SmallPrimeGroupMembers returns the first r primes, starting at 5, that
// are members of the group. It fails when r exceeds 10000 or when the
// group is too small to hold r distinct prime members with at least 4
// elements of slack.
func SmallPrimeGroupMembers(group *GqGroup, r int) ([]*GqElement, error) {
	if group == nil {
		return nil, errors.New("SmallPrimeGroupMembers: group must not be nil")
	}
	if r <= 0 || maxSmallPrimeMembers < r {
		return nil, errors.Errorf("SmallPrimeGroupMembers: r must be in [1, %d]", maxSmallPrimeMembers)
	}
	slack := new(big.Int).Add(big.NewInt(int64(r)), big.NewInt(4))
	if group.q.Cmp(slack) < 0 {
		return nil, errors.New("SmallPrimeGroupMembers: group too small to hold the requested prime members")
	}
	members := make([]*GqElement, 0, r)
	modP := common.ModInt(group.p)
	const maxSieveBound = int64(1 << 24)
	bound := int64(1 << 13)
	seen := int64(4) // primes below 5 are never candidates
	for {
		sieveBound := bound
		if group.p.IsInt64() && group.p.Int64()-1 < sieveBound {
			sieveBound = group.p.Int64() - 1
		}
		for _, prime := range primes.Until(sieveBound).List() {
			if prime <= seen {
				continue
			}
			seen = prime
			candidate := big.NewInt(prime)
			if modP.Exp(candidate, group.q).Cmp(one) == 0 {
				members = append(members, &GqElement{group: group, value: candidate})
				if len(members) == r {
					return members, nil
				}
			}
		}
		if sieveBound < bound || bound >= maxSieveBound {
			return nil, errors.New("SmallPrimeGroupMembers: not enough prime group members below the modulus")
		}
		bound *= 4
	}
}
