// Copyright © 2026 OpenVote
//
// This file is part of OpenVote. The full OpenVote copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package commitments implements Pedersen vector and matrix commitments
// under a key (h, g_1..g_nu) of G_q elements.
package commitments

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/openvote/mixnet/crypto/conversion"
	"github.com/openvote/mixnet/crypto/group"
	"github.com/openvote/mixnet/crypto/hashing"
)

// CommitmentKey is (h, g_1..g_nu), all in G_q \ {1, g}. Its size nu
// bounds the dimension of the vectors it can commit to.
type CommitmentKey struct {
	h  *group.GqElement
	gs *group.GqVector
}

func NewCommitmentKey(h *group.GqElement, gs *group.GqVector) (*CommitmentKey, error) {
	if h == nil || gs == nil {
		return nil, errors.New("NewCommitmentKey: h and gs must not be nil")
	}
	if !h.Group().Equals(gs.Group()) {
		return nil, errors.New("NewCommitmentKey: h and gs must belong to the same group")
	}
	generator := h.Group().Generator()
	if h.IsIdentity() || h.Equals(generator) {
		return nil, errors.New("NewCommitmentKey: h must be neither the identity nor the generator")
	}
	for i := 0; i < gs.Size(); i++ {
		if gs.Get(i).IsIdentity() || gs.Get(i).Equals(generator) {
			return nil, errors.Errorf("NewCommitmentKey: g_%d must be neither the identity nor the generator", i+1)
		}
	}
	return &CommitmentKey{h: h, gs: gs}, nil
}

// Size returns nu, the number of g elements.
func (ck *CommitmentKey) Size() int {
	return ck.gs.Size()
}

func (ck *CommitmentKey) H() *group.GqElement {
	return ck.h
}

func (ck *CommitmentKey) G(i int) *group.GqElement {
	return ck.gs.Get(i)
}

func (ck *CommitmentKey) Gs() *group.GqVector {
	return ck.gs
}

func (ck *CommitmentKey) Group() *group.GqGroup {
	return ck.h.Group()
}

// GetCommitment commits to a vector a with randomness r:
// c = h^r * prod g_i^{a_i}. The vector must fit the key.
func GetCommitment(a *group.ZqVector, r *group.ZqElement, ck *CommitmentKey) (*group.GqElement, error) {
	if a == nil || r == nil || ck == nil {
		return nil, errors.New("GetCommitment: inputs must not be nil")
	}
	if a.Size() > ck.Size() {
		return nil, errors.Errorf("GetCommitment: vector of size %d does not fit a key of size %d", a.Size(), ck.Size())
	}
	if !ck.Group().HasSameOrderAs(a.Group()) || !a.Group().Equals(r.Group()) {
		return nil, errors.New("GetCommitment: exponents must match the key's group order")
	}
	c := ck.h.Exponentiate(r)
	for i := 0; i < a.Size(); i++ {
		c = c.Multiply(ck.gs.Get(i).Exponentiate(a.Get(i)))
	}
	return c, nil
}

// GetCommitmentMatrix commits to each column of A with the matching
// randomness, yielding one commitment per column.
func GetCommitmentMatrix(a *group.ZqMatrix, r *group.ZqVector, ck *CommitmentKey) (*group.GqVector, error) {
	if a == nil || r == nil || ck == nil {
		return nil, errors.New("GetCommitmentMatrix: inputs must not be nil")
	}
	if a.NumColumns() != r.Size() {
		return nil, errors.New("GetCommitmentMatrix: need one randomness per column")
	}
	commitments := make([]*group.GqElement, a.NumColumns())
	for j := range commitments {
		c, err := GetCommitment(a.Column(j), r.Get(j), ck)
		if err != nil {
			return nil, err
		}
		commitments[j] = c
	}
	return group.NewGqVector(commitments)
}

// GetCommitmentVector commits to each entry of d on its own, as a
// one-element vector with the matching randomness.
func GetCommitmentVector(d *group.ZqVector, t *group.ZqVector, ck *CommitmentKey) (*group.GqVector, error) {
	if d == nil || t == nil || ck == nil {
		return nil, errors.New("GetCommitmentVector: inputs must not be nil")
	}
	if d.Size() != t.Size() {
		return nil, errors.New("GetCommitmentVector: need one randomness per entry")
	}
	commitments := make([]*group.GqElement, d.Size())
	for k := range commitments {
		single, err := group.NewZqVector([]*group.ZqElement{d.Get(k)})
		if err != nil {
			return nil, err
		}
		c, err := GetCommitment(single, t.Get(k), ck)
		if err != nil {
			return nil, err
		}
		commitments[k] = c
	}
	return group.NewGqVector(commitments)
}

// NewVerifiableCommitmentKey derives a key of size nu deterministically
// from the group: successive counter values are hashed under a fixed
// domain tag, reduced into (0, q) and squared into G_q, skipping the
// identity, the generator and duplicates. Both sides of a protocol can
// recompute the key from the group alone.
func NewVerifiableCommitmentKey(nu int, gq *group.GqGroup) (*CommitmentKey, error) {
	if nu <= 0 {
		return nil, errors.New("NewVerifiableCommitmentKey: size must be strictly positive")
	}
	if gq == nil {
		return nil, errors.New("NewVerifiableCommitmentKey: group must not be nil")
	}
	slack := new(big.Int).Add(big.NewInt(int64(nu)+1), big.NewInt(3))
	if gq.Q().Cmp(slack) < 0 {
		return nil, errors.New("NewVerifiableCommitmentKey: group too small for the requested key size")
	}
	hashService := hashing.NewHashService()
	generator := gq.Generator()
	elements := make([]*group.GqElement, 0, nu+1)
	maxCount := 64 * (nu + 8)
	for count := 1; len(elements) < nu+1; count++ {
		if count > maxCount {
			return nil, errors.New("NewVerifiableCommitmentKey: exhausted the derivation counter")
		}
		digest, err := hashService.RecursiveHash(
			hashing.HashableString("commitmentKey"),
			hashing.HashableInt(big.NewInt(int64(count))),
		)
		if err != nil {
			return nil, err
		}
		w := new(big.Int).Mod(conversion.ByteArrayToInteger(digest), gq.Q())
		if w.Sign() == 0 {
			continue
		}
		candidate, err := group.NewGqElementFromSquareRoot(w, gq)
		if err != nil {
			return nil, err
		}
		if candidate.IsIdentity() || candidate.Equals(generator) {
			continue
		}
		duplicate := false
		for _, e := range elements {
			if e.Equals(candidate) {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}
		elements = append(elements, candidate)
	}
	gs, err := group.NewGqVector(elements[1:])
	if err != nil {
		return nil, err
	}
	return NewCommitmentKey(elements[0], gs)
}
