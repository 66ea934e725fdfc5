// Copyright © 2026 OpenVote
//
// This file is part of OpenVote. The full OpenVote copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package mixnet implements the Bayer-Groth verifiable shuffle argument
// and its sub-arguments (zero, Hadamard, single-value product, product,
// multi-exponentiation) over a shared commitment key, public key, random
// source and Fiat-Shamir hash.
package mixnet

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/openvote/mixnet/common"
	"github.com/openvote/mixnet/crypto/commitments"
	"github.com/openvote/mixnet/crypto/elgamal"
	"github.com/openvote/mixnet/crypto/group"
	"github.com/openvote/mixnet/crypto/hashing"
)

// ArgumentService bundles the dependencies shared by all provers and
// verifiers. The public key bounds the ciphertext size, the commitment
// key bounds the committed vector dimension.
type ArgumentService struct {
	publicKey     *elgamal.PublicKey
	commitmentKey *commitments.CommitmentKey
	random        common.RandomSource
	hash          *hashing.HashService
	gq            *group.GqGroup
	zq            *group.ZqGroup
}

func NewArgumentService(
	publicKey *elgamal.PublicKey,
	commitmentKey *commitments.CommitmentKey,
	random common.RandomSource,
	hash *hashing.HashService,
) (*ArgumentService, error) {
	if publicKey == nil || commitmentKey == nil || random == nil || hash == nil {
		return nil, errors.New("NewArgumentService: dependencies must not be nil")
	}
	if !publicKey.Group().Equals(commitmentKey.Group()) {
		return nil, errors.New("NewArgumentService: public key and commitment key must belong to the same group")
	}
	gq := publicKey.Group()
	return &ArgumentService{
		publicKey:     publicKey,
		commitmentKey: commitmentKey,
		random:        random,
		hash:          hash,
		gq:            gq,
		zq:            group.ZqGroupSameOrderAs(gq),
	}, nil
}

// deriveChallenge hashes the transcript values and maps the digest into
// Z_q by rejection sampling, so prover and verifier agree on the same
// challenge for any group order.
func (s *ArgumentService) deriveChallenge(values ...hashing.Hashable) (*group.ZqElement, error) {
	digest, err := s.hash.RecursiveHash(values...)
	if err != nil {
		return nil, errors.Wrap(err, "deriveChallenge")
	}
	return s.zq.Reduce(common.RejectionSample(s.zq.Q(), digest)), nil
}

// powersOf returns (x^0, x^1, ..., x^{count-1}).
func powersOf(x *group.ZqElement, count int) []*group.ZqElement {
	powers := make([]*group.ZqElement, count)
	current := x.Group().One()
	for i := range powers {
		powers[i] = current
		current = current.Multiply(x)
	}
	return powers
}

// starMap is the bilinear map of the zero argument:
// u * v = sum_i u_i v_i y^{i+1}.
func starMap(u, v *group.ZqVector, y *group.ZqElement) *group.ZqElement {
	if u.Size() != v.Size() {
		panic("mixnet: star map on vectors of different sizes")
	}
	sum := y.Group().Zero()
	yPower := y
	for i := 0; i < u.Size(); i++ {
		sum = sum.Add(u.Get(i).Multiply(v.Get(i)).Multiply(yPower))
		yPower = yPower.Multiply(y)
	}
	return sum
}

// exponentiatedProduct computes prod_i cs_i^{exponents_i}.
func exponentiatedProduct(cs *group.GqVector, exponents []*group.ZqElement) *group.GqElement {
	if cs.Size() != len(exponents) {
		panic("mixnet: exponentiated product on mismatched sizes")
	}
	result := cs.Group().Identity()
	for i := 0; i < cs.Size(); i++ {
		result = result.Multiply(cs.Get(i).Exponentiate(exponents[i]))
	}
	return result
}

// singleCommitment commits to the one-element vector (value).
func (s *ArgumentService) singleCommitment(value *group.ZqElement, randomness *group.ZqElement) (*group.GqElement, error) {
	single, err := group.NewZqVector([]*group.ZqElement{value})
	if err != nil {
		return nil, err
	}
	return commitments.GetCommitment(single, randomness, s.commitmentKey)
}

// constantVector repeats value size times.
func constantVector(value *group.ZqElement, size int) *group.ZqVector {
	elements := make([]*group.ZqElement, size)
	for i := range elements {
		elements[i] = value
	}
	vector, err := group.NewZqVector(elements)
	if err != nil {
		// The elements share one ring and size is positive by construction.
		panic(err)
	}
	return vector
}

// reshapeToColumns splits a vector of m*n elements into m columns of
// size n, column j holding the consecutive chunk [j*n, (j+1)*n).
func reshapeToColumns(elements []*group.ZqElement, m, n int) (*group.ZqMatrix, error) {
	if m*n != len(elements) {
		return nil, errors.New("reshapeToColumns: dimensions must multiply to the vector size")
	}
	columns := make([][]*group.ZqElement, m)
	for j := 0; j < m; j++ {
		columns[j] = elements[j*n : (j+1)*n]
	}
	return group.NewZqMatrixFromColumns(columns)
}

func hashableInt(v *big.Int) hashing.Hashable {
	return hashing.HashableInt(v)
}

func hashableGqElement(e *group.GqElement) hashing.Hashable {
	return hashing.HashableInt(e.Value())
}

func hashableZqElement(e *group.ZqElement) hashing.Hashable {
	return hashing.HashableInt(e.Value())
}

func hashableGqVector(v *group.GqVector) hashing.Hashable {
	list := make(hashing.HashableList, v.Size())
	for i := range list {
		list[i] = hashableGqElement(v.Get(i))
	}
	return list
}

func hashableCiphertext(c *elgamal.Ciphertext) hashing.Hashable {
	list := make(hashing.HashableList, 0, c.Size()+1)
	list = append(list, hashableGqElement(c.Gamma()))
	for i := 0; i < c.Size(); i++ {
		list = append(list, hashableGqElement(c.Phi(i)))
	}
	return list
}

func hashableCiphertextVector(v *elgamal.CiphertextVector) hashing.Hashable {
	list := make(hashing.HashableList, v.Size())
	for i := range list {
		list[i] = hashableCiphertext(v.Get(i))
	}
	return list
}

func hashableCiphertextMatrix(m *elgamal.CiphertextMatrix) hashing.Hashable {
	list := make(hashing.HashableList, 0, m.NumRows()*m.NumColumns())
	for i := 0; i < m.NumRows(); i++ {
		for j := 0; j < m.NumColumns(); j++ {
			list = append(list, hashableCiphertext(m.Get(i, j)))
		}
	}
	return list
}

func hashablePublicKey(pk *elgamal.PublicKey) hashing.Hashable {
	return hashableGqVector(pk.Elements())
}

func hashableCommitmentKey(ck *commitments.CommitmentKey) hashing.Hashable {
	list := make(hashing.HashableList, 0, ck.Size()+1)
	list = append(list, hashableGqElement(ck.H()))
	for i := 0; i < ck.Size(); i++ {
		list = append(list, hashableGqElement(ck.G(i)))
	}
	return list
}
