// Copyright © 2026 OpenVote
//
// This file is part of OpenVote. The full OpenVote copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package commitments_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openvote/mixnet/crypto/commitments"
	"github.com/openvote/mixnet/crypto/group"
)

func groupP23(t *testing.T) *group.GqGroup {
	t.Helper()
	gq, err := group.NewGqGroup(big.NewInt(23), big.NewInt(11), big.NewInt(2))
	require.NoError(t, err)
	return gq
}

func commitmentKey(t *testing.T, gq *group.GqGroup, h int64, gs ...int64) *commitments.CommitmentKey {
	t.Helper()
	hElement, err := group.NewGqElement(big.NewInt(h), gq)
	require.NoError(t, err)
	elements := make([]*group.GqElement, len(gs))
	for i, v := range gs {
		e, err := group.NewGqElement(big.NewInt(v), gq)
		require.NoError(t, err)
		elements[i] = e
	}
	vector, err := group.NewGqVector(elements)
	require.NoError(t, err)
	ck, err := commitments.NewCommitmentKey(hElement, vector)
	require.NoError(t, err)
	return ck
}

func zqVector(t *testing.T, zq *group.ZqGroup, values ...int64) *group.ZqVector {
	t.Helper()
	ints := make([]*big.Int, len(values))
	for i, v := range values {
		ints[i] = big.NewInt(v)
	}
	vector, err := group.NewZqVectorFromInts(ints, zq)
	require.NoError(t, err)
	return vector
}

func TestNewCommitmentKeyRejectsDegenerateElements(t *testing.T) {
	gq := groupP23(t)
	one, err := group.NewGqElement(big.NewInt(1), gq)
	require.NoError(t, err)
	three, err := group.NewGqElement(big.NewInt(3), gq)
	require.NoError(t, err)
	gs, err := group.NewGqVector([]*group.GqElement{three})
	require.NoError(t, err)

	_, err = commitments.NewCommitmentKey(one, gs)
	assert.Error(t, err, "h = 1 must be rejected")

	degenerate, err := group.NewGqVector([]*group.GqElement{gq.Generator()})
	require.NoError(t, err)
	_, err = commitments.NewCommitmentKey(three, degenerate)
	assert.Error(t, err, "g_i equal to the generator must be rejected")
}

// c = h^r * prod g_i^{a_i}: with h=4, g=(3,9), a=(2,5), r=3 over p=23
// this is 4^3 * 3^2 * 9^5 mod 23.
func TestGetCommitmentWorkedExample(t *testing.T) {
	gq := groupP23(t)
	zq := group.ZqGroupSameOrderAs(gq)
	ck := commitmentKey(t, gq, 4, 3, 9)
	a := zqVector(t, zq, 2, 5)
	r, err := group.NewZqElement(big.NewInt(3), zq)
	require.NoError(t, err)

	c, err := commitments.GetCommitment(a, r, ck)
	require.NoError(t, err)
	expected := new(big.Int).Exp(big.NewInt(4), big.NewInt(3), big.NewInt(23))
	expected.Mul(expected, new(big.Int).Exp(big.NewInt(3), big.NewInt(2), big.NewInt(23)))
	expected.Mul(expected, new(big.Int).Exp(big.NewInt(9), big.NewInt(5), big.NewInt(23)))
	expected.Mod(expected, big.NewInt(23))
	assert.Equal(t, expected.Int64(), c.Value().Int64())
}

// Pedersen commitments are homomorphic:
// commit(a, r) * commit(b, s) = commit(a+b, r+s).
func TestGetCommitmentIsHomomorphic(t *testing.T) {
	gq := groupP23(t)
	zq := group.ZqGroupSameOrderAs(gq)
	ck := commitmentKey(t, gq, 4, 3, 9, 13)
	a := zqVector(t, zq, 2, 5, 7)
	b := zqVector(t, zq, 10, 1, 6)
	r, err := group.NewZqElement(big.NewInt(3), zq)
	require.NoError(t, err)
	s, err := group.NewZqElement(big.NewInt(8), zq)
	require.NoError(t, err)

	ca, err := commitments.GetCommitment(a, r, ck)
	require.NoError(t, err)
	cb, err := commitments.GetCommitment(b, s, ck)
	require.NoError(t, err)
	combined, err := commitments.GetCommitment(a.Add(b), r.Add(s), ck)
	require.NoError(t, err)
	assert.True(t, ca.Multiply(cb).Equals(combined))
}

func TestGetCommitmentShorterVectorUsesPrefix(t *testing.T) {
	gq := groupP23(t)
	zq := group.ZqGroupSameOrderAs(gq)
	ck := commitmentKey(t, gq, 4, 3, 9, 13)
	r, err := group.NewZqElement(big.NewInt(3), zq)
	require.NoError(t, err)

	short, err := commitments.GetCommitment(zqVector(t, zq, 2), r, ck)
	require.NoError(t, err)
	padded, err := commitments.GetCommitment(zqVector(t, zq, 2, 0, 0), r, ck)
	require.NoError(t, err)
	assert.True(t, short.Equals(padded))
}

func TestGetCommitmentRejectsOversizedVector(t *testing.T) {
	gq := groupP23(t)
	zq := group.ZqGroupSameOrderAs(gq)
	ck := commitmentKey(t, gq, 4, 3)
	r, err := group.NewZqElement(big.NewInt(3), zq)
	require.NoError(t, err)
	_, err = commitments.GetCommitment(zqVector(t, zq, 2, 5), r, ck)
	assert.Error(t, err)
}

func TestGetCommitmentRejectsWrongOrderExponents(t *testing.T) {
	gq := groupP23(t)
	ck := commitmentKey(t, gq, 4, 3)
	otherZq, err := group.NewZqGroup(big.NewInt(7))
	require.NoError(t, err)
	r, err := group.NewZqElement(big.NewInt(3), otherZq)
	require.NoError(t, err)
	_, err = commitments.GetCommitment(zqVector(t, otherZq, 2), r, ck)
	assert.Error(t, err)
}

func TestGetCommitmentMatrixCommitsPerColumn(t *testing.T) {
	gq := groupP23(t)
	zq := group.ZqGroupSameOrderAs(gq)
	ck := commitmentKey(t, gq, 4, 3, 9)
	matrix, err := group.NewZqMatrixFromColumns([][]*group.ZqElement{
		zqVector(t, zq, 1, 2).Elements(),
		zqVector(t, zq, 3, 4).Elements(),
	})
	require.NoError(t, err)
	r := zqVector(t, zq, 5, 6)

	cs, err := commitments.GetCommitmentMatrix(matrix, r, ck)
	require.NoError(t, err)
	require.Equal(t, 2, cs.Size())
	for j := 0; j < 2; j++ {
		expected, err := commitments.GetCommitment(matrix.Column(j), r.Get(j), ck)
		require.NoError(t, err)
		assert.True(t, cs.Get(j).Equals(expected))
	}

	_, err = commitments.GetCommitmentMatrix(matrix, zqVector(t, zq, 5), ck)
	assert.Error(t, err, "randomness length must match the column count")
}

func TestGetCommitmentVectorCommitsPerEntry(t *testing.T) {
	gq := groupP23(t)
	zq := group.ZqGroupSameOrderAs(gq)
	ck := commitmentKey(t, gq, 4, 3, 9)
	d := zqVector(t, zq, 7, 0, 4)
	r := zqVector(t, zq, 1, 2, 3)

	cs, err := commitments.GetCommitmentVector(d, r, ck)
	require.NoError(t, err)
	require.Equal(t, 3, cs.Size())
	for k := 0; k < 3; k++ {
		single, err := group.NewZqVector([]*group.ZqElement{d.Get(k)})
		require.NoError(t, err)
		expected, err := commitments.GetCommitment(single, r.Get(k), ck)
		require.NoError(t, err)
		assert.True(t, cs.Get(k).Equals(expected))
	}
}

func TestNewVerifiableCommitmentKeyIsDeterministicAndValid(t *testing.T) {
	gq := groupP23(t)
	first, err := commitments.NewVerifiableCommitmentKey(3, gq)
	require.NoError(t, err)
	second, err := commitments.NewVerifiableCommitmentKey(3, gq)
	require.NoError(t, err)

	require.Equal(t, 3, first.Size())
	assert.True(t, first.H().Equals(second.H()))
	for i := 0; i < 3; i++ {
		assert.True(t, first.G(i).Equals(second.G(i)))
		assert.False(t, first.G(i).IsIdentity())
		assert.False(t, first.G(i).Equals(gq.Generator()))
		// Derived elements are genuine group members.
		_, err := group.NewGqElement(first.G(i).Value(), gq)
		assert.NoError(t, err)
	}
	assert.False(t, first.H().IsIdentity())
	assert.False(t, first.H().Equals(gq.Generator()))
}

func TestNewVerifiableCommitmentKeyRejectsTooSmallGroup(t *testing.T) {
	gq, err := group.NewGqGroup(big.NewInt(11), big.NewInt(5), big.NewInt(3))
	require.NoError(t, err)
	_, err = commitments.NewVerifiableCommitmentKey(4, gq)
	assert.Error(t, err)
}
