// Copyright © 2026 OpenVote
//
// This file is part of OpenVote. The full OpenVote copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package mixnet_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openvote/mixnet/common"
	"github.com/openvote/mixnet/crypto/commitments"
	"github.com/openvote/mixnet/crypto/elgamal"
	"github.com/openvote/mixnet/crypto/group"
	"github.com/openvote/mixnet/crypto/hashing"
	"github.com/openvote/mixnet/crypto/mixnet"
)

// fixture bundles a full argument service over the small test group
// (p=23, q=11, g=2) with a key pair and commitment key of size 3.
type fixture struct {
	gq      *group.GqGroup
	zq      *group.ZqGroup
	keyPair *elgamal.KeyPair
	ck      *commitments.CommitmentKey
	service *mixnet.ArgumentService
	random  *common.RandomService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gq, err := group.NewGqGroup(big.NewInt(23), big.NewInt(11), big.NewInt(2))
	require.NoError(t, err)
	zq := group.ZqGroupSameOrderAs(gq)
	random := common.NewRandomService()
	keyPair, err := elgamal.GenKeyPair(gq, 3, random)
	require.NoError(t, err)
	ck, err := commitments.NewVerifiableCommitmentKey(3, gq)
	require.NoError(t, err)
	service, err := mixnet.NewArgumentService(keyPair.PublicKey(), ck, random, hashing.NewHashService())
	require.NoError(t, err)
	return &fixture{gq: gq, zq: zq, keyPair: keyPair, ck: ck, service: service, random: random}
}

func (f *fixture) zqElement(t *testing.T, v int64) *group.ZqElement {
	t.Helper()
	e, err := group.NewZqElement(big.NewInt(v), f.zq)
	require.NoError(t, err)
	return e
}

func (f *fixture) zqVector(t *testing.T, values ...int64) *group.ZqVector {
	t.Helper()
	ints := make([]*big.Int, len(values))
	for i, v := range values {
		ints[i] = big.NewInt(v)
	}
	vector, err := group.NewZqVectorFromInts(ints, f.zq)
	require.NoError(t, err)
	return vector
}

func (f *fixture) zqMatrixFromColumns(t *testing.T, columns ...*group.ZqVector) *group.ZqMatrix {
	t.Helper()
	matrix, err := group.NewZqMatrixFromColumnVectors(columns)
	require.NoError(t, err)
	return matrix
}

func (f *fixture) commit(t *testing.T, a *group.ZqVector, r *group.ZqElement) *group.GqElement {
	t.Helper()
	c, err := commitments.GetCommitment(a, r, f.ck)
	require.NoError(t, err)
	return c
}

func (f *fixture) commitMatrix(t *testing.T, a *group.ZqMatrix, r *group.ZqVector) *group.GqVector {
	t.Helper()
	cs, err := commitments.GetCommitmentMatrix(a, r, f.ck)
	require.NoError(t, err)
	return cs
}

// encryptRandomMessages returns count fresh encryptions of arbitrary
// messages of the given element size.
func (f *fixture) encryptRandomMessages(t *testing.T, count, size int) *elgamal.CiphertextVector {
	t.Helper()
	members := []int64{3, 4, 6, 8, 9, 12, 13, 16, 18}
	ciphertexts := make([]*elgamal.Ciphertext, count)
	for i := 0; i < count; i++ {
		elements := make([]*group.GqElement, size)
		for j := range elements {
			e, err := group.NewGqElement(big.NewInt(members[(i*size+j)%len(members)]), f.gq)
			require.NoError(t, err)
			elements[j] = e
		}
		vector, err := group.NewGqVector(elements)
		require.NoError(t, err)
		m, err := elgamal.NewMessage(vector)
		require.NoError(t, err)
		r, err := f.zq.RandomElement(f.random)
		require.NoError(t, err)
		c, err := elgamal.GetCiphertext(m, r, f.keyPair.PublicKey())
		require.NoError(t, err)
		ciphertexts[i] = c
	}
	vector, err := elgamal.NewCiphertextVector(ciphertexts)
	require.NoError(t, err)
	return vector
}
