// Copyright © 2026 OpenVote
//
// This file is part of OpenVote. The full OpenVote copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package mixnet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openvote/mixnet/crypto/group"
	"github.com/openvote/mixnet/crypto/mixnet"
)

// zeroFixture builds a statement with two column pairs whose bilinear
// sum vanishes: the b-side matrix is all zeros.
func zeroFixture(t *testing.T, f *fixture) (*mixnet.ZeroStatement, *mixnet.ZeroWitness) {
	t.Helper()
	a := f.zqMatrixFromColumns(t, f.zqVector(t, 1, 2, 3), f.zqVector(t, 4, 5, 6))
	b := f.zqMatrixFromColumns(t, f.zqVector(t, 0, 0, 0), f.zqVector(t, 0, 0, 0))
	r := f.zqVector(t, 7, 8)
	s := f.zqVector(t, 9, 10)
	y := f.zqElement(t, 5)

	statement, err := mixnet.NewZeroStatement(f.commitMatrix(t, a, r), f.commitMatrix(t, b, s), y)
	require.NoError(t, err)
	witness, err := mixnet.NewZeroWitness(a, b, r, s)
	require.NoError(t, err)
	return statement, witness
}

func TestZeroArgumentRoundTrip(t *testing.T) {
	f := newFixture(t)
	statement, witness := zeroFixture(t, f)

	argument, err := f.service.GetZeroArgument(statement, witness)
	require.NoError(t, err)
	assert.NoError(t, f.service.VerifyZeroArgument(statement, argument))
}

// A single nontrivial column pair: a=(1,2), b=(9,1), y=1 gives
// 1*9*y + 2*1*y^2 = 9 + 2 = 0 (mod 11).
func TestZeroArgumentNontrivialWitness(t *testing.T) {
	f := newFixture(t)
	a := f.zqMatrixFromColumns(t, f.zqVector(t, 1, 2))
	b := f.zqMatrixFromColumns(t, f.zqVector(t, 9, 1))
	r := f.zqVector(t, 3)
	s := f.zqVector(t, 4)
	y := f.zqElement(t, 1)

	statement, err := mixnet.NewZeroStatement(f.commitMatrix(t, a, r), f.commitMatrix(t, b, s), y)
	require.NoError(t, err)
	witness, err := mixnet.NewZeroWitness(a, b, r, s)
	require.NoError(t, err)

	argument, err := f.service.GetZeroArgument(statement, witness)
	require.NoError(t, err)
	assert.NoError(t, f.service.VerifyZeroArgument(statement, argument))
}

func TestZeroArgumentRejectsUnsatisfiedWitness(t *testing.T) {
	f := newFixture(t)
	a := f.zqMatrixFromColumns(t, f.zqVector(t, 1, 2))
	b := f.zqMatrixFromColumns(t, f.zqVector(t, 1, 1))
	r := f.zqVector(t, 3)
	s := f.zqVector(t, 4)
	y := f.zqElement(t, 1)

	statement, err := mixnet.NewZeroStatement(f.commitMatrix(t, a, r), f.commitMatrix(t, b, s), y)
	require.NoError(t, err)
	witness, err := mixnet.NewZeroWitness(a, b, r, s)
	require.NoError(t, err)

	_, err = f.service.GetZeroArgument(statement, witness)
	assert.Error(t, err, "1*1 + 2*1 = 3 is not zero mod 11")
}

func TestZeroArgumentRejectsWrongOpening(t *testing.T) {
	f := newFixture(t)
	statement, _ := zeroFixture(t, f)

	wrongA := f.zqMatrixFromColumns(t, f.zqVector(t, 1, 2, 4), f.zqVector(t, 4, 5, 6))
	wrongWitness, err := mixnet.NewZeroWitness(wrongA, f.zqMatrixFromColumns(t, f.zqVector(t, 0, 0, 0), f.zqVector(t, 0, 0, 0)), f.zqVector(t, 7, 8), f.zqVector(t, 9, 10))
	require.NoError(t, err)

	_, err = f.service.GetZeroArgument(statement, wrongWitness)
	assert.Error(t, err)
}

func TestZeroArgumentTamperedResponsesRejected(t *testing.T) {
	f := newFixture(t)
	statement, witness := zeroFixture(t, f)
	argument, err := f.service.GetZeroArgument(statement, witness)
	require.NoError(t, err)

	t.Run("tampered t response", func(t *testing.T) {
		tampered := *argument
		tampered.TPrime = tampered.TPrime.Add(f.zqElement(t, 1))
		assert.Error(t, f.service.VerifyZeroArgument(statement, &tampered))
	})
	t.Run("tampered r response", func(t *testing.T) {
		tampered := *argument
		tampered.RPrime = tampered.RPrime.Add(f.zqElement(t, 1))
		assert.Error(t, f.service.VerifyZeroArgument(statement, &tampered))
	})
	t.Run("tampered blinding commitment", func(t *testing.T) {
		tampered := *argument
		tampered.CA0 = tampered.CA0.Multiply(f.gq.Generator())
		assert.Error(t, f.service.VerifyZeroArgument(statement, &tampered))
	})
	t.Run("tampered diagonal commitment", func(t *testing.T) {
		tampered := *argument
		elements := tampered.Cd.Elements()
		elements[0] = elements[0].Multiply(f.gq.Generator())
		rebuilt, err := group.NewGqVector(elements)
		require.NoError(t, err)
		tampered.Cd = rebuilt
		assert.Error(t, f.service.VerifyZeroArgument(statement, &tampered))
	})
}
