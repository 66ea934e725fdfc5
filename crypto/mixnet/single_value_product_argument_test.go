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

	"github.com/openvote/mixnet/crypto/mixnet"
)

// svpFixture commits to a = (2, 3, 4) with product 24 = 2 (mod 11).
func svpFixture(t *testing.T, f *fixture) (*mixnet.SingleValueProductStatement, *mixnet.SingleValueProductWitness) {
	t.Helper()
	a := f.zqVector(t, 2, 3, 4)
	r := f.zqElement(t, 6)
	statement, err := mixnet.NewSingleValueProductStatement(f.commit(t, a, r), f.zqElement(t, 2))
	require.NoError(t, err)
	witness, err := mixnet.NewSingleValueProductWitness(a, r)
	require.NoError(t, err)
	return statement, witness
}

func TestSingleValueProductArgumentRoundTrip(t *testing.T) {
	f := newFixture(t)
	statement, witness := svpFixture(t, f)

	argument, err := f.service.GetSingleValueProductArgument(statement, witness)
	require.NoError(t, err)
	assert.NoError(t, f.service.VerifySingleValueProductArgument(statement, argument))
}

func TestSingleValueProductArgumentRejectsWrongProduct(t *testing.T) {
	f := newFixture(t)
	a := f.zqVector(t, 2, 3, 4)
	r := f.zqElement(t, 6)
	statement, err := mixnet.NewSingleValueProductStatement(f.commit(t, a, r), f.zqElement(t, 3))
	require.NoError(t, err)
	witness, err := mixnet.NewSingleValueProductWitness(a, r)
	require.NoError(t, err)

	_, err = f.service.GetSingleValueProductArgument(statement, witness)
	assert.Error(t, err)
}

func TestSingleValueProductWitnessNeedsTwoElements(t *testing.T) {
	f := newFixture(t)
	_, err := mixnet.NewSingleValueProductWitness(f.zqVector(t, 2), f.zqElement(t, 6))
	assert.Error(t, err)
}

func TestSingleValueProductArgumentTamperingRejected(t *testing.T) {
	f := newFixture(t)
	statement, witness := svpFixture(t, f)
	argument, err := f.service.GetSingleValueProductArgument(statement, witness)
	require.NoError(t, err)

	t.Run("tampered r response", func(t *testing.T) {
		tampered := *argument
		tampered.RTilde = tampered.RTilde.Add(f.zqElement(t, 1))
		assert.Error(t, f.service.VerifySingleValueProductArgument(statement, &tampered))
	})
	t.Run("tampered s response", func(t *testing.T) {
		tampered := *argument
		tampered.STilde = tampered.STilde.Add(f.zqElement(t, 1))
		assert.Error(t, f.service.VerifySingleValueProductArgument(statement, &tampered))
	})
	t.Run("tampered commitment", func(t *testing.T) {
		tampered := *argument
		tampered.Cd = tampered.Cd.Multiply(f.gq.Generator())
		assert.Error(t, f.service.VerifySingleValueProductArgument(statement, &tampered))
	})
	t.Run("wrong statement value", func(t *testing.T) {
		wrongStatement, err := mixnet.NewSingleValueProductStatement(f.commit(t, f.zqVector(t, 2, 3, 4), f.zqElement(t, 6)), f.zqElement(t, 7))
		require.NoError(t, err)
		assert.Error(t, f.service.VerifySingleValueProductArgument(wrongStatement, argument))
	})
}
