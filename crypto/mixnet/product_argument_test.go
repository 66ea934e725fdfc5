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

// productFixture commits to the 3x2 matrix with columns (1,2,3) and
// (4,5,6); all entries multiply to 720 = 5 (mod 11).
func productFixture(t *testing.T, f *fixture) (*mixnet.ProductStatement, *mixnet.ProductWitness) {
	t.Helper()
	a := f.zqMatrixFromColumns(t, f.zqVector(t, 1, 2, 3), f.zqVector(t, 4, 5, 6))
	r := f.zqVector(t, 7, 8)
	statement, err := mixnet.NewProductStatement(f.commitMatrix(t, a, r), f.zqElement(t, 5))
	require.NoError(t, err)
	witness, err := mixnet.NewProductWitness(a, r)
	require.NoError(t, err)
	return statement, witness
}

func TestProductArgumentRoundTrip(t *testing.T) {
	f := newFixture(t)
	statement, witness := productFixture(t, f)

	argument, err := f.service.GetProductArgument(statement, witness)
	require.NoError(t, err)
	require.NotNil(t, argument.Cb, "a multi-column argument carries c_b")
	require.NotNil(t, argument.Hadamard, "a multi-column argument carries a Hadamard part")
	assert.NoError(t, f.service.VerifyProductArgument(statement, argument))
}

// With a single column the argument reduces to the single-value product
// argument alone.
func TestProductArgumentSingleColumn(t *testing.T) {
	f := newFixture(t)
	a := f.zqMatrixFromColumns(t, f.zqVector(t, 2, 3, 4))
	r := f.zqVector(t, 6)
	statement, err := mixnet.NewProductStatement(f.commitMatrix(t, a, r), f.zqElement(t, 2))
	require.NoError(t, err)
	witness, err := mixnet.NewProductWitness(a, r)
	require.NoError(t, err)

	argument, err := f.service.GetProductArgument(statement, witness)
	require.NoError(t, err)
	assert.Nil(t, argument.Cb)
	assert.Nil(t, argument.Hadamard)
	require.NotNil(t, argument.SingleValueProduct)
	assert.NoError(t, f.service.VerifyProductArgument(statement, argument))
}

func TestProductArgumentRejectsWrongProduct(t *testing.T) {
	f := newFixture(t)
	a := f.zqMatrixFromColumns(t, f.zqVector(t, 1, 2, 3), f.zqVector(t, 4, 5, 6))
	r := f.zqVector(t, 7, 8)
	statement, err := mixnet.NewProductStatement(f.commitMatrix(t, a, r), f.zqElement(t, 6))
	require.NoError(t, err)
	witness, err := mixnet.NewProductWitness(a, r)
	require.NoError(t, err)

	_, err = f.service.GetProductArgument(statement, witness)
	assert.Error(t, err)
}

// The verifier refuses optional parts that do not match the statement's
// column count.
func TestProductArgumentOptionalPartsMustMatch(t *testing.T) {
	f := newFixture(t)

	multiStatement, multiWitness := productFixture(t, f)
	multiArgument, err := f.service.GetProductArgument(multiStatement, multiWitness)
	require.NoError(t, err)

	singleA := f.zqMatrixFromColumns(t, f.zqVector(t, 2, 3, 4))
	singleR := f.zqVector(t, 6)
	singleStatement, err := mixnet.NewProductStatement(f.commitMatrix(t, singleA, singleR), f.zqElement(t, 2))
	require.NoError(t, err)
	singleWitness, err := mixnet.NewProductWitness(singleA, singleR)
	require.NoError(t, err)
	singleArgument, err := f.service.GetProductArgument(singleStatement, singleWitness)
	require.NoError(t, err)

	t.Run("single-column statement with Hadamard part", func(t *testing.T) {
		err := f.service.VerifyProductArgument(singleStatement, multiArgument)
		assert.Error(t, err)
	})
	t.Run("multi-column statement without Hadamard part", func(t *testing.T) {
		err := f.service.VerifyProductArgument(multiStatement, singleArgument)
		assert.Error(t, err)
	})
}

func TestProductArgumentTamperedSubArgumentsRejected(t *testing.T) {
	f := newFixture(t)
	statement, witness := productFixture(t, f)
	argument, err := f.service.GetProductArgument(statement, witness)
	require.NoError(t, err)

	t.Run("tampered c_b", func(t *testing.T) {
		tampered := *argument
		tampered.Cb = tampered.Cb.Multiply(f.gq.Generator())
		err := f.service.VerifyProductArgument(statement, &tampered)
		assert.Error(t, err)
	})
	t.Run("tampered single value product response", func(t *testing.T) {
		tampered := *argument
		svp := *tampered.SingleValueProduct
		svp.RTilde = svp.RTilde.Add(f.zqElement(t, 1))
		tampered.SingleValueProduct = &svp
		err := f.service.VerifyProductArgument(statement, &tampered)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to verify Single Value Product Argument")
	})
}
