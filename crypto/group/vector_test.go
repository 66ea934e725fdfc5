// Copyright © 2026 OpenVote
//
// This file is part of OpenVote. The full OpenVote copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package group_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openvote/mixnet/crypto/group"
)

func TestNewGqVectorInvariants(t *testing.T) {
	gq11 := groupP11(t)
	gq23 := groupP23(t)

	_, err := group.NewGqVector(nil)
	assert.Error(t, err)
	_, err = group.NewGqVector([]*group.GqElement{})
	assert.Error(t, err)
	_, err = group.NewGqVector([]*group.GqElement{mustGqElement(t, 3, gq11), nil})
	assert.Error(t, err)
	_, err = group.NewGqVector([]*group.GqElement{mustGqElement(t, 3, gq11), mustGqElement(t, 2, gq23)})
	assert.Error(t, err, "mixed groups must be rejected")

	v, err := group.NewGqVector([]*group.GqElement{mustGqElement(t, 3, gq11), mustGqElement(t, 4, gq11)})
	require.NoError(t, err)
	assert.Equal(t, 2, v.Size())
	assert.Equal(t, int64(4), v.Get(1).Value().Int64())
}

func TestGqVectorAppendPrependSubVector(t *testing.T) {
	gq := groupP11(t)
	v, err := group.NewGqVector([]*group.GqElement{mustGqElement(t, 3, gq), mustGqElement(t, 4, gq)})
	require.NoError(t, err)

	appended, err := v.Append(mustGqElement(t, 5, gq))
	require.NoError(t, err)
	assert.Equal(t, 3, appended.Size())
	assert.Equal(t, int64(5), appended.Get(2).Value().Int64())
	assert.Equal(t, 2, v.Size(), "the original vector is unchanged")

	prepended, err := v.Prepend(mustGqElement(t, 9, gq))
	require.NoError(t, err)
	assert.Equal(t, int64(9), prepended.Get(0).Value().Int64())

	sub, err := appended.SubVector(1, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, sub.Size())
	assert.Equal(t, int64(4), sub.Get(0).Value().Int64())

	_, err = appended.SubVector(2, 2)
	assert.Error(t, err)
}

func TestZqVectorAlgebra(t *testing.T) {
	zq, err := group.NewZqGroup(big.NewInt(11))
	require.NoError(t, err)
	u, err := group.NewZqVectorFromInts([]*big.Int{big.NewInt(1), big.NewInt(2), big.NewInt(3)}, zq)
	require.NoError(t, err)
	v, err := group.NewZqVectorFromInts([]*big.Int{big.NewInt(4), big.NewInt(5), big.NewInt(6)}, zq)
	require.NoError(t, err)

	sum := u.Add(v)
	assert.Equal(t, int64(5), sum.Get(0).Value().Int64())
	assert.Equal(t, int64(9), sum.Get(2).Value().Int64())

	hadamard := u.HadamardProduct(v)
	assert.Equal(t, int64(4), hadamard.Get(0).Value().Int64())
	assert.Equal(t, int64(7), hadamard.Get(2).Value().Int64())

	scaled := u.ScalarMultiply(mustZqElement(t, 5, zq))
	assert.Equal(t, int64(5), scaled.Get(0).Value().Int64())
	assert.Equal(t, int64(4), scaled.Get(2).Value().Int64())

	assert.Equal(t, int64(6), u.Product().Value().Int64())
}

func TestZqMatrixShape(t *testing.T) {
	zq, err := group.NewZqGroup(big.NewInt(11))
	require.NoError(t, err)
	rows := [][]*group.ZqElement{
		{mustZqElement(t, 1, zq), mustZqElement(t, 2, zq), mustZqElement(t, 3, zq)},
		{mustZqElement(t, 4, zq), mustZqElement(t, 5, zq), mustZqElement(t, 6, zq)},
	}
	m, err := group.NewZqMatrixFromRows(rows)
	require.NoError(t, err)
	assert.Equal(t, 2, m.NumRows())
	assert.Equal(t, 3, m.NumColumns())
	assert.Equal(t, int64(6), m.Get(1, 2).Value().Int64())

	col := m.Column(1)
	assert.Equal(t, int64(2), col.Get(0).Value().Int64())
	assert.Equal(t, int64(5), col.Get(1).Value().Int64())

	row := m.Row(0)
	assert.Equal(t, 3, row.Size())

	transposed := m.Transpose()
	assert.Equal(t, 3, transposed.NumRows())
	assert.Equal(t, 2, transposed.NumColumns())
	assert.Equal(t, int64(2), transposed.Get(1, 0).Value().Int64())
}

func TestZqMatrixFromColumnsMatchesFromRows(t *testing.T) {
	zq, err := group.NewZqGroup(big.NewInt(11))
	require.NoError(t, err)
	cols := [][]*group.ZqElement{
		{mustZqElement(t, 1, zq), mustZqElement(t, 4, zq)},
		{mustZqElement(t, 2, zq), mustZqElement(t, 5, zq)},
	}
	m, err := group.NewZqMatrixFromColumns(cols)
	require.NoError(t, err)
	assert.Equal(t, 2, m.NumRows())
	assert.Equal(t, 2, m.NumColumns())
	assert.Equal(t, int64(2), m.Get(0, 1).Value().Int64())
	assert.Equal(t, int64(4), m.Get(1, 0).Value().Int64())
}

func TestZqMatrixAppendColumn(t *testing.T) {
	zq, err := group.NewZqGroup(big.NewInt(11))
	require.NoError(t, err)
	m, err := group.NewZqMatrixFromRows([][]*group.ZqElement{
		{mustZqElement(t, 1, zq)},
		{mustZqElement(t, 2, zq)},
	})
	require.NoError(t, err)
	col, err := group.NewZqVectorFromInts([]*big.Int{big.NewInt(7), big.NewInt(8)}, zq)
	require.NoError(t, err)

	wider, err := m.AppendColumn(col)
	require.NoError(t, err)
	assert.Equal(t, 2, wider.NumColumns())
	assert.Equal(t, int64(8), wider.Get(1, 1).Value().Int64())
	assert.Equal(t, 1, m.NumColumns(), "the original matrix is unchanged")

	short, err := group.NewZqVectorFromInts([]*big.Int{big.NewInt(7)}, zq)
	require.NoError(t, err)
	_, err = m.AppendColumn(short)
	assert.Error(t, err)
}

func TestZqMatrixRaggedRowsRejected(t *testing.T) {
	zq, err := group.NewZqGroup(big.NewInt(11))
	require.NoError(t, err)
	_, err = group.NewZqMatrixFromRows([][]*group.ZqElement{
		{mustZqElement(t, 1, zq), mustZqElement(t, 2, zq)},
		{mustZqElement(t, 3, zq)},
	})
	assert.Error(t, err)
}
