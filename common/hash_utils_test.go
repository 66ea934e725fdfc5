// Copyright © 2026 OpenVote
//
// This file is part of OpenVote. The full OpenVote copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package common_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openvote/mixnet/common"
)

func TestRejectionSampleBelowQ(t *testing.T) {
	digest := []byte{0xde, 0xad, 0xbe, 0xef, 0x01, 0x02, 0x03, 0x04}
	for _, q := range []int64{2, 5, 11, 257, 1 << 31} {
		e := common.RejectionSample(big.NewInt(q), digest)
		assert.True(t, e.Sign() >= 0)
		assert.True(t, e.Cmp(big.NewInt(q)) < 0, "sample must be below q=%d", q)
	}
}

func TestRejectionSampleIsDeterministic(t *testing.T) {
	q := big.NewInt(11)
	digest := []byte{0xff, 0xee, 0xdd, 0xcc}
	first := common.RejectionSample(q, digest)
	second := common.RejectionSample(q, digest)
	assert.Zero(t, first.Cmp(second))
}

func TestModIntArithmetic(t *testing.T) {
	mod := common.ModInt(big.NewInt(11))
	assert.Equal(t, int64(4), mod.Add(big.NewInt(9), big.NewInt(6)).Int64())
	assert.Equal(t, int64(8), mod.Sub(big.NewInt(3), big.NewInt(6)).Int64())
	assert.Equal(t, int64(10), mod.Mul(big.NewInt(3), big.NewInt(7)).Int64())
	assert.Equal(t, int64(5), mod.Exp(big.NewInt(9), big.NewInt(4)).Int64())
	assert.Equal(t, int64(9), mod.ModInverse(big.NewInt(5)).Int64())
	assert.Equal(t, int64(7), mod.Neg(big.NewInt(4)).Int64())
}
