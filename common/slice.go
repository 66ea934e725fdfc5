// Copyright © 2026 OpenVote
//
// This file is part of OpenVote. The full OpenVote copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package common

import (
	"math/big"
)

// MultiBytesToBigInts decodes a serialized proof's byte parts back into
// integers. The inverse direction goes through the minimal big-endian
// encoding of the conversion package, so zero arrives as 0x00 and every
// part is non-empty.
func MultiBytesToBigInts(bytes [][]byte) []*big.Int {
	ints := make([]*big.Int, len(bytes))
	for i := range ints {
		ints[i] = new(big.Int).SetBytes(bytes[i])
	}
	return ints
}

// NonEmptyBytes returns true when the byte slice is non-nil and non-empty.
func NonEmptyBytes(bz []byte) bool {
	return bz != nil && 0 < len(bz)
}

// NonEmptyMultiBytes returns true when all of the slices in the
// multi-dimensional byte slice are non-nil and non-empty, and, when an
// expected length is given, the outer slice has exactly that length.
func NonEmptyMultiBytes(bzs [][]byte, expectLen ...int) bool {
	if len(bzs) == 0 {
		return false
	}
	if 0 < len(expectLen) && expectLen[0] != len(bzs) {
		return false
	}
	for _, bz := range bzs {
		if !NonEmptyBytes(bz) {
			return false
		}
	}
	return true
}
