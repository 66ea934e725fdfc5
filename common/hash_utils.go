// Copyright © 2026 OpenVote
//
// This file is part of OpenVote. The full OpenVote copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package common

import (
	"math/big"

	"golang.org/x/crypto/sha3"
)

// RejectionSample maps a digest to a uniform value in [0, q). It keeps the
// first |q| bits of the digest and, while the value is not below q,
// re-expands the running value with SHA3-256. Both sides of a protocol
// derive the same challenge from the same digest.
func RejectionSample(q *big.Int, digest []byte) *big.Int {
	qBits := q.BitLen()
	eHash := new(big.Int).SetBytes(digest)
	e := firstBitsOf(qBits, eHash)
	for e.Cmp(q) != -1 {
		sum := sha3.Sum256(eHash.Bytes())
		eHash = eHash.SetBytes(sum[:])
		e = firstBitsOf(qBits, eHash)
	}
	return e
}

func firstBitsOf(bits int, v *big.Int) *big.Int {
	e := new(big.Int)
	for i := 0; i < bits; i++ {
		e = e.SetBit(e, i, v.Bit(i))
	}
	return e
}
