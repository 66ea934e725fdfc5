// Copyright © 2026 OpenVote
//
// This file is part of OpenVote. The full OpenVote copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package hashing_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"

	"github.com/openvote/mixnet/crypto/hashing"
)

func TestHashLength(t *testing.T) {
	h := hashing.NewHashService()
	digest, err := h.RecursiveHash(hashing.HashableBytes{0x01})
	require.NoError(t, err)
	assert.Len(t, digest, h.HashLength())
	assert.Equal(t, 32, h.HashLength())
}

func TestLeafPrefixes(t *testing.T) {
	h := hashing.NewHashService()

	bytesDigest, err := h.RecursiveHash(hashing.HashableBytes{0xab})
	require.NoError(t, err)
	expected := sha3.Sum256([]byte{0x00, 0xab})
	assert.Equal(t, expected[:], bytesDigest)

	zeroDigest, err := h.RecursiveHash(hashing.HashableInt(big.NewInt(0)))
	require.NoError(t, err)
	expected = sha3.Sum256([]byte{0x01, 0x00})
	assert.Equal(t, expected[:], zeroDigest)

	intDigest, err := h.RecursiveHash(hashing.HashableInt(big.NewInt(256)))
	require.NoError(t, err)
	expected = sha3.Sum256([]byte{0x01, 0x01, 0x00})
	assert.Equal(t, expected[:], intDigest)

	stringDigest, err := h.RecursiveHash(hashing.HashableString("ab"))
	require.NoError(t, err)
	expected = sha3.Sum256([]byte{0x02, 'a', 'b'})
	assert.Equal(t, expected[:], stringDigest)
}

// Leaves of different variants with identical payload bytes must hash
// differently.
func TestVariantsDoNotCollide(t *testing.T) {
	h := hashing.NewHashService()
	asBytes, err := h.RecursiveHash(hashing.HashableBytes("ab"))
	require.NoError(t, err)
	asString, err := h.RecursiveHash(hashing.HashableString("ab"))
	require.NoError(t, err)
	assert.NotEqual(t, asBytes, asString)
}

func TestSingletonListCollapses(t *testing.T) {
	h := hashing.NewHashService()
	direct, err := h.RecursiveHash(hashing.HashableInt(big.NewInt(42)))
	require.NoError(t, err)
	wrapped, err := h.RecursiveHash(hashing.HashableList{hashing.HashableInt(big.NewInt(42))})
	require.NoError(t, err)
	assert.Equal(t, direct, wrapped)
}

func TestListHashConcatenatesChildDigests(t *testing.T) {
	h := hashing.NewHashService()
	first, err := h.RecursiveHash(hashing.HashableBytes{0x01})
	require.NoError(t, err)
	second, err := h.RecursiveHash(hashing.HashableString("x"))
	require.NoError(t, err)
	expected := sha3.Sum256(append(first, second...))
	combined, err := h.RecursiveHash(hashing.HashableBytes{0x01}, hashing.HashableString("x"))
	require.NoError(t, err)
	assert.Equal(t, expected[:], combined)
}

func TestEmptyListFails(t *testing.T) {
	h := hashing.NewHashService()
	_, err := h.RecursiveHash()
	assert.Error(t, err)
	_, err = h.RecursiveHash(hashing.HashableList{})
	assert.Error(t, err)
	_, err = h.RecursiveHash(hashing.HashableBytes{0x01}, hashing.HashableList{})
	assert.Error(t, err)
}

func TestNegativeIntegerFails(t *testing.T) {
	h := hashing.NewHashService()
	_, err := h.RecursiveHash(hashing.HashableInt(big.NewInt(-1)))
	assert.Error(t, err)
	_, err = h.RecursiveHash(hashing.HashableInt(nil))
	assert.Error(t, err)
}

func TestDistinctBytesHashDistinctly(t *testing.T) {
	h := hashing.NewHashService()
	seen := make(map[string]bool)
	for i := 0; i < 256; i++ {
		digest, err := h.RecursiveHash(hashing.HashableBytes{byte(i)})
		require.NoError(t, err)
		key := string(digest)
		assert.False(t, seen[key], "digest collision for byte %d", i)
		seen[key] = true
	}
}

func TestNestedTreesHash(t *testing.T) {
	h := hashing.NewHashService()
	tree := hashing.HashableList{
		hashing.HashableString("outer"),
		hashing.HashableList{
			hashing.HashableInt(big.NewInt(7)),
			hashing.HashableBytes{0x01, 0x02},
		},
	}
	digest, err := h.RecursiveHash(tree...)
	require.NoError(t, err)
	assert.Len(t, digest, 32)

	// The tree hashes to the digest of its children's digests concatenated.
	inner, err := h.RecursiveHash(hashing.HashableInt(big.NewInt(7)), hashing.HashableBytes{0x01, 0x02})
	require.NoError(t, err)
	outer, err := h.RecursiveHash(hashing.HashableString("outer"))
	require.NoError(t, err)
	expected := sha3.Sum256(append(outer, inner...))
	assert.Equal(t, expected[:], digest)
}
