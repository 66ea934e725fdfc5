// Copyright © 2026 OpenVote
//
// This file is part of OpenVote. The full OpenVote copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package hashing implements the recursive domain-separated hash used as
// the Fiat-Shamir transform of the argument system. Inputs form a tree
// over the closed variant type {bytes, integer, string, list}; each leaf
// kind carries its own prefix byte so encodings of different variants
// never collide.
package hashing

import (
	"math/big"

	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"

	"github.com/openvote/mixnet/crypto/conversion"
)

const (
	prefixBytes   = byte(0x00)
	prefixInteger = byte(0x01)
	prefixString  = byte(0x02)

	// HashLength is the SHA3-256 digest length in bytes.
	HashLength = 32
)

// Hashable is the closed input type of the recursive hash. The four
// variants are HashableBytes, HashableString, HashableList and the value
// returned by HashableInt.
type Hashable interface {
	isHashable()
}

type HashableBytes []byte

func (HashableBytes) isHashable() {}

type HashableString string

func (HashableString) isHashable() {}

type HashableList []Hashable

func (HashableList) isHashable() {}

type hashableInteger struct {
	value *big.Int
}

func (hashableInteger) isHashable() {}

// HashableInt wraps a non-negative integer as a hashable leaf.
func HashableInt(value *big.Int) Hashable {
	return hashableInteger{value: value}
}

// HashService computes the recursive hash with a fixed SHA3-256 digest.
type HashService struct{}

func NewHashService() *HashService {
	return &HashService{}
}

// HashLength returns the digest length in bytes.
func (h *HashService) HashLength() int {
	return HashLength
}

// RecursiveHash hashes the values as a list: with a single value it equals
// the hash of that value, otherwise it is the digest of the concatenated
// child digests. It fails on zero values, empty lists anywhere in the
// tree, nil or negative integers, and invalid UTF-8 strings.
func (h *HashService) RecursiveHash(values ...Hashable) ([]byte, error) {
	return h.hashNode(HashableList(values))
}

func (h *HashService) hashNode(value Hashable) ([]byte, error) {
	switch v := value.(type) {
	case HashableBytes:
		return digest(prefixBytes, v), nil
	case hashableInteger:
		bz, err := conversion.IntegerToByteArray(v.value)
		if err != nil {
			return nil, err
		}
		return digest(prefixInteger, bz), nil
	case HashableString:
		bz, err := conversion.StringToByteArray(string(v))
		if err != nil {
			return nil, err
		}
		return digest(prefixString, bz), nil
	case HashableList:
		if len(v) == 0 {
			return nil, errors.New("RecursiveHash: list must not be empty")
		}
		if len(v) == 1 {
			return h.hashNode(v[0])
		}
		state := sha3.New256()
		for _, child := range v {
			childDigest, err := h.hashNode(child)
			if err != nil {
				return nil, err
			}
			// Write on a sha3 state never fails.
			state.Write(childDigest)
		}
		return state.Sum(nil), nil
	case nil:
		return nil, errors.New("RecursiveHash: value must not be nil")
	default:
		return nil, errors.Errorf("RecursiveHash: unknown hashable variant %T", value)
	}
}

func digest(prefix byte, payload []byte) []byte {
	state := sha3.New256()
	state.Write([]byte{prefix})
	state.Write(payload)
	return state.Sum(nil)
}
