// Copyright © 2026 OpenVote
//
// This file is part of OpenVote. The full OpenVote copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package permutation provides uniformly random permutations and the
// re-encrypting shuffle built on them.
package permutation

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/openvote/mixnet/common"
)

// Permutation is a bijection of [0, N), stored as its value table.
// Immutable.
type Permutation struct {
	mapping []int
}

// NewPermutation validates that the mapping is a bijection of [0, N).
func NewPermutation(mapping []int) (*Permutation, error) {
	if len(mapping) == 0 {
		return nil, errors.New("NewPermutation: mapping must not be empty")
	}
	seen := make([]bool, len(mapping))
	for _, v := range mapping {
		if v < 0 || len(mapping) <= v || seen[v] {
			return nil, errors.New("NewPermutation: mapping is not a bijection")
		}
		seen[v] = true
	}
	copied := make([]int, len(mapping))
	copy(copied, mapping)
	return &Permutation{mapping: copied}, nil
}

// GenPermutation draws a uniform permutation of [0, N) with Fisher-Yates:
// at step i it swaps position i with a uniform position in [i, N).
func GenPermutation(n int, source common.RandomSource) (*Permutation, error) {
	if n <= 0 {
		return nil, errors.New("GenPermutation: size must be strictly positive")
	}
	if source == nil {
		return nil, errors.New("GenPermutation: random source must not be nil")
	}
	mapping := make([]int, n)
	for i := range mapping {
		mapping[i] = i
	}
	for i := 0; i < n; i++ {
		offset, err := source.GenRandomInteger(big.NewInt(int64(n - i)))
		if err != nil {
			return nil, err
		}
		j := i + int(offset.Int64())
		mapping[i], mapping[j] = mapping[j], mapping[i]
	}
	return &Permutation{mapping: mapping}, nil
}

func (p *Permutation) Size() int {
	return len(p.mapping)
}

// Get returns psi(i).
func (p *Permutation) Get(i int) int {
	return p.mapping[i]
}
