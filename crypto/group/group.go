// Copyright © 2026 OpenVote
//
// This file is part of OpenVote. The full OpenVote copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package group implements the prime-order multiplicative subgroup G_q of
// the quadratic residues modulo a safe prime p = 2q+1, together with its
// exponent ring Z_q. All values are immutable once constructed and belong
// to exactly one group; mixing groups is a construction-time failure.
package group

import (
	"math/big"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

var (
	zero = big.NewInt(0)
	one  = big.NewInt(1)
	two  = big.NewInt(2)
)

// GqGroup holds verified safe-prime group parameters (p, q, g) with
// p = 2q+1, both prime, and g a generator of the order-q subgroup.
type GqGroup struct {
	p *big.Int
	q *big.Int
	g *big.Int
}

// NewGqGroup validates the supplied parameters and returns the group. All
// violated preconditions are reported together.
func NewGqGroup(p, q, g *big.Int) (*GqGroup, error) {
	if p == nil || q == nil || g == nil {
		return nil, errors.New("NewGqGroup: p, q and g must not be nil")
	}
	var result *multierror.Error
	rounds := millerRabinRounds(p.BitLen())
	if p.Bit(0) != 1 || !p.ProbablyPrime(rounds) {
		result = multierror.Append(result, errors.New("p must be an odd prime"))
	}
	if q.Bit(0) != 1 || !q.ProbablyPrime(rounds) {
		result = multierror.Append(result, errors.New("q must be an odd prime"))
	}
	pFromQ := new(big.Int).Add(new(big.Int).Mul(two, q), one)
	if p.Cmp(pFromQ) != 0 {
		result = multierror.Append(result, errors.New("p must equal 2q+1"))
	}
	if g.Cmp(one) != 1 || g.Cmp(p) != -1 {
		result = multierror.Append(result, errors.New("g must satisfy 1 < g < p"))
	} else {
		pMinusOne := new(big.Int).Sub(p, one)
		if g.Cmp(pMinusOne) == 0 {
			result = multierror.Append(result, errors.New("g must not equal p-1"))
		}
		if new(big.Int).Exp(g, q, p).Cmp(one) != 0 {
			result = multierror.Append(result, errors.New("g must be of order q"))
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		return nil, errors.Wrap(err, "NewGqGroup: invalid group parameters")
	}
	return &GqGroup{
		p: new(big.Int).Set(p),
		q: new(big.Int).Set(q),
		g: new(big.Int).Set(g),
	}, nil
}

// millerRabinRounds ties the primality certainty to the modulus size:
// certainty 80 up to 1024 bits, 112 up to 2048 bits, 128 beyond. A
// Miller-Rabin round cuts the error probability by a factor of four (two
// bits of certainty), hence certainty/2 rounds.
func millerRabinRounds(bitLength int) int {
	switch {
	case bitLength <= 1024:
		return 40
	case bitLength <= 2048:
		return 56
	default:
		return 64
	}
}

func (g *GqGroup) P() *big.Int {
	return g.p
}

func (g *GqGroup) Q() *big.Int {
	return g.q
}

func (g *GqGroup) G() *big.Int {
	return g.g
}

// Generator returns g as a group element.
func (g *GqGroup) Generator() *GqElement {
	return &GqElement{group: g, value: new(big.Int).Set(g.g)}
}

// Identity returns the neutral element 1.
func (g *GqGroup) Identity() *GqElement {
	return &GqElement{group: g, value: big.NewInt(1)}
}

// Equals reports whether both groups have the same parameters.
func (g *GqGroup) Equals(other *GqGroup) bool {
	if g == other {
		return true
	}
	if other == nil {
		return false
	}
	return g.p.Cmp(other.p) == 0 && g.q.Cmp(other.q) == 0 && g.g.Cmp(other.g) == 0
}

// HasSameOrderAs reports whether a Z_q group is the exponent ring of this
// group.
func (g *GqGroup) HasSameOrderAs(zq *ZqGroup) bool {
	return zq != nil && g.q.Cmp(zq.q) == 0
}
