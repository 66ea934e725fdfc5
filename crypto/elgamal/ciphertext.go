// Copyright © 2026 OpenVote
//
// This file is part of OpenVote. The full OpenVote copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package elgamal implements the multi-recipient ElGamal scheme: key
// pairs, ciphertext algebra, encryption, decryption, partial decryption
// and private-key compression.
package elgamal

import (
	"github.com/pkg/errors"

	"github.com/openvote/mixnet/crypto/group"
)

// Ciphertext is a tuple (gamma, phi_1..phi_l) of G_q elements with l >= 1.
// gamma carries the encryption randomness, the phis mask the message.
type Ciphertext struct {
	gamma *group.GqElement
	phis  []*group.GqElement
}

func NewCiphertext(gamma *group.GqElement, phis []*group.GqElement) (*Ciphertext, error) {
	if gamma == nil || len(phis) == 0 {
		return nil, errors.New("NewCiphertext: need a gamma and at least one phi")
	}
	for i, phi := range phis {
		if phi == nil || !phi.Group().Equals(gamma.Group()) {
			return nil, errors.Errorf("NewCiphertext: phi %d must belong to gamma's group", i)
		}
	}
	copied := make([]*group.GqElement, len(phis))
	copy(copied, phis)
	return &Ciphertext{gamma: gamma, phis: copied}, nil
}

// NeutralCiphertext is the all-ones ciphertext of the given size, the
// identity of componentwise multiplication.
func NeutralCiphertext(size int, gq *group.GqGroup) (*Ciphertext, error) {
	if size <= 0 {
		return nil, errors.New("NeutralCiphertext: size must be strictly positive")
	}
	phis := make([]*group.GqElement, size)
	for i := range phis {
		phis[i] = gq.Identity()
	}
	return &Ciphertext{gamma: gq.Identity(), phis: phis}, nil
}

// Size returns l, the number of phis.
func (c *Ciphertext) Size() int {
	return len(c.phis)
}

func (c *Ciphertext) Gamma() *group.GqElement {
	return c.gamma
}

func (c *Ciphertext) Phi(i int) *group.GqElement {
	return c.phis[i]
}

func (c *Ciphertext) Phis() []*group.GqElement {
	copied := make([]*group.GqElement, len(c.phis))
	copy(copied, c.phis)
	return copied
}

func (c *Ciphertext) Group() *group.GqGroup {
	return c.gamma.Group()
}

// Multiply returns the componentwise product. Both ciphertexts must share
// group and size; callers construct them through validated factories, so a
// mismatch here is an internal invariant violation.
func (c *Ciphertext) Multiply(other *Ciphertext) *Ciphertext {
	if other == nil || len(c.phis) != len(other.phis) || !c.Group().Equals(other.Group()) {
		panic("elgamal: multiplied ciphertexts of different sizes or groups")
	}
	phis := make([]*group.GqElement, len(c.phis))
	for i := range phis {
		phis[i] = c.phis[i].Multiply(other.phis[i])
	}
	return &Ciphertext{gamma: c.gamma.Multiply(other.gamma), phis: phis}
}

// Exponentiate raises every component to a Z_q exponent.
func (c *Ciphertext) Exponentiate(a *group.ZqElement) *Ciphertext {
	if a == nil || !c.Group().HasSameOrderAs(a.Group()) {
		panic("elgamal: exponentiated ciphertext with exponent of a different order")
	}
	phis := make([]*group.GqElement, len(c.phis))
	for i := range phis {
		phis[i] = c.phis[i].Exponentiate(a)
	}
	return &Ciphertext{gamma: c.gamma.Exponentiate(a), phis: phis}
}

func (c *Ciphertext) Equals(other *Ciphertext) bool {
	if other == nil || len(c.phis) != len(other.phis) {
		return false
	}
	if !c.gamma.Equals(other.gamma) {
		return false
	}
	for i := range c.phis {
		if !c.phis[i].Equals(other.phis[i]) {
			return false
		}
	}
	return true
}

// CiphertextVector is a non-empty vector of ciphertexts sharing group and
// size.
type CiphertextVector struct {
	ciphertexts []*Ciphertext
}

func NewCiphertextVector(ciphertexts []*Ciphertext) (*CiphertextVector, error) {
	if len(ciphertexts) == 0 {
		return nil, errors.New("NewCiphertextVector: vector must not be empty")
	}
	for i, c := range ciphertexts {
		if c == nil {
			return nil, errors.Errorf("NewCiphertextVector: ciphertext %d is nil", i)
		}
		if c.Size() != ciphertexts[0].Size() || !c.Group().Equals(ciphertexts[0].Group()) {
			return nil, errors.New("NewCiphertextVector: ciphertexts must all share group and size")
		}
	}
	copied := make([]*Ciphertext, len(ciphertexts))
	copy(copied, ciphertexts)
	return &CiphertextVector{ciphertexts: copied}, nil
}

func (v *CiphertextVector) Size() int {
	return len(v.ciphertexts)
}

// ElementSize returns l, the size of each contained ciphertext.
func (v *CiphertextVector) ElementSize() int {
	return v.ciphertexts[0].Size()
}

func (v *CiphertextVector) Get(i int) *Ciphertext {
	return v.ciphertexts[i]
}

func (v *CiphertextVector) Group() *group.GqGroup {
	return v.ciphertexts[0].Group()
}

func (v *CiphertextVector) Ciphertexts() []*Ciphertext {
	copied := make([]*Ciphertext, len(v.ciphertexts))
	copy(copied, v.ciphertexts)
	return copied
}

func (v *CiphertextVector) Equals(other *CiphertextVector) bool {
	if other == nil || len(v.ciphertexts) != len(other.ciphertexts) {
		return false
	}
	for i := range v.ciphertexts {
		if !v.ciphertexts[i].Equals(other.ciphertexts[i]) {
			return false
		}
	}
	return true
}

// ToMatrix reshapes the vector into numRows x numColumns row-major: row i
// holds the ciphertexts [i*numColumns, (i+1)*numColumns).
func (v *CiphertextVector) ToMatrix(numRows, numColumns int) (*CiphertextMatrix, error) {
	if numRows <= 0 || numColumns <= 0 || numRows*numColumns != len(v.ciphertexts) {
		return nil, errors.New("ToMatrix: dimensions must multiply to the vector size")
	}
	rows := make([][]*Ciphertext, numRows)
	for i := range rows {
		rows[i] = v.ciphertexts[i*numColumns : (i+1)*numColumns]
	}
	return NewCiphertextMatrixFromRows(rows)
}

// CiphertextVectorExponentiation computes prod_i C_i^{a_i}. The vectors
// must be non-empty, of equal size, and of matching group order.
func CiphertextVectorExponentiation(ciphertexts *CiphertextVector, exponents *group.ZqVector) (*Ciphertext, error) {
	if ciphertexts == nil || exponents == nil {
		return nil, errors.New("CiphertextVectorExponentiation: inputs must not be nil")
	}
	if ciphertexts.Size() != exponents.Size() {
		return nil, errors.New("CiphertextVectorExponentiation: vectors must have the same size")
	}
	if !ciphertexts.Group().HasSameOrderAs(exponents.Group()) {
		return nil, errors.New("CiphertextVectorExponentiation: exponents must match the group order")
	}
	result := ciphertexts.Get(0).Exponentiate(exponents.Get(0))
	for i := 1; i < ciphertexts.Size(); i++ {
		result = result.Multiply(ciphertexts.Get(i).Exponentiate(exponents.Get(i)))
	}
	return result, nil
}

// CiphertextMatrix is a rectangular matrix of ciphertexts sharing group
// and size.
type CiphertextMatrix struct {
	rows [][]*Ciphertext
}

func NewCiphertextMatrixFromRows(rows [][]*Ciphertext) (*CiphertextMatrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.New("NewCiphertextMatrixFromRows: matrix must not be empty")
	}
	first := rows[0][0]
	copied := make([][]*Ciphertext, len(rows))
	for i, row := range rows {
		if len(row) != len(rows[0]) {
			return nil, errors.New("NewCiphertextMatrixFromRows: rows must all have the same column count")
		}
		copied[i] = make([]*Ciphertext, len(row))
		for j, c := range row {
			if c == nil || c.Size() != first.Size() || !c.Group().Equals(first.Group()) {
				return nil, errors.Errorf("NewCiphertextMatrixFromRows: entry (%d,%d) must share group and size", i, j)
			}
			copied[i][j] = c
		}
	}
	return &CiphertextMatrix{rows: copied}, nil
}

func (m *CiphertextMatrix) NumRows() int {
	return len(m.rows)
}

func (m *CiphertextMatrix) NumColumns() int {
	return len(m.rows[0])
}

func (m *CiphertextMatrix) Get(i, j int) *Ciphertext {
	return m.rows[i][j]
}

func (m *CiphertextMatrix) Group() *group.GqGroup {
	return m.rows[0][0].Group()
}

// ElementSize returns l, the size of each contained ciphertext.
func (m *CiphertextMatrix) ElementSize() int {
	return m.rows[0][0].Size()
}

func (m *CiphertextMatrix) Row(i int) *CiphertextVector {
	copied := make([]*Ciphertext, len(m.rows[i]))
	copy(copied, m.rows[i])
	return &CiphertextVector{ciphertexts: copied}
}
