// Copyright © 2026 OpenVote
//
// This file is part of OpenVote. The full OpenVote copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package group

import (
	"math/big"

	"github.com/pkg/errors"
)

// GqVector is a non-empty immutable vector of G_q elements sharing one
// group.
type GqVector struct {
	elements []*GqElement
}

func NewGqVector(elements []*GqElement) (*GqVector, error) {
	if len(elements) == 0 {
		return nil, errors.New("NewGqVector: vector must not be empty")
	}
	for i, e := range elements {
		if e == nil {
			return nil, errors.Errorf("NewGqVector: element %d is nil", i)
		}
		if !e.group.Equals(elements[0].group) {
			return nil, errors.New("NewGqVector: elements must all belong to the same group")
		}
	}
	copied := make([]*GqElement, len(elements))
	copy(copied, elements)
	return &GqVector{elements: copied}, nil
}

func (v *GqVector) Size() int {
	return len(v.elements)
}

func (v *GqVector) Get(i int) *GqElement {
	return v.elements[i]
}

func (v *GqVector) Group() *GqGroup {
	return v.elements[0].group
}

// Elements returns a copy of the underlying slice.
func (v *GqVector) Elements() []*GqElement {
	copied := make([]*GqElement, len(v.elements))
	copy(copied, v.elements)
	return copied
}

func (v *GqVector) Append(e *GqElement) (*GqVector, error) {
	return NewGqVector(append(v.Elements(), e))
}

func (v *GqVector) Prepend(e *GqElement) (*GqVector, error) {
	return NewGqVector(append([]*GqElement{e}, v.elements...))
}

// SubVector returns the elements in [from, to).
func (v *GqVector) SubVector(from, to int) (*GqVector, error) {
	if from < 0 || to > len(v.elements) || from >= to {
		return nil, errors.New("SubVector: bounds out of range")
	}
	return NewGqVector(v.elements[from:to])
}

func (v *GqVector) Equals(other *GqVector) bool {
	if other == nil || len(v.elements) != len(other.elements) {
		return false
	}
	for i := range v.elements {
		if !v.elements[i].Equals(other.elements[i]) {
			return false
		}
	}
	return true
}

// ZqVector is a non-empty immutable vector of Z_q elements sharing one
// ring.
type ZqVector struct {
	elements []*ZqElement
}

func NewZqVector(elements []*ZqElement) (*ZqVector, error) {
	if len(elements) == 0 {
		return nil, errors.New("NewZqVector: vector must not be empty")
	}
	for i, e := range elements {
		if e == nil {
			return nil, errors.Errorf("NewZqVector: element %d is nil", i)
		}
		if !e.group.Equals(elements[0].group) {
			return nil, errors.New("NewZqVector: elements must all belong to the same ring")
		}
	}
	copied := make([]*ZqElement, len(elements))
	copy(copied, elements)
	return &ZqVector{elements: copied}, nil
}

// NewZqVectorFromInts reduces the given integers mod q and wraps them.
func NewZqVectorFromInts(values []*big.Int, zq *ZqGroup) (*ZqVector, error) {
	if len(values) == 0 {
		return nil, errors.New("NewZqVectorFromInts: vector must not be empty")
	}
	elements := make([]*ZqElement, len(values))
	for i, v := range values {
		if v == nil {
			return nil, errors.Errorf("NewZqVectorFromInts: value %d is nil", i)
		}
		elements[i] = zq.Reduce(v)
	}
	return &ZqVector{elements: elements}, nil
}

func (v *ZqVector) Size() int {
	return len(v.elements)
}

func (v *ZqVector) Get(i int) *ZqElement {
	return v.elements[i]
}

func (v *ZqVector) Group() *ZqGroup {
	return v.elements[0].group
}

func (v *ZqVector) Elements() []*ZqElement {
	copied := make([]*ZqElement, len(v.elements))
	copy(copied, v.elements)
	return copied
}

func (v *ZqVector) Append(e *ZqElement) (*ZqVector, error) {
	return NewZqVector(append(v.Elements(), e))
}

func (v *ZqVector) Prepend(e *ZqElement) (*ZqVector, error) {
	return NewZqVector(append([]*ZqElement{e}, v.elements...))
}

func (v *ZqVector) SubVector(from, to int) (*ZqVector, error) {
	if from < 0 || to > len(v.elements) || from >= to {
		return nil, errors.New("SubVector: bounds out of range")
	}
	return NewZqVector(v.elements[from:to])
}

func (v *ZqVector) Equals(other *ZqVector) bool {
	if other == nil || len(v.elements) != len(other.elements) {
		return false
	}
	for i := range v.elements {
		if !v.elements[i].Equals(other.elements[i]) {
			return false
		}
	}
	return true
}

// Add returns the element-wise sum of two vectors of equal size.
func (v *ZqVector) Add(other *ZqVector) *ZqVector {
	v.mustMatch(other)
	elements := make([]*ZqElement, len(v.elements))
	for i := range elements {
		elements[i] = v.elements[i].Add(other.elements[i])
	}
	return &ZqVector{elements: elements}
}

// HadamardProduct returns the element-wise product of two vectors of
// equal size.
func (v *ZqVector) HadamardProduct(other *ZqVector) *ZqVector {
	v.mustMatch(other)
	elements := make([]*ZqElement, len(v.elements))
	for i := range elements {
		elements[i] = v.elements[i].Multiply(other.elements[i])
	}
	return &ZqVector{elements: elements}
}

// ScalarMultiply returns c * v element-wise.
func (v *ZqVector) ScalarMultiply(c *ZqElement) *ZqVector {
	elements := make([]*ZqElement, len(v.elements))
	for i := range elements {
		elements[i] = v.elements[i].Multiply(c)
	}
	return &ZqVector{elements: elements}
}

// Product returns the product of all entries.
func (v *ZqVector) Product() *ZqElement {
	product := v.Group().One()
	for _, e := range v.elements {
		product = product.Multiply(e)
	}
	return product
}

func (v *ZqVector) mustMatch(other *ZqVector) {
	if other == nil || len(v.elements) != len(other.elements) {
		panic("group: operation on vectors of different sizes")
	}
}

// ZqMatrix is a rectangular matrix of Z_q elements with a row-major
// logical view. Immutable.
type ZqMatrix struct {
	rows [][]*ZqElement
}

func NewZqMatrixFromRows(rows [][]*ZqElement) (*ZqMatrix, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.New("NewZqMatrixFromRows: matrix must not be empty")
	}
	group := rows[0][0].group
	copied := make([][]*ZqElement, len(rows))
	for i, row := range rows {
		if len(row) != len(rows[0]) {
			return nil, errors.New("NewZqMatrixFromRows: rows must all have the same column count")
		}
		copied[i] = make([]*ZqElement, len(row))
		for j, e := range row {
			if e == nil {
				return nil, errors.Errorf("NewZqMatrixFromRows: entry (%d,%d) is nil", i, j)
			}
			if !e.group.Equals(group) {
				return nil, errors.New("NewZqMatrixFromRows: entries must all belong to the same ring")
			}
			copied[i][j] = e
		}
	}
	return &ZqMatrix{rows: copied}, nil
}

func NewZqMatrixFromColumns(columns [][]*ZqElement) (*ZqMatrix, error) {
	if len(columns) == 0 || len(columns[0]) == 0 {
		return nil, errors.New("NewZqMatrixFromColumns: matrix must not be empty")
	}
	rows := make([][]*ZqElement, len(columns[0]))
	for i := range rows {
		rows[i] = make([]*ZqElement, len(columns))
	}
	for j, col := range columns {
		if len(col) != len(columns[0]) {
			return nil, errors.New("NewZqMatrixFromColumns: columns must all have the same row count")
		}
		for i, e := range col {
			rows[i][j] = e
		}
	}
	return NewZqMatrixFromRows(rows)
}

// NewZqMatrixFromColumnVectors assembles a matrix from per-column
// vectors of equal size.
func NewZqMatrixFromColumnVectors(columns []*ZqVector) (*ZqMatrix, error) {
	if len(columns) == 0 {
		return nil, errors.New("NewZqMatrixFromColumnVectors: matrix must not be empty")
	}
	raw := make([][]*ZqElement, len(columns))
	for j, col := range columns {
		if col == nil {
			return nil, errors.Errorf("NewZqMatrixFromColumnVectors: column %d is nil", j)
		}
		raw[j] = col.elements
	}
	return NewZqMatrixFromColumns(raw)
}

func (m *ZqMatrix) NumRows() int {
	return len(m.rows)
}

func (m *ZqMatrix) NumColumns() int {
	return len(m.rows[0])
}

func (m *ZqMatrix) Get(i, j int) *ZqElement {
	return m.rows[i][j]
}

func (m *ZqMatrix) Group() *ZqGroup {
	return m.rows[0][0].group
}

func (m *ZqMatrix) Row(i int) *ZqVector {
	copied := make([]*ZqElement, len(m.rows[i]))
	copy(copied, m.rows[i])
	return &ZqVector{elements: copied}
}

func (m *ZqMatrix) Column(j int) *ZqVector {
	col := make([]*ZqElement, len(m.rows))
	for i := range m.rows {
		col[i] = m.rows[i][j]
	}
	return &ZqVector{elements: col}
}

func (m *ZqMatrix) Transpose() *ZqMatrix {
	transposed := make([][]*ZqElement, m.NumColumns())
	for j := range transposed {
		transposed[j] = m.Column(j).elements
	}
	return &ZqMatrix{rows: transposed}
}

func (m *ZqMatrix) AppendColumn(col *ZqVector) (*ZqMatrix, error) {
	if col == nil || col.Size() != m.NumRows() {
		return nil, errors.New("AppendColumn: column size must equal the row count")
	}
	rows := make([][]*ZqElement, m.NumRows())
	for i := range rows {
		rows[i] = append(m.Row(i).elements, col.elements[i])
	}
	return NewZqMatrixFromRows(rows)
}

func (m *ZqMatrix) Equals(other *ZqMatrix) bool {
	if other == nil || m.NumRows() != other.NumRows() || m.NumColumns() != other.NumColumns() {
		return false
	}
	for i := range m.rows {
		for j := range m.rows[i] {
			if !m.rows[i][j].Equals(other.rows[i][j]) {
				return false
			}
		}
	}
	return true
}
