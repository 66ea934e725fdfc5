// Copyright © 2026 OpenVote
//
// This file is part of OpenVote. The full OpenVote copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package mixnet

import (
	"github.com/pkg/errors"

	"github.com/openvote/mixnet/crypto/commitments"
	"github.com/openvote/mixnet/crypto/group"
)

// ProductStatement claims that all entries of the matrix committed
// column-wise by c_A multiply to b.
type ProductStatement struct {
	cA *group.GqVector
	b  *group.ZqElement
}

func NewProductStatement(cA *group.GqVector, b *group.ZqElement) (*ProductStatement, error) {
	if cA == nil || b == nil {
		return nil, errors.New("NewProductStatement: inputs must not be nil")
	}
	if !cA.Group().HasSameOrderAs(b.Group()) {
		return nil, errors.New("NewProductStatement: b must match the group order")
	}
	return &ProductStatement{cA: cA, b: b}, nil
}

// ProductWitness opens the column commitments.
type ProductWitness struct {
	a *group.ZqMatrix
	r *group.ZqVector
}

func NewProductWitness(a *group.ZqMatrix, r *group.ZqVector) (*ProductWitness, error) {
	if a == nil || r == nil {
		return nil, errors.New("NewProductWitness: inputs must not be nil")
	}
	if r.Size() != a.NumColumns() {
		return nil, errors.New("NewProductWitness: need one randomness per column")
	}
	if !a.Group().Equals(r.Group()) {
		return nil, errors.New("NewProductWitness: inputs must share one ring")
	}
	return &ProductWitness{a: a, r: r}, nil
}

// ProductArgument composes a Hadamard argument and a single-value
// product argument. With a single column the Hadamard part and the
// product-vector commitment are omitted.
type ProductArgument struct {
	Cb                 *group.GqElement
	Hadamard           *HadamardArgument
	SingleValueProduct *SingleValueProductArgument
}

// GetProductArgument proves that the committed matrix multiplies to the
// claimed value.
func (s *ArgumentService) GetProductArgument(statement *ProductStatement, witness *ProductWitness) (*ProductArgument, error) {
	if statement == nil || witness == nil {
		return nil, errors.New("GetProductArgument: statement and witness must not be nil")
	}
	m := statement.cA.Size()
	n := witness.a.NumRows()
	if witness.a.NumColumns() != m {
		return nil, errors.New("GetProductArgument: witness and statement dimensions must match")
	}
	if n < 2 {
		return nil, errors.New("GetProductArgument: the matrix must have at least two rows")
	}
	if n > s.commitmentKey.Size() {
		return nil, errors.New("GetProductArgument: witness rows exceed the commitment key size")
	}
	if !statement.cA.Group().Equals(s.gq) {
		return nil, errors.New("GetProductArgument: statement must belong to the service group")
	}
	committedA, err := commitments.GetCommitmentMatrix(witness.a, witness.r, s.commitmentKey)
	if err != nil {
		return nil, err
	}
	if !committedA.Equals(statement.cA) {
		return nil, errors.New("GetProductArgument: witness does not open the statement commitments")
	}
	product := s.zq.One()
	for j := 0; j < m; j++ {
		product = product.Multiply(witness.a.Column(j).Product())
	}
	if !product.Equals(statement.b) {
		return nil, errors.New("GetProductArgument: witness does not multiply to the claimed value")
	}

	if m == 1 {
		svpStatement, err := NewSingleValueProductStatement(statement.cA.Get(0), statement.b)
		if err != nil {
			return nil, err
		}
		svpWitness, err := NewSingleValueProductWitness(witness.a.Column(0), witness.r.Get(0))
		if err != nil {
			return nil, err
		}
		svp, err := s.GetSingleValueProductArgument(svpStatement, svpWitness)
		if err != nil {
			return nil, err
		}
		return &ProductArgument{SingleValueProduct: svp}, nil
	}

	// Row-wise products b_i = prod_j a_{i,j}, committed freshly.
	rowProducts := make([]*group.ZqElement, n)
	for i := 0; i < n; i++ {
		rowProducts[i] = witness.a.Row(i).Product()
	}
	bVector, err := group.NewZqVector(rowProducts)
	if err != nil {
		return nil, err
	}
	sRandom, err := s.zq.RandomElement(s.random)
	if err != nil {
		return nil, err
	}
	cb, err := commitments.GetCommitment(bVector, sRandom, s.commitmentKey)
	if err != nil {
		return nil, err
	}

	hadamardStatement, err := NewHadamardStatement(statement.cA, cb)
	if err != nil {
		return nil, err
	}
	hadamardWitness, err := NewHadamardWitness(witness.a, witness.r, bVector, sRandom)
	if err != nil {
		return nil, err
	}
	hadamard, err := s.GetHadamardArgument(hadamardStatement, hadamardWitness)
	if err != nil {
		return nil, err
	}

	svpStatement, err := NewSingleValueProductStatement(cb, statement.b)
	if err != nil {
		return nil, err
	}
	svpWitness, err := NewSingleValueProductWitness(bVector, sRandom)
	if err != nil {
		return nil, err
	}
	svp, err := s.GetSingleValueProductArgument(svpStatement, svpWitness)
	if err != nil {
		return nil, err
	}

	return &ProductArgument{Cb: cb, Hadamard: hadamard, SingleValueProduct: svp}, nil
}

// VerifyProductArgument mirrors the prover's branch on the column count
// and refuses arguments whose optional parts do not match it.
func (s *ArgumentService) VerifyProductArgument(statement *ProductStatement, argument *ProductArgument) error {
	if statement == nil || argument == nil {
		return errors.New("VerifyProductArgument: statement and argument must not be nil")
	}
	if argument.SingleValueProduct == nil {
		return errors.New("VerifyProductArgument: missing single value product argument")
	}
	m := statement.cA.Size()
	if m == 1 {
		if argument.Cb != nil || argument.Hadamard != nil {
			return errors.New("VerifyProductArgument: a single-column argument must not carry a Hadamard part")
		}
		svpStatement, err := NewSingleValueProductStatement(statement.cA.Get(0), statement.b)
		if err != nil {
			return err
		}
		if err := s.VerifySingleValueProductArgument(svpStatement, argument.SingleValueProduct); err != nil {
			return errors.Wrap(err, "failed to verify Single Value Product Argument")
		}
		return nil
	}
	if argument.Cb == nil || argument.Hadamard == nil {
		return errors.New("VerifyProductArgument: a multi-column argument must carry a Hadamard part")
	}
	hadamardStatement, err := NewHadamardStatement(statement.cA, argument.Cb)
	if err != nil {
		return err
	}
	if err := s.VerifyHadamardArgument(hadamardStatement, argument.Hadamard); err != nil {
		return errors.Wrap(err, "failed to verify Hadamard Argument")
	}
	svpStatement, err := NewSingleValueProductStatement(argument.Cb, statement.b)
	if err != nil {
		return err
	}
	if err := s.VerifySingleValueProductArgument(svpStatement, argument.SingleValueProduct); err != nil {
		return errors.Wrap(err, "failed to verify Single Value Product Argument")
	}
	return nil
}
