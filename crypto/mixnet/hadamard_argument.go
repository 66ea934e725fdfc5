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
	"github.com/openvote/mixnet/crypto/hashing"
)

// HadamardStatement claims that the vector committed by c_b is the
// element-wise product of the columns committed by c_A.
type HadamardStatement struct {
	cA *group.GqVector
	cb *group.GqElement
}

func NewHadamardStatement(cA *group.GqVector, cb *group.GqElement) (*HadamardStatement, error) {
	if cA == nil || cb == nil {
		return nil, errors.New("NewHadamardStatement: inputs must not be nil")
	}
	if cA.Size() < 2 {
		return nil, errors.New("NewHadamardStatement: need at least two column commitments")
	}
	if !cA.Group().Equals(cb.Group()) {
		return nil, errors.New("NewHadamardStatement: commitments must belong to the same group")
	}
	return &HadamardStatement{cA: cA, cb: cb}, nil
}

// HadamardWitness opens the statement: matrix a with column randomness
// r, product vector b with randomness s.
type HadamardWitness struct {
	a *group.ZqMatrix
	r *group.ZqVector
	b *group.ZqVector
	s *group.ZqElement
}

func NewHadamardWitness(a *group.ZqMatrix, r *group.ZqVector, b *group.ZqVector, s *group.ZqElement) (*HadamardWitness, error) {
	if a == nil || r == nil || b == nil || s == nil {
		return nil, errors.New("NewHadamardWitness: inputs must not be nil")
	}
	if r.Size() != a.NumColumns() {
		return nil, errors.New("NewHadamardWitness: need one randomness per column")
	}
	if b.Size() != a.NumRows() {
		return nil, errors.New("NewHadamardWitness: product vector must match the matrix rows")
	}
	if !a.Group().Equals(r.Group()) || !a.Group().Equals(b.Group()) || !a.Group().Equals(s.Group()) {
		return nil, errors.New("NewHadamardWitness: inputs must share one ring")
	}
	return &HadamardWitness{a: a, r: r, b: b, s: s}, nil
}

// HadamardArgument carries the intermediate column commitments and the
// delegated zero argument.
type HadamardArgument struct {
	CB   *group.GqVector
	Zero *ZeroArgument
}

// GetHadamardArgument proves the Hadamard statement by committing to the
// running column products and reducing to a zero argument.
func (s *ArgumentService) GetHadamardArgument(statement *HadamardStatement, witness *HadamardWitness) (*HadamardArgument, error) {
	if statement == nil || witness == nil {
		return nil, errors.New("GetHadamardArgument: statement and witness must not be nil")
	}
	m := statement.cA.Size()
	if witness.a.NumColumns() != m {
		return nil, errors.New("GetHadamardArgument: witness and statement dimensions must match")
	}
	if !statement.cA.Group().Equals(s.gq) {
		return nil, errors.New("GetHadamardArgument: statement must belong to the service group")
	}
	n := witness.a.NumRows()
	if n > s.commitmentKey.Size() {
		return nil, errors.New("GetHadamardArgument: witness rows exceed the commitment key size")
	}
	committedA, err := commitments.GetCommitmentMatrix(witness.a, witness.r, s.commitmentKey)
	if err != nil {
		return nil, err
	}
	if !committedA.Equals(statement.cA) {
		return nil, errors.New("GetHadamardArgument: witness does not open the column commitments")
	}
	committedB, err := commitments.GetCommitment(witness.b, witness.s, s.commitmentKey)
	if err != nil {
		return nil, err
	}
	if !committedB.Equals(statement.cb) {
		return nil, errors.New("GetHadamardArgument: witness does not open the product commitment")
	}

	// Running column products B_0 = A_0, B_j = B_{j-1} o A_j.
	bCols := make([]*group.ZqVector, m)
	bCols[0] = witness.a.Column(0)
	for j := 1; j < m; j++ {
		bCols[j] = bCols[j-1].HadamardProduct(witness.a.Column(j))
	}
	if !bCols[m-1].Equals(witness.b) {
		return nil, errors.New("GetHadamardArgument: witness product vector does not match the columns")
	}

	sElements := make([]*group.ZqElement, m)
	cBElements := make([]*group.GqElement, m)
	sElements[0] = witness.r.Get(0)
	cBElements[0] = statement.cA.Get(0)
	sElements[m-1] = witness.s
	cBElements[m-1] = statement.cb
	for j := 1; j < m-1; j++ {
		sj, err := s.zq.RandomElement(s.random)
		if err != nil {
			return nil, err
		}
		sElements[j] = sj
		cBj, err := commitments.GetCommitment(bCols[j], sj, s.commitmentKey)
		if err != nil {
			return nil, err
		}
		cBElements[j] = cBj
	}
	cB, err := group.NewGqVector(cBElements)
	if err != nil {
		return nil, err
	}

	x, y, err := s.hadamardChallenges(statement, cB)
	if err != nil {
		return nil, err
	}
	xPowers := powersOf(x, m)

	zeroStatement, err := s.hadamardZeroStatement(statement, cB, x, y, n)
	if err != nil {
		return nil, err
	}

	// Derived witness columns: (A_1..A_{m-1}, -1) against the x-weighted
	// running products and their x-weighted sum.
	minusOne := s.zq.Zero().Subtract(s.zq.One())
	minusOnes := constantVector(minusOne, n)
	zero := s.zq.Zero()
	aPrimeCols := make([]*group.ZqVector, m)
	rPrime := make([]*group.ZqElement, m)
	bPrimeCols := make([]*group.ZqVector, m)
	sPrime := make([]*group.ZqElement, m)
	for j := 0; j < m-1; j++ {
		aPrimeCols[j] = witness.a.Column(j + 1)
		rPrime[j] = witness.r.Get(j + 1)
		xPower := xPowers[j].Multiply(x) // x^{j+1}
		bPrimeCols[j] = bCols[j].ScalarMultiply(xPower)
		sPrime[j] = sElements[j].Multiply(xPower)
	}
	aPrimeCols[m-1] = minusOnes
	rPrime[m-1] = zero
	dSum := bCols[1].ScalarMultiply(xPowers[1])
	sSum := sElements[1].Multiply(xPowers[1])
	for j := 2; j < m; j++ {
		dSum = dSum.Add(bCols[j].ScalarMultiply(xPowers[j]))
		sSum = sSum.Add(sElements[j].Multiply(xPowers[j]))
	}
	bPrimeCols[m-1] = dSum
	sPrime[m-1] = sSum

	aPrimeMatrix, err := group.NewZqMatrixFromColumnVectors(aPrimeCols)
	if err != nil {
		return nil, err
	}
	bPrimeMatrix, err := group.NewZqMatrixFromColumnVectors(bPrimeCols)
	if err != nil {
		return nil, err
	}
	rPrimeVector, err := group.NewZqVector(rPrime)
	if err != nil {
		return nil, err
	}
	sPrimeVector, err := group.NewZqVector(sPrime)
	if err != nil {
		return nil, err
	}
	zeroWitness, err := NewZeroWitness(aPrimeMatrix, bPrimeMatrix, rPrimeVector, sPrimeVector)
	if err != nil {
		return nil, err
	}
	zeroArgument, err := s.GetZeroArgument(zeroStatement, zeroWitness)
	if err != nil {
		return nil, err
	}
	return &HadamardArgument{CB: cB, Zero: zeroArgument}, nil
}

// VerifyHadamardArgument rebuilds the derived zero statement and
// delegates to the zero argument verifier.
func (s *ArgumentService) VerifyHadamardArgument(statement *HadamardStatement, argument *HadamardArgument) error {
	if statement == nil || argument == nil {
		return errors.New("VerifyHadamardArgument: statement and argument must not be nil")
	}
	m := statement.cA.Size()
	if argument.CB == nil || argument.CB.Size() != m {
		return errors.New("VerifyHadamardArgument: c_B must have one entry per column")
	}
	if argument.Zero == nil || argument.Zero.APrime == nil {
		return errors.New("VerifyHadamardArgument: missing zero argument")
	}
	if !argument.CB.Get(0).Equals(statement.cA.Get(0)) {
		return errors.New("hadamard argument: c_B must start at the first column commitment")
	}
	if !argument.CB.Get(m - 1).Equals(statement.cb) {
		return errors.New("hadamard argument: c_B must end at the product commitment")
	}
	x, y, err := s.hadamardChallenges(statement, argument.CB)
	if err != nil {
		return err
	}
	n := argument.Zero.APrime.Size()
	zeroStatement, err := s.hadamardZeroStatement(statement, argument.CB, x, y, n)
	if err != nil {
		return err
	}
	if err := s.VerifyZeroArgument(zeroStatement, argument.Zero); err != nil {
		return errors.Wrap(err, "failed to verify Zero Argument")
	}
	return nil
}

// hadamardZeroStatement builds the derived statement shared by prover
// and verifier: (c_A1..c_Am-1, commit(-1;0)) against
// (c_B0^x..c_Bm-2^{x^{m-1}}, prod c_Bj^{x^j}).
func (s *ArgumentService) hadamardZeroStatement(
	statement *HadamardStatement,
	cB *group.GqVector,
	x, y *group.ZqElement,
	n int,
) (*ZeroStatement, error) {
	m := statement.cA.Size()
	if n <= 0 || n > s.commitmentKey.Size() {
		return nil, errors.New("hadamardZeroStatement: dimension exceeds the commitment key size")
	}
	xPowers := powersOf(x, m)
	minusOne := s.zq.Zero().Subtract(s.zq.One())
	cMinusOne, err := commitments.GetCommitment(constantVector(minusOne, n), s.zq.Zero(), s.commitmentKey)
	if err != nil {
		return nil, err
	}
	cAPrime := make([]*group.GqElement, m)
	cBPrime := make([]*group.GqElement, m)
	for j := 0; j < m-1; j++ {
		cAPrime[j] = statement.cA.Get(j + 1)
		cBPrime[j] = cB.Get(j).Exponentiate(xPowers[j].Multiply(x))
	}
	cAPrime[m-1] = cMinusOne
	cDSum := cB.Get(1).Exponentiate(xPowers[1])
	for j := 2; j < m; j++ {
		cDSum = cDSum.Multiply(cB.Get(j).Exponentiate(xPowers[j]))
	}
	cBPrime[m-1] = cDSum
	cAPrimeVector, err := group.NewGqVector(cAPrime)
	if err != nil {
		return nil, err
	}
	cBPrimeVector, err := group.NewGqVector(cBPrime)
	if err != nil {
		return nil, err
	}
	return NewZeroStatement(cAPrimeVector, cBPrimeVector, y)
}

func (s *ArgumentService) hadamardChallenges(statement *HadamardStatement, cB *group.GqVector) (x, y *group.ZqElement, err error) {
	transcript := []hashing.Hashable{
		hashableInt(s.gq.P()),
		hashableInt(s.gq.Q()),
		hashableGqVector(statement.cA),
		hashableGqElement(statement.cb),
		hashableGqVector(cB),
	}
	x, err = s.deriveChallenge(transcript...)
	if err != nil {
		return nil, nil, err
	}
	y, err = s.deriveChallenge(append(transcript, hashing.HashableString("y"))...)
	if err != nil {
		return nil, nil, err
	}
	return x, y, nil
}
