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

// ZeroStatement claims that the committed column pairs of c_A and c_B
// satisfy sum_j a_j * b_j = 0 under the bilinear map weighted by y.
type ZeroStatement struct {
	cA *group.GqVector
	cB *group.GqVector
	y  *group.ZqElement
}

func NewZeroStatement(cA, cB *group.GqVector, y *group.ZqElement) (*ZeroStatement, error) {
	if cA == nil || cB == nil || y == nil {
		return nil, errors.New("NewZeroStatement: inputs must not be nil")
	}
	if cA.Size() != cB.Size() {
		return nil, errors.New("NewZeroStatement: commitment vectors must have the same size")
	}
	if !cA.Group().Equals(cB.Group()) {
		return nil, errors.New("NewZeroStatement: commitment vectors must belong to the same group")
	}
	if !cA.Group().HasSameOrderAs(y.Group()) {
		return nil, errors.New("NewZeroStatement: y must match the group order")
	}
	return &ZeroStatement{cA: cA, cB: cB, y: y}, nil
}

// ZeroWitness opens both commitment vectors: column j of a (resp. b) is
// committed by c_A[j] with r[j] (resp. c_B[j] with s[j]).
type ZeroWitness struct {
	a *group.ZqMatrix
	b *group.ZqMatrix
	r *group.ZqVector
	s *group.ZqVector
}

func NewZeroWitness(a, b *group.ZqMatrix, r, s *group.ZqVector) (*ZeroWitness, error) {
	if a == nil || b == nil || r == nil || s == nil {
		return nil, errors.New("NewZeroWitness: inputs must not be nil")
	}
	if a.NumRows() != b.NumRows() || a.NumColumns() != b.NumColumns() {
		return nil, errors.New("NewZeroWitness: matrices must have the same dimensions")
	}
	if r.Size() != a.NumColumns() || s.Size() != a.NumColumns() {
		return nil, errors.New("NewZeroWitness: need one randomness per column")
	}
	if !a.Group().Equals(b.Group()) || !a.Group().Equals(r.Group()) || !a.Group().Equals(s.Group()) {
		return nil, errors.New("NewZeroWitness: inputs must share one ring")
	}
	return &ZeroWitness{a: a, b: b, r: r, s: s}, nil
}

// ZeroArgument is the proof transcript: blinding commitments, the 2m+1
// diagonal commitments, and the challenge responses.
type ZeroArgument struct {
	CA0    *group.GqElement
	CBm    *group.GqElement
	Cd     *group.GqVector
	APrime *group.ZqVector
	BPrime *group.ZqVector
	RPrime *group.ZqElement
	SPrime *group.ZqElement
	TPrime *group.ZqElement
}

// GetZeroArgument proves the zero statement. The witness must open the
// statement's commitments and satisfy the bilinear relation.
func (s *ArgumentService) GetZeroArgument(statement *ZeroStatement, witness *ZeroWitness) (*ZeroArgument, error) {
	if statement == nil || witness == nil {
		return nil, errors.New("GetZeroArgument: statement and witness must not be nil")
	}
	m := statement.cA.Size()
	n := witness.a.NumRows()
	if witness.a.NumColumns() != m {
		return nil, errors.New("GetZeroArgument: witness and statement dimensions must match")
	}
	if !statement.cA.Group().Equals(s.gq) {
		return nil, errors.New("GetZeroArgument: statement must belong to the service group")
	}
	if n > s.commitmentKey.Size() {
		return nil, errors.New("GetZeroArgument: witness rows exceed the commitment key size")
	}
	cA, err := commitments.GetCommitmentMatrix(witness.a, witness.r, s.commitmentKey)
	if err != nil {
		return nil, err
	}
	cB, err := commitments.GetCommitmentMatrix(witness.b, witness.s, s.commitmentKey)
	if err != nil {
		return nil, err
	}
	if !cA.Equals(statement.cA) || !cB.Equals(statement.cB) {
		return nil, errors.New("GetZeroArgument: witness does not open the statement commitments")
	}
	sum := s.zq.Zero()
	for j := 0; j < m; j++ {
		sum = sum.Add(starMap(witness.a.Column(j), witness.b.Column(j), statement.y))
	}
	if sum.Value().Sign() != 0 {
		return nil, errors.New("GetZeroArgument: witness does not satisfy the bilinear relation")
	}

	a0, err := s.zq.RandomElementVector(n, s.random)
	if err != nil {
		return nil, err
	}
	bm, err := s.zq.RandomElementVector(n, s.random)
	if err != nil {
		return nil, err
	}
	r0, err := s.zq.RandomElement(s.random)
	if err != nil {
		return nil, err
	}
	sm, err := s.zq.RandomElement(s.random)
	if err != nil {
		return nil, err
	}
	cA0, err := commitments.GetCommitment(a0, r0, s.commitmentKey)
	if err != nil {
		return nil, err
	}
	cBm, err := commitments.GetCommitment(bm, sm, s.commitmentKey)
	if err != nil {
		return nil, err
	}

	// Augmented columns: the a-side blinding leads, the b-side blinding
	// trails, so the statement diagonal sits at index m+1 of the 2m+1
	// diagonal sums.
	aCols := make([]*group.ZqVector, m+1)
	bCols := make([]*group.ZqVector, m+1)
	aCols[0] = a0
	bCols[m] = bm
	for j := 0; j < m; j++ {
		aCols[j+1] = witness.a.Column(j)
		bCols[j] = witness.b.Column(j)
	}
	dElements := make([]*group.ZqElement, 2*m+1)
	for k := 0; k <= 2*m; k++ {
		dK := s.zq.Zero()
		for i := 0; i <= m; i++ {
			j := i - k + m
			if j < 0 || m < j {
				continue
			}
			dK = dK.Add(starMap(aCols[i], bCols[j], statement.y))
		}
		dElements[k] = dK
	}
	tElements := make([]*group.ZqElement, 2*m+1)
	for k := range tElements {
		if k == m+1 {
			tElements[k] = s.zq.Zero()
			continue
		}
		t, err := s.zq.RandomElement(s.random)
		if err != nil {
			return nil, err
		}
		tElements[k] = t
	}
	d, err := group.NewZqVector(dElements)
	if err != nil {
		return nil, err
	}
	t, err := group.NewZqVector(tElements)
	if err != nil {
		return nil, err
	}
	cd, err := commitments.GetCommitmentVector(d, t, s.commitmentKey)
	if err != nil {
		return nil, err
	}

	x, err := s.zeroChallenge(statement, cA0, cBm, cd)
	if err != nil {
		return nil, err
	}
	xPowers := powersOf(x, 2*m+1)

	aPrime := aCols[0]
	rPrime := r0
	rAug := append([]*group.ZqElement{r0}, witness.r.Elements()...)
	for i := 1; i <= m; i++ {
		aPrime = aPrime.Add(aCols[i].ScalarMultiply(xPowers[i]))
		rPrime = rPrime.Add(rAug[i].Multiply(xPowers[i]))
	}
	sAug := append(witness.s.Elements(), sm)
	bPrime := bCols[0].ScalarMultiply(xPowers[m])
	sPrime := sAug[0].Multiply(xPowers[m])
	for j := 1; j <= m; j++ {
		bPrime = bPrime.Add(bCols[j].ScalarMultiply(xPowers[m-j]))
		sPrime = sPrime.Add(sAug[j].Multiply(xPowers[m-j]))
	}
	tPrime := s.zq.Zero()
	for k := 0; k <= 2*m; k++ {
		tPrime = tPrime.Add(tElements[k].Multiply(xPowers[k]))
	}

	return &ZeroArgument{
		CA0:    cA0,
		CBm:    cBm,
		Cd:     cd,
		APrime: aPrime,
		BPrime: bPrime,
		RPrime: rPrime,
		SPrime: sPrime,
		TPrime: tPrime,
	}, nil
}

// VerifyZeroArgument checks the four verification equations. A nil
// return means the argument is accepted.
func (s *ArgumentService) VerifyZeroArgument(statement *ZeroStatement, argument *ZeroArgument) error {
	if statement == nil || argument == nil {
		return errors.New("VerifyZeroArgument: statement and argument must not be nil")
	}
	m := statement.cA.Size()
	if argument.Cd == nil || argument.Cd.Size() != 2*m+1 {
		return errors.New("VerifyZeroArgument: c_d must have 2m+1 entries")
	}
	if argument.APrime == nil || argument.BPrime == nil || argument.APrime.Size() != argument.BPrime.Size() {
		return errors.New("VerifyZeroArgument: response vectors must have the same size")
	}
	if argument.APrime.Size() > s.commitmentKey.Size() {
		return errors.New("VerifyZeroArgument: response vectors exceed the commitment key size")
	}

	x, err := s.zeroChallenge(statement, argument.CA0, argument.CBm, argument.Cd)
	if err != nil {
		return err
	}
	xPowers := powersOf(x, 2*m+1)

	if !argument.Cd.Get(m + 1).IsIdentity() {
		return errors.New("zero argument: commitment to the statement diagonal is not the identity")
	}

	cAProduct := argument.CA0
	for i := 1; i <= m; i++ {
		cAProduct = cAProduct.Multiply(statement.cA.Get(i - 1).Exponentiate(xPowers[i]))
	}
	committedA, err := commitments.GetCommitment(argument.APrime, argument.RPrime, s.commitmentKey)
	if err != nil {
		return err
	}
	if !cAProduct.Equals(committedA) {
		return errors.New("zero argument: the a-side commitment equation does not hold")
	}

	cBProduct := argument.CBm
	for j := 0; j < m; j++ {
		cBProduct = cBProduct.Multiply(statement.cB.Get(j).Exponentiate(xPowers[m-j]))
	}
	committedB, err := commitments.GetCommitment(argument.BPrime, argument.SPrime, s.commitmentKey)
	if err != nil {
		return err
	}
	if !cBProduct.Equals(committedB) {
		return errors.New("zero argument: the b-side commitment equation does not hold")
	}

	cdProduct := exponentiatedProduct(argument.Cd, xPowers)
	bilinear := starMap(argument.APrime, argument.BPrime, statement.y)
	committedD, err := s.singleCommitment(bilinear, argument.TPrime)
	if err != nil {
		return err
	}
	if !cdProduct.Equals(committedD) {
		return errors.New("zero argument: the diagonal equation does not hold")
	}
	return nil
}

func (s *ArgumentService) zeroChallenge(statement *ZeroStatement, cA0, cBm *group.GqElement, cd *group.GqVector) (*group.ZqElement, error) {
	return s.deriveChallenge(
		hashableInt(s.gq.P()),
		hashableInt(s.gq.Q()),
		hashableGqVector(statement.cA),
		hashableGqVector(statement.cB),
		hashableZqElement(statement.y),
		hashableGqElement(cA0),
		hashableGqElement(cBm),
		hashableGqVector(cd),
	)
}
