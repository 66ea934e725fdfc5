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

// SingleValueProductStatement claims that the vector committed by c_a
// multiplies to b.
type SingleValueProductStatement struct {
	ca *group.GqElement
	b  *group.ZqElement
}

func NewSingleValueProductStatement(ca *group.GqElement, b *group.ZqElement) (*SingleValueProductStatement, error) {
	if ca == nil || b == nil {
		return nil, errors.New("NewSingleValueProductStatement: inputs must not be nil")
	}
	if !ca.Group().HasSameOrderAs(b.Group()) {
		return nil, errors.New("NewSingleValueProductStatement: b must match the group order")
	}
	return &SingleValueProductStatement{ca: ca, b: b}, nil
}

// SingleValueProductWitness opens c_a: a vector a of at least two
// elements with randomness r.
type SingleValueProductWitness struct {
	a *group.ZqVector
	r *group.ZqElement
}

func NewSingleValueProductWitness(a *group.ZqVector, r *group.ZqElement) (*SingleValueProductWitness, error) {
	if a == nil || r == nil {
		return nil, errors.New("NewSingleValueProductWitness: inputs must not be nil")
	}
	if a.Size() < 2 {
		return nil, errors.New("NewSingleValueProductWitness: the vector must have at least two elements")
	}
	if !a.Group().Equals(r.Group()) {
		return nil, errors.New("NewSingleValueProductWitness: inputs must share one ring")
	}
	return &SingleValueProductWitness{a: a, r: r}, nil
}

// SingleValueProductArgument is the proof transcript.
type SingleValueProductArgument struct {
	Cd          *group.GqElement
	CLowerDelta *group.GqElement
	CUpperDelta *group.GqElement
	ATilde      *group.ZqVector
	BTilde      *group.ZqVector
	RTilde      *group.ZqElement
	STilde      *group.ZqElement
}

// GetSingleValueProductArgument proves that the committed vector
// multiplies to the claimed value.
func (s *ArgumentService) GetSingleValueProductArgument(
	statement *SingleValueProductStatement,
	witness *SingleValueProductWitness,
) (*SingleValueProductArgument, error) {
	if statement == nil || witness == nil {
		return nil, errors.New("GetSingleValueProductArgument: statement and witness must not be nil")
	}
	if !statement.ca.Group().Equals(s.gq) {
		return nil, errors.New("GetSingleValueProductArgument: statement must belong to the service group")
	}
	n := witness.a.Size()
	if n > s.commitmentKey.Size() {
		return nil, errors.New("GetSingleValueProductArgument: witness exceeds the commitment key size")
	}
	committed, err := commitments.GetCommitment(witness.a, witness.r, s.commitmentKey)
	if err != nil {
		return nil, err
	}
	if !committed.Equals(statement.ca) {
		return nil, errors.New("GetSingleValueProductArgument: witness does not open the statement commitment")
	}
	if !witness.a.Product().Equals(statement.b) {
		return nil, errors.New("GetSingleValueProductArgument: witness does not multiply to the claimed value")
	}

	// Running products b_i = a_0 * ... * a_i.
	bs := make([]*group.ZqElement, n)
	bs[0] = witness.a.Get(0)
	for i := 1; i < n; i++ {
		bs[i] = bs[i-1].Multiply(witness.a.Get(i))
	}

	d, err := s.zq.RandomElementVector(n, s.random)
	if err != nil {
		return nil, err
	}
	rd, err := s.zq.RandomElement(s.random)
	if err != nil {
		return nil, err
	}
	deltas := make([]*group.ZqElement, n)
	deltas[0] = d.Get(0)
	deltas[n-1] = s.zq.Zero()
	for i := 1; i < n-1; i++ {
		delta, err := s.zq.RandomElement(s.random)
		if err != nil {
			return nil, err
		}
		deltas[i] = delta
	}
	s0, err := s.zq.RandomElement(s.random)
	if err != nil {
		return nil, err
	}
	sx, err := s.zq.RandomElement(s.random)
	if err != nil {
		return nil, err
	}

	cd, err := commitments.GetCommitment(d, rd, s.commitmentKey)
	if err != nil {
		return nil, err
	}
	lower := make([]*group.ZqElement, n-1)
	upper := make([]*group.ZqElement, n-1)
	for i := 0; i < n-1; i++ {
		lower[i] = deltas[i].Negate().Multiply(d.Get(i + 1))
		upper[i] = deltas[i+1].
			Subtract(witness.a.Get(i + 1).Multiply(deltas[i])).
			Subtract(bs[i].Multiply(d.Get(i + 1)))
	}
	lowerVector, err := group.NewZqVector(lower)
	if err != nil {
		return nil, err
	}
	upperVector, err := group.NewZqVector(upper)
	if err != nil {
		return nil, err
	}
	cLower, err := commitments.GetCommitment(lowerVector, s0, s.commitmentKey)
	if err != nil {
		return nil, err
	}
	cUpper, err := commitments.GetCommitment(upperVector, sx, s.commitmentKey)
	if err != nil {
		return nil, err
	}

	x, err := s.singleValueProductChallenge(statement, cd, cLower, cUpper)
	if err != nil {
		return nil, err
	}

	aTilde := make([]*group.ZqElement, n)
	bTilde := make([]*group.ZqElement, n)
	for i := 0; i < n; i++ {
		aTilde[i] = x.Multiply(witness.a.Get(i)).Add(d.Get(i))
		bTilde[i] = x.Multiply(bs[i]).Add(deltas[i])
	}
	aTildeVector, err := group.NewZqVector(aTilde)
	if err != nil {
		return nil, err
	}
	bTildeVector, err := group.NewZqVector(bTilde)
	if err != nil {
		return nil, err
	}

	return &SingleValueProductArgument{
		Cd:          cd,
		CLowerDelta: cLower,
		CUpperDelta: cUpper,
		ATilde:      aTildeVector,
		BTilde:      bTildeVector,
		RTilde:      x.Multiply(witness.r).Add(rd),
		STilde:      x.Multiply(sx).Add(s0),
	}, nil
}

// VerifySingleValueProductArgument checks the four verification
// relations.
func (s *ArgumentService) VerifySingleValueProductArgument(
	statement *SingleValueProductStatement,
	argument *SingleValueProductArgument,
) error {
	if statement == nil || argument == nil {
		return errors.New("VerifySingleValueProductArgument: statement and argument must not be nil")
	}
	if argument.ATilde == nil || argument.BTilde == nil {
		return errors.New("VerifySingleValueProductArgument: response vectors must not be nil")
	}
	n := argument.ATilde.Size()
	if n < 2 || argument.BTilde.Size() != n {
		return errors.New("VerifySingleValueProductArgument: response vectors must have equal size of at least 2")
	}
	if n > s.commitmentKey.Size() {
		return errors.New("VerifySingleValueProductArgument: response vectors exceed the commitment key size")
	}

	x, err := s.singleValueProductChallenge(statement, argument.Cd, argument.CLowerDelta, argument.CUpperDelta)
	if err != nil {
		return err
	}

	left := statement.ca.Exponentiate(x).Multiply(argument.Cd)
	committedA, err := commitments.GetCommitment(argument.ATilde, argument.RTilde, s.commitmentKey)
	if err != nil {
		return err
	}
	if !left.Equals(committedA) {
		return errors.New("single value product argument: the vector commitment equation does not hold")
	}

	crossTerms := make([]*group.ZqElement, n-1)
	for i := 0; i < n-1; i++ {
		crossTerms[i] = x.Multiply(argument.BTilde.Get(i + 1)).
			Subtract(argument.BTilde.Get(i).Multiply(argument.ATilde.Get(i + 1)))
	}
	crossVector, err := group.NewZqVector(crossTerms)
	if err != nil {
		return err
	}
	left = argument.CUpperDelta.Exponentiate(x).Multiply(argument.CLowerDelta)
	committedCross, err := commitments.GetCommitment(crossVector, argument.STilde, s.commitmentKey)
	if err != nil {
		return err
	}
	if !left.Equals(committedCross) {
		return errors.New("single value product argument: the cross-term equation does not hold")
	}

	if !argument.BTilde.Get(0).Equals(argument.ATilde.Get(0)) {
		return errors.New("single value product argument: the first running product is not anchored")
	}
	if !argument.BTilde.Get(n - 1).Equals(x.Multiply(statement.b)) {
		return errors.New("single value product argument: the last running product does not match the claimed value")
	}
	return nil
}

func (s *ArgumentService) singleValueProductChallenge(
	statement *SingleValueProductStatement,
	cd, cLower, cUpper *group.GqElement,
) (*group.ZqElement, error) {
	return s.deriveChallenge(
		hashableInt(s.gq.P()),
		hashableInt(s.gq.Q()),
		hashableGqElement(statement.ca),
		hashableZqElement(statement.b),
		hashableGqElement(cd),
		hashableGqElement(cLower),
		hashableGqElement(cUpper),
	)
}
