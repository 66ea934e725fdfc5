// Copyright © 2026 OpenVote
//
// This file is part of OpenVote. The full OpenVote copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package mixnet

import (
	"github.com/pkg/errors"

	"github.com/openvote/mixnet/crypto/commitments"
	"github.com/openvote/mixnet/crypto/elgamal"
	"github.com/openvote/mixnet/crypto/group"
)

// MultiExponentiationStatement claims that the ciphertext c equals a
// re-encryption of the diagonal product of the ciphertext matrix rows
// exponentiated with the exponent columns committed by c_A.
type MultiExponentiationStatement struct {
	cMatrix *elgamal.CiphertextMatrix
	c       *elgamal.Ciphertext
	cA      *group.GqVector
}

func NewMultiExponentiationStatement(
	cMatrix *elgamal.CiphertextMatrix,
	c *elgamal.Ciphertext,
	cA *group.GqVector,
) (*MultiExponentiationStatement, error) {
	if cMatrix == nil || c == nil || cA == nil {
		return nil, errors.New("NewMultiExponentiationStatement: inputs must not be nil")
	}
	if cMatrix.NumRows() != cA.Size() {
		return nil, errors.New("NewMultiExponentiationStatement: need one commitment per matrix row")
	}
	if !cMatrix.Group().Equals(c.Group()) || !cMatrix.Group().Equals(cA.Group()) {
		return nil, errors.New("NewMultiExponentiationStatement: inputs must belong to the same group")
	}
	if cMatrix.ElementSize() != c.Size() {
		return nil, errors.New("NewMultiExponentiationStatement: ciphertext sizes must match")
	}
	return &MultiExponentiationStatement{cMatrix: cMatrix, c: c, cA: cA}, nil
}

// MultiExponentiationWitness opens c_A and the re-encryption exponent.
type MultiExponentiationWitness struct {
	a   *group.ZqMatrix
	r   *group.ZqVector
	rho *group.ZqElement
}

func NewMultiExponentiationWitness(a *group.ZqMatrix, r *group.ZqVector, rho *group.ZqElement) (*MultiExponentiationWitness, error) {
	if a == nil || r == nil || rho == nil {
		return nil, errors.New("NewMultiExponentiationWitness: inputs must not be nil")
	}
	if r.Size() != a.NumColumns() {
		return nil, errors.New("NewMultiExponentiationWitness: need one randomness per column")
	}
	if !a.Group().Equals(r.Group()) || !a.Group().Equals(rho.Group()) {
		return nil, errors.New("NewMultiExponentiationWitness: inputs must share one ring")
	}
	return &MultiExponentiationWitness{a: a, r: r, rho: rho}, nil
}

// MultiExponentiationArgument is the proof transcript: the blinding
// column commitment, the 2m scalar commitments and blinded diagonal
// ciphertexts, and the challenge responses.
type MultiExponentiationArgument struct {
	CA0    *group.GqElement
	CB     *group.GqVector
	E      *elgamal.CiphertextVector
	ATilde *group.ZqVector
	R      *group.ZqElement
	B      *group.ZqElement
	S      *group.ZqElement
	Tau    *group.ZqElement
}

// GetMultiExponentiationArgument proves the diagonal-product relation.
func (s *ArgumentService) GetMultiExponentiationArgument(
	statement *MultiExponentiationStatement,
	witness *MultiExponentiationWitness,
) (*MultiExponentiationArgument, error) {
	if statement == nil || witness == nil {
		return nil, errors.New("GetMultiExponentiationArgument: statement and witness must not be nil")
	}
	m := statement.cMatrix.NumRows()
	n := statement.cMatrix.NumColumns()
	l := statement.cMatrix.ElementSize()
	if witness.a.NumRows() != n || witness.a.NumColumns() != m {
		return nil, errors.New("GetMultiExponentiationArgument: witness and statement dimensions must match")
	}
	if !statement.cMatrix.Group().Equals(s.gq) {
		return nil, errors.New("GetMultiExponentiationArgument: statement must belong to the service group")
	}
	if n > s.commitmentKey.Size() {
		return nil, errors.New("GetMultiExponentiationArgument: witness rows exceed the commitment key size")
	}
	if l > s.publicKey.Size() {
		return nil, errors.New("GetMultiExponentiationArgument: ciphertexts do not fit the public key")
	}
	committedA, err := commitments.GetCommitmentMatrix(witness.a, witness.r, s.commitmentKey)
	if err != nil {
		return nil, err
	}
	if !committedA.Equals(statement.cA) {
		return nil, errors.New("GetMultiExponentiationArgument: witness does not open the statement commitments")
	}
	recomputed, err := s.reEncryptedDiagonal(statement.cMatrix, witness)
	if err != nil {
		return nil, err
	}
	if !recomputed.Equals(statement.c) {
		return nil, errors.New("GetMultiExponentiationArgument: witness does not satisfy the ciphertext relation")
	}

	a0, err := s.zq.RandomElementVector(n, s.random)
	if err != nil {
		return nil, err
	}
	r0, err := s.zq.RandomElement(s.random)
	if err != nil {
		return nil, err
	}
	cA0, err := commitments.GetCommitment(a0, r0, s.commitmentKey)
	if err != nil {
		return nil, err
	}

	bs := make([]*group.ZqElement, 2*m)
	ss := make([]*group.ZqElement, 2*m)
	taus := make([]*group.ZqElement, 2*m)
	for k := range bs {
		if k == m {
			bs[k] = s.zq.Zero()
			ss[k] = s.zq.Zero()
			taus[k] = witness.rho
			continue
		}
		if bs[k], err = s.zq.RandomElement(s.random); err != nil {
			return nil, err
		}
		if ss[k], err = s.zq.RandomElement(s.random); err != nil {
			return nil, err
		}
		if taus[k], err = s.zq.RandomElement(s.random); err != nil {
			return nil, err
		}
	}
	bVector, err := group.NewZqVector(bs)
	if err != nil {
		return nil, err
	}
	sVector, err := group.NewZqVector(ss)
	if err != nil {
		return nil, err
	}
	cB, err := commitments.GetCommitmentVector(bVector, sVector, s.commitmentKey)
	if err != nil {
		return nil, err
	}

	diagonals, err := s.diagonalProducts(statement.cMatrix, a0, witness.a)
	if err != nil {
		return nil, err
	}
	es := make([]*elgamal.Ciphertext, 2*m)
	generator := s.gq.Generator()
	for k := 0; k < 2*m; k++ {
		message, err := elgamal.ConstantMessage(generator.Exponentiate(bs[k]), l)
		if err != nil {
			return nil, err
		}
		blinding, err := elgamal.GetCiphertext(message, taus[k], s.publicKey)
		if err != nil {
			return nil, err
		}
		es[k] = blinding.Multiply(diagonals[k])
	}
	e, err := elgamal.NewCiphertextVector(es)
	if err != nil {
		return nil, err
	}

	x, err := s.multiExponentiationChallenge(statement, cA0, cB, e)
	if err != nil {
		return nil, err
	}
	xPowers := powersOf(x, 2*m)

	aTilde := a0
	rTilde := r0
	for i := 1; i <= m; i++ {
		aTilde = aTilde.Add(witness.a.Column(i - 1).ScalarMultiply(xPowers[i]))
		rTilde = rTilde.Add(witness.r.Get(i - 1).Multiply(xPowers[i]))
	}
	bTilde := s.zq.Zero()
	sTilde := s.zq.Zero()
	tauTilde := s.zq.Zero()
	for k := 0; k < 2*m; k++ {
		bTilde = bTilde.Add(bs[k].Multiply(xPowers[k]))
		sTilde = sTilde.Add(ss[k].Multiply(xPowers[k]))
		tauTilde = tauTilde.Add(taus[k].Multiply(xPowers[k]))
	}

	return &MultiExponentiationArgument{
		CA0:    cA0,
		CB:     cB,
		E:      e,
		ATilde: aTilde,
		R:      rTilde,
		B:      bTilde,
		S:      sTilde,
		Tau:    tauTilde,
	}, nil
}

// VerifyMultiExponentiationArgument checks the five verification
// equations, the critical one being E_m = c.
func (s *ArgumentService) VerifyMultiExponentiationArgument(
	statement *MultiExponentiationStatement,
	argument *MultiExponentiationArgument,
) error {
	if statement == nil || argument == nil {
		return errors.New("VerifyMultiExponentiationArgument: statement and argument must not be nil")
	}
	m := statement.cMatrix.NumRows()
	n := statement.cMatrix.NumColumns()
	l := statement.cMatrix.ElementSize()
	if argument.CB == nil || argument.CB.Size() != 2*m {
		return errors.New("VerifyMultiExponentiationArgument: c_B must have 2m entries")
	}
	if argument.E == nil || argument.E.Size() != 2*m {
		return errors.New("VerifyMultiExponentiationArgument: E must have 2m entries")
	}
	if argument.ATilde == nil || argument.ATilde.Size() != n {
		return errors.New("VerifyMultiExponentiationArgument: the response vector must match the matrix columns")
	}
	if l > s.publicKey.Size() {
		return errors.New("VerifyMultiExponentiationArgument: ciphertexts do not fit the public key")
	}

	x, err := s.multiExponentiationChallenge(statement, argument.CA0, argument.CB, argument.E)
	if err != nil {
		return err
	}
	xPowers := powersOf(x, 2*m)

	if !argument.E.Get(m).Equals(statement.c) {
		return errors.New("multi-exponentiation argument: E_m does not equal the statement ciphertext")
	}
	if !argument.CB.Get(m).IsIdentity() {
		return errors.New("multi-exponentiation argument: c_B at index m is not the identity commitment")
	}

	cAProduct := argument.CA0
	for i := 1; i <= m; i++ {
		cAProduct = cAProduct.Multiply(statement.cA.Get(i - 1).Exponentiate(xPowers[i]))
	}
	committedA, err := commitments.GetCommitment(argument.ATilde, argument.R, s.commitmentKey)
	if err != nil {
		return err
	}
	if !cAProduct.Equals(committedA) {
		return errors.New("multi-exponentiation argument: the exponent commitment equation does not hold")
	}

	cBProduct := exponentiatedProduct(argument.CB, xPowers)
	committedB, err := s.singleCommitment(argument.B, argument.S)
	if err != nil {
		return err
	}
	if !cBProduct.Equals(committedB) {
		return errors.New("multi-exponentiation argument: the scalar commitment equation does not hold")
	}

	eProduct := argument.E.Get(0)
	for k := 1; k < 2*m; k++ {
		eProduct = eProduct.Multiply(argument.E.Get(k).Exponentiate(xPowers[k]))
	}
	message, err := elgamal.ConstantMessage(s.gq.Generator().Exponentiate(argument.B), l)
	if err != nil {
		return err
	}
	expected, err := elgamal.GetCiphertext(message, argument.Tau, s.publicKey)
	if err != nil {
		return err
	}
	for i := 0; i < m; i++ {
		rowExponents := argument.ATilde.ScalarMultiply(xPowers[m-1-i])
		rowProduct, err := elgamal.CiphertextVectorExponentiation(statement.cMatrix.Row(i), rowExponents)
		if err != nil {
			return err
		}
		expected = expected.Multiply(rowProduct)
	}
	if !eProduct.Equals(expected) {
		return errors.New("multi-exponentiation argument: the ciphertext equation does not hold")
	}
	return nil
}

// diagonalProducts computes the 2m diagonals D_k: the product of row i
// exponentiated with augmented column l over all pairs with
// m-1-i+l = k, the blinding column a0 sitting at l = 0.
func (s *ArgumentService) diagonalProducts(
	cMatrix *elgamal.CiphertextMatrix,
	a0 *group.ZqVector,
	a *group.ZqMatrix,
) ([]*elgamal.Ciphertext, error) {
	m := cMatrix.NumRows()
	augmented := make([]*group.ZqVector, m+1)
	augmented[0] = a0
	for j := 0; j < m; j++ {
		augmented[j+1] = a.Column(j)
	}
	diagonals := make([]*elgamal.Ciphertext, 2*m)
	for k := 0; k < 2*m; k++ {
		product, err := elgamal.NeutralCiphertext(cMatrix.ElementSize(), s.gq)
		if err != nil {
			return nil, err
		}
		for i := 0; i < m; i++ {
			l := k - (m - 1 - i)
			if l < 0 || m < l {
				continue
			}
			rowProduct, err := elgamal.CiphertextVectorExponentiation(cMatrix.Row(i), augmented[l])
			if err != nil {
				return nil, err
			}
			product = product.Multiply(rowProduct)
		}
		diagonals[k] = product
	}
	return diagonals, nil
}

// reEncryptedDiagonal computes enc(1; rho) * prod_i row_i^{a_i}, the
// right-hand side of the statement relation.
func (s *ArgumentService) reEncryptedDiagonal(
	cMatrix *elgamal.CiphertextMatrix,
	witness *MultiExponentiationWitness,
) (*elgamal.Ciphertext, error) {
	ones, err := elgamal.OnesMessage(cMatrix.ElementSize(), s.gq)
	if err != nil {
		return nil, err
	}
	result, err := elgamal.GetCiphertext(ones, witness.rho, s.publicKey)
	if err != nil {
		return nil, err
	}
	for i := 0; i < cMatrix.NumRows(); i++ {
		rowProduct, err := elgamal.CiphertextVectorExponentiation(cMatrix.Row(i), witness.a.Column(i))
		if err != nil {
			return nil, err
		}
		result = result.Multiply(rowProduct)
	}
	return result, nil
}

func (s *ArgumentService) multiExponentiationChallenge(
	statement *MultiExponentiationStatement,
	cA0 *group.GqElement,
	cB *group.GqVector,
	e *elgamal.CiphertextVector,
) (*group.ZqElement, error) {
	return s.deriveChallenge(
		hashableInt(s.gq.P()),
		hashableInt(s.gq.Q()),
		hashablePublicKey(s.publicKey),
		hashableCommitmentKey(s.commitmentKey),
		hashableCiphertextMatrix(statement.cMatrix),
		hashableCiphertext(statement.c),
		hashableGqVector(statement.cA),
		hashableGqElement(cA0),
		hashableGqVector(cB),
		hashableCiphertextVector(e),
	)
}
