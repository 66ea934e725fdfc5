// Copyright © 2026 OpenVote
//
// This file is part of OpenVote. The full OpenVote copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package mixnet

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/openvote/mixnet/common"
	"github.com/openvote/mixnet/crypto/commitments"
	"github.com/openvote/mixnet/crypto/elgamal"
	"github.com/openvote/mixnet/crypto/group"
	"github.com/openvote/mixnet/crypto/hashing"
	"github.com/openvote/mixnet/crypto/permutation"
)

// ShuffleStatement claims that the shuffled ciphertexts are a
// permutation and re-encryption of the input ciphertexts.
type ShuffleStatement struct {
	ciphertexts         *elgamal.CiphertextVector
	shuffledCiphertexts *elgamal.CiphertextVector
}

func NewShuffleStatement(ciphertexts, shuffledCiphertexts *elgamal.CiphertextVector) (*ShuffleStatement, error) {
	if ciphertexts == nil || shuffledCiphertexts == nil {
		return nil, errors.New("NewShuffleStatement: inputs must not be nil")
	}
	if ciphertexts.Size() != shuffledCiphertexts.Size() {
		return nil, errors.New("NewShuffleStatement: ciphertext vectors must have the same size")
	}
	if ciphertexts.ElementSize() != shuffledCiphertexts.ElementSize() {
		return nil, errors.New("NewShuffleStatement: ciphertexts must have the same element size")
	}
	if !ciphertexts.Group().Equals(shuffledCiphertexts.Group()) {
		return nil, errors.New("NewShuffleStatement: ciphertext vectors must belong to the same group")
	}
	return &ShuffleStatement{ciphertexts: ciphertexts, shuffledCiphertexts: shuffledCiphertexts}, nil
}

func (s *ShuffleStatement) Ciphertexts() *elgamal.CiphertextVector {
	return s.ciphertexts
}

func (s *ShuffleStatement) ShuffledCiphertexts() *elgamal.CiphertextVector {
	return s.shuffledCiphertexts
}

// ShuffleWitness is the secret permutation and the re-encryption
// exponents.
type ShuffleWitness struct {
	permutation *permutation.Permutation
	exponents   *group.ZqVector
}

func NewShuffleWitness(psi *permutation.Permutation, exponents *group.ZqVector) (*ShuffleWitness, error) {
	if psi == nil || exponents == nil {
		return nil, errors.New("NewShuffleWitness: inputs must not be nil")
	}
	if psi.Size() != exponents.Size() {
		return nil, errors.New("NewShuffleWitness: permutation and exponents must have the same size")
	}
	return &ShuffleWitness{permutation: psi, exponents: exponents}, nil
}

// ShuffleArgument is the top-level proof: the permutation and challenge
// commitments with the two delegated sub-arguments.
type ShuffleArgument struct {
	CA                  *group.GqVector
	CB                  *group.GqVector
	Product             *ProductArgument
	MultiExponentiation *MultiExponentiationArgument
}

// GetShuffleArgument proves the shuffle statement with dimensions
// (m, n), m*n = N. It needs n >= 2, n within the commitment key size,
// and ciphertexts no longer than the public key.
func (s *ArgumentService) GetShuffleArgument(
	statement *ShuffleStatement,
	witness *ShuffleWitness,
	m, n int,
) (*ShuffleArgument, error) {
	if statement == nil || witness == nil {
		return nil, errors.New("GetShuffleArgument: statement and witness must not be nil")
	}
	bigN := statement.ciphertexts.Size()
	if err := s.checkShuffleDimensions(statement, m, n); err != nil {
		return nil, err
	}
	if witness.permutation.Size() != bigN {
		return nil, errors.New("GetShuffleArgument: witness size must match the statement")
	}
	if !witness.exponents.Group().Equals(s.zq) {
		return nil, errors.New("GetShuffleArgument: witness exponents must match the group order")
	}
	ones, err := elgamal.OnesMessage(statement.ciphertexts.ElementSize(), s.gq)
	if err != nil {
		return nil, err
	}
	for i := 0; i < bigN; i++ {
		reEncryption, err := elgamal.GetCiphertext(ones, witness.exponents.Get(i), s.publicKey)
		if err != nil {
			return nil, err
		}
		expected := reEncryption.Multiply(statement.ciphertexts.Get(witness.permutation.Get(i)))
		if !expected.Equals(statement.shuffledCiphertexts.Get(i)) {
			return nil, errors.New("GetShuffleArgument: witness does not connect the ciphertext vectors")
		}
	}

	common.Logger.Debugf("generating shuffle argument for %d ciphertexts (m=%d, n=%d)", bigN, m, n)

	// Step 1: commit to the permutation, column j holding the values
	// psi(jn) .. psi(jn+n-1).
	psiElements := make([]*group.ZqElement, bigN)
	for i := 0; i < bigN; i++ {
		psiElements[i] = s.zq.Reduce(big.NewInt(int64(witness.permutation.Get(i))))
	}
	aMatrix, err := reshapeToColumns(psiElements, m, n)
	if err != nil {
		return nil, err
	}
	r, err := s.zq.RandomElementVector(m, s.random)
	if err != nil {
		return nil, err
	}
	cA, err := commitments.GetCommitmentMatrix(aMatrix, r, s.commitmentKey)
	if err != nil {
		return nil, err
	}

	// Step 2: first challenge.
	x, err := s.shuffleFirstChallenge(statement, cA)
	if err != nil {
		return nil, err
	}

	// Step 3: commit to b_i = x^{psi(i)+1}.
	bElements := make([]*group.ZqElement, bigN)
	for i := 0; i < bigN; i++ {
		bElements[i] = x.Exponentiate(big.NewInt(int64(witness.permutation.Get(i) + 1)))
	}
	bMatrix, err := reshapeToColumns(bElements, m, n)
	if err != nil {
		return nil, err
	}
	sVector, err := s.zq.RandomElementVector(m, s.random)
	if err != nil {
		return nil, err
	}
	cB, err := commitments.GetCommitmentMatrix(bMatrix, sVector, s.commitmentKey)
	if err != nil {
		return nil, err
	}

	// Step 4: second and third challenges.
	y, z, err := s.shuffleSecondChallenges(statement, cA, cB)
	if err != nil {
		return nil, err
	}

	// Step 5: product argument on the committed values
	// y*psi(i) + x^{psi(i)+1} - z.
	productStatement, err := s.shuffleProductStatement(cA, cB, x, y, z, m, n, bigN)
	if err != nil {
		return nil, err
	}
	negZ := constantVector(z.Negate(), n)
	dCols := make([]*group.ZqVector, m)
	for j := 0; j < m; j++ {
		dCols[j] = aMatrix.Column(j).ScalarMultiply(y).Add(bMatrix.Column(j)).Add(negZ)
	}
	dMatrix, err := group.NewZqMatrixFromColumnVectors(dCols)
	if err != nil {
		return nil, err
	}
	tElements := make([]*group.ZqElement, m)
	for j := 0; j < m; j++ {
		tElements[j] = y.Multiply(r.Get(j)).Add(sVector.Get(j))
	}
	t, err := group.NewZqVector(tElements)
	if err != nil {
		return nil, err
	}
	productWitness, err := NewProductWitness(dMatrix, t)
	if err != nil {
		return nil, err
	}
	productArgument, err := s.GetProductArgument(productStatement, productWitness)
	if err != nil {
		return nil, err
	}

	// Step 6: multi-exponentiation argument tying both ciphertext
	// vectors through b.
	multiExpStatement, err := s.shuffleMultiExpStatement(statement, cB, x, m, n)
	if err != nil {
		return nil, err
	}
	rhoHat := s.zq.Zero()
	for i := 0; i < bigN; i++ {
		rhoHat = rhoHat.Add(witness.exponents.Get(i).Multiply(bElements[i]))
	}
	rhoHat = rhoHat.Negate()
	multiExpWitness, err := NewMultiExponentiationWitness(bMatrix, sVector, rhoHat)
	if err != nil {
		return nil, err
	}
	multiExpArgument, err := s.GetMultiExponentiationArgument(multiExpStatement, multiExpWitness)
	if err != nil {
		return nil, err
	}

	return &ShuffleArgument{
		CA:                  cA,
		CB:                  cB,
		Product:             productArgument,
		MultiExponentiation: multiExpArgument,
	}, nil
}

// VerifyShuffleArgument re-derives the challenges in the prover's
// transcript order and runs both sub-verifiers.
func (s *ArgumentService) VerifyShuffleArgument(
	statement *ShuffleStatement,
	argument *ShuffleArgument,
	m, n int,
) error {
	if statement == nil || argument == nil {
		return errors.New("VerifyShuffleArgument: statement and argument must not be nil")
	}
	if err := s.checkShuffleDimensions(statement, m, n); err != nil {
		return err
	}
	bigN := statement.ciphertexts.Size()
	if argument.CA == nil || argument.CA.Size() != m || argument.CB == nil || argument.CB.Size() != m {
		return errors.New("VerifyShuffleArgument: commitment vectors must have m entries")
	}

	x, err := s.shuffleFirstChallenge(statement, argument.CA)
	if err != nil {
		return err
	}
	y, z, err := s.shuffleSecondChallenges(statement, argument.CA, argument.CB)
	if err != nil {
		return err
	}

	// The ciphertext relation is checked first: any tampering with the
	// ciphertext vectors surfaces as a multi-exponentiation failure.
	multiExpStatement, err := s.shuffleMultiExpStatement(statement, argument.CB, x, m, n)
	if err != nil {
		return err
	}
	if err := s.VerifyMultiExponentiationArgument(multiExpStatement, argument.MultiExponentiation); err != nil {
		return errors.Wrap(err, "Failed to verify MultiExponentiation Argument")
	}

	productStatement, err := s.shuffleProductStatement(argument.CA, argument.CB, x, y, z, m, n, bigN)
	if err != nil {
		return err
	}
	if err := s.VerifyProductArgument(productStatement, argument.Product); err != nil {
		return errors.Wrap(err, "Failed to verify Product Argument")
	}
	return nil
}

func (s *ArgumentService) checkShuffleDimensions(statement *ShuffleStatement, m, n int) error {
	if m <= 0 || n < 2 {
		return errors.New("shuffle argument: need m >= 1 and n >= 2")
	}
	if m*n != statement.ciphertexts.Size() {
		return errors.New("shuffle argument: dimensions must multiply to the ciphertext count")
	}
	if n > s.commitmentKey.Size() {
		return errors.New("shuffle argument: n exceeds the commitment key size")
	}
	if statement.ciphertexts.ElementSize() > s.publicKey.Size() {
		return errors.New("shuffle argument: ciphertexts do not fit the public key")
	}
	if !statement.ciphertexts.Group().Equals(s.gq) {
		return errors.New("shuffle argument: statement must belong to the service group")
	}
	return nil
}

// shuffleProductStatement derives the product statement: commitments
// c_A^y * c_B * commit(-z; 0) and the public product
// prod_i (y*i + x^{i+1} - z).
func (s *ArgumentService) shuffleProductStatement(
	cA, cB *group.GqVector,
	x, y, z *group.ZqElement,
	m, n, bigN int,
) (*ProductStatement, error) {
	negZ := constantVector(z.Negate(), n)
	cNegZ, err := commitments.GetCommitment(negZ, s.zq.Zero(), s.commitmentKey)
	if err != nil {
		return nil, err
	}
	cD := make([]*group.GqElement, m)
	for j := 0; j < m; j++ {
		cD[j] = cA.Get(j).Exponentiate(y).Multiply(cB.Get(j)).Multiply(cNegZ)
	}
	cDVector, err := group.NewGqVector(cD)
	if err != nil {
		return nil, err
	}
	product := s.zq.One()
	xPower := s.zq.One()
	for i := 0; i < bigN; i++ {
		xPower = xPower.Multiply(x) // x^{i+1}
		term := y.Multiply(s.zq.Reduce(big.NewInt(int64(i)))).Add(xPower).Subtract(z)
		product = product.Multiply(term)
	}
	return NewProductStatement(cDVector, product)
}

// shuffleMultiExpStatement derives the multi-exponentiation statement:
// the shuffled ciphertexts reshaped to m rows, the x-weighted product of
// the inputs, and c_B.
func (s *ArgumentService) shuffleMultiExpStatement(
	statement *ShuffleStatement,
	cB *group.GqVector,
	x *group.ZqElement,
	m, n int,
) (*MultiExponentiationStatement, error) {
	cMatrix, err := statement.shuffledCiphertexts.ToMatrix(m, n)
	if err != nil {
		return nil, err
	}
	bigN := statement.ciphertexts.Size()
	exponents := make([]*group.ZqElement, bigN)
	xPower := s.zq.One()
	for i := 0; i < bigN; i++ {
		xPower = xPower.Multiply(x)
		exponents[i] = xPower
	}
	exponentVector, err := group.NewZqVector(exponents)
	if err != nil {
		return nil, err
	}
	weighted, err := elgamal.CiphertextVectorExponentiation(statement.ciphertexts, exponentVector)
	if err != nil {
		return nil, err
	}
	return NewMultiExponentiationStatement(cMatrix, weighted, cB)
}

// The Fiat-Shamir transcript hashes the public values in the fixed
// order pk, ck, C, C', c_A, then c_B; tags separate the second and
// third challenges.
func (s *ArgumentService) shuffleFirstChallenge(statement *ShuffleStatement, cA *group.GqVector) (*group.ZqElement, error) {
	return s.deriveChallenge(
		hashablePublicKey(s.publicKey),
		hashableCommitmentKey(s.commitmentKey),
		hashableCiphertextVector(statement.ciphertexts),
		hashableCiphertextVector(statement.shuffledCiphertexts),
		hashableGqVector(cA),
	)
}

func (s *ArgumentService) shuffleSecondChallenges(statement *ShuffleStatement, cA, cB *group.GqVector) (y, z *group.ZqElement, err error) {
	transcript := []hashing.Hashable{
		hashablePublicKey(s.publicKey),
		hashableCommitmentKey(s.commitmentKey),
		hashableCiphertextVector(statement.ciphertexts),
		hashableCiphertextVector(statement.shuffledCiphertexts),
		hashableGqVector(cA),
		hashableGqVector(cB),
	}
	y, err = s.deriveChallenge(append(transcript, hashing.HashableString("y"))...)
	if err != nil {
		return nil, nil, err
	}
	z, err = s.deriveChallenge(append(transcript, hashing.HashableString("z"))...)
	if err != nil {
		return nil, nil, err
	}
	return y, z, nil
}
