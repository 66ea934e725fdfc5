// Copyright © 2026 OpenVote
//
// This file is part of OpenVote. The full OpenVote copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package permutation

import (
	"github.com/pkg/errors"

	"github.com/openvote/mixnet/common"
	"github.com/openvote/mixnet/crypto/elgamal"
	"github.com/openvote/mixnet/crypto/group"
)

// Shuffle is the output of a re-encrypting shuffle: the shuffled
// ciphertexts together with the permutation and re-encryption exponents
// that produced them. The latter two are the shuffle argument's witness.
type Shuffle struct {
	ciphertexts *elgamal.CiphertextVector
	permutation *Permutation
	exponents   *group.ZqVector
}

func (s *Shuffle) Ciphertexts() *elgamal.CiphertextVector {
	return s.ciphertexts
}

func (s *Shuffle) Permutation() *Permutation {
	return s.permutation
}

func (s *Shuffle) Exponents() *group.ZqVector {
	return s.exponents
}

// GenShuffle permutes and re-encrypts the ciphertexts: position i of the
// output is input psi(i) multiplied with a fresh encryption of ones under
// exponent rho_i.
func GenShuffle(ciphertexts *elgamal.CiphertextVector, publicKey *elgamal.PublicKey, source common.RandomSource) (*Shuffle, error) {
	if ciphertexts == nil || publicKey == nil || source == nil {
		return nil, errors.New("GenShuffle: inputs must not be nil")
	}
	if !ciphertexts.Group().Equals(publicKey.Group()) {
		return nil, errors.New("GenShuffle: ciphertexts and key must belong to the same group")
	}
	if ciphertexts.ElementSize() > publicKey.Size() {
		return nil, errors.New("GenShuffle: ciphertexts must not be longer than the key")
	}
	n := ciphertexts.Size()
	psi, err := GenPermutation(n, source)
	if err != nil {
		return nil, err
	}
	zq := group.ZqGroupSameOrderAs(ciphertexts.Group())
	ones, err := elgamal.OnesMessage(ciphertexts.ElementSize(), ciphertexts.Group())
	if err != nil {
		return nil, err
	}
	shuffled := make([]*elgamal.Ciphertext, n)
	exponents := make([]*group.ZqElement, n)
	for i := 0; i < n; i++ {
		rho, err := zq.RandomElement(source)
		if err != nil {
			return nil, err
		}
		reEncryption, err := elgamal.GetCiphertext(ones, rho, publicKey)
		if err != nil {
			return nil, err
		}
		shuffled[i] = reEncryption.Multiply(ciphertexts.Get(psi.Get(i)))
		exponents[i] = rho
	}
	shuffledVector, err := elgamal.NewCiphertextVector(shuffled)
	if err != nil {
		return nil, err
	}
	exponentVector, err := group.NewZqVector(exponents)
	if err != nil {
		return nil, err
	}
	return &Shuffle{ciphertexts: shuffledVector, permutation: psi, exponents: exponentVector}, nil
}
