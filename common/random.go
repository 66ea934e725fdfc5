// Copyright © 2026 OpenVote
//
// This file is part of OpenVote. The full OpenVote copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package common

import (
	"crypto/rand"
	"io"
	"math/big"

	"github.com/pkg/errors"
)

const (
	maxRandomIntBits = 5000

	base16Alphabet = "0123456789ABCDEF"
	base32Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"
	base64Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
)

// RandomSource yields uniform integers in [0, upperBound). Provers and key
// generation take it as an explicit dependency so tests can substitute a
// deterministic source.
type RandomSource interface {
	GenRandomInteger(upperBound *big.Int) (*big.Int, error)
}

// RandomService is the production RandomSource, drawing from an io.Reader
// (crypto/rand.Reader unless another reader is supplied).
type RandomService struct {
	reader io.Reader
}

func NewRandomService() *RandomService {
	return &RandomService{reader: rand.Reader}
}

func NewRandomServiceWithReader(reader io.Reader) *RandomService {
	return &RandomService{reader: reader}
}

// GenRandomInteger returns a uniform integer in [0, upperBound). It draws
// bitLength(upperBound) bits and retries on values >= upperBound.
func (rs *RandomService) GenRandomInteger(upperBound *big.Int) (*big.Int, error) {
	if upperBound == nil || upperBound.Sign() != 1 {
		return nil, errors.New("GenRandomInteger: upper bound must be strictly positive")
	}
	bits := upperBound.BitLen()
	if maxRandomIntBits < bits {
		return nil, errors.Errorf("GenRandomInteger: upper bound must be less than %d bits", maxRandomIntBits)
	}
	buf := make([]byte, (bits+7)/8)
	excessBits := uint(len(buf)*8 - bits)
	try := new(big.Int)
	for {
		if _, err := io.ReadFull(rs.reader, buf); err != nil {
			return nil, errors.Wrap(err, "GenRandomInteger: entropy read failed")
		}
		buf[0] &= 0xff >> excessBits
		try.SetBytes(buf)
		if try.Cmp(upperBound) < 0 {
			return new(big.Int).Set(try), nil
		}
	}
}

// GenRandomIntegerWithinBounds returns a uniform integer in [lower, upper).
func (rs *RandomService) GenRandomIntegerWithinBounds(lower, upper *big.Int) (*big.Int, error) {
	if lower == nil || upper == nil || lower.Sign() < 0 || lower.Cmp(upper) >= 0 {
		return nil, errors.New("GenRandomIntegerWithinBounds: need 0 <= lower < upper")
	}
	span := new(big.Int).Sub(upper, lower)
	r, err := rs.GenRandomInteger(span)
	if err != nil {
		return nil, err
	}
	return r.Add(r, lower), nil
}

// GenRandomExponent returns a uniform non-zero integer in [1, q).
func GenRandomExponent(source RandomSource, q *big.Int) (*big.Int, error) {
	if q == nil || q.Cmp(two) < 0 {
		return nil, errors.New("GenRandomExponent: q must be at least 2")
	}
	for {
		r, err := source.GenRandomInteger(q)
		if err != nil {
			return nil, err
		}
		if r.Sign() != 0 {
			return r, nil
		}
	}
}

func (rs *RandomService) GenRandomBase16String(length int) (string, error) {
	return rs.genRandomString(length, base16Alphabet)
}

func (rs *RandomService) GenRandomBase32String(length int) (string, error) {
	return rs.genRandomString(length, base32Alphabet)
}

func (rs *RandomService) GenRandomBase64String(length int) (string, error) {
	return rs.genRandomString(length, base64Alphabet)
}

// genRandomString draws length alphabet symbols uniformly and independently.
// The alphabets follow RFC 4648.
func (rs *RandomService) genRandomString(length int, alphabet string) (string, error) {
	if length <= 0 {
		return "", errors.New("genRandomString: length must be strictly positive")
	}
	bound := big.NewInt(int64(len(alphabet)))
	out := make([]byte, length)
	for i := range out {
		idx, err := rs.GenRandomInteger(bound)
		if err != nil {
			return "", err
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out), nil
}
