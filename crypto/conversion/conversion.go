// Copyright © 2026 OpenVote
//
// This file is part of OpenVote. The full OpenVote copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Package conversion provides the canonical byte encodings shared by the
// hash service and proof serialization: integers as minimal big-endian
// byte arrays, strings as raw UTF-8.
package conversion

import (
	"math/big"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// IntegerToByteArray encodes a non-negative integer as its minimal
// big-endian representation. Zero encodes as the single byte 0x00.
func IntegerToByteArray(x *big.Int) ([]byte, error) {
	if x == nil {
		return nil, errors.New("IntegerToByteArray: integer must not be nil")
	}
	if x.Sign() < 0 {
		return nil, errors.New("IntegerToByteArray: integer must not be negative")
	}
	if x.Sign() == 0 {
		return []byte{0x00}, nil
	}
	return x.Bytes(), nil
}

// ByteArrayToInteger decodes a big-endian byte array into a non-negative
// integer.
func ByteArrayToInteger(bz []byte) *big.Int {
	return new(big.Int).SetBytes(bz)
}

// StringToByteArray encodes a string as UTF-8 bytes, with no BOM and no
// normalization. The string must be valid UTF-8 and non-empty.
func StringToByteArray(s string) ([]byte, error) {
	if len(s) == 0 {
		return nil, errors.New("StringToByteArray: string must not be empty")
	}
	if !utf8.ValidString(s) {
		return nil, errors.New("StringToByteArray: string must be valid UTF-8")
	}
	return []byte(s), nil
}

// ByteArrayToString decodes UTF-8 bytes into a string.
func ByteArrayToString(bz []byte) (string, error) {
	if len(bz) == 0 {
		return "", errors.New("ByteArrayToString: byte array must not be empty")
	}
	if !utf8.Valid(bz) {
		return "", errors.New("ByteArrayToString: byte array must be valid UTF-8")
	}
	return string(bz), nil
}
