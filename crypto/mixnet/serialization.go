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
	"github.com/openvote/mixnet/crypto/conversion"
	"github.com/openvote/mixnet/crypto/elgamal"
	"github.com/openvote/mixnet/crypto/group"
)

// Proof objects serialize as flat integer sequences of length-prefixed
// parts that hold the fields in the documented order; a part may group
// several fields. Nested arguments serialize as a single part holding
// their own flattened sequence.

const (
	maxProofParts    = 8
	maxProofPartSize = int64(1 << 20)
)

type partsBuilder struct {
	parts [][]*big.Int
}

func newPartsBuilder() *partsBuilder {
	return &partsBuilder{parts: make([][]*big.Int, 0, maxProofParts)}
}

func (b *partsBuilder) addPart(part []*big.Int) *partsBuilder {
	b.parts = append(b.parts, part)
	return b
}

func (b *partsBuilder) flatten() ([]*big.Int, error) {
	if len(b.parts) > maxProofParts {
		return nil, errors.Errorf("flatten: too many proof parts: got %d, max %d", len(b.parts), maxProofParts)
	}
	total := 0
	for _, p := range b.parts {
		total += 1 + len(p)
	}
	flat := make([]*big.Int, 0, total)
	for i, p := range b.parts {
		if maxProofPartSize < int64(len(p)) {
			return nil, errors.Errorf("flatten: proof part %d too large", i)
		}
		flat = append(flat, big.NewInt(int64(len(p))))
		flat = append(flat, p...)
	}
	return flat, nil
}

func parseParts(flat []*big.Int, expected int) ([][]*big.Int, error) {
	parts := make([][]*big.Int, 0, expected)
	for el := 0; el < len(flat); {
		if maxProofParts <= len(parts) {
			return nil, errors.New("parseParts: too many proof parts")
		}
		partLen := flat[el].Int64()
		if partLen < 0 || maxProofPartSize < partLen {
			return nil, errors.New("parseParts: stated part length out of range")
		}
		el++
		if len(flat) < el+int(partLen) {
			return nil, errors.New("parseParts: not enough data to consume stated part length")
		}
		parts = append(parts, flat[el:el+int(partLen)])
		el += int(partLen)
	}
	if len(parts) != expected {
		return nil, errors.Errorf("parseParts: expected %d parts but got %d", expected, len(parts))
	}
	return parts, nil
}

func gqValues(elements ...*group.GqElement) []*big.Int {
	values := make([]*big.Int, len(elements))
	for i, e := range elements {
		values[i] = e.Value()
	}
	return values
}

func gqVectorValues(v *group.GqVector) []*big.Int {
	return gqValues(v.Elements()...)
}

func zqValues(elements ...*group.ZqElement) []*big.Int {
	values := make([]*big.Int, len(elements))
	for i, e := range elements {
		values[i] = e.Value()
	}
	return values
}

func zqVectorValues(v *group.ZqVector) []*big.Int {
	return zqValues(v.Elements()...)
}

func ciphertextVectorValues(v *elgamal.CiphertextVector) []*big.Int {
	values := make([]*big.Int, 0, v.Size()*(v.ElementSize()+1))
	for i := 0; i < v.Size(); i++ {
		c := v.Get(i)
		values = append(values, c.Gamma().Value())
		for j := 0; j < c.Size(); j++ {
			values = append(values, c.Phi(j).Value())
		}
	}
	return values
}

func parseGqElements(values []*big.Int, gq *group.GqGroup) ([]*group.GqElement, error) {
	elements := make([]*group.GqElement, len(values))
	for i, v := range values {
		e, err := group.NewGqElement(v, gq)
		if err != nil {
			return nil, err
		}
		elements[i] = e
	}
	return elements, nil
}

func parseGqVector(values []*big.Int, gq *group.GqGroup) (*group.GqVector, error) {
	elements, err := parseGqElements(values, gq)
	if err != nil {
		return nil, err
	}
	return group.NewGqVector(elements)
}

func parseZqVector(values []*big.Int, zq *group.ZqGroup) (*group.ZqVector, error) {
	elements := make([]*group.ZqElement, len(values))
	for i, v := range values {
		e, err := group.NewZqElement(v, zq)
		if err != nil {
			return nil, err
		}
		elements[i] = e
	}
	return group.NewZqVector(elements)
}

func parseZqElements(values []*big.Int, zq *group.ZqGroup, expected int) ([]*group.ZqElement, error) {
	if len(values) != expected {
		return nil, errors.Errorf("expected %d exponents but got %d", expected, len(values))
	}
	elements := make([]*group.ZqElement, len(values))
	for i, v := range values {
		e, err := group.NewZqElement(v, zq)
		if err != nil {
			return nil, err
		}
		elements[i] = e
	}
	return elements, nil
}

func parseCiphertextVector(values []*big.Int, count int, gq *group.GqGroup) (*elgamal.CiphertextVector, error) {
	if count <= 0 || len(values)%count != 0 {
		return nil, errors.New("parseCiphertextVector: value count does not split into ciphertexts")
	}
	width := len(values) / count
	if width < 2 {
		return nil, errors.New("parseCiphertextVector: ciphertexts need a gamma and at least one phi")
	}
	ciphertexts := make([]*elgamal.Ciphertext, count)
	for i := 0; i < count; i++ {
		chunk, err := parseGqElements(values[i*width:(i+1)*width], gq)
		if err != nil {
			return nil, err
		}
		c, err := elgamal.NewCiphertext(chunk[0], chunk[1:])
		if err != nil {
			return nil, err
		}
		ciphertexts[i] = c
	}
	return elgamal.NewCiphertextVector(ciphertexts)
}

func intsToBytes(values []*big.Int) ([][]byte, error) {
	bzs := make([][]byte, len(values))
	for i, v := range values {
		bz, err := conversion.IntegerToByteArray(v)
		if err != nil {
			return nil, err
		}
		bzs[i] = bz
	}
	return bzs, nil
}

// proofValues guards and decodes a serialized proof: every part must be
// non-empty (zero is encoded as 0x00, never as an empty slice).
func proofValues(bzs [][]byte) ([]*big.Int, error) {
	if !common.NonEmptyMultiBytes(bzs) {
		return nil, errors.New("proofValues: expected non-empty byte parts")
	}
	return common.MultiBytesToBigInts(bzs), nil
}

func (a *ZeroArgument) values() ([]*big.Int, error) {
	return newPartsBuilder().
		addPart(gqValues(a.CA0, a.CBm)).
		addPart(gqVectorValues(a.Cd)).
		addPart(zqVectorValues(a.APrime)).
		addPart(zqVectorValues(a.BPrime)).
		addPart(zqValues(a.RPrime, a.SPrime, a.TPrime)).
		flatten()
}

// Bytes serializes the argument in the order c_A0, c_Bm, c_d, a', b',
// r', s', t'.
func (a *ZeroArgument) Bytes() ([][]byte, error) {
	values, err := a.values()
	if err != nil {
		return nil, err
	}
	return intsToBytes(values)
}

func zeroArgumentFromValues(values []*big.Int, gq *group.GqGroup) (*ZeroArgument, error) {
	parts, err := parseParts(values, 5)
	if err != nil {
		return nil, err
	}
	zq := group.ZqGroupSameOrderAs(gq)
	blindings, err := parseGqElements(parts[0], gq)
	if err != nil {
		return nil, err
	}
	if len(blindings) != 2 {
		return nil, errors.New("ZeroArgumentFromBytes: expected exactly c_A0 and c_Bm")
	}
	cd, err := parseGqVector(parts[1], gq)
	if err != nil {
		return nil, err
	}
	aPrime, err := parseZqVector(parts[2], zq)
	if err != nil {
		return nil, err
	}
	bPrime, err := parseZqVector(parts[3], zq)
	if err != nil {
		return nil, err
	}
	scalars, err := parseZqElements(parts[4], zq, 3)
	if err != nil {
		return nil, err
	}
	return &ZeroArgument{
		CA0:    blindings[0],
		CBm:    blindings[1],
		Cd:     cd,
		APrime: aPrime,
		BPrime: bPrime,
		RPrime: scalars[0],
		SPrime: scalars[1],
		TPrime: scalars[2],
	}, nil
}

func ZeroArgumentFromBytes(bzs [][]byte, gq *group.GqGroup) (*ZeroArgument, error) {
	values, err := proofValues(bzs)
	if err != nil {
		return nil, err
	}
	return zeroArgumentFromValues(values, gq)
}

func (a *SingleValueProductArgument) values() ([]*big.Int, error) {
	return newPartsBuilder().
		addPart(gqValues(a.Cd, a.CLowerDelta, a.CUpperDelta)).
		addPart(zqVectorValues(a.ATilde)).
		addPart(zqVectorValues(a.BTilde)).
		addPart(zqValues(a.RTilde, a.STilde)).
		flatten()
}

// Bytes serializes the argument in the order c_d, c_delta, c_Delta,
// a~, b~, r~, s~.
func (a *SingleValueProductArgument) Bytes() ([][]byte, error) {
	values, err := a.values()
	if err != nil {
		return nil, err
	}
	return intsToBytes(values)
}

func singleValueProductArgumentFromValues(values []*big.Int, gq *group.GqGroup) (*SingleValueProductArgument, error) {
	parts, err := parseParts(values, 4)
	if err != nil {
		return nil, err
	}
	zq := group.ZqGroupSameOrderAs(gq)
	cs, err := parseGqElements(parts[0], gq)
	if err != nil {
		return nil, err
	}
	if len(cs) != 3 {
		return nil, errors.New("SingleValueProductArgumentFromBytes: expected exactly three commitments")
	}
	aTilde, err := parseZqVector(parts[1], zq)
	if err != nil {
		return nil, err
	}
	bTilde, err := parseZqVector(parts[2], zq)
	if err != nil {
		return nil, err
	}
	scalars, err := parseZqElements(parts[3], zq, 2)
	if err != nil {
		return nil, err
	}
	return &SingleValueProductArgument{
		Cd:          cs[0],
		CLowerDelta: cs[1],
		CUpperDelta: cs[2],
		ATilde:      aTilde,
		BTilde:      bTilde,
		RTilde:      scalars[0],
		STilde:      scalars[1],
	}, nil
}

func SingleValueProductArgumentFromBytes(bzs [][]byte, gq *group.GqGroup) (*SingleValueProductArgument, error) {
	values, err := proofValues(bzs)
	if err != nil {
		return nil, err
	}
	return singleValueProductArgumentFromValues(values, gq)
}

func (a *HadamardArgument) values() ([]*big.Int, error) {
	zeroValues, err := a.Zero.values()
	if err != nil {
		return nil, err
	}
	return newPartsBuilder().
		addPart(gqVectorValues(a.CB)).
		addPart(zeroValues).
		flatten()
}

// Bytes serializes c_B followed by the nested zero argument.
func (a *HadamardArgument) Bytes() ([][]byte, error) {
	values, err := a.values()
	if err != nil {
		return nil, err
	}
	return intsToBytes(values)
}

func hadamardArgumentFromValues(values []*big.Int, gq *group.GqGroup) (*HadamardArgument, error) {
	parts, err := parseParts(values, 2)
	if err != nil {
		return nil, err
	}
	cB, err := parseGqVector(parts[0], gq)
	if err != nil {
		return nil, err
	}
	zero, err := zeroArgumentFromValues(parts[1], gq)
	if err != nil {
		return nil, err
	}
	return &HadamardArgument{CB: cB, Zero: zero}, nil
}

func HadamardArgumentFromBytes(bzs [][]byte, gq *group.GqGroup) (*HadamardArgument, error) {
	values, err := proofValues(bzs)
	if err != nil {
		return nil, err
	}
	return hadamardArgumentFromValues(values, gq)
}

func (a *ProductArgument) values() ([]*big.Int, error) {
	svpValues, err := a.SingleValueProduct.values()
	if err != nil {
		return nil, err
	}
	if a.Hadamard == nil {
		return newPartsBuilder().
			addPart([]*big.Int{big.NewInt(0)}).
			addPart(svpValues).
			flatten()
	}
	hadamardValues, err := a.Hadamard.values()
	if err != nil {
		return nil, err
	}
	return newPartsBuilder().
		addPart([]*big.Int{big.NewInt(1)}).
		addPart(gqValues(a.Cb)).
		addPart(hadamardValues).
		addPart(svpValues).
		flatten()
}

// Bytes serializes the optional c_b and Hadamard argument (preceded by a
// presence flag) followed by the single-value product argument.
func (a *ProductArgument) Bytes() ([][]byte, error) {
	values, err := a.values()
	if err != nil {
		return nil, err
	}
	return intsToBytes(values)
}

func productArgumentFromValues(values []*big.Int, gq *group.GqGroup) (*ProductArgument, error) {
	if len(values) < 2 {
		return nil, errors.New("ProductArgumentFromBytes: truncated input")
	}
	flagged := values[1].Sign() != 0
	if !flagged {
		parts, err := parseParts(values, 2)
		if err != nil {
			return nil, err
		}
		svp, err := singleValueProductArgumentFromValues(parts[1], gq)
		if err != nil {
			return nil, err
		}
		return &ProductArgument{SingleValueProduct: svp}, nil
	}
	parts, err := parseParts(values, 4)
	if err != nil {
		return nil, err
	}
	cbs, err := parseGqElements(parts[1], gq)
	if err != nil {
		return nil, err
	}
	if len(cbs) != 1 {
		return nil, errors.New("ProductArgumentFromBytes: expected exactly one c_b")
	}
	hadamard, err := hadamardArgumentFromValues(parts[2], gq)
	if err != nil {
		return nil, err
	}
	svp, err := singleValueProductArgumentFromValues(parts[3], gq)
	if err != nil {
		return nil, err
	}
	return &ProductArgument{Cb: cbs[0], Hadamard: hadamard, SingleValueProduct: svp}, nil
}

func ProductArgumentFromBytes(bzs [][]byte, gq *group.GqGroup) (*ProductArgument, error) {
	values, err := proofValues(bzs)
	if err != nil {
		return nil, err
	}
	return productArgumentFromValues(values, gq)
}

func (a *MultiExponentiationArgument) values() ([]*big.Int, error) {
	return newPartsBuilder().
		addPart(gqValues(a.CA0)).
		addPart(gqVectorValues(a.CB)).
		addPart(ciphertextVectorValues(a.E)).
		addPart(zqVectorValues(a.ATilde)).
		addPart(zqValues(a.R, a.B, a.S, a.Tau)).
		flatten()
}

// Bytes serializes the argument in the order c_A0, c_B, E, a, r, b, s,
// tau.
func (a *MultiExponentiationArgument) Bytes() ([][]byte, error) {
	values, err := a.values()
	if err != nil {
		return nil, err
	}
	return intsToBytes(values)
}

func multiExponentiationArgumentFromValues(values []*big.Int, gq *group.GqGroup) (*MultiExponentiationArgument, error) {
	parts, err := parseParts(values, 5)
	if err != nil {
		return nil, err
	}
	zq := group.ZqGroupSameOrderAs(gq)
	cA0s, err := parseGqElements(parts[0], gq)
	if err != nil {
		return nil, err
	}
	if len(cA0s) != 1 {
		return nil, errors.New("MultiExponentiationArgumentFromBytes: expected exactly one c_A0")
	}
	cB, err := parseGqVector(parts[1], gq)
	if err != nil {
		return nil, err
	}
	e, err := parseCiphertextVector(parts[2], cB.Size(), gq)
	if err != nil {
		return nil, err
	}
	aTilde, err := parseZqVector(parts[3], zq)
	if err != nil {
		return nil, err
	}
	scalars, err := parseZqElements(parts[4], zq, 4)
	if err != nil {
		return nil, err
	}
	return &MultiExponentiationArgument{
		CA0:    cA0s[0],
		CB:     cB,
		E:      e,
		ATilde: aTilde,
		R:      scalars[0],
		B:      scalars[1],
		S:      scalars[2],
		Tau:    scalars[3],
	}, nil
}

func MultiExponentiationArgumentFromBytes(bzs [][]byte, gq *group.GqGroup) (*MultiExponentiationArgument, error) {
	values, err := proofValues(bzs)
	if err != nil {
		return nil, err
	}
	return multiExponentiationArgumentFromValues(values, gq)
}

// Bytes serializes c_A, c_B, the product argument and the
// multi-exponentiation argument.
func (a *ShuffleArgument) Bytes() ([][]byte, error) {
	productValues, err := a.Product.values()
	if err != nil {
		return nil, err
	}
	multiExpValues, err := a.MultiExponentiation.values()
	if err != nil {
		return nil, err
	}
	values, err := newPartsBuilder().
		addPart(gqVectorValues(a.CA)).
		addPart(gqVectorValues(a.CB)).
		addPart(productValues).
		addPart(multiExpValues).
		flatten()
	if err != nil {
		return nil, err
	}
	return intsToBytes(values)
}

func ShuffleArgumentFromBytes(bzs [][]byte, gq *group.GqGroup) (*ShuffleArgument, error) {
	values, err := proofValues(bzs)
	if err != nil {
		return nil, err
	}
	parts, err := parseParts(values, 4)
	if err != nil {
		return nil, err
	}
	cA, err := parseGqVector(parts[0], gq)
	if err != nil {
		return nil, err
	}
	cB, err := parseGqVector(parts[1], gq)
	if err != nil {
		return nil, err
	}
	product, err := productArgumentFromValues(parts[2], gq)
	if err != nil {
		return nil, err
	}
	multiExp, err := multiExponentiationArgumentFromValues(parts[3], gq)
	if err != nil {
		return nil, err
	}
	return &ShuffleArgument{CA: cA, CB: cB, Product: product, MultiExponentiation: multiExp}, nil
}
