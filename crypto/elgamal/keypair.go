// Copyright © 2026 OpenVote
//
// This file is part of OpenVote. The full OpenVote copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package elgamal

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/openvote/mixnet/common"
	"github.com/openvote/mixnet/crypto/group"
)

var two = big.NewInt(2)

// PublicKey is a vector (pk_1..pk_k) of G_q elements with pk_i not in
// {1, g}.
type PublicKey struct {
	elements *group.GqVector
}

func NewPublicKey(elements *group.GqVector) (*PublicKey, error) {
	if elements == nil {
		return nil, errors.New("NewPublicKey: elements must not be nil")
	}
	generator := elements.Group().Generator()
	for i := 0; i < elements.Size(); i++ {
		e := elements.Get(i)
		if e.IsIdentity() || e.Equals(generator) {
			return nil, errors.Errorf("NewPublicKey: element %d must be neither the identity nor the generator", i)
		}
	}
	return &PublicKey{elements: elements}, nil
}

func (pk *PublicKey) Size() int {
	return pk.elements.Size()
}

func (pk *PublicKey) Get(i int) *group.GqElement {
	return pk.elements.Get(i)
}

func (pk *PublicKey) Group() *group.GqGroup {
	return pk.elements.Group()
}

func (pk *PublicKey) Elements() *group.GqVector {
	return pk.elements
}

func (pk *PublicKey) Equals(other *PublicKey) bool {
	return other != nil && pk.elements.Equals(other.elements)
}

// CombinePublicKeys multiplies the keys element-wise. All keys must have
// the same length and group.
func CombinePublicKeys(keys []*PublicKey) (*PublicKey, error) {
	if len(keys) == 0 {
		return nil, errors.New("CombinePublicKeys: need at least one key")
	}
	first := keys[0]
	combined := first.elements.Elements()
	for _, key := range keys[1:] {
		if key == nil || key.Size() != first.Size() || !key.Group().Equals(first.Group()) {
			return nil, errors.New("CombinePublicKeys: keys must all share length and group")
		}
		for i := range combined {
			combined[i] = combined[i].Multiply(key.Get(i))
		}
	}
	elements, err := group.NewGqVector(combined)
	if err != nil {
		return nil, err
	}
	// The combined key is determined by its parts; the {1, g} exclusion
	// only applies to freshly generated keys.
	return &PublicKey{elements: elements}, nil
}

// PrivateKey is a vector (sk_1..sk_k) of Z_q exponents.
type PrivateKey struct {
	elements *group.ZqVector
}

// NewPrivateKey wraps freshly chosen exponents; each must avoid the
// degenerate values 0 and 1.
func NewPrivateKey(elements *group.ZqVector) (*PrivateKey, error) {
	if elements == nil {
		return nil, errors.New("NewPrivateKey: elements must not be nil")
	}
	for i := 0; i < elements.Size(); i++ {
		if elements.Get(i).Value().Cmp(two) < 0 {
			return nil, errors.Errorf("NewPrivateKey: element %d must be at least 2", i)
		}
	}
	return &PrivateKey{elements: elements}, nil
}

func (sk *PrivateKey) Size() int {
	return sk.elements.Size()
}

func (sk *PrivateKey) Get(i int) *group.ZqElement {
	return sk.elements.Get(i)
}

func (sk *PrivateKey) Group() *group.ZqGroup {
	return sk.elements.Group()
}

// Compress shortens the key to the given length: the first length-1
// exponents are kept and the tail is summed into the last slot.
func (sk *PrivateKey) Compress(length int) (*PrivateKey, error) {
	k := sk.Size()
	if length <= 0 || k < length {
		return nil, errors.Errorf("Compress: length must be in [1, %d]", k)
	}
	if length == k {
		return sk, nil
	}
	elements := make([]*group.ZqElement, length)
	for i := 0; i < length-1; i++ {
		elements[i] = sk.Get(i)
	}
	tail := sk.Get(length - 1)
	for j := length; j < k; j++ {
		tail = tail.Add(sk.Get(j))
	}
	elements[length-1] = tail
	compressed, err := group.NewZqVector(elements)
	if err != nil {
		return nil, err
	}
	// The summed tail may land on 0 or 1; the exclusion applies to key
	// generation, not to compression.
	return &PrivateKey{elements: compressed}, nil
}

// KeyPair holds a matching multi-recipient key pair.
type KeyPair struct {
	publicKey  *PublicKey
	privateKey *PrivateKey
}

func (kp *KeyPair) PublicKey() *PublicKey {
	return kp.publicKey
}

func (kp *KeyPair) PrivateKey() *PrivateKey {
	return kp.privateKey
}

// GenKeyPair samples numElements private exponents uniformly from [2, q)
// and derives pk_i = g^{sk_i}. A derived element hitting 1 or g is
// regenerated.
func GenKeyPair(gq *group.GqGroup, numElements int, source common.RandomSource) (*KeyPair, error) {
	if gq == nil || source == nil {
		return nil, errors.New("GenKeyPair: group and random source must not be nil")
	}
	if numElements <= 0 {
		return nil, errors.New("GenKeyPair: numElements must be strictly positive")
	}
	zq := group.ZqGroupSameOrderAs(gq)
	generator := gq.Generator()
	sks := make([]*group.ZqElement, numElements)
	pks := make([]*group.GqElement, numElements)
	for i := 0; i < numElements; {
		v, err := source.GenRandomInteger(gq.Q())
		if err != nil {
			return nil, err
		}
		if v.Cmp(two) < 0 {
			continue
		}
		sk, err := group.NewZqElement(v, zq)
		if err != nil {
			return nil, err
		}
		pk := generator.Exponentiate(sk)
		if pk.IsIdentity() || pk.Equals(generator) {
			continue
		}
		sks[i], pks[i] = sk, pk
		i++
	}
	skVector, err := group.NewZqVector(sks)
	if err != nil {
		return nil, err
	}
	pkVector, err := group.NewGqVector(pks)
	if err != nil {
		return nil, err
	}
	privateKey, err := NewPrivateKey(skVector)
	if err != nil {
		return nil, err
	}
	publicKey, err := NewPublicKey(pkVector)
	if err != nil {
		return nil, err
	}
	return &KeyPair{publicKey: publicKey, privateKey: privateKey}, nil
}
