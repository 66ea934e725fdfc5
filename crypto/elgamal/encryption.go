// Copyright © 2026 OpenVote
//
// This file is part of OpenVote. The full OpenVote copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package elgamal

import (
	"github.com/pkg/errors"

	"github.com/openvote/mixnet/crypto/group"
)

// Message is a vector (m_1..m_l) of G_q elements, l >= 1.
type Message struct {
	elements *group.GqVector
}

func NewMessage(elements *group.GqVector) (*Message, error) {
	if elements == nil {
		return nil, errors.New("NewMessage: elements must not be nil")
	}
	return &Message{elements: elements}, nil
}

// ConstantMessage repeats one element size times.
func ConstantMessage(element *group.GqElement, size int) (*Message, error) {
	if element == nil || size <= 0 {
		return nil, errors.New("ConstantMessage: need an element and a strictly positive size")
	}
	elements := make([]*group.GqElement, size)
	for i := range elements {
		elements[i] = element
	}
	vector, err := group.NewGqVector(elements)
	if err != nil {
		return nil, err
	}
	return &Message{elements: vector}, nil
}

// OnesMessage is the all-ones message, the plaintext of a pure
// re-encryption.
func OnesMessage(size int, gq *group.GqGroup) (*Message, error) {
	return ConstantMessage(gq.Identity(), size)
}

func (m *Message) Size() int {
	return m.elements.Size()
}

func (m *Message) Get(i int) *group.GqElement {
	return m.elements.Get(i)
}

func (m *Message) Group() *group.GqGroup {
	return m.elements.Group()
}

func (m *Message) Elements() *group.GqVector {
	return m.elements
}

func (m *Message) Equals(other *Message) bool {
	return other != nil && m.elements.Equals(other.elements)
}

// GetCiphertext encrypts a message of size l under a key of size k >= l
// with the given exponent: gamma = g^r, phi_i = m_i * pk_i^r. A key
// longer than the message is truncated to the first l elements; a message
// longer than the key is rejected.
func GetCiphertext(message *Message, exponent *group.ZqElement, publicKey *PublicKey) (*Ciphertext, error) {
	if message == nil || exponent == nil || publicKey == nil {
		return nil, errors.New("GetCiphertext: inputs must not be nil")
	}
	gq := message.Group()
	if !gq.Equals(publicKey.Group()) {
		return nil, errors.New("GetCiphertext: message and key must belong to the same group")
	}
	if !gq.HasSameOrderAs(exponent.Group()) {
		return nil, errors.New("GetCiphertext: exponent must match the group order")
	}
	l, k := message.Size(), publicKey.Size()
	if l > k {
		return nil, errors.Errorf("GetCiphertext: message of size %d does not fit a key of size %d", l, k)
	}
	gamma := gq.Generator().Exponentiate(exponent)
	phis := make([]*group.GqElement, l)
	for i := 0; i < l; i++ {
		phis[i] = message.Get(i).Multiply(publicKey.Get(i).Exponentiate(exponent))
	}
	return NewCiphertext(gamma, phis)
}

// GetMessage decrypts: m_i = phi_i * gamma^{-sk_i}. The key must be at
// least as long as the ciphertext.
func GetMessage(ciphertext *Ciphertext, privateKey *PrivateKey) (*Message, error) {
	if ciphertext == nil || privateKey == nil {
		return nil, errors.New("GetMessage: inputs must not be nil")
	}
	if !ciphertext.Group().HasSameOrderAs(privateKey.Group()) {
		return nil, errors.New("GetMessage: key must match the group order")
	}
	l, k := ciphertext.Size(), privateKey.Size()
	if l > k {
		return nil, errors.Errorf("GetMessage: ciphertext of size %d does not fit a key of size %d", l, k)
	}
	elements := make([]*group.GqElement, l)
	for i := 0; i < l; i++ {
		mask := ciphertext.Gamma().Exponentiate(privateKey.Get(i).Negate())
		elements[i] = ciphertext.Phi(i).Multiply(mask)
	}
	vector, err := group.NewGqVector(elements)
	if err != nil {
		return nil, err
	}
	return NewMessage(vector)
}

// GetPartialDecryption strips this key's share of the masking while
// keeping gamma, so further key holders can continue:
// (gamma, gamma^{-sk_1} * phi_1, ...).
func GetPartialDecryption(ciphertext *Ciphertext, privateKey *PrivateKey) (*Ciphertext, error) {
	message, err := GetMessage(ciphertext, privateKey)
	if err != nil {
		return nil, errors.Wrap(err, "GetPartialDecryption")
	}
	return NewCiphertext(ciphertext.Gamma(), message.Elements().Elements())
}
