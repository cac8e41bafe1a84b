// Package mrae implements the key agreement used to encrypt call
// envelopes: X25519 Diffie-Hellman with an HMAC-SHA512/256 key derivation,
// feeding a Deoxys-II-256-128 AEAD. The derivation must match the
// runtime's decryptor byte for byte.
package mrae

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"fmt"
	"io"

	"github.com/cloudflare/circl/dh/x25519"
	"github.com/oasisprotocol/deoxysii"
)

// boxKDFTweak keys the HMAC that turns the raw X25519 shared point into
// the AEAD key. Fixed by the runtime.
var boxKDFTweak = []byte("MRAE_Box_Deoxys-II-256-128")

// KeyPair is an X25519 keypair.
type KeyPair struct {
	PublicKey  x25519.Key
	PrivateKey x25519.Key
}

// GenerateKeyPair creates a fresh X25519 keypair from the given entropy
// source (crypto/rand when rng is nil).
func GenerateKeyPair(rng io.Reader) (*KeyPair, error) {
	if rng == nil {
		rng = rand.Reader
	}
	var kp KeyPair
	if _, err := io.ReadFull(rng, kp.PrivateKey[:]); err != nil {
		return nil, fmt.Errorf("generate x25519 key: %w", err)
	}
	x25519.KeyGen(&kp.PublicKey, &kp.PrivateKey)
	return &kp, nil
}

// DeriveSymmetricKey computes the Deoxys-II key for the
// (publicKey, privateKey) pair: HMAC-SHA512/256 keyed with boxKDFTweak
// over the X25519 shared point.
func DeriveSymmetricKey(publicKey, privateKey x25519.Key) ([deoxysii.KeySize]byte, error) {
	var key [deoxysii.KeySize]byte
	var shared x25519.Key
	if !x25519.Shared(&shared, &privateKey, &publicKey) {
		return key, fmt.Errorf("x25519: low order point")
	}
	mac := hmac.New(sha512.New512_256, boxKDFTweak)
	mac.Write(shared[:])
	copy(key[:], mac.Sum(nil))
	return key, nil
}
