package mrae

import (
	"bytes"
	"testing"
)

func TestDeriveSymmetricKey_Symmetric(t *testing.T) {
	a, err := GenerateKeyPair(nil)
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	b, err := GenerateKeyPair(nil)
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}

	ab, err := DeriveSymmetricKey(b.PublicKey, a.PrivateKey)
	if err != nil {
		t.Fatalf("DeriveSymmetricKey: %v", err)
	}
	ba, err := DeriveSymmetricKey(a.PublicKey, b.PrivateKey)
	if err != nil {
		t.Fatalf("DeriveSymmetricKey: %v", err)
	}
	if ab != ba {
		t.Error("box key is not symmetric across the key pair")
	}
}

func TestDeriveSymmetricKey_DistinctPeers(t *testing.T) {
	a, err := GenerateKeyPair(nil)
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	b, err := GenerateKeyPair(nil)
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	c, err := GenerateKeyPair(nil)
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}

	ab, err := DeriveSymmetricKey(b.PublicKey, a.PrivateKey)
	if err != nil {
		t.Fatalf("DeriveSymmetricKey: %v", err)
	}
	ac, err := DeriveSymmetricKey(c.PublicKey, a.PrivateKey)
	if err != nil {
		t.Fatalf("DeriveSymmetricKey: %v", err)
	}
	if ab == ac {
		t.Error("different peers derived the same box key")
	}
}

func TestGenerateKeyPair_Deterministic(t *testing.T) {
	seed := bytes.Repeat([]byte{0x42}, 32)

	a, err := GenerateKeyPair(bytes.NewReader(seed))
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	b, err := GenerateKeyPair(bytes.NewReader(seed))
	if err != nil {
		t.Fatalf("GenerateKeyPair: %v", err)
	}
	if a.PublicKey != b.PublicKey || a.PrivateKey != b.PrivateKey {
		t.Error("same entropy produced different keypairs")
	}
}
