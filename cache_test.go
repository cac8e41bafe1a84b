package sapphire

import (
	"bytes"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

func TestCache_AddAndLookup(t *testing.T) {
	cache := NewCache()
	signer := common.HexToAddress("0xaa")
	digest := common.HexToHash("0x01")
	leash := Leash{Nonce: 27, BlockNumber: 100, BlockRange: 15}

	cache.Add(signer, testChainID, digest, []byte{1, 2, 3}, leash)

	sig, ok := cache.Signature(signer, digest)
	if !ok || !bytes.Equal(sig, []byte{1, 2, 3}) {
		t.Errorf("Signature = %v, %v; want [1 2 3], true", sig, ok)
	}
	got, ok := cache.Leash(testChainID)
	if !ok || got != leash {
		t.Errorf("Leash = %+v, %v; want %+v, true", got, ok, leash)
	}
}

func TestCache_Miss(t *testing.T) {
	cache := NewCache()

	if _, ok := cache.Signature(common.HexToAddress("0xaa"), common.HexToHash("0x01")); ok {
		t.Error("Signature hit on empty cache")
	}
	if _, ok := cache.Leash(testChainID); ok {
		t.Error("Leash hit on empty cache")
	}
}

func TestCache_AddRefreshesLeash(t *testing.T) {
	cache := NewCache()
	signer := common.HexToAddress("0xaa")

	cache.Add(signer, testChainID, common.HexToHash("0x01"), []byte{1}, Leash{Nonce: 20})
	cache.Add(signer, testChainID, common.HexToHash("0x02"), []byte{2}, Leash{Nonce: 40})

	leash, _ := cache.Leash(testChainID)
	if leash.Nonce != 40 {
		t.Errorf("leash Nonce = %d, want the last-issued 40", leash.Nonce)
	}
}

func TestCache_CopiesSignature(t *testing.T) {
	cache := NewCache()
	signer := common.HexToAddress("0xaa")
	digest := common.HexToHash("0x01")
	sig := []byte{1, 2, 3}

	cache.Add(signer, testChainID, digest, sig, Leash{})
	sig[0] = 0xff

	cached, _ := cache.Signature(signer, digest)
	if !bytes.Equal(cached, []byte{1, 2, 3}) {
		t.Error("cached signature aliases caller-owned slice")
	}
}

func TestCache_Clear(t *testing.T) {
	cache := NewCache()
	signer := common.HexToAddress("0xaa")
	digest := common.HexToHash("0x01")

	cache.Add(signer, testChainID, digest, []byte{1}, Leash{Nonce: 20})
	cache.Clear()

	if _, ok := cache.Signature(signer, digest); ok {
		t.Error("signature survived Clear")
	}
	if _, ok := cache.Leash(testChainID); ok {
		t.Error("leash survived Clear")
	}
}
