package sapphire

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
)

const testMnemonic = "test test test test test test test test test test test junk"

func TestNewWalletFromHex(t *testing.T) {
	// Well-known throwaway development key.
	wallet, err := NewWalletFromHex("0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80", nil)
	if err != nil {
		t.Fatalf("NewWalletFromHex: %v", err)
	}
	want := "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	if got := wallet.Address().Hex(); got != want {
		t.Errorf("Address = %s, want %s", got, want)
	}
}

func TestNewWalletFromHex_Invalid(t *testing.T) {
	if _, err := NewWalletFromHex("not-a-key", nil); err == nil {
		t.Error("invalid key accepted")
	}
}

func TestNewWalletFromMnemonic(t *testing.T) {
	a, err := NewWalletFromMnemonic(testMnemonic, nil)
	if err != nil {
		t.Fatalf("NewWalletFromMnemonic: %v", err)
	}
	b, err := NewWalletFromMnemonic(testMnemonic, nil)
	if err != nil {
		t.Fatalf("NewWalletFromMnemonic: %v", err)
	}
	if a.Address() != b.Address() {
		t.Error("mnemonic derivation is not deterministic")
	}
}

func TestNewWalletFromMnemonic_Invalid(t *testing.T) {
	if _, err := NewWalletFromMnemonic("definitely not a mnemonic", nil); err == nil {
		t.Error("invalid mnemonic accepted")
	}
}

func TestWallet_SignTypedData_Recoverable(t *testing.T) {
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	wallet := NewWallet(key, nil)

	data := testSignableCall().TypedData(testChainID)
	signature, err := wallet.SignTypedData(context.Background(), data)
	if err != nil {
		t.Fatalf("SignTypedData: %v", err)
	}
	if len(signature) != 65 {
		t.Fatalf("signature length = %d, want 65", len(signature))
	}
	if v := signature[64]; v != 27 && v != 28 {
		t.Errorf("recovery id = %d, want 27 or 28", v)
	}

	digest, err := TypedDataHash(data)
	if err != nil {
		t.Fatalf("TypedDataHash: %v", err)
	}
	recovery := append([]byte(nil), signature...)
	recovery[64] -= 27
	pub, err := crypto.SigToPub(digest.Bytes(), recovery)
	if err != nil {
		t.Fatalf("SigToPub: %v", err)
	}
	if got := crypto.PubkeyToAddress(*pub); got != wallet.Address() {
		t.Errorf("recovered %s, want %s", got, wallet.Address())
	}
}

func TestWallet_Detached(t *testing.T) {
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	wallet := NewWallet(key, nil)

	if wallet.ChainSource() != nil {
		t.Error("detached wallet reports a chain source")
	}
	if _, err := wallet.PendingNonce(context.Background()); !errors.Is(err, ErrNoChainSource) {
		t.Errorf("PendingNonce err = %v, want ErrNoChainSource", err)
	}
}
