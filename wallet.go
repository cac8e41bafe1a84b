package sapphire

import (
	"context"
	"crypto/ecdsa"
	"crypto/sha256"
	"fmt"
	"io"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
	"github.com/tyler-smith/go-bip39"
	"golang.org/x/crypto/hkdf"
)

// walletKDFInfo domain-separates the wallet signing key derived from a
// mnemonic seed.
const walletKDFInfo = "sapphire-paratime/signed-call/v1"

// Backend is the chain access a Wallet needs beyond signing. It is
// satisfied by *ethclient.Client.
type Backend interface {
	ChainSource
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
}

// Wallet adapts an in-process secp256k1 key (plus an optional chain
// backend) onto the Signer capability interface.
type Wallet struct {
	key     *ecdsa.PrivateKey
	address common.Address
	backend Backend
}

// NewWallet creates a Wallet from a private key. backend may be nil for a
// detached wallet; such a wallet can still sign when every chain-derived
// input is supplied via overrides.
func NewWallet(key *ecdsa.PrivateKey, backend Backend) *Wallet {
	return &Wallet{
		key:     key,
		address: crypto.PubkeyToAddress(key.PublicKey),
		backend: backend,
	}
}

// NewWalletFromHex creates a Wallet from a hex-encoded private key.
func NewWalletFromHex(hexKey string, backend Backend) (*Wallet, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(hexKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	return NewWallet(key, backend), nil
}

// NewWalletFromMnemonic derives a Wallet's signing key from a BIP-39
// mnemonic: the seed is expanded with HKDF-SHA-256 under walletKDFInfo
// into a secp256k1 scalar.
func NewWalletFromMnemonic(mnemonic string, backend Backend) (*Wallet, error) {
	mnemonic = strings.TrimSpace(mnemonic)
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, fmt.Errorf("invalid BIP-39 mnemonic")
	}
	seed := bip39.NewSeed(mnemonic, "")

	var scalar [32]byte
	rd := hkdf.New(sha256.New, seed, nil, []byte(walletKDFInfo))
	if _, err := io.ReadFull(rd, scalar[:]); err != nil {
		return nil, fmt.Errorf("derive signing key: %w", err)
	}
	key, err := crypto.ToECDSA(scalar[:])
	if err != nil {
		return nil, fmt.Errorf("derive signing key: %w", err)
	}
	return NewWallet(key, backend), nil
}

// Address returns the wallet's account address.
func (w *Wallet) Address() common.Address {
	return w.address
}

// PendingNonce returns the wallet account's pending-state transaction
// count from the attached backend.
func (w *Wallet) PendingNonce(ctx context.Context) (uint64, error) {
	if w.backend == nil {
		return 0, ErrNoChainSource
	}
	return w.backend.PendingNonceAt(ctx, w.address)
}

// SignTypedData signs the EIP-712 digest of the typed data and returns a
// 65-byte signature with the recovery id offset to 27, the convention the
// runtime's verifier expects.
func (w *Wallet) SignTypedData(_ context.Context, data apitypes.TypedData) ([]byte, error) {
	digest, err := TypedDataHash(data)
	if err != nil {
		return nil, err
	}
	signature, err := crypto.Sign(digest.Bytes(), w.key)
	if err != nil {
		return nil, err
	}
	signature[64] += 27
	return signature, nil
}

// ChainSource returns the wallet's attached backend, or nil for a
// detached wallet.
func (w *Wallet) ChainSource() ChainSource {
	if w.backend == nil {
		return nil
	}
	return w.backend
}

var _ Signer = (*Wallet)(nil)
