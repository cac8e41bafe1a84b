package sapphire

import (
	"context"

	"github.com/cloudflare/circl/dh/x25519"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
)

// callDataPublicKeyMethod is the runtime RPC that serves the current
// calldata public key.
const callDataPublicKeyMethod = "oasis_callDataPublicKey"

// CallDataPublicKey is the runtime's ephemeral calldata public key, used
// to construct an encrypting cipher. The runtime rotates it by epoch; the
// signature covers the key and checksum and is verified runtime-side.
type CallDataPublicKey struct {
	PublicKey hexutil.Bytes `json:"key"`
	Checksum  hexutil.Bytes `json:"checksum"`
	Signature hexutil.Bytes `json:"signature"`
	Epoch     uint64        `json:"epoch,omitempty"`
}

// RuntimePublicKey fetches the runtime's current calldata public key.
func RuntimePublicKey(ctx context.Context, client *rpc.Client) (*CallDataPublicKey, error) {
	var key CallDataPublicKey
	if err := client.CallContext(ctx, &key, callDataPublicKeyMethod); err != nil {
		return nil, &QueryError{Op: "calldata public key", Err: err}
	}
	if len(key.PublicKey) != x25519.Size {
		return nil, ErrInvalidRuntimePublicKey
	}
	return &key, nil
}

// NewEncryptingCipher fetches the runtime's calldata public key and
// returns a cipher encrypting to it.
func NewEncryptingCipher(ctx context.Context, client *rpc.Client) (*X25519DeoxysIICipher, error) {
	key, err := RuntimePublicKey(ctx, client)
	if err != nil {
		return nil, err
	}
	var peer [x25519.Size]byte
	copy(peer[:], key.PublicKey)
	return NewX25519DeoxysIICipher(peer)
}
