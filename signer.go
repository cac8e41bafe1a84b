package sapphire

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// Signer is the capability surface the call-construction protocol needs
// from a signing identity. Concrete signers (in-process keys, remote
// wallets) are adapted onto this interface; see Wallet for the in-process
// adapter.
type Signer interface {
	// Address returns the signer's account address.
	Address() common.Address

	// PendingNonce returns the signer's pending-state transaction count.
	PendingNonce(ctx context.Context) (uint64, error)

	// SignTypedData signs the EIP-712 digest of the given typed data and
	// returns the raw 65-byte signature.
	SignTypedData(ctx context.Context, data apitypes.TypedData) ([]byte, error)

	// ChainSource returns the signer's attached chain-state source, or nil
	// when the signer is not connected to a chain.
	ChainSource() ChainSource
}

// ChainSource supplies the chain state a leash is anchored to.
// *ethclient.Client satisfies it directly.
type ChainSource interface {
	// HeaderByNumber returns the header at the given height, or the latest
	// header when number is nil.
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)

	// ChainID returns the chain id of the connected network.
	ChainID(ctx context.Context) (*big.Int, error)
}
