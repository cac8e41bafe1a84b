package sapphire

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// Structured-signing domain separator for signed calls. Both values must
// match the runtime's verifier exactly.
const (
	SignedCallDomainName    = "oasis-runtime-sdk/evm: signed query"
	SignedCallDomainVersion = "1.0.0"
)

// TypedData builds the EIP-712 payload binding the normalized call and its
// leash, domain-separated by the fixed name/version pair and the chain id.
func (c SignableCall) TypedData(chainID uint64) apitypes.TypedData {
	return apitypes.TypedData{
		Types: apitypes.Types{
			"EIP712Domain": {
				{Name: "name", Type: "string"},
				{Name: "version", Type: "string"},
				{Name: "chainId", Type: "uint256"},
			},
			"Call": {
				{Name: "from", Type: "address"},
				{Name: "to", Type: "address"},
				{Name: "gasLimit", Type: "uint64"},
				{Name: "gasPrice", Type: "uint256"},
				{Name: "value", Type: "uint256"},
				{Name: "data", Type: "bytes"},
				{Name: "leash", Type: "Leash"},
			},
			"Leash": {
				{Name: "nonce", Type: "uint64"},
				{Name: "blockNumber", Type: "uint64"},
				{Name: "blockHash", Type: "bytes32"},
				{Name: "blockRange", Type: "uint64"},
			},
		},
		PrimaryType: "Call",
		Domain: apitypes.TypedDataDomain{
			Name:    SignedCallDomainName,
			Version: SignedCallDomainVersion,
			ChainId: math.NewHexOrDecimal256(int64(chainID)),
		},
		Message: apitypes.TypedDataMessage{
			"from":     c.From.Hex(),
			"to":       c.To.Hex(),
			"gasLimit": hexutil.EncodeUint64(c.GasLimit),
			"gasPrice": hexutil.EncodeBig(c.GasPrice),
			"value":    hexutil.EncodeBig(c.Value),
			"data":     hexutil.Encode(c.Data),
			"leash": map[string]interface{}{
				"nonce":       hexutil.EncodeUint64(c.Leash.Nonce),
				"blockNumber": hexutil.EncodeUint64(c.Leash.BlockNumber),
				"blockHash":   c.Leash.BlockHash.Hex(),
				"blockRange":  hexutil.EncodeUint64(c.Leash.BlockRange),
			},
		},
	}
}

// TypedDataHash computes the canonical EIP-712 digest of the typed data.
// The digest doubles as the signature cache key.
func TypedDataHash(data apitypes.TypedData) (common.Hash, error) {
	digest, _, err := apitypes.TypedDataAndHash(data)
	if err != nil {
		return common.Hash{}, fmt.Errorf("hash typed data: %w", err)
	}
	return common.BytesToHash(digest), nil
}

// SignCall obtains a signature over the typed-data digest of the
// normalized call.
//
// The chain id comes from WithChainID, else from the signer's chain
// source; neither available is a configuration error. The signer is
// always invoked, even when the cache holds a signature for the same
// digest: cached entries only feed the leash shortcut in BuildLeash, never
// replace a live signature. The fresh signature is stored together with
// the call's leash, which refreshes the chain's cached leash as a side
// effect.
//
// Signer failures (rejection, locked wallet) surface as a SignError and
// are not retried or cached.
func SignCall(ctx context.Context, call SignableCall, signer Signer, cache *Cache, opts ...CallOption) ([]byte, error) {
	cfg := newCallConfig(opts)
	return signCall(ctx, call, signer, cache, cfg)
}

func signCall(ctx context.Context, call SignableCall, signer Signer, cache *Cache, cfg *callConfig) ([]byte, error) {
	var chainID uint64
	switch {
	case cfg.chainID != nil:
		chainID = cfg.chainID.Uint64()
	case signer.ChainSource() != nil:
		id, err := signer.ChainSource().ChainID(ctx)
		if err != nil {
			return nil, &QueryError{Op: "chain id", Err: err}
		}
		chainID = id.Uint64()
	default:
		return nil, ErrMissingChainID
	}

	data := call.TypedData(chainID)
	digest, err := TypedDataHash(data)
	if err != nil {
		return nil, err
	}

	signature, err := signer.SignTypedData(ctx, data)
	if err != nil {
		return nil, &SignError{Err: err}
	}

	if cache != nil {
		cache.Add(signer.Address(), chainID, digest, signature, call.Leash)
	}
	return signature, nil
}
