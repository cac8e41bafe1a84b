package sapphire

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// DefaultGasLimit is the gas limit assigned to a call that specifies
	// none. The runtime treats it as a sentinel; real gas accounting is
	// assigned server-side.
	DefaultGasLimit = 30_000_000

	// DefaultGasPrice is the sentinel gas price for signed calls. Signed
	// calls carry no real fee; the runtime assigns gas economics itself.
	DefaultGasPrice = 1

	// DefaultValue is the value attached to a call that specifies none.
	DefaultValue = 0
)

// Call is a caller-supplied read request. From is required; every other
// field is optional. Gas and GasLimit are two historical names for the
// same field: at most one may be set.
type Call struct {
	// From is the address the call is signed by.
	From common.Address
	// To is the contract being called, or nil for an unaddressed call.
	To *common.Address
	// Gas is the legacy name for the gas limit. Mutually exclusive with
	// GasLimit.
	Gas uint64
	// GasLimit is the gas limit for the call. Mutually exclusive with Gas.
	GasLimit uint64
	// GasPrice is the gas price, or nil for the sentinel default.
	GasPrice *big.Int
	// Value is the value transferred, or nil for the sentinel default.
	Value *big.Int
	// Data is the call input, or nil for an empty body.
	Data []byte
}

// SignableCall is the canonical form of a call used for typed-data hashing
// and signing: every optional field resolved to its default and the leash
// attached.
type SignableCall struct {
	From     common.Address
	To       common.Address
	GasLimit uint64
	GasPrice *big.Int
	Value    *big.Int
	Data     []byte
	Leash    Leash
}

// NormalizeCall maps a Call and its leash into the canonical signable
// shape. It is pure: no I/O, no mutation of the input.
//
// An absent To resolves to the zero address (an unaddressed call targets
// no contract but is still signable). Exactly one of Gas and GasLimit may
// be set; both set is a programmer error rejected with ErrGasFieldConflict,
// and neither set resolves to DefaultGasLimit.
func NormalizeCall(call Call, leash Leash) (SignableCall, error) {
	gasLimit, err := resolveGasLimit(call)
	if err != nil {
		return SignableCall{}, err
	}

	normalized := SignableCall{
		From:     call.From,
		GasLimit: gasLimit,
		GasPrice: big.NewInt(DefaultGasPrice),
		Value:    big.NewInt(DefaultValue),
		Data:     []byte{},
		Leash:    leash,
	}
	if call.To != nil {
		normalized.To = *call.To
	}
	if call.GasPrice != nil {
		normalized.GasPrice = new(big.Int).Set(call.GasPrice)
	}
	if call.Value != nil {
		normalized.Value = new(big.Int).Set(call.Value)
	}
	if len(call.Data) > 0 {
		normalized.Data = append([]byte(nil), call.Data...)
	}
	return normalized, nil
}

// resolveGasLimit picks the single present member of the legacy gas-field
// pair.
func resolveGasLimit(call Call) (uint64, error) {
	switch {
	case call.Gas != 0 && call.GasLimit != 0:
		return 0, ErrGasFieldConflict
	case call.Gas != 0:
		return call.Gas, nil
	case call.GasLimit != 0:
		return call.GasLimit, nil
	default:
		return DefaultGasLimit, nil
	}
}
