package sapphire

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checks. These are all configuration
// errors: fatal, surfaced immediately, never retried.
var (
	// ErrGasFieldConflict is returned when a call sets both legacy gas
	// fields (Gas and GasLimit).
	ErrGasFieldConflict = errors.New("both gas and gasLimit are set; specify exactly one")

	// ErrNoChainSource is returned when leash construction needs chain
	// state but the signer has no attached chain source and no block
	// override was given.
	ErrNoChainSource = errors.New("signer has no attached chain source")

	// ErrMissingChainID is returned when signing has neither a chain id
	// override nor a chain source to query one from.
	ErrMissingChainID = errors.New("chain id unavailable: no override and no chain source")

	// ErrInvalidRuntimePublicKey is returned when the runtime reports a
	// calldata public key of the wrong size.
	ErrInvalidRuntimePublicKey = errors.New("invalid runtime calldata public key")
)

// QueryError wraps a failed upstream chain-state query (pending nonce,
// block header, chain id, runtime key). It is fatal for the current call;
// the caller owns any retry policy.
type QueryError struct {
	// Op names the failing query.
	Op  string
	Err error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("query %s: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// SignError wraps a failure reported by the signing capability, such as a
// user rejection or a locked wallet. It is not retried and never cached.
type SignError struct {
	Err error
}

func (e *SignError) Error() string {
	return fmt.Sprintf("sign call: %v", e.Err)
}

func (e *SignError) Unwrap() error { return e.Err }
