package sapphire

import (
	"errors"
	"fmt"
	"testing"
)

func TestSentinelErrors(t *testing.T) {
	sentinels := []struct {
		name string
		err  error
	}{
		{"ErrGasFieldConflict", ErrGasFieldConflict},
		{"ErrNoChainSource", ErrNoChainSource},
		{"ErrMissingChainID", ErrMissingChainID},
		{"ErrInvalidRuntimePublicKey", ErrInvalidRuntimePublicKey},
	}

	for _, s := range sentinels {
		t.Run(s.name, func(t *testing.T) {
			if s.err == nil {
				t.Error("sentinel error is nil")
			}
			if s.err.Error() == "" {
				t.Error("sentinel error has empty message")
			}
		})
	}
}

func TestQueryError_Error(t *testing.T) {
	err := &QueryError{Op: "pending nonce", Err: errors.New("connection refused")}
	expected := "query pending nonce: connection refused"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestQueryError_Unwrap(t *testing.T) {
	inner := errors.New("timeout")
	err := fmt.Errorf("fetching leash: %w", &QueryError{Op: "block header", Err: inner})

	var qerr *QueryError
	if !errors.As(err, &qerr) {
		t.Fatal("errors.As failed to find QueryError")
	}
	if qerr.Op != "block header" {
		t.Errorf("Op = %q, want %q", qerr.Op, "block header")
	}
	if !errors.Is(err, inner) {
		t.Error("errors.Is failed to find wrapped error")
	}
}

func TestSignError_Error(t *testing.T) {
	err := &SignError{Err: errors.New("user rejected request")}
	expected := "sign call: user rejected request"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestSignError_Unwrap(t *testing.T) {
	inner := errors.New("wallet locked")
	err := &SignError{Err: inner}

	if !errors.Is(err, inner) {
		t.Error("errors.Is failed to find wrapped error")
	}
}
