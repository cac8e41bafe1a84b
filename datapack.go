package sapphire

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/fxamacker/cbor/v2"
)

// wireEncMode is the canonical CBOR encoding used for everything that
// crosses the wire. Canonical map ordering keeps encoding idempotent and
// bit-exact with the runtime's decoder.
var wireEncMode = mustEncMode()

func mustEncMode() cbor.EncMode {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}

func wireEncode(v interface{}) ([]byte, error) {
	encoded, err := wireEncMode.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode wire record: %w", err)
	}
	return encoded, nil
}

// leashWire is the snake-cased leash record carried in the signed-call
// envelope.
type leashWire struct {
	Nonce       uint64 `cbor:"nonce"`
	BlockNumber uint64 `cbor:"block_number"`
	BlockHash   []byte `cbor:"block_hash"`
	BlockRange  uint64 `cbor:"block_range"`
}

// callBody wraps a plaintext call body in the signed-call envelope.
type callBody struct {
	Body []byte `cbor:"body"`
}

// signedCallRecord is the outer envelope carried in a call's data field:
// leash and signature always, data iff the originating call had a body.
type signedCallRecord struct {
	Data      interface{} `cbor:"data,omitempty"`
	Leash     leashWire   `cbor:"leash"`
	Signature []byte      `cbor:"signature"`
}

// SignedCallDataPack is the immutable result of the call-construction
// protocol: the leash, the signature over the typed-data digest of the
// normalized call, and the raw call body. Encode and EncryptEncode are
// pure projections; the pack itself is never mutated.
type SignedCallDataPack struct {
	Leash     Leash
	Signature []byte
	Data      []byte
}

// NewSignedCallDataPack runs the full construction protocol: build (or
// reuse) the leash, normalize the call, and sign it.
func NewSignedCallDataPack(ctx context.Context, call Call, signer Signer, cache *Cache, opts ...CallOption) (*SignedCallDataPack, error) {
	cfg := newCallConfig(opts)

	leash, err := buildLeash(ctx, signer, cache, cfg)
	if err != nil {
		return nil, err
	}
	normalized, err := NormalizeCall(call, leash)
	if err != nil {
		return nil, err
	}
	signature, err := signCall(ctx, normalized, signer, cache, cfg)
	if err != nil {
		return nil, err
	}

	pack := &SignedCallDataPack{
		Leash:     leash,
		Signature: signature,
	}
	if len(call.Data) > 0 {
		pack.Data = append([]byte(nil), call.Data...)
	}
	return pack, nil
}

// Encode serializes the pack with a plaintext body and hex-encodes the
// result for transport as a call's data field.
func (p *SignedCallDataPack) Encode() (string, error) {
	var data interface{}
	if len(p.Data) > 0 {
		data = callBody{Body: p.Data}
	}
	return p.encodeRecord(data)
}

// EncryptEncode is Encode with the call body run through the cipher
// first. A pack without a body encodes identically to Encode.
func (p *SignedCallDataPack) EncryptEncode(cipher Cipher) (string, error) {
	if len(p.Data) == 0 {
		return p.Encode()
	}
	envelope, err := cipher.EncryptEnvelope(p.Data)
	if err != nil {
		return "", fmt.Errorf("encrypt call body: %w", err)
	}
	return p.encodeRecord(envelope)
}

func (p *SignedCallDataPack) encodeRecord(data interface{}) (string, error) {
	record := signedCallRecord{
		Data: data,
		Leash: leashWire{
			Nonce:       p.Leash.Nonce,
			BlockNumber: p.Leash.BlockNumber,
			BlockHash:   p.Leash.BlockHash.Bytes(),
			BlockRange:  p.Leash.BlockRange,
		},
		Signature: p.Signature,
	}
	encoded, err := wireEncode(record)
	if err != nil {
		return "", err
	}
	return hexutil.Encode(encoded), nil
}
