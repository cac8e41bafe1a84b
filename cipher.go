package sapphire

import (
	"crypto/cipher"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/cloudflare/circl/dh/x25519"
	"github.com/fxamacker/cbor/v2"
	"github.com/oasisprotocol/deoxysii"

	"github.com/party-for-illuminati/sapphire-paratime/internal/mrae"
)

// Envelope format identifiers. The runtime dispatches decryption on the
// format tag of a call's data record.
const (
	// EnvelopeFormatPlain marks an unencrypted body. It is the zero value
	// and is omitted on the wire.
	EnvelopeFormatPlain uint64 = 0
	// EnvelopeFormatX25519DeoxysII marks a body encrypted with
	// X25519-Deoxys-II-256-128.
	EnvelopeFormatX25519DeoxysII uint64 = 1
)

// Envelope is the data record a cipher produces for a call body. The body
// shape is owned by the cipher that produced it; this package only carries
// it into the outer signed-call record.
type Envelope struct {
	Body   cbor.RawMessage `cbor:"body"`
	Format uint64          `cbor:"format,omitempty"`
}

// Cipher turns a plaintext call body into an envelope the runtime can
// decrypt. Implementations own the envelope body shape.
type Cipher interface {
	EncryptEnvelope(plaintext []byte) (*Envelope, error)
}

// PlainCipher passes the call body through unencrypted.
type PlainCipher struct{}

// EncryptEnvelope wraps the plaintext in a format-plain envelope.
func (PlainCipher) EncryptEnvelope(plaintext []byte) (*Envelope, error) {
	body, err := wireEncode(plaintext)
	if err != nil {
		return nil, err
	}
	return &Envelope{Format: EnvelopeFormatPlain, Body: body}, nil
}

// encryptedBody is the body shape produced by X25519DeoxysIICipher: the
// client's ephemeral public key, the AEAD nonce, and the ciphertext.
type encryptedBody struct {
	PK    []byte `cbor:"pk"`
	Nonce []byte `cbor:"nonce"`
	Data  []byte `cbor:"data"`
}

// X25519DeoxysIICipher encrypts call bodies to the runtime's calldata
// public key using an ephemeral X25519 keypair and Deoxys-II-256-128.
// One cipher instance holds one derived session key; construct a new
// cipher to rotate the ephemeral key.
type X25519DeoxysIICipher struct {
	publicKey x25519.Key
	aead      cipher.AEAD
	rng       io.Reader
}

// NewX25519DeoxysIICipher creates a cipher encrypting to the given
// runtime calldata public key with a fresh ephemeral keypair.
func NewX25519DeoxysIICipher(peerPublicKey [x25519.Size]byte) (*X25519DeoxysIICipher, error) {
	keypair, err := mrae.GenerateKeyPair(nil)
	if err != nil {
		return nil, err
	}
	return newX25519DeoxysIICipher(keypair, x25519.Key(peerPublicKey), rand.Reader)
}

func newX25519DeoxysIICipher(keypair *mrae.KeyPair, peer x25519.Key, rng io.Reader) (*X25519DeoxysIICipher, error) {
	key, err := mrae.DeriveSymmetricKey(peer, keypair.PrivateKey)
	if err != nil {
		return nil, err
	}
	aead, err := deoxysii.New(key[:])
	if err != nil {
		return nil, err
	}
	return &X25519DeoxysIICipher{
		publicKey: keypair.PublicKey,
		aead:      aead,
		rng:       rng,
	}, nil
}

// PublicKey returns the cipher's ephemeral X25519 public key, as placed in
// the envelope body.
func (c *X25519DeoxysIICipher) PublicKey() [x25519.Size]byte {
	return c.publicKey
}

// EncryptEnvelope encrypts the plaintext under a fresh nonce and wraps it
// in a format-x25519deoxysii envelope.
func (c *X25519DeoxysIICipher) EncryptEnvelope(plaintext []byte) (*Envelope, error) {
	nonce := make([]byte, deoxysii.NonceSize)
	if _, err := io.ReadFull(c.rng, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}
	ciphertext := c.aead.Seal(nil, nonce, plaintext, nil)

	body, err := wireEncode(encryptedBody{
		PK:    c.publicKey[:],
		Nonce: nonce,
		Data:  ciphertext,
	})
	if err != nil {
		return nil, err
	}
	return &Envelope{Format: EnvelopeFormatX25519DeoxysII, Body: body}, nil
}

// DecryptEnvelope opens an envelope produced for this cipher's session
// key, e.g. an encrypted call result. The peer must have encrypted to the
// cipher's ephemeral public key.
func (c *X25519DeoxysIICipher) DecryptEnvelope(envelope *Envelope) ([]byte, error) {
	if envelope == nil {
		return nil, fmt.Errorf("nil envelope")
	}
	if envelope.Format != EnvelopeFormatX25519DeoxysII {
		return nil, fmt.Errorf("unsupported envelope format %d", envelope.Format)
	}
	var body encryptedBody
	if err := cbor.Unmarshal(envelope.Body, &body); err != nil {
		return nil, fmt.Errorf("decode envelope body: %w", err)
	}
	if len(body.Nonce) != deoxysii.NonceSize {
		return nil, fmt.Errorf("envelope nonce must be %d bytes, got %d", deoxysii.NonceSize, len(body.Nonce))
	}
	plaintext, err := c.aead.Open(nil, body.Nonce, body.Data, nil)
	if err != nil {
		return nil, fmt.Errorf("open envelope: %w", err)
	}
	return plaintext, nil
}
