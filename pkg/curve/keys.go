package curve

import (
	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/Amr-9/bitkeygen/pkg/keyerr"
	"github.com/Amr-9/bitkeygen/pkg/secmem"
)

// Key sizes in bytes.
const (
	PrivateKeySize             = 32
	PubKeyBytesLenCompressed   = 33
	PubKeyBytesLenUncompressed = 65
)

// PrivateKey is a secp256k1 scalar d with 0 < d < n, stored big-endian in a
// buffer that is wiped by Zero.
type PrivateKey struct {
	buf *secmem.Buffer
}

// NewPrivateKey copies b into a new PrivateKey. b must be 32 bytes and in
// range.
func NewPrivateKey(b []byte) (*PrivateKey, error) {
	const op = "curve.NewPrivateKey"

	if len(b) != PrivateKeySize {
		return nil, keyerr.New(op, keyerr.ErrInvalidInput,
			"private key is %d bytes, want %d", len(b), PrivateKeySize)
	}
	if !ValidScalar(b) {
		return nil, keyerr.New(op, keyerr.ErrRange, "scalar not in [1, n-1]")
	}
	return &PrivateKey{buf: secmem.From(b)}, nil
}

// Bytes returns the 32-byte big-endian scalar. The slice aliases the key's
// storage and is zeroed by Zero.
func (k *PrivateKey) Bytes() []byte {
	if k == nil {
		return nil
	}
	return k.buf.Bytes()
}

// Valid reports whether the key holds a scalar in [1, n-1].
func (k *PrivateKey) Valid() bool {
	return !k.Destroyed() && ValidScalar(k.buf.Bytes())
}

// Destroyed reports whether Zero has been called.
func (k *PrivateKey) Destroyed() bool {
	return k == nil || k.buf.Destroyed()
}

// Zero wipes the scalar. The key is unusable afterwards.
func (k *PrivateKey) Zero() {
	if k == nil {
		return
	}
	k.buf.Destroy()
}

// PublicKey is an SEC-encoded secp256k1 point, either compressed (33 bytes)
// or uncompressed (65 bytes). The encoding is fixed when the key is created.
type PublicKey struct {
	raw []byte
}

// ParsePublicKey parses an SEC-encoded point, keeping its encoding.
func ParsePublicKey(b []byte) (*PublicKey, error) {
	const op = "curve.ParsePublicKey"

	if len(b) != PubKeyBytesLenCompressed && len(b) != PubKeyBytesLenUncompressed {
		return nil, keyerr.New(op, keyerr.ErrInvalidInput,
			"public key is %d bytes, want %d or %d",
			len(b), PubKeyBytesLenCompressed, PubKeyBytesLenUncompressed)
	}

	pub, err := btcec.ParsePubKey(b)
	if err != nil {
		return nil, keyerr.Wrap(op, keyerr.ErrInvalidInput, err)
	}
	return newPublicKey(pub, len(b) == PubKeyBytesLenCompressed), nil
}

func newPublicKey(pub *btcec.PublicKey, compressed bool) *PublicKey {
	if compressed {
		return &PublicKey{raw: pub.SerializeCompressed()}
	}
	return &PublicKey{raw: pub.SerializeUncompressed()}
}

// Bytes returns a copy of the SEC encoding.
func (p *PublicKey) Bytes() []byte {
	return append([]byte(nil), p.raw...)
}

// Compressed reports whether the key uses the 33-byte encoding.
func (p *PublicKey) Compressed() bool {
	return len(p.raw) == PubKeyBytesLenCompressed
}
