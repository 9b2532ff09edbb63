package bitcoin

import (
	"github.com/Amr-9/bitkeygen/pkg/base58"
	"github.com/Amr-9/bitkeygen/pkg/curve"
	"github.com/Amr-9/bitkeygen/pkg/generator"
	"github.com/Amr-9/bitkeygen/pkg/keyerr"
	"github.com/Amr-9/bitkeygen/pkg/secmem"
)

// Decoded WIF lengths.
const (
	WIFRawSizeUncompressed = 1 + curve.PrivateKeySize + ChecksumSize     // 37
	WIFRawSizeCompressed   = 1 + curve.PrivateKeySize + 1 + ChecksumSize // 38
)

// EncodeWIF converts a private key to Wallet Import Format.
// WIF = Base58Check(0x80 + privKey [+ 0x01 if the public key is compressed])
func EncodeWIF(k *curve.PrivateKey, compressed bool) (string, error) {
	const op = "bitcoin.EncodeWIF"

	if k.Destroyed() {
		return "", keyerr.New(op, keyerr.ErrInvalidInput, "private key has been zeroed")
	}
	if !k.Valid() {
		return "", keyerr.New(op, keyerr.ErrRange, "scalar not in [1, n-1]")
	}

	buf := secmem.New(WIFRawSizeCompressed)
	defer buf.Destroy()

	raw := buf.Bytes()
	raw[0] = generator.VersionWIF
	copy(raw[1:], k.Bytes())
	n := 1 + curve.PrivateKeySize
	if compressed {
		raw[n] = generator.WIFCompressedMarker
		n++
	}
	sum := checksum(raw[:n])
	n += copy(raw[n:], sum[:])

	text := secmem.New(base58.EncodedLen(n))
	defer text.Destroy()

	m, err := base58.EncodeTo(text.Bytes(), raw[:n])
	if err != nil {
		return "", err
	}
	return string(text.Bytes()[:m]), nil
}

// DecodeWIF parses a Wallet Import Format string into a private key and the
// compression flag it carries.
func DecodeWIF(s string) (*curve.PrivateKey, bool, error) {
	const op = "bitcoin.DecodeWIF"

	if s == "" {
		return nil, false, keyerr.New(op, keyerr.ErrInvalidInput, "empty WIF")
	}

	buf := secmem.New(WIFRawSizeCompressed)
	defer buf.Destroy()

	n, err := base58.DecodeTo(buf.Bytes(), s)
	if err != nil {
		return nil, false, err
	}
	if n != WIFRawSizeUncompressed && n != WIFRawSizeCompressed {
		return nil, false, keyerr.New(op, keyerr.ErrEncoding,
			"decoded %d bytes, want %d or %d", n, WIFRawSizeUncompressed, WIFRawSizeCompressed)
	}

	raw := buf.Bytes()[:n]
	if raw[0] != generator.VersionWIF {
		return nil, false, keyerr.New(op, keyerr.ErrInvalidInput, "unrecognized prefix 0x%02x", raw[0])
	}

	compressed := n == WIFRawSizeCompressed
	if compressed && raw[1+curve.PrivateKeySize] != generator.WIFCompressedMarker {
		return nil, false, keyerr.New(op, keyerr.ErrInvalidInput,
			"unrecognized compression marker 0x%02x", raw[1+curve.PrivateKeySize])
	}

	if !verifyChecksum(raw[:n-ChecksumSize], raw[n-ChecksumSize:]) {
		return nil, false, keyerr.New(op, keyerr.ErrChecksumMismatch, "WIF checksum does not match")
	}

	k, err := curve.NewPrivateKey(raw[1 : 1+curve.PrivateKeySize])
	if err != nil {
		return nil, false, err
	}
	return k, compressed, nil
}
