package main

import (
	"encoding/hex"
	"strings"

	"github.com/Amr-9/bitkeygen/pkg/curve"
	"github.com/Amr-9/bitkeygen/pkg/generator/bitcoin"
	"github.com/Amr-9/bitkeygen/pkg/keyerr"
	"github.com/Amr-9/bitkeygen/pkg/secmem"
)

// parseHexKey decodes a 64-digit hex private key, with or without a 0x
// prefix. The decoded bytes never leave a wiped buffer.
func parseHexKey(s string) (*curve.PrivateKey, error) {
	const op = "parseHexKey"

	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if len(s) != hex.EncodedLen(curve.PrivateKeySize) {
		return nil, keyerr.New(op, keyerr.ErrInvalidInput,
			"hex private key has %d digits, want %d", len(s), hex.EncodedLen(curve.PrivateKeySize))
	}

	buf := secmem.New(curve.PrivateKeySize)
	defer buf.Destroy()

	if _, err := hex.Decode(buf.Bytes(), []byte(s)); err != nil {
		return nil, keyerr.Wrap(op, keyerr.ErrEncoding, err)
	}
	return curve.NewPrivateKey(buf.Bytes())
}

// parseKey accepts a hex private key or a WIF string. wif reports whether the
// input was WIF, in which case compressed comes from the WIF marker.
func parseKey(s string) (k *curve.PrivateKey, compressed, wif bool, err error) {
	if len(strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")) == hex.EncodedLen(curve.PrivateKeySize) {
		k, err = parseHexKey(s)
		return k, false, false, err
	}

	k, compressed, err = bitcoin.DecodeWIF(s)
	return k, compressed, true, err
}
