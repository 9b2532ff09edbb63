package bitcoin

import (
	"bytes"
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/Amr-9/bitkeygen/pkg/base58"
	"github.com/Amr-9/bitkeygen/pkg/curve"
)

func newEngine(t *testing.T) *curve.Engine {
	t.Helper()
	e, err := curve.New()
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

// keyFromInt builds a private key holding d.
func keyFromInt(t *testing.T, d int64) *curve.PrivateKey {
	t.Helper()
	k, err := curve.NewPrivateKey(big.NewInt(d).FillBytes(make([]byte, curve.PrivateKeySize)))
	require.NoError(t, err)
	t.Cleanup(k.Zero)
	return k
}

// drawKey draws a valid private key. The caller owns the key.
func drawKey(t *rapid.T) *curve.PrivateKey {
	raw := rapid.SliceOfN(rapid.Byte(), curve.PrivateKeySize, curve.PrivateKeySize).
		Filter(curve.ValidScalar).
		Draw(t, "scalar")

	k, err := curve.NewPrivateKey(raw)
	if err != nil {
		t.Fatalf("NewPrivateKey: %v", err)
	}
	return k
}

// encodeCheck appends a valid checksum to payload and Base58-encodes it, so
// tests can craft well-formed strings with arbitrary contents.
func encodeCheck(payload []byte) string {
	sum := checksum(payload)
	return base58.Encode(append(bytes.Clone(payload), sum[:]...))
}

func requireKind(t require.TestingT, err error, kind error) {
	require.Error(t, err)
	require.True(t, errors.Is(err, kind), "got %v, want kind %v", err, kind)
}
