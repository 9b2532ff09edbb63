package curve

import (
	"io"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/Amr-9/bitkeygen/pkg/keyerr"
	"github.com/Amr-9/bitkeygen/pkg/secmem"
)

// maxSampleAttempts bounds the rejection loop. A healthy 256-bit source is
// rejected with probability below 2^-127 per draw, so hitting the bound means
// the source is broken.
const maxSampleAttempts = 64

// AcceptFunc reports whether a candidate drawn by Sample lies in the target
// set.
type AcceptFunc func(candidate []byte) bool

// Sample fills dst with len(dst) bytes from r, drawing again until accept
// returns true. Candidates are never reduced or adjusted, so when r is uniform
// over all len(dst)-byte strings the result is uniform over the accepted set.
//
// It fails with keyerr.ErrCryptoFailure if r errors or maxAttempts draws are
// all rejected. dst is wiped on failure.
func Sample(r io.Reader, dst []byte, accept AcceptFunc, maxAttempts int) error {
	const op = "curve.Sample"

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if _, err := io.ReadFull(r, dst); err != nil {
			secmem.Wipe(dst)
			return keyerr.Wrap(op, keyerr.ErrCryptoFailure, err)
		}
		if accept(dst) {
			return nil
		}
	}

	secmem.Wipe(dst)
	return keyerr.New(op, keyerr.ErrCryptoFailure,
		"no acceptable candidate in %d draws", maxAttempts)
}

// SampleScalar fills dst with a private scalar drawn uniformly from [1, n-1]
// by rejection sampling over 256-bit strings from r.
func SampleScalar(r io.Reader, dst []byte) error {
	if len(dst) != PrivateKeySize {
		return keyerr.New("curve.SampleScalar", keyerr.ErrInvalidInput,
			"scalar buffer is %d bytes, want %d", len(dst), PrivateKeySize)
	}
	return Sample(r, dst, ValidScalar, maxSampleAttempts)
}

// ValidScalar reports whether b is a 32-byte big-endian integer d with
// 0 < d < n.
func ValidScalar(b []byte) bool {
	if len(b) != PrivateKeySize {
		return false
	}

	var s btcec.ModNScalar
	overflow := s.SetByteSlice(b)
	valid := !overflow && !s.IsZero()
	s.Zero()
	return valid
}
