package bitcoin

import (
	"crypto/subtle"

	"github.com/Amr-9/bitkeygen/pkg/hashes"
)

// ChecksumSize is the length of a Base58Check checksum.
const ChecksumSize = 4

// checksum returns the first four bytes of SHA256d(payload).
func checksum(payload []byte) [ChecksumSize]byte {
	h := hashes.DoubleSHA256(payload)

	var sum [ChecksumSize]byte
	copy(sum[:], h[:ChecksumSize])
	return sum
}

func verifyChecksum(payload, sum []byte) bool {
	want := checksum(payload)
	return subtle.ConstantTimeCompare(want[:], sum) == 1
}
