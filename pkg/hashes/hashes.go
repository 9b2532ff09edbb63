// Package hashes provides the digests Bitcoin builds its identifiers from.
package hashes

import (
	"crypto/sha256"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"golang.org/x/crypto/ripemd160"
)

// Digest sizes in bytes.
const (
	SHA256Size  = sha256.Size
	Hash160Size = ripemd160.Size
)

// SHA256 computes SHA-256(data).
func SHA256(data []byte) [SHA256Size]byte {
	return sha256.Sum256(data)
}

// DoubleSHA256 computes SHA-256(SHA-256(data)), the digest behind every
// Base58Check checksum.
func DoubleSHA256(data []byte) [SHA256Size]byte {
	var out [SHA256Size]byte
	copy(out[:], chainhash.DoubleHashB(data))
	return out
}

// Hash160 computes RIPEMD160(SHA256(data)), the 20-byte fingerprint carried
// in P2PKH and P2SH addresses.
func Hash160(data []byte) [Hash160Size]byte {
	sha := sha256.Sum256(data)
	h := ripemd160.New()
	h.Write(sha[:])

	var out [Hash160Size]byte
	copy(out[:], h.Sum(nil))
	return out
}
