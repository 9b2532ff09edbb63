// Package generator defines the shared vocabulary for key generation:
// networks, address types, batch configuration, results and the Generator
// contract implemented by the worker pool.
package generator

import (
	"context"

	"github.com/btcsuite/btcd/chaincfg"

	"github.com/Amr-9/bitkeygen/pkg/curve"
)

// Network represents the Bitcoin network an address is valid on.
type Network int

const (
	Mainnet Network = iota // Bitcoin mainnet
	Testnet                // Bitcoin testnet3
)

// String returns the network name.
func (n Network) String() string {
	switch n {
	case Mainnet:
		return "mainnet"
	case Testnet:
		return "testnet"
	default:
		return "unknown"
	}
}

// Params returns the btcd chain parameters for the network.
func (n Network) Params() *chaincfg.Params {
	if n == Testnet {
		return &chaincfg.TestNet3Params
	}
	return &chaincfg.MainNetParams
}

// AddressType represents the Base58Check address format.
type AddressType int

const (
	AddressTypeP2PKH AddressType = iota // Pay to public key hash (1..., m/n...)
	AddressTypeP2SH                     // Pay to script hash (3...)
)

// String returns the address type name.
func (a AddressType) String() string {
	switch a {
	case AddressTypeP2PKH:
		return "P2PKH"
	case AddressTypeP2SH:
		return "P2SH"
	default:
		return "unknown"
	}
}

// Version and marker bytes of the Base58Check formats.
const (
	VersionP2PKHMainnet byte = 0x00
	VersionP2PKHTestnet byte = 0x6F
	VersionP2SHMainnet  byte = 0x05
	VersionWIF          byte = 0x80
	WIFCompressedMarker byte = 0x01
)

// Config holds the configuration for a key generation batch.
type Config struct {
	Count       int         // Number of keys to produce
	Network     Network     // Address network
	AddressType AddressType // Address format
	Compressed  bool        // Derive compressed public keys
	Prefix      string      // Optional Base58 pattern after the leading version symbol
	Suffix      string      // Optional Base58 pattern at the end of the address
	Workers     int         // Number of concurrent workers
}

// Result is one generated key pair with its encodings. It owns the private
// key; callers must call Destroy once the result has been consumed.
type Result struct {
	PrivateKey *curve.PrivateKey
	PublicKey  *curve.PublicKey
	Address    string // Base58Check address
	WIF        string // Wallet Import Format private key
	Compressed bool
}

// Destroy zeroes the private key.
func (r *Result) Destroy() {
	r.PrivateKey.Zero()
}

// Stats holds real-time performance statistics.
type Stats struct {
	Attempts    uint64  // Total number of key pairs generated
	Found       uint64  // Key pairs delivered as results
	HashRate    float64 // Key pairs per second
	ElapsedSecs float64 // Time elapsed since start
}

// Generator defines the contract for key generation backends.
type Generator interface {
	// Start begins generating key pairs with the given configuration. Results
	// arrive on the returned channel, which is closed when config.Count
	// results were delivered, ctx was cancelled, or a fatal error occurred.
	Start(ctx context.Context, config *Config) (<-chan Result, error)

	// Wait blocks until the run has finished and returns its error, if any.
	Wait() error

	// Stats returns the current performance statistics.
	// This method is safe to call concurrently from any goroutine.
	Stats() Stats

	// Name returns the implementation name.
	Name() string
}
