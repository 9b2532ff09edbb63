// Package bitcoin builds and parses Base58Check addresses (P2PKH, P2SH) and
// Wallet Import Format private keys.
package bitcoin

import (
	"github.com/Amr-9/bitkeygen/pkg/generator"
)

// AddressPrefixes returns the symbols an address of the given type and
// network can start with.
func AddressPrefixes(addrType generator.AddressType, network generator.Network) []string {
	switch {
	case addrType == generator.AddressTypeP2SH:
		return []string{"3"}
	case network == generator.Testnet:
		return []string{"m", "n"}
	default:
		return []string{"1"}
	}
}

// AddressDescription returns a human-readable description of an address type.
func AddressDescription(addrType generator.AddressType, network generator.Network) string {
	switch {
	case addrType == generator.AddressTypeP2SH:
		return "P2SH (3...)"
	case addrType == generator.AddressTypeP2PKH && network == generator.Testnet:
		return "Testnet P2PKH (m.../n...)"
	case addrType == generator.AddressTypeP2PKH:
		return "Legacy P2PKH (1...)"
	default:
		return "Unknown"
	}
}
