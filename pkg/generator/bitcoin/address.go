package bitcoin

import (
	"github.com/btcsuite/btcd/btcutil"

	"github.com/Amr-9/bitkeygen/pkg/base58"
	"github.com/Amr-9/bitkeygen/pkg/curve"
	"github.com/Amr-9/bitkeygen/pkg/generator"
	"github.com/Amr-9/bitkeygen/pkg/hashes"
	"github.com/Amr-9/bitkeygen/pkg/keyerr"
)

// AddressRawSize is the decoded length of a P2PKH or P2SH address:
// version(1) || hash160(20) || checksum(4).
const AddressRawSize = 1 + hashes.Hash160Size + ChecksumSize

// Address is a decoded Base58Check address.
type Address struct {
	Version  byte
	Hash160  [hashes.Hash160Size]byte
	Checksum [ChecksumSize]byte
}

func newAddress(version byte, h160 [hashes.Hash160Size]byte) *Address {
	a := &Address{Version: version, Hash160: h160}
	raw := a.Raw()
	a.Checksum = checksum(raw[:1+hashes.Hash160Size])
	return a
}

// VersionByte maps an address type and network to its version byte.
// P2SH is only supported on mainnet.
func VersionByte(addrType generator.AddressType, network generator.Network) (byte, error) {
	switch {
	case addrType == generator.AddressTypeP2PKH && network == generator.Mainnet:
		return generator.VersionP2PKHMainnet, nil
	case addrType == generator.AddressTypeP2PKH && network == generator.Testnet:
		return generator.VersionP2PKHTestnet, nil
	case addrType == generator.AddressTypeP2SH && network == generator.Mainnet:
		return generator.VersionP2SHMainnet, nil
	default:
		return 0, keyerr.New("bitcoin.BuildAddress", keyerr.ErrInvalidInput,
			"unsupported address type %s on %s", addrType, network)
	}
}

// BuildAddress creates an address from a public key.
// Address = Base58Check(version + HASH160(pubkey))
func BuildAddress(pub *curve.PublicKey, addrType generator.AddressType, network generator.Network) (*Address, error) {
	if pub == nil {
		return nil, keyerr.New("bitcoin.BuildAddress", keyerr.ErrInvalidInput, "nil public key")
	}

	version, err := VersionByte(addrType, network)
	if err != nil {
		return nil, err
	}
	return newAddress(version, hashes.Hash160(pub.Bytes())), nil
}

// DeriveAddress derives the public key of k and builds its address.
func DeriveAddress(e *curve.Engine, k *curve.PrivateKey, compressed bool,
	addrType generator.AddressType, network generator.Network) (*Address, error) {

	pub, err := e.DerivePublicKey(k, compressed)
	if err != nil {
		return nil, err
	}
	return BuildAddress(pub, addrType, network)
}

// ParseAddress decodes a Base58Check address and verifies its length,
// checksum and version byte, in that order.
func ParseAddress(s string) (*Address, error) {
	const op = "bitcoin.ParseAddress"

	if s == "" {
		return nil, keyerr.New(op, keyerr.ErrInvalidInput, "empty address")
	}

	var raw [AddressRawSize]byte
	n, err := base58.DecodeTo(raw[:], s)
	if err != nil {
		return nil, err
	}
	if n != AddressRawSize {
		return nil, keyerr.New(op, keyerr.ErrEncoding,
			"decoded %d bytes, want %d", n, AddressRawSize)
	}

	body, sum := raw[:AddressRawSize-ChecksumSize], raw[AddressRawSize-ChecksumSize:]
	if !verifyChecksum(body, sum) {
		return nil, keyerr.New(op, keyerr.ErrChecksumMismatch, "address checksum does not match")
	}

	switch raw[0] {
	case generator.VersionP2PKHMainnet, generator.VersionP2PKHTestnet, generator.VersionP2SHMainnet:
	default:
		return nil, keyerr.New(op, keyerr.ErrInvalidInput, "unrecognized version byte 0x%02x", raw[0])
	}

	a := &Address{Version: raw[0]}
	copy(a.Hash160[:], raw[1:1+hashes.Hash160Size])
	copy(a.Checksum[:], sum)
	return a, nil
}

// Raw returns the 25-byte binary form.
func (a *Address) Raw() [AddressRawSize]byte {
	var raw [AddressRawSize]byte
	raw[0] = a.Version
	copy(raw[1:], a.Hash160[:])
	copy(raw[1+hashes.Hash160Size:], a.Checksum[:])
	return raw
}

// String returns the Base58Check text form.
func (a *Address) String() string {
	raw := a.Raw()
	return base58.Encode(raw[:])
}

// Type returns the address type implied by the version byte.
func (a *Address) Type() generator.AddressType {
	if a.Version == generator.VersionP2SHMainnet {
		return generator.AddressTypeP2SH
	}
	return generator.AddressTypeP2PKH
}

// Network returns the network implied by the version byte.
func (a *Address) Network() generator.Network {
	if a.Version == generator.VersionP2PKHTestnet {
		return generator.Testnet
	}
	return generator.Mainnet
}

// ToBtcutil converts the address to its btcutil representation.
func (a *Address) ToBtcutil() (btcutil.Address, error) {
	params := a.Network().Params()
	if a.Type() == generator.AddressTypeP2SH {
		return btcutil.NewAddressScriptHashFromHash(a.Hash160[:], params)
	}
	return btcutil.NewAddressPubKeyHash(a.Hash160[:], params)
}
