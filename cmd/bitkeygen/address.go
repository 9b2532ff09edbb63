package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Amr-9/bitkeygen/internal/config"
	"github.com/Amr-9/bitkeygen/pkg/curve"
	"github.com/Amr-9/bitkeygen/pkg/generator"
	"github.com/Amr-9/bitkeygen/pkg/generator/bitcoin"
)

func (a *app) newAddressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "address",
		Short: "Parse and derive Base58Check addresses",
	}

	parse := &cobra.Command{
		Use:   "parse [address]",
		Short: "Show the version, network, type and hash160 of an address",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAddressParse(args)
		},
	}

	var opts deriveOptions
	derive := &cobra.Command{
		Use:   "derive [hex|wif]",
		Short: "Derive the address of a private key; reads stdin when no argument is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.compressedSet = cmd.Flags().Changed("compressed")
			return a.runAddressDerive(args, opts)
		},
	}
	df := derive.Flags()
	df.BoolVarP(&opts.compressed, "compressed", "p", false, "use the compressed public key (default for compressed WIF)")
	df.BoolVarP(&opts.testnet, "testnet", "t", false, "derive a testnet address")
	df.StringVar(&opts.addrType, "type", "p2pkh", "address type: p2pkh, p2sh")
	df.BoolVarP(&opts.verbose, "verbose", "v", false, "also print the public key")

	cmd.AddCommand(parse, derive)
	return cmd
}

type deriveOptions struct {
	compressed    bool
	compressedSet bool
	testnet       bool
	addrType      string
	verbose       bool
}

func (a *app) runAddressParse(args []string) error {
	s, err := a.console.ReadValue(a.in, args, "address", false)
	if err != nil {
		return err
	}

	addr, err := bitcoin.ParseAddress(s)
	if err != nil {
		return err
	}
	return a.console.PrintAddressInfo(addr)
}

func (a *app) runAddressDerive(args []string, opts deriveOptions) error {
	addrType, err := config.ParseAddressType(opts.addrType)
	if err != nil {
		return err
	}
	network := generator.Mainnet
	if opts.testnet {
		network = generator.Testnet
	}

	s, err := a.console.ReadValue(a.in, args, "private key (hex or WIF)", true)
	if err != nil {
		return err
	}

	k, compressed, isWIF, err := parseKey(s)
	if err != nil {
		return err
	}
	defer k.Zero()

	if !isWIF || opts.compressedSet {
		compressed = opts.compressed
	}

	engine, err := curve.New()
	if err != nil {
		return err
	}
	defer engine.Close()

	pub, err := engine.DerivePublicKey(k, compressed)
	if err != nil {
		return err
	}
	addr, err := bitcoin.BuildAddress(pub, addrType, network)
	if err != nil {
		return err
	}

	a.log.Debug().
		Str("network", network.String()).
		Str("type", addrType.String()).
		Bool("compressed", compressed).
		Msg("derived address")

	if opts.verbose {
		_, err = fmt.Fprintf(a.console.Out, "Public Key (Hex): %x\nBitcoin Address: %s\n", pub.Bytes(), addr)
		return err
	}
	_, err = fmt.Fprintln(a.console.Out, addr)
	return err
}
