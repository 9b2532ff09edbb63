package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Amr-9/bitkeygen/pkg/curve"
	"github.com/Amr-9/bitkeygen/pkg/generator"
	"github.com/Amr-9/bitkeygen/pkg/generator/bitcoin"
)

func (a *app) newWIFCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wif",
		Short: "Encode and decode Wallet Import Format private keys",
	}

	decode := &cobra.Command{
		Use:   "decode [wif]",
		Short: "Decode a WIF string; reads stdin when no argument is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWIFDecode(args)
		},
	}

	encode := &cobra.Command{
		Use:   "encode [hex]",
		Short: "Encode a 32-byte hex private key as WIF; reads stdin when no argument is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			compressed, err := cmd.Flags().GetBool("compressed")
			if err != nil {
				return err
			}
			return a.runWIFEncode(args, compressed)
		},
	}
	encode.Flags().BoolP("compressed", "p", false, "mark the key as using a compressed public key")

	cmd.AddCommand(decode, encode)
	return cmd
}

func (a *app) runWIFDecode(args []string) error {
	s, err := a.console.ReadValue(a.in, args, "WIF", true)
	if err != nil {
		return err
	}

	k, compressed, err := bitcoin.DecodeWIF(s)
	if err != nil {
		return err
	}
	defer k.Zero()

	engine, err := curve.New()
	if err != nil {
		return err
	}
	defer engine.Close()

	addr, err := bitcoin.DeriveAddress(engine, k, compressed, generator.AddressTypeP2PKH, generator.Mainnet)
	if err != nil {
		return err
	}

	a.log.Debug().Bool("compressed", compressed).Msg("decoded WIF")
	return a.console.PrintWIFInfo(k, compressed, addr)
}

func (a *app) runWIFEncode(args []string, compressed bool) error {
	s, err := a.console.ReadValue(a.in, args, "private key (hex)", true)
	if err != nil {
		return err
	}

	k, err := parseHexKey(s)
	if err != nil {
		return err
	}
	defer k.Zero()

	wif, err := bitcoin.EncodeWIF(k, compressed)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.console.Out, wif)
	return err
}
