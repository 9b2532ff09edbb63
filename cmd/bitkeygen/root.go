package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Amr-9/bitkeygen/internal/config"
	"github.com/Amr-9/bitkeygen/internal/logger"
	"github.com/Amr-9/bitkeygen/internal/ui"
)

// app carries the state shared by all commands of one invocation.
type app struct {
	in      io.Reader
	console *ui.Console
	log     zerolog.Logger

	cfgPath string
	cfg     *config.Config
}

// execute runs the command line and returns the process exit status.
func execute(args []string, in io.Reader, out, errOut io.Writer) int {
	a := &app{
		in: in,
		console: &ui.Console{
			Out:   out,
			Err:   errOut,
			Color: ui.IsTerminal(errOut),
		},
		log: zerolog.Nop(),
	}

	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	if err := root.Execute(); err != nil {
		if !a.quiet(root) {
			a.console.PrintError(err)
		}
		return 1
	}
	return 0
}

func (a *app) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bitkeygen",
		Short: "Generate Bitcoin private keys, WIF strings and addresses",
		Long: `bitkeygen generates secp256k1 private keys from the operating system's
entropy source and prints them as hex, WIF or binary, optionally with their
P2PKH or P2SH address. Subcommands decode and build WIF strings and addresses.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runGenerate(cmd.Context())
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.cfgPath, "config", "", "config file (default ./bitkeygen.yaml)")
	pf.String("log-level", "info", "log level: debug, info, warn, error")
	pf.Bool("log-pretty", false, "human-readable log output")
	pf.BoolP("quiet", "q", false, "suppress error messages")

	f := cmd.Flags()
	f.IntP("count", "c", 1, "number of keys to generate")
	f.StringP("format", "f", ui.FormatHex, "private key format: hex, wif, binary")
	f.BoolP("with-address", "a", false, "print the address next to each key")
	f.BoolP("compressed", "p", false, "use compressed public keys")
	f.BoolP("testnet", "t", false, "generate testnet addresses")
	f.String("type", "p2pkh", "address type: p2pkh, p2sh")
	f.Int("workers", 0, "number of worker goroutines (0 = one per CPU)")
	f.String("prefix", "", "required address characters after the network symbol")
	f.String("suffix", "", "required address suffix")
	f.BoolP("verbose", "v", false, "print every encoding of each key")
	f.StringP("output", "o", "", "write keys to a file readable only by the owner")

	cmd.AddCommand(
		a.newWIFCmd(),
		a.newAddressCmd(),
		newVersionCmd(),
	)
	return cmd
}

// setup loads the configuration and builds the logger before any command
// runs.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.cfgPath, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.New(a.console.Err, cfg.Log.Level, cfg.Log.Pretty)

	a.log.Debug().
		Str("command", cmd.CommandPath()).
		Str("config", a.cfgPath).
		Msg("configuration loaded")
	return nil
}

// quiet reports whether error output is suppressed. Errors raised before the
// configuration loaded fall back to the flag value.
func (a *app) quiet(root *cobra.Command) bool {
	if a.cfg != nil {
		return a.cfg.Output.Quiet
	}
	q, err := root.PersistentFlags().GetBool("quiet")
	return err == nil && q
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "bitkeygen %s\n", version)
			return err
		},
	}
}
