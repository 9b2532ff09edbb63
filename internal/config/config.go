package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Amr-9/bitkeygen/internal/ui"
	"github.com/Amr-9/bitkeygen/pkg/generator"
	"github.com/Amr-9/bitkeygen/pkg/generator/bitcoin"
	"github.com/Amr-9/bitkeygen/pkg/keyerr"
)

// Output formats for generated private keys.
const (
	FormatHex    = ui.FormatHex
	FormatWIF    = ui.FormatWIF
	FormatBinary = ui.FormatBinary
)

// Config holds all application configuration.
type Config struct {
	Keygen KeygenConfig `mapstructure:"keygen"`
	Output OutputConfig `mapstructure:"output"`
	Log    LogConfig    `mapstructure:"log"`
}

type KeygenConfig struct {
	Count       int    `mapstructure:"count"`
	Format      string `mapstructure:"format"` // hex, wif, binary
	WithAddress bool   `mapstructure:"with_address"`
	Compressed  bool   `mapstructure:"compressed"`
	Testnet     bool   `mapstructure:"testnet"`
	AddressType string `mapstructure:"address_type"` // p2pkh, p2sh
	Workers     int    `mapstructure:"workers"`      // 0 = one per CPU
	Prefix      string `mapstructure:"prefix"`
	Suffix      string `mapstructure:"suffix"`
}

type OutputConfig struct {
	Verbose bool   `mapstructure:"verbose"`
	Quiet   bool   `mapstructure:"quiet"`
	File    string `mapstructure:"file"` // empty = stdout
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"count":        "keygen.count",
	"format":       "keygen.format",
	"with-address": "keygen.with_address",
	"compressed":   "keygen.compressed",
	"testnet":      "keygen.testnet",
	"type":         "keygen.address_type",
	"workers":      "keygen.workers",
	"prefix":       "keygen.prefix",
	"suffix":       "keygen.suffix",
	"verbose":      "output.verbose",
	"quiet":        "output.quiet",
	"output":       "output.file",
	"log-level":    "log.level",
	"log-pretty":   "log.pretty",
}

// Load reads configuration from defaults, an optional YAML file, environment
// variables and flags, each layer overriding the previous one.
// Environment prefix: BITKEYGEN_. Nested keys use underscore:
// BITKEYGEN_KEYGEN_COUNT, BITKEYGEN_LOG_LEVEL, etc.
// Only flags that were set on the command line override other sources;
// flags may be nil.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("keygen.count", 1)
	v.SetDefault("keygen.format", FormatHex)
	v.SetDefault("keygen.with_address", false)
	v.SetDefault("keygen.compressed", false)
	v.SetDefault("keygen.testnet", false)
	v.SetDefault("keygen.address_type", "p2pkh")
	v.SetDefault("keygen.workers", 0)
	v.SetDefault("keygen.prefix", "")
	v.SetDefault("keygen.suffix", "")
	v.SetDefault("output.verbose", false)
	v.SetDefault("output.quiet", false)
	v.SetDefault("output.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("bitkeygen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: BITKEYGEN_KEYGEN_COUNT -> keygen.count
	v.SetEnvPrefix("BITKEYGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("binding flag %s: %w", name, err)
			}
		}
	}

	// Read config file (not required; flags and env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Keygen.Format = strings.ToLower(cfg.Keygen.Format)
	cfg.Keygen.AddressType = strings.ToLower(cfg.Keygen.AddressType)

	return &cfg, nil
}

// Validate checks the key generation settings.
func (c *Config) Validate() error {
	const op = "config.Validate"

	k := c.Keygen
	if k.Count < 1 {
		return keyerr.New(op, keyerr.ErrInvalidInput, "count must be at least 1, got %d", k.Count)
	}
	if k.Workers < 0 {
		return keyerr.New(op, keyerr.ErrInvalidInput, "workers must not be negative, got %d", k.Workers)
	}

	switch k.Format {
	case FormatHex, FormatWIF, FormatBinary:
	default:
		return keyerr.New(op, keyerr.ErrInvalidInput, "unknown format %q (want hex, wif or binary)", k.Format)
	}

	addrType, err := c.AddressType()
	if err != nil {
		return err
	}
	if _, err := bitcoin.VersionByte(addrType, c.Network()); err != nil {
		return keyerr.New(op, keyerr.ErrInvalidInput, "%s addresses are not supported on %s", addrType, c.Network())
	}

	for _, p := range []struct{ name, value string }{{"prefix", k.Prefix}, {"suffix", k.Suffix}} {
		if invalid := bitcoin.InvalidChars(p.value); len(invalid) > 0 {
			return keyerr.New(op, keyerr.ErrInvalidInput,
				"%s %q contains non-Base58 characters %q (not allowed: 0, O, I, l)", p.name, p.value, string(invalid))
		}
	}
	return nil
}

// Network returns the configured network.
func (c *Config) Network() generator.Network {
	if c.Keygen.Testnet {
		return generator.Testnet
	}
	return generator.Mainnet
}

// AddressType parses the configured address type.
func (c *Config) AddressType() (generator.AddressType, error) {
	return ParseAddressType(c.Keygen.AddressType)
}

// GeneratorConfig converts the validated settings into a batch configuration.
func (c *Config) GeneratorConfig() (*generator.Config, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	addrType, err := c.AddressType()
	if err != nil {
		return nil, err
	}
	return &generator.Config{
		Count:       c.Keygen.Count,
		Network:     c.Network(),
		AddressType: addrType,
		Compressed:  c.Keygen.Compressed,
		Prefix:      c.Keygen.Prefix,
		Suffix:      c.Keygen.Suffix,
		Workers:     c.Keygen.Workers,
	}, nil
}

// ParseAddressType maps p2pkh or p2sh, in any case, to an AddressType.
func ParseAddressType(s string) (generator.AddressType, error) {
	switch strings.ToLower(s) {
	case "p2pkh", "":
		return generator.AddressTypeP2PKH, nil
	case "p2sh":
		return generator.AddressTypeP2SH, nil
	default:
		return 0, keyerr.New("config.ParseAddressType", keyerr.ErrInvalidInput,
			"unknown address type %q (want p2pkh or p2sh)", s)
	}
}
