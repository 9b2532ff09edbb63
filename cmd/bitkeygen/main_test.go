package main

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amr-9/bitkeygen/pkg/curve"
	"github.com/Amr-9/bitkeygen/pkg/generator"
	"github.com/Amr-9/bitkeygen/pkg/generator/bitcoin"
)

const (
	oneHex                = "0000000000000000000000000000000000000000000000000000000000000001"
	oneWIF                = "5HpHagT65TZzG1PH3CSu63k8DbpvD8s5ip4nEB3kEsreAnchuDf"
	oneWIFCompressed      = "KwDiBf89QgGbjEhKnhXJuH7LrciVrZi3qYjgd9M7rFU73sVHnoWn"
	oneAddress            = "1EHNa6Q4Jz2uvNExL497mE43ikXhwF6kZm"
	oneAddressCompressed  = "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH"
	genesisAddress        = "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNa"
	genesisAddressHash160 = "62e907b15cbf27d5425399ebf6f0fb50ebb88f18"
)

// run executes the command line with stdin and returns stdout, stderr and the
// exit status.
func run(t *testing.T, stdin string, args ...string) (string, string, int) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := execute(args, strings.NewReader(stdin), &out, &errOut)
	return out.String(), errOut.String(), code
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

// requireKeyMatchesAddress checks that the hex or WIF key derives address.
func requireKeyMatchesAddress(t *testing.T, key, address string, addrType generator.AddressType, network generator.Network) {
	t.Helper()

	k, compressed, _, err := parseKey(key)
	require.NoError(t, err)
	defer k.Zero()

	e, err := curve.New()
	require.NoError(t, err)
	defer e.Close()

	addr, err := bitcoin.DeriveAddress(e, k, compressed, addrType, network)
	require.NoError(t, err)
	assert.Equal(t, address, addr.String())
}

func TestGenerate_Default(t *testing.T) {
	out, errOut, code := run(t, "")
	require.Equal(t, 0, code, errOut)

	got := lines(out)
	require.Len(t, got, 1)
	assert.Len(t, got[0], 64)

	raw, err := hex.DecodeString(got[0])
	require.NoError(t, err)
	assert.True(t, curve.ValidScalar(raw))
}

func TestGenerate_Formats(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		addrType generator.AddressType
		network  generator.Network
		check    func(t *testing.T, key, address string)
	}{
		{
			name: "wif compressed with address",
			args: []string{"-c", "3", "-f", "wif", "-a", "-p"},
			check: func(t *testing.T, key, address string) {
				assert.True(t, key[0] == 'K' || key[0] == 'L', key)
				assert.True(t, strings.HasPrefix(address, "1"), address)
			},
		},
		{
			name:    "hex testnet",
			args:    []string{"-c", "2", "-a", "-t"},
			network: generator.Testnet,
			check: func(t *testing.T, key, address string) {
				assert.Len(t, key, 64)
				assert.True(t, address[0] == 'm' || address[0] == 'n', address)
			},
		},
		{
			name:     "p2sh",
			args:     []string{"-a", "--type", "P2SH", "--workers", "2"},
			addrType: generator.AddressTypeP2SH,
			check: func(t *testing.T, key, address string) {
				assert.True(t, strings.HasPrefix(address, "3"), address)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, errOut, code := run(t, "", tt.args...)
			require.Equal(t, 0, code, errOut)

			for _, line := range lines(out) {
				fields := strings.Fields(line)
				require.Len(t, fields, 2, line)
				tt.check(t, fields[0], fields[1])
				requireKeyMatchesAddress(t, fields[0], fields[1], tt.addrType, tt.network)
			}
		})
	}
}

func TestGenerate_Binary(t *testing.T) {
	out, errOut, code := run(t, "", "-f", "binary")
	require.Equal(t, 0, code, errOut)

	groups := strings.Fields(strings.TrimSpace(out))
	require.Len(t, groups, curve.PrivateKeySize)
	for _, g := range groups {
		assert.Len(t, g, 8)
		assert.Empty(t, strings.Trim(g, "01"))
	}
}

func TestGenerate_Verbose(t *testing.T) {
	out, errOut, code := run(t, "", "-v", "-a", "-c", "2")
	require.Equal(t, 0, code, errOut)

	assert.Equal(t, 2, strings.Count(out, "Private Key (Hex): "))
	assert.Equal(t, 2, strings.Count(out, "Private Key (WIF): "))
	assert.Equal(t, 2, strings.Count(out, "Public Key (Hex): 04"))
	assert.Equal(t, 2, strings.Count(out, "Bitcoin Address: 1"))
	assert.Equal(t, 2, strings.Count(out, "---\n"))
}

func TestGenerate_Suffix(t *testing.T) {
	out, errOut, code := run(t, "", "--suffix", "z", "-c", "2", "-f", "wif")
	require.Equal(t, 0, code, errOut)

	got := lines(out)
	require.Len(t, got, 2)
	for _, line := range got {
		fields := strings.Fields(line)
		require.Len(t, fields, 2, "vanity output includes the address")
		assert.True(t, strings.HasSuffix(fields[1], "z"), fields[1])
		requireKeyMatchesAddress(t, fields[0], fields[1], generator.AddressTypeP2PKH, generator.Mainnet)
	}
}

func TestGenerate_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"zero count", []string{"-c", "0"}, "count must be at least 1"},
		{"unknown format", []string{"-f", "base64"}, "unknown format"},
		{"p2sh on testnet", []string{"--type", "p2sh", "-t"}, "not supported on testnet"},
		{"invalid prefix", []string{"--prefix", "0OIl"}, "non-Base58"},
		{"unknown flag", []string{"--bogus"}, "unknown flag"},
		{"extra argument", []string{"extra"}, "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, errOut, code := run(t, "", tt.args...)
			assert.Equal(t, 1, code)
			assert.Empty(t, out)
			assert.Contains(t, errOut, tt.want)
		})
	}
}

func TestGenerate_Quiet(t *testing.T) {
	out, errOut, code := run(t, "", "-q", "-c", "0")
	assert.Equal(t, 1, code)
	assert.Empty(t, out)
	assert.Empty(t, errOut)
}

func TestGenerate_EnvAndConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "bitkeygen.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("keygen:\n  count: 3\n  format: wif\n"), 0644))

	out, errOut, code := run(t, "", "--config", cfgPath)
	require.Equal(t, 0, code, errOut)
	got := lines(out)
	require.Len(t, got, 3)
	assert.Equal(t, byte('5'), got[0][0])

	t.Setenv("BITKEYGEN_KEYGEN_COUNT", "2")
	out, errOut, code = run(t, "", "--config", cfgPath)
	require.Equal(t, 0, code, errOut)
	assert.Len(t, lines(out), 2)

	// Flags win over both.
	out, errOut, code = run(t, "", "--config", cfgPath, "-c", "1")
	require.Equal(t, 0, code, errOut)
	assert.Len(t, lines(out), 1)

	_, errOut, code = run(t, "", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "reading config file")
}

func TestGenerate_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys.txt")
	require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0644))

	out, errOut, code := run(t, "", "-o", path, "-c", "2", "-a")
	require.Equal(t, 0, code, errOut)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	got := lines(string(data))
	require.Len(t, got, 2)
	for _, line := range got {
		fields := strings.Fields(line)
		require.Len(t, fields, 2)
		requireKeyMatchesAddress(t, fields[0], fields[1], generator.AddressTypeP2PKH, generator.Mainnet)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}

	_, errOut, code = run(t, "", "-o", filepath.Join(t.TempDir(), "missing", "keys.txt"))
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "opening output file")
}

func TestGenerate_DebugLogging(t *testing.T) {
	out, errOut, code := run(t, "", "--log-level", "debug", "-c", "2", "--workers", "1")
	require.Equal(t, 0, code, errOut)
	assert.Len(t, lines(out), 2)

	assert.Contains(t, errOut, "configuration loaded")
	assert.Contains(t, errOut, "worker started")
	assert.Contains(t, errOut, "generation finished")
	// Keys never reach the log.
	for _, key := range lines(out) {
		assert.NotContains(t, errOut, key)
	}
}

func TestWIFDecode(t *testing.T) {
	tests := []struct {
		wif        string
		compressed string
		address    string
	}{
		{oneWIF, "false", oneAddress},
		{oneWIFCompressed, "true", oneAddressCompressed},
	}

	for _, tt := range tests {
		t.Run(tt.wif, func(t *testing.T) {
			want := "Private Key (Hex): " + oneHex + "\n" +
				"Compressed: " + tt.compressed + "\n" +
				"Bitcoin Address: " + tt.address + "\n"

			out, errOut, code := run(t, "", "wif", "decode", tt.wif)
			require.Equal(t, 0, code, errOut)
			assert.Equal(t, want, out)

			// Same result when the WIF arrives on stdin.
			out, errOut, code = run(t, tt.wif+"\n", "wif", "decode")
			require.Equal(t, 0, code, errOut)
			assert.Equal(t, want, out)
		})
	}
}

func TestWIFDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"checksum", []string{"wif", "decode", "5HpHagT65TZzG1PH3CSu63k8DbpvD8s5ip4nEB3kEsreAnchuDg"}, "checksum mismatch"},
		{"illegal character", []string{"wif", "decode", "5HpHagT65TZzG1PH3CSu63k8DbpvD8s5ip4nEB3kEsreAnchuD0"}, "encoding"},
		{"no input", []string{"wif", "decode"}, "no WIF given"},
		{"too many args", []string{"wif", "decode", "a", "b"}, "accepts at most 1 arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, errOut, code := run(t, "", tt.args...)
			assert.Equal(t, 1, code)
			assert.Empty(t, out)
			assert.Contains(t, errOut, tt.want)
		})
	}
}

func TestWIFEncode(t *testing.T) {
	out, errOut, code := run(t, "", "wif", "encode", oneHex)
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, oneWIF+"\n", out)

	out, errOut, code = run(t, "", "wif", "encode", "--compressed", "0x"+oneHex)
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, oneWIFCompressed+"\n", out)

	out, errOut, code = run(t, oneHex+"\n", "wif", "encode", "-p")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, oneWIFCompressed+"\n", out)

	_, errOut, code = run(t, "", "wif", "encode", strings.Repeat("00", 32))
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "range")

	_, errOut, code = run(t, "", "wif", "encode", "abcd")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "want 64")

	_, errOut, code = run(t, "", "wif", "encode", strings.Repeat("zz", 32))
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "encoding")
}

func TestAddressParse(t *testing.T) {
	out, errOut, code := run(t, "", "address", "parse", genesisAddress)
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Address: "+genesisAddress+"\n")
	assert.Contains(t, out, "Version: 0x00\n")
	assert.Contains(t, out, "Network: mainnet\n")
	assert.Contains(t, out, "Hash160: "+genesisAddressHash160+"\n")

	out, errOut, code = run(t, oneAddress, "address", "parse")
	require.Equal(t, 0, code, errOut)
	assert.Contains(t, out, "Address: "+oneAddress+"\n")

	_, errOut, code = run(t, "", "address", "parse", "1A1zP1eP5QGefi2DMPTfTL5SLmv7DivfNb")
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "checksum mismatch")
}

func TestAddressDerive(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"hex uncompressed", []string{oneHex}, oneAddress},
		{"hex compressed", []string{"-p", oneHex}, oneAddressCompressed},
		{"uncompressed WIF", []string{oneWIF}, oneAddress},
		{"compressed WIF", []string{oneWIFCompressed}, oneAddressCompressed},
		{"flag overrides WIF marker", []string{"--compressed=false", oneWIFCompressed}, oneAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, errOut, code := run(t, "", append([]string{"address", "derive"}, tt.args...)...)
			require.Equal(t, 0, code, errOut)
			assert.Equal(t, tt.want+"\n", out)
		})
	}
}

func TestAddressDerive_NetworksAndTypes(t *testing.T) {
	mainnet, err := bitcoin.ParseAddress(oneAddress)
	require.NoError(t, err)

	out, errOut, code := run(t, "", "address", "derive", "--testnet", oneHex)
	require.Equal(t, 0, code, errOut)
	testnet, err := bitcoin.ParseAddress(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, generator.Testnet, testnet.Network())
	assert.Equal(t, mainnet.Hash160, testnet.Hash160)

	out, errOut, code = run(t, "", "address", "derive", "--type", "p2sh", oneHex)
	require.Equal(t, 0, code, errOut)
	p2sh, err := bitcoin.ParseAddress(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, generator.AddressTypeP2SH, p2sh.Type())
	assert.Equal(t, mainnet.Hash160, p2sh.Hash160)

	out, errOut, code = run(t, "", "address", "derive", "-v", "-p", oneHex)
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "Public Key (Hex): 0279be667ef9dcbbac55a06295ce870b07029bfcdb2dce28d959f2815b16f81798\n"+
		"Bitcoin Address: "+oneAddressCompressed+"\n", out)

	_, errOut, code = run(t, "", "address", "derive", "--type", "p2sh", "--testnet", oneHex)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unsupported address type")

	_, errOut, code = run(t, "", "address", "derive", "--type", "p2wpkh", oneHex)
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "unknown address type")
}

func TestVersion(t *testing.T) {
	out, errOut, code := run(t, "", "version")
	require.Equal(t, 0, code, errOut)
	assert.Equal(t, "bitkeygen dev\n", out)
}
