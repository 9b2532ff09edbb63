package ui

import (
	"encoding/hex"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/Amr-9/bitkeygen/pkg/curve"
	"github.com/Amr-9/bitkeygen/pkg/generator"
	"github.com/Amr-9/bitkeygen/pkg/generator/bitcoin"
	"github.com/Amr-9/bitkeygen/pkg/keyerr"
	"github.com/Amr-9/bitkeygen/pkg/secmem"
)

// ANSI color codes
const (
	ColorReset  = "\033[0m"
	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorRed    = "\033[31m"
	ColorPurple = "\033[35m"
	ColorBold   = "\033[1m"
	ColorDim    = "\033[2m"
)

// Private key output formats.
const (
	FormatHex    = "hex"
	FormatWIF    = "wif"
	FormatBinary = "binary"
)

// Console writes decorated status output. Key material always goes to Out
// undecorated; Color only affects status lines written to Err.
type Console struct {
	Out   io.Writer
	Err   io.Writer
	Color bool
}

func (c *Console) paint(color, s string) string {
	if !c.Color {
		return s
	}
	return color + s + ColorReset
}

// FormatPrivateKey renders k as hex, WIF or binary (space-separated 8-bit
// groups, one per byte).
func FormatPrivateKey(k *curve.PrivateKey, format string, compressed bool) (string, error) {
	if k.Destroyed() {
		return "", keyerr.New("ui.FormatPrivateKey", keyerr.ErrInvalidInput, "private key has been zeroed")
	}

	switch format {
	case FormatHex:
		return hex.EncodeToString(k.Bytes()), nil
	case FormatWIF:
		return bitcoin.EncodeWIF(k, compressed)
	case FormatBinary:
		return FormatBinaryBytes(k.Bytes()), nil
	default:
		return "", keyerr.New("ui.FormatPrivateKey", keyerr.ErrInvalidInput, "unknown format %q", format)
	}
}

// FormatBinaryBytes renders each byte as eight binary digits, most
// significant bit first, separated by spaces.
func FormatBinaryBytes(b []byte) string {
	if len(b) == 0 {
		return ""
	}

	buf := secmem.New(len(b)*9 - 1)
	defer buf.Destroy()

	out := buf.Bytes()[:0]
	for i, v := range b {
		if i > 0 {
			out = append(out, ' ')
		}
		for j := 7; j >= 0; j-- {
			out = append(out, '0'+(v>>j)&1)
		}
	}
	return string(out)
}

// PrintKey writes one result as a single line: the private key in format,
// followed by the address when withAddress is set.
func (c *Console) PrintKey(r *generator.Result, format string, withAddress bool) error {
	key, err := FormatPrivateKey(r.PrivateKey, format, r.Compressed)
	if err != nil {
		return err
	}

	line := key
	if withAddress {
		line += " " + r.Address
	}
	_, err = fmt.Fprintln(c.Out, line)
	return err
}

// PrintVerbose writes every encoding of one result followed by a separator.
func (c *Console) PrintVerbose(r *generator.Result, withAddress bool) error {
	hexKey, err := FormatPrivateKey(r.PrivateKey, FormatHex, r.Compressed)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Private Key (Hex): %s\n", hexKey)
	fmt.Fprintf(&b, "Private Key (WIF): %s\n", r.WIF)
	fmt.Fprintf(&b, "Public Key (Hex): %s\n", hex.EncodeToString(r.PublicKey.Bytes()))
	if withAddress {
		fmt.Fprintf(&b, "Bitcoin Address: %s\n", r.Address)
	}
	b.WriteString("---\n")

	_, err = io.WriteString(c.Out, b.String())
	return err
}

// PrintWIFInfo writes the result of decoding a WIF string.
func (c *Console) PrintWIFInfo(k *curve.PrivateKey, compressed bool, addr *bitcoin.Address) error {
	hexKey, err := FormatPrivateKey(k, FormatHex, compressed)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(c.Out, "Private Key (Hex): %s\nCompressed: %t\nBitcoin Address: %s\n",
		hexKey, compressed, addr)
	return err
}

// PrintAddressInfo writes the fields of a parsed address.
func (c *Console) PrintAddressInfo(addr *bitcoin.Address) error {
	_, err := fmt.Fprintf(c.Out,
		"Address: %s\nVersion: 0x%02x\nNetwork: %s\nType: %s (%s)\nHash160: %s\nChecksum: %s\n",
		addr, addr.Version, addr.Network(), addr.Type(),
		bitcoin.AddressDescription(addr.Type(), addr.Network()),
		hex.EncodeToString(addr.Hash160[:]), hex.EncodeToString(addr.Checksum[:]))
	return err
}

// PrintSearchInfo displays the vanity search configuration.
func (c *Console) PrintSearchInfo(config *generator.Config, difficulty uint64) {
	symbol := strings.Join(bitcoin.AddressPrefixes(config.AddressType, config.Network), "|")

	var target strings.Builder
	target.WriteString(symbol)
	target.WriteString(config.Prefix)
	target.WriteString("...")
	target.WriteString(config.Suffix)

	fmt.Fprintf(c.Err, "%s %s %s\n",
		c.paint(ColorGreen+ColorBold, "Searching"),
		c.paint(ColorCyan+ColorBold, target.String()),
		c.paint(ColorDim, fmt.Sprintf("(1/%s, %d keys)", FormatNumber(difficulty), config.Count)))
}

// PrintProgress shows an animated progress bar for a vanity search.
func (c *Console) PrintProgress(stats generator.Stats, difficulty uint64, frame int) {
	spinners := []string{"◐", "◓", "◑", "◒"}
	spinner := spinners[frame%len(spinners)]

	attempts := float64(stats.Attempts)
	diff := float64(difficulty)
	if diff == 0 {
		diff = 1
	}

	ratio := attempts / diff
	progress := 1.0 - math.Pow(0.5, 2.0*ratio)

	barWidth := 40
	filled := int(progress * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("▓", filled) + strings.Repeat("░", barWidth-filled)

	fmt.Fprintf(c.Err, "\r%s %s %s │ %s │ %s found │ %s",
		c.paint(ColorCyan, spinner),
		c.paint(ColorDim, bar),
		c.paint(ColorGreen+ColorBold, FormatHashRate(stats.HashRate)),
		c.paint(ColorYellow, FormatNumber(stats.Attempts)),
		FormatNumber(stats.Found),
		FormatDuration(time.Duration(stats.ElapsedSecs*float64(time.Second))))
}

// PrintSummary writes the final statistics of a run.
func (c *Console) PrintSummary(stats generator.Stats, cancelled bool) {
	label := c.paint(ColorGreen+ColorBold, "Done")
	if cancelled {
		label = c.paint(ColorYellow+ColorBold, "Cancelled")
	}
	fmt.Fprintf(c.Err, "%s │ %s keys │ %s attempts │ %s\n",
		label,
		FormatNumber(stats.Found),
		FormatNumber(stats.Attempts),
		FormatDuration(time.Duration(stats.ElapsedSecs*float64(time.Second))))
}

// PrintError writes err as a single line.
func (c *Console) PrintError(err error) {
	fmt.Fprintf(c.Err, "%s %v\n", c.paint(ColorRed+ColorBold, "Error:"), err)
}

// ClearLine clears the current status line.
func (c *Console) ClearLine() {
	fmt.Fprint(c.Err, "\r"+strings.Repeat(" ", 94)+"\r")
}

// FormatHashRate formats hash rate nicely
func FormatHashRate(rate float64) string {
	if rate >= 1000000 {
		return fmt.Sprintf("%.1fM/s", rate/1000000)
	}
	if rate >= 1000 {
		return fmt.Sprintf("%.1fK/s", rate/1000)
	}
	return fmt.Sprintf("%.0f/s", rate)
}

// FormatNumber adds commas to large numbers
func FormatNumber(n uint64) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	s := fmt.Sprintf("%d", n)
	result := make([]byte, 0, len(s)+(len(s)-1)/3)
	for i, c := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}
	return string(result)
}

// FormatDuration formats duration in a human-readable way
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		m := int(d.Minutes())
		s := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm %ds", m, s)
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh %dm", h, m)
}
