package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/Amr-9/bitkeygen/pkg/keyerr"
	"github.com/Amr-9/bitkeygen/pkg/secmem"
)

// ReadValue returns args[0] when present. Otherwise it prompts on Err and
// reads one line from in. Secret values read from a terminal are not echoed.
func (c *Console) ReadValue(in io.Reader, args []string, label string, secret bool) (string, error) {
	if len(args) > 0 {
		return strings.TrimSpace(args[0]), nil
	}

	var (
		value string
		err   error
	)
	if IsTerminal(in) {
		fmt.Fprintf(c.Err, "%s: ", c.paint(ColorCyan, label))
		if secret {
			value, err = readHidden(in.(*os.File))
			fmt.Fprintln(c.Err)
		} else {
			value, err = readLine(in)
		}
	} else {
		value, err = readLine(in)
	}
	if err != nil {
		return "", err
	}

	if value == "" {
		return "", keyerr.New("ui.ReadValue", keyerr.ErrInvalidInput, "no %s given", label)
	}
	return value, nil
}

func readLine(in io.Reader) (string, error) {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func readHidden(f *os.File) (string, error) {
	raw, err := term.ReadPassword(int(f.Fd()))
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	defer secmem.Wipe(raw)
	return strings.TrimSpace(string(raw)), nil
}

// IsTerminal reports whether v is an *os.File attached to a terminal.
func IsTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
