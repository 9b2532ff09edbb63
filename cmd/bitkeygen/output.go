package main

import (
	"fmt"
	"os"
)

// openOutput creates or truncates the key output file. It is readable only
// by the owner and hidden on Windows.
func openOutput(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, fmt.Errorf("opening output file: %w", err)
	}
	// An existing file keeps its mode through O_TRUNC.
	if err := f.Chmod(0600); err != nil {
		f.Close()
		return nil, fmt.Errorf("restricting output file: %w", err)
	}
	if err := hideFile(path); err != nil {
		f.Close()
		return nil, fmt.Errorf("hiding output file: %w", err)
	}
	return f, nil
}
