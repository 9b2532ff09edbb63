//go:build !windows

package main

// hideFile is a no-op outside Windows; a leading dot in the name hides the
// file on Unix systems.
func hideFile(string) error {
	return nil
}
