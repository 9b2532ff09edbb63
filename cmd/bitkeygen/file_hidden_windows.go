//go:build windows

package main

import "syscall"

// hideFile sets the hidden attribute on a file.
func hideFile(filename string) error {
	filenamePtr, err := syscall.UTF16PtrFromString(filename)
	if err != nil {
		return err
	}
	return syscall.SetFileAttributes(filenamePtr, syscall.FILE_ATTRIBUTE_HIDDEN)
}
