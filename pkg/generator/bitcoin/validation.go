package bitcoin

import (
	"strings"

	"github.com/Amr-9/bitkeygen/pkg/base58"
)

// IsValidBase58Char checks if a character is valid in Base58 encoding.
func IsValidBase58Char(c rune) bool {
	return strings.ContainsRune(base58.Alphabet, c)
}

// IsValidPattern checks if a vanity pattern only uses Base58 characters.
// Patterns are case-sensitive.
func IsValidPattern(pattern string) bool {
	return len(InvalidChars(pattern)) == 0
}

// InvalidChars returns any invalid characters in the pattern.
// Useful for providing helpful error messages to users.
func InvalidChars(pattern string) []rune {
	var invalid []rune
	for _, c := range pattern {
		if !IsValidBase58Char(c) {
			invalid = append(invalid, c)
		}
	}
	return invalid
}
