package bitcoin

import (
	"strings"
)

// Matcher handles vanity pattern matching for Base58 addresses.
// Matching is case-sensitive. The prefix is matched after the leading
// version symbol ("1", "3", "m" or "n"), so "Abc" matches "1Abc...".
type Matcher struct {
	prefix string
	suffix string
}

// NewMatcher creates a new address matcher.
func NewMatcher(prefix, suffix string) *Matcher {
	return &Matcher{
		prefix: prefix,
		suffix: suffix,
	}
}

// Empty reports whether the matcher accepts every address.
func (m *Matcher) Empty() bool {
	return m.prefix == "" && m.suffix == ""
}

// Matches checks if an address matches the prefix and suffix criteria.
func (m *Matcher) Matches(address string) bool {
	if len(address) <= 1 {
		return false
	}

	// Skip the version symbol
	if m.prefix != "" && !strings.HasPrefix(address[1:], m.prefix) {
		return false
	}

	if m.suffix != "" && !strings.HasSuffix(address, m.suffix) {
		return false
	}

	return true
}

// Difficulty estimates the expected number of attempts before a match.
func (m *Matcher) Difficulty() uint64 {
	difficulty := uint64(1)
	for i := 0; i < len(m.prefix)+len(m.suffix); i++ {
		if difficulty > ^uint64(0)/58 {
			return ^uint64(0)
		}
		difficulty *= 58
	}
	return difficulty
}
