// Package base58 converts between byte strings and Bitcoin's Base58 text
// form. Each leading zero byte maps to exactly one leading '1' and back.
package base58

import (
	"github.com/Amr-9/bitkeygen/pkg/keyerr"
	"github.com/Amr-9/bitkeygen/pkg/secmem"
)

// Alphabet is the Bitcoin Base58 alphabet (excludes 0, O, I, l).
const Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

const radix = 58

var decodeMap = func() [256]byte {
	var m [256]byte
	for i := range m {
		m[i] = 0xFF
	}
	for i := 0; i < len(Alphabet); i++ {
		m[Alphabet[i]] = byte(i)
	}
	return m
}()

// EncodedLen returns the maximum number of symbols needed to encode n bytes.
// log(256)/log(58) is just under 1.37.
func EncodedLen(n int) int {
	return n*138/100 + 1
}

// Encode returns the Base58 text form of src. Encode(nil) is "".
func Encode(src []byte) string {
	dst := make([]byte, EncodedLen(len(src)))
	n, err := EncodeTo(dst, src)
	if err != nil {
		// EncodedLen always leaves enough room.
		panic(err)
	}
	return string(dst[:n])
}

// EncodeTo writes the Base58 form of src into dst and returns the number of
// symbols written. It fails with keyerr.ErrEncoding if dst is too small, in
// which case nothing useful is left in dst.
func EncodeTo(dst, src []byte) (int, error) {
	zeros := 0
	for zeros < len(src) && src[zeros] == 0 {
		zeros++
	}

	// Work on a copy of the significant digits: src may be a secret payload
	// and is divided in place.
	work := make([]byte, len(src)-zeros)
	copy(work, src[zeros:])
	defer secmem.Wipe(work)

	num := work
	n := 0
	for len(num) > 0 {
		rem := 0
		for i := range num {
			acc := rem<<8 | int(num[i])
			num[i] = byte(acc / radix)
			rem = acc % radix
		}
		if n >= len(dst) {
			secmem.Wipe(dst[:n])
			return 0, keyerr.New("base58.Encode", keyerr.ErrEncoding,
				"output capacity %d too small", len(dst))
		}
		dst[n] = Alphabet[rem]
		n++

		for len(num) > 0 && num[0] == 0 {
			num = num[1:]
		}
	}

	for i := 0; i < zeros; i++ {
		if n >= len(dst) {
			secmem.Wipe(dst[:n])
			return 0, keyerr.New("base58.Encode", keyerr.ErrEncoding,
				"output capacity %d too small", len(dst))
		}
		dst[n] = Alphabet[0]
		n++
	}

	reverse(dst[:n])
	return n, nil
}

// Decode returns the bytes encoded by s.
func Decode(s string) ([]byte, error) {
	// Every symbol carries less than one byte, so len(s) always suffices.
	dst := make([]byte, len(s))
	n, err := DecodeTo(dst, s)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}

// DecodeTo decodes s into dst and returns the number of bytes written. It
// fails with keyerr.ErrEncoding if s is empty, contains a symbol outside the
// alphabet, or decodes to more than len(dst) bytes.
func DecodeTo(dst []byte, s string) (int, error) {
	if s == "" {
		return 0, keyerr.New("base58.Decode", keyerr.ErrEncoding, "empty input")
	}

	work := make([]byte, len(s))
	defer secmem.Wipe(work)

	for i := 0; i < len(s); i++ {
		d := decodeMap[s[i]]
		if d == 0xFF {
			return 0, keyerr.New("base58.Decode", keyerr.ErrEncoding,
				"invalid character %q at position %d", s[i], i)
		}
		work[i] = d
	}

	ones := 0
	for ones < len(s) && s[ones] == Alphabet[0] {
		ones++
	}

	num := work[ones:]
	n := 0
	for len(num) > 0 {
		rem := 0
		for i := range num {
			acc := rem*radix + int(num[i])
			num[i] = byte(acc >> 8)
			rem = acc & 0xFF
		}
		if n >= len(dst) {
			secmem.Wipe(dst[:n])
			return 0, keyerr.New("base58.Decode", keyerr.ErrEncoding,
				"decoded length exceeds capacity %d", len(dst))
		}
		dst[n] = byte(rem)
		n++

		for len(num) > 0 && num[0] == 0 {
			num = num[1:]
		}
	}

	for i := 0; i < ones; i++ {
		if n >= len(dst) {
			secmem.Wipe(dst[:n])
			return 0, keyerr.New("base58.Decode", keyerr.ErrEncoding,
				"decoded length exceeds capacity %d", len(dst))
		}
		dst[n] = 0
		n++
	}

	reverse(dst[:n])
	return n, nil
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}
