// Package keyerr defines the error kinds returned by the key, address and WIF
// codecs. Every failure carries exactly one kind so callers can branch with
// errors.Is regardless of how the error was wrapped.
package keyerr

import (
	"errors"
	"fmt"
)

// Error kinds.
var (
	// ErrInvalidInput covers empty or wrong-length input and unrecognized
	// version or marker bytes.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEncoding covers illegal Base58 characters, undersized output buffers
	// and wrong decoded lengths.
	ErrEncoding = errors.New("encoding error")

	// ErrChecksumMismatch means a decoded checksum did not match the one
	// recomputed over the payload.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrRange means a scalar fell outside [1, n-1].
	ErrRange = errors.New("scalar out of range")

	// ErrCryptoFailure signals an environment problem (entropy source or curve
	// operation). It is not retriable.
	ErrCryptoFailure = errors.New("crypto failure")
)

// Error is a classified failure of a single operation.
type Error struct {
	Op   string // operation that failed, e.g. "base58.Decode"
	Kind error  // one of the Err* kinds above
	Msg  string
	Err  error // underlying cause, may be nil
}

func (e *Error) Error() string {
	s := e.Op + ": " + e.Kind.Error()
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// New creates an Error of the given kind with a formatted message.
func New(op string, kind error, format string, args ...any) *Error {
	return &Error{
		Op:   op,
		Kind: kind,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// Wrap classifies err under kind.
func Wrap(op string, kind error, err error) *Error {
	return &Error{
		Op:   op,
		Kind: kind,
		Err:  err,
	}
}

// KindOf returns the kind sentinel carried by err, or nil if err was not
// produced by this package.
func KindOf(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	for _, kind := range []error{ErrInvalidInput, ErrEncoding, ErrChecksumMismatch, ErrRange, ErrCryptoFailure} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
