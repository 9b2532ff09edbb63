// Package secmem holds secret bytes (private keys, WIF payloads) in buffers
// that are overwritten with zeros when released.
package secmem

import "runtime"

// Buffer owns a byte slice holding secret material. The zero value is an
// empty, already destroyed buffer.
//
// Callers release a Buffer with a deferred Destroy so the bytes are wiped on
// every return path:
//
//	buf := secmem.New(32)
//	defer buf.Destroy()
type Buffer struct {
	b []byte
}

// New allocates a zeroed buffer of n bytes.
func New(n int) *Buffer {
	return &Buffer{b: make([]byte, n)}
}

// From copies src into a new buffer. src itself is left untouched.
func From(src []byte) *Buffer {
	buf := New(len(src))
	copy(buf.b, src)
	return buf
}

// Bytes returns the backing slice. It must not be retained past Destroy.
func (b *Buffer) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.b
}

// Len returns the buffer size, or 0 once destroyed.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.b)
}

// Destroyed reports whether Destroy has run.
func (b *Buffer) Destroyed() bool {
	return b == nil || b.b == nil
}

// Destroy wipes the buffer and drops the backing slice. Safe to call more
// than once.
func (b *Buffer) Destroy() {
	if b == nil || b.b == nil {
		return
	}
	Wipe(b.b)
	b.b = nil
}

// Wipe overwrites p with zeros.
func Wipe(p []byte) {
	clear(p)
	// Keep p reachable until the stores above have happened.
	runtime.KeepAlive(p)
}
