package arena

import "unsafe"

// Buffer is a growable byte buffer backed by arena memory. Growing
// allocates a larger block from the same arena; the old block is reclaimed
// with the arena.
type Buffer struct {
	a   *Arena
	buf []byte
}

// NewBuffer creates a buffer with the given initial capacity.
func (a *Arena) NewBuffer(capacity int) *Buffer {
	if capacity < 16 {
		capacity = 16
	}
	return &Buffer{a: a, buf: a.Alloc(capacity)[:0]}
}

func (b *Buffer) grow(n int) {
	if len(b.buf)+n <= cap(b.buf) {
		return
	}
	newCap := 2 * cap(b.buf)
	if newCap < len(b.buf)+n {
		newCap = len(b.buf) + n
	}
	nb := b.a.Alloc(newCap)[:len(b.buf)]
	copy(nb, b.buf)
	b.buf = nb
}

// WriteString appends s.
func (b *Buffer) WriteString(s string) (int, error) {
	b.grow(len(s))
	b.buf = append(b.buf, s...)
	return len(s), nil
}

// Write appends p.
func (b *Buffer) Write(p []byte) (int, error) {
	b.grow(len(p))
	b.buf = append(b.buf, p...)
	return len(p), nil
}

// WriteByte appends c.
func (b *Buffer) WriteByte(c byte) error {
	b.grow(1)
	b.buf = append(b.buf, c)
	return nil
}

// Len returns the number of bytes written.
func (b *Buffer) Len() int {
	return len(b.buf)
}

// Truncate discards all but the first n bytes.
func (b *Buffer) Truncate(n int) {
	if n >= 0 && n <= len(b.buf) {
		b.buf = b.buf[:n]
	}
}

// Bytes returns the written bytes. The slice aliases arena memory.
func (b *Buffer) Bytes() []byte {
	return b.buf
}

// String returns a view of the written bytes. The view aliases arena memory.
func (b *Buffer) String() string {
	if len(b.buf) == 0 {
		return ""
	}
	return unsafe.String(&b.buf[0], len(b.buf))
}
