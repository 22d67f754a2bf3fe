// Package encbuf provides the append-only byte buffer and x86_64
// instruction-encoding primitives spec.md §4.1 describes: REX prefixes,
// one- and two-byte opcodes, the ModR/M and SIB byte families, and raw
// immediates/displacements. Every primitive is trivial; the contract that
// matters is that a single Reserve call precedes all the writes for one
// instruction, so no primitive ever needs to grow the buffer mid-encode.
package encbuf

import (
	"bytes"

	"github.com/xyproto/x64emit/diag"
)

// Buffer is the emitter's grow-only code buffer, generalizing the
// teacher's BufferWrapper/SafeBuffer commit discipline into an explicit
// capacity-reservation contract: Reserve grows the buffer once per
// instruction, and every write after it is guaranteed not to reallocate.
type Buffer struct {
	buf      bytes.Buffer
	reserved int
	used     int
}

// New returns an empty Buffer.
func New() *Buffer {
	return &Buffer{}
}

// Reserve grows the buffer's backing storage by at least n bytes and
// arms the write budget for the instruction about to be encoded. The only
// failure mode is the underlying allocator's out-of-memory condition,
// which bytes.Buffer.Grow reports by panicking with bytes.ErrTooLarge.
func (b *Buffer) Reserve(n int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.reserved, b.used = 0, 0
			err = diag.OutOfMemory
		}
	}()
	b.buf.Grow(n)
	b.reserved = n
	b.used = 0
	return nil
}

func (b *Buffer) write(p byte) {
	if b.used >= b.reserved {
		// Reserve was not called, or undersized: this is a programmer
		// error in the emit driver, not a runtime allocation failure.
		panic("encbuf: write without matching Reserve")
	}
	b.buf.WriteByte(p)
	b.used++
}

// Len returns the current buffer length in bytes.
func (b *Buffer) Len() int { return b.buf.Len() }

// Bytes returns the buffer's contents. The slice is invalidated by the
// next Reserve call.
func (b *Buffer) Bytes() []byte { return b.buf.Bytes() }

// PatchU32LE overwrites four bytes at offset with v, little-endian, used
// by relocation fixup to patch a previously-emitted displacement in place.
func (b *Buffer) PatchU32LE(offset uint64, v uint32) error {
	bs := b.buf.Bytes()
	if offset+4 > uint64(len(bs)) {
		return diag.OutOfMemory
	}
	bs[offset] = byte(v)
	bs[offset+1] = byte(v >> 8)
	bs[offset+2] = byte(v >> 16)
	bs[offset+3] = byte(v >> 24)
	return nil
}

// Byte writes a single raw byte.
func (b *Buffer) Byte(v uint8) { b.write(v) }

// WriteBytes writes a sequence of raw bytes in order.
func (b *Buffer) WriteBytes(vs ...uint8) {
	for _, v := range vs {
		b.write(v)
	}
}
