// Package cursor reads sequentially from an in-memory byte buffer. Every read
// is bounds checked; running off the end is model.ErrUnexpectedEOF.
package cursor

import (
	"encoding/binary"

	"github.com/jsphweid/smfnotes/model"
	"github.com/pkg/errors"
)

type Cursor struct {
	buf  []byte
	pos  int
	base int
}

func New(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Pos is the read position relative to the start of this cursor's buffer.
func (c *Cursor) Pos() int {
	return c.pos
}

// Offset is the read position relative to the start of the original input,
// which differs from Pos for cursors made with Sub.
func (c *Cursor) Offset() int {
	return c.base + c.pos
}

func (c *Cursor) Len() int {
	return len(c.buf) - c.pos
}

func (c *Cursor) EOF() bool {
	return c.pos >= len(c.buf)
}

// ReadBytes returns the next n bytes. The slice aliases the underlying buffer
// and must not be modified.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > c.Len() {
		return nil, errors.Wrapf(model.ErrUnexpectedEOF, "reading %d bytes at offset %d, %d left", n, c.Offset(), c.Len())
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *Cursor) ReadU8() (uint8, error) {
	b, err := c.ReadBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *Cursor) ReadU16BE() (uint16, error) {
	b, err := c.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (c *Cursor) ReadU32BE() (uint32, error) {
	b, err := c.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// SeekRelative moves the read position by offset, which may be negative.
func (c *Cursor) SeekRelative(offset int) error {
	pos := c.pos + offset
	if pos < 0 || pos > len(c.buf) {
		return errors.Wrapf(model.ErrSeekOutOfRange, "seeking %d from offset %d", offset, c.Offset())
	}
	c.pos = pos
	return nil
}

// Sub carves the next n bytes into their own cursor and moves past them.
// Offsets reported by the new cursor stay relative to the original input.
func (c *Cursor) Sub(n int) (*Cursor, error) {
	base := c.Offset()
	b, err := c.ReadBytes(n)
	if err != nil {
		return nil, err
	}
	return &Cursor{buf: b, base: base}, nil
}
