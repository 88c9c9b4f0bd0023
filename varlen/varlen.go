// Package varlen handles MIDI variable-length quantities: big-endian base-128
// integers where a set high bit means another byte follows.
package varlen

import (
	"github.com/jsphweid/smfnotes/cursor"
	"github.com/jsphweid/smfnotes/model"
	"github.com/pkg/errors"
)

// MaxBytes is the longest quantity the file format allows.
const MaxBytes = 4

// MaxValue is the largest number that fits in MaxBytes.
const MaxValue = 0x0FFFFFFF

// Read decodes one quantity from c.
func Read(c *cursor.Cursor) (uint32, error) {
	start := c.Offset()
	var value uint32
	for i := 0; i < MaxBytes; i++ {
		b, err := c.ReadU8()
		if err != nil {
			return 0, err
		}
		value = (value << 7) | uint32(b&0x7F)
		if b&0x80 == 0 {
			return value, nil
		}
	}
	return 0, errors.Wrapf(model.ErrMalformedVarLen, "unterminated after %d bytes at offset %d", MaxBytes, start)
}

// Encode returns the shortest encoding of v. Values above MaxValue are
// truncated to their low 28 bits.
func Encode(v uint32) []byte {
	v &= MaxValue
	buf := []byte{byte(v & 0x7F)}
	for v >>= 7; v > 0; v >>= 7 {
		buf = append([]byte{byte(v&0x7F) | 0x80}, buf...)
	}
	return buf
}
