package fbx

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"
)

// cursor is a bounds-checked forward reader over a complete in-memory file.
// All multi-byte reads are little-endian.
type cursor struct {
	buf []byte
	off int64
}

func newCursor(buf []byte) *cursor {
	return &cursor{buf: buf}
}

func (c *cursor) pos() int64 { return c.off }

func (c *cursor) remaining() int64 { return int64(len(c.buf)) - c.off }

func (c *cursor) seekTo(off int64) error {
	if off < 0 || off > int64(len(c.buf)) {
		return &DecodeError{
			Kind:   ErrInvalidOffset,
			Offset: c.off,
			Msg:    fmt.Sprintf("seek to %d in a %d byte buffer", off, len(c.buf)),
		}
	}
	c.off = off
	return nil
}

// bytes returns the next n bytes without copying; the slice aliases the
// input buffer.
func (c *cursor) bytes(n int64) ([]byte, error) {
	if n < 0 || c.remaining() < n {
		return nil, &DecodeError{
			Kind:   ErrUnexpectedEOF,
			Offset: c.off,
			Msg:    fmt.Sprintf("need %d bytes, %d left", n, c.remaining()),
		}
	}
	b := c.buf[c.off : c.off+n]
	c.off += n
	return b, nil
}

func (c *cursor) str(n int64) (string, error) {
	start := c.off
	b, err := c.bytes(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", &DecodeError{
			Kind:   ErrInvalidEncoding,
			Offset: start,
			Msg:    fmt.Sprintf("invalid UTF-8 in %d byte string", n),
		}
	}
	return string(b), nil
}

func (c *cursor) u8() (uint8, error) {
	b, err := c.bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (c *cursor) u16() (uint16, error) {
	b, err := c.bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

func (c *cursor) u32() (uint32, error) {
	b, err := c.bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *cursor) u64() (uint64, error) {
	b, err := c.bytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (c *cursor) i16() (int16, error) {
	v, err := c.u16()
	return int16(v), err
}

func (c *cursor) i32() (int32, error) {
	v, err := c.u32()
	return int32(v), err
}

func (c *cursor) i64() (int64, error) {
	v, err := c.u64()
	return int64(v), err
}

func (c *cursor) f32() (float32, error) {
	v, err := c.u32()
	return math.Float32frombits(v), err
}

func (c *cursor) f64() (float64, error) {
	v, err := c.u64()
	return math.Float64frombits(v), err
}
