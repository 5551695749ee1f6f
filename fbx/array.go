package fbx

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/pkg/errors"
)

// Array property payloads are either raw little-endian element data or a
// zlib stream that inflates to exactly count*width bytes.
const (
	encodingRaw     = 0
	encodingDeflate = 1
)

// arrayHeader precedes every typed array payload.
type arrayHeader struct {
	count      uint32
	encoding   uint32
	compressed uint32
	start      int64 // offset of the element count field
}

func readArrayHeader(c *cursor) (arrayHeader, error) {
	h := arrayHeader{start: c.pos()}
	var err error
	if h.count, err = c.u32(); err != nil {
		return h, err
	}
	if h.encoding, err = c.u32(); err != nil {
		return h, err
	}
	h.compressed, err = c.u32()
	return h, err
}

// A deflate stream expands by at most ~1032x, so a declared element count
// needing more than that from the stored bytes cannot be satisfied.
const maxDeflateRatio = 1032

// readArrayBody returns exactly count*width bytes of element data,
// inflating when the encoding flag says the payload is compressed.
func readArrayBody(c *cursor, h arrayHeader, width int) ([]byte, error) {
	want := int64(h.count) * int64(width)
	switch h.encoding {
	case encodingRaw:
		return c.bytes(want)
	case encodingDeflate:
		if want > int64(h.compressed)*maxDeflateRatio {
			return nil, &DecodeError{
				Kind:   ErrCorruptArray,
				Offset: h.start,
				Msg:    fmt.Sprintf("%d declared elements cannot inflate from %d compressed bytes", h.count, h.compressed),
			}
		}
		payloadStart := c.pos()
		comp, err := c.bytes(int64(h.compressed))
		if err != nil {
			return nil, err
		}
		zr, err := zlib.NewReader(bytes.NewReader(comp))
		if err != nil {
			return nil, &DecodeError{
				Kind:   ErrCorruptArray,
				Offset: payloadStart,
				Cause:  errors.Wrap(err, "inflate"),
			}
		}
		defer zr.Close()
		out := make([]byte, want)
		if _, err := io.ReadFull(zr, out); err != nil {
			return nil, &DecodeError{
				Kind:   ErrCorruptArray,
				Offset: payloadStart,
				Msg:    fmt.Sprintf("decompressed to less than %d declared elements", h.count),
				Cause:  errors.Wrap(err, "inflate"),
			}
		}
		var extra [1]byte
		if n, _ := zr.Read(extra[:]); n != 0 {
			return nil, &DecodeError{
				Kind:   ErrCorruptArray,
				Offset: payloadStart,
				Msg:    fmt.Sprintf("decompressed to more than %d declared elements", h.count),
			}
		}
		return out, nil
	default:
		return nil, &DecodeError{
			Kind:   ErrUnsupportedEncoding,
			Offset: h.start + 4,
			Msg:    fmt.Sprintf("array encoding %d", h.encoding),
		}
	}
}

func readInt32Array(c *cursor) ([]int32, error) {
	h, err := readArrayHeader(c)
	if err != nil {
		return nil, err
	}
	raw, err := readArrayBody(c, h, 4)
	if err != nil {
		return nil, err
	}
	out := make([]int32, h.count)
	for i := range out {
		out[i] = int32(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return out, nil
}

func readInt64Array(c *cursor) ([]int64, error) {
	h, err := readArrayHeader(c)
	if err != nil {
		return nil, err
	}
	raw, err := readArrayBody(c, h, 8)
	if err != nil {
		return nil, err
	}
	out := make([]int64, h.count)
	for i := range out {
		out[i] = int64(binary.LittleEndian.Uint64(raw[i*8:]))
	}
	return out, nil
}

func readFloat32Array(c *cursor) ([]float32, error) {
	h, err := readArrayHeader(c)
	if err != nil {
		return nil, err
	}
	raw, err := readArrayBody(c, h, 4)
	if err != nil {
		return nil, err
	}
	out := make([]float32, h.count)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return out, nil
}

func readFloat64Array(c *cursor) ([]float64, error) {
	h, err := readArrayHeader(c)
	if err != nil {
		return nil, err
	}
	raw, err := readArrayBody(c, h, 8)
	if err != nil {
		return nil, err
	}
	out := make([]float64, h.count)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
	}
	return out, nil
}

// Bool arrays are stored one byte per element and kept that way.
func readBoolArray(c *cursor) ([]byte, error) {
	h, err := readArrayHeader(c)
	if err != nil {
		return nil, err
	}
	raw, err := readArrayBody(c, h, 1)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), raw...), nil
}
