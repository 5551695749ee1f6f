package fbx

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"reflect"
	"testing"
)

// testNode assembles one synthetic node record. The delta fields skew the
// declared header values away from the real layout for corruption tests.
type testNode struct {
	name     string
	props    [][]byte
	children []*testNode

	endDelta       int64
	numPropsDelta  int64
	propBytesDelta int64
}

func (n *testNode) size(w int) int64 {
	sz := int64(3*w + 1 + len(n.name))
	for _, p := range n.props {
		sz += int64(len(p))
	}
	for _, c := range n.children {
		sz += c.size(w)
	}
	if len(n.children) > 0 {
		sz += int64(3*w + 1) // child sentinel
	}
	return sz
}

func writeUint(buf *bytes.Buffer, w int, v uint64) {
	if w == 4 {
		binary.Write(buf, binary.LittleEndian, uint32(v))
	} else {
		binary.Write(buf, binary.LittleEndian, v)
	}
}

func writeSentinel(buf *bytes.Buffer, w int) {
	buf.Write(make([]byte, 3*w+1))
}

func writeNode(buf *bytes.Buffer, n *testNode, w int, pos int64) int64 {
	var propBytes int64
	for _, p := range n.props {
		propBytes += int64(len(p))
	}
	end := pos + n.size(w)
	writeUint(buf, w, uint64(end+n.endDelta))
	writeUint(buf, w, uint64(int64(len(n.props))+n.numPropsDelta))
	writeUint(buf, w, uint64(propBytes+n.propBytesDelta))
	buf.WriteByte(byte(len(n.name)))
	buf.WriteString(n.name)
	for _, p := range n.props {
		buf.Write(p)
	}
	pos += int64(3*w+1+len(n.name)) + propBytes
	if len(n.children) > 0 {
		for _, c := range n.children {
			pos = writeNode(buf, c, w, pos)
		}
		writeSentinel(buf, w)
		pos += int64(3*w + 1)
	}
	return pos
}

// fileBuilder assembles a complete synthetic binary FBX file.
type fileBuilder struct {
	buf bytes.Buffer
	w   int
}

func newFile(version uint32) *fileBuilder {
	b := &fileBuilder{w: 4}
	if version >= version64Bit {
		b.w = 8
	}
	b.buf.WriteString("Kaydara FBX Binary  \x00")
	b.buf.Write([]byte{0x1a, 0x00})
	binary.Write(&b.buf, binary.LittleEndian, version)
	return b
}

func (b *fileBuilder) node(n *testNode) *fileBuilder {
	writeNode(&b.buf, n, b.w, int64(b.buf.Len()))
	return b
}

func (b *fileBuilder) sentinel() *fileBuilder {
	writeSentinel(&b.buf, b.w)
	return b
}

func (b *fileBuilder) pad(n int) *fileBuilder {
	b.buf.Write(make([]byte, n))
	return b
}

func (b *fileBuilder) bytes() []byte {
	return b.buf.Bytes()
}

// Property record encoders.

func propScalar(tag byte, v interface{}) []byte {
	var buf bytes.Buffer
	buf.WriteByte(tag)
	binary.Write(&buf, binary.LittleEndian, v)
	return buf.Bytes()
}

func propBool(v byte) []byte {
	return []byte{'C', v}
}

func propInt32(v int32) []byte {
	return propScalar('I', v)
}

func propStringBytes(b []byte) []byte {
	var buf bytes.Buffer
	buf.WriteByte('S')
	binary.Write(&buf, binary.LittleEndian, uint32(len(b)))
	buf.Write(b)
	return buf.Bytes()
}

func propString(s string) []byte {
	return propStringBytes([]byte(s))
}

func propRaw(b []byte) []byte {
	var buf bytes.Buffer
	buf.WriteByte('R')
	binary.Write(&buf, binary.LittleEndian, uint32(len(b)))
	buf.Write(b)
	return buf.Bytes()
}

func arrayLen(elems interface{}) int {
	return reflect.ValueOf(elems).Len()
}

// propArrayHeader builds an array record with explicit header fields, for
// crafting inconsistent ones.
func propArrayHeader(tag byte, count, encoding, compressed uint32, payload []byte) []byte {
	var buf bytes.Buffer
	buf.WriteByte(tag)
	binary.Write(&buf, binary.LittleEndian, count)
	binary.Write(&buf, binary.LittleEndian, encoding)
	binary.Write(&buf, binary.LittleEndian, compressed)
	buf.Write(payload)
	return buf.Bytes()
}

func propArray(tag byte, elems interface{}) []byte {
	var payload bytes.Buffer
	binary.Write(&payload, binary.LittleEndian, elems)
	return propArrayHeader(tag, uint32(arrayLen(elems)), encodingRaw, 0, payload.Bytes())
}

func deflate(t *testing.T, data []byte, level int) []byte {
	t.Helper()
	var comp bytes.Buffer
	zw, err := zlib.NewWriterLevel(&comp, level)
	if err != nil {
		t.Fatalf("zlib writer: %v", err)
	}
	if _, err := zw.Write(data); err != nil {
		t.Fatalf("compress: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("compress: %v", err)
	}
	return comp.Bytes()
}

func propArrayCompressed(t *testing.T, tag byte, elems interface{}, level int) []byte {
	t.Helper()
	var payload bytes.Buffer
	binary.Write(&payload, binary.LittleEndian, elems)
	comp := deflate(t, payload.Bytes(), level)
	return propArrayHeader(tag, uint32(arrayLen(elems)), encodingDeflate, uint32(len(comp)), comp)
}

func decodeKind(t *testing.T, data []byte, want ErrorKind) *DecodeError {
	t.Helper()
	doc, err := Decode(data)
	if err == nil {
		t.Fatalf("decode succeeded, want %v", want)
	}
	if doc != nil {
		t.Fatalf("got a partial document alongside error %v", err)
	}
	de, ok := err.(*DecodeError)
	if !ok {
		t.Fatalf("error %T is not a DecodeError: %v", err, err)
	}
	if de.Kind != want {
		t.Fatalf("error kind = %v, want %v (%v)", de.Kind, want, err)
	}
	return de
}
