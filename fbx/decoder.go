package fbx

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
)

// headerMagic is the 21-byte signature at the start of every binary FBX
// file, followed by 2 reserved bytes and the little-endian version.
var headerMagic = []byte("Kaydara FBX Binary  \x00")

const (
	headerSize = 27

	versionMin = 7000
	versionMax = 7799
	// FBX 7.5 widened the node header fields from 32 to 64 bits.
	version64Bit = 7500
)

// decoder drives one decode over one buffer. The header field width is
// fixed once from the version and threaded through every record read.
type decoder struct {
	c    *cursor
	wide bool
	path []string // enclosing node names, for error context
	opts Options
}

func (d *decoder) errf(kind ErrorKind, off int64, format string, args ...interface{}) *DecodeError {
	return &DecodeError{
		Kind:   kind,
		Offset: off,
		Path:   append([]string(nil), d.path...),
		Msg:    fmt.Sprintf(format, args...),
	}
}

// wrapPath attaches the current node chain to errors raised below the
// node level (cursor, property and array reads).
func (d *decoder) wrapPath(err error) error {
	var de *DecodeError
	if errors.As(err, &de) && de.Path == nil && len(d.path) > 0 {
		de.Path = append([]string(nil), d.path...)
	}
	return err
}

func (d *decoder) decode() (*Document, error) {
	version, err := d.readFileHeader()
	if err != nil {
		return nil, err
	}
	doc := &Document{Version: version}
	for {
		// Some exporters pad the footer; less than one sentinel record
		// left means end of stream, not an error.
		if d.c.remaining() < d.sentinelSize() {
			return doc, nil
		}
		node, err := d.readNode()
		if err != nil {
			return nil, err
		}
		if node == nil {
			return doc, nil
		}
		doc.Nodes = append(doc.Nodes, node)
	}
}

func (d *decoder) readFileHeader() (uint32, error) {
	if d.c.remaining() < headerSize {
		return 0, d.errf(ErrNotAnFbxFile, 0, "file of %d bytes is shorter than the %d byte header", d.c.remaining(), headerSize)
	}
	magic, err := d.c.bytes(int64(len(headerMagic)))
	if err != nil {
		return 0, err
	}
	if !bytes.Equal(magic, headerMagic) {
		return 0, d.errf(ErrNotAnFbxFile, 0, "bad magic %q", magic)
	}
	if _, err := d.c.bytes(2); err != nil { // reserved
		return 0, err
	}
	version, err := d.c.u32()
	if err != nil {
		return 0, err
	}
	if version < versionMin || version > versionMax {
		return 0, d.errf(ErrUnsupportedVersion, headerSize-4, "version %d", version)
	}
	d.wide = version >= version64Bit
	return version, nil
}

// nodeHeader is the fixed part of a node record. A header of all zeros is
// the sentinel that terminates a sibling list, not a real node.
type nodeHeader struct {
	endOffset int64
	numProps  int64
	propBytes int64
	nameLen   uint8
	start     int64
}

func (h nodeHeader) isSentinel() bool {
	return h.endOffset == 0 && h.numProps == 0 && h.propBytes == 0 && h.nameLen == 0
}

// sentinelSize is the on-disk size of a zero node header at the current
// field width: 13 bytes below 7.5, 25 at or above.
func (d *decoder) sentinelSize() int64 {
	if d.wide {
		return 25
	}
	return 13
}

func (d *decoder) readUint() (int64, error) {
	if d.wide {
		v, err := d.c.u64()
		return int64(v), err
	}
	v, err := d.c.u32()
	return int64(v), err
}

func (d *decoder) readNodeHeader() (nodeHeader, error) {
	h := nodeHeader{start: d.c.pos()}
	var err error
	if h.endOffset, err = d.readUint(); err != nil {
		return h, err
	}
	if h.numProps, err = d.readUint(); err != nil {
		return h, err
	}
	if h.propBytes, err = d.readUint(); err != nil {
		return h, err
	}
	h.nameLen, err = d.c.u8()
	return h, err
}

// readNode decodes one node record and everything nested in it. A nil
// node with nil error means the sentinel was consumed.
func (d *decoder) readNode() (*Node, error) {
	h, err := d.readNodeHeader()
	if err != nil {
		return nil, d.wrapPath(err)
	}
	if h.isSentinel() {
		return nil, nil
	}
	if h.endOffset <= h.start {
		return nil, d.errf(ErrInvalidOffset, h.start, "node end offset %d before the record at %d", h.endOffset, h.start)
	}

	nameBytes, err := d.c.bytes(int64(h.nameLen))
	if err != nil {
		return nil, d.wrapPath(err)
	}
	node := &Node{Name: d.decodeName(nameBytes)}
	d.path = append(d.path, node.Name)
	defer func() { d.path = d.path[:len(d.path)-1] }()

	propEnd := d.c.pos() + h.propBytes
	for i := int64(0); i < h.numProps; i++ {
		if d.c.pos() >= propEnd {
			return nil, d.errf(ErrPropertyCountMismatch, d.c.pos(),
				"property list of %d bytes exhausted after %d of %d properties", h.propBytes, i, h.numProps)
		}
		p, err := readProperty(d.c)
		if err != nil {
			return nil, d.wrapPath(err)
		}
		if d.c.pos() > propEnd {
			return nil, d.errf(ErrPropertyCountMismatch, d.c.pos(),
				"property %d of %d overran the declared %d byte list", i+1, h.numProps, h.propBytes)
		}
		node.Properties = append(node.Properties, p)
	}
	if d.c.pos() != propEnd {
		return nil, d.errf(ErrPropertyCountMismatch, d.c.pos(),
			"%d bytes left in the property list after all %d properties", propEnd-d.c.pos(), h.numProps)
	}
	if d.c.pos() > h.endOffset {
		return nil, d.errf(ErrInvalidOffset, d.c.pos(), "property list overran the node end %d", h.endOffset)
	}
	// Checked after the property list so that a truncated buffer surfaces
	// as an EOF inside the property that hit it.
	if h.endOffset > int64(len(d.c.buf)) {
		return nil, d.errf(ErrInvalidOffset, h.start,
			"node end offset %d outside the %d byte buffer", h.endOffset, len(d.c.buf))
	}

	// Childless nodes end exactly at the declared offset with no sentinel.
	for d.c.pos() != h.endOffset {
		child, err := d.readNode()
		if err != nil {
			return nil, err
		}
		if child == nil {
			// Sentinel and end offset must agree; either alone can be
			// forged by corruption the other catches.
			if d.c.pos() != h.endOffset {
				return nil, d.errf(ErrTrailingBytes, d.c.pos(),
					"children end at %d, node declared end %d", d.c.pos(), h.endOffset)
			}
			break
		}
		node.Children = append(node.Children, child)
		if d.c.pos() > h.endOffset {
			return nil, d.errf(ErrTrailingBytes, d.c.pos(),
				"child records overran the node end %d", h.endOffset)
		}
	}
	return node, nil
}
