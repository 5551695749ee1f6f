// Package fbx decodes the binary FBX 3D-interchange format into a tree of
// named nodes with typed properties. It covers the container only: scene
// reconstruction, the ASCII variant and writing are left to consumers of
// the node tree.
package fbx

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// Load reads and decodes a binary FBX file from disk.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "fbx: read %q", path)
	}
	return Decode(data)
}

// Parse decodes a binary FBX stream. The whole stream is read into memory
// first; the format is only decodable from a complete buffer.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "fbx: read stream")
	}
	return Decode(data)
}

// Decode decodes a complete in-memory binary FBX file.
func Decode(data []byte) (*Document, error) {
	return DecodeOptions(data, Options{})
}

// DecodeOptions decodes with explicit options. Each call owns its own
// cursor and output tree; independent decodes need no coordination.
func DecodeOptions(data []byte, opts Options) (*Document, error) {
	d := &decoder{c: newCursor(data), opts: opts}
	return d.decode()
}
