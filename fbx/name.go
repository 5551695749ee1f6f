package fbx

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// Options control decoding behavior.
type Options struct {
	// NameEncoding decodes node names that are not valid UTF-8. Some old
	// exporters wrote names in the machine's local codepage (Shift-JIS
	// was common for Japanese tools). When nil, invalid sequences are
	// replaced with U+FFFD.
	NameEncoding encoding.Encoding
}

// decodeName converts raw node name bytes. Names are diagnostic labels,
// not data, so unlike string properties they never fail the decode.
func (d *decoder) decodeName(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	if d.opts.NameEncoding != nil {
		if s, _, err := transform.Bytes(d.opts.NameEncoding.NewDecoder(), b); err == nil {
			return string(s)
		}
	}
	return strings.ToValidUTF8(string(b), "�")
}
