package fbx

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrorKind classifies decode failures. Every failure aborts the whole
// decode; there is no partial Document.
type ErrorKind int

const (
	// ErrNotAnFbxFile means the magic header did not match.
	ErrNotAnFbxFile ErrorKind = iota + 1
	// ErrUnsupportedVersion means the header version is outside the 7.x range.
	ErrUnsupportedVersion
	// ErrUnexpectedEOF means a read ran past the end of the buffer.
	ErrUnexpectedEOF
	// ErrInvalidOffset means a seek or declared offset is out of bounds.
	ErrInvalidOffset
	// ErrPropertyCountMismatch means a node's declared property-list byte
	// length disagrees with the properties actually decoded.
	ErrPropertyCountMismatch
	// ErrTrailingBytes means a child sentinel did not land on the parent's
	// declared end offset.
	ErrTrailingBytes
	// ErrUnknownPropertyType means an unrecognized property type tag.
	ErrUnknownPropertyType
	// ErrCorruptArray means a compressed array did not inflate to the
	// declared element count.
	ErrCorruptArray
	// ErrUnsupportedEncoding means an unknown array encoding flag.
	ErrUnsupportedEncoding
	// ErrInvalidEncoding means invalid UTF-8 in a string property.
	ErrInvalidEncoding
	// ErrTypeMismatch means a typed accessor was called on the wrong variant.
	ErrTypeMismatch
)

func (k ErrorKind) String() string {
	switch k {
	case ErrNotAnFbxFile:
		return "not an FBX binary file"
	case ErrUnsupportedVersion:
		return "unsupported FBX version"
	case ErrUnexpectedEOF:
		return "unexpected end of file"
	case ErrInvalidOffset:
		return "invalid offset"
	case ErrPropertyCountMismatch:
		return "property count mismatch"
	case ErrTrailingBytes:
		return "trailing bytes after children"
	case ErrUnknownPropertyType:
		return "unknown property type"
	case ErrCorruptArray:
		return "corrupt array"
	case ErrUnsupportedEncoding:
		return "unsupported array encoding"
	case ErrInvalidEncoding:
		return "invalid string encoding"
	case ErrTypeMismatch:
		return "property type mismatch"
	}
	return fmt.Sprintf("error %d", int(k))
}

// DecodeError reports where decoding failed: the byte offset in the input
// and the names of the enclosing nodes, outermost first.
type DecodeError struct {
	Kind   ErrorKind
	Offset int64
	Path   []string
	Msg    string
	Cause  error
}

func (e *DecodeError) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	fmt.Fprintf(&b, " at offset %d", e.Offset)
	if len(e.Path) > 0 {
		fmt.Fprintf(&b, " in %s", strings.Join(e.Path, "/"))
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *DecodeError) Unwrap() error { return e.Cause }

// Kind extracts the ErrorKind from a decode failure, or 0 when err is not
// a DecodeError.
func Kind(err error) ErrorKind {
	var de *DecodeError
	if errors.As(err, &de) {
		return de.Kind
	}
	return 0
}
