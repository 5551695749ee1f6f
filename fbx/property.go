package fbx

import (
	"fmt"
)

// PropertyType is the one-byte type tag of an FBX property record.
type PropertyType byte

const (
	TypeInt16        PropertyType = 'Y'
	TypeBool         PropertyType = 'C'
	TypeInt32        PropertyType = 'I'
	TypeFloat32      PropertyType = 'F'
	TypeFloat64      PropertyType = 'D'
	TypeInt64        PropertyType = 'L'
	TypeBytes        PropertyType = 'R'
	TypeString       PropertyType = 'S'
	TypeFloat32Array PropertyType = 'f'
	TypeInt32Array   PropertyType = 'i'
	TypeFloat64Array PropertyType = 'd'
	TypeInt64Array   PropertyType = 'l'
	TypeBoolArray    PropertyType = 'b'
)

func (t PropertyType) String() string {
	switch t {
	case TypeInt16:
		return "int16"
	case TypeBool:
		return "bool"
	case TypeInt32:
		return "int32"
	case TypeFloat32:
		return "float32"
	case TypeFloat64:
		return "float64"
	case TypeInt64:
		return "int64"
	case TypeBytes:
		return "bytes"
	case TypeString:
		return "string"
	case TypeFloat32Array:
		return "float32 array"
	case TypeInt32Array:
		return "int32 array"
	case TypeFloat64Array:
		return "float64 array"
	case TypeInt64Array:
		return "int64 array"
	case TypeBoolArray:
		return "bool array"
	}
	return fmt.Sprintf("0x%02x", byte(t))
}

// Property is one typed value attached to a node. Order within a node is
// significant. Value holds the variant selected by Type: int16, bool,
// int32, float32, float64, int64, []byte (raw blobs and bool arrays),
// string, []int32, []int64, []float32 or []float64.
type Property struct {
	Type  PropertyType
	Value interface{}
}

// readProperty consumes one type tag and its payload.
func readProperty(c *cursor) (*Property, error) {
	tagPos := c.pos()
	tag, err := c.u8()
	if err != nil {
		return nil, err
	}
	switch t := PropertyType(tag); t {
	case TypeInt16:
		v, err := c.i16()
		if err != nil {
			return nil, err
		}
		return &Property{t, v}, nil
	case TypeBool:
		v, err := c.u8()
		if err != nil {
			return nil, err
		}
		return &Property{t, v != 0}, nil
	case TypeInt32:
		v, err := c.i32()
		if err != nil {
			return nil, err
		}
		return &Property{t, v}, nil
	case TypeFloat32:
		v, err := c.f32()
		if err != nil {
			return nil, err
		}
		return &Property{t, v}, nil
	case TypeFloat64:
		v, err := c.f64()
		if err != nil {
			return nil, err
		}
		return &Property{t, v}, nil
	case TypeInt64:
		v, err := c.i64()
		if err != nil {
			return nil, err
		}
		return &Property{t, v}, nil
	case TypeBytes:
		n, err := c.u32()
		if err != nil {
			return nil, err
		}
		b, err := c.bytes(int64(n))
		if err != nil {
			return nil, err
		}
		return &Property{t, append([]byte(nil), b...)}, nil
	case TypeString:
		n, err := c.u32()
		if err != nil {
			return nil, err
		}
		s, err := c.str(int64(n))
		if err != nil {
			return nil, err
		}
		return &Property{t, s}, nil
	case TypeFloat32Array:
		v, err := readFloat32Array(c)
		if err != nil {
			return nil, err
		}
		return &Property{t, v}, nil
	case TypeInt32Array:
		v, err := readInt32Array(c)
		if err != nil {
			return nil, err
		}
		return &Property{t, v}, nil
	case TypeFloat64Array:
		v, err := readFloat64Array(c)
		if err != nil {
			return nil, err
		}
		return &Property{t, v}, nil
	case TypeInt64Array:
		v, err := readInt64Array(c)
		if err != nil {
			return nil, err
		}
		return &Property{t, v}, nil
	case TypeBoolArray:
		v, err := readBoolArray(c)
		if err != nil {
			return nil, err
		}
		return &Property{t, v}, nil
	}
	return nil, &DecodeError{
		Kind:   ErrUnknownPropertyType,
		Offset: tagPos,
		Msg:    fmt.Sprintf("tag 0x%02x", tag),
	}
}

func (p *Property) mismatch(want PropertyType) error {
	if p == nil {
		return &DecodeError{Kind: ErrTypeMismatch, Msg: fmt.Sprintf("missing property, want %s", want)}
	}
	return &DecodeError{Kind: ErrTypeMismatch, Msg: fmt.Sprintf("property holds %s, want %s", p.Type, want)}
}

// Typed accessors. Each returns the exact decoded variant or fails with a
// type-mismatch error; there is no implicit numeric conversion.

func (p *Property) AsInt16() (int16, error) {
	if p != nil && p.Type == TypeInt16 {
		return p.Value.(int16), nil
	}
	return 0, p.mismatch(TypeInt16)
}

func (p *Property) AsBool() (bool, error) {
	if p != nil && p.Type == TypeBool {
		return p.Value.(bool), nil
	}
	return false, p.mismatch(TypeBool)
}

func (p *Property) AsInt32() (int32, error) {
	if p != nil && p.Type == TypeInt32 {
		return p.Value.(int32), nil
	}
	return 0, p.mismatch(TypeInt32)
}

func (p *Property) AsFloat32() (float32, error) {
	if p != nil && p.Type == TypeFloat32 {
		return p.Value.(float32), nil
	}
	return 0, p.mismatch(TypeFloat32)
}

func (p *Property) AsFloat64() (float64, error) {
	if p != nil && p.Type == TypeFloat64 {
		return p.Value.(float64), nil
	}
	return 0, p.mismatch(TypeFloat64)
}

func (p *Property) AsInt64() (int64, error) {
	if p != nil && p.Type == TypeInt64 {
		return p.Value.(int64), nil
	}
	return 0, p.mismatch(TypeInt64)
}

func (p *Property) AsBytes() ([]byte, error) {
	if p != nil && p.Type == TypeBytes {
		return p.Value.([]byte), nil
	}
	return nil, p.mismatch(TypeBytes)
}

func (p *Property) AsString() (string, error) {
	if p != nil && p.Type == TypeString {
		return p.Value.(string), nil
	}
	return "", p.mismatch(TypeString)
}

func (p *Property) AsInt32Array() ([]int32, error) {
	if p != nil && p.Type == TypeInt32Array {
		return p.Value.([]int32), nil
	}
	return nil, p.mismatch(TypeInt32Array)
}

func (p *Property) AsInt64Array() ([]int64, error) {
	if p != nil && p.Type == TypeInt64Array {
		return p.Value.([]int64), nil
	}
	return nil, p.mismatch(TypeInt64Array)
}

func (p *Property) AsFloat32Array() ([]float32, error) {
	if p != nil && p.Type == TypeFloat32Array {
		return p.Value.([]float32), nil
	}
	return nil, p.mismatch(TypeFloat32Array)
}

func (p *Property) AsFloat64Array() ([]float64, error) {
	if p != nil && p.Type == TypeFloat64Array {
		return p.Value.([]float64), nil
	}
	return nil, p.mismatch(TypeFloat64Array)
}

// AsBoolArray converts the stored byte-per-element form, nonzero meaning
// true.
func (p *Property) AsBoolArray() ([]bool, error) {
	if p == nil || p.Type != TypeBoolArray {
		return nil, p.mismatch(TypeBoolArray)
	}
	raw := p.Value.([]byte)
	out := make([]bool, len(raw))
	for i, b := range raw {
		out[i] = b != 0
	}
	return out, nil
}

// Lenient helpers in the spirit of the traversal API: they coerce across
// numeric variants and fall back to a default instead of failing.

func (p *Property) ToInt64(defvalue int64) int64 {
	if p == nil {
		return defvalue
	}
	switch v := p.Value.(type) {
	case bool:
		if v {
			return 1
		}
		return 0
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	}
	return defvalue
}

func (p *Property) ToInt(defvalue int) int {
	return int(p.ToInt64(int64(defvalue)))
}

func (p *Property) ToFloat64(defvalue float64) float64 {
	if p == nil {
		return defvalue
	}
	switch v := p.Value.(type) {
	case float32:
		return float64(v)
	case float64:
		return v
	case int16:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	}
	return defvalue
}

func (p *Property) ToString(defvalue string) string {
	if p == nil {
		return defvalue
	}
	switch v := p.Value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	}
	return defvalue
}

// Count is the element count of array properties and 0 for scalars.
func (p *Property) Count() int {
	if p == nil {
		return 0
	}
	switch v := p.Value.(type) {
	case []int32:
		return len(v)
	case []int64:
		return len(v)
	case []float32:
		return len(v)
	case []float64:
		return len(v)
	case []byte:
		if p.Type == TypeBoolArray {
			return len(v)
		}
	}
	return 0
}

func (p *Property) String() string {
	switch v := p.Value.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case []byte:
		return fmt.Sprintf("\"%v\"", v)
	default:
		return fmt.Sprint(v)
	}
}
