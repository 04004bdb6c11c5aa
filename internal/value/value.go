package value

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Value is a sealed interface over the JSON variants.
// Only Null, Bool, Number, String, Array, and *Object implement it.
// A nil Value means "absent" - callers use it where a key or field may be
// missing entirely, which is distinct from an explicit Null.
type Value interface {
	jsonValue() // sealed
}

// Null is an explicit JSON null.
// Using a concrete type (rather than a nil Value) keeps "present with null"
// and "absent" apart.
type Null struct{}

func (Null) jsonValue() {}

// Bool is a JSON boolean.
type Bool bool

func (Bool) jsonValue() {}

// Number holds the raw JSON number literal, e.g. "42" or "1.5e3".
// Keeping the literal avoids float64 round-trips: the bytes written back to
// the store are the bytes that came in, which quota accounting depends on.
type Number string

func (Number) jsonValue() {}

// String is a JSON string.
type String string

func (String) jsonValue() {}

// Array is a JSON array.
type Array []Value

func (Array) jsonValue() {}

// Encode serializes a Value to compact JSON.
//
// Differences from encoding/json defaults, both load-bearing:
//   - no HTML escaping (< > & pass through), matching the persisted-byte
//     contract the quotas count against
//   - object keys emit in insertion order, not sorted
func Encode(v Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func encodeValue(buf *bytes.Buffer, v Value) error {
	switch val := v.(type) {
	case Null:
		buf.WriteString("null")
		return nil
	case Bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
		return nil
	case Number:
		buf.WriteString(string(val))
		return nil
	case String:
		return encodeString(buf, string(val))
	case Array:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, elem); err != nil {
				return fmt.Errorf("array[%d]: %w", i, err)
			}
		}
		buf.WriteByte(']')
		return nil
	case *Object:
		return val.encode(buf)
	case nil:
		return fmt.Errorf("cannot encode absent value")
	default:
		return fmt.Errorf("unknown Value type: %T", v)
	}
}

// encodeString writes a JSON string without HTML escaping.
func encodeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encoder appends a newline; the compact form must not carry it.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// EncodedLen returns the length in bytes of the compact JSON encoding of v.
func EncodedLen(v Value) (int, error) {
	data, err := Encode(v)
	if err != nil {
		return 0, err
	}
	return len(data), nil
}
