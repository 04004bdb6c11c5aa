package value

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Parse decodes a single JSON value. Object keys keep their source order.
// Trailing non-whitespace input is an error.
func Parse(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := parseNext(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("trailing data after JSON value")
	}
	return v, nil
}

// ParseObject decodes a JSON value and requires it to be an object.
func ParseObject(data []byte) (*Object, error) {
	v, err := Parse(data)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(*Object)
	if !ok {
		return nil, fmt.Errorf("top-level JSON value is not an object")
	}
	return obj, nil
}

// MustParse parses a JSON literal, panicking on error. Test convenience.
func MustParse(src string) Value {
	v, err := Parse([]byte(src))
	if err != nil {
		panic(fmt.Sprintf("MustParse(%q): %v", src, err))
	}
	return v
}

// MustParseObject parses a JSON object literal, panicking on error.
func MustParseObject(src string) *Object {
	obj, err := ParseObject([]byte(src))
	if err != nil {
		panic(fmt.Sprintf("MustParseObject(%q): %v", src, err))
	}
	return obj
}

// parseNext consumes one complete value from the token stream.
// Token-level decoding is what preserves object key order; a straight
// json.Unmarshal into map[string]any would lose it.
func parseNext(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return parseToken(dec, tok)
}

func parseToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			return parseObjectBody(dec)
		case '[':
			return parseArrayBody(dec)
		default:
			return nil, fmt.Errorf("unexpected delimiter %q", t)
		}
	case string:
		return String(t), nil
	case json.Number:
		return Number(t.String()), nil
	case bool:
		return Bool(t), nil
	case nil:
		return Null{}, nil
	default:
		return nil, fmt.Errorf("unexpected token %v (%T)", tok, tok)
	}
}

func parseObjectBody(dec *json.Decoder) (*Object, error) {
	obj := NewObject()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", keyTok)
		}
		v, err := parseNext(dec)
		if err != nil {
			return nil, fmt.Errorf("object key %q: %w", key, err)
		}
		obj.Set(key, v)
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, err
	}
	return obj, nil
}

func parseArrayBody(dec *json.Decoder) (Array, error) {
	arr := Array{}
	for dec.More() {
		v, err := parseNext(dec)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", len(arr), err)
		}
		arr = append(arr, v)
	}
	if _, err := dec.Token(); err != nil { // closing ']'
		return nil, err
	}
	return arr, nil
}
