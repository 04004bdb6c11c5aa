package engine

import (
	"bytes"
	"fmt"

	"github.com/tessellated/extstore/internal/value"
)

// Change is the before/after snapshot of one key produced by a mutation.
//
// A nil OldValue means the key did not exist before; a nil NewValue means
// the key was deleted. Nil fields are omitted from the JSON form entirely -
// downstream listener plumbing distinguishes "field not present" from
// "field present with null", so value.Null must never stand in for absence.
//
// No change optimization is performed: setting a key to its current value
// still yields a change with OldValue == NewValue. See bug 1621162 - this
// mirrors Firefox, not Chrome, and is deliberate.
type Change struct {
	OldValue value.Value
	NewValue value.Value
}

// MarshalJSON implements json.Marshaler, omitting absent fields.
func (c Change) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if c.OldValue != nil {
		buf.WriteString(`"oldValue":`)
		data, err := value.Encode(c.OldValue)
		if err != nil {
			return nil, fmt.Errorf("change oldValue: %w", err)
		}
		buf.Write(data)
	}
	if c.NewValue != nil {
		if c.OldValue != nil {
			buf.WriteByte(',')
		}
		buf.WriteString(`"newValue":`)
		data, err := value.Encode(c.NewValue)
		if err != nil {
			return nil, fmt.Errorf("change newValue: %w", err)
		}
		buf.Write(data)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// ChangeSet maps touched keys to their change records. Untouched keys never
// appear. Iteration and JSON order follow the order keys were processed
// during the mutation.
type ChangeSet struct {
	keys    []string
	changes map[string]Change
}

// NewChangeSet creates an empty change set.
func NewChangeSet() *ChangeSet {
	return &ChangeSet{changes: make(map[string]Change)}
}

// Len returns the number of changed keys.
func (cs *ChangeSet) Len() int {
	return len(cs.keys)
}

// Keys returns the changed keys in processing order. The slice is a copy.
func (cs *ChangeSet) Keys() []string {
	keys := make([]string, len(cs.keys))
	copy(keys, cs.keys)
	return keys
}

// Get returns the change for key and whether the key was touched.
func (cs *ChangeSet) Get(key string) (Change, bool) {
	c, ok := cs.changes[key]
	return c, ok
}

func (cs *ChangeSet) add(key string, c Change) {
	if _, ok := cs.changes[key]; !ok {
		cs.keys = append(cs.keys, key)
	}
	cs.changes[key] = c
}

// MarshalJSON implements json.Marshaler in processing order.
func (cs *ChangeSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range cs.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyData, err := value.Encode(value.String(k))
		if err != nil {
			return nil, err
		}
		buf.Write(keyData)
		buf.WriteByte(':')
		changeData, err := cs.changes[k].MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("change for key %q: %w", k, err)
		}
		buf.Write(changeData)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
