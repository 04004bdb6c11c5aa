package engine

import (
	"context"

	"github.com/tessellated/extstore/internal/value"
)

// Store is the record store contract the engine mutates through: one JSON
// object per extension id.
//
// Load returns (nil, nil) when no record exists or when the stored bytes do
// not parse as a JSON object - corruption degrades to "no data", never to an
// error. Save replaces any prior record. Delete removes the record entirely.
//
// Store errors propagate to engine callers unchanged; retry policy belongs
// to them.
type Store interface {
	Load(ctx context.Context, extID string) (*value.Object, error)
	Save(ctx context.Context, extID string, obj *value.Object) error
	Delete(ctx context.Context, extID string) error
}

// Set merges val into the extension's record and returns one change per
// incoming key.
//
// A non-object val is treated as an empty object: the call succeeds, stores
// nothing, and returns an empty change set.
//
// Quota checks run per incoming key, in the order keys appear in val:
// the key is first removed from the working map (so updating an existing
// key never counts against MaxItems), then the item size is checked, then
// the value is inserted. After all keys, the whole serialized record is
// checked against QuotaBytes. Any failure aborts the call with a QuotaError
// and persists nothing.
func Set(ctx context.Context, st Store, extID string, val value.Value) (*ChangeSet, error) {
	incoming, ok := val.(*value.Object)
	if !ok {
		incoming = value.NewObject()
	}

	current, err := st.Load(ctx, extID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		current = value.NewObject()
	}

	changes := NewChangeSet()
	for _, k := range incoming.Keys() {
		v, _ := incoming.Get(k)

		old, _ := current.Delete(k)
		if current.Len() >= MaxItems {
			return nil, &QuotaError{Reason: ReasonMaxItems, ExtensionID: extID, Key: k}
		}
		encLen, err := value.EncodedLen(v)
		if err != nil {
			return nil, err
		}
		if len(k)+encLen >= QuotaBytesPerItem {
			return nil, &QuotaError{Reason: ReasonItemBytes, ExtensionID: extID, Key: k}
		}
		current.Set(k, v)
		changes.add(k, Change{OldValue: old, NewValue: v})
	}

	totalLen, err := value.EncodedLen(current)
	if err != nil {
		return nil, err
	}
	if totalLen > QuotaBytes {
		return nil, &QuotaError{Reason: ReasonTotalBytes, ExtensionID: extID}
	}

	if err := st.Save(ctx, extID, current); err != nil {
		return nil, err
	}
	return changes, nil
}

// Get returns the requested subset of the extension's record.
//
// A nil or null keySpec returns the entire stored object. Otherwise the
// spec expands to (key, default) pairs: present keys return their stored
// value (defaults never shadow stored values, including stored nulls),
// absent keys with a default - even an explicit null default - return the
// default, and absent keys without one are omitted.
//
// An extension with no record reads as an empty object.
func Get(ctx context.Context, st Store, extID string, keySpec value.Value) (*value.Object, error) {
	current, err := st.Load(ctx, extID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return value.NewObject(), nil
	}
	if isNullSpec(keySpec) {
		return current, nil
	}

	result := value.NewObject()
	for _, kd := range expandKeys(keySpec) {
		if v, ok := current.Get(kd.Key); ok {
			result.Set(kd.Key, v)
		} else if kd.Default != nil {
			result.Set(kd.Key, kd.Default)
		}
	}
	return result, nil
}

// Remove deletes the selected keys and returns a change per key actually
// removed; keys not present are not reported. Defaults in an object key
// spec are ignored - only key presence matters.
//
// The record is rewritten only if at least one key was removed. Removing
// every key persists an empty object record; it does not delete the record.
func Remove(ctx context.Context, st Store, extID string, keySpec value.Value) (*ChangeSet, error) {
	changes := NewChangeSet()

	current, err := st.Load(ctx, extID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return changes, nil
	}

	for _, kd := range expandKeys(keySpec) {
		if old, ok := current.Delete(kd.Key); ok {
			changes.add(kd.Key, Change{OldValue: old})
		}
	}
	if changes.Len() > 0 {
		if err := st.Save(ctx, extID, current); err != nil {
			return nil, err
		}
	}
	return changes, nil
}

// Clear deletes the extension's record entirely and returns a change per
// key it held. Unlike Remove, no empty record is left behind.
func Clear(ctx context.Context, st Store, extID string) (*ChangeSet, error) {
	changes := NewChangeSet()

	current, err := st.Load(ctx, extID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return changes, nil
	}

	for _, k := range current.Keys() {
		v, _ := current.Get(k)
		changes.add(k, Change{OldValue: v})
	}
	if err := st.Delete(ctx, extID); err != nil {
		return nil, err
	}
	return changes, nil
}
