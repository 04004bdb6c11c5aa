package engine

import "github.com/tessellated/extstore/internal/value"

// keyDefault is one expanded (key, optional default) pair.
// A nil Default means "no default supplied"; value.Null is an explicit
// null default and is served to callers like any other default.
type keyDefault struct {
	Key     string
	Default value.Value
}

// expandKeys normalizes a key-specification value into an ordered list of
// (key, default) pairs:
//
//	string       -> one pair, no default
//	array        -> string elements in order, no defaults; non-strings
//	                silently dropped, duplicates kept
//	object       -> each property in order, default = property value
//	anything else -> empty list
//
// The null sentinel ("return everything") is short-circuited by callers
// before expansion and never reaches here.
func expandKeys(spec value.Value) []keyDefault {
	switch s := spec.(type) {
	case value.String:
		return []keyDefault{{Key: string(s)}}
	case value.Array:
		pairs := make([]keyDefault, 0, len(s))
		for _, elem := range s {
			if str, ok := elem.(value.String); ok {
				pairs = append(pairs, keyDefault{Key: string(str)})
			}
		}
		return pairs
	case *value.Object:
		pairs := make([]keyDefault, 0, s.Len())
		for _, k := range s.Keys() {
			d, _ := s.Get(k)
			pairs = append(pairs, keyDefault{Key: k, Default: d})
		}
		return pairs
	default:
		return nil
	}
}

// isNullSpec reports whether spec is the "whole object" sentinel: either an
// absent value or an explicit JSON null.
func isNullSpec(spec value.Value) bool {
	if spec == nil {
		return true
	}
	_, ok := spec.(value.Null)
	return ok
}
