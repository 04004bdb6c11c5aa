// Package harness runs YAML-defined conformance scenarios against the
// storage engine.
//
// A scenario is a named sequence of storage operations (set, get, remove,
// clear) executed in order against one extension's storage area backed by a
// real SQLite database. The harness records a trace of every operation's
// observable output - get results, change sets, quota rejections - and
// compares the trace against a golden file.
//
// Value-bearing YAML fields are decoded through yaml.Node rather than plain
// maps: the storage semantics are order-sensitive (key specs and change sets
// follow property order) and must distinguish an absent field from an
// explicit null, and both properties die in a map[string]interface{}.
package harness
