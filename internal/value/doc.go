// Package value implements the JSON data model for extension storage.
//
// Stored values are arbitrary JSON, represented as a sealed tagged variant
// (Null, Bool, Number, String, Array, Object) rather than interface{} soup.
// Two properties of the representation carry the whole system:
//
// Byte fidelity:
// Numbers keep their raw source literal and strings encode without HTML
// escaping, so a value parses and re-encodes to the identical bytes. Quota
// accounting counts encoded bytes, so any drift here would change which
// writes succeed.
//
// Order preservation:
// Objects remember insertion order. Key-specification expansion, change-set
// iteration, and quota checks are all defined in terms of the order keys
// appear in the incoming JSON, so a plain Go map cannot represent them.
//
// A nil Value means "absent". Null{} is an explicit JSON null. The two are
// never interchangeable: change records and get-defaults distinguish them
// observably.
package value
