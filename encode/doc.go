// Package encode writes ir record trees as documents.
//
// # Usage
//
//	// Pretty JSON, 4-space indentation, keys in insertion order
//	err := encode.Encode(node, w)
//
//	// Compact single-line JSON
//	err := encode.Encode(node, w, encode.EncodeWire(true))
//
//	// YAML spelling of the same document
//	err := encode.Encode(node, w, encode.EncodeFormat(format.YAMLFormat))
//
// Output always ends with a newline. Object keys are written in the order
// they were inserted in the record; nothing is sorted.
//
// # Related Packages
//
//   - github.com/signadot/regmap/ir - record representation
//   - github.com/signadot/regmap/parse - parse documents back to records
package encode
