// Package format names the document formats regmap can write.
//
// JSON is the exchange format. YAML is offered as an alternative spelling
// of the same document for human consumption; both carry identical content
// and key order.
//
// # Related Packages
//
//   - github.com/signadot/regmap/encode - Encodes record trees to text
//   - github.com/signadot/regmap/parse - Parses documents back into records
package format
