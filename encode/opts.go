package encode

import "github.com/signadot/regmap/format"

const DefaultIndent = 4

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}

// EncodeIndent sets the number of spaces per nesting level. Values below 1
// fall back to DefaultIndent.
func EncodeIndent(n int) EncodeOption {
	return func(es *EncState) {
		if n < 1 {
			n = DefaultIndent
		}
		es.indent = n
	}
}
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) {
		if c == nil {
			es.Color = nil
			return
		}
		es.Color = c.Color
	}
}
func EncodeWire(v bool) EncodeOption {
	return func(es *EncState) { es.wire = v }
}
