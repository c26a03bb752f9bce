package token

import (
	"strings"
	"unicode"
)

const hexDigits = "0123456789abcdef"

var shortEsc = map[rune]string{
	'"':  `\"`,
	'\\': `\\`,
	'\b': `\b`,
	'\f': `\f`,
	'\n': `\n`,
	'\r': `\r`,
	'\t': `\t`,
}

// Quote returns v as a double quoted JSON string. Non-ASCII text is kept as
// UTF-8; only control characters are escaped.
func Quote(v string) string {
	b := &strings.Builder{}
	b.Grow(len(v) + 2)
	b.WriteByte('"')
	for _, r := range v {
		if esc, ok := shortEsc[r]; ok {
			b.WriteString(esc)
			continue
		}
		if !unicode.IsControl(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteString(`\u`)
		for shift := 12; shift >= 0; shift -= 4 {
			b.WriteByte(hexDigits[(r>>shift)&0xf])
		}
	}
	b.WriteByte('"')
	return b.String()
}
