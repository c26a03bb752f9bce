package eval

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var sizedRE = regexp.MustCompile(`(\d*)'([sS]?)([hHdDbBoO])([0-9a-fA-F_]+)`)

// ParseSized parses a Verilog sized literal such as 8'hFF. The returned
// width is 0 when the literal has no size.
func ParseSized(v string) (uint64, int, error) {
	m := sizedRE.FindStringSubmatch(strings.TrimSpace(v))
	if m == nil || m[0] != strings.TrimSpace(v) {
		return 0, 0, fmt.Errorf("%w: %q is not a sized literal", ErrExpr, v)
	}
	return sized(m)
}

func sized(m []string) (uint64, int, error) {
	base := 10
	switch strings.ToLower(m[3]) {
	case "h":
		base = 16
	case "b":
		base = 2
	case "o":
		base = 8
	}
	val, err := strconv.ParseUint(strings.ReplaceAll(m[4], "_", ""), base, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q: %w", ErrExpr, m[0], err)
	}
	width := 0
	if m[1] != "" {
		width, err = strconv.Atoi(m[1])
		if err != nil || width == 0 {
			return 0, 0, fmt.Errorf("%w: %q: bad width", ErrExpr, m[0])
		}
		if width < 64 && val>>width != 0 {
			return 0, 0, fmt.Errorf("%w: %q does not fit in %d bits", ErrExpr, m[0], width)
		}
	}
	return val, width, nil
}

// expandSized replaces each sized literal in raw with its decimal value.
func expandSized(raw string) (string, error) {
	var err error
	res := sizedRE.ReplaceAllStringFunc(raw, func(lit string) string {
		if err != nil {
			return lit
		}
		v, _, sErr := sized(sizedRE.FindStringSubmatch(lit))
		if sErr != nil {
			err = sErr
			return lit
		}
		return strconv.FormatUint(v, 10)
	})
	return res, err
}
