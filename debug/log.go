package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/signadot/regmap/ir"
	"github.com/signadot/regmap/token"
)

var out io.Writer = os.Stderr

// Logf writes to stderr. *ir.Node arguments are rendered as compact JSON.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case map[string]any, []any, json.Number:
			d, err := json.MarshalIndent(a, "   |", "  ")
			if err != nil {
				args[i] = fmt.Sprintf("%v", a)
				continue
			}
			args[i] = string(d)
		case *ir.Node:
			args[i] = compact(x)
		case bool, string, float64, int:

		default:
		}
	}
	fmt.Fprintf(out, msg, args...)
}

// compact renders a record without going through encode, which itself logs
// through this package.
func compact(y *ir.Node) string {
	if y == nil {
		return "<nil>"
	}
	b := &strings.Builder{}
	writeCompact(b, y)
	return b.String()
}

func writeCompact(b *strings.Builder, y *ir.Node) {
	switch y.Type {
	case ir.ObjectType:
		b.WriteByte('{')
		for i, f := range y.Fields {
			if i != 0 {
				b.WriteByte(',')
			}
			b.WriteString(token.Quote(f.String))
			b.WriteByte(':')
			writeCompact(b, y.Values[i])
		}
		b.WriteByte('}')
	case ir.ArrayType:
		b.WriteByte('[')
		for i, v := range y.Values {
			if i != 0 {
				b.WriteByte(',')
			}
			writeCompact(b, v)
		}
		b.WriteByte(']')
	case ir.StringType:
		b.WriteString(token.Quote(y.String))
	case ir.NumberType:
		if y.Int64 != nil {
			fmt.Fprintf(b, "%d", *y.Int64)
		} else {
			b.WriteString(y.Number)
		}
	case ir.BoolType:
		fmt.Fprintf(b, "%t", y.Bool)
	default:
		b.WriteString("null")
	}
}
