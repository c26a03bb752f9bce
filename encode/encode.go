package encode

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/signadot/regmap/debug"
	"github.com/signadot/regmap/format"
	"github.com/signadot/regmap/ir"
	"github.com/signadot/regmap/token"
)

var ErrEncoding = errors.New("encoding error")

type EncState struct {
	depth, indent int

	format format.Format
	wire   bool

	Color func(ir.Type, ColorAttr, string) string
}

func Encode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{
		indent: DefaultIndent,
	}
	for _, opt := range opts {
		opt(es)
	}
	if node == nil {
		return fmt.Errorf("%w: nil document", ErrEncoding)
	}
	if debug.Encode() {
		debug.Logf("encode %s indent=%d wire=%t root=%s\n", es.format, es.indent, es.wire, node.Path())
	}
	switch es.format {
	case format.JSONFormat:
		if err := encode(node, w, es); err != nil {
			return err
		}
		return writeString(w, "\n")
	case format.YAMLFormat:
		return encodeYAML(node, w, es)
	default:
		return fmt.Errorf("%w: %s", format.ErrBadFormat, es.format)
	}
}

// Helper functions for writing
func writeNL(w io.Writer, es *EncState) error {
	if es.wire {
		return nil
	}
	return writeString(w, "\n"+strings.Repeat(" ", es.indent*es.depth))
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}

// Color application helpers

func applyColor(es *EncState, nodeType ir.Type, attr ColorAttr, v string) string {
	if es.Color == nil {
		return v
	}
	return es.Color(nodeType, attr, v)
}

func writeSep(w io.Writer, es *EncState, cType ir.Type, sep string) error {
	return writeString(w, applyColor(es, cType, SepColor, sep))
}

// Main encode function

func encode(node *ir.Node, w io.Writer, es *EncState) error {
	switch node.Type {
	case ir.ObjectType:
		return encodeObject(node, w, es)
	case ir.ArrayType:
		return encodeArray(node, w, es)
	case ir.StringType:
		return writeString(w, applyColor(es, ir.StringType, ValueColor, token.Quote(node.String)))
	case ir.NumberType:
		return encodeNumber(node, w, es)
	case ir.BoolType:
		return writeString(w, applyColor(es, ir.BoolType, ValueColor, strconv.FormatBool(node.Bool)))
	case ir.NullType:
		return writeString(w, applyColor(es, ir.NullType, ValueColor, "null"))
	default:
		return fmt.Errorf("%w: unknown node type %s at %s", ErrEncoding, node.Type, node.Path())
	}
}

func encodeObject(node *ir.Node, w io.Writer, es *EncState) error {
	if len(node.Fields) != len(node.Values) {
		return fmt.Errorf("%w: %d fields and %d values at %s", ErrEncoding,
			len(node.Fields), len(node.Values), node.Path())
	}
	if err := writeSep(w, es, ir.ObjectType, "{"); err != nil {
		return err
	}
	if len(node.Fields) == 0 {
		return writeSep(w, es, ir.ObjectType, "}")
	}
	es.depth++
	for i, yField := range node.Fields {
		if i != 0 {
			if err := writeSep(w, es, ir.ObjectType, ","); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := writeField(w, yField, es); err != nil {
			return err
		}
		if err := encode(node.Values[i], w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeSep(w, es, ir.ObjectType, "}")
}

func writeField(w io.Writer, yField *ir.Node, es *EncState) error {
	if yField.Type != ir.StringType {
		return fmt.Errorf("%w: %s keys unsupported in %s", ErrEncoding, yField.Type, es.format)
	}
	sep := ": "
	if es.wire {
		sep = ":"
	}
	f := applyColor(es, ir.ObjectType, FieldColor, token.Quote(yField.String))
	return writeString(w, f+applyColor(es, ir.ObjectType, SepColor, sep))
}

// Array encoding

func encodeArray(node *ir.Node, w io.Writer, es *EncState) error {
	if err := writeSep(w, es, ir.ArrayType, "["); err != nil {
		return err
	}
	if len(node.Values) == 0 {
		return writeSep(w, es, ir.ArrayType, "]")
	}
	es.depth++
	for i, v := range node.Values {
		if i != 0 {
			if err := writeSep(w, es, ir.ArrayType, ","); err != nil {
				return err
			}
		}
		if err := writeNL(w, es); err != nil {
			return err
		}
		if err := encode(v, w, es); err != nil {
			return err
		}
	}
	es.depth--
	if err := writeNL(w, es); err != nil {
		return err
	}
	return writeSep(w, es, ir.ArrayType, "]")
}

// Number encoding

func encodeNumber(node *ir.Node, w io.Writer, es *EncState) error {
	var v string
	switch {
	case node.Int64 != nil:
		v = strconv.FormatInt(*node.Int64, 10)
	case node.Number != "":
		v = node.Number
	default:
		return fmt.Errorf("%w: number without value at %s", ErrEncoding, node.Path())
	}
	return writeString(w, applyColor(es, ir.NumberType, ValueColor, v))
}
