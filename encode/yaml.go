package encode

import (
	"fmt"
	"io"
	"strconv"

	"github.com/signadot/regmap/ir"

	"github.com/goccy/go-yaml"
)

func encodeYAML(node *ir.Node, w io.Writer, es *EncState) error {
	v, err := ToAny(node)
	if err != nil {
		return err
	}
	opts := []yaml.EncodeOption{
		yaml.Indent(es.indent),
		yaml.IndentSequence(true),
	}
	if es.wire {
		opts = append(opts, yaml.Flow(true))
	}
	d, err := yaml.MarshalWithOptions(v, opts...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	_, err = w.Write(d)
	return err
}

// ToAny converts a record tree into plain values which keep object key
// order: objects become yaml.MapSlice, arrays []any.
func ToAny(node *ir.Node) (any, error) {
	switch node.Type {
	case ir.ObjectType:
		res := make(yaml.MapSlice, len(node.Fields))
		for i, f := range node.Fields {
			v, err := ToAny(node.Values[i])
			if err != nil {
				return nil, err
			}
			res[i] = yaml.MapItem{Key: f.String, Value: v}
		}
		return res, nil
	case ir.ArrayType:
		res := make([]any, len(node.Values))
		for i, yv := range node.Values {
			v, err := ToAny(yv)
			if err != nil {
				return nil, err
			}
			res[i] = v
		}
		return res, nil
	case ir.StringType:
		return node.String, nil
	case ir.NumberType:
		if node.Int64 != nil {
			return *node.Int64, nil
		}
		u, err := strconv.ParseUint(node.Number, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: number %q at %s: %w", ErrEncoding, node.Number, node.Path(), err)
		}
		return u, nil
	case ir.BoolType:
		return node.Bool, nil
	case ir.NullType:
		return nil, nil
	default:
		return nil, fmt.Errorf("%w: unknown node type %s at %s", ErrEncoding, node.Type, node.Path())
	}
}
