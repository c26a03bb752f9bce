package libdiff

import (
	"bytes"
	"fmt"

	"github.com/signadot/regmap/encode"
	"github.com/signadot/regmap/ir"
	"github.com/signadot/regmap/parse"

	jsonpatch "github.com/evanphx/json-patch"
)

func marshalJSON(y *ir.Node) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(y, buf, encode.EncodeWire(true)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MergePatch returns the merge patch taking from to to.
func MergePatch(from, to *ir.Node) (*ir.Node, error) {
	f, err := marshalJSON(from)
	if err != nil {
		return nil, err
	}
	t, err := marshalJSON(to)
	if err != nil {
		return nil, err
	}
	p, err := jsonpatch.CreateMergePatch(f, t)
	if err != nil {
		return nil, fmt.Errorf("error creating merge patch: %w", err)
	}
	return parse.Parse(p)
}

// Apply applies patch to doc. An array patch is a JSON patch, an object a
// merge patch.
func Apply(doc, patch *ir.Node) (*ir.Node, error) {
	d, err := marshalJSON(doc)
	if err != nil {
		return nil, err
	}
	p, err := marshalJSON(patch)
	if err != nil {
		return nil, err
	}
	var out []byte
	switch patch.Type {
	case ir.ArrayType:
		ops, err := jsonpatch.DecodePatch(p)
		if err != nil {
			return nil, fmt.Errorf("error decoding json patch: %w", err)
		}
		out, err = ops.Apply(d)
		if err != nil {
			return nil, fmt.Errorf("error applying json patch: %w", err)
		}
	case ir.ObjectType:
		out, err = jsonpatch.MergePatch(d, p)
		if err != nil {
			return nil, fmt.Errorf("error applying merge patch: %w", err)
		}
	default:
		return nil, fmt.Errorf("patch is a %s, not an array or object", patch.Type)
	}
	return parse.Parse(out)
}
