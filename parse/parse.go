package parse

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"strconv"

	"github.com/signadot/regmap/ir"

	"github.com/goccy/go-yaml"
)

type parseOpts struct {
	strictKeys bool
	name       string
}

type ParseOption func(*parseOpts)

// StrictKeys rejects objects with keys other than strings.
func StrictKeys(v bool) ParseOption {
	return func(o *parseOpts) { o.strictKeys = v }
}

// Name sets the document name used in errors.
func Name(v string) ParseOption {
	return func(o *parseOpts) { o.name = v }
}

// Parse reads a single document.
func Parse(d []byte, opts ...ParseOption) (*ir.Node, error) {
	po := &parseOpts{strictKeys: true, name: "<input>"}
	for _, o := range opts {
		o(po)
	}
	dec := yaml.NewDecoder(bytes.NewReader(d), yaml.UseOrderedMap())
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParse, po.name, err)
	}
	var extra any
	if err := dec.Decode(&extra); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrMultiDoc, po.name)
	}
	res, err := FromAny(v, po.strictKeys)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", po.name, err)
	}
	return res, nil
}

// ParseFile reads the document at path.
func ParseFile(path string, opts ...ParseOption) (*ir.Node, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(d, append([]ParseOption{Name(path)}, opts...)...)
}

// FromAny converts a value decoded with yaml.UseOrderedMap.
func FromAny(v any, strictKeys bool) (*ir.Node, error) {
	switch x := v.(type) {
	case nil:
		return ir.Null(), nil
	case bool:
		return ir.FromBool(x), nil
	case string:
		return ir.FromString(x), nil
	case int:
		return ir.FromInt(int64(x)), nil
	case int64:
		return ir.FromInt(x), nil
	case uint64:
		return ir.FromUint(x), nil
	case float64:
		if x == math.Trunc(x) && math.Abs(x) < 1<<53 {
			return ir.FromInt(int64(x)), nil
		}
		if math.IsInf(x, 0) || math.IsNaN(x) {
			return nil, fmt.Errorf("%w: %v is not a JSON number", ErrParse, x)
		}
		return &ir.Node{Type: ir.NumberType, Number: strconv.FormatFloat(x, 'g', -1, 64)}, nil
	case []any:
		vals := make([]*ir.Node, len(x))
		for i, e := range x {
			n, err := FromAny(e, strictKeys)
			if err != nil {
				return nil, err
			}
			vals[i] = n
		}
		return ir.FromSlice(vals), nil
	case yaml.MapSlice:
		kvs := make([]ir.KeyVal, len(x))
		for i, item := range x {
			key, ok := item.Key.(string)
			if !ok {
				if strictKeys {
					return nil, fmt.Errorf("%w: %v", ErrKeyType, item.Key)
				}
				key = fmt.Sprint(item.Key)
			}
			n, err := FromAny(item.Value, strictKeys)
			if err != nil {
				return nil, err
			}
			kvs[i] = ir.KV(key, n)
		}
		return ir.FromKeyVals(kvs), nil
	}
	return nil, fmt.Errorf("%w: unsupported value %v (%T)", ErrParse, v, v)
}
