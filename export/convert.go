package export

import (
	"fmt"

	"github.com/signadot/regmap/ir"
	"github.com/signadot/regmap/parse"
	"github.com/signadot/regmap/regmodel"
)

// checkContainer holds for every container before any of its children
// are visited.
func checkContainer(c regmodel.Container, path string) error {
	if c.IsArray() {
		return newError(ErrUnsupportedConstruct, c, path,
			"JSON export does not support arrays")
	}
	return nil
}

// convertContainer expects c to have passed checkContainer.
func convertContainer(c regmodel.Container, children []*ir.Node, path string) (*ir.Node, error) {
	off, err := c.AddressOffset()
	if err != nil {
		return nil, newError(err, c, path, err.Error())
	}
	kvs := make([]ir.KeyVal, 0, 5)
	kvs = append(kvs,
		ir.KV("type", ir.FromString(c.Kind().String())),
		ir.KV("inst_name", ir.FromString(c.InstName())),
		ir.KV("addr_offset", ir.FromUint(off)),
	)
	kvs = appendDesc(kvs, c)
	kvs = append(kvs, ir.KV("children", ir.FromSlice(children)))
	return ir.FromKeyVals(kvs), nil
}

func convertReg(r *regmodel.Reg, path string) (*ir.Node, error) {
	// an array is placed at the address of its first element.
	off, err := r.AddressOffset(r.RepresentativeIndex()...)
	if err != nil {
		return nil, newError(err, r, path, err.Error())
	}
	kvs := make([]ir.KeyVal, 0, 8)
	kvs = append(kvs,
		ir.KV("type", ir.FromString("reg")),
		ir.KV("inst_name", ir.FromString(r.InstName())),
		ir.KV("addr_offset", ir.FromUint(off)),
	)
	kvs = appendDesc(kvs, r)
	if idx, ok := r.IndexDesc(); ok {
		kvs = append(kvs, ir.KV("index", ir.FromString(idx)))
	}
	if r.IsArray() {
		n := regmodel.CountInstances(r.Unrolled())
		kvs = append(kvs,
			ir.KV("entries", ir.FromInt(int64(n))),
			ir.KV("entry_size", ir.FromUint(r.RegWidth())),
		)
	}
	fields := r.Fields()
	recs := make([]*ir.Node, len(fields))
	for i, f := range fields {
		recs[i] = convertField(f)
	}
	kvs = append(kvs, ir.KV("children", ir.FromSlice(recs)))
	return ir.FromKeyVals(kvs), nil
}

// resetValue renders an unsigned reset as a number and any other reset
// value as it was given.
func resetValue(f *regmodel.Field) *ir.Node {
	if v, ok := f.Reset(); ok {
		return ir.FromUint(v)
	}
	raw, ok := f.Property(regmodel.PropReset)
	if !ok {
		return ir.Null()
	}
	if n, err := parse.FromAny(raw, false); err == nil {
		return n
	}
	return ir.FromString(fmt.Sprint(raw))
}

func convertField(f *regmodel.Field) *ir.Node {
	reset := resetValue(f)
	desc := ir.Null()
	if s, ok := f.Desc(); ok {
		desc = ir.FromString(s)
	}
	return ir.FromKeyVals([]ir.KeyVal{
		ir.KV("type", ir.FromString("field")),
		ir.KV("inst_name", ir.FromString(f.InstName())),
		ir.KV("lsb", ir.FromInt(int64(f.LSB))),
		ir.KV("msb", ir.FromInt(int64(f.MSB))),
		ir.KV("reset", reset),
		ir.KV("sw_access", ir.FromString(f.Access().String())),
		ir.KV("desc", desc),
	})
}

type describer interface {
	Property(string) (any, bool)
}

func appendDesc(kvs []ir.KeyVal, n describer) []ir.KeyVal {
	v, ok := n.Property(regmodel.PropDesc)
	if !ok {
		return kvs
	}
	s, ok := v.(string)
	if !ok {
		return kvs
	}
	return append(kvs, ir.KV("desc", ir.FromString(s)))
}
