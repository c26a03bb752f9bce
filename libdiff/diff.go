package libdiff

import (
	"fmt"
	"slices"

	"github.com/signadot/regmap/ir"
)

// NameKey is the key used to match array elements.
const NameKey = "inst_name"

// Change is one difference between two documents. From is nil for an
// insertion, To for a deletion.
type Change struct {
	Op   Op
	Path string
	From *ir.Node
	To   *ir.Node
}

// Changes lists the differences from one document to another in document
// order.
func Changes(from, to *ir.Node) []Change {
	var res []Change
	diff("$", from, to, &res)
	return res
}

// Diff returns the changes from one document to another as a document,
// or nil when they are equal.
func Diff(from, to *ir.Node) *ir.Node {
	cs := Changes(from, to)
	if len(cs) == 0 {
		return nil
	}
	return ToNode(cs)
}

func diff(path string, from, to *ir.Node, res *[]Change) {
	if from.Type != to.Type {
		*res = append(*res, Change{Op: Replace, Path: path, From: from, To: to})
		return
	}
	switch from.Type {
	case ir.ObjectType:
		diffObject(path, from, to, res)
	case ir.ArrayType:
		if fk, tk := names(from), names(to); fk != nil && tk != nil {
			diffNamed(path, from, to, fk, tk, res)
			return
		}
		diffArray(path, from, to, res)
	default:
		if !leafEqual(from, to) {
			*res = append(*res, Change{Op: Replace, Path: path, From: from, To: to})
		}
	}
}

func diffObject(path string, from, to *ir.Node, res *[]Change) {
	for i, f := range from.Fields {
		p := path + "." + f.String
		tv := ir.Get(to, f.String)
		if tv == nil {
			*res = append(*res, Change{Op: Delete, Path: p, From: from.Values[i]})
			continue
		}
		diff(p, from.Values[i], tv, res)
	}
	for i, f := range to.Fields {
		if ir.Get(from, f.String) == nil {
			*res = append(*res, Change{Op: Insert, Path: path + "." + f.String, To: to.Values[i]})
		}
	}
}

func diffArray(path string, from, to *ir.Node, res *[]Change) {
	n := min(len(from.Values), len(to.Values))
	for i := range n {
		diff(fmt.Sprintf("%s[%d]", path, i), from.Values[i], to.Values[i], res)
	}
	for i := n; i < len(from.Values); i++ {
		*res = append(*res, Change{Op: Delete, Path: fmt.Sprintf("%s[%d]", path, i), From: from.Values[i]})
	}
	for i := n; i < len(to.Values); i++ {
		*res = append(*res, Change{Op: Insert, Path: fmt.Sprintf("%s[%d]", path, i), To: to.Values[i]})
	}
}

// diffNamed matches elements by name. Elements present in both are
// compared at their position in from. A change of order among them is
// reported as a replacement of the name list.
func diffNamed(path string, from, to *ir.Node, fk, tk []string, res *[]Change) {
	tIdx := make(map[string]int, len(tk))
	for i, k := range tk {
		tIdx[k] = i
	}
	fIdx := make(map[string]int, len(fk))
	var fCommon, tCommon []string
	for i, k := range fk {
		fIdx[k] = i
		p := fmt.Sprintf("%s[%d]", path, i)
		j, ok := tIdx[k]
		if !ok {
			*res = append(*res, Change{Op: Delete, Path: p, From: from.Values[i]})
			continue
		}
		fCommon = append(fCommon, k)
		diff(p, from.Values[i], to.Values[j], res)
	}
	for j, k := range tk {
		if _, ok := fIdx[k]; ok {
			tCommon = append(tCommon, k)
			continue
		}
		*res = append(*res, Change{Op: Insert, Path: fmt.Sprintf("%s[%d]", path, j), To: to.Values[j]})
	}
	if !slices.Equal(fCommon, tCommon) {
		*res = append(*res, Change{
			Op:   Replace,
			Path: path + "." + NameKey + "s",
			From: stringSlice(fCommon),
			To:   stringSlice(tCommon),
		})
	}
}

// names returns the inst_name of each element of an array of objects, or
// nil if any is missing or repeated.
func names(y *ir.Node) []string {
	if len(y.Values) == 0 {
		return nil
	}
	res := make([]string, len(y.Values))
	seen := make(map[string]bool, len(y.Values))
	for i, v := range y.Values {
		n := ir.Get(v, NameKey)
		if n == nil || n.Type != ir.StringType || seen[n.String] {
			return nil
		}
		seen[n.String] = true
		res[i] = n.String
	}
	return res
}

func stringSlice(v []string) *ir.Node {
	vals := make([]*ir.Node, len(v))
	for i, s := range v {
		vals[i] = ir.FromString(s)
	}
	return ir.FromSlice(vals)
}

func leafEqual(a, b *ir.Node) bool {
	switch a.Type {
	case ir.NullType:
		return true
	case ir.BoolType:
		return a.Bool == b.Bool
	case ir.StringType:
		return a.String == b.String
	case ir.NumberType:
		return numText(a) == numText(b)
	}
	return false
}

func numText(y *ir.Node) string {
	if y.Int64 != nil {
		return fmt.Sprint(*y.Int64)
	}
	return y.Number
}

// ToNode renders changes as a diff document.
func ToNode(cs []Change) *ir.Node {
	vals := make([]*ir.Node, len(cs))
	for i := range cs {
		c := &cs[i]
		kvs := []ir.KeyVal{
			ir.KV("op", ir.FromString(c.Op.String())),
			ir.KV("path", ir.FromString(c.Path)),
		}
		if c.From != nil {
			kvs = append(kvs, ir.KV("from", c.From.Clone()))
		}
		if c.To != nil {
			kvs = append(kvs, ir.KV("to", c.To.Clone()))
		}
		if c.Op == Replace && c.From.Type == ir.StringType && c.To.Type == ir.StringType {
			kvs = append(kvs, ir.KV("text", ir.FromString(DiffString(c.From.String, c.To.String))))
		}
		vals[i] = ir.FromKeyVals(kvs)
	}
	return ir.FromSlice(vals)
}

// FromNode reads a diff document.
func FromNode(y *ir.Node) ([]Change, error) {
	if y.Type != ir.ArrayType {
		return nil, fmt.Errorf("diff document is a %s, not an array", y.Type)
	}
	res := make([]Change, len(y.Values))
	for i, v := range y.Values {
		opNode, pathNode := ir.Get(v, "op"), ir.Get(v, "path")
		if opNode == nil || pathNode == nil {
			return nil, fmt.Errorf("change %d lacks op or path", i)
		}
		op, err := ParseOp(opNode.String)
		if err != nil {
			return nil, fmt.Errorf("change %d: %w", i, err)
		}
		res[i] = Change{Op: op, Path: pathNode.String, From: ir.Get(v, "from"), To: ir.Get(v, "to")}
	}
	return res, nil
}
