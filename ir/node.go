package ir

import (
	"math"
	"strconv"
)

type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string
	Fields      []*Node
	Values      []*Node

	String string
	Bool   bool
	Number string
	Int64  *int64
}

// Clone returns a deep copy of y detached from its parent.
func (y *Node) Clone() *Node {
	switch y.Type {
	case ObjectType:
		kvs := make([]KeyVal, len(y.Fields))
		for i := range y.Fields {
			kvs[i] = KeyVal{Key: y.Fields[i].Clone(), Val: y.Values[i].Clone()}
		}
		return FromKeyVals(kvs)
	case ArrayType:
		vals := make([]*Node, len(y.Values))
		for i, v := range y.Values {
			vals[i] = v.Clone()
		}
		return FromSlice(vals)
	}
	res := &Node{Type: y.Type, String: y.String, Bool: y.Bool, Number: y.Number}
	if y.Int64 != nil {
		i := *y.Int64
		res.Int64 = &i
	}
	return res
}

func FromString(v string) *Node {
	return &Node{
		Type:   StringType,
		String: v,
	}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

// FromUint keeps values above math.MaxInt64 as decimal text.
func FromUint(v uint64) *Node {
	if v <= math.MaxInt64 {
		return FromInt(int64(v))
	}
	return &Node{
		Type:   NumberType,
		Number: strconv.FormatUint(v, 10),
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func Null() *Node {
	return &Node{Type: NullType}
}

type KeyVal struct {
	Key *Node
	Val *Node
}

func KV(key string, val *Node) KeyVal {
	return KeyVal{Key: FromString(key), Val: val}
}

// FromKeyVals builds an object whose keys keep the order of kvs.
func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{
		Type:   ObjectType,
		Fields: make([]*Node, len(kvs)),
		Values: make([]*Node, len(kvs)),
	}
	for i, kv := range kvs {
		for _, n := range []*Node{kv.Key, kv.Val} {
			n.Parent = res
			n.ParentIndex = i
			n.ParentField = kv.Key.String
		}
		res.Fields[i] = kv.Key
		res.Values[i] = kv.Val
	}
	return res
}

func FromSlice(ySlice []*Node) *Node {
	res := &Node{
		Type: ArrayType,
	}
	res.Values = make([]*Node, len(ySlice))
	for i, y := range ySlice {
		res.Values[i] = y
		y.Parent = res
		y.ParentIndex = i
	}
	return res
}

func Get(y *Node, field string) *Node {
	if y == nil || y.Type != ObjectType {
		return nil
	}
	for i := range y.Fields {
		if y.Fields[i].String == field {
			return y.Values[i]
		}
	}
	return nil
}

// Keys returns the object keys of y in insertion order.
func (y *Node) Keys() []string {
	res := make([]string, len(y.Fields))
	for i, f := range y.Fields {
		res[i] = f.String
	}
	return res
}
