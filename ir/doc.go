// Package ir provides the intermediate record tree produced when a register
// model is exported.
//
// # Overview
//
// A conversion run builds one tree of ir.Node values bottom-up and hands the
// finished root to the encoder. The tree is a recursive tagged union which is
// directly representable in JSON and YAML:
//
//   - Atomic types: null, boolean, number, string
//   - Composite types: object (ordered key-value pairs), array (ordered list)
//
// # Objects
//
// For ObjectType nodes, Fields[i] is the key for the value at Values[i], so
// there are always as many fields as values. Keys are string typed and keep
// the order in which they were inserted; encoders never sort them. This is
// what gives exported documents their stable key order.
//
// # Numbers
//
// Integers are stored under Int64. Unsigned values that do not fit in an
// int64 are kept as decimal text under Number.
//
// # Creating Nodes
//
//	rec := ir.FromKeyVals([]ir.KeyVal{
//	    ir.KV("type", ir.FromString("field")),
//	    ir.KV("lsb", ir.FromInt(0)),
//	    ir.KV("desc", ir.Null()),
//	})
//
// # Navigating Nodes
//
// Nodes maintain parent-child relationships (Parent, ParentIndex,
// ParentField). Path() returns a JSONPath-style path such as
// "$.children[0].inst_name".
//
// # Thread Safety
//
// Node structures are not thread-safe. A tree is built once by a single
// goroutine and treated as read-only afterwards.
package ir
