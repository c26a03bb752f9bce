// Package libdiff compares documents.
//
// Diff reports changes as a document of its own, an array of objects
//
//	{"op": "replace", "path": "$.children[0].addr_offset", "from": 4, "to": 8}
//	{"op": "insert", "path": "$.children[2]", "to": {...}}
//	{"op": "delete", "path": "$.children[1]", "from": {...}}
//
// Arrays whose elements are objects with distinct inst_name values are
// matched by name, so inserting a register does not show every later
// register as changed. A replaced string also carries a "text" delta.
//
// MergePatch and Apply produce and apply RFC 7386 merge patches and
// RFC 6902 JSON patches.
package libdiff
