// Package export converts an elaborated register model into a JSON
// document.
//
// Walk builds the whole document tree depth first, children before their
// parent, and stops at the first unsupported shape. Nothing is written
// until the walk has succeeded: Export and WriteFile render into memory and
// only then open the destination.
//
// Document shape, keys in order:
//
//	addrmap, regfile: type inst_name addr_offset [desc] children
//	reg:              type inst_name addr_offset [desc] [index] [entries entry_size] children
//	field:            type inst_name lsb msb reset sw_access desc
//
// Bracketed keys are omitted when the property is absent. A field always
// has reset and desc, null when absent.
package export
