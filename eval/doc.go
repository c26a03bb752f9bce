// Package eval evaluates the numeric expressions allowed in model
// documents.
//
// Expressions are expr-lang programs over integers. Before compiling,
// Verilog sized literals such as 32'h1F, 'b1010 and 8'd255 are rewritten to
// their decimal values, so they can appear anywhere an integer can:
//
//	0x1000 + 4*4
//	BASE + bit(4)
//	bitand(mask(8), 16'hFF00)
//
// Names are resolved from an Env. Functions are registered Symbols; see
// Symbols for the built in set.
package eval
