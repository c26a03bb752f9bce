// Package model compiles register model documents and elaborates them into
// a regmodel tree.
//
// A model document is YAML (or JSON) of the form
//
//	params:
//	  BASE: 0x1000
//	addrmaps:
//	  - name: chip
//	    desc: Example chip
//	    children:
//	      - reg: ctrl
//	        offset: BASE + 4
//	        fields:
//	          - name: enable
//	            bits: "[0:0]"
//	            reset: 0
//	            sw: rw
//	            desc: Enable bit
//	      - regfile: dma
//	        children: [...]
//	      - addrmap: uart0
//	        type: uart
//	      - signal: irq
//
// Each child names its kind with its key (addrmap, regfile, reg, signal).
// A child container with a type refers to a top level addrmap of any
// compiled unit, which is instantiated in its place.
//
// Numeric values may be integers or expressions; see package eval. Missing
// offsets are assigned in declaration order, aligned to the register size.
// Missing bit positions are assigned from bit 0 upward.
package model
