// Package regmodel is the elaborated register model consumed by the
// exporter.
//
// A model is a tree rooted at an *Addrmap. Containers (*Addrmap, *Regfile)
// hold registers and nested containers in declaration order, registers
// (*Reg) hold bit fields (*Field). *Signal exists because elaborators place
// signals alongside registers; exporters reject it.
//
// The Node interface is sealed: only the types in this package implement
// it, so a type switch over the variants is exhaustive.
//
// Addresses are answered by AddressOffset, which takes the array index as
// an explicit argument. Arrayed nodes require one index per dimension;
// nothing on a node is mutated to answer an address query.
package regmodel
