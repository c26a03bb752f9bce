package regmodel

import "fmt"

// Node is an element of an elaborated register model.
type Node interface {
	Kind() Kind
	InstName() string
	SourceRef() SourceRef
	Property(name string) (any, bool)

	node()
}

// Addressable is a node with an address relative to its parent.
type Addressable interface {
	Node
	IsArray() bool
	Dims() []int
	Stride() uint64
	AddressOffset(idx ...int) (uint64, error)
}

// Container is a node grouping registers and nested containers.
type Container interface {
	Addressable
	Children() []Node

	container()
}

// Info carries the attributes every node has.
type Info struct {
	Name  string
	Props Properties
	Src   SourceRef
}

func (i *Info) InstName() string     { return i.Name }
func (i *Info) SourceRef() SourceRef { return i.Src }

func (i *Info) Property(name string) (any, bool) {
	return i.Props.Get(name)
}

// Desc returns the description property, if any.
func (i *Info) Desc() (string, bool) {
	return i.Props.String(PropDesc)
}

type Addrmap struct {
	Info
	Placement
	Members []Node
}

type Regfile struct {
	Info
	Placement
	Members []Node
}

type Reg struct {
	Info
	Placement
	FieldList []*Field
}

type Field struct {
	Info
	LSB int
	MSB int
}

// Signal is a wire declared alongside registers. It has no address and
// carries no bits of any register.
type Signal struct {
	Info
	Width int
}

func (*Addrmap) Kind() Kind { return AddrmapKind }
func (*Regfile) Kind() Kind { return RegfileKind }
func (*Reg) Kind() Kind     { return RegKind }
func (*Field) Kind() Kind   { return FieldKind }
func (*Signal) Kind() Kind  { return SignalKind }

func (*Addrmap) node() {}
func (*Regfile) node() {}
func (*Reg) node()     {}
func (*Field) node()   {}
func (*Signal) node()  {}

func (*Addrmap) container() {}
func (*Regfile) container() {}

func (m *Addrmap) Children() []Node { return m.Members }
func (f *Regfile) Children() []Node { return f.Members }
func (r *Reg) Fields() []*Field     { return r.FieldList }

// RegWidth returns the regwidth property, or DefaultRegWidth.
func (r *Reg) RegWidth() uint64 {
	if w, ok := r.Props.Uint(PropRegwidth); ok {
		return w
	}
	return DefaultRegWidth
}

// IndexDesc returns the indexdesc property, if any.
func (r *Reg) IndexDesc() (string, bool) {
	return r.Props.String(PropIndexdesc)
}

// NewField returns a field covering bits msb down to lsb.
func NewField(name string, lsb, msb int) (*Field, error) {
	f := &Field{Info: Info{Name: name}, LSB: lsb, MSB: msb}
	if err := f.CheckBits(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *Field) CheckBits() error {
	if f.LSB < 0 {
		return fmt.Errorf("%w: %s: lsb %d is negative", ErrBitRange, f.Name, f.LSB)
	}
	if f.MSB < f.LSB {
		return fmt.Errorf("%w: %s: msb %d < lsb %d", ErrBitRange, f.Name, f.MSB, f.LSB)
	}
	return nil
}

func (f *Field) Width() int { return f.MSB - f.LSB + 1 }

// Access returns the sw property, or RW.
func (f *Field) Access() AccessMode {
	if a, ok := f.Props.Access(PropSw); ok {
		return a
	}
	return RW
}

// Reset returns the reset value, if the field has one.
func (f *Field) Reset() (uint64, bool) {
	return f.Props.Uint(PropReset)
}

// AsContainer reports whether n is a Container.
func AsContainer(n Node) (Container, bool) {
	c, ok := n.(Container)
	return c, ok
}
