package model

import (
	"fmt"
	"math/bits"
	"regexp"
	"strconv"
	"strings"

	"github.com/signadot/regmap/debug"
	"github.com/signadot/regmap/eval"
	"github.com/signadot/regmap/regmodel"
)

type def struct {
	unit *Unit
	decl *Decl
	path string
}

type elab struct {
	env       eval.Env
	overrides eval.Env
	params    map[string]bool
	defs      map[string]*def
	stack     []string
}

// Elaborate builds the model rooted at the addrmap named top. An empty top
// selects the last addrmap defined across units.
func Elaborate(units []*Unit, top string) (*regmodel.Addrmap, error) {
	return ElaborateEnv(units, top, nil)
}

// ElaborateEnv is Elaborate with parameter overrides. A param named in
// overrides takes the override value in place of its declared one.
func ElaborateEnv(units []*Unit, top string, overrides eval.Env) (*regmodel.Addrmap, error) {
	e := &elab{
		env:       eval.Env{},
		overrides: overrides,
		params:    map[string]bool{},
		defs:      map[string]*def{},
	}
	var last *def
	for _, u := range units {
		if err := e.addParams(u); err != nil {
			return nil, err
		}
		for i, d := range u.Addrmaps {
			_, name, err := d.Kind()
			if err != nil {
				return nil, err
			}
			if prev, ok := e.defs[name]; ok {
				return nil, fmt.Errorf("%w: addrmap %q defined in %s and %s", ErrModel, name, prev.unit.Name, u.Name)
			}
			last = &def{unit: u, decl: d, path: topPath(i)}
			e.defs[name] = last
		}
	}
	root := last
	if top != "" {
		root = e.defs[top]
		if root == nil {
			return nil, fmt.Errorf("%w: %q is not defined", ErrNoTop, top)
		}
	}
	if root == nil {
		return nil, ErrNoTop
	}
	_, name, _ := root.decl.Kind()
	if debug.Load() {
		debug.Logf("elaborating %s from %s\n", name, root.unit.Name)
	}
	e.stack = append(e.stack, name)
	n, _, err := e.container(root.unit, root.decl, regmodel.AddrmapKind, name, root.path, true)
	if err != nil {
		return nil, err
	}
	return n.(*regmodel.Addrmap), nil
}

func (e *elab) addParams(u *Unit) error {
	for _, item := range u.Params {
		key, ok := item.Key.(string)
		if !ok || !identRE.MatchString(key) {
			return fmt.Errorf("%w: %s: bad param name %v", ErrModel, u.Name, item.Key)
		}
		if e.params[key] {
			return fmt.Errorf("%w: %s: param %q defined twice", ErrModel, u.Name, key)
		}
		e.params[key] = true
		if v, ok := e.overrides[key]; ok {
			if debug.Load() {
				debug.Logf("param %s overridden: %v\n", key, v)
			}
			e.env[key] = v
			continue
		}
		v := item.Value
		if s, ok := v.(string); ok {
			res, err := eval.Eval(s, e.env)
			if err != nil {
				return fmt.Errorf("%s: param %s: %w", u.Name, key, err)
			}
			v = res
		}
		e.env[key] = v
	}
	return nil
}

func (e *elab) src(u *Unit, path string) regmodel.SourceRef {
	return regmodel.SourceRef{File: u.Name, Path: path, Pos: u.pos}
}

func (e *elab) errorf(u *Unit, path string, format string, args ...any) error {
	return fmt.Errorf("%s: %w", e.src(u, path), fmt.Errorf(format, args...))
}

// layout is the extent and alignment of one element of an instance.
type layout struct {
	size  uint64
	align uint64
}

func (e *elab) container(u *Unit, d *Decl, kind regmodel.Kind, name, path string, isTop bool) (regmodel.Node, layout, error) {
	info := regmodel.Info{Name: name, Props: regmodel.Properties{}, Src: e.src(u, path)}
	body, bodyUnit, bodyPath := d, u, path
	if d.Type != "" {
		if isTop {
			return nil, layout{}, e.errorf(u, path, "%w: top level addrmap %q has a type", ErrModel, name)
		}
		df := e.defs[d.Type]
		if df == nil {
			return nil, layout{}, e.errorf(u, path, "%w: %s %q: undefined type %q", ErrModel, kind, name, d.Type)
		}
		for _, s := range e.stack {
			if s == d.Type {
				return nil, layout{}, e.errorf(u, path, "%w: %q instantiates itself through %s",
					ErrModel, d.Type, strings.Join(e.stack, " -> "))
			}
		}
		if len(d.Children) != 0 {
			return nil, layout{}, e.errorf(u, path, "%w: %s %q has both a type and children", ErrModel, kind, name)
		}
		e.stack = append(e.stack, d.Type)
		defer func() { e.stack = e.stack[:len(e.stack)-1] }()
		body, bodyUnit, bodyPath = df.decl, df.unit, df.path
		if body.Desc != nil {
			info.Props[regmodel.PropDesc] = *body.Desc
		}
		if err := e.userProps(bodyUnit, bodyPath, info.Props, body.Properties); err != nil {
			return nil, layout{}, err
		}
	}
	if len(d.Fields) != 0 {
		return nil, layout{}, e.errorf(u, path, "%w: %s %q has fields", ErrModel, kind, name)
	}
	if d.Desc != nil {
		info.Props[regmodel.PropDesc] = *d.Desc
	}
	if err := e.userProps(u, path, info.Props, d.Properties); err != nil {
		return nil, layout{}, err
	}
	kids, lay, err := e.children(bodyUnit, body.Children, bodyPath)
	if err != nil {
		return nil, layout{}, err
	}
	pl, err := e.placement(u, d, path, lay)
	if err != nil {
		return nil, layout{}, err
	}
	if kind == regmodel.AddrmapKind {
		return &regmodel.Addrmap{Info: info, Placement: pl, Members: kids}, lay, nil
	}
	return &regmodel.Regfile{Info: info, Placement: pl, Members: kids}, lay, nil
}

func (e *elab) children(u *Unit, decls []*Decl, path string) ([]regmodel.Node, layout, error) {
	res := make([]regmodel.Node, 0, len(decls))
	lay := layout{align: 1}
	names := map[string]bool{}
	cursor := uint64(0)
	for i, d := range decls {
		cPath := fmt.Sprintf("%s.children[%d]", path, i)
		if d == nil {
			return nil, layout{}, e.errorf(u, cPath, "%w: empty instance", ErrModel)
		}
		k, name, err := d.Kind()
		if err != nil {
			return nil, layout{}, e.errorf(u, cPath, "%w", err)
		}
		if d.Name != "" && d.Name != name || k == regmodel.AddrmapKind && d.Addrmap == "" {
			return nil, layout{}, e.errorf(u, cPath, "%w: child %q must be named by its kind", ErrModel, name)
		}
		if err := checkName(k.String(), name); err != nil {
			return nil, layout{}, e.errorf(u, cPath, "%w", err)
		}
		if names[name] {
			return nil, layout{}, e.errorf(u, cPath, "%w: duplicate instance name %q", ErrModel, name)
		}
		names[name] = true
		var (
			n     regmodel.Node
			child layout
		)
		switch k {
		case regmodel.AddrmapKind, regmodel.RegfileKind:
			n, child, err = e.container(u, d, k, name, cPath, false)
		case regmodel.RegKind:
			n, child, err = e.reg(u, d, name, cPath)
		case regmodel.SignalKind:
			s, err := e.signal(u, d, name, cPath)
			if err != nil {
				return nil, layout{}, err
			}
			res = append(res, s)
			continue
		}
		if err != nil {
			return nil, layout{}, err
		}
		if d.Offset == nil {
			setOffset(n, eval.Align(cursor, child.align))
		}
		a := n.(regmodel.Addressable)
		end := endOf(a, child.size)
		cursor = max(cursor, end)
		lay.size = max(lay.size, end)
		lay.align = max(lay.align, child.align)
		res = append(res, n)
	}
	return res, lay, nil
}

// setOffset places an instance declared without an offset.
func setOffset(n regmodel.Node, off uint64) {
	switch x := n.(type) {
	case *regmodel.Addrmap:
		x.Offset = off
	case *regmodel.Regfile:
		x.Offset = off
	case *regmodel.Reg:
		x.Offset = off
	}
}

// endOf returns the first address after every element of a.
func endOf(a regmodel.Addressable, elemSize uint64) uint64 {
	off, _ := a.AddressOffset(representative(a)...)
	if !a.IsArray() {
		return off + elemSize
	}
	n := uint64(1)
	for _, d := range a.Dims() {
		n *= uint64(d)
	}
	if n == 0 {
		return off
	}
	return off + (n-1)*a.Stride() + elemSize
}

func representative(a regmodel.Addressable) []int {
	if !a.IsArray() {
		return nil
	}
	return make([]int, len(a.Dims()))
}

func (e *elab) placement(u *Unit, d *Decl, path string, lay layout) (regmodel.Placement, error) {
	pl := regmodel.Placement{}
	if d.Offset != nil {
		off, err := eval.Uint(d.Offset, e.env)
		if err != nil {
			return pl, e.errorf(u, path, "offset: %w", err)
		}
		pl.Offset = off
	}
	if len(d.Dims) == 0 {
		if d.Stride != nil {
			return pl, e.errorf(u, path, "%w: stride without dims", ErrModel)
		}
		return pl, nil
	}
	for i, x := range d.Dims {
		n, err := eval.Int(x, e.env)
		if err != nil {
			return pl, e.errorf(u, path, "dims[%d]: %w", i, err)
		}
		if n == 0 {
			return pl, e.errorf(u, path, "%w: dims[%d] is zero", ErrModel, i)
		}
		pl.Dim = append(pl.Dim, n)
	}
	pl.ArrayStride = eval.Align(lay.size, lay.align)
	if d.Stride != nil {
		s, err := eval.Uint(d.Stride, e.env)
		if err != nil {
			return pl, e.errorf(u, path, "stride: %w", err)
		}
		if s < lay.size {
			return pl, e.errorf(u, path, "%w: stride %d is smaller than the element size %d", ErrModel, s, lay.size)
		}
		pl.ArrayStride = s
	}
	return pl, nil
}

func (e *elab) regWidth(u *Unit, d *Decl, path string) (uint64, error) {
	if d.Regwidth == nil {
		return regmodel.DefaultRegWidth, nil
	}
	w, err := eval.Uint(d.Regwidth, e.env)
	if err != nil {
		return 0, e.errorf(u, path, "regwidth: %w", err)
	}
	if w < 8 || bits.OnesCount64(w) != 1 {
		return 0, e.errorf(u, path, "%w: regwidth %d is not a power of 2 of at least 8", ErrModel, w)
	}
	return w, nil
}

func (e *elab) reg(u *Unit, d *Decl, name, path string) (*regmodel.Reg, layout, error) {
	if d.Type != "" || len(d.Children) != 0 {
		return nil, layout{}, e.errorf(u, path, "%w: reg %q has a type or children", ErrModel, name)
	}
	w, err := e.regWidth(u, d, path)
	if err != nil {
		return nil, layout{}, err
	}
	lay := layout{size: w / 8, align: w / 8}
	props := regmodel.Properties{regmodel.PropRegwidth: w}
	if d.Desc != nil {
		props[regmodel.PropDesc] = *d.Desc
	}
	if d.Indexdesc != nil {
		if len(d.Dims) == 0 {
			return nil, layout{}, e.errorf(u, path, "%w: indexdesc on a non-array", ErrModel)
		}
		props[regmodel.PropIndexdesc] = *d.Indexdesc
	}
	if err := e.userProps(u, path, props, d.Properties); err != nil {
		return nil, layout{}, err
	}
	pl, err := e.placement(u, d, path, lay)
	if err != nil {
		return nil, layout{}, err
	}
	r := &regmodel.Reg{
		Info:      regmodel.Info{Name: name, Props: props, Src: e.src(u, path)},
		Placement: pl,
	}
	names := map[string]bool{}
	next := 0
	for i, fd := range d.Fields {
		fPath := fmt.Sprintf("%s.fields[%d]", path, i)
		if fd == nil {
			return nil, layout{}, e.errorf(u, fPath, "%w: empty field", ErrModel)
		}
		if err := checkName("field", fd.Name); err != nil {
			return nil, layout{}, e.errorf(u, fPath, "%w", err)
		}
		if names[fd.Name] {
			return nil, layout{}, e.errorf(u, fPath, "%w: duplicate field name %q", ErrModel, fd.Name)
		}
		names[fd.Name] = true
		f, err := e.field(u, fd, fPath, next)
		if err != nil {
			return nil, layout{}, err
		}
		if uint64(f.MSB) >= w {
			return nil, layout{}, e.errorf(u, fPath, "%w: field %q bit %d outside of %d bit register",
				regmodel.ErrBitRange, f.Name, f.MSB, w)
		}
		next = f.MSB + 1
		r.FieldList = append(r.FieldList, f)
	}
	return r, lay, nil
}

var bitsRE = regexp.MustCompile(`^\[?\s*(\d+)\s*(?::\s*(\d+)\s*)?\]?$`)

func (e *elab) bitRange(u *Unit, fd *FieldDecl, path string, next int) (lsb, msb int, err error) {
	if fd.Bits != nil {
		if fd.LSB != nil || fd.MSB != nil || fd.Width != nil {
			return 0, 0, e.errorf(u, path, "%w: bits with lsb, msb or width", ErrModel)
		}
		switch x := fd.Bits.(type) {
		case []any:
			if len(x) != 2 {
				return 0, 0, e.errorf(u, path, "%w: bits %v is not [msb, lsb]", ErrModel, x)
			}
			if msb, err = eval.Int(x[0], e.env); err == nil {
				lsb, err = eval.Int(x[1], e.env)
			}
			if err != nil {
				return 0, 0, e.errorf(u, path, "bits: %w", err)
			}
			return lsb, msb, nil
		case string:
			m := bitsRE.FindStringSubmatch(strings.TrimSpace(x))
			if m == nil {
				return 0, 0, e.errorf(u, path, "%w: bad bits %q", ErrModel, x)
			}
			msb, _ = strconv.Atoi(m[1])
			lsb = msb
			if m[2] != "" {
				lsb, _ = strconv.Atoi(m[2])
			}
			return lsb, msb, nil
		default:
			b, err := eval.Int(x, e.env)
			if err != nil {
				return 0, 0, e.errorf(u, path, "bits: %w", err)
			}
			return b, b, nil
		}
	}
	width := 1
	if fd.Width != nil {
		if width, err = eval.Int(fd.Width, e.env); err != nil {
			return 0, 0, e.errorf(u, path, "width: %w", err)
		}
		if width == 0 {
			return 0, 0, e.errorf(u, path, "%w: zero width", regmodel.ErrBitRange)
		}
	}
	lsb = next
	if fd.LSB != nil {
		if lsb, err = eval.Int(fd.LSB, e.env); err != nil {
			return 0, 0, e.errorf(u, path, "lsb: %w", err)
		}
	}
	msb = lsb + width - 1
	if fd.MSB != nil {
		if fd.Width != nil {
			return 0, 0, e.errorf(u, path, "%w: msb with width", ErrModel)
		}
		if msb, err = eval.Int(fd.MSB, e.env); err != nil {
			return 0, 0, e.errorf(u, path, "msb: %w", err)
		}
		if fd.LSB == nil {
			lsb = msb
		}
	}
	return lsb, msb, nil
}

func (e *elab) field(u *Unit, fd *FieldDecl, path string, next int) (*regmodel.Field, error) {
	lsb, msb, err := e.bitRange(u, fd, path, next)
	if err != nil {
		return nil, err
	}
	f, err := regmodel.NewField(fd.Name, lsb, msb)
	if err != nil {
		return nil, e.errorf(u, path, "%w", err)
	}
	f.Src = e.src(u, path)
	f.Props = regmodel.Properties{regmodel.PropSw: regmodel.RW}
	if fd.Sw != "" {
		a, err := regmodel.ParseAccessMode(fd.Sw)
		if err != nil {
			return nil, e.errorf(u, path, "%w", err)
		}
		f.Props[regmodel.PropSw] = a
	}
	if fd.Reset != nil {
		v, err := eval.Uint(fd.Reset, e.env)
		if err != nil {
			return nil, e.errorf(u, path, "reset: %w", err)
		}
		if f.Width() < 64 && v>>f.Width() != 0 {
			return nil, e.errorf(u, path, "%w: reset %#x does not fit in %d bits", ErrModel, v, f.Width())
		}
		f.Props[regmodel.PropReset] = v
	}
	if fd.Desc != nil {
		f.Props[regmodel.PropDesc] = *fd.Desc
	}
	if err := e.userProps(u, path, f.Props, fd.Properties); err != nil {
		return nil, err
	}
	return f, nil
}

func (e *elab) signal(u *Unit, d *Decl, name, path string) (*regmodel.Signal, error) {
	if d.Offset != nil || len(d.Dims) != 0 || len(d.Children) != 0 || len(d.Fields) != 0 || d.Type != "" {
		return nil, e.errorf(u, path, "%w: signal %q has an address or contents", ErrModel, name)
	}
	s := &regmodel.Signal{
		Info:  regmodel.Info{Name: name, Props: regmodel.Properties{}, Src: e.src(u, path)},
		Width: 1,
	}
	if d.Width != nil {
		w, err := eval.Int(d.Width, e.env)
		if err != nil {
			return nil, e.errorf(u, path, "width: %w", err)
		}
		s.Width = w
	}
	if d.Desc != nil {
		s.Props[regmodel.PropDesc] = *d.Desc
	}
	if err := e.userProps(u, path, s.Props, d.Properties); err != nil {
		return nil, err
	}
	return s, nil
}

var builtinProps = map[string]bool{
	regmodel.PropDesc:      true,
	regmodel.PropReset:     true,
	regmodel.PropSw:        true,
	regmodel.PropRegwidth:  true,
	regmodel.PropIndexdesc: true,
}

func (e *elab) userProps(u *Unit, path string, dst regmodel.Properties, src map[string]any) error {
	for k, v := range src {
		if builtinProps[k] {
			return e.errorf(u, path, "%w: property %q is not user defined", ErrModel, k)
		}
		dst[k] = v
	}
	return nil
}
