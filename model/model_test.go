package model

import (
	"errors"
	"strings"
	"testing"

	"github.com/signadot/regmap/encode"
	"github.com/signadot/regmap/export"
	"github.com/signadot/regmap/regmodel"

	"github.com/google/go-cmp/cmp"
)

const chipYAML = `
addrmaps:
  - name: chip
    children:
      - reg: ctrl
        offset: 0x4
        fields:
          - name: enable
            lsb: 0
            msb: 0
            reset: 0
            sw: rw
            desc: Enable bit
`

func elaborate(t *testing.T, top string, docs ...string) *regmodel.Addrmap {
	t.Helper()
	units := make([]*Unit, len(docs))
	for i, d := range docs {
		u, err := Compile("test.yaml", []byte(d))
		if err != nil {
			t.Fatalf("compile: %v", err)
		}
		units[i] = u
	}
	m, err := Elaborate(units, top)
	if err != nil {
		t.Fatalf("elaborate: %v", err)
	}
	return m
}

func elaborateErr(docs ...string) error {
	units := make([]*Unit, len(docs))
	for i, d := range docs {
		u, err := Compile("test.yaml", []byte(d))
		if err != nil {
			return err
		}
		units[i] = u
	}
	_, err := Elaborate(units, "")
	return err
}

func TestChipRoundTrip(t *testing.T) {
	m := elaborate(t, "", chipYAML)
	root, err := export.Walk(m)
	if err != nil {
		t.Fatal(err)
	}
	got := encode.MustString(root, encode.EncodeWire(true))
	want := `{"type":"addrmap","inst_name":"chip","addr_offset":0,"children":[{"type":"reg","inst_name":"ctrl","addr_offset":4,"children":[{"type":"field","inst_name":"enable","lsb":0,"msb":0,"reset":0,"sw_access":"rw","desc":"Enable bit"}]}]}`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func offsets(c regmodel.Container) map[string]uint64 {
	res := map[string]uint64{}
	for _, kid := range c.Children() {
		a, ok := kid.(regmodel.Addressable)
		if !ok {
			continue
		}
		off, _ := a.AddressOffset(make([]int, len(a.Dims()))...)
		res[kid.InstName()] = off
	}
	return res
}

func TestAutoPlacement(t *testing.T) {
	m := elaborate(t, "", `
addrmaps:
  - name: top
    children:
      - reg: a
      - reg: b
      - reg: wide
        regwidth: 64
      - reg: arr
        dims: [4]
      - regfile: blk
        children:
          - reg: x
          - reg: y
      - reg: fixed
        offset: 0x100
      - reg: after
`)
	want := map[string]uint64{
		"a":     0,
		"b":     4,
		"wide":  8,
		"arr":   16,
		"blk":   32,
		"fixed": 0x100,
		"after": 0x104,
	}
	if diff := cmp.Diff(want, offsets(m)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	arr := m.Children()[3].(*regmodel.Reg)
	if arr.Stride() != 4 || regmodel.CountInstances(arr.Unrolled()) != 4 {
		t.Errorf("arr stride %d count %d", arr.Stride(), regmodel.CountInstances(arr.Unrolled()))
	}
	wide := m.Children()[2].(*regmodel.Reg)
	if wide.RegWidth() != 64 {
		t.Errorf("wide regwidth %d", wide.RegWidth())
	}
	blk := m.Children()[4].(*regmodel.Regfile)
	if diff := cmp.Diff(map[string]uint64{"x": 0, "y": 4}, offsets(blk)); diff != "" {
		t.Errorf("blk (-want +got):\n%s", diff)
	}
}

func TestDefaults(t *testing.T) {
	m := elaborate(t, "", `
addrmaps:
  - name: top
    children:
      - reg: r
        fields:
          - name: a
          - name: b
            width: 3
          - name: c
            bits: "[15:8]"
          - name: d
            bits: [23, 20]
          - name: e
            lsb: 31
`)
	r := m.Children()[0].(*regmodel.Reg)
	if r.RegWidth() != 32 {
		t.Errorf("regwidth %d", r.RegWidth())
	}
	if v, ok := r.Property(regmodel.PropRegwidth); !ok || v != uint64(32) {
		t.Errorf("regwidth property not set by elaboration: %v %t", v, ok)
	}
	type bits struct{ LSB, MSB int }
	var got []bits
	for _, f := range r.Fields() {
		got = append(got, bits{f.LSB, f.MSB})
		if f.Access() != regmodel.RW {
			t.Errorf("%s: access %s", f.Name, f.Access())
		}
		if _, ok := f.Property(regmodel.PropSw); !ok {
			t.Errorf("%s: sw property not set by elaboration", f.Name)
		}
		if _, ok := f.Reset(); ok {
			t.Errorf("%s: unexpected reset", f.Name)
		}
	}
	want := []bits{{0, 0}, {1, 3}, {8, 15}, {20, 23}, {31, 31}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestExpressions(t *testing.T) {
	m := elaborate(t, "", `
params:
  BASE: 0x1000
  STEP: BASE / 0x100
addrmaps:
  - name: top
    children:
      - reg: r
        offset: BASE + STEP * 4
        dims: [2, "STEP / 8"]
        stride: bit(3)
        indexdesc: lane
        fields:
          - name: f
            bits: "7:0"
            reset: 8'hA5
            sw: r
`)
	r := m.Children()[0].(*regmodel.Reg)
	off, err := r.AddressOffset(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if off != 0x1000+0x40 {
		t.Errorf("offset %#x", off)
	}
	if diff := cmp.Diff([]int{2, 2}, r.Dims()); diff != "" {
		t.Errorf("dims (-want +got):\n%s", diff)
	}
	if r.Stride() != 8 {
		t.Errorf("stride %d", r.Stride())
	}
	f := r.Fields()[0]
	if v, ok := f.Reset(); !ok || v != 0xA5 {
		t.Errorf("reset %#x %t", v, ok)
	}
	if f.Access() != regmodel.R {
		t.Errorf("access %s", f.Access())
	}
	if s, ok := r.IndexDesc(); !ok || s != "lane" {
		t.Errorf("indexdesc %q", s)
	}
}

func TestParamOverrides(t *testing.T) {
	env, err := ParseParams([]byte(`{BASE: "16'h2000", EXTRA: 3}`))
	if err != nil {
		t.Fatal(err)
	}
	u, err := Compile("test.yaml", []byte(`
params:
  BASE: 0x1000
  STEP: BASE / 0x100
addrmaps:
  - name: top
    children:
      - reg: r
        offset: BASE + STEP
`))
	if err != nil {
		t.Fatal(err)
	}
	m, err := ElaborateEnv([]*Unit{u}, "", env)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(map[string]uint64{"r": 0x2020}, offsets(m)); diff != "" {
		t.Errorf("offsets (-want +got):\n%s", diff)
	}
	if _, err := ParseParams([]byte(`{"9x": 1}`)); !errors.Is(err, ErrModel) {
		t.Errorf("bad name: got %v", err)
	}
}

const uartYAML = `
addrmaps:
  - name: uart
    desc: UART block
    children:
      - reg: tx
      - reg: rx
`

const socYAML = `
addrmaps:
  - name: soc
    children:
      - addrmap: uart0
        type: uart
      - addrmap: uart1
        type: uart
        offset: 0x100
        desc: Second UART
`

func TestTypeInstances(t *testing.T) {
	m := elaborate(t, "", uartYAML, socYAML)
	if m.InstName() != "soc" {
		t.Fatalf("default top %q, want the last defined addrmap", m.InstName())
	}
	if diff := cmp.Diff(map[string]uint64{"uart0": 0, "uart1": 0x100}, offsets(m)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	u0 := m.Children()[0].(*regmodel.Addrmap)
	u1 := m.Children()[1].(*regmodel.Addrmap)
	if d, _ := u0.Desc(); d != "UART block" {
		t.Errorf("uart0 desc %q", d)
	}
	if d, _ := u1.Desc(); d != "Second UART" {
		t.Errorf("uart1 desc %q", d)
	}
	if len(u0.Children()) != 2 || u0.Children()[1].InstName() != "rx" {
		t.Errorf("uart0 children not instantiated")
	}
	if u0.Children()[0] == u1.Children()[0] {
		t.Errorf("instances share nodes")
	}

	named := elaborate(t, "uart", uartYAML, socYAML)
	if named.InstName() != "uart" {
		t.Errorf("named top %q", named.InstName())
	}
}

func TestSourceRef(t *testing.T) {
	m := elaborate(t, "", chipYAML)
	ctrl := m.Children()[0]
	src := ctrl.SourceRef()
	if src.File != "test.yaml" || src.Path != "$.addrmaps[0].children[0]" {
		t.Errorf("got %+v", src)
	}
	line, _ := src.Position()
	if line <= 0 {
		t.Errorf("position not resolved for %s", src.Path)
	}
	f := m.Children()[0].(*regmodel.Reg).Fields()[0]
	fLine, _ := f.SourceRef().Position()
	if fLine <= line {
		t.Errorf("field line %d not after register line %d", fLine, line)
	}
}

func TestSignal(t *testing.T) {
	m := elaborate(t, "", `
addrmaps:
  - name: top
    children:
      - signal: irq
        width: 2
      - reg: r
`)
	sig, ok := m.Children()[0].(*regmodel.Signal)
	if !ok || sig.Width != 2 {
		t.Fatalf("got %#v", m.Children()[0])
	}
	_, err := export.Walk(m)
	if !errors.Is(err, export.ErrStructuralInvariant) {
		t.Errorf("expected ErrStructuralInvariant, got %v", err)
	}
}

func TestErrors(t *testing.T) {
	for _, tc := range []struct {
		name string
		docs []string
		err  error
	}{
		{"no addrmaps", []string{"addrmaps: []\n"}, ErrNoTop},
		{"unknown key", []string{"addrmaps:\n  - name: a\n    colour: red\n"}, ErrModel},
		{"top level reg", []string{"addrmaps:\n  - reg: a\n"}, ErrModel},
		{"duplicate", []string{`
addrmaps:
  - name: a
    children:
      - reg: r
      - regfile: r
`}, ErrModel},
		{"two kinds", []string{"addrmaps:\n  - name: a\n    children:\n      - reg: r\n        signal: s\n"}, ErrModel},
		{"bad name", []string{"addrmaps:\n  - name: 9a\n"}, ErrModel},
		{"bit range", []string{`
addrmaps:
  - name: a
    children:
      - reg: r
        fields:
          - name: f
            lsb: 7
            msb: 4
`}, regmodel.ErrBitRange},
		{"field past regwidth", []string{`
addrmaps:
  - name: a
    children:
      - reg: r
        regwidth: 8
        fields:
          - name: f
            bits: "[8:0]"
`}, regmodel.ErrBitRange},
		{"regwidth", []string{"addrmaps:\n  - name: a\n    children:\n      - reg: r\n        regwidth: 12\n"}, ErrModel},
		{"reset too wide", []string{`
addrmaps:
  - name: a
    children:
      - reg: r
        fields:
          - name: f
            width: 2
            reset: 4
`}, ErrModel},
		{"bad sw", []string{"addrmaps:\n  - name: a\n    children:\n      - reg: r\n        fields:\n          - name: f\n            sw: rx\n"}, regmodel.ErrAccess},
		{"bad expr", []string{"addrmaps:\n  - name: a\n    children:\n      - reg: r\n        offset: 1 +\n"}, ErrExpr},
		{"undefined type", []string{"addrmaps:\n  - name: a\n    children:\n      - addrmap: b\n        type: nope\n"}, ErrModel},
		{"self instance", []string{"addrmaps:\n  - name: a\n    children:\n      - addrmap: b\n        type: a\n"}, ErrModel},
		{"defined twice", []string{uartYAML, uartYAML}, ErrModel},
		{"small stride", []string{"addrmaps:\n  - name: a\n    children:\n      - reg: r\n        dims: [2]\n        stride: 2\n"}, ErrModel},
	} {
		t.Run(tc.name, func(t *testing.T) {
			err := elaborateErr(tc.docs...)
			if !errors.Is(err, tc.err) {
				t.Errorf("expected %v, got %v", tc.err, err)
			}
		})
	}
}

func TestNamedTopMissing(t *testing.T) {
	u, err := Compile("x.yaml", []byte(uartYAML))
	if err != nil {
		t.Fatal(err)
	}
	_, err = Elaborate([]*Unit{u}, "soc")
	if !errors.Is(err, ErrNoTop) {
		t.Errorf("expected ErrNoTop, got %v", err)
	}
}

func TestErrorNamesSource(t *testing.T) {
	u, err := Compile("chip.yaml", []byte("addrmaps:\n  - name: a\n    children:\n      - reg: r\n        regwidth: 12\n"))
	if err != nil {
		t.Fatal(err)
	}
	_, err = Elaborate([]*Unit{u}, "")
	if err == nil || !strings.HasPrefix(err.Error(), "chip.yaml") {
		t.Errorf("diagnostic lacks file: %v", err)
	}
}
