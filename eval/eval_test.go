package eval

import (
	"errors"
	"testing"
)

func TestUint(t *testing.T) {
	env := Env{"BASE": 0x1000}
	for _, tc := range []struct {
		in   any
		want uint64
	}{
		{4, 4},
		{int64(7), 7},
		{uint64(1 << 63), 1 << 63},
		{float64(12), 12},
		{"0x40", 0x40},
		{"0b101", 5},
		{"0o17", 15},
		{"32", 32},
		{"0x1000 + 4*4", 0x1010},
		{"BASE + 8", 0x1008},
		{"32'h1F", 0x1F},
		{"'b1010", 10},
		{"8'd255", 255},
		{"16'hFF_00", 0xFF00},
		{"BASE + 4'h4", 0x1004},
		{"bit(4)", 16},
		{"mask(8)", 255},
		{"log2(64)", 6},
		{"align(5, 4)", 8},
	} {
		got, err := Uint(tc.in, env)
		if err != nil {
			t.Errorf("%v: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("%v: got %d want %d", tc.in, got, tc.want)
		}
	}
}

func TestUintErrors(t *testing.T) {
	for _, in := range []any{
		-1,
		1.5,
		"true",
		"nope(",
		"4'h1F",
		"UNDEFINED + 1",
		nil,
		[]any{1},
	} {
		if _, err := Uint(in, nil); !errors.Is(err, ErrExpr) {
			t.Errorf("%v: expected ErrExpr, got %v", in, err)
		}
	}
}

func TestParseSized(t *testing.T) {
	v, w, err := ParseSized("12'o777")
	if err != nil {
		t.Fatal(err)
	}
	if v != 0o777 || w != 12 {
		t.Errorf("got %d width %d", v, w)
	}
	if _, _, err := ParseSized("0x10"); !errors.Is(err, ErrExpr) {
		t.Errorf("expected ErrExpr, got %v", err)
	}
	if _, _, err := ParseSized("0'h0"); !errors.Is(err, ErrExpr) {
		t.Errorf("expected ErrExpr for zero width, got %v", err)
	}
}

func TestRegister(t *testing.T) {
	s := NewSymbol("twice", func(params ...any) (any, error) {
		v, err := ToUint(params[0])
		return int(v * 2), err
	}, new(func(int) int))
	if err := Register(s); err != nil {
		t.Fatal(err)
	}
	if err := Register(s); !errors.Is(err, ErrSymbolExists) {
		t.Errorf("expected ErrSymbolExists, got %v", err)
	}
	if Lookup("twice") == nil {
		t.Fatal("twice not registered")
	}
	got, err := Uint("twice(21)", nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != 42 {
		t.Errorf("got %d", got)
	}
}

func TestAlign(t *testing.T) {
	for _, tc := range [][3]uint64{{0, 4, 0}, {1, 4, 4}, {4, 4, 4}, {9, 8, 16}, {7, 0, 7}} {
		if got := Align(tc[0], tc[1]); got != tc[2] {
			t.Errorf("Align(%d, %d) = %d want %d", tc[0], tc[1], got, tc[2])
		}
	}
}
