package format

import (
	"errors"
	"testing"
)

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"j":    JSONFormat,
		"json": JSONFormat,
		"y":    YAMLFormat,
		"yaml": YAMLFormat,
	} {
		got, err := ParseFormat(in)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseFormat(%q) = %s, want %s", in, got, want)
		}
	}
	if _, err := ParseFormat("xml"); !errors.Is(err, ErrBadFormat) {
		t.Errorf("expected ErrBadFormat, got %v", err)
	}
}

func TestFromPath(t *testing.T) {
	cases := map[string]Format{
		"out.json":        JSONFormat,
		"out.yaml":        YAMLFormat,
		"dir/regs.yml":    YAMLFormat,
		"no-extension":    JSONFormat,
		"weird.json.yaml": YAMLFormat,
	}
	for p, want := range cases {
		if got := FromPath(p); got != want {
			t.Errorf("FromPath(%q) = %s, want %s", p, got, want)
		}
	}
}

func TestTextRoundTrip(t *testing.T) {
	var f Format
	if err := f.UnmarshalText([]byte("yaml")); err != nil {
		t.Fatal(err)
	}
	if f.String() != "yaml" || f.Suffix() != ".yaml" {
		t.Errorf("unexpected %s %s", f, f.Suffix())
	}
}
