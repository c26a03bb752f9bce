package encode

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/signadot/regmap/format"
	"github.com/signadot/regmap/ir"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
)

func chipRecord() *ir.Node {
	field := ir.FromKeyVals([]ir.KeyVal{
		ir.KV("type", ir.FromString("field")),
		ir.KV("inst_name", ir.FromString("enable")),
		ir.KV("lsb", ir.FromInt(0)),
		ir.KV("msb", ir.FromInt(0)),
		ir.KV("reset", ir.FromInt(0)),
		ir.KV("sw_access", ir.FromString("rw")),
		ir.KV("desc", ir.FromString("Enable bit")),
	})
	reg := ir.FromKeyVals([]ir.KeyVal{
		ir.KV("type", ir.FromString("reg")),
		ir.KV("inst_name", ir.FromString("ctrl")),
		ir.KV("addr_offset", ir.FromInt(4)),
		ir.KV("children", ir.FromSlice([]*ir.Node{field})),
	})
	return ir.FromKeyVals([]ir.KeyVal{
		ir.KV("type", ir.FromString("addrmap")),
		ir.KV("inst_name", ir.FromString("chip")),
		ir.KV("addr_offset", ir.FromInt(0)),
		ir.KV("children", ir.FromSlice([]*ir.Node{reg})),
	})
}

const chipJSON = `{
    "type": "addrmap",
    "inst_name": "chip",
    "addr_offset": 0,
    "children": [
        {
            "type": "reg",
            "inst_name": "ctrl",
            "addr_offset": 4,
            "children": [
                {
                    "type": "field",
                    "inst_name": "enable",
                    "lsb": 0,
                    "msb": 0,
                    "reset": 0,
                    "sw_access": "rw",
                    "desc": "Enable bit"
                }
            ]
        }
    ]
}
`

func TestEncodePrettyJSON(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	if err := Encode(chipRecord(), buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if diff := cmp.Diff(chipJSON, buf.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeWire(t *testing.T) {
	got := MustString(chipRecord(), EncodeWire(true))
	want := `{"type":"addrmap","inst_name":"chip","addr_offset":0,"children":[{"type":"reg","inst_name":"ctrl","addr_offset":4,"children":[{"type":"field","inst_name":"enable","lsb":0,"msb":0,"reset":0,"sw_access":"rw","desc":"Enable bit"}]}]}`
	if got != want {
		t.Errorf("wire output\n got: %s\nwant: %s", got, want)
	}
}

func TestEncodeIndentAndEmpty(t *testing.T) {
	rec := ir.FromKeyVals([]ir.KeyVal{
		ir.KV("children", ir.FromSlice(nil)),
		ir.KV("props", ir.FromKeyVals(nil)),
		ir.KV("desc", ir.Null()),
		ir.KV("big", ir.FromUint(math.MaxUint64)),
		ir.KV("ok", ir.FromBool(true)),
	})
	got := MustString(rec, EncodeIndent(2))
	want := "{\n  \"children\": [],\n  \"props\": {},\n  \"desc\": null,\n  \"big\": 18446744073709551615,\n  \"ok\": true\n}"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestEncodeYAMLKeepsOrder(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	if err := Encode(chipRecord(), buf, EncodeFormat(format.YAMLFormat)); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out := buf.String()
	prev := -1
	for _, k := range []string{"type:", "inst_name:", "addr_offset:", "children:"} {
		i := strings.Index(out, k)
		if i <= prev {
			t.Fatalf("key %q out of order in\n%s", k, out)
		}
		prev = i
	}
	var back map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("yaml output does not parse: %v\n%s", err, out)
	}
	if back["inst_name"] != "chip" {
		t.Errorf("inst_name = %v", back["inst_name"])
	}
}

func TestEncodeColors(t *testing.T) {
	old := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = old }()

	got := MustString(ir.FromKeyVals([]ir.KeyVal{ir.KV("pct", ir.FromString("50%"))}),
		EncodeColors(NewColors()))
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("expected ANSI escapes in %q", got)
	}
	if !strings.Contains(got, "50%") || strings.Contains(got, "%!") {
		t.Errorf("percent sign mangled in %q", got)
	}
}

func TestEncodeErrors(t *testing.T) {
	if err := Encode(nil, bytes.NewBuffer(nil)); !errors.Is(err, ErrEncoding) {
		t.Errorf("nil document: expected ErrEncoding, got %v", err)
	}
	bad := &ir.Node{Type: ir.ObjectType, Fields: []*ir.Node{ir.FromString("a")}}
	if err := Encode(bad, bytes.NewBuffer(nil)); !errors.Is(err, ErrEncoding) {
		t.Errorf("mismatched object: expected ErrEncoding, got %v", err)
	}
	if err := Encode(chipRecord(), bytes.NewBuffer(nil), EncodeFormat(format.Format(9))); !errors.Is(err, format.ErrBadFormat) {
		t.Errorf("bad format: expected ErrBadFormat, got %v", err)
	}
}

func TestFormatFromOpts(t *testing.T) {
	if f := FormatFromOpts(EncodeWire(true), EncodeFormat(format.YAMLFormat)); f != format.YAMLFormat {
		t.Errorf("FormatFromOpts = %s", f)
	}
}
