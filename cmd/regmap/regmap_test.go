package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/signadot/regmap/config"

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
            bits: 0
            reset: 0
            desc: Enable bit
`

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

func testMain() *MainConfig {
	return &MainConfig{Quiet: true, File: config.DefaultConfig()}
}

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestExportFile(t *testing.T) {
	src := writeTemp(t, "chip.yaml", chipYAML)
	out := filepath.Join(t.TempDir(), "out.json")
	cfg := &ExportConfig{MainConfig: testMain(), Out: out}
	if err := runExport(cfg, nil, nil, []string{src}); err != nil {
		t.Fatal(err)
	}
	d, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(chipJSON, string(d)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestExportStdout(t *testing.T) {
	cfg := &ExportConfig{MainConfig: testMain(), Out: "-", Check: true}
	buf := &bytes.Buffer{}
	err := runExport(cfg, strings.NewReader(chipYAML), buf, []string{"-"})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(chipJSON, buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestExportNoFiles(t *testing.T) {
	cfg := &ExportConfig{MainConfig: testMain()}
	if err := runExport(cfg, nil, nil, nil); err == nil {
		t.Error("expected usage error")
	}
}

func TestCheck(t *testing.T) {
	good := writeTemp(t, "good.json", chipJSON)
	bad := writeTemp(t, "bad.json", `{"type": "reg", "inst_name": "r"}`)
	buf := &bytes.Buffer{}
	cfg := &CheckConfig{MainConfig: testMain()}
	n, err := runCheck(cfg, nil, buf, []string{good, bad})
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("got %d failures, want 1", n)
	}
	out := buf.String()
	if !strings.Contains(out, good+": ok") {
		t.Errorf("missing ok line in %q", out)
	}
	if !strings.Contains(out, bad+": ") || strings.Contains(out, bad+": ok") {
		t.Errorf("missing failure for %s in %q", bad, out)
	}
}

func TestCheckModel(t *testing.T) {
	cfg := &CheckConfig{MainConfig: testMain(), Model: true}
	buf := &bytes.Buffer{}
	n, err := runCheck(cfg, strings.NewReader(chipYAML), buf, nil)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Errorf("got %d failures: %s", n, buf.String())
	}
}

func TestDiff(t *testing.T) {
	a, err := getObjFile(nil, writeTemp(t, "a.json", chipJSON))
	if err != nil {
		t.Fatal(err)
	}
	b, err := getObjFile(nil, writeTemp(t, "b.json", strings.Replace(chipJSON, `"addr_offset": 4`, `"addr_offset": 8`, 1)))
	if err != nil {
		t.Fatal(err)
	}
	cfg := &DiffConfig{MainConfig: testMain()}
	buf := &bytes.Buffer{}
	differs, err := diffInputs(cfg, buf, a, a)
	if err != nil {
		t.Fatal(err)
	}
	if differs || buf.Len() != 0 {
		t.Errorf("equal documents differ: %q", buf.String())
	}
	cfg.WireOut = true
	differs, err = diffInputs(cfg, buf, a, b)
	if err != nil {
		t.Fatal(err)
	}
	if !differs {
		t.Fatal("expected a difference")
	}
	want := `[{"op":"replace","path":"$.children[0].addr_offset","from":4,"to":8}]` + "\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestView(t *testing.T) {
	cfg := &ViewConfig{MainConfig: testMain()}
	buf := &bytes.Buffer{}
	in := `{"type":"addrmap","inst_name":"chip","addr_offset":0,"children":[]}`
	if err := viewFiles(cfg, strings.NewReader(in), buf, []string{"-"}); err != nil {
		t.Fatal(err)
	}
	want := "{\n    \"type\": \"addrmap\",\n    \"inst_name\": \"chip\",\n    \"addr_offset\": 0,\n    \"children\": []\n}\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

const arrayedRegfileYAML = `
addrmaps:
  - name: top
    children:
      - regfile: blk
        dims: [2]
        children:
          - reg: r
`

func TestViewFailureKeepsOutput(t *testing.T) {
	out := writeTemp(t, "out.json", "previous\n")
	src := writeTemp(t, "bad.yaml", arrayedRegfileYAML)
	cfg := &ViewConfig{MainConfig: testMain(), Model: true}
	cfg.Out = out
	if err := runView(cfg, nil, nil, []string{src}); err == nil {
		t.Fatal("expected arrayed regfile to fail")
	}
	d, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(d) != "previous\n" {
		t.Errorf("output file changed to %q", d)
	}
}

func TestViewToFile(t *testing.T) {
	out := writeTemp(t, "out.json", "previous\n")
	src := writeTemp(t, "chip.yaml", chipYAML)
	cfg := &ViewConfig{MainConfig: testMain(), Model: true}
	cfg.Out = out
	if err := runView(cfg, nil, nil, []string{src}); err != nil {
		t.Fatal(err)
	}
	d, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(chipJSON, string(d)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestPatch(t *testing.T) {
	doc := writeTemp(t, "doc.json", `{"type":"addrmap","inst_name":"chip","addr_offset":0,"children":[]}`)
	p := writeTemp(t, "p.json", `{"inst_name":"soc"}`)
	cfg := &PatchConfig{MainConfig: testMain()}
	cfg.WireOut = true
	buf := &bytes.Buffer{}
	if err := runPatch(cfg, nil, buf, p, []string{doc}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"inst_name":"soc"`) {
		t.Errorf("patch not applied: %s", buf.String())
	}
}

func TestInit(t *testing.T) {
	p := filepath.Join(t.TempDir(), "regmap.yaml")
	cfg := &InitConfig{MainConfig: testMain()}
	if err := runInit(cfg, p); err != nil {
		t.Fatal(err)
	}
	if err := runInit(cfg, p); err == nil {
		t.Error("expected error writing over existing config")
	}
	cfg.Force = true
	cfg.Top = "soc"
	if err := runInit(cfg, p); err != nil {
		t.Fatal(err)
	}
	c, err := config.LoadFile(p)
	if err != nil {
		t.Fatal(err)
	}
	if c.Top != "soc" {
		t.Errorf("top: got %q want soc", c.Top)
	}
}
