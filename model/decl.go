package model

import (
	"fmt"
	"os"
	"regexp"

	"github.com/signadot/regmap/debug"
	"github.com/signadot/regmap/regmodel"

	"github.com/goccy/go-yaml"
)

// Unit is one compiled model document.
type Unit struct {
	Name     string
	Params   yaml.MapSlice
	Addrmaps []*Decl

	pos *positions
}

type document struct {
	Params   yaml.MapSlice `yaml:"params"`
	Addrmaps []*Decl       `yaml:"addrmaps"`
}

// Decl declares an instance. Exactly one of Addrmap, Regfile, Reg and
// Signal names a child; top level addrmaps use Name.
type Decl struct {
	Name    string `yaml:"name,omitempty"`
	Addrmap string `yaml:"addrmap,omitempty"`
	Regfile string `yaml:"regfile,omitempty"`
	Reg     string `yaml:"reg,omitempty"`
	Signal  string `yaml:"signal,omitempty"`
	Type    string `yaml:"type,omitempty"`

	Offset   any   `yaml:"offset,omitempty"`
	Dims     []any `yaml:"dims,omitempty"`
	Stride   any   `yaml:"stride,omitempty"`
	Regwidth any   `yaml:"regwidth,omitempty"`
	Width    any   `yaml:"width,omitempty"`

	Desc       *string        `yaml:"desc,omitempty"`
	Indexdesc  *string        `yaml:"indexdesc,omitempty"`
	Properties map[string]any `yaml:"properties,omitempty"`

	Children []*Decl      `yaml:"children,omitempty"`
	Fields   []*FieldDecl `yaml:"fields,omitempty"`
}

type FieldDecl struct {
	Name  string `yaml:"name"`
	LSB   any    `yaml:"lsb,omitempty"`
	MSB   any    `yaml:"msb,omitempty"`
	Bits  any    `yaml:"bits,omitempty"`
	Width any    `yaml:"width,omitempty"`
	Reset any    `yaml:"reset,omitempty"`
	Sw    string `yaml:"sw,omitempty"`

	Desc       *string        `yaml:"desc,omitempty"`
	Properties map[string]any `yaml:"properties,omitempty"`
}

// Kind returns the kind of instance d declares.
func (d *Decl) Kind() (regmodel.Kind, string, error) {
	var (
		kinds []regmodel.Kind
		name  string
	)
	for _, c := range []struct {
		k regmodel.Kind
		v string
	}{
		{regmodel.AddrmapKind, d.Addrmap},
		{regmodel.RegfileKind, d.Regfile},
		{regmodel.RegKind, d.Reg},
		{regmodel.SignalKind, d.Signal},
	} {
		if c.v != "" {
			kinds = append(kinds, c.k)
			name = c.v
		}
	}
	switch len(kinds) {
	case 0:
		if d.Name != "" {
			return regmodel.AddrmapKind, d.Name, nil
		}
		return 0, "", fmt.Errorf("%w: instance has no kind", ErrModel)
	case 1:
		if d.Name != "" && d.Name != name {
			return 0, "", fmt.Errorf("%w: %s %q also named %q", ErrModel, kinds[0], name, d.Name)
		}
		return kinds[0], name, nil
	}
	return 0, "", fmt.Errorf("%w: %q declares kinds %v", ErrModel, name, kinds)
}

var identRE = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func checkName(kind, name string) error {
	if !identRE.MatchString(name) {
		return fmt.Errorf("%w: bad %s name %q", ErrModel, kind, name)
	}
	return nil
}

// Compile parses a model document.
func Compile(name string, data []byte) (*Unit, error) {
	doc := &document{}
	if err := yaml.UnmarshalWithOptions(data, doc, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrModel, name, err)
	}
	u := &Unit{
		Name:     name,
		Params:   doc.Params,
		Addrmaps: doc.Addrmaps,
		pos:      &positions{data: data},
	}
	seen := map[string]bool{}
	for i, d := range u.Addrmaps {
		if d == nil {
			return nil, fmt.Errorf("%w: %s: empty addrmap at %s", ErrModel, name, topPath(i))
		}
		k, dName, err := d.Kind()
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", name, topPath(i), err)
		}
		if k != regmodel.AddrmapKind {
			return nil, fmt.Errorf("%w: %s: top level %s %q", ErrModel, name, k, dName)
		}
		if err := checkName("addrmap", dName); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if seen[dName] {
			return nil, fmt.Errorf("%w: %s: addrmap %q defined twice", ErrModel, name, dName)
		}
		seen[dName] = true
	}
	if debug.Load() {
		debug.Logf("compiled %s: %d addrmaps, %d params\n", name, len(u.Addrmaps), len(u.Params))
	}
	return u, nil
}

// CompileFile compiles the model document at path.
func CompileFile(path string) (*Unit, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Compile(path, d)
}

// CompileFiles compiles each of paths, stopping at the first error.
func CompileFiles(paths ...string) ([]*Unit, error) {
	res := make([]*Unit, 0, len(paths))
	for _, p := range paths {
		u, err := CompileFile(p)
		if err != nil {
			return nil, err
		}
		res = append(res, u)
	}
	return res, nil
}

func topPath(i int) string {
	return fmt.Sprintf("$.addrmaps[%d]", i)
}
