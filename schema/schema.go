package schema

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/signadot/regmap/encode"
	"github.com/signadot/regmap/ir"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed regmap.cue
var regmapCUE []byte

// Default names the schema of exported register maps.
const Default = "regmap"

var ErrInvalid = errors.New("schema validation failed")

// Schema is a CUE definition documents are checked against.
type Schema struct {
	Name   string
	Def    string
	Source []byte

	mu   sync.Mutex
	once sync.Once
	ctx  *cue.Context
	def  cue.Value
	err  error
}

func (s *Schema) compile() error {
	s.once.Do(func() {
		s.ctx = cuecontext.New()
		v := s.ctx.CompileBytes(s.Source, cue.Filename(s.Name+".cue"))
		if v.Err() != nil {
			s.err = fmt.Errorf("compiling schema %s: %w", s.Name, v.Err())
			return
		}
		s.def = v.LookupPath(cue.ParsePath(s.Def))
		if s.def.Err() != nil {
			s.err = fmt.Errorf("looking up %s in schema %s: %w", s.Def, s.Name, s.def.Err())
		}
	})
	return s.err
}

// ValidateJSON checks a JSON document.
func (s *Schema) ValidateJSON(d []byte) error {
	if err := s.compile(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	data := s.ctx.CompileBytes(d)
	if data.Err() != nil {
		return fmt.Errorf("compiling document: %w", data.Err())
	}
	unified := s.def.Unify(data)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Validate checks doc.
func (s *Schema) Validate(doc *ir.Node) error {
	d, err := encodeJSON(doc)
	if err != nil {
		return err
	}
	return s.ValidateJSON(d)
}

func encodeJSON(doc *ir.Node) ([]byte, error) {
	buf := bytes.NewBuffer(nil)
	if err := encode.Encode(doc, buf, encode.EncodeWire(true)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Errors lists the individual problems in a validation error.
func Errors(err error) []string {
	if err == nil {
		return nil
	}
	var res []string
	for _, e := range cueerrors.Errors(err) {
		res = append(res, e.Error())
	}
	if len(res) == 0 {
		res = append(res, err.Error())
	}
	return res
}

func init() {
	if err := Register(&Schema{Name: Default, Def: "#Document", Source: regmapCUE}); err != nil {
		panic(err)
	}
}
