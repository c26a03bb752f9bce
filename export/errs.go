package export

import (
	"errors"
	"strings"

	"github.com/signadot/regmap/regmodel"
)

var (
	ErrUnsupportedConstruct = errors.New("unsupported construct")
	ErrStructuralInvariant  = errors.New("structural invariant violated")
)

// ConversionError reports the node which stopped a conversion.
type ConversionError struct {
	Err      error
	InstName string
	Path     string
	Src      regmodel.SourceRef
	Msg      string
}

func (e *ConversionError) Error() string {
	b := &strings.Builder{}
	if !e.Src.IsZero() {
		b.WriteString(e.Src.String())
		b.WriteString(": ")
	}
	if e.Msg != "" {
		b.WriteString(e.Msg)
	} else if e.Err != nil {
		b.WriteString(e.Err.Error())
	}
	if e.Path != "" {
		b.WriteString(": ")
		b.WriteString(e.Path)
	}
	return b.String()
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

func newError(err error, n regmodel.Node, path, msg string) *ConversionError {
	res := &ConversionError{Err: err, Path: path, Msg: msg}
	if n != nil {
		res.InstName = n.InstName()
		res.Src = n.SourceRef()
	}
	return res
}
