package regmodel

import (
	"fmt"
	"strings"
)

// PosResolver maps an instance path inside a model document to a line and
// column. Resolution is deferred until a diagnostic needs it.
type PosResolver interface {
	Position(path string) (line, col int, ok bool)
}

// SourceRef locates a node in the description it was elaborated from.
type SourceRef struct {
	File string
	Path string
	Pos  PosResolver
}

func (s SourceRef) Position() (line, col int) {
	if s.Pos == nil || s.Path == "" {
		return 0, 0
	}
	line, col, ok := s.Pos.Position(s.Path)
	if !ok {
		return 0, 0
	}
	return line, col
}

func (s SourceRef) IsZero() bool {
	return s.File == "" && s.Path == ""
}

func (s SourceRef) String() string {
	if s.IsZero() {
		return "<unknown>"
	}
	b := &strings.Builder{}
	b.WriteString(s.File)
	line, col := s.Position()
	if line > 0 {
		fmt.Fprintf(b, ":%d:%d", line, col)
	} else if s.Path != "" {
		if b.Len() != 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(b, "(%s)", s.Path)
	}
	return b.String()
}
