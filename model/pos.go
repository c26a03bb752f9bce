package model

import (
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
)

// positions resolves YAML paths in one document. The document is parsed
// again on first use.
type positions struct {
	data []byte

	once sync.Once
	file *ast.File
	err  error
}

func (p *positions) Position(path string) (line, col int, ok bool) {
	p.once.Do(func() {
		p.file, p.err = parser.ParseBytes(p.data, 0)
	})
	if p.err != nil {
		return 0, 0, false
	}
	yp, err := yaml.PathString(path)
	if err != nil {
		return 0, 0, false
	}
	n, err := yp.FilterFile(p.file)
	if err != nil || n == nil {
		return 0, 0, false
	}
	tk := n.GetToken()
	if tk == nil || tk.Position == nil {
		return 0, 0, false
	}
	return tk.Position.Line, tk.Position.Column, true
}
