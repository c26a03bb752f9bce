package eval

import "errors"

var (
	ErrExpr         = errors.New("bad expression")
	ErrSymbolExists = errors.New("symbol exists")
)
