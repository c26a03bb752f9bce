package model

import (
	"errors"

	"github.com/signadot/regmap/eval"
)

var (
	ErrModel = errors.New("bad model")
	ErrNoTop = errors.New("no top level addrmap")
	ErrExpr  = eval.ErrExpr
)
