package parse

import (
	"errors"
	"fmt"
)

var (
	ErrParse    = errors.New("parse error")
	ErrMultiDoc = fmt.Errorf("%w: more than one document", ErrParse)
	ErrKeyType  = fmt.Errorf("%w: object key is not a string", ErrParse)
)
