package regmodel

import "errors"

var (
	ErrIndexRequired = errors.New("index of array element must be known to derive address")
	ErrIndexRange    = errors.New("array index out of range")
	ErrBitRange      = errors.New("bad bit range")
	ErrAccess        = errors.New("unknown access mode")
)
