package regmodel

import (
	"fmt"
	"strings"
)

// AccessMode is the software access classification of a field.
type AccessMode int

const (
	RW AccessMode = iota
	R
	W
	RW1
	W1
	NA
)

func (a AccessMode) String() string {
	switch a {
	case RW:
		return "rw"
	case R:
		return "r"
	case W:
		return "w"
	case RW1:
		return "rw1"
	case W1:
		return "w1"
	case NA:
		return "na"
	default:
		return fmt.Sprintf("<access %d>", int(a))
	}
}

func (a AccessMode) CanRead() bool {
	return a == RW || a == R || a == RW1
}

func (a AccessMode) CanWrite() bool {
	return a == RW || a == W || a == RW1 || a == W1
}

func ParseAccessMode(v string) (AccessMode, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "rw", "wr":
		return RW, nil
	case "r":
		return R, nil
	case "w":
		return W, nil
	case "rw1", "w1r":
		return RW1, nil
	case "w1":
		return W1, nil
	case "na":
		return NA, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrAccess, v)
}

func (a AccessMode) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *AccessMode) UnmarshalText(d []byte) error {
	m, err := ParseAccessMode(string(d))
	if err != nil {
		return err
	}
	*a = m
	return nil
}
