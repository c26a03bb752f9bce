package regmodel

import "fmt"

type Kind int

const (
	AddrmapKind Kind = iota
	RegfileKind
	RegKind
	FieldKind
	SignalKind
)

func (k Kind) String() string {
	s, ok := map[Kind]string{
		AddrmapKind: "addrmap",
		RegfileKind: "regfile",
		RegKind:     "reg",
		FieldKind:   "field",
		SignalKind:  "signal",
	}[k]
	if ok {
		return s
	}
	return fmt.Sprintf("<kind %d>", int(k))
}

func ParseKind(v string) (Kind, error) {
	k, ok := map[string]Kind{
		"addrmap": AddrmapKind,
		"regfile": RegfileKind,
		"reg":     RegKind,
		"field":   FieldKind,
		"signal":  SignalKind,
	}[v]
	if !ok {
		return 0, fmt.Errorf("unknown node kind %q", v)
	}
	return k, nil
}

// Kinds returns all node kinds.
func Kinds() []Kind {
	return []Kind{AddrmapKind, RegfileKind, RegKind, FieldKind, SignalKind}
}
