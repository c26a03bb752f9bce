package libdiff

import "fmt"

type Op int

const (
	Insert Op = iota
	Delete
	Replace
)

func (o Op) String() string {
	switch o {
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	case Replace:
		return "replace"
	}
	return fmt.Sprintf("<op %d>", int(o))
}

func ParseOp(v string) (Op, error) {
	switch v {
	case "insert":
		return Insert, nil
	case "delete":
		return Delete, nil
	case "replace":
		return Replace, nil
	}
	return 0, fmt.Errorf("unknown diff op %q", v)
}
