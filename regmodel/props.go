package regmodel

import "math"

const (
	PropDesc      = "desc"
	PropReset     = "reset"
	PropSw        = "sw"
	PropRegwidth  = "regwidth"
	PropIndexdesc = "indexdesc"
)

const DefaultRegWidth = 32

// Properties holds the declared properties of a node. A missing key means
// the property is absent, which is different from a zero value.
type Properties map[string]any

func (p Properties) Get(name string) (any, bool) {
	v, ok := p[name]
	return v, ok
}

func (p Properties) String(name string) (string, bool) {
	v, ok := p[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (p Properties) Uint(name string) (uint64, bool) {
	v, ok := p[name]
	if !ok {
		return 0, false
	}
	switch x := v.(type) {
	case uint64:
		return x, true
	case uint:
		return uint64(x), true
	case uint32:
		return uint64(x), true
	case int:
		if x < 0 {
			return 0, false
		}
		return uint64(x), true
	case int64:
		if x < 0 {
			return 0, false
		}
		return uint64(x), true
	case float64:
		if x < 0 || x != math.Trunc(x) {
			return 0, false
		}
		return uint64(x), true
	}
	return 0, false
}

func (p Properties) Access(name string) (AccessMode, bool) {
	v, ok := p[name]
	if !ok {
		return 0, false
	}
	switch x := v.(type) {
	case AccessMode:
		return x, true
	case string:
		a, err := ParseAccessMode(x)
		if err != nil {
			return 0, false
		}
		return a, true
	}
	return 0, false
}
