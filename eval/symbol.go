package eval

import (
	"fmt"
	"math/bits"
	"os"
	"sort"
	"sync"

	"github.com/expr-lang/expr"
)

// Symbol is a function callable from expressions.
type Symbol interface {
	String() string
	Option() expr.Option
}

type funcSymbol struct {
	name  string
	fn    func(params ...any) (any, error)
	types []any
}

func (s *funcSymbol) String() string { return s.name }

func (s *funcSymbol) Option() expr.Option {
	return expr.Function(s.name, s.fn, s.types...)
}

// NewSymbol makes a Symbol from an expr function and its signatures.
func NewSymbol(name string, fn func(params ...any) (any, error), types ...any) Symbol {
	return &funcSymbol{name: name, fn: fn, types: types}
}

var (
	mu sync.RWMutex
	d  = map[string]Symbol{}
)

func Register(s Symbol) error {
	mu.Lock()
	defer mu.Unlock()
	_, present := d[s.String()]
	if present {
		return fmt.Errorf("%s: %w", s, ErrSymbolExists)
	}
	d[s.String()] = s
	return nil
}

func Lookup(s string) Symbol {
	mu.RLock()
	defer mu.RUnlock()
	return d[s]
}

// Symbols returns the registered symbols sorted by name.
func Symbols() []Symbol {
	mu.RLock()
	defer mu.RUnlock()
	res := make([]Symbol, 0, len(d))
	for _, s := range d {
		res = append(res, s)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].String() < res[j].String()
	})
	return res
}

func exprOpts() []expr.Option {
	syms := Symbols()
	res := make([]expr.Option, len(syms))
	for i, s := range syms {
		res[i] = s.Option()
	}
	return res
}

func init() {
	Register(NewSymbol("bit", func(params ...any) (any, error) {
		n, err := shiftArg("bit", params[0])
		if err != nil {
			return nil, err
		}
		return 1 << n, nil
	}, new(func(int) int)))
	Register(NewSymbol("mask", func(params ...any) (any, error) {
		n, err := shiftArg("mask", params[0])
		if err != nil {
			return nil, err
		}
		return 1<<n - 1, nil
	}, new(func(int) int)))
	Register(NewSymbol("log2", func(params ...any) (any, error) {
		v, err := ToUint(params[0])
		if err != nil || v == 0 {
			return nil, fmt.Errorf("%w: log2(%v)", ErrExpr, params[0])
		}
		return bits.Len64(v) - 1, nil
	}, new(func(int) int)))
	Register(NewSymbol("align", func(params ...any) (any, error) {
		v, err := ToUint(params[0])
		if err != nil {
			return nil, err
		}
		a, err := ToUint(params[1])
		if err != nil {
			return nil, err
		}
		return int(Align(v, a)), nil
	}, new(func(int, int) int)))
	Register(NewSymbol("getenv", func(params ...any) (any, error) {
		return os.Getenv(params[0].(string)), nil
	}, new(func(string) string)))
}

func shiftArg(name string, v any) (int, error) {
	n, err := ToUint(v)
	if err != nil {
		return 0, err
	}
	if n > 62 {
		return 0, fmt.Errorf("%w: %s(%d) overflows", ErrExpr, name, n)
	}
	return int(n), nil
}

// Align rounds v up to a multiple of a. Zero a leaves v unchanged.
func Align(v, a uint64) uint64 {
	if a == 0 {
		return v
	}
	if r := v % a; r != 0 {
		return v + a - r
	}
	return v
}
