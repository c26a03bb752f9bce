package eval

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/signadot/regmap/debug"

	"github.com/expr-lang/expr"
)

// Env binds names used in expressions.
type Env map[string]any

// Eval runs the expression raw against env.
func Eval(raw string, env Env) (any, error) {
	src, err := expandSized(raw)
	if err != nil {
		return nil, err
	}
	prg, err := expr.Compile(src, exprOpts()...)
	if err != nil {
		return nil, fmt.Errorf("%w: error compiling %q: %w", ErrExpr, raw, err)
	}
	if env == nil {
		env = Env{}
	}
	res, err := expr.Run(prg, map[string]any(env))
	if err != nil {
		return nil, fmt.Errorf("%w: error evaluating %q: %w", ErrExpr, raw, err)
	}
	if debug.Expr() {
		debug.Logf("expr %q => %v\n", raw, res)
	}
	return res, nil
}

// Uint converts a decoded document value to an unsigned integer. Strings
// are evaluated as expressions.
func Uint(v any, env Env) (uint64, error) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if u, err := strconv.ParseUint(s, 0, 64); err == nil {
			return u, nil
		}
		res, err := Eval(s, env)
		if err != nil {
			return 0, err
		}
		v = res
	}
	u, err := ToUint(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrExpr, err)
	}
	return u, nil
}

// Int is Uint for values which must fit in an int.
func Int(v any, env Env) (int, error) {
	u, err := Uint(v, env)
	if err != nil {
		return 0, err
	}
	if u > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d is too large", ErrExpr, u)
	}
	return int(u), nil
}

// ToUint converts a number of any Go integer or float type. Negative and
// fractional values are rejected.
func ToUint(v any) (uint64, error) {
	switch x := v.(type) {
	case uint64:
		return x, nil
	case uint:
		return uint64(x), nil
	case uint32:
		return uint64(x), nil
	case uint16:
		return uint64(x), nil
	case uint8:
		return uint64(x), nil
	case int:
		return fromInt64(int64(x))
	case int64:
		return fromInt64(x)
	case int32:
		return fromInt64(int64(x))
	case int16:
		return fromInt64(int64(x))
	case int8:
		return fromInt64(int64(x))
	case float64:
		if x < 0 || x != math.Trunc(x) || x > math.MaxUint64 {
			return 0, fmt.Errorf("%w: %v is not a natural number", ErrExpr, x)
		}
		return uint64(x), nil
	case bool, string, nil:
	}
	return 0, fmt.Errorf("%w: %v (%T) is not a number", ErrExpr, v, v)
}

func fromInt64(v int64) (uint64, error) {
	if v < 0 {
		return 0, fmt.Errorf("%w: %d is negative", ErrExpr, v)
	}
	return uint64(v), nil
}
