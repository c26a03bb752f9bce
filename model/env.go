package model

import (
	"fmt"
	"os"

	"github.com/signadot/regmap/debug"
	"github.com/signadot/regmap/eval"

	"github.com/goccy/go-yaml"
)

// EnvParams names the environment variable holding param overrides as a
// YAML or JSON mapping.
const EnvParams = "REGMAP_PARAMS"

// LoadEnv reads param overrides from $REGMAP_PARAMS. It returns nil when
// the variable is unset.
func LoadEnv() (eval.Env, error) {
	v := os.Getenv(EnvParams)
	if v == "" {
		return nil, nil
	}
	return ParseParams([]byte(v))
}

// ParseParams decodes a mapping of param overrides. String values are
// evaluated as expressions, so "16'h100" and "1 << 4" are accepted.
func ParseParams(d []byte) (eval.Env, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(d, &raw); err != nil {
		return nil, fmt.Errorf("%w: error decoding params: %w", ErrModel, err)
	}
	res := make(eval.Env, len(raw))
	for k, v := range raw {
		if !identRE.MatchString(k) {
			return nil, fmt.Errorf("%w: bad param name %q", ErrModel, k)
		}
		if s, ok := v.(string); ok {
			ev, err := eval.Eval(s, nil)
			if err != nil {
				return nil, fmt.Errorf("param %s: %w", k, err)
			}
			v = ev
		}
		res[k] = v
	}
	if debug.Load() {
		debug.Logf("loaded %d param overrides\n", len(res))
	}
	return res, nil
}
