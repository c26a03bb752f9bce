package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Walk   bool
	Load   bool
	Expr   bool
	Encode bool
}

var d *debug

func init() {
	d = &debug{}
	d.Walk = boolEnv("REGMAP_DEBUG_WALK")
	d.Load = boolEnv("REGMAP_DEBUG_LOAD")
	d.Expr = boolEnv("REGMAP_DEBUG_EXPR")
	d.Encode = boolEnv("REGMAP_DEBUG_ENCODE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Walk() bool {
	return d.Walk
}
func Load() bool {
	return d.Load
}
func Expr() bool {
	return d.Expr
}
func Encode() bool {
	return d.Encode
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
}
