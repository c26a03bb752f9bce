package export

import (
	"fmt"

	"github.com/signadot/regmap/debug"
	"github.com/signadot/regmap/ir"
	"github.com/signadot/regmap/regmodel"
)

// Walk converts the model rooted at node. The root must be a container or a
// register. On error no part of the document is returned.
func Walk(node regmodel.Node) (*ir.Node, error) {
	return walk(node, "")
}

func walk(node regmodel.Node, parent string) (*ir.Node, error) {
	path := instPath(parent, node)
	if debug.Walk() {
		debug.Logf("walk %s\n", path)
	}
	switch n := node.(type) {
	case *regmodel.Addrmap:
		return walkContainer(n, path)
	case *regmodel.Regfile:
		return walkContainer(n, path)
	case *regmodel.Reg:
		return convertReg(n, path)
	case *regmodel.Field:
		return nil, newError(ErrStructuralInvariant, n, path,
			"field outside of a register")
	case *regmodel.Signal:
		return nil, newError(ErrStructuralInvariant, n, path,
			"signal where a register or container was expected")
	case nil:
		return nil, newError(ErrStructuralInvariant, nil, path, "nil node")
	default:
		return nil, newError(ErrStructuralInvariant, n, path,
			fmt.Sprintf("unexpected node type %T", n))
	}
}

func walkContainer(c regmodel.Container, path string) (*ir.Node, error) {
	if err := checkContainer(c, path); err != nil {
		return nil, err
	}
	kids := c.Children()
	recs := make([]*ir.Node, 0, len(kids))
	for _, kid := range kids {
		rec, err := walk(kid, path)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return convertContainer(c, recs, path)
}

func instPath(parent string, node regmodel.Node) string {
	name := "<nil>"
	if node != nil {
		name = node.InstName()
	}
	if parent == "" {
		return name
	}
	return parent + "." + name
}
