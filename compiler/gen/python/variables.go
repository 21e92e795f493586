package python

import (
	"github.com/syssam/blockgen/block"
	"github.com/syssam/blockgen/compiler/gen"
)

func registerVariables(r *gen.Registry) {
	r.Value("variables_get", variablesGet)
	r.Statement("variables_set", variablesSet)
}

func variablesGet(b block.Block, p *gen.Pass) (gen.Expr, error) {
	return gen.E(p.VariableName(b.FieldValue("VAR")), OrderAtomic), nil
}

func variablesSet(b block.Block, p *gen.Pass) (string, error) {
	value := p.ValueOr(b, "VALUE", OrderNone, "0")
	return p.VariableName(b.FieldValue("VAR")) + " = " + value + "\n", nil
}
