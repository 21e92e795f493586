package python

import (
	"strings"

	"github.com/syssam/blockgen/block"
	"github.com/syssam/blockgen/compiler/gen"
)

func registerProcedures(r *gen.Registry) {
	r.Statement("procedures_defreturn", procedureDefinition)
	r.MustAlias("procedures_defnoreturn", "procedures_defreturn")
	r.Value("procedures_callreturn", procedureCall)
	r.Statement("procedures_callnoreturn", procedureCallStatement)
	r.Statement("procedures_ifreturn", procedureIfReturn)
}

// procedureDefinition stores the function with the program definitions.
// Outer variables used in the body are declared global so assignments
// reach them.
func procedureDefinition(b block.Block, p *gen.Pass) (string, error) {
	globals, err := p.OuterVariables(b, "STACK", "RETURN")
	if err != nil {
		return "", err
	}
	var global string
	if len(globals) > 0 {
		global = p.Indent() + "global " + strings.Join(globals, ", ") + "\n"
	}
	proc := p.ProcedureParts(b, OrderNone)
	var ret string
	switch {
	case proc.Return != "":
		ret = p.Indent() + "return " + proc.Return + "\n"
	case proc.Branch == "":
		proc.Branch = p.EmptyBody()
	}
	code := "def " + proc.Name + "(" + strings.Join(proc.Params, ", ") + "):\n" +
		global + proc.Body() + ret
	p.Define("%"+proc.Name, p.Comments(b)+code)
	return "", nil
}

func procedureCall(b block.Block, p *gen.Pass) (gen.Expr, error) {
	name := p.ProcedureName(b.FieldValue("NAME"))
	args := p.Arguments(b, OrderNone, "None")
	return gen.E(name+"("+strings.Join(args, ", ")+")", OrderFunctionCall), nil
}

func procedureCallStatement(b block.Block, p *gen.Pass) (string, error) {
	expr, err := procedureCall(b, p)
	if err != nil {
		return "", err
	}
	return expr.Code + "\n", nil
}

func procedureIfReturn(b block.Block, p *gen.Pass) (string, error) {
	indent := p.Indent()
	code := "if " + p.ValueOr(b, "CONDITION", OrderNone, "False") + ":\n"
	if suffix := p.StatementSuffix(b); suffix != "" {
		code += gen.PrefixLines(suffix, indent)
	}
	if b.HasReturnValue() {
		return code + indent + "return " + p.ValueOr(b, "VALUE", OrderNone, "None") + "\n", nil
	}
	return code + indent + "return\n", nil
}
