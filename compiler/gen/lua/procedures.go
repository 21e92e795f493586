package lua

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

// procedureDefinition stores the function with the program definitions
// and renders nothing in place. Lua functions see globals without any
// declaration.
func procedureDefinition(b block.Block, p *gen.Pass) (string, error) {
	proc := p.ProcedureParts(b, OrderNone)
	var ret string
	if proc.Return != "" {
		ret = p.Indent() + "return " + proc.Return + "\n"
	}
	code := "function " + proc.Name + "(" + strings.Join(proc.Params, ", ") + ")\n" +
		proc.Body() + ret + "end\n"
	p.Define("%"+proc.Name, p.Comments(b)+code)
	return "", nil
}

func procedureCall(b block.Block, p *gen.Pass) (gen.Expr, error) {
	name := p.ProcedureName(b.FieldValue("NAME"))
	args := p.Arguments(b, OrderNone, "nil")
	return gen.E(name+"("+strings.Join(args, ", ")+")", OrderHigh), nil
}

func procedureCallStatement(b block.Block, p *gen.Pass) (string, error) {
	expr, err := procedureCall(b, p)
	if err != nil {
		return "", err
	}
	return expr.Code + "\n", nil
}

// procedureIfReturn repeats the statement suffix ahead of the return,
// since the one placed after the block is skipped when it returns.
func procedureIfReturn(b block.Block, p *gen.Pass) (string, error) {
	indent := p.Indent()
	code := "if " + p.ValueOr(b, "CONDITION", OrderNone, "false") + " then\n"
	if suffix := p.StatementSuffix(b); suffix != "" {
		code += gen.PrefixLines(suffix, indent)
	}
	if b.HasReturnValue() {
		code += indent + "return " + p.ValueOr(b, "VALUE", OrderNone, "nil") + "\n"
	} else {
		code += indent + "return\n"
	}
	return code + "end\n", nil
}
