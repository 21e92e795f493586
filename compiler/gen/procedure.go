package gen

import (
	"strconv"

	"github.com/syssam/blockgen/block"
)

// Parameters returns the identifiers of the parameters of procedure b.
func (p *Pass) Parameters(b block.Block) []string {
	params := b.Params()
	names := make([]string, len(params))
	for i, param := range params {
		names[i] = p.VariableName(param)
	}
	return names
}

// Arguments renders the ARG0, ARG1, ... inputs of a procedure call. The
// argument count is the number of parameters of b, extended by any
// further declared ARGn inputs. Empty inputs render as fallback.
func (p *Pass) Arguments(b block.Block, outer Order, fallback string) []string {
	var args []string
	for i := 0; ; i++ {
		name := "ARG" + strconv.Itoa(i)
		if i >= len(b.Params()) && !b.HasInput(name) {
			return args
		}
		args = append(args, p.ValueOr(b, name, outer, fallback))
	}
}

// Procedure holds the parts of a procedure definition shared by every
// language. Rules assemble them with their own syntax.
type Procedure struct {
	// Name is the procedure identifier.
	Name string
	// Params are the parameter identifiers.
	Params []string
	// Hooks is the statement prefix and suffix, indented, placed at the
	// top of the body.
	Hooks string
	// LoopTrap is the indented loop trap.
	LoopTrap string
	// Branch is the rendered STACK input.
	Branch string
	// ReturnHooks repeats Hooks ahead of the return when the body is not empty.
	ReturnHooks string
	// Return is the rendered RETURN input, or "".
	Return string
}

// ProcedureParts renders the common parts of procedure definition b.
// The return value is requested at tier returnOrder.
func (p *Pass) ProcedureParts(b block.Block, returnOrder Order) Procedure {
	indent := p.config.Indent
	proc := Procedure{
		Name:   p.ProcedureName(b.FieldValue("NAME")),
		Params: p.Parameters(b),
	}
	hooks := p.StatementPrefix(b) + p.StatementSuffix(b)
	if hooks != "" {
		proc.Hooks = PrefixLines(hooks, indent)
	}
	if trap := p.LoopTrap(b); trap != "" {
		proc.LoopTrap = PrefixLines(trap, indent)
	}
	proc.Branch = p.StatementToCode(b, "STACK")
	proc.Return = p.ValueToCode(b, "RETURN", returnOrder)
	if proc.Branch != "" && proc.Return != "" {
		proc.ReturnHooks = proc.Hooks
	}
	return proc
}

// Body returns the procedure body ahead of the return statement.
func (proc Procedure) Body() string {
	return proc.Hooks + proc.LoopTrap + proc.Branch + proc.ReturnHooks
}
