package python

import (
	"strconv"
	"strings"

	"github.com/syssam/blockgen/block"
	"github.com/syssam/blockgen/compiler/gen"
)

func registerLogic(r *gen.Registry) {
	r.MustRegister("controls_if", gen.Rule{Statement: controlsIf, SuppressPrefixSuffix: true})
	r.MustAlias("controls_ifelse", "controls_if")
	r.Value("logic_compare", logicCompare)
	r.Value("logic_operation", logicOperation)
	r.Value("logic_negate", logicNegate)
	r.Value("logic_boolean", logicBoolean)
	r.Value("logic_null", logicNull)
	r.Value("logic_ternary", logicTernary)
}

// controlsIf renders if/elif/else. Empty branches get a pass statement.
func controlsIf(b block.Block, p *gen.Pass) (string, error) {
	var (
		code   strings.Builder
		suffix string
	)
	code.WriteString(p.StatementPrefix(b))
	if s := p.StatementSuffix(b); s != "" {
		suffix = gen.PrefixLines(s, p.Indent())
	}
	for n := 0; n == 0 || b.HasInput("IF"+strconv.Itoa(n)); n++ {
		i := strconv.Itoa(n)
		keyword := "if "
		if n > 0 {
			keyword = "elif "
		}
		code.WriteString(keyword + p.ValueOr(b, "IF"+i, OrderNone, "False") + ":\n")
		code.WriteString(suffix + p.BodyToCode(b, "DO"+i))
	}
	if b.HasInput("ELSE") || suffix != "" {
		code.WriteString("else:\n" + suffix + p.BodyToCode(b, "ELSE"))
	}
	return code.String(), nil
}

var compareOps = map[gen.CompareOp]string{
	gen.CompareEQ:  " == ",
	gen.CompareNEQ: " != ",
	gen.CompareLT:  " < ",
	gen.CompareLTE: " <= ",
	gen.CompareGT:  " > ",
	gen.CompareGTE: " >= ",
}

// logicCompare keeps chained comparisons grouped: Python reads a < b < c
// as a < b and b < c.
func logicCompare(b block.Block, p *gen.Pass) (gen.Expr, error) {
	op, err := gen.ParseCompareOp(b.FieldValue("OP"))
	if err != nil {
		return gen.Expr{}, err
	}
	return binary(b, p, gen.NonAssoc(compareOps[op], OrderRelational), "A", "B", "0"), nil
}

var logicOps = map[gen.LogicOp]gen.Binary{
	gen.LogicAnd: gen.LeftAssoc(" and ", OrderLogicalAnd),
	gen.LogicOr:  gen.LeftAssoc(" or ", OrderLogicalOr),
}

func logicOperation(b block.Block, p *gen.Pass) (gen.Expr, error) {
	op, err := gen.ParseLogicOp(b.FieldValue("OP"))
	if err != nil {
		return gen.Expr{}, err
	}
	bin := logicOps[op]
	left := p.ValueToCode(b, "A", bin.Left)
	right := p.ValueToCode(b, "B", bin.Right)
	if left == "" && right == "" {
		return gen.E("False"+bin.Op+"False", bin.Order), nil
	}
	// A single missing operand takes the neutral element.
	neutral := "False"
	if op == gen.LogicAnd {
		neutral = "True"
	}
	if left == "" {
		left = neutral
	}
	if right == "" {
		right = neutral
	}
	return gen.E(left+bin.Op+right, bin.Order), nil
}

func logicNegate(b block.Block, p *gen.Pass) (gen.Expr, error) {
	return gen.E("not "+p.ValueOr(b, "BOOL", OrderLogicalNot, "True"), OrderLogicalNot), nil
}

func logicBoolean(b block.Block, _ *gen.Pass) (gen.Expr, error) {
	v, err := gen.ParseBool(b.FieldValue("BOOL"))
	if err != nil {
		return gen.Expr{}, err
	}
	if v {
		return gen.E("True", OrderAtomic), nil
	}
	return gen.E("False", OrderAtomic), nil
}

func logicNull(block.Block, *gen.Pass) (gen.Expr, error) {
	return gen.E("None", OrderAtomic), nil
}

// logicTernary renders a conditional expression. Only the else branch
// may hold another conditional unparenthesized.
func logicTernary(b block.Block, p *gen.Pass) (gen.Expr, error) {
	cond := p.ValueOr(b, "IF", OrderConditional.Tighter(), "False")
	then := p.ValueOr(b, "THEN", OrderConditional.Tighter(), "None")
	otherwise := p.ValueOr(b, "ELSE", OrderConditional, "None")
	return gen.E(then+" if "+cond+" else "+otherwise, OrderConditional), nil
}

func binary(b block.Block, p *gen.Pass, op gen.Binary, left, right, fallback string) gen.Expr {
	return gen.E(p.ValueOr(b, left, op.Left, fallback)+op.Op+p.ValueOr(b, right, op.Right, fallback), op.Order)
}
