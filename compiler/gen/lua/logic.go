package lua

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

// controlsIf renders if/elseif/else. The statement prefix and suffix are
// placed by hand: the suffix opens every branch, including an else branch
// that exists only to carry it.
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
		if n > 0 {
			code.WriteString("else")
		}
		code.WriteString("if " + p.ValueOr(b, "IF"+i, OrderNone, "false") + " then\n")
		code.WriteString(suffix + p.StatementToCode(b, "DO"+i))
	}
	if b.HasInput("ELSE") || suffix != "" {
		code.WriteString("else\n" + suffix + p.StatementToCode(b, "ELSE"))
	}
	code.WriteString("end\n")
	return code.String(), nil
}

var compareOps = map[gen.CompareOp]string{
	gen.CompareEQ:  " == ",
	gen.CompareNEQ: " ~= ",
	gen.CompareLT:  " < ",
	gen.CompareLTE: " <= ",
	gen.CompareGT:  " > ",
	gen.CompareGTE: " >= ",
}

func logicCompare(b block.Block, p *gen.Pass) (gen.Expr, error) {
	op, err := gen.ParseCompareOp(b.FieldValue("OP"))
	if err != nil {
		return gen.Expr{}, err
	}
	bin := gen.NonAssoc(compareOps[op], OrderRelational)
	return binary(b, p, bin, "A", "B", "0"), nil
}

var logicOps = map[gen.LogicOp]gen.Binary{
	gen.LogicAnd: gen.LeftAssoc(" and ", OrderAnd),
	gen.LogicOr:  gen.LeftAssoc(" or ", OrderOr),
}

func logicOperation(b block.Block, p *gen.Pass) (gen.Expr, error) {
	op, err := gen.ParseLogicOp(b.FieldValue("OP"))
	if err != nil {
		return gen.Expr{}, err
	}
	bin := logicOps[op]
	left := p.ValueToCode(b, "A", bin.Left)
	right := p.ValueToCode(b, "B", bin.Right)
	switch {
	case left == "" && right == "":
		left, right = "false", "false"
	default:
		// A single missing operand takes the neutral element.
		neutral := "false"
		if op == gen.LogicAnd {
			neutral = "true"
		}
		if left == "" {
			left = neutral
		}
		if right == "" {
			right = neutral
		}
	}
	return gen.E(left+bin.Op+right, bin.Order), nil
}

func logicNegate(b block.Block, p *gen.Pass) (gen.Expr, error) {
	return gen.E("not "+p.ValueOr(b, "BOOL", OrderUnary, "true"), OrderUnary), nil
}

func logicBoolean(b block.Block, _ *gen.Pass) (gen.Expr, error) {
	v, err := gen.ParseBool(b.FieldValue("BOOL"))
	if err != nil {
		return gen.Expr{}, err
	}
	return gen.E(strconv.FormatBool(v), OrderAtomic), nil
}

func logicNull(block.Block, *gen.Pass) (gen.Expr, error) {
	return gen.E("nil", OrderAtomic), nil
}

// logicTernary renders the and/or idiom. It yields the else value when
// the then value is false or nil.
func logicTernary(b block.Block, p *gen.Pass) (gen.Expr, error) {
	cond := p.ValueOr(b, "IF", OrderAnd, "false")
	then := p.ValueOr(b, "THEN", OrderAnd.Tighter(), "nil")
	otherwise := p.ValueOr(b, "ELSE", OrderOr.Tighter(), "nil")
	return gen.E(cond+" and "+then+" or "+otherwise, OrderOr), nil
}

// binary renders a binary operator whose operands default to fallback.
func binary(b block.Block, p *gen.Pass, op gen.Binary, left, right, fallback string) gen.Expr {
	return gen.E(p.ValueOr(b, left, op.Left, fallback)+op.Op+p.ValueOr(b, right, op.Right, fallback), op.Order)
}
