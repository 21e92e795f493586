package php

import (
	"cmp"
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
			code.WriteString(" else ")
		}
		code.WriteString("if (" + p.ValueOr(b, "IF"+i, OrderNone, "false") + ") {\n")
		code.WriteString(suffix + p.StatementToCode(b, "DO"+i) + "}")
	}
	if b.HasInput("ELSE") || suffix != "" {
		code.WriteString(" else {\n" + suffix + p.StatementToCode(b, "ELSE") + "}")
	}
	code.WriteString("\n")
	return code.String(), nil
}

var compareOps = map[gen.CompareOp]gen.Binary{
	gen.CompareEQ:  gen.NonAssoc(" == ", OrderEquality),
	gen.CompareNEQ: gen.NonAssoc(" != ", OrderEquality),
	gen.CompareLT:  gen.NonAssoc(" < ", OrderRelational),
	gen.CompareLTE: gen.NonAssoc(" <= ", OrderRelational),
	gen.CompareGT:  gen.NonAssoc(" > ", OrderRelational),
	gen.CompareGTE: gen.NonAssoc(" >= ", OrderRelational),
}

func logicCompare(b block.Block, p *gen.Pass) (gen.Expr, error) {
	op, err := gen.ParseCompareOp(b.FieldValue("OP"))
	if err != nil {
		return gen.Expr{}, err
	}
	return binary(b, p, compareOps[op], "A", "B", "0"), nil
}

var logicOps = map[gen.LogicOp]gen.Binary{
	gen.LogicAnd: gen.LeftAssoc(" && ", OrderLogicalAnd),
	gen.LogicOr:  gen.LeftAssoc(" || ", OrderLogicalOr),
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
		left, right = "false", "false"
	} else {
		neutral := "false"
		if op == gen.LogicAnd {
			neutral = "true"
		}
		left = cmp.Or(left, neutral)
		right = cmp.Or(right, neutral)
	}
	return gen.E(left+bin.Op+right, bin.Order), nil
}

func logicNegate(b block.Block, p *gen.Pass) (gen.Expr, error) {
	return gen.E("!"+p.ValueOr(b, "BOOL", OrderLogicalNot, "true"), OrderLogicalNot), nil
}

func logicBoolean(b block.Block, _ *gen.Pass) (gen.Expr, error) {
	v, err := gen.ParseBool(b.FieldValue("BOOL"))
	if err != nil {
		return gen.Expr{}, err
	}
	return gen.E(strconv.FormatBool(v), OrderAtomic), nil
}

func logicNull(block.Block, *gen.Pass) (gen.Expr, error) {
	return gen.E("null", OrderAtomic), nil
}

// logicTernary groups nested conditionals explicitly; PHP 8 rejects them
// unparenthesized.
func logicTernary(b block.Block, p *gen.Pass) (gen.Expr, error) {
	cond := p.ValueOr(b, "IF", OrderConditional.Tighter(), "false")
	then := p.ValueOr(b, "THEN", OrderConditional.Tighter(), "null")
	otherwise := p.ValueOr(b, "ELSE", OrderConditional.Tighter(), "null")
	return gen.E(cond+" ? "+then+" : "+otherwise, OrderConditional), nil
}

func binary(b block.Block, p *gen.Pass, op gen.Binary, left, right, fallback string) gen.Expr {
	return gen.E(p.ValueOr(b, left, op.Left, fallback)+op.Op+p.ValueOr(b, right, op.Right, fallback), op.Order)
}
