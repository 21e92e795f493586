package php

import (
	"regexp"

	"github.com/syssam/blockgen/block"
	"github.com/syssam/blockgen/compiler/gen"
)

func registerLoops(r *gen.Registry) {
	r.Statement("controls_repeat_ext", controlsRepeat)
	r.MustAlias("controls_repeat", "controls_repeat_ext")
	r.Statement("controls_whileUntil", controlsWhileUntil)
}

var word = regexp.MustCompile(`^\w+$`)

// controlsRepeat counts from 0. A repetition count that is neither a
// number nor a plain word is evaluated once into its own variable.
func controlsRepeat(b block.Block, p *gen.Pass) (string, error) {
	var times string
	if field := b.FieldValue("TIMES"); field != "" {
		n, err := gen.ParseNumber(field)
		if err != nil {
			return "", err
		}
		times = gen.FormatNumber(n)
	} else {
		times = p.ValueOr(b, "TIMES", OrderAssignment, "0")
	}
	branch := p.AddLoopTrap(p.StatementToCode(b, "DO"), b)
	loopVar := p.Names().GetDistinctName("count", gen.NameVariable)
	var code string
	end := times
	if !word.MatchString(times) && !gen.IsNumber(times) {
		end = p.Names().GetDistinctName("repeat_end", gen.NameVariable)
		code = end + " = " + times + ";\n"
	}
	code += "for (" + loopVar + " = 0; " + loopVar + " < " + end + "; " + loopVar + "++) {\n" +
		branch + "}\n"
	return code, nil
}

func controlsWhileUntil(b block.Block, p *gen.Pass) (string, error) {
	mode, err := gen.ParseLoopMode(b.FieldValue("MODE"))
	if err != nil {
		return "", err
	}
	var cond string
	if mode == gen.LoopUntil {
		cond = "!" + p.ValueOr(b, "BOOL", OrderLogicalNot, "false")
	} else {
		cond = p.ValueOr(b, "BOOL", OrderNone, "false")
	}
	branch := p.AddLoopTrap(p.StatementToCode(b, "DO"), b)
	return "while (" + cond + ") {\n" + branch + "}\n", nil
}
