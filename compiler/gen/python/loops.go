package python

import (
	"strconv"

	"github.com/syssam/blockgen/block"
	"github.com/syssam/blockgen/compiler/gen"
)

func registerLoops(r *gen.Registry) {
	r.Statement("controls_repeat_ext", controlsRepeat)
	r.MustAlias("controls_repeat", "controls_repeat_ext")
	r.Statement("controls_whileUntil", controlsWhileUntil)
}

func controlsRepeat(b block.Block, p *gen.Pass) (string, error) {
	var times string
	if field := b.FieldValue("TIMES"); field != "" {
		n, err := gen.ParseNumber(field)
		if err != nil {
			return "", err
		}
		times = gen.FormatNumber(n)
	} else {
		times = p.ValueOr(b, "TIMES", OrderNone, "0")
	}
	if n, ok := gen.RepeatCount(times); ok {
		times = strconv.Itoa(n)
	} else {
		times = "int(" + times + ")"
	}
	branch := loopBody(b, p)
	loopVar := p.Names().GetDistinctName("count", gen.NameVariable)
	return "for " + loopVar + " in range(" + times + "):\n" + branch, nil
}

func controlsWhileUntil(b block.Block, p *gen.Pass) (string, error) {
	mode, err := gen.ParseLoopMode(b.FieldValue("MODE"))
	if err != nil {
		return "", err
	}
	var cond string
	if mode == gen.LoopUntil {
		cond = "not " + p.ValueOr(b, "BOOL", OrderLogicalNot, "False")
	} else {
		cond = p.ValueOr(b, "BOOL", OrderNone, "False")
	}
	return "while " + cond + ":\n" + loopBody(b, p), nil
}

// loopBody renders the DO input with the loop trap, or pass.
func loopBody(b block.Block, p *gen.Pass) string {
	branch := p.AddLoopTrap(p.StatementToCode(b, "DO"), b)
	if branch == "" {
		branch = p.EmptyBody()
	}
	return branch
}
