package lua

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

// controlsRepeat counts from 1 to the number of repetitions. A TIMES
// field takes precedence over a TIMES input.
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
		times = "math.floor(" + times + ")"
	}
	branch := p.AddLoopTrap(p.StatementToCode(b, "DO"), b)
	loopVar := p.Names().GetDistinctName("count", gen.NameVariable)
	return "for " + loopVar + " = 1, " + times + " do\n" + branch + "end\n", nil
}

func controlsWhileUntil(b block.Block, p *gen.Pass) (string, error) {
	mode, err := gen.ParseLoopMode(b.FieldValue("MODE"))
	if err != nil {
		return "", err
	}
	var cond string
	if mode == gen.LoopUntil {
		cond = "not " + p.ValueOr(b, "BOOL", OrderUnary, "false")
	} else {
		cond = p.ValueOr(b, "BOOL", OrderNone, "false")
	}
	branch := p.AddLoopTrap(p.StatementToCode(b, "DO"), b)
	return "while " + cond + " do\n" + branch + "end\n", nil
}
