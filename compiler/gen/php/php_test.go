package php_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/blockgen/block"
	"github.com/syssam/blockgen/compiler/gen"
	"github.com/syssam/blockgen/compiler/gen/php"
)

func num(n string) *block.Node { return block.New("math_number").Field("NUM", n) }

func get(name string) *block.Node { return block.New("variables_get").Var("VAR", name) }

func set(name string, value *block.Node) *block.Node {
	return block.New("variables_set").Var("VAR", name).Value("VALUE", value)
}

func arith(op string, a, b *block.Node) *block.Node {
	return block.New("math_arithmetic").Field("OP", op).Value("A", a).Value("B", b)
}

func compare(op string, a, b *block.Node) *block.Node {
	return block.New("logic_compare").Field("OP", op).Value("A", a).Value("B", b)
}

func ternary(cond, then, otherwise *block.Node) *block.Node {
	return block.New("logic_ternary").Value("IF", cond).Value("THEN", then).Value("ELSE", otherwise)
}

func generate(t *testing.T, opts []gen.Option, tops ...*block.Node) (string, error) {
	t.Helper()
	g, err := gen.New(php.New(), opts...)
	require.NoError(t, err)
	return g.WorkspaceToCode(block.NewWorkspace().Add(tops...))
}

func mustGenerate(t *testing.T, opts []gen.Option, tops ...*block.Node) string {
	t.Helper()
	code, err := generate(t, opts, tops...)
	require.NoError(t, err)
	return code
}

// body drops the definitions ahead of the main program.
func body(code string) string {
	if i := strings.LastIndex(code, "\n\n\n"); i >= 0 {
		return code[i+3:]
	}
	return code
}

func TestDialect(t *testing.T) {
	d := php.New()
	assert.Equal(t, "PHP", d.Name())
	assert.Equal(t, "php", d.Extension())
	assert.Equal(t, "$", d.VariablePrefix())
	assert.Equal(t, "// ", d.CommentPrefix())
	assert.Equal(t, "x;\n", d.ScrubNakedValue("x"))
	assert.Equal(t, "bitwise_and", php.OrderName(php.OrderReference))
	assert.Equal(t, "logical_or_weak", php.OrderName(php.OrderLogicalOrWeak))
}

func TestProgram(t *testing.T) {
	t.Run("variables initialized", func(t *testing.T) {
		code := mustGenerate(t, nil, set("r", num("1")))
		assert.Equal(t, "$r = null;\n\n\n$r = 1;\n", code)
	})

	t.Run("naked value", func(t *testing.T) {
		code := mustGenerate(t, nil, num("1"))
		assert.Equal(t, "1;\n", code)
	})

	t.Run("comment", func(t *testing.T) {
		code := mustGenerate(t, nil, set("r", num("1")).WithComment("note"))
		assert.Equal(t, "// note\n$r = 1;\n", body(code))
	})

	t.Run("reserved variable names", func(t *testing.T) {
		code := mustGenerate(t, nil, set("global", num("1")))
		assert.Equal(t, "$global2 = 1;\n", body(code))
	})
}

func TestControlsIf(t *testing.T) {
	t.Run("else if and else", func(t *testing.T) {
		ifBlock := block.New("controls_if").
			Value("IF0", compare("EQ", get("x"), num("1"))).
			Statement("DO0", set("y", num("1"))).
			Value("IF1", block.New("logic_boolean").Field("BOOL", "TRUE")).
			Statement("DO1", set("y", num("2"))).
			Statement("ELSE", set("y", num("3")))
		code := mustGenerate(t, nil, ifBlock)
		assert.Equal(t, "$x = null;\n$y = null;\n\n\n"+
			"if ($x == 1) {\n  $y = 1;\n} else if (true) {\n  $y = 2;\n} else {\n  $y = 3;\n}\n", code)
	})

	t.Run("suffix forces else", func(t *testing.T) {
		ifBlock := block.New("controls_if").WithID("if1").
			Value("IF0", block.New("logic_boolean").Field("BOOL", "TRUE")).
			Statement("DO0", set("y", num("1")).WithID("s1"))
		code := mustGenerate(t, []gen.Option{gen.WithStatementSuffix("hook(%1);\n")}, ifBlock)
		assert.Equal(t, "if (true) {\n  hook('if1');\n  $y = 1;\n  hook('s1');\n} else {\n  hook('if1');\n}\n", body(code))
	})
}

func TestExpressions(t *testing.T) {
	tests := []struct {
		name  string
		value *block.Node
		want  string
	}{
		{"comparison in and", block.New("logic_operation").Field("OP", "AND").
			Value("A", compare("EQ", get("a"), get("b"))).Value("B", get("c")), "$a == $b && $c"},
		{"or in and", block.New("logic_operation").Field("OP", "AND").
			Value("A", block.New("logic_operation").Field("OP", "OR").Value("A", get("a"))), "($a || false) && true"},
		{"negate", block.New("logic_negate").Value("BOOL", compare("LT", get("a"), get("b"))), "!($a < $b)"},
		{"null", block.New("logic_null"), "null"},
		{"ternary", ternary(get("a"), num("1"), num("2")), "$a ? 1 : 2"},
		{"nested ternary", ternary(get("a"), num("1"), ternary(get("b"), num("2"), num("3"))), "$a ? 1 : ($b ? 2 : 3)"},
		{"right grouping kept", arith("MINUS", get("a"), arith("MINUS", get("b"), get("c"))), "$a - ($b - $c)"},
		{"power right", arith("POWER", get("a"), arith("POWER", get("b"), get("c"))), "$a ** $b ** $c"},
		{"infinity", num("Infinity"), "INF"},
		{"negate negative", block.New("math_single").Field("OP", "NEG").Value("NUM", num("-5")), "- -5"},
		{"sin", block.New("math_trig").Field("OP", "SIN").Value("NUM", arith("ADD", get("a"), num("1"))), "sin(($a + 1) / 180 * pi())"},
		{"log10", block.New("math_single").Field("OP", "LOG10").Value("NUM", get("a")), "log($a) / log(10)"},
		{"round", block.New("math_round").Field("OP", "ROUND").Value("NUM", get("a")), "round($a)"},
		{"pi", block.New("math_constant").Field("CONSTANT", "PI"), "M_PI"},
		{"whole", block.New("math_number_property").Field("PROPERTY", "WHOLE").Value("NUMBER_TO_CHECK", get("a")), "is_int($a)"},
		{"odd", block.New("math_number_property").Field("PROPERTY", "ODD").Value("NUMBER_TO_CHECK", get("a")), "$a % 2 == 1"},
		{
			"divisible by zero",
			block.New("math_number_property").Field("PROPERTY", "DIVISIBLE_BY").
				Value("NUMBER_TO_CHECK", get("a")).Value("DIVISOR", num("0")),
			"false",
		},
		{"sum", block.New("math_on_list").Field("OP", "SUM").Value("LIST", get("l")), "array_sum($l)"},
		{"max default", block.New("math_on_list").Field("OP", "MAX"), "max(array())"},
		{"modulo", block.New("math_modulo").Value("DIVIDEND", get("a")).Value("DIVISOR", num("2")), "$a % 2"},
		{"constrain", block.New("math_constrain").Value("VALUE", get("a")).Value("LOW", num("1")), "min(max($a, 1), INF)"},
		{"random float", block.New("math_random_float"), "(float)rand()/(float)getrandmax()"},
		{"atan2", block.New("math_atan2").Value("X", get("a")).Value("Y", get("b")), "atan2($b, $a) / pi() * 180"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := mustGenerate(t, nil, set("r", tt.value))
			assert.Equal(t, "$r = "+tt.want+";\n", body(code))
		})
	}

	t.Run("change", func(t *testing.T) {
		code := mustGenerate(t, nil, block.New("math_change").Var("VAR", "n").Value("DELTA", num("2")))
		assert.Equal(t, "$n += 2;\n", body(code))
	})

	t.Run("operator tables are complete", func(t *testing.T) {
		for _, op := range gen.CompareOps() {
			_, err := generate(t, nil, set("r", compare(op.String(), get("a"), get("b"))))
			assert.NoError(t, err, op.String())
		}
		for _, op := range gen.MathOps() {
			_, err := generate(t, nil, set("r", block.New("math_single").Field("OP", op.String())))
			assert.NoError(t, err, op.String())
		}
		for _, c := range gen.MathConstants() {
			_, err := generate(t, nil, set("r", block.New("math_constant").Field("CONSTANT", c.String())))
			assert.NoError(t, err, c.String())
		}
		for _, prop := range gen.NumberProperties() {
			_, err := generate(t, nil, set("r", block.New("math_number_property").Field("PROPERTY", prop.String())))
			assert.NoError(t, err, prop.String())
		}
		for _, op := range gen.ListOps() {
			_, err := generate(t, nil, set("r", block.New("math_on_list").Field("OP", op.String())))
			assert.NoError(t, err, op.String())
		}
	})

	t.Run("unsupported operator", func(t *testing.T) {
		_, err := generate(t, nil, set("r", compare("LIKE", get("a"), get("b"))))
		assert.ErrorIs(t, err, gen.ErrUnsupportedOperation)
	})
}

func TestHelpers(t *testing.T) {
	randomInt := func() *block.Node {
		return block.New("math_random_int").Value("FROM", num("1")).Value("TO", num("6"))
	}
	code := mustGenerate(t, nil, block.Chain(set("a", randomInt()), set("b", randomInt())))
	assert.Equal(t, 1, strings.Count(code, "function math_random_int($a, $b) {"))
	assert.Equal(t, "$a = math_random_int(1, 6);\n$b = math_random_int(1, 6);\n", body(code))
	assert.True(t, strings.HasPrefix(code, "$a = null;\n$b = null;\n\nfunction math_random_int"))
}

func TestProcedures(t *testing.T) {
	t.Run("globals", func(t *testing.T) {
		def := block.New("procedures_defnoreturn").Field("NAME", "f").Param("a").
			Statement("STACK", set("total", arith("ADD", get("total"), get("a"))))
		code := mustGenerate(t, nil, def)
		assert.Equal(t, "$a = null;\n$total = null;\n\n"+
			"function f($a) {\n  global $total;\n  $total = $total + $a;\n}\n", code)
	})

	t.Run("developer variables", func(t *testing.T) {
		ws := block.NewWorkspace().Add(block.New("procedures_defnoreturn").Field("NAME", "f"))
		ws.DeveloperVariables = []string{"dbg"}
		code, err := gen.MustNew(php.New()).WorkspaceToCode(ws)
		require.NoError(t, err)
		assert.Equal(t, "$dbg = null;\n\nfunction f() {\n  global $dbg;\n}\n", code)
	})

	t.Run("return", func(t *testing.T) {
		def := block.New("procedures_defreturn").Field("NAME", "g").Value("RETURN", num("1"))
		code := mustGenerate(t, nil, def)
		assert.Equal(t, "function g() {\n  return 1;\n}\n", code)
	})

	t.Run("calls", func(t *testing.T) {
		code := mustGenerate(t, nil,
			set("r", block.New("procedures_callreturn").Field("NAME", "f").Param("x")),
		)
		assert.Equal(t, "$r = f(null);\n", body(code))

		code = mustGenerate(t, nil, block.New("procedures_callnoreturn").Field("NAME", "f"))
		assert.Equal(t, "f();\n", code)
	})

	t.Run("if return", func(t *testing.T) {
		ifReturn := block.New("procedures_ifreturn").WithReturn(true).Value("CONDITION", get("x")).Value("VALUE", num("1"))
		code := mustGenerate(t, nil, ifReturn)
		assert.Equal(t, "if ($x) {\n  return 1;\n}\n", body(code))
	})
}

func TestLoops(t *testing.T) {
	t.Run("repeat", func(t *testing.T) {
		loop := block.New("controls_repeat_ext").Value("TIMES", num("3")).Statement("DO", set("r", num("1")))
		code := mustGenerate(t, nil, loop)
		assert.Equal(t, "for ($count = 0; $count < 3; $count++) {\n  $r = 1;\n}\n", body(code))
	})

	t.Run("repeat expression", func(t *testing.T) {
		loop := block.New("controls_repeat_ext").Value("TIMES", arith("ADD", get("n"), num("1")))
		code := mustGenerate(t, nil, loop)
		assert.Equal(t, "$repeat_end = $n + 1;\nfor ($count = 0; $count < $repeat_end; $count++) {\n}\n", body(code))
	})

	t.Run("repeat count beyond int range", func(t *testing.T) {
		code := mustGenerate(t, nil, block.New("controls_repeat").Field("TIMES", "1e19"))
		assert.Equal(t, "for ($count = 0; $count < 10000000000000000000; $count++) {\n}\n", body(code))
	})

	t.Run("until", func(t *testing.T) {
		loop := block.New("controls_whileUntil").Field("MODE", "UNTIL").Value("BOOL", compare("EQ", get("x"), num("1")))
		code := mustGenerate(t, nil, loop)
		assert.Equal(t, "while (!($x == 1)) {\n}\n", body(code))
	})
}
