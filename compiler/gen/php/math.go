package php

import (
	"math"
	"strings"

	"github.com/syssam/blockgen/block"
	"github.com/syssam/blockgen/compiler/gen"
)

func registerMath(r *gen.Registry) {
	r.Value("math_number", mathNumber)
	r.Value("math_arithmetic", mathArithmetic)
	r.Value("math_single", mathSingle)
	r.MustAlias("math_round", "math_single")
	r.MustAlias("math_trig", "math_single")
	r.Value("math_constant", mathConstant)
	r.Value("math_number_property", mathNumberProperty)
	r.Statement("math_change", mathChange)
	r.Value("math_on_list", mathOnList)
	r.Value("math_modulo", mathModulo)
	r.Value("math_constrain", mathConstrain)
	r.Value("math_random_int", mathRandomInt)
	r.Value("math_random_float", mathRandomFloat)
	r.Value("math_atan2", mathAtan2)
}

func mathNumber(b block.Block, _ *gen.Pass) (gen.Expr, error) {
	v, err := gen.ParseNumber(b.FieldValue("NUM"))
	if err != nil {
		return gen.Expr{}, err
	}
	switch {
	case math.IsInf(v, 1):
		return gen.E("INF", OrderAtomic), nil
	case math.IsInf(v, -1):
		return gen.E("-INF", OrderUnary), nil
	case v < 0:
		return gen.E(gen.FormatNumber(v), OrderUnary), nil
	}
	return gen.E(gen.FormatNumber(v), OrderAtomic), nil
}

var arithmeticOps = map[gen.ArithmeticOp]gen.Binary{
	gen.ArithmeticAdd:      gen.LeftAssoc(" + ", OrderAdditive),
	gen.ArithmeticMinus:    gen.LeftAssoc(" - ", OrderAdditive),
	gen.ArithmeticMultiply: gen.LeftAssoc(" * ", OrderMultiplicative),
	gen.ArithmeticDivide:   gen.LeftAssoc(" / ", OrderMultiplicative),
	gen.ArithmeticPower:    gen.RightAssoc(" ** ", OrderPower),
}

func mathArithmetic(b block.Block, p *gen.Pass) (gen.Expr, error) {
	op, err := gen.ParseArithmeticOp(b.FieldValue("OP"))
	if err != nil {
		return gen.Expr{}, err
	}
	return binary(b, p, arithmeticOps[op], "A", "B", "0"), nil
}

// singleFuncs holds the operators that render as one call. The argument
// of the trigonometric ones is converted from degrees inside the call.
var singleFuncs = map[gen.MathOp]string{
	gen.MathAbs:       "abs(%s)",
	gen.MathRoot:      "sqrt(%s)",
	gen.MathLn:        "log(%s)",
	gen.MathExp:       "exp(%s)",
	gen.MathPow10:     "pow(10, %s)",
	gen.MathRound:     "round(%s)",
	gen.MathRoundUp:   "ceil(%s)",
	gen.MathRoundDown: "floor(%s)",
	gen.MathSin:       "sin(%s / 180 * pi())",
	gen.MathCos:       "cos(%s / 180 * pi())",
	gen.MathTan:       "tan(%s / 180 * pi())",
}

// scaledFuncs hold the operators whose result is divided or scaled
// after the call.
var scaledFuncs = map[gen.MathOp]string{
	gen.MathLog10: "log(%s) / log(10)",
	gen.MathAsin:  "asin(%s) / pi() * 180",
	gen.MathAcos:  "acos(%s) / pi() * 180",
	gen.MathAtan:  "atan(%s) / pi() * 180",
}

func mathSingle(b block.Block, p *gen.Pass) (gen.Expr, error) {
	op, err := gen.ParseMathOp(b.FieldValue("OP"))
	if err != nil {
		return gen.Expr{}, err
	}
	if op == gen.MathNeg {
		arg := p.ValueOr(b, "NUM", OrderUnary, "0")
		if strings.HasPrefix(arg, "-") {
			arg = " " + arg
		}
		return gen.E("-"+arg, OrderUnary), nil
	}
	argOrder := OrderNone
	switch op {
	case gen.MathSin, gen.MathCos, gen.MathTan:
		argOrder = OrderMultiplicative
	}
	arg := p.ValueOr(b, "NUM", argOrder, "0")
	if tmpl, ok := singleFuncs[op]; ok {
		return gen.E(strings.Replace(tmpl, "%s", arg, 1), OrderFunctionCall), nil
	}
	if tmpl, ok := scaledFuncs[op]; ok {
		return gen.E(strings.Replace(tmpl, "%s", arg, 1), OrderMultiplicative), nil
	}
	return gen.Expr{}, gen.NewUnsupportedOperationError("math", op.String())
}

var constants = map[gen.MathConstant]gen.Expr{
	gen.ConstantPi:          gen.E("M_PI", OrderAtomic),
	gen.ConstantE:           gen.E("M_E", OrderAtomic),
	gen.ConstantGoldenRatio: gen.E("(1 + sqrt(5)) / 2", OrderMultiplicative),
	gen.ConstantSqrt2:       gen.E("M_SQRT2", OrderAtomic),
	gen.ConstantSqrt1_2:     gen.E("M_SQRT1_2", OrderAtomic),
	gen.ConstantInfinity:    gen.E("INF", OrderAtomic),
}

func mathConstant(b block.Block, _ *gen.Pass) (gen.Expr, error) {
	c, err := gen.ParseMathConstant(b.FieldValue("CONSTANT"))
	if err != nil {
		return gen.Expr{}, err
	}
	return constants[c], nil
}

const isPrimeFunc = `
function {{FUNCTION_NAME}}($n) {
  // https://en.wikipedia.org/wiki/Primality_test#Naive_methods
  if ($n == 2 || $n == 3) {
    return true;
  }
  // False if n is NaN, negative, is 1, or not whole.
  // And false if n is divisible by 2 or 3.
  if (!is_numeric($n) || $n <= 1 || $n % 1 != 0 || $n % 2 == 0 || $n % 3 == 0) {
    return false;
  }
  // Check all the numbers of form 6k +/- 1, up to sqrt(n).
  for ($x = 6; $x <= sqrt($n) + 1; $x += 6) {
    if ($n % ($x - 1) == 0 || $n % ($x + 1) == 0) {
      return false;
    }
  }
  return true;
}
`

type property struct {
	prefix, suffix string
	input, output  gen.Order
}

var properties = map[gen.NumberProperty]property{
	gen.PropertyEven:        {"", " % 2 == 0", OrderMultiplicative, OrderEquality},
	gen.PropertyOdd:         {"", " % 2 == 1", OrderMultiplicative, OrderEquality},
	gen.PropertyWhole:       {"is_int(", ")", OrderNone, OrderFunctionCall},
	gen.PropertyPositive:    {"", " > 0", OrderRelational.Tighter(), OrderRelational},
	gen.PropertyNegative:    {"", " < 0", OrderRelational.Tighter(), OrderRelational},
	gen.PropertyDivisibleBy: {"", "", OrderMultiplicative, OrderEquality},
	gen.PropertyPrime:       {"", "", OrderNone, OrderFunctionCall},
}

func mathNumberProperty(b block.Block, p *gen.Pass) (gen.Expr, error) {
	prop, err := gen.ParseNumberProperty(b.FieldValue("PROPERTY"))
	if err != nil {
		return gen.Expr{}, err
	}
	check := properties[prop]
	number := p.ValueOr(b, "NUMBER_TO_CHECK", check.input, "0")
	switch prop {
	case gen.PropertyPrime:
		name := p.ProvideFunction("math_isPrime", isPrimeFunc)
		return gen.E(name+"("+number+")", check.output), nil
	case gen.PropertyDivisibleBy:
		divisor := p.ValueOr(b, "DIVISOR", OrderMultiplicative.Tighter(), "0")
		if divisor == "0" {
			return gen.E("false", OrderAtomic), nil
		}
		return gen.E(number+" % "+divisor+" == 0", check.output), nil
	}
	return gen.E(check.prefix+number+check.suffix, check.output), nil
}

func mathChange(b block.Block, p *gen.Pass) (string, error) {
	delta := p.ValueOr(b, "DELTA", OrderAssignment, "0")
	return p.VariableName(b.FieldValue("VAR")) + " += " + delta + ";\n", nil
}

// listBuiltins are the aggregates PHP provides.
var listBuiltins = map[gen.ListOp]string{
	gen.ListSum: "array_sum",
	gen.ListMin: "min",
	gen.ListMax: "max",
}

var listFuncs = map[gen.ListOp]struct{ key, tmpl string }{
	gen.ListAverage: {"math_mean", `
function {{FUNCTION_NAME}}($myList) {
  return array_sum($myList) / count($myList);
}
`},
	gen.ListMedian: {"math_median", `
function {{FUNCTION_NAME}}($arr) {
  sort($arr, SORT_NUMERIC);
  return (count($arr) % 2) ? $arr[floor(count($arr) / 2)] :
      ($arr[floor(count($arr) / 2)] + $arr[floor(count($arr) / 2) - 1]) / 2;
}
`},
	gen.ListMode: {"math_modes", `
function {{FUNCTION_NAME}}($values) {
  if (empty($values)) return array();
  $counts = array_count_values($values);
  arsort($counts); // Sort counts in descending order
  $modes = array_keys($counts, current($counts), true);
  return $modes;
}
`},
	gen.ListStdDev: {"math_standard_deviation", `
function {{FUNCTION_NAME}}($numbers) {
  $n = count($numbers);
  if (!$n) return null;
  $mean = array_sum($numbers) / count($numbers);
  foreach($numbers as $key => $num) $devs[$key] = pow($num - $mean, 2);
  return sqrt(array_sum($devs) / (count($devs) - 1));
}
`},
	gen.ListRandom: {"math_random_list", `
function {{FUNCTION_NAME}}($list) {
  $x = rand(0, count($list)-1);
  return $list[$x];
}
`},
}

func mathOnList(b block.Block, p *gen.Pass) (gen.Expr, error) {
	op, err := gen.ParseListOp(b.FieldValue("OP"))
	if err != nil {
		return gen.Expr{}, err
	}
	list := p.ValueOr(b, "LIST", OrderNone, "array()")
	if name, ok := listBuiltins[op]; ok {
		return gen.E(name+"("+list+")", OrderFunctionCall), nil
	}
	fn, ok := listFuncs[op]
	if !ok {
		return gen.Expr{}, gen.NewUnsupportedOperationError("list", op.String())
	}
	return gen.E(p.ProvideFunction(fn.key, fn.tmpl)+"("+list+")", OrderFunctionCall), nil
}

func mathModulo(b block.Block, p *gen.Pass) (gen.Expr, error) {
	return binary(b, p, gen.LeftAssoc(" % ", OrderMultiplicative), "DIVIDEND", "DIVISOR", "0"), nil
}

func mathConstrain(b block.Block, p *gen.Pass) (gen.Expr, error) {
	value := p.ValueOr(b, "VALUE", OrderNone, "0")
	low := p.ValueOr(b, "LOW", OrderNone, "0")
	high := p.ValueOr(b, "HIGH", OrderNone, "INF")
	return gen.E("min(max("+value+", "+low+"), "+high+")", OrderFunctionCall), nil
}

const randomIntFunc = `
function {{FUNCTION_NAME}}($a, $b) {
  if ($a > $b) {
    return rand($b, $a);
  }
  return rand($a, $b);
}
`

func mathRandomInt(b block.Block, p *gen.Pass) (gen.Expr, error) {
	from := p.ValueOr(b, "FROM", OrderNone, "0")
	to := p.ValueOr(b, "TO", OrderNone, "0")
	name := p.ProvideFunction("math_random_int", randomIntFunc)
	return gen.E(name+"("+from+", "+to+")", OrderFunctionCall), nil
}

func mathRandomFloat(block.Block, *gen.Pass) (gen.Expr, error) {
	return gen.E("(float)rand()/(float)getrandmax()", OrderMultiplicative), nil
}

func mathAtan2(b block.Block, p *gen.Pass) (gen.Expr, error) {
	x := p.ValueOr(b, "X", OrderNone, "0")
	y := p.ValueOr(b, "Y", OrderNone, "0")
	return gen.E("atan2("+y+", "+x+") / pi() * 180", OrderMultiplicative), nil
}
