package lua

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
		return gen.E("math.huge", OrderHigh), nil
	case math.IsInf(v, -1):
		return gen.E("-math.huge", OrderUnary), nil
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
	gen.ArithmeticPower:    gen.RightAssoc(" ^ ", OrderExponentiation),
}

func mathArithmetic(b block.Block, p *gen.Pass) (gen.Expr, error) {
	op, err := gen.ParseArithmeticOp(b.FieldValue("OP"))
	if err != nil {
		return gen.Expr{}, err
	}
	return binary(b, p, arithmeticOps[op], "A", "B", "0"), nil
}

// singleFuncs maps single-operand operators to a call template.
var singleFuncs = map[gen.MathOp]string{
	gen.MathAbs:       "math.abs(%s)",
	gen.MathRoot:      "math.sqrt(%s)",
	gen.MathLn:        "math.log(%s)",
	gen.MathLog10:     "math.log(%s, 10)",
	gen.MathExp:       "math.exp(%s)",
	gen.MathPow10:     "math.pow(10, %s)",
	gen.MathRoundUp:   "math.ceil(%s)",
	gen.MathRoundDown: "math.floor(%s)",
	gen.MathSin:       "math.sin(math.rad(%s))",
	gen.MathCos:       "math.cos(math.rad(%s))",
	gen.MathTan:       "math.tan(math.rad(%s))",
	gen.MathAsin:      "math.deg(math.asin(%s))",
	gen.MathAcos:      "math.deg(math.acos(%s))",
	gen.MathAtan:      "math.deg(math.atan(%s))",
}

func mathSingle(b block.Block, p *gen.Pass) (gen.Expr, error) {
	op, err := gen.ParseMathOp(b.FieldValue("OP"))
	if err != nil {
		return gen.Expr{}, err
	}
	switch op {
	case gen.MathNeg:
		return gen.E("-"+spaceNegative(p.ValueOr(b, "NUM", OrderUnary, "0")), OrderUnary), nil
	case gen.MathRound:
		// Lua has no round function.
		return gen.E("math.floor("+p.ValueOr(b, "NUM", OrderAdditive, "0")+" + .5)", OrderHigh), nil
	}
	tmpl, ok := singleFuncs[op]
	if !ok {
		return gen.Expr{}, gen.NewUnsupportedOperationError("math", op.String())
	}
	return gen.E(call(tmpl, p.ValueOr(b, "NUM", OrderNone, "0")), OrderHigh), nil
}

var constants = map[gen.MathConstant]gen.Expr{
	gen.ConstantPi:          gen.E("math.pi", OrderHigh),
	gen.ConstantE:           gen.E("math.exp(1)", OrderHigh),
	gen.ConstantGoldenRatio: gen.E("(1 + math.sqrt(5)) / 2", OrderMultiplicative),
	gen.ConstantSqrt2:       gen.E("math.sqrt(2)", OrderHigh),
	gen.ConstantSqrt1_2:     gen.E("math.sqrt(1 / 2)", OrderHigh),
	gen.ConstantInfinity:    gen.E("math.huge", OrderHigh),
}

func mathConstant(b block.Block, _ *gen.Pass) (gen.Expr, error) {
	c, err := gen.ParseMathConstant(b.FieldValue("CONSTANT"))
	if err != nil {
		return gen.Expr{}, err
	}
	return constants[c], nil
}

const isPrimeFunc = `
function {{FUNCTION_NAME}}(n)
  -- https://en.wikipedia.org/wiki/Primality_test#Naive_methods
  if n == 2 or n == 3 then
    return true
  end
  -- False if n is NaN, negative, is 1, or not whole.
  -- And false if n is divisible by 2 or 3.
  if not(n > 1) or n % 1 ~= 0 or n % 2 == 0 or n % 3 == 0 then
    return false
  end
  -- Check all the numbers of form 6k +/- 1, up to sqrt(n).
  for x = 6, math.sqrt(n) + 1.5, 6 do
    if n % (x - 1) == 0 or n % (x + 1) == 0 then
      return false
    end
  end
  return true
end
`

// propertyChecks maps the one-line number properties to the test
// appended to the number.
var propertyChecks = map[gen.NumberProperty]struct {
	suffix string
	input  gen.Order
	result gen.Order
}{
	gen.PropertyEven:     {" % 2 == 0", OrderMultiplicative, OrderRelational},
	gen.PropertyOdd:      {" % 2 == 1", OrderMultiplicative, OrderRelational},
	gen.PropertyWhole:    {" % 1 == 0", OrderMultiplicative, OrderRelational},
	gen.PropertyPositive: {" > 0", OrderRelational.Tighter(), OrderRelational},
	gen.PropertyNegative: {" < 0", OrderRelational.Tighter(), OrderRelational},
}

func mathNumberProperty(b block.Block, p *gen.Pass) (gen.Expr, error) {
	prop, err := gen.ParseNumberProperty(b.FieldValue("PROPERTY"))
	if err != nil {
		return gen.Expr{}, err
	}
	switch prop {
	case gen.PropertyPrime:
		name := p.ProvideFunction("math_isPrime", isPrimeFunc)
		return gen.E(name+"("+p.ValueOr(b, "NUMBER_TO_CHECK", OrderNone, "0")+")", OrderHigh), nil
	case gen.PropertyDivisibleBy:
		number := p.ValueOr(b, "NUMBER_TO_CHECK", OrderMultiplicative, "0")
		divisor := p.ValueOr(b, "DIVISOR", OrderMultiplicative.Tighter(), "0")
		if divisor == "0" {
			return gen.E("false", OrderAtomic), nil
		}
		return gen.E(number+" % "+divisor+" == 0", OrderRelational), nil
	}
	check := propertyChecks[prop]
	return gen.E(p.ValueOr(b, "NUMBER_TO_CHECK", check.input, "0")+check.suffix, check.result), nil
}

func mathChange(b block.Block, p *gen.Pass) (string, error) {
	delta := p.ValueOr(b, "DELTA", OrderAdditive.Tighter(), "0")
	name := p.VariableName(b.FieldValue("VAR"))
	return name + " = " + name + " + " + delta + "\n", nil
}

// listFuncs holds the helpers of the list aggregates Lua lacks.
var listFuncs = map[gen.ListOp]struct{ key, tmpl string }{
	gen.ListSum: {"math_sum", `
function {{FUNCTION_NAME}}(t)
  local result = 0
  for _, v in ipairs(t) do
    result = result + v
  end
  return result
end
`},
	gen.ListMin: {"math_min", `
function {{FUNCTION_NAME}}(t)
  if #t == 0 then
    return 0
  end
  local result = math.huge
  for _, v in ipairs(t) do
    if v < result then
      result = v
    end
  end
  return result
end
`},
	gen.ListMax: {"math_max", `
function {{FUNCTION_NAME}}(t)
  if #t == 0 then
    return 0
  end
  local result = -math.huge
  for _, v in ipairs(t) do
    if v > result then
      result = v
    end
  end
  return result
end
`},
	gen.ListAverage: {"math_average", `
function {{FUNCTION_NAME}}(t)
  if #t == 0 then
    return 0
  end
  local sum = 0
  for _, v in ipairs(t) do
    sum = sum + v
  end
  return sum / #t
end
`},
	gen.ListMedian: {"math_median", `
function {{FUNCTION_NAME}}(t)
  -- Source: http://lua-users.org/wiki/SimpleStats
  if #t == 0 then
    return 0
  end
  local temp = {}
  for _, v in ipairs(t) do
    if type(v) == 'number' then
      table.insert(temp, v)
    end
  end
  table.sort(temp)
  if #temp % 2 == 0 then
    return (temp[#temp / 2] + temp[(#temp / 2) + 1]) / 2
  else
    return temp[math.ceil(#temp / 2)]
  end
end
`},
	gen.ListMode: {"math_modes", `
function {{FUNCTION_NAME}}(t)
  -- Source: http://lua-users.org/wiki/SimpleStats
  local counts = {}
  for _, v in ipairs(t) do
    if counts[v] == nil then
      counts[v] = 1
    else
      counts[v] = counts[v] + 1
    end
  end
  local biggestCount = 0
  for _, v in pairs(counts) do
    if v > biggestCount then
      biggestCount = v
    end
  end
  local temp = {}
  for k, v in pairs(counts) do
    if v == biggestCount then
      table.insert(temp, k)
    end
  end
  return temp
end
`},
	gen.ListStdDev: {"math_standard_deviation", `
function {{FUNCTION_NAME}}(t)
  local m
  local vm
  local total = 0
  local count = 0
  local result
  m = #t == 0 and 0 or ` + "{{MEAN}}" + `(t)
  for _, v in ipairs(t) do
    if type(v) == 'number' then
      vm = v - m
      total = total + (vm * vm)
      count = count + 1
    end
  end
  result = math.sqrt(total / (count-1))
  return result
end
`},
	gen.ListRandom: {"math_random_list", `
function {{FUNCTION_NAME}}(t)
  if #t == 0 then
    return nil
  end
  return t[math.random(#t)]
end
`},
}

func mathOnList(b block.Block, p *gen.Pass) (gen.Expr, error) {
	op, err := gen.ParseListOp(b.FieldValue("OP"))
	if err != nil {
		return gen.Expr{}, err
	}
	fn, ok := listFuncs[op]
	if !ok {
		return gen.Expr{}, gen.NewUnsupportedOperationError("list", op.String())
	}
	tmpl := fn.tmpl
	if op == gen.ListStdDev {
		mean := listFuncs[gen.ListAverage]
		tmpl = strings.ReplaceAll(tmpl, "{{MEAN}}", p.ProvideFunction(mean.key, mean.tmpl))
	}
	name := p.ProvideFunction(fn.key, tmpl)
	return gen.E(name+"("+p.ValueOr(b, "LIST", OrderNone, "{}")+")", OrderHigh), nil
}

func mathModulo(b block.Block, p *gen.Pass) (gen.Expr, error) {
	return binary(b, p, gen.LeftAssoc(" % ", OrderMultiplicative), "DIVIDEND", "DIVISOR", "0"), nil
}

func mathConstrain(b block.Block, p *gen.Pass) (gen.Expr, error) {
	value := p.ValueOr(b, "VALUE", OrderNone, "0")
	low := p.ValueOr(b, "LOW", OrderNone, "-math.huge")
	high := p.ValueOr(b, "HIGH", OrderNone, "math.huge")
	return gen.E("math.min(math.max("+value+", "+low+"), "+high+")", OrderHigh), nil
}

func mathRandomInt(b block.Block, p *gen.Pass) (gen.Expr, error) {
	from := p.ValueOr(b, "FROM", OrderNone, "0")
	to := p.ValueOr(b, "TO", OrderNone, "0")
	return gen.E("math.random("+from+", "+to+")", OrderHigh), nil
}

func mathRandomFloat(block.Block, *gen.Pass) (gen.Expr, error) {
	return gen.E("math.random()", OrderHigh), nil
}

func mathAtan2(b block.Block, p *gen.Pass) (gen.Expr, error) {
	x := p.ValueOr(b, "X", OrderNone, "0")
	y := p.ValueOr(b, "Y", OrderNone, "0")
	return gen.E("math.deg(math.atan2("+y+", "+x+"))", OrderHigh), nil
}

// spaceNegative keeps a negated negative operand from forming "--",
// which starts a comment in Lua.
func spaceNegative(arg string) string {
	if strings.HasPrefix(arg, "-") {
		return " " + arg
	}
	return arg
}

func call(tmpl, arg string) string {
	return strings.Replace(tmpl, "%s", arg, 1)
}
