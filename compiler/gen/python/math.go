package python

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
		return gen.E(`float("inf")`, OrderFunctionCall), nil
	case math.IsInf(v, -1):
		return gen.E(`-float("inf")`, OrderUnarySign), nil
	case v < 0:
		return gen.E(gen.FormatNumber(v), OrderUnarySign), nil
	}
	return gen.E(gen.FormatNumber(v), OrderAtomic), nil
}

var arithmeticOps = map[gen.ArithmeticOp]gen.Binary{
	gen.ArithmeticAdd:      gen.LeftAssoc(" + ", OrderAdditive),
	gen.ArithmeticMinus:    gen.LeftAssoc(" - ", OrderAdditive),
	gen.ArithmeticMultiply: gen.LeftAssoc(" * ", OrderMultiplicative),
	gen.ArithmeticDivide:   gen.LeftAssoc(" / ", OrderMultiplicative),
	gen.ArithmeticPower:    gen.RightAssoc(" ** ", OrderExponentiation),
}

func mathArithmetic(b block.Block, p *gen.Pass) (gen.Expr, error) {
	op, err := gen.ParseArithmeticOp(b.FieldValue("OP"))
	if err != nil {
		return gen.Expr{}, err
	}
	return binary(b, p, arithmeticOps[op], "A", "B", "0"), nil
}

var singleFuncs = map[gen.MathOp]string{
	gen.MathAbs:       "math.fabs(%s)",
	gen.MathRoot:      "math.sqrt(%s)",
	gen.MathLn:        "math.log(%s)",
	gen.MathLog10:     "math.log10(%s)",
	gen.MathExp:       "math.exp(%s)",
	gen.MathPow10:     "math.pow(10, %s)",
	gen.MathRound:     "round(%s)",
	gen.MathRoundUp:   "math.ceil(%s)",
	gen.MathRoundDown: "math.floor(%s)",
	gen.MathSin:       "math.sin(%s / 180.0 * math.pi)",
	gen.MathCos:       "math.cos(%s / 180.0 * math.pi)",
	gen.MathTan:       "math.tan(%s / 180.0 * math.pi)",
}

// inverseTrig converts the result of the inverse functions to degrees.
var inverseTrig = map[gen.MathOp]string{
	gen.MathAsin: "math.asin(%s) / math.pi * 180",
	gen.MathAcos: "math.acos(%s) / math.pi * 180",
	gen.MathAtan: "math.atan(%s) / math.pi * 180",
}

func mathSingle(b block.Block, p *gen.Pass) (gen.Expr, error) {
	op, err := gen.ParseMathOp(b.FieldValue("OP"))
	if err != nil {
		return gen.Expr{}, err
	}
	if op == gen.MathNeg {
		return gen.E("-"+p.ValueOr(b, "NUM", OrderUnarySign, "0"), OrderUnarySign), nil
	}
	addImports(p, importMath)
	argOrder := OrderNone
	switch op {
	case gen.MathSin, gen.MathCos, gen.MathTan:
		argOrder = OrderMultiplicative
	}
	arg := p.ValueOr(b, "NUM", argOrder, "0")
	if tmpl, ok := singleFuncs[op]; ok {
		return gen.E(strings.Replace(tmpl, "%s", arg, 1), OrderFunctionCall), nil
	}
	if tmpl, ok := inverseTrig[op]; ok {
		return gen.E(strings.Replace(tmpl, "%s", arg, 1), OrderMultiplicative), nil
	}
	return gen.Expr{}, gen.NewUnsupportedOperationError("math", op.String())
}

var constants = map[gen.MathConstant]gen.Expr{
	gen.ConstantPi:          gen.E("math.pi", OrderMember),
	gen.ConstantE:           gen.E("math.e", OrderMember),
	gen.ConstantGoldenRatio: gen.E("(1 + math.sqrt(5)) / 2", OrderMultiplicative),
	gen.ConstantSqrt2:       gen.E("math.sqrt(2)", OrderMember),
	gen.ConstantSqrt1_2:     gen.E("math.sqrt(1.0 / 2)", OrderMember),
	gen.ConstantInfinity:    gen.E("float('inf')", OrderAtomic),
}

func mathConstant(b block.Block, p *gen.Pass) (gen.Expr, error) {
	c, err := gen.ParseMathConstant(b.FieldValue("CONSTANT"))
	if err != nil {
		return gen.Expr{}, err
	}
	if c != gen.ConstantInfinity {
		addImports(p, importMath)
	}
	return constants[c], nil
}

const isPrimeFunc = `
def {{FUNCTION_NAME}}(n):
  # https://en.wikipedia.org/wiki/Primality_test#Naive_methods
  # If n is not a number but a string, try parsing it.
  if not isinstance(n, Number):
    try:
      n = float(n)
    except:
      return False
  if n == 2 or n == 3:
    return True
  # False if n is negative, is 1, or not whole, or if n is divisible by 2 or 3.
  if n <= 1 or n % 1 != 0 or n % 2 == 0 or n % 3 == 0:
    return False
  # Check all the numbers of form 6k +/- 1, up to sqrt(n).
  for x in range(6, int(math.sqrt(n)) + 2, 6):
    if n % (x - 1) == 0 or n % (x + 1) == 0:
      return False
  return True
`

var propertyChecks = map[gen.NumberProperty]struct {
	suffix string
	input  gen.Order
}{
	gen.PropertyEven:     {" % 2 == 0", OrderMultiplicative},
	gen.PropertyOdd:      {" % 2 == 1", OrderMultiplicative},
	gen.PropertyWhole:    {" % 1 == 0", OrderMultiplicative},
	gen.PropertyPositive: {" > 0", OrderRelational.Tighter()},
	gen.PropertyNegative: {" < 0", OrderRelational.Tighter()},
}

func mathNumberProperty(b block.Block, p *gen.Pass) (gen.Expr, error) {
	prop, err := gen.ParseNumberProperty(b.FieldValue("PROPERTY"))
	if err != nil {
		return gen.Expr{}, err
	}
	switch prop {
	case gen.PropertyPrime:
		addImports(p, importMath, importNumber)
		name := p.ProvideFunction("math_isPrime", isPrimeFunc)
		return gen.E(name+"("+p.ValueOr(b, "NUMBER_TO_CHECK", OrderNone, "0")+")", OrderFunctionCall), nil
	case gen.PropertyDivisibleBy:
		number := p.ValueOr(b, "NUMBER_TO_CHECK", OrderMultiplicative, "0")
		divisor := p.ValueOr(b, "DIVISOR", OrderMultiplicative.Tighter(), "0")
		if divisor == "0" {
			return gen.E("False", OrderAtomic), nil
		}
		return gen.E(number+" % "+divisor+" == 0", OrderRelational), nil
	}
	check := propertyChecks[prop]
	return gen.E(p.ValueOr(b, "NUMBER_TO_CHECK", check.input, "0")+check.suffix, OrderRelational), nil
}

// mathChange treats a variable that does not hold a number as 0.
func mathChange(b block.Block, p *gen.Pass) (string, error) {
	addImports(p, importNumber)
	delta := p.ValueOr(b, "DELTA", OrderAdditive.Tighter(), "0")
	name := p.VariableName(b.FieldValue("VAR"))
	return name + " = (" + name + " if isinstance(" + name + ", Number) else 0) + " + delta + "\n", nil
}

var listBuiltins = map[gen.ListOp]string{
	gen.ListSum: "sum",
	gen.ListMin: "min",
	gen.ListMax: "max",
}

var listFuncs = map[gen.ListOp]struct {
	key, tmpl string
	imports   []string
}{
	gen.ListAverage: {"math_mean", `
def {{FUNCTION_NAME}}(myList):
  localList = [e for e in myList if isinstance(e, Number)]
  if not localList: return
  return float(sum(localList)) / len(localList)
`, []string{importNumber}},
	gen.ListMedian: {"math_median", `
def {{FUNCTION_NAME}}(myList):
  localList = sorted([e for e in myList if isinstance(e, Number)])
  if not localList: return
  if len(localList) % 2 == 0:
    return (localList[len(localList) // 2 - 1] + localList[len(localList) // 2]) / 2.0
  else:
    return localList[(len(localList) - 1) // 2]
`, []string{importNumber}},
	gen.ListMode: {"math_modes", `
def {{FUNCTION_NAME}}(some_list):
  modes = []
  # Using a lists of [item, count] to keep count rather than dict
  # to avoid "unhashable" errors when the counted item is itself a list or dict.
  counts = []
  maxCount = 1
  for item in some_list:
    found = False
    for count in counts:
      if count[0] == item:
        count[1] += 1
        maxCount = max(maxCount, count[1])
        found = True
    if not found:
      counts.append([item, 1])
  for counted_item, item_count in counts:
    if item_count == maxCount:
      modes.append(counted_item)
  return modes
`, nil},
	gen.ListStdDev: {"math_standard_deviation", `
def {{FUNCTION_NAME}}(numbers):
  n = len(numbers)
  if n == 0: return
  mean = float(sum(numbers)) / n
  variance = sum((x - mean) ** 2 for x in numbers) / n
  return math.sqrt(variance)
`, []string{importMath}},
}

func mathOnList(b block.Block, p *gen.Pass) (gen.Expr, error) {
	op, err := gen.ParseListOp(b.FieldValue("OP"))
	if err != nil {
		return gen.Expr{}, err
	}
	list := p.ValueOr(b, "LIST", OrderNone, "[]")
	if name, ok := listBuiltins[op]; ok {
		return gen.E(name+"("+list+")", OrderFunctionCall), nil
	}
	if op == gen.ListRandom {
		addImports(p, importRandom)
		return gen.E("random.choice("+list+")", OrderFunctionCall), nil
	}
	fn, ok := listFuncs[op]
	if !ok {
		return gen.Expr{}, gen.NewUnsupportedOperationError("list", op.String())
	}
	addImports(p, fn.imports...)
	return gen.E(p.ProvideFunction(fn.key, fn.tmpl)+"("+list+")", OrderFunctionCall), nil
}

func mathModulo(b block.Block, p *gen.Pass) (gen.Expr, error) {
	return binary(b, p, gen.LeftAssoc(" % ", OrderMultiplicative), "DIVIDEND", "DIVISOR", "0"), nil
}

func mathConstrain(b block.Block, p *gen.Pass) (gen.Expr, error) {
	value := p.ValueOr(b, "VALUE", OrderNone, "0")
	low := p.ValueOr(b, "LOW", OrderNone, "0")
	high := p.ValueOr(b, "HIGH", OrderNone, "float('inf')")
	return gen.E("min(max("+value+", "+low+"), "+high+")", OrderFunctionCall), nil
}

func mathRandomInt(b block.Block, p *gen.Pass) (gen.Expr, error) {
	addImports(p, importRandom)
	from := p.ValueOr(b, "FROM", OrderNone, "0")
	to := p.ValueOr(b, "TO", OrderNone, "0")
	return gen.E("random.randint("+from+", "+to+")", OrderFunctionCall), nil
}

func mathRandomFloat(_ block.Block, p *gen.Pass) (gen.Expr, error) {
	addImports(p, importRandom)
	return gen.E("random.random()", OrderFunctionCall), nil
}

func mathAtan2(b block.Block, p *gen.Pass) (gen.Expr, error) {
	addImports(p, importMath)
	x := p.ValueOr(b, "X", OrderNone, "0")
	y := p.ValueOr(b, "Y", OrderNone, "0")
	return gen.E("math.atan2("+y+", "+x+") / math.pi * 180", OrderMultiplicative), nil
}
