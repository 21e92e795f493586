package gen

// Operator vocabularies of the standard block set. Field values are parsed
// into these closed enums before a language looks up its operator text, so
// an unknown value fails with an UnsupportedOperationError instead of
// producing malformed code.

// CompareOp is the OP field of logic_compare.
type CompareOp int

// Comparison operators.
const (
	CompareEQ CompareOp = iota
	CompareNEQ
	CompareLT
	CompareLTE
	CompareGT
	CompareGTE
	numCompareOps
)

var compareOpNames = [numCompareOps]string{
	CompareEQ:  "EQ",
	CompareNEQ: "NEQ",
	CompareLT:  "LT",
	CompareLTE: "LTE",
	CompareGT:  "GT",
	CompareGTE: "GTE",
}

// String implements fmt.Stringer.
func (o CompareOp) String() string { return opName(o, compareOpNames[:]) }

// ParseCompareOp parses a logic_compare OP field.
func ParseCompareOp(s string) (CompareOp, error) {
	return parseOp[CompareOp]("compare", s, compareOpNames[:])
}

// LogicOp is the OP field of logic_operation.
type LogicOp int

// Logical operators.
const (
	LogicAnd LogicOp = iota
	LogicOr
	numLogicOps
)

var logicOpNames = [numLogicOps]string{
	LogicAnd: "AND",
	LogicOr:  "OR",
}

// String implements fmt.Stringer.
func (o LogicOp) String() string { return opName(o, logicOpNames[:]) }

// ParseLogicOp parses a logic_operation OP field.
func ParseLogicOp(s string) (LogicOp, error) {
	return parseOp[LogicOp]("logic", s, logicOpNames[:])
}

// ArithmeticOp is the OP field of math_arithmetic.
type ArithmeticOp int

// Arithmetic operators.
const (
	ArithmeticAdd ArithmeticOp = iota
	ArithmeticMinus
	ArithmeticMultiply
	ArithmeticDivide
	ArithmeticPower
	numArithmeticOps
)

var arithmeticOpNames = [numArithmeticOps]string{
	ArithmeticAdd:      "ADD",
	ArithmeticMinus:    "MINUS",
	ArithmeticMultiply: "MULTIPLY",
	ArithmeticDivide:   "DIVIDE",
	ArithmeticPower:    "POWER",
}

// String implements fmt.Stringer.
func (o ArithmeticOp) String() string { return opName(o, arithmeticOpNames[:]) }

// ParseArithmeticOp parses a math_arithmetic OP field.
func ParseArithmeticOp(s string) (ArithmeticOp, error) {
	return parseOp[ArithmeticOp]("arithmetic", s, arithmeticOpNames[:])
}

// MathOp is the OP field shared by math_single, math_round and math_trig.
type MathOp int

// Single-operand math operators.
const (
	MathNeg MathOp = iota
	MathAbs
	MathRoot
	MathLn
	MathLog10
	MathExp
	MathPow10
	MathRound
	MathRoundUp
	MathRoundDown
	MathSin
	MathCos
	MathTan
	MathAsin
	MathAcos
	MathAtan
	numMathOps
)

var mathOpNames = [numMathOps]string{
	MathNeg:       "NEG",
	MathAbs:       "ABS",
	MathRoot:      "ROOT",
	MathLn:        "LN",
	MathLog10:     "LOG10",
	MathExp:       "EXP",
	MathPow10:     "POW10",
	MathRound:     "ROUND",
	MathRoundUp:   "ROUNDUP",
	MathRoundDown: "ROUNDDOWN",
	MathSin:       "SIN",
	MathCos:       "COS",
	MathTan:       "TAN",
	MathAsin:      "ASIN",
	MathAcos:      "ACOS",
	MathAtan:      "ATAN",
}

// String implements fmt.Stringer.
func (o MathOp) String() string { return opName(o, mathOpNames[:]) }

// ParseMathOp parses a math_single, math_round or math_trig OP field.
func ParseMathOp(s string) (MathOp, error) {
	return parseOp[MathOp]("math", s, mathOpNames[:])
}

// MathConstant is the CONSTANT field of math_constant.
type MathConstant int

// Math constants.
const (
	ConstantPi MathConstant = iota
	ConstantE
	ConstantGoldenRatio
	ConstantSqrt2
	ConstantSqrt1_2
	ConstantInfinity
	numMathConstants
)

var mathConstantNames = [numMathConstants]string{
	ConstantPi:          "PI",
	ConstantE:           "E",
	ConstantGoldenRatio: "GOLDEN_RATIO",
	ConstantSqrt2:       "SQRT2",
	ConstantSqrt1_2:     "SQRT1_2",
	ConstantInfinity:    "INFINITY",
}

// String implements fmt.Stringer.
func (c MathConstant) String() string { return opName(c, mathConstantNames[:]) }

// ParseMathConstant parses a math_constant CONSTANT field.
func ParseMathConstant(s string) (MathConstant, error) {
	return parseOp[MathConstant]("constant", s, mathConstantNames[:])
}

// NumberProperty is the PROPERTY field of math_number_property.
type NumberProperty int

// Number properties.
const (
	PropertyEven NumberProperty = iota
	PropertyOdd
	PropertyPrime
	PropertyWhole
	PropertyPositive
	PropertyNegative
	PropertyDivisibleBy
	numNumberProperties
)

var numberPropertyNames = [numNumberProperties]string{
	PropertyEven:        "EVEN",
	PropertyOdd:         "ODD",
	PropertyPrime:       "PRIME",
	PropertyWhole:       "WHOLE",
	PropertyPositive:    "POSITIVE",
	PropertyNegative:    "NEGATIVE",
	PropertyDivisibleBy: "DIVISIBLE_BY",
}

// String implements fmt.Stringer.
func (p NumberProperty) String() string { return opName(p, numberPropertyNames[:]) }

// ParseNumberProperty parses a math_number_property PROPERTY field.
func ParseNumberProperty(s string) (NumberProperty, error) {
	return parseOp[NumberProperty]("number property", s, numberPropertyNames[:])
}

// ListOp is the OP field of math_on_list.
type ListOp int

// List aggregate operators.
const (
	ListSum ListOp = iota
	ListMin
	ListMax
	ListAverage
	ListMedian
	ListMode
	ListStdDev
	ListRandom
	numListOps
)

var listOpNames = [numListOps]string{
	ListSum:     "SUM",
	ListMin:     "MIN",
	ListMax:     "MAX",
	ListAverage: "AVERAGE",
	ListMedian:  "MEDIAN",
	ListMode:    "MODE",
	ListStdDev:  "STD_DEV",
	ListRandom:  "RANDOM",
}

// String implements fmt.Stringer.
func (o ListOp) String() string { return opName(o, listOpNames[:]) }

// ParseListOp parses a math_on_list OP field.
func ParseListOp(s string) (ListOp, error) {
	return parseOp[ListOp]("list", s, listOpNames[:])
}

// LoopMode is the MODE field of controls_whileUntil.
type LoopMode int

// Loop modes.
const (
	LoopWhile LoopMode = iota
	LoopUntil
	numLoopModes
)

var loopModeNames = [numLoopModes]string{
	LoopWhile: "WHILE",
	LoopUntil: "UNTIL",
}

// String implements fmt.Stringer.
func (m LoopMode) String() string { return opName(m, loopModeNames[:]) }

// ParseLoopMode parses a controls_whileUntil MODE field.
func ParseLoopMode(s string) (LoopMode, error) {
	return parseOp[LoopMode]("loop", s, loopModeNames[:])
}

// CompareOps returns every comparison operator.
func CompareOps() []CompareOp { return enumValues[CompareOp](numCompareOps) }

// LogicOps returns every logical operator.
func LogicOps() []LogicOp { return enumValues[LogicOp](numLogicOps) }

// ArithmeticOps returns every arithmetic operator.
func ArithmeticOps() []ArithmeticOp { return enumValues[ArithmeticOp](numArithmeticOps) }

// MathOps returns every single-operand math operator.
func MathOps() []MathOp { return enumValues[MathOp](numMathOps) }

// MathConstants returns every math constant.
func MathConstants() []MathConstant { return enumValues[MathConstant](numMathConstants) }

// NumberProperties returns every number property.
func NumberProperties() []NumberProperty { return enumValues[NumberProperty](numNumberProperties) }

// ListOps returns every list aggregate operator.
func ListOps() []ListOp { return enumValues[ListOp](numListOps) }

func enumValues[T ~int, N ~int](n N) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = T(i)
	}
	return out
}

func parseOp[T ~int](kind, s string, names []string) (T, error) {
	for i, name := range names {
		if name == s {
			return T(i), nil
		}
	}
	return 0, NewUnsupportedOperationError(kind, s)
}

func opName[T ~int](v T, names []string) string {
	if int(v) >= 0 && int(v) < len(names) {
		return names[v]
	}
	return "UNKNOWN"
}
