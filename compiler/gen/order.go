package gen

// Order is an operator precedence tier. Lower values bind tighter.
//
// Every language declares its own tiers between OrderAtomic and OrderNone;
// the engine only compares them.
type Order int

const (
	// OrderAtomic is the tier of literals, identifiers and anything
	// already enclosed in brackets.
	OrderAtomic Order = 0
	// OrderNone is the wildcard requirement: the caller never needs
	// parentheses, e.g. a function argument or a statement expression.
	OrderNone Order = 99
)

// Tighter returns the requirement that admits only expressions binding
// strictly tighter than o. It is used for operands whose grouping would
// change if an expression of the same tier was placed there unwrapped,
// such as the right operand of a left-associative operator.
func (o Order) Tighter() Order {
	return o - 1
}

// NeedsParens reports whether an expression produced at tier inner must be
// parenthesized where the caller requires tier outer.
func NeedsParens(inner, outer Order) bool {
	return outer != OrderNone && inner > outer
}

// Expr is the result of a value rule: the rendered code and the tier of
// its outermost operator.
type Expr struct {
	Code  string
	Order Order
}

// E is shorthand for constructing an Expr.
func E(code string, order Order) Expr {
	return Expr{Code: code, Order: order}
}

// Binary describes a binary operator of a language: its text and the
// tiers requested for each operand.
type Binary struct {
	Op    string
	Order Order
	Left  Order
	Right Order
}

// LeftAssoc returns a left-associative operator at tier o.
func LeftAssoc(op string, o Order) Binary {
	return Binary{Op: op, Order: o, Left: o, Right: o.Tighter()}
}

// RightAssoc returns a right-associative operator at tier o.
func RightAssoc(op string, o Order) Binary {
	return Binary{Op: op, Order: o, Left: o.Tighter(), Right: o}
}

// NonAssoc returns an operator at tier o that cannot chain with itself.
func NonAssoc(op string, o Order) Binary {
	return Binary{Op: op, Order: o, Left: o.Tighter(), Right: o.Tighter()}
}
