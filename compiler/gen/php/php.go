// Package php generates PHP from block programs.
package php

//go:generate go run ../internal/ordergen

import (
	"strings"

	"github.com/syssam/blockgen/compiler/gen"
)

// reservedWords are the PHP keywords, predefined constants and the
// functions generated code calls.
var reservedWords = []string{
	// Keywords.
	"__halt_compiler", "abstract", "and", "array", "as", "break", "callable",
	"case", "catch", "class", "clone", "const", "continue", "declare",
	"default", "die", "do", "echo", "else", "elseif", "empty", "enddeclare",
	"endfor", "endforeach", "endif", "endswitch", "endwhile", "eval", "exit",
	"extends", "final", "finally", "fn", "for", "foreach", "function",
	"global", "goto", "if", "implements", "include", "include_once",
	"instanceof", "insteadof", "interface", "isset", "list", "match",
	"namespace", "new", "or", "print", "private", "protected", "public",
	"readonly", "require", "require_once", "return", "static", "switch",
	"throw", "trait", "try", "unset", "use", "var", "while", "xor",
	// Magic constants.
	"__class__", "__dir__", "__file__", "__function__", "__line__",
	"__method__", "__namespace__", "__trait__",
	// Predefined constants.
	"php_version", "php_os", "php_eol", "php_int_max", "php_int_size",
	"e_error", "e_warning", "e_parse", "e_notice", "e_strict", "e_all",
	"true", "false", "null", "inf", "nan",
	// Predefined variables.
	"this", "globals", "_server", "_get", "_post", "_cookie", "_files",
	"_env", "_request", "_session",
	// Functions called by generated code.
	"abs", "sqrt", "log", "exp", "pow", "round", "ceil", "floor", "sin",
	"cos", "tan", "asin", "acos", "atan", "atan2", "pi", "is_int",
	"is_numeric", "array_sum", "count", "min", "max", "rand", "getrandmax",
}

// Dialect is the PHP generator dialect.
type Dialect struct {
	registry *gen.Registry
}

var (
	_ gen.Dialect          = (*Dialect)(nil)
	_ gen.Commenter        = (*Dialect)(nil)
	_ gen.VariablePrefixer = (*Dialect)(nil)
)

// New returns the PHP dialect with the standard block rules.
func New() *Dialect {
	return &Dialect{registry: NewRegistry()}
}

// WithRegistry returns a PHP dialect that renders with r.
func WithRegistry(r *gen.Registry) *Dialect {
	return &Dialect{registry: r}
}

// NewRegistry returns the standard PHP block rules.
func NewRegistry() *gen.Registry {
	r := gen.NewRegistry()
	registerLogic(r)
	registerLoops(r)
	registerMath(r)
	registerProcedures(r)
	registerVariables(r)
	return r
}

// Name implements gen.Dialect.
func (*Dialect) Name() string { return "PHP" }

// Extension implements gen.Dialect.
func (*Dialect) Extension() string { return "php" }

// Registry implements gen.Dialect.
func (d *Dialect) Registry() *gen.Registry { return d.registry }

// ReservedWords implements gen.Dialect.
func (*Dialect) ReservedWords() []string { return reservedWords }

// VariablePrefix implements gen.VariablePrefixer.
func (*Dialect) VariablePrefix() string { return "$" }

// Init implements gen.Dialect. Every variable is initialized to null up
// front so procedures can import it with global.
func (*Dialect) Init(p *gen.Pass) error {
	vars := p.Variables()
	if len(vars) == 0 {
		return nil
	}
	lines := make([]string, len(vars))
	for i, v := range vars {
		lines[i] = v + " = null;"
	}
	p.Define("variables", strings.Join(lines, "\n"))
	return nil
}

// Finish implements gen.Dialect.
func (*Dialect) Finish(p *gen.Pass, code string) string {
	return gen.Assemble(p.Definitions().Values(), code)
}

// ScrubNakedValue implements gen.Dialect.
func (*Dialect) ScrubNakedValue(line string) string {
	return line + ";\n"
}

// CommentPrefix implements gen.Commenter.
func (*Dialect) CommentPrefix() string { return "// " }
