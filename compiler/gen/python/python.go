// Package python generates Python 3 from block programs.
package python

//go:generate go run ../internal/ordergen

import (
	"regexp"
	"strings"

	"github.com/syssam/blockgen/compiler/gen"
)

// reservedWords are the Python keywords and the builtins generated names
// must not shadow.
var reservedWords = []string{
	// Keywords.
	"False", "None", "True", "and", "as", "assert", "async", "await",
	"break", "class", "continue", "def", "del", "elif", "else", "except",
	"finally", "for", "from", "global", "if", "import", "in", "is", "lambda",
	"nonlocal", "not", "or", "pass", "raise", "return", "try", "while",
	"with", "yield",
	// Builtins.
	"abs", "all", "any", "ascii", "bin", "bool", "breakpoint", "bytearray",
	"bytes", "callable", "chr", "classmethod", "compile", "complex",
	"delattr", "dict", "dir", "divmod", "enumerate", "eval", "exec",
	"filter", "float", "format", "frozenset", "getattr", "globals",
	"hasattr", "hash", "help", "hex", "id", "input", "int", "isinstance",
	"issubclass", "iter", "len", "list", "locals", "map", "max",
	"memoryview", "min", "next", "object", "oct", "open", "ord", "pow",
	"print", "property", "range", "repr", "reversed", "round", "set",
	"setattr", "slice", "sorted", "staticmethod", "str", "sum", "super",
	"tuple", "type", "vars", "zip", "__import__",
	// Modules imported by generated code.
	"math", "random", "numbers", "Number",
}

// Dialect is the Python generator dialect.
type Dialect struct {
	registry *gen.Registry
}

var (
	_ gen.Dialect     = (*Dialect)(nil)
	_ gen.Commenter   = (*Dialect)(nil)
	_ gen.EmptyBodier = (*Dialect)(nil)
)

// New returns the Python dialect with the standard block rules.
func New() *Dialect {
	return &Dialect{registry: NewRegistry()}
}

// WithRegistry returns a Python dialect that renders with r.
func WithRegistry(r *gen.Registry) *Dialect {
	return &Dialect{registry: r}
}

// NewRegistry returns the standard Python block rules.
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
func (*Dialect) Name() string { return "Python" }

// Extension implements gen.Dialect.
func (*Dialect) Extension() string { return "py" }

// Registry implements gen.Dialect.
func (d *Dialect) Registry() *gen.Registry { return d.registry }

// ReservedWords implements gen.Dialect.
func (*Dialect) ReservedWords() []string { return reservedWords }

// Init implements gen.Dialect. Every variable is bound to None up front so
// procedures can declare it global.
func (*Dialect) Init(p *gen.Pass) error {
	vars := p.Variables()
	if len(vars) == 0 {
		return nil
	}
	lines := make([]string, len(vars))
	for i, v := range vars {
		lines[i] = v + " = None"
	}
	p.Define("variables", strings.Join(lines, "\n"))
	return nil
}

var (
	importLine = regexp.MustCompile(`^(from\s+\S+\s+)?import\s+\S+`)
	blankRuns  = regexp.MustCompile(`\n\n+`)
)

// Finish implements gen.Dialect. Imports go first, one per line, then
// the other definitions.
func (*Dialect) Finish(p *gen.Pass, code string) string {
	var imports, defs []string
	for _, def := range p.Definitions().Values() {
		if importLine.MatchString(def) {
			imports = append(imports, def)
		} else {
			defs = append(defs, def)
		}
	}
	all := strings.Join(imports, "\n") + "\n\n" + strings.Join(defs, "\n\n")
	all = blankRuns.ReplaceAllString(all, "\n\n")
	return strings.TrimRight(all, "\n") + "\n\n\n" + code
}

// ScrubNakedValue implements gen.Dialect.
func (*Dialect) ScrubNakedValue(line string) string {
	return line + "\n"
}

// CommentPrefix implements gen.Commenter.
func (*Dialect) CommentPrefix() string { return "# " }

// EmptyBody implements gen.EmptyBodier.
func (*Dialect) EmptyBody(indent string) string { return indent + "pass\n" }

// Definition keys of the import statements.
const (
	importMath   = "import_math"
	importRandom = "import_random"
	importNumber = "from_numbers_import_Number"
)

var importStatements = map[string]string{
	importMath:   "import math",
	importRandom: "import random",
	importNumber: "from numbers import Number",
}

// addImports defines the import statements named by keys.
func addImports(p *gen.Pass, keys ...string) {
	for _, key := range keys {
		p.Define(key, importStatements[key])
	}
}
