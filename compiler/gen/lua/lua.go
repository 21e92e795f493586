// Package lua generates Lua 5.1 from block programs.
package lua

//go:generate go run ../internal/ordergen

import (
	"github.com/syssam/blockgen/compiler/gen"
)

// reservedWords are the Lua keywords and the globals of the standard
// library, which generated names must not shadow.
var reservedWords = []string{
	// Keywords.
	"and", "break", "do", "else", "elseif", "end", "false", "for", "function",
	"goto", "if", "in", "local", "nil", "not", "or", "repeat", "return", "then",
	"true", "until", "while",
	// Globals.
	"_G", "_VERSION", "assert", "collectgarbage", "dofile", "error",
	"getfenv", "getmetatable", "ipairs", "load", "loadfile", "loadstring",
	"next", "pairs", "pcall", "print", "rawequal", "rawget", "rawlen",
	"rawset", "require", "select", "setfenv", "setmetatable", "tonumber",
	"tostring", "type", "unpack", "xpcall",
	// Libraries.
	"coroutine", "debug", "io", "math", "os", "package", "string", "table",
}

// Dialect is the Lua generator dialect.
type Dialect struct {
	registry *gen.Registry
}

var (
	_ gen.Dialect   = (*Dialect)(nil)
	_ gen.Commenter = (*Dialect)(nil)
)

// New returns the Lua dialect with the standard block rules.
func New() *Dialect {
	return &Dialect{registry: NewRegistry()}
}

// WithRegistry returns a Lua dialect that renders with r, typically a
// clone of NewRegistry extended with custom blocks.
func WithRegistry(r *gen.Registry) *Dialect {
	return &Dialect{registry: r}
}

// NewRegistry returns the standard Lua block rules.
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
func (*Dialect) Name() string { return "Lua" }

// Extension implements gen.Dialect.
func (*Dialect) Extension() string { return "lua" }

// Registry implements gen.Dialect.
func (d *Dialect) Registry() *gen.Registry { return d.registry }

// ReservedWords implements gen.Dialect.
func (*Dialect) ReservedWords() []string { return reservedWords }

// Init implements gen.Dialect. Lua variables are global by default and
// need no declaration.
func (*Dialect) Init(*gen.Pass) error { return nil }

// Finish implements gen.Dialect.
func (*Dialect) Finish(p *gen.Pass, code string) string {
	return gen.Assemble(p.Definitions().Values(), code)
}

// ScrubNakedValue implements gen.Dialect. Lua does not allow a bare
// expression as a statement, so the value is assigned to a dummy local.
func (*Dialect) ScrubNakedValue(line string) string {
	return "local _ = " + line + "\n"
}

// CommentPrefix implements gen.Commenter.
func (*Dialect) CommentPrefix() string { return "-- " }
