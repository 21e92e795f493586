package gen

// Dialect supplies the language-specific parts of a generator: its rule
// table, reserved words and program assembly.
type Dialect interface {
	// Name returns the language name, e.g. "Python".
	Name() string
	// Extension returns the file extension of generated sources, without dot.
	Extension() string
	// Registry returns the block rendering rules.
	Registry() *Registry
	// ReservedWords returns identifiers generated names must avoid.
	ReservedWords() []string
	// Init runs at the start of a pass, after all workspace names were
	// reserved. Dialects declare variables here.
	Init(p *Pass) error
	// Finish assembles definitions and the main body into the program.
	Finish(p *Pass, code string) string
	// ScrubNakedValue turns a top-level value into a statement.
	ScrubNakedValue(line string) string
}

// VariablePrefixer is implemented by dialects whose variable identifiers
// carry a sigil, such as PHP's "$".
type VariablePrefixer interface {
	VariablePrefix() string
}

// EmptyBodier is implemented by dialects whose grammar forbids an empty
// block body. EmptyBody returns the placeholder statement, already indented.
type EmptyBodier interface {
	EmptyBody(indent string) string
}

// Commenter is implemented by dialects that render block comments.
type Commenter interface {
	// CommentPrefix returns the line comment marker followed by a space.
	CommentPrefix() string
}
