// Package gen is the language-independent core of the block code
// generators.
//
// A Generator pairs a Dialect, which supplies the rendering rules of one
// target language, with a Config. Each call to WorkspaceToCode runs a fresh
// Pass that walks the block tree depth-first, dispatches every block to
// its Rule, and assembles the result.
//
// # Precedence
//
// Value rules return an Expr carrying the precedence tier of its outermost
// operator. Callers state the tier they require of each operand through
// Pass.ValueToCode, which parenthesizes the operand iff it binds strictly
// more loosely. Tiers are plain integers, lower binding tighter, bounded
// by OrderAtomic and the wildcard OrderNone:
//
//	left := p.ValueToCode(b, "A", op.Left)
//	right := p.ValueToCode(b, "B", op.Right)
//	return gen.E(left+op.Op+right, op.Order), nil
//
// # Statements
//
// Statement rules return code ending in a newline. The pass injects the
// configured statement prefix and suffix around every statement, indents
// bodies by one Config.Indent unit, and walks next chains iteratively so
// that long programs do not grow the stack. Nesting is bounded by
// Config.MaxDepth and cycles are detected.
//
// # Definitions
//
// Helper functions are registered with Pass.ProvideFunction, which emits
// each helper at most once per pass under a name distinct from every user
// variable and procedure. User procedures store themselves with
// Pass.Define. The dialect's Finish hook places the definitions ahead of
// the main program.
//
// # Error Handling
//
// The package uses structured error types:
//
//   - ConfigError: invalid options
//   - UnknownBlockError: a block type without rule
//   - UnsupportedOperationError: an operator missing from a table
//   - StructureError: blocks nested too deep or cyclic
//   - GenerationError: any other rule failure
//
// The first error of a pass is sticky: rendering stops and
// WorkspaceToCode returns it. Errors never affect later passes.
//
//	code, err := g.WorkspaceToCode(ws)
//	if gen.IsUnsupportedOperationError(err) {
//	    // Handle a malformed operator field
//	}
//
// # Writing Files
//
// Writer renders many jobs concurrently with a bounded worker pool and
// optionally consults a blockgen.Cache keyed by workspace fingerprint,
// language and Config.Fingerprint.
package gen
