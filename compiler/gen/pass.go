package gen

import (
	"errors"
	"strings"

	"github.com/syssam/blockgen/block"
)

// Pass holds the state of one generation pass: the name table, the
// definitions collected so far, and the first error encountered. Rules
// receive the Pass and call back into it to render their children.
//
// Once an error is recorded every further render call returns empty code,
// and the pass reports that first error.
type Pass struct {
	dialect   Dialect
	config    *Config
	ws        *block.Workspace
	names     *NameDB
	defs      *Definitions
	functions map[string]string
	visited   map[block.Block]struct{}
	vars      []string
	depth     int
	err       error
}

func newPass(d Dialect, cfg *Config, ws *block.Workspace) *Pass {
	var prefix string
	if vp, ok := d.(VariablePrefixer); ok {
		prefix = vp.VariablePrefix()
	}
	names := NewNameDB(d.ReservedWords(), prefix)
	names.SetStyle(cfg.NameStyle)
	return &Pass{
		dialect:   d,
		config:    cfg,
		ws:        ws,
		names:     names,
		defs:      NewDefinitions(),
		functions: make(map[string]string),
		visited:   make(map[block.Block]struct{}),
	}
}

func (p *Pass) init() error {
	seen := make(map[string]bool)
	addVar := func(name string, typ NameType) {
		id := p.names.GetName(name, typ)
		if !seen[id] {
			seen[id] = true
			p.vars = append(p.vars, id)
		}
	}
	for _, v := range p.ws.Variables {
		addVar(v.Name, NameVariable)
	}
	used, err := p.ws.UsedVariables(p.config.MaxDepth)
	if errors.Is(err, block.ErrTooDeep) {
		return structureError(err, 0, nil)
	}
	// Cycles are reported by the render, at the block that closes them.
	for _, name := range used {
		addVar(name, NameVariable)
	}
	for _, name := range p.ws.DeveloperVariables {
		addVar(name, NameDeveloperVariable)
	}
	for _, name := range p.ws.ProcedureNames() {
		p.names.GetName(name, NameProcedure)
	}
	return p.dialect.Init(p)
}

// Dialect returns the target language.
func (p *Pass) Dialect() Dialect { return p.dialect }

// Config returns the generator settings.
func (p *Pass) Config() *Config { return p.config }

// Indent returns one indentation unit.
func (p *Pass) Indent() string { return p.config.Indent }

// Workspace returns the workspace being rendered.
func (p *Pass) Workspace() *block.Workspace { return p.ws }

// Names returns the name table of the pass.
func (p *Pass) Names() *NameDB { return p.names }

// Definitions returns the top-level definitions collected so far.
func (p *Pass) Definitions() *Definitions { return p.defs }

// Variables returns the identifiers of every declared or referenced
// variable, then those of the developer variables.
func (p *Pass) Variables() []string { return p.vars }

// Err returns the first error recorded by the pass.
func (p *Pass) Err() error { return p.err }

// VariableName returns the identifier of a user variable.
func (p *Pass) VariableName(name string) string {
	return p.names.GetName(name, NameVariable)
}

// ProcedureName returns the identifier of a user procedure.
func (p *Pass) ProcedureName(name string) string {
	return p.names.GetName(name, NameProcedure)
}

// Define stores a top-level definition under key, replacing any previous
// definition with the same key.
func (p *Pass) Define(key, code string) {
	p.defs.Set(key, code)
}

// ProvideFunction registers a helper function once per pass and returns
// its distinct name. Every FunctionNamePlaceholder in tmpl is replaced by
// that name, and leading two-space indentation is converted to the
// configured indent. Later calls with the same key return the same name
// without touching tmpl.
func (p *Pass) ProvideFunction(key, tmpl string) string {
	if name, ok := p.functions[key]; ok {
		return name
	}
	name := p.names.GetDistinctName(key, NameProcedure)
	p.functions[key] = name
	code := strings.TrimSpace(tmpl)
	code = strings.ReplaceAll(code, FunctionNamePlaceholder, name)
	p.defs.Set(key, reindent(code, p.config.Indent))
	return name
}

// InjectID replaces every "%1" in snippet with the quoted ID of b.
func (p *Pass) InjectID(snippet string, b block.Block) string {
	return strings.ReplaceAll(snippet, "%1", quoteID(b.ID()))
}

// StatementPrefix returns the configured statement prefix for b, or "".
func (p *Pass) StatementPrefix(b block.Block) string {
	if p.config.StatementPrefix == "" {
		return ""
	}
	return p.InjectID(p.config.StatementPrefix, b)
}

// StatementSuffix returns the configured statement suffix for b, or "".
func (p *Pass) StatementSuffix(b block.Block) string {
	if p.config.StatementSuffix == "" {
		return ""
	}
	return p.InjectID(p.config.StatementSuffix, b)
}

// LoopTrap returns the configured loop trap for b, or "".
func (p *Pass) LoopTrap(b block.Block) string {
	if p.config.LoopTrap == "" {
		return ""
	}
	return p.InjectID(p.config.LoopTrap, b)
}

// AddLoopTrap decorates a loop body: the loop trap and the statement
// suffix of the loop block go first, its statement prefix goes last. Each
// snippet is indented one level.
func (p *Pass) AddLoopTrap(branch string, b block.Block) string {
	indent := p.config.Indent
	if trap := p.LoopTrap(b); trap != "" {
		branch = PrefixLines(trap, indent) + branch
	}
	if suffix := p.StatementSuffix(b); suffix != "" {
		branch = PrefixLines(suffix, indent) + branch
	}
	if prefix := p.StatementPrefix(b); prefix != "" {
		branch += PrefixLines(prefix, indent)
	}
	return branch
}

// ValueToCode renders the block attached to the value input name of b. It
// returns "" for an empty input, and wraps the code in parentheses when it
// binds more loosely than outer.
func (p *Pass) ValueToCode(b block.Block, name string, outer Order) string {
	if p.err != nil {
		return ""
	}
	child := b.ValueInput(name)
	if child == nil {
		return ""
	}
	frag := p.blockToCode(child, true)
	if p.err != nil || frag.code == "" {
		return ""
	}
	if NeedsParens(frag.order, outer) {
		return "(" + frag.code + ")"
	}
	return frag.code
}

// ValueOr is like ValueToCode but returns fallback for an empty input.
func (p *Pass) ValueOr(b block.Block, name string, outer Order, fallback string) string {
	if code := p.ValueToCode(b, name, outer); code != "" {
		return code
	}
	return fallback
}

// StatementToCode renders the chain attached to the statement input name
// of b, indented one level. It returns "" for an empty input.
func (p *Pass) StatementToCode(b block.Block, name string) string {
	if p.err != nil {
		return ""
	}
	child := b.StatementInput(name)
	if child == nil {
		return ""
	}
	frag := p.blockToCode(child, false)
	if p.err != nil {
		return ""
	}
	if frag.value {
		p.fail(NewGenerationError(p.dialect.Name(), child.Type(), "value block in statement input "+name, nil))
		return ""
	}
	if frag.code == "" {
		return ""
	}
	return PrefixLines(frag.code, p.config.Indent)
}

// BodyToCode is like StatementToCode but falls back to the dialect's empty
// body placeholder.
func (p *Pass) BodyToCode(b block.Block, name string) string {
	code := p.StatementToCode(b, name)
	if code == "" {
		code = p.EmptyBody()
	}
	return code
}

// EmptyBody returns the statement the dialect needs in an otherwise empty
// body, or "".
func (p *Pass) EmptyBody() string {
	if eb, ok := p.dialect.(EmptyBodier); ok {
		return eb.EmptyBody(p.config.Indent)
	}
	return ""
}

// Comments renders the comments attached to b and to the blocks in its
// value inputs, as the dialect's line comments. Rules that store their
// output with Define use it to keep the comment with the definition.
func (p *Pass) Comments(b block.Block) string {
	return p.comments(b, false)
}

// OuterVariables returns the identifiers of the variables referenced
// below the named inputs of b that are not among its parameters, followed
// by every developer variable. Procedures declare these as globals.
func (p *Pass) OuterVariables(b block.Block, inputs ...string) ([]string, error) {
	blocks, err := block.DescendantsLimit(b, p.config.MaxDepth-p.depth, inputs...)
	if err != nil {
		return nil, structureError(err, p.depth, b)
	}
	skip := make(map[string]bool)
	for _, param := range b.Params() {
		skip[strings.ToLower(param)] = true
	}
	var names []string
	for _, d := range blocks {
		for _, v := range d.VarRefs() {
			if key := strings.ToLower(v); !skip[key] {
				skip[key] = true
				names = append(names, p.VariableName(v))
			}
		}
	}
	for _, v := range p.ws.DeveloperVariables {
		names = append(names, p.names.GetName(v, NameDeveloperVariable))
	}
	return names, nil
}

// fragment is the output of rendering one block or chain.
type fragment struct {
	code     string
	order    Order
	value    bool
	suppress bool
	// comment of a top-level value block, kept apart so the naked value
	// can be wrapped into a statement first.
	comment string
}

// structureError converts the error of a block walk that started offset
// levels down into a StructureError. Cycles are reported at owner.
func structureError(err error, offset int, owner block.Block) error {
	var depthErr *block.DepthError
	if errors.As(err, &depthErr) {
		return &StructureError{
			BlockID: depthErr.Block.ID(),
			Type:    depthErr.Block.Type(),
			Depth:   offset + depthErr.Depth,
		}
	}
	structErr := &StructureError{Depth: offset, Cycle: true}
	if owner != nil {
		structErr.BlockID, structErr.Type = owner.ID(), owner.Type()
	}
	return structErr
}

func (p *Pass) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *Pass) failBlock(b block.Block, err error) {
	var opErr *UnsupportedOperationError
	if errors.As(err, &opErr) {
		if opErr.Block == "" {
			opErr.Block = b.Type()
		}
		p.fail(err)
		return
	}
	if IsGenerationError(err) || IsStructureError(err) || IsUnknownBlockError(err) {
		p.fail(err)
		return
	}
	p.fail(NewGenerationError(p.dialect.Name(), b.Type(), "", err))
}

// blockToCode renders b and, for statements, every block chained after it.
// plugged reports whether b sits in a value input.
func (p *Pass) blockToCode(b block.Block, plugged bool) fragment {
	if b == nil || p.err != nil {
		return fragment{}
	}
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.config.MaxDepth {
		p.fail(&StructureError{BlockID: b.ID(), Type: b.Type(), Depth: p.depth})
		return fragment{}
	}
	var out strings.Builder
	for cur := b; cur != nil; cur = cur.Next() {
		if _, seen := p.visited[cur]; seen {
			p.fail(&StructureError{BlockID: cur.ID(), Type: cur.Type(), Depth: p.depth, Cycle: true})
			return fragment{}
		}
		p.visited[cur] = struct{}{}
		if !cur.Enabled() {
			continue
		}
		rule, ok := p.dialect.Registry().Lookup(cur.Type())
		if !ok {
			p.fail(NewUnknownBlockError(p.dialect.Name(), cur.Type(), cur.ID()))
			return fragment{}
		}
		if rule.Value != nil {
			if cur != b || cur.Next() != nil {
				p.fail(NewGenerationError(p.dialect.Name(), cur.Type(), "value block cannot be chained", nil))
				return fragment{}
			}
			expr, err := rule.Value(cur, p)
			if err != nil {
				p.failBlock(cur, err)
				return fragment{}
			}
			if p.err != nil {
				return fragment{}
			}
			return fragment{
				code:     expr.Code,
				order:    expr.Order,
				value:    true,
				suppress: rule.SuppressPrefixSuffix,
				comment:  p.comments(cur, plugged),
			}
		}
		if plugged {
			p.fail(NewGenerationError(p.dialect.Name(), cur.Type(), "statement block in value input", nil))
			return fragment{}
		}
		code, err := rule.Statement(cur, p)
		if err != nil {
			p.failBlock(cur, err)
			return fragment{}
		}
		if p.err != nil {
			return fragment{}
		}
		if code == "" {
			continue
		}
		if !rule.SuppressPrefixSuffix {
			code = p.StatementPrefix(cur) + code + p.StatementSuffix(cur)
		}
		out.WriteString(p.comments(cur, false))
		out.WriteString(code)
	}
	return fragment{code: out.String()}
}

// comments renders the comment of b and those of every block nested in
// its value inputs. Blocks in value inputs contribute to their enclosing
// statement instead of rendering their own.
func (p *Pass) comments(b block.Block, plugged bool) string {
	c, ok := p.dialect.(Commenter)
	if !ok || plugged || p.config.OmitComments {
		return ""
	}
	prefix := c.CommentPrefix()
	width := p.config.CommentWrap - len(prefix)
	var out strings.Builder
	if text := b.Comment(); text != "" {
		out.WriteString(PrefixLines(wrapText(text, width), prefix))
		out.WriteString("\n")
	}
	var nested []string
	for _, in := range b.Inputs() {
		if in.Kind != block.ValueInput {
			continue
		}
		child := b.ValueInput(in.Name)
		if child == nil {
			continue
		}
		// Cycles are reported by the render itself.
		err := block.WalkLimit(child, p.config.MaxDepth-p.depth, func(d block.Block) bool {
			if text := d.Comment(); text != "" {
				nested = append(nested, wrapText(text, width))
			}
			return true
		})
		if errors.Is(err, block.ErrTooDeep) {
			p.fail(structureError(err, p.depth, b))
			return ""
		}
	}
	if len(nested) > 0 {
		out.WriteString(PrefixLines(strings.Join(nested, "\n")+"\n", prefix))
	}
	return out.String()
}
