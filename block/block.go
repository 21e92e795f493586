// Package block defines the read-only view of a visual program that the
// code generators consume, together with a simple in-memory implementation.
//
// A program is a Workspace holding top-level blocks. Every block has a type
// tag, literal field values, named value inputs holding a single child
// expression block, named statement inputs holding the head of a chain of
// statement blocks, and a pointer to the next block of its own chain.
//
//	ws := block.NewWorkspace()
//	ws.Add(
//		block.New("variables_set").
//			Var("VAR", "count").
//			Value("VALUE", block.New("math_number").Field("NUM", "1")),
//	)
package block

import (
	"maps"
	"slices"
)

// InputKind distinguishes value inputs from statement inputs.
type InputKind int

// Input kinds.
const (
	ValueInput InputKind = iota
	StatementInput
)

// String implements fmt.Stringer.
func (k InputKind) String() string {
	if k == StatementInput {
		return "statement"
	}
	return "value"
}

// Input describes a named input socket of a block.
type Input struct {
	Name string
	Kind InputKind
}

// Block is the interface the generators read blocks through.
//
// Implementations must be comparable (typically pointers), since
// generators keep track of visited blocks to detect cycles.
type Block interface {
	// ID returns the block identifier used when injecting
	// statement prefix and suffix snippets.
	ID() string
	// Type returns the block type tag, e.g. "controls_if".
	Type() string
	// FieldValue returns the value of the named field or "" if absent.
	FieldValue(name string) string
	// ValueInput returns the block connected to the named value input.
	ValueInput(name string) Block
	// StatementInput returns the first block of the chain connected
	// to the named statement input.
	StatementInput(name string) Block
	// HasInput reports whether the block has an input with the given
	// name, whether or not anything is connected to it.
	HasInput(name string) bool
	// Inputs returns the block inputs in a stable order.
	Inputs() []Input
	// Next returns the following block of the chain.
	Next() Block
	// Workspace returns the owning workspace.
	Workspace() *Workspace
	// Comment returns the block comment text.
	Comment() string
	// Enabled reports whether the block takes part in generation.
	Enabled() bool
	// VarRefs returns the names of the variables referenced by the
	// block's own variable fields.
	VarRefs() []string
	// Params returns the parameter names of a procedure block.
	Params() []string
	// HasReturnValue reports whether a procedure block carries a
	// return value.
	HasReturnValue() bool
}

// Node is the in-memory Block implementation.
type Node struct {
	BlockID     string
	BlockType   string
	Fields      map[string]string
	Variables   map[string]string // variable field name -> variable name
	Values      map[string]*Node
	Statements  map[string]*Node
	NextBlock   *Node
	CommentText string
	Disabled    bool
	Args        []string
	ReturnValue bool

	ws *Workspace
}

var _ Block = (*Node)(nil)

// New returns a node of the given type.
func New(typ string) *Node {
	return &Node{BlockType: typ}
}

// WithID sets the block identifier.
func (n *Node) WithID(id string) *Node {
	n.BlockID = id
	return n
}

// Field sets a literal field value.
func (n *Node) Field(name, value string) *Node {
	if n.Fields == nil {
		n.Fields = make(map[string]string)
	}
	n.Fields[name] = value
	return n
}

// Var sets a variable field.
func (n *Node) Var(name, variable string) *Node {
	if n.Variables == nil {
		n.Variables = make(map[string]string)
	}
	n.Variables[name] = variable
	return n
}

// Value connects child to the named value input. A nil child declares
// the input without connecting anything.
func (n *Node) Value(name string, child *Node) *Node {
	if n.Values == nil {
		n.Values = make(map[string]*Node)
	}
	n.Values[name] = child
	return n
}

// Statement connects the chain starting at head to the named statement
// input. A nil head declares an empty input.
func (n *Node) Statement(name string, head *Node) *Node {
	if n.Statements == nil {
		n.Statements = make(map[string]*Node)
	}
	n.Statements[name] = head
	return n
}

// Then sets the next block of the chain and returns n.
func (n *Node) Then(next *Node) *Node {
	n.NextBlock = next
	return n
}

// Chain links the given nodes in order and returns the first one.
func Chain(nodes ...*Node) *Node {
	if len(nodes) == 0 {
		return nil
	}
	for i := 0; i < len(nodes)-1; i++ {
		nodes[i].NextBlock = nodes[i+1]
	}
	return nodes[0]
}

// WithComment sets the block comment.
func (n *Node) WithComment(text string) *Node {
	n.CommentText = text
	return n
}

// Disable excludes the block from generation.
func (n *Node) Disable() *Node {
	n.Disabled = true
	return n
}

// Param appends procedure parameters.
func (n *Node) Param(names ...string) *Node {
	n.Args = append(n.Args, names...)
	return n
}

// WithReturn marks a procedure block as carrying a return value.
func (n *Node) WithReturn(v bool) *Node {
	n.ReturnValue = v
	return n
}

// ID implements Block.
func (n *Node) ID() string { return n.BlockID }

// Type implements Block.
func (n *Node) Type() string { return n.BlockType }

// FieldValue implements Block. Variable fields resolve to the variable name.
func (n *Node) FieldValue(name string) string {
	if v, ok := n.Fields[name]; ok {
		return v
	}
	return n.Variables[name]
}

// ValueInput implements Block.
func (n *Node) ValueInput(name string) Block {
	if c := n.Values[name]; c != nil {
		return c
	}
	return nil
}

// StatementInput implements Block.
func (n *Node) StatementInput(name string) Block {
	if c := n.Statements[name]; c != nil {
		return c
	}
	return nil
}

// HasInput implements Block.
func (n *Node) HasInput(name string) bool {
	if _, ok := n.Values[name]; ok {
		return true
	}
	_, ok := n.Statements[name]
	return ok
}

// Inputs implements Block. Value inputs come first, each group sorted by name.
func (n *Node) Inputs() []Input {
	inputs := make([]Input, 0, len(n.Values)+len(n.Statements))
	for _, name := range slices.Sorted(maps.Keys(n.Values)) {
		inputs = append(inputs, Input{Name: name, Kind: ValueInput})
	}
	for _, name := range slices.Sorted(maps.Keys(n.Statements)) {
		inputs = append(inputs, Input{Name: name, Kind: StatementInput})
	}
	return inputs
}

// Next implements Block.
func (n *Node) Next() Block {
	if n.NextBlock != nil {
		return n.NextBlock
	}
	return nil
}

// Workspace implements Block.
func (n *Node) Workspace() *Workspace { return n.ws }

// Comment implements Block.
func (n *Node) Comment() string { return n.CommentText }

// Enabled implements Block.
func (n *Node) Enabled() bool { return !n.Disabled }

// VarRefs implements Block.
func (n *Node) VarRefs() []string {
	if len(n.Variables) == 0 {
		return nil
	}
	refs := make([]string, 0, len(n.Variables))
	for _, k := range slices.Sorted(maps.Keys(n.Variables)) {
		refs = append(refs, n.Variables[k])
	}
	return refs
}

// Params implements Block.
func (n *Node) Params() []string { return n.Args }

// HasReturnValue implements Block.
func (n *Node) HasReturnValue() bool { return n.ReturnValue }

// attach sets the owning workspace on n and everything below it.
func (n *Node) attach(ws *Workspace, seen map[*Node]bool) {
	stack := []*Node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for ; cur != nil && !seen[cur]; cur = cur.NextBlock {
			seen[cur] = true
			cur.ws = ws
			for _, c := range cur.Values {
				if c != nil {
					stack = append(stack, c)
				}
			}
			for _, c := range cur.Statements {
				if c != nil {
					stack = append(stack, c)
				}
			}
		}
	}
}
