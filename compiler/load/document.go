// Package load reads workspace documents from disk and turns them into
// block workspaces the generators can render.
//
// A document describes the declared variables and the top-level block
// chains of one program. It can be written as YAML, JSON or MessagePack:
//
//	variables:
//	  - name: count
//	blocks:
//	  - type: variables_set
//	    vars: {VAR: count}
//	    values:
//	      VALUE: {type: math_number, fields: {NUM: "1"}}
package load

import (
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/syssam/blockgen/block"
)

// Document is the serialized form of a workspace.
type Document struct {
	Variables          []Variable `json:"variables,omitempty" yaml:"variables,omitempty" msgpack:"variables,omitempty"`
	DeveloperVariables []string   `json:"developer_variables,omitempty" yaml:"developer_variables,omitempty" msgpack:"developer_variables,omitempty"`
	Blocks             []*Block   `json:"blocks,omitempty" yaml:"blocks,omitempty" msgpack:"blocks,omitempty"`
}

// Variable is a declared workspace variable.
type Variable struct {
	ID   string `json:"id,omitempty" yaml:"id,omitempty" msgpack:"id,omitempty"`
	Name string `json:"name" yaml:"name" msgpack:"name"`
	Type string `json:"type,omitempty" yaml:"type,omitempty" msgpack:"type,omitempty"`
}

// Block is the serialized form of one block and everything below it.
// A value or statement input mapped to null is declared but empty.
type Block struct {
	Type       string            `json:"type" yaml:"type" msgpack:"type"`
	ID         string            `json:"id,omitempty" yaml:"id,omitempty" msgpack:"id,omitempty"`
	Comment    string            `json:"comment,omitempty" yaml:"comment,omitempty" msgpack:"comment,omitempty"`
	Disabled   bool              `json:"disabled,omitempty" yaml:"disabled,omitempty" msgpack:"disabled,omitempty"`
	Fields     map[string]string `json:"fields,omitempty" yaml:"fields,omitempty" msgpack:"fields,omitempty"`
	Vars       map[string]string `json:"vars,omitempty" yaml:"vars,omitempty" msgpack:"vars,omitempty"`
	Params     []string          `json:"params,omitempty" yaml:"params,omitempty" msgpack:"params,omitempty"`
	HasReturn  bool              `json:"has_return,omitempty" yaml:"has_return,omitempty" msgpack:"has_return,omitempty"`
	Values     map[string]*Block `json:"values,omitempty" yaml:"values,omitempty" msgpack:"values,omitempty"`
	Statements map[string]*Block `json:"statements,omitempty" yaml:"statements,omitempty" msgpack:"statements,omitempty"`
	Next       *Block            `json:"next,omitempty" yaml:"next,omitempty" msgpack:"next,omitempty"`
}

// idSpace is the UUID namespace block IDs are derived in.
var idSpace = uuid.MustParse("6f6b0d6e-3c1a-5d2e-9a57-2f1c0b7e4d10")

// BlockID returns the ID given to a block that has none, derived from the
// block's position in the document, e.g. "blocks[0].statements.DO.next".
func BlockID(position string) string {
	return uuid.NewSHA1(idSpace, []byte(position)).String()
}

// Workspace builds the block workspace the document describes. Blocks
// without an ID get one derived from their position, so loading the same
// document twice yields the same IDs.
func (d *Document) Workspace() (*block.Workspace, error) {
	ws := block.NewWorkspace()
	for _, v := range d.Variables {
		if v.Name == "" {
			return nil, fmt.Errorf("load: variable %q: %w", v.ID, ErrMissingName)
		}
		ws.Variables = append(ws.Variables, block.Variable{ID: v.ID, Name: v.Name, Type: v.Type})
	}
	ws.DeveloperVariables = slices.Clone(d.DeveloperVariables)
	for i, b := range d.Blocks {
		if b == nil {
			continue
		}
		n, err := b.node(fmt.Sprintf("blocks[%d]", i))
		if err != nil {
			return nil, err
		}
		ws.Add(n)
	}
	return ws, nil
}

func (b *Block) node(pos string) (*block.Node, error) {
	if b.Type == "" {
		return nil, fmt.Errorf("load: block at %s: %w", pos, ErrMissingType)
	}
	id := b.ID
	if id == "" {
		id = BlockID(pos)
	}
	n := block.New(b.Type).WithID(id).WithComment(b.Comment).WithReturn(b.HasReturn).Param(b.Params...)
	if b.Disabled {
		n.Disable()
	}
	for _, k := range slices.Sorted(maps.Keys(b.Fields)) {
		n.Field(k, b.Fields[k])
	}
	for _, k := range slices.Sorted(maps.Keys(b.Vars)) {
		n.Var(k, b.Vars[k])
	}
	for _, k := range slices.Sorted(maps.Keys(b.Values)) {
		child, err := b.Values[k].childNode(pos + ".values." + k)
		if err != nil {
			return nil, err
		}
		n.Value(k, child)
	}
	for _, k := range slices.Sorted(maps.Keys(b.Statements)) {
		head, err := b.Statements[k].childNode(pos + ".statements." + k)
		if err != nil {
			return nil, err
		}
		n.Statement(k, head)
	}
	if b.Next != nil {
		next, err := b.Next.node(pos + ".next")
		if err != nil {
			return nil, err
		}
		n.Then(next)
	}
	return n, nil
}

// childNode is node for an input socket, where nil declares an empty input.
func (b *Block) childNode(pos string) (*block.Node, error) {
	if b == nil {
		return nil, nil
	}
	return b.node(pos)
}

// FromWorkspace serializes ws. It is the inverse of Document.Workspace for
// workspaces built from *block.Node values.
func FromWorkspace(ws *block.Workspace) (*Document, error) {
	d := &Document{DeveloperVariables: slices.Clone(ws.DeveloperVariables)}
	for _, v := range ws.Variables {
		d.Variables = append(d.Variables, Variable{ID: v.ID, Name: v.Name, Type: v.Type})
	}
	for _, top := range ws.TopBlocks {
		n, ok := top.(*block.Node)
		if !ok {
			return nil, fmt.Errorf("load: cannot serialize block of type %T", top)
		}
		if err := block.Walk(n, func(block.Block) bool { return true }); err != nil {
			return nil, fmt.Errorf("load: %w", err)
		}
		d.Blocks = append(d.Blocks, fromNode(n))
	}
	return d, nil
}

func fromNode(n *block.Node) *Block {
	if n == nil {
		return nil
	}
	b := &Block{
		Type:      n.BlockType,
		ID:        n.BlockID,
		Comment:   n.CommentText,
		Disabled:  n.Disabled,
		Fields:    maps.Clone(n.Fields),
		Vars:      maps.Clone(n.Variables),
		Params:    slices.Clone(n.Args),
		HasReturn: n.ReturnValue,
		Next:      fromNode(n.NextBlock),
	}
	if len(n.Values) > 0 {
		b.Values = make(map[string]*Block, len(n.Values))
		for k, c := range n.Values {
			b.Values[k] = fromNode(c)
		}
	}
	if len(n.Statements) > 0 {
		b.Statements = make(map[string]*Block, len(n.Statements))
		for k, c := range n.Statements {
			b.Statements[k] = fromNode(c)
		}
	}
	return b
}
