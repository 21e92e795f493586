package block

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrCycle is returned by Walk when a block is reachable twice.
	ErrCycle = errors.New("block: cyclic block structure")
	// ErrTooDeep is matched by the *DepthError of a bounded walk.
	ErrTooDeep = errors.New("block: block structure too deep")
)

// DepthError reports the first block found below the nesting limit of a
// walk.
type DepthError struct {
	Block Block
	Depth int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("%v: %s at depth %d", ErrTooDeep, e.Block.Type(), e.Depth)
}

// Is reports whether target is ErrTooDeep.
func (e *DepthError) Is(target error) bool {
	return target == ErrTooDeep
}

// Variable is a workspace-level variable declaration.
type Variable struct {
	ID   string
	Name string
	Type string
}

// Workspace owns the top-level blocks of one program.
type Workspace struct {
	Variables          []Variable
	DeveloperVariables []string
	TopBlocks          []Block
}

// NewWorkspace returns an empty workspace.
func NewWorkspace() *Workspace {
	return &Workspace{}
}

// Add appends top-level blocks and attaches them, and every block below
// them, to the workspace.
func (w *Workspace) Add(nodes ...*Node) *Workspace {
	seen := make(map[*Node]bool)
	for _, n := range nodes {
		if n == nil {
			continue
		}
		n.attach(w, seen)
		w.TopBlocks = append(w.TopBlocks, n)
	}
	return w
}

// Declare adds variable declarations by name.
func (w *Workspace) Declare(names ...string) *Workspace {
	for _, name := range names {
		w.Variables = append(w.Variables, Variable{Name: name})
	}
	return w
}

// AllUsedVariables returns the names of the variables referenced by any
// block, procedure parameters included, in order of first reference.
// Names compare case-insensitively.
func (w *Workspace) AllUsedVariables() []string {
	names, _ := w.UsedVariables(-1)
	return names
}

// UsedVariables is AllUsedVariables over blocks nested at most limit deep.
// It returns the walk error, with the names found before it, when the
// structure is cyclic or too deep.
func (w *Workspace) UsedVariables(limit int) ([]string, error) {
	var (
		names []string
		seen  = make(map[string]bool)
	)
	for _, top := range w.TopBlocks {
		err := WalkLimit(top, limit, func(b Block) bool {
			for _, v := range slices.Concat(b.VarRefs(), b.Params()) {
				if key := strings.ToLower(v); !seen[key] {
					seen[key] = true
					names = append(names, v)
				}
			}
			return true
		})
		if err != nil {
			return names, err
		}
	}
	return names, nil
}

// ProcedureNames returns the names of the procedures defined at the top
// level of the workspace.
func (w *Workspace) ProcedureNames() []string {
	var names []string
	seen := make(map[Block]bool)
	for _, top := range w.TopBlocks {
		for cur := top; cur != nil && !seen[cur]; cur = cur.Next() {
			seen[cur] = true
			if strings.HasPrefix(cur.Type(), "procedures_def") {
				if name := cur.FieldValue("NAME"); name != "" {
					names = append(names, name)
				}
			}
		}
	}
	return names
}

// Walk visits b, its inputs and its chain depth-first. Returning false
// from fn skips the children of the visited block. Walk returns ErrCycle
// if a block is reached twice.
func Walk(b Block, fn func(Block) bool) error {
	return WalkLimit(b, -1, fn)
}

// WalkLimit is Walk with a bound on nesting. The chain starting at b is at
// depth 1 and the blocks in an input sit one level below their owner.
// Blocks chained with Next share a depth. WalkLimit stops with a
// *DepthError when a block lies deeper than limit. A negative limit
// disables the check.
func WalkLimit(b Block, limit int, fn func(Block) bool) error {
	return walk(b, limit, fn, make(map[Block]bool))
}

type pending struct {
	b     Block
	depth int
}

func walk(b Block, limit int, fn func(Block) bool, seen map[Block]bool) error {
	if b == nil {
		return nil
	}
	stack := []pending{{b, 1}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		cur := top.b
		if seen[cur] {
			return ErrCycle
		}
		if limit >= 0 && top.depth > limit {
			return &DepthError{Block: cur, Depth: top.depth}
		}
		seen[cur] = true
		if next := cur.Next(); next != nil {
			stack = append(stack, pending{next, top.depth})
		}
		if !fn(cur) {
			continue
		}
		// Pushed in reverse so inputs are visited in declaration order.
		inputs := cur.Inputs()
		for i := len(inputs) - 1; i >= 0; i-- {
			in := inputs[i]
			var child Block
			if in.Kind == StatementInput {
				child = cur.StatementInput(in.Name)
			} else {
				child = cur.ValueInput(in.Name)
			}
			if child != nil {
				stack = append(stack, pending{child, top.depth + 1})
			}
		}
	}
	return nil
}

// Descendants returns every block reachable from the named inputs of b,
// depth-first.
func Descendants(b Block, inputs ...string) ([]Block, error) {
	return DescendantsLimit(b, -1, inputs...)
}

// DescendantsLimit is Descendants with the nesting bound of WalkLimit. The
// blocks directly in the inputs of b are at depth 1.
func DescendantsLimit(b Block, limit int, inputs ...string) ([]Block, error) {
	var out []Block
	collect := func(x Block) bool {
		out = append(out, x)
		return true
	}
	seen := make(map[Block]bool)
	for _, name := range inputs {
		child := b.StatementInput(name)
		if child == nil {
			child = b.ValueInput(name)
		}
		if child == nil {
			continue
		}
		if err := walk(child, limit, collect, seen); err != nil {
			return nil, err
		}
	}
	return out, nil
}
