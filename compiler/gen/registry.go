package gen

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"maps"
	"reflect"
	"runtime"
	"slices"

	"github.com/syssam/blockgen/block"
)

// ValueFunc renders a block that produces a value.
type ValueFunc func(b block.Block, p *Pass) (Expr, error)

// StatementFunc renders a block that forms a statement. The returned code
// ends with a newline. An empty result means the rule emitted nothing
// inline, e.g. a procedure definition that registered itself with
// Pass.Define.
type StatementFunc func(b block.Block, p *Pass) (string, error)

// Rule is the rendering rule of one block type. Exactly one of Value and
// Statement is set.
type Rule struct {
	Value     ValueFunc
	Statement StatementFunc
	// SuppressPrefixSuffix disables automatic statement prefix and suffix
	// injection for blocks that place those snippets themselves.
	SuppressPrefixSuffix bool
}

func (r Rule) valid() bool {
	return (r.Value == nil) != (r.Statement == nil)
}

// Registry maps block types to rendering rules.
//
// Registering a type twice is an error; deliberate reuse of a rule goes
// through Alias, and deliberate replacement through Override.
type Registry struct {
	rules   map[string]Rule
	aliases map[string]string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		rules:   make(map[string]Rule),
		aliases: make(map[string]string),
	}
}

// Register adds the rule for typ.
func (r *Registry) Register(typ string, rule Rule) error {
	if !rule.valid() {
		return fmt.Errorf("blockgen: rule for %q must set exactly one of Value or Statement", typ)
	}
	if r.defined(typ) {
		return fmt.Errorf("blockgen: rule for %q already registered", typ)
	}
	r.rules[typ] = rule
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(typ string, rule Rule) {
	if err := r.Register(typ, rule); err != nil {
		panic(err)
	}
}

// Value registers a value rule. It panics if typ is already registered.
func (r *Registry) Value(typ string, fn ValueFunc) {
	r.MustRegister(typ, Rule{Value: fn})
}

// Statement registers a statement rule. It panics if typ is already registered.
func (r *Registry) Statement(typ string, fn StatementFunc) {
	r.MustRegister(typ, Rule{Statement: fn})
}

// Alias makes typ render with the rule of target.
func (r *Registry) Alias(typ, target string) error {
	if r.defined(typ) {
		return fmt.Errorf("blockgen: rule for %q already registered", typ)
	}
	if _, ok := r.resolve(target); !ok {
		return fmt.Errorf("blockgen: alias %q refers to unknown block type %q", typ, target)
	}
	r.aliases[typ] = target
	return nil
}

// MustAlias is like Alias but panics on error.
func (r *Registry) MustAlias(typ, target string) {
	if err := r.Alias(typ, target); err != nil {
		panic(err)
	}
}

// Override replaces the rule of typ, dropping any alias it had.
func (r *Registry) Override(typ string, rule Rule) error {
	if !rule.valid() {
		return fmt.Errorf("blockgen: rule for %q must set exactly one of Value or Statement", typ)
	}
	delete(r.aliases, typ)
	r.rules[typ] = rule
	return nil
}

// Lookup returns the rule for typ, following aliases.
func (r *Registry) Lookup(typ string) (Rule, bool) {
	return r.resolve(typ)
}

// Types returns every registered block type, sorted.
func (r *Registry) Types() []string {
	types := slices.Collect(maps.Keys(r.rules))
	types = append(types, slices.Collect(maps.Keys(r.aliases))...)
	slices.Sort(types)
	return types
}

// Clone returns an independent copy of the registry.
func (r *Registry) Clone() *Registry {
	return &Registry{
		rules:   maps.Clone(r.rules),
		aliases: maps.Clone(r.aliases),
	}
}

// Fingerprint returns a digest of the rule table. Rules are told apart by
// the name of their function, so registries built by the same code share a
// fingerprint.
func (r *Registry) Fingerprint() string {
	h := sha256.New()
	for _, typ := range slices.Sorted(maps.Keys(r.rules)) {
		rule := r.rules[typ]
		kind, fn := "value", any(rule.Value)
		if rule.Statement != nil {
			kind, fn = "statement", rule.Statement
		}
		fmt.Fprintf(h, "%s %s %s %t\n", typ, kind, funcName(fn), rule.SuppressPrefixSuffix)
	}
	for _, typ := range slices.Sorted(maps.Keys(r.aliases)) {
		fmt.Fprintf(h, "%s -> %s\n", typ, r.aliases[typ])
	}
	return hex.EncodeToString(h.Sum(nil))
}

func funcName(fn any) string {
	if f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer()); f != nil {
		return f.Name()
	}
	return ""
}

func (r *Registry) defined(typ string) bool {
	_, rule := r.rules[typ]
	_, alias := r.aliases[typ]
	return rule || alias
}

func (r *Registry) resolve(typ string) (Rule, bool) {
	for range len(r.aliases) + 1 {
		if rule, ok := r.rules[typ]; ok {
			return rule, true
		}
		target, ok := r.aliases[typ]
		if !ok {
			return Rule{}, false
		}
		typ = target
	}
	return Rule{}, false
}
