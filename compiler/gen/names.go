package gen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-openapi/inflect"
)

// NameType is the role a logical name plays in generated code. Names of
// different roles live in separate tables but never collide with each
// other in the output.
type NameType string

// Name roles.
const (
	NameVariable          NameType = "VARIABLE"
	NameDeveloperVariable NameType = "DEVELOPER_VARIABLE"
	NameProcedure         NameType = "PROCEDURE"
)

// NameStyle controls how logical names are spelled before sanitizing.
type NameStyle string

// Name styles.
const (
	StyleVerbatim NameStyle = "verbatim"
	StyleSnake    NameStyle = "snake"
	StyleCamel    NameStyle = "camel"
)

// Valid reports whether s is a known style.
func (s NameStyle) Valid() bool {
	switch s {
	case StyleVerbatim, StyleSnake, StyleCamel:
		return true
	}
	return false
}

func (s NameStyle) apply(name string) string {
	switch s {
	case StyleSnake:
		return inflect.Underscore(name)
	case StyleCamel:
		return inflect.CamelizeDownFirst(strings.ReplaceAll(name, " ", "_"))
	default:
		return name
	}
}

// NameDB maps logical names to identifiers that are valid in the target
// language, distinct from its reserved words and from each other.
// Lookups of the same logical name and role return the same identifier
// until Reset. Logical names compare case-insensitively.
type NameDB struct {
	reserved map[string]struct{}
	prefix   string
	style    NameStyle
	db       map[NameType]map[string]string
	used     map[string]struct{}
}

// NewNameDB returns a name table. Variable identifiers are rendered with
// the given prefix, e.g. "$" for PHP.
func NewNameDB(reserved []string, variablePrefix string) *NameDB {
	n := &NameDB{
		reserved: make(map[string]struct{}, len(reserved)),
		prefix:   variablePrefix,
		style:    StyleVerbatim,
	}
	for _, w := range reserved {
		n.reserved[w] = struct{}{}
	}
	n.Reset()
	return n
}

// SetStyle sets the spelling applied to logical names.
func (n *NameDB) SetStyle(s NameStyle) {
	if s.Valid() {
		n.style = s
	}
}

// Reset forgets every name handed out so far.
func (n *NameDB) Reset() {
	n.db = make(map[NameType]map[string]string)
	n.used = make(map[string]struct{})
}

// GetName returns the identifier for a logical name of the given role.
func (n *NameDB) GetName(name string, typ NameType) string {
	key := strings.ToLower(name)
	prefix := n.prefixFor(typ)
	if table, ok := n.db[typ]; ok {
		if safe, ok := table[key]; ok {
			return prefix + safe
		}
	}
	safe := n.GetDistinctName(name, typ)
	if n.db[typ] == nil {
		n.db[typ] = make(map[string]string)
	}
	n.db[typ][key] = strings.TrimPrefix(safe, prefix)
	return safe
}

// GetDistinctName returns a new identifier based on name that is not yet in
// use and not reserved. It is not remembered under name, so two calls
// return different identifiers.
func (n *NameDB) GetDistinctName(name string, typ NameType) string {
	safe := n.SafeName(name)
	candidate := safe
	for i := 2; ; i++ {
		_, used := n.used[candidate]
		_, reserved := n.reserved[candidate]
		if !used && !reserved {
			break
		}
		candidate = safe + strconv.Itoa(i)
	}
	n.used[candidate] = struct{}{}
	return n.prefixFor(typ) + candidate
}

// SafeName converts name into a legal identifier: letters, digits and
// underscores, never starting with a digit.
func (n *NameDB) SafeName(name string) string {
	name = n.style.apply(name)
	if name == "" {
		return "unnamed"
	}
	var b strings.Builder
	for _, r := range strings.ReplaceAll(name, " ", "_") {
		switch {
		case r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r < 0x80:
			b.WriteByte('_')
		default:
			for _, c := range []byte(string(r)) {
				fmt.Fprintf(&b, "_%02X", c)
			}
		}
	}
	safe := b.String()
	if safe[0] >= '0' && safe[0] <= '9' {
		safe = "my_" + safe
	}
	return safe
}

func (n *NameDB) prefixFor(typ NameType) string {
	if typ == NameVariable || typ == NameDeveloperVariable {
		return n.prefix
	}
	return ""
}
