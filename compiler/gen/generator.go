package gen

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/syssam/blockgen/block"
)

// Generator renders workspaces into source code of one target language.
// A Generator is safe for concurrent use; every call runs its own Pass.
type Generator struct {
	dialect Dialect
	config  *Config
}

// New creates a generator for the dialect.
//
// Example:
//
//	import "github.com/syssam/blockgen/compiler/gen/python"
//
//	g, err := gen.New(python.New(), gen.WithIndent("    "))
//	if err != nil {
//		return err
//	}
//	code, err := g.WorkspaceToCode(ws)
func New(d Dialect, opts ...Option) (*Generator, error) {
	if d == nil {
		return nil, NewConfigError("Dialect", nil, "dialect cannot be nil")
	}
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return &Generator{dialect: d, config: cfg}, nil
}

// MustNew is like New but panics on error.
func MustNew(d Dialect, opts ...Option) *Generator {
	g, err := New(d, opts...)
	if err != nil {
		panic(err)
	}
	return g
}

// Dialect returns the target language of the generator.
func (g *Generator) Dialect() Dialect {
	return g.dialect
}

// Config returns the generator settings.
func (g *Generator) Config() *Config {
	return g.config
}

// Fingerprint returns a digest of what shapes the output besides the
// workspace: the language, its rule table and the settings.
func (g *Generator) Fingerprint() string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s", g.dialect.Name(), g.dialect.Registry().Fingerprint(), g.config.Fingerprint())
	return hex.EncodeToString(h.Sum(nil))
}

// NewPass starts a generation pass over ws. All workspace variables,
// developer variables and procedure names are reserved before the dialect
// Init hook runs.
func (g *Generator) NewPass(ws *block.Workspace) (*Pass, error) {
	if ws == nil {
		ws = block.NewWorkspace()
	}
	p := newPass(g.dialect, g.config, ws)
	if err := p.init(); err != nil {
		return nil, err
	}
	return p, nil
}

// WorkspaceToCode renders every top-level block of ws and returns the
// assembled program.
func (g *Generator) WorkspaceToCode(ws *block.Workspace) (string, error) {
	p, err := g.NewPass(ws)
	if err != nil {
		return "", err
	}
	return g.run(p, p.Workspace().TopBlocks)
}

// BlockToCode renders a program from the chain starting at root. Names
// are reserved from the workspace root belongs to.
func (g *Generator) BlockToCode(root block.Block) (string, error) {
	if root == nil {
		return "", nil
	}
	p, err := g.NewPass(root.Workspace())
	if err != nil {
		return "", err
	}
	return g.run(p, []block.Block{root})
}

var (
	leadingBlankLines  = regexp.MustCompile(`^\s+\n`)
	trailingBlankLines = regexp.MustCompile(`\n\s+$`)
	trailingSpaces     = regexp.MustCompile(`[ \t]+\n`)
)

func (g *Generator) run(p *Pass, tops []block.Block) (string, error) {
	start := time.Now()
	parts := make([]string, 0, len(tops))
	for _, top := range tops {
		frag := p.blockToCode(top, false)
		if p.err != nil {
			g.config.Logger.Debug("generation failed",
				"language", g.dialect.Name(), "block", top.Type(), "error", p.err)
			return "", p.err
		}
		if frag.code == "" {
			continue
		}
		line := frag.code
		if frag.value {
			line = g.dialect.ScrubNakedValue(line)
			if !frag.suppress {
				line = p.StatementPrefix(top) + line + p.StatementSuffix(top)
			}
			line = frag.comment + line
		}
		parts = append(parts, line)
	}
	code := g.dialect.Finish(p, strings.Join(parts, "\n"))
	code = leadingBlankLines.ReplaceAllString(code, "")
	code = trailingBlankLines.ReplaceAllString(code, "\n")
	code = trailingSpaces.ReplaceAllString(code, "\n")
	g.config.Logger.Debug("generated program",
		"language", g.dialect.Name(),
		"blocks", len(tops),
		"definitions", p.Definitions().Len(),
		"bytes", len(code),
		"duration", time.Since(start))
	return code, nil
}
