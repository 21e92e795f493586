// Package compiler ties workspace loading and code generation together:
// it maps language names to dialects and renders loaded programs into
// source files.
package compiler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/syssam/blockgen"
	"github.com/syssam/blockgen/block"
	"github.com/syssam/blockgen/compiler/gen"
	"github.com/syssam/blockgen/compiler/gen/lua"
	"github.com/syssam/blockgen/compiler/gen/php"
	"github.com/syssam/blockgen/compiler/gen/python"
	"github.com/syssam/blockgen/compiler/load"
)

// ErrUnknownLanguage is returned for target languages without a dialect.
var ErrUnknownLanguage = errors.New("compiler: unknown language")

var dialects = map[string]func() gen.Dialect{
	"lua":    func() gen.Dialect { return lua.New() },
	"php":    func() gen.Dialect { return php.New() },
	"python": func() gen.Dialect { return python.New() },
}

var aliases = map[string]string{
	"py": "python",
}

// Languages returns the names of the supported target languages, sorted.
func Languages() []string {
	langs := make([]string, 0, len(dialects))
	for name := range dialects {
		langs = append(langs, name)
	}
	slices.Sort(langs)
	return langs
}

// NewDialect returns the dialect of the named language. Names are case
// insensitive.
func NewDialect(lang string) (gen.Dialect, error) {
	name := strings.ToLower(strings.TrimSpace(lang))
	if alias, ok := aliases[name]; ok {
		name = alias
	}
	newDialect, ok := dialects[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (supported: %s)", ErrUnknownLanguage, lang, strings.Join(Languages(), ", "))
	}
	return newDialect(), nil
}

// Generate renders ws in the named language.
func Generate(ws *block.Workspace, lang string, opts ...gen.Option) (string, error) {
	d, err := NewDialect(lang)
	if err != nil {
		return "", err
	}
	g, err := gen.New(d, opts...)
	if err != nil {
		return "", err
	}
	return g.WorkspaceToCode(ws)
}

// Options configures GenerateFiles.
type Options struct {
	// Languages are the target languages. Every program is rendered in
	// each of them.
	Languages []string
	// OutDir is the directory generated files are written to.
	OutDir string
	// Workers bounds the number of programs rendered in parallel.
	// Defaults to GOMAXPROCS.
	Workers int
	// Cache, if set, stores generated programs by workspace fingerprint.
	Cache    blockgen.Cache
	CacheTTL time.Duration
	Logger   *slog.Logger
	// Generator holds the code generation options.
	Generator []gen.Option
}

// GenerateFiles renders every program in every language of o and writes
// the results to o.OutDir as <name>.<extension>. Invalid languages and
// options are all reported together before anything is generated.
func GenerateFiles(ctx context.Context, progs []*load.Program, o Options) (gen.WriterMetrics, error) {
	logger := o.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	opts := append([]gen.Option{gen.WithLogger(logger)}, o.Generator...)

	var (
		errs []error
		gens []*gen.Generator
	)
	if len(o.Languages) == 0 {
		errs = append(errs, gen.NewConfigError("Languages", nil, "at least one language is required"))
	}
	for _, lang := range o.Languages {
		d, err := NewDialect(lang)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		g, err := gen.New(d, opts...)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		gens = append(gens, g)
	}
	if err := blockgen.NewAggregateError(errs...); err != nil {
		return gen.WriterMetrics{}, err
	}

	jobs := make([]gen.Job, 0, len(progs)*len(gens))
	for _, p := range progs {
		for _, g := range gens {
			jobs = append(jobs, gen.Job{
				Name:        p.Name,
				Workspace:   p.Workspace,
				Generator:   g,
				Fingerprint: p.Fingerprint,
			})
		}
	}
	w := gen.NewWriter(o.OutDir).
		WithWorkers(o.Workers).
		WithLogger(logger)
	if o.Cache != nil {
		w.WithCache(o.Cache, o.CacheTTL)
	}
	err := w.Write(ctx, jobs...)
	return w.Metrics(), err
}
