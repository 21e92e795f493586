// blockgen renders workspace documents into Lua, PHP or Python sources.
//
// Usage:
//
//	blockgen [flags] <file or directory>...
//
// Run: go run ./cmd/blockgen -lang lua,python -out build examples/*.yaml
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/syssam/blockgen"
	"github.com/syssam/blockgen/cache/sqlcache"
	"github.com/syssam/blockgen/compiler"
	"github.com/syssam/blockgen/compiler/load"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "blockgen: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("blockgen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		configPath = fs.String("config", "", "YAML configuration file")
		langs      = fs.String("lang", "", "target languages, comma separated: "+strings.Join(compiler.Languages(), ", "))
		out        = fs.String("out", "", "output directory")
		workers    = fs.Int("workers", 0, "number of programs rendered in parallel (default GOMAXPROCS)")
		cacheSpec  = fs.String("cache", "", "SQL cache as dialect:dsn, e.g. sqlite:file:blockgen.db")
		cacheTTL   = fs.Duration("cache-ttl", 0, "lifetime of cache entries (0 keeps them)")
		prefix     = fs.String("prefix", "", "statement prefix; %1 is replaced by the block ID")
		suffix     = fs.String("suffix", "", "statement suffix; %1 is replaced by the block ID")
		loopTrap   = fs.String("loop-trap", "", "code injected at the start of loop and procedure bodies")
		verbose    = fs.Bool("v", false, "log debug output")
		watch      = fs.Bool("watch", false, "regenerate documents when they change")
	)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: blockgen [flags] <file or directory>...")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("no workspace documents given")
	}

	cfg := defaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = readConfig(*configPath); err != nil {
			return err
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "lang":
			cfg.Languages = strings.Split(*langs, ",")
		case "out":
			cfg.Out = *out
		case "workers":
			cfg.Workers = *workers
		case "cache":
			cfg.Cache = *cacheSpec
		case "cache-ttl":
			cfg.CacheTTL = *cacheTTL
		case "prefix":
			cfg.StatementPrefix = *prefix
		case "suffix":
			cfg.StatementSuffix = *suffix
		case "loop-trap":
			cfg.LoopTrap = *loopTrap
		}
	})

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	var cache blockgen.Cache
	switch {
	case cfg.Cache != "":
		c, err := sqlcache.OpenDSN(cfg.Cache)
		if err != nil {
			return err
		}
		defer c.Close()
		if err := c.Migrate(ctx); err != nil {
			return err
		}
		cache = c
	case *watch:
		cache = blockgen.NewMemoryCache()
	}

	opts := compiler.Options{
		Languages: cfg.Languages,
		OutDir:    cfg.Out,
		Workers:   cfg.Workers,
		Cache:     cache,
		CacheTTL:  cfg.CacheTTL,
		Logger:    logger,
		Generator: cfg.options(),
	}

	progs, err := loadAll(fs.Args())
	if err != nil {
		return err
	}
	if err := generate(ctx, logger, progs, opts); err != nil {
		return err
	}
	if !*watch {
		return nil
	}
	return watchDocuments(ctx, logger, fs.Args(), func(path string) error {
		prog, err := load.Load(path)
		if err != nil {
			return err
		}
		return generate(ctx, logger, []*load.Program{prog}, opts)
	})
}

// loadAll loads the documents named by paths. Directories contribute the
// documents directly inside them.
func loadAll(paths []string) ([]*load.Program, error) {
	var progs []*load.Program
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			dir, err := load.LoadDir(path)
			if err != nil {
				return nil, err
			}
			progs = append(progs, dir...)
			continue
		}
		prog, err := load.Load(path)
		if err != nil {
			return nil, err
		}
		progs = append(progs, prog)
	}
	return progs, nil
}

func generate(ctx context.Context, logger *slog.Logger, progs []*load.Program, opts compiler.Options) error {
	start := time.Now()
	m, err := compiler.GenerateFiles(ctx, progs, opts)
	if err != nil {
		return err
	}
	logger.Info("generation complete",
		"programs", len(progs),
		"files", m.FilesGenerated,
		"bytes", m.TotalBytes,
		"cache_hits", m.CacheHits,
		"duration", time.Since(start))
	return nil
}
