package gen

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/syssam/blockgen"
	"github.com/syssam/blockgen/block"
)

// Job is one program to generate: a workspace rendered by a generator.
type Job struct {
	// Name is the output file name without extension.
	Name      string
	Workspace *block.Workspace
	Generator *Generator
	// Fingerprint identifies the workspace contents. Jobs without a
	// fingerprint bypass the cache.
	Fingerprint string
}

func (j Job) cacheKey() blockgen.CacheKey {
	return blockgen.CacheKey{
		Language:  j.Generator.Dialect().Name(),
		Workspace: j.Fingerprint,
		Options:   j.Generator.Fingerprint(),
	}
}

// Writer renders jobs in parallel and writes each program to disk.
type Writer struct {
	outDir  string
	workers int
	cache   blockgen.Cache
	ttl     time.Duration
	logger  *slog.Logger

	// Metrics for performance monitoring
	mu      sync.Mutex
	metrics *WriterMetrics
}

// WriterMetrics tracks generation performance
type WriterMetrics struct {
	FilesGenerated int
	TotalBytes     int64
	CacheHits      int
	GenerateTime   int64 // nanoseconds
	WriteTime      int64 // nanoseconds
}

// NewWriter creates a writer that writes into outDir.
func NewWriter(outDir string) *Writer {
	return &Writer{
		outDir:  outDir,
		workers: runtime.GOMAXPROCS(0),
		logger:  slog.New(slog.DiscardHandler),
		metrics: &WriterMetrics{},
	}
}

// WithWorkers sets the number of parallel workers.
func (w *Writer) WithWorkers(n int) *Writer {
	if n > 0 {
		w.workers = n
	}
	return w
}

// WithCache makes the writer reuse programs generated earlier for the same
// workspace, language and settings. Entries expire after ttl; 0 keeps
// them forever.
func (w *Writer) WithCache(c blockgen.Cache, ttl time.Duration) *Writer {
	w.cache = c
	w.ttl = ttl
	return w
}

// WithLogger sets the logger.
func (w *Writer) WithLogger(l *slog.Logger) *Writer {
	if l != nil {
		w.logger = l
	}
	return w
}

// Metrics returns a snapshot of the generation metrics.
func (w *Writer) Metrics() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return *w.metrics
}

// Path returns the file a job is written to.
func (w *Writer) Path(j Job) string {
	return filepath.Join(w.outDir, j.Name+"."+j.Generator.Dialect().Extension())
}

// Write generates every job and writes the results. It stops at the first
// failure and returns it. Jobs that would write the same file are rejected
// before anything is generated.
func (w *Writer) Write(ctx context.Context, jobs ...Job) error {
	paths := make(map[string]bool, len(jobs))
	for _, j := range jobs {
		if j.Generator == nil {
			return NewConfigError("Generator", nil, "job "+j.Name+" has no generator")
		}
		path := w.Path(j)
		if paths[path] {
			return NewConfigError("Name", j.Name, "more than one job writes "+path)
		}
		paths[path] = true
	}
	// Ensure output directory exists
	if err := os.MkdirAll(w.outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)

	for _, j := range jobs {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.writeJob(ctx, j)
			}
		})
	}

	return eg.Wait()
}

// writeJob generates and writes a single job.
func (w *Writer) writeJob(ctx context.Context, j Job) error {
	// 1. Generate, or reuse a cached program
	start := time.Now()
	code, hit, err := w.generate(ctx, j)
	if err != nil {
		return fmt.Errorf("generate %s: %w", j.Name, err)
	}
	genTime := time.Since(start)

	// 2. Write file
	start = time.Now()
	path := w.Path(j)
	if err := os.WriteFile(path, []byte(code), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	// Update metrics
	w.mu.Lock()
	w.metrics.FilesGenerated++
	w.metrics.TotalBytes += int64(len(code))
	w.metrics.GenerateTime += int64(genTime)
	w.metrics.WriteTime += int64(time.Since(start))
	if hit {
		w.metrics.CacheHits++
	}
	w.mu.Unlock()

	w.logger.Info("wrote file",
		"path", path,
		"language", j.Generator.Dialect().Name(),
		"bytes", len(code),
		"cached", hit)
	return nil
}

func (w *Writer) generate(ctx context.Context, j Job) (string, bool, error) {
	useCache := w.cache != nil && j.Fingerprint != ""
	var key string
	if useCache {
		key = j.cacheKey().String()
		cached, err := w.cache.Get(ctx, key)
		if err != nil {
			return "", false, err
		}
		if cached != nil {
			w.logger.Debug("cache hit", "job", j.Name, "key", key)
			return string(cached), true, nil
		}
	}
	code, err := j.Generator.WorkspaceToCode(j.Workspace)
	if err != nil {
		return "", false, err
	}
	if useCache {
		if err := w.cache.Set(ctx, key, []byte(code), w.ttl); err != nil {
			return "", false, err
		}
	}
	return code, false, nil
}
