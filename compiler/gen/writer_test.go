package gen

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/blockgen"
	"github.com/syssam/blockgen/block"
)

func TestWriter(t *testing.T) {
	ctx := context.Background()

	t.Run("writes every job", func(t *testing.T) {
		dir := t.TempDir()
		g := MustNew(newToyDialect())
		w := NewWriter(dir).WithWorkers(2)

		err := w.Write(ctx,
			Job{Name: "one", Workspace: block.NewWorkspace().Add(say(num("1"))), Generator: g},
			Job{Name: "two", Workspace: block.NewWorkspace().Add(say(num("2"))), Generator: g},
		)
		require.NoError(t, err)

		data, err := os.ReadFile(filepath.Join(dir, "one.toy"))
		require.NoError(t, err)
		assert.Equal(t, "say 1\n", string(data))

		data, err = os.ReadFile(filepath.Join(dir, "two.toy"))
		require.NoError(t, err)
		assert.Equal(t, "say 2\n", string(data))

		m := w.Metrics()
		assert.Equal(t, 2, m.FilesGenerated)
		assert.Equal(t, int64(12), m.TotalBytes)
		assert.Zero(t, m.CacheHits)
	})

	t.Run("reuses cached programs", func(t *testing.T) {
		dir := t.TempDir()
		cache := blockgen.NewMemoryCache()
		g := MustNew(newToyDialect())
		job := Job{
			Name:        "prog",
			Workspace:   block.NewWorkspace().Add(say(num("1"))),
			Generator:   g,
			Fingerprint: "ws1",
		}

		w := NewWriter(dir).WithCache(cache, 0)
		require.NoError(t, w.Write(ctx, job))
		assert.Equal(t, 1, cache.Len())

		// A workspace with the same fingerprint is served from the cache.
		job.Workspace = block.NewWorkspace().Add(say(num("2")))
		require.NoError(t, w.Write(ctx, job))
		assert.Equal(t, 1, w.Metrics().CacheHits)

		data, err := os.ReadFile(w.Path(job))
		require.NoError(t, err)
		assert.Equal(t, "say 1\n", string(data))

		// Different settings miss.
		job.Generator = MustNew(newToyDialect(), WithStatementPrefix("p(%1)\n"))
		require.NoError(t, w.Write(ctx, job))
		assert.Equal(t, 1, w.Metrics().CacheHits)
		assert.Equal(t, 2, cache.Len())
	})

	t.Run("custom rules do not share cache entries", func(t *testing.T) {
		cache := blockgen.NewMemoryCache()
		w := NewWriter(t.TempDir()).WithCache(cache, 0)
		job := Job{
			Name:        "prog",
			Workspace:   block.NewWorkspace().Add(say(num("1"))),
			Generator:   MustNew(newToyDialect()),
			Fingerprint: "ws1",
		}
		require.NoError(t, w.Write(ctx, job))

		custom := newToyDialect()
		custom.reg = custom.reg.Clone()
		require.NoError(t, custom.reg.Override("say", Rule{Statement: func(block.Block, *Pass) (string, error) {
			return "shout\n", nil
		}}))
		job.Generator = MustNew(custom)
		require.NoError(t, w.Write(ctx, job))

		assert.Zero(t, w.Metrics().CacheHits)
		assert.Equal(t, 2, cache.Len())
		data, err := os.ReadFile(w.Path(job))
		require.NoError(t, err)
		assert.Equal(t, "shout\n", string(data))
	})

	t.Run("jobs without fingerprint bypass the cache", func(t *testing.T) {
		cache := blockgen.NewMemoryCache()
		w := NewWriter(t.TempDir()).WithCache(cache, 0)
		job := Job{Name: "x", Workspace: block.NewWorkspace().Add(say(nil)), Generator: MustNew(newToyDialect())}
		require.NoError(t, w.Write(ctx, job))
		assert.Zero(t, cache.Len())
	})

	t.Run("generation errors fail the write", func(t *testing.T) {
		w := NewWriter(t.TempDir())
		err := w.Write(ctx, Job{
			Name:      "broken",
			Workspace: block.NewWorkspace().Add(say(block.New("nope"))),
			Generator: MustNew(newToyDialect()),
		})
		require.Error(t, err)
		assert.True(t, IsUnknownBlockError(err))
		assert.Contains(t, err.Error(), "generate broken")
	})

	t.Run("duplicate output files", func(t *testing.T) {
		dir := t.TempDir()
		g := MustNew(newToyDialect())
		w := NewWriter(dir)
		err := w.Write(ctx,
			Job{Name: "counter", Workspace: block.NewWorkspace().Add(say(num("1"))), Generator: g},
			Job{Name: "other", Workspace: block.NewWorkspace().Add(say(num("2"))), Generator: g},
			Job{Name: "counter", Workspace: block.NewWorkspace().Add(say(num("3"))), Generator: g},
		)
		require.True(t, IsConfigError(err))
		assert.Contains(t, err.Error(), "counter.toy")
		assert.NoFileExists(t, filepath.Join(dir, "counter.toy"))
		assert.NoFileExists(t, filepath.Join(dir, "other.toy"))
		assert.Zero(t, w.Metrics().FilesGenerated)
	})

	t.Run("missing generator", func(t *testing.T) {
		err := NewWriter(t.TempDir()).Write(ctx, Job{Name: "x"})
		assert.True(t, IsConfigError(err))
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(ctx)
		cancel()
		err := NewWriter(t.TempDir()).Write(ctx, Job{Name: "x", Generator: MustNew(newToyDialect())})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
