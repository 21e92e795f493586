package blockgen_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/blockgen"
)

func TestCacheError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := blockgen.NewCacheError("get", "lua:x", errors.New("boom"))
		assert.Equal(t, `blockgen: cache get "lua:x": boom`, err.Error())

		err = blockgen.NewCacheError("clear", "", errors.New("boom"))
		assert.Equal(t, "blockgen: cache clear: boom", err.Error())
	})

	t.Run("Unwrap", func(t *testing.T) {
		err := blockgen.NewCacheError("set", "k", blockgen.ErrCacheClosed)
		assert.True(t, errors.Is(err, blockgen.ErrCacheClosed))
	})

	t.Run("IsCacheError", func(t *testing.T) {
		err := blockgen.NewCacheError("set", "k", blockgen.ErrCacheClosed)
		assert.True(t, blockgen.IsCacheError(fmt.Errorf("wrapper: %w", err)))
		assert.False(t, blockgen.IsCacheError(errors.New("other error")))
		assert.False(t, blockgen.IsCacheError(nil))
	})
}

func TestAggregateError(t *testing.T) {
	t.Run("nil when empty", func(t *testing.T) {
		assert.NoError(t, blockgen.NewAggregateError())
		assert.NoError(t, blockgen.NewAggregateError(nil, nil))
	})

	t.Run("single error is returned as is", func(t *testing.T) {
		e := errors.New("only")
		assert.Same(t, e, blockgen.NewAggregateError(nil, e))
	})

	t.Run("multiple errors", func(t *testing.T) {
		e1, e2 := errors.New("first"), errors.New("second")
		err := blockgen.NewAggregateError(e1, e2)
		assert.Equal(t, "blockgen: multiple errors:\n  [1] first\n  [2] second", err.Error())
		assert.True(t, errors.Is(err, e2))
	})
}
