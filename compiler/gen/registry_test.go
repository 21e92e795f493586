package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/blockgen/block"
)

func constValue(code string) ValueFunc {
	return func(block.Block, *Pass) (Expr, error) { return E(code, OrderAtomic), nil }
}

func constStatement(code string) StatementFunc {
	return func(block.Block, *Pass) (string, error) { return code, nil }
}

func TestRegistry(t *testing.T) {
	t.Run("register and lookup", func(t *testing.T) {
		r := NewRegistry()
		r.Value("num", constValue("1"))
		r.Statement("say", constStatement("say\n"))

		rule, ok := r.Lookup("num")
		require.True(t, ok)
		assert.NotNil(t, rule.Value)
		assert.Nil(t, rule.Statement)

		_, ok = r.Lookup("missing")
		assert.False(t, ok)
	})

	t.Run("duplicate registration fails", func(t *testing.T) {
		r := NewRegistry()
		require.NoError(t, r.Register("num", Rule{Value: constValue("1")}))
		assert.Error(t, r.Register("num", Rule{Value: constValue("2")}))
		assert.Panics(t, func() { r.Value("num", constValue("3")) })
	})

	t.Run("rule must set exactly one renderer", func(t *testing.T) {
		r := NewRegistry()
		assert.Error(t, r.Register("empty", Rule{}))
		assert.Error(t, r.Register("both", Rule{Value: constValue("1"), Statement: constStatement("x\n")}))
	})

	t.Run("alias", func(t *testing.T) {
		r := NewRegistry()
		r.Statement("controls_if", constStatement("if\n"))
		require.NoError(t, r.Alias("controls_ifelse", "controls_if"))

		rule, ok := r.Lookup("controls_ifelse")
		require.True(t, ok)
		code, err := rule.Statement(nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "if\n", code)

		assert.Error(t, r.Alias("controls_ifelse", "controls_if"), "alias twice")
		assert.Error(t, r.Alias("other", "missing"))
		assert.Panics(t, func() { r.MustAlias("other", "missing") })
	})

	t.Run("override replaces rule and alias", func(t *testing.T) {
		r := NewRegistry()
		r.Value("a", constValue("a"))
		r.MustAlias("b", "a")
		require.NoError(t, r.Override("b", Rule{Value: constValue("b")}))

		rule, _ := r.Lookup("b")
		expr, _ := rule.Value(nil, nil)
		assert.Equal(t, "b", expr.Code)
		assert.Error(t, r.Override("c", Rule{}))
	})

	t.Run("types and clone", func(t *testing.T) {
		r := NewRegistry()
		r.Value("zeta", constValue("z"))
		r.Value("alpha", constValue("a"))
		r.MustAlias("beta", "alpha")
		assert.Equal(t, []string{"alpha", "beta", "zeta"}, r.Types())

		c := r.Clone()
		c.Value("gamma", constValue("g"))
		_, ok := r.Lookup("gamma")
		assert.False(t, ok)
		assert.Len(t, c.Types(), 4)
	})

	t.Run("fingerprint follows the rules", func(t *testing.T) {
		build := func() *Registry {
			r := NewRegistry()
			r.Value("a", constValue("a"))
			r.Statement("s", constStatement("s\n"))
			r.MustAlias("b", "a")
			return r
		}
		r := build()
		assert.Len(t, r.Fingerprint(), 64)
		assert.Equal(t, r.Fingerprint(), build().Fingerprint())
		assert.Equal(t, r.Fingerprint(), r.Clone().Fingerprint())

		replaced := build()
		require.NoError(t, replaced.Override("a", Rule{Value: func(block.Block, *Pass) (Expr, error) {
			return E("x", OrderAtomic), nil
		}}))
		assert.NotEqual(t, r.Fingerprint(), replaced.Fingerprint())

		suppressed := build()
		require.NoError(t, suppressed.Override("s", Rule{Statement: constStatement("s\n"), SuppressPrefixSuffix: true}))
		assert.NotEqual(t, r.Fingerprint(), suppressed.Fingerprint())

		aliased := build()
		aliased.MustAlias("c", "a")
		assert.NotEqual(t, r.Fingerprint(), aliased.Fingerprint())
	})
}
