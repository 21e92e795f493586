package gen

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		c, err := NewConfig()
		require.NoError(t, err)

		assert.Equal(t, DefaultIndent, c.Indent)
		assert.Equal(t, DefaultMaxDepth, c.MaxDepth)
		assert.Equal(t, DefaultCommentWrap, c.CommentWrap)
		assert.Equal(t, StyleVerbatim, c.NameStyle)
		assert.NotNil(t, c.Logger)
		assert.Empty(t, c.StatementPrefix)
		assert.Empty(t, c.StatementSuffix)
		assert.Empty(t, c.LoopTrap)
	})

	t.Run("first error is returned", func(t *testing.T) {
		_, err := NewConfig(WithMaxDepth(0), WithIndent(""))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "MaxDepth")
	})

	t.Run("MustNewConfig panics", func(t *testing.T) {
		assert.Panics(t, func() { MustNewConfig(WithCommentWrap(1)) })
		assert.NotPanics(t, func() { MustNewConfig(WithCommentWrap(80)) })
	})
}

func TestWithIndent(t *testing.T) {
	tests := []struct {
		name    string
		indent  string
		wantErr bool
	}{
		{"two spaces", "  ", false},
		{"four spaces", "    ", false},
		{"tab", "\t", false},
		{"empty", "", true},
		{"not whitespace", "--", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{}
			err := WithIndent(tt.indent)(c)

			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsConfigError(err))
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.indent, c.Indent)
			}
		})
	}
}

func TestInjectionOptions(t *testing.T) {
	c, err := NewConfig(
		WithStatementPrefix("highlight(%1)\n"),
		WithStatementSuffix("step(%1)\n"),
		WithLoopTrap("check()\n"),
	)
	require.NoError(t, err)

	assert.Equal(t, "highlight(%1)\n", c.StatementPrefix)
	assert.Equal(t, "step(%1)\n", c.StatementSuffix)
	assert.Equal(t, "check()\n", c.LoopTrap)
}

func TestWithNameStyle(t *testing.T) {
	c := &Config{}
	require.NoError(t, WithNameStyle(StyleSnake)(c))
	assert.Equal(t, StyleSnake, c.NameStyle)

	err := WithNameStyle("kebab")(c)
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestWithLogger(t *testing.T) {
	c := &Config{}
	require.Error(t, WithLogger(nil)(c))

	l := slog.New(slog.DiscardHandler)
	require.NoError(t, WithLogger(l)(c))
	assert.Same(t, l, c.Logger)
}

func TestApplyAll(t *testing.T) {
	c := &Config{}
	err := c.ApplyAll(WithMaxDepth(-1), WithIndent("x"), WithoutComments())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "MaxDepth")
	assert.Contains(t, err.Error(), "Indent")
	assert.True(t, c.OmitComments)
}

func TestConfigFingerprint(t *testing.T) {
	a := MustNewConfig()
	b := MustNewConfig()
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Len(t, a.Fingerprint(), 64)

	c := MustNewConfig(WithStatementSuffix("x\n"))
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())

	d := MustNewConfig(WithLogger(slog.Default()))
	assert.Equal(t, a.Fingerprint(), d.Fingerprint(), "logger does not affect output")
}
