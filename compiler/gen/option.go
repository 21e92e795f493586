package gen

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Default configuration values.
const (
	DefaultIndent      = "  "
	DefaultMaxDepth    = 512
	DefaultCommentWrap = 60
)

// Config holds the settings of a generator.
type Config struct {
	// Indent is one indentation unit.
	Indent string
	// StatementPrefix is injected before every statement. "%1" is
	// replaced by the quoted block ID.
	StatementPrefix string
	// StatementSuffix is injected after every statement.
	StatementSuffix string
	// LoopTrap is injected at the start of every loop and procedure body.
	LoopTrap string
	// MaxDepth bounds block nesting.
	MaxDepth int
	// NameStyle is applied to logical names before sanitizing.
	NameStyle NameStyle
	// OmitComments drops block comments from the output.
	OmitComments bool
	// CommentWrap is the column block comments wrap at.
	CommentWrap int
	// Logger receives debug output. Defaults to a discarding logger.
	Logger *slog.Logger
}

// Fingerprint returns a digest of the settings that affect generated code.
func (c *Config) Fingerprint() string {
	h := sha256.New()
	fmt.Fprintf(h, "%q|%q|%q|%q|%d|%s|%t|%d",
		c.Indent, c.StatementPrefix, c.StatementSuffix, c.LoopTrap,
		c.MaxDepth, c.NameStyle, c.OmitComments, c.CommentWrap)
	return hex.EncodeToString(h.Sum(nil))
}

// Option configures code generation.
type Option func(*Config) error

// WithIndent sets the indentation unit. It must be non-empty whitespace.
func WithIndent(indent string) Option {
	return func(c *Config) error {
		if indent == "" || strings.TrimLeft(indent, " \t") != "" {
			return NewConfigError("Indent", indent, "indent must be non-empty spaces or tabs")
		}
		c.Indent = indent
		return nil
	}
}

// WithStatementPrefix sets the snippet injected before every statement.
func WithStatementPrefix(prefix string) Option {
	return func(c *Config) error {
		c.StatementPrefix = prefix
		return nil
	}
}

// WithStatementSuffix sets the snippet injected after every statement.
func WithStatementSuffix(suffix string) Option {
	return func(c *Config) error {
		c.StatementSuffix = suffix
		return nil
	}
}

// WithLoopTrap sets the snippet injected at the start of loop and procedure bodies.
func WithLoopTrap(trap string) Option {
	return func(c *Config) error {
		c.LoopTrap = trap
		return nil
	}
}

// WithMaxDepth bounds the block nesting depth.
func WithMaxDepth(depth int) Option {
	return func(c *Config) error {
		if depth <= 0 {
			return NewConfigError("MaxDepth", depth, "max depth must be positive")
		}
		c.MaxDepth = depth
		return nil
	}
}

// WithNameStyle sets the spelling of generated identifiers.
func WithNameStyle(style NameStyle) Option {
	return func(c *Config) error {
		if !style.Valid() {
			return NewConfigError("NameStyle", style, "unsupported name style; use verbatim, snake, or camel")
		}
		c.NameStyle = style
		return nil
	}
}

// WithoutComments drops block comments from the output.
func WithoutComments() Option {
	return func(c *Config) error {
		c.OmitComments = true
		return nil
	}
}

// WithCommentWrap sets the column block comments wrap at.
func WithCommentWrap(width int) Option {
	return func(c *Config) error {
		if width < 10 {
			return NewConfigError("CommentWrap", width, "comment wrap must be at least 10")
		}
		c.CommentWrap = width
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with defaults and the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Indent:      DefaultIndent,
		MaxDepth:    DefaultMaxDepth,
		NameStyle:   StyleVerbatim,
		CommentWrap: DefaultCommentWrap,
		Logger:      slog.New(slog.DiscardHandler),
	}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}
