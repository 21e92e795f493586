package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/syssam/blockgen/compiler/gen"
)

// config is the YAML configuration file. Flags given on the command line
// override its values.
type config struct {
	Languages       []string      `yaml:"languages"`
	Out             string        `yaml:"out"`
	Workers         int           `yaml:"workers"`
	Cache           string        `yaml:"cache"`
	CacheTTL        time.Duration `yaml:"cache_ttl"`
	Indent          string        `yaml:"indent"`
	StatementPrefix string        `yaml:"statement_prefix"`
	StatementSuffix string        `yaml:"statement_suffix"`
	LoopTrap        string        `yaml:"loop_trap"`
	MaxDepth        int           `yaml:"max_depth"`
	NameStyle       string        `yaml:"name_style"`
	Comments        *bool         `yaml:"comments"`
	CommentWrap     int           `yaml:"comment_wrap"`
}

func defaultConfig() *config {
	return &config{
		Languages: []string{"python"},
		Out:       "out",
	}
}

// readConfig reads the configuration file at path over the defaults.
func readConfig(path string) (*config, error) {
	cfg := defaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// options maps the generator settings to gen options.
func (c *config) options() []gen.Option {
	var opts []gen.Option
	if c.Indent != "" {
		opts = append(opts, gen.WithIndent(c.Indent))
	}
	if c.StatementPrefix != "" {
		opts = append(opts, gen.WithStatementPrefix(c.StatementPrefix))
	}
	if c.StatementSuffix != "" {
		opts = append(opts, gen.WithStatementSuffix(c.StatementSuffix))
	}
	if c.LoopTrap != "" {
		opts = append(opts, gen.WithLoopTrap(c.LoopTrap))
	}
	if c.MaxDepth != 0 {
		opts = append(opts, gen.WithMaxDepth(c.MaxDepth))
	}
	if c.NameStyle != "" {
		opts = append(opts, gen.WithNameStyle(gen.NameStyle(c.NameStyle)))
	}
	if c.Comments != nil && !*c.Comments {
		opts = append(opts, gen.WithoutComments())
	}
	if c.CommentWrap != 0 {
		opts = append(opts, gen.WithCommentWrap(c.CommentWrap))
	}
	return opts
}
