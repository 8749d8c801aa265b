// Package config holds the harness's typed configuration, following the
// teacher's cmd/ubtconv/config.go Config-struct-plus-Validate pattern:
// flags are parsed into a Config by the CLI layer, then Validate is
// called once before anything runs.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrConflictingStreams is returned when the input and output paths are
// the same non-empty string, which would make the harness read its own
// output mid-run. Paths are compared as given, not resolved.
var ErrConflictingStreams = errors.New("config: input and output path are identical")

// Config is the harness's resolved configuration: spec.md §6.2's CLI
// surface (InputPath/OutputPath/Help), plus the optional additive YAML
// defaults file (SPEC_FULL.md §3).
type Config struct {
	// InputPath is the -i argument; empty means standard input.
	InputPath string
	// OutputPath is the -o argument; empty means standard output.
	OutputPath string
	// Help records -h. The rbharness CLI handles -h before it builds a
	// Config and leaves this field false.
	Help bool
	// MaxNodes bounds the container's arena (0 = unbounded); it is set
	// only from a YAML defaults file via LoadDefaultsYAML (the CLI's
	// -defaults flag), not by a flag of its own.
	MaxNodes int
}

// Validate reports a conflict between the configured input and output
// paths, or a negative MaxNodes. Everything else about Config is
// validated by the CLI flag
// parser itself (spec.md §6.2's "unknown option"/"missing argument"
// diagnostics) before a Config is ever built.
func (c Config) Validate() error {
	if c.InputPath != "" && c.InputPath == c.OutputPath {
		return fmt.Errorf("%w: %q", ErrConflictingStreams, c.InputPath)
	}
	if c.MaxNodes < 0 {
		return fmt.Errorf("config: max-nodes must not be negative, got %d", c.MaxNodes)
	}
	return nil
}

// defaults holds the subset of Config an operator may override from a
// YAML file, named identically to the Config fields they feed.
type defaults struct {
	MaxNodes int `yaml:"max_nodes"`
}

// LoadDefaultsYAML reads path and applies any overrides onto c, returning
// the updated Config. It is never invoked automatically by the CLI: a
// caller who wants reproducible non-default bounds opts in explicitly.
func LoadDefaultsYAML(c Config, path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("config: read defaults file: %w", err)
	}
	var d defaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return c, fmt.Errorf("config: parse defaults file: %w", err)
	}
	if d.MaxNodes != 0 {
		c.MaxNodes = d.MaxNodes
	}
	return c, nil
}
