// Package config loads the splitter configuration from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/revelaction/subsent/split"
)

// Config selects how docs are split.
//
//	rules:
//	  pos: [VERB, ADJ]
//	  deps: [conj, ccomp]
//	  always: [ROOT]
//	resolver: one-pass
//	mode: sentence
type Config struct {
	Rules    *split.Rules `yaml:"rules"`
	Resolver string       `yaml:"resolver"`
	Mode     string       `yaml:"mode"`
}

// Default returns the configuration of split.New.
func Default() Config {
	rules := split.DefaultRules
	return Config{
		Rules:    &rules,
		Resolver: split.OnePassName,
		Mode:     split.ModeSentence.String(),
	}
}

// Load reads the YAML file at path. An empty path returns Default.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("IO error: %w", err)
	}

	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML configuration. Missing fields take their default
// value, unknown fields are an error.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	cfg.Rules = nil

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("YAML decoding error: %w", err)
	}

	if cfg.Rules == nil {
		rules := split.DefaultRules
		cfg.Rules = &rules
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the resolver and mode names.
func (c Config) Validate() error {
	if _, err := split.ParseResolver(c.Resolver); err != nil {
		return err
	}
	if _, err := split.ParseMode(c.Mode); err != nil {
		return err
	}
	if c.Rules != nil && len(c.Rules.Always) == 0 && (len(c.Rules.Pos) == 0 || len(c.Rules.Deps) == 0) {
		return errors.New("rules select no token: set always, or both pos and deps")
	}
	return nil
}

// Options returns the splitter options of the configuration.
func (c Config) Options(logger *zap.Logger) ([]split.Option, error) {
	resolver, err := split.ParseResolver(c.Resolver)
	if err != nil {
		return nil, err
	}
	mode, err := split.ParseMode(c.Mode)
	if err != nil {
		return nil, err
	}

	opts := []split.Option{
		split.WithResolver(resolver),
		split.WithMode(mode),
		split.WithLogger(logger),
	}
	if c.Rules != nil {
		opts = append(opts, split.WithRootFinder(c.Rules.RootFinder()))
	}
	return opts, nil
}

// Splitter builds the splitter of the configuration.
func (c Config) Splitter(logger *zap.Logger) (*split.Splitter, error) {
	opts, err := c.Options(logger)
	if err != nil {
		return nil, err
	}
	return split.New(opts...), nil
}
