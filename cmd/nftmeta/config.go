package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/reoring/nftmeta"
	"github.com/reoring/nftmeta/rules"
)

// Config is the optional YAML configuration file. Command-line flags win over
// file values.
type Config struct {
	Language string `yaml:"language"`
	Strict   bool   `yaml:"strict"`
	// CheckAddresses defaults to true when unset.
	CheckAddresses *bool  `yaml:"checkAddresses"`
	Output         string `yaml:"output"`
	MaxBytes       int64  `yaml:"maxBytes"`
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) check() error {
	switch c.Output {
	case "", "text", "json":
	default:
		return fmt.Errorf("config: output must be text or json, got %q", c.Output)
	}
	if c.MaxBytes < 0 {
		return fmt.Errorf("config: maxBytes must be >= 0, got %d", c.MaxBytes)
	}
	return nil
}

// overlay applies flags the user set explicitly on top of the file values.
func (c Config) overlay(cmd *cobra.Command, a *app) Config {
	f := cmd.Flags()
	if f.Changed("lang") {
		c.Language = a.lang
	}
	if f.Changed("strict") {
		c.Strict = a.strict
	}
	if f.Changed("no-address-check") {
		v := !a.noAddress
		c.CheckAddresses = &v
	}
	if f.Changed("output") {
		c.Output = a.output
	}
	if f.Changed("max-bytes") {
		c.MaxBytes = a.maxBytes
	}
	if c.Output == "" {
		c.Output = "text"
	}
	return c
}

func (c Config) parseOpt() nftmeta.ParseOpt {
	opt := nftmeta.ParseOpt{}
	if c.Strict {
		opt = nftmeta.StrictParseOpt()
	}
	opt.MaxBytes = c.MaxBytes
	return opt
}

func (c Config) ruleOpts() []rules.Option {
	if c.CheckAddresses != nil && !*c.CheckAddresses {
		return []rules.Option{rules.WithoutAddressCheck()}
	}
	return nil
}
