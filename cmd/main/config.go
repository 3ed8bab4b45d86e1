package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/natefinch/atomic"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/CTAG07/Babble/internal/corpus"
	"github.com/CTAG07/Babble/pkg/markov"
)

// Config is the optional configuration file. Every field supplies the
// default for the flag of the same name when that flag is not set on the
// command line. Pointer fields distinguish "not set" from zero values.
type Config struct {
	Corpus      string `json:"corpus,omitempty" yaml:"corpus,omitempty"`
	CorpusDB    string `json:"corpus_db,omitempty" yaml:"corpus_db,omitempty"`
	CorpusQuery string `json:"corpus_query,omitempty" yaml:"corpus_query,omitempty"`

	Lookup    *int64 `json:"lookup,omitempty" yaml:"lookup,omitempty"`
	Weight    *int64 `json:"weight,omitempty" yaml:"weight,omitempty"`
	Seed      *int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
	MaxLength *int64 `json:"max_length,omitempty" yaml:"max_length,omitempty"`

	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty"`

	ServerAddress string `json:"server_address,omitempty" yaml:"server_address,omitempty"`
}

// DefaultConfig creates a configuration holding the built-in defaults.
func DefaultConfig() *Config {
	lookup := int64(markov.DefaultMaxOrder)
	weight := int64(markov.DefaultBlendWeight)
	seed := int64(0)
	maxLength := int64(0)
	return &Config{
		CorpusQuery:   corpus.DefaultQuery,
		Lookup:        &lookup,
		Weight:        &weight,
		Seed:          &seed,
		MaxLength:     &maxLength,
		LogLevel:      "warn",
		LogFormat:     "text",
		ServerAddress: "127.0.0.1:7279",
	}
}

// isYAML reports whether path names a YAML file; anything else is JSON.
func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// LoadConfig reads the configuration file at path, decoding YAML or JSON by
// extension. An empty path returns an empty Config.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if isYAML(path) {
		err = yaml.Unmarshal(file, cfg)
	} else {
		err = json.Unmarshal(file, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// WriteConfig atomically writes cfg to path, encoding YAML or JSON by
// extension.
func WriteConfig(path string, cfg *Config) error {
	var data []byte
	var err error
	if isYAML(path) {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// applyConfig copies config file values into the flag variables whose flags
// were not explicitly set. A corpus source chosen on the command line
// overrides both sources from the file.
func applyConfig(isSet func(name string) bool, cfg *Config) {
	sourceSet := isSet("corpus") || isSet("corpus-db")
	if cfg.Corpus != "" && !sourceSet {
		corpusPath = cfg.Corpus
	}
	if cfg.CorpusDB != "" && !sourceSet {
		corpusDB = cfg.CorpusDB
	}
	if cfg.CorpusQuery != "" && !isSet("corpus-query") {
		corpusQuery = cfg.CorpusQuery
	}
	if cfg.Lookup != nil && !isSet("lookup") {
		lookup = *cfg.Lookup
	}
	if cfg.Weight != nil && !isSet("weight") {
		weight = *cfg.Weight
	}
	if cfg.Seed != nil && !isSet("seed") {
		seed = *cfg.Seed
	}
	if cfg.MaxLength != nil && !isSet("max-length") {
		maxLength = *cfg.MaxLength
	}
	if cfg.LogLevel != "" && !isSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !isSet("log-format") {
		logFormat = cfg.LogFormat
	}
}

func configCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage the configuration file",
		Commands: []*cli.Command{
			{
				Name:      "init",
				Usage:     "Write a configuration file holding the defaults",
				ArgsUsage: "[PATH]",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					path := cmd.Args().First()
					if path == "" {
						path = "babble.yaml"
					}
					if _, err := os.Stat(path); err == nil {
						return cli.Exit(fmt.Sprintf("error: %s already exists", path), 1)
					}
					if err := WriteConfig(path, DefaultConfig()); err != nil {
						return cli.Exit(fmt.Sprintf("error: %v", err), 1)
					}
					_, _ = fmt.Fprintln(os.Stdout, "Wrote", path)
					return nil
				},
			},
		},
	}
}
