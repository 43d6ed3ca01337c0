// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Output formats.
const (
	OutputYAML = "yaml"
	OutputJSON = "json"
)

// DefaultConfigPath is read when --config is not given.
const DefaultConfigPath = "reelctl.toml"

// Config is the reelctl.toml file.
//
//	base_url = "https://reelbase.example/api/v1"
//	token    = "eyJ..."
//	output   = "yaml"
//	timeout  = "15s"
type Config struct {
	BaseURL string   `toml:"base_url"`
	Token   string   `toml:"token"`
	Output  string   `toml:"output"`
	Timeout Duration `toml:"timeout"`
}

// Duration decodes TOML strings such as "15s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// DefaultConfig targets a local API server.
func DefaultConfig() *Config {
	return &Config{
		BaseURL: "http://localhost:8080/api/v1",
		Output:  OutputYAML,
		Timeout: Duration{15 * time.Second},
	}
}

// LoadConfig overlays the file at path onto [DefaultConfig]. A missing file
// leaves the defaults in place.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, config.validate()
}

func (c *Config) validate() error {
	if c.BaseURL == "" {
		return errors.New("config: base_url is required")
	}
	if c.Output != OutputYAML && c.Output != OutputJSON {
		return fmt.Errorf("config: output must be %q or %q, got %q", OutputYAML, OutputJSON, c.Output)
	}
	if c.Timeout.Duration <= 0 {
		return fmt.Errorf("config: timeout must be positive, got %s", c.Timeout.Duration)
	}
	return nil
}
