// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
	"gopkg.in/yaml.v3"

	"github.com/taibuivan/reelbase/internal/catalog"
	"github.com/taibuivan/reelbase/internal/remote"
	"github.com/taibuivan/reelbase/internal/repository"
	"github.com/taibuivan/reelbase/pkg/pagination"
)

// Runner holds the dependencies of every command action.
type Runner struct {
	config     *Config
	client     *catalog.Client
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts configures [NewRunner]. Zero fields take defaults.
type RunnerOpts struct {
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	return &Runner{
		config:     DefaultConfig(),
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

// configure loads the config file, applies flag overrides and builds the
// catalog client. It runs before any subcommand.
func (r *Runner) configure(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	config, err := LoadConfig(cmd.String("config"))
	if err != nil {
		return ctx, err
	}

	if cmd.IsSet("base-url") {
		config.BaseURL = cmd.String("base-url")
	}
	if cmd.IsSet("token") {
		config.Token = cmd.String("token")
	}
	if cmd.IsSet("output") {
		config.Output = cmd.String("output")
	}
	if err := config.validate(); err != nil {
		return ctx, err
	}

	if cmd.Bool("verbose") {
		r.logger.SetLevel(log.DebugLevel)
	}

	httpClient := r.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout.Duration}
	}

	var tokens oauth2.TokenSource
	if config.Token != "" {
		tokens = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: config.Token, TokenType: "Bearer"})
	}

	r.config = config
	r.client = catalog.NewClient(remote.NewConnector(config.BaseURL, httpClient, tokens, slog.New(r.logger)))
	r.logger.Debug("configured", "base_url", config.BaseURL, "authenticated", tokens != nil)

	return ctx, nil
}

// pageView is how a page is printed: data and metadata side by side.
type pageView[T any] struct {
	Data     []T                 `json:"data"`
	Metadata pagination.Metadata `json:"metadata"`
}

func renderPage[T any](r *Runner, page repository.Page[T]) error {
	return r.render(pageView[T]{Data: page.Data, Metadata: page.Metadata})
}

// render prints data in the configured format. YAML output goes through the
// JSON encoding first so both formats share the API field names.
func (r *Runner) render(data any) error {
	encoded, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	if r.config.Output == OutputJSON {
		var indented bytes.Buffer
		if err := json.Indent(&indented, encoded, "", "  "); err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		indented.WriteByte('\n')
		if _, err := indented.WriteTo(r.output); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	var generic any
	if err := yaml.Unmarshal(encoded, &generic); err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	encoder := yaml.NewEncoder(r.output)
	encoder.SetIndent(2)
	if err := encoder.Encode(generic); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return encoder.Close()
}
