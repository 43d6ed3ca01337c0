// Copyright (c) 2026 Reelbase. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command reelctl manages the Reelbase catalog over its HTTP API.
//
// It speaks the same repository contract as the server, through the remote
// catalog client:
//
//	reelctl genres list --page 2
//	reelctl movies add --title "Heat" --release 1995-12-15 --genres 2,5 --actor 7:McCauley
//	reelctl --output json movies details --mine 42
package main

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	runner := NewRunner(RunnerOpts{})

	if err := newApp(runner).Run(context.Background(), os.Args); err != nil {
		runner.logger.Error("reelctl failed", "err", err)
		os.Exit(1)
	}
}

func newApp(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "reelctl",
		Usage:   "Manage the Reelbase movie catalog",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   DefaultConfigPath,
			},
			&cli.StringFlag{
				Name:  "base-url",
				Usage: "API base address, e.g. https://reelbase.example/api/v1",
			},
			&cli.StringFlag{
				Name:    "token",
				Usage:   "Bearer token for write commands",
				Sources: cli.EnvVars("REELCTL_TOKEN"),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output format: yaml or json",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Log every request",
			},
		},
		Before:   r.configure,
		Commands: r.register(),
	}
}
