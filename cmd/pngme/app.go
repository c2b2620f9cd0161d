package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/pngme/internal/logger"
	"github.com/samcharles93/pngme/internal/version"
)

func newApp() *cli.Command {
	opts := &globalOptions{}
	return &cli.Command{
		Name:    "pngme",
		Usage:   "Hide, find and remove messages in PNG chunks",
		Version: version.String(),
		Flags:   opts.flags(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			cfg, err := LoadConfig(configPath())
			if err != nil {
				return ctx, err
			}
			opts.apply(cmd, cfg)

			level := opts.logLevel
			if opts.debug {
				level = "debug"
			}
			log, err := logger.Setup(os.Stderr, opts.logFormat, level)
			if err != nil {
				return ctx, err
			}
			ctx = withConfig(ctx, cfg)
			return logger.WithContext(ctx, log), nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			encodeCmd(),
			decodeCmd(),
			removeCmd(),
			printCmd(),
			inspectCmd(),
			serveCmd(),
			versionCmd(),
		},
	}
}

// args returns exactly n positional arguments or a usage error.
func args(cmd *cli.Command, n int) ([]string, error) {
	if cmd.NArg() != n {
		return nil, fmt.Errorf("%s: expected %d argument(s) %s, got %d", cmd.Name, n, cmd.ArgsUsage, cmd.NArg())
	}
	out := make([]string, n)
	for i := range out {
		out[i] = cmd.Args().Get(i)
	}
	return out, nil
}
