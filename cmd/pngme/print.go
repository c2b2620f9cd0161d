package main

import (
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/pngme/internal/pngstore"
	"github.com/samcharles93/pngme/internal/stash"
)

func printCmd() *cli.Command {
	var asJSON bool
	return &cli.Command{
		Name:      "print",
		Usage:     "Print every chunk whose payload is text",
		ArgsUsage: "<file>",
		Flags:     []cli.Flag{jsonFlag(&asJSON)},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := args(cmd, 1)
			if err != nil {
				return err
			}
			p, err := pngstore.Load(a[0])
			if err != nil {
				return fmt.Errorf("print: %w", err)
			}
			lines := stash.Print(p)

			w := cmd.Root().Writer
			if wantJSON(ctx, cmd, asJSON) {
				if lines == nil {
					lines = []stash.Line{}
				}
				return writeJSON(w, lines)
			}
			for _, l := range lines {
				if _, err := fmt.Fprintln(w, l); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// wantJSON honours --json, falling back to output_mode from the config file.
func wantJSON(ctx context.Context, cmd *cli.Command, flag bool) bool {
	if cmd.IsSet("json") {
		return flag
	}
	return configFrom(ctx).OutputMode == "json"
}

func writeJSON(w io.Writer, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
