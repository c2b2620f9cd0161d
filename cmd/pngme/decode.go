package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/pngme/internal/logger"
	"github.com/samcharles93/pngme/internal/pngstore"
	"github.com/samcharles93/pngme/internal/stash"
)

func decodeCmd() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "Print the first message chunk of a type",
		ArgsUsage: "<file> <type>",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := args(cmd, 2)
			if err != nil {
				return err
			}
			path, chunkType := a[0], a[1]

			p, err := pngstore.Load(path)
			if err != nil {
				return fmt.Errorf("decode: %w", err)
			}
			c, ok, err := stash.Decode(p, chunkType)
			if err != nil {
				return fmt.Errorf("decode: %w", err)
			}
			if !ok {
				logger.FromContext(ctx).Debug("no chunk of type", "file", path, "type", chunkType)
				return nil
			}
			line, err := stash.LineOf(c)
			if err != nil {
				return fmt.Errorf("decode %s: %w", chunkType, err)
			}
			_, err = fmt.Fprintln(cmd.Root().Writer, line)
			return err
		},
	}
}
