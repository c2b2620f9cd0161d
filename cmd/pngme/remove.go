package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/pngme/internal/logger"
	"github.com/samcharles93/pngme/internal/pngstore"
	"github.com/samcharles93/pngme/internal/stash"
)

func removeCmd() *cli.Command {
	var output string
	return &cli.Command{
		Name:      "remove",
		Usage:     "Remove the first chunk of a type from a PNG file",
		ArgsUsage: "<file> <type>",
		Flags:     []cli.Flag{outputFlag(&output)},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := args(cmd, 2)
			if err != nil {
				return err
			}
			path, chunkType := a[0], a[1]

			p, err := pngstore.Load(path)
			if err != nil {
				return fmt.Errorf("remove: %w", err)
			}
			c, err := stash.Remove(p, chunkType)
			if err != nil {
				return fmt.Errorf("remove %s: %w", chunkType, err)
			}
			dest := targetPath(path, output)
			if err := pngstore.Save(dest, p); err != nil {
				return fmt.Errorf("remove: %w", err)
			}
			logger.FromContext(ctx).Info("chunk removed", "file", path, "output", dest, "type", chunkType, "length", c.Length())
			return nil
		},
	}
}
