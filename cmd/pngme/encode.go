package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/pngme/internal/logger"
	"github.com/samcharles93/pngme/internal/pngstore"
	"github.com/samcharles93/pngme/internal/stash"
)

func encodeCmd() *cli.Command {
	var output string
	return &cli.Command{
		Name:      "encode",
		Usage:     "Append a message chunk to a PNG file",
		ArgsUsage: "<file> <type> <message>",
		Flags:     []cli.Flag{outputFlag(&output)},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := args(cmd, 3)
			if err != nil {
				return err
			}
			path, chunkType, message := a[0], a[1], a[2]
			log := logger.FromContext(ctx).With("file", path, "type", chunkType)

			p, err := pngstore.Load(path)
			if err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			c, err := stash.Encode(p, chunkType, message)
			if err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			if !c.Type().IsValid() {
				log.Warn("chunk type has the reserved bit set; strict decoders may reject the file")
			}

			dest := targetPath(path, output)
			if err := pngstore.Save(dest, p); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			log.Info("message encoded", "output", dest, "length", c.Length(), "crc", c.CRC())
			return nil
		},
	}
}

func targetPath(input, output string) string {
	if output != "" {
		return output
	}
	return input
}
