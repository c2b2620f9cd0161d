package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/pngme/internal/pngstore"
	"github.com/samcharles93/pngme/internal/stash"
)

func inspectCmd() *cli.Command {
	var asJSON bool
	return &cli.Command{
		Name:      "inspect",
		Usage:     "List every chunk with its length, crc and property bits",
		ArgsUsage: "<file>",
		Flags:     []cli.Flag{jsonFlag(&asJSON)},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := args(cmd, 1)
			if err != nil {
				return err
			}
			p, err := pngstore.Load(a[0])
			if err != nil {
				return fmt.Errorf("inspect: %w", err)
			}
			report := stash.Inspect(p)

			w := cmd.Root().Writer
			if wantJSON(ctx, cmd, asJSON) {
				return writeJSON(w, report)
			}
			return printReport(w, a[0], report)
		},
	}
}

func printReport(w io.Writer, path string, r stash.Report) error {
	fmt.Fprintf(w, "PNG: %s (%s, %d chunks)\n\n", path, formatBytes(r.Size), r.Count)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tTYPE\tLENGTH\tCRC\tCRITICAL\tPUBLIC\tRESERVED\tSAFE-COPY\tTEXT")
	for _, c := range r.Chunks {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%08x\t%s\t%s\t%s\t%s\t%s\n",
			c.Index, c.Type, c.Length, c.CRC,
			yesNo(c.Critical), yesNo(c.Public), okBad(c.ReservedBitValid), yesNo(c.SafeToCopy), yesNo(c.Text))
	}
	return tw.Flush()
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func okBad(b bool) string {
	if b {
		return "ok"
	}
	return "set"
}

func formatBytes(n int) string {
	const (
		kb = 1024
		mb = 1024 * kb
	)
	switch {
	case n >= mb:
		return fmt.Sprintf("%.1f MB", float64(n)/float64(mb))
	case n >= kb:
		return fmt.Sprintf("%.1f KB", float64(n)/float64(kb))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
