package main

import "github.com/urfave/cli/v3"

type globalOptions struct {
	logLevel  string
	logFormat string
	debug     bool
}

func (o *globalOptions) flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &o.logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text)",
			Value:       "pretty",
			Destination: &o.logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &o.debug,
		},
	}
}

// apply fills options the command line left unset from the config file.
func (o *globalOptions) apply(cmd *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !cmd.IsSet("log-level") {
		o.logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !cmd.IsSet("log-format") {
		o.logFormat = cfg.LogFormat
	}
}

func outputFlag(dest *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "output",
		Aliases:     []string{"o"},
		Usage:       "write the result to this path instead of overwriting the input",
		Destination: dest,
	}
}

func jsonFlag(dest *bool) cli.Flag {
	return &cli.BoolFlag{
		Name:        "json",
		Usage:       "print JSON instead of text",
		Destination: dest,
	}
}
