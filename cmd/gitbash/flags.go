package main

import (
	urfavecli "github.com/urfave/cli/v3"
)

// globalFlags returns the flags shared by the shell and its subcommands.
// --version comes from the command's Version field.
func globalFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.StringFlag{
			Name:  "config-file",
			Usage: "Path to configuration file",
		},
		&urfavecli.StringSliceFlag{
			Name:    "config",
			Aliases: []string{"C"},
			Usage:   "Override config values (repeatable): --config=gb.key=value",
		},
		&urfavecli.StringFlag{
			Name:  "debug-log",
			Usage: "Path to debug log file",
		},
		&urfavecli.StringFlag{
			Name:    "theme",
			Aliases: []string{"t"},
			Usage:   "Override the UI theme",
		},
		&urfavecli.StringFlag{
			Name:  "root",
			Usage: "Host directory backing the virtual filesystem (default: in memory)",
		},
		&urfavecli.StringFlag{
			Name:  "home",
			Usage: "Virtual home directory shown as ~",
		},
		&urfavecli.BoolFlag{
			Name:  "plain",
			Usage: "Use a line-mode prompt instead of the full-screen UI",
		},
		&urfavecli.BoolFlag{
			Name:  "no-color",
			Usage: "Strip color codes from output (also set by NO_COLOR)",
		},
	}
}
