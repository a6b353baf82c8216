package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

// set with -ldflags at build time
var (
	BuildTag    = "dev"
	BuildCommit = "none"
)

func versionCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "print the version",
		Action: func(c *cli.Context) error {
			return versionCommand(e.ui)
		},
	}
}

func versionCommand(ui UI) error {
	_, err := fmt.Fprintf(ui.Out, "subsent version %s (commit: %s)\n", BuildTag, BuildCommit)
	return err
}
