// Package main is the entry point for the fmcheck CLI.
package main

import (
	"os"

	"github.com/thoreinstein/fmcheck/cmd/fmcheck/commands"
	"github.com/thoreinstein/fmcheck/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(errors.ExitCode(err))
	}
}
