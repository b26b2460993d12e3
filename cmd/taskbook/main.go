// Package main provides the entry point for the taskbook CLI.
package main

import (
	"context"
	"os"

	"github.com/mrz1836/taskbook/internal/cli"
	"github.com/mrz1836/taskbook/internal/signal"
)

// Set at build time via ldflags.
var (
	version = "dev"  //nolint:gochecknoglobals // set by ldflags
	commit  = "none" //nolint:gochecknoglobals // set by ldflags
	date    = ""     //nolint:gochecknoglobals // set by ldflags
)

func main() {
	os.Exit(run())
}

func run() int {
	interrupt := signal.Watch(context.Background())
	defer interrupt.Stop()
	defer cli.CloseLogFile()

	err := cli.Execute(interrupt.Context(), cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	})
	if interrupt.Fired() {
		return signal.ExitInterrupted
	}
	return cli.ExitCodeForError(err)
}
