// Package main is the entry point for the termtheme CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/opencode-ai/termtheme/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, os.Args[1:]); err != nil {
		stop()
		cli.ReportError(os.Stderr, err)
		os.Exit(1)
	}
}
