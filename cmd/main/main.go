package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	app := &cli.Command{
		Name:    "babble",
		Usage:   "Generate random sentences from a corpus with a variable-order Markov chain",
		Version: fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate),
		Flags:   append(modelFlags(), loggingFlags()...),
		Action:  runGenerate,
		Commands: []*cli.Command{
			generateCmd(),
			statsCmd(),
			serveCmd(),
			configCmd(),
			corpusCmd(),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		// A second signal kills the process even while it is blocked on stdin.
		<-ctx.Done()
		stop()
	}()

	if err := app.Run(ctx, os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
