package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/CTAG07/Babble/pkg/markov"
)

func generateCmd() *cli.Command {
	return &cli.Command{
		Name:   "generate",
		Usage:  "Learn the corpus, then print a sentence per <enter>",
		Action: runGenerate,
	}
}

func runGenerate(ctx context.Context, cmd *cli.Command) error {
	_, logger, err := setup(cmd)
	if err != nil {
		return cli.Exit(fmt.Sprintf("error: %v", err), 1)
	}

	model, err := buildModel(ctx, logger, os.Stdout)
	if err != nil {
		return cli.Exit(fmt.Sprintf("error: %v", err), 1)
	}

	if err = generateLoop(ctx, model, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return cli.Exit(fmt.Sprintf("error: %v", err), 1)
	}
	return nil
}

// generateLoop prints one sentence, then another each time a line is read
// from in, until in is exhausted or ctx is cancelled.
func generateLoop(ctx context.Context, model *markov.Model, in io.Reader, out io.Writer) error {
	_, _ = fmt.Fprintln(out, "Generating...")
	_, _ = fmt.Fprintln(out, "Press ^C or ^D to stop, <enter> to continue")

	lines := make(chan error, 1)
	reader := bufio.NewReader(in)
	waitForEnter := func() {
		_, err := reader.ReadString('\n')
		lines <- err
	}

	for {
		if _, err := fmt.Fprintln(out, model.Generate(markov.WithMaxLength(int(maxLength)))); err != nil {
			return err
		}

		// On cancellation this goroutine stays blocked on stdin; the process exits right after.
		go waitForEnter()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-lines:
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
		}
	}
}
