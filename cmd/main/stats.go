package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/CTAG07/Babble/pkg/markov"
)

func statsCmd() *cli.Command {
	return &cli.Command{
		Name:  "stats",
		Usage: "Learn the corpus, then print model statistics as JSON",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, logger, err := setup(cmd)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			model, err := buildModel(ctx, logger, os.Stderr)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			if err = writeStats(os.Stdout, model); err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			return nil
		},
	}
}

func writeStats(w io.Writer, model *markov.Model) error {
	data, err := json.MarshalIndent(model.Stats(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal stats: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
