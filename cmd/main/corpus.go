package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/CTAG07/Babble/internal/corpus"
)

func corpusCmd() *cli.Command {
	return &cli.Command{
		Name:  "corpus",
		Usage: "Manage SQLite corpus databases",
		Commands: []*cli.Command{
			corpusImportCmd(),
		},
	}
}

func corpusImportCmd() *cli.Command {
	var dbPath string

	return &cli.Command{
		Name:      "import",
		Usage:     "Append the lines of a text file (or stdin) to a corpus database",
		ArgsUsage: "[FILE]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "db",
				Usage:       "SQLite database to import into",
				Required:    true,
				Destination: &dbPath,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			_, logger, err := setup(cmd)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}

			var src corpus.Source
			if path := cmd.Args().First(); path != "" {
				if src, err = corpus.OpenFile(path); err != nil {
					return cli.Exit(fmt.Sprintf("error: %v", err), 1)
				}
			} else {
				src = corpus.NewReaderSource(os.Stdin)
			}
			defer func() {
				_ = src.Close()
			}()

			db, err := corpus.OpenDB(dbPath)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			defer func() {
				_ = db.Close()
			}()

			if err = corpus.SetupSchema(ctx, db); err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			stored, err := corpus.ImportLines(ctx, db, src)
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			logger.Debug("Corpus import completed", "db", dbPath, "lines", stored)
			_, _ = fmt.Fprintf(os.Stdout, "Imported %d lines into %s\n", stored, dbPath)
			return nil
		},
	}
}
