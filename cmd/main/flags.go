package main

import (
	"github.com/urfave/cli/v3"

	"github.com/CTAG07/Babble/internal/corpus"
	"github.com/CTAG07/Babble/pkg/markov"
)

var (
	configPath  string
	corpusPath  string
	corpusDB    string
	corpusQuery string
	lookup      int64
	weight      int64
	seed        int64
	maxLength   int64
	logLevel    string
	logFormat   string
)

func modelFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to a YAML or JSON config file",
			Destination: &configPath,
		},
		&cli.StringFlag{
			Name:        "corpus",
			Aliases:     []string{"c"},
			Usage:       "corpus file (set of sentences); read interactively from stdin if no corpus is given",
			Destination: &corpusPath,
		},
		&cli.StringFlag{
			Name:        "corpus-db",
			Usage:       "SQLite database to read corpus lines from",
			Destination: &corpusDB,
		},
		&cli.StringFlag{
			Name:        "corpus-query",
			Usage:       "single-column query selecting corpus lines from --corpus-db",
			Value:       corpus.DefaultQuery,
			Destination: &corpusQuery,
		},
		&cli.Int64Flag{
			Name:        "lookup",
			Aliases:     []string{"l"},
			Usage:       "lookup size: maximum number of preceding tokens considered",
			Value:       markov.DefaultMaxOrder,
			Destination: &lookup,
		},
		&cli.Int64Flag{
			Name:        "weight",
			Aliases:     []string{"w"},
			Usage:       "lookup weight: how much longer contexts outweigh shorter ones",
			Value:       markov.DefaultBlendWeight,
			Destination: &weight,
		},
		&cli.Int64Flag{
			Name:        "seed",
			Usage:       "random seed for reproducible output (0 = random)",
			Destination: &seed,
		},
		&cli.Int64Flag{
			Name:        "max-length",
			Usage:       "maximum tokens per sentence (0 = unbounded, or 1000 for serve)",
			Destination: &maxLength,
		},
	}
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "warn",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (text, json)",
			Value:       "text",
			Destination: &logFormat,
		},
	}
}
