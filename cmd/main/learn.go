package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/CTAG07/Babble/internal/corpus"
	"github.com/CTAG07/Babble/pkg/markov"
)

// parseLevel converts a level name to a slog.Level, defaulting to info.
func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newLogger builds the process logger. Logs go to w so that generated
// sentences on stdout stay clean.
func newLogger(w io.Writer, level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if strings.ToLower(format) == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// setup loads the config file, applies it to unset flags and returns it
// together with the logger.
func setup(cmd *cli.Command) (*Config, *slog.Logger, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}
	applyConfig(cmd.IsSet, cfg)
	return cfg, newLogger(os.Stderr, logLevel, logFormat), nil
}

// openCorpus picks the corpus source from the flags. It reports whether the
// source is the interactive stdin.
func openCorpus(ctx context.Context) (corpus.Source, bool, error) {
	switch {
	case corpusPath != "" && corpusDB != "":
		return nil, false, fmt.Errorf("--corpus and --corpus-db are mutually exclusive")
	case corpusPath != "":
		src, err := corpus.OpenFile(corpusPath)
		return src, false, err
	case corpusDB != "":
		src, err := corpus.OpenSQL(ctx, corpusDB, corpusQuery)
		return src, false, err
	default:
		return corpus.NewReaderSource(os.Stdin), true, nil
	}
}

// buildModel creates a model from the flags and trains it on the configured
// corpus. out receives the interactive prompts.
func buildModel(ctx context.Context, logger *slog.Logger, out io.Writer) (*markov.Model, error) {
	var opts []markov.ModelOption
	if seed != 0 {
		opts = append(opts, markov.WithRand(rand.New(rand.NewPCG(uint64(seed), uint64(seed)))))
	}
	model, err := markov.NewModel(int(lookup), int(weight), opts...)
	if err != nil {
		return nil, err
	}
	model.SetLogger(logger)

	src, interactive, err := openCorpus(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = src.Close()
	}()

	if interactive {
		_, _ = fmt.Fprintln(out, "Learning...")
		_, _ = fmt.Fprintln(out, "Press ^D to stop")
	}

	start := time.Now()
	if _, err = model.Train(ctx, src); err != nil {
		return nil, fmt.Errorf("failed to learn corpus: %w", err)
	}
	stats := model.Stats()
	logger.Debug("Model ready",
		slog.Int("max_order", stats.MaxOrder),
		slog.Int("blend_weight", stats.BlendWeight),
		slog.Int("contexts", stats.Contexts),
		slog.Int("total_chains", stats.TotalChains),
		slog.Duration("elapsed", time.Since(start)),
	)
	return model, nil
}
