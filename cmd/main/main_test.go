package main

import (
	"io"
	"math/rand/v2"
	"testing"

	"github.com/CTAG07/Babble/pkg/markov"
)

// setupTestModel returns a seeded model that has learned lines.
func setupTestModel(t *testing.T, lines ...string) *markov.Model {
	t.Helper()
	model, err := markov.NewModel(markov.DefaultMaxOrder, markov.DefaultBlendWeight,
		markov.WithRand(rand.New(rand.NewPCG(1, 2))))
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	model.SetLogger(newLogger(io.Discard, "error", "text"))
	for _, line := range lines {
		model.LearnLine(line)
	}
	return model
}
