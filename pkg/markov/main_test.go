package markov

import (
	"go/build"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// fixedRand replays a fixed sequence of draws, clamped to the requested range.
// An empty sequence always draws 0, i.e. the first enumerated option.
type fixedRand struct {
	draws []int
	i     int
}

func (r *fixedRand) IntN(n int) int {
	if len(r.draws) == 0 {
		return 0
	}
	d := r.draws[r.i%len(r.draws)]
	r.i++
	if d >= n {
		return n - 1
	}
	return d
}

// setupTestModel creates a Model with the given configuration, failing the
// test if construction is rejected.
func setupTestModel(t testing.TB, maxOrder, blendWeight int, opts ...ModelOption) *Model {
	t.Helper()
	m, err := NewModel(maxOrder, blendWeight, opts...)
	if err != nil {
		t.Fatalf("NewModel(%d, %d) error = %v", maxOrder, blendWeight, err)
	}
	return m
}

// setupTestModelWithTraining is a convenience helper that also trains the
// model on a small two-sentence corpus of pre-split words.
func setupTestModelWithTraining(t *testing.T, opts ...ModelOption) *Model {
	t.Helper()
	m := setupTestModel(t, DefaultMaxOrder, DefaultBlendWeight, opts...)
	m.Learn([]string{"the", "cat", "sat"})
	m.Learn([]string{"the", "dog", "sat"})
	return m
}

func words(ws ...string) Context {
	ctx := make(Context, len(ws))
	for i, w := range ws {
		ctx[i] = NewWord(w)
	}
	return ctx
}

var (
	benchmarkCorpus string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus reads Go source files to create a corpus for benchmarking.
func createBenchmarkCorpus() string {
	corpusOnce.Do(func() {
		var sb strings.Builder
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
			filepath.Join(goRoot, "src/encoding/json/encode.go"),
		}

		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				benchmarkCorpus = "this is a fallback corpus for benchmarking.\nit is not very long but will prevent a crash.\n"
				return
			}
			sb.Write(content)
			sb.WriteString("\n")
		}
		benchmarkCorpus = sb.String()
	})
	return benchmarkCorpus
}
