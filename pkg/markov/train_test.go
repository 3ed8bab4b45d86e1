package markov

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestLearnReinforcesEverySuffix(t *testing.T) {
	m := setupTestModel(t, DefaultMaxOrder, DefaultBlendWeight)
	m.Learn([]string{"a", "b"})

	testCases := []struct {
		name string
		ctx  Context
		next Token
	}{
		{name: "begin", ctx: Context{BeginToken}, next: NewWord("a")},
		{name: "short context", ctx: words("a"), next: NewWord("b")},
		{name: "full context", ctx: Context{BeginToken, NewWord("a")}, next: NewWord("b")},
		{name: "end from full context", ctx: Context{BeginToken, NewWord("a"), NewWord("b")}, next: EndToken},
		{name: "end from suffix", ctx: words("a", "b"), next: EndToken},
		{name: "end from last token", ctx: words("b"), next: EndToken},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			links, total := m.Links(tc.ctx)
			if total < 1 {
				t.Fatalf("expected at least one transition from %v, got none", tc.ctx)
			}
			want := []Link{{Token: tc.next, Freq: 1}}
			if len(links) != 1 || links[0] != want[0] {
				t.Errorf("expected links %+v, got %+v", want, links)
			}
		})
	}
}

func TestLearnCaseFolds(t *testing.T) {
	m := setupTestModel(t, DefaultMaxOrder, DefaultBlendWeight)
	m.Learn([]string{"The", "CAT", "!"})
	m.Learn([]string{"the", "cat", "!"})

	links, total := m.Links(words("the"))
	if total != 2 {
		t.Fatalf("expected total 2 for 'the', got %d", total)
	}
	if links[0].Token != NewWord("cat") || links[0].Freq != 2 {
		t.Errorf("expected folded 'cat' with freq 2, got %+v", links)
	}
	if m.HasContext(words("The")) {
		t.Error("unfolded context 'The' should not exist")
	}
}

func TestLearnSlidingWindow(t *testing.T) {
	m := setupTestModel(t, 2, DefaultBlendWeight)
	m.Learn([]string{"a", "b", "c"})

	for key := range m.links {
		if n := strings.Count(key, " ") + 1; n > 2 {
			t.Errorf("found context %q of length %d with max order 2", key, n)
		}
	}
	if got := m.Stats().LongestContext; got != 2 {
		t.Errorf("expected longest context 2, got %d", got)
	}
	if m.HasContext(Context{BeginToken, NewWord("a"), NewWord("b")}) {
		t.Error("context longer than max order was recorded")
	}
	// The window slides: (a, b) precedes c, (b, c) precedes End.
	if links, _ := m.Links(words("a", "b")); len(links) != 1 || links[0].Token != NewWord("c") {
		t.Errorf("expected (a b) -> c, got %+v", links)
	}
	if links, _ := m.Links(words("b", "c")); len(links) != 1 || links[0].Token != EndToken {
		t.Errorf("expected (b c) -> <end>, got %+v", links)
	}
}

func TestLearnTwiceDoublesCounts(t *testing.T) {
	m := setupTestModel(t, 3, DefaultBlendWeight)
	sentence := []string{"one", " ", "fish", " ", "two", "."}
	m.Learn(sentence)

	before := make(map[string]map[int]int, len(m.links))
	for key, d := range m.links {
		counts := make(map[int]int, len(d.choices))
		for _, c := range d.choices {
			counts[c.Id] = c.Freq
		}
		before[key] = counts
	}

	m.Learn(sentence)

	if len(m.links) != len(before) {
		t.Fatalf("re-learning changed the context set: %d -> %d", len(before), len(m.links))
	}
	for key, d := range m.links {
		counts, ok := before[key]
		if !ok {
			t.Errorf("new context %q appeared after re-learning", key)
			continue
		}
		if len(d.choices) != len(counts) {
			t.Errorf("context %q: successor set changed", key)
		}
		for _, c := range d.choices {
			if c.Freq != 2*counts[c.Id] {
				t.Errorf("context %q token %d: expected freq %d, got %d", key, c.Id, 2*counts[c.Id], c.Freq)
			}
		}
	}
}

func TestLearnEmpty(t *testing.T) {
	m := setupTestModel(t, DefaultMaxOrder, DefaultBlendWeight)
	m.Learn(nil)
	if m.LearnLine("") || m.LearnLine("\r\n") {
		t.Error("LearnLine() reported learning an empty line")
	}
	if stats := m.Stats(); stats.Contexts != 0 || stats.Sentences != 0 {
		t.Errorf("expected an empty model, got %+v", stats)
	}
}

func TestTrain(t *testing.T) {
	m := setupTestModel(t, DefaultMaxOrder, DefaultBlendWeight)
	ctx := context.Background()

	corpus := "the cat sat\n\nthe dog sat\r\n"
	learned, err := m.TrainReader(ctx, strings.NewReader(corpus))
	if err != nil {
		t.Fatalf("TrainReader() failed: %v", err)
	}
	if learned != 2 {
		t.Errorf("expected 2 sentences learned, got %d", learned)
	}

	// Spaces are tokens, so 'the' is followed by ' ' and ' ' by cat, dog or sat.
	links, total := m.Links(words("the"))
	if total != 2 || len(links) != 1 || links[0].Token != NewWord(" ") {
		t.Errorf("expected 'the' -> ' ' twice, got %+v (total %d)", links, total)
	}
	links, _ = m.Links(words("the", " "))
	want := []Link{{Token: NewWord("cat"), Freq: 1}, {Token: NewWord("dog"), Freq: 1}}
	if len(links) != len(want) || links[0] != want[0] || links[1] != want[1] {
		t.Errorf("expected %+v, got %+v", want, links)
	}
}

type errLineReader struct {
	lines []string
	err   error
}

func (r *errLineReader) ReadLine() (string, error) {
	if len(r.lines) == 0 {
		return "", r.err
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func TestTrainErrors(t *testing.T) {
	t.Run("reader error is wrapped", func(t *testing.T) {
		m := setupTestModel(t, DefaultMaxOrder, DefaultBlendWeight)
		readErr := errors.New("disk on fire")
		learned, err := m.Train(context.Background(), &errLineReader{lines: []string{"a b"}, err: readErr})
		if !errors.Is(err, readErr) {
			t.Fatalf("expected wrapped read error, got %v", err)
		}
		if learned != 1 {
			t.Errorf("expected 1 sentence learned before the error, got %d", learned)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		m := setupTestModel(t, DefaultMaxOrder, DefaultBlendWeight)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := m.TrainReader(ctx, strings.NewReader("a b\n"))
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
		if m.Stats().Sentences != 0 {
			t.Error("expected nothing learned after cancellation")
		}
	})
}

func BenchmarkTrain(b *testing.B) {
	corpus := createBenchmarkCorpus()
	ctx := context.Background()

	for _, order := range []int{1, 2, 3, 4, 5} {
		b.Run(fmt.Sprintf("Order%d", order), func(b *testing.B) {
			b.SetBytes(int64(len(corpus)))
			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				m := setupTestModel(b, order, DefaultBlendWeight)
				if _, err := m.TrainReader(ctx, strings.NewReader(corpus)); err != nil {
					b.Fatalf("TrainReader() failed: %v", err)
				}
			}
		})
	}
}
