package markov

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
)

const (
	// DefaultMaxOrder is the default maximum context length.
	DefaultMaxOrder = 5
	// DefaultBlendWeight is the default multiplier applied to the evidence of
	// longer contexts relative to shorter ones.
	DefaultBlendWeight = 20
)

var (
	// ErrInvalidOrder is returned by NewModel when maxOrder is not positive.
	ErrInvalidOrder = errors.New("markov: max order must be positive")
	// ErrInvalidWeight is returned by NewModel when blendWeight is negative.
	ErrInvalidWeight = errors.New("markov: blend weight must not be negative")
	// ErrNoContinuation is returned by SampleNext when neither the context
	// nor any of its suffixes has a recorded transition.
	ErrNoContinuation = errors.New("markov: no continuation for context")
)

// RandSource is the source of randomness used for sampling. *rand.Rand from
// math/rand/v2 satisfies it.
type RandSource interface {
	// IntN returns a uniform integer in [0, n). n is always positive.
	IntN(n int) int
}

// globalRand draws from the process-wide math/rand/v2 generator.
type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// ModelOption is a function that configures a Model at construction time.
type ModelOption func(*Model)

// WithRand sets the random source used for sampling. Use a seeded
// *rand.Rand for reproducible generation.
func WithRand(r RandSource) ModelOption {
	return func(m *Model) {
		if r != nil {
			m.rng = r
		}
	}
}

// WithTokenizer sets the tokenizer used by LearnLine, Train and Generate.
func WithTokenizer(t Tokenizer) ModelOption {
	return func(m *Model) {
		if t != nil {
			m.tokenizer = t
		}
	}
}

// Model is a variable-order weighted Markov chain. It records, for every
// context of one up to maxOrder preceding tokens, how often each token
// followed it, and samples new sentences by blending the predictions of
// all suffixes of the current context.
//
// A Model is filled by the Learn family of methods and then only read by
// generation. It is not safe for concurrent use.
type Model struct {
	maxOrder    int
	blendWeight int

	vocab    []Token       // token ID -> token
	vocabIDs map[Token]int // token -> token ID
	links    map[string]*distribution

	sentences int64

	rng       RandSource
	tokenizer Tokenizer
	logger    *slog.Logger
}

// NewModel creates an empty Model. maxOrder must be positive and blendWeight
// must not be negative.
func NewModel(maxOrder, blendWeight int, opts ...ModelOption) (*Model, error) {
	if maxOrder <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidOrder, maxOrder)
	}
	if blendWeight < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWeight, blendWeight)
	}

	m := &Model{
		maxOrder:    maxOrder,
		blendWeight: blendWeight,
		vocab:       []Token{BeginToken, EndToken},
		vocabIDs:    map[Token]int{BeginToken: BeginTokenID, EndToken: EndTokenID},
		links:       make(map[string]*distribution),
		rng:         globalRand{},
		tokenizer:   NewDefaultTokenizer(),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// SetLogger sets the logger for the Model. By default, all logs are discarded.
func (m *Model) SetLogger(logger *slog.Logger) {
	if logger != nil {
		m.logger = logger
	}
}

// MaxOrder returns the maximum context length.
func (m *Model) MaxOrder() int { return m.maxOrder }

// BlendWeight returns the blend weight.
func (m *Model) BlendWeight() int { return m.blendWeight }

// Tokenizer returns the tokenizer used by the model.
func (m *Model) Tokenizer() Tokenizer { return m.tokenizer }

// tokenID returns the ID of t, assigning a new one if t has not been seen.
func (m *Model) tokenID(t Token) int {
	if id, ok := m.vocabIDs[t]; ok {
		return id
	}
	id := len(m.vocab)
	m.vocab = append(m.vocab, t)
	m.vocabIDs[t] = id
	return id
}

// lookupID returns the ID of a known token. Sentinels match by Kind alone.
func (m *Model) lookupID(t Token) (int, bool) {
	switch t.Kind {
	case Begin:
		return BeginTokenID, true
	case End:
		return EndTokenID, true
	}
	id, ok := m.vocabIDs[t]
	return id, ok
}

// contextIDs resolves ctx to token IDs. It reports false if any token was
// never learned, in which case no suffix containing it can be in the table.
func (m *Model) contextIDs(ctx Context) ([]int, bool) {
	ids := make([]int, len(ctx))
	for i, t := range ctx {
		id, ok := m.lookupID(t)
		if !ok {
			return nil, false
		}
		ids[i] = id
	}
	return ids, true
}

// Links returns the recorded transitions for exactly ctx (not its suffixes)
// in enumeration order, together with their total frequency. An unknown
// context returns a nil slice and a total of 0.
func (m *Model) Links(ctx Context) ([]Link, int) {
	ids, ok := m.contextIDs(ctx)
	if !ok || len(ids) == 0 {
		return nil, 0
	}
	d, ok := m.links[string(appendKey(nil, ids))]
	if !ok {
		return nil, 0
	}
	links := make([]Link, len(d.choices))
	for i, c := range d.choices {
		links[i] = Link{Token: m.vocab[c.Id], Freq: c.Freq}
	}
	return links, d.total
}

// HasContext reports whether ctx has at least one recorded transition.
func (m *Model) HasContext(ctx Context) bool {
	_, total := m.Links(ctx)
	return total > 0
}
