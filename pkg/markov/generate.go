package markov

import (
	"context"
	"iter"
	"log/slog"
	"math/big"
	"strings"
)

// generateOptions Is used by the generate functions to configure default options.
type generateOptions struct {
	maxLength int
}

// GenerateOption is a function that configures generation parameters.
type GenerateOption func(*generateOptions)

// WithMaxLength caps the number of tokens emitted for one sentence. A value
// of 0, the default, leaves sentences unbounded: a corpus whose only way
// forward from some token loops back to it can then generate forever.
func WithMaxLength(n int) GenerateOption {
	return func(o *generateOptions) { o.maxLength = n }
}

// SampleNext draws the token that follows ctx and returns it with the
// advanced context.
//
// The candidate distribution is a blend over the suffixes of ctx, from the
// whole context down to its last token: at each step the counts gathered so
// far are multiplied by the blend weight and the counts recorded for the
// current suffix are added. Longer contexts therefore dominate while shorter
// ones still contribute. If no suffix has any recorded transition,
// ErrNoContinuation is returned.
func (m *Model) SampleNext(ctx Context) (Token, Context, error) {
	ids, lastUnknown := m.resolveContext(ctx)
	id, err := m.sampleNext(ids, lastUnknown)
	if err != nil {
		return Token{}, ctx, err
	}

	next := m.vocab[id]
	start := 0
	if len(ctx)+1 > m.maxOrder {
		start = len(ctx) + 1 - m.maxOrder
	}
	advanced := make(Context, 0, m.maxOrder)
	advanced = append(advanced, ctx[start:]...)
	return next, append(advanced, next), nil
}

// resolveContext maps ctx to token IDs. Unknown tokens map to -1, and the
// index of the last one is returned (-1 if all are known). Suffixes that
// still contain an unknown token cannot be in the link table.
func (m *Model) resolveContext(ctx Context) ([]int, int) {
	ids := make([]int, len(ctx))
	lastUnknown := -1
	for i, t := range ctx {
		id, ok := m.lookupID(t)
		if !ok {
			id = -1
			lastUnknown = i
		}
		ids[i] = id
	}
	return ids, lastUnknown
}

// blend builds the weighted candidate distribution for prefix. It reports
// false if the blended counts overflow an int, in which case blendBig must
// be used instead.
func (m *Model) blend(keyBuf []byte, prefix []int, lastUnknown int) (*distribution, bool, []byte) {
	choices := newDistribution()
	for i := 0; i < len(prefix); i++ {
		if !choices.scale(m.blendWeight) {
			return nil, false, keyBuf
		}
		if i <= lastUnknown {
			continue
		}
		keyBuf = appendKey(keyBuf[:0], prefix[i:])
		if d, ok := m.links[string(keyBuf)]; ok {
			if !choices.merge(d) {
				return nil, false, keyBuf
			}
		}
	}
	return choices, true, keyBuf
}

// blendBig is blend with arbitrary-precision counts.
func (m *Model) blendBig(prefix []int, lastUnknown int) *bigDistribution {
	weight := big.NewInt(int64(m.blendWeight))
	choices := newBigDistribution()
	var keyBuf []byte
	for i := 0; i < len(prefix); i++ {
		choices.scale(weight)
		if i <= lastUnknown {
			continue
		}
		keyBuf = appendKey(keyBuf[:0], prefix[i:])
		if d, ok := m.links[string(keyBuf)]; ok {
			choices.merge(d)
		}
	}
	return choices
}

// draw samples the ID of the token following prefix. It reports false if no
// suffix of prefix has a recorded transition.
func (m *Model) draw(keyBuf []byte, prefix []int, lastUnknown int) (int, bool, []byte) {
	choices, ok, keyBuf := m.blend(keyBuf, prefix, lastUnknown)
	if !ok {
		wide := m.blendBig(prefix, lastUnknown)
		if wide.total.Sign() == 0 {
			return 0, false, keyBuf
		}
		return wide.choose(randBelow(m.rng, &wide.total)), true, keyBuf
	}
	if choices.total == 0 {
		return 0, false, keyBuf
	}
	return choices.choose(m.rng.IntN(choices.total)), true, keyBuf
}

// sampleNext returns the ID of the token drawn after prefix.
func (m *Model) sampleNext(prefix []int, lastUnknown int) (int, error) {
	id, ok, _ := m.draw(nil, prefix, lastUnknown)
	if !ok {
		return 0, ErrNoContinuation
	}
	return id, nil
}

// GenerateSentence returns a lazy sequence of the tokens of one new sentence.
// The sequence starts from the Begin context and ends, without yielding it,
// when End is drawn or no continuation exists. Each iteration of the
// returned sequence generates a fresh, independent sentence; the model is
// never modified.
func (m *Model) GenerateSentence() iter.Seq[Token] {
	return func(yield func(Token) bool) {
		var keyBuf []byte
		var id int
		var ok bool
		prefix := []int{BeginTokenID}
		for {
			id, ok, keyBuf = m.draw(keyBuf, prefix, -1)
			if !ok {
				m.logger.Debug("Generation terminated due to dead-end",
					slog.String("last_prefix", string(appendKey(nil, prefix))),
				)
				return
			}
			if id == EndTokenID {
				return
			}
			if !yield(m.vocab[id]) {
				return
			}
			prefix = m.advance(prefix, id)
		}
	}
}

// Generate creates a new sentence and renders it into a single string,
// joining the tokens with the tokenizer's separator.
func (m *Model) Generate(opts ...GenerateOption) string {
	options := &generateOptions{
		maxLength: 0,
	}
	for _, opt := range opts {
		opt(options)
	}

	var builder strings.Builder
	var lastWord string
	generatedCount := 0
	for token := range m.GenerateSentence() {
		text := token.String()
		if generatedCount > 0 {
			builder.WriteString(m.tokenizer.Separator(lastWord, text))
		}
		builder.WriteString(text)
		lastWord = text
		generatedCount++

		if options.maxLength > 0 && generatedCount >= options.maxLength {
			m.logger.Debug("Generation terminated by reaching maxLength",
				slog.Int("max_length", options.maxLength),
			)
			break
		}
	}
	return builder.String()
}

// GenerateN renders count sentences. It stops early, returning what it has
// generated so far, if ctx is cancelled.
func (m *Model) GenerateN(ctx context.Context, count int, opts ...GenerateOption) ([]string, error) {
	sentences := make([]string, 0, count)
	for range count {
		if err := ctx.Err(); err != nil {
			return sentences, err
		}
		sentences = append(sentences, m.Generate(opts...))
	}
	return sentences, nil
}
