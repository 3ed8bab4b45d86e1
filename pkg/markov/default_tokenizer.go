package markov

import (
	"regexp"
)

// Tokenizer is an interface that defines the contract for splitting a line of
// input text into raw tokens and for joining generated tokens back together.
// This allows the chain logic to be independent of the specific tokenization
// strategy.
type Tokenizer interface {
	// Split returns the raw tokens of a single line, in order. A line that
	// yields no tokens is not learned.
	Split(line string) []string
	// Separator returns the string placed between the previous and current
	// tokens when rendering a generated sentence.
	Separator(prev, current string) string
}

// DefaultTokenizer is the default implementation of the Tokenizer interface.
// It splits text into runs of word characters and single non-word characters,
// so spaces and punctuation become tokens of their own and a generated
// sentence can be rendered by plain concatenation.
type DefaultTokenizer struct {
	separator         string
	splitRegex        *regexp.Regexp
	separatorExcRegex *regexp.Regexp
}

// Option Is a function that configures a DefaultTokenizer.
type Option func(*DefaultTokenizer)

// WithSeparator Sets the string used for joining tokens during generation.
// Default: ""
func WithSeparator(sep string) Option {
	return func(t *DefaultTokenizer) {
		t.separator = sep
	}
}

// WithSplitRegex sets the regex string to use when splitting input text.
// Default: `[\p{L}\p{N}_]+|[^\p{L}\p{N}_]`
func WithSplitRegex(splitRegex string) Option {
	return func(t *DefaultTokenizer) {
		t.splitRegex = regexp.MustCompile(splitRegex)
	}
}

// WithSeparatorExcRegex sets the regex string to use when deciding whether to
// leave out the separator before a token. Only useful together with a
// non-empty separator, e.g. to keep punctuation attached to the previous word.
func WithSeparatorExcRegex(sepExcRegex string) Option {
	return func(t *DefaultTokenizer) {
		t.separatorExcRegex = regexp.MustCompile(sepExcRegex)
	}
}

// NewDefaultTokenizer creates a new tokenizer with default settings, which can be
// overridden by providing one or more Option functions.
func NewDefaultTokenizer(opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{
		separator: "",
		// A run of letters, digits and underscores, OR any other single character.
		splitRegex: regexp.MustCompile(`[\p{L}\p{N}_]+|[^\p{L}\p{N}_]`),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// Split returns all tokens found in line.
func (t *DefaultTokenizer) Split(line string) []string {
	return t.splitRegex.FindAllString(line, -1)
}

// Separator Returns the configured separator string.
func (t *DefaultTokenizer) Separator(_, current string) string {
	if t.separatorExcRegex != nil && t.separatorExcRegex.MatchString(current) {
		return ""
	}
	return t.separator
}
