package markov

import (
	"strconv"
)

// Kind distinguishes ordinary text tokens from the two sentence sentinels.
type Kind uint8

const (
	// Word is an ordinary word or punctuation token.
	Word Kind = iota
	// Begin marks the start of a sentence.
	Begin
	// End marks the end of a sentence.
	End
)

const (
	// BeginTokenID is the reserved vocabulary ID for the Begin sentinel.
	BeginTokenID = 0
	// EndTokenID is the reserved vocabulary ID for the End sentinel.
	EndTokenID = 1
	// BeginTokenText is the rendered form of the Begin sentinel.
	BeginTokenText = "<begin>"
	// EndTokenText is the rendered form of the End sentinel.
	EndTokenText = "<end>"
)

// Token is a single unit of learned or generated text. Tokens are comparable
// and can be used directly as map keys. Sentinels should be built from
// BeginToken and EndToken; the Model identifies them by Kind alone and
// ignores their Text.
type Token struct {
	Kind Kind
	Text string
}

var (
	// BeginToken is the sentence-start sentinel.
	BeginToken = Token{Kind: Begin}
	// EndToken is the sentence-end sentinel.
	EndToken = Token{Kind: End}
)

// NewWord returns an ordinary token holding text.
func NewWord(text string) Token {
	return Token{Kind: Word, Text: text}
}

// IsSentinel reports whether t is Begin or End.
func (t Token) IsSentinel() bool {
	return t.Kind != Word
}

// String returns the token text, or the bracketed sentinel name.
func (t Token) String() string {
	switch t.Kind {
	case Begin:
		return BeginTokenText
	case End:
		return EndTokenText
	default:
		return t.Text
	}
}

// Context is an ordered window of the most recent tokens, oldest first.
type Context []Token

// StartContext returns the context every sentence begins from.
func StartContext() Context {
	return Context{BeginToken}
}

// ChainToken is a possible next token for a context, identified by its
// vocabulary ID, together with how often it followed that context.
type ChainToken struct {
	Id   int
	Freq int
}

// Link is the exported, token-resolved form of a ChainToken.
type Link struct {
	Token Token
	Freq  int
}

// appendKey appends the link-table key for ids to buf. Keys are the decimal
// IDs joined by single spaces.
func appendKey(buf []byte, ids []int) []byte {
	for j, id := range ids {
		if j > 0 {
			buf = append(buf, ' ')
		}
		buf = strconv.AppendInt(buf, int64(id), 10)
	}
	return buf
}
