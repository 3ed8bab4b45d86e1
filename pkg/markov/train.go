package markov

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// LineReader supplies corpus lines one at a time. ReadLine returns io.EOF
// once the corpus is exhausted.
type LineReader interface {
	ReadLine() (string, error)
}

// Learn records one sentence. Word tokens are case-folded before they are
// recorded. Every transition is counted under the full current context and
// under each of its shorter suffixes, and the sentence ends with a transition
// to End. An empty slice is ignored.
func (m *Model) Learn(tokens []string) {
	if len(tokens) == 0 {
		return
	}

	var keyBuf []byte
	prefix := []int{BeginTokenID}
	for _, raw := range tokens {
		id := m.tokenID(NewWord(strings.ToLower(raw)))
		keyBuf = m.recordTransition(keyBuf, prefix, id)
		prefix = m.advance(prefix, id)
	}
	m.recordTransition(keyBuf, prefix, EndTokenID)
	m.sentences++
}

// LearnLine tokenizes a single line and learns it. Trailing line terminators
// are stripped and lines without tokens are skipped. It reports whether a
// sentence was learned.
func (m *Model) LearnLine(line string) bool {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return false
	}
	tokens := m.tokenizer.Split(line)
	if len(tokens) == 0 {
		return false
	}
	m.Learn(tokens)
	return true
}

// Train learns every line supplied by lines until it returns io.EOF, and
// returns the number of sentences learned. The context is checked between
// lines so that a long interactive session can be interrupted.
func (m *Model) Train(ctx context.Context, lines LineReader) (int64, error) {
	var learned int64
	for {
		if err := ctx.Err(); err != nil {
			return learned, err
		}
		line, err := lines.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return learned, fmt.Errorf("corpus read error: %w", err)
		}
		if m.LearnLine(line) {
			learned++
		}
	}

	m.logger.InfoContext(ctx, "Training completed",
		slog.Int64("sentences_processed", learned),
		slog.Int("contexts", len(m.links)),
		slog.Int("vocabulary", len(m.vocab)),
	)
	return learned, nil
}

// TrainReader is a convenience wrapper around Train that reads lines from r.
func (m *Model) TrainReader(ctx context.Context, r io.Reader) (int64, error) {
	return m.Train(ctx, NewScannerLineReader(r))
}

// maxLineLength bounds the size of a single corpus line read by
// ScannerLineReader.
const maxLineLength = 1 << 20

// ScannerLineReader adapts an io.Reader to a LineReader using a bufio.Scanner.
type ScannerLineReader struct {
	scanner *bufio.Scanner
}

// NewScannerLineReader returns a LineReader over r.
func NewScannerLineReader(r io.Reader) *ScannerLineReader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	return &ScannerLineReader{scanner: s}
}

// ReadLine returns the next line without its terminator, or io.EOF.
func (s *ScannerLineReader) ReadLine() (string, error) {
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return s.scanner.Text(), nil
}

// recordTransition counts next under prefix and under every shorter suffix of
// prefix, longest first. keyBuf is scratch space and is returned for reuse.
func (m *Model) recordTransition(keyBuf []byte, prefix []int, next int) []byte {
	for i := 0; i < len(prefix); i++ {
		keyBuf = appendKey(keyBuf[:0], prefix[i:])
		d, ok := m.links[string(keyBuf)]
		if !ok {
			d = newDistribution()
			m.links[string(keyBuf)] = d
		}
		d.add(next, 1)
	}
	return keyBuf
}

// advance returns a new prefix with id appended, dropping the oldest entries
// so that it never holds more than maxOrder IDs.
func (m *Model) advance(prefix []int, id int) []int {
	start := 0
	if len(prefix)+1 > m.maxOrder {
		start = len(prefix) + 1 - m.maxOrder
	}
	next := make([]int, 0, m.maxOrder)
	next = append(next, prefix[start:]...)
	return append(next, id)
}
