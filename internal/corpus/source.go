// Package corpus provides the line sources a model learns from: plain files,
// interactive streams and SQL queries over a SQLite database.
package corpus

import (
	"fmt"
	"io"
	"os"

	"github.com/CTAG07/Babble/pkg/markov"
)

// Source is a closable stream of corpus lines.
type Source interface {
	markov.LineReader
	io.Closer
}

// readerSource reads lines from an io.Reader and closes the underlying
// reader, if it can be closed, on Close.
type readerSource struct {
	*markov.ScannerLineReader
	closer io.Closer
}

func (s *readerSource) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// NewReaderSource returns a Source reading lines from r, such as an
// interactive stdin. Closing it does not close r.
func NewReaderSource(r io.Reader) Source {
	return &readerSource{ScannerLineReader: markov.NewScannerLineReader(r)}
}

// OpenFile opens the corpus file at path.
func OpenFile(path string) (Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open corpus file '%s': %w", path, err)
	}
	return &readerSource{
		ScannerLineReader: markov.NewScannerLineReader(f),
		closer:            f,
	}, nil
}
