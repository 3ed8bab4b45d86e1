package corpus

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/CTAG07/Babble/pkg/markov"
)

// readAll drains src, failing the test on any error other than io.EOF.
func readAll(t *testing.T, src Source) []string {
	t.Helper()
	var lines []string
	for {
		line, err := src.ReadLine()
		if errors.Is(err, io.EOF) {
			return lines
		}
		if err != nil {
			t.Fatalf("ReadLine() error = %v", err)
		}
		lines = append(lines, line)
	}
}

// setupTestDB creates a new SQLite database in a temporary directory with the
// corpus schema installed.
func setupTestDB(t *testing.T) (*sql.DB, string) {
	t.Helper()
	dbFile := filepath.Join(t.TempDir(), "corpus.db")
	db, err := OpenDB(dbFile)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := SetupSchema(context.Background(), db); err != nil {
		t.Fatalf("failed to set up schema: %v", err)
	}
	return db, dbFile
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.txt")
	if err := os.WriteFile(path, []byte("the cat sat\n\nthe dog sat\r\n"), 0644); err != nil {
		t.Fatal(err)
	}

	src, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile() error = %v", err)
	}
	defer func() { _ = src.Close() }()

	got := readAll(t, src)
	want := []string{"the cat sat", "", "the dog sat"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestOpenFileMissing(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "nope.txt"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "nope.txt") {
		t.Errorf("expected the path in the error, got %q", err)
	}
}

func TestReaderSourceTrainsModel(t *testing.T) {
	src := NewReaderSource(strings.NewReader("one fish two fish\nred fish blue fish\n"))
	defer func() { _ = src.Close() }()

	m, err := markov.NewModel(markov.DefaultMaxOrder, markov.DefaultBlendWeight)
	if err != nil {
		t.Fatal(err)
	}
	learned, err := m.Train(context.Background(), src)
	if err != nil {
		t.Fatalf("Train() error = %v", err)
	}
	if learned != 2 {
		t.Errorf("expected 2 sentences, got %d", learned)
	}
}

func TestImportAndOpenSQL(t *testing.T) {
	db, dbFile := setupTestDB(t)
	ctx := context.Background()

	stored, err := ImportLines(ctx, db, NewReaderSource(strings.NewReader("a b c\n\na b d\n")))
	if err != nil {
		t.Fatalf("ImportLines() error = %v", err)
	}
	if stored != 2 {
		t.Errorf("expected 2 stored lines, got %d", stored)
	}

	src, err := OpenSQL(ctx, dbFile, DefaultQuery)
	if err != nil {
		t.Fatalf("OpenSQL() error = %v", err)
	}
	got := readAll(t, src)
	if err := src.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	want := []string{"a b c", "a b d"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSQLSourceCustomQuery(t *testing.T) {
	db, _ := setupTestDB(t)
	ctx := context.Background()

	if _, err := db.ExecContext(ctx, `CREATE TABLE messages (id INTEGER PRIMARY KEY, body TEXT)`); err != nil {
		t.Fatal(err)
	}
	if _, err := db.ExecContext(ctx, `INSERT INTO messages (body) VALUES ('hello there'), (NULL), ('general kenobi')`); err != nil {
		t.Fatal(err)
	}

	src, err := NewSQLSource(ctx, db, `SELECT body FROM messages ORDER BY id`)
	if err != nil {
		t.Fatalf("NewSQLSource() error = %v", err)
	}
	got := readAll(t, src)
	_ = src.Close()

	// NULL reads as an empty line, which the model skips.
	want := []string{"hello there", "", "general kenobi"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}

	// The shared handle stays usable after the source is closed.
	if err := db.PingContext(ctx); err != nil {
		t.Errorf("database closed by a non-owning source: %v", err)
	}
}

func TestOpenSQLBadQuery(t *testing.T) {
	_, dbFile := setupTestDB(t)
	_, err := OpenSQL(context.Background(), dbFile, "SELECT text FROM missing_table")
	if err == nil {
		t.Fatal("expected an error for a missing table")
	}
}
