package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
)

// DefaultQuery selects the lines stored by ImportLines.
const DefaultQuery = "SELECT text FROM corpus_lines ORDER BY line_id"

// OpenDB opens the SQLite database described by dataSource, using the pure-Go
// driver by default or the cgo driver when built with the cgo_sqlite tag.
func OpenDB(dataSource string) (*sql.DB, error) {
	db, err := sql.Open(sqlDriver, dataSource)
	if err != nil {
		return nil, fmt.Errorf("could not open corpus database: %w", err)
	}
	return db, nil
}

// SetupSchema creates the table used to store corpus lines. It is idempotent
// and safe to call on an already-initialized database.
func SetupSchema(ctx context.Context, db *sql.DB) error {
	const schemaLines = `
CREATE TABLE IF NOT EXISTS corpus_lines (
    line_id INTEGER PRIMARY KEY,
    text TEXT NOT NULL
);
`
	if _, err := db.ExecContext(ctx, schemaLines); err != nil {
		return fmt.Errorf("could not create corpus schema: %w", err)
	}
	return nil
}

// ImportLines appends every non-empty line of src to the corpus table within
// a single transaction and returns the number of lines stored.
func ImportLines(ctx context.Context, db *sql.DB, src Source) (int64, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("could not begin transaction for import: %w", err)
	}
	// If the transaction succeeds, tx.Commit() will be called first, and the rollback will do nothing.
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO corpus_lines (text) VALUES (?);`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare line insert statement: %w", err)
	}
	defer func(stmt *sql.Stmt) {
		_ = stmt.Close()
	}(stmt)

	var stored int64
	for {
		line, err := src.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return 0, fmt.Errorf("corpus read error: %w", err)
		}
		if line == "" {
			continue
		}
		if _, err = stmt.ExecContext(ctx, line); err != nil {
			return 0, fmt.Errorf("failed to insert corpus line %d: %w", stored+1, err)
		}
		stored++
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("could not commit corpus import: %w", err)
	}
	return stored, nil
}

// sqlSource yields each row of a single-column query as a line.
type sqlSource struct {
	rows *sql.Rows
	db   *sql.DB // closed with the source when owned
}

// OpenSQL opens the database at dataSource and runs query, which must select
// exactly one text column. The returned Source owns the database handle and
// closes it on Close.
func OpenSQL(ctx context.Context, dataSource, query string) (Source, error) {
	db, err := OpenDB(dataSource)
	if err != nil {
		return nil, err
	}
	src, err := newSQLSource(ctx, db, query)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	src.db = db
	return src, nil
}

// NewSQLSource runs query against an already open database. Closing the
// returned Source releases the rows but leaves db open.
func NewSQLSource(ctx context.Context, db *sql.DB, query string) (Source, error) {
	return newSQLSource(ctx, db, query)
}

func newSQLSource(ctx context.Context, db *sql.DB, query string) (*sqlSource, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not query corpus lines: %w", err)
	}
	return &sqlSource{rows: rows}, nil
}

// ReadLine returns the next row's text. NULL values read as empty lines.
func (s *sqlSource) ReadLine() (string, error) {
	if !s.rows.Next() {
		if err := s.rows.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	var text sql.NullString
	if err := s.rows.Scan(&text); err != nil {
		return "", fmt.Errorf("could not scan corpus line: %w", err)
	}
	return text.String, nil
}

func (s *sqlSource) Close() error {
	err := s.rows.Close()
	if s.db != nil {
		if dbErr := s.db.Close(); err == nil {
			err = dbErr
		}
	}
	return err
}
