//go:build cgo_sqlite

package corpus

import (
	_ "github.com/mattn/go-sqlite3"
)

// sqlDriver is the database/sql driver name used by OpenSQL.
const sqlDriver = "sqlite3"
