//go:build !cgo_sqlite

package corpus

import (
	_ "modernc.org/sqlite"
)

// sqlDriver is the database/sql driver name used by OpenSQL.
const sqlDriver = "sqlite"
