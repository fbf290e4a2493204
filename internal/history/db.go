package history

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// The log is append-heavy with a single writer (the Recorder). NORMAL sync
// is durable under WAL except for the last commits on power loss, which is
// acceptable for a history of transient messages. Immediate transactions
// take the write lock up front so inserts never fail mid-transaction with
// SQLITE_BUSY.
const dsnParams = "?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000&_txlock=immediate"

// DB wraps the SQLite flash history database.
type DB struct {
	*sql.DB
}

// Open connects to the history database at path. The pool is capped at one
// connection so writes from the Recorder serialize in-process instead of
// contending for the file lock.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path+dsnParams)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping history db: %w", err)
	}
	return &DB{db}, nil
}
