// FILE: sqlsink.go
package log

import (
	"database/sql"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLSink persists every record into a SQLite table, giving the pipeline a
// durable, queryable store alongside the append-only file sink. Writes are
// wrapped in a mutex since database/sql's *sql.DB pool is safe for
// concurrent use but the consumer goroutine is already single-threaded
// here, so the lock only protects the prepared statement handle.
type SQLSink struct {
	mu   sync.Mutex
	db   *sql.DB
	ins  *sql.Stmt
}

// NewSQLSink opens (creating if absent) a SQLite database at path and
// ensures its log table and prepared insert exist.
func NewSQLSink(path string) (*SQLSink, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	const schema = `
CREATE TABLE IF NOT EXISTS log_records (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	recorded_at INTEGER NOT NULL,
	level INTEGER NOT NULL,
	body TEXT NOT NULL
)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}

	stmt, err := db.Prepare(`INSERT INTO log_records (recorded_at, level, body) VALUES (?, ?, ?)`)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SQLSink{db: db, ins: stmt}, nil
}

func (s *SQLSink) Write(b []byte, level Level) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.ins.Exec(time.Now().UnixNano(), int64(level), string(b))
	return err
}

func (s *SQLSink) Flush() error {
	return nil
}

// Close releases the prepared statement and database handle.
func (s *SQLSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.ins.Close(); err != nil {
		return err
	}
	return s.db.Close()
}

// Count returns the number of rows currently stored, for tests.
func (s *SQLSink) Count() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM log_records`).Scan(&n)
	return n, err
}
