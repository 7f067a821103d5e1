// Package sqlite implements chat.Store on a single SQLite database file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/hay-kot/gab/internal/core/chat"
)

const (
	driverName = "sqlite"

	// busyTimeout is how long a connection waits on another process's write lock.
	busyTimeout = 5 * time.Second

	// timestampLayout matches the strftime format used when reading rows back.
	timestampLayout = "2006-01-02T15:04:05.000Z"
)

const schema = `
CREATE TABLE IF NOT EXISTS messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	username TEXT NOT NULL,
	message TEXT NOT NULL,
	timestamp DATETIME DEFAULT (strftime('%Y-%m-%d %H:%M:%f', 'now'))
)`

const insertMessage = `INSERT INTO messages (username, message) VALUES (?, ?)`

// Rows written with CURRENT_TIMESTAMP have second precision; strftime
// normalizes both forms to the same layout.
const selectMessages = `
SELECT id, username, message, strftime('%Y-%m-%dT%H:%M:%fZ', timestamp)
FROM messages
ORDER BY timestamp, id`

// Store implements chat.Store. Every operation opens its own connection
// and closes it before returning.
type Store struct {
	path string
	log  zerolog.Logger
}

var _ chat.Store = (*Store)(nil)

// New creates a store backed by the database file at path. The file is
// not touched until the first operation.
func New(path string, log zerolog.Logger) *Store {
	return &Store{
		path: path,
		log:  log,
	}
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// dsn builds a file: URI for the database with the busy timeout pragma. The
// path is escaped so '?', '#' and '%' in file names survive.
func (s *Store) dsn() string {
	q := url.Values{}
	q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", busyTimeout.Milliseconds()))

	u := url.URL{
		Scheme:   "file",
		OmitHost: true,
		Path:     filepath.ToSlash(s.path),
		RawQuery: q.Encode(),
	}
	return u.String()
}

// withConn opens a connection, runs fn, and closes the connection on every
// exit path. Any failure is reported as a *chat.StorageError.
func (s *Store) withConn(op string, fn func(db *sql.DB) error) (err error) {
	db, err := sql.Open(driverName, s.dsn())
	if err != nil {
		return &chat.StorageError{Op: op, Err: fmt.Errorf("open database: %w", err)}
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = &chat.StorageError{Op: op, Err: fmt.Errorf("close database: %w", cerr)}
		}
	}()

	// A single connection keeps the handle scoped to this one operation.
	db.SetMaxOpenConns(1)

	if err := fn(db); err != nil {
		return &chat.StorageError{Op: op, Err: err}
	}
	return nil
}

// Initialize creates the database file and the messages table if needed.
func (s *Store) Initialize(ctx context.Context) error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &chat.StorageError{Op: "initialize", Err: fmt.Errorf("create database directory: %w", err)}
		}
	}

	err := s.withConn("initialize", func(db *sql.DB) error {
		if _, err := db.ExecContext(ctx, schema); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Debug().Str("path", s.path).Msg("schema ready")
	return nil
}

// Append rejects a blank author or body and otherwise inserts both verbatim.
func (s *Store) Append(ctx context.Context, author, body string) error {
	if err := chat.ValidateMessage(author, body); err != nil {
		return err
	}

	var id int64
	err := s.withConn("append", func(db *sql.DB) error {
		res, err := db.ExecContext(ctx, insertMessage, author, body)
		if err != nil {
			return fmt.Errorf("insert message: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("read message id: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Debug().Int64("id", id).Str("author", author).Msg("message appended")
	return nil
}

// ReadAll returns every message ordered by timestamp, then id.
func (s *Store) ReadAll(ctx context.Context) ([]chat.Message, error) {
	messages := []chat.Message{}

	err := s.withConn("read", func(db *sql.DB) error {
		rows, err := db.QueryContext(ctx, selectMessages)
		if err != nil {
			return fmt.Errorf("query messages: %w", err)
		}
		defer rows.Close() //nolint:errcheck

		for rows.Next() {
			var (
				m  chat.Message
				ts sql.NullString
			)
			if err := rows.Scan(&m.ID, &m.Author, &m.Body, &ts); err != nil {
				return fmt.Errorf("scan message: %w", err)
			}
			if ts.Valid {
				m.CreatedAt, err = time.Parse(timestampLayout, ts.String)
				if err != nil {
					return fmt.Errorf("parse timestamp of message %d: %w", m.ID, err)
				}
			}
			messages = append(messages, m)
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug().Int("count", len(messages)).Msg("messages read")
	return messages, nil
}
