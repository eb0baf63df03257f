package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

const defaultPath = "quiz.db"

// Submissions are written one request at a time; WAL lets result and listing
// reads proceed while a grade is being stored.
var connectionPragmas = []string{
	`PRAGMA busy_timeout = 5000;`,
	`PRAGMA journal_mode = WAL;`,
	`PRAGMA synchronous = NORMAL;`,
}

// SQLiteStore persists graded submissions.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = defaultPath
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open submissions db %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	store := &SQLiteStore{db: db}
	if err := store.prepare(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("prepare submissions db %s: %w", path, err)
	}
	return store, nil
}

func (s *SQLiteStore) prepare(ctx context.Context) error {
	for _, pragma := range connectionPragmas {
		if _, err := s.db.ExecContext(ctx, pragma); err != nil {
			return err
		}
	}
	return s.initSchema(ctx)
}

// Ping checks that the database answers and the submissions table exists.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	var count int
	return s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM submissions WHERE 0;`).Scan(&count)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
