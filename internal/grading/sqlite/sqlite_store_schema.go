package sqlite

import (
	"context"
)

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	// answers_json and marks_json keep the per-question detail without a
	// second table; nothing queries inside them.
	statements := []string{
		`CREATE TABLE IF NOT EXISTS submissions (
			submission_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			roll_id TEXT NOT NULL,
			score REAL NOT NULL,
			total REAL NOT NULL,
			answers_json TEXT NOT NULL,
			marks_json TEXT NOT NULL,
			submitted_at_unix INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_submitted_at ON submissions(submitted_at_unix DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_submissions_roll ON submissions(roll_id);`,
	}

	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
