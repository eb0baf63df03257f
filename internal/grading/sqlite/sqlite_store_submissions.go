package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"timed-quiz/internal/grading"
	"timed-quiz/internal/quiz"
)

func (s *SQLiteStore) SaveSubmission(ctx context.Context, submission grading.Submission) error {
	answersJSON, err := json.Marshal(submission.Answers)
	if err != nil {
		return err
	}
	marksJSON, err := json.Marshal(submission.Marks)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO submissions (submission_id, name, roll_id, score, total, answers_json, marks_json, submitted_at_unix)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		submission.ID,
		submission.Name,
		submission.RollID,
		submission.Score,
		submission.Total,
		string(answersJSON),
		string(marksJSON),
		submission.SubmittedAt.UTC().UnixNano(),
	)
	return err
}

func (s *SQLiteStore) GetSubmission(ctx context.Context, id string) (grading.Submission, error) {
	row := s.db.QueryRowContext(
		ctx,
		`SELECT submission_id, name, roll_id, score, total, answers_json, marks_json, submitted_at_unix
		 FROM submissions
		 WHERE submission_id = ?`,
		id,
	)

	submission, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return grading.Submission{}, grading.ErrSubmissionNotFound
	}
	return submission, err
}

func (s *SQLiteStore) ListRecentSubmissions(ctx context.Context, limit int) ([]grading.Submission, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT submission_id, name, roll_id, score, total, answers_json, marks_json, submitted_at_unix
		 FROM submissions
		 ORDER BY submitted_at_unix DESC, submission_id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	submissions := make([]grading.Submission, 0)
	for rows.Next() {
		submission, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, submission)
	}
	return submissions, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (grading.Submission, error) {
	var (
		submission    grading.Submission
		answersJSON   string
		marksJSON     string
		submittedAtNs int64
	)
	if err := row.Scan(
		&submission.ID,
		&submission.Name,
		&submission.RollID,
		&submission.Score,
		&submission.Total,
		&answersJSON,
		&marksJSON,
		&submittedAtNs,
	); err != nil {
		return grading.Submission{}, err
	}

	submission.Answers = quiz.AnswerSet{}
	if err := json.Unmarshal([]byte(answersJSON), &submission.Answers); err != nil {
		return grading.Submission{}, err
	}
	submission.Marks = map[quiz.QuestionID]bool{}
	if err := json.Unmarshal([]byte(marksJSON), &submission.Marks); err != nil {
		return grading.Submission{}, err
	}
	submission.SubmittedAt = time.Unix(0, submittedAtNs).UTC()
	return submission, nil
}
