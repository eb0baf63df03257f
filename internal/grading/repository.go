package grading

import (
	"context"
	"errors"
	"time"

	"timed-quiz/internal/quiz"
)

var (
	ErrInvalidStudent     = errors.New("name and roll number are required")
	ErrSubmissionNotFound = errors.New("submission not found")
	ErrEmptyBank          = errors.New("question bank is empty")
)

// Submission is a graded set of answers.
type Submission struct {
	ID          string                   `json:"id"`
	Name        string                   `json:"name"`
	RollID      string                   `json:"rollId"`
	Score       float64                  `json:"score"`
	Total       float64                  `json:"total"`
	Answers     quiz.AnswerSet           `json:"answers"`
	Marks       map[quiz.QuestionID]bool `json:"marks"`
	SubmittedAt time.Time                `json:"submittedAt"`
}

type SubmissionRepository interface {
	SaveSubmission(ctx context.Context, submission Submission) error
	GetSubmission(ctx context.Context, id string) (Submission, error)
	ListRecentSubmissions(ctx context.Context, limit int) ([]Submission, error)
}
