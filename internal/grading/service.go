package grading

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"timed-quiz/internal/quiz"
)

const (
	DefaultResultTTL   = 24 * time.Hour
	cacheCleanup       = 10 * time.Minute
	defaultRecentLimit = 20
	maxRecentLimit     = 100
)

type Service struct {
	bank        *Bank
	submissions SubmissionRepository
	results     *cache.Cache
	now         func() time.Time
}

func NewService(bank *Bank, submissions SubmissionRepository, resultTTL time.Duration) *Service {
	if resultTTL <= 0 {
		resultTTL = DefaultResultTTL
	}
	return &Service{
		bank:        bank,
		submissions: submissions,
		results:     cache.New(resultTTL, cacheCleanup),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) Questions(_ context.Context) ([]quiz.Question, error) {
	if s.bank == nil || s.bank.Len() == 0 {
		return nil, ErrEmptyBank
	}
	return s.bank.Questions(), nil
}

// Submit grades and stores one student's answers.
func (s *Service) Submit(ctx context.Context, name, rollID string, answers quiz.AnswerSet) (Submission, error) {
	name = strings.TrimSpace(name)
	rollID = strings.TrimSpace(rollID)
	if name == "" || rollID == "" {
		return Submission{}, ErrInvalidStudent
	}
	if s.bank == nil || s.bank.Len() == 0 {
		return Submission{}, ErrEmptyBank
	}
	if answers == nil {
		answers = quiz.AnswerSet{}
	}

	grade := s.bank.Grade(answers)
	submission := Submission{
		ID:          uuid.NewString(),
		Name:        name,
		RollID:      rollID,
		Score:       grade.Score,
		Total:       grade.Total,
		Answers:     answers.Clone(),
		Marks:       grade.Marks,
		SubmittedAt: s.now(),
	}

	if err := s.submissions.SaveSubmission(ctx, submission); err != nil {
		return Submission{}, err
	}
	s.setCachedSubmission(submission)
	return submission, nil
}

func (s *Service) Result(ctx context.Context, id string) (Submission, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Submission{}, ErrSubmissionNotFound
	}
	if submission, ok := s.getCachedSubmission(id); ok {
		return submission, nil
	}

	submission, err := s.submissions.GetSubmission(ctx, id)
	if err != nil {
		return Submission{}, err
	}
	s.setCachedSubmission(submission)
	return submission, nil
}

func (s *Service) Recent(ctx context.Context, limit int) ([]Submission, error) {
	return s.submissions.ListRecentSubmissions(ctx, normalizeRecentLimit(limit))
}

func normalizeRecentLimit(limit int) int {
	if limit <= 0 {
		return defaultRecentLimit
	}
	if limit > maxRecentLimit {
		return maxRecentLimit
	}
	return limit
}
