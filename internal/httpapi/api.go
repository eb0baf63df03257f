package httpapi

import (
	"context"
	"io"
	"log"
	"strings"

	"timed-quiz/internal/grading"
	"timed-quiz/internal/quiz"
)

// Grader is the grading service as seen by the handlers.
type Grader interface {
	Questions(ctx context.Context) ([]quiz.Question, error)
	Submit(ctx context.Context, name, rollID string, answers quiz.AnswerSet) (grading.Submission, error)
	Result(ctx context.Context, id string) (grading.Submission, error)
	Recent(ctx context.Context, limit int) ([]grading.Submission, error)
}

// Pinger reports whether the submission store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Options struct {
	// PublicURL is the externally visible base for result links. When empty
	// it is derived from each request.
	PublicURL string
	// AllowOrigin is sent as Access-Control-Allow-Origin; empty disables CORS headers.
	AllowOrigin string
	Logger      *log.Logger
	Store       Pinger
}

type API struct {
	grader    Grader
	store     Pinger
	publicURL string
	logger    *log.Logger
}

func NewAPI(grader Grader, opts Options) *API {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	return &API{
		grader:    grader,
		store:     opts.Store,
		publicURL: strings.TrimRight(strings.TrimSpace(opts.PublicURL), "/"),
		logger:    opts.Logger,
	}
}
