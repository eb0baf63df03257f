package httpapi

import (
	"time"

	"timed-quiz/internal/quiz"
)

type submitResponse struct {
	Score  float64 `json:"score"`
	Total  float64 `json:"total"`
	PDFURL string  `json:"pdfUrl"`
}

type submissionSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	RollID      string    `json:"rollId"`
	Score       float64   `json:"score"`
	Total       float64   `json:"total"`
	SubmittedAt time.Time `json:"submittedAt"`
	ResultURL   string    `json:"resultUrl"`
}

type submissionsResponse struct {
	Submissions []submissionSummary `json:"submissions"`
}

type questionsResponse []quiz.Question

type healthResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}
