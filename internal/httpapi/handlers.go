package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"timed-quiz/internal/grading"
	"timed-quiz/internal/quiz"
)

const (
	maxSubmissionBytes = 1 << 20
	defaultListLimit   = 20
)

func (a *API) HandleQuestions(w http.ResponseWriter, r *http.Request) {
	if a.grader == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "grading service unavailable"})
		return
	}

	questions, err := a.grader.Questions(r.Context())
	if err != nil {
		a.logger.Printf("list questions: %v", err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, questionsResponse(questions))
}

// HandleSubmit reads the body as text whatever its content type, since
// clients send JSON labelled text/plain.
func (a *API) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if a.grader == nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "grading service unavailable"})
		return
	}
	defer r.Body.Close()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxSubmissionBytes+1))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "could not read body"})
		return
	}
	if len(body) > maxSubmissionBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "submission too large"})
		return
	}

	var submission quiz.Submission
	if err := json.Unmarshal(body, &submission); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}

	graded, err := a.grader.Submit(r.Context(), submission.Name, submission.RollID, submission.Answers)
	if err != nil {
		if !errors.Is(err, grading.ErrInvalidStudent) {
			a.logger.Printf("submit answers: %v", err)
		}
		writeServiceError(w, err)
		return
	}

	a.logger.Printf("graded submission %s for roll %s: %v/%v", graded.ID, graded.RollID, graded.Score, graded.Total)
	writeJSON(w, http.StatusOK, submitResponse{
		Score:  graded.Score,
		Total:  graded.Total,
		PDFURL: a.resultURL(r, graded.ID),
	})
}

// HandleResult renders the result document as plain text.
func (a *API) HandleResult(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	submission, err := a.grader.Result(r.Context(), id)
	if err != nil {
		if errors.Is(err, grading.ErrSubmissionNotFound) {
			http.Error(w, "result not found", http.StatusNotFound)
			return
		}
		a.logger.Printf("load result %s: %v", id, err)
		http.Error(w, "request failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, renderResult(submission))
}

func (a *API) HandleSubmissions(w http.ResponseWriter, r *http.Request) {
	limit, err := parseIntParam(r, "limit", defaultListLimit)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	submissions, err := a.grader.Recent(r.Context(), limit)
	if err != nil {
		a.logger.Printf("list submissions: %v", err)
		writeServiceError(w, err)
		return
	}

	response := submissionsResponse{Submissions: make([]submissionSummary, 0, len(submissions))}
	for _, submission := range submissions {
		response.Submissions = append(response.Submissions, submissionSummary{
			ID:          submission.ID,
			Name:        submission.Name,
			RollID:      submission.RollID,
			Score:       submission.Score,
			Total:       submission.Total,
			SubmittedAt: submission.SubmittedAt,
			ResultURL:   a.resultURL(r, submission.ID),
		})
	}
	writeJSON(w, http.StatusOK, response)
}

func (a *API) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if a.store != nil {
		if err := a.store.Ping(r.Context()); err != nil {
			a.logger.Printf("health check: %v", err)
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "store unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok"})
}

func renderResult(submission grading.Submission) string {
	var builder strings.Builder
	fmt.Fprintln(&builder, "Quiz result")
	fmt.Fprintf(&builder, "Name: %s\n", submission.Name)
	fmt.Fprintf(&builder, "Roll number: %s\n", submission.RollID)
	fmt.Fprintf(&builder, "Score: %v/%v\n", submission.Score, submission.Total)
	fmt.Fprintf(&builder, "Submitted: %s\n", submission.SubmittedAt.UTC().Format(time.RFC3339))

	ids := make([]string, 0, len(submission.Marks))
	for id := range submission.Marks {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)

	if len(ids) > 0 {
		fmt.Fprintln(&builder)
	}
	for _, id := range ids {
		mark := "incorrect"
		if submission.Marks[quiz.QuestionID(id)] {
			mark = "correct"
		}
		answer, _ := submission.Answers.Get(quiz.QuestionID(id))
		fmt.Fprintf(&builder, "%s: %s (%q)\n", id, mark, answer)
	}
	return builder.String()
}
