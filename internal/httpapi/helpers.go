package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"timed-quiz/internal/grading"
)

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, grading.ErrInvalidStudent):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "name and roll number are required"})
	case errors.Is(err, grading.ErrEmptyBank):
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "question bank is empty"})
	case errors.Is(err, grading.ErrSubmissionNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "submission not found"})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "request failed"})
	}
}

func parseIntParam(r *http.Request, key string, defaultValue int) (int, error) {
	value := strings.TrimSpace(r.URL.Query().Get(key))
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, errors.New(key + " must be a positive integer")
	}
	return parsed, nil
}

// baseURL prefers the configured public URL, then the forwarded headers a
// reverse proxy sets, then the request itself.
func (a *API) baseURL(r *http.Request) string {
	if a.publicURL != "" {
		return a.publicURL
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")); forwarded != "" {
		scheme = forwarded
	}
	host := r.Host
	if forwarded := strings.TrimSpace(r.Header.Get("X-Forwarded-Host")); forwarded != "" {
		host = forwarded
	}
	return scheme + "://" + host
}

func (a *API) resultURL(r *http.Request, id string) string {
	return a.baseURL(r) + "/results/" + id
}

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}
