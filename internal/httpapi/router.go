package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

func NewRouter(grader Grader, opts Options) http.Handler {
	api := NewAPI(grader, opts)

	router := mux.NewRouter()
	router.HandleFunc("/", api.HandleQuestions).Methods(http.MethodGet)
	router.HandleFunc("/", api.HandleSubmit).Methods(http.MethodPost)
	router.HandleFunc("/results/{id}", api.HandleResult).Methods(http.MethodGet)
	router.HandleFunc("/submissions", api.HandleSubmissions).Methods(http.MethodGet)
	router.HandleFunc("/healthz", api.HandleHealth).Methods(http.MethodGet)
	router.MethodNotAllowedHandler = http.HandlerFunc(writeMethodNotAllowed)
	router.NotFoundHandler = http.HandlerFunc(writeNotFound)

	// Wrapped rather than router.Use so preflights and unmatched requests
	// see the headers and get logged too.
	return withRequestLogging(api.logger)(withCORS(opts.AllowOrigin)(router))
}

func writeMethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
}

func writeNotFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
}
