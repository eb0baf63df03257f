package main

import (
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	"timed-quiz/internal/grading"
	"timed-quiz/internal/grading/sqlite"
	"timed-quiz/internal/httpapi"
)

func main() {
	defaultAddr := os.Getenv("ADDR")
	if defaultAddr == "" {
		defaultAddr = ":8080"
	}

	addr := flag.String("addr", defaultAddr, "HTTP listen address")
	questionsPath := flag.String("questions", "questions.yml", "YAML answer key")
	dbPath := flag.String("db", "quiz.db", "SQLite database for submissions")
	publicURL := flag.String("public-url", "", "externally visible base URL for result links")
	resultTTL := flag.Duration("result-ttl", 24*time.Hour, "how long graded results stay cached")
	allowOrigin := flag.String("allow-origin", "", "Access-Control-Allow-Origin value (empty disables CORS)")
	flag.Parse()

	bank, err := grading.LoadBank(*questionsPath)
	if err != nil {
		log.Fatalf("load questions: %v", err)
	}

	store, err := sqlite.NewSQLiteStore(*dbPath)
	if err != nil {
		log.Fatalf("open store: %v", err)
	}
	defer store.Close()

	logger := log.New(os.Stderr, "", log.LstdFlags)
	service := grading.NewService(bank, store, *resultTTL)

	server := &http.Server{
		Addr: *addr,
		Handler: httpapi.NewRouter(service, httpapi.Options{
			PublicURL:   *publicURL,
			AllowOrigin: *allowOrigin,
			Logger:      logger,
			Store:       store,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("quiz-service listening on %s (%d questions)", *addr, bank.Len())
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server failed: %v", err)
	}
}
