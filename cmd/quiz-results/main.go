package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"timed-quiz/internal/cli"
	"timed-quiz/internal/config"
	"timed-quiz/internal/scoring"
)

func main() {
	server := flag.String("server", config.DefaultServerURL, "quiz service base URL")
	limit := flag.Int("limit", 20, "number of submissions to list")
	timeout := flag.Duration("timeout", 5*time.Second, "HTTP timeout")
	flag.Parse()

	if env, ok := os.LookupEnv(config.EnvServerURL); ok && !isFlagSet("server") {
		*server = env
	}

	client := scoring.NewClient(*server, &http.Client{Timeout: *timeout})
	if err := cli.ListResults(context.Background(), os.Stdout, client, *limit, *server); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
