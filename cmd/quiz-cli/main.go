package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"timed-quiz/internal/cli"
	"timed-quiz/internal/config"
	"timed-quiz/internal/scoring"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", config.DefaultPath, "client config file")
	server := flag.String("server", "", "scoring service URL (overrides config)")
	name := flag.String("name", "", "student name")
	roll := flag.String("roll", "", "roll number")
	uiMode := flag.String("ui", "", "display mode: auto, live or plain")
	timeout := flag.Duration("timeout", 0, "HTTP timeout (overrides config)")
	logFile := flag.String("log-file", "", "append diagnostics to this file")
	noColor := flag.Bool("no-color", false, "disable colors in the live display")
	flag.Parse()

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg, err := config.Load(*configPath, config.LoadOptions{Optional: !set["config"]})
	if err != nil {
		return err
	}
	if set["server"] {
		cfg.ServerURL = *server
	}
	if set["name"] {
		cfg.Student.Name = *name
	}
	if set["roll"] {
		cfg.Student.Roll = *roll
	}
	if set["ui"] {
		cfg.UI = *uiMode
	}
	if set["timeout"] {
		cfg.HTTPTimeout = *timeout
	}
	if set["log-file"] {
		cfg.LogFile = *logFile
	}
	if set["no-color"] {
		cfg.NoColor = *noColor
	}
	config.Normalize(&cfg)
	if err := config.Validate(&cfg); err != nil {
		return err
	}

	live, err := cli.UsesLiveUI(cfg.UI, os.Stdout)
	if err != nil {
		return err
	}
	logger, closeLog, err := openLogger(cfg, live)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := scoring.NewClient(cfg.ServerURL, &http.Client{Timeout: cfg.HTTPTimeout})
	err = cli.Run(ctx, os.Stdin, os.Stdout, cli.Options{
		Service: client,
		Name:    cfg.Student.Name,
		Roll:    cfg.Student.Roll,
		UIMode:  cfg.UI,
		NoColor: cfg.NoColor,
		Logger:  logger,
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// openLogger writes diagnostics to the log file when one is configured. The
// live display owns the terminal, so without a file it logs nowhere; plain
// output, including the fallback from live, logs to stderr.
func openLogger(cfg config.Config, live bool) (*log.Logger, func(), error) {
	if cfg.LogFile != "" {
		file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		return log.New(file, "quiz-cli ", log.LstdFlags), func() { _ = file.Close() }, nil
	}
	if !live {
		return log.New(os.Stderr, "quiz-cli ", log.LstdFlags), func() {}, nil
	}
	return log.New(io.Discard, "", 0), func() {}, nil
}
