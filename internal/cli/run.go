package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"timed-quiz/internal/quiz"
	"timed-quiz/internal/tui"
)

const (
	maxAttempts  = 3
	maxLineBytes = 64 * 1024
)

var (
	ErrInputClosed  = errors.New("input closed before the quiz started")
	ErrNotSubmitted = errors.New("input closed before the answers were submitted")
)

// Options configures a quiz run.
type Options struct {
	Service quiz.Service
	Name    string
	Roll    string
	UIMode  string
	NoColor bool
	Logger  *log.Logger

	// Clock and TickInterval drive the countdown; zero values use wall time.
	Clock        quiz.Clock
	TickInterval time.Duration
}

// Run takes one student through a quiz, in the live UI when out is a
// terminal and as plain text otherwise.
func Run(ctx context.Context, in io.Reader, out io.Writer, opts Options) error {
	if opts.Service == nil {
		return errors.New("no scoring service configured")
	}

	decision, err := resolveUIMode(opts.UIMode, out)
	if err != nil {
		return err
	}
	if decision.warning != "" {
		fmt.Fprintln(out, decision.warning)
	}

	controllerOpts := quiz.Options{
		Clock:        opts.Clock,
		Logger:       opts.Logger,
		Escape:       quiz.EscapeTerminal,
		TickInterval: opts.TickInterval,
	}

	if decision.useLive {
		display := tui.NewDisplay()
		controller := quiz.NewController(opts.Service, display, controllerOpts)
		defer controller.Close()
		return tui.Run(ctx, in, out, controller, display, tui.Options{
			Name:    opts.Name,
			Roll:    opts.Roll,
			NoColor: opts.NoColor,
		})
	}

	display := newPlainDisplay(out)
	controller := quiz.NewController(opts.Service, display, controllerOpts)
	defer controller.Close()
	return runPlain(ctx, in, controller, display, opts.Name, opts.Roll)
}

func runPlain(ctx context.Context, in io.Reader, controller *quiz.Controller, display *plainDisplay, name, roll string) error {
	lines := readLines(ctx, in)

	display.printf("Loading questions...\n")
	if err := controller.LoadQuestions(ctx); err != nil {
		return err
	}

	if err := startSession(ctx, controller, display, lines, name, roll); err != nil {
		return err
	}
	return answerLoop(ctx, controller, display, lines)
}

// startSession asks for missing details until Start accepts them.
func startSession(ctx context.Context, controller *quiz.Controller, display *plainDisplay, lines <-chan string, name, roll string) error {
	name = strings.TrimSpace(name)
	roll = strings.TrimSpace(roll)

	for attempt := 1; ; attempt++ {
		var err error
		if name == "" {
			display.printf("Name: ")
			if name, err = nextLine(ctx, lines); err != nil {
				return err
			}
		}
		if roll == "" {
			display.printf("Roll number: ")
			if roll, err = nextLine(ctx, lines); err != nil {
				return err
			}
		}

		err = controller.Start(ctx, name, roll)
		var validationErr *quiz.ValidationError
		switch {
		case err == nil:
			return nil
		case isShown(err):
			// An empty quiz is submitted straight away; the answer loop
			// handles a failure like any other.
			return nil
		case !errors.As(err, &validationErr) || attempt >= maxAttempts:
			return err
		}
	}
}

// answerLoop feeds each input line to the displayed question until the
// answers are graded. EOF submits whatever has been answered.
func answerLoop(ctx context.Context, controller *quiz.Controller, display *plainDisplay, lines <-chan string) error {
	eof := false
	lastPhase := quiz.PhaseIdle

	for {
		snapshot := controller.Snapshot()
		switch snapshot.Phase {
		case quiz.PhaseDone:
			return nil
		case quiz.PhaseFailed:
			if eof {
				return ErrNotSubmitted
			}
			if lastPhase != quiz.PhaseFailed {
				display.printf("Press Enter to retry the submission.\n")
			}
		case quiz.PhaseAnswering:
			if eof {
				err := controller.Submit(ctx)
				switch {
				case err == nil:
					continue
				case !errors.Is(err, quiz.ErrSubmitInProgress):
					return err
				}
			}
		}
		lastPhase = snapshot.Phase

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-display.changed:
		case line, ok := <-lines:
			if !ok {
				eof = true
				lines = nil
				continue
			}
			if err := handleLine(ctx, controller, display, line); err != nil {
				return err
			}
		}
	}
}

func handleLine(ctx context.Context, controller *quiz.Controller, display *plainDisplay, line string) error {
	snapshot := controller.Snapshot()
	switch snapshot.Phase {
	case quiz.PhaseAnswering:
		if expired, late := display.takeLateAnswer(snapshot.Current); late {
			display.printf("Time ran out for question %d; that answer was not saved. Answer question %d now.\n", expired+1, snapshot.Current+1)
			return nil
		}
		return ignoreShown(controller.Answer(ctx, snapshot.Current, line))
	case quiz.PhaseFailed:
		if strings.TrimSpace(line) != "" {
			display.printf("Press Enter to retry the submission.\n")
			return nil
		}
		return ignoreShown(controller.Advance(ctx, snapshot.Current))
	}
	return nil
}

// isShown reports errors the controller has already put on the display.
func isShown(err error) bool {
	var submitErr *quiz.SubmitError
	return errors.As(err, &submitErr) || errors.Is(err, quiz.ErrSubmitInProgress)
}

func ignoreShown(err error) error {
	if err == nil || isShown(err) {
		return nil
	}
	return err
}

func nextLine(ctx context.Context, lines <-chan string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-lines:
		if !ok {
			return "", ErrInputClosed
		}
		return strings.TrimSpace(line), nil
	}
}

// readLines delivers input lines until EOF or ctx is done.
func readLines(ctx context.Context, in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		scanner.Buffer(make([]byte, 0, 4096), maxLineBytes)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}
