//go:build cucumber

package quiz

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/cucumber/godog"
)

// TestSessionScenarios runs the quiz session feature scenarios.
func TestSessionScenarios(t *testing.T) {
	featurePath := filepath.Join("..", "..", "features", "quiz-session.feature")
	suite := godog.TestSuite{
		Name:                "quiz-session",
		ScenarioInitializer: InitializeSessionScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{featurePath},
			Strict:   true,
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeSessionScenario wires steps for quiz session scenarios.
func InitializeSessionScenario(ctx *godog.ScenarioContext) {
	state := &sessionScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})
	ctx.After(func(ctx context.Context, _ *godog.Scenario, _ error) (context.Context, error) {
		if state.controller != nil {
			state.controller.Close()
		}
		return ctx, nil
	})

	ctx.Step(`^the scoring service offers questions:$`, state.givenQuestions)
	ctx.Step(`^the scoring service grades with (\d+) out of (\d+)$`, state.givenGrade)
	ctx.Step(`^the scoring service fails with "([^"]*)"$`, state.givenFetchFailure)
	ctx.Step(`^the questions are loaded$`, state.whenLoaded)
	ctx.Step(`^"([^"]*)" with roll "([^"]*)" starts the quiz$`, state.whenStart)
	ctx.Step(`^"([^"]*)" with roll "([^"]*)" cannot start the quiz$`, state.thenCannotStart)
	ctx.Step(`^(\d+) seconds? pass(?:es)?$`, state.whenSecondsPass)
	ctx.Step(`^the student answers "([^"]*)" to question (\d+)$`, state.whenAnswer)
	ctx.Step(`^the student advances from question (\d+) twice$`, state.whenAdvanceTwice)
	ctx.Step(`^question (\d+) is shown with a (\d+) second countdown$`, state.thenQuestionShown)
	ctx.Step(`^exactly (\d+) submissions? (?:was|were) sent$`, state.thenSubmissionCount)
	ctx.Step(`^the submission is for "([^"]*)" with roll "([^"]*)"$`, state.thenSubmissionFor)
	ctx.Step(`^the submitted answer for question "([^"]*)" is "([^"]*)"$`, state.thenSubmittedAnswer)
	ctx.Step(`^the result shows (\d+) out of (\d+)$`, state.thenResult)
	ctx.Step(`^an error containing "([^"]*)" is shown$`, state.thenErrorShown)
	ctx.Step(`^no question is shown$`, state.thenNoQuestion)
}

type sessionScenarioState struct {
	service    *fakeService
	display    *recordingDisplay
	clock      *manualClock
	controller *Controller
}

// reset builds a fresh controller around scenario fakes.
func (s *sessionScenarioState) reset() {
	s.service = &fakeService{}
	s.display = &recordingDisplay{}
	s.clock = &manualClock{}
	s.controller = NewController(s.service, s.display, Options{Clock: s.clock})
}

// givenQuestions seeds the question list from a table with id, text and timeLimit columns.
func (s *sessionScenarioState) givenQuestions(table *godog.Table) error {
	if len(table.Rows) < 2 {
		return fmt.Errorf("expected a header and at least one question row")
	}
	questions := make([]Question, 0, len(table.Rows)-1)
	for _, row := range table.Rows[1:] {
		if len(row.Cells) != 3 {
			return fmt.Errorf("expected 3 cells, got %d", len(row.Cells))
		}
		question := Question{
			ID:   QuestionID(row.Cells[0].Value),
			Text: row.Cells[1].Value,
		}
		if limit := strings.TrimSpace(row.Cells[2].Value); limit != "" {
			seconds, err := strconv.Atoi(limit)
			if err != nil {
				return fmt.Errorf("time limit %q: %w", limit, err)
			}
			question.TimeLimit = seconds
		}
		questions = append(questions, question)
	}
	s.service.questions = questions
	return nil
}

func (s *sessionScenarioState) givenGrade(score, total int) error {
	s.service.result = Result{Score: float64(score), Total: float64(total)}
	return nil
}

func (s *sessionScenarioState) givenFetchFailure(message string) error {
	s.service.fetchErr = &ServiceError{Message: message}
	return nil
}

// whenLoaded loads questions, tolerating the load errors a scenario asserts on.
func (s *sessionScenarioState) whenLoaded() error {
	err := s.controller.LoadQuestions(context.Background())
	var loadErr *LoadError
	if err != nil && !errors.As(err, &loadErr) {
		return err
	}
	return nil
}

// whenStart starts the session; validation failures are asserted by later steps.
func (s *sessionScenarioState) whenStart(name, roll string) error {
	err := s.controller.Start(context.Background(), name, roll)
	var validationErr *ValidationError
	if err != nil && !errors.As(err, &validationErr) {
		return err
	}
	return nil
}

func (s *sessionScenarioState) thenCannotStart(name, roll string) error {
	err := s.controller.Start(context.Background(), name, roll)
	if !errors.Is(err, ErrNotReady) {
		return fmt.Errorf("expected ErrNotReady, got %v", err)
	}
	return nil
}

func (s *sessionScenarioState) whenSecondsPass(seconds int) error {
	s.clock.FireN(seconds)
	return nil
}

func (s *sessionScenarioState) whenAnswer(answer string, number int) error {
	return s.controller.Answer(context.Background(), number-1, answer)
}

func (s *sessionScenarioState) whenAdvanceTwice(number int) error {
	for i := 0; i < 2; i++ {
		if err := s.controller.Advance(context.Background(), number-1); err != nil {
			return err
		}
	}
	return nil
}

func (s *sessionScenarioState) thenQuestionShown(number, seconds int) error {
	view, ok := s.display.lastQuestion()
	if !ok {
		return fmt.Errorf("no question was shown")
	}
	if view.Index != number-1 {
		return fmt.Errorf("shown question index = %d, want %d", view.Index, number-1)
	}
	if view.TimeLimit != seconds {
		return fmt.Errorf("countdown = %d, want %d", view.TimeLimit, seconds)
	}
	return nil
}

func (s *sessionScenarioState) thenSubmissionCount(count int) error {
	if got := s.service.submitCalls(); got != count {
		return fmt.Errorf("submissions = %d, want %d", got, count)
	}
	return nil
}

func (s *sessionScenarioState) lastSubmission() (Submission, error) {
	s.service.mu.Lock()
	defer s.service.mu.Unlock()
	if len(s.service.submissions) == 0 {
		return Submission{}, fmt.Errorf("no submission was sent")
	}
	return s.service.submissions[len(s.service.submissions)-1], nil
}

func (s *sessionScenarioState) thenSubmissionFor(name, roll string) error {
	submission, err := s.lastSubmission()
	if err != nil {
		return err
	}
	if submission.Name != name || submission.RollID != roll {
		return fmt.Errorf("submission for %q/%q, want %q/%q", submission.Name, submission.RollID, name, roll)
	}
	return nil
}

func (s *sessionScenarioState) thenSubmittedAnswer(id, answer string) error {
	submission, err := s.lastSubmission()
	if err != nil {
		return err
	}
	got, ok := submission.Answers.Get(QuestionID(id))
	if !ok {
		return fmt.Errorf("no answer recorded for question %q", id)
	}
	if got != answer {
		return fmt.Errorf("answer for %q = %q, want %q", id, got, answer)
	}
	return nil
}

func (s *sessionScenarioState) thenResult(score, total int) error {
	s.display.mu.Lock()
	defer s.display.mu.Unlock()
	if len(s.display.results) != 1 {
		return fmt.Errorf("results shown = %d, want 1", len(s.display.results))
	}
	result := s.display.results[0]
	if result.Score != float64(score) || result.Total != float64(total) {
		return fmt.Errorf("result = %v/%v, want %d/%d", result.Score, result.Total, score, total)
	}
	return nil
}

func (s *sessionScenarioState) thenErrorShown(fragment string) error {
	s.display.mu.Lock()
	defer s.display.mu.Unlock()
	for _, view := range s.display.errors {
		if strings.Contains(view.Message, fragment) {
			return nil
		}
	}
	return fmt.Errorf("no error containing %q in %+v", fragment, s.display.errors)
}

func (s *sessionScenarioState) thenNoQuestion() error {
	if _, ok := s.display.lastQuestion(); ok {
		return fmt.Errorf("expected no question to be shown")
	}
	return nil
}
