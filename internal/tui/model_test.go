package tui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"timed-quiz/internal/quiz"
)

type fakeSession struct {
	mu      sync.Mutex
	starts  [][2]string
	drafts  []string
	answers []string
	indexes []int
	retries int
}

func (f *fakeSession) LoadQuestions(context.Context) error { return nil }

func (f *fakeSession) Start(_ context.Context, name, roll string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts = append(f.starts, [2]string{name, roll})
	return nil
}

func (f *fakeSession) SetDraft(_ int, text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drafts = append(f.drafts, text)
}

func (f *fakeSession) Answer(_ context.Context, index int, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.indexes = append(f.indexes, index)
	f.answers = append(f.answers, text)
	return nil
}

func (f *fakeSession) Advance(context.Context, int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.retries++
	return nil
}

func newTestModel(t *testing.T, opts Options) (Model, *fakeSession) {
	t.Helper()
	session := &fakeSession{}
	opts.NoColor = true
	return NewModel(context.Background(), session, nil, opts), session
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func showQuestion(t *testing.T, m Model, view quiz.QuestionView) Model {
	t.Helper()
	m, _ = update(t, m, EventMsg{Event: Event{Kind: EventQuestion, Question: view}})
	m, _ = update(t, m, EventMsg{Event: Event{Kind: EventAdvance, Enabled: true}})
	return m
}

func TestFormStartsSessionWithPrefilledDetails(t *testing.T) {
	m, session := newTestModel(t, Options{Name: "Alice", Roll: "101"})

	m, _ = update(t, m, loadedMsg{})
	if m.screen != screenForm {
		t.Fatalf("screen = %v, want form", m.screen)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.focus != focusRoll {
		t.Fatalf("focus = %d, want roll", m.focus)
	}
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected start command")
	}
	cmd()

	if len(session.starts) != 1 || session.starts[0] != [2]string{"Alice", "101"} {
		t.Fatalf("starts = %v, want [[Alice 101]]", session.starts)
	}
}

func TestQuestionKeystrokesUpdateDraftAndEnterAnswers(t *testing.T) {
	m, session := newTestModel(t, Options{})
	m, _ = update(t, m, loadedMsg{})
	m = showQuestion(t, m, quiz.QuestionView{Index: 1, Total: 2, ID: "2", Text: "Q2", TimeLimit: 30, Last: true})

	m = typeText(t, m, "42")
	if got := session.drafts[len(session.drafts)-1]; got != "42" {
		t.Fatalf("last draft = %q, want 42", got)
	}
	if !strings.Contains(m.View(), "Enter: Finish") {
		t.Fatalf("expected Finish label in view:\n%s", m.View())
	}

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected answer command")
	}
	cmd()
	if len(session.answers) != 1 || session.answers[0] != "42" || session.indexes[0] != 1 {
		t.Fatalf("answers = %v at %v, want [42] at [1]", session.answers, session.indexes)
	}

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatalf("expected second Enter to be ignored until the next question")
	}
}

func TestQuestionViewShowsCountdown(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m = showQuestion(t, m, quiz.QuestionView{Index: 0, Total: 2, ID: "1", Text: "What is 6 x 7?", TimeLimit: 30})
	m, _ = update(t, m, EventMsg{Event: Event{Kind: EventTimer, Remaining: 9}})

	view := m.View()
	for _, want := range []string{"Question 1 of 2", "9s left", "What is 6 x 7?", "Enter: Next"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestSubmitFailureOffersRetry(t *testing.T) {
	m, session := newTestModel(t, Options{})
	m = showQuestion(t, m, quiz.QuestionView{Index: 0, Total: 1, ID: "1", Text: "Q1", TimeLimit: 30, Last: true})

	m, _ = update(t, m, EventMsg{Event: Event{Kind: EventAdvance, Enabled: false}})
	if m.screen != screenSubmitting {
		t.Fatalf("screen = %v, want submitting", m.screen)
	}
	m, _ = update(t, m, EventMsg{Event: Event{Kind: EventError, Error: quiz.ErrorView{Kind: quiz.KindSubmit, Message: "Submission failed: boom"}}})
	m, _ = update(t, m, EventMsg{Event: Event{Kind: EventAdvance, Enabled: true}})
	if m.screen != screenFailed {
		t.Fatalf("screen = %v, want failed", m.screen)
	}
	if !strings.Contains(m.View(), "Submission failed: boom") {
		t.Fatalf("expected failure message in view:\n%s", m.View())
	}

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatalf("expected retry command")
	}
	cmd()
	if session.retries != 1 {
		t.Fatalf("retries = %d, want 1", session.retries)
	}
}

func TestResultScreen(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m, _ = update(t, m, EventMsg{Event: Event{Kind: EventResult, Result: quiz.ResultView{Score: 1, Total: 2, PDFURL: "https://example.test/r"}}})

	if !m.Finished() {
		t.Fatalf("expected finished model")
	}
	view := m.View()
	if !strings.Contains(view, "Score: 1/2") || !strings.Contains(view, "https://example.test/r") {
		t.Fatalf("unexpected result view:\n%s", view)
	}
	if _, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter}); cmd == nil {
		t.Fatalf("expected quit command")
	}
}

func TestLoadFailureIsTerminal(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m, _ = update(t, m, EventMsg{Event: Event{Kind: EventError, Error: quiz.ErrorView{Kind: quiz.KindLoad, Message: "Error loading questions: closed"}}})

	if m.screen != screenLoadFailed {
		t.Fatalf("screen = %v, want load failed", m.screen)
	}
	if !strings.Contains(m.View(), "Error loading questions: closed") {
		t.Fatalf("expected load error in view:\n%s", m.View())
	}
}

func TestCtrlCAborts(t *testing.T) {
	m, _ := newTestModel(t, Options{})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if m.Err() != ErrAborted {
		t.Fatalf("Err() = %v, want ErrAborted", m.Err())
	}
}

func TestDisplaySendDoesNotBlockAfterClose(t *testing.T) {
	display := NewDisplay()
	display.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < eventBuffer+10; i++ {
			display.ShowTimer(i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("display blocked after Close")
	}
}

func TestDisplayPreservesEventOrder(t *testing.T) {
	display := NewDisplay()
	display.ShowQuestion(quiz.QuestionView{Index: 0})
	display.ShowTimer(30)
	display.SetAdvanceEnabled(true)

	want := []EventKind{EventQuestion, EventTimer, EventAdvance}
	for i, kind := range want {
		event := <-display.Events()
		if event.Kind != kind {
			t.Fatalf("event %d kind = %v, want %v", i, event.Kind, kind)
		}
	}
}
