package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"timed-quiz/internal/quiz"
)

// Session is the part of the quiz controller the program drives.
type Session interface {
	LoadQuestions(ctx context.Context) error
	Start(ctx context.Context, name, rollID string) error
	SetDraft(index int, text string)
	Answer(ctx context.Context, index int, text string) error
	Advance(ctx context.Context, index int) error
}

type screen int

const (
	screenLoading screen = iota
	screenForm
	screenQuestion
	screenSubmitting
	screenFailed
	screenResult
	screenLoadFailed
)

const (
	focusName = iota
	focusRoll
)

// Options configures the live model.
type Options struct {
	Name    string
	Roll    string
	NoColor bool
}

// Model renders the quiz as a Bubble Tea program.
type Model struct {
	ctx     context.Context
	session Session
	events  <-chan Event
	noColor bool

	screen    screen
	nameInput textinput.Model
	rollInput textinput.Model
	focus     int

	answerInput    textinput.Model
	question       quiz.QuestionView
	remaining      int
	advanceEnabled bool

	spinner spinner.Model
	result  quiz.ResultView
	errMsg  string
	// err is reported by Run once the program exits.
	err error
}

// NewModel constructs a model around a session and its display events.
func NewModel(ctx context.Context, session Session, events <-chan Event, opts Options) Model {
	name := textinput.New()
	name.Placeholder = "Name"
	name.Prompt = "Name:        "
	name.CharLimit = 120
	name.SetValue(opts.Name)

	roll := textinput.New()
	roll.Placeholder = "Roll number"
	roll.Prompt = "Roll number: "
	roll.CharLimit = 40
	roll.SetValue(opts.Roll)

	answer := textinput.New()
	answer.Placeholder = "Type your answer"
	answer.Prompt = "> "
	answer.CharLimit = 1000

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))

	return Model{
		ctx:         ctx,
		session:     session,
		events:      events,
		noColor:     opts.NoColor,
		screen:      screenLoading,
		nameInput:   name,
		rollInput:   roll,
		answerInput: answer,
		spinner:     spin,
	}
}

// Init loads the questions and starts listening for display events.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForEvent(m.events),
		loadCmd(m.ctx, m.session),
		m.spinner.Tick,
		textinput.Blink,
	)
}

// Update consumes key presses, display events and controller results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case EventMsg:
		m = applyEvent(m, typed.Event)
		focus := m.focusCmd()
		return m, tea.Batch(waitForEvent(m.events), focus)
	case loadedMsg:
		return m.handleLoaded(typed.err)
	case actionMsg:
		m = m.handleAction(typed.err)
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(typed)
		return m, cmd
	}
	return m.updateInputs(msg)
}

// Err reports why the program ended without a result, if it did.
func (m Model) Err() error {
	return m.err
}

// Finished reports whether the answers were graded.
func (m Model) Finished() bool {
	return m.screen == screenResult
}

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		if m.err == nil && m.screen != screenResult {
			m.err = ErrAborted
		}
		return m, tea.Quit
	}

	switch m.screen {
	case screenForm:
		return m.handleFormKey(key)
	case screenQuestion:
		if key.Type == tea.KeyEnter {
			if !m.advanceEnabled {
				return m, nil
			}
			m.advanceEnabled = false
			m.errMsg = ""
			return m, answerCmd(m.ctx, m.session, m.question.Index, m.answerInput.Value())
		}
		var cmd tea.Cmd
		m.answerInput, cmd = m.answerInput.Update(key)
		m.session.SetDraft(m.question.Index, m.answerInput.Value())
		return m, cmd
	case screenFailed:
		if key.Type == tea.KeyEnter && m.advanceEnabled {
			m.advanceEnabled = false
			return m, advanceCmd(m.ctx, m.session, m.question.Index)
		}
	case screenResult, screenLoadFailed:
		if key.Type == tea.KeyEnter || key.String() == "q" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) handleFormKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		m.focus = 1 - m.focus
		cmd := m.focusCmd()
		return m, cmd
	case tea.KeyEnter:
		if m.focus == focusName {
			m.focus = focusRoll
			cmd := m.focusCmd()
			return m, cmd
		}
		m.errMsg = ""
		return m, startCmd(m.ctx, m.session, m.nameInput.Value(), m.rollInput.Value())
	}

	var cmd tea.Cmd
	if m.focus == focusName {
		m.nameInput, cmd = m.nameInput.Update(key)
	} else {
		m.rollInput, cmd = m.rollInput.Update(key)
	}
	return m, cmd
}

func (m Model) handleLoaded(err error) (tea.Model, tea.Cmd) {
	if err != nil {
		m.screen = screenLoadFailed
		if m.errMsg == "" {
			m.errMsg = "Failed to load questions."
		}
		m.err = err
		return m, nil
	}
	if m.screen == screenLoading {
		m.screen = screenForm
	}
	cmd := m.focusCmd()
	return m, cmd
}

func (m Model) handleAction(err error) Model {
	if err == nil {
		return m
	}
	var validationErr *quiz.ValidationError
	var submitErr *quiz.SubmitError
	switch {
	case errors.As(err, &validationErr), errors.As(err, &submitErr):
		// Already shown through the display.
	case errors.Is(err, quiz.ErrSubmitInProgress):
	default:
		m.errMsg = err.Error()
	}
	return m
}

// focusCmd focuses the input that belongs to the current screen.
func (m *Model) focusCmd() tea.Cmd {
	switch m.screen {
	case screenForm:
		m.answerInput.Blur()
		if m.focus == focusName {
			m.rollInput.Blur()
			return m.nameInput.Focus()
		}
		m.nameInput.Blur()
		return m.rollInput.Focus()
	case screenQuestion:
		m.nameInput.Blur()
		m.rollInput.Blur()
		return m.answerInput.Focus()
	default:
		m.nameInput.Blur()
		m.rollInput.Blur()
		m.answerInput.Blur()
		return nil
	}
}

// updateInputs forwards cursor blinks to the inputs.
func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds [3]tea.Cmd
	m.nameInput, cmds[0] = m.nameInput.Update(msg)
	m.rollInput, cmds[1] = m.rollInput.Update(msg)
	m.answerInput, cmds[2] = m.answerInput.Update(msg)
	return m, tea.Batch(cmds[:]...)
}

// applyEvent mutates model state based on a display event.
func applyEvent(m Model, event Event) Model {
	switch event.Kind {
	case EventQuestion:
		if event.Question.Index != m.question.Index || m.screen != screenQuestion {
			m.answerInput.SetValue(event.Question.Answer)
			m.answerInput.CursorEnd()
		}
		m.question = event.Question
		m.remaining = event.Question.TimeLimit
		m.screen = screenQuestion
	case EventTimer:
		m.remaining = event.Remaining
	case EventAdvance:
		m.advanceEnabled = event.Enabled
		if !event.Enabled && m.screen == screenQuestion {
			m.screen = screenSubmitting
		}
	case EventResult:
		m.result = event.Result
		m.screen = screenResult
		m.errMsg = ""
		m.err = nil
	case EventError:
		m.errMsg = event.Error.Message
		switch event.Error.Kind {
		case quiz.KindLoad:
			m.screen = screenLoadFailed
		case quiz.KindSubmit:
			m.screen = screenFailed
		}
	}
	return m
}

// EventMsg wraps a display event for Bubble Tea.
type EventMsg struct {
	Event Event
}

type loadedMsg struct {
	err error
}

type actionMsg struct {
	err error
}

// waitForEvent blocks until a display event is available.
func waitForEvent(events <-chan Event) tea.Cmd {
	return func() tea.Msg {
		if events == nil {
			return nil
		}
		event, ok := <-events
		if !ok {
			return tea.Quit()
		}
		return EventMsg{Event: event}
	}
}

func loadCmd(ctx context.Context, session Session) tea.Cmd {
	return func() tea.Msg {
		return loadedMsg{err: session.LoadQuestions(ctx)}
	}
}

func startCmd(ctx context.Context, session Session, name, roll string) tea.Cmd {
	return func() tea.Msg {
		return actionMsg{err: session.Start(ctx, name, roll)}
	}
}

func answerCmd(ctx context.Context, session Session, index int, text string) tea.Cmd {
	return func() tea.Msg {
		return actionMsg{err: session.Answer(ctx, index, text)}
	}
}

func advanceCmd(ctx context.Context, session Session, index int) tea.Cmd {
	return func() tea.Msg {
		return actionMsg{err: session.Advance(ctx, index)}
	}
}
