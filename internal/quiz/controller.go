package quiz

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const defaultTickInterval = time.Second

// Service is the Scoring Service as seen by the controller.
type Service interface {
	FetchQuestions(ctx context.Context) ([]Question, error)
	Submit(ctx context.Context, submission Submission) (Result, error)
}

type Options struct {
	Clock        Clock
	Logger       *log.Logger
	Escape       Escaper
	TickInterval time.Duration
}

// Controller owns a quiz session and drives it from loading through
// submission. Every transition runs under mu; network calls run outside it.
type Controller struct {
	service      Service
	display      Display
	clock        Clock
	logger       *log.Logger
	escape       Escaper
	tickInterval time.Duration

	mu         sync.Mutex
	phase      Phase
	session    Session
	draft      string
	timer      Timer
	generation uint64
	remaining  int
	// ctx is the context handed to Start; timer-driven advances use it.
	ctx context.Context
}

func NewController(service Service, display Display, opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	if opts.Escape == nil {
		opts.Escape = EscapeHTML
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = defaultTickInterval
	}

	return &Controller{
		service:      service,
		display:      display,
		clock:        opts.Clock,
		logger:       opts.Logger,
		escape:       opts.Escape,
		tickInterval: opts.TickInterval,
		phase:        PhaseIdle,
		session:      Session{Answers: AnswerSet{}},
		ctx:          context.Background(),
	}
}

// LoadQuestions fetches the question list. A failure is terminal.
func (c *Controller) LoadQuestions(ctx context.Context) error {
	c.mu.Lock()
	if c.phase != PhaseIdle {
		c.mu.Unlock()
		return ErrNotReady
	}
	c.phase = PhaseLoading
	c.mu.Unlock()

	questions, err := c.service.FetchQuestions(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.phase = PhaseLoadFailed
		c.logger.Printf("load questions failed: %v", err)

		message := "Failed to load questions."
		var serviceErr *ServiceError
		if errors.As(err, &serviceErr) {
			message = "Error loading questions: " + serviceErr.Message
		}
		c.display.ShowError(ErrorView{Kind: KindLoad, Message: c.escape(message)})
		return &LoadError{Err: err}
	}

	c.session.Questions = questions
	c.phase = PhaseReady
	c.logger.Printf("loaded %d questions", len(questions))
	return nil
}

// Start validates the student's details and begins the answer loop.
func (c *Controller) Start(ctx context.Context, name, rollID string) error {
	name = strings.TrimSpace(name)
	rollID = strings.TrimSpace(rollID)

	c.mu.Lock()
	switch c.phase {
	case PhaseReady, PhaseDone, PhaseFailed:
	case PhaseSubmitting:
		c.mu.Unlock()
		return ErrSubmitInProgress
	default:
		c.mu.Unlock()
		return ErrNotReady
	}

	var validationErr *ValidationError
	switch {
	case name == "":
		validationErr = &ValidationError{Field: "name", Err: ErrMissingName}
	case rollID == "":
		validationErr = &ValidationError{Field: "roll", Err: ErrMissingRollID}
	}
	if validationErr != nil {
		c.display.ShowError(ErrorView{Kind: KindValidation, Message: "Enter name and roll number"})
		c.mu.Unlock()
		return validationErr
	}

	c.ctx = ctx
	c.session.ID = uuid.NewString()
	c.session.Name = name
	c.session.RollID = rollID
	c.session.Current = 0
	c.session.Answers = AnswerSet{}
	c.draft = ""
	c.phase = PhaseAnswering
	c.logger.Printf("session %s started for roll %s (%d questions)", c.session.ID, rollID, len(c.session.Questions))

	submit := c.presentLocked()
	c.mu.Unlock()

	if submit {
		return c.Submit(ctx)
	}
	return nil
}

// SetDraft records the text currently entered for question index.
func (c *Controller) SetDraft(index int, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.phase == PhaseAnswering && index == c.session.Current {
		c.draft = text
	}
}

// Advance saves the draft for question index and moves to the next question.
// Calls for any question other than the displayed one are ignored, so a
// timer expiry racing a click advances once. After a failed submission it
// retries the submission.
func (c *Controller) Advance(ctx context.Context, index int) error {
	c.mu.Lock()
	submit := c.advanceLocked(index)
	c.mu.Unlock()

	if !submit {
		return nil
	}
	return c.Submit(ctx)
}

// Answer sets the draft for question index and advances past it.
func (c *Controller) Answer(ctx context.Context, index int, text string) error {
	c.mu.Lock()
	if c.phase == PhaseAnswering && index == c.session.Current {
		c.draft = text
	}
	submit := c.advanceLocked(index)
	c.mu.Unlock()

	if !submit {
		return nil
	}
	return c.Submit(ctx)
}

// Submit sends the answers to the Scoring Service. Only one submission may
// be in flight.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.session.Submitting {
		c.mu.Unlock()
		return ErrSubmitInProgress
	}
	if c.phase != PhaseAnswering && c.phase != PhaseFailed {
		c.mu.Unlock()
		return ErrNotStarted
	}

	c.session.Submitting = true
	c.phase = PhaseSubmitting
	c.stopTimerLocked()
	c.savePendingLocked()
	c.display.SetAdvanceEnabled(false)

	submission := Submission{
		Name:    c.session.Name,
		RollID:  c.session.RollID,
		Answers: c.session.Answers.Clone(),
	}
	sessionID := c.session.ID
	c.mu.Unlock()

	result, err := c.service.Submit(ctx, submission)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.session.Submitting = false
	if err != nil {
		c.logger.Printf("session %s: submission failed: %v", sessionID, err)
		c.failSubmissionLocked(err)
		return &SubmitError{Err: err}
	}

	c.phase = PhaseDone
	c.logger.Printf("session %s: submitted, score %v/%v", sessionID, result.Score, result.Total)
	c.display.ShowResult(ResultView{
		Score:  result.Score,
		Total:  result.Total,
		PDFURL: c.escape(result.PDFURL),
	})
	return nil
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		Phase:      c.phase,
		SessionID:  c.session.ID,
		Current:    c.session.Current,
		Total:      len(c.session.Questions),
		Answers:    c.session.Answers.Clone(),
		Submitting: c.session.Submitting,
	}
}

// Close stops the countdown.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stopTimerLocked()
}

func (c *Controller) advanceLocked(index int) bool {
	if c.phase == PhaseFailed {
		return true
	}
	if c.phase != PhaseAnswering || index != c.session.Current {
		return false
	}

	c.stopTimerLocked()
	c.savePendingLocked()
	c.session.Current++
	return c.presentLocked()
}

// presentLocked renders the current question, or reports that the session
// has run out of questions and should be submitted.
func (c *Controller) presentLocked() bool {
	question, ok := c.session.currentQuestion()
	if !ok {
		return true
	}

	saved, _ := c.session.Answers.Get(question.ID)
	c.draft = saved

	c.display.ShowQuestion(QuestionView{
		Index:     c.session.Current,
		Total:     len(c.session.Questions),
		ID:        question.ID,
		Text:      c.escape(question.Text),
		Answer:    c.escape(saved),
		TimeLimit: question.Limit(),
		Last:      c.session.Current == len(c.session.Questions)-1,
	})
	c.startTimerLocked(question.Limit())
	c.display.SetAdvanceEnabled(true)
	return false
}

// savePendingLocked stores the draft for the displayed question, if any.
func (c *Controller) savePendingLocked() {
	question, ok := c.session.currentQuestion()
	if !ok {
		return
	}
	c.session.Answers.Set(question.ID, strings.TrimSpace(c.draft))
}

func (c *Controller) failSubmissionLocked(err error) {
	message := err.Error()
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		message = serviceErr.Message
	}
	c.display.ShowError(ErrorView{
		Kind:    KindSubmit,
		Message: c.escape("Submission failed: " + message),
	})

	// A submission cut short mid-quiz resumes on the same question.
	if _, ok := c.session.currentQuestion(); ok {
		c.phase = PhaseAnswering
		c.presentLocked()
		return
	}

	c.phase = PhaseFailed
	c.display.SetAdvanceEnabled(true)
}

func (c *Controller) startTimerLocked(seconds int) {
	c.stopTimerLocked()

	c.generation++
	generation := c.generation
	c.remaining = seconds
	c.display.ShowTimer(c.remaining)
	c.timer = c.clock.Every(c.tickInterval, func() {
		c.onTick(generation)
	})
}

func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) onTick(generation uint64) {
	c.mu.Lock()
	if generation != c.generation || c.phase != PhaseAnswering || c.timer == nil {
		c.mu.Unlock()
		return
	}

	c.remaining--
	c.display.ShowTimer(c.remaining)
	if c.remaining > 0 {
		c.mu.Unlock()
		return
	}

	submit := c.advanceLocked(c.session.Current)
	ctx := c.ctx
	c.mu.Unlock()

	if submit {
		if err := c.Submit(ctx); err != nil && !errors.Is(err, ErrSubmitInProgress) {
			c.logger.Printf("timer-driven submission: %v", err)
		}
	}
}
