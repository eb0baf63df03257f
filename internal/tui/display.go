package tui

import (
	"sync"

	"timed-quiz/internal/quiz"
)

const eventBuffer = 256

// Display implements quiz.Display by queueing events for the program. The
// controller calls it with its lock held, so sends only block when the
// buffer is full and stop blocking once the program has exited.
type Display struct {
	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
}

func NewDisplay() *Display {
	return &Display{
		events: make(chan Event, eventBuffer),
		done:   make(chan struct{}),
	}
}

// Events is the stream consumed by the model.
func (d *Display) Events() <-chan Event {
	return d.events
}

// Close releases any sender once the program is gone.
func (d *Display) Close() {
	d.closeOnce.Do(func() {
		close(d.done)
	})
}

func (d *Display) ShowQuestion(view quiz.QuestionView) {
	d.send(Event{Kind: EventQuestion, Question: view})
}

func (d *Display) ShowTimer(remaining int) {
	d.send(Event{Kind: EventTimer, Remaining: remaining})
}

func (d *Display) ShowResult(view quiz.ResultView) {
	d.send(Event{Kind: EventResult, Result: view})
}

func (d *Display) ShowError(view quiz.ErrorView) {
	d.send(Event{Kind: EventError, Error: view})
}

func (d *Display) SetAdvanceEnabled(enabled bool) {
	d.send(Event{Kind: EventAdvance, Enabled: enabled})
}

func (d *Display) send(event Event) {
	select {
	case d.events <- event:
	case <-d.done:
	}
}
