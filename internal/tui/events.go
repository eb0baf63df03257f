package tui

import "timed-quiz/internal/quiz"

// EventKind identifies the type of display event.
type EventKind int

const (
	EventQuestion EventKind = iota
	EventTimer
	EventResult
	EventError
	EventAdvance
)

// Event carries one controller display call into the program.
type Event struct {
	Kind      EventKind
	Question  quiz.QuestionView
	Remaining int
	Result    quiz.ResultView
	Error     quiz.ErrorView
	Enabled   bool
}
