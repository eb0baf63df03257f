package quiz

// Phase is the controller's position in the session state machine:
//
//	Idle → Loading → Ready → Answering → Submitting → Done
//	                   ↓                      ↓
//	              LoadFailed               Failed → Submitting (retry)
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseLoadFailed
	PhaseReady
	PhaseAnswering
	PhaseSubmitting
	PhaseFailed
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseLoadFailed:
		return "load_failed"
	case PhaseReady:
		return "ready"
	case PhaseAnswering:
		return "answering"
	case PhaseSubmitting:
		return "submitting"
	case PhaseFailed:
		return "failed"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Session is one student's run through the quiz.
type Session struct {
	ID         string
	Name       string
	RollID     string
	Questions  []Question
	Current    int
	Answers    AnswerSet
	Submitting bool
}

func (s *Session) currentQuestion() (Question, bool) {
	if s.Current < 0 || s.Current >= len(s.Questions) {
		return Question{}, false
	}
	return s.Questions[s.Current], true
}

// Snapshot is a copy of the controller state at one instant.
type Snapshot struct {
	Phase      Phase
	SessionID  string
	Current    int
	Total      int
	Answers    AnswerSet
	Submitting bool
}
