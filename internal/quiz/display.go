package quiz

// ErrorKind classifies what the display should do with an error.
type ErrorKind string

const (
	KindValidation ErrorKind = "validation"
	KindLoad       ErrorKind = "load"
	KindSubmit     ErrorKind = "submit"
)

// QuestionView is what a display renders for one question. Text and Answer
// are already escaped.
type QuestionView struct {
	Index     int
	Total     int
	ID        QuestionID
	Text      string
	Answer    string
	TimeLimit int
	Last      bool
}

type ResultView struct {
	Score  float64
	Total  float64
	PDFURL string
}

type ErrorView struct {
	Kind    ErrorKind
	Message string
}

// Display is the rendering surface driven by the Controller. Methods are
// called with the controller's lock held and must not call back into it.
type Display interface {
	ShowQuestion(view QuestionView)
	ShowTimer(remaining int)
	ShowResult(view ResultView)
	ShowError(view ErrorView)
	SetAdvanceEnabled(enabled bool)
}
