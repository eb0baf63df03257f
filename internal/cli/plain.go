package cli

import (
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"timed-quiz/internal/quiz"
)

// lateAnswerWindow is how long after a countdown runs out a submitted line
// is still taken to be meant for the expired question.
const lateAnswerWindow = 2 * time.Second

// plainDisplay prints the session as scrolling text. changed is signalled
// after every call so the input loop can re-read the controller state.
type plainDisplay struct {
	mu      sync.Mutex
	out     io.Writer
	limit   int
	index   int
	changed chan struct{}
	now     func() time.Time

	// expiredIndex is the question whose countdown last ran out, or -1.
	expiredIndex int
	expiredAt    time.Time
}

func newPlainDisplay(out io.Writer) *plainDisplay {
	return &plainDisplay{
		out:          out,
		changed:      make(chan struct{}, 1),
		now:          time.Now,
		expiredIndex: -1,
	}
}

func (d *plainDisplay) ShowQuestion(view quiz.QuestionView) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.limit = view.TimeLimit
	d.index = view.Index
	fmt.Fprintln(d.out)
	fmt.Fprintf(d.out, "Q%d/%d: %s\n", view.Index+1, view.Total, view.Text)
	if view.Answer != "" {
		fmt.Fprintf(d.out, "Saved answer: %s\n", view.Answer)
	}
	action := "next question"
	if view.Last {
		action = "finish"
	}
	fmt.Fprintf(d.out, "Type your answer and press Enter for %s.\n", action)
	d.notify()
}

// ShowTimer prints at the start of the countdown and for the last few seconds.
func (d *plainDisplay) ShowTimer(remaining int) {
	d.mu.Lock()
	defer d.mu.Unlock()

	switch {
	case remaining <= 0:
		fmt.Fprintln(d.out, "Time's up.")
		d.expiredIndex = d.index
		d.expiredAt = d.now()
	case remaining == d.limit, remaining == 10, remaining <= 3:
		fmt.Fprintf(d.out, "[%ds left]\n", remaining)
	}
}

func (d *plainDisplay) ShowResult(view quiz.ResultView) {
	d.mu.Lock()
	defer d.mu.Unlock()

	fmt.Fprintf(d.out, "\nScore: %s/%s\n", formatScore(view.Score), formatScore(view.Total))
	if view.PDFURL != "" {
		fmt.Fprintf(d.out, "Result: %s\n", view.PDFURL)
	}
	d.notify()
}

func (d *plainDisplay) ShowError(view quiz.ErrorView) {
	d.mu.Lock()
	defer d.mu.Unlock()

	fmt.Fprintf(d.out, "\n%s\n", view.Message)
	d.notify()
}

func (d *plainDisplay) SetAdvanceEnabled(bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.notify()
}

// takeLateAnswer reports whether a line entered now, while current is on
// screen, was typed for the previous question before its time ran out. Only
// the first such line counts.
func (d *plainDisplay) takeLateAnswer(current int) (int, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	expired := d.expiredIndex
	if expired < 0 {
		return 0, false
	}
	d.expiredIndex = -1
	if expired != current-1 || d.now().Sub(d.expiredAt) > lateAnswerWindow {
		return 0, false
	}
	return expired, true
}

func (d *plainDisplay) printf(format string, args ...any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fmt.Fprintf(d.out, format, args...)
}

// notify never blocks; one pending signal is enough.
func (d *plainDisplay) notify() {
	select {
	case d.changed <- struct{}{}:
	default:
	}
}

func formatScore(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
