package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
)

var ErrAborted = errors.New("quiz aborted before the answers were graded")

// Run drives session through an interactive program until the student quits.
// display must be the quiz.Display the session's controller was built with.
func Run(ctx context.Context, in io.Reader, out io.Writer, session Session, display *Display, opts Options) error {
	defer display.Close()

	model := NewModel(ctx, session, display.Events(), opts)
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)

	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("run live ui: %w", err)
	}

	finished, ok := final.(Model)
	if !ok {
		return nil
	}
	if finished.Finished() {
		fmt.Fprintln(out, renderSummary(finished))
		return nil
	}
	if finished.Err() != nil {
		return finished.Err()
	}
	return ErrAborted
}
