package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"timed-quiz/internal/scoring"
)

// SubmissionLister lists recently graded submissions.
type SubmissionLister interface {
	ListSubmissions(ctx context.Context, limit int) ([]scoring.SubmissionSummary, error)
}

// ListResults prints the most recent submissions known to the local service.
func ListResults(ctx context.Context, out io.Writer, lister SubmissionLister, limit int, serverURL string) error {
	submissions, err := lister.ListSubmissions(ctx, limit)
	if err != nil {
		return describeClientError(err, serverURL)
	}
	if len(submissions) == 0 {
		fmt.Fprintln(out, "No submissions yet.")
		return nil
	}

	for i, submission := range submissions {
		fmt.Fprintf(out, "%d. %s (roll %s) score=%s/%s submitted=%s\n",
			i+1,
			submission.Name,
			submission.RollID,
			formatScore(submission.Score),
			formatScore(submission.Total),
			submission.SubmittedAt.Local().Format("2006-01-02 15:04"),
		)
		if strings.TrimSpace(submission.ResultURL) != "" {
			fmt.Fprintf(out, "   %s\n", submission.ResultURL)
		}
	}
	return nil
}

func describeClientError(err error, serverURL string) error {
	if errors.Is(err, scoring.ErrServiceUnavailable) {
		return fmt.Errorf("cannot reach scoring service at %s: %w", serverURL, err)
	}
	return err
}
