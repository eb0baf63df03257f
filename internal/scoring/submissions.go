package scoring

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// SubmissionSummary is one row of the local service's recent submissions list.
type SubmissionSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	RollID      string    `json:"rollId"`
	Score       float64   `json:"score"`
	Total       float64   `json:"total"`
	SubmittedAt time.Time `json:"submittedAt"`
	ResultURL   string    `json:"resultUrl"`
}

type submissionsResponse struct {
	Submissions []SubmissionSummary `json:"submissions"`
	Error       string              `json:"error"`
}

// ListSubmissions reads GET <endpoint>/submissions. Only the local stub
// service serves it.
func (c *Client) ListSubmissions(ctx context.Context, limit int) ([]SubmissionSummary, error) {
	endpoint, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, err
	}
	endpoint.Path = strings.TrimRight(endpoint.Path, "/") + "/submissions"
	if limit > 0 {
		query := endpoint.Query()
		query.Set("limit", strconv.Itoa(limit))
		endpoint.RawQuery = query.Encode()
	}

	status, body, err := c.doURL(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}

	var payload submissionsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		if !isSuccess(status) {
			return nil, &APIError{StatusCode: status, Message: http.StatusText(status)}
		}
		return nil, &MalformedResponseError{Body: string(body)}
	}
	if !isSuccess(status) {
		message := strings.TrimSpace(payload.Error)
		if message == "" {
			message = http.StatusText(status)
		}
		return nil, &APIError{StatusCode: status, Message: message}
	}
	return payload.Submissions, nil
}
