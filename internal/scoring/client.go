package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"timed-quiz/internal/quiz"
)

const (
	defaultEndpoint = "http://127.0.0.1:8080/"
	// text/plain is a CORS "simple" content type, so browser-facing script
	// hosts accept the POST without a pre-flight.
	submitContentType = "text/plain;charset=utf-8"
	maxBodyBytes      = 1 << 20
	maxRawErrorBytes  = 512
)

var ErrServiceUnavailable = errors.New("scoring service unavailable")

type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

// MalformedResponseError carries a body that could not be parsed, for diagnostics.
type MalformedResponseError struct {
	Body string
}

func (e *MalformedResponseError) Error() string {
	return "invalid JSON from server: " + truncate(e.Body, maxRawErrorBytes)
}

type Client struct {
	endpoint   string
	httpClient *http.Client
}

type errorResponse struct {
	Error string `json:"error"`
}

type submitResponse struct {
	Score  *float64 `json:"score"`
	Total  *float64 `json:"total"`
	PDFURL string   `json:"pdfUrl"`
	Error  string   `json:"error"`
}

func NewClient(endpoint string, httpClient *http.Client) *Client {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		endpoint:   endpoint,
		httpClient: httpClient,
	}
}

// FetchQuestions reads the question list. The service answers with either a
// JSON array of questions or an {"error": ...} object.
func (c *Client) FetchQuestions(ctx context.Context) ([]quiz.Question, error) {
	status, body, err := c.do(ctx, http.MethodGet, nil)
	if err != nil {
		return nil, err
	}

	trimmed := bytes.TrimSpace(body)
	switch {
	case len(trimmed) > 0 && trimmed[0] == '[':
		var questions []quiz.Question
		if err := json.Unmarshal(trimmed, &questions); err != nil {
			return nil, &MalformedResponseError{Body: string(body)}
		}
		return questions, nil
	case len(trimmed) > 0 && trimmed[0] == '{':
		var payload errorResponse
		if err := json.Unmarshal(trimmed, &payload); err != nil {
			return nil, &MalformedResponseError{Body: string(body)}
		}
		if strings.TrimSpace(payload.Error) != "" {
			return nil, &quiz.ServiceError{Message: payload.Error}
		}
		if !isSuccess(status) {
			return nil, &APIError{StatusCode: status, Message: http.StatusText(status)}
		}
		return nil, errors.New("unexpected question payload: object without error")
	default:
		if !isSuccess(status) {
			return nil, &APIError{StatusCode: status, Message: http.StatusText(status)}
		}
		return nil, &MalformedResponseError{Body: string(body)}
	}
}

// Submit posts the answers and parses the grading reply. The reply is read as
// text first because the service does not always label it as JSON.
func (c *Client) Submit(ctx context.Context, submission quiz.Submission) (quiz.Result, error) {
	if submission.Answers == nil {
		submission.Answers = quiz.AnswerSet{}
	}
	encoded, err := json.Marshal(submission)
	if err != nil {
		return quiz.Result{}, err
	}

	status, body, err := c.do(ctx, http.MethodPost, encoded)
	if err != nil {
		return quiz.Result{}, err
	}

	var payload submitResponse
	if err := json.Unmarshal(bytes.TrimSpace(body), &payload); err != nil {
		if !isSuccess(status) && len(bytes.TrimSpace(body)) == 0 {
			return quiz.Result{}, &APIError{StatusCode: status, Message: http.StatusText(status)}
		}
		return quiz.Result{}, &MalformedResponseError{Body: string(body)}
	}
	if strings.TrimSpace(payload.Error) != "" {
		return quiz.Result{}, &quiz.ServiceError{Message: payload.Error}
	}
	if !isSuccess(status) {
		return quiz.Result{}, &APIError{StatusCode: status, Message: http.StatusText(status)}
	}
	if payload.Score == nil || payload.Total == nil {
		return quiz.Result{}, &MalformedResponseError{Body: string(body)}
	}

	return quiz.Result{
		Score:  *payload.Score,
		Total:  *payload.Total,
		PDFURL: payload.PDFURL,
	}, nil
}

func (c *Client) do(ctx context.Context, method string, requestBody []byte) (int, []byte, error) {
	return c.doURL(ctx, method, c.endpoint, requestBody)
}

func (c *Client) doURL(ctx context.Context, method, target string, requestBody []byte) (int, []byte, error) {
	var body io.Reader
	if requestBody != nil {
		body = bytes.NewReader(requestBody)
	}

	request, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return 0, nil, err
	}
	if requestBody != nil {
		request.Header.Set("Content-Type", submitContentType)
	}
	request.Header.Set("Accept", "application/json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer response.Body.Close()

	data, err := io.ReadAll(io.LimitReader(response.Body, maxBodyBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: read body: %v", ErrServiceUnavailable, err)
	}
	return response.StatusCode, data, nil
}

func isSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

// truncate cuts text to at most limit bytes without splitting a rune.
func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "…"
}
