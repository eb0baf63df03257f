package quiz

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// DefaultTimeLimit is the countdown, in seconds, for questions without a usable timeLimit.
const DefaultTimeLimit = 30

// QuestionID identifies a question. The Scoring Service may send ids as JSON
// numbers or strings; both decode to the same textual form.
type QuestionID string

func (id *QuestionID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return err
		}
		*id = QuestionID(text)
		return nil
	}

	var number json.Number
	if err := json.Unmarshal(data, &number); err != nil {
		return err
	}
	*id = QuestionID(number.String())
	return nil
}

type Question struct {
	ID        QuestionID `json:"id"`
	Text      string     `json:"text"`
	TimeLimit int        `json:"timeLimit,omitempty"`
}

func (q *Question) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        QuestionID      `json:"id"`
		Text      string          `json:"text"`
		TimeLimit json.RawMessage `json:"timeLimit"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*q = Question{
		ID:        raw.ID,
		Text:      raw.Text,
		TimeLimit: parseTimeLimit(raw.TimeLimit),
	}
	return nil
}

// Limit returns the countdown length in seconds.
func (q Question) Limit() int {
	if q.TimeLimit <= 0 {
		return DefaultTimeLimit
	}
	return q.TimeLimit
}

// parseTimeLimit accepts any JSON number. Anything else (null, strings, objects)
// yields 0, which Limit maps to the default.
func parseTimeLimit(raw json.RawMessage) int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}

	seconds, err := strconv.ParseFloat(string(raw), 64)
	if err != nil || math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 {
		return 0
	}
	if seconds > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(math.Ceil(seconds))
}

// AnswerSet maps question ids to submitted answers. Entries are overwritten,
// never removed.
type AnswerSet map[QuestionID]string

func (a AnswerSet) Set(id QuestionID, answer string) {
	a[id] = answer
}

func (a AnswerSet) Get(id QuestionID) (string, bool) {
	answer, ok := a[id]
	return answer, ok
}

func (a AnswerSet) Clone() AnswerSet {
	clone := make(AnswerSet, len(a))
	for id, answer := range a {
		clone[id] = answer
	}
	return clone
}

// Submission is the body sent to the Scoring Service.
type Submission struct {
	Name    string    `json:"name"`
	RollID  string    `json:"rollId"`
	Answers AnswerSet `json:"answers"`
}

// Result is the Scoring Service's reply to a successful submission.
type Result struct {
	Score  float64 `json:"score"`
	Total  float64 `json:"total"`
	PDFURL string  `json:"pdfUrl"`
}
