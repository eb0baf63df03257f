package grading

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"timed-quiz/internal/quiz"
)

// BankQuestion is one entry of the answer key file.
type BankQuestion struct {
	ID        string   `yaml:"id"`
	Text      string   `yaml:"text"`
	TimeLimit int      `yaml:"time_limit"`
	Answers   []string `yaml:"answers"`
}

// Bank is an immutable answer key.
type Bank struct {
	questions []BankQuestion
	accepted  map[quiz.QuestionID]map[string]struct{}
}

// Grade is the outcome of marking one set of answers.
type Grade struct {
	Score float64
	Total float64
	Marks map[quiz.QuestionID]bool
}

func LoadBank(path string) (*Bank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank: %w", err)
	}
	return ParseBank(data)
}

// ParseBank decodes a YAML list of questions, rejecting unknown keys.
func ParseBank(data []byte) (*Bank, error) {
	var questions []BankQuestion
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&questions); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyBank
		}
		return nil, fmt.Errorf("parse question bank: %w", err)
	}
	return NewBank(questions)
}

func NewBank(questions []BankQuestion) (*Bank, error) {
	if len(questions) == 0 {
		return nil, ErrEmptyBank
	}

	bank := &Bank{
		questions: make([]BankQuestion, 0, len(questions)),
		accepted:  make(map[quiz.QuestionID]map[string]struct{}, len(questions)),
	}
	for idx, question := range questions {
		question.ID = strings.TrimSpace(question.ID)
		switch {
		case question.ID == "":
			return nil, fmt.Errorf("question %d: missing id", idx+1)
		case strings.TrimSpace(question.Text) == "":
			return nil, fmt.Errorf("question %s: missing text", question.ID)
		case question.TimeLimit < 0:
			return nil, fmt.Errorf("question %s: negative time_limit", question.ID)
		}

		id := quiz.QuestionID(question.ID)
		if _, exists := bank.accepted[id]; exists {
			return nil, fmt.Errorf("question %s: duplicate id", question.ID)
		}

		accepted := make(map[string]struct{}, len(question.Answers))
		for _, answer := range question.Answers {
			if normalized := normalizeAnswer(answer); normalized != "" {
				accepted[normalized] = struct{}{}
			}
		}
		if len(accepted) == 0 {
			return nil, fmt.Errorf("question %s: no accepted answers", question.ID)
		}

		bank.accepted[id] = accepted
		bank.questions = append(bank.questions, question)
	}
	return bank, nil
}

// Questions returns the public view of the bank, without answers.
func (b *Bank) Questions() []quiz.Question {
	out := make([]quiz.Question, 0, len(b.questions))
	for _, question := range b.questions {
		out = append(out, quiz.Question{
			ID:        quiz.QuestionID(question.ID),
			Text:      question.Text,
			TimeLimit: question.TimeLimit,
		})
	}
	return out
}

func (b *Bank) Len() int {
	return len(b.questions)
}

// Grade awards one point per question whose answer matches an accepted
// answer. Answers for unknown ids are ignored.
func (b *Bank) Grade(answers quiz.AnswerSet) Grade {
	grade := Grade{
		Total: float64(len(b.questions)),
		Marks: make(map[quiz.QuestionID]bool, len(b.questions)),
	}
	for _, question := range b.questions {
		id := quiz.QuestionID(question.ID)
		answer, _ := answers.Get(id)
		_, correct := b.accepted[id][normalizeAnswer(answer)]
		grade.Marks[id] = correct
		if correct {
			grade.Score++
		}
	}
	return grade
}

// normalizeAnswer trims, collapses inner whitespace and lowercases.
func normalizeAnswer(answer string) string {
	return strings.ToLower(strings.Join(strings.Fields(answer), " "))
}
