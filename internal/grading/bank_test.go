package grading

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"timed-quiz/internal/quiz"
)

const sampleBank = `
- id: "1"
  text: What is 6 x 7?
  time_limit: 20
  answers: ["42", "forty two"]
- id: "2"
  text: Capital of France?
  answers: [Paris]
`

func mustParseBank(t *testing.T, data string) *Bank {
	t.Helper()
	bank, err := ParseBank([]byte(data))
	if err != nil {
		t.Fatalf("ParseBank failed: %v", err)
	}
	return bank
}

func TestLoadBankFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questions.yml")
	if err := os.WriteFile(path, []byte(sampleBank), 0o600); err != nil {
		t.Fatalf("write bank: %v", err)
	}

	bank, err := LoadBank(path)
	if err != nil {
		t.Fatalf("LoadBank failed: %v", err)
	}

	questions := bank.Questions()
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if questions[0].ID != "1" || questions[0].TimeLimit != 20 || questions[1].Limit() != quiz.DefaultTimeLimit {
		t.Fatalf("unexpected questions: %+v", questions)
	}
}

func TestBankGradeMatchesLoosely(t *testing.T) {
	bank := mustParseBank(t, sampleBank)

	tests := []struct {
		name    string
		answers quiz.AnswerSet
		want    float64
	}{
		{name: "all correct", answers: quiz.AnswerSet{"1": "42", "2": "Paris"}, want: 2},
		{name: "case and spacing ignored", answers: quiz.AnswerSet{"1": "  Forty   TWO ", "2": "paris"}, want: 2},
		{name: "blank answers", answers: quiz.AnswerSet{"1": "", "2": ""}, want: 0},
		{name: "missing answers", answers: quiz.AnswerSet{}, want: 0},
		{name: "unknown ids ignored", answers: quiz.AnswerSet{"9": "42", "2": "Paris"}, want: 1},
		{name: "markup is not stripped", answers: quiz.AnswerSet{"1": "<b>42</b>"}, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			grade := bank.Grade(tc.answers)
			if grade.Score != tc.want {
				t.Fatalf("Score = %v, want %v", grade.Score, tc.want)
			}
			if grade.Total != 2 {
				t.Fatalf("Total = %v, want 2", grade.Total)
			}
			if len(grade.Marks) != 2 {
				t.Fatalf("expected a mark per question, got %v", grade.Marks)
			}
		})
	}
}

func TestParseBankRejectsInvalidBanks(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{name: "empty", data: "", wantErr: "empty"},
		{name: "empty list", data: "[]", wantErr: "empty"},
		{name: "duplicate id", data: "- {id: a, text: x, answers: [y]}\n- {id: a, text: z, answers: [y]}", wantErr: "duplicate"},
		{name: "missing text", data: "- {id: a, answers: [y]}", wantErr: "missing text"},
		{name: "missing answers", data: "- {id: a, text: x}", wantErr: "no accepted answers"},
		{name: "unknown key", data: "- {id: a, text: x, answers: [y], hint: z}", wantErr: "parse question bank"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseBank([]byte(tc.data))
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("ParseBank error = %v, want containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestParseBankEmptyIsErrEmptyBank(t *testing.T) {
	if _, err := ParseBank(nil); !errors.Is(err, ErrEmptyBank) {
		t.Fatalf("expected ErrEmptyBank, got %v", err)
	}
}
