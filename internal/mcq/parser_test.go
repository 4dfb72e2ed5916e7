package mcq

import (
	"errors"
	"testing"
)

const wellFormedJSON = `{
	"questions": [
		{
			"question_id": 1,
			"question": "What is the time complexity of binary search?",
			"options": [
				{"option_id": "A", "text": "O(n)", "is_correct": false},
				{"option_id": "B", "text": "O(log n)", "is_correct": true},
				{"option_id": "C", "text": "O(n^2)", "is_correct": false},
				{"option_id": "D", "text": "O(1)", "is_correct": false}
			],
			"correct_answer": "B",
			"explanation": "The search space halves at each step"
		}
	]
}`

func TestParseResponse_StrictJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"whole text json", wellFormedJSON},
		{"json embedded in prose", "Here are your questions:\n" + wellFormedJSON + "\nHope this helps!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates, err := ParseResponse(tt.raw)
			if err != nil {
				t.Fatalf("ParseResponse() error = %v", err)
			}
			if len(candidates) != 1 {
				t.Fatalf("ParseResponse() returned %d candidates, want 1", len(candidates))
			}
			c := candidates[0]
			if c.Question != "What is the time complexity of binary search?" {
				t.Errorf("question = %q", c.Question)
			}
			if c.CorrectAnswer != "B" {
				t.Errorf("correct_answer = %q, want B", c.CorrectAnswer)
			}
			if len(c.Options) != 4 {
				t.Fatalf("options = %d, want 4", len(c.Options))
			}
			for _, opt := range c.Options {
				if opt.IsCorrect == nil {
					t.Fatalf("option %s: is_correct not decoded", opt.OptionID)
				}
				if got, want := *opt.IsCorrect, opt.OptionID == "B"; got != want {
					t.Errorf("option %s: is_correct = %v, want %v", opt.OptionID, got, want)
				}
			}
		})
	}
}

func TestParseResponse_JSONWithoutQuestions(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"key absent", `{"note": "nothing to see"}`},
		{"questions not a list", `{"questions": "none today"}`},
		{"questions is a number", `{"questions": 3}`},
		{"questions is null", `{"questions": null}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidates, err := ParseResponse(tt.raw)
			if err != nil {
				t.Fatalf("ParseResponse() error = %v", err)
			}
			if len(candidates) != 0 {
				t.Errorf("ParseResponse() returned %d candidates, want 0", len(candidates))
			}
		})
	}
}

func TestParseResponse_HeuristicFallback(t *testing.T) {
	raw := "1. What is 2+2?\nA) 3\nB) 4\nC) 5\nD) 6\nAnswer: B\nExplanation: Basic arithmetic."

	candidates, err := ParseResponse(raw)
	if err != nil {
		t.Fatalf("ParseResponse() error = %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("ParseResponse() returned %d candidates, want 1", len(candidates))
	}

	c := candidates[0]
	if c.Question != "What is 2+2?" {
		t.Errorf("question = %q, want %q", c.Question, "What is 2+2?")
	}
	if len(c.Options) != 4 {
		t.Fatalf("options = %d, want 4", len(c.Options))
	}
	if c.CorrectAnswer != "B" {
		t.Errorf("correct_answer = %q, want B", c.CorrectAnswer)
	}
	for _, opt := range c.Options {
		if opt.IsCorrect == nil {
			t.Fatalf("option %s: is_correct unset", opt.OptionID)
		}
		if got, want := *opt.IsCorrect, opt.OptionID == "B"; got != want {
			t.Errorf("option %s: is_correct = %v, want %v", opt.OptionID, got, want)
		}
	}
	if c.Explanation != "Basic arithmetic." {
		t.Errorf("explanation = %q", c.Explanation)
	}
}

func TestParseResponse_HeuristicMultipleBlocks(t *testing.T) {
	raw := "Question 1: First question text?\n" +
		"A. one\nB. two\nC. three\nD. four\n" +
		"Correct: C\n" +
		"\n" +
		"Question 2: Broken block with too few options\nA. only\nAnswer: A\n" +
		"\n" +
		"3. Third question text?\nA) w\nB) x\nC) y\nD) z\nAnswer: D\n"

	candidates, err := ParseResponse(raw)
	if err != nil {
		t.Fatalf("ParseResponse() error = %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("ParseResponse() returned %d candidates, want 2 (broken block dropped)", len(candidates))
	}
	if candidates[0].CorrectAnswer != "C" || candidates[1].CorrectAnswer != "D" {
		t.Errorf("correct answers = %q, %q; want C, D", candidates[0].CorrectAnswer, candidates[1].CorrectAnswer)
	}
	if candidates[1].Explanation != "Option D is correct." {
		t.Errorf("default explanation = %q", candidates[1].Explanation)
	}
}

func TestParseResponse_TotalFailure(t *testing.T) {
	raw := "The model refused to answer."

	_, err := ParseResponse(raw)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("ParseResponse() error = %v, want *ParseError", err)
	}
	if parseErr.Raw != raw {
		t.Error("ParseError does not carry the raw text")
	}
}
