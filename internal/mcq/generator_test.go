package mcq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

type fakeCompleter struct {
	responses []string
	err       error
	prompts   []string
}

func (f *fakeCompleter) Complete(_ context.Context, _, userPrompt string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.prompts = append(f.prompts, userPrompt)
	if len(f.prompts) > len(f.responses) {
		return "", fmt.Errorf("unexpected call %d", len(f.prompts))
	}
	return f.responses[len(f.prompts)-1], nil
}

// questionsJSON builds a well-formed model response with n valid questions.
func questionsJSON(t *testing.T, n int, prefix string) string {
	t.Helper()
	questions := make([]MCQ, n)
	for i := range questions {
		options := make([]Option, 4)
		for j, id := range []string{"A", "B", "C", "D"} {
			options[j] = Option{OptionID: id, Text: "option " + id, IsCorrect: id == "B"}
		}
		questions[i] = MCQ{
			QuestionID:    i + 1,
			Question:      fmt.Sprintf("%s question %d?", prefix, i+1),
			Options:       options,
			CorrectAnswer: "B",
			Explanation:   "because",
		}
	}
	payload, err := json.Marshal(map[string][]MCQ{"questions": questions})
	if err != nil {
		t.Fatalf("marshal fake response: %v", err)
	}
	return string(payload)
}

func generatorContext(n int) []string {
	chunks := make([]string, n)
	for i := range chunks {
		chunks[i] = fmt.Sprintf("context-chunk-%02d", i)
	}
	return chunks
}

func TestGenerator_SingleRoundSufficient(t *testing.T) {
	completer := &fakeCompleter{responses: []string{questionsJSON(t, 5, "r1")}}
	generator := NewGenerator(completer, zerolog.Nop())

	mcqs, err := generator.Generate(context.Background(), generatorContext(25), 5)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(mcqs) != 5 {
		t.Errorf("Generate() returned %d questions, want 5", len(mcqs))
	}
	if len(completer.prompts) != 1 {
		t.Errorf("completer called %d times, want 1", len(completer.prompts))
	}
}

func TestGenerator_SecondRoundOnUnderYield(t *testing.T) {
	completer := &fakeCompleter{responses: []string{
		questionsJSON(t, 3, "r1"),
		questionsJSON(t, 4, "r2"),
	}}
	generator := NewGenerator(completer, zerolog.Nop())

	chunks := generatorContext(25)
	mcqs, err := generator.Generate(context.Background(), chunks, 5)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(mcqs) != 5 {
		t.Errorf("Generate() returned %d questions, want exactly 5 after truncation", len(mcqs))
	}
	if len(completer.prompts) != 2 {
		t.Fatalf("completer called %d times, want 2", len(completer.prompts))
	}

	// Round two draws from the next context window and asks only for the
	// shortfall.
	second := completer.prompts[1]
	if !strings.Contains(second, chunks[10]) || strings.Contains(second, chunks[0]) {
		t.Error("second prompt does not use chunks[10:20]")
	}
	if strings.Contains(second, chunks[20]) {
		t.Error("second prompt leaks past the second window")
	}
	if !strings.Contains(second, "Generate exactly 2 multiple-choice questions") {
		t.Error("second prompt does not request the shortfall of 2 questions")
	}
	if mcqs[0].Question != "r1 question 1?" || mcqs[3].Question != "r2 question 1?" {
		t.Errorf("rounds not concatenated in order: %q, %q", mcqs[0].Question, mcqs[3].Question)
	}
}

func TestGenerator_UnderYieldIsNotAnError(t *testing.T) {
	completer := &fakeCompleter{responses: []string{
		questionsJSON(t, 1, "r1"),
		questionsJSON(t, 1, "r2"),
	}}
	generator := NewGenerator(completer, zerolog.Nop())

	mcqs, err := generator.Generate(context.Background(), generatorContext(25), 5)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(mcqs) != 2 {
		t.Errorf("Generate() returned %d questions, want the 2 that were producible", len(mcqs))
	}
}

func TestGenerator_NoSecondRoundWithoutMoreContext(t *testing.T) {
	completer := &fakeCompleter{responses: []string{questionsJSON(t, 2, "r1")}}
	generator := NewGenerator(completer, zerolog.Nop())

	mcqs, err := generator.Generate(context.Background(), generatorContext(8), 5)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(mcqs) != 2 {
		t.Errorf("Generate() returned %d questions, want 2", len(mcqs))
	}
	if len(completer.prompts) != 1 {
		t.Errorf("completer called %d times, want 1 (no unused context left)", len(completer.prompts))
	}
}

func TestGenerator_ProviderFailure(t *testing.T) {
	providerErr := errors.New("deadline exceeded")
	generator := NewGenerator(&fakeCompleter{err: providerErr}, zerolog.Nop())

	_, err := generator.Generate(context.Background(), generatorContext(5), 3)
	if !errors.Is(err, ErrGenerationFailed) {
		t.Errorf("Generate() error = %v, want ErrGenerationFailed", err)
	}
	if !errors.Is(err, providerErr) {
		t.Errorf("Generate() error = %v, does not wrap the provider cause", err)
	}
}

func TestGenerator_UnparseableResponse(t *testing.T) {
	generator := NewGenerator(&fakeCompleter{responses: []string{"no questions here"}}, zerolog.Nop())

	_, err := generator.Generate(context.Background(), generatorContext(5), 3)
	if !errors.Is(err, ErrGenerationFailed) {
		t.Fatalf("Generate() error = %v, want ErrGenerationFailed", err)
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Error("Generate() error does not wrap the ParseError")
	}
}

func TestGenerator_RoundTripPreservesQuestions(t *testing.T) {
	payload := questionsJSON(t, 3, "exact")
	generator := NewGenerator(&fakeCompleter{responses: []string{payload}}, zerolog.Nop())

	mcqs, err := generator.Generate(context.Background(), generatorContext(3), 3)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	var want struct {
		Questions []MCQ `json:"questions"`
	}
	if err := json.Unmarshal([]byte(payload), &want); err != nil {
		t.Fatalf("unmarshal expectation: %v", err)
	}
	got, err := json.Marshal(mcqs)
	if err != nil {
		t.Fatalf("marshal result: %v", err)
	}
	wantJSON, _ := json.Marshal(want.Questions)
	if string(got) != string(wantJSON) {
		t.Errorf("round-trip mismatch:\n got %s\nwant %s", got, wantJSON)
	}
}
