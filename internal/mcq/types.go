package mcq

import "time"

// Option is one answer choice of a validated question.
type Option struct {
	OptionID  string `json:"option_id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"is_correct"`
}

// MCQ is a validated multiple-choice question: exactly four options with
// exactly one marked correct, whose option_id equals CorrectAnswer.
type MCQ struct {
	QuestionID    int      `json:"question_id"`
	Question      string   `json:"question"`
	Options       []Option `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
}

// CandidateOption mirrors Option but keeps IsCorrect as a pointer so the
// validator can tell "absent" apart from "false".
type CandidateOption struct {
	OptionID  string `json:"option_id"`
	Text      string `json:"text"`
	IsCorrect *bool  `json:"is_correct"`
}

// Candidate is an unvalidated question record as produced by the response
// parser, either from strict JSON decoding or from the heuristic fallback.
type Candidate struct {
	QuestionID    int               `json:"question_id"`
	Question      string            `json:"question"`
	Options       []CandidateOption `json:"options"`
	CorrectAnswer string            `json:"correct_answer"`
	Explanation   string            `json:"explanation"`
}

// GenerationResult is the outcome of one course generation run. Questions
// may be shorter than NumQuestions when the model under-yields in both
// rounds; that is a success, not an error.
type GenerationResult struct {
	CourseCode   string    `json:"course_code"`
	NumQuestions int       `json:"num_questions"`
	Questions    []MCQ     `json:"questions"`
	GeneratedAt  time.Time `json:"generated_at"`
}
