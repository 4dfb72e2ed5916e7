package model

import (
	"encoding/json"
	"time"

	"coursemcq/internal/mcq"
)

// Quiz stores one completed generation run. Questions are kept as a JSON
// array of mcq.MCQ for portability.
type Quiz struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index" json:"user_id"`
	CourseCode   string    `gorm:"size:64;not null;index" json:"course_code"`
	NumRequested int       `gorm:"not null" json:"num_requested"`
	NumGenerated int       `gorm:"not null" json:"num_generated"`
	Questions    string    `gorm:"type:text" json:"-"`
	GeneratedAt  time.Time `json:"generated_at"`
	CreatedAt    time.Time `json:"created_at"`
}

// QuizMessage is the queue payload for asynchronous quiz persistence.
type QuizMessage struct {
	UserID uint                 `json:"user_id"`
	Result mcq.GenerationResult `json:"result"`
}

// QuestionList returns the parsed questions; empty on parse error.
func (q *Quiz) QuestionList() []mcq.MCQ {
	if q.Questions == "" {
		return nil
	}
	var questions []mcq.MCQ
	_ = json.Unmarshal([]byte(q.Questions), &questions)
	return questions
}

// SetQuestions stores the questions as JSON.
func (q *Quiz) SetQuestions(questions []mcq.MCQ) {
	if len(questions) == 0 {
		q.Questions = "[]"
		return
	}
	b, _ := json.Marshal(questions)
	q.Questions = string(b)
}
