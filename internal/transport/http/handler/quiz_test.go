package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"coursemcq/internal/mcq"
	"coursemcq/internal/model"
	"coursemcq/internal/transport/http/middleware"
)

type fakeQuizStore struct {
	byUser   map[uint][]model.Quiz
	byCourse map[string][]model.Quiz
	err      error
}

func (s *fakeQuizStore) ListByUserID(userID uint) ([]model.Quiz, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byUser[userID], nil
}

func (s *fakeQuizStore) ListByCourseCode(courseCode string) ([]model.Quiz, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.byCourse[courseCode], nil
}

func storedQuiz(id, userID uint, courseCode string) model.Quiz {
	quiz := model.Quiz{
		ID:           id,
		UserID:       userID,
		CourseCode:   courseCode,
		NumRequested: 2,
		NumGenerated: 1,
		GeneratedAt:  time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
	quiz.SetQuestions([]mcq.MCQ{{
		QuestionID: 1,
		Question:   "What holds rows in a relational database?",
		Options: []mcq.Option{
			{OptionID: "A", Text: "Tables", IsCorrect: true},
			{OptionID: "B", Text: "Queues", IsCorrect: false},
			{OptionID: "C", Text: "Topics", IsCorrect: false},
			{OptionID: "D", Text: "Buckets", IsCorrect: false},
		},
		CorrectAnswer: "A",
		Explanation:   "Rows live in tables.",
	}})
	return quiz
}

type summariesEnvelope struct {
	Code    int           `json:"code"`
	Message string        `json:"message"`
	Data    []QuizSummary `json:"data"`
}

func newQuizTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, recorder
}

func decodeSummaries(t *testing.T, recorder *httptest.ResponseRecorder) summariesEnvelope {
	t.Helper()
	var envelope summariesEnvelope
	if err := json.Unmarshal(recorder.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope
}

func TestQuizHandler_ListCourseQuizzes(t *testing.T) {
	store := &fakeQuizStore{byCourse: map[string][]model.Quiz{
		"cs101": {storedQuiz(1, 7, "cs101"), storedQuiz(2, 9, "cs101")},
	}}
	handler := NewQuizHandler(nil, store, 1, 20)

	c, recorder := newQuizTestContext(t)
	c.Params = gin.Params{{Key: "code", Value: "cs101"}}
	handler.ListCourseQuizzes(c)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusOK)
	}
	envelope := decodeSummaries(t, recorder)
	if len(envelope.Data) != 2 {
		t.Fatalf("got %d summaries, want 2", len(envelope.Data))
	}
	first := envelope.Data[0]
	if first.CourseCode != "cs101" {
		t.Errorf("course_code = %q, want cs101", first.CourseCode)
	}
	if len(first.Questions) != 1 {
		t.Fatalf("got %d questions, want 1", len(first.Questions))
	}
	if first.Questions[0].CorrectAnswer != "A" {
		t.Errorf("correct_answer = %q, want A", first.Questions[0].CorrectAnswer)
	}
}

func TestQuizHandler_ListCourseQuizzesStoreFailure(t *testing.T) {
	handler := NewQuizHandler(nil, &fakeQuizStore{err: errors.New("db down")}, 1, 20)

	c, recorder := newQuizTestContext(t)
	c.Params = gin.Params{{Key: "code", Value: "cs101"}}
	handler.ListCourseQuizzes(c)

	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusInternalServerError)
	}
}

func TestQuizHandler_ListQuizzes(t *testing.T) {
	store := &fakeQuizStore{byUser: map[uint][]model.Quiz{
		7: {storedQuiz(1, 7, "cs101")},
	}}
	handler := NewQuizHandler(nil, store, 1, 20)

	c, recorder := newQuizTestContext(t)
	c.Set(middleware.ContextUserIDKey, uint(7))
	handler.ListQuizzes(c)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusOK)
	}
	envelope := decodeSummaries(t, recorder)
	if len(envelope.Data) != 1 {
		t.Fatalf("got %d summaries, want 1", len(envelope.Data))
	}
	if envelope.Data[0].ID != 1 {
		t.Errorf("id = %d, want 1", envelope.Data[0].ID)
	}
}

func TestQuizHandler_ListQuizzesWithoutIdentity(t *testing.T) {
	handler := NewQuizHandler(nil, &fakeQuizStore{}, 1, 20)

	c, recorder := newQuizTestContext(t)
	handler.ListQuizzes(c)

	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusUnauthorized)
	}
}
