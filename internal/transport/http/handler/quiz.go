package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"coursemcq/internal/app"
	"coursemcq/internal/mcq"
	"coursemcq/internal/model"
	"coursemcq/internal/transport/http/middleware"
	"coursemcq/internal/transport/http/response"
)

// QuizStore lists stored quizzes; satisfied by repository.QuizRepository.
type QuizStore interface {
	ListByUserID(userID uint) ([]model.Quiz, error)
	ListByCourseCode(courseCode string) ([]model.Quiz, error)
}

type QuizHandler struct {
	courseService *app.CourseService
	quizStore     QuizStore
	minQuestions  int
	maxQuestions  int
}

type GenerateQuizRequest struct {
	CourseCode   string `json:"course_code" binding:"required,max=64"`
	NumQuestions int    `json:"num_questions" binding:"required"`
}

type QuizSummary struct {
	ID           uint      `json:"id"`
	CourseCode   string    `json:"course_code"`
	NumRequested int       `json:"num_requested"`
	NumGenerated int       `json:"num_generated"`
	Questions    []mcq.MCQ `json:"questions"`
	GeneratedAt  string    `json:"generated_at"`
}

func NewQuizHandler(courseService *app.CourseService, quizStore QuizStore, minQuestions, maxQuestions int) *QuizHandler {
	return &QuizHandler{
		courseService: courseService,
		quizStore:     quizStore,
		minQuestions:  minQuestions,
		maxQuestions:  maxQuestions,
	}
}

func (h *QuizHandler) Generate(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	var req GenerateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}
	if req.NumQuestions < h.minQuestions || req.NumQuestions > h.maxQuestions {
		message := fmt.Sprintf("number of questions must be between %d and %d", h.minQuestions, h.maxQuestions)
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, message)
		return
	}

	result, err := h.courseService.GenerateCourseQuiz(c.Request.Context(), userID, req.CourseCode, req.NumQuestions)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrCourseNotFound):
			response.Error(c, http.StatusNotFound, response.CodeCourseNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "generate quiz failed")
		}
		return
	}
	response.OK(c, result)
}

func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, response.CodeUnauthorized, "invalid token payload")
		return
	}

	quizzes, err := h.quizStore.ListByUserID(userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list quizzes failed")
		return
	}
	response.OK(c, toQuizSummaries(quizzes))
}

// ListCourseQuizzes returns every stored quiz for one course, across users.
func (h *QuizHandler) ListCourseQuizzes(c *gin.Context) {
	quizzes, err := h.quizStore.ListByCourseCode(c.Param("code"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list course quizzes failed")
		return
	}
	response.OK(c, toQuizSummaries(quizzes))
}

func toQuizSummaries(quizzes []model.Quiz) []QuizSummary {
	summaries := make([]QuizSummary, len(quizzes))
	for i := range quizzes {
		summaries[i] = toQuizSummary(&quizzes[i])
	}
	return summaries
}

func toQuizSummary(quiz *model.Quiz) QuizSummary {
	return QuizSummary{
		ID:           quiz.ID,
		CourseCode:   quiz.CourseCode,
		NumRequested: quiz.NumRequested,
		NumGenerated: quiz.NumGenerated,
		Questions:    quiz.QuestionList(),
		GeneratedAt:  quiz.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func getUserIDFromContext(c *gin.Context) (uint, bool) {
	userIDAny, exists := c.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}
	userID, ok := userIDAny.(uint)
	return userID, ok
}
