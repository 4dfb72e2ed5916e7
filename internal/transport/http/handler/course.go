package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coursemcq/internal/app"
	"coursemcq/internal/transport/http/response"
)

type CourseHandler struct {
	courseService *app.CourseService
}

func NewCourseHandler(courseService *app.CourseService) *CourseHandler {
	return &CourseHandler{courseService: courseService}
}

func (h *CourseHandler) ListCourses(c *gin.Context) {
	courses, err := h.courseService.ListCourses()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "list courses failed")
		return
	}
	response.OK(c, courses)
}

func (h *CourseHandler) GetCourse(c *gin.Context) {
	courseCode := c.Param("code")
	info := h.courseService.GetCourseInfo(courseCode)
	if info == nil {
		response.Error(c, http.StatusNotFound, response.CodeCourseNotFound, "course "+courseCode+" not found")
		return
	}
	response.OK(c, info)
}
