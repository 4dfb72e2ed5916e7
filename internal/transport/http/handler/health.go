package handler

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"coursemcq/internal/bootstrap"
)

type HealthHandler struct {
	app *bootstrap.App
}

type dependencyStatus struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

func NewHealthHandler(app *bootstrap.App) *HealthHandler {
	return &HealthHandler{app: app}
}

// Check reports the state of every backing dependency plus the course PDF
// root. A missing PDF root degrades the response but is not fatal: the
// service can still serve auth and quiz history.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	statuses := gin.H{
		"mysql":       h.checkMySQL(ctx),
		"redis":       h.checkRedis(ctx),
		"rabbitmq":    h.checkRabbitMQ(),
		"courses_dir": h.checkCoursesDir(),
	}

	statusCode := http.StatusOK
	for name, s := range statuses {
		if name == "courses_dir" {
			continue
		}
		if !s.(dependencyStatus).OK {
			statusCode = http.StatusServiceUnavailable
			break
		}
	}

	c.JSON(statusCode, gin.H{
		"app":          h.app.Config.App.Name,
		"env":          h.app.Config.App.Env,
		"uptime_sec":   int(time.Since(h.app.StartedAt).Seconds()),
		"dependencies": statuses,
	})
}

func (h *HealthHandler) checkMySQL(ctx context.Context) dependencyStatus {
	sqlDB, err := h.app.MySQL.DB()
	if err != nil {
		return dependencyStatus{OK: false, Message: err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return dependencyStatus{OK: false, Message: err.Error()}
	}
	return dependencyStatus{OK: true}
}

func (h *HealthHandler) checkRedis(ctx context.Context) dependencyStatus {
	if err := h.app.Redis.Ping(ctx).Err(); err != nil {
		return dependencyStatus{OK: false, Message: err.Error()}
	}
	return dependencyStatus{OK: true}
}

func (h *HealthHandler) checkRabbitMQ() dependencyStatus {
	if h.app.MQConn == nil || h.app.MQConn.IsClosed() {
		return dependencyStatus{OK: false, Message: "connection closed"}
	}
	return dependencyStatus{OK: true}
}

func (h *HealthHandler) checkCoursesDir() dependencyStatus {
	info, err := os.Stat(h.app.Config.Course.PDFDir)
	if err != nil {
		return dependencyStatus{OK: false, Message: err.Error()}
	}
	if !info.IsDir() {
		return dependencyStatus{OK: false, Message: "course pdf path is not a directory"}
	}
	return dependencyStatus{OK: true}
}
