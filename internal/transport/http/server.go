package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"coursemcq/internal/ai"
	appsvc "coursemcq/internal/app"
	"coursemcq/internal/bootstrap"
	"coursemcq/internal/cache"
	"coursemcq/internal/mcq"
	"coursemcq/internal/pkg/pdfextract"
	"coursemcq/internal/platform/rabbitmq"
	"coursemcq/internal/repository"
	"coursemcq/internal/transport/http/handler"
	"coursemcq/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.MySQL)
	quizRepo := repository.NewQuizRepository(app.MySQL)
	authService := appsvc.NewAuthService(
		userRepo,
		app.Config.Auth.JWTSecret,
		time.Duration(app.Config.Auth.JWTExpireMinute)*time.Minute,
	)
	courseService := newCourseService(app)
	authHandler := handler.NewAuthHandler(authService)
	courseHandler := handler.NewCourseHandler(courseService)
	quizHandler := handler.NewQuizHandler(
		courseService,
		quizRepo,
		app.Config.Generation.MinQuestions,
		app.Config.Generation.MaxQuestions,
	)

	v1 := router.Group("/api/v1")
	authGroup := v1.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", middleware.AuthJWT(app.Config.Auth.JWTSecret), authHandler.Me)

	courseGroup := v1.Group("/courses")
	courseGroup.GET("", courseHandler.ListCourses)
	courseGroup.GET("/:code", courseHandler.GetCourse)
	courseGroup.GET("/:code/quizzes", middleware.AuthJWT(app.Config.Auth.JWTSecret), quizHandler.ListCourseQuizzes)

	quizGroup := v1.Group("/quizzes")
	quizGroup.Use(middleware.AuthJWT(app.Config.Auth.JWTSecret))
	quizGroup.POST("", quizHandler.Generate)
	quizGroup.GET("", quizHandler.ListQuizzes)

	return router
}

// newCourseService assembles the generation pipeline from config. The
// embedding and chat providers share one HTTP client.
func newCourseService(app *bootstrap.App) *appsvc.CourseService {
	cfg := app.Config
	gen := cfg.Generation

	client := ai.NewOpenAICompatibleClient()
	embedder := ai.NewEmbeddingProvider(client, ai.EmbeddingConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.EmbeddingModel,
	})
	completer := ai.NewChatProvider(client, ai.ChatConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
	})

	chunker := mcq.NewChunker(gen.ChunkSize, gen.ChunkOverlap, gen.MinChunkChars)

	selector := mcq.NewSelector(embedder, app.Logger)
	selector.ProbeTopK = gen.ProbeTopK
	selector.BackfillTrigger = gen.BackfillTrigger
	selector.BackfillTarget = gen.BackfillTarget

	generator := mcq.NewGenerator(completer, app.Logger)
	generator.ContextWindow = gen.ContextWindow
	generator.MaxPromptChars = gen.MaxPromptChars

	textCache := cache.NewCourseTextCache(app.Redis, time.Duration(cfg.Redis.CourseTextTTLSeconds)*time.Second)
	publisher := rabbitmq.NewQuizPublisher(app.MQConn, cfg.RabbitMQ.QuizPersistQueue)

	return appsvc.NewCourseService(
		cfg.Course.PDFDir,
		pdfextract.ExtractFile,
		textCache,
		publisher,
		chunker,
		selector,
		generator,
		app.Logger,
	)
}
