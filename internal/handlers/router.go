package handlers

import (
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/services"
	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type HandlerManager struct {
	quizHandler   *QuizHandler
	healthHandler *HealthHandler
}

func NewHandlerManager(
	quizService services.QuizService,
	health HealthChecker,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		quizHandler:   NewQuizHandler(quizService, logger),
		healthHandler: NewHealthHandler(health, NewBaseHandler(logger)),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", hm.healthHandler.HealthCheck)

	quizzes := router.Group("/quizzes")
	{
		quizzes.POST("", hm.quizHandler.CreateQuiz)
		quizzes.GET("", hm.quizHandler.ListQuizzes)
		quizzes.GET("/:id", hm.quizHandler.GetQuiz)
		quizzes.DELETE("/:id", hm.quizHandler.DeleteQuiz)
		quizzes.GET("/:id/export", hm.quizHandler.ExportQuiz)
	}
}

// NewRouter builds the engine with the middleware chain and all routes.
// An empty origin list disables CORS handling.
func NewRouter(hm *HandlerManager, logger utils.Logger, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.RequestID())
	router.Use(utils.LoggerMiddleware(logger))
	router.Use(utils.ContextLogger(logger))

	if len(allowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  allowedOrigins,
			AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", utils.RequestIDHeader},
			ExposeHeaders: []string{utils.RequestIDHeader, "Content-Disposition"},
			MaxAge:        12 * time.Hour,
		}))
	}

	hm.SetupRoutes(router)
	return router
}
