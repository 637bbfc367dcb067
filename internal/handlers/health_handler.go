package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthChecker is satisfied by anything that can verify its backing store
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	BaseHandler
	checker HealthChecker
}

func NewHealthHandler(checker HealthChecker, base BaseHandler) *HealthHandler {
	return &HealthHandler{
		BaseHandler: base,
		checker:     checker,
	}
}

// HealthCheck reports whether the database answers a ping
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if h.checker != nil {
		if err := h.checker.Ping(ctx); err != nil {
			h.LogError(c, err, "Health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unhealthy",
				"service": "quiz-service",
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "quiz-service",
	})
}
