package repositories

import (
	"context"

	"github.com/SAP-F-2025/quiz-service/internal/models"
)

// QuizRepository interface for quiz persistence
type QuizRepository interface {
	// Create stores the quiz and all of its questions atomically. Generated ids
	// are written back into quiz.
	Create(ctx context.Context, quiz *models.Quiz) error
	List(ctx context.Context) ([]*models.QuizSummary, error)
	GetByIDWithQuestions(ctx context.Context, id uint) (*models.Quiz, error) // Questions sorted by order
	Delete(ctx context.Context, id uint) error
}
