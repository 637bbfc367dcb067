package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuizPostgreSQL struct {
	db *gorm.DB
}

func NewQuizPostgreSQL(db *gorm.DB) repositories.QuizRepository {
	return &QuizPostgreSQL{db: db}
}

var orderByPosition = clause.OrderByColumn{Column: clause.Column{Name: "order"}}

// Create inserts the quiz row and then its questions in one transaction
func (q *QuizPostgreSQL) Create(ctx context.Context, quiz *models.Quiz) error {
	for i := range quiz.Questions {
		quiz.Questions[i].Order = i
	}

	return q.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(quiz).Error; err != nil {
			return fmt.Errorf("failed to create quiz: %w", err)
		}

		if len(quiz.Questions) == 0 {
			return nil
		}
		for i := range quiz.Questions {
			quiz.Questions[i].QuizID = quiz.ID
		}
		if err := tx.Create(&quiz.Questions).Error; err != nil {
			return fmt.Errorf("failed to create questions: %w", err)
		}
		return nil
	})
}

// List returns every quiz with its question count, ordered by id
func (q *QuizPostgreSQL) List(ctx context.Context) ([]*models.QuizSummary, error) {
	summaries := make([]*models.QuizSummary, 0)
	err := q.db.WithContext(ctx).
		Model(&models.Quiz{}).
		Select("quizzes.id, quizzes.title, quizzes.created_at, quizzes.updated_at, COUNT(questions.id) AS question_count").
		Joins("LEFT JOIN questions ON questions.quiz_id = quizzes.id").
		Group("quizzes.id").
		Order("quizzes.id ASC").
		Scan(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	return summaries, nil
}

func (q *QuizPostgreSQL) GetByIDWithQuestions(ctx context.Context, id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := q.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order(orderByPosition)
		}).
		First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("quiz %d: %w", id, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	return &quiz, nil
}

// Delete removes the questions and the quiz together
func (q *QuizPostgreSQL) Delete(ctx context.Context, id uint) error {
	return q.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("quiz_id = ?", id).Delete(&models.Question{}).Error; err != nil {
			return fmt.Errorf("failed to delete questions: %w", err)
		}

		result := tx.Delete(&models.Quiz{}, id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete quiz: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("quiz %d: %w", id, repositories.ErrNotFound)
		}
		return nil
	})
}
