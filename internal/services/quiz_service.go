package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SAP-F-2025/quiz-service/internal/cache"
	"github.com/SAP-F-2025/quiz-service/internal/events"
	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-service/internal/validator"
)

type QuizService interface {
	CreateQuiz(ctx context.Context, req *models.CreateQuizRequest) (*models.Quiz, error)
	ListQuizzes(ctx context.Context) ([]*models.QuizSummary, error)
	GetQuiz(ctx context.Context, id uint) (*models.Quiz, error)
	DeleteQuiz(ctx context.Context, id uint) error
	ExportQuiz(ctx context.Context, id uint) ([]byte, error)
}

// QuizServiceOptions carries the optional collaborators of the quiz service
type QuizServiceOptions struct {
	Cache     cache.CacheService
	CacheTTL  time.Duration
	Publisher events.EventPublisher
}

type quizService struct {
	repo      repositories.QuizRepository
	cache     cache.CacheService
	cacheTTL  time.Duration
	publisher events.EventPublisher
	validator *validator.Validator
	logger    *ServiceLogger
}

func NewQuizService(repo repositories.QuizRepository, validator *validator.Validator, logger *slog.Logger, opts QuizServiceOptions) QuizService {
	if opts.Cache == nil {
		opts.Cache = cache.NewNoopCache()
	}
	if opts.Publisher == nil {
		opts.Publisher = events.NewMockEventPublisher(logger)
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}

	return &quizService{
		repo:      repo,
		cache:     opts.Cache,
		cacheTTL:  opts.CacheTTL,
		publisher: opts.Publisher,
		validator: validator,
		logger:    NewServiceLogger(logger, "quiz-service", "quiz"),
	}
}

func (s *quizService) CreateQuiz(ctx context.Context, req *models.CreateQuizRequest) (quiz *models.Quiz, err error) {
	start := time.Now()
	s.logger.LogOperationStart(ctx, "create_quiz")
	defer func() {
		var id uint
		if quiz != nil {
			id = quiz.ID
		}
		s.logger.LogOperation(ctx, "create_quiz", id, time.Since(start), err)
	}()

	if req == nil {
		return nil, fmt.Errorf("%w: request body is required", ErrValidationFailed)
	}

	if validationErrs := s.validator.ValidateQuizCreate(req); len(validationErrs) > 0 {
		s.logger.LogValidationError(ctx, "create_quiz", validationErrs)
		return nil, validationErrs
	}

	quiz = req.ToQuiz()
	if err := s.repo.Create(ctx, quiz); err != nil {
		return nil, fmt.Errorf("%w: create quiz: %w", ErrInternalFailure, err)
	}

	s.invalidate(ctx, cache.QuizListKey)
	s.publish(ctx, events.NewQuizCreatedEvent(quiz.ID, quiz.Title, len(quiz.Questions)))

	return quiz, nil
}

func (s *quizService) ListQuizzes(ctx context.Context) (summaries []*models.QuizSummary, err error) {
	start := time.Now()
	defer func() {
		s.logger.LogOperation(ctx, "list_quizzes", 0, time.Since(start), err)
	}()

	if s.readCache(ctx, cache.QuizListKey, &summaries) {
		return summaries, nil
	}

	summaries, err = s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list quizzes: %w", ErrInternalFailure, err)
	}

	s.writeCache(ctx, cache.QuizListKey, summaries)
	return summaries, nil
}

func (s *quizService) GetQuiz(ctx context.Context, id uint) (quiz *models.Quiz, err error) {
	start := time.Now()
	defer func() {
		s.logger.LogOperation(ctx, "get_quiz", id, time.Since(start), err)
	}()

	return s.loadQuiz(ctx, id)
}

func (s *quizService) DeleteQuiz(ctx context.Context, id uint) (err error) {
	start := time.Now()
	defer func() {
		s.logger.LogOperation(ctx, "delete_quiz", id, time.Since(start), err)
	}()

	if err := s.repo.Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			s.invalidate(ctx, cache.QuizKey(id), cache.QuizListKey)
			return fmt.Errorf("%w: id %d", ErrQuizNotFound, id)
		}
		return fmt.Errorf("%w: delete quiz %d: %w", ErrInternalFailure, id, err)
	}

	s.invalidate(ctx, cache.QuizKey(id), cache.QuizListKey)
	s.publish(ctx, events.NewQuizDeletedEvent(id))

	return nil
}

func (s *quizService) ExportQuiz(ctx context.Context, id uint) (data []byte, err error) {
	start := time.Now()
	defer func() {
		s.logger.LogOperation(ctx, "export_quiz", id, time.Since(start), err)
	}()

	quiz, err := s.loadQuiz(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err = exportQuizToExcel(quiz)
	if err != nil {
		return nil, fmt.Errorf("%w: export quiz %d: %w", ErrInternalFailure, id, err)
	}
	return data, nil
}

func (s *quizService) loadQuiz(ctx context.Context, id uint) (*models.Quiz, error) {
	key := cache.QuizKey(id)

	var cached models.Quiz
	if s.readCache(ctx, key, &cached) {
		return &cached, nil
	}

	quiz, err := s.repo.GetByIDWithQuestions(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, fmt.Errorf("%w: id %d", ErrQuizNotFound, id)
		}
		return nil, fmt.Errorf("%w: get quiz %d: %w", ErrInternalFailure, id, err)
	}

	s.writeCache(ctx, key, quiz)
	return quiz, nil
}

// ===== CACHE AND EVENT HELPERS =====

func (s *quizService) readCache(ctx context.Context, key string, dest interface{}) bool {
	err := s.cache.Get(ctx, key, dest)
	if err == nil {
		return true
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Logger().WarnContext(ctx, "Cache read failed", "key", key, "error", err)
	}
	return false
}

func (s *quizService) writeCache(ctx context.Context, key string, value interface{}) {
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.logger.Logger().WarnContext(ctx, "Cache write failed", "key", key, "error", err)
	}
}

func (s *quizService) invalidate(ctx context.Context, keys ...string) {
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Logger().WarnContext(ctx, "Cache invalidation failed", "keys", keys, "error", err)
	}
}

// publish never fails the operation; the change is already committed
func (s *quizService) publish(ctx context.Context, event *events.QuizEvent) {
	if err := s.publisher.PublishQuizEvent(ctx, event); err != nil {
		s.logger.Logger().ErrorContext(ctx, "Failed to publish quiz event",
			"event_type", event.Type,
			"event_id", event.ID,
			"error", err)
	}
}
