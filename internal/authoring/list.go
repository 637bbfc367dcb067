package authoring

import (
	"context"

	"github.com/SAP-F-2025/quiz-service/internal/client"
	"github.com/SAP-F-2025/quiz-service/internal/models"
)

const (
	loadFailedMessage   = "Failed to fetch quizzes. Please try again."
	deleteFailedMessage = "Failed to delete quiz. Please try again."
)

// QuizBrowser lists and deletes stored quizzes
type QuizBrowser interface {
	ListQuizzes(ctx context.Context) ([]models.QuizSummary, error)
	DeleteQuiz(ctx context.Context, id uint) error
}

// QuizList is the browse state of the stored quizzes
type QuizList struct {
	Quizzes []models.QuizSummary
	Error   string

	browser QuizBrowser
}

func NewQuizList(browser QuizBrowser) *QuizList {
	return &QuizList{browser: browser}
}

// Load replaces the entries with the current summaries; on failure the
// previous entries are kept
func (l *QuizList) Load(ctx context.Context) error {
	l.Error = ""
	quizzes, err := l.browser.ListQuizzes(ctx)
	if err != nil {
		l.Error = loadFailedMessage
		return err
	}
	l.Quizzes = quizzes
	return nil
}

// Delete removes the quiz. A quiz that is already gone on the server is
// dropped from the list like a successful delete.
func (l *QuizList) Delete(ctx context.Context, id uint) error {
	l.Error = ""
	if err := l.browser.DeleteQuiz(ctx, id); err != nil && !client.IsNotFound(err) {
		l.Error = deleteFailedMessage
		return err
	}
	l.remove(id)
	return nil
}

func (l *QuizList) remove(id uint) {
	kept := l.Quizzes[:0]
	for _, q := range l.Quizzes {
		if q.ID != id {
			kept = append(kept, q)
		}
	}
	l.Quizzes = kept
}
