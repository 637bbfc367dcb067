package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType represents the quiz lifecycle event types
type EventType string

const (
	EventQuizCreated EventType = "quiz.created"
	EventQuizDeleted EventType = "quiz.deleted"
)

const (
	eventSource  = "quiz-service"
	eventVersion = "1.0"
)

// QuizEvent is the envelope published for every lifecycle change
type QuizEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

type QuizCreatedEvent struct {
	QuizID        uint   `json:"quizId"`
	Title         string `json:"title"`
	QuestionCount int    `json:"questionCount"`
}

type QuizDeletedEvent struct {
	QuizID uint `json:"quizId"`
}

func NewQuizCreatedEvent(quizID uint, title string, questionCount int) *QuizEvent {
	return newEvent(EventQuizCreated, QuizCreatedEvent{
		QuizID:        quizID,
		Title:         title,
		QuestionCount: questionCount,
	})
}

func NewQuizDeletedEvent(quizID uint) *QuizEvent {
	return newEvent(EventQuizDeleted, QuizDeletedEvent{QuizID: quizID})
}

func newEvent(eventType EventType, data interface{}) *QuizEvent {
	return &QuizEvent{
		ID:        GenerateEventID(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

// GenerateEventID returns a random event id
func GenerateEventID() string {
	return uuid.NewString()
}
