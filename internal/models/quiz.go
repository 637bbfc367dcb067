package models

import (
	"time"

	"gorm.io/datatypes"
)

type QuestionType string

const (
	QuestionBoolean  QuestionType = "boolean"
	QuestionInput    QuestionType = "input"
	QuestionCheckbox QuestionType = "checkbox"
)

// QuestionTypes lists the closed set of supported question types
var QuestionTypes = []QuestionType{QuestionBoolean, QuestionInput, QuestionCheckbox}

// Valid reports whether t is one of the supported question types
func (t QuestionType) Valid() bool {
	for _, known := range QuestionTypes {
		if t == known {
			return true
		}
	}
	return false
}

const (
	BooleanTrue  = "true"
	BooleanFalse = "false"
)

type Quiz struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Questions []Question `json:"questions" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

type Question struct {
	ID       uint                        `json:"id" gorm:"primaryKey"`
	QuizID   uint                        `json:"quizId" gorm:"not null;index;uniqueIndex:idx_questions_quiz_order"`
	Type     QuestionType                `json:"type" gorm:"not null;size:16"`
	Question string                      `json:"question" gorm:"type:text;not null"`
	Options  datatypes.JSONSlice[string] `json:"options"`
	Answers  datatypes.JSONSlice[string] `json:"answers"`
	Order    int                         `json:"order" gorm:"column:order;not null;uniqueIndex:idx_questions_quiz_order"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Question) TableName() string {
	return "questions"
}

// QuizSummary is the list projection of a quiz; question bodies are not loaded
type QuizSummary struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	QuestionCount int       `json:"questionCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
