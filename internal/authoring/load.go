package authoring

import (
	"fmt"

	"github.com/SAP-F-2025/quiz-service/internal/models"
)

// FormFromRequest replays a quiz document through the form operations, so a
// document that loads is one the form could have produced by hand
func FormFromRequest(req *models.CreateQuizRequest) (*Form, error) {
	f := &Form{Title: req.Title}

	for _, q := range req.Questions {
		i := f.AddQuestion()
		if err := f.SetType(i, q.Type); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		if err := f.SetQuestionText(i, q.Question); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
		if err := applyAnswers(f, i, q); err != nil {
			return nil, fmt.Errorf("question %d: %w", i, err)
		}
	}

	return f, nil
}

func applyAnswers(f *Form, i int, q models.QuestionDraft) error {
	switch q.Type {
	case models.QuestionBoolean:
		if len(q.Answers) == 0 {
			return nil
		}
		switch q.Answers[0] {
		case models.BooleanTrue:
			return f.SetBooleanAnswer(i, true)
		case models.BooleanFalse:
			return f.SetBooleanAnswer(i, false)
		default:
			return fmt.Errorf("boolean answer must be %q or %q, got %q", models.BooleanTrue, models.BooleanFalse, q.Answers[0])
		}
	case models.QuestionInput:
		if len(q.Answers) == 0 {
			return nil
		}
		return f.SetInputAnswer(i, q.Answers[0])
	default:
		for _, option := range q.Options {
			if err := f.AddOption(i, option); err != nil {
				return err
			}
		}
		for _, answer := range q.Answers {
			if err := f.ToggleAnswer(i, answer); err != nil {
				return err
			}
		}
		return nil
	}
}
