package validator

import (
	"fmt"

	"github.com/SAP-F-2025/quiz-service/internal/errors"
	"github.com/SAP-F-2025/quiz-service/internal/models"
)

// QuizValidator checks the answer contract of each question type
type QuizValidator struct{}

// NewQuizValidator creates a new quiz validator
func NewQuizValidator() *QuizValidator {
	return &QuizValidator{}
}

// ValidateQuestions validates every draft and prefixes field names with the
// question position. Drafts with an unknown type are left to the struct
// validator.
func (v *QuizValidator) ValidateQuestions(questions []models.QuestionDraft) ValidationErrors {
	var errs ValidationErrors
	for i, q := range questions {
		errs = append(errs, v.ValidateQuestion(fmt.Sprintf("questions[%d]", i), q)...)
	}
	return errs
}

// ValidateQuestion validates the answers of a single draft against its type
func (v *QuizValidator) ValidateQuestion(prefix string, q models.QuestionDraft) ValidationErrors {
	switch q.Type {
	case models.QuestionBoolean:
		return v.validateBoolean(prefix, q)
	case models.QuestionInput:
		return v.validateInput(prefix, q)
	case models.QuestionCheckbox:
		return v.validateCheckbox(prefix, q)
	default:
		return nil
	}
}

func (v *QuizValidator) validateBoolean(prefix string, q models.QuestionDraft) ValidationErrors {
	field := prefix + ".answers"
	if len(q.Answers) != 1 {
		return ValidationErrors{*errors.NewValidationErrorWithRule(field, "must contain exactly one answer", "len", q.Answers)}
	}
	if a := q.Answers[0]; a != models.BooleanTrue && a != models.BooleanFalse {
		return ValidationErrors{*errors.NewValidationErrorWithRule(field, "must be \"true\" or \"false\"", "boolean", a)}
	}
	return nil
}

func (v *QuizValidator) validateInput(prefix string, q models.QuestionDraft) ValidationErrors {
	if len(q.Answers) != 1 {
		return ValidationErrors{*errors.NewValidationErrorWithRule(prefix+".answers", "must contain exactly one answer", "len", q.Answers)}
	}
	return nil
}

func (v *QuizValidator) validateCheckbox(prefix string, q models.QuestionDraft) ValidationErrors {
	field := prefix + ".answers"
	if len(q.Answers) == 0 {
		return ValidationErrors{*errors.NewValidationErrorWithRule(field, "must contain at least one answer", "min", q.Answers)}
	}

	options := make(map[string]struct{}, len(q.Options))
	for _, o := range q.Options {
		options[o] = struct{}{}
	}

	var errs ValidationErrors
	for i, a := range q.Answers {
		if _, ok := options[a]; !ok {
			errs = append(errs, *errors.NewValidationErrorWithRule(
				fmt.Sprintf("%s[%d]", field, i), "must be one of the options", "subset", a))
		}
	}
	return errs
}
