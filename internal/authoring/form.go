package authoring

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/quiz-service/internal/client"
	apperrors "github.com/SAP-F-2025/quiz-service/internal/errors"
	"github.com/SAP-F-2025/quiz-service/internal/models"
)

const submitFailedMessage = "Failed to create quiz. Please try again."

var (
	ErrQuestionIndex   = errors.New("question index out of range")
	ErrOptionIndex     = errors.New("option index out of range")
	ErrWrongType       = errors.New("operation does not apply to this question type")
	ErrEmptyOption     = errors.New("option text is empty")
	ErrDuplicateOption = errors.New("option already exists")
	ErrUnknownOption   = errors.New("answer is not one of the options")
)

// QuizCreator submits a finished quiz document
type QuizCreator interface {
	CreateQuiz(ctx context.Context, req *models.CreateQuizRequest) (*models.Quiz, error)
}

// Form is the editable state of a quiz that has not been submitted yet
type Form struct {
	Title     string
	Questions []models.QuestionDraft

	// Error holds the message of the last rejected submission
	Error string
	// Created is the stored quiz after a successful submission
	Created *models.Quiz
}

// NewForm starts with a single empty short-answer question
func NewForm() *Form {
	f := &Form{}
	f.AddQuestion()
	return f
}

// AddQuestion appends an empty input question and returns its position
func (f *Form) AddQuestion() int {
	order := len(f.Questions)
	f.Questions = append(f.Questions, models.QuestionDraft{
		Type:    models.QuestionInput,
		Options: []string{},
		Answers: []string{},
		Order:   &order,
	})
	return order
}

// RemoveQuestion deletes the question at i and renumbers the rest
func (f *Form) RemoveQuestion(i int) error {
	if err := f.checkIndex(i); err != nil {
		return err
	}
	f.Questions = append(f.Questions[:i], f.Questions[i+1:]...)
	f.renumber()
	return nil
}

func (f *Form) SetQuestionText(i int, text string) error {
	if err := f.checkIndex(i); err != nil {
		return err
	}
	f.Questions[i].Question = text
	return nil
}

// SetType switches the question type. Answers always reset; options survive
// only a checkbox to checkbox switch.
func (f *Form) SetType(i int, t models.QuestionType) error {
	if err := f.checkIndex(i); err != nil {
		return err
	}
	if !t.Valid() {
		return fmt.Errorf("%w: %q", ErrWrongType, t)
	}

	q := &f.Questions[i]
	if q.Type != models.QuestionCheckbox || t != models.QuestionCheckbox {
		q.Options = []string{}
	}
	q.Answers = []string{}
	q.Type = t
	return nil
}

func (f *Form) SetBooleanAnswer(i int, value bool) error {
	q, err := f.question(i, models.QuestionBoolean)
	if err != nil {
		return err
	}
	if value {
		q.Answers = []string{models.BooleanTrue}
	} else {
		q.Answers = []string{models.BooleanFalse}
	}
	return nil
}

func (f *Form) SetInputAnswer(i int, answer string) error {
	q, err := f.question(i, models.QuestionInput)
	if err != nil {
		return err
	}
	q.Answers = []string{answer}
	return nil
}

// AddOption appends a trimmed option to a checkbox question
func (f *Form) AddOption(i int, option string) error {
	q, err := f.question(i, models.QuestionCheckbox)
	if err != nil {
		return err
	}

	option = strings.TrimSpace(option)
	if option == "" {
		return ErrEmptyOption
	}
	if contains(q.Options, option) {
		return fmt.Errorf("%w: %q", ErrDuplicateOption, option)
	}
	q.Options = append(q.Options, option)
	return nil
}

// RemoveOption deletes an option and drops it from the answers
func (f *Form) RemoveOption(i, optionIndex int) error {
	q, err := f.question(i, models.QuestionCheckbox)
	if err != nil {
		return err
	}
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return ErrOptionIndex
	}

	removed := q.Options[optionIndex]
	q.Options = append(q.Options[:optionIndex], q.Options[optionIndex+1:]...)
	q.Answers = without(q.Answers, removed)
	return nil
}

// ToggleAnswer marks or unmarks an option of a checkbox question as correct
func (f *Form) ToggleAnswer(i int, option string) error {
	q, err := f.question(i, models.QuestionCheckbox)
	if err != nil {
		return err
	}
	if !contains(q.Options, option) {
		return fmt.Errorf("%w: %q", ErrUnknownOption, option)
	}

	if contains(q.Answers, option) {
		q.Answers = without(q.Answers, option)
	} else {
		q.Answers = append(q.Answers, option)
	}
	return nil
}

// Build maps the drafts to the document sent to the service
func (f *Form) Build() *models.CreateQuizRequest {
	req := &models.CreateQuizRequest{
		Title:     f.Title,
		Questions: make([]models.QuestionDraft, 0, len(f.Questions)),
	}

	for i, q := range f.Questions {
		order := i
		draft := models.QuestionDraft{
			Type:     q.Type,
			Question: q.Question,
			Options:  []string{},
			Answers:  []string{},
			Order:    &order,
		}
		switch q.Type {
		case models.QuestionCheckbox:
			draft.Options = append(draft.Options, q.Options...)
			draft.Answers = append(draft.Answers, q.Answers...)
		default:
			if len(q.Answers) > 0 {
				draft.Answers = []string{q.Answers[0]}
			}
		}
		req.Questions = append(req.Questions, draft)
	}

	return req
}

// Validate applies the checks the form runs before contacting the service
func (f *Form) Validate() error {
	var errs apperrors.ValidationErrors
	if strings.TrimSpace(f.Title) == "" {
		errs = append(errs, *apperrors.NewValidationErrorWithRule("title", "Title is required", "required", f.Title))
	}
	if len(f.Questions) == 0 {
		errs = append(errs, *apperrors.NewValidationErrorWithRule("questions", "At least one question is required", "min", nil))
	}
	for i, q := range f.Questions {
		if strings.TrimSpace(q.Question) == "" {
			errs = append(errs, *apperrors.NewValidationErrorWithRule(
				fmt.Sprintf("questions[%d].question", i), "Question is required", "required", q.Question))
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Submit validates the form and sends it once. On failure Error is set and
// the drafts stay as they were.
func (f *Form) Submit(ctx context.Context, creator QuizCreator) (*models.Quiz, error) {
	f.Error = ""

	if err := f.Validate(); err != nil {
		var validationErrs apperrors.ValidationErrors
		if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
			f.Error = validationErrs[0].Message
		} else {
			f.Error = err.Error()
		}
		return nil, err
	}

	quiz, err := creator.CreateQuiz(ctx, f.Build())
	if err != nil {
		f.Error = submitErrorMessage(err)
		return nil, err
	}

	f.Created = quiz
	return quiz, nil
}

func submitErrorMessage(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message
	}
	return submitFailedMessage
}

func (f *Form) checkIndex(i int) error {
	if i < 0 || i >= len(f.Questions) {
		return fmt.Errorf("%w: %d", ErrQuestionIndex, i)
	}
	return nil
}

func (f *Form) question(i int, want models.QuestionType) (*models.QuestionDraft, error) {
	if err := f.checkIndex(i); err != nil {
		return nil, err
	}
	q := &f.Questions[i]
	if q.Type != want {
		return nil, fmt.Errorf("%w: question %d is %s", ErrWrongType, i, q.Type)
	}
	return q, nil
}

func (f *Form) renumber() {
	for i := range f.Questions {
		order := i
		f.Questions[i].Order = &order
	}
}

func contains(values []string, v string) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}

func without(values []string, v string) []string {
	out := make([]string, 0, len(values))
	for _, existing := range values {
		if existing != v {
			out = append(out, existing)
		}
	}
	return out
}
