package authoring

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/SAP-F-2025/quiz-service/internal/client"
	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockQuizCreator struct {
	mock.Mock
}

func (m *MockQuizCreator) CreateQuiz(ctx context.Context, req *models.CreateQuizRequest) (*models.Quiz, error) {
	args := m.Called(ctx, req)
	quiz, _ := args.Get(0).(*models.Quiz)
	return quiz, args.Error(1)
}

func orders(drafts []models.QuestionDraft) []int {
	out := make([]int, 0, len(drafts))
	for _, d := range drafts {
		out = append(out, *d.Order)
	}
	return out
}

func TestNewFormStartsWithOneInputQuestion(t *testing.T) {
	f := NewForm()

	require.Len(t, f.Questions, 1)
	assert.Equal(t, models.QuestionInput, f.Questions[0].Type)
	assert.Equal(t, 0, *f.Questions[0].Order)
	assert.Empty(t, f.Questions[0].Answers)
}

func TestAddAndRemoveQuestionRenumbers(t *testing.T) {
	f := NewForm()
	assert.Equal(t, 1, f.AddQuestion())
	assert.Equal(t, 2, f.AddQuestion())
	require.NoError(t, f.SetQuestionText(2, "third"))

	require.NoError(t, f.RemoveQuestion(0))
	assert.Equal(t, []int{0, 1}, orders(f.Questions))
	assert.Equal(t, "third", f.Questions[1].Question)

	assert.ErrorIs(t, f.RemoveQuestion(5), ErrQuestionIndex)
	assert.ErrorIs(t, f.SetQuestionText(-1, "x"), ErrQuestionIndex)
}

func TestSetTypeResetsAnswersAndOptions(t *testing.T) {
	f := NewForm()
	require.NoError(t, f.SetInputAnswer(0, "go"))

	require.NoError(t, f.SetType(0, models.QuestionCheckbox))
	assert.Empty(t, f.Questions[0].Answers)
	require.NoError(t, f.AddOption(0, "a"))
	require.NoError(t, f.ToggleAnswer(0, "a"))

	require.NoError(t, f.SetType(0, models.QuestionCheckbox))
	assert.Equal(t, []string{"a"}, f.Questions[0].Options)
	assert.Empty(t, f.Questions[0].Answers)

	require.NoError(t, f.SetType(0, models.QuestionBoolean))
	assert.Empty(t, f.Questions[0].Options)
	assert.Empty(t, f.Questions[0].Answers)

	assert.ErrorIs(t, f.SetType(0, "essay"), ErrWrongType)
}

func TestAnswerCaptureChecksType(t *testing.T) {
	f := NewForm()

	assert.ErrorIs(t, f.SetBooleanAnswer(0, true), ErrWrongType)
	assert.ErrorIs(t, f.AddOption(0, "a"), ErrWrongType)
	assert.ErrorIs(t, f.ToggleAnswer(0, "a"), ErrWrongType)

	require.NoError(t, f.SetType(0, models.QuestionBoolean))
	require.NoError(t, f.SetBooleanAnswer(0, false))
	assert.Equal(t, []string{"false"}, f.Questions[0].Answers)
	require.NoError(t, f.SetBooleanAnswer(0, true))
	assert.Equal(t, []string{"true"}, f.Questions[0].Answers)
	assert.ErrorIs(t, f.SetInputAnswer(0, "x"), ErrWrongType)
}

func TestCheckboxOptions(t *testing.T) {
	f := NewForm()
	require.NoError(t, f.SetType(0, models.QuestionCheckbox))

	require.NoError(t, f.AddOption(0, "  String "))
	require.NoError(t, f.AddOption(0, "Number"))
	require.NoError(t, f.AddOption(0, "Boolean"))
	assert.ErrorIs(t, f.AddOption(0, "   "), ErrEmptyOption)
	assert.ErrorIs(t, f.AddOption(0, "Number"), ErrDuplicateOption)
	assert.Equal(t, []string{"String", "Number", "Boolean"}, f.Questions[0].Options)

	require.NoError(t, f.ToggleAnswer(0, "String"))
	require.NoError(t, f.ToggleAnswer(0, "Boolean"))
	require.NoError(t, f.ToggleAnswer(0, "Number"))
	require.NoError(t, f.ToggleAnswer(0, "Number"))
	assert.Equal(t, []string{"String", "Boolean"}, f.Questions[0].Answers)
	assert.ErrorIs(t, f.ToggleAnswer(0, "Char"), ErrUnknownOption)

	require.NoError(t, f.RemoveOption(0, 2))
	assert.Equal(t, []string{"String", "Number"}, f.Questions[0].Options)
	assert.Equal(t, []string{"String"}, f.Questions[0].Answers)
	assert.ErrorIs(t, f.RemoveOption(0, 9), ErrOptionIndex)
}

func TestBuildNormalizesDrafts(t *testing.T) {
	f := NewForm()
	f.Title = "Quiz"
	f.Questions[0].Question = "free"
	f.Questions[0].Answers = []string{"one", "two"}
	f.Questions[0].Options = []string{"stale"}

	f.AddQuestion()
	require.NoError(t, f.SetType(1, models.QuestionCheckbox))
	require.NoError(t, f.AddOption(1, "a"))
	require.NoError(t, f.ToggleAnswer(1, "a"))

	f.AddQuestion()
	require.NoError(t, f.SetType(2, models.QuestionBoolean))

	req := f.Build()
	assert.Equal(t, "Quiz", req.Title)
	require.Len(t, req.Questions, 3)
	assert.Equal(t, []int{0, 1, 2}, orders(req.Questions))

	assert.Equal(t, []string{}, req.Questions[0].Options)
	assert.Equal(t, []string{"one"}, req.Questions[0].Answers)
	assert.Equal(t, []string{"a"}, req.Questions[1].Options)
	assert.Equal(t, []string{"a"}, req.Questions[1].Answers)
	assert.Equal(t, []string{}, req.Questions[2].Answers)

	req.Questions[1].Options[0] = "mutated"
	assert.Equal(t, "a", f.Questions[1].Options[0])
}

func TestSubmitRejectsLocallyWithoutCallingService(t *testing.T) {
	creator := new(MockQuizCreator)

	f := NewForm()
	_, err := f.Submit(context.Background(), creator)
	require.Error(t, err)
	assert.Equal(t, "Title is required", f.Error)

	f.Title = "T"
	require.NoError(t, f.RemoveQuestion(0))
	_, err = f.Submit(context.Background(), creator)
	require.Error(t, err)
	assert.Equal(t, "At least one question is required", f.Error)

	f.AddQuestion()
	_, err = f.Submit(context.Background(), creator)
	require.Error(t, err)
	assert.Equal(t, "Question is required", f.Error)

	creator.AssertNotCalled(t, "CreateQuiz", mock.Anything, mock.Anything)
}

func TestSubmitSuccess(t *testing.T) {
	creator := new(MockQuizCreator)
	stored := &models.Quiz{ID: 4, Title: "T"}
	creator.On("CreateQuiz", mock.Anything, mock.MatchedBy(func(req *models.CreateQuizRequest) bool {
		return req.Title == "T" && len(req.Questions) == 1 && req.Questions[0].Answers[0] == "go"
	})).Return(stored, nil).Once()

	f := NewForm()
	f.Title = "T"
	require.NoError(t, f.SetQuestionText(0, "Keyword?"))
	require.NoError(t, f.SetInputAnswer(0, "go"))

	quiz, err := f.Submit(context.Background(), creator)
	require.NoError(t, err)
	assert.Equal(t, stored, quiz)
	assert.Equal(t, stored, f.Created)
	assert.Empty(t, f.Error)
	creator.AssertExpectations(t)
}

func TestSubmitKeepsDraftsOnRejection(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{"server message", &client.APIError{StatusCode: http.StatusBadRequest, Message: "Validation failed"}, "Validation failed"},
		{"no message", &client.APIError{StatusCode: http.StatusBadGateway}, submitFailedMessage},
		{"transport", client.ErrServiceUnavailable, submitFailedMessage},
		{"other", errors.New("boom"), submitFailedMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			creator := new(MockQuizCreator)
			creator.On("CreateQuiz", mock.Anything, mock.Anything).Return(nil, tt.err).Once()

			f := NewForm()
			f.Title = "T"
			require.NoError(t, f.SetQuestionText(0, "Keyword?"))
			require.NoError(t, f.SetInputAnswer(0, "go"))
			before := f.Build()

			_, err := f.Submit(context.Background(), creator)
			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.message, f.Error)
			assert.Nil(t, f.Created)
			assert.Equal(t, before, f.Build())
			creator.AssertNumberOfCalls(t, "CreateQuiz", 1)
		})
	}
}
