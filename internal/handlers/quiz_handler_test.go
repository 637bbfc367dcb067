package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/services"
	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockQuizService is a mock implementation of QuizService
type MockQuizService struct {
	mock.Mock
}

func (m *MockQuizService) CreateQuiz(ctx context.Context, req *models.CreateQuizRequest) (*models.Quiz, error) {
	args := m.Called(ctx, req)
	quiz, _ := args.Get(0).(*models.Quiz)
	return quiz, args.Error(1)
}

func (m *MockQuizService) ListQuizzes(ctx context.Context) ([]*models.QuizSummary, error) {
	args := m.Called(ctx)
	summaries, _ := args.Get(0).([]*models.QuizSummary)
	return summaries, args.Error(1)
}

func (m *MockQuizService) GetQuiz(ctx context.Context, id uint) (*models.Quiz, error) {
	args := m.Called(ctx, id)
	quiz, _ := args.Get(0).(*models.Quiz)
	return quiz, args.Error(1)
}

func (m *MockQuizService) DeleteQuiz(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuizService) ExportQuiz(ctx context.Context, id uint) ([]byte, error) {
	args := m.Called(ctx, id)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

type stubChecker struct{ err error }

func (s stubChecker) Ping(context.Context) error { return s.err }

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(service services.QuizService, checker HealthChecker) *gin.Engine {
	logger := utils.NewDiscardLogger()
	return NewRouter(NewHandlerManager(service, checker, logger), logger, []string{"http://localhost:3000"})
}

func doRequest(router http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestQuizHandler_CreateQuiz(t *testing.T) {
	service := new(MockQuizService)
	router := newTestRouter(service, nil)

	created := &models.Quiz{ID: 1, Title: "T", Questions: []models.Question{{ID: 1, QuizID: 1, Type: models.QuestionInput, Question: "q", Answers: []string{"a"}}}}
	service.On("CreateQuiz", mock.Anything, mock.MatchedBy(func(req *models.CreateQuizRequest) bool {
		return req.Title == "T" && len(req.Questions) == 1
	})).Return(created, nil)

	body := []byte(`{"title":"T","questions":[{"type":"input","question":"q","options":[],"answers":["a"],"order":9}]}`)
	w := doRequest(router, http.MethodPost, "/quizzes", body)

	assert.Equal(t, http.StatusCreated, w.Code)
	var got models.Quiz
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, uint(1), got.ID)
	assert.Equal(t, uint(1), got.Questions[0].QuizID)
	service.AssertExpectations(t)
}

func TestQuizHandler_CreateQuizErrors(t *testing.T) {
	service := new(MockQuizService)
	router := newTestRouter(service, nil)

	w := doRequest(router, http.MethodPost, "/quizzes", []byte(`{"title":`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request payload", decodeError(t, w).Message)

	service.On("CreateQuiz", mock.Anything, mock.Anything).Return(nil, services.ValidationErrors{
		{Field: "title", Message: "is required", Rule: "required"},
	}).Once()
	w = doRequest(router, http.MethodPost, "/quizzes", []byte(`{"title":"","questions":[]}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, "Validation failed", resp.Message)
	details, ok := resp.Details.([]interface{})
	require.True(t, ok)
	assert.Equal(t, "title", details[0].(map[string]interface{})["field"])

	service.On("CreateQuiz", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: dial tcp: secret-host:5432", services.ErrInternalFailure)).Once()
	w = doRequest(router, http.MethodPost, "/quizzes", []byte(`{"title":"x","questions":[]}`))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret-host")
}

func TestQuizHandler_ListQuizzes(t *testing.T) {
	service := new(MockQuizService)
	router := newTestRouter(service, nil)

	service.On("ListQuizzes", mock.Anything).Return([]*models.QuizSummary{{ID: 1, Title: "a", QuestionCount: 3}}, nil)

	w := doRequest(router, http.MethodGet, "/quizzes", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, float64(3), got[0]["questionCount"])
	assert.NotContains(t, got[0], "questions")
}

func TestQuizHandler_GetQuiz(t *testing.T) {
	service := new(MockQuizService)
	router := newTestRouter(service, nil)

	service.On("GetQuiz", mock.Anything, uint(2)).Return(&models.Quiz{ID: 2, Title: "b"}, nil)
	service.On("GetQuiz", mock.Anything, uint(999999)).Return(nil, fmt.Errorf("%w: id 999999", services.ErrQuizNotFound))

	w := doRequest(router, http.MethodGet, "/quizzes/2", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/quizzes/999999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Quiz not found", decodeError(t, w).Message)

	for _, bad := range []string{"abc", "-1", "0", "1.5"} {
		w = doRequest(router, http.MethodGet, "/quizzes/"+bad, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, bad)
	}
	service.AssertNumberOfCalls(t, "GetQuiz", 2)
}

func TestQuizHandler_DeleteQuiz(t *testing.T) {
	service := new(MockQuizService)
	router := newTestRouter(service, nil)

	service.On("DeleteQuiz", mock.Anything, uint(4)).Return(nil).Once()
	service.On("DeleteQuiz", mock.Anything, uint(4)).Return(services.ErrQuizNotFound).Once()
	service.On("DeleteQuiz", mock.Anything, uint(5)).Return(errors.New("boom")).Once()

	w := doRequest(router, http.MethodDelete, "/quizzes/4", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = doRequest(router, http.MethodDelete, "/quizzes/4", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, http.MethodDelete, "/quizzes/5", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	w = doRequest(router, http.MethodDelete, "/quizzes/x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestQuizHandler_ExportQuiz(t *testing.T) {
	service := new(MockQuizService)
	router := newTestRouter(service, nil)

	service.On("ExportQuiz", mock.Anything, uint(3)).Return([]byte("xlsx-bytes"), nil)

	w := doRequest(router, http.MethodGet, "/quizzes/3/export", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, xlsxContentType, w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="quiz-3.xlsx"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "xlsx-bytes", w.Body.String())
}

func TestHealthCheck(t *testing.T) {
	w := doRequest(newTestRouter(new(MockQuizService), stubChecker{}), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")

	w = doRequest(newTestRouter(new(MockQuizService), stubChecker{err: errors.New("down")}), http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "unhealthy")
}

func TestRouter_CORSAndRequestID(t *testing.T) {
	router := newTestRouter(new(MockQuizService), nil)

	req := httptest.NewRequest(http.MethodOptions, "/quizzes", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(utils.RequestIDHeader, "req-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get(utils.RequestIDHeader))
}
