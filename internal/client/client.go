package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/SAP-F-2025/quiz-service/internal/models"
)

const DefaultBaseURL = "http://localhost:3001"

var ErrServiceUnavailable = errors.New("quiz service unavailable")

// APIError is a non-2xx answer from the quiz service. Message and Details
// are taken from the error body and may be empty.
type APIError struct {
	StatusCode int
	Message    string
	Details    json.RawMessage
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Message) == "" {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return e.Message
}

// IsNotFound reports whether err is a 404 from the quiz service
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

type errorResponse struct {
	Message string          `json:"message"`
	Details json.RawMessage `json:"details,omitempty"`
}

// HTTPClient is a typed client for the quiz service API
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	baseURL = strings.TrimSpace(baseURL)
	baseURL = strings.TrimRight(baseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &HTTPClient{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

func (c *HTTPClient) CreateQuiz(ctx context.Context, req *models.CreateQuizRequest) (*models.Quiz, error) {
	if req == nil {
		return nil, errors.New("quiz is required")
	}

	var quiz models.Quiz
	if err := c.doJSON(ctx, http.MethodPost, "/quizzes", req, &quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (c *HTTPClient) ListQuizzes(ctx context.Context) ([]models.QuizSummary, error) {
	summaries := make([]models.QuizSummary, 0)
	if err := c.doJSON(ctx, http.MethodGet, "/quizzes", nil, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (c *HTTPClient) GetQuiz(ctx context.Context, id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/quizzes/%d", id), nil, &quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (c *HTTPClient) DeleteQuiz(ctx context.Context, id uint) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/quizzes/%d", id), nil, nil)
}

func (c *HTTPClient) doJSON(ctx context.Context, method, path string, requestBody any, responseBody any) error {
	fullURL := c.baseURL + path

	var body io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, fullURL, body)
	if err != nil {
		return err
	}
	request.Header.Set("Accept", "application/json")
	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer response.Body.Close()

	if response.StatusCode < http.StatusOK || response.StatusCode >= http.StatusMultipleChoices {
		apiErr := APIError{StatusCode: response.StatusCode}
		var payload errorResponse
		if err := json.NewDecoder(response.Body).Decode(&payload); err == nil {
			apiErr.Message = strings.TrimSpace(payload.Message)
			apiErr.Details = payload.Details
		}
		return &apiErr
	}

	if responseBody == nil || response.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(response.Body).Decode(responseBody)
}
