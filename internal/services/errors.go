package services

import (
	"errors"

	apperrors "github.com/SAP-F-2025/quiz-service/internal/errors"
)

var (
	ErrValidationFailed = errors.New("validation failed")
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrInternalFailure  = errors.New("internal failure")
)

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrQuizNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsInternal checks if error represents an unexpected failure of a dependency
func IsInternal(err error) bool {
	return errors.Is(err, ErrInternalFailure)
}
