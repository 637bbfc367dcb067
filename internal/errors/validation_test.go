package errors

import (
	"reflect"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("title", "is required", "")

	if err.Field != "title" {
		t.Errorf("Expected field to be 'title', got '%s'", err.Field)
	}

	if err.Message != "is required" {
		t.Errorf("Expected message to be 'is required', got '%s'", err.Message)
	}

	expected := "validation error on field 'title': is required"
	if err.Error() != expected {
		t.Errorf("Expected error message to be '%s', got '%s'", expected, err.Error())
	}
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	if errs.Error() != "validation failed" {
		t.Errorf("Expected 'validation failed' for empty errors, got '%s'", errs.Error())
	}

	errs = append(errs, *NewValidationError("title", "is required", nil))
	expected := "validation failed: title is required"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for single error, got '%s'", expected, errs.Error())
	}

	errs = append(errs, *NewValidationError("questions[0].question", "is required", nil))
	expected = "validation failed: 2 field errors"
	if errs.Error() != expected {
		t.Errorf("Expected '%s' for multiple errors, got '%s'", expected, errs.Error())
	}
}

func TestNewValidationErrorWithRule(t *testing.T) {
	err := NewValidationErrorWithRule("questions[2].answers", "must be one of the options", "subset", "MOVE")

	if err.Rule != "subset" {
		t.Errorf("Expected rule to be 'subset', got '%s'", err.Rule)
	}

	if err.Value != "MOVE" {
		t.Errorf("Expected value to be 'MOVE', got '%v'", err.Value)
	}
}

func TestToValidationErrorsUsesJSONPaths(t *testing.T) {
	type item struct {
		Name string `json:"name" validate:"required"`
	}
	type payload struct {
		Title string `json:"title" validate:"required"`
		Items []item `json:"items" validate:"dive"`
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	})

	errs := ToValidationErrors(v.Struct(payload{Items: []item{{Name: "ok"}, {}}}))
	if len(errs) != 2 {
		t.Fatalf("Expected 2 errors, got %d (%v)", len(errs), errs)
	}
	if errs[0].Field != "title" || errs[0].Message != "is required" {
		t.Errorf("Unexpected first error: %+v", errs[0])
	}
	if errs[1].Field != "items[1].name" {
		t.Errorf("Expected field 'items[1].name', got '%s'", errs[1].Field)
	}
}

func TestToValidationErrorsIgnoresOtherErrors(t *testing.T) {
	if errs := ToValidationErrors(NewValidationError("x", "y", nil)); len(errs) != 0 {
		t.Errorf("Expected no converted errors, got %v", errs)
	}
}
