package services

import (
	"fmt"
	"strings"
)

// Validation codes surfaced to clients alongside the offending field.
const (
	CodeMissingField         = "missing_field"
	CodeBelowMinLength       = "below_min_length"
	CodeTooManyImages        = "too_many_images"
	CodeInvalidPriceRelation = "invalid_price_relation"
	CodeInvalidValue         = "invalid_value"
)

// Content and image limits applied by the write paths.
const (
	minContentLength  = 10
	maxListingImages  = 6
	maxQuestionImages = 3
	maxReviewImages   = 5
	minReviewRating   = 1
	maxReviewRating   = 5
)

// FieldError pairs one field with the machine-readable reason it was rejected.
type FieldError struct {
	Field string `json:"field"`
	Code  string `json:"code"`
}

// ValidationError aggregates every rejected field of a request so clients can
// render all problems at once.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Code))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) add(field, code string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Code: code})
}

// errOrNil collapses an empty collector back to nil so callers can return it directly.
func (e *ValidationError) errOrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func requireField(v *ValidationError, field, value string) {
	if strings.TrimSpace(value) == "" {
		v.add(field, CodeMissingField)
	}
}

func requireMinLength(v *ValidationError, field, value string, min int) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		v.add(field, CodeMissingField)
		return
	}
	if len([]rune(trimmed)) < min {
		v.add(field, CodeBelowMinLength)
	}
}

func limitImages(v *ValidationError, field string, images []string, max int) {
	if len(images) > max {
		v.add(field, CodeTooManyImages)
	}
}
