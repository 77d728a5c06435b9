package service

import (
	"strings"
)

// AnswerValidator checks typed answers against the expected answer.
type AnswerValidator struct{}

// NewAnswerValidator creates a new AnswerValidator.
func NewAnswerValidator() *AnswerValidator {
	return &AnswerValidator{}
}

// IsCorrect compares answers ignoring case and surrounding whitespace.
// Nothing else is normalized: "7" and "seven" are different answers.
func (v *AnswerValidator) IsCorrect(submitted, expected string) bool {
	return v.normalize(submitted) == v.normalize(expected)
}

func (v *AnswerValidator) normalize(s string) string {
	return strings.TrimSpace(strings.ToLower(s))
}
