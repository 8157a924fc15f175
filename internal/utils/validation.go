package utils

import (
	"strings"

	"github.com/prefeitura-rio/app-cadastro/internal/form"
)

// ValidationError represents a validation error with field and message
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult represents the result of validation
type ValidationResult struct {
	IsValid bool              `json:"is_valid"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

// NewValidationResult creates a new validation result
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		IsValid: true,
		Errors:  []ValidationError{},
	}
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.IsValid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// ValidationResultFromErrors converts form errors into a result ordered by field name
func ValidationResultFromErrors(errs form.Errors) *ValidationResult {
	result := NewValidationResult()
	for _, name := range errs.Fields() {
		result.AddError(string(name), errs[name])
	}
	return result
}

// SanitizeString removes leading/trailing whitespace and normalizes string
func SanitizeString(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
