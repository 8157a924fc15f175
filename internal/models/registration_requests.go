package models

import (
	"time"

	"github.com/prefeitura-rio/app-cadastro/internal/form"
)

// SetFieldRequest carries one input event for a draft field
// swagger:model
type SetFieldRequest struct {
	// New value: a string for text, select, mask and date fields
	// (dd/MM/yyyy or yyyy-mm-dd), a boolean for switches, null to reset
	// example: "035.613.507-12"
	Value interface{} `json:"value"`
}

// ValidateRequest carries a complete set of values for stateless validation
// swagger:model
type ValidateRequest struct {
	// Field values keyed by wire name
	Values map[string]interface{} `json:"values" binding:"required"`
}

// DraftResponse is the render state of a mounted registration form
// swagger:model
type DraftResponse struct {
	ID          string            `json:"id"`
	ExpiresAt   time.Time         `json:"expires_at"`
	SubmitCount int               `json:"submit_count"`
	Fields      []form.FieldState `json:"fields"`
	Errors      form.Errors       `json:"errors"`
}

// SchemaResponse is the registration form layout
// swagger:model
type SchemaResponse struct {
	Sections     []form.Section   `json:"sections"`
	Required     []form.FieldName `json:"required"`
	Dependencies []DependencyEdge `json:"dependencies"`
}

// DependencyEdge is one entry of the field dependency table
// swagger:model
type DependencyEdge struct {
	Trigger     form.FieldName `json:"trigger"`
	Affected    form.FieldName `json:"affected"`
	Action      form.Action    `json:"action"`
	Conditional bool           `json:"conditional"`
}

// SubmitResponse is returned after a successful submission
// swagger:model
type SubmitResponse struct {
	Record *RegistrationRecord `json:"record"`
}

// SubmitFailureResponse is returned when the draft fails validation
// swagger:model
type SubmitFailureResponse struct {
	Error string        `json:"error"`
	Draft DraftResponse `json:"draft"`
}
