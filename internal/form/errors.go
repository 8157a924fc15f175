package form

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Input event errors
var (
	ErrUnknownField   = errors.New("unknown field")
	ErrFieldDisabled  = errors.New("field is disabled")
	ErrInvalidOption  = errors.New("value is not a valid option")
	ErrValueKind      = errors.New("value kind does not match field")
	ErrDateOutOfRange = errors.New("date is after today")
	ErrInvalidDate    = errors.New("invalid date")
)

// Errors maps a field to its user-facing validation message.
type Errors map[FieldName]string

// Fields returns the failing fields sorted by name
func (e Errors) Fields() []FieldName {
	out := make([]FieldName, 0, len(e))
	for name := range e {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clone returns an independent copy
func (e Errors) Clone() Errors {
	out := make(Errors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// ValidationError blocks a submission. It carries the message of every
// failing field.
type ValidationError struct {
	Fields Errors
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, name := range e.Fields.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
