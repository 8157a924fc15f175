// Package form holds the registration form state, its validation rules and
// the tables that make fields depend on each other.
package form

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Submitter receives the snapshot of a draft that passed validation.
type Submitter interface {
	Submit(ctx context.Context, snapshot Draft) error
}

// SubmitterFunc adapts a function to Submitter
type SubmitterFunc func(ctx context.Context, snapshot Draft) error

// Submit calls fn
func (fn SubmitterFunc) Submit(ctx context.Context, snapshot Draft) error {
	return fn(ctx, snapshot)
}

// Form is the mutable state of one mounted form. It is not safe for
// concurrent use; callers serialize events the way a UI thread would.
type Form struct {
	schema      *Schema
	draft       Draft
	errors      Errors
	touched     map[FieldName]bool
	submitCount int
	submitted   bool
	now         func() time.Time
}

// FormOption configures a Form
type FormOption func(*Form)

// WithClock overrides the clock used to bound date inputs
func WithClock(now func() time.Time) FormOption {
	return func(f *Form) { f.now = now }
}

// New mounts an empty form for schema.
func New(schema *Schema, opts ...FormOption) *Form {
	f := &Form{
		schema:  schema,
		draft:   schema.Defaults(),
		errors:  make(Errors),
		touched: make(map[FieldName]bool),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Schema returns the form definition
func (f *Form) Schema() *Schema {
	return f.schema
}

// ParseInput converts a decoded JSON value into a Value for spec. Toggles
// take booleans, dates take dd/MM/yyyy or ISO dates, everything else takes
// strings. nil resets to the field default.
func ParseInput(spec FieldSpec, raw any) (Value, error) {
	if raw == nil {
		return spec.Default(), nil
	}

	switch spec.Kind.ValueKind() {
	case ValueFlag:
		switch v := raw.(type) {
		case bool:
			return Flag(v), nil
		case string:
			switch strings.ToLower(strings.TrimSpace(v)) {
			case "true":
				return Flag(true), nil
			case "false", "":
				return Flag(false), nil
			}
		}
		return Value{}, fmt.Errorf("%w: %s expects a boolean", ErrValueKind, spec.Name)

	case ValueDate:
		s, ok := raw.(string)
		if !ok {
			return Value{}, fmt.Errorf("%w: %s expects a date string", ErrValueKind, spec.Name)
		}
		s = strings.TrimSpace(s)
		if s == "" {
			return NoDate(), nil
		}
		for _, layout := range []string{DateLayout, "2006-01-02"} {
			if t, err := time.Parse(layout, s); err == nil {
				return Date(t), nil
			}
		}
		return Value{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)

	default:
		s, ok := raw.(string)
		if !ok {
			return Value{}, fmt.Errorf("%w: %s expects a string", ErrValueKind, spec.Name)
		}
		return Text(s), nil
	}
}

// SetInput parses raw for the field and applies it with Set.
func (f *Form) SetInput(name FieldName, raw any) error {
	spec, ok := f.schema.Field(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	v, err := ParseInput(spec, raw)
	if err != nil {
		return err
	}
	return f.Set(name, v)
}

// Set applies one input event: the value is normalized for the field kind,
// stored, validated and then the dependency table is applied.
func (f *Form) Set(name FieldName, v Value) error {
	spec, ok := f.schema.Field(name)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, name)
	}
	if Disabled(f.schema, f.draft).Has(name) {
		return fmt.Errorf("%w: %s", ErrFieldDisabled, name)
	}

	v, err := f.normalize(spec, v)
	if err != nil {
		return err
	}

	f.draft[name] = v
	f.touched[name] = true

	if Active(f.schema, f.draft).Has(name) {
		f.revalidate(name)
	}

	f.propagate(name)
	f.pruneInactive()
	return nil
}

func (f *Form) normalize(spec FieldSpec, v Value) (Value, error) {
	if v.Kind() != spec.Kind.ValueKind() {
		return Value{}, fmt.Errorf("%w: %s expects %s, got %s", ErrValueKind, spec.Name, spec.Kind.ValueKind(), v.Kind())
	}

	switch spec.Kind {
	case KindSelect:
		if !spec.HasOption(v.String()) {
			return Value{}, fmt.Errorf("%w: %s=%q", ErrInvalidOption, spec.Name, v.String())
		}
	case KindMask:
		v = Text(spec.Mask.Apply(v.String()))
	case KindDate:
		if t, ok := v.Time(); ok {
			today, _ := Date(f.now()).Time()
			if t.After(today) {
				return Value{}, fmt.Errorf("%w: %s", ErrDateOutOfRange, t.Format(DateLayout))
			}
		}
	}
	return v, nil
}

func (f *Form) revalidate(name FieldName) {
	if msg := ValidateField(f.schema, name, f.draft); msg != "" {
		f.errors[name] = msg
		return
	}
	delete(f.errors, name)
}

// propagate walks the dependency table starting from the changed field.
// A cleared value counts as a change of the affected field; each field is
// visited once per event.
func (f *Form) propagate(trigger FieldName) {
	visited := map[FieldName]bool{trigger: true}
	queue := []FieldName{trigger}

	for len(queue) > 0 {
		changed := queue[0]
		queue = queue[1:]

		for _, dep := range f.schema.dependencies {
			if dep.Trigger != changed || !dep.applies(f.draft) {
				continue
			}
			switch dep.Action {
			case ActionClearValue:
				spec := f.schema.fields[dep.Affected]
				def := spec.Default()
				delete(f.errors, dep.Affected)
				if f.draft.Get(dep.Affected).Equal(def) {
					continue
				}
				f.draft[dep.Affected] = def
				if !visited[dep.Affected] {
					visited[dep.Affected] = true
					queue = append(queue, dep.Affected)
				}
			case ActionClearError:
				delete(f.errors, dep.Affected)
			}
		}
	}
}

func (f *Form) pruneInactive() {
	active := Active(f.schema, f.draft)
	for name := range f.errors {
		if !active.Has(name) {
			delete(f.errors, name)
		}
	}
}

// Value returns the current value of name
func (f *Form) Value(name FieldName) Value {
	return f.draft.Get(name)
}

// Draft returns a snapshot of every field value
func (f *Form) Draft() Draft {
	return f.draft.Clone()
}

// Errors returns the messages currently displayed
func (f *Form) Errors() Errors {
	return f.errors.Clone()
}

// Error returns the message displayed for name, if any
func (f *Form) Error(name FieldName) string {
	return f.errors[name]
}

// Visible returns the rendered fields
func (f *Form) Visible() FieldSet {
	return Visible(f.schema, f.draft)
}

// Disabled returns the locked fields
func (f *Form) Disabled() FieldSet {
	return Disabled(f.schema, f.draft)
}

// Trigger validates every active field and replaces the displayed errors.
// It reports whether the draft is valid.
func (f *Form) Trigger() bool {
	f.errors = Validate(f.schema, f.draft)
	return len(f.errors) == 0
}

// Submit validates the draft and, when every active field passes, hands
// the snapshot to sub. On validation failure sub is not called and a
// *ValidationError is returned.
func (f *Form) Submit(ctx context.Context, sub Submitter) (Draft, error) {
	f.submitCount++

	if !f.Trigger() {
		return nil, &ValidationError{Fields: f.errors.Clone()}
	}

	snapshot := f.draft.Clone()
	if err := sub.Submit(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("submit draft: %w", err)
	}
	f.submitted = true
	return snapshot, nil
}

// SubmitCount returns how many submissions were attempted
func (f *Form) SubmitCount() int {
	return f.submitCount
}

// Submitted reports whether a snapshot was handed off
func (f *Form) Submitted() bool {
	return f.submitted
}
