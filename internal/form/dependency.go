package form

// Action is what a dependency does to the affected field.
type Action string

const (
	// ActionClearValue resets the affected field to its default and drops
	// its error.
	ActionClearValue Action = "clear_value"
	// ActionClearError drops the affected field's error without
	// re-validating it.
	ActionClearError Action = "clear_error"
)

// Dependency fires Action on Affected after Trigger changes, provided When
// holds for the updated draft (nil means always).
type Dependency struct {
	Trigger  FieldName
	Affected FieldName
	Action   Action
	When     Condition
}

func (dep Dependency) applies(d Draft) bool {
	return dep.When == nil || dep.When(d)
}
