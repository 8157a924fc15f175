package form

// Status is the feedback style of a rendered field
type Status string

const (
	StatusNeutral Status = ""
	StatusValid   Status = "valid"
	StatusInvalid Status = "invalid"
)

// FieldState is everything a renderer needs for one field.
type FieldState struct {
	Name     FieldName `json:"name"`
	Value    Value     `json:"value"`
	Visible  bool      `json:"visible"`
	Disabled bool      `json:"disabled"`
	Touched  bool      `json:"touched"`
	Dirty    bool      `json:"dirty"`
	Error    string    `json:"error,omitempty"`
	Status   Status    `json:"status"`
}

// State returns the rendering state of name. A field is invalid while it
// shows an error and valid once it was changed to a non-empty value that
// passes.
func (f *Form) State(name FieldName) FieldState {
	spec, _ := f.schema.Field(name)
	v := f.draft.Get(name)
	st := FieldState{
		Name:     name,
		Value:    v,
		Visible:  f.Visible().Has(name),
		Disabled: f.Disabled().Has(name),
		Touched:  f.touched[name],
		Dirty:    !v.Equal(spec.Default()),
		Error:    f.errors[name],
	}

	switch {
	case st.Error != "":
		st.Status = StatusInvalid
	case st.Dirty && !v.IsEmpty():
		st.Status = StatusValid
	default:
		st.Status = StatusNeutral
	}
	return st
}

// States returns the state of every field in layout order
func (f *Form) States() []FieldState {
	out := make([]FieldState, 0, len(f.schema.order))
	for _, name := range f.schema.order {
		out = append(out, f.State(name))
	}
	return out
}
