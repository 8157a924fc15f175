package form

import "fmt"

// Section groups rows of fields under a title.
type Section struct {
	Title string        `json:"title"`
	Rows  [][]FieldSpec `json:"rows"`
}

// Schema is the immutable definition of a form: its fields, their rules and
// the tables that tie fields together.
type Schema struct {
	sections     []Section
	fields       map[FieldName]FieldSpec
	order        []FieldName
	visibility   []VisibilityRule
	disabling    []DisableRule
	dependencies []Dependency
}

// SchemaOption configures the tables of a Schema
type SchemaOption func(*Schema)

// WithVisibility adds conditional rendering rules
func WithVisibility(rules ...VisibilityRule) SchemaOption {
	return func(s *Schema) { s.visibility = append(s.visibility, rules...) }
}

// WithDisabling adds conditional disable rules
func WithDisabling(rules ...DisableRule) SchemaOption {
	return func(s *Schema) { s.disabling = append(s.disabling, rules...) }
}

// WithDependencies adds entries to the dependency table
func WithDependencies(deps ...Dependency) SchemaOption {
	return func(s *Schema) { s.dependencies = append(s.dependencies, deps...) }
}

// NewSchema builds a schema from its sections. It panics on duplicate
// field names or on tables referencing unknown fields, since schemas are
// defined in code.
func NewSchema(sections []Section, opts ...SchemaOption) *Schema {
	s := &Schema{
		sections: sections,
		fields:   make(map[FieldName]FieldSpec),
	}
	for _, sec := range sections {
		for _, row := range sec.Rows {
			for _, f := range row {
				if _, dup := s.fields[f.Name]; dup {
					panic(fmt.Sprintf("form: duplicate field %q", f.Name))
				}
				s.fields[f.Name] = f
				s.order = append(s.order, f.Name)
			}
		}
	}

	for _, opt := range opts {
		opt(s)
	}

	for _, r := range s.visibility {
		s.mustKnow(r.Field)
	}
	for _, r := range s.disabling {
		s.mustKnow(r.Field)
	}
	for _, d := range s.dependencies {
		s.mustKnow(d.Trigger)
		s.mustKnow(d.Affected)
	}
	return s
}

func (s *Schema) mustKnow(name FieldName) {
	if _, ok := s.fields[name]; !ok {
		panic(fmt.Sprintf("form: unknown field %q", name))
	}
}

// Field returns the spec for name
func (s *Schema) Field(name FieldName) (FieldSpec, bool) {
	f, ok := s.fields[name]
	return f, ok
}

// Fields returns every field in layout order
func (s *Schema) Fields() []FieldSpec {
	out := make([]FieldSpec, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.fields[name])
	}
	return out
}

// Names returns every field name in layout order
func (s *Schema) Names() []FieldName {
	out := make([]FieldName, len(s.order))
	copy(out, s.order)
	return out
}

// Sections returns the layout
func (s *Schema) Sections() []Section {
	return s.sections
}

// Dependencies returns the dependency table
func (s *Schema) Dependencies() []Dependency {
	return s.dependencies
}

// Defaults returns a draft holding every field's mount-time value
func (s *Schema) Defaults() Draft {
	d := make(Draft, len(s.order))
	for _, name := range s.order {
		d[name] = s.fields[name].Default()
	}
	return d
}
