package form

import "sort"

// Condition is a pure predicate over the draft.
type Condition func(d Draft) bool

// VisibilityRule renders Field only while Visible holds. Fields without a
// rule are always rendered.
type VisibilityRule struct {
	Field   FieldName
	Visible Condition
}

// DisableRule disables Field while When holds.
type DisableRule struct {
	Field FieldName
	When  Condition
}

// FieldSet is an unordered set of field names
type FieldSet map[FieldName]struct{}

// Has reports membership
func (s FieldSet) Has(name FieldName) bool {
	_, ok := s[name]
	return ok
}

// Names returns the members sorted
func (s FieldSet) Names() []FieldName {
	names := make([]FieldName, 0, len(s))
	for n := range s {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// IsIndividual holds unless the person type is an organization, so an
// unset selector shows the individual document.
func IsIndividual(d Draft) bool {
	return d.Get(FieldTipoPessoa).String() != PessoaJuridica
}

// IsOrganization holds when the person type is an organization
func IsOrganization(d Draft) bool {
	return d.Get(FieldTipoPessoa).String() == PessoaJuridica
}

// FlagSet returns a condition that holds while the toggle field is on
func FlagSet(field FieldName) Condition {
	return func(d Draft) bool {
		return d.Get(field).Bool()
	}
}

// Visible returns the fields rendered for the draft.
func Visible(s *Schema, d Draft) FieldSet {
	rules := make(map[FieldName]Condition, len(s.visibility))
	for _, r := range s.visibility {
		rules[r.Field] = r.Visible
	}

	out := make(FieldSet, len(s.order))
	for _, name := range s.order {
		if cond, ok := rules[name]; ok && !cond(d) {
			continue
		}
		out[name] = struct{}{}
	}
	return out
}

// Disabled returns the fields whose input is locked for the draft.
func Disabled(s *Schema, d Draft) FieldSet {
	out := make(FieldSet)
	for _, r := range s.disabling {
		if r.When(d) {
			out[r.Field] = struct{}{}
		}
	}
	return out
}

// Active returns the fields that are rendered and enabled. Only these are
// validated.
func Active(s *Schema, d Draft) FieldSet {
	visible := Visible(s, d)
	for name := range Disabled(s, d) {
		delete(visible, name)
	}
	return visible
}
