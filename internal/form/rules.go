package form

import (
	"encoding/json"
	"regexp"
)

// Validation messages shown next to the field
const (
	MsgRequired      = "Esse campo é obrigatório"
	MsgEmailFormat   = "Formato de e-mail inválido"
	MsgEmailMismatch = "Os e-mails não coincidem"
	MsgCPFIncomplete = "CPF deve estar completo."
)

// EmailPattern is the address format accepted by the e-mail fields
var EmailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,4}$`)

// RuleKind tags the variant held by a Rule.
type RuleKind string

const (
	RuleRequired RuleKind = "required"
	RulePattern  RuleKind = "pattern"
	RuleEquals   RuleKind = "equals"
	RuleCustom   RuleKind = "custom"
)

// Predicate reports whether v is acceptable given the whole draft.
type Predicate func(v Value, d Draft) bool

// Rule is one check attached to a field. Only the members relevant to Kind
// are set.
type Rule struct {
	Kind    RuleKind
	Message string

	// RulePattern
	Pattern *regexp.Regexp
	// RuleEquals
	Field FieldName
	// RuleCustom
	Name      string
	Predicate Predicate
}

// Required fails on empty values
func Required(message string) Rule {
	return Rule{Kind: RuleRequired, Message: message}
}

// Pattern fails on non-empty values not matched by re
func Pattern(re *regexp.Regexp, message string) Rule {
	return Rule{Kind: RulePattern, Pattern: re, Message: message}
}

// Equals fails unless the value equals the current value of field
func Equals(field FieldName, message string) Rule {
	return Rule{Kind: RuleEquals, Field: field, Message: message}
}

// Custom fails when pred returns false
func Custom(name string, pred Predicate, message string) Rule {
	return Rule{Kind: RuleCustom, Name: name, Predicate: pred, Message: message}
}

// Check evaluates the rule against v. Pattern rules skip empty values so
// that only required rules report missing input.
func (r Rule) Check(v Value, d Draft) bool {
	switch r.Kind {
	case RuleRequired:
		return !v.IsEmpty()
	case RulePattern:
		if v.IsEmpty() || r.Pattern == nil {
			return true
		}
		return r.Pattern.MatchString(v.String())
	case RuleEquals:
		return v.Equal(d.Get(r.Field))
	case RuleCustom:
		if r.Predicate == nil {
			return true
		}
		return r.Predicate(v, d)
	}
	return true
}

// MarshalJSON describes the rule for clients rendering the form.
func (r Rule) MarshalJSON() ([]byte, error) {
	out := struct {
		Kind    RuleKind  `json:"kind"`
		Message string    `json:"message"`
		Pattern string    `json:"pattern,omitempty"`
		Field   FieldName `json:"field,omitempty"`
		Name    string    `json:"name,omitempty"`
	}{
		Kind:    r.Kind,
		Message: r.Message,
		Field:   r.Field,
		Name:    r.Name,
	}
	if r.Pattern != nil {
		out.Pattern = r.Pattern.String()
	}
	return json.Marshal(out)
}

// DigitCount returns a predicate that requires exactly n slot runes in a
// masked value.
func DigitCount(mask Mask, n int) Predicate {
	return func(v Value, _ Draft) bool {
		return len([]rune(mask.Raw(v.String()))) == n
	}
}
