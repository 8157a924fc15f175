package form

// ValidateField runs the rules of one field in order and returns the
// message of the first failure, or "" when the value passes.
func ValidateField(s *Schema, name FieldName, d Draft) string {
	spec, ok := s.Field(name)
	if !ok {
		return ""
	}
	v := d.Get(name)
	for _, r := range spec.Rules {
		if !r.Check(v, d) {
			return r.Message
		}
	}
	return ""
}

// Validate checks every active field of the draft. Hidden and disabled
// fields are skipped.
func Validate(s *Schema, d Draft) Errors {
	errs := make(Errors)
	active := Active(s, d)
	for _, name := range s.order {
		if !active.Has(name) {
			continue
		}
		if msg := ValidateField(s, name, d); msg != "" {
			errs[name] = msg
		}
	}
	return errs
}
