package form

import "unicode"

// Mask is a fixed input pattern. In the pattern, 9 accepts a digit, a
// accepts a letter and * accepts either; any other rune is a literal that
// is inserted as the user types.
type Mask string

func isSlot(p rune) bool {
	return p == '9' || p == 'a' || p == '*'
}

func slotAccepts(p, r rune) bool {
	switch p {
	case '9':
		return r >= '0' && r <= '9'
	case 'a':
		return unicode.IsLetter(r)
	case '*':
		return (r >= '0' && r <= '9') || unicode.IsLetter(r)
	}
	return false
}

// Apply formats input through the mask. Runes that do not fit the next
// slot are dropped, literals are emitted only ahead of a filled slot and
// input beyond the last slot is discarded. Apply is idempotent.
func (m Mask) Apply(input string) string {
	if m == "" {
		return input
	}

	in := []rune(input)
	out := make([]rune, 0, len(m))
	var pending []rune
	i := 0

	for _, p := range string(m) {
		if !isSlot(p) {
			pending = append(pending, p)
			continue
		}
		for i < len(in) && !slotAccepts(p, in[i]) {
			i++
		}
		if i >= len(in) {
			break
		}
		out = append(out, pending...)
		pending = pending[:0]
		out = append(out, in[i])
		i++
	}

	return string(out)
}

// Raw returns only the runes the user typed into slots
func (m Mask) Raw(value string) string {
	if m == "" {
		return value
	}

	pattern := []rune(string(m))
	formatted := []rune(m.Apply(value))
	raw := make([]rune, 0, len(formatted))
	for i, r := range formatted {
		if isSlot(pattern[i]) {
			raw = append(raw, r)
		}
	}
	return string(raw)
}

// Placeholder renders the mask with underscores in every slot
func (m Mask) Placeholder() string {
	out := []rune(string(m))
	for i, p := range out {
		if isSlot(p) {
			out[i] = '_'
		}
	}
	return string(out)
}
