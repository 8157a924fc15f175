package form

import (
	"encoding/json"
	"strings"
	"time"
)

// DateLayout is the display format used by the birth date picker.
const DateLayout = "02/01/2006"

// ValueKind identifies what a draft slot holds.
type ValueKind int

const (
	// ValueText holds plain, selected or masked text
	ValueText ValueKind = iota
	// ValueFlag holds a toggle state
	ValueFlag
	// ValueDate holds an optional calendar date
	ValueDate
)

func (k ValueKind) String() string {
	switch k {
	case ValueFlag:
		return "flag"
	case ValueDate:
		return "date"
	default:
		return "text"
	}
}

// Value is the current content of one form field.
// The zero Value is empty text.
type Value struct {
	kind ValueKind
	text string
	flag bool
	date time.Time
	set  bool
}

// Text returns a text value
func Text(s string) Value {
	return Value{kind: ValueText, text: s}
}

// Flag returns a toggle value
func Flag(b bool) Value {
	return Value{kind: ValueFlag, flag: b}
}

// Date returns a date value truncated to the day
func Date(t time.Time) Value {
	y, m, d := t.Date()
	return Value{kind: ValueDate, date: time.Date(y, m, d, 0, 0, 0, 0, time.UTC), set: true}
}

// NoDate returns an unset date value
func NoDate() Value {
	return Value{kind: ValueDate}
}

// Kind reports what the value holds
func (v Value) Kind() ValueKind {
	return v.kind
}

// String renders the value the way an input would display it.
func (v Value) String() string {
	switch v.kind {
	case ValueFlag:
		if v.flag {
			return "true"
		}
		return "false"
	case ValueDate:
		if !v.set {
			return ""
		}
		return v.date.Format(DateLayout)
	default:
		return v.text
	}
}

// Bool returns the toggle state; false for non-flag values
func (v Value) Bool() bool {
	return v.kind == ValueFlag && v.flag
}

// Time returns the date and whether one is set
func (v Value) Time() (time.Time, bool) {
	if v.kind != ValueDate || !v.set {
		return time.Time{}, false
	}
	return v.date, true
}

// IsEmpty reports whether a required rule would reject the value.
func (v Value) IsEmpty() bool {
	switch v.kind {
	case ValueFlag:
		return !v.flag
	case ValueDate:
		return !v.set
	default:
		return strings.TrimSpace(v.text) == ""
	}
}

// Equal compares kind and content
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case ValueFlag:
		return v.flag == o.flag
	case ValueDate:
		return v.set == o.set && v.date.Equal(o.date)
	default:
		return v.text == o.text
	}
}

// MarshalJSON encodes text as a string, flags as booleans and dates as
// ISO dates (null when unset).
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ValueFlag:
		return json.Marshal(v.flag)
	case ValueDate:
		if !v.set {
			return []byte("null"), nil
		}
		return json.Marshal(v.date.Format("2006-01-02"))
	default:
		return json.Marshal(v.text)
	}
}

// Draft maps every field of a form to its current value.
type Draft map[FieldName]Value

// Get returns the value for name, or empty text when absent
func (d Draft) Get(name FieldName) Value {
	return d[name]
}

// Clone returns an independent copy
func (d Draft) Clone() Draft {
	out := make(Draft, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
