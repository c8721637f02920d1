package domain

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Text is a JSON scalar decoded leniently. Strings are kept as-is, numbers
// keep their literal form and anything else decodes to "".
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Text(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*t = Text(n.String())
		return nil
	}
	*t = ""
	return nil
}

func (t Text) String() string {
	return string(t)
}

func (t Text) Trimmed() string {
	return strings.TrimSpace(string(t))
}

// Lenient wraps a nested JSON value. A value that does not fit T leaves
// Valid false instead of failing the whole document.
type Lenient[T any] struct {
	Value T
	Valid bool
}

func (l *Lenient[T]) UnmarshalJSON(data []byte) error {
	*l = Lenient[T]{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	l.Value, l.Valid = v, true
	return nil
}

func (l Lenient[T]) MarshalJSON() ([]byte, error) {
	if !l.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(l.Value)
}

// Some wraps v as a valid Lenient value.
func Some[T any](v T) Lenient[T] {
	return Lenient[T]{Value: v, Valid: true}
}

func firstNonEmpty(values ...Text) string {
	for _, v := range values {
		if v != "" {
			return string(v)
		}
	}
	return ""
}

// FullName joins trimmed first and last names with a single space.
func FullName(first, last Text) string {
	parts := make([]string, 0, 2)
	if f := first.Trimmed(); f != "" {
		parts = append(parts, f)
	}
	if l := last.Trimmed(); l != "" {
		parts = append(parts, l)
	}
	return strings.Join(parts, " ")
}
