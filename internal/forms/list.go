package forms

import (
	"encoding/json"
	"strings"
)

// List is an ordered, editable list of strings backing a repeated form input.
// A positive max stops appends once the list is full.
type List struct {
	items []string
	max   int
}

func NewList(max int, values ...string) List {
	l := List{max: max}
	l.Set(values)
	return l
}

// Append adds value to the end of the list. Blank values and appends past the
// limit are ignored.
func (l *List) Append(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	if l.max > 0 && len(l.items) >= l.max {
		return false
	}
	l.items = append(l.items, value)
	return true
}

// RemoveAt drops the value at index i; out of range indexes are ignored.
func (l *List) RemoveAt(i int) bool {
	if i < 0 || i >= len(l.items) {
		return false
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	return true
}

// Set replaces the contents, applying the same rules as Append.
func (l *List) Set(values []string) {
	l.items = nil
	for _, v := range values {
		l.Append(v)
	}
}

// Values returns a copy of the contents; it is never nil.
func (l List) Values() []string {
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}

func (l List) Len() int { return len(l.items) }

func (l List) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Values())
}

func (l *List) UnmarshalJSON(b []byte) error {
	var values []string
	if err := json.Unmarshal(b, &values); err != nil {
		return err
	}
	l.Set(values)
	return nil
}
