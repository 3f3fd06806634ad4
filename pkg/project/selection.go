package project

import (
	"encoding/json"
	"slices"
)

// Selection is an ordered set of identifiers. Insertion order is preserved
// and an identifier appears at most once.
//
// The zero value is an empty selection ready to use.
type Selection struct {
	ids []string
}

// NewSelection builds a selection from ids, dropping repeats.
func NewSelection(ids ...string) Selection {
	var s Selection
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add appends id unless it is already selected.
// It reports whether the selection changed.
func (s *Selection) Add(id string) bool {
	if s.Has(id) {
		return false
	}
	s.ids = append(s.ids, id)
	return true
}

// Remove drops id from the selection.
// It reports whether the selection changed; removing an absent id is a no-op.
func (s *Selection) Remove(id string) bool {
	n := len(s.ids)
	s.ids = slices.DeleteFunc(s.ids, func(v string) bool { return v == id })
	return len(s.ids) != n
}

// Has reports whether id is selected.
func (s Selection) Has(id string) bool {
	return slices.Contains(s.ids, id)
}

// Len returns the number of selected identifiers.
func (s Selection) Len() int {
	return len(s.ids)
}

// IDs returns a copy of the selected identifiers in insertion order.
func (s Selection) IDs() []string {
	return slices.Clone(s.ids)
}

// Clear empties the selection.
func (s *Selection) Clear() {
	s.ids = nil
}

// MarshalJSON encodes the selection as a JSON array; empty selections
// encode as [] rather than null.
func (s Selection) MarshalJSON() ([]byte, error) {
	if s.ids == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.ids)
}

// UnmarshalJSON decodes a JSON array, dropping repeated identifiers.
func (s *Selection) UnmarshalJSON(b []byte) error {
	var ids []string
	if err := json.Unmarshal(b, &ids); err != nil {
		return err
	}
	*s = NewSelection(ids...)
	return nil
}
