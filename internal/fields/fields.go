// Package fields models the redaction checklist: the fixed set of
// user-facing field toggles and their mapping to the canonical category
// identifiers the redaction service understands.
package fields

import (
	"errors"
	"fmt"
	"strings"
)

// Category is a canonical sensitive-data class as the service names it.
type Category string

const (
	CategoryPerson   Category = "PERSON"
	CategoryPhone    Category = "PHONE"
	CategoryDate     Category = "DATE"
	CategoryAddress  Category = "ADDRESS"
	CategoryNRIC     Category = "NRIC/FIN"
	CategoryMCR      Category = "MCR no."
	CategoryEmail    Category = "EMAIL"
	CategoryIDNumber Category = "ID_NUMBER"
)

// Keys lists every toggle key in display order. The set is fixed for the
// lifetime of a Selection; it never grows or shrinks.
var Keys = []string{"name", "phone", "dob", "address", "nric", "mcr", "email", "id_number"}

var categoryByKey = map[string]Category{
	"name":      CategoryPerson,
	"phone":     CategoryPhone,
	"dob":       CategoryDate,
	"address":   CategoryAddress,
	"nric":      CategoryNRIC,
	"mcr":       CategoryMCR,
	"email":     CategoryEmail,
	"id_number": CategoryIDNumber,
}

var (
	ErrUnknownField = errors.New("unknown field")
	ErrNoFields     = errors.New("no fields selected")
)

// Selection tracks which fields are checked.
type Selection struct {
	on map[string]bool
}

// NewSelection returns a Selection with every field unchecked.
func NewSelection() *Selection {
	on := make(map[string]bool, len(Keys))
	for _, k := range Keys {
		on[k] = false
	}
	return &Selection{on: on}
}

// Toggle flips a single field and leaves the rest untouched.
func (s *Selection) Toggle(key string) error {
	if _, ok := s.on[key]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownField, key)
	}
	s.on[key] = !s.on[key]
	return nil
}

// Selected reports whether a field is currently checked.
func (s *Selection) Selected(key string) bool {
	return s.on[key]
}

// AllSelected is true iff every field is checked. It is recomputed on
// every call rather than cached.
func (s *Selection) AllSelected() bool {
	for _, k := range Keys {
		if !s.on[k] {
			return false
		}
	}
	return true
}

// ToggleAll sets every field to the negation of the current all-selected
// predicate, so a partially checked set collapses to none first.
func (s *Selection) ToggleAll() {
	next := !s.AllSelected()
	for _, k := range Keys {
		s.on[k] = next
	}
}

// Count returns the number of checked fields.
func (s *Selection) Count() int {
	n := 0
	for _, k := range Keys {
		if s.on[k] {
			n++
		}
	}
	return n
}

// ActiveCategories maps the checked fields to their canonical categories.
// It returns ErrNoFields when nothing is checked and fails outright if a
// key is missing from the category table.
func (s *Selection) ActiveCategories() ([]Category, error) {
	var cats []Category
	for _, k := range Keys {
		if !s.on[k] {
			continue
		}
		c, ok := categoryByKey[k]
		if !ok {
			return nil, fmt.Errorf("field %q has no category mapping", k)
		}
		cats = append(cats, c)
	}
	if len(cats) == 0 {
		return nil, ErrNoFields
	}
	return cats, nil
}

// Label renders a field key for display: underscores become spaces and
// each word is capitalized ("id_number" -> "Id Number").
func Label(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
