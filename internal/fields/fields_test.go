package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFlipsExactlyOne(t *testing.T) {
	s := NewSelection()
	require.NoError(t, s.Toggle("phone"))

	assert.True(t, s.Selected("phone"))
	for _, k := range Keys {
		if k == "phone" {
			continue
		}
		assert.False(t, s.Selected(k), "key %s should be untouched", k)
	}
}

func TestToggleUnknownKey(t *testing.T) {
	s := NewSelection()
	err := s.Toggle("ssn")
	require.ErrorIs(t, err, ErrUnknownField)
}

func TestToggleAllFromPartial(t *testing.T) {
	s := NewSelection()
	require.NoError(t, s.Toggle("name"))
	require.NoError(t, s.Toggle("email"))

	// Partially selected: first invocation collapses to none.
	s.ToggleAll()
	assert.Equal(t, 0, s.Count())

	s.ToggleAll()
	assert.Equal(t, len(Keys), s.Count())
	assert.True(t, s.AllSelected())
}

func TestToggleAllRoundTrip(t *testing.T) {
	s := NewSelection()
	s.ToggleAll()
	s.ToggleAll()
	assert.Equal(t, 0, s.Count())
	assert.False(t, s.AllSelected())
}

func TestActiveCategoriesMatchesCount(t *testing.T) {
	s := NewSelection()
	require.NoError(t, s.Toggle("name"))
	require.NoError(t, s.Toggle("nric"))
	require.NoError(t, s.Toggle("mcr"))

	cats, err := s.ActiveCategories()
	require.NoError(t, err)
	assert.Len(t, cats, s.Count())
	assert.Equal(t, []Category{CategoryPerson, CategoryNRIC, CategoryMCR}, cats)
}

func TestActiveCategoriesEmpty(t *testing.T) {
	s := NewSelection()
	_, err := s.ActiveCategories()
	require.ErrorIs(t, err, ErrNoFields)
}

func TestEveryKeyHasCategory(t *testing.T) {
	s := NewSelection()
	s.ToggleAll()
	cats, err := s.ActiveCategories()
	require.NoError(t, err)
	assert.Len(t, cats, len(Keys))
}

func TestLabel(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"name", "Name"},
		{"id_number", "Id Number"},
		{"dob", "Dob"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Label(tc.key))
	}
}
