package report

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryGet(t *testing.T) {
	r := NewRegistry()

	t.Run("returns descriptor for known id", func(t *testing.T) {
		d, ok := r.Get("1.3")
		require.True(t, ok)
		assert.Equal(t, "Employee Details", d.Title)
		assert.Equal(t, SourceEmployees, d.DataSource)
		assert.Equal(t, FormatTable, d.Format)
	})

	t.Run("returns false for unknown id", func(t *testing.T) {
		_, ok := r.Get("9.9")
		assert.False(t, ok)
	})
}

func TestRegistryList(t *testing.T) {
	r := NewRegistry()
	sections := r.List()

	require.NotEmpty(t, sections)

	t.Run("every id is unique", func(t *testing.T) {
		seen := make(map[string]bool)
		for _, s := range sections {
			assert.False(t, seen[s.ID], "duplicate section id %s", s.ID)
			seen[s.ID] = true
		}
	})

	t.Run("every section has fields and a title", func(t *testing.T) {
		for _, s := range sections {
			assert.NotEmpty(t, s.Fields, "section %s has no fields", s.ID)
			assert.NotEmpty(t, s.Title, "section %s has no title", s.ID)
			assert.NotEmpty(t, s.DataSource, "section %s has no data source", s.ID)
		}
	})

	t.Run("grouped sections declare a grouping column", func(t *testing.T) {
		for _, s := range sections {
			if s.Format != FormatGroupedTable {
				continue
			}
			require.NotEmpty(t, s.GroupBy, "section %s", s.ID)
			assert.Contains(t, s.Columns(), s.GroupBy, "section %s grouping column must be a declared field", s.ID)
		}
	})

	t.Run("list returns a copy", func(t *testing.T) {
		first := r.List()
		first[0].Title = "mutated"
		again := r.List()
		assert.NotEqual(t, "mutated", again[0].Title)
	})
}

func TestRegistryValidateIDs(t *testing.T) {
	r := NewRegistry()

	t.Run("all known ids pass", func(t *testing.T) {
		assert.NoError(t, r.ValidateIDs([]string{"1.1", "1.3", "2.1"}))
	})

	t.Run("unknown ids are enumerated", func(t *testing.T) {
		err := r.ValidateIDs([]string{"1.3", "9.9", "0.0"})
		require.Error(t, err)

		var unknown *UnknownSectionsError
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, []string{"9.9", "0.0"}, unknown.IDs)
	})

	t.Run("empty list passes", func(t *testing.T) {
		assert.NoError(t, r.ValidateIDs(nil))
	})
}
