package contactimport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBulkFirstOccurrenceWins(t *testing.T) {
	plan := DefaultCountryPlan

	input := "John,9876543210\n9876543210\nJane,+919876543210"
	entries := plan.ParseBulk(input)

	assert.Len(t, entries, 1)
	assert.Equal(t, "John", entries[0].Name)
	assert.Equal(t, "+919876543210", entries[0].Number)
}

func TestParseBulkDropsInvalidLines(t *testing.T) {
	plan := DefaultCountryPlan

	entries := plan.ParseBulk("012345")
	assert.Empty(t, entries)

	entries = plan.ParseBulk("\n\n   \n")
	assert.Empty(t, entries)
}

func TestParseBulkPreservesOrder(t *testing.T) {
	plan := DefaultCountryPlan

	input := "c,9876543212\na,9876543210\nb,9876543211\nbad-line\na2,09876543210"
	entries := plan.ParseBulk(input)

	assert.Len(t, entries, 3)
	assert.Equal(t, "+919876543212", entries[0].Number)
	assert.Equal(t, "+919876543210", entries[1].Number)
	assert.Equal(t, "+919876543211", entries[2].Number)

	// Dedup invariant: no two entries share a canonical number.
	seen := make(map[string]bool)
	for _, e := range entries {
		assert.False(t, seen[e.Number])
		seen[e.Number] = true
	}
}

func TestParseBulkBareNumbersHaveEmptyName(t *testing.T) {
	plan := DefaultCountryPlan

	entries := plan.ParseBulk("  9876543210  ")
	assert.Len(t, entries, 1)
	assert.Equal(t, "", entries[0].Name)
	assert.Equal(t, "+919876543210", entries[0].Number)
}
