package contactimport

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIngestRowsSkipsHeaderOnce(t *testing.T) {
	plan := DefaultCountryPlan

	rows := [][]string{
		{"Index", "Number"},
		{"1", "7201000140"},
		{"Number", "7201000141"}, // matches a header token but must not be skipped
	}

	numbers, err := plan.IngestRows(context.Background(), rows, IngestOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"+917201000140", "+917201000141"}, numbers)
}

func TestIngestRowsNoHeader(t *testing.T) {
	plan := DefaultCountryPlan

	rows := [][]string{
		{"1", "9876543210"},
		{"2", "9876543211"},
	}

	numbers, err := plan.IngestRows(context.Background(), rows, IngestOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"+919876543210", "+919876543211"}, numbers)
}

func TestIngestRowsDedupAcrossChunks(t *testing.T) {
	plan := DefaultCountryPlan

	rows := make([][]string, 0, 2500)
	for i := 0; i < 2500; i++ {
		// Only 100 distinct numbers across 2500 rows.
		rows = append(rows, []string{fmt.Sprintf("98765432%02d", i%100)})
	}

	var reports [][2]int
	numbers, err := plan.IngestRows(context.Background(), rows, IngestOptions{
		ChunkSize: 1000,
		Progress: func(scanned, total int) {
			reports = append(reports, [2]int{scanned, total})
		},
	})
	require.NoError(t, err)

	assert.Len(t, numbers, 100)
	assert.Equal(t, [][2]int{{1000, 2500}, {2000, 2500}, {2500, 2500}}, reports)

	seen := make(map[string]bool)
	for _, n := range numbers {
		assert.False(t, seen[n], "duplicate in output: %s", n)
		seen[n] = true
	}
}

func TestIngestRowsSkipsNoiseCells(t *testing.T) {
	plan := DefaultCountryPlan

	rows := [][]string{
		{"notes", "9876543210", ""},
		{"", "   ", "n/a"},
		{"9876543211", "see above"},
	}

	numbers, err := plan.IngestRows(context.Background(), rows, IngestOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"+919876543210", "+919876543211"}, numbers)
}

func TestIngestRowsCancellation(t *testing.T) {
	plan := DefaultCountryPlan

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rows := [][]string{{"9876543210"}}
	_, err := plan.IngestRows(ctx, rows, IngestOptions{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestIngestRowsAllCanonical(t *testing.T) {
	plan := DefaultCountryPlan

	rows := [][]string{
		{"1", "07201000140"},
		{"2", "+91 72010-00141"},
		{"3", "917201000142"},
	}

	numbers, err := plan.IngestRows(context.Background(), rows, IngestOptions{})
	require.NoError(t, err)
	for _, n := range numbers {
		assert.True(t, plan.IsCanonical(n), "not canonical: %s", n)
	}
	assert.Len(t, numbers, 3)
}
