package contactimport

import (
	"context"
	"strings"
)

// DefaultChunkSize is the number of rows scanned between cancellation checks
// and progress reports.
const DefaultChunkSize = 1000

// IngestOptions controls the chunked row scan.
type IngestOptions struct {
	// ChunkSize bounds how many rows are scanned between yields.
	// Zero means DefaultChunkSize.
	ChunkSize int
	// Progress, when set, is invoked after every chunk with the number of
	// rows scanned so far and the total row count.
	Progress func(scanned, total int)
}

// IngestRows scans a spreadsheet-shaped input (rows of cells) and returns the
// deduplicated canonical numbers found in it, in first-seen order. The scan
// runs in fixed-size chunks with a cancellation check between chunks so large
// imports can be offloaded to a background goroutine and cancelled or
// progress-reported at deterministic boundaries.
//
// A header row is detected at most once, on the first non-empty row: when its
// first cell contains "index", "sn", "number", or "name" (case-insensitive)
// the row is skipped. All dedup state is local to the call.
func (p CountryPlan) IngestRows(ctx context.Context, rows [][]string, opts IngestOptions) ([]string, error) {
	chunkSize := opts.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}

	numbers := make([]string, 0)
	seen := make(map[string]struct{})
	headerChecked := false

	total := len(rows)
	for start := 0; start < total; start += chunkSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := start + chunkSize
		if end > total {
			end = total
		}

		for _, row := range rows[start:end] {
			if rowEmpty(row) {
				continue
			}

			if !headerChecked {
				headerChecked = true
				if isHeaderCell(row[0]) {
					continue
				}
			}

			for _, cell := range row {
				candidate := strings.TrimSpace(cell)
				if candidate == "" {
					continue
				}
				// Short cells with no digits at all are header or text
				// noise, not malformed numbers.
				if keepDigitsAndPlus(candidate) == "" {
					continue
				}

				number, ok := p.Normalize(candidate)
				if !ok {
					rejectedTotal.Inc()
					continue
				}
				if _, dup := seen[number]; dup {
					continue
				}
				seen[number] = struct{}{}
				parsedTotal.Inc()
				numbers = append(numbers, number)
			}
		}

		if opts.Progress != nil {
			opts.Progress(end, total)
		}
	}

	return numbers, nil
}

var headerTokens = []string{"index", "sn", "number", "name"}

func isHeaderCell(cell string) bool {
	lowered := strings.ToLower(strings.TrimSpace(cell))
	if lowered == "" {
		return false
	}
	for _, token := range headerTokens {
		if strings.Contains(lowered, token) {
			return true
		}
	}
	return false
}

func rowEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
