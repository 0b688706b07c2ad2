package contactimport

import (
	"strings"
)

// ParsedEntry is one valid line of manual import input. Name is optional and
// empty when the line carried a bare number.
type ParsedEntry struct {
	Name   string
	Number string
}

// ParseBulk parses textarea-style input: one entry per line, either
// "name,number" or a bare number. Lines that do not normalize are dropped.
// Within a single call the first entry with a given canonical number wins;
// later duplicates are dropped even when they carry a different name.
// Output order matches first-occurrence order of the input.
func (p CountryPlan) ParseBulk(raw string) []ParsedEntry {
	entries := make([]ParsedEntry, 0)
	seen := make(map[string]struct{})

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		name := ""
		candidate := line
		if idx := strings.Index(line, ","); idx >= 0 {
			name = strings.TrimSpace(line[:idx])
			candidate = line[idx+1:]
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
		entries = append(entries, ParsedEntry{Name: name, Number: number})
	}

	return entries
}
