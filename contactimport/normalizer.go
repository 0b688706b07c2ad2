// Package contactimport implements the contact ingestion pipeline: phone
// number normalization, bulk text parsing, and chunked spreadsheet scanning.
// The package is pure with respect to I/O; callers decide what to do with
// rejected entries and when to run capability checks.
package contactimport

import (
	"strings"
)

// CountryPlan describes the single dialing plan the console operates on.
// All canonical numbers produced by this package have the form
// "+<CallingCode><NationalLength digits>".
type CountryPlan struct {
	CallingCode    string
	NationalLength int
}

// DefaultCountryPlan is the plan used when none is configured.
var DefaultCountryPlan = CountryPlan{CallingCode: "91", NationalLength: 10}

// CanonicalLength returns the length of a fully canonical number,
// including the leading plus sign.
func (p CountryPlan) CanonicalLength() int {
	return 1 + len(p.CallingCode) + p.NationalLength
}

// IsCanonical reports whether s is already in canonical form.
func (p CountryPlan) IsCanonical(s string) bool {
	if len(s) != p.CanonicalLength() || !strings.HasPrefix(s, "+"+p.CallingCode) {
		return false
	}
	return allDigits(s[1:])
}

// Normalize converts a free-form phone number candidate into canonical form.
// Rejection is a normal outcome and is reported via the boolean, never an
// error: malformed entries are frequent in pasted and imported input.
func (p CountryPlan) Normalize(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}

	// Punctuation commonly found in formatted numbers.
	s = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "").Replace(s)

	// Keep digits and plus signs only, then collapse to a single leading
	// plus: split on '+', keep the first non-empty segment, re-prefix.
	s = keepDigitsAndPlus(s)
	if strings.Contains(s, "+") {
		seg := ""
		for _, part := range strings.Split(s, "+") {
			if part != "" {
				seg = part
				break
			}
		}
		if seg == "" {
			return "", false
		}
		s = "+" + seg
	}

	// Country-code prefix handling, longest specific case first.
	cc := p.CallingCode
	switch {
	case strings.HasPrefix(s, "+"+cc):
		s = s[1+len(cc):]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
		s = strings.TrimPrefix(s, cc)
	case strings.HasPrefix(s, cc) && len(s) > p.NationalLength:
		s = s[len(cc):]
	case strings.HasPrefix(s, "0"):
		s = s[1:]
	}

	if len(s) != p.NationalLength || !allDigits(s) {
		return "", false
	}

	return "+" + cc + s, true
}

func keepDigitsAndPlus(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if (ch >= '0' && ch <= '9') || ch == '+' {
			b.WriteByte(ch)
		}
	}
	return b.String()
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
