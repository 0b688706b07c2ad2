package contactimport

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	plan := DefaultCountryPlan

	cases := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"bare national", "9876543210", "+919876543210", true},
		{"canonical passthrough", "+919876543210", "+919876543210", true},
		{"bare with country code", "919876543210", "+919876543210", true},
		{"plus without country code", "+9876543210", "+919876543210", true},
		{"leading zero", "09876543210", "+919876543210", true},
		{"spaces and hyphens", " 98765-432 10 ", "+919876543210", true},
		{"parens and dots", "(987)654.3210", "+919876543210", true},
		{"interior plus keeps first segment", "+919876543210+99", "+919876543210", true},
		{"letters mixed with digits", "call 9876543210", "+919876543210", true},
		{"too short", "012345", "", false},
		{"too long", "98765432101", "", false},
		{"empty", "   ", "", false},
		{"no digits", "hello", "", false},
		{"only plus signs", "+++", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := plan.Normalize(tc.input)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	plan := DefaultCountryPlan

	inputs := []string{"9876543210", "+919876543210", "09876543210", "919876543210"}
	for _, input := range inputs {
		first, ok := plan.Normalize(input)
		assert.True(t, ok)

		second, ok := plan.Normalize(first)
		assert.True(t, ok)
		assert.Equal(t, first, second)
	}
}

func TestNormalizeOtherPlan(t *testing.T) {
	plan := CountryPlan{CallingCode: "7", NationalLength: 10}

	got, ok := plan.Normalize("+7 (912) 345-67-89")
	assert.True(t, ok)
	assert.Equal(t, "+79123456789", got)
	assert.Len(t, got, plan.CanonicalLength())
}

func TestIsCanonical(t *testing.T) {
	plan := DefaultCountryPlan

	assert.True(t, plan.IsCanonical("+919876543210"))
	assert.False(t, plan.IsCanonical("9876543210"))
	assert.False(t, plan.IsCanonical("+91987654321"))
	assert.False(t, plan.IsCanonical("+91987654321a"))
}
