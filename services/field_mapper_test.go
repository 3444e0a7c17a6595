package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testCandidate() *Candidate {
	return &Candidate{
		FullName:    "Jane Q. Public",
		Email:       "jane@example.com",
		Phone:       "(555) 123-4567",
		City:        "Portland",
		State:       "OR",
		ZipCode:     "97201",
		Address:     "123 Main St",
		LinkedInURL: "https://linkedin.com/in/janeqpublic",
	}
}

func TestMapField_NameSplitting(t *testing.T) {
	c := testCandidate()

	first, ok := MapField("First Name", c)
	assert.True(t, ok)
	assert.Equal(t, "Jane", first)

	last, ok := MapField("Last Name", c)
	assert.True(t, ok)
	assert.Equal(t, "Q. Public", last)

	full, ok := MapField("Full Name", c)
	assert.True(t, ok)
	assert.Equal(t, "Jane Q. Public", full)

	// Bare "name" falls through to the full name.
	name, ok := MapField("Your name", c)
	assert.True(t, ok)
	assert.Equal(t, "Jane Q. Public", name)
}

func TestMapField_ContactFields(t *testing.T) {
	c := testCandidate()

	tests := []struct {
		label string
		want  string
	}{
		{"Email address", "jane@example.com"},
		{"Phone number", "(555) 123-4567"},
		{"City", "Portland"},
		{"State", "OR"},
		{"Zip code", "97201"},
		{"LinkedIn profile", "https://linkedin.com/in/janeqpublic"},
		{"Personal website", "https://linkedin.com/in/janeqpublic"},
		{"Street address", "123 Main St"},
	}

	for _, tt := range tests {
		got, ok := MapField(tt.label, c)
		assert.True(t, ok, "label %q should match", tt.label)
		assert.Equal(t, tt.want, got, "label %q", tt.label)
	}
}

func TestMapField_NoMatch(t *testing.T) {
	c := testCandidate()

	_, ok := MapField("Favorite Color", c)
	assert.False(t, ok)

	_, ok = MapField(UnknownFieldLabel, c)
	assert.False(t, ok)
}

func TestMapField_NormalizesLabel(t *testing.T) {
	c := testCandidate()

	got, ok := MapField("  FIRST NAME  ", c)
	assert.True(t, ok)
	assert.Equal(t, "Jane", got)
}

func TestMapField_EmptyValuesFallThrough(t *testing.T) {
	// A matching pattern with an empty value keeps scanning: a single-token
	// full name has no last-name remainder, so "Last Name" falls through to
	// the looser "name" pattern and yields the full name.
	got, ok := MapField("Last Name", &Candidate{FullName: "Jane"})
	assert.True(t, ok)
	assert.Equal(t, "Jane", got)

	// Nothing looser matches "Email", so an empty email stays a no-match.
	_, ok = MapField("Email", &Candidate{FullName: "Jane Q. Public"})
	assert.False(t, ok)
}

func TestMapField_Deterministic(t *testing.T) {
	c := testCandidate()
	first1, _ := MapField("First Name", c)
	first2, _ := MapField("First Name", c)
	assert.Equal(t, first1, first2)
}

func TestMapField_NilCandidate(t *testing.T) {
	_, ok := MapField("First Name", nil)
	assert.False(t, ok)
}
