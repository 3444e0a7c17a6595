package services

import "strings"

// Candidate is the read-only slice of the user's profile consumed by the
// field mapper. Populated from the users table by the controllers.
type Candidate struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zip_code"`
	Address     string `json:"address"`
	LinkedInURL string `json:"linkedin_url"`
}

func (c *Candidate) firstName() string {
	parts := strings.Fields(c.FullName)
	if len(parts) == 0 {
		return ""
	}
	return parts[0]
}

func (c *Candidate) lastName() string {
	parts := strings.Fields(c.FullName)
	if len(parts) < 2 {
		return ""
	}
	return strings.Join(parts[1:], " ")
}

type fieldMapping struct {
	pattern string
	value   func(c *Candidate) string
}

// Order matters: "first name" and "last name" must win before the bare
// "name" pattern matches.
var fieldMappings = []fieldMapping{
	{"first name", (*Candidate).firstName},
	{"last name", (*Candidate).lastName},
	{"full name", func(c *Candidate) string { return c.FullName }},
	{"name", func(c *Candidate) string { return c.FullName }},
	{"email", func(c *Candidate) string { return c.Email }},
	{"phone", func(c *Candidate) string { return c.Phone }},
	{"city", func(c *Candidate) string { return c.City }},
	{"state", func(c *Candidate) string { return c.State }},
	{"zip", func(c *Candidate) string { return c.ZipCode }},
	{"linkedin", func(c *Candidate) string { return c.LinkedInURL }},
	{"website", func(c *Candidate) string { return c.LinkedInURL }},
	{"address", func(c *Candidate) string { return c.Address }},
}

// MapField maps a form field label to a candidate value. Pure: lower-cases
// and trims the label, walks the pattern table in order and returns the
// first non-empty match. A matching pattern whose value is empty keeps
// scanning, so a looser pattern further down can still answer.
func MapField(label string, c *Candidate) (string, bool) {
	if c == nil {
		return "", false
	}
	normalized := strings.ToLower(strings.TrimSpace(label))
	for _, mapping := range fieldMappings {
		if strings.Contains(normalized, mapping.pattern) {
			if value := mapping.value(c); value != "" {
				return value, true
			}
		}
	}
	return "", false
}
