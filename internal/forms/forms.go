// Package forms holds the CRUD modal controllers: one form type per
// entity, operating in create mode (zero defaults) or edit mode
// (pre-filled from an existing record). Validation runs entirely
// locally; the network is never touched while a form is invalid.
package forms

import (
	"regexp"
	"strings"
)

// Errors maps field name to a human-readable validation message
type Errors map[string]string

// Any reports whether at least one field failed validation
func (e Errors) Any() bool {
	return len(e) > 0
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// validEmail is a shape check, not RFC verification; the server
// performs the authoritative uniqueness/validity checks.
func validEmail(s string) bool {
	return emailPattern.MatchString(s)
}

var (
	slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)
	slugHyphens = regexp.MustCompile(`-{2,}`)
)

// Slugify derives a URL slug from a title: lowercase, alphanumeric
// runs joined by single hyphens. Anything outside [a-z0-9], accented
// letters included, acts as a separator.
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = slugInvalid.ReplaceAllString(s, "-")
	s = slugHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SplitTags converts the comma-joined edit representation to the wire
// list: trimmed, empties dropped, order preserved.
func SplitTags(input string) []string {
	parts := strings.Split(input, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if tag := strings.TrimSpace(p); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// JoinTags converts the wire list back to the edit representation
func JoinTags(tags []string) string {
	return strings.Join(tags, ", ")
}
