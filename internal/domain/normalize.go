package domain

import "strings"

// NormalizeHumanName trims leading/trailing whitespace and collapses internal whitespace runs.
// It is used for team name normalization.
func NormalizeHumanName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// HasText reports whether s is non-nil and contains at least one non-whitespace character.
func HasText(s *string) bool {
	return s != nil && strings.TrimSpace(*s) != ""
}
