package common

import "strings"

// IsBlank reports whether s is empty after trimming whitespace.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// NormalizeLocation trims s and collapses inner runs of whitespace, so
// "  New   York " is submitted as "New York".
func NormalizeLocation(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
