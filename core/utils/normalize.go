package utils

import "strings"

// CollapseSpaces trims leading and trailing whitespace and collapses internal runs to one space.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Normalize applies whitespace collapsing and case folding according to flags.
func Normalize(val string, trim bool, caseInsensitive bool) string {
	if trim {
		val = CollapseSpaces(val)
	}
	if caseInsensitive {
		val = strings.ToLower(val)
	}
	return val
}
