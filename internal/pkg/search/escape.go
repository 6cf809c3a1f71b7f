// Package search holds helpers for building LIKE patterns from user input.
package search

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes the LIKE wildcards in s so it matches literally.
// Backslash is PostgreSQL's default LIKE escape character.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// PrefixPattern returns a case-folded LIKE pattern matching values that start with prefix.
// The column side must be compared with lower(...).
func PrefixPattern(prefix string) string {
	return EscapeLike(strings.ToLower(prefix)) + "%"
}
