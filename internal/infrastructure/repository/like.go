// Package repository contains the GORM-backed repository implementations.
package repository

import "strings"

// likeEscapeChar is used in every LIKE clause instead of the backslash, which
// MySQL and SQLite treat differently inside string literals.
const likeEscapeChar = "!"

// escapeLike escapes the LIKE metacharacters so a search term containing
// % or _ matches literally instead of as a pattern. The escape character
// itself is escaped first.
func escapeLike(term string) string {
	term = strings.ReplaceAll(term, likeEscapeChar, likeEscapeChar+likeEscapeChar)
	term = strings.ReplaceAll(term, "%", likeEscapeChar+"%")
	term = strings.ReplaceAll(term, "_", likeEscapeChar+"_")
	return term
}
