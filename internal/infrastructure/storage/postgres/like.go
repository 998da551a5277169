package postgres

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern returns a LIKE/ILIKE pattern matching s anywhere in a value.
// LIKE metacharacters in s match literally (backslash is the default escape).
func ContainsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
