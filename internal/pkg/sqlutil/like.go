package sqlutil

import "strings"

// likeEscaper escapes the LIKE metacharacters using backslash.
// Queries must declare ESCAPE '\'.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// PrefixPattern returns a LIKE pattern matching values that start with s.
// Only the trailing wildcard is special.
func PrefixPattern(s string) string {
	return likeEscaper.Replace(s) + "%"
}
