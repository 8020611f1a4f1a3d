package influx

import (
	"strings"
)

var identEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

var stringEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`)

// QuoteIdent wraps a user-supplied identifier (database, measurement, or
// policy name) in double quotes with internal quotes escaped, making it safe
// to embed in a statement string. Embedding an unquoted identifier is an
// injection risk, not a style issue.
func QuoteIdent(name string) string {
	return `"` + identEscaper.Replace(name) + `"`
}

// QuoteString wraps a user-supplied value in single quotes with internal
// quotes escaped, for use in statement predicates.
func QuoteString(value string) string {
	return `'` + stringEscaper.Replace(value) + `'`
}
