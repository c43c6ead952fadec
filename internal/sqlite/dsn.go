package sqlite

import (
	"fmt"
	"strings"
)

// pragma represents a SQLite pragma setting applied to every connection.
type pragma struct {
	name  string
	value string
}

// storePragmas are applied through the DSN so a reopened handle gets the same
// settings as the first one.
var storePragmas = []pragma{
	{name: "foreign_keys", value: "ON"},
	{name: "busy_timeout", value: "5000"},
	{name: "journal_mode", value: "WAL"},
	{name: "synchronous", value: "NORMAL"},
}

// uriPathEscaper percent-encodes the characters that would end the path of a
// file: URI. SQLite decodes them back when it opens the file.
var uriPathEscaper = strings.NewReplacer("%", "%25", "?", "%3F", "#", "%23")

// buildDSN constructs a DSN for modernc.org/sqlite.
// modernc uses the syntax: file:path?_pragma=name(value)&_pragma=name2(value2)
func buildDSN(path string, pragmas []pragma) string {
	var sb strings.Builder
	sb.WriteString("file:")
	sb.WriteString(uriPathEscaper.Replace(path))
	for i, p := range pragmas {
		if i == 0 {
			sb.WriteString("?")
		} else {
			sb.WriteString("&")
		}
		fmt.Fprintf(&sb, "_pragma=%s(%s)", p.name, p.value)
	}
	return sb.String()
}
