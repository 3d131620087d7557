package emit

import (
	"strings"
	"unicode"
)

// Common initialisms rendered in full caps, per Go convention.
var initialisms = map[string]string{
	"id":   "ID",
	"url":  "URL",
	"uri":  "URI",
	"api":  "API",
	"html": "HTML",
	"json": "JSON",
	"http": "HTTP",
}

// ExportName converts a spec attribute name ("dateCreated", "parent_id",
// "Audit Status") into an exported Go identifier ("DateCreated", "ParentID",
// "AuditStatus").
func ExportName(attr string) string {
	var sb strings.Builder
	for _, w := range splitWords(attr) {
		lower := strings.ToLower(w)
		if init, ok := initialisms[lower]; ok {
			sb.WriteString(init)
			continue
		}
		r := []rune(lower)
		r[0] = unicode.ToUpper(r[0])
		sb.WriteString(string(r))
	}
	return sb.String()
}

// splitWords breaks an identifier on separators and lower-to-upper camel
// boundaries, dropping any non-alphanumeric runes.
func splitWords(s string) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}
	var prev rune
	for _, r := range s {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
		case unicode.IsUpper(r) && unicode.IsLower(prev):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
		prev = r
	}
	flush()
	return words
}
