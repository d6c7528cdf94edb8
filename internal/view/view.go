// Package view holds the HTML-producing helpers shared by templates.
// Everything that turns server- or user-supplied text into markup goes
// through here so escaping stays in one place.
package view

import (
	"html/template"
	"strings"

	"zeromonos.org/zeromonos-web/internal/suggest"
)

// Highlight renders a suggestion with the matched span emphasized.
// The full value is escaped; only the matched substring is wrapped in
// <strong>, and it is escaped too, so query text is never interpreted
// as markup.
func Highlight(s suggest.Suggestion) template.HTML {
	start, end := s.MatchStart, s.MatchEnd
	if start < 0 || end < start || end > len(s.Value) {
		return template.HTML(template.HTMLEscapeString(s.Value))
	}
	var b strings.Builder
	b.WriteString(template.HTMLEscapeString(s.Value[:start]))
	b.WriteString("<strong>")
	b.WriteString(template.HTMLEscapeString(s.Value[start:end]))
	b.WriteString("</strong>")
	b.WriteString(template.HTMLEscapeString(s.Value[end:]))
	return template.HTML(b.String())
}
