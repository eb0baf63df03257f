package quiz

import (
	"strings"
	"unicode"
)

// Escaper turns untrusted text into something safe for a display surface.
type Escaper func(string) string

var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// EscapeHTML escapes text for markup-based surfaces.
func EscapeHTML(text string) string {
	return htmlReplacer.Replace(text)
}

// EscapeTerminal strips control characters so remote text cannot inject
// terminal escape sequences. Tabs and newlines become spaces.
func EscapeTerminal(text string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\t' || r == '\n' || r == '\r':
			return ' '
		case unicode.IsControl(r):
			return -1
		default:
			return r
		}
	}, text)
}
