// Package format renders message text for Telegram's HTML parse mode.
package format

import "strings"

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// EscapeHTML escapes the characters Telegram's HTML parser treats specially.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// Pre wraps escaped text in a monospace block.
func Pre(s string) string {
	return "<pre>" + EscapeHTML(s) + "</pre>"
}

// Bold wraps escaped text in bold tags.
func Bold(s string) string {
	return "<b>" + EscapeHTML(s) + "</b>"
}
