package parser

import "strings"

// htmlEscaper uses the same entities as PHP's htmlspecialchars with ENT_QUOTES,
// which differ from html.EscapeString for both quote characters.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#039;",
	"<", "&lt;",
	">", "&gt;",
)

func Escape(msg string) string {
	return htmlEscaper.Replace(msg)
}

// cutset of PHP's trim().
const trimCutset = " \t\n\r\x00\x0B"

func trim(s string) string {
	return strings.Trim(s, trimCutset)
}
