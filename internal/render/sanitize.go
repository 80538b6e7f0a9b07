package render

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Placeholder replaces every character the PDF core fonts cannot encode.
const Placeholder = '?'

// Sanitize replaces characters outside ISO-8859-1 (emoji, curly quotes, CJK,
// invalid UTF-8) with Placeholder. Nothing is dropped: the output has
// exactly one rune per input rune.
func Sanitize(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for _, r := range s {
		if _, ok := charmap.ISO8859_1.EncodeRune(r); ok {
			sb.WriteRune(r)
			continue
		}
		sb.WriteRune(Placeholder)
	}
	return sb.String()
}
