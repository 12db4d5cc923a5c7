package domain

import "unicode/utf8"

// Snippet cuts text to at most limit bytes and appends an ellipsis. The cut
// backs up to the previous rune boundary so a multi-byte character straddling
// the limit is dropped whole instead of leaving invalid UTF-8 behind.
func Snippet(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut] + "..."
}
