package domain

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSnippet(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  string
	}{
		{
			name:  "short text untouched",
			text:  "calm rooms",
			limit: 200,
			want:  "calm rooms",
		},
		{
			name:  "exact limit untouched",
			text:  strings.Repeat("x", 10),
			limit: 10,
			want:  strings.Repeat("x", 10),
		},
		{
			name:  "ascii cut at limit",
			text:  strings.Repeat("x", 12),
			limit: 10,
			want:  strings.Repeat("x", 10) + "...",
		},
		{
			name:  "multibyte rune straddling the cut",
			text:  "a" + strings.Repeat("é", 5),
			limit: 10,
			want:  "a" + strings.Repeat("é", 4) + "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Snippet(tt.text, tt.limit)
			if got != tt.want {
				t.Errorf("Snippet(%q, %d) = %q, want %q", tt.text, tt.limit, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("Snippet(%q, %d) produced invalid UTF-8", tt.text, tt.limit)
			}
		})
	}
}
