package ingest

import "strings"

// tagKeywords maps index tags to the review phrases that imply them.
var tagKeywords = []struct {
	tag      string
	keywords []string
}{
	{"wifi", []string{"wifi", "internet", "wireless"}},
	{"breakfast", []string{"breakfast", "morning meal"}},
	{"parking", []string{"parking", "car park"}},
	{"pool", []string{"pool", "swimming"}},
	{"gym", []string{"gym", "fitness", "workout"}},
	{"spa", []string{"spa", "massage", "wellness"}},
	{"pet_friendly", []string{"pet", "dog", "cat"}},
	{"business", []string{"business", "conference", "meeting room"}},
	{"family", []string{"family", "kids", "children"}},
	{"romantic", []string{"romantic", "honeymoon", "couples"}},
}

// ExtractTags derives normalized keyword tags from review text.
func ExtractTags(text string) []string {
	lower := strings.ToLower(text)
	var tags []string
	for _, tk := range tagKeywords {
		for _, kw := range tk.keywords {
			if strings.Contains(lower, kw) {
				tags = append(tags, tk.tag)
				break
			}
		}
	}
	return tags
}
