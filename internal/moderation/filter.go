package moderation

import "strings"

// Filter scans outgoing message text against a banned-word list.
type Filter struct {
	words []string
}

// NewFilter builds a filter from the configured word list. Matching is
// case-insensitive, so entries are normalized once here.
func NewFilter(words []string) *Filter {
	normalized := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			normalized = append(normalized, w)
		}
	}
	return &Filter{words: normalized}
}

// Check scans text for the first banned word it contains, case-insensitively.
// Returns the offending word and true on a hit.
func (f *Filter) Check(text string) (string, bool) {
	lowered := strings.ToLower(text)
	for i := 0; i < len(f.words); i++ {
		if strings.Contains(lowered, f.words[i]) {
			return f.words[i], true
		}
	}
	return "", false
}
