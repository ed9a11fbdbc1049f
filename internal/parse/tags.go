package parse

import (
	"strings"
	"unicode"
)

// NormalizeTags merges free-form tag input into an existing tag list. Input
// may be a single token or a comma/space/newline separated list. Tags are
// unique by lowercase key; the first-seen display casing wins. Reapplying
// the same input is a no-op.
func NormalizeTags(input string, current []string) []string {
	out := append([]string(nil), current...)
	seen := make(map[string]struct{}, len(current))
	for _, tag := range current {
		seen[strings.ToLower(tag)] = struct{}{}
	}
	tokens := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		key := strings.ToLower(token)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, token)
	}
	return out
}
