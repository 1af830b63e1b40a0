package cardsdb

import (
	"iter"
	"regexp"
	"strings"
)

var (
	bracketRun = regexp.MustCompile(`\{[^}]*\}`)
	nonWordRun = regexp.MustCompile(`[^a-z0-9']+`)
)

// Tokenize yields the search tokens of a field value. Sequence values yield
// their trimmed, non-empty elements unchanged. String values are lowercased,
// {...} runs and then non-word runs are blanked, and the words remain.
// Any other value yields nothing.
func Tokenize(value any) iter.Seq[string] {
	return func(yield func(string) bool) {
		switch v := value.(type) {
		case []string:
			for _, item := range v {
				item = strings.TrimSpace(item)
				if item == "" {
					continue
				}
				if !yield(item) {
					return
				}
			}
		case string:
			s := strings.ToLower(v)
			s = bracketRun.ReplaceAllString(s, " ")
			s = nonWordRun.ReplaceAllString(s, " ")
			for _, word := range strings.Split(strings.TrimSpace(s), " ") {
				if word == "" {
					continue
				}
				if !yield(word) {
					return
				}
			}
		}
	}
}
