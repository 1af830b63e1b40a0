// Package search evaluates browse queries against a card database the same
// way the browsing UI does: substring matching over space-padded tags.
package search

import (
	"strings"

	"github.com/arcanaland/algodb/internal/cardsdb"
)

// Term is one query term restricted to the scopes whose name contains Scope.
type Term struct {
	Scope string
	Text  string
}

// ParseQuery splits a query into terms.
//
// Words are separated by single spaces and lowercased. A "scope:" prefix
// applies to the next term only; terms default to the any scope. Double
// quotes group words into one term wrapped in spaces, so a quoted word only
// matches a whole tag.
func ParseQuery(query string) []Term {
	var (
		terms  []Term
		scope  = cardsdb.ScopeAny
		open   bool
		phrase string
	)

	push := func(text string) {
		if i := strings.Index(text, ":"); i >= 0 {
			scope = text[:i]
			text = text[i+1:]
		}
		if text != "" {
			terms = append(terms, Term{Scope: scope, Text: text})
			scope = cardsdb.ScopeAny
		}
	}

	for _, s := range strings.Split(strings.ToLower(query), " ") {
		switch {
		case strings.Contains(s, `"`):
			for _, w := range strings.Split(s, `"`) {
				if !open {
					open, phrase = true, " "
					if w != "" {
						push(w)
					}
				} else if w != "" {
					phrase += w + " "
				} else if phrase != " " {
					push(phrase)
					open = false
					if s == `"` {
						break
					}
				}
			}
		case open:
			phrase += s + " "
		case s != "":
			push(s)
		}
	}
	return terms
}
