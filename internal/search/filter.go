package search

import (
	"strings"

	"github.com/arcanaland/algodb/internal/card"
	"github.com/arcanaland/algodb/internal/cardsdb"
)

// Filter applies all non-empty criteria and returns matching cards.
type Filter struct {
	Terms       []Term
	Factions    map[string]bool // allowed factions; nil disables the check
	HybridsOnly bool
}

// Apply returns the cards of doc matching every criterion, in document order.
// The result is never nil.
func (f Filter) Apply(doc *cardsdb.Document) []card.Card {
	var matched map[int]struct{}
	if len(f.Terms) > 0 {
		matched = MatchKeys(doc, f.Terms)
	}

	out := []card.Card{}
	for _, c := range doc.Cards {
		if matched != nil {
			if _, ok := matched[c.Key]; !ok {
				continue
			}
		}
		if f.HybridsOnly && !c.IsHybrid() {
			continue
		}
		if f.Factions != nil && !allowed(c, f.Factions) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// MatchKeys returns the keys matching every term. Each term matches the keys
// of every tag containing its text in every scope whose name contains its
// scope.
func MatchKeys(doc *cardsdb.Document, terms []Term) map[int]struct{} {
	var acc map[int]struct{}
	for _, t := range terms {
		keys := termKeys(doc, t)
		if acc == nil {
			acc = keys
			continue
		}
		for k := range acc {
			if _, ok := keys[k]; !ok {
				delete(acc, k)
			}
		}
	}
	if acc == nil {
		acc = map[int]struct{}{}
	}
	return acc
}

func termKeys(doc *cardsdb.Document, t Term) map[int]struct{} {
	keys := make(map[int]struct{})
	for scope, tags := range doc.SearchScopes {
		if !strings.Contains(scope, t.Scope) {
			continue
		}
		for tag, tagKeys := range tags {
			if !strings.Contains(tag, t.Text) {
				continue
			}
			for _, k := range tagKeys {
				keys[k] = struct{}{}
			}
		}
	}
	return keys
}

func allowed(c card.Card, factions map[string]bool) bool {
	for _, f := range c.Factions {
		if !factions[f] {
			return false
		}
	}
	return true
}
