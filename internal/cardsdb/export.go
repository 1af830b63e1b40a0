package cardsdb

import (
	"slices"
	"strings"

	"github.com/arcanaland/algodb/internal/card"
)

// Document is the exported card database consumed by the browsing UI.
type Document struct {
	Cards        []card.Card                 `json:"cards"`
	Factions     []string                    `json:"factions"`
	SearchScopes map[string]map[string][]int `json:"search_scopes"`
}

// trailingFactions sort after every genuine faction, in this order.
var trailingFactions = []string{card.Hybrid, card.Colorless}

// Export projects the collection into a Document. The collection is not
// modified.
func Export(c *Collection) *Document {
	doc := &Document{
		Cards:        c.Cards(),
		Factions:     SortFactions(c.Factions()),
		SearchScopes: make(map[string]map[string][]int, len(c.indexes)),
	}
	for scope, idx := range c.indexes {
		doc.SearchScopes[scope] = idx.Map()
	}
	return doc
}

// SortFactions sorts factions lexicographically, except that hybrid and then
// colorless always come last. The input slice is sorted in place and returned.
func SortFactions(factions []string) []string {
	slices.SortFunc(factions, func(a, b string) int {
		ra, rb := factionRank(a), factionRank(b)
		if ra != rb {
			return ra - rb
		}
		return strings.Compare(a, b)
	})
	return factions
}

func factionRank(f string) int {
	if i := slices.Index(trailingFactions, f); i >= 0 {
		return i + 1
	}
	return 0
}
