// Package cardsdb builds the searchable card database: canonical cards, the
// union of their factions and one tag index per search scope.
package cardsdb

import (
	"fmt"

	"github.com/arcanaland/algodb/internal/card"
)

// ScopeAny is the aggregate scope fed by every searchable field.
const ScopeAny = "any"

// Scopes returns every scope name: ScopeAny followed by the searchable
// fields in record order.
func Scopes() []string {
	scopes := []string{ScopeAny}
	for _, f := range card.SearchableFields() {
		scopes = append(scopes, string(f))
	}
	return scopes
}

// DuplicateKeyError reports a second card added under an existing key.
type DuplicateKeyError struct {
	Key int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate card key %d", e.Key)
}

// Collection accumulates normalized cards and their tag indexes. It is not
// safe for concurrent use.
type Collection struct {
	cards    map[int]card.Card
	order    []int
	factions map[string]struct{}
	indexes  map[string]*TagIndex
}

// NewCollection returns an empty collection with every scope index created.
func NewCollection() *Collection {
	c := &Collection{
		cards:    make(map[int]card.Card),
		factions: make(map[string]struct{}),
		indexes:  make(map[string]*TagIndex),
	}
	for _, scope := range Scopes() {
		c.indexes[scope] = NewTagIndex()
	}
	return c
}

// Add normalizes raw under key and indexes it. The collection is left
// untouched when normalization fails or the key is already taken.
func (c *Collection) Add(key int, raw card.Raw) error {
	if _, exists := c.cards[key]; exists {
		return &DuplicateKeyError{Key: key}
	}
	cd, err := card.Normalize(key, raw)
	if err != nil {
		return err
	}

	c.cards[key] = cd
	c.order = append(c.order, key)
	for _, f := range cd.Factions {
		c.factions[f] = struct{}{}
	}

	all := c.indexes[ScopeAny]
	for _, f := range card.SearchableFields() {
		scoped := c.indexes[string(f)]
		for tag := range Tokenize(cd.Value(f)) {
			scoped.Add(tag, key)
			all.Add(tag, key)
		}
	}
	return nil
}

// Len returns the number of cards.
func (c *Collection) Len() int {
	return len(c.order)
}

// Cards returns the cards in insertion order.
func (c *Collection) Cards() []card.Card {
	out := make([]card.Card, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, c.cards[key])
	}
	return out
}

// Card returns the card stored under key.
func (c *Collection) Card(key int) (card.Card, bool) {
	cd, ok := c.cards[key]
	return cd, ok
}

// Factions returns the faction set in no particular order.
func (c *Collection) Factions() []string {
	out := make([]string, 0, len(c.factions))
	for f := range c.factions {
		out = append(out, f)
	}
	return out
}

// Index returns the tag index of a scope, or nil for an unknown scope.
func (c *Collection) Index(scope string) *TagIndex {
	return c.indexes[scope]
}
