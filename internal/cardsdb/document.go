package cardsdb

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/arcanaland/algodb/internal/card"
)

// LoadDocument reads a card database written by Write.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading card database: %w", err)
	}
	return ParseDocument(data)
}

// ParseDocument decodes a card database.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing card database: %w", err)
	}
	if doc.SearchScopes == nil {
		doc.SearchScopes = map[string]map[string][]int{}
	}
	return &doc, nil
}

// Write encodes the document as JSON followed by a newline.
func Write(w io.Writer, doc *Document, indent bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding card database: %w", err)
	}
	return nil
}

// CardByKey returns the card with the given key.
func (d *Document) CardByKey(key int) (*card.Card, error) {
	for i := range d.Cards {
		if d.Cards[i].Key == key {
			return &d.Cards[i], nil
		}
	}
	return nil, fmt.Errorf("card not found: %d", key)
}

// Lookup resolves a card by key, exact name, or case-insensitive name.
func (d *Document) Lookup(ref string) (*card.Card, error) {
	if key, err := strconv.Atoi(ref); err == nil {
		return d.CardByKey(key)
	}
	var folded *card.Card
	for i := range d.Cards {
		if d.Cards[i].Name == ref {
			return &d.Cards[i], nil
		}
		if folded == nil && strings.EqualFold(d.Cards[i].Name, ref) {
			folded = &d.Cards[i]
		}
	}
	if folded != nil {
		return folded, nil
	}
	return nil, fmt.Errorf("card not found: %s", ref)
}
