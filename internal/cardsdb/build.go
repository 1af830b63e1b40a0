package cardsdb

import (
	"fmt"
	"log/slog"

	"github.com/arcanaland/algodb/internal/card"
)

// KeyBase is the key of the first card added by Build.
const KeyBase = 1001

// ExcludedCard names the one upstream entry Build drops. The card was
// remodeled into a different one and lingers upstream as a ghost entry.
const ExcludedCard = "Ephemeral Dreamthief"

// Build adds every record to a new collection in order, assigning keys from
// KeyBase and skipping ExcludedCard. Any error aborts the build.
func Build(records []card.Raw, logger *slog.Logger) (*Collection, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := NewCollection()
	key := KeyBase
	for i, raw := range records {
		if name, _ := raw["name"].(string); name == ExcludedCard {
			logger.Debug("skipping excluded card", "name", name, "position", i)
			continue
		}
		if err := c.Add(key, raw); err != nil {
			return nil, fmt.Errorf("add upstream record %d: %w", i, err)
		}
		key++
	}

	logger.Info("card database built", "cards", c.Len(), "factions", len(c.factions), "scopes", len(c.indexes))
	return c, nil
}
