package validator_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/arcanaland/algodb/internal/card"
	"github.com/arcanaland/algodb/internal/cardsdb"
	"github.com/arcanaland/algodb/internal/validator"
)

func validDocument(t *testing.T) *cardsdb.Document {
	t.Helper()
	rec := func(name, typeLine string, factions ...any) card.Raw {
		return card.Raw{
			"name": name, "power": json.Number("3"), "toughness": json.Number("2"),
			"cost": "bd", "total_cost": json.Number("2"), "type": typeLine,
			"complexity": "Simple", "text": "Gain 1 life.", "revision_date_time": "2024",
			"details": "", "factions": factions, "rulings": []any{"First ruling."},
		}
	}
	c, err := cardsdb.Build([]card.Raw{
		rec("Grove Warden", "Unit - Treant {Guard}", "Wood"),
		rec("Storm Sage", "Spell", "Water", "Fire"),
		rec("Lens", "Relic", "colorless"),
	}, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return cardsdb.Export(c)
}

func hasMessage(msgs []string, substr string) bool {
	for _, m := range msgs {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}

func TestValidate_Clean(t *testing.T) {
	results := validator.NewValidator(validDocument(t)).Validate()
	if len(results.Errors) != 0 {
		t.Errorf("unexpected errors: %v", results.Errors)
	}
	if len(results.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", results.Warnings)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		corrupt func(doc *cardsdb.Document)
		want    string
	}{
		{"duplicate key", func(doc *cardsdb.Document) {
			doc.Cards[1].Key = doc.Cards[0].Key
		}, "duplicate card key"},
		{"key gap", func(doc *cardsdb.Document) {
			doc.Cards[2].Key = 2000
		}, "expected 1003"},
		{"excluded card", func(doc *cardsdb.Document) {
			doc.Cards[2].Name = cardsdb.ExcludedCard
		}, "excluded card"},
		{"faction order", func(doc *cardsdb.Document) {
			doc.Factions[0], doc.Factions[len(doc.Factions)-1] = doc.Factions[len(doc.Factions)-1], doc.Factions[0]
		}, "export order"},
		{"unlisted faction", func(doc *cardsdb.Document) {
			doc.Factions = doc.Factions[1:]
		}, "missing from the faction list"},
		{"multi-faction without hybrid", func(doc *cardsdb.Document) {
			doc.Cards[1].Factions = []string{"Water", "Fire", "Wood"}
			doc.Factions = []string{"Fire", "Water", "Wood", "hybrid", "colorless"}
		}, "does not end in hybrid"},
		{"missing scope", func(doc *cardsdb.Document) {
			delete(doc.SearchScopes, "text")
		}, `scope "text" is missing`},
		{"unpadded tag", func(doc *cardsdb.Document) {
			doc.SearchScopes["name"]["lens"] = []int{1003}
		}, "not space padded"},
		{"unknown key", func(doc *cardsdb.Document) {
			doc.SearchScopes["name"][" ghost "] = []int{4242}
		}, "unknown key 4242"},
		{"repeated key", func(doc *cardsdb.Document) {
			doc.SearchScopes["name"][" lens "] = []int{1003, 1003}
		}, "twice"},
		{"missing tag", func(doc *cardsdb.Document) {
			delete(doc.SearchScopes["type"], " relic ")
		}, `tag " relic " missing from scope "type"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validDocument(t)
			tt.corrupt(doc)
			results := validator.NewValidator(doc).Validate()
			if !hasMessage(results.Errors, tt.want) {
				t.Errorf("errors %v do not mention %q", results.Errors, tt.want)
			}
		})
	}
}

func TestValidate_Warnings(t *testing.T) {
	doc := validDocument(t)
	doc.Cards[1].ImageName = doc.Cards[0].ImageName
	doc.Factions = append([]string{"Aether"}, doc.Factions...)
	doc.SearchScopes["flavor"] = map[string][]int{}

	results := validator.NewValidator(doc).Validate()
	for _, want := range []string{"share image", `faction "Aether" is not used`, `unknown search scope "flavor"`} {
		if !hasMessage(results.Warnings, want) {
			t.Errorf("warnings %v do not mention %q", results.Warnings, want)
		}
	}
}

func TestValidate_EmptyDocument(t *testing.T) {
	doc := &cardsdb.Document{SearchScopes: map[string]map[string][]int{}}
	results := validator.NewValidator(doc).Validate()
	if !hasMessage(results.Warnings, "no cards") {
		t.Errorf("warnings = %v, want a no cards warning", results.Warnings)
	}
}

func TestValidate_UpstreamHybridFaction(t *testing.T) {
	c, err := cardsdb.Build([]card.Raw{{
		"name": "Prism Shard", "power": json.Number("1"), "toughness": json.Number("1"),
		"cost": "x", "total_cost": json.Number("1"), "type": "Relic",
		"complexity": "Simple", "text": "", "revision_date_time": "",
		"details": "", "factions": []any{card.Hybrid}, "rulings": []any{},
	}}, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	results := validator.NewValidator(cardsdb.Export(c)).Validate()
	if len(results.Errors) != 0 {
		t.Errorf("built document reported errors: %v", results.Errors)
	}
}
