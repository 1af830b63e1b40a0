package search_test

import (
	"encoding/json"
	"slices"
	"testing"

	"github.com/arcanaland/algodb/internal/card"
	"github.com/arcanaland/algodb/internal/cardsdb"
	"github.com/arcanaland/algodb/internal/search"
)

func testDocument(t *testing.T) *cardsdb.Document {
	t.Helper()
	rec := func(name, typeLine, text string, factions ...any) card.Raw {
		return card.Raw{
			"name": name, "power": json.Number("1"), "toughness": json.Number("1"),
			"cost": "a", "total_cost": json.Number("1"), "type": typeLine,
			"complexity": "Simple", "text": text, "revision_date_time": "",
			"details": "", "factions": factions, "rulings": nil,
		}
	}
	c, err := cardsdb.Build([]card.Raw{
		rec("Ember Wolf", "Unit - Beast {Haste}", "Deals 2 damage to a unit.", "Fire"),
		rec("Tidecaller", "Unit - Spirit {Flying}", "Draw a card.", "Water", "Wood"),
		rec("Old Relic", "Relic", "Nothing happens.", "colorless"),
	}, nil)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return cardsdb.Export(c)
}

func names(cards []card.Card) []string {
	var out []string
	for _, c := range cards {
		out = append(out, c.Name)
	}
	return out
}

// --- ParseQuery ---

func TestParseQuery(t *testing.T) {
	tests := []struct {
		query string
		want  []search.Term
	}{
		{"dragon", []search.Term{{Scope: "any", Text: "dragon"}}},
		{"Dragon  Fire", []search.Term{{Scope: "any", Text: "dragon"}, {Scope: "any", Text: "fire"}}},
		{"type:unit", []search.Term{{Scope: "type", Text: "unit"}}},
		{"type:unit draw", []search.Term{{Scope: "type", Text: "unit"}, {Scope: "any", Text: "draw"}}},
		{`"haste"`, []search.Term{{Scope: "any", Text: " haste "}}},
		{`"deals damage"`, []search.Term{{Scope: "any", Text: " deals damage "}}},
		{`text:"draw"`, []search.Term{{Scope: "text", Text: " draw "}}},
		{"", nil},
	}
	for _, tt := range tests {
		got := search.ParseQuery(tt.query)
		if !slices.Equal(got, tt.want) {
			t.Errorf("ParseQuery(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

// --- Filter ---

func TestFilter_Empty(t *testing.T) {
	got := search.Filter{}.Apply(testDocument(t))
	if len(got) != 3 {
		t.Errorf("empty filter returned %d cards, want 3", len(got))
	}
}

func TestFilter_TermsIntersect(t *testing.T) {
	doc := testDocument(t)

	got := names(search.Filter{Terms: search.ParseQuery("unit")}.Apply(doc))
	if want := []string{"Ember Wolf", "Tidecaller"}; !slices.Equal(got, want) {
		t.Errorf("unit = %v, want %v", got, want)
	}

	got = names(search.Filter{Terms: search.ParseQuery("unit draw")}.Apply(doc))
	if want := []string{"Tidecaller"}; !slices.Equal(got, want) {
		t.Errorf("unit draw = %v, want %v", got, want)
	}

	got = names(search.Filter{Terms: search.ParseQuery("unit nothing")}.Apply(doc))
	if len(got) != 0 {
		t.Errorf("unit nothing = %v, want none", got)
	}
}

func TestFilter_Scoped(t *testing.T) {
	doc := testDocument(t)

	got := names(search.Filter{Terms: search.ParseQuery("type:relic")}.Apply(doc))
	if want := []string{"Old Relic"}; !slices.Equal(got, want) {
		t.Errorf("type:relic = %v, want %v", got, want)
	}

	got = names(search.Filter{Terms: search.ParseQuery("name:unit")}.Apply(doc))
	if len(got) != 0 {
		t.Errorf("name:unit = %v, want none", got)
	}
}

func TestFilter_QuotedMatchesWholeTag(t *testing.T) {
	doc := testDocument(t)

	// "wol" is a substring of the tag " wolf " but not a whole tag
	if got := (search.Filter{Terms: search.ParseQuery("wol")}).Apply(doc); len(got) != 1 {
		t.Errorf("wol matched %d cards, want 1", len(got))
	}
	if got := (search.Filter{Terms: search.ParseQuery(`"wol"`)}).Apply(doc); len(got) != 0 {
		t.Errorf(`"wol" matched %v, want none`, names(got))
	}
}

func TestFilter_Factions(t *testing.T) {
	doc := testDocument(t)

	got := names(search.Filter{Factions: map[string]bool{"Fire": true}}.Apply(doc))
	if want := []string{"Ember Wolf"}; !slices.Equal(got, want) {
		t.Errorf("Fire = %v, want %v", got, want)
	}

	allowed := map[string]bool{"Water": true, "Wood": true, card.Hybrid: true}
	got = names(search.Filter{Factions: allowed}.Apply(doc))
	if want := []string{"Tidecaller"}; !slices.Equal(got, want) {
		t.Errorf("Water+Wood = %v, want %v", got, want)
	}

	got = names(search.Filter{HybridsOnly: true}.Apply(doc))
	if want := []string{"Tidecaller"}; !slices.Equal(got, want) {
		t.Errorf("hybrids = %v, want %v", got, want)
	}
}

func TestFilter_NoMatchEncodesAsEmptyArray(t *testing.T) {
	got := search.Filter{Terms: search.ParseQuery("zzzz")}.Apply(testDocument(t))
	data, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("json = %s, want []", data)
	}
}
