package validator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/arcanaland/algodb/internal/card"
	"github.com/arcanaland/algodb/internal/cardsdb"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

type Validator struct {
	Doc     *cardsdb.Document
	Results ValidationResults

	keys map[int]bool
}

func NewValidator(doc *cardsdb.Document) *Validator {
	return &Validator{
		Doc:     doc,
		Results: ValidationResults{},
		keys:    make(map[int]bool),
	}
}

func (v *Validator) Validate() ValidationResults {
	v.validateKeys()
	v.validateFactions()
	v.validateScopes()
	v.validateTagCoverage()
	v.validateImageNames()

	return v.Results
}

func (v *Validator) errorf(format string, args ...any) {
	v.Results.Errors = append(v.Results.Errors, fmt.Sprintf(format, args...))
}

func (v *Validator) warnf(format string, args ...any) {
	v.Results.Warnings = append(v.Results.Warnings, fmt.Sprintf(format, args...))
}

// validateKeys checks that keys are distinct and run contiguously from the base
func (v *Validator) validateKeys() {
	if len(v.Doc.Cards) == 0 {
		v.warnf("database contains no cards")
	}
	for i, c := range v.Doc.Cards {
		if v.keys[c.Key] {
			v.errorf("duplicate card key %d (%s)", c.Key, c.Name)
			continue
		}
		v.keys[c.Key] = true
		if want := cardsdb.KeyBase + i; c.Key != want {
			v.errorf("card %q has key %d, expected %d", c.Name, c.Key, want)
		}
		if c.Name == cardsdb.ExcludedCard {
			v.errorf("excluded card %q is present", c.Name)
		}
	}
}

// validateFactions checks the faction list order and that it covers every card
func (v *Validator) validateFactions() {
	sorted := cardsdb.SortFactions(slices.Clone(v.Doc.Factions))
	if !slices.Equal(sorted, v.Doc.Factions) {
		v.errorf("factions are not in export order: got [%s], want [%s]",
			strings.Join(v.Doc.Factions, ", "), strings.Join(sorted, ", "))
	}

	listed := make(map[string]bool, len(v.Doc.Factions))
	for _, f := range v.Doc.Factions {
		listed[f] = true
	}
	used := make(map[string]bool)
	for _, c := range v.Doc.Cards {
		for _, f := range c.Factions {
			used[f] = true
			if !listed[f] {
				v.errorf("card %q has faction %q missing from the faction list", c.Name, f)
			}
		}
		// Multi-faction cards end in hybrid; upstream may also list hybrid itself
		if n := len(c.Factions); n > 2 && c.Factions[n-1] != card.Hybrid {
			v.errorf("card %q has several factions but does not end in %s: [%s]", c.Name, card.Hybrid, strings.Join(c.Factions, ", "))
		}
	}
	for _, f := range v.Doc.Factions {
		if !used[f] {
			v.warnf("faction %q is not used by any card", f)
		}
	}
}

// validateScopes checks that every scope exists and holds well-formed tags
func (v *Validator) validateScopes() {
	want := cardsdb.Scopes()
	for _, scope := range want {
		if _, ok := v.Doc.SearchScopes[scope]; !ok {
			v.errorf("search scope %q is missing", scope)
		}
	}
	for scope, tags := range v.Doc.SearchScopes {
		if !slices.Contains(want, scope) {
			v.warnf("unknown search scope %q", scope)
		}
		for tag, keys := range tags {
			if len(tag) < 3 || !strings.HasPrefix(tag, " ") || !strings.HasSuffix(tag, " ") {
				v.errorf("scope %q: tag %q is not space padded", scope, tag)
			}
			if len(keys) == 0 {
				v.errorf("scope %q: tag %q has no cards", scope, tag)
			}
			seen := make(map[int]bool, len(keys))
			for _, k := range keys {
				if seen[k] {
					v.errorf("scope %q: tag %q lists key %d twice", scope, tag, k)
				}
				seen[k] = true
				if !v.keys[k] {
					v.errorf("scope %q: tag %q references unknown key %d", scope, tag, k)
				}
			}
		}
	}
}

// validateTagCoverage re-tokenizes every card and checks both of its indexes
func (v *Validator) validateTagCoverage() {
	all := v.Doc.SearchScopes[cardsdb.ScopeAny]
	for _, c := range v.Doc.Cards {
		for _, f := range card.SearchableFields() {
			scoped := v.Doc.SearchScopes[string(f)]
			for tag := range cardsdb.Tokenize(c.Value(f)) {
				padded := cardsdb.Pad(tag)
				if scoped != nil && !slices.Contains(scoped[padded], c.Key) {
					v.errorf("card %q: tag %q missing from scope %q", c.Name, padded, f)
				}
				if all != nil && !slices.Contains(all[padded], c.Key) {
					v.errorf("card %q: tag %q missing from scope %q", c.Name, padded, cardsdb.ScopeAny)
				}
			}
		}
	}
}

// validateImageNames warns about cards sharing an image file
func (v *Validator) validateImageNames() {
	owners := make(map[string]string)
	for _, c := range v.Doc.Cards {
		if prev, ok := owners[c.ImageName]; ok {
			v.warnf("cards %q and %q share image %s", prev, c.Name, c.ImageName)
			continue
		}
		owners[c.ImageName] = c.Name
	}
}
