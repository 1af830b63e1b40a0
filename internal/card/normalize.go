package card

import (
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Raw is one upstream card object as decoded from the upstream document.
// Numbers are expected as json.Number so their literal text survives.
type Raw map[string]any

// ImageExt is appended to every derived image name.
const ImageExt = ".jpg"

var bracketed = regexp.MustCompile(`\{([^}]*)\}`)

// MissingFieldError reports an upstream record without a required field.
type MissingFieldError struct {
	Field string
	Card  string // upstream name, empty when the name itself is missing
}

func (e *MissingFieldError) Error() string {
	if e.Card == "" {
		return fmt.Sprintf("upstream card is missing field %q", e.Field)
	}
	return fmt.Sprintf("upstream card %q is missing field %q", e.Card, e.Field)
}

// Normalize maps an upstream record onto a canonical Card with the given key.
func Normalize(key int, raw Raw) (Card, error) {
	name, err := requireString(raw, "name", "")
	if err != nil {
		return Card{}, err
	}

	fields := make(map[string]string)
	for _, upstreamField := range []string{
		"power", "toughness", "cost", "total_cost", "type",
		"complexity", "text", "revision_date_time", "details",
	} {
		v, err := requireString(raw, upstreamField, name)
		if err != nil {
			return Card{}, err
		}
		fields[upstreamField] = v
	}

	rulingsRaw, ok := raw["rulings"]
	if !ok {
		return Card{}, &MissingFieldError{Field: "rulings", Card: name}
	}

	return Card{
		Key:        key,
		Name:       name,
		Power:      fields["power"],
		Toughness:  fields["toughness"],
		Affinity:   Affinity(fields["cost"]),
		Cost:       fields["total_cost"],
		Type:       fields["type"],
		Attributes: Attributes(fields["type"]),
		Complexity: fields["complexity"],
		Text:       fields["text"],
		Revision:   fields["revision_date_time"],
		Details:    fields["details"],
		Factions:   Factions(raw["factions"]),
		Rulings:    stringList(rulingsRaw),
		ImageName:  ImageName(name),
	}, nil
}

// Affinity sorts the characters of an upstream cost string.
func Affinity(cost string) string {
	r := []rune(cost)
	slices.Sort(r)
	return string(r)
}

// Attributes extracts the contents of every {...} token in a type line, left
// to right, keeping duplicates.
func Attributes(typeLine string) []string {
	out := []string{}
	for _, m := range bracketed.FindAllStringSubmatch(typeLine, -1) {
		out = append(out, m[1])
	}
	return out
}

// Factions converts the upstream factions value. Anything other than a list
// counts as no factions and null elements are dropped; more than one faction
// adds Hybrid.
func Factions(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(list)+1)
	for _, f := range list {
		if f == nil {
			continue
		}
		out = append(out, Stringify(f))
	}
	if len(out) > 1 {
		out = append(out, Hybrid)
	}
	return out
}

// ImageName derives the image file name of a card from its name.
func ImageName(name string) string {
	name = strings.ReplaceAll(name, ",", "")
	name = strings.ReplaceAll(name, " ", "-")
	return name + ImageExt
}

// Stringify renders an upstream scalar as text. Numbers keep their literal
// form and null becomes the empty string.
func Stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case bool:
		return strconv.FormatBool(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
}

func requireString(raw Raw, field, name string) (string, error) {
	v, ok := raw[field]
	if !ok {
		return "", &MissingFieldError{Field: field, Card: name}
	}
	return Stringify(v), nil
}

func stringList(v any) []string {
	switch x := v.(type) {
	case nil:
		return []string{}
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			out = append(out, Stringify(item))
		}
		return out
	default:
		return []string{Stringify(x)}
	}
}
