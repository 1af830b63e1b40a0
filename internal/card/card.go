package card

// Field names a canonical card attribute. The string value doubles as the
// JSON key of the attribute and as the search scope name.
type Field string

const (
	FieldKey        Field = "key"
	FieldName       Field = "name"
	FieldPower      Field = "power"
	FieldToughness  Field = "toughness"
	FieldAffinity   Field = "affinity"
	FieldCost       Field = "cost"
	FieldType       Field = "type"
	FieldAttributes Field = "attributes"
	FieldComplexity Field = "complexity"
	FieldText       Field = "text"
	FieldRevision   Field = "revision"
	FieldDetails    Field = "details"
	FieldFactions   Field = "factions"
	FieldRulings    Field = "rulings"
	FieldImageName  Field = "image_name"
)

// FieldSpec describes one attribute of the card record.
type FieldSpec struct {
	Field      Field
	Searchable bool
}

// Fields lists every card attribute in record order together with its
// searchable flag. Keep it in sync with the Card struct.
var Fields = []FieldSpec{
	{FieldKey, false},
	{FieldName, true},
	{FieldPower, true},
	{FieldToughness, true},
	{FieldAffinity, true},
	{FieldCost, true},
	{FieldType, true},
	{FieldAttributes, true},
	{FieldComplexity, true},
	{FieldText, true},
	{FieldRevision, false},
	{FieldDetails, false},
	{FieldFactions, true},
	{FieldRulings, false},
	{FieldImageName, false},
}

// SearchableFields returns the searchable fields in record order.
func SearchableFields() []Field {
	var out []Field
	for _, spec := range Fields {
		if spec.Searchable {
			out = append(out, spec.Field)
		}
	}
	return out
}

// Hybrid is the synthetic faction appended to cards that belong to more than
// one faction.
const Hybrid = "hybrid"

// Colorless is the upstream faction of cards without a colour.
const Colorless = "colorless"

// Card is the canonical record of one card. Values are built by Normalize and
// never modified afterwards.
type Card struct {
	Key        int      `json:"key"`
	Name       string   `json:"name"`
	Power      string   `json:"power"`
	Toughness  string   `json:"toughness"`
	Affinity   string   `json:"affinity"`
	Cost       string   `json:"cost"`
	Type       string   `json:"type"`
	Attributes []string `json:"attributes"`
	Complexity string   `json:"complexity"`
	Text       string   `json:"text"`
	Revision   string   `json:"revision"`
	Details    string   `json:"details"`
	Factions   []string `json:"factions"`
	Rulings    []string `json:"rulings"`
	ImageName  string   `json:"image_name"`
}

// Value returns the value of a non-key field: a string for scalar fields and
// a []string for sequence fields. Unknown fields and the key yield nil.
func (c Card) Value(f Field) any {
	switch f {
	case FieldName:
		return c.Name
	case FieldPower:
		return c.Power
	case FieldToughness:
		return c.Toughness
	case FieldAffinity:
		return c.Affinity
	case FieldCost:
		return c.Cost
	case FieldType:
		return c.Type
	case FieldAttributes:
		return c.Attributes
	case FieldComplexity:
		return c.Complexity
	case FieldText:
		return c.Text
	case FieldRevision:
		return c.Revision
	case FieldDetails:
		return c.Details
	case FieldFactions:
		return c.Factions
	case FieldRulings:
		return c.Rulings
	case FieldImageName:
		return c.ImageName
	default:
		return nil
	}
}

// IsHybrid reports whether the card belongs to more than one faction.
func (c Card) IsHybrid() bool {
	return len(c.Factions) > 1
}
