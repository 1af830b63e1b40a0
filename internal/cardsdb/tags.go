package cardsdb

// Pad surrounds a tag with single spaces, the form stored in every index.
// A query padded the same way matches whole tags by plain substring search.
func Pad(tag string) string {
	return " " + tag + " "
}

// TagIndex maps padded tags to the set of card keys that produced them.
type TagIndex struct {
	keys map[string][]int
	seen map[string]map[int]struct{}
}

// NewTagIndex returns an empty index.
func NewTagIndex() *TagIndex {
	return &TagIndex{
		keys: make(map[string][]int),
		seen: make(map[string]map[int]struct{}),
	}
}

// Add records that the card with the given key produced tag. Adding the same
// pair again is a no-op.
func (t *TagIndex) Add(tag string, key int) {
	padded := Pad(tag)
	set, ok := t.seen[padded]
	if !ok {
		set = make(map[int]struct{})
		t.seen[padded] = set
	}
	if _, dup := set[key]; dup {
		return
	}
	set[key] = struct{}{}
	t.keys[padded] = append(t.keys[padded], key)
}

// Len returns the number of distinct tags.
func (t *TagIndex) Len() int {
	return len(t.keys)
}

// Keys returns the keys recorded for a padded tag in first-insertion order.
func (t *TagIndex) Keys(padded string) []int {
	return t.keys[padded]
}

// Map exports the index as padded tag -> keys. The slices are copies.
func (t *TagIndex) Map() map[string][]int {
	out := make(map[string][]int, len(t.keys))
	for tag, keys := range t.keys {
		out[tag] = append([]int(nil), keys...)
	}
	return out
}
