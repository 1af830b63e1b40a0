package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/arcanaland/algodb/internal/card"
)

// Decode reads the dataset from r, returning the card objects in document
// order. Numbers are kept as json.Number.
func Decode(r io.Reader) ([]card.Raw, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var records []card.Raw
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("decode entry id: %w", err)
		}
		id, _ := tok.(string)

		var entry []card.Raw
		if err := dec.Decode(&entry); err != nil {
			return nil, fmt.Errorf("decode entry %q: %w", id, err)
		}
		if len(entry) != 1 {
			return nil, fmt.Errorf("entry %q: expected exactly one card, got %d", id, len(entry))
		}
		if entry[0] == nil {
			return nil, fmt.Errorf("entry %q: card is null", id)
		}
		records = append(records, entry[0])
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode upstream document: trailing data")
	}
	return records, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode upstream document: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("decode upstream document: expected %q, got %v", want, tok)
	}
	return nil
}
