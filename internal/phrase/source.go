package phrase

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// SourceKind tags the shape a phrase source was written in.
type SourceKind int

const (
	SourceEmpty SourceKind = iota
	SourceMapping
	SourceRecords
)

// Pair is one phrase → meaning member of a mapping-shaped source, in file order.
// Meaning is nil when the JSON value was not a string.
type Pair struct {
	Phrase  string
	Meaning *string
}

// Record is one element of a list-shaped source. A nil Phrase marks a malformed record.
type Record struct {
	Phrase  *string `json:"phrase"`
	Meaning *string `json:"meaning"`
}

// Source is a raw phrase source, decoded but not yet normalized.
type Source struct {
	Kind    SourceKind
	Pairs   []Pair
	Records []Record
}

// ParseSource decodes the JSON contents of an idiom or slang file.
// An object becomes a mapping and an array becomes a list of records.
// Any other JSON value is an empty source.
func ParseSource(data []byte) (Source, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	token, err := decoder.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Source{}, fmt.Errorf("decoder.Token > empty document: %w", err)
		}
		return Source{}, fmt.Errorf("decoder.Token > %w", err)
	}

	var source Source
	switch delim, _ := token.(json.Delim); delim {
	case '{':
		pairs, err := decodePairs(decoder)
		if err != nil {
			return Source{}, err
		}
		source = Source{Kind: SourceMapping, Pairs: pairs}
	case '[':
		records, err := decodeRecords(decoder)
		if err != nil {
			return Source{}, err
		}
		source = Source{Kind: SourceRecords, Records: records}
	case 0:
		source = Source{Kind: SourceEmpty}
	default:
		return Source{}, fmt.Errorf("unexpected delimiter %q", delim)
	}

	if err := expectEOF(decoder); err != nil {
		return Source{}, err
	}
	return source, nil
}

// expectEOF fails when anything but whitespace follows the document.
func expectEOF(decoder *json.Decoder) error {
	token, err := decoder.Token()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("decoder.Token > trailing data: %w", err)
	}
	return fmt.Errorf("unexpected trailing data %v", token)
}

// decodePairs reads object members one by one so that file order survives.
func decodePairs(decoder *json.Decoder) ([]Pair, error) {
	var pairs []Pair
	for decoder.More() {
		token, err := decoder.Token()
		if err != nil {
			return nil, fmt.Errorf("decoder.Token > %w", err)
		}
		key, ok := token.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected object key %v", token)
		}

		var value json.RawMessage
		if err := decoder.Decode(&value); err != nil {
			return nil, fmt.Errorf("decoder.Decode(%s) > %w", key, err)
		}
		pairs = append(pairs, Pair{Phrase: key, Meaning: stringValue(value)})
	}
	if _, err := decoder.Token(); err != nil {
		return nil, fmt.Errorf("decoder.Token > %w", err)
	}
	return pairs, nil
}

func decodeRecords(decoder *json.Decoder) ([]Record, error) {
	var records []Record
	for decoder.More() {
		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decoder.Decode > %w", err)
		}

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
			records = append(records, Record{})
			continue
		}
		records = append(records, Record{
			Phrase:  stringValue(fields["phrase"]),
			Meaning: stringValue(fields["meaning"]),
		})
	}
	if _, err := decoder.Token(); err != nil {
		return nil, fmt.Errorf("decoder.Token > %w", err)
	}
	return records, nil
}

func stringValue(raw json.RawMessage) *string {
	if len(raw) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	return &s
}
