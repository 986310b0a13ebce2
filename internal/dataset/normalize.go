package dataset

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Clark-Hu/movie-sentiment/internal/domain"
)

// ErrMalformedPayload marks a payload the loader cannot recover from.
var ErrMalformedPayload = errors.New("dataset: malformed payload")

// envelopeKeys are checked in order when a payload is an object.
var envelopeKeys = []string{"data", "results", "movies"}

// Normalize flattens a source payload into records. Arrays are used as-is;
// objects yield the first of data, results or movies holding an array, or no
// records. A top-level null is malformed.
func Normalize(raw []byte) ([]domain.MovieRecord, error) {
	trimmed := bytes.TrimSpace(raw)
	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("dataset: invalid JSON payload")
	}

	switch trimmed[0] {
	case 'n':
		return nil, fmt.Errorf("%w: null document", ErrMalformedPayload)
	case '[':
		return decodeRecords(trimmed)
	case '{':
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("dataset: decode envelope: %w", err)
		}
		for _, key := range envelopeKeys {
			if value, ok := envelope[key]; ok && isArray(value) {
				return decodeRecords(value)
			}
		}
	}
	return []domain.MovieRecord{}, nil
}

func decodeRecords(raw json.RawMessage) ([]domain.MovieRecord, error) {
	var records []domain.MovieRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("dataset: decode records: %w", err)
	}
	if records == nil {
		records = []domain.MovieRecord{}
	}
	return records, nil
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
