// Package codec converts a card collection to and from its persisted form:
// a JSON array of {"id", "text"} objects in collection order.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"promptboard/internal/board/models"
)

// ErrMalformed is returned when a persisted value is not a valid collection
var ErrMalformed = errors.New("malformed card collection")

type wireCard struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// strict decoding target; pointers detect missing fields
type wireCardIn struct {
	ID   *string `json:"id"`
	Text *string `json:"text"`
}

// Encode serializes the collection, preserving order
func Encode(cards []models.Card) (string, error) {
	out := make([]wireCard, len(cards))
	for i, c := range cards {
		out[i] = wireCard{ID: c.ID, Text: c.Text}
	}

	data, err := json.Marshal(out)
	if err != nil {
		return "", fmt.Errorf("encode cards: %w", err)
	}
	return string(data), nil
}

// Decode parses a persisted collection. Any structural problem yields an
// error wrapping ErrMalformed; the caller decides how to recover.
func Decode(value string) ([]models.Card, error) {
	trimmed := bytes.TrimSpace([]byte(value))
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected JSON array", ErrMalformed)
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()

	var in []wireCardIn
	if err := dec.Decode(&in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after array", ErrMalformed)
	}

	cards := make([]models.Card, 0, len(in))
	seen := make(map[string]bool, len(in))
	for i, wc := range in {
		if wc.ID == nil || wc.Text == nil {
			return nil, fmt.Errorf("%w: entry %d missing id or text", ErrMalformed, i)
		}
		if *wc.ID == "" {
			return nil, fmt.Errorf("%w: entry %d has empty id", ErrMalformed, i)
		}
		if seen[*wc.ID] {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrMalformed, *wc.ID)
		}
		seen[*wc.ID] = true
		cards = append(cards, models.Card{ID: *wc.ID, Text: *wc.Text})
	}

	return cards, nil
}
