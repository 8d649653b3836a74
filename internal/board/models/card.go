package models

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// ErrInvalidText is returned for card text that is not valid UTF-8
var ErrInvalidText = errors.New("card text is not valid UTF-8")

// Card represents a single prompt box on the board
type Card struct {
	ID   string // Opaque, immutable once created
	Text string // Prompt content, replaced wholesale on edit
}

// IsFilled returns true if the card has non-whitespace text
func (c Card) IsFilled() bool {
	return strings.TrimSpace(c.Text) != ""
}

// ValidateText rejects text that would not survive storage unchanged
func ValidateText(text string) error {
	if !utf8.ValidString(text) {
		return ErrInvalidText
	}
	return nil
}

// IndexOf returns the index of the card with the given id, or -1
func IndexOf(cards []Card, id string) int {
	for i := range cards {
		if cards[i].ID == id {
			return i
		}
	}
	return -1
}

// CountFilled returns the number of cards with non-whitespace text
func CountFilled(cards []Card) int {
	n := 0
	for _, c := range cards {
		if c.IsFilled() {
			n++
		}
	}
	return n
}

// Clone returns a copy of the collection that shares no backing array
func Clone(cards []Card) []Card {
	out := make([]Card, len(cards))
	copy(out, cards)
	return out
}
