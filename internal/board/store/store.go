// Package store holds the authoritative card collection and mirrors it to a
// key-value backend after every mutation.
package store

import (
	"errors"
	"fmt"

	"promptboard/internal/board/codec"
	"promptboard/internal/board/kv"
	"promptboard/internal/board/models"
	"promptboard/internal/logs"

	"github.com/google/uuid"
)

const (
	// DefaultKey is the namespace key the collection is stored under
	DefaultKey = "prompt_cards"

	// SeedSize is the number of empty cards created on first run
	SeedSize = 6
)

// Store owns the ordered card collection. It is not safe for concurrent use;
// callers drive it from a single event loop.
type Store struct {
	backend kv.Store
	key     string
	newID   func() string
	cards   []models.Card
	seeded  bool
	lastErr error
}

// Option configures a Store
type Option func(*Store)

// WithKey overrides the namespace key
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithIDGenerator overrides card id generation. Generated ids must be unique
// for the life of the process.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// Open loads the persisted collection from backend. A missing, unreadable, or
// malformed value is replaced by a seed collection; Open itself never fails.
func Open(backend kv.Store, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		key:     DefaultKey,
		newID:   func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}

	s.cards = s.load()
	return s
}

func (s *Store) load() []models.Card {
	value, ok, err := s.backend.Get(s.key)
	if err != nil {
		logs.Logger.Warnw("could not read stored cards, seeding", "key", s.key, "error", err)
		return s.seed()
	}
	if !ok {
		logs.Logger.Infow("no stored cards, seeding", "key", s.key)
		return s.seed()
	}

	cards, err := codec.Decode(value)
	if err != nil {
		logs.Logger.Warnw("stored cards are malformed, seeding", "key", s.key, "error", err)
		return s.seed()
	}

	logs.Logger.Infow("loaded cards", "key", s.key, "count", len(cards))
	return cards
}

func (s *Store) seed() []models.Card {
	s.seeded = true
	cards := make([]models.Card, SeedSize)
	for i := range cards {
		cards[i] = models.Card{ID: s.newID()}
	}
	return cards
}

// Seeded reports whether Open fell back to the seed collection
func (s *Store) Seeded() bool {
	return s.seeded
}

// Key returns the namespace key
func (s *Store) Key() string {
	return s.key
}

// Cards returns a copy of the collection in display order
func (s *Store) Cards() []models.Card {
	return models.Clone(s.cards)
}

// Get returns the card with the given id
func (s *Store) Get(id string) (models.Card, bool) {
	idx := models.IndexOf(s.cards, id)
	if idx < 0 {
		return models.Card{}, false
	}
	return s.cards[idx], true
}

// Total returns the number of cards
func (s *Store) Total() int {
	return len(s.cards)
}

// Filled returns the number of cards with non-whitespace text
func (s *Store) Filled() int {
	return models.CountFilled(s.cards)
}

// AddCard inserts an empty card at the front of the collection.
// The returned error reports a failed write; the card is added regardless.
func (s *Store) AddCard() (models.Card, error) {
	card := models.Card{ID: s.uniqueID()}
	s.cards = append([]models.Card{card}, s.cards...)
	return card, s.commit()
}

// UpdateCard replaces the text of the card with the given id.
// An unknown id leaves the collection unchanged.
func (s *Store) UpdateCard(id, text string) error {
	if idx := models.IndexOf(s.cards, id); idx >= 0 {
		s.cards[idx].Text = text
	}
	return s.commit()
}

// RemoveCard deletes the card with the given id.
// An unknown id leaves the collection unchanged.
func (s *Store) RemoveCard(id string) error {
	if idx := models.IndexOf(s.cards, id); idx >= 0 {
		s.cards = append(s.cards[:idx:idx], s.cards[idx+1:]...)
	}
	return s.commit()
}

// Replace swaps in a whole new collection, as one commit. Cards with an empty
// or repeated id are given fresh ids.
func (s *Store) Replace(cards []models.Card) error {
	next := make([]models.Card, 0, len(cards))
	seen := make(map[string]bool, len(cards))
	for _, c := range cards {
		for c.ID == "" || seen[c.ID] {
			c.ID = s.newID()
		}
		seen[c.ID] = true
		next = append(next, c)
	}
	s.cards = next
	return s.commit()
}

// Flush writes the current collection immediately
func (s *Store) Flush() error {
	return s.commit()
}

// LastError returns the error from the most recent write, or nil if it succeeded
func (s *Store) LastError() error {
	return s.lastErr
}

// Close flushes the collection and closes the backend
func (s *Store) Close() error {
	return errors.Join(s.commit(), s.backend.Close())
}

// commit serializes the full collection and writes it under the namespace key
func (s *Store) commit() error {
	value, err := codec.Encode(s.cards)
	if err == nil {
		err = s.backend.Set(s.key, value)
	}
	if err != nil {
		err = fmt.Errorf("persist cards: %w", err)
		logs.Logger.Errorw("write failed", "key", s.key, "error", err)
	}
	s.lastErr = err
	return err
}

func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		if models.IndexOf(s.cards, id) < 0 {
			return id
		}
	}
}
