package store

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"promptboard/internal/board/codec"
	"promptboard/internal/board/kv"
	"promptboard/internal/board/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequentialIDs returns a deterministic id generator: id-1, id-2, ...
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// persisted decodes whatever the store last wrote to the backend
func persisted(t *testing.T, backend *kv.MemoryStore, key string) []models.Card {
	t.Helper()
	value, ok, err := backend.Get(key)
	require.NoError(t, err)
	require.True(t, ok, "nothing persisted under %q", key)
	cards, err := codec.Decode(value)
	require.NoError(t, err)
	return cards
}

func storeWith(t *testing.T, cards []models.Card) (*Store, *kv.MemoryStore) {
	t.Helper()
	backend := kv.NewMemoryStore()
	value, err := codec.Encode(cards)
	require.NoError(t, err)
	require.NoError(t, backend.Set(DefaultKey, value))
	return Open(backend, WithIDGenerator(sequentialIDs())), backend
}

func TestOpen_SeedsWhenMissing(t *testing.T) {
	s := Open(kv.NewMemoryStore())

	assert.True(t, s.Seeded())
	assert.Equal(t, SeedSize, s.Total())
	assert.Equal(t, 0, s.Filled())

	ids := map[string]bool{}
	for _, c := range s.Cards() {
		assert.Empty(t, c.Text)
		assert.NotEmpty(t, c.ID)
		ids[c.ID] = true
	}
	assert.Len(t, ids, SeedSize, "seed ids must be unique")
}

func TestOpen_SeedsWhenMalformed(t *testing.T) {
	inputs := []string{"not json", "null", "{}", `[{"id":"a"}]`, `[{"id":"a","text":"x"},{"id":"a","text":"y"}]`}

	for _, input := range inputs {
		backend := kv.NewMemoryStore()
		require.NoError(t, backend.Set(DefaultKey, input))

		s := Open(backend)
		assert.True(t, s.Seeded(), "input %q", input)
		assert.Equal(t, SeedSize, s.Total(), "input %q", input)
		assert.Equal(t, 0, s.Filled(), "input %q", input)
	}
}

func TestOpen_SeedsWhenBackendUnreadable(t *testing.T) {
	backend := kv.NewMemoryStore()
	backend.Close()

	s := Open(backend)
	assert.True(t, s.Seeded())
	assert.Equal(t, SeedSize, s.Total())
}

func TestOpen_LoadsPersistedCollection(t *testing.T) {
	original := []models.Card{{ID: "b", Text: "second"}, {ID: "a", Text: "first"}}
	s, _ := storeWith(t, original)

	assert.False(t, s.Seeded())
	assert.Equal(t, original, s.Cards())
}

func TestOpen_EmptyCollectionIsNotSeeded(t *testing.T) {
	s, _ := storeWith(t, []models.Card{})

	assert.False(t, s.Seeded())
	assert.Equal(t, 0, s.Total())
}

func TestOpen_CustomKey(t *testing.T) {
	backend := kv.NewMemoryStore()
	require.NoError(t, backend.Set("other", `[{"id":"x","text":"y"}]`))

	s := Open(backend, WithKey("other"))
	assert.Equal(t, "other", s.Key())
	assert.Equal(t, 1, s.Total())
}

func TestAddCard_InsertsAtFront(t *testing.T) {
	s, backend := storeWith(t, []models.Card{{ID: "A", Text: "a"}, {ID: "B", Text: "b"}})

	card, err := s.AddCard()
	require.NoError(t, err)

	assert.Equal(t, "id-1", card.ID)
	assert.Empty(t, card.Text)
	assert.Equal(t, []models.Card{{ID: "id-1"}, {ID: "A", Text: "a"}, {ID: "B", Text: "b"}}, s.Cards())
	assert.Equal(t, s.Cards(), persisted(t, backend, DefaultKey))
}

func TestAddCard_SkipsCollidingIDs(t *testing.T) {
	backend := kv.NewMemoryStore()
	require.NoError(t, backend.Set(DefaultKey, `[{"id":"id-1","text":""}]`))
	s := Open(backend, WithIDGenerator(sequentialIDs()))

	card, err := s.AddCard()
	require.NoError(t, err)
	assert.Equal(t, "id-2", card.ID)
}

func TestUpdateCard(t *testing.T) {
	s, backend := storeWith(t, []models.Card{{ID: "A"}, {ID: "B"}})

	require.NoError(t, s.UpdateCard("B", "hello"))

	card, ok := s.Get("B")
	require.True(t, ok)
	assert.Equal(t, "hello", card.Text)
	assert.Equal(t, 1, s.Filled())
	assert.Equal(t, s.Cards(), persisted(t, backend, DefaultKey))
}

func TestUpdateCard_UnknownIDIsNoOp(t *testing.T) {
	before := []models.Card{{ID: "A", Text: "a"}}
	s, backend := storeWith(t, before)

	require.NoError(t, s.UpdateCard("missing", "text"))
	assert.Equal(t, before, s.Cards())
	assert.Equal(t, before, persisted(t, backend, DefaultKey))
}

func TestRemoveCard(t *testing.T) {
	s, backend := storeWith(t, []models.Card{{ID: "A"}, {ID: "B"}, {ID: "C"}})

	require.NoError(t, s.RemoveCard("B"))
	assert.Equal(t, []models.Card{{ID: "A"}, {ID: "C"}}, s.Cards())
	assert.Equal(t, s.Cards(), persisted(t, backend, DefaultKey))
}

func TestRemoveCard_UnknownIDIsNoOp(t *testing.T) {
	before := []models.Card{{ID: "A"}, {ID: "B"}}
	s, _ := storeWith(t, before)

	require.NoError(t, s.RemoveCard("missing"))
	assert.Equal(t, before, s.Cards())
}

func TestCards_ReturnsCopy(t *testing.T) {
	s, _ := storeWith(t, []models.Card{{ID: "A", Text: "a"}})

	cards := s.Cards()
	cards[0].Text = "mutated"

	card, _ := s.Get("A")
	assert.Equal(t, "a", card.Text)
}

func TestEveryMutationWrites(t *testing.T) {
	s, backend := storeWith(t, nil)
	writes := backend.Writes()

	card, _ := s.AddCard()
	require.NoError(t, s.UpdateCard(card.ID, "x"))
	require.NoError(t, s.UpdateCard("missing", "x"))
	require.NoError(t, s.RemoveCard(card.ID))
	require.NoError(t, s.Flush())

	assert.Equal(t, writes+5, backend.Writes())
}

func TestWriteFailure_KeepsInMemoryState(t *testing.T) {
	s, backend := storeWith(t, nil)
	backend.FailWrites = errors.New("quota exceeded")

	card, err := s.AddCard()
	require.Error(t, err)
	assert.ErrorIs(t, err, backend.FailWrites)
	assert.Equal(t, err, s.LastError())
	assert.Equal(t, 1, s.Total())

	assert.Error(t, s.UpdateCard(card.ID, "still editable"))
	assert.Equal(t, 1, s.Filled())

	backend.FailWrites = nil
	require.NoError(t, s.Flush())
	assert.NoError(t, s.LastError())
	assert.Equal(t, []models.Card{{ID: card.ID, Text: "still editable"}}, persisted(t, backend, DefaultKey))
}

func TestReplace(t *testing.T) {
	s, backend := storeWith(t, []models.Card{{ID: "old"}})

	err := s.Replace([]models.Card{
		{ID: "x", Text: "one"},
		{ID: "", Text: "two"},
		{ID: "x", Text: "three"},
	})
	require.NoError(t, err)

	cards := s.Cards()
	require.Len(t, cards, 3)
	assert.Equal(t, "x", cards[0].ID)
	assert.Equal(t, "id-1", cards[1].ID)
	assert.Equal(t, "id-2", cards[2].ID)
	assert.Equal(t, []string{"one", "two", "three"}, []string{cards[0].Text, cards[1].Text, cards[2].Text})
	assert.Equal(t, cards, persisted(t, backend, DefaultKey))
}

func TestClose_FlushesAndClosesBackend(t *testing.T) {
	s, backend := storeWith(t, nil)
	writes := backend.Writes()

	require.NoError(t, s.Close())
	assert.Equal(t, writes+1, backend.Writes())

	_, _, err := backend.Get(DefaultKey)
	assert.ErrorIs(t, err, kv.ErrClosed)
}

func TestReopen_RoundTripsOrder(t *testing.T) {
	backend := kv.NewMemoryStore()
	s := Open(backend, WithIDGenerator(sequentialIDs()))
	first, _ := s.AddCard()
	require.NoError(t, s.UpdateCard(first.ID, "front"))
	last := s.Cards()[s.Total()-1]
	require.NoError(t, s.UpdateCard(last.ID, "back"))

	reopened := Open(backend)
	assert.False(t, reopened.Seeded())
	assert.Equal(t, s.Cards(), reopened.Cards())
}

// Random operation sequences must keep the derived counts in line with the
// live collection and the persisted copy in line with memory.
func TestDerivedCounts_RandomSequences(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	texts := []string{"", " ", "\t\n", "hello", "  x  ", "prompt"}

	for run := 0; run < 20; run++ {
		backend := kv.NewMemoryStore()
		s := Open(backend, WithIDGenerator(sequentialIDs()))

		for step := 0; step < 50; step++ {
			cards := s.Cards()
			pickID := "missing"
			if len(cards) > 0 && rng.Intn(5) > 0 {
				pickID = cards[rng.Intn(len(cards))].ID
			}

			switch rng.Intn(3) {
			case 0:
				_, err := s.AddCard()
				require.NoError(t, err)
			case 1:
				require.NoError(t, s.UpdateCard(pickID, texts[rng.Intn(len(texts))]))
			case 2:
				require.NoError(t, s.RemoveCard(pickID))
			}

			cards = s.Cards()
			filled := 0
			for _, c := range cards {
				if strings.TrimSpace(c.Text) != "" {
					filled++
				}
			}
			require.Equal(t, len(cards), s.Total())
			require.Equal(t, filled, s.Filled())
			require.Equal(t, cards, persisted(t, backend, DefaultKey))
		}
	}
}
