package board

import (
	"github.com/sahilm/fuzzy"

	"promptboard/internal/board/models"
)

// recomputeFilter rebuilds filteredIndices based on the current filterQuery.
// Matches are ordered best first.
func (m *BoardModel) recomputeFilter() {
	if m.filterQuery == "" {
		m.filterActive = false
		m.filteredIndices = nil
		return
	}

	searchStrings := make([]string, len(m.cards))
	for i, card := range m.cards {
		searchStrings[i] = card.Text
	}

	matches := fuzzy.Find(m.filterQuery, searchStrings)
	m.filteredIndices = make([]int, len(matches))
	for i, match := range matches {
		m.filteredIndices[i] = match.Index
	}
}

// visibleCards returns the cards to display, respecting the active filter
func (m *BoardModel) visibleCards() []models.Card {
	if !m.filterActive || m.filteredIndices == nil {
		return m.cards
	}
	cards := make([]models.Card, len(m.filteredIndices))
	for i, idx := range m.filteredIndices {
		cards[i] = m.cards[idx]
	}
	return cards
}

func (m *BoardModel) clearFilter() {
	m.filterQuery = ""
	m.filterActive = false
	m.filteredIndices = nil
	m.selected = 0
	m.adjustScrollPosition()
}
