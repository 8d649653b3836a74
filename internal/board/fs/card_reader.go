package fs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"promptboard/internal/board/models"

	"gopkg.in/yaml.v3"
)

// ReadCard reads a card file. The second return value is the position from
// frontmatter, or -1 if absent.
func ReadCard(cardPath string) (models.Card, int, error) {
	content, err := os.ReadFile(cardPath)
	if err != nil {
		return models.Card{}, -1, err
	}

	fm, body := ParseFrontmatter(content)
	if err := models.ValidateText(body); err != nil {
		return models.Card{}, -1, fmt.Errorf("%s: %w", filepath.Base(cardPath), err)
	}
	return models.Card{ID: fm.ID, Text: body}, fm.Position, nil
}

// ParseFrontmatter splits YAML frontmatter from the markdown body.
// Content without valid frontmatter is returned whole with Position -1.
func ParseFrontmatter(content []byte) (Frontmatter, string) {
	none := Frontmatter{Position: -1}
	lines := bytes.Split(content, []byte("\n"))

	if len(lines) == 0 || !bytes.Equal(bytes.TrimSpace(lines[0]), []byte("---")) {
		return none, string(content)
	}

	var frontmatterEnd int
	for i := 1; i < len(lines); i++ {
		if bytes.Equal(bytes.TrimSpace(lines[i]), []byte("---")) {
			frontmatterEnd = i
			break
		}
	}

	if frontmatterEnd == 0 {
		return none, string(content)
	}

	fm := Frontmatter{Position: -1}
	frontmatterBytes := bytes.Join(lines[1:frontmatterEnd], []byte("\n"))
	if err := yaml.Unmarshal(frontmatterBytes, &fm); err != nil {
		return none, string(content)
	}

	body := bytes.Join(lines[frontmatterEnd+1:], []byte("\n"))
	// WriteCard separates frontmatter from body with one blank line
	body = bytes.TrimPrefix(body, []byte("\n"))

	return fm, string(body)
}

// ImportCards reads every .md file in dir. Cards with a position come first
// in position order, the rest follow sorted by filename. Ids are returned as
// found; the store fixes up missing or duplicate ones.
func ImportCards(dir string) ([]models.Card, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	type positioned struct {
		card     models.Card
		position int
		name     string
	}

	var found []positioned
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		card, pos, err := ReadCard(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		found = append(found, positioned{card: card, position: pos, name: e.Name()})
	}

	sort.SliceStable(found, func(i, j int) bool {
		a, b := found[i], found[j]
		if (a.position < 0) != (b.position < 0) {
			return a.position >= 0
		}
		if a.position != b.position {
			return a.position < b.position
		}
		return a.name < b.name
	})

	cards := make([]models.Card, len(found))
	for i, p := range found {
		cards[i] = p.card
	}
	return cards, nil
}
