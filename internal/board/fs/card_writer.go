package fs

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"promptboard/internal/board/models"

	"gopkg.in/yaml.v3"
)

// Frontmatter is the YAML header of an exported card
type Frontmatter struct {
	ID       string `yaml:"id"`
	Position int    `yaml:"position"`
}

// WriteCard writes a card to a markdown file with id/position frontmatter
func WriteCard(card models.Card, position int, path string) error {
	var buf bytes.Buffer

	buf.WriteString("---\n")
	yamlBytes, err := yaml.Marshal(Frontmatter{ID: card.ID, Position: position})
	if err != nil {
		return err
	}
	buf.Write(yamlBytes)
	buf.WriteString("---\n\n")

	buf.WriteString(card.Text)

	return os.WriteFile(path, buf.Bytes(), 0644)
}

// ExportCards writes every card into dir, one markdown file each, and
// returns the filenames in collection order
func ExportCards(cards []models.Card, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	taken := make(map[string]bool)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		taken[e.Name()] = true
	}

	filenames := make([]string, 0, len(cards))
	for i, card := range cards {
		filename := UniqueFilename(ToSnakeCase(ExtractTitle(card.Text)), taken)
		taken[filename] = true

		if err := WriteCard(card, i, filepath.Join(dir, filename)); err != nil {
			return filenames, fmt.Errorf("write %s: %w", filename, err)
		}
		filenames = append(filenames, filename)
	}

	return filenames, nil
}
