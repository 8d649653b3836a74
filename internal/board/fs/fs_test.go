package fs

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"promptboard/internal/board/models"
)

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"# Summarize Article\n\nRead the text below.", "Summarize Article"},
		{"Intro line\n\n# Later Heading", "Later Heading"},
		{"Write a haiku about autumn leaves falling slowly today", "Write a haiku about autumn leaves"},
		{"## Sub only\n\nbody text", "body text"},
		{"", "Untitled"},
		{"   \n\n", "Untitled"},
	}

	for _, tt := range tests {
		if got := ExtractTitle(tt.input); got != tt.expected {
			t.Errorf("ExtractTitle(%q): expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}

func TestExtractPreview(t *testing.T) {
	input := "# Title\n\nFirst paragraph\nwraps here.\n\nSecond one.\n\nThird is skipped."
	got := ExtractPreview(input, 100)
	expected := "First paragraph wraps here. Second one."
	if got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestExtractPreview_Clips(t *testing.T) {
	got := ExtractPreview("abcdefghijklmnopqrstuvwxyz", 10)
	if got != "abcdefg..." {
		t.Errorf("expected clipped preview, got %q", got)
	}
}

func TestExtractPreview_IncludesCode(t *testing.T) {
	got := ExtractPreview("```\nfmt.Println(1)\n```", 60)
	if got != "fmt.Println(1)" {
		t.Errorf("expected code content in preview, got %q", got)
	}
}

func TestToSnakeCase(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"My Prompt Title!", "my_prompt_title"},
		{"already_snake", "already_snake"},
		{"  dashes - and   spaces ", "dashes_and_spaces"},
		{"!!!", "prompt"},
		{"Untitled", "untitled"},
	}

	for _, tt := range tests {
		if got := ToSnakeCase(tt.input); got != tt.expected {
			t.Errorf("ToSnakeCase(%q): expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}

func TestUniqueFilename(t *testing.T) {
	taken := map[string]bool{"untitled.md": true, "untitled_2.md": true}

	if got := UniqueFilename("untitled", taken); got != "untitled_3.md" {
		t.Errorf("expected untitled_3.md, got %q", got)
	}
	if got := UniqueFilename("fresh", taken); got != "fresh.md" {
		t.Errorf("expected fresh.md, got %q", got)
	}
}

func TestWriteCard_ReadCard_RoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	texts := []string{"", "plain", "\nleading newline", "# Heading\n\n---\nnot frontmatter\n"}

	for i, text := range texts {
		path := filepath.Join(tmpDir, "card.md")
		original := models.Card{ID: "id-x", Text: text}

		if err := WriteCard(original, i, path); err != nil {
			t.Fatalf("write error: %v", err)
		}

		loaded, pos, err := ReadCard(path)
		if err != nil {
			t.Fatalf("read error: %v", err)
		}
		if loaded != original {
			t.Errorf("round trip mismatch: expected %+v, got %+v", original, loaded)
		}
		if pos != i {
			t.Errorf("expected position %d, got %d", i, pos)
		}
	}
}

func TestReadCard_NoFrontmatter(t *testing.T) {
	tmpDir := t.TempDir()
	cardPath := filepath.Join(tmpDir, "simple.md")
	os.WriteFile(cardPath, []byte("Just a prompt.\n"), 0644)

	card, pos, err := ReadCard(cardPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if card.ID != "" {
		t.Errorf("expected empty id, got %q", card.ID)
	}
	if card.Text != "Just a prompt.\n" {
		t.Errorf("unexpected text %q", card.Text)
	}
	if pos != -1 {
		t.Errorf("expected position -1, got %d", pos)
	}
}

func TestExportImport_PreservesOrder(t *testing.T) {
	tmpDir := t.TempDir()
	cards := []models.Card{
		{ID: "c", Text: "# Zebra\n\nlast alphabetically, first in order"},
		{ID: "b", Text: ""},
		{ID: "a", Text: ""},
		{ID: "d", Text: "# Apple"},
	}

	filenames, err := ExportCards(cards, tmpDir)
	if err != nil {
		t.Fatalf("export error: %v", err)
	}

	expectedNames := []string{"zebra.md", "untitled.md", "untitled_2.md", "apple.md"}
	if !reflect.DeepEqual(filenames, expectedNames) {
		t.Errorf("expected filenames %v, got %v", expectedNames, filenames)
	}

	// a stray note without frontmatter goes last
	os.WriteFile(filepath.Join(tmpDir, "aaa_note.md"), []byte("loose"), 0644)
	os.WriteFile(filepath.Join(tmpDir, "ignored.txt"), []byte("nope"), 0644)

	imported, err := ImportCards(tmpDir)
	if err != nil {
		t.Fatalf("import error: %v", err)
	}

	expected := append(append([]models.Card{}, cards...), models.Card{Text: "loose"})
	if !reflect.DeepEqual(imported, expected) {
		t.Errorf("expected %+v, got %+v", expected, imported)
	}
}

func TestExport_DoesNotOverwriteExistingFiles(t *testing.T) {
	tmpDir := t.TempDir()
	os.WriteFile(filepath.Join(tmpDir, "apple.md"), []byte("keep me"), 0644)

	filenames, err := ExportCards([]models.Card{{ID: "a", Text: "# Apple"}}, tmpDir)
	if err != nil {
		t.Fatalf("export error: %v", err)
	}
	if filenames[0] != "apple_2.md" {
		t.Errorf("expected apple_2.md, got %q", filenames[0])
	}

	content, _ := os.ReadFile(filepath.Join(tmpDir, "apple.md"))
	if string(content) != "keep me" {
		t.Errorf("existing file was overwritten: %q", content)
	}
}

func TestImportCards_RejectsInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "latin1.md"), []byte("caf\xe9"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ImportCards(dir)
	if !errors.Is(err, models.ErrInvalidText) {
		t.Errorf("expected ErrInvalidText, got %v", err)
	}
}
