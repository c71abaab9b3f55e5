package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/conorfennell/smartlearner/internal/calendar"
	"github.com/conorfennell/smartlearner/internal/domain"
)

var today = calendar.Date{Day: 2, Month: 1, Year: 2025}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestImportDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "spanish.md"), "Q: hola\nA: hello\n\nQ: adiós\nA: goodbye\n")
	writeFile(t, filepath.Join(dir, "nested", "more.MD"), "Q: gato\nA: cat\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "Q: ignored\nA: ignored\n")

	deck, err := domain.NewDeck("spanish")
	if err != nil {
		t.Fatalf("NewDeck returned an unexpected error: %v", err)
	}
	deck.Add(domain.NewCard(domain.Field{Text: "Hola"}, domain.Field{Text: "Hello"}, today))

	report, err := ImportDir(deck, dir, today)
	if err != nil {
		t.Fatalf("ImportDir returned an unexpected error: %v", err)
	}

	if report.Files != 2 {
		t.Errorf("Expected 2 markdown files, but got %d", report.Files)
	}
	if report.Parsed != 3 {
		t.Errorf("Expected 3 parsed cards, but got %d", report.Parsed)
	}
	if report.Duplicates != 1 {
		t.Errorf("Expected the existing card to be a duplicate, but got %d duplicates", report.Duplicates)
	}
	if report.Added != 2 || deck.Len() != 3 {
		t.Errorf("Expected 2 added cards and 3 in total, but got %d and %d", report.Added, deck.Len())
	}
	for _, card := range deck.Cards {
		if !card.IsDue(today) || card.Tier != 0 {
			t.Errorf("Expected imported card %q to be new and due, but got tier %d due %s",
				card.Front.Text, card.Tier, card.Due)
		}
	}

	again, err := ImportDir(deck, dir, today)
	if err != nil {
		t.Fatalf("Second ImportDir returned an unexpected error: %v", err)
	}
	if again.Added != 0 || deck.Len() != 3 {
		t.Errorf("Expected a repeated import to add nothing, but added %d", again.Added)
	}
}

func TestImportDirMissingFolder(t *testing.T) {
	deck, _ := domain.NewDeck("d")
	if _, err := ImportDir(deck, filepath.Join(t.TempDir(), "missing"), today); err == nil {
		t.Error("Expected an error for a missing folder")
	}
}
