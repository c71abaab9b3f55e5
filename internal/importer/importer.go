// Package importer adds cards from a folder of markdown files to a deck.
package importer

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/conorfennell/smartlearner/internal/calendar"
	"github.com/conorfennell/smartlearner/internal/domain"
	"github.com/conorfennell/smartlearner/internal/knol"
	"github.com/conorfennell/smartlearner/internal/parser"
)

// Report summarizes an import.
type Report struct {
	Files      int
	Parsed     int
	Added      int
	Duplicates int
	Errors     []error
}

// ImportDir walks dir for .md files and appends every parsed card whose
// content hash is not already in deck. New cards are due on today.
// Parse errors are collected in the report; only a failing walk returns an error.
func ImportDir(deck *domain.Deck, dir string, today calendar.Date) (Report, error) {
	var report Report
	seen := knol.Index(deck)

	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(strings.ToLower(d.Name()), ".md") {
			return nil
		}
		report.Files++

		fileCards, parseErr := parser.ParseFile(path)
		if parseErr != nil {
			report.Errors = append(report.Errors, fmt.Errorf("parsing %s: %w", path, parseErr))
		}
		for _, parsed := range fileCards {
			report.Parsed++
			card := domain.NewCard(parsed.Front, parsed.Back, today)
			hash := knol.Hash(card)
			if seen[hash] {
				report.Duplicates++
				continue
			}
			seen[hash] = true
			deck.Add(card)
			report.Added++
			slog.Debug("New card found, adding", "deck", deck.Name, "hash", hash)
		}
		return nil
	})
	if walkErr != nil {
		return report, fmt.Errorf("walking %s: %w", dir, walkErr)
	}

	slog.Info("import complete",
		"deck", deck.Name,
		"path", dir,
		"files", report.Files,
		"parsed_cards", report.Parsed,
		"added", report.Added,
		"duplicates", report.Duplicates,
		"errors", len(report.Errors),
	)
	return report, nil
}
