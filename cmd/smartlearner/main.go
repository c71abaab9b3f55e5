package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/conorfennell/smartlearner/internal/calendar"
	"github.com/conorfennell/smartlearner/internal/config"
	"github.com/conorfennell/smartlearner/internal/importer"
	"github.com/conorfennell/smartlearner/internal/storage"
	"github.com/conorfennell/smartlearner/internal/study"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		slog.Error("smartlearner failed", "error", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	// 1. Parse flags and load configuration
	flags := config.Flags()
	if err := flags.Parse(args); err != nil {
		return err
	}
	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)})))

	// 2. Open the database
	db, err := storage.Open(cfg.DB)
	if err != nil {
		return err
	}
	defer db.Close()
	slog.Info("Database opened successfully", "path", cfg.DB)

	records, err := db.LoadDecks()
	if err != nil {
		return err
	}
	library := study.NewLibrary(records)
	clock := calendar.SystemClock{}

	// 3. Import markdown cards if asked to
	if cfg.Import != "" {
		if err := importInto(library, cfg, clock.Today()); err != nil {
			return err
		}
		if err := library.Save(db); err != nil {
			return err
		}
	}

	// 4. Print the due report
	today := clock.Today()
	fmt.Printf("%d decks on %s.\n", library.Len(), today)
	for _, rec := range library.Decks() {
		fmt.Printf("- %s: %d due of %d cards\n", rec.Deck.Name, rec.Deck.DueCount(today), rec.Deck.Len())
	}
	return nil
}

func importInto(library *study.Library, cfg *config.Config, today calendar.Date) error {
	name := cfg.Deck
	if name == "" {
		return errors.New("--deck is required with --import")
	}
	index, ok := library.Find(name)
	if !ok {
		var err error
		if index, err = library.NewDeck(name); err != nil {
			return err
		}
	}
	if err := library.Select(index); err != nil {
		return err
	}
	deck, err := library.Current()
	if err != nil {
		return err
	}

	report, err := importer.ImportDir(deck, cfg.Import, today)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d new cards into %q (%d duplicates, %d errors).\n",
		report.Added, deck.Name, report.Duplicates, len(report.Errors))
	for _, e := range report.Errors {
		fmt.Printf("- %s\n", e)
	}
	return nil
}

func logLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}
