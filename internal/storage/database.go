package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/conorfennell/smartlearner/internal/calendar"
	"github.com/conorfennell/smartlearner/internal/domain"
	"github.com/conorfennell/smartlearner/internal/knol"
	"github.com/conorfennell/smartlearner/internal/schedule"
	_ "modernc.org/sqlite" // Registers the sqlite driver
)

// ErrDeckNotFound is returned when saving or deleting an unknown deck id.
var ErrDeckNotFound = errors.New("storage: deck not found")

// DB represents a wrapper around the SQL database connection.
type DB struct {
	conn *sql.DB
}

// DeckRecord pairs a deck with its storage location. ID 0 means the deck
// has not been saved yet.
type DeckRecord struct {
	ID   int64
	Deck *domain.Deck
}

// Open creates a new database connection and ensures the schema is up to date.
// The parent folder of a file path is created when missing.
func Open(dsn string) (*DB, error) {
	if dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database folder: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Execute the schema to create tables if they don't exist.
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	slog.Debug("Database opened", "dsn", dsn)
	return &DB{conn: db}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// LoadDecks returns every deck with its cards, in creation order.
func (db *DB) LoadDecks() ([]DeckRecord, error) {
	rows, err := db.conn.Query(`SELECT id, name FROM decks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to get decks: %w", err)
	}

	var records []DeckRecord
	for rows.Next() {
		rec := DeckRecord{Deck: &domain.Deck{}}
		if err := rows.Scan(&rec.ID, &rec.Deck.Name); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan deck row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to read decks: %w", err)
	}
	rows.Close()

	for _, rec := range records {
		cards, err := db.cardsForDeck(rec.ID)
		if err != nil {
			return nil, err
		}
		rec.Deck.Cards = cards
	}
	return records, nil
}

func (db *DB) cardsForDeck(deckID int64) ([]domain.Card, error) {
	rows, err := db.conn.Query(`
		SELECT front_text, front_audio, back_text, back_audio, tier, due_date
		FROM cards WHERE deck_id = ? ORDER BY position
	`, deckID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards for deck %d: %w", deckID, err)
	}
	defer rows.Close()

	var cards []domain.Card
	for rows.Next() {
		var (
			card                  domain.Card
			frontAudio, backAudio sql.NullString
			due                   string
		)
		if err := rows.Scan(&card.Front.Text, &frontAudio, &card.Back.Text, &backAudio, &card.Tier, &due); err != nil {
			return nil, fmt.Errorf("failed to scan card row for deck %d: %w", deckID, err)
		}
		card.Front.Audio = frontAudio.String
		card.Back.Audio = backAudio.String
		if card.Due, err = calendar.ParseDate(due); err != nil {
			return nil, fmt.Errorf("card due date in deck %d: %w", deckID, err)
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

// SaveDeck writes deck under id, replacing its stored cards. An id of 0
// inserts a new deck. The id the deck is stored under is returned.
func (db *DB) SaveDeck(id int64, deck *domain.Deck) (int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin saving deck %q: %w", deck.Name, err)
	}
	defer tx.Rollback()

	now := time.Now()
	if id == 0 {
		res, err := tx.Exec(`INSERT INTO decks (name, updated_at) VALUES (?, ?)`, deck.Name, now)
		if err != nil {
			return 0, fmt.Errorf("failed to insert deck %q: %w", deck.Name, err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return 0, fmt.Errorf("failed to get last insert ID for deck %q: %w", deck.Name, err)
		}
	} else {
		res, err := tx.Exec(`UPDATE decks SET name = ?, updated_at = ? WHERE id = ?`, deck.Name, now, id)
		if err != nil {
			return 0, fmt.Errorf("failed to update deck %d: %w", id, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return 0, fmt.Errorf("%w: %d", ErrDeckNotFound, id)
		}
	}

	if _, err := tx.Exec(`DELETE FROM cards WHERE deck_id = ?`, id); err != nil {
		return 0, fmt.Errorf("failed to clear cards for deck %d: %w", id, err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO cards (deck_id, position, hash, front_text, front_audio, back_text, back_audio, tier, due_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare card insert: %w", err)
	}
	defer stmt.Close()

	for pos, card := range deck.Cards {
		if _, err := stmt.Exec(
			id,
			pos,
			knol.Hash(card),
			card.Front.Text,
			nullString(card.Front.Audio),
			card.Back.Text,
			nullString(card.Back.Audio),
			card.Tier,
			card.Due.String(),
		); err != nil {
			return 0, fmt.Errorf("failed to insert card %d of deck %d: %w", pos, id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit deck %d: %w", id, err)
	}
	return id, nil
}

// DeleteDeck removes a deck, its cards and its review history.
func (db *DB) DeleteDeck(id int64) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin deleting deck %d: %w", id, err)
	}
	defer tx.Rollback()

	for _, q := range []string{
		`DELETE FROM cards WHERE deck_id = ?`,
		`DELETE FROM review_logs WHERE deck_id = ?`,
	} {
		if _, err := tx.Exec(q, id); err != nil {
			return fmt.Errorf("failed to delete deck %d: %w", id, err)
		}
	}
	res, err := tx.Exec(`DELETE FROM decks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete deck %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %d", ErrDeckNotFound, id)
	}
	return tx.Commit()
}

// InsertReviewLog appends a review event.
func (db *DB) InsertReviewLog(log domain.ReviewLog) error {
	_, err := db.conn.Exec(`
		INSERT INTO review_logs (deck_id, card_hash, reviewed_on, grade, tier, due_date)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		log.DeckID,
		log.CardHash,
		log.Reviewed.String(),
		int(log.Grade),
		log.Tier,
		log.Due.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert review log for %s: %w", log.CardHash, err)
	}
	return nil
}

// ReviewLogsForCard returns the review history of a card hash, oldest first.
func (db *DB) ReviewLogsForCard(hash string) ([]domain.ReviewLog, error) {
	rows, err := db.conn.Query(`
		SELECT deck_id, card_hash, reviewed_on, grade, tier, due_date
		FROM review_logs WHERE card_hash = ? ORDER BY id
	`, hash)
	if err != nil {
		return nil, fmt.Errorf("failed to get review logs for %s: %w", hash, err)
	}
	defer rows.Close()

	var logs []domain.ReviewLog
	for rows.Next() {
		var (
			log           domain.ReviewLog
			reviewed, due string
			grade         int
		)
		if err := rows.Scan(&log.DeckID, &log.CardHash, &reviewed, &grade, &log.Tier, &due); err != nil {
			return nil, fmt.Errorf("failed to scan review log row for %s: %w", hash, err)
		}
		log.Grade = schedule.Grade(grade)
		if log.Reviewed, err = calendar.ParseDate(reviewed); err != nil {
			return nil, err
		}
		if log.Due, err = calendar.ParseDate(due); err != nil {
			return nil, err
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
