package storage

const schema = `
-- The 'decks' table names each deck. The id is the deck's storage location.
CREATE TABLE IF NOT EXISTS decks (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL,
    updated_at DATETIME
);

-- The 'cards' table holds every card in deck order.
CREATE TABLE IF NOT EXISTS cards (
    deck_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    hash TEXT NOT NULL,
    front_text TEXT NOT NULL,
    front_audio TEXT,
    back_text TEXT NOT NULL,
    back_audio TEXT,
    tier INTEGER NOT NULL DEFAULT 0,
    due_date TEXT NOT NULL, -- YYYY-MM-DD

    PRIMARY KEY(deck_id, position),
    FOREIGN KEY(deck_id) REFERENCES decks(id)
);

-- The 'review_logs' table keeps one row per review.
CREATE TABLE IF NOT EXISTS review_logs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    deck_id INTEGER NOT NULL,
    card_hash TEXT NOT NULL,
    reviewed_on TEXT NOT NULL,
    grade INTEGER NOT NULL,
    tier INTEGER NOT NULL,
    due_date TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_review_logs_card_hash ON review_logs(card_hash);
`
