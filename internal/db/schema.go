package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema defines the SQLite database schema for storing parsed hands.
// Hand ids are content-addressed, so importing the same log twice replaces
// rows rather than duplicating them.
const schema = `
CREATE TABLE IF NOT EXISTS meta (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	log_path TEXT NOT NULL,
	started_at TEXT NOT NULL,
	finished_at TEXT,
	hands_ok INTEGER NOT NULL DEFAULT 0,
	hands_failed INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS hands (
	id TEXT PRIMARY KEY,
	run_id TEXT NOT NULL,
	hand_index INTEGER NOT NULL,
	game_type TEXT NOT NULL,
	small_blind INTEGER NOT NULL,
	big_blind INTEGER NOT NULL,
	started_at INTEGER NOT NULL,
	table_name TEXT NOT NULL,
	max_players INTEGER NOT NULL,
	dealer_seat INTEGER NOT NULL,
	small_blind_seat INTEGER NOT NULL,
	big_blind_seat INTEGER NOT NULL,
	hero_name TEXT NOT NULL,
	FOREIGN KEY(run_id) REFERENCES runs(id)
);

CREATE TABLE IF NOT EXISTS players (
	hand_id TEXT NOT NULL,
	seat INTEGER NOT NULL,
	name TEXT NOT NULL,
	starting_chips INTEGER NOT NULL,
	is_dealer INTEGER NOT NULL DEFAULT 0,
	is_small_blind INTEGER NOT NULL DEFAULT 0,
	is_big_blind INTEGER NOT NULL DEFAULT 0,
	hole_cards TEXT,
	PRIMARY KEY(hand_id, seat),
	FOREIGN KEY(hand_id) REFERENCES hands(id)
);

CREATE TABLE IF NOT EXISTS rounds (
	hand_id TEXT NOT NULL,
	round_order INTEGER NOT NULL,
	name TEXT NOT NULL,
	board TEXT,
	PRIMARY KEY(hand_id, round_order),
	FOREIGN KEY(hand_id) REFERENCES hands(id)
);

-- round_order -1 holds the blind posts that precede the first round.
CREATE TABLE IF NOT EXISTS actions (
	hand_id TEXT NOT NULL,
	round_order INTEGER NOT NULL,
	action_order INTEGER NOT NULL,
	actor_seat INTEGER,
	actor_name TEXT,
	kind TEXT NOT NULL,
	amount INTEGER,
	all_in INTEGER NOT NULL DEFAULT 0,
	cards TEXT,
	raw_line TEXT NOT NULL,
	PRIMARY KEY(hand_id, round_order, action_order),
	FOREIGN KEY(hand_id) REFERENCES hands(id)
);

CREATE TABLE IF NOT EXISTS parse_failures (
	run_id TEXT NOT NULL,
	hand_index INTEGER NOT NULL,
	kind TEXT NOT NULL,
	line_offset INTEGER,
	line TEXT,
	message TEXT NOT NULL,
	PRIMARY KEY(run_id, hand_index),
	FOREIGN KEY(run_id) REFERENCES runs(id)
);

-- Indexes for common query patterns
CREATE INDEX IF NOT EXISTS idx_hands_run ON hands(run_id, hand_index);
CREATE INDEX IF NOT EXISTS idx_hands_started_at ON hands(started_at);
CREATE INDEX IF NOT EXISTS idx_players_name ON players(name);
CREATE INDEX IF NOT EXISTS idx_actions_kind ON actions(kind);
CREATE INDEX IF NOT EXISTS idx_actions_actor ON actions(hand_id, actor_seat);
CREATE INDEX IF NOT EXISTS idx_parse_failures_kind ON parse_failures(kind);
`

// InitSchema initializes the database schema.
// It creates all tables and indexes if they don't already exist.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}
