package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Writer provides methods to write parsed hands to the database.
type Writer struct {
	db *sql.DB
}

// NewWriter creates a new database writer.
func NewWriter(db *sql.DB) *Writer {
	return &Writer{db: db}
}

// Run represents one import of a log file.
type Run struct {
	ID          string
	LogPath     string
	StartedAt   time.Time
	FinishedAt  *time.Time
	HandsOK     int
	HandsFailed int
}

// Hand represents a parsed hand with its children.
type Hand struct {
	ID             string
	RunID          string
	HandIndex      int
	GameType       string
	SmallBlind     int
	BigBlind       int
	StartedAt      int64 // seconds since epoch
	TableName      string
	MaxPlayers     int
	DealerSeat     int
	SmallBlindSeat int
	BigBlindSeat   int
	HeroName       string
	Players        []Player
	Rounds         []Round
	Actions        []Action
}

// Player represents a seated player in a hand.
type Player struct {
	Seat          int
	Name          string
	StartingChips int
	IsDealer      bool
	IsSmallBlind  bool
	IsBigBlind    bool
	HoleCards     *string // space separated tokens, hero only
}

// Round represents a betting round in a hand.
type Round struct {
	Order int
	Name  string
	Board *string
}

// Action represents one line of a round's action stream.
type Action struct {
	RoundOrder  int // -1 for blind posts
	ActionOrder int
	ActorSeat   *int
	ActorName   *string
	Kind        string
	Amount      *int
	AllIn       bool
	Cards       *string
	RawLine     string
}

// Failure represents a hand that could not be parsed.
type Failure struct {
	RunID      string
	HandIndex  int
	Kind       string
	LineOffset *int
	Line       *string
	Message    string
}

// InsertRun inserts or replaces a run record.
func (w *Writer) InsertRun(ctx context.Context, r Run) error {
	query := `
		INSERT OR REPLACE INTO runs (id, log_path, started_at, finished_at, hands_ok, hands_failed)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := w.db.ExecContext(ctx, query, r.ID, r.LogPath, r.StartedAt.UTC().Format(time.RFC3339), formatTime(r.FinishedAt), r.HandsOK, r.HandsFailed)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// FinishRun records the outcome counts of a run.
func (w *Writer) FinishRun(ctx context.Context, runID string, ok, failed int, at time.Time) error {
	query := `UPDATE runs SET finished_at = ?, hands_ok = ?, hands_failed = ? WHERE id = ?`
	res, err := w.db.ExecContext(ctx, query, at.UTC().Format(time.RFC3339), ok, failed, runID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("failed to finish run: run %s not found", runID)
	}
	return nil
}

// InsertHand replaces a hand and all of its players, rounds and actions in a
// single transaction.
func (w *Writer) InsertHand(ctx context.Context, h Hand) error {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"actions", "rounds", "players"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE hand_id = ?", h.ID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO hands (
			id, run_id, hand_index, game_type, small_blind, big_blind, started_at,
			table_name, max_players, dealer_seat, small_blind_seat, big_blind_seat, hero_name
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		h.ID, h.RunID, h.HandIndex, h.GameType, h.SmallBlind, h.BigBlind, h.StartedAt,
		h.TableName, h.MaxPlayers, h.DealerSeat, h.SmallBlindSeat, h.BigBlindSeat, h.HeroName,
	)
	if err != nil {
		return fmt.Errorf("failed to insert hand: %w", err)
	}

	playerStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO players (hand_id, seat, name, starting_chips, is_dealer, is_small_blind, is_big_blind, hole_cards)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer playerStmt.Close()

	for _, p := range h.Players {
		_, err := playerStmt.ExecContext(ctx,
			h.ID, p.Seat, p.Name, p.StartingChips,
			boolInt(p.IsDealer), boolInt(p.IsSmallBlind), boolInt(p.IsBigBlind), p.HoleCards,
		)
		if err != nil {
			return fmt.Errorf("failed to insert player: %w", err)
		}
	}

	roundStmt, err := tx.PrepareContext(ctx, `INSERT INTO rounds (hand_id, round_order, name, board) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer roundStmt.Close()

	for _, r := range h.Rounds {
		if _, err := roundStmt.ExecContext(ctx, h.ID, r.Order, r.Name, r.Board); err != nil {
			return fmt.Errorf("failed to insert round: %w", err)
		}
	}

	actionStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO actions (
			hand_id, round_order, action_order, actor_seat, actor_name,
			kind, amount, all_in, cards, raw_line
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer actionStmt.Close()

	for _, a := range h.Actions {
		_, err := actionStmt.ExecContext(ctx,
			h.ID, a.RoundOrder, a.ActionOrder, a.ActorSeat, a.ActorName,
			a.Kind, a.Amount, boolInt(a.AllIn), a.Cards, a.RawLine,
		)
		if err != nil {
			return fmt.Errorf("failed to insert action: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// InsertFailures inserts multiple failure records in a transaction.
func (w *Writer) InsertFailures(ctx context.Context, failures []Failure) error {
	if len(failures) == 0 {
		return nil
	}

	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT OR REPLACE INTO parse_failures (run_id, hand_index, kind, line_offset, line, message)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, f := range failures {
		_, err := stmt.ExecContext(ctx, f.RunID, f.HandIndex, f.Kind, f.LineOffset, f.Line, f.Message)
		if err != nil {
			return fmt.Errorf("failed to insert failure: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// SetMeta sets a metadata key-value pair.
func (w *Writer) SetMeta(ctx context.Context, key, value string) error {
	query := `INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)`
	_, err := w.db.ExecContext(ctx, query, key, value)
	if err != nil {
		return fmt.Errorf("failed to set meta: %w", err)
	}
	return nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
