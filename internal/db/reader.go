package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Reader provides methods to read parsed hands from the database.
type Reader struct {
	db *sql.DB
}

// NewReader creates a new database reader.
func NewReader(db *sql.DB) *Reader {
	return &Reader{db: db}
}

// HandSummary is a hand row without its children.
type HandSummary struct {
	ID        string
	RunID     string
	HandIndex int
	GameType  string
	StartedAt int64
	TableName string
	HeroName  string
}

// ActionQuery represents query parameters for actions.
type ActionQuery struct {
	HandID string
	Kind   *string
	Seat   *int
	Round  *int
}

// GetRun retrieves a run record.
func (r *Reader) GetRun(ctx context.Context, runID string) (*Run, error) {
	query := `
		SELECT id, log_path, started_at, finished_at, hands_ok, hands_failed
		FROM runs
		WHERE id = ?
	`
	var (
		run        Run
		startedAt  string
		finishedAt sql.NullString
	)
	err := r.db.QueryRowContext(ctx, query, runID).Scan(
		&run.ID, &run.LogPath, &startedAt, &finishedAt, &run.HandsOK, &run.HandsFailed,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}

	if run.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
		return nil, fmt.Errorf("failed to parse run start: %w", err)
	}
	if finishedAt.Valid {
		t, err := time.Parse(time.RFC3339, finishedAt.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse run finish: %w", err)
		}
		run.FinishedAt = &t
	}
	return &run, nil
}

// CountHands returns the number of hands stored for a run.
func (r *Reader) CountHands(ctx context.Context, runID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM hands WHERE run_id = ?`, runID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count hands: %w", err)
	}
	return n, nil
}

// GetHands retrieves the hands stored for a run, in log order.
func (r *Reader) GetHands(ctx context.Context, runID string) ([]HandSummary, error) {
	query := `
		SELECT id, run_id, hand_index, game_type, started_at, table_name, hero_name
		FROM hands
		WHERE run_id = ?
		ORDER BY hand_index ASC
	`
	rows, err := r.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query hands: %w", err)
	}
	defer rows.Close()

	hands := make([]HandSummary, 0)
	for rows.Next() {
		var h HandSummary
		if err := rows.Scan(&h.ID, &h.RunID, &h.HandIndex, &h.GameType, &h.StartedAt, &h.TableName, &h.HeroName); err != nil {
			return nil, fmt.Errorf("failed to scan hand: %w", err)
		}
		hands = append(hands, h)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating hands: %w", err)
	}
	return hands, nil
}

// GetPlayers retrieves the players of a hand ordered by seat.
func (r *Reader) GetPlayers(ctx context.Context, handID string) ([]Player, error) {
	query := `
		SELECT seat, name, starting_chips, is_dealer, is_small_blind, is_big_blind, hole_cards
		FROM players
		WHERE hand_id = ?
		ORDER BY seat ASC
	`
	rows, err := r.db.QueryContext(ctx, query, handID)
	if err != nil {
		return nil, fmt.Errorf("failed to query players: %w", err)
	}
	defer rows.Close()

	players := make([]Player, 0)
	for rows.Next() {
		var p Player
		if err := rows.Scan(&p.Seat, &p.Name, &p.StartingChips, &p.IsDealer, &p.IsSmallBlind, &p.IsBigBlind, &p.HoleCards); err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating players: %w", err)
	}
	return players, nil
}

// GetActions retrieves actions for a hand in stream order.
func (r *Reader) GetActions(ctx context.Context, q ActionQuery) ([]Action, error) {
	query := `
		SELECT round_order, action_order, actor_seat, actor_name, kind, amount, all_in, cards, raw_line
		FROM actions
		WHERE hand_id = ?
	`
	args := []interface{}{q.HandID}

	if q.Kind != nil {
		query += " AND kind = ?"
		args = append(args, *q.Kind)
	}

	if q.Seat != nil {
		query += " AND actor_seat = ?"
		args = append(args, *q.Seat)
	}

	if q.Round != nil {
		query += " AND round_order = ?"
		args = append(args, *q.Round)
	}

	query += " ORDER BY round_order ASC, action_order ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query actions: %w", err)
	}
	defer rows.Close()

	actions := make([]Action, 0)
	for rows.Next() {
		var (
			a      Action
			seat   sql.NullInt64
			amount sql.NullInt64
		)
		err := rows.Scan(
			&a.RoundOrder, &a.ActionOrder, &seat, &a.ActorName, &a.Kind,
			&amount, &a.AllIn, &a.Cards, &a.RawLine,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan action: %w", err)
		}

		if seat.Valid {
			s := int(seat.Int64)
			a.ActorSeat = &s
		}
		if amount.Valid {
			n := int(amount.Int64)
			a.Amount = &n
		}

		actions = append(actions, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating actions: %w", err)
	}
	return actions, nil
}

// GetFailures retrieves the failures recorded for a run.
func (r *Reader) GetFailures(ctx context.Context, runID string) ([]Failure, error) {
	query := `
		SELECT run_id, hand_index, kind, line_offset, line, message
		FROM parse_failures
		WHERE run_id = ?
		ORDER BY hand_index ASC
	`
	rows, err := r.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query failures: %w", err)
	}
	defer rows.Close()

	failures := make([]Failure, 0)
	for rows.Next() {
		var (
			f      Failure
			offset sql.NullInt64
		)
		if err := rows.Scan(&f.RunID, &f.HandIndex, &f.Kind, &offset, &f.Line, &f.Message); err != nil {
			return nil, fmt.Errorf("failed to scan failure: %w", err)
		}
		if offset.Valid {
			n := int(offset.Int64)
			f.LineOffset = &n
		}
		failures = append(failures, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating failures: %w", err)
	}
	return failures, nil
}

// GetMeta retrieves a metadata value.
func (r *Reader) GetMeta(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get meta: %w", err)
	}
	return value, nil
}
