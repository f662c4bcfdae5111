package main

import (
	"context"
	"errors"
	"strings"

	"pokervr-matchlog/internal/db"
	"pokervr-matchlog/internal/parser"
	"pokervr-matchlog/internal/parser/extractors"
)

// blindsRound is the round_order under which blind posts are stored.
const blindsRound = -1

// storeReport writes every parsed hand and every failure of a run.
func storeReport(ctx context.Context, writer *db.Writer, runID string, report *parser.Report) error {
	for _, h := range report.Hands() {
		if err := writer.InsertHand(ctx, toDBHand(runID, h)); err != nil {
			return err
		}
	}

	failures := report.Failures()
	rows := make([]db.Failure, 0, len(failures))
	for _, he := range failures {
		rows = append(rows, toDBFailure(runID, he))
	}
	return writer.InsertFailures(ctx, rows)
}

func toDBHand(runID string, h *parser.Hand) db.Hand {
	out := db.Hand{
		ID:             h.ID,
		RunID:          runID,
		HandIndex:      h.Index,
		GameType:       h.GameInfo.GameType,
		SmallBlind:     h.GameInfo.SmallBlind(),
		BigBlind:       h.GameInfo.BigBlind(),
		StartedAt:      h.GameInfo.StartTimestamp,
		TableName:      h.TableInfo.TableName,
		MaxPlayers:     h.TableInfo.MaxPlayers,
		DealerSeat:     h.Roles.DealerSeat,
		SmallBlindSeat: h.Roles.SmallBlindSeat,
		BigBlindSeat:   h.Roles.BigBlindSeat,
		HeroName:       h.Hero,
	}

	for _, p := range h.Players {
		out.Players = append(out.Players, db.Player{
			Seat:          p.Seat,
			Name:          p.Name,
			StartingChips: p.StartingChips,
			IsDealer:      p.Roles.Dealer,
			IsSmallBlind:  p.Roles.SmallBlind,
			IsBigBlind:    p.Roles.BigBlind,
			HoleCards:     cardTokens(p.HoleCards),
		})
	}

	out.Actions = appendActions(out.Actions, blindsRound, h.Blinds)
	for i, r := range h.Rounds {
		out.Rounds = append(out.Rounds, db.Round{Order: i, Name: r.Name, Board: cardTokens(r.Board)})
		out.Actions = appendActions(out.Actions, i, r.Actions)
	}
	return out
}

func appendActions(rows []db.Action, round int, actions []extractors.Action) []db.Action {
	for i, a := range actions {
		row := db.Action{
			RoundOrder:  round,
			ActionOrder: i,
			ActorSeat:   a.Seat,
			Kind:        string(a.Kind),
			Amount:      a.Amount,
			AllIn:       a.AllIn,
			Cards:       cardTokens(a.Cards),
			RawLine:     a.Raw,
		}
		if a.Name != "" {
			name := a.Name
			row.ActorName = &name
		}
		rows = append(rows, row)
	}
	return rows
}

func toDBFailure(runID string, he *parser.HandError) db.Failure {
	f := db.Failure{RunID: runID, HandIndex: he.Index, Kind: "unknown", Message: he.Err.Error()}
	if kind := extractors.KindOf(he); kind != nil {
		f.Kind = kind.Error()
	}
	var le *extractors.LineError
	if errors.As(he, &le) && le.Offset >= 0 {
		offset, line := le.Offset, le.Line
		f.LineOffset = &offset
		f.Line = &line
	}
	return f
}

// cardTokens joins cards as log tokens, e.g. "ah kd"; nil when there are none.
func cardTokens(cards []extractors.Card) *string {
	if len(cards) == 0 {
		return nil
	}
	tokens := make([]string, len(cards))
	for i, c := range cards {
		tokens[i] = c.String()
	}
	s := strings.Join(tokens, " ")
	return &s
}
