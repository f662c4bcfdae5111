package parser

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"pokervr-matchlog/internal/parser/extractors"
)

// handNamespace seeds content-addressed hand ids, so the same hand text
// always maps to the same id.
var handNamespace = uuid.MustParse("6f1d3c52-8a0e-4f6b-9d57-2b7c1e4a90d3")

// Hand is one fully decoded hand.
type Hand struct {
	Index     int                  `json:"handIndex"`
	ID        string               `json:"id"`
	GameInfo  extractors.GameInfo  `json:"gameInfo"`
	TableInfo extractors.TableInfo `json:"tableInfo"`
	Roles     extractors.Roles     `json:"roles"`
	Hero      string               `json:"hero"`
	Players   []extractors.Player  `json:"players"`
	Blinds    []extractors.Action  `json:"blinds"`
	Rounds    []extractors.Round   `json:"rounds"`

	// RoundIndex is the marker lookup used while parsing. It is not part of
	// the output; Rounds is.
	RoundIndex extractors.RoundIndex `json:"-"`
}

// Player returns the player in the given seat.
func (h *Hand) Player(seat int) (extractors.Player, bool) {
	for _, p := range h.Players {
		if p.Seat == seat {
			return p, true
		}
	}
	return extractors.Player{}, false
}

// Round returns the named round.
func (h *Hand) Round(name string) (extractors.Round, bool) {
	for _, r := range h.Rounds {
		if r.Name == name {
			return r, true
		}
	}
	return extractors.Round{}, false
}

// HandError is a failure to parse one hand. It never aborts a bulk run on
// its own.
type HandError struct {
	Index int
	Err   error
}

func (e *HandError) Error() string {
	return fmt.Sprintf("hand %d: %v", e.Index, e.Err)
}

func (e *HandError) Unwrap() error {
	return e.Err
}

// HandID returns the content-addressed id of a hand's lines.
func HandID(lines []string) string {
	return uuid.NewSHA1(handNamespace, []byte(strings.Join(lines, "\n"))).String()
}

// ParseHand runs every extractor over one hand's lines in dependency order.
// Any failure is returned as a *HandError and no partial Hand is built.
func ParseHand(index int, lines []string) (*Hand, error) {
	fail := func(err error) (*Hand, error) {
		return nil, &HandError{Index: index, Err: err}
	}
	if len(lines) < 2 {
		return fail(&extractors.LineError{Kind: extractors.ErrMalformedLog, Offset: -1, Reason: "hand has fewer than two lines"})
	}

	rounds, err := extractors.IndexRounds(lines)
	if err != nil {
		return fail(err)
	}
	game, err := extractors.ParseHeader(lines[0])
	if err != nil {
		return fail(err)
	}
	table, err := extractors.ParseTable(lines[1])
	if err != nil {
		return fail(err)
	}

	players, err := extractors.ParseRoster(lines, rounds)
	if err != nil {
		return fail(err)
	}
	if err := extractors.ValidateRoster(players, table); err != nil {
		return fail(err)
	}

	roles, players, err := extractors.ResolveRoles(lines, rounds, players)
	if err != nil {
		return fail(err)
	}
	hero, players, err := extractors.AttachHoleCards(lines, rounds, players)
	if err != nil {
		return fail(err)
	}

	blinds, err := extractors.ParseBlinds(lines, rounds, players)
	if err != nil {
		return fail(err)
	}
	actions, err := extractors.ParseActions(lines, rounds, players)
	if err != nil {
		return fail(err)
	}

	return &Hand{
		Index:      index,
		ID:         HandID(lines),
		GameInfo:   game,
		TableInfo:  table,
		Roles:      roles,
		Hero:       hero,
		Players:    players,
		Blinds:     blinds,
		Rounds:     actions,
		RoundIndex: rounds,
	}, nil
}
