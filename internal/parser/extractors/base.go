package extractors

import (
	"sort"
	"strconv"
	"strings"
)

// ActionKind classifies one line of a round.
type ActionKind string

const (
	KindPostBlind    ActionKind = "post-blind"
	KindPostAnte     ActionKind = "post-ante"
	KindDeal         ActionKind = "deal"
	KindFold         ActionKind = "fold"
	KindCheck        ActionKind = "check"
	KindCall         ActionKind = "call"
	KindBet          ActionKind = "bet"
	KindRaise        ActionKind = "raise"
	KindShow         ActionKind = "show"
	KindMuck         ActionKind = "muck"
	KindCollect      ActionKind = "collect"
	KindUncalled     ActionKind = "uncalled-return"
	KindUnrecognized ActionKind = "unrecognized"
)

// Action is a single decoded line of the action stream.
type Action struct {
	Seat   *int       `json:"actorSeat,omitempty"`
	Name   string     `json:"actorName,omitempty"`
	Kind   ActionKind `json:"kind"`
	Amount *int       `json:"amount,omitempty"`
	// From is the first figure of "raises <from> to <amount>".
	From  *int   `json:"from,omitempty"`
	Blind string `json:"blind,omitempty"`
	AllIn bool   `json:"allIn,omitempty"`
	Cards []Card `json:"cards,omitempty"`
	Raw   string `json:"rawLine"`
}

// Increment returns Amount - From for raises, and 0 for anything else.
func (a Action) Increment() int {
	if a.Amount == nil || a.From == nil {
		return 0
	}
	return *a.Amount - *a.From
}

// Round is one betting phase and the actions taken in it.
type Round struct {
	Name    string   `json:"name"`
	Board   []Card   `json:"board,omitempty"`
	Actions []Action `json:"actions"`
}

// Helper functions for actor resolution and amounts

// roster resolves actor names to seats. Names are tried longest first so
// that "_jake Gggtd_" wins over a player called "_jake".
type roster struct {
	players []Player
	names   []string
}

func newRoster(players []Player) roster {
	names := make([]string, 0, len(players))
	for _, p := range players {
		names = append(names, p.Name)
	}
	sort.SliceStable(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })
	return roster{players: players, names: names}
}

// split finds the seated player a line starts with and returns the name and
// the remainder after the ": " or " " separator.
func (r roster) split(line string) (string, string, bool) {
	for _, name := range r.names {
		if !strings.HasPrefix(line, name) {
			continue
		}
		rest := line[len(name):]
		switch {
		case strings.HasPrefix(rest, ": "):
			return name, rest[2:], true
		case strings.HasPrefix(rest, " "):
			return name, rest[1:], true
		}
	}
	return "", "", false
}

// seat returns a pointer to the seat of name, or nil if no player matches.
func (r roster) seat(name string) *int {
	if s, ok := seatOf(r.players, name); ok {
		return &s
	}
	return nil
}

// amount parses a chip figure; ok is false when it does not fit an int.
func amount(s string) (n *int, ok bool) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, false
	}
	return &v, true
}
