package extractors

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	seatPrefix     = "Seat "
	chipsSuffix    = " in chips)"
	rosterFirst    = 2 // lines 0 and 1 are the header and table lines
	blindPostLines = 2
)

// PlayerRoles flags the forced positions a player holds in a hand.
type PlayerRoles struct {
	Dealer     bool `json:"dealer"`
	SmallBlind bool `json:"smallblind"`
	BigBlind   bool `json:"bigblind"`
}

// Player is one seated player. HoleCards is only set for the hero.
type Player struct {
	Seat          int         `json:"seat"`
	Name          string      `json:"name"`
	StartingChips int         `json:"startingChips"`
	Roles         PlayerRoles `json:"roles"`
	HoleCards     []Card      `json:"cards,omitempty"`
}

// ParseRoster reads the seat lines between the table line and the blind posts,
// i.e. lines [2, HOLE CARDS - 2).
func ParseRoster(lines []string, rounds RoundIndex) ([]Player, error) {
	anchor, err := rounds.anchor(ErrRosterParse)
	if err != nil {
		return nil, err
	}
	end := anchor - blindPostLines
	if end-rosterFirst < 2 {
		return nil, lineErr(ErrRosterParse, -1, "", "found %d roster lines before %q, need at least 2", max(end-rosterFirst, 0), HoleCards)
	}

	players := make([]Player, 0, end-rosterFirst)
	for i := rosterFirst; i < end; i++ {
		p, err := parseSeatLine(lines[i])
		if err != nil {
			return nil, lineErr(ErrRosterParse, i, lines[i], "%s", err.Error())
		}
		players = append(players, p)
	}
	return players, nil
}

// parseSeatLine parses "Seat <n>: <name> (<chips> in chips)". The name is
// anchored on the last " (" before " in chips)" so it may hold spaces or
// parentheses. Trailing text such as "is sitting out" is ignored.
func parseSeatLine(line string) (Player, error) {
	if !strings.HasPrefix(line, seatPrefix) {
		return Player{}, fmt.Errorf("missing %q prefix", seatPrefix)
	}
	colon := strings.Index(line, ": ")
	if colon < 0 {
		return Player{}, errors.New("missing seat number terminator")
	}
	seat, err := strconv.Atoi(line[len(seatPrefix):colon])
	if err != nil || seat <= 0 {
		return Player{}, fmt.Errorf("seat %q is not a positive integer", line[len(seatPrefix):colon])
	}

	rest := line[colon+2:]
	chipsEnd := strings.LastIndex(rest, chipsSuffix)
	if chipsEnd < 0 {
		return Player{}, fmt.Errorf("missing %q", chipsSuffix)
	}
	open := strings.LastIndex(rest[:chipsEnd], " (")
	if open < 0 {
		return Player{}, errors.New("missing chip count parenthesis")
	}
	name := strings.TrimSpace(rest[:open])
	if name == "" {
		return Player{}, errors.New("empty player name")
	}
	chipsText := rest[open+2 : chipsEnd]
	chips, err := strconv.Atoi(chipsText)
	if err != nil || chips < 0 || strings.HasPrefix(chipsText, "+") {
		return Player{}, fmt.Errorf("chip count %q is not a non-negative integer", chipsText)
	}

	return Player{Seat: seat, Name: name, StartingChips: chips}, nil
}

// ValidateRoster checks seat numbers are unique and within 1..maxPlayers.
func ValidateRoster(players []Player, table TableInfo) error {
	if len(players) > table.MaxPlayers {
		return lineErr(ErrRosterParse, -1, "", "%d players at a %d-max table", len(players), table.MaxPlayers)
	}
	seen := make(map[int]bool, len(players))
	for _, p := range players {
		if p.Seat < 1 || p.Seat > table.MaxPlayers {
			return lineErr(ErrRosterParse, -1, "", "seat %d outside 1..%d", p.Seat, table.MaxPlayers)
		}
		if seen[p.Seat] {
			return lineErr(ErrRosterParse, -1, "", "seat %d listed twice", p.Seat)
		}
		seen[p.Seat] = true
	}
	return nil
}

// seatOf resolves a player name to a seat by exact match.
func seatOf(players []Player, name string) (int, bool) {
	for _, p := range players {
		if p.Name == name {
			return p.Seat, true
		}
	}
	return 0, false
}
