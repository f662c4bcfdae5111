package extractors

import "strings"

// Roles names the seats holding the button and the blinds.
type Roles struct {
	DealerSeat     int `json:"dealerSeat"`
	SmallBlindSeat int `json:"smallblindSeat"`
	BigBlindSeat   int `json:"bigblindSeat"`
}

// ResolveRoles finds the button seat from the table line and the blind posters
// on the two lines directly above the HOLE CARDS marker, then flags the
// matching players. It returns the players with their Roles filled in.
func ResolveRoles(lines []string, rounds RoundIndex, players []Player) (Roles, []Player, error) {
	anchor, err := rounds.anchor(ErrRoleResolution)
	if err != nil {
		return Roles{}, nil, err
	}
	if len(lines) < 2 {
		return Roles{}, nil, lineErr(ErrRoleResolution, -1, "", "hand has no table line")
	}
	if anchor-blindPostLines < rosterFirst {
		return Roles{}, nil, lineErr(ErrRoleResolution, -1, "", "no room for blind posts before %q", HoleCards)
	}

	dealer, err := ButtonSeat(lines[1])
	if err != nil {
		return Roles{}, nil, err
	}
	if !hasSeat(players, dealer) {
		return Roles{}, nil, lineErr(ErrRoleResolution, 1, lines[1], "button seat %d is not occupied", dealer)
	}

	sb, err := posterSeat(lines, anchor-2, players)
	if err != nil {
		return Roles{}, nil, err
	}
	bb, err := posterSeat(lines, anchor-1, players)
	if err != nil {
		return Roles{}, nil, err
	}

	roles := Roles{DealerSeat: dealer, SmallBlindSeat: sb, BigBlindSeat: bb}
	out := make([]Player, len(players))
	for i, p := range players {
		p.Roles = PlayerRoles{
			Dealer:     p.Seat == dealer,
			SmallBlind: p.Seat == sb,
			BigBlind:   p.Seat == bb,
		}
		out[i] = p
	}
	return roles, out, nil
}

// posterSeat resolves the name before " posts" on the given line to a seat.
func posterSeat(lines []string, offset int, players []Player) (int, error) {
	line := lines[offset]
	i := strings.Index(line, " posts ")
	if i < 0 {
		return 0, lineErr(ErrRoleResolution, offset, line, "expected a blind post")
	}
	name := strings.TrimSuffix(line[:i], ":")
	seat, ok := seatOf(players, name)
	if !ok {
		return 0, lineErr(ErrRoleResolution, offset, line, "poster %q is not seated", name)
	}
	return seat, nil
}

func hasSeat(players []Player, seat int) bool {
	for _, p := range players {
		if p.Seat == seat {
			return true
		}
	}
	return false
}
