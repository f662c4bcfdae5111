package extractors

import "strings"

const dealtPrefix = "Dealt to "

// ParseHeroLine splits "Dealt to <name> [<cards>]" into the hero name and cards.
func ParseHeroLine(line string) (string, []Card, error) {
	if !strings.HasPrefix(line, dealtPrefix) {
		return "", nil, lineErr(ErrHeroLineMissing, -1, line, "expected %q", dealtPrefix)
	}
	rest := line[len(dealtPrefix):]
	open := strings.Index(rest, " [")
	if open < 0 {
		return "", nil, lineErr(ErrHeroLineMissing, -1, line, "missing card brackets")
	}
	name := rest[:open]
	if name == "" {
		return "", nil, lineErr(ErrHeroLineMissing, -1, line, "empty hero name")
	}
	cards, err := DecodeCards(rest[open+1:])
	if err != nil {
		return "", nil, err
	}
	return name, cards, nil
}

// AttachHoleCards reads the line after the HOLE CARDS marker and gives the
// decoded cards to the matching player only. It returns the hero's name.
func AttachHoleCards(lines []string, rounds RoundIndex, players []Player) (string, []Player, error) {
	anchor, err := rounds.anchor(ErrHeroLineMissing)
	if err != nil {
		return "", nil, err
	}
	offset := anchor + 1
	if offset >= len(lines) {
		return "", nil, lineErr(ErrHeroLineMissing, -1, "", "hand ends at the %q marker", HoleCards)
	}
	line := lines[offset]

	name, cards, err := ParseHeroLine(line)
	if err != nil {
		return "", nil, atLine(err, offset, line)
	}

	out := make([]Player, len(players))
	copy(out, players)
	found := false
	for i := range out {
		out[i].HoleCards = nil
		if out[i].Name == name {
			out[i].HoleCards = cards
			found = true
		}
	}
	if !found {
		return "", nil, lineErr(ErrHeroLineMissing, offset, line, "hero %q is not seated", name)
	}
	return name, out, nil
}
