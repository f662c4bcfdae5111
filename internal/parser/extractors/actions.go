package extractors

import (
	"regexp"
	"strings"
)

const allInSuffix = " and is all-in"

var (
	postBlindRe = regexp.MustCompile(`^posts (small|big) blind (\d+)$`)
	postBothRe  = regexp.MustCompile(`^posts (small & big) blinds (\d+)$`)
	postAnteRe  = regexp.MustCompile(`^posts the ante (\d+)$`)
	foldRe      = regexp.MustCompile(`^folds(?: (\[[^\]]*\]))?$`)
	checkRe     = regexp.MustCompile(`^checks$`)
	callRe      = regexp.MustCompile(`^calls (\d+)$`)
	betRe       = regexp.MustCompile(`^bets (\d+)$`)
	raiseRe     = regexp.MustCompile(`^raises (\d+) to (\d+)$`)
	showRe      = regexp.MustCompile(`^shows (\[[^\]]*\])`)
	muckRe      = regexp.MustCompile(`^(?:mucks hand|doesn't show hand)`)
	collectRe   = regexp.MustCompile(`^collected (\d+) from (?:side |main )?pot`)
	uncalledRe  = regexp.MustCompile(`^Uncalled bet \((\d+)\) returned to (.+)$`)
)

// ParseActions walks the line window of every round in encounter order and
// decodes each line into an Action. Lines that match no known grammar are kept
// as unrecognized actions; only undecodable cards fail the hand.
func ParseActions(lines []string, rounds RoundIndex, players []Player) ([]Round, error) {
	r := newRoster(players)
	out := make([]Round, 0, rounds.Len())

	for _, w := range rounds.Windows(len(lines)) {
		round := Round{Name: w.Marker.Name, Actions: make([]Action, 0, w.End-w.Start)}
		if strings.HasPrefix(w.Marker.Tail, "[") {
			board, err := DecodeCards(w.Marker.Tail)
			if err != nil {
				return nil, atLine(err, w.Marker.Line, lines[w.Marker.Line])
			}
			round.Board = board
		}
		for i := w.Start; i < w.End; i++ {
			a, err := classifyLine(lines[i], r)
			if err != nil {
				return nil, atLine(err, i, lines[i])
			}
			round.Actions = append(round.Actions, a)
		}
		out = append(out, round)
	}
	return out, nil
}

// ParseBlinds decodes the blind posts that sit between the roster and the
// HOLE CARDS marker, outside every round window.
func ParseBlinds(lines []string, rounds RoundIndex, players []Player) ([]Action, error) {
	anchor, err := rounds.anchor(ErrRoleResolution)
	if err != nil {
		return nil, err
	}
	r := newRoster(players)
	blinds := make([]Action, 0, blindPostLines)
	for i := max(anchor-blindPostLines, rosterFirst); i < anchor; i++ {
		a, err := classifyLine(lines[i], r)
		if err != nil {
			return nil, atLine(err, i, lines[i])
		}
		blinds = append(blinds, a)
	}
	return blinds, nil
}

// ClassifyLine decodes one action line. The actor is matched against the
// players first; when no seated player prefixes the line, or the remainder
// after one decodes as no verb, the text before the first ": " (or
// " collected ") is used as a bare name and the seat is left unset.
func ClassifyLine(line string, players []Player) (Action, error) {
	return classifyLine(line, newRoster(players))
}

func classifyLine(line string, r roster) (Action, error) {
	if m := uncalledRe.FindStringSubmatch(line); m != nil {
		n, ok := amount(m[1])
		if !ok {
			return unrecognized(line), nil
		}
		return Action{Seat: r.seat(m[2]), Name: m[2], Kind: KindUncalled, Amount: n, Raw: line}, nil
	}
	if strings.HasPrefix(line, dealtPrefix) {
		name, cards, err := ParseHeroLine(line)
		if err == nil {
			return Action{Seat: r.seat(name), Name: name, Kind: KindDeal, Cards: cards, Raw: line}, nil
		}
		if KindOf(err) == ErrCardDecode {
			return Action{}, err
		}
		return unrecognized(line), nil
	}

	// A seated name may only prefix a longer unseated one ("Bob" in
	// "Bob Smith: folds"), so a remainder no verb accepts falls back to the
	// bare actor split.
	if name, rest, ok := r.split(line); ok {
		if a, matched, err := decodeVerb(name, rest, line, r); err != nil || matched {
			return a, err
		}
	}
	if name, rest, ok := splitBareActor(line); ok {
		if a, matched, err := decodeVerb(name, rest, line, r); err != nil || matched {
			return a, err
		}
	}
	return unrecognized(line), nil
}

// decodeVerb matches rest against the verb grammar. matched is false when no
// pattern accepts it or a figure does not fit an int.
func decodeVerb(name, rest, line string, r roster) (a Action, matched bool, err error) {
	a = Action{Seat: r.seat(name), Name: name, Raw: line}
	verb := rest
	if strings.HasSuffix(verb, allInSuffix) {
		verb = strings.TrimSuffix(verb, allInSuffix)
		a.AllIn = true
	}

	inRange := true
	num := func(s string) *int {
		n, ok := amount(s)
		inRange = inRange && ok
		return n
	}

	switch {
	case postBlindRe.MatchString(verb):
		m := postBlindRe.FindStringSubmatch(verb)
		a.Kind, a.Blind, a.Amount = KindPostBlind, m[1], num(m[2])
	case postBothRe.MatchString(verb):
		m := postBothRe.FindStringSubmatch(verb)
		a.Kind, a.Blind, a.Amount = KindPostBlind, m[1], num(m[2])
	case postAnteRe.MatchString(verb):
		a.Kind, a.Amount = KindPostAnte, num(postAnteRe.FindStringSubmatch(verb)[1])
	case foldRe.MatchString(verb):
		a.Kind = KindFold
		if m := foldRe.FindStringSubmatch(verb); m[1] != "" {
			cards, err := DecodeCards(m[1])
			if err != nil {
				return Action{}, false, err
			}
			a.Cards = cards
		}
	case checkRe.MatchString(verb):
		a.Kind = KindCheck
	case callRe.MatchString(verb):
		a.Kind, a.Amount = KindCall, num(callRe.FindStringSubmatch(verb)[1])
	case betRe.MatchString(verb):
		a.Kind, a.Amount = KindBet, num(betRe.FindStringSubmatch(verb)[1])
	case raiseRe.MatchString(verb):
		m := raiseRe.FindStringSubmatch(verb)
		a.Kind, a.From, a.Amount = KindRaise, num(m[1]), num(m[2])
	case showRe.MatchString(rest):
		cards, err := DecodeCards(showRe.FindStringSubmatch(rest)[1])
		if err != nil {
			return Action{}, false, err
		}
		a.Kind, a.Cards = KindShow, cards
	case muckRe.MatchString(rest):
		a.Kind = KindMuck
	case collectRe.MatchString(rest):
		a.Kind, a.Amount = KindCollect, num(collectRe.FindStringSubmatch(rest)[1])
	default:
		return Action{}, false, nil
	}
	if !inRange {
		return Action{}, false, nil
	}
	return a, true, nil
}

// splitBareActor handles actors that are not on the roster: "<name>: <verb>"
// or "<name> collected ...".
func splitBareActor(line string) (string, string, bool) {
	if i := strings.Index(line, ": "); i > 0 {
		return line[:i], line[i+2:], true
	}
	if i := strings.Index(line, " collected "); i > 0 {
		return line[:i], line[i+1:], true
	}
	return "", "", false
}

func unrecognized(line string) Action {
	return Action{Kind: KindUnrecognized, Raw: line}
}
