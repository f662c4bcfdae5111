package extractors

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// headerTimeLayout is the fixed timestamp format of the header, YYYY/MM/DD HH:MM:SS,
// followed by a zone name.
const headerTimeLayout = "2006/01/02 15:04:05"

// headerZones are the zone names a header may carry. time.Parse would accept
// any abbreviation and silently give unknown ones a zero offset.
var headerZones = map[string]*time.Location{
	"UTC": time.UTC,
	"GMT": time.UTC,
}

// GameInfo is decoded from the first line of a hand.
type GameInfo struct {
	GameType       string `json:"gameType"`
	Stakes         [2]int `json:"gameStakes"`
	StartTimestamp int64  `json:"gameDateTime"`
}

// SmallBlind returns the small blind stake.
func (g GameInfo) SmallBlind() int { return g.Stakes[0] }

// BigBlind returns the big blind stake.
func (g GameInfo) BigBlind() int { return g.Stakes[1] }

// StartedAt returns the start time in UTC.
func (g GameInfo) StartedAt() time.Time {
	return time.Unix(g.StartTimestamp, 0).UTC()
}

var stakesPattern = regexp.MustCompile(`^(\d+)/(\d+)$`)

// ParseHeader parses a line shaped like
//
//	PokerStars Hand: Hold'em No Limit (25/50) - 2025/12/24 15:56:45 UTC
func ParseHeader(line string) (GameInfo, error) {
	fail := func(format string, args ...interface{}) (GameInfo, error) {
		return GameInfo{}, lineErr(ErrHeaderParse, 0, line, format, args...)
	}

	prefixEnd := strings.Index(line, ": ")
	if prefixEnd < 0 {
		return fail("missing %q after prefix", ": ")
	}
	rest := line[prefixEnd+2:]

	dash := strings.Index(rest, " - ")
	if dash < 0 {
		return fail("missing %q before timestamp", " - ")
	}
	game, stamp := rest[:dash], strings.TrimSpace(rest[dash+3:])

	// The stake parenthesis is the last one before the timestamp, so
	// parentheses inside the game type are tolerated.
	open := strings.LastIndex(game, " (")
	if open < 0 || !strings.HasSuffix(game, ")") {
		return fail("missing stake parenthesis")
	}
	gameType := strings.TrimSpace(game[:open])
	if gameType == "" {
		return fail("empty game type")
	}

	m := stakesPattern.FindStringSubmatch(strings.TrimSpace(game[open+2 : len(game)-1]))
	if m == nil {
		return fail("stakes are not <sb>/<bb> integers")
	}
	sb, err := strconv.Atoi(m[1])
	if err != nil || sb <= 0 {
		return fail("small blind %q is not a positive integer", m[1])
	}
	bb, err := strconv.Atoi(m[2])
	if err != nil || bb <= 0 {
		return fail("big blind %q is not a positive integer", m[2])
	}
	if sb > bb {
		return fail("small blind %d exceeds big blind %d", sb, bb)
	}

	sp := strings.LastIndex(stamp, " ")
	if sp < 0 {
		return fail("timestamp %q has no zone", stamp)
	}
	zone := stamp[sp+1:]
	loc, ok := headerZones[zone]
	if !ok {
		return fail("unsupported time zone %q", zone)
	}
	started, err := time.ParseInLocation(headerTimeLayout, stamp[:sp], loc)
	if err != nil {
		return fail("timestamp %q does not match %q", stamp, headerTimeLayout+" TZ")
	}

	return GameInfo{
		GameType:       gameType,
		Stakes:         [2]int{sb, bb},
		StartTimestamp: started.Round(time.Second).Unix(),
	}, nil
}
