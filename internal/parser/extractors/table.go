package extractors

import (
	"regexp"
	"strconv"
	"strings"
)

const tablePrefix = "Table '"

// TableInfo is decoded from the second line of a hand.
type TableInfo struct {
	TableName  string `json:"tableName"`
	MaxPlayers int    `json:"tableMaxPlayers"`
}

// The name group is greedy so the closing quote is the last "' " that is
// directly followed by the seat count, not the first apostrophe in the name.
var (
	tablePattern  = regexp.MustCompile(`^Table '(.*)' (\d+)-max\b`)
	buttonPattern = regexp.MustCompile(`Seat #(\d+) is the button`)
)

// ParseTable parses a line shaped like
//
//	Table 'BigFoot79's Cash Game' 8-max (Play Money) Seat #4 is the button
func ParseTable(line string) (TableInfo, error) {
	if !strings.HasPrefix(line, tablePrefix) {
		return TableInfo{}, lineErr(ErrTableParse, 1, line, "missing %q prefix", tablePrefix)
	}
	if !strings.Contains(line, "-max") {
		return TableInfo{}, lineErr(ErrTableParse, 1, line, "missing -max seat count")
	}
	m := tablePattern.FindStringSubmatch(line)
	if m == nil {
		return TableInfo{}, lineErr(ErrTableParse, 1, line, "no closing quote before seat count")
	}
	maxPlayers, err := strconv.Atoi(m[2])
	if err != nil || maxPlayers <= 0 {
		return TableInfo{}, lineErr(ErrTableParse, 1, line, "seat count %q is not a positive integer", m[2])
	}
	return TableInfo{TableName: m[1], MaxPlayers: maxPlayers}, nil
}

// ButtonSeat returns the dealer seat from the "Seat #<n> is the button"
// clause. The log counts the button from zero while seats count from one.
func ButtonSeat(line string) (int, error) {
	m := buttonPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, lineErr(ErrRoleResolution, 1, line, "missing button clause")
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, lineErr(ErrRoleResolution, 1, line, "button seat %q is not an integer", m[1])
	}
	return n + 1, nil
}
