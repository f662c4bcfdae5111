package extractors

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// sampleHand is a complete five-handed hand that ends on the turn.
var sampleHand = []string{
	"PokerStars Hand: Hold'em No Limit (25/50) - 2025/12/24 15:56:45 UTC",
	"Table 'BigFoot79's Cash Game' 8-max (Play Money) Seat #4 is the button",
	"Seat 3: quaq_ (5000 in chips)",
	"Seat 4: The_Destroyers (5000 in chips)",
	"Seat 5: _jake Gggtd_ (20800 in chips)",
	"Seat 6: Viovyx (3750 in chips)",
	"Seat 8: Eon.Sanders (78750 in chips)",
	"Viovyx: posts small blind 25",
	"Eon.Sanders: posts big blind 50",
	"*** HOLE CARDS ***",
	"Dealt to quaq_ [ah kd]",
	"quaq_: raises 100 to 150",
	"The_Destroyers: folds",
	"_jake Gggtd_: calls 150",
	"Viovyx: folds",
	"Eon.Sanders: calls 100",
	"*** FLOP *** [th 7c 2d]",
	"Eon.Sanders: checks",
	"quaq_: bets 300",
	"_jake Gggtd_: raises 300 to 900",
	"Eon.Sanders: folds",
	"quaq_: calls 600",
	"*** TURN *** [th 7c 2d] [qs]",
	"quaq_: bets 3950 and is all-in",
	"_jake Gggtd_: folds",
	"Uncalled bet (3950) returned to quaq_",
	"quaq_ collected 2275 from pot",
	"*** SUMMARY ***",
	"Total pot 2275 | Rake 0",
	"Board [th 7c 2d qs]",
	"Seat 3: quaq_ collected (2275)",
}

// cloneLines returns a copy of lines that a test may edit freely.
func cloneLines(lines []string) []string {
	return append([]string(nil), lines...)
}

func mustIndex(t *testing.T, lines []string) RoundIndex {
	t.Helper()
	rounds, err := IndexRounds(lines)
	require.NoError(t, err)
	return rounds
}

func mustRoster(t *testing.T, lines []string) ([]Player, RoundIndex) {
	t.Helper()
	rounds := mustIndex(t, lines)
	players, err := ParseRoster(lines, rounds)
	require.NoError(t, err)
	return players, rounds
}

func requireKind(t *testing.T, err error, kind error) *LineError {
	t.Helper()
	require.Error(t, err)
	require.ErrorIs(t, err, kind)
	var le *LineError
	require.ErrorAs(t, err, &le)
	return le
}
