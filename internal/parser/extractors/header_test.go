package extractors

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHeader(t *testing.T) {
	info, err := ParseHeader(sampleHand[0])
	require.NoError(t, err)

	assert.Equal(t, "Hold'em No Limit", info.GameType)
	assert.Equal(t, [2]int{25, 50}, info.Stakes)
	assert.Equal(t, 25, info.SmallBlind())
	assert.Equal(t, 50, info.BigBlind())

	want := time.Date(2025, time.December, 24, 15, 56, 45, 0, time.UTC)
	assert.Equal(t, want.Unix(), info.StartTimestamp)
	assert.True(t, want.Equal(info.StartedAt()))
}

func TestParseHeaderParenthesesInGameType(t *testing.T) {
	info, err := ParseHeader("PokerStars Hand: Hold'em (6+) No Limit (5/10) - 2025/01/02 03:04:05 UTC")
	require.NoError(t, err)
	assert.Equal(t, "Hold'em (6+) No Limit", info.GameType)
	assert.Equal(t, [2]int{5, 10}, info.Stakes)
}

func TestParseHeaderEqualBlinds(t *testing.T) {
	info, err := ParseHeader("PokerStars Hand: Hold'em No Limit (50/50) - 2025/12/24 15:56:45 UTC")
	require.NoError(t, err)
	assert.Equal(t, [2]int{50, 50}, info.Stakes)
}

func TestParseHeaderGMT(t *testing.T) {
	utc, err := ParseHeader("PokerStars Hand: Hold'em No Limit (25/50) - 2025/12/24 15:56:45 UTC")
	require.NoError(t, err)
	gmt, err := ParseHeader("PokerStars Hand: Hold'em No Limit (25/50) - 2025/12/24 15:56:45 GMT")
	require.NoError(t, err)
	assert.Equal(t, utc.StartTimestamp, gmt.StartTimestamp)
}

func TestParseHeaderRejects(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"no prefix separator", "PokerStars Hand Hold'em No Limit (25/50) - 2025/12/24 15:56:45 UTC"},
		{"no timestamp separator", "PokerStars Hand: Hold'em No Limit (25/50) 2025/12/24 15:56:45 UTC"},
		{"no stakes", "PokerStars Hand: Hold'em No Limit - 2025/12/24 15:56:45 UTC"},
		{"empty game type", "PokerStars Hand: (25/50) - 2025/12/24 15:56:45 UTC"},
		{"non-numeric stake", "PokerStars Hand: Hold'em No Limit (a/50) - 2025/12/24 15:56:45 UTC"},
		{"zero stake", "PokerStars Hand: Hold'em No Limit (0/50) - 2025/12/24 15:56:45 UTC"},
		{"small above big", "PokerStars Hand: Hold'em No Limit (50/25) - 2025/12/24 15:56:45 UTC"},
		{"three stakes", "PokerStars Hand: Hold'em No Limit (25/50/100) - 2025/12/24 15:56:45 UTC"},
		{"wrong date format", "PokerStars Hand: Hold'em No Limit (25/50) - 2025-12-24 15:56:45 UTC"},
		{"missing zone", "PokerStars Hand: Hold'em No Limit (25/50) - 2025/12/24 15:56:45"},
		{"unknown zone CET", "PokerStars Hand: Hold'em No Limit (25/50) - 2025/12/24 15:56:45 CET"},
		{"unknown zone EST", "PokerStars Hand: Hold'em No Limit (25/50) - 2025/12/24 15:56:45 EST"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHeader(tt.line)
			le := requireKind(t, err, ErrHeaderParse)
			assert.Equal(t, 0, le.Offset)
			assert.Equal(t, tt.line, le.Line)
		})
	}
}
