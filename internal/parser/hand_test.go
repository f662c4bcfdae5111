package parser

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokervr-matchlog/internal/parser/extractors"
)

func TestParseHandFirstHand(t *testing.T) {
	b := fixtureBlocks(t)[0]

	hand, err := ParseHand(b.Index, b.Lines)
	require.NoError(t, err)

	assert.Equal(t, 0, hand.Index)
	assert.Equal(t, "Hold'em No Limit", hand.GameInfo.GameType)
	assert.Equal(t, [2]int{25, 50}, hand.GameInfo.Stakes)
	assert.Equal(t, time.Date(2025, 12, 24, 15, 56, 45, 0, time.UTC).Unix(), hand.GameInfo.StartTimestamp)
	assert.Equal(t, extractors.TableInfo{TableName: "BigFoot79's Cash Game", MaxPlayers: 8}, hand.TableInfo)
	assert.Equal(t, extractors.Roles{DealerSeat: 5, SmallBlindSeat: 6, BigBlindSeat: 8}, hand.Roles)
	assert.Equal(t, "quaq_", hand.Hero)
	assert.Len(t, hand.Players, 5)
	assert.Len(t, hand.Blinds, 2)
	assert.Equal(t, []string{"HOLE CARDS", "FLOP", "TURN", "SUMMARY"}, hand.RoundIndex.Names())

	turn, ok := hand.Round("TURN")
	require.True(t, ok)
	assert.True(t, turn.Actions[0].AllIn)

	hero, ok := hand.Player(3)
	require.True(t, ok)
	assert.Equal(t, "ah", hero.HoleCards[0].String())
	assert.Equal(t, "kd", hero.HoleCards[1].String())

	_, ok = hand.Player(1)
	assert.False(t, ok)
}

func TestParseHandShowdown(t *testing.T) {
	b := fixtureBlocks(t)[1]

	hand, err := ParseHand(b.Index, b.Lines)
	require.NoError(t, err)

	assert.Equal(t, extractors.Roles{DealerSeat: 6, SmallBlindSeat: 8, BigBlindSeat: 3}, hand.Roles)

	river, ok := hand.Round("RIVER")
	require.True(t, ok)
	assert.Len(t, river.Board, 5)

	showdown, ok := hand.Round("SHOW DOWN")
	require.True(t, ok)
	require.Len(t, showdown.Actions, 3)
	assert.Equal(t, extractors.KindShow, showdown.Actions[0].Kind)
	assert.Len(t, showdown.Actions[0].Cards, 2)
	assert.Equal(t, extractors.KindMuck, showdown.Actions[1].Kind)
	assert.Equal(t, extractors.KindCollect, showdown.Actions[2].Kind)
	assert.Equal(t, 750, *showdown.Actions[2].Amount)

	summary, ok := hand.Round("SUMMARY")
	require.True(t, ok)
	chat := summary.Actions[len(summary.Actions)-1]
	assert.Equal(t, extractors.KindUnrecognized, chat.Kind)
	assert.Equal(t, `The_Destroyers said, "nh"`, chat.Raw)
}

func TestParseHandInvariants(t *testing.T) {
	for _, b := range fixtureBlocks(t)[:2] {
		hand, err := ParseHand(b.Index, b.Lines)
		require.NoError(t, err)

		seats := make(map[int]bool)
		withCards := 0
		for _, p := range hand.Players {
			assert.False(t, seats[p.Seat], "seat %d repeated", p.Seat)
			seats[p.Seat] = true
			assert.True(t, p.Seat >= 1 && p.Seat <= hand.TableInfo.MaxPlayers)
			if len(p.HoleCards) > 0 {
				withCards++
				assert.Equal(t, hand.Hero, p.Name)
			}
		}
		assert.Equal(t, 1, withCards)
		assert.True(t, seats[hand.Roles.DealerSeat])
		assert.True(t, seats[hand.Roles.SmallBlindSeat])
		assert.True(t, seats[hand.Roles.BigBlindSeat])

		// Rounds come out in marker order and cover every marker.
		require.Len(t, hand.Rounds, hand.RoundIndex.Len())
		for i, name := range hand.RoundIndex.Names() {
			assert.Equal(t, name, hand.Rounds[i].Name)
		}
		assert.GreaterOrEqual(t, hand.GameInfo.Stakes[1], hand.GameInfo.Stakes[0])
	}
}

func TestParseHandFailures(t *testing.T) {
	blocks := fixtureBlocks(t)

	_, err := ParseHand(blocks[2].Index, blocks[2].Lines)
	var he *HandError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, 2, he.Index)
	assert.ErrorIs(t, err, extractors.ErrCardDecode)
	var le *extractors.LineError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 7, le.Offset)
	assert.Equal(t, "Dealt to quaq_ [zz kd]", le.Line)

	_, err = ParseHand(blocks[3].Index, blocks[3].Lines)
	assert.ErrorIs(t, err, extractors.ErrMissingRounds)
	assert.Contains(t, err.Error(), "hand 3: ")

	_, err = ParseHand(9, []string{"PokerStars Hand: only a header"})
	assert.ErrorIs(t, err, extractors.ErrMalformedLog)
}

func TestParseHandBadHeaderReportsLine(t *testing.T) {
	lines := append([]string(nil), fixtureBlocks(t)[0].Lines...)
	lines[0] = "PokerStars Hand: Hold'em No Limit (25/50) - yesterday"

	_, err := ParseHand(0, lines)
	var le *extractors.LineError
	require.ErrorAs(t, err, &le)
	assert.ErrorIs(t, err, extractors.ErrHeaderParse)
	assert.Equal(t, 0, le.Offset)
}

func TestHandID(t *testing.T) {
	blocks := fixtureBlocks(t)
	first := HandID(blocks[0].Lines)

	assert.Equal(t, first, HandID(append([]string(nil), blocks[0].Lines...)))
	assert.NotEqual(t, first, HandID(blocks[1].Lines))

	hand, err := ParseHand(0, blocks[0].Lines)
	require.NoError(t, err)
	assert.Equal(t, first, hand.ID)
}

func TestHandJSON(t *testing.T) {
	b := fixtureBlocks(t)[0]
	hand, err := ParseHand(b.Index, b.Lines)
	require.NoError(t, err)

	data, err := json.Marshal(hand)
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	for _, key := range []string{"gameInfo", "tableInfo", "roles", "players", "rounds", "blinds", "hero", "id"} {
		assert.Contains(t, doc, key)
	}
	assert.NotContains(t, doc, "roundIndex")
	assert.NotContains(t, doc, "RoundIndex")

	game := doc["gameInfo"].(map[string]interface{})
	assert.Equal(t, "Hold'em No Limit", game["gameType"])
	assert.Equal(t, []interface{}{25.0, 50.0}, game["gameStakes"])
	assert.Contains(t, game, "gameDateTime")

	table := doc["tableInfo"].(map[string]interface{})
	assert.Equal(t, "BigFoot79's Cash Game", table["tableName"])
	assert.Equal(t, 8.0, table["tableMaxPlayers"])

	roles := doc["roles"].(map[string]interface{})
	assert.Equal(t, 5.0, roles["dealerSeat"])
	assert.Equal(t, 6.0, roles["smallblindSeat"])
	assert.Equal(t, 8.0, roles["bigblindSeat"])

	hero := doc["players"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "quaq_", hero["name"])
	assert.Equal(t, 5000.0, hero["startingChips"])
	assert.Contains(t, hero, "cards")
	assert.NotContains(t, doc["players"].([]interface{})[1], "cards")

	var back Hand
	require.NoError(t, json.Unmarshal(data, &back))
	hand.RoundIndex = extractors.RoundIndex{}
	assert.Equal(t, *hand, back)
}
