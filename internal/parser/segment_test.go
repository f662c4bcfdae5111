package parser

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pokervr-matchlog/internal/parser/extractors"
)

func fixtureBlocks(t *testing.T) []Block {
	t.Helper()
	data, err := os.ReadFile("testdata/matchlog.txt")
	require.NoError(t, err)
	blocks, err := Segment(string(data))
	require.NoError(t, err)
	return blocks
}

func TestSegmentFixture(t *testing.T) {
	blocks := fixtureBlocks(t)
	require.Len(t, blocks, 4)
	for i, b := range blocks {
		assert.Equal(t, i, b.Index)
		assert.Contains(t, b.Lines[0], "PokerStars Hand: ")
	}
	assert.Len(t, blocks[0].Lines, 31)
	assert.Equal(t, "Seat 3: quaq_ collected (2275)", blocks[0].Lines[30])
}

func TestSegmentNormalisesInput(t *testing.T) {
	blocks, err := Segment("\ufeffA line\r\n  B line  \r\n\r\nC line\r\n")
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, []string{"A line", "B line"}, blocks[0].Lines)
	assert.Equal(t, []string{"C line"}, blocks[1].Lines)
}

func TestSegmentDropsEmptyBlocks(t *testing.T) {
	blocks, err := Segment("first\n\n\n\n\nsecond\n\n")
	require.NoError(t, err)
	require.Len(t, blocks, 2)
	assert.Equal(t, 0, blocks[0].Index)
	assert.Equal(t, 1, blocks[1].Index)
	assert.Equal(t, []string{"second"}, blocks[1].Lines)
}

func TestSegmentRejects(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace", "  \n\t\n"},
		{"no separator", "PokerStars Hand: x\nTable 'y' 6-max"},
		{"only separators", "\n\n\n\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Segment(tt.text)
			assert.ErrorIs(t, err, extractors.ErrMalformedLog)
		})
	}
}
