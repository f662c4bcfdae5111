package extractors

import (
	"errors"
	"strings"
)

// Rank is a card rank, 2 through 14 (ace high).
type Rank int

const (
	Ten   Rank = 10
	Jack  Rank = 11
	Queen Rank = 12
	King  Rank = 13
	Ace   Rank = 14
)

// Suit is a card suit as it appears in the output.
type Suit string

const (
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
)

// Card is a single decoded playing card.
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

var rankChars = map[byte]Rank{
	'2': 2, '3': 3, '4': 4, '5': 5, '6': 6, '7': 7, '8': 8, '9': 9,
	't': Ten, 'j': Jack, 'q': Queen, 'k': King, 'a': Ace,
}

var suitChars = map[byte]Suit{
	'c': Clubs, 's': Spades, 'h': Hearts, 'd': Diamonds,
}

// String returns the two-character log token for the card, e.g. "th".
func (c Card) String() string {
	var r, s byte = '?', '?'
	for ch, rank := range rankChars {
		if rank == c.Rank {
			r = ch
		}
	}
	for ch, suit := range suitChars {
		if suit == c.Suit {
			s = ch
		}
	}
	return string([]byte{r, s})
}

// DecodeCard decodes a two-character token such as "ah" or "th".
// Tokens are matched case-insensitively.
func DecodeCard(token string) (Card, error) {
	t := strings.ToLower(token)
	if len(t) != 2 {
		return Card{}, lineErr(ErrCardDecode, -1, "", "token %q is not two characters", token)
	}
	rank, ok := rankChars[t[0]]
	if !ok {
		return Card{}, lineErr(ErrCardDecode, -1, "", "unknown rank in token %q", token)
	}
	suit, ok := suitChars[t[1]]
	if !ok {
		return Card{}, lineErr(ErrCardDecode, -1, "", "unknown suit in token %q", token)
	}
	return Card{Rank: rank, Suit: suit}, nil
}

// DecodeCards decodes a bracketed card string like "[ah kd]". Any number of
// bracket groups may follow each other ("[th 7c 2d] [qs]"); the cards are
// returned in the order they appear.
func DecodeCards(s string) ([]Card, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, lineErr(ErrCardDecode, -1, "", "card string %q is not bracketed", s)
	}
	fields := strings.Fields(strings.NewReplacer("[", " ", "]", " ").Replace(s))
	if len(fields) == 0 {
		return nil, lineErr(ErrCardDecode, -1, "", "card string %q is empty", s)
	}
	cards := make([]Card, 0, len(fields))
	for _, f := range fields {
		c, err := DecodeCard(f)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// atLine attaches a line to a card decode error that was produced without one.
func atLine(err error, offset int, line string) error {
	var le *LineError
	if errors.As(err, &le) && le.Offset < 0 {
		return &LineError{Kind: le.Kind, Offset: offset, Line: line, Reason: le.Reason}
	}
	return err
}
