package models

// Suit represents the suit of a playing card
type Suit string

const (
	// SuitHearts is the hearts suit
	SuitHearts Suit = "hearts"

	// SuitDiamonds is the diamonds suit
	SuitDiamonds Suit = "diamonds"

	// SuitClubs is the clubs suit
	SuitClubs Suit = "clubs"

	// SuitSpades is the spades suit
	SuitSpades Suit = "spades"
)

// Suits lists every suit in deck-building order.
var Suits = []Suit{SuitHearts, SuitDiamonds, SuitClubs, SuitSpades}

// Card rank boundaries. Numbers run 2..14 where 11, 12 and 13 are the
// jack, queen and king, and 14 is the ace.
const (
	MinCardNumber = 2
	JackNumber    = 11
	QueenNumber   = 12
	KingNumber    = 13
	AceNumber     = 14
	MaxCardNumber = AceNumber
)

// Card is a single playing card
type Card struct {
	// Number is the rank of the card (2..14, 14 = ace)
	Number int

	// Type is the suit of the card
	Type Suit
}

// IsNumeric reports whether the card is a plain numeric card (2..10).
func (c Card) IsNumeric() bool {
	return c.Number >= MinCardNumber && c.Number < JackNumber
}

// IsFace reports whether the card is a jack, queen or king.
func (c Card) IsFace() bool {
	return c.Number >= JackNumber && c.Number <= KingNumber
}

// IsAce reports whether the card is an ace.
func (c Card) IsAce() bool {
	return c.Number == AceNumber
}

// HandCard is a card held by a player
type HandCard struct {
	Card

	// Played indicates the card has been laid and no longer counts as held
	Played bool
}

// TableCard is a card dealt face down to the table (pyramid or diamond)
type TableCard struct {
	Card

	// Flipped indicates the card has been revealed
	Flipped bool
}
