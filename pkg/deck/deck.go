package deck

import (
	"errors"

	"liarsbar-server/internal/rng"
)

// ErrEndOfDeck is an error when Pop() is attempted and there are no more cards
var ErrEndOfDeck = errors.New("end of deck reached")

// copies of each suit rank in the main deck
const suitRankCount = 6

// jokers in the main deck
const jokerCount = 2

// MainDeckSize is the number of cards in the main deck
const MainDeckSize = suitRankCount*3 + jokerCount

// Deck represents the main playing deck
// Cards are drawn from the end of the slice.
type Deck struct {
	Cards []*Card `json:"cards"`
}

// NewMainDeck returns a freshly shuffled deck of 6 kings, 6 queens, 6 aces and 2 jokers
// Every card gets a new unique identifier.
func NewMainDeck(gen rng.Generator) *Deck {
	cards := make([]*Card, 0, MainDeckSize)
	for _, rank := range SuitRanks {
		for i := 0; i < suitRankCount; i++ {
			cards = append(cards, NewCard(rank))
		}
	}

	for i := 0; i < jokerCount; i++ {
		cards = append(cards, NewCard(Joker))
	}

	Shuffle(gen, cards)
	return &Deck{Cards: cards}
}

// NewTableDeck returns one of each rank in random order
// The engine only ever takes the last entry, to pick the round suit.
func NewTableDeck(gen rng.Generator) []Rank {
	ranks := append([]Rank{}, Ranks...)
	Shuffle(gen, ranks)

	return ranks
}

// Shuffle performs an in-place Fisher-Yates shuffle
func Shuffle[T any](gen rng.Generator, items []T) {
	for j := len(items) - 1; j > 0; j-- {
		i := gen.Intn(j + 1)

		items[i], items[j] = items[j], items[i]
	}
}

// Pop will remove and return the top card
// If there are no more cards, an ErrEndOfDeck is returned along with a nil card.
func (d *Deck) Pop() (*Card, error) {
	n := len(d.Cards)
	if n == 0 {
		return nil, ErrEndOfDeck
	}

	card := d.Cards[n-1]
	d.Cards = d.Cards[:n-1]

	return card, nil
}

// CanDraw returns true if there are {want} cards left in the deck
func (d *Deck) CanDraw(want int) bool {
	return len(d.Cards) >= want
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.Cards)
}
