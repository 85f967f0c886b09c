package deck

import (
	"strings"
)

// Hand represents a collection of cards
type Hand []*Card

// AddCard adds a card to the hand
func (h *Hand) AddCard(card *Card) {
	*h = append(*h, card)
}

// Find returns the card with the given id, or nil
func (h Hand) Find(id string) *Card {
	for _, c := range h {
		if c.ID == id {
			return c
		}
	}

	return nil
}

// HasCard returns true if the hand contains a card with the given id
func (h Hand) HasCard(id string) bool {
	return h.Find(id) != nil
}

// Remove removes the card with the given id and returns it
// The order of the remaining cards is preserved. Returns nil if the card is not in the hand.
func (h *Hand) Remove(id string) *Card {
	for i, c := range *h {
		if c.ID == id {
			newHand := make(Hand, 0, len(*h)-1)
			newHand = append(newHand, (*h)[:i]...)
			newHand = append(newHand, (*h)[i+1:]...)
			*h = newHand
			return c
		}
	}

	return nil
}

// FirstCard returns the first card in the hand or nil if the cards are empty
func (h Hand) FirstCard() *Card {
	if len(h) == 0 {
		return nil
	}

	return h[0]
}

// CountRanks returns how many of each rank is in the hand
func (h Hand) CountRanks() map[Rank]int {
	return CountRanks(h)
}

func (h Hand) String() string {
	s := make([]string, len(h))
	for i, c := range h {
		s[i] = c.String()
	}

	return strings.Join(s, ",")
}

// Clone returns a clone of the hand
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}

// CountRanks returns a histogram of the ranks in cards
func CountRanks(cards []*Card) map[Rank]int {
	counts := make(map[Rank]int)
	for _, c := range cards {
		counts[c.Rank]++
	}

	return counts
}
