package deck

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrInvalidRank is an error when a rank cannot be parsed
var ErrInvalidRank = errors.New("invalid rank")

// Rank is the rank of a card
type Rank string

// rank constants
const (
	King  Rank = "K"
	Queen Rank = "Q"
	Ace   Rank = "A"
	Joker Rank = "JOKER"
)

// Ranks are all the ranks, in table deck order
var Ranks = []Rank{King, Queen, Ace, Joker}

// SuitRanks are the ranks that appear multiple times in the main deck
var SuitRanks = []Rank{King, Queen, Ace}

// IsValid returns true if the rank is one of the known ranks
func (r Rank) IsValid() bool {
	switch r {
	case King, Queen, Ace, Joker:
		return true
	}

	return false
}

func (r Rank) String() string {
	return string(r)
}

// ParseRank returns the rank for s
// The check is case-insensitive, and "J" is accepted as a short form of JOKER
func ParseRank(s string) (Rank, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "K", "KING":
		return King, nil
	case "Q", "QUEEN":
		return Queen, nil
	case "A", "ACE":
		return Ace, nil
	case "J", "JOKER":
		return Joker, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidRank, s)
}

// Card is an individual playing card
type Card struct {
	ID   string `json:"id"`
	Rank Rank   `json:"rank"`
}

// NewCard returns a card of the given rank with a fresh identifier
func NewCard(rank Rank) *Card {
	return &Card{
		ID:   uuid.New().String(),
		Rank: rank,
	}
}

func (c *Card) String() string {
	return string(c.Rank)
}

// Equal returns true if both cards are the same physical card
func (c *Card) Equal(card *Card) bool {
	return card != nil && c.ID == card.ID
}

// IsWild returns true if the card validates any declaration
func (c *Card) IsWild() bool {
	return c.Rank == Joker
}
