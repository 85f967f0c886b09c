package liarsdeck

import (
	"liarsbar-server/pkg/deck"
)

// Player is a seat at the table
// Players are never removed from a game. A disconnect only clears the connected flag.
type Player struct {
	ID    string
	Name  string
	IsBot bool

	hand       deck.Hand
	connected  bool
	eliminated bool
}

func newPlayer(id, name string, isBot bool) *Player {
	return &Player{
		ID:        id,
		Name:      name,
		IsBot:     isBot,
		hand:      deck.Hand{},
		connected: true,
	}
}

// Hand returns a shallow clone of the player's hand
func (p *Player) Hand() deck.Hand {
	return p.hand.Clone()
}

// CardsInHand returns the number of cards the player holds
func (p *Player) CardsInHand() int {
	return len(p.hand)
}

// Connected returns false once the player's connection went away
func (p *Player) Connected() bool {
	return p.connected
}

// Eliminated returns true if the revolver took the player out
func (p *Player) Eliminated() bool {
	return p.eliminated
}
