package liarsdeck

import (
	"liarsbar-server/pkg/deck"
)

// Play is one entry of the play log
type Play struct {
	PlayerID string    `json:"playerId"`
	CardID   string    `json:"cardId"`
	Declared deck.Rank `json:"declared"`
}

// Table holds the shared table state
type Table struct {
	// TableDeck is what is left of the round suit draw pile
	TableDeck []deck.Rank
	// RoundSuit is nil until the cards are dealt
	RoundSuit *deck.Rank

	plays []*Play
}

func newTable() *Table {
	return &Table{
		TableDeck: []deck.Rank{},
		plays:     []*Play{},
	}
}

// drawRoundSuit pops the top of the table deck and makes it the round suit
func (t *Table) drawRoundSuit() {
	n := len(t.TableDeck)
	if n == 0 {
		t.RoundSuit = nil
		return
	}

	suit := t.TableDeck[n-1]
	t.TableDeck = t.TableDeck[:n-1]
	t.RoundSuit = &suit
}

func (t *Table) addPlay(play *Play) {
	t.plays = append(t.plays, play)
}

// LastPlay returns the most recent play or nil
func (t *Table) LastPlay() *Play {
	n := len(t.plays)
	if n == 0 {
		return nil
	}

	return t.plays[n-1]
}

// Plays returns a copy of the play log
func (t *Table) Plays() []*Play {
	return append([]*Play{}, t.plays...)
}

// roundSuitIs returns true if the round suit is set to rank
func (t *Table) roundSuitIs(rank deck.Rank) bool {
	return t.RoundSuit != nil && *t.RoundSuit == rank
}
