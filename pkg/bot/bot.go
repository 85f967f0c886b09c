// Package bot is an automated Liar's Deck opponent
//
// A Brain only looks at the view the server sends to its seat, the same as a human player would.
package bot

import (
	"errors"
	"fmt"
	"strings"

	"liarsbar-server/internal/rng"
	"liarsbar-server/pkg/deck"
	"liarsbar-server/pkg/playable"
	"liarsbar-server/pkg/playable/liarsdeck"
)

// ErrInvalidDifficulty is returned when a difficulty cannot be parsed
var ErrInvalidDifficulty = errors.New("invalid difficulty")

// Difficulty controls how often a bot bluffs
type Difficulty string

// difficulty constants
const (
	Easy   Difficulty = "easy"
	Normal Difficulty = "normal"
	Hard   Difficulty = "hard"
)

// ParseDifficulty returns the difficulty for s
// An empty string is Easy.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case "", Easy:
		return Easy, nil
	case Normal:
		return Normal, nil
	case Hard:
		return Hard, nil
	}

	return "", fmt.Errorf("%w: %q", ErrInvalidDifficulty, s)
}

// bluffPercent is the chance, out of 100, that a bot lies about a card it could have been honest about
func (d Difficulty) bluffPercent() int {
	switch d {
	case Normal:
		return 25
	case Hard:
		return 45
	default:
		return 10
	}
}

// Decision is a single move
type Decision struct {
	Action   string
	CardID   string
	Declared deck.Rank
}

// Payload returns the decision in the wire format
func (d *Decision) Payload() *playable.PayloadIn {
	payload := &playable.PayloadIn{
		Action:         d.Action,
		AdditionalData: playable.AdditionalData{},
	}

	if d.Action == liarsdeck.ActionPlay {
		payload.AdditionalData["cardId"] = d.CardID
		payload.AdditionalData["declared"] = d.Declared.String()
	}

	return payload
}

func (d *Decision) String() string {
	if d.Action == liarsdeck.ActionPlay {
		return fmt.Sprintf("play %s as %s", d.CardID, d.Declared)
	}

	return d.Action
}

// Brain decides what a bot does next
type Brain struct {
	gen        rng.Generator
	difficulty Difficulty
}

// NewBrain returns a new brain
// If gen is nil, a crypto backed generator is used.
func NewBrain(gen rng.Generator, difficulty Difficulty) *Brain {
	if gen == nil {
		gen = rng.Crypto{}
	}

	return &Brain{
		gen:        gen,
		difficulty: difficulty,
	}
}

// Difficulty returns the brain's difficulty
func (b *Brain) Difficulty() Difficulty {
	return b.difficulty
}

// Decide returns the next move for the seat that received view, or nil if the seat has nothing to do
func (b *Brain) Decide(view *liarsdeck.Response) *Decision {
	if view == nil || view.GameState == nil {
		return nil
	}

	switch view.GameState.Phase {
	case liarsdeck.PhasePlaying:
		if !view.IsCurrentTurn || len(view.Hand) == 0 {
			return nil
		}

		card := chooseCard(view.Hand, view.GameState.RoundSuit)
		return &Decision{
			Action:   liarsdeck.ActionPlay,
			CardID:   card.ID,
			Declared: b.chooseDeclared(card, view.GameState.RoundSuit),
		}
	case liarsdeck.PhaseReveal:
		// a reveal only moves forward when the left player calls
		if view.CanCallLiar {
			return &Decision{Action: liarsdeck.ActionLiar}
		}
	}

	return nil
}

// chooseCard prefers a card that backs up the round suit
func chooseCard(hand deck.Hand, roundSuit deck.Rank) *deck.Card {
	for _, c := range hand {
		if c.Rank == roundSuit || c.IsWild() {
			return c
		}
	}

	return hand.FirstCard()
}

func (b *Brain) chooseDeclared(card *deck.Card, roundSuit deck.Rank) deck.Rank {
	if roundSuit == "" {
		roundSuit = deck.King
	}

	if roundSuit == deck.Joker {
		return deck.SuitRanks[b.gen.Intn(len(deck.SuitRanks))]
	}

	truthful := card.Rank == roundSuit || card.IsWild()
	if truthful && b.gen.Intn(100) < b.difficulty.bluffPercent() {
		for _, r := range deck.SuitRanks {
			if r != roundSuit {
				return r
			}
		}
	}

	return roundSuit
}
