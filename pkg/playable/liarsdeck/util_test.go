package liarsdeck

import (
	"fmt"
	"strings"
	"testing"

	"liarsbar-server/internal/rng"
	"liarsbar-server/pkg/deck"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// newTestGame returns a lobby with players p1..pN
func newTestGame(t *testing.T, n int, gen rng.Generator) *Game {
	t.Helper()

	g := NewGame(logrus.StandardLogger(), "game", "p1", "Player 1", gen)
	for i := 2; i <= n; i++ {
		id := fmt.Sprintf("p%d", i)
		if !assert.NoError(t, g.AddPlayer(id, fmt.Sprintf("Player %d", i), false)) {
			t.FailNow()
		}
	}

	return g
}

// setupTestGame starts a game, then replaces the dealt hands and the round suit
// hands are in the form of "K,Q,JOKER" per player; card ids are "<player>-<index>"
func setupTestGame(t *testing.T, gen rng.Generator, roundSuit deck.Rank, hands ...string) *Game {
	t.Helper()

	g := newTestGame(t, len(hands), gen)
	if !assert.NoError(t, g.Start()) {
		t.FailNow()
	}

	for i, p := range g.players {
		p.hand = handFromString(p.ID, hands[i])
	}

	suit := roundSuit
	g.table.RoundSuit = &suit

	return g
}

func handFromString(playerID, s string) deck.Hand {
	hand := deck.Hand{}
	if s == "" {
		return hand
	}

	for i, r := range strings.Split(s, ",") {
		rank, err := deck.ParseRank(r)
		if err != nil {
			panic(err)
		}

		hand.AddCard(&deck.Card{
			ID:   fmt.Sprintf("%s-%d", playerID, i),
			Rank: rank,
		})
	}

	return hand
}

// playAndCall has the current player play their first card as declared, and the left player call liar
func playAndCall(t *testing.T, g *Game, declared deck.Rank) *LiarCallResult {
	t.Helper()

	current := g.CurrentPlayer()
	card := current.hand.FirstCard()
	if !assert.NotNil(t, card, "%s has no cards", current.ID) {
		t.FailNow()
	}

	if !assert.NoError(t, g.PlayCard(current.ID, card.ID, declared)) {
		t.FailNow()
	}

	result, err := g.LiarCall(g.LeftPlayerID())
	if !assert.NoError(t, err) {
		t.FailNow()
	}

	return result
}

func aliveIDs(g *Game) []string {
	ids := make([]string, 0)
	for _, p := range g.alivePlayers() {
		ids = append(ids, p.ID)
	}

	return ids
}
