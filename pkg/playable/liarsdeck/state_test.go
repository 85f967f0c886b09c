package liarsdeck

import (
	"testing"

	"liarsbar-server/internal/rng"
	"liarsbar-server/pkg/deck"
	"liarsbar-server/pkg/snapshot"

	"github.com/stretchr/testify/assert"
)

func TestGame_View(t *testing.T) {
	g := setupTestGame(t, rng.Fixed(1), deck.King, "Q,K", "K,A")
	assert.NoError(t, g.PlayCard("p1", "p1-0", deck.King))

	snapshot.ValidateSnapshot(t, g.View("p1"), 0, "p1 view")
	snapshot.ValidateSnapshot(t, g.View("p2"), 0, "p2 view")
}

func TestGame_View_Lobby(t *testing.T) {
	a := assert.New(t)

	g := newTestGame(t, 2, nil)
	res := g.View("p1")
	a.Equal(PhaseLobby, res.GameState.Phase)
	a.Equal("p1", res.GameState.HostID)
	a.Equal("", res.GameState.CurrentTurn)
	a.Equal("", res.GameState.LeftPlayer)
	a.Equal(deck.Rank(""), res.GameState.RoundSuit)
	a.Equal(0, res.GameState.TableDeckRemaining)
	a.Equal(0, res.GameState.CardsInDeck)
	a.Len(res.GameState.Players, 2)
	a.Empty(res.Hand)
	a.False(res.IsCurrentTurn)
	a.False(res.CanCallLiar)
}

func TestGame_View_HidesOtherHands(t *testing.T) {
	a := assert.New(t)

	g := setupTestGame(t, rng.Fixed(1), deck.Ace, "K,K", "Q,A,JOKER", "A")

	res := g.View("p2")
	a.Equal([]string{"p2-0", "p2-1", "p2-2"}, cardIDs(res.Hand))
	a.Equal(2, res.GameState.Players[0].CardsInHand)
	a.Equal(3, res.GameState.Players[1].CardsInHand)
	a.Equal(1, res.GameState.Players[2].CardsInHand)
	a.False(res.IsCurrentTurn)
	a.False(res.CanCallLiar)

	res = g.View("p1")
	a.Equal([]string{"p1-0", "p1-1"}, cardIDs(res.Hand))
	a.True(res.IsCurrentTurn)
	a.Equal("p1", res.GameState.CurrentTurn)
	a.Equal("p3", res.GameState.LeftPlayer)

	// the view must be a copy
	res.Hand.Remove("p1-0")
	a.Equal(2, g.idToPlayer["p1"].CardsInHand())
}

func TestGame_View_Spectator(t *testing.T) {
	a := assert.New(t)

	g := setupTestGame(t, rng.Fixed(1), deck.Ace, "K,K", "Q,A")
	assert.NoError(t, g.PlayCard("p1", "p1-0", deck.Ace))

	res := g.View("nobody")
	a.NotNil(res.Hand)
	a.Empty(res.Hand)
	a.False(res.IsCurrentTurn)
	a.False(res.CanCallLiar)
	a.Equal(PhaseReveal, res.GameState.Phase)
	a.Equal("p2", res.GameState.LeftPlayer)
	a.Len(res.GameState.Plays, 1)
}

func TestGame_View_CanCallLiar(t *testing.T) {
	a := assert.New(t)

	g := setupTestGame(t, rng.Fixed(1), deck.Ace, "K,K", "Q,A", "A,A")
	assert.NoError(t, g.PlayCard("p1", "p1-0", deck.Ace))

	a.True(g.View("p3").CanCallLiar)
	a.False(g.View("p2").CanCallLiar)
	a.False(g.View("p1").CanCallLiar)
	a.False(g.View("p1").IsCurrentTurn)
}

func TestGame_View_Ended(t *testing.T) {
	a := assert.New(t)

	g := setupTestGame(t, rng.Fixed(0), deck.King, "Q", "K")
	playAndCall(t, g, deck.King)

	res := g.View("p2")
	a.Equal(PhaseEnded, res.GameState.Phase)
	a.Equal("p2", res.GameState.WinnerID)
	a.Equal("", res.GameState.CurrentTurn)
	a.Equal("", res.GameState.LeftPlayer)
	a.True(res.GameState.Players[0].Eliminated)
	a.False(res.IsCurrentTurn)
}

func TestGame_View_Disconnected(t *testing.T) {
	g := newTestGame(t, 3, nil)
	g.RemovePlayer("p2")

	players := g.View("p1").GameState.Players
	assert.True(t, players[0].Connected)
	assert.False(t, players[1].Connected)
	assert.True(t, players[2].Connected)
}

func TestGame_GetPlayerState(t *testing.T) {
	a := assert.New(t)

	g := setupTestGame(t, rng.Fixed(1), deck.King, "Q,K", "K,A")
	res, err := g.GetPlayerState("p1")
	a.NoError(err)
	a.Equal("game", res.Key)
	a.Equal("liarsdeck", res.Value)

	data, ok := res.Data.(*Response)
	if a.True(ok) {
		a.True(data.IsCurrentTurn)
		a.Len(data.Hand, 2)
	}
}

func cardIDs(hand deck.Hand) []string {
	ids := make([]string, len(hand))
	for i, c := range hand {
		ids[i] = c.ID
	}

	return ids
}
