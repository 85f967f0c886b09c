package liarsdeck

import (
	"liarsbar-server/pkg/deck"
	"liarsbar-server/pkg/playable"
)

// GameState is the overall game state
// This is safe for all players to see
type GameState struct {
	ID                 string             `json:"id"`
	Phase              Phase              `json:"phase"`
	HostID             string             `json:"hostId"`
	TurnIndex          int                `json:"turnIndex"`
	CurrentTurn        string             `json:"currentTurn"`
	LeftPlayer         string             `json:"leftPlayer"`
	RoundSuit          deck.Rank          `json:"roundSuit"`
	TableDeckRemaining int                `json:"tableDeckRemaining"`
	CardsInDeck        int                `json:"cardsInDeck"`
	Plays              []*Play            `json:"plays"`
	Players            []*GameStatePlayer `json:"players"`
	WinnerID           string             `json:"winnerId"`
}

// GameStatePlayer is the state of an individual player
// This is safe for all players to see
type GameStatePlayer struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CardsInHand int    `json:"cardsInHand"`
	IsBot       bool   `json:"isBot"`
	Connected   bool   `json:"connected"`
	Eliminated  bool   `json:"eliminated"`
}

// Response is the response format for this game
type Response struct {
	GameState *GameState `json:"gameState"`
	// Data below is player specific, and must only be shown to the intended player
	Hand          deck.Hand `json:"hand"`
	IsCurrentTurn bool      `json:"isCurrentTurn"`
	CanCallLiar   bool      `json:"canCallLiar"`
}

func (g *Game) getGameState() *GameState {
	players := make([]*GameStatePlayer, len(g.players))
	for i, p := range g.players {
		players[i] = &GameStatePlayer{
			ID:          p.ID,
			Name:        p.Name,
			CardsInHand: len(p.hand),
			IsBot:       p.IsBot,
			Connected:   p.connected,
			Eliminated:  p.eliminated,
		}
	}

	var currentTurn, leftPlayer string
	if g.phase == PhasePlaying || g.phase == PhaseReveal {
		if current := g.CurrentPlayer(); current != nil {
			currentTurn = current.ID
		}

		leftPlayer = g.LeftPlayerID()
	}

	cardsInDeck := 0
	if g.deck != nil {
		cardsInDeck = g.deck.CardsLeft()
	}

	return &GameState{
		ID:                 g.id,
		Phase:              g.phase,
		HostID:             g.hostID,
		TurnIndex:          g.turnIndex,
		CurrentTurn:        currentTurn,
		LeftPlayer:         leftPlayer,
		RoundSuit:          g.RoundSuit(),
		TableDeckRemaining: len(g.table.TableDeck),
		CardsInDeck:        cardsInDeck,
		Plays:              g.table.Plays(),
		Players:            players,
		WinnerID:           g.winnerID,
	}
}

// View returns the state for the given player
// Unknown players (spectators) see the public state and an empty hand.
func (g *Game) View(playerID string) *Response {
	gameState := g.getGameState()
	res := &Response{
		GameState: gameState,
		Hand:      deck.Hand{},
	}

	player, ok := g.idToPlayer[playerID]
	if !ok {
		return res
	}

	res.Hand = player.Hand()
	res.IsCurrentTurn = g.phase == PhasePlaying && gameState.CurrentTurn == playerID
	res.CanCallLiar = g.phase == PhaseReveal && gameState.LeftPlayer == playerID

	return res
}

// GetPlayerState returns the state for the given player
func (g *Game) GetPlayerState(playerID string) (*playable.Response, error) {
	return &playable.Response{
		Key:   "game",
		Value: "liarsdeck",
		Data:  g.View(playerID),
	}, nil
}
