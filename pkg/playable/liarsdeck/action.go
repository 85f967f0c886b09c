package liarsdeck

import (
	"errors"
	"fmt"

	"liarsbar-server/pkg/deck"
	"liarsbar-server/pkg/playable"
)

// wire actions
const (
	ActionStart = "start"
	ActionPlay  = "play"
	ActionLiar  = "liar"
)

// Name returns the name of the game
func (g *Game) Name() string {
	return "Liar's Deck"
}

// LogChan returns a channel for sending log messages
func (g *Game) LogChan() <-chan []*playable.LogMessage {
	return g.logChan
}

// Action performs an action
// Part of the playable.Playable interface
func (g *Game) Action(playerID string, message *playable.PayloadIn) (playerResponse *playable.Response, updateState bool, err error) {
	if _, ok := g.idToPlayer[playerID]; !ok {
		return nil, false, ErrPlayerNotFound
	}

	switch message.Action {
	case ActionStart:
		if err := g.Start(); err != nil {
			return nil, false, err
		}

		return playable.OK(), true, nil
	case ActionPlay:
		cardID, ok := message.AdditionalData.GetString("cardId")
		if !ok {
			return nil, false, errors.New("missing 'cardId' parameter")
		}

		rawRank, ok := message.AdditionalData.GetString("declared")
		if !ok {
			return nil, false, errors.New("missing 'declared' parameter")
		}

		declared, err := deck.ParseRank(rawRank)
		if err != nil {
			return nil, false, err
		}

		if err := g.PlayCard(playerID, cardID, declared); err != nil {
			return nil, false, err
		}

		return playable.OK(), true, nil
	case ActionLiar:
		result, err := g.LiarCall(playerID)
		if err != nil {
			return nil, false, err
		}

		return &playable.Response{
			Key:   "liarCall",
			Value: "liarsdeck",
			Data:  result,
		}, true, nil
	default:
		return nil, false, fmt.Errorf("unknown action: %s", message.Action)
	}
}

// EndOfGameLog is the log returned when the game is over
type EndOfGameLog struct {
	WinnerID  string    `json:"winnerId"`
	RoundSuit deck.Rank `json:"roundSuit"`
	Plays     []*Play   `json:"plays"`
}

// GetEndOfGameDetails returns details at the end of the game
func (g *Game) GetEndOfGameDetails() (gameOverDetails *playable.GameOverDetails, isGameOver bool) {
	if g.phase != PhaseEnded {
		return nil, false
	}

	return &playable.GameOverDetails{
		WinnerID: g.winnerID,
		Log: &EndOfGameLog{
			WinnerID:  g.winnerID,
			RoundSuit: g.RoundSuit(),
			Plays:     g.table.Plays(),
		},
	}, true
}
