// Package liarsdeck is the game engine for a table of Liar's Deck.
//
// Players take turns playing a single card face down while declaring its rank. The player
// to the left of the active player may call liar. Whoever is judged wrong spins the revolver
// and is eliminated one time in six. The last player standing wins.
//
// A Game is not safe for concurrent use. The caller must serialise every operation on a table.
package liarsdeck

import (
	"fmt"

	"liarsbar-server/internal/rng"
	"liarsbar-server/pkg/deck"
	"liarsbar-server/pkg/playable"

	"github.com/sirupsen/logrus"
)

const (
	minPlayers = 2
	maxPlayers = 8
	handSize   = 5

	// the revolver has one live round in this many chambers
	revolverChambers = 6
)

// Phase is the current phase of the game
type Phase string

// phase constants
const (
	PhaseLobby   Phase = "lobby"
	PhaseDealing Phase = "dealing"
	PhasePlaying Phase = "playing"
	PhaseReveal  Phase = "reveal"
	PhaseEnded   Phase = "ended"
)

// LiarCallResult is the outcome of a liar call
type LiarCallResult struct {
	// Truth is true if the challenged play was honest
	Truth bool `json:"truth"`
	// Spinner is the player who had to spin the revolver
	Spinner string `json:"spinner"`
	// Eliminated is the spinner's id if the revolver fired, empty otherwise
	Eliminated string `json:"eliminated,omitempty"`
}

// Game is a single table of Liar's Deck
type Game struct {
	id         string
	hostID     string
	players    []*Player
	idToPlayer map[string]*Player
	turnIndex  int
	table      *Table
	phase      Phase
	winnerID   string

	deck *deck.Deck
	// the physical card waiting to be revealed
	pending *deck.Card

	// revolver decides eliminations, shuffler builds the decks
	revolver rng.Generator
	shuffler rng.Generator

	logger  logrus.FieldLogger
	logChan chan []*playable.LogMessage
}

// NewGame returns a new game in the lobby with the host seated
// If gen is nil, a crypto backed generator is used for the revolver.
func NewGame(logger logrus.FieldLogger, id, hostID, hostName string, gen rng.Generator) *Game {
	if gen == nil {
		gen = rng.Crypto{}
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	host := newPlayer(hostID, hostName, false)

	return &Game{
		id:         id,
		hostID:     hostID,
		players:    []*Player{host},
		idToPlayer: map[string]*Player{hostID: host},
		table:      newTable(),
		phase:      PhaseLobby,
		revolver:   gen,
		shuffler:   rng.Crypto{},
		logger:     logger.WithField("game", id),
		logChan:    make(chan []*playable.LogMessage, 256),
	}
}

// AddPlayer seats a new player
// Players can only join while the game is in the lobby.
func (g *Game) AddPlayer(id, name string, isBot bool) error {
	if g.phase != PhaseLobby {
		return ErrInvalidPhase
	}

	if len(g.players) >= maxPlayers {
		return ErrTableFull
	}

	if _, ok := g.idToPlayer[id]; ok {
		return ErrDuplicatePlayer
	}

	p := newPlayer(id, name, isBot)
	g.players = append(g.players, p)
	g.idToPlayer[id] = p

	g.logger.WithFields(logrus.Fields{
		"player": id,
		"isBot":  isBot,
	}).Debug("player joined")
	g.sendLogMessages(newLogMessage(id, "{} sat down at the table"))

	return nil
}

// RemovePlayer marks the player as disconnected
// This is bookkeeping only. Turn order, eliminations and the phase are untouched.
func (g *Game) RemovePlayer(id string) {
	p, ok := g.idToPlayer[id]
	if !ok {
		return
	}

	p.connected = false
	g.logger.WithField("player", id).Debug("player disconnected")
}

// Start deals the cards and draws the round suit
func (g *Game) Start() error {
	if g.phase != PhaseLobby {
		return ErrInvalidPhase
	}

	if len(g.players) < minPlayers {
		return ErrNotEnoughPlayers
	}

	g.phase = PhaseDealing
	g.deck = deck.NewMainDeck(g.shuffler)
	g.table.TableDeck = deck.NewTableDeck(g.shuffler)

	for _, p := range g.players {
		p.hand = deck.Hand{}
	}

	g.deal()

	g.table.drawRoundSuit()
	g.table.plays = []*Play{}
	g.pending = nil
	g.turnIndex = 0
	g.phase = PhasePlaying

	g.logger.WithFields(logrus.Fields{
		"players":   len(g.players),
		"roundSuit": g.RoundSuit(),
	}).Info("game started")
	g.sendLogMessages(newLogMessage("", "The cards are dealt. This table plays %s", g.RoundSuit()))

	return nil
}

// deal gives each player one card at a time until everyone has a full hand
// With more than four players the deck runs out first, and the later seats get one card less.
func (g *Game) deal() {
	for round := 0; round < handSize; round++ {
		for _, p := range g.alivePlayers() {
			card, err := g.deck.Pop()
			if err != nil {
				return
			}

			p.hand.AddCard(card)
		}
	}
}

// alivePlayers is the turn order: every player who has not been eliminated, in join order
func (g *Game) alivePlayers() []*Player {
	alive := make([]*Player, 0, len(g.players))
	for _, p := range g.players {
		if !p.eliminated {
			alive = append(alive, p)
		}
	}

	return alive
}

// CurrentPlayer returns the player whose turn it is
// The turn index is taken modulo the number of players still alive, so it shifts when someone
// is eliminated.
func (g *Game) CurrentPlayer() *Player {
	alive := g.alivePlayers()
	if len(alive) == 0 {
		return nil
	}

	return alive[g.turnIndex%len(alive)]
}

// LeftPlayerID returns the id of the player sitting to the left of the current player
// That player is the only one who may call liar.
func (g *Game) LeftPlayerID() string {
	alive := g.alivePlayers()
	n := len(alive)
	if n == 0 {
		return ""
	}

	cur := g.turnIndex % n
	return alive[(cur-1+n)%n].ID
}

// PlayCard places a card face down and declares its rank
// The declared rank is not checked against the card. That's the bluff.
func (g *Game) PlayCard(playerID, cardID string, declared deck.Rank) error {
	if g.phase != PhasePlaying {
		return ErrInvalidPhase
	}

	current := g.CurrentPlayer()
	if current == nil || current.ID != playerID {
		return ErrNotCurrentPlayer
	}

	if !current.hand.HasCard(cardID) {
		return ErrUnknownCard
	}

	if !declared.IsValid() {
		return fmt.Errorf("%w: %q", deck.ErrInvalidRank, declared)
	}

	card := current.hand.Remove(cardID)
	g.pending = card
	g.table.addPlay(&Play{
		PlayerID: playerID,
		CardID:   card.ID,
		Declared: declared,
	})
	g.phase = PhaseReveal

	g.logger.WithFields(logrus.Fields{
		"player":   playerID,
		"declared": declared,
	}).Debug("card played")
	g.sendLogMessages(newLogMessage(playerID, "{} played a card and said it is %s", declared))

	return nil
}

// LiarCall challenges the last play
// Only the left player may call. The wrong party spins the revolver.
func (g *Game) LiarCall(callerID string) (*LiarCallResult, error) {
	if g.phase != PhaseReveal {
		return nil, ErrInvalidPhase
	}

	if callerID != g.LeftPlayerID() {
		return nil, ErrNotChallenger
	}

	lastPlay := g.table.LastPlay()
	if lastPlay == nil || g.pending == nil {
		return nil, ErrNoPendingPlay
	}

	truth := g.wasTruth(g.pending, lastPlay.Declared)
	spinner := callerID
	if !truth {
		spinner = lastPlay.PlayerID
	}

	result := &LiarCallResult{
		Truth:   truth,
		Spinner: spinner,
	}

	messages := make([]*playable.LogMessage, 0, 3)
	if truth {
		messages = append(messages, newLogMessage(callerID, "{} called liar, but the card was %s", g.pending.Rank))
	} else {
		messages = append(messages, newLogMessage(callerID, "{} called liar and caught a %s", g.pending.Rank))
	}

	revealed := g.pending
	g.pending = nil

	if g.spinRevolver() {
		result.Eliminated = spinner
		g.eliminate(spinner)
		messages = append(messages, newLogMessage(spinner, "{} spun the revolver and is out"))
	} else {
		messages = append(messages, newLogMessage(spinner, "{} spun the revolver and survived"))
	}

	g.advanceAfterReveal()
	if g.phase == PhaseEnded {
		messages = append(messages, newLogMessage(g.winnerID, "{} wins"))
	}

	g.logger.WithFields(logrus.Fields{
		"caller":     callerID,
		"card":       revealed.Rank,
		"declared":   lastPlay.Declared,
		"truth":      truth,
		"spinner":    spinner,
		"eliminated": result.Eliminated,
	}).Debug("liar called")
	g.sendLogMessages(messages...)

	return result, nil
}

// wasTruth returns true if the card backs up the declaration
// Jokers and a joker round suit validate anything.
func (g *Game) wasTruth(card *deck.Card, declared deck.Rank) bool {
	return card.Rank == declared || card.IsWild() || g.table.roundSuitIs(deck.Joker)
}

// spinRevolver returns true if the revolver fired
func (g *Game) spinRevolver() bool {
	return g.revolver.Intn(revolverChambers) == 0
}

func (g *Game) eliminate(playerID string) {
	p, ok := g.idToPlayer[playerID]
	if !ok {
		return
	}

	p.eliminated = true

	if survivors := g.alivePlayers(); len(survivors) == 1 {
		g.winnerID = survivors[0].ID
		g.phase = PhaseEnded
	}
}

// advanceAfterReveal hands the turn to the next seat
// The modulus is the alive count after any elimination.
func (g *Game) advanceAfterReveal() {
	if g.phase == PhaseEnded {
		return
	}

	g.phase = PhasePlaying
	alive := g.alivePlayers()
	g.turnIndex = (g.turnIndex + 1) % len(alive)

	for _, p := range alive {
		if len(p.hand) > 0 {
			return
		}
	}

	g.winnerID = alive[0].ID
	g.phase = PhaseEnded
}

// ID returns the game identifier
func (g *Game) ID() string {
	return g.id
}

// HostID returns the id of the player who created the game
func (g *Game) HostID() string {
	return g.hostID
}

// Phase returns the current phase
func (g *Game) Phase() Phase {
	return g.phase
}

// TurnIndex returns the raw turn index
func (g *Game) TurnIndex() int {
	return g.turnIndex
}

// WinnerID returns the winner, or an empty string while the game is running
func (g *Game) WinnerID() string {
	return g.winnerID
}

// RoundSuit returns the round suit, or an empty rank before the deal
func (g *Game) RoundSuit() deck.Rank {
	if g.table.RoundSuit == nil {
		return ""
	}

	return *g.table.RoundSuit
}

// Plays returns a copy of the play log
func (g *Game) Plays() []*Play {
	return g.table.Plays()
}

// Players returns the players in join order
func (g *Game) Players() []*Player {
	return append([]*Player{}, g.players...)
}

// Player returns the player with the given id
func (g *Game) Player(id string) (*Player, bool) {
	p, ok := g.idToPlayer[id]
	return p, ok
}
