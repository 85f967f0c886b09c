package liarsdeck

import "errors"

// ErrInvalidPhase is returned when an operation is attempted outside of its phase
var ErrInvalidPhase = errors.New("action is not allowed in the current phase")

// ErrNotCurrentPlayer is returned when someone other than the current player tries to play
var ErrNotCurrentPlayer = errors.New("not player's turn")

// ErrNotChallenger is returned when someone other than the left player calls liar
var ErrNotChallenger = errors.New("only the player to the left can call liar")

// ErrUnknownCard happens when the player tries to play a card they don't have
var ErrUnknownCard = errors.New("card is not in player's hand")

// ErrTableFull is returned when a player tries to join a full table
var ErrTableFull = errors.New("the table is full")

// ErrDuplicatePlayer is returned when a player joins twice
var ErrDuplicatePlayer = errors.New("player is already at the table")

// ErrNoPendingPlay is returned when liar is called and no card is waiting to be revealed
var ErrNoPendingPlay = errors.New("there is no card to reveal")

// ErrNotEnoughPlayers is returned when the game is started with too few players
var ErrNotEnoughPlayers = errors.New("need at least two players")

// ErrPlayerNotFound is returned when a player is not found in the game
var ErrPlayerNotFound = errors.New("player not found")
