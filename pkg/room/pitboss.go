package room

import (
	"sync"

	"liarsbar-server/internal/util"
	"liarsbar-server/pkg/token"

	"github.com/sirupsen/logrus"
)

// SeatToken is handed to a player when they sit down
// The token is the only credential needed to (re)connect to the seat.
type SeatToken struct {
	Seat
	Token string `json:"token"`
}

// PitBoss is responsible for dispatching players to tables
type PitBoss struct {
	opts Options

	dealers map[string]*Dealer
	seats   map[string]Seat
	lock    sync.RWMutex
}

// NewPitBoss returns a new dispatch object
func NewPitBoss(opts Options) *PitBoss {
	return &PitBoss{
		opts:    opts.withDefaults(),
		dealers: make(map[string]*Dealer),
		seats:   make(map[string]Seat),
	}
}

// CreateTable opens a new table with hostName in the first seat
func (p *PitBoss) CreateTable(hostName string) (*SeatToken, error) {
	gameID := util.NewID()
	hostID := util.NewID()

	tkn, err := token.Generate(p.opts.TokenLength)
	if err != nil {
		return nil, err
	}

	dealer := NewDealer(p, gameID, hostID, hostName, p.opts)
	seat := Seat{GameID: gameID, PlayerID: hostID}

	p.lock.Lock()
	p.dealers[gameID] = dealer
	p.seats[tkn] = seat
	p.lock.Unlock()

	dealer.StartShift()

	logrus.WithFields(logrus.Fields{
		"gameId": gameID,
		"host":   hostID,
	}).Info("table opened")

	return &SeatToken{Seat: seat, Token: tkn}, nil
}

// JoinTable seats a new player at an existing table
func (p *PitBoss) JoinTable(gameID, name string, isBot bool) (*SeatToken, error) {
	dealer, err := p.Dealer(gameID)
	if err != nil {
		return nil, err
	}

	tkn, err := token.Generate(p.opts.TokenLength)
	if err != nil {
		return nil, err
	}

	playerID, err := dealer.Join(name, isBot)
	if err != nil {
		return nil, err
	}

	seat := Seat{GameID: gameID, PlayerID: playerID}

	p.lock.Lock()
	p.seats[tkn] = seat
	p.lock.Unlock()

	return &SeatToken{Seat: seat, Token: tkn}, nil
}

// Resolve returns the seat for a token
func (p *PitBoss) Resolve(tkn string) (Seat, error) {
	if !token.IsWellFormed(tkn) {
		return Seat{}, ErrInvalidToken
	}

	p.lock.RLock()
	defer p.lock.RUnlock()

	seat, ok := p.seats[tkn]
	if !ok {
		return Seat{}, ErrInvalidToken
	}

	return seat, nil
}

// Dealer returns the dealer running gameID
func (p *PitBoss) Dealer(gameID string) (*Dealer, error) {
	p.lock.RLock()
	defer p.lock.RUnlock()

	dealer, ok := p.dealers[gameID]
	if !ok {
		return nil, ErrTableNotFound
	}

	return dealer, nil
}

// ClientConnected is called when a client connects to the server
func (p *PitBoss) ClientConnected(client *Client) error {
	dealer, err := p.Dealer(client.seat.GameID)
	if err != nil {
		return err
	}

	logrus.WithField("client", client.String()).Debug("client connected")
	dealer.AddClient(client)

	return nil
}

// ClientDisconnected is called when a client disconnects from the server
func (p *PitBoss) ClientDisconnected(client *Client) {
	logrus.WithField("client", client.String()).Debug("client disconnected")

	dealer, err := p.Dealer(client.seat.GameID)
	if err != nil {
		// the table was closed while the client was still connected
		return
	}

	dealer.RemoveClient(client)
}

// TableCount returns the number of open tables
func (p *PitBoss) TableCount() int {
	p.lock.RLock()
	defer p.lock.RUnlock()

	return len(p.dealers)
}

// closeTable removes a table and every token that points at it
func (p *PitBoss) closeTable(gameID string) {
	p.lock.Lock()
	dealer, ok := p.dealers[gameID]
	delete(p.dealers, gameID)
	for tkn, seat := range p.seats {
		if seat.GameID == gameID {
			delete(p.seats, tkn)
		}
	}
	p.lock.Unlock()

	if ok {
		dealer.EndShift()
		logrus.WithField("gameId", gameID).Info("table closed")
	}
}

// EndShift closes every table
func (p *PitBoss) EndShift() {
	p.lock.Lock()
	dealers := make([]*Dealer, 0, len(p.dealers))
	for _, dealer := range p.dealers {
		dealers = append(dealers, dealer)
	}
	p.dealers = make(map[string]*Dealer)
	p.seats = make(map[string]Seat)
	p.lock.Unlock()

	for _, dealer := range dealers {
		dealer.EndShift()
	}
}
