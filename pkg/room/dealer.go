package room

import (
	"sync"

	"liarsbar-server/internal/util"
	"liarsbar-server/pkg/bot"
	"liarsbar-server/pkg/playable"
	"liarsbar-server/pkg/playable/liarsdeck"

	"github.com/coder/quartz"
	"github.com/sirupsen/logrus"
)

const actionAddBot = "addBot"

// Dealer runs a single table
// Every call into the game happens on the dealer's run loop, one at a time.
type Dealer struct {
	id      string
	pitBoss *PitBoss
	opts    Options
	clock   quartz.Clock
	log     logrus.FieldLogger

	game        *liarsdeck.Game
	gameEnded   bool
	logMessages []*playable.LogMessage

	// bots are the in-process bots this dealer seated, keyed by player id
	bots      map[string]*bot.Brain
	botTimer  *quartz.Timer
	idleTimer *quartz.Timer

	clients map[*Client]bool
	lock    sync.RWMutex

	execInRunLoop chan func()
	close         chan bool
	closeOnce     sync.Once
}

// NewDealer creates a new dealer with the host seated
// This is called from a blocking state, so it needs to return quickly
func NewDealer(pitBoss *PitBoss, id, hostID, hostName string, opts Options) *Dealer {
	opts = opts.withDefaults()
	log := logrus.WithField("gameId", id)

	return &Dealer{
		id:            id,
		pitBoss:       pitBoss,
		opts:          opts,
		clock:         opts.Clock,
		log:           log,
		game:          liarsdeck.NewGame(log, id, hostID, hostName, opts.Generator),
		logMessages:   make([]*playable.LogMessage, 0),
		bots:          make(map[string]*bot.Brain),
		clients:       make(map[*Client]bool),
		execInRunLoop: make(chan func(), 256),
		close:         make(chan bool),
	}
}

// ID returns the game id
func (d *Dealer) ID() string {
	return d.id
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	d.exec(d.startIdleTimer)
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	d.log.Debug("creating dealer run loop")
	for {
		select {
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			d.stopTimers()
			d.log.Debug("terminating dealer run loop")
			return
		}
	}
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	d.closeOnce.Do(func() {
		close(d.close)
	})
}

// exec queues fn for the run loop
// Returns false if the dealer has already ended its shift.
func (d *Dealer) exec(fn func()) bool {
	select {
	case d.execInRunLoop <- fn:
		return true
	case <-d.close:
		return false
	}
}

// Do runs fn on the run loop and waits for it to finish
func (d *Dealer) Do(fn func(game *liarsdeck.Game)) error {
	done := make(chan bool)
	if !d.exec(func() {
		defer close(done)
		fn(d.game)
	}) {
		return ErrTableNotFound
	}

	select {
	case <-done:
		return nil
	case <-d.close:
		return ErrTableNotFound
	}
}

// View returns the game as seen by playerID
// An empty or unknown id gets the spectator view.
func (d *Dealer) View(playerID string) (*liarsdeck.Response, error) {
	var view *liarsdeck.Response
	if err := d.Do(func(game *liarsdeck.Game) {
		view = game.View(playerID)
	}); err != nil {
		return nil, err
	}

	return view, nil
}

// Join seats a new player and returns their id
func (d *Dealer) Join(name string, isBot bool) (string, error) {
	playerID := util.NewID()

	var joinErr error
	if err := d.Do(func(game *liarsdeck.Game) {
		if joinErr = game.AddPlayer(playerID, name, isBot); joinErr != nil {
			return
		}

		d.gameChanged()
	}); err != nil {
		return "", err
	}

	if joinErr != nil {
		return "", joinErr
	}

	return playerID, nil
}

// Action performs msg on behalf of playerID and waits for the result
func (d *Dealer) Action(playerID string, msg *playable.PayloadIn) (*playable.Response, error) {
	var res *playable.Response
	var actionErr error
	if err := d.Do(func(*liarsdeck.Game) {
		res, actionErr = d.handleAction(playerID, msg)
	}); err != nil {
		return nil, err
	}

	return res, actionErr
}

// AddClient adds a client
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	d.exec(func() {
		d.stopIdleTimer()
		d.sendClientState()

		gs, err := d.game.GetPlayerState(client.seat.PlayerID)
		if err != nil {
			d.log.WithError(err).Error("could not get player state")
			return
		}

		client.Send(gs)
		if len(d.logMessages) > 0 {
			client.Send(&playable.Response{
				Key:  "log",
				Data: append([]*playable.LogMessage{}, d.logMessages...),
			})
		}
	})
}

// RemoveClient removes a client
// The seat is marked as disconnected if this was the last connection for it.
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	seatConnected := false
	for c := range d.clients {
		if c.seat.PlayerID == client.seat.PlayerID {
			seatConnected = true
			break
		}
	}
	d.lock.Unlock()

	d.exec(func() {
		if !seatConnected {
			d.game.RemovePlayer(client.seat.PlayerID)
			d.sendGameData()
		}

		d.sendClientState()
		if nClients == 0 {
			d.startIdleTimer()
		}
	})

	return nClients == 0
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *playable.PayloadIn) {
	d.exec(func() {
		res, err := d.handleAction(c.seat.PlayerID, msg)
		if err != nil {
			d.log.WithError(err).WithField("client", c.String()).Info("could not perform action")
			c.Send(playable.ErrorResponse(msg.Context, err))
			return
		}

		if res != nil {
			c.Send(res)
		}
	})
}

// handleAction performs an action for a seat
// NOTE: must only be called from the run loop
func (d *Dealer) handleAction(playerID string, msg *playable.PayloadIn) (*playable.Response, error) {
	var res *playable.Response
	var updateState bool
	var err error

	if msg.Action == actionAddBot {
		res, err = d.addBot(playerID, msg.AdditionalData)
		updateState = err == nil
	} else {
		res, updateState, err = d.game.Action(playerID, msg)
	}

	if err != nil {
		return nil, err
	}

	if res != nil && res.Key == "liarCall" {
		d.broadcast(&playable.Response{
			Key:   res.Key,
			Value: res.Value,
			Data:  res.Data,
		})
		res = playable.OK()
	}

	if res != nil {
		res.Context = msg.Context
	}

	if updateState {
		d.gameChanged()
	}

	return res, nil
}

// addBot seats an in-process bot
// NOTE: must only be called from the run loop
func (d *Dealer) addBot(playerID string, data playable.AdditionalData) (*playable.Response, error) {
	if playerID != d.game.HostID() {
		return nil, ErrNotHost
	}

	difficulty := d.opts.BotDifficulty
	if raw, ok := data.GetString("difficulty"); ok {
		var err error
		if difficulty, err = bot.ParseDifficulty(raw); err != nil {
			return nil, err
		}
	}

	botID := util.NewID()
	if err := d.game.AddPlayer(botID, util.GetRandomName(), true); err != nil {
		return nil, err
	}

	d.bots[botID] = bot.NewBrain(d.opts.Generator, difficulty)
	d.log.WithFields(logrus.Fields{
		"bot":        botID,
		"difficulty": difficulty,
	}).Info("bot seated")

	return &playable.Response{
		Key:   "status",
		Value: "OK",
		Data:  map[string]string{"playerId": botID},
	}, nil
}

// gameChanged pushes the new state out and wakes up any bot that has to move
// NOTE: must only be called from the run loop
func (d *Dealer) gameChanged() {
	d.flushLogMessages()
	d.sendGameData()
	d.sendClientState()

	if details, isOver := d.game.GetEndOfGameDetails(); isOver && !d.gameEnded {
		d.gameEnded = true
		d.log.WithField("winner", details.WinnerID).Info("game over")
		d.broadcast(&playable.Response{
			Key:   "gameEnded",
			Value: details.WinnerID,
			Data:  details.Log,
		})
	}

	d.scheduleBot()
}

// scheduleBot starts the bot timer if the seat that has to act next is one of our bots
// NOTE: must only be called from the run loop
func (d *Dealer) scheduleBot() {
	if d.botTimer != nil {
		d.botTimer.Stop()
		d.botTimer = nil
	}

	var botID string
	switch d.game.Phase() {
	case liarsdeck.PhasePlaying:
		if current := d.game.CurrentPlayer(); current != nil {
			botID = current.ID
		}
	case liarsdeck.PhaseReveal:
		botID = d.game.LeftPlayerID()
	default:
		return
	}

	if _, ok := d.bots[botID]; !ok {
		return
	}

	d.botTimer = d.clock.AfterFunc(d.opts.BotDelay, func() {
		d.exec(func() {
			d.botTimer = nil
			d.runBot(botID)
		})
	}, "dealer", "bot")
}

// runBot lets a bot make its move
// NOTE: must only be called from the run loop
func (d *Dealer) runBot(botID string) {
	brain, ok := d.bots[botID]
	if !ok {
		return
	}

	decision := brain.Decide(d.game.View(botID))
	if decision == nil {
		d.log.WithField("bot", botID).Debug("bot has nothing to do")
		return
	}

	log := d.log.WithFields(logrus.Fields{
		"bot":      botID,
		"decision": decision.String(),
	})

	if _, err := d.handleAction(botID, decision.Payload()); err != nil {
		log.WithError(err).Error("bot could not perform action")
		return
	}

	log.Debug("bot moved")
}

// NOTE: must only be called from the run loop
func (d *Dealer) startIdleTimer() {
	if d.opts.IdleTimeout <= 0 || d.idleTimer != nil {
		return
	}

	d.idleTimer = d.clock.AfterFunc(d.opts.IdleTimeout, func() {
		d.exec(func() {
			d.idleTimer = nil

			d.lock.RLock()
			nClients := len(d.clients)
			d.lock.RUnlock()

			if nClients > 0 {
				return
			}

			d.log.WithField("idleTimeout", d.opts.IdleTimeout).Info("closing idle table")
			if d.pitBoss != nil {
				d.pitBoss.closeTable(d.id)
			} else {
				d.EndShift()
			}
		})
	}, "dealer", "idle")
}

// NOTE: must only be called from the run loop
func (d *Dealer) stopIdleTimer() {
	if d.idleTimer != nil {
		d.idleTimer.Stop()
		d.idleTimer = nil
	}
}

func (d *Dealer) stopTimers() {
	d.stopIdleTimer()
	if d.botTimer != nil {
		d.botTimer.Stop()
		d.botTimer = nil
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) broadcast(msg *playable.Response) {
	for _, client := range d.Clients() {
		if !client.Send(msg) {
			d.log.WithField("client", client.String()).Warn("client buffer is full, dropping message")
		}
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendGameData() {
	for _, client := range d.Clients() {
		data, err := d.game.GetPlayerState(client.seat.PlayerID)
		if err != nil {
			d.log.WithError(err).Error("could not get player state")
			continue
		}

		client.Send(data)
	}
}

// clientStatePlayer reports who is at the table right now
type clientStatePlayer struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsBot       bool   `json:"isBot"`
	IsHost      bool   `json:"isHost"`
	IsConnected bool   `json:"isConnected"`
}

// NOTE: must only be called from the run loop
func (d *Dealer) clientState() []*clientStatePlayer {
	connected := make(map[string]bool)
	for _, client := range d.Clients() {
		connected[client.seat.PlayerID] = true
	}

	players := d.game.Players()
	state := make([]*clientStatePlayer, len(players))
	for i, p := range players {
		_, inProcess := d.bots[p.ID]
		state[i] = &clientStatePlayer{
			ID:          p.ID,
			Name:        p.Name,
			IsBot:       p.IsBot,
			IsHost:      p.ID == d.game.HostID(),
			IsConnected: connected[p.ID] || inProcess,
		}
	}

	return state
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendClientState() {
	d.broadcast(&playable.Response{
		Key:  "clientState",
		Data: d.clientState(),
	})
}
