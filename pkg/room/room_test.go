package room

import (
	"context"
	"testing"
	"time"

	"liarsbar-server/internal/rng"
	"liarsbar-server/pkg/bot"
	"liarsbar-server/pkg/playable"
	"liarsbar-server/pkg/playable/liarsdeck"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
)

func newTestPitBoss(t *testing.T, opts Options) (*PitBoss, *quartz.Mock) {
	t.Helper()

	mClock := quartz.NewMock(t)
	opts.Clock = mClock
	p := NewPitBoss(opts)
	t.Cleanup(p.EndShift)

	return p, mClock
}

func newTestTable(t *testing.T, opts Options) (*PitBoss, *quartz.Mock, *Dealer, *SeatToken) {
	t.Helper()

	p, mClock := newTestPitBoss(t, opts)
	host, err := p.CreateTable("Host")
	if !assert.NoError(t, err) {
		t.FailNow()
	}

	d, err := p.Dealer(host.GameID)
	if !assert.NoError(t, err) {
		t.FailNow()
	}

	return p, mClock, d, host
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)

	return ctx
}

// flush waits until everything queued on the dealer's run loop has run
func flush(t *testing.T, d *Dealer) {
	t.Helper()
	assert.NoError(t, d.Do(func(*liarsdeck.Game) {}))
}

// drain returns every message waiting for the client
func drain(c *Client) []*playable.Response {
	messages := make([]*playable.Response, 0)
	for {
		select {
		case msg := <-c.SendChan():
			messages = append(messages, msg.(*playable.Response))
		default:
			return messages
		}
	}
}

func keys(messages []*playable.Response) []string {
	k := make([]string, len(messages))
	for i, msg := range messages {
		k[i] = msg.Key
	}

	return k
}

func TestPitBoss_CreateTable(t *testing.T) {
	a := assert.New(t)

	p, _ := newTestPitBoss(t, Options{IdleTimeout: 0})
	host, err := p.CreateTable("Host")
	a.NoError(err)
	a.NotEmpty(host.GameID)
	a.NotEmpty(host.PlayerID)
	a.Len(host.Token, 24)
	a.Equal(1, p.TableCount())

	seat, err := p.Resolve(host.Token)
	a.NoError(err)
	a.Equal(host.Seat, seat)

	d, err := p.Dealer(host.GameID)
	a.NoError(err)
	a.Equal(host.GameID, d.ID())

	view, err := d.View("")
	a.NoError(err)
	a.Equal(host.PlayerID, view.GameState.HostID)
	a.Equal(liarsdeck.PhaseLobby, view.GameState.Phase)
	a.Len(view.GameState.Players, 1)
	a.Equal("Host", view.GameState.Players[0].Name)
}

func TestPitBoss_JoinTable(t *testing.T) {
	a := assert.New(t)

	p, _, d, host := newTestTable(t, Options{TokenLength: 12})
	a.Len(host.Token, 12)

	guest, err := p.JoinTable(host.GameID, "Guest", false)
	a.NoError(err)
	a.Equal(host.GameID, guest.GameID)
	a.NotEqual(host.PlayerID, guest.PlayerID)
	a.NotEqual(host.Token, guest.Token)

	seat, err := p.Resolve(guest.Token)
	a.NoError(err)
	a.Equal(guest.Seat, seat)

	view, err := d.View(guest.PlayerID)
	a.NoError(err)
	a.Len(view.GameState.Players, 2)
	a.Equal("Guest", view.GameState.Players[1].Name)

	_, err = p.JoinTable("missing", "Guest", false)
	a.Equal(ErrTableNotFound, err)
}

func TestPitBoss_JoinTable_Rejected(t *testing.T) {
	a := assert.New(t)

	p, _, d, host := newTestTable(t, Options{})
	for i := 0; i < 7; i++ {
		_, err := p.JoinTable(host.GameID, "Guest", i%2 == 0)
		a.NoError(err)
	}

	_, err := p.JoinTable(host.GameID, "One Too Many", false)
	a.Equal(liarsdeck.ErrTableFull, err)

	_, err = d.Action(host.PlayerID, &playable.PayloadIn{Action: liarsdeck.ActionStart})
	a.NoError(err)

	p2, _, _, host2 := newTestTable(t, Options{})
	_, err = p2.JoinTable(host2.GameID, "Guest", false)
	a.NoError(err)

	d2, _ := p2.Dealer(host2.GameID)
	_, err = d2.Action(host2.PlayerID, &playable.PayloadIn{Action: liarsdeck.ActionStart})
	a.NoError(err)

	_, err = p2.JoinTable(host2.GameID, "Late", false)
	a.Equal(liarsdeck.ErrInvalidPhase, err)
}

func TestPitBoss_Resolve(t *testing.T) {
	a := assert.New(t)

	p, _ := newTestPitBoss(t, Options{})

	_, err := p.Resolve("")
	a.Equal(ErrInvalidToken, err)

	_, err = p.Resolve("abc/def")
	a.Equal(ErrInvalidToken, err)

	_, err = p.Resolve("unknownToken")
	a.Equal(ErrInvalidToken, err)
}

func TestPitBoss_IdleTimeout(t *testing.T) {
	a := assert.New(t)
	ctx := testContext(t)

	p, mClock, d, host := newTestTable(t, Options{IdleTimeout: time.Minute})
	flush(t, d)

	mClock.Advance(time.Minute).MustWait(ctx)

	a.Eventually(func() bool {
		_, err := p.Dealer(host.GameID)
		return err == ErrTableNotFound
	}, time.Second, time.Millisecond*10)

	_, err := p.Resolve(host.Token)
	a.Equal(ErrInvalidToken, err)
	a.Equal(0, p.TableCount())
	a.Equal(ErrTableNotFound, d.Do(func(*liarsdeck.Game) {}))
}

func TestPitBoss_IdleTimeout_ConnectedClient(t *testing.T) {
	a := assert.New(t)
	ctx := testContext(t)

	p, mClock, d, host := newTestTable(t, Options{IdleTimeout: time.Minute})
	client := NewClient(nil, host.Seat)
	a.NoError(p.ClientConnected(client))
	flush(t, d)

	mClock.Advance(time.Minute).MustWait(ctx)
	flush(t, d)

	_, err := p.Dealer(host.GameID)
	a.NoError(err)

	p.ClientDisconnected(client)
	flush(t, d)

	mClock.Advance(time.Second * 30).MustWait(ctx)
	flush(t, d)

	_, err = p.Dealer(host.GameID)
	a.NoError(err)

	mClock.Advance(time.Second * 30).MustWait(ctx)
	a.Eventually(func() bool {
		_, err := p.Dealer(host.GameID)
		return err == ErrTableNotFound
	}, time.Second, time.Millisecond*10)
}

func TestPitBoss_ClientConnected_UnknownTable(t *testing.T) {
	p, _ := newTestPitBoss(t, Options{})
	err := p.ClientConnected(NewClient(nil, Seat{GameID: "missing", PlayerID: "p1"}))
	assert.Equal(t, ErrTableNotFound, err)
}

func TestDealer_AddClient(t *testing.T) {
	a := assert.New(t)

	p, _, d, host := newTestTable(t, Options{})
	guest, err := p.JoinTable(host.GameID, "Guest", false)
	a.NoError(err)

	c := NewClient(nil, guest.Seat)
	a.NoError(p.ClientConnected(c))
	flush(t, d)

	a.Len(d.Clients(), 1)
	messages := drain(c)
	a.Equal([]string{"clientState", "game", "log"}, keys(messages))

	state := messages[0].Data.([]*clientStatePlayer)
	if a.Len(state, 2) {
		a.True(state[0].IsHost)
		a.False(state[0].IsConnected)
		a.False(state[1].IsHost)
		a.True(state[1].IsConnected)
	}

	logs := messages[2].Data.([]*playable.LogMessage)
	if a.Len(logs, 1) {
		a.Equal([]string{guest.PlayerID}, logs[0].PlayerIDs)
	}
}

func TestDealer_RemoveClient(t *testing.T) {
	a := assert.New(t)

	p, _, d, host := newTestTable(t, Options{})
	guest, err := p.JoinTable(host.GameID, "Guest", false)
	a.NoError(err)

	c1 := NewClient(nil, host.Seat)
	c2 := NewClient(nil, host.Seat)
	c3 := NewClient(nil, guest.Seat)
	a.NoError(p.ClientConnected(c1))
	a.NoError(p.ClientConnected(c2))
	a.NoError(p.ClientConnected(c3))
	a.Len(d.Clients(), 3)

	isConnected := func(playerID string) bool {
		var connected bool
		a.NoError(d.Do(func(game *liarsdeck.Game) {
			player, _ := game.Player(playerID)
			connected = player.Connected()
		}))

		return connected
	}

	// the host still has another connection
	a.False(d.RemoveClient(c1))
	a.True(isConnected(host.PlayerID))

	a.False(d.RemoveClient(c2))
	a.False(isConnected(host.PlayerID))
	a.True(isConnected(guest.PlayerID))

	a.True(d.RemoveClient(c3))
	a.False(isConnected(guest.PlayerID))
	a.Len(d.Clients(), 0)
}

func TestDealer_ReceivedMessage(t *testing.T) {
	a := assert.New(t)

	p, _, d, host := newTestTable(t, Options{})
	c := NewClient(nil, host.Seat)
	a.NoError(p.ClientConnected(c))
	flush(t, d)
	drain(c)

	c.ReceivedMessage(&playable.PayloadIn{Action: liarsdeck.ActionStart, Context: "ctx"})
	flush(t, d)

	messages := drain(c)
	if a.Len(messages, 1) {
		a.Equal(playable.ErrorResponse("ctx", liarsdeck.ErrNotEnoughPlayers), messages[0])
	}

	_, err := p.JoinTable(host.GameID, "Guest", false)
	a.NoError(err)
	flush(t, d)
	drain(c)

	c.ReceivedMessage(&playable.PayloadIn{Action: liarsdeck.ActionStart, Context: "ctx"})
	flush(t, d)

	messages = drain(c)
	a.Equal([]string{"log", "game", "clientState", "status"}, keys(messages))
	a.Equal(playable.OK("ctx"), messages[3])
}

func TestClient_ReceivedMessage_NoDealer(t *testing.T) {
	c := NewClient(nil, Seat{GameID: "g", PlayerID: "p"})
	c.ReceivedMessage(&playable.PayloadIn{Action: liarsdeck.ActionStart})
	assert.Equal(t, "p:g", c.String())
	assert.Len(t, drain(c), 0)
}

func TestDealer_AddBot(t *testing.T) {
	a := assert.New(t)

	p, _, d, host := newTestTable(t, Options{BotDifficulty: bot.Normal})
	guest, err := p.JoinTable(host.GameID, "Guest", false)
	a.NoError(err)

	_, err = d.Action(guest.PlayerID, &playable.PayloadIn{Action: actionAddBot})
	a.Equal(ErrNotHost, err)

	_, err = d.Action(host.PlayerID, &playable.PayloadIn{
		Action:         actionAddBot,
		AdditionalData: playable.AdditionalData{"difficulty": "impossible"},
	})
	a.ErrorIs(err, bot.ErrInvalidDifficulty)

	res, err := d.Action(host.PlayerID, &playable.PayloadIn{Action: actionAddBot, Context: "bot"})
	a.NoError(err)
	a.Equal("status", res.Key)
	a.Equal("bot", res.Context)
	botID := res.Data.(map[string]string)["playerId"]

	res, err = d.Action(host.PlayerID, &playable.PayloadIn{
		Action:         actionAddBot,
		AdditionalData: playable.AdditionalData{"difficulty": "hard"},
	})
	a.NoError(err)
	hardID := res.Data.(map[string]string)["playerId"]

	a.NoError(d.Do(func(game *liarsdeck.Game) {
		player, ok := game.Player(botID)
		if a.True(ok) {
			a.True(player.IsBot)
			a.NotEmpty(player.Name)
		}

		a.Equal(bot.Normal, d.bots[botID].Difficulty())
		a.Equal(bot.Hard, d.bots[hardID].Difficulty())
		a.Len(game.Players(), 4)

		// in-process bots are always present
		state := d.clientState()
		a.True(state[2].IsConnected)
		a.False(state[1].IsConnected)
	}))

	_, err = d.Action(host.PlayerID, &playable.PayloadIn{Action: liarsdeck.ActionStart})
	a.NoError(err)

	_, err = d.Action(host.PlayerID, &playable.PayloadIn{Action: actionAddBot})
	a.Equal(liarsdeck.ErrInvalidPhase, err)
}

func TestDealer_BotsPlay(t *testing.T) {
	a := assert.New(t)
	ctx := testContext(t)

	// the revolver never fires
	_, mClock, d, host := newTestTable(t, Options{
		Generator: rng.Fixed(1),
		BotDelay:  time.Second,
	})

	res, err := d.Action(host.PlayerID, &playable.PayloadIn{Action: actionAddBot})
	a.NoError(err)
	botID := res.Data.(map[string]string)["playerId"]

	c := NewClient(nil, host.Seat)
	d.AddClient(c)

	_, err = d.Action(host.PlayerID, &playable.PayloadIn{Action: liarsdeck.ActionStart})
	a.NoError(err)

	view, err := d.View(host.PlayerID)
	a.NoError(err)
	a.True(view.IsCurrentTurn)

	_, err = d.Action(host.PlayerID, &playable.PayloadIn{
		Action: liarsdeck.ActionPlay,
		AdditionalData: playable.AdditionalData{
			"cardId":   view.Hand[0].ID,
			"declared": "K",
		},
	})
	a.NoError(err)

	view, err = d.View(host.PlayerID)
	a.NoError(err)
	a.Equal(liarsdeck.PhaseReveal, view.GameState.Phase)
	a.Equal(botID, view.GameState.LeftPlayer)
	drain(c)

	// the bot calls liar
	mClock.Advance(time.Second).MustWait(ctx)
	flush(t, d)

	view, err = d.View(host.PlayerID)
	a.NoError(err)
	a.Equal(liarsdeck.PhasePlaying, view.GameState.Phase)
	a.Equal(botID, view.GameState.CurrentTurn)
	a.Contains(keys(drain(c)), "liarCall")

	// the bot plays a card
	mClock.Advance(time.Second).MustWait(ctx)
	flush(t, d)

	view, err = d.View(host.PlayerID)
	a.NoError(err)
	a.Equal(liarsdeck.PhaseReveal, view.GameState.Phase)
	a.Len(view.GameState.Plays, 2)
	a.Equal(botID, view.GameState.Plays[1].PlayerID)
	a.Equal(host.PlayerID, view.GameState.LeftPlayer)
	a.True(view.CanCallLiar)
}

func TestDealer_GameEnded(t *testing.T) {
	a := assert.New(t)

	// the revolver always fires
	p, _, d, host := newTestTable(t, Options{Generator: rng.Fixed(0)})
	guest, err := p.JoinTable(host.GameID, "Guest", false)
	a.NoError(err)

	c := NewClient(nil, guest.Seat)
	a.NoError(p.ClientConnected(c))

	_, err = d.Action(host.PlayerID, &playable.PayloadIn{Action: liarsdeck.ActionStart})
	a.NoError(err)

	view, err := d.View(host.PlayerID)
	a.NoError(err)

	_, err = d.Action(host.PlayerID, &playable.PayloadIn{
		Action: liarsdeck.ActionPlay,
		AdditionalData: playable.AdditionalData{
			"cardId":   view.Hand[0].ID,
			"declared": "K",
		},
	})
	a.NoError(err)
	drain(c)

	res, err := d.Action(guest.PlayerID, &playable.PayloadIn{Action: liarsdeck.ActionLiar, Context: "call"})
	a.NoError(err)
	a.Equal(playable.OK("call"), res)

	messages := drain(c)
	a.Equal([]string{"liarCall", "log", "game", "clientState", "gameEnded"}, keys(messages))

	result := messages[0].Data.(*liarsdeck.LiarCallResult)
	a.Equal(result.Spinner, result.Eliminated)
	a.NotEqual(result.Spinner, messages[4].Value)

	view, err = d.View("")
	a.NoError(err)
	a.Equal(liarsdeck.PhaseEnded, view.GameState.Phase)
	a.Equal(messages[4].Value, view.GameState.WinnerID)
}
