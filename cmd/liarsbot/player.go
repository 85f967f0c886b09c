package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"liarsbar-server/pkg/bot"
	"liarsbar-server/pkg/playable/liarsdeck"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// remotePlayer is a bot that sits at a table over the network
type remotePlayer struct {
	server     string
	brain      *bot.Brain
	delay      time.Duration
	httpClient *http.Client
	dialer     *websocket.Dialer
	log        logrus.FieldLogger
}

func newRemotePlayer(server string, brain *bot.Brain, delay time.Duration, log logrus.FieldLogger) *remotePlayer {
	return &remotePlayer{
		server:     strings.TrimSuffix(server, "/"),
		brain:      brain,
		delay:      delay,
		httpClient: &http.Client{Timeout: time.Second * 10},
		dialer:     websocket.DefaultDialer,
		log:        log,
	}
}

type seatResponse struct {
	GameID   string `json:"gameId"`
	PlayerID string `json:"playerId"`
	Token    string `json:"token"`
}

type errorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}

// message is the envelope for everything the server sends
type message struct {
	Key     string          `json:"key"`
	Value   string          `json:"value"`
	Data    json.RawMessage `json:"data"`
	Context string          `json:"context"`
}

func (p *remotePlayer) post(ctx context.Context, path string, payload interface{}) (*seatResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.server+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		var errResp errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&errResp)
		return nil, fmt.Errorf("%s failed with %d: %s", path, resp.StatusCode, errResp.Message)
	}

	var seat seatResponse
	if err := json.NewDecoder(resp.Body).Decode(&seat); err != nil {
		return nil, fmt.Errorf("could not decode response: %w", err)
	}

	return &seat, nil
}

// createGame opens a new table with name as the host
func (p *remotePlayer) createGame(ctx context.Context, name string) (*seatResponse, error) {
	return p.post(ctx, "/game", map[string]interface{}{"name": name})
}

// join takes a seat at gameID
func (p *remotePlayer) join(ctx context.Context, gameID, name string) (*seatResponse, error) {
	seat, err := p.post(ctx, "/game/"+url.PathEscape(gameID)+"/join", map[string]interface{}{
		"name":  name,
		"isBot": true,
	})
	if err != nil {
		return nil, err
	}

	seat.GameID = gameID
	return seat, nil
}

func (p *remotePlayer) wsURL(token string) (string, error) {
	u, err := url.Parse(p.server)
	if err != nil {
		return "", err
	}

	switch u.Scheme {
	case "https", "wss":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}

	u.Path = strings.TrimSuffix(u.Path, "/") + "/ws"
	u.RawQuery = url.Values{"token": {token}}.Encode()

	return u.String(), nil
}

// run joins gameID and plays until the game is over
func (p *remotePlayer) run(ctx context.Context, gameID, name string) error {
	seat, err := p.join(ctx, gameID, name)
	if err != nil {
		return err
	}

	p.log.WithField("playerId", seat.PlayerID).Info("joined game")
	return p.play(ctx, seat.Token)
}

// play connects with token and plays until the game ends or ctx is done
func (p *remotePlayer) play(ctx context.Context, token string) error {
	wsURL, err := p.wsURL(token)
	if err != nil {
		return err
	}

	conn, _, err := p.dialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("could not connect: %w", err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() {
		_ = conn.Close()
	})
	defer stop()

	// the last state we moved in, so repeated updates don't trigger a second move
	var lastMove string
	for {
		var msg message
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}

			return fmt.Errorf("could not read message: %w", err)
		}

		switch msg.Key {
		case "error":
			p.log.WithField("context", msg.Context).Warn(msg.Value)
		case "gameEnded":
			p.log.WithField("winner", msg.Value).Info("game over")
			return nil
		case "game":
			var view liarsdeck.Response
			if err := json.Unmarshal(msg.Data, &view); err != nil {
				return fmt.Errorf("could not decode game state: %w", err)
			}

			if view.GameState == nil {
				continue
			}

			if view.GameState.Phase == liarsdeck.PhaseEnded {
				p.log.WithField("winner", view.GameState.WinnerID).Info("game over")
				return nil
			}

			decision := p.brain.Decide(&view)
			if decision == nil {
				continue
			}

			move := fmt.Sprintf("%s/%d", view.GameState.Phase, len(view.GameState.Plays))
			if move == lastMove {
				continue
			}
			lastMove = move

			select {
			case <-ctx.Done():
				return nil
			case <-time.After(p.delay):
			}

			p.log.WithField("decision", decision.String()).Debug("moving")
			if err := conn.WriteJSON(decision.Payload()); err != nil {
				return fmt.Errorf("could not send move: %w", err)
			}
		}
	}
}
