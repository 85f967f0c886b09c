package room

import (
	"fmt"

	"liarsbar-server/pkg/playable"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Seat is where a token sits: one player at one table
type Seat struct {
	GameID   string `json:"gameId"`
	PlayerID string `json:"playerId"`
}

// Client is a client connected to the server via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close is a channel for closing the client
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	dealer *Dealer
	seat   Seat
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, seat Seat) *Client {
	return &Client{
		send:  make(chan interface{}, 256),
		Close: make(chan string),
		Conn:  conn,
		seat:  seat,
	}
}

// Send sends a message to the web client
// Returns false if the client's buffer is full and the message was dropped.
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// Seat returns the seat the client is bound to
func (c *Client) Seat() Seat {
	return c.seat
}

// String returns a traceable identifier for the player and table
func (c *Client) String() string {
	return fmt.Sprintf("%s:%s", c.seat.PlayerID, c.seat.GameID)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *playable.PayloadIn) {
	if c.dealer == nil {
		logrus.WithField("msg", msg).Warn("received message, but dealer not found")
		return
	}

	c.dealer.ReceivedMessage(c, msg)
}
