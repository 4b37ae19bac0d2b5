package room

import (
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"uno-server/pkg/playable"
)

// Client is a client connected to the server via websockets
type Client struct {
	// Conn is the underlying websocket connection
	Conn *websocket.Conn

	// send is a channel for sending messages to the client
	send chan interface{}

	// Close receives the reason when the server wants the connection closed
	Close chan string

	// CloseError contains the reason why the connection was closed
	CloseError error

	dealer *Dealer

	// playerID is the seat the client is watching, zero follows the current player
	playerID int64
}

// NewClient returns a new client object
func NewClient(conn *websocket.Conn, playerID int64) *Client {
	return &Client{
		send:     make(chan interface{}, 256),
		Close:    make(chan string, 1),
		Conn:     conn,
		playerID: playerID,
	}
}

// Send send a message to the web client
// Returns false if the client is not keeping up and the message was dropped
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// close asks the connection to close
// Only the first reason is kept
func (c *Client) close(reason string) {
	select {
	case c.Close <- reason:
	default:
	}
}

// SendChan returns a read-only channel
func (c *Client) SendChan() <-chan interface{} {
	return c.send
}

// PlayerID returns the player the client acts for
func (c *Client) PlayerID() int64 {
	return c.playerID
}

// String returns a traceable identifier for the client
func (c *Client) String() string {
	if c.playerID == 0 {
		return "player:current"
	}

	return fmt.Sprintf("player:%d", c.playerID)
}

// ReceivedMessage is called when the server receives a message from a connected client
func (c *Client) ReceivedMessage(msg *playable.PayloadIn) {
	if c.dealer == nil {
		logrus.WithField("msg", msg).Warn("received message, but dealer not found")
		return
	}

	c.dealer.ReceivedMessage(c, msg)
}
