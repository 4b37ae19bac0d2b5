package room

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"uno-server/pkg/bot"
	"uno-server/pkg/deck"
	"uno-server/pkg/playable"
	"uno-server/pkg/playable/uno"
)

// ErrDealerClosed is returned when a request is made after EndShift
var ErrDealerClosed = errors.New("the dealer is no longer running")

// ErrNoGame is returned when a move is requested before the first game is started
var ErrNoGame = errors.New("no game has been started")

const closeReasonEndShift = "the game server is shutting down"

type state int

const (
	stateClientEvent state = iota
	stateGameEvent
	stateGameEnded
)

// Dealer is responsible for controlling the game
// Every call into the game happens on the dealer's run loop, so callers on
// other goroutines never see a game in the middle of a move.
type Dealer struct {
	clients map[*Client]bool
	lock    sync.RWMutex

	// fields below are owned by the run loop
	game        *uno.Game
	gameID      string
	started     bool
	logMessages []*playable.LogMessage
	logger      logrus.FieldLogger

	execInRunLoop chan func()
	stateChanged  chan state
	close         chan bool
	closeOnce     sync.Once
}

// NewDealer creates a new dealer object
// The game is created with the given options but is not started
func NewDealer(opts uno.Options) *Dealer {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}

	return &Dealer{
		clients:       make(map[*Client]bool),
		game:          uno.NewGame(opts),
		logger:        opts.Logger,
		execInRunLoop: make(chan func(), 256),
		stateChanged:  make(chan state, 256),
		close:         make(chan bool),
	}
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
	go d.runLoop()
}

// EndShift is called when the dealer is no longer needed
// Connected clients are asked to close their connection
func (d *Dealer) EndShift() {
	d.closeOnce.Do(func() {
		close(d.close)

		for _, client := range d.Clients() {
			client.close(closeReasonEndShift)
		}
	})
}

func (d *Dealer) runLoop() {
	d.logger.Debug("creating dealer run loop")
	for {
		select {
		case s := <-d.stateChanged:
			switch s {
			case stateClientEvent:
				d.sendClientCount()
			case stateGameEvent:
				d.sendGameData()
			case stateGameEnded:
				d.sendGameData()
				d.sendGameEnded()
			}
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			d.logger.Debug("terminating dealer run loop")
			return
		}
	}
}

// exec runs fn on the run loop and waits for it to finish
// Once fn has been queued the caller waits for it. If ctx is done before fn's
// turn comes, fn is skipped, so a caller that receives an error never changed the game.
func (d *Dealer) exec(ctx context.Context, fn func()) error {
	done := make(chan error, 1)
	wrapped := func() {
		if err := ctx.Err(); err != nil {
			done <- err
			return
		}

		fn()
		done <- nil
	}

	select {
	case d.execInRunLoop <- wrapped:
	case <-d.close:
		return ErrDealerClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-done:
		return err
	case <-d.close:
		select {
		case err := <-done:
			return err
		default:
			return ErrDealerClosed
		}
	}
}

// enqueue hands fn to the run loop without waiting for it
// Returns false if the dealer has ended its shift
func (d *Dealer) enqueue(fn func()) bool {
	select {
	case d.execInRunLoop <- fn:
		return true
	case <-d.close:
		return false
	}
}

// notify queues a state change for the run loop
func (d *Dealer) notify(s state) {
	select {
	case d.stateChanged <- s:
	case <-d.close:
	}
}

// GameID returns the identifier of the current game, empty if no game was started
func (d *Dealer) GameID(ctx context.Context) (string, error) {
	var id string
	err := d.exec(ctx, func() {
		id = d.gameID
	})

	return id, err
}

// NewGame deals a new game, replacing the previous one
// The returned state is for the first player
func (d *Dealer) NewGame(ctx context.Context, players, handSize int) (*playable.Response, error) {
	var res *playable.Response
	var gameErr error
	err := d.exec(ctx, func() {
		res, gameErr = d.newGame(players, handSize)
	})

	if err != nil {
		return nil, err
	}

	return res, gameErr
}

// NOTE: must only be called from the run loop
func (d *Dealer) newGame(players, handSize int) (*playable.Response, error) {
	if err := d.game.StartGame(players, handSize); err != nil {
		return nil, err
	}

	d.gameID = uuid.New().String()
	d.started = true
	d.logMessages = nil

	d.logger.WithFields(logrus.Fields{
		"gameID":   d.gameID,
		"players":  players,
		"handSize": handSize,
	}).Info("new game")

	d.flushLogMessages()
	d.notify(stateGameEvent)

	return d.game.GetPlayerState(0)
}

// Play plays cards on behalf of the player
// The returned state is for the acting player
func (d *Dealer) Play(ctx context.Context, playerID int64, cards []deck.Card) (*playable.Response, error) {
	return d.action(ctx, playerID, &playable.PayloadIn{
		Action: uno.ActionPlayCards,
		Cards:  cards,
	})
}

// Draw draws a card on behalf of the player
// The returned state is for the acting player
func (d *Dealer) Draw(ctx context.Context, playerID int64) (*playable.Response, error) {
	return d.action(ctx, playerID, &playable.PayloadIn{
		Action: uno.ActionDrawCard,
	})
}

// Auto makes the current player's move with the given strategy
// The returned state is for the player who moved
func (d *Dealer) Auto(ctx context.Context, strategy bot.Strategy) (*playable.Response, error) {
	var res *playable.Response
	var gameErr error
	err := d.exec(ctx, func() {
		if !d.started {
			gameErr = ErrNoGame
			return
		}

		player := d.game.CurrentPlayer()
		if gameErr = bot.Play(d.game, strategy); gameErr != nil {
			return
		}

		d.afterMove()
		res, gameErr = d.game.GetPlayerState(player.PlayerID)
	})

	if err != nil {
		return nil, err
	}

	return res, gameErr
}

func (d *Dealer) action(ctx context.Context, playerID int64, msg *playable.PayloadIn) (*playable.Response, error) {
	var res *playable.Response
	var gameErr error
	err := d.exec(ctx, func() {
		if gameErr = d.performAction(playerID, msg); gameErr != nil {
			return
		}

		res, gameErr = d.game.GetPlayerState(playerID)
	})

	if err != nil {
		return nil, err
	}

	return res, gameErr
}

// NOTE: must only be called from the run loop
func (d *Dealer) performAction(playerID int64, msg *playable.PayloadIn) error {
	if !d.started {
		return ErrNoGame
	}

	if playerID == 0 {
		playerID = d.game.CurrentPlayer().PlayerID
	}

	if _, _, err := d.game.Action(playerID, msg); err != nil {
		d.logger.WithError(err).WithFields(logrus.Fields{
			"playerID": playerID,
			"action":   msg.Action,
		}).Debug("action rejected")
		return err
	}

	d.afterMove()
	return nil
}

// NOTE: must only be called from the run loop
func (d *Dealer) afterMove() {
	d.flushLogMessages()

	if details, isOver := d.game.GetEndOfGameDetails(); isOver {
		d.logger.WithFields(logrus.Fields{
			"gameID": d.gameID,
			"winner": details.WinnerID,
		}).Info("game over")
		d.notify(stateGameEnded)
		return
	}

	d.notify(stateGameEvent)
}

// State returns the state for the player
// A playerID of zero returns the state for the current player
func (d *Dealer) State(ctx context.Context, playerID int64) (*playable.Response, error) {
	var res *playable.Response
	var gameErr error
	err := d.exec(ctx, func() {
		res, gameErr = d.game.GetPlayerState(playerID)
	})

	if err != nil {
		return nil, err
	}

	return res, gameErr
}

// LogMessages returns the most recent log messages of the current game
func (d *Dealer) LogMessages(ctx context.Context) ([]*playable.LogMessage, error) {
	var messages []*playable.LogMessage
	err := d.exec(ctx, func() {
		messages = append(messages, d.logMessages...)
	})

	return messages, err
}

// AddClient adds a client
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	d.notify(stateClientEvent)
	d.enqueue(func() {
		if !d.started {
			return
		}

		gs, err := d.game.GetPlayerState(client.playerID)
		if err != nil {
			d.send(client, newErrorResponse("", err))
			return
		}

		d.send(client, gs)
		if len(d.logMessages) > 0 {
			d.send(client, newLogResponse(d.logMessages))
		}
	})
}

// RemoveClient removes a client
// Returns true if it was the last client
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	d.lock.Unlock()

	if nClients > 0 {
		d.notify(stateClientEvent)
		return false
	}

	return true
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *playable.PayloadIn) {
	switch msg.Action {
	case "newGame":
		players, ok := msg.AdditionalData.GetInt("players")
		if !ok {
			c.Send(newErrorResponse(msg.Context, errors.New("players is not a number")))
			return
		}

		handSize, ok := msg.AdditionalData.GetInt("handSize")
		if !ok {
			handSize = uno.DefaultHandSize
		}

		queued := d.enqueue(func() {
			if _, err := d.newGame(players, handSize); err != nil {
				d.send(c, newErrorResponse(msg.Context, err))
				return
			}

			d.send(c, playable.OK(msg.Context))
		})
		if !queued {
			c.Send(newErrorResponse(msg.Context, ErrDealerClosed))
		}
	default:
		queued := d.enqueue(func() {
			if err := d.performAction(c.playerID, msg); err != nil {
				d.send(c, newErrorResponse(msg.Context, err))
				return
			}

			d.send(c, playable.OK(msg.Context))
		})
		if !queued {
			c.Send(newErrorResponse(msg.Context, ErrDealerClosed))
		}
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendGameEnded() {
	details, isOver := d.game.GetEndOfGameDetails()
	if !isOver {
		return
	}

	res := newGameEndedResponse(d.gameID, details)
	for _, client := range d.Clients() {
		d.send(client, res)
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendGameData() {
	if !d.started {
		// should not happen
		d.logger.Error("game state changed, but there's no active game")
		return
	}

	for _, client := range d.Clients() {
		data, err := d.game.GetPlayerState(client.playerID)
		if err != nil {
			d.logger.WithError(err).WithField("client", client.String()).Error("could not get player state")
			continue
		}

		d.send(client, data)
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendClientCount() {
	clients := d.Clients()
	res := &playable.Response{
		Key:  "clientState",
		Data: map[string]int{"connected": len(clients)},
	}

	for _, client := range clients {
		d.send(client, res)
	}
}

func (d *Dealer) send(client *Client, msg interface{}) {
	if !client.Send(msg) {
		d.logger.WithField("client", client.String()).Warn("client is not keeping up, dropping message")
	}
}
