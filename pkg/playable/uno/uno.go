package uno

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"uno-server/internal/rng"
	"uno-server/pkg/deck"
	"uno-server/pkg/playable"
)

// Status is the lifecycle state of a game
type Status int

// status constants
const (
	NotStarted Status = iota
	InProgress
	Finished
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "notStarted"
	case InProgress:
		return "inProgress"
	case Finished:
		return "finished"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// MarshalText encodes the status by name
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Game is a game of Uno
// A Game is not safe for concurrent use. Callers that share a game must serialize access.
type Game struct {
	options  Options
	logger   logrus.FieldLogger
	rng      rng.Generator
	colorRNG rng.Generator
	supply   *deck.Supply

	players    []*Player
	idToPlayer map[int64]*Player
	current    int
	direction  Direction
	activeCard deck.Card
	status     Status
	winner     *Player

	// turn is incremented after every successful play or draw
	turn int

	logChan chan []*playable.LogMessage
}

// NewGame returns a new game that has not been started
func NewGame(opts Options) *Game {
	defaults := DefaultOptions()
	if opts.Logger == nil {
		opts.Logger = defaults.Logger
	}

	if opts.Generator == nil {
		opts.Generator = defaults.Generator
	}

	colorRNG := opts.ColorGenerator
	if colorRNG == nil {
		colorRNG = opts.Generator
	}

	return &Game{
		options:   opts,
		logger:    opts.Logger,
		rng:       opts.Generator,
		colorRNG:  colorRNG,
		direction: Forward,
		status:    NotStarted,
		logChan:   make(chan []*playable.LogMessage, 256),
	}
}

// StartGame deals a new round, discarding any previous one
// If the first card is wild, its color is chosen at once. No other effect of the first card is applied.
func (g *Game) StartGame(playerCount, startingHandSize int) error {
	if playerCount < MinPlayers || playerCount > MaxPlayers {
		return PlayerCountError(playerCount)
	}

	if startingHandSize < MinHandSize || startingHandSize > MaxHandSize {
		return HandSizeError(startingHandSize)
	}

	supply := deck.NewSupply(g.rng)

	players := make([]*Player, playerCount)
	idToPlayer := make(map[int64]*Player)
	for i := range players {
		players[i] = NewPlayer(int64(i+1), i)
		idToPlayer[players[i].PlayerID] = players[i]
	}

	for i := 0; i < startingHandSize; i++ {
		for _, player := range players {
			player.AddCard(supply.MakeCard())
		}
	}

	g.supply = supply
	g.players = players
	g.idToPlayer = idToPlayer
	g.current = 0
	g.direction = Forward
	g.winner = nil
	g.turn = 0
	g.status = InProgress

	g.sendLogMessages(newLogMessage(0, nil, "New game of Uno started with %d players", playerCount))

	activeCard := supply.MakeCard()
	g.sendLogMessages(newLogMessage(0, &activeCard, "The first card is turned over"))
	if activeCard.IsWild() {
		activeCard = g.chooseColor(nil, activeCard)
	}
	g.activeCard = activeCard

	g.logger.WithFields(logrus.Fields{
		"players":    playerCount,
		"handSize":   startingHandSize,
		"activeCard": activeCard,
	}).Debug("game started")

	return nil
}

// IsGameOngoing returns true if a round has been started and nobody has won it yet
func (g *Game) IsGameOngoing() bool {
	return g.status == InProgress
}

// Status returns the lifecycle state of the game
func (g *Game) Status() Status {
	return g.status
}

// CurrentPlayer returns the player whose turn it is
// Once the game is finished this is the winner. Returns nil if no round has been started.
func (g *Game) CurrentPlayer() *Player {
	if len(g.players) == 0 {
		return nil
	}

	return g.players[g.current]
}

// PreviousCard returns the active card, the card the next play must follow
func (g *Game) PreviousCard() (deck.Card, error) {
	if !g.IsGameOngoing() {
		return deck.Card{}, ErrRoundNotActive
	}

	return g.activeCard, nil
}

// Winner returns the winning player, or nil if nobody has won
func (g *Game) Winner() *Player {
	return g.winner
}

// Players returns the players in turn order
func (g *Game) Players() []*Player {
	return append([]*Player{}, g.players...)
}

// Turn returns the number of moves made this round
func (g *Game) Turn() int {
	return g.turn
}

// PlayCards plays the selected cards of the current player
// All cards must share one rank and the first must be able to follow the active card.
// Effects on hands and colors apply for every card, in order. The turn then moves
// according to the rank of the last card. If the play is rejected, nothing changes.
func (g *Game) PlayCards(selected []deck.Card) error {
	if !g.IsGameOngoing() {
		return ErrRoundNotActive
	}

	if len(selected) == 0 {
		return ErrNoCardsSelected
	}

	player := g.CurrentPlayer()
	log := g.logger.WithField("playerID", player.PlayerID)

	cards, err := player.selectCards(selected)
	if err != nil {
		log.WithError(err).WithField("cards", deck.CardsToString(selected)).Debug("play rejected")
		return err
	}

	for _, card := range cards[1:] {
		if card.Rank != cards[0].Rank {
			log.WithField("cards", deck.CardsToString(cards)).Debug("play rejected: mismatched ranks")
			return ErrMismatchedRanks
		}
	}

	if !g.activeCard.CanFollow(cards[0]) {
		log.WithFields(logrus.Fields{
			"activeCard": g.activeCard,
			"card":       cards[0],
		}).Debug("play rejected: illegal follow")
		return ErrIllegalFollow
	}

	player.playerDidPlayCards(cards)
	log.WithField("cards", deck.CardsToString(cards)).Debug("player plays cards")
	g.sendLogMessages(newLogMessageWithCards(player.PlayerID, cards, "{} played %s", pluralizeCards(len(cards))))

	for _, card := range cards {
		g.activeCard = g.resolveCard(player, card)
	}

	g.turn++

	if player.hand.IsEmpty() {
		g.winner = player
		g.status = Finished

		log.Info("player won the game")
		g.sendLogMessages(newLogMessage(player.PlayerID, nil, "{} won the game"))
		return nil
	}

	g.advanceTurn(cards[len(cards)-1].Rank)
	return nil
}

// DrawCard gives the current player a new card and ends their turn
func (g *Game) DrawCard() error {
	if !g.IsGameOngoing() {
		return ErrRoundNotActive
	}

	player := g.CurrentPlayer()
	player.AddCard(g.supply.MakeCard())

	g.logger.WithField("playerID", player.PlayerID).Debug("player draws a card")
	g.sendLogMessages(newLogMessage(player.PlayerID, nil, "{} drew a card"))

	g.turn++
	g.nextPlayer()
	return nil
}

// PlayableCards returns the cards in the player's hand that can lead a play on the active card
func (g *Game) PlayableCards(player *Player) []deck.Card {
	cards := make([]deck.Card, 0)
	if !g.IsGameOngoing() || player == nil {
		return cards
	}

	for _, card := range player.hand {
		if g.activeCard.CanFollow(card) {
			cards = append(cards, card)
		}
	}

	return cards
}

func (g *Game) sendLogMessages(msg ...*playable.LogMessage) {
	if g.logChan == nil {
		return
	}

	select {
	case g.logChan <- msg:
	default:
		g.logger.Warn("log channel is full, dropping log messages")
	}
}

func pluralizeCards(n int) string {
	if n == 1 {
		return "a card"
	}

	return fmt.Sprintf("%d cards", n)
}

func newLogMessage(playerID int64, card *deck.Card, format string, a ...interface{}) *playable.LogMessage {
	var cards []deck.Card
	if card != nil {
		cards = append(cards, *card)
	}

	return newLogMessageWithCards(playerID, cards, format, a...)
}

func newLogMessageWithCards(playerID int64, cards []deck.Card, format string, a ...interface{}) *playable.LogMessage {
	msg := playable.SimpleLogMessage(playerID, format, a...)
	msg.Cards = cards

	return msg
}
