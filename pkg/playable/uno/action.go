package uno

import (
	"fmt"

	"uno-server/pkg/playable"
)

// action names accepted by Action()
const (
	ActionPlayCards = "playCards"
	ActionDrawCard  = "drawCard"
)

// Result is the summary of a finished game
type Result struct {
	Winner    int64         `json:"winner"`
	Turns     int           `json:"turns"`
	CardsLeft map[int64]int `json:"cardsLeft"`
}

// Name returns "uno"
func (g *Game) Name() string {
	return "uno"
}

// LogChan returns a channel for sending log messages
func (g *Game) LogChan() <-chan []*playable.LogMessage {
	return g.logChan
}

// Action performs an action on behalf of a player
func (g *Game) Action(playerID int64, message *playable.PayloadIn) (playerResponse *playable.Response, updateState bool, err error) {
	player, ok := g.idToPlayer[playerID]
	if !ok {
		return nil, false, ErrPlayerNotFound
	}

	if !g.IsGameOngoing() {
		return nil, false, ErrRoundNotActive
	}

	if g.CurrentPlayer() != player {
		return nil, false, ErrIsNotPlayersTurn
	}

	log := g.logger.WithField("playerID", playerID)

	switch message.Action {
	case ActionPlayCards:
		log.WithField("cards", message.Cards).Debug("play cards")
		if err := g.PlayCards(message.Cards); err != nil {
			return nil, false, err
		}

		return playable.OK(), true, nil
	case ActionDrawCard:
		if err := g.DrawCard(); err != nil {
			return nil, false, err
		}

		return playable.OK(), true, nil
	default:
		return nil, false, fmt.Errorf("unknown action: %s", message.Action)
	}
}

// GetEndOfGameDetails returns details at the end of the game
func (g *Game) GetEndOfGameDetails() (gameOverDetails *playable.GameOverDetails, isGameOver bool) {
	if g.winner == nil {
		return nil, false
	}

	cardsLeft := make(map[int64]int)
	for _, player := range g.players {
		cardsLeft[player.PlayerID] = player.CardsInHand()
	}

	return &playable.GameOverDetails{
		WinnerID: g.winner.PlayerID,
		Log: &Result{
			Winner:    g.winner.PlayerID,
			Turns:     g.turn,
			CardsLeft: cardsLeft,
		},
	}, true
}
var _ playable.Playable = &Game{}
