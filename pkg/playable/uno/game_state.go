package uno

import (
	"uno-server/pkg/deck"
	"uno-server/pkg/playable"
)

// GameState is the overall game state
// This is safe for all players to see
type GameState struct {
	Status         Status             `json:"status"`
	Seed           int64              `json:"seed"`
	Players        []*GameStatePlayer `json:"players"`
	ActiveCard     *deck.Card         `json:"activeCard"`
	Direction      Direction          `json:"direction"`
	CurrentTurn    int64              `json:"currentTurn"`
	NextTurn       int64              `json:"nextTurn"`
	Winner         int64              `json:"winner"`
	Turn           int                `json:"turn"`
	CardsLeftInSet int                `json:"cardsLeftInSet"`
}

// GameStatePlayer is the state of an individual player
// This is safe for all players to see
type GameStatePlayer struct {
	PlayerID    int64 `json:"playerId"`
	Position    int   `json:"position"`
	CardsInHand int   `json:"cardsInHand"`
}

// Response is the response format for this game
type Response struct {
	GameState *GameState `json:"gameState"`
	// Data below is player specific, and must only be shown to the intended player
	PlayerID      int64       `json:"playerId"`
	Hand          deck.Hand   `json:"hand"`
	PlayableCards []deck.Card `json:"playableCards"`
}

type seeder interface {
	Seed() int64
}

func (g *Game) getGameState() *GameState {
	players := make([]*GameStatePlayer, len(g.players))
	for i, player := range g.players {
		players[i] = &GameStatePlayer{
			PlayerID:    player.PlayerID,
			Position:    player.Position,
			CardsInHand: player.CardsInHand(),
		}
	}

	state := &GameState{
		Status:    g.status,
		Players:   players,
		Direction: g.direction,
		Turn:      g.turn,
	}

	if s, ok := g.rng.(seeder); ok {
		state.Seed = s.Seed()
	}

	if g.status == NotStarted {
		return state
	}

	activeCard := g.activeCard
	state.ActiveCard = &activeCard
	state.CardsLeftInSet = g.supply.CardsLeft()

	if g.winner != nil {
		state.Winner = g.winner.PlayerID
	} else {
		state.CurrentTurn = g.CurrentPlayer().PlayerID
		state.NextTurn = g.PeekNextPlayer().PlayerID
	}

	return state
}

// GetPlayerState returns the state for the given player
// A playerID of 0 returns the state for the current player
func (g *Game) GetPlayerState(playerID int64) (*playable.Response, error) {
	if playerID == 0 {
		if current := g.CurrentPlayer(); current != nil {
			playerID = current.PlayerID
		}
	}

	response := &Response{
		GameState:     g.getGameState(),
		PlayerID:      playerID,
		Hand:          deck.Hand{},
		PlayableCards: []deck.Card{},
	}

	if playerID != 0 {
		player, ok := g.idToPlayer[playerID]
		if !ok {
			return nil, ErrPlayerNotFound
		}

		response.Hand = player.Hand()
		response.PlayableCards = g.PlayableCards(player)
	}

	return &playable.Response{
		Key:   "game",
		Value: g.Name(),
		Data:  response,
	}, nil
}
