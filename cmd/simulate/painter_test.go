package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"uno-server/internal/rng"
	"uno-server/pkg/bot"
	"uno-server/pkg/deck"
	"uno-server/pkg/playable"
	"uno-server/pkg/playable/uno"
)

func TestPainter_logMessage(t *testing.T) {
	p := newPainter(false)

	msg := &playable.LogMessage{
		PlayerIDs: []int64{2},
		Cards:     deck.CardsFromString("r7,kw"),
		Message:   "{} played 2 cards",
	}
	assert.Equal(t, "Player 2 played 2 cards: red 7, black wild", p.logMessage(msg))

	msg = playable.SimpleLogMessage(0, "New game")
	assert.Equal(t, "New game", p.logMessage(msg))
}

func TestPainter_enabled(t *testing.T) {
	p := newPainter(true)
	assert.Contains(t, p.card(deck.CardFromString("g5")), "\x1b[")
	assert.Contains(t, p.card(deck.CardFromString("g5")), "green 5")
}

func Test_playGame(t *testing.T) {
	a := assert.New(t)

	game := uno.NewGame(uno.Options{Generator: rng.NewSeeded(7)})
	a.NoError(game.StartGame(3, 7))

	lines := 0
	winner, err := playGame(game, bot.Naive{}, func(string) { lines++ }, newPainter(false))
	a.NoError(err)
	a.NotNil(winner)
	a.Equal(0, winner.CardsInHand())
	a.True(lines > 2)
}
