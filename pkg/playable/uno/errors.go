package uno

import (
	"errors"
	"fmt"
)

// ErrRoundNotActive is an error when a move is attempted before a round starts or after it ends
var ErrRoundNotActive = errors.New("the round is not active")

// ErrNoCardsSelected is an error when a play is attempted without any cards
var ErrNoCardsSelected = errors.New("no cards selected")

// ErrCardNotInPlayersHand happens when the player tries to play a card they don't have
var ErrCardNotInPlayersHand = errors.New("card is not in player's hand")

// ErrMismatchedRanks happens when cards of different ranks are played together
var ErrMismatchedRanks = errors.New("cards played together must share the same rank")

// ErrIllegalFollow happens when the lead card does not match the color or rank of the active card
var ErrIllegalFollow = errors.New("card cannot be played on the active card")

// ErrIsNotPlayersTurn is returned when it's not the player's turn
var ErrIsNotPlayersTurn = errors.New("not player's turn")

// ErrPlayerNotFound is returned when an action references an unknown player
var ErrPlayerNotFound = errors.New("player not found with that ID")

// PlayerCountError is an error on the number of players in the game
type PlayerCountError int

func (p PlayerCountError) Error() string {
	return fmt.Sprintf("expected between %d and %d players, got %d", MinPlayers, MaxPlayers, int(p))
}

// HandSizeError is an error on the number of cards dealt to each player
type HandSizeError int

func (h HandSizeError) Error() string {
	return fmt.Sprintf("expected a starting hand size between %d and %d, got %d", MinHandSize, MaxHandSize, int(h))
}

var reasonCodes = map[error]string{
	ErrRoundNotActive:       "roundNotActive",
	ErrNoCardsSelected:      "noCardsSelected",
	ErrCardNotInPlayersHand: "cardNotInHand",
	ErrMismatchedRanks:      "mismatchedRanks",
	ErrIllegalFollow:        "illegalFollow",
	ErrIsNotPlayersTurn:     "notPlayersTurn",
	ErrPlayerNotFound:       "playerNotFound",
}

// ReasonCode returns a stable code for a rejected move
// An empty string is returned for errors that are not rejections
func ReasonCode(err error) string {
	for sentinel, code := range reasonCodes {
		if errors.Is(err, sentinel) {
			return code
		}
	}

	var pce PlayerCountError
	if errors.As(err, &pce) {
		return "playerCount"
	}

	var hse HandSizeError
	if errors.As(err, &hse) {
		return "handSize"
	}

	return ""
}
