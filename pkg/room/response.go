package room

import (
	"uno-server/pkg/playable"
	"uno-server/pkg/playable/uno"
)

// ErrorData is sent along with an error response
type ErrorData struct {
	// Reason is a stable code for a rejected move, empty for other errors
	Reason string `json:"reason"`
}

func newErrorResponse(ctx string, err error) *playable.Response {
	return &playable.Response{
		Key:     "error",
		Value:   err.Error(),
		Data:    ErrorData{Reason: uno.ReasonCode(err)},
		Context: ctx,
	}
}

func newLogResponse(messages []*playable.LogMessage) *playable.Response {
	return &playable.Response{
		Key:  "logs",
		Data: messages,
	}
}

func newGameEndedResponse(gameID string, details *playable.GameOverDetails) *playable.Response {
	return &playable.Response{
		Key:   "gameEnded",
		Value: gameID,
		Data:  details,
	}
}
