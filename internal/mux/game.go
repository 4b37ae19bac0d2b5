package mux

import (
	"net/http"

	"uno-server/internal/rng"
	"uno-server/pkg/bot"
	"uno-server/pkg/deck"
)

type postGamePayload struct {
	Players  int `json:"players"`
	HandSize int `json:"handSize"`
}

type postGamePlayPayload struct {
	PlayerID int64       `json:"playerId"`
	Cards    []deck.Card `json:"cards"`
}

type postGameDrawPayload struct {
	PlayerID int64 `json:"playerId"`
}

type postGameAutoPayload struct {
	Strategy string `json:"strategy"`
}

func (m *Mux) getGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := m.dealer.State(r.Context(), playerIDFromContext(r.Context()))
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, res)
	}
}

func (m *Mux) postGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postGamePayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		if payload.Players == 0 {
			payload.Players = m.config.players
		}

		if payload.HandSize == 0 {
			payload.HandSize = m.config.handSize
		}

		res, err := m.dealer.NewGame(r.Context(), payload.Players, payload.HandSize)
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, res)
	}
}

func (m *Mux) postGamePlay() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postGamePlayPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		playerID := payload.PlayerID
		if playerID == 0 {
			playerID = playerIDFromContext(r.Context())
		}

		res, err := m.dealer.Play(r.Context(), playerID, payload.Cards)
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, res)
	}
}

func (m *Mux) postGameDraw() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postGameDrawPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		playerID := payload.PlayerID
		if playerID == 0 {
			playerID = playerIDFromContext(r.Context())
		}

		res, err := m.dealer.Draw(r.Context(), playerID)
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, res)
	}
}

func (m *Mux) postGameAuto() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload postGameAutoPayload
		if !decodeRequest(w, r, &payload) {
			return
		}

		if payload.Strategy == "" {
			payload.Strategy = "naive"
		}

		strategy, err := bot.ByName(payload.Strategy, rng.Crypto{})
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		res, err := m.dealer.Auto(r.Context(), strategy)
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, res)
	}
}

func (m *Mux) getGameLogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logs, err := m.dealer.LogMessages(r.Context())
		if err != nil {
			writeGameError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, logs)
	}
}
