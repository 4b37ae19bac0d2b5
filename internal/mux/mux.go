package mux

import (
	"context"
	"net/http"
	"strconv"

	gmux "github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"uno-server/internal/config"
	"uno-server/internal/rng"
	"uno-server/pkg/playable/uno"
	"uno-server/pkg/room"
)

type ctxKey int

const (
	ctxPlayerKey ctxKey = iota
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	config  muxConfig
	version string
	dealer  *room.Dealer

	// store for testing purposes
	gameRouter *gmux.Router
}

type muxConfig struct {
	// players is the number of players when a new game does not say
	players int

	// handSize is the starting hand size when a new game does not say
	handSize int
}

// NewMux returns a new HTTP mux
// The mux owns a single dealer, call Close to stop it
func NewMux(version string) *Mux {
	cfg := config.Instance()

	var generator rng.Generator = rng.Crypto{}
	if cfg.Game.Seed != 0 {
		generator = rng.NewSeeded(cfg.Game.Seed)
	}

	dealer := room.NewDealer(uno.Options{
		Logger:    logrus.StandardLogger(),
		Generator: generator,
	})
	dealer.StartShift()

	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		dealer:  dealer,
		config: muxConfig{
			players:  cfg.Game.Players,
			handSize: cfg.Game.StartingHandSize,
		},
	}

	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	}

	// all game endpoints accept an optional playerId, zero is the current player
	{
		r := this.Router.PathPrefix("/game").Subrouter()
		r.Use(this.playerMiddleware)
		this.gameRouter = r

		r.Methods(http.MethodGet).Path("").Handler(this.getGame())
		r.Methods(http.MethodPost).Path("").Handler(this.postGame())
		r.Methods(http.MethodPost).Path("/play").Handler(this.postGamePlay())
		r.Methods(http.MethodPost).Path("/draw").Handler(this.postGameDraw())
		r.Methods(http.MethodPost).Path("/auto").Handler(this.postGameAuto())
		r.Methods(http.MethodGet).Path("/logs").Handler(this.getGameLogs())
		r.Methods(http.MethodGet).Path("/ws").Handler(this.getGameWS())
	}

	return this
}

// Close stops the dealer
func (m *Mux) Close() {
	m.dealer.EndShift()
}

// playerMiddleware reads the playerId query parameter into the request context
func (m *Mux) playerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		playerID := int64(0)
		if s := r.URL.Query().Get("playerId"); s != "" {
			id, err := strconv.ParseInt(s, 10, 64)
			if err != nil || id < 0 {
				writeJSONError(w, http.StatusBadRequest, errInvalidPlayerID)
				return
			}

			playerID = id
		}

		newCtx := context.WithValue(r.Context(), ctxPlayerKey, playerID)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

func playerIDFromContext(ctx context.Context) int64 {
	id, _ := ctx.Value(ctxPlayerKey).(int64)
	return id
}
