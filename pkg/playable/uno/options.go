package uno

import (
	"github.com/sirupsen/logrus"
	"uno-server/internal/rng"
)

// table limits
const (
	MinPlayers      = 2
	MaxPlayers      = 6
	MinHandSize     = 1
	MaxHandSize     = 20
	DefaultHandSize = 7
)

// Options are options for creating a new uno game
type Options struct {
	Logger logrus.FieldLogger

	// Generator shuffles the supply of cards
	Generator rng.Generator

	// ColorGenerator picks the color of played wild cards
	// If nil, Generator is used
	ColorGenerator rng.Generator
}

// DefaultOptions returns the default options
func DefaultOptions() Options {
	return Options{
		Logger:    logrus.StandardLogger(),
		Generator: rng.Crypto{},
	}
}
