package uno

import "fmt"

// Direction is the order in which turns advance
type Direction int

// direction constants
const (
	Forward  Direction = 1
	Backward Direction = -1
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	default:
		return fmt.Sprintf("direction(%d)", int(d))
	}
}

// MarshalText encodes the direction by name
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// nextIndex returns the position one step away in the current direction
func (g *Game) nextIndex() int {
	n := len(g.players)
	return ((g.current+int(g.direction))%n + n) % n
}

// nextPlayer moves the turn to the next player
// No card effect is applied
func (g *Game) nextPlayer() {
	g.current = g.nextIndex()
}

// changePlayingOrder flips the direction without moving the turn
func (g *Game) changePlayingOrder() {
	g.direction = -g.direction
}

// PeekNextPlayer returns the player who would be next, without moving the turn
// Returns nil if no round has been started
func (g *Game) PeekNextPlayer() *Player {
	if len(g.players) == 0 {
		return nil
	}

	return g.players[g.nextIndex()]
}

// Direction returns the current direction of play
func (g *Game) Direction() Direction {
	return g.direction
}
