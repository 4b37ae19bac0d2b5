package bot

import (
	"fmt"

	"uno-server/internal/rng"
	"uno-server/pkg/deck"
	"uno-server/pkg/playable/uno"
)

// Strategy picks the cards a player plays on the active card
// An empty selection means the player draws
type Strategy interface {
	Choose(hand deck.Hand, active deck.Card) []deck.Card
}

// Naive plays the first card that can follow, along with every other card of the same rank
type Naive struct{}

// Choose implements Strategy
func (Naive) Choose(hand deck.Hand, active deck.Card) []deck.Card {
	for _, card := range hand {
		if active.CanFollow(card) {
			return sameRank(hand, card)
		}
	}

	return nil
}

// Random plays a random card that can follow, on its own
type Random struct {
	RNG rng.Generator
}

// Choose implements Strategy
func (r Random) Choose(hand deck.Hand, active deck.Card) []deck.Card {
	playable := make([]deck.Card, 0, len(hand))
	for _, card := range hand {
		if active.CanFollow(card) {
			playable = append(playable, card)
		}
	}

	if len(playable) == 0 {
		return nil
	}

	return []deck.Card{playable[r.RNG.Intn(len(playable))]}
}

// sameRank returns lead followed by every other card in the hand of its rank
func sameRank(hand deck.Hand, lead deck.Card) []deck.Card {
	cards := []deck.Card{lead}
	for _, card := range hand {
		if card.Rank == lead.Rank && !card.Equal(lead) {
			cards = append(cards, card)
		}
	}

	return cards
}

// ByName returns the strategy with the given name
func ByName(name string, generator rng.Generator) (Strategy, error) {
	switch name {
	case "naive":
		return Naive{}, nil
	case "random":
		return Random{RNG: generator}, nil
	default:
		return nil, fmt.Errorf("unknown strategy: %s", name)
	}
}

// Play makes a single move for the current player
func Play(g *uno.Game, s Strategy) error {
	active, err := g.PreviousCard()
	if err != nil {
		return err
	}

	cards := s.Choose(g.CurrentPlayer().Hand(), active)
	if len(cards) == 0 {
		return g.DrawCard()
	}

	return g.PlayCards(cards)
}

// PlayRound plays the game until somebody wins or maxMoves is reached
// Returns the winner, which is nil if the limit was hit
func PlayRound(g *uno.Game, s Strategy, maxMoves int) (*uno.Player, error) {
	for moves := 0; g.IsGameOngoing(); moves++ {
		if moves >= maxMoves {
			return nil, nil
		}

		if err := Play(g, s); err != nil {
			return nil, err
		}
	}

	return g.Winner(), nil
}
