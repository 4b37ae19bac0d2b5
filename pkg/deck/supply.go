package deck

import (
	"crypto/sha1" // nolint:gosec
	"encoding/hex"

	"uno-server/internal/rng"
)

// SetSize is the number of cards in one classic set
const SetSize = 108

// Weight is how many copies of a card a single set contains
type Weight struct {
	Color Color `json:"color"`
	Rank  Rank  `json:"rank"`
	Count int   `json:"count"`
}

// Distribution returns the classic 108 card distribution
// Per color: one 0, two each of 1-9, two each of take two, skip and reverse.
// Four wild and four take four cards are black.
func Distribution() []Weight {
	weights := make([]Weight, 0, 54)
	for _, color := range PlayableColors {
		weights = append(weights, Weight{Color: color, Rank: Zero, Count: 1})
		for rank := One; rank <= Nine; rank++ {
			weights = append(weights, Weight{Color: color, Rank: rank, Count: 2})
		}

		for _, rank := range []Rank{TakeTwo, Skip, Reverse} {
			weights = append(weights, Weight{Color: color, Rank: rank, Count: 2})
		}
	}

	weights = append(weights,
		Weight{Color: Black, Rank: Wild, Count: 4},
		Weight{Color: Black, Rank: TakeFour, Count: 4},
	)

	return weights
}

// Supply generates cards on demand
// It deals from a shuffled set of 108 cards and builds a fresh shuffled set
// whenever the current one runs out, so it never runs dry.
type Supply struct {
	rng     rng.Generator
	shoe    []Card
	nextID  int
	refills int
}

// NewSupply returns a new supply that shuffles with the given generator
func NewSupply(generator rng.Generator) *Supply {
	if generator == nil {
		generator = rng.Crypto{}
	}

	return &Supply{
		rng: generator,
	}
}

// refill builds and shuffles a new set of cards
func (s *Supply) refill() {
	cards := make([]Card, 0, SetSize)
	for _, w := range Distribution() {
		for i := 0; i < w.Count; i++ {
			s.nextID++
			cards = append(cards, NewCard(s.nextID, w.Color, w.Rank))
		}
	}

	rng.Shuffle(s.rng, len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})

	s.shoe = cards
	s.refills++
}

// MakeCard returns the next card
func (s *Supply) MakeCard() Card {
	if len(s.shoe) == 0 {
		s.refill()
	}

	card := s.shoe[0]
	s.shoe = s.shoe[1:]

	return card
}

// MakeCards returns the next n cards
func (s *Supply) MakeCards(n int) []Card {
	cards := make([]Card, n)
	for i := range cards {
		cards[i] = s.MakeCard()
	}

	return cards
}

// CardsLeft returns the number of cards left before the next refill
func (s *Supply) CardsLeft() int {
	return len(s.shoe)
}

// Refills returns how many sets have been built so far
func (s *Supply) Refills() int {
	return s.refills
}

// HashCode returns a SHA1 hash code of the cards left in the current set
func (s *Supply) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range s.shoe {
		_, _ = hash.Write([]byte(CardToString(card)))
		_, _ = hash.Write([]byte{','})
	}

	return hex.EncodeToString(hash.Sum(nil)[:])
}
