package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"uno-server/internal/rng"
)

func TestDistribution(t *testing.T) {
	a := assert.New(t)

	total := 0
	perColor := make(map[Color]int)
	for _, w := range Distribution() {
		total += w.Count
		perColor[w.Color] += w.Count

		if w.Rank.IsWild() {
			a.Equal(Black, w.Color)
		} else {
			a.NotEqual(Black, w.Color)
		}
	}

	a.Equal(SetSize, total)
	a.Equal(25, perColor[Red])
	a.Equal(25, perColor[Yellow])
	a.Equal(25, perColor[Blue])
	a.Equal(25, perColor[Green])
	a.Equal(8, perColor[Black])
}

func TestSupply_MakeCardMatchesDistribution(t *testing.T) {
	a := assert.New(t)

	const sets = 5
	s := NewSupply(rng.NewSeeded(1))
	counts := make(map[Card]int)
	ids := make(map[int]bool)
	for i := 0; i < SetSize*sets; i++ {
		card := s.MakeCard()
		a.False(ids[card.ID], "ids are unique")
		ids[card.ID] = true

		if card.IsWild() {
			a.Equal(Black, card.Color)
		}

		counts[Card{Color: card.Color, Rank: card.Rank}]++
	}

	for _, w := range Distribution() {
		a.Equal(w.Count*sets, counts[Card{Color: w.Color, Rank: w.Rank}], "%s %s", w.Color, w.Rank)
	}

	a.Equal(sets, s.Refills())
	a.Equal(0, s.CardsLeft())
}

func TestSupply_Refill(t *testing.T) {
	a := assert.New(t)

	s := NewSupply(rng.NewSeeded(7))
	a.Equal(0, s.CardsLeft())

	s.MakeCard()
	a.Equal(SetSize-1, s.CardsLeft())
	a.Equal(1, s.Refills())

	s.MakeCards(SetSize - 1)
	a.Equal(0, s.CardsLeft())

	s.MakeCard()
	a.Equal(SetSize-1, s.CardsLeft())
	a.Equal(2, s.Refills())
}

func TestSupply_Deterministic(t *testing.T) {
	a := assert.New(t)

	s1 := NewSupply(rng.NewSeeded(99))
	s2 := NewSupply(rng.NewSeeded(99))
	a.Equal(s1.MakeCards(250), s2.MakeCards(250))
	a.Equal(s1.HashCode(), s2.HashCode())

	s3 := NewSupply(rng.NewSeeded(100))
	s3.MakeCards(250)
	a.NotEqual(s1.HashCode(), s3.HashCode())
}

func TestSupply_ShuffledRateOfWilds(t *testing.T) {
	// the first card of each freshly shuffled set is a wild 8/108 of the time
	wilds := 0
	const trials = 3000
	for i := 0; i < trials; i++ {
		s := NewSupply(rng.NewSeeded(int64(i + 1)))
		if s.MakeCard().IsWild() {
			wilds++
		}
	}

	expected := float64(trials) * 8 / SetSize
	assert.InDelta(t, expected, float64(wilds), expected*0.35)
}
