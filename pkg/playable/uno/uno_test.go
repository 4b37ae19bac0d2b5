package uno

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"uno-server/internal/rng"
	"uno-server/pkg/deck"
)

// fixedGenerator always picks the same number
type fixedGenerator int

func (f fixedGenerator) Intn(n int) int {
	return int(f) % n
}

// setupGame starts a game with the given hands and active card
// Cards without an ID are given one that cannot clash with the supply
func setupGame(t *testing.T, active string, hands ...string) (*Game, []*Player) {
	t.Helper()

	g := NewGame(Options{
		Generator:      rng.NewSeeded(1),
		ColorGenerator: fixedGenerator(2), // blue
	})
	require.NoError(t, g.StartGame(len(hands), 1))

	nextID := 10000
	for i, handStr := range hands {
		hand := deck.Hand(deck.CardsFromString(handStr))
		for j := range hand {
			if hand[j].ID == 0 {
				hand[j].ID = nextID
				nextID++
			}
		}

		g.players[i].hand = hand
	}

	g.activeCard = deck.CardFromString(active)
	return g, g.players
}

// snapshotState captures everything a rejected move must leave untouched
type snapshotState struct {
	current    int
	direction  Direction
	activeCard deck.Card
	status     Status
	turn       int
	hands      []string
	cardsLeft  int
}

func takeSnapshot(g *Game) snapshotState {
	hands := make([]string, len(g.players))
	for i, p := range g.players {
		hands[i] = p.hand.String()
	}

	return snapshotState{
		current:    g.current,
		direction:  g.direction,
		activeCard: g.activeCard,
		status:     g.status,
		turn:       g.turn,
		hands:      hands,
		cardsLeft:  g.supply.CardsLeft(),
	}
}

func TestNewGame(t *testing.T) {
	a := assert.New(t)

	g := NewGame(Options{})
	a.Equal(NotStarted, g.Status())
	a.False(g.IsGameOngoing())
	a.Nil(g.CurrentPlayer())
	a.Nil(g.PeekNextPlayer())
	a.Nil(g.Winner())
	a.Equal(Forward, g.Direction())

	_, err := g.PreviousCard()
	a.Equal(ErrRoundNotActive, err)
	a.Equal(ErrRoundNotActive, g.PlayCards(deck.CardsFromString("r1")))
	a.Equal(ErrRoundNotActive, g.DrawCard())
	a.Equal(NotStarted, g.Status())
}

func TestGame_StartGame(t *testing.T) {
	for players := MinPlayers; players <= MaxPlayers; players++ {
		for seed := int64(1); seed <= 20; seed++ {
			g := NewGame(Options{Generator: rng.NewSeeded(seed)})
			require.NoError(t, g.StartGame(players, 7))

			assert.True(t, g.IsGameOngoing())
			assert.Equal(t, InProgress, g.Status())
			assert.Len(t, g.Players(), players)
			assert.Equal(t, int64(1), g.CurrentPlayer().PlayerID)
			assert.Equal(t, Forward, g.Direction())
			assert.Nil(t, g.Winner())

			for i, p := range g.Players() {
				assert.Equal(t, 7, p.CardsInHand())
				assert.Equal(t, i, p.Position)
				assert.Equal(t, int64(i+1), p.PlayerID)
			}

			active, err := g.PreviousCard()
			assert.NoError(t, err)
			assert.NotEqual(t, deck.Black, active.Color, "seed %d", seed)
		}
	}
}

func TestGame_StartGameResolvesOpeningWild(t *testing.T) {
	// find a seed where the card after the deal is wild
	for seed := int64(1); seed < 5000; seed++ {
		s := deck.NewSupply(rng.NewSeeded(seed))
		s.MakeCards(2 * 3)
		opening := s.MakeCard()
		if !opening.IsWild() {
			continue
		}

		g := NewGame(Options{Generator: rng.NewSeeded(seed), ColorGenerator: fixedGenerator(3)})
		require.NoError(t, g.StartGame(2, 3))

		active, err := g.PreviousCard()
		assert.NoError(t, err)
		assert.Equal(t, opening.ID, active.ID)
		assert.Equal(t, opening.Rank, active.Rank)
		assert.Equal(t, deck.Green, active.Color)

		// no penalty is given for an opening take four
		for _, p := range g.Players() {
			assert.Equal(t, 3, p.CardsInHand())
		}

		assert.Equal(t, int64(1), g.CurrentPlayer().PlayerID)
		return
	}

	t.Fatal("could not find a seed with a wild opening card")
}

func TestGame_StartGameLimits(t *testing.T) {
	a := assert.New(t)

	g := NewGame(Options{})
	a.EqualError(g.StartGame(1, 7), "expected between 2 and 6 players, got 1")
	a.EqualError(g.StartGame(7, 7), "expected between 2 and 6 players, got 7")
	a.EqualError(g.StartGame(2, 0), "expected a starting hand size between 1 and 20, got 0")
	a.EqualError(g.StartGame(2, 21), "expected a starting hand size between 1 and 20, got 21")
	a.False(g.IsGameOngoing())

	a.NoError(g.StartGame(6, 20))
	a.NoError(g.StartGame(2, 1))
}

func TestGame_StartGameIsDeterministic(t *testing.T) {
	a := assert.New(t)

	g1 := NewGame(Options{Generator: rng.NewSeeded(123)})
	g2 := NewGame(Options{Generator: rng.NewSeeded(123)})
	a.NoError(g1.StartGame(4, 7))
	a.NoError(g2.StartGame(4, 7))

	for i := range g1.players {
		a.Equal(g1.players[i].Hand(), g2.players[i].Hand())
	}

	c1, _ := g1.PreviousCard()
	c2, _ := g2.PreviousCard()
	a.Equal(c1, c2)
}

func TestGame_PlayCardsScenario(t *testing.T) {
	a := assert.New(t)

	g, players := setupGame(t, "r7", "r3#1,r9#2", "b3#3,y1#4", "g5#5,g6#6")

	a.NoError(g.PlayCards(deck.CardsFromString("r3#1")), "same color")
	active, _ := g.PreviousCard()
	a.Equal(deck.CardFromString("r3#1"), active)
	a.Equal(players[1], g.CurrentPlayer())

	a.NoError(g.PlayCards(deck.CardsFromString("b3#3")), "same rank")
	a.Equal(players[2], g.CurrentPlayer())

	before := takeSnapshot(g)
	a.Equal(ErrIllegalFollow, g.PlayCards(deck.CardsFromString("g5#5")))
	a.Equal(before, takeSnapshot(g))
	a.Equal(players[2], g.CurrentPlayer())

	active, _ = g.PreviousCard()
	a.Equal(deck.CardFromString("b3#3"), active)
	a.Equal(2, g.Turn())
}

func TestGame_PlayCardsRejections(t *testing.T) {
	g, _ := setupGame(t, "r7", "r3#1,r9#2,b9#3,kw#4,r1#5", "b3#6")

	tests := []struct {
		name     string
		selected string
		err      error
	}{
		{"empty", "", ErrNoCardsSelected},
		{"other player's card", "b3#6", ErrCardNotInPlayersHand},
		{"unknown card", "r3#99", ErrCardNotInPlayersHand},
		{"wrong face", "b3#1", ErrCardNotInPlayersHand},
		{"selected twice", "r9#2,r9#2", ErrCardNotInPlayersHand},
		{"mismatched ranks", "r3#1,r9#2", ErrMismatchedRanks},
		{"mismatched ranks with wild", "kw#4,r1#5", ErrMismatchedRanks},
		{"illegal lead", "b9#3,r9#2", ErrIllegalFollow},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			before := takeSnapshot(g)
			assert.Equal(t, test.err, g.PlayCards(deck.CardsFromString(test.selected)))
			assert.Equal(t, before, takeSnapshot(g))
		})
	}

	// the lead card decides legality; the rest only need to share its rank
	assert.NoError(t, g.PlayCards(deck.CardsFromString("r9#2,b9#3")))
	active, _ := g.PreviousCard()
	assert.Equal(t, deck.CardFromString("b9#3"), active)
}

func TestGame_PlaySkip(t *testing.T) {
	a := assert.New(t)

	g, players := setupGame(t, "r7", "rs#1,r1#2", "r2", "r3,r4")
	a.NoError(g.PlayCards(deck.CardsFromString("rs#1")))
	a.Equal(2, g.current)
	a.Equal(players[2], g.CurrentPlayer())
	a.Equal(Forward, g.Direction())

	a.NoError(g.PlayCards(g.players[2].Hand()[:1]))
	a.Equal(players[0], g.CurrentPlayer())
}

func TestGame_PlaySkipBackward(t *testing.T) {
	a := assert.New(t)

	g, players := setupGame(t, "r7", "rs#1,r1#2", "r2", "r3", "r4")
	g.direction = Backward
	a.NoError(g.PlayCards(deck.CardsFromString("rs#1")))
	a.Equal(players[2], g.CurrentPlayer())
}

func TestGame_PlayReverse(t *testing.T) {
	a := assert.New(t)

	g, players := setupGame(t, "r7", "rrv#1,r1#2", "r2,r5", "r3,r6")
	a.NoError(g.PlayCards(deck.CardsFromString("rrv#1")))
	a.Equal(Backward, g.Direction())
	a.Equal(players[2], g.CurrentPlayer())
	a.Equal(players[1], g.PeekNextPlayer())

	a.NoError(g.DrawCard())
	a.Equal(players[1], g.CurrentPlayer())
}

func TestGame_PlayReverseTwoPlayers(t *testing.T) {
	a := assert.New(t)

	g, players := setupGame(t, "r7", "rrv#1,r1#2", "r2,r5")
	a.NoError(g.PlayCards(deck.CardsFromString("rrv#1")))
	a.Equal(Backward, g.Direction())
	a.Equal(players[0], g.CurrentPlayer(), "reverse acts as a skip with two players")
	a.Equal(2, players[1].CardsInHand())
	a.Equal(players[1], g.PeekNextPlayer())
}

func TestGame_PlayTakeTwo(t *testing.T) {
	a := assert.New(t)

	g, players := setupGame(t, "r7", "rd2#1,r1#2", "b2", "b3")
	victim := g.PeekNextPlayer()
	a.Equal(players[1], victim)

	a.NoError(g.PlayCards(deck.CardsFromString("rd2#1")))
	a.Equal(3, victim.CardsInHand())
	a.Equal(1, players[2].CardsInHand())
	a.Equal(victim, g.CurrentPlayer(), "turn advances normally")
}

func TestGame_PlayTakeTwoBackward(t *testing.T) {
	a := assert.New(t)

	g, players := setupGame(t, "r7", "rd2#1,r1#2", "b2", "b3")
	g.direction = Backward
	a.NoError(g.PlayCards(deck.CardsFromString("rd2#1")))
	a.Equal(1, players[1].CardsInHand())
	a.Equal(3, players[2].CardsInHand())
	a.Equal(players[2], g.CurrentPlayer())
}

func TestGame_PlayTakeFour(t *testing.T) {
	a := assert.New(t)

	g, players := setupGame(t, "r7", "kd4#1,r1#2", "g9#5000,b2", "b3")
	a.NoError(g.PlayCards(deck.CardsFromString("kd4#1")))

	active, _ := g.PreviousCard()
	a.Equal(deck.Card{ID: 1, Color: deck.Blue, Rank: deck.TakeFour}, active)
	a.Equal(6, players[1].CardsInHand())
	a.Equal(players[1], g.CurrentPlayer())

	// the next play must follow the chosen color
	a.Equal(ErrIllegalFollow, g.PlayCards(deck.CardsFromString("g9#5000")))
}

func TestGame_PlayWild(t *testing.T) {
	a := assert.New(t)

	g, players := setupGame(t, "g5", "kw#1,r1#2", "b2,y4", "b3")
	a.NoError(g.PlayCards(deck.CardsFromString("kw#1")))

	active, _ := g.PreviousCard()
	a.Equal(deck.Card{ID: 1, Color: deck.Blue, Rank: deck.Wild}, active)
	a.Equal(2, players[1].CardsInHand())
	a.Equal(players[1], g.CurrentPlayer())

	a.Equal(ErrIllegalFollow, g.PlayCards(g.players[1].Hand()[1:]))
	a.NoError(g.PlayCards(g.players[1].Hand()[:1]))
}

func TestGame_PlayRandomWildColor(t *testing.T) {
	colors := make(map[deck.Color]bool)
	for seed := int64(1); seed <= 200; seed++ {
		g := NewGame(Options{Generator: rng.NewSeeded(seed)})
		require.NoError(t, g.StartGame(2, 1))
		g.players[0].hand = deck.Hand{deck.NewCard(10000, deck.Black, deck.Wild), deck.NewCard(10001, deck.Red, deck.One)}

		require.NoError(t, g.PlayCards(g.players[0].Hand()[:1]))
		active, _ := g.PreviousCard()
		assert.True(t, active.Color.IsPlayable())
		colors[active.Color] = true
	}

	assert.Len(t, colors, 4)
}

func TestGame_PlayStackedTakeTwo(t *testing.T) {
	a := assert.New(t)

	g, players := setupGame(t, "r7", "rd2#1,bd2#2,r1#3", "g2", "g3")
	a.NoError(g.PlayCards(deck.CardsFromString("rd2#1,bd2#2")))

	a.Equal(5, players[1].CardsInHand(), "penalties stack")
	a.Equal(1, players[2].CardsInHand())
	a.Equal(players[1], g.CurrentPlayer())

	active, _ := g.PreviousCard()
	a.Equal(deck.CardFromString("bd2#2"), active)
}

func TestGame_PlayStackedTakeFour(t *testing.T) {
	a := assert.New(t)

	g, players := setupGame(t, "r7", "kd4#1,kd4#2,r1#3", "g2", "g3")
	a.NoError(g.PlayCards(deck.CardsFromString("kd4#1,kd4#2")))

	a.Equal(9, players[1].CardsInHand())
	active, _ := g.PreviousCard()
	a.Equal(deck.Card{ID: 2, Color: deck.Blue, Rank: deck.TakeFour}, active)
}

func TestGame_PlayStackedSkip(t *testing.T) {
	a := assert.New(t)

	// only the last card moves the turn
	g, players := setupGame(t, "r7", "rs#1,gs#2,r1#3", "g2", "g3", "g4")
	a.NoError(g.PlayCards(deck.CardsFromString("rs#1,gs#2")))
	a.Equal(players[2], g.CurrentPlayer())
}

func TestGame_PlayStackedReverse(t *testing.T) {
	a := assert.New(t)

	g, players := setupGame(t, "r7", "rrv#1,grv#2,r1#3", "g2", "g3")
	a.NoError(g.PlayCards(deck.CardsFromString("rrv#1,grv#2")))
	a.Equal(Backward, g.Direction())
	a.Equal(players[2], g.CurrentPlayer())
}

func TestGame_Winner(t *testing.T) {
	a := assert.New(t)

	g, players := setupGame(t, "r7", "r3#1", "b3#2,b4#3")
	a.NoError(g.PlayCards(deck.CardsFromString("r3#1")))

	a.Equal(players[0], g.Winner())
	a.False(g.IsGameOngoing())
	a.Equal(Finished, g.Status())
	a.Equal(players[0], g.CurrentPlayer(), "no further turn advancement")

	before := takeSnapshot(g)
	a.Equal(ErrRoundNotActive, g.PlayCards(deck.CardsFromString("b3#2")))
	a.Equal(ErrRoundNotActive, g.DrawCard())
	a.Equal(before, takeSnapshot(g))
	a.Equal(players[0], g.Winner())

	_, err := g.PreviousCard()
	a.Equal(ErrRoundNotActive, err)
}

func TestGame_WinnerWithTakeTwo(t *testing.T) {
	a := assert.New(t)

	g, players := setupGame(t, "r7", "rd2#1", "b3#2")
	a.NoError(g.PlayCards(deck.CardsFromString("rd2#1")))

	a.Equal(players[0], g.Winner())
	a.Equal(3, players[1].CardsInHand(), "the penalty is still given")
	a.Equal(players[0], g.CurrentPlayer())
}

func TestGame_WinnerWithStack(t *testing.T) {
	a := assert.New(t)

	g, players := setupGame(t, "r7", "r3#1,b3#2,g3#3", "b5")
	a.NoError(g.PlayCards(deck.CardsFromString("r3#1,g3#3,b3#2")))
	a.Equal(players[0], g.Winner())

	active := g.activeCard
	a.Equal(deck.CardFromString("b3#2"), active)
}

func TestGame_DrawCard(t *testing.T) {
	a := assert.New(t)

	g, players := setupGame(t, "r7", "g1", "g2", "g3")
	before := g.supply.CardsLeft()

	a.NoError(g.DrawCard())
	a.Equal(2, players[0].CardsInHand())
	a.Equal(players[1], g.CurrentPlayer())
	a.Equal(before-1, g.supply.CardsLeft())
	a.Equal(1, g.Turn())

	active, _ := g.PreviousCard()
	a.Equal(deck.CardFromString("r7"), active, "drawing does not change the active card")

	a.NoError(g.DrawCard())
	a.NoError(g.DrawCard())
	a.Equal(players[0], g.CurrentPlayer())
}

func TestGame_DrawReplenishes(t *testing.T) {
	a := assert.New(t)

	g := NewGame(Options{Generator: rng.NewSeeded(3)})
	a.NoError(g.StartGame(2, 1))

	// far more cards than a single set holds
	for i := 0; i < deck.SetSize*3; i++ {
		a.NoError(g.DrawCard())
	}

	total := 0
	for _, p := range g.Players() {
		total += p.CardsInHand()
	}

	a.Equal(2+deck.SetSize*3, total)
	a.True(g.IsGameOngoing())
}

func TestGame_StartGameReplacesFinishedGame(t *testing.T) {
	a := assert.New(t)

	g, _ := setupGame(t, "r7", "r3#1", "b3#2")
	a.NoError(g.PlayCards(deck.CardsFromString("r3#1")))
	a.NotNil(g.Winner())

	a.NoError(g.StartGame(3, 5))
	a.Nil(g.Winner())
	a.True(g.IsGameOngoing())
	a.Equal(0, g.Turn())
	a.Len(g.Players(), 3)
	a.Equal(Forward, g.Direction())
}

func TestGame_PlayableCards(t *testing.T) {
	a := assert.New(t)

	g, players := setupGame(t, "r7", "r3#1,b7#2,g1#3,kw#4", "g2")
	a.Equal(deck.CardsFromString("r3#1,b7#2,kw#4"), g.PlayableCards(players[0]))
	a.Equal([]deck.Card{}, g.PlayableCards(players[1]))
	a.Equal([]deck.Card{}, g.PlayableCards(nil))
}

func TestGame_FullRoundsFinish(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		g := NewGame(Options{Generator: rng.NewSeeded(seed)})
		require.NoError(t, g.StartGame(int(seed%5)+2, 7))

		for moves := 0; g.IsGameOngoing(); moves++ {
			require.Less(t, moves, 5000, "seed %d", seed)

			player := g.CurrentPlayer()
			playable := g.PlayableCards(player)
			if len(playable) == 0 {
				require.NoError(t, g.DrawCard())
				continue
			}

			require.NoError(t, g.PlayCards(playable[:1]))
		}

		winner := g.Winner()
		require.NotNil(t, winner)
		assert.Equal(t, 0, winner.CardsInHand())
		assert.Equal(t, Finished, g.Status())
	}
}
