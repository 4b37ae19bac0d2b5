package deck

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func allFaces() []Card {
	cards := make([]Card, 0)
	for color := Yellow; color <= Black; color++ {
		for rank := Zero; rank <= Wild; rank++ {
			cards = append(cards, Card{Color: color, Rank: rank})
		}
	}

	return cards
}

func TestCard_CanFollow(t *testing.T) {
	a := assert.New(t)

	active := CardFromString("r7")
	a.True(active.CanFollow(CardFromString("r3")), "same color")
	a.True(active.CanFollow(CardFromString("b7")), "same rank")
	a.False(active.CanFollow(CardFromString("g5")))
	a.True(active.CanFollow(CardFromString("kw")), "black candidate")
	a.True(active.CanFollow(CardFromString("kd4")), "black candidate")

	a.True(CardFromString("rs").CanFollow(CardFromString("gs")))
	a.False(CardFromString("rs").CanFollow(CardFromString("grv")))
	a.True(CardFromString("kw").CanFollow(CardFromString("g5")), "black active card")

	// a resolved wild only accepts its chosen color or another wild rank
	resolved := Card{Color: Blue, Rank: Wild}
	a.True(resolved.CanFollow(CardFromString("b2")))
	a.False(resolved.CanFollow(CardFromString("y2")))
	a.True(resolved.CanFollow(Card{Color: Green, Rank: Wild}))
}

func TestCard_CanFollowIsSymmetric(t *testing.T) {
	faces := allFaces()
	for _, x := range faces {
		for _, y := range faces {
			assert.Equal(t, x.CanFollow(y), y.CanFollow(x), "%s / %s", x, y)
		}
	}
}

func TestCard_CanFollowBlack(t *testing.T) {
	for _, c := range allFaces() {
		assert.True(t, Card{Color: Black, Rank: Wild}.CanFollow(c), c.String())
		assert.True(t, c.CanFollow(Card{Color: Black, Rank: TakeFour}), c.String())
	}
}

func TestNewCard(t *testing.T) {
	a := assert.New(t)

	a.Equal(Card{ID: 1, Color: Black, Rank: Wild}, NewCard(1, Red, Wild))
	a.Equal(Card{ID: 2, Color: Black, Rank: TakeFour}, NewCard(2, Green, TakeFour))
	a.Equal(Card{ID: 3, Color: Green, Rank: Skip}, NewCard(3, Green, Skip))
}

func TestCard_WithColor(t *testing.T) {
	a := assert.New(t)

	wild := NewCard(5, Black, Wild)
	played, err := wild.WithColor(Green)
	a.NoError(err)
	a.Equal(Card{ID: 5, Color: Green, Rank: Wild}, played)
	a.Equal(Black, wild.Color, "original value is untouched")

	_, err = played.WithColor(Red)
	a.Equal(ErrColorAlreadyChosen, err)

	_, err = wild.WithColor(Black)
	a.Equal(ErrInvalidColor, err)

	_, err = CardFromString("r7").WithColor(Blue)
	a.Equal(ErrNotWild, err)
}

func TestCard_Predicates(t *testing.T) {
	a := assert.New(t)

	a.True(CardFromString("kw").IsWild())
	a.True(CardFromString("kd4").IsWild())
	a.False(CardFromString("rd2").IsWild())

	a.True(CardFromString("rd2").IsAction())
	a.True(CardFromString("gs").IsAction())
	a.False(CardFromString("g9").IsAction())

	a.True(CardFromString("r1#4").Equal(CardFromString("b2#4")))
	a.False(CardFromString("r1#4").Equal(CardFromString("r1#5")))
	a.True(CardFromString("r1#4").SameFace(CardFromString("r1#5")))
}

func TestCard_String(t *testing.T) {
	a := assert.New(t)

	a.Equal("red 7", CardFromString("r7").String())
	a.Equal("green takeTwo", CardFromString("gd2").String())
	a.Equal("black wild", CardFromString("kw").String())
	a.Equal("yellow reverse", CardFromString("yrv").String())
}

func TestCardFromString(t *testing.T) {
	a := assert.New(t)

	a.Equal(Card{Color: Red, Rank: Seven}, CardFromString("r7"))
	a.Equal(Card{Color: Red, Rank: Reverse}, CardFromString("rrv"))
	a.Equal(Card{Color: Red, Rank: Skip}, CardFromString("RS"))
	a.Equal(Card{ID: 12, Color: Black, Rank: TakeFour}, CardFromString("kd4#12"))
	a.Equal(Card{Color: Yellow, Rank: TakeTwo}, CardFromString("yd2"))

	a.Panics(func() {
		CardFromString("x7")
	})
}

func TestParseCard(t *testing.T) {
	a := assert.New(t)

	card, err := ParseCard("gw#3")
	a.NoError(err)
	a.Equal(Card{ID: 3, Color: Green, Rank: Wild}, card)

	for _, s := range []string{"x7", "r10", "", "r7#", "r7#99999999999999999999"} {
		_, err := ParseCard(s)
		a.ErrorIs(err, ErrUnknownCard, s)
	}
}

func TestCardsToString(t *testing.T) {
	a := assert.New(t)

	cards := CardsFromString("r7#1, b3#2,kw")
	a.Len(cards, 3)
	a.Equal("r7#1,b3#2,kw", CardsToString(cards))
	a.Equal([]Card{}, CardsFromString(""))
}

func TestCard_JSON(t *testing.T) {
	a := assert.New(t)

	b, err := json.Marshal(CardFromString("gd2#9"))
	a.NoError(err)
	a.JSONEq(`{"id":9,"color":"green","rank":"takeTwo"}`, string(b))

	var card Card
	a.NoError(json.Unmarshal([]byte(`{"id":3,"color":"blue","rank":"7"}`), &card))
	a.Equal(Card{ID: 3, Color: Blue, Rank: Seven}, card)

	a.Error(json.Unmarshal([]byte(`{"id":3,"color":"purple","rank":"7"}`), &card))
	a.Error(json.Unmarshal([]byte(`{"id":3,"color":"blue","rank":"12"}`), &card))
}
