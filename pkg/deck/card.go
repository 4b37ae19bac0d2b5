package deck

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrNotWild is an error when a wild-type action is attempted on a standard card
var ErrNotWild = errors.New("the card is not wild")

// ErrColorAlreadyChosen is an error when a wild card already had its color chosen
var ErrColorAlreadyChosen = errors.New("the color of the wild card has already been chosen")

// ErrUnknownCard is an error when a card code cannot be parsed
var ErrUnknownCard = errors.New("unknown card")

// ErrInvalidColor is an error when a wild card is assigned a color that is not playable
var ErrInvalidColor = errors.New("a wild card can only become yellow, red, blue or green")

// Color represents a card color
type Color int

// color constants
// Black is reserved for wild cards that have not been played yet
const (
	Yellow Color = iota
	Red
	Blue
	Green
	Black
)

// PlayableColors are the colors a wild card can become
var PlayableColors = []Color{Yellow, Red, Blue, Green}

var colorNames = map[Color]string{
	Yellow: "yellow",
	Red:    "red",
	Blue:   "blue",
	Green:  "green",
	Black:  "black",
}

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}

	return fmt.Sprintf("color(%d)", int(c))
}

// IsPlayable returns true if the color is one of the four real colors
func (c Color) IsPlayable() bool {
	return c >= Yellow && c <= Green
}

// MarshalText encodes the color by name
func (c Color) MarshalText() ([]byte, error) {
	name, ok := colorNames[c]
	if !ok {
		return nil, fmt.Errorf("unknown color: %d", int(c))
	}

	return []byte(name), nil
}

// UnmarshalText decodes the color from its name
func (c *Color) UnmarshalText(b []byte) error {
	s := strings.ToLower(string(b))
	for color, name := range colorNames {
		if name == s {
			*c = color
			return nil
		}
	}

	return fmt.Errorf("unknown color: %s", s)
}

// Rank represents the symbol on a card
type Rank int

// rank constants
const (
	Zero Rank = iota
	One
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	TakeTwo
	Skip
	Reverse
	TakeFour
	Wild
)

var rankNames = map[Rank]string{
	TakeTwo:  "takeTwo",
	Skip:     "skip",
	Reverse:  "reverse",
	TakeFour: "takeFour",
	Wild:     "wild",
}

func (r Rank) String() string {
	if r >= Zero && r <= Nine {
		return strconv.Itoa(int(r))
	}

	if name, ok := rankNames[r]; ok {
		return name
	}

	return fmt.Sprintf("rank(%d)", int(r))
}

// IsNumber returns true for the ranks 0 through 9
func (r Rank) IsNumber() bool {
	return r >= Zero && r <= Nine
}

// IsWild returns true for the ranks that are dealt black
func (r Rank) IsWild() bool {
	return r == Wild || r == TakeFour
}

// MarshalText encodes the rank
func (r Rank) MarshalText() ([]byte, error) {
	if r < Zero || r > Wild {
		return nil, fmt.Errorf("unknown rank: %d", int(r))
	}

	return []byte(r.String()), nil
}

// UnmarshalText decodes the rank
func (r *Rank) UnmarshalText(b []byte) error {
	s := string(b)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 9 {
			return fmt.Errorf("unknown rank: %s", s)
		}

		*r = Rank(n)
		return nil
	}

	for rank, name := range rankNames {
		if strings.EqualFold(name, s) {
			*r = rank
			return nil
		}
	}

	return fmt.Errorf("unknown rank: %s", s)
}

// Card is an individual Uno card
// ID is assigned by the Supply and is what makes two otherwise equal cards distinct
type Card struct {
	ID    int   `json:"id"`
	Color Color `json:"color"`
	Rank  Rank  `json:"rank"`
}

// NewCard returns a card
// Wild and TakeFour cards are always created black, regardless of the color given
func NewCard(id int, color Color, rank Rank) Card {
	if rank.IsWild() {
		color = Black
	}

	return Card{
		ID:    id,
		Color: color,
		Rank:  rank,
	}
}

// CanFollow returns true if candidate can be placed on top of this card
func (c Card) CanFollow(candidate Card) bool {
	if c.Color == Black || candidate.Color == Black {
		return true
	}

	return c.Rank == candidate.Rank || c.Color == candidate.Color
}

// IsWild returns true if the card is a Wild or TakeFour
func (c Card) IsWild() bool {
	return c.Rank.IsWild()
}

// IsAction returns true if the card has an effect when played
func (c Card) IsAction() bool {
	return !c.Rank.IsNumber()
}

// Equal returns true if the cards are the same physical card
func (c Card) Equal(card Card) bool {
	return c.ID == card.ID
}

// SameFace returns true if the color and rank match, regardless of identity
func (c Card) SameFace(card Card) bool {
	return c.Color == card.Color && c.Rank == card.Rank
}

// WithColor returns a copy of the wild card with the chosen color
// The receiver is not modified
func (c Card) WithColor(color Color) (Card, error) {
	if !c.IsWild() {
		return c, ErrNotWild
	}

	if c.Color != Black {
		return c, ErrColorAlreadyChosen
	}

	if !color.IsPlayable() {
		return c, ErrInvalidColor
	}

	c.Color = color
	return c, nil
}

func (c Card) String() string {
	return fmt.Sprintf("%s %s", c.Color, c.Rank)
}

var colorCodes = map[Color]string{
	Yellow: "y",
	Red:    "r",
	Blue:   "b",
	Green:  "g",
	Black:  "k",
}

var rankCodes = map[Rank]string{
	TakeTwo:  "d2",
	Skip:     "s",
	Reverse:  "rv",
	TakeFour: "d4",
	Wild:     "w",
}

var cardRx = regexp.MustCompile(`(?i)^([yrbgk])([0-9]|d2|s|rv|d4|w)(?:#([0-9]+))?\z`)

// CardFromString returns a Card from the string. It panics if the string cannot be parsed.
// The string must be in the format of <color><rank>[#id], e.g. r7, gd2, kw#12
// color is one of [yrbgk], rank is 0-9, d2 (take two), s (skip), rv (reverse), d4 (take four) or w (wild)
func CardFromString(s string) Card {
	card, err := ParseCard(s)
	if err != nil {
		panic(err)
	}

	return card
}

// ParseCard returns a Card from the string, see CardFromString for the format
func ParseCard(s string) (Card, error) {
	match := cardRx.FindStringSubmatch(s)
	if match == nil {
		return Card{}, fmt.Errorf("%w: %q", ErrUnknownCard, s)
	}

	card := Card{}
	for c, code := range colorCodes {
		if code == strings.ToLower(match[1]) {
			card.Color = c
			break
		}
	}

	if n, err := strconv.Atoi(match[2]); err == nil {
		card.Rank = Rank(n)
	} else {
		for r, code := range rankCodes {
			if code == strings.ToLower(match[2]) {
				card.Rank = r
				break
			}
		}
	}

	if match[3] != "" {
		id, err := strconv.Atoi(match[3])
		if err != nil {
			return Card{}, fmt.Errorf("%w: %q: %v", ErrUnknownCard, s, err)
		}

		card.ID = id
	}

	return card, nil
}

// CardsFromString will returns a slice of cards
func CardsFromString(s string) []Card {
	if s == "" {
		return []Card{}
	}

	cardStrings := strings.Split(s, ",")
	cards := make([]Card, len(cardStrings))
	for i, card := range cardStrings {
		cards[i] = CardFromString(strings.TrimSpace(card))
	}

	return cards
}

// CardToString converts a card (red seven, id 3) to a string (r7#3)
// The id is omitted when it is zero
func CardToString(card Card) string {
	rank, ok := rankCodes[card.Rank]
	if !ok {
		rank = strconv.Itoa(int(card.Rank))
	}

	s := colorCodes[card.Color] + rank
	if card.ID != 0 {
		s += "#" + strconv.Itoa(card.ID)
	}

	return s
}

// CardsToString will convert a slice of cards to a string in the format of r7,b3,kw,...
func CardsToString(cards []Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = CardToString(card)
	}

	return strings.Join(c, ",")
}
