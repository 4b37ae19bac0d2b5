package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"uno-server/pkg/deck"
	"uno-server/pkg/playable"
)

type painter struct {
	colors map[deck.Color]*color.Color
}

func newPainter(enabled bool) *painter {
	p := &painter{
		colors: map[deck.Color]*color.Color{
			deck.Yellow: color.New(color.FgHiYellow),
			deck.Red:    color.New(color.FgHiRed),
			deck.Blue:   color.New(color.FgHiCyan),
			deck.Green:  color.New(color.FgHiGreen),
			deck.Black:  color.New(color.FgHiMagenta, color.Bold),
		},
	}

	for _, c := range p.colors {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

func (p *painter) card(card deck.Card) string {
	c, ok := p.colors[card.Color]
	if !ok {
		return card.String()
	}

	return c.Sprint(card.String())
}

func (p *painter) cards(cards []deck.Card) string {
	s := make([]string, len(cards))
	for i, card := range cards {
		s[i] = p.card(card)
	}

	return strings.Join(s, ", ")
}

// logMessage renders the message, naming the player in place of {}
func (p *painter) logMessage(msg *playable.LogMessage) string {
	text := msg.Message
	for _, id := range msg.PlayerIDs {
		text = strings.Replace(text, "{}", fmt.Sprintf("Player %d", id), 1)
	}

	if len(msg.Cards) > 0 {
		text += ": " + p.cards(msg.Cards)
	}

	return text
}
