package uno

import (
	"uno-server/pkg/deck"
)

// penalty sizes
const (
	takeTwoPenalty  = 2
	takeFourPenalty = 4
)

// resolveCard applies the effects a played card has on hands and colors, and
// returns the card as it will lie on the pile.
// Effects on the turn order are applied by advanceTurn().
func (g *Game) resolveCard(player *Player, card deck.Card) deck.Card {
	switch card.Rank {
	case deck.TakeTwo:
		g.penalize(g.PeekNextPlayer(), takeTwoPenalty)
	case deck.TakeFour:
		card = g.chooseColor(player, card)
		g.penalize(g.PeekNextPlayer(), takeFourPenalty)
	case deck.Wild:
		card = g.chooseColor(player, card)
	}

	return card
}

// advanceTurn moves the turn pointer after a play ending with a card of the rank
func (g *Game) advanceTurn(rank deck.Rank) {
	switch rank {
	case deck.Skip:
		g.nextPlayer()
	case deck.Reverse:
		g.changePlayingOrder()

		// with two players a reverse works like a skip
		if len(g.players) == 2 {
			g.nextPlayer()
		}
	}

	g.nextPlayer()
}

// penalize gives the player n new cards
func (g *Game) penalize(victim *Player, n int) {
	for _, card := range g.supply.MakeCards(n) {
		victim.AddCard(card)
	}

	g.logger.WithField("playerID", victim.PlayerID).WithField("n", n).Debug("player takes penalty cards")
	g.sendLogMessages(newLogMessage(victim.PlayerID, nil, "{} takes %d cards", n))
}

// chooseColor returns the wild card with a randomly chosen color
func (g *Game) chooseColor(player *Player, card deck.Card) deck.Card {
	color := deck.PlayableColors[g.colorRNG.Intn(len(deck.PlayableColors))]
	resolved, err := card.WithColor(color)
	if err != nil {
		// only unresolved wild cards reach this point
		panic(err)
	}

	var pid int64
	if player != nil {
		pid = player.PlayerID
	}

	g.logger.WithField("card", resolved).Debug("wild color chosen")
	g.sendLogMessages(newLogMessage(pid, nil, "The color is now %s", color))

	return resolved
}
