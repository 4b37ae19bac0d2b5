package uno

import (
	"uno-server/pkg/deck"
	"uno-server/pkg/playable"
)

// Player is an individual in the game
type Player struct {
	PlayerID int64
	Position int
	hand     deck.Hand
}

// NewPlayer returns a new player
func NewPlayer(pid int64, position int) *Player {
	return &Player{
		PlayerID: pid,
		Position: position,
		hand:     make(deck.Hand, 0),
	}
}

// GetPlayerID returns the player ID
func (p *Player) GetPlayerID() int64 {
	return p.PlayerID
}

// AddCard add a card to the players hand
func (p *Player) AddCard(card deck.Card) {
	p.hand.AddCard(card)
}

// Hand returns a shallow clone of the player's hand
func (p *Player) Hand() deck.Hand {
	return p.hand.Clone()
}

// HasCard returns true if the player has the card in their hand
func (p *Player) HasCard(card deck.Card) bool {
	return p.hand.HasCard(card)
}

// CardsInHand returns the size of the player's hand
func (p *Player) CardsInHand() int {
	return p.hand.Len()
}

// selectCards returns the cards in the hand that were selected, in the order they were selected
// Every selected card must be held exactly as described, and no card can be selected twice
func (p *Player) selectCards(selected []deck.Card) ([]deck.Card, error) {
	seen := make(map[int]bool)
	cards := make([]deck.Card, len(selected))
	for i, s := range selected {
		if seen[s.ID] {
			return nil, ErrCardNotInPlayersHand
		}

		card, ok := p.hand.Find(s.ID)
		if !ok || !card.SameFace(s) {
			return nil, ErrCardNotInPlayersHand
		}

		seen[s.ID] = true
		cards[i] = card
	}

	return cards, nil
}

// playerDidPlayCards removes the cards from the player's hand
func (p *Player) playerDidPlayCards(cards []deck.Card) {
	for _, card := range cards {
		if !p.hand.Discard(card) {
			// selectCards() already verified the cards
			panic("card is not in player's hand")
		}
	}
}

var _ playable.Player = &Player{}
