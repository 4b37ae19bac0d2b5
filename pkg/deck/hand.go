package deck

// Hand represents an unordered collection of cards
type Hand []Card

func (h Hand) Len() int {
	return len(h)
}

func (h Hand) Less(i, j int) bool {
	if h[i].Color != h[j].Color {
		return h[i].Color < h[j].Color
	}

	if h[i].Rank != h[j].Rank {
		return h[i].Rank < h[j].Rank
	}

	return h[i].ID < h[j].ID
}

func (h Hand) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
}

// AddCard adds a card to the hand
func (h *Hand) AddCard(card Card) {
	*h = append(*h, card)
}

// HasCard returns true if the hand contains the specified card
func (h Hand) HasCard(card Card) bool {
	_, ok := h.Find(card.ID)
	return ok
}

// Find returns the card in the hand with the given ID
func (h Hand) Find(id int) (Card, bool) {
	for _, c := range h {
		if c.ID == id {
			return c, true
		}
	}

	return Card{}, false
}

// Discard will remove the specified card from the hand
// Returns false if the card was not found
func (h *Hand) Discard(card Card) bool {
	for i, c := range *h {
		if c.Equal(card) {
			newHand := make(Hand, 0, len(*h)-1)
			newHand = append(newHand, (*h)[:i]...)
			newHand = append(newHand, (*h)[i+1:]...)
			*h = newHand
			return true
		}
	}

	return false
}

// IsEmpty returns true if there are no cards left
func (h Hand) IsEmpty() bool {
	return len(h) == 0
}

// CountRank returns how many cards of the rank are in the hand
func (h Hand) CountRank(rank Rank) int {
	count := 0
	for _, c := range h {
		if c.Rank == rank {
			count++
		}
	}

	return count
}

func (h Hand) String() string {
	return CardsToString(h)
}

// Clone returns a clone of the hand
func (h Hand) Clone() Hand {
	h2 := make(Hand, len(h))
	copy(h2, h)

	return h2
}
