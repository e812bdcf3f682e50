package domain

import "math/rand"

// DeckSize is the number of cards in play: 8 ranks across 4 suits.
const DeckSize = 32

// HandSize is the number of cards dealt to each seat.
const HandSize = DeckSize / NumSeats

// NewDeck returns the ordered 32-card deck.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for s := Spades; s <= Clubs; s++ {
		for r := Seven; r <= Ace; r++ {
			deck = append(deck, Card{Rank: r, Suit: s})
		}
	}
	return deck
}

// ShuffleDeck returns a uniformly shuffled copy of the given deck.
func ShuffleDeck(deck []Card, rng *rand.Rand) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Deal partitions a 32-card deck into four 8-card hands, handing the first
// cards to first and continuing in seating order.
func Deal(deck []Card, first Seat) [NumSeats][]Card {
	var hands [NumSeats][]Card
	seat := first
	for i := 0; i < NumSeats; i++ {
		hands[seat] = append([]Card{}, deck[i*HandSize:(i+1)*HandSize]...)
		seat = seat.Next()
	}
	return hands
}
