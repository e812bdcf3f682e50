package domain

import (
	"math/rand"
	"testing"
)

func TestNewDeck(t *testing.T) {
	deck := NewDeck()
	if len(deck) != DeckSize {
		t.Fatalf("expected %d cards, got %d", DeckSize, len(deck))
	}
	seen := map[Card]bool{}
	for _, c := range deck {
		if !c.Valid() {
			t.Fatalf("invalid card %v", c)
		}
		if seen[c] {
			t.Fatalf("duplicate card %s", c)
		}
		seen[c] = true
	}
}

func TestShuffleDeck(t *testing.T) {
	deck := NewDeck()
	rng := rand.New(rand.NewSource(1))
	shuffled := ShuffleDeck(deck, rng)

	if len(shuffled) != DeckSize {
		t.Fatalf("expected %d cards, got %d", DeckSize, len(shuffled))
	}
	// The input deck must not be mutated.
	for i, c := range NewDeck() {
		if deck[i] != c {
			t.Fatalf("input deck mutated at index %d", i)
		}
	}
	// Same multiset of cards.
	seen := map[Card]bool{}
	for _, c := range shuffled {
		if seen[c] {
			t.Fatalf("duplicate card %s after shuffle", c)
		}
		seen[c] = true
	}
}

func TestDeal(t *testing.T) {
	deck := ShuffleDeck(NewDeck(), rand.New(rand.NewSource(7)))
	hands := Deal(deck, Seat(2))

	seen := map[Card]bool{}
	for seat, hand := range hands {
		if len(hand) != HandSize {
			t.Fatalf("seat %d: expected %d cards, got %d", seat, HandSize, len(hand))
		}
		for _, c := range hand {
			if seen[c] {
				t.Fatalf("card %s dealt twice", c)
			}
			seen[c] = true
		}
	}
	if len(seen) != DeckSize {
		t.Fatalf("expected %d distinct cards across hands, got %d", DeckSize, len(seen))
	}
	// The first chunk of the deck goes to the requested seat.
	for i := 0; i < HandSize; i++ {
		if hands[2][i] != deck[i] {
			t.Fatalf("seat 2 card %d: expected %s, got %s", i, deck[i], hands[2][i])
		}
	}
}
