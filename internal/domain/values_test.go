package domain

import "testing"

func TestCardPoints(t *testing.T) {
	tests := []struct {
		name     string
		card     Card
		decl     Declaration
		expected int
	}{
		{"trump jack", Card{Jack, Hearts}, DeclHearts, 20},
		{"trump nine", Card{Nine, Hearts}, DeclHearts, 14},
		{"trump ace", Card{Ace, Hearts}, DeclHearts, 11},
		{"trump seven", Card{Seven, Hearts}, DeclHearts, 0},
		{"plain jack", Card{Jack, Spades}, DeclHearts, 2},
		{"plain nine", Card{Nine, Spades}, DeclHearts, 0},
		{"plain ace", Card{Ace, Spades}, DeclHearts, 11},
		{"plain ten", Card{Ten, Spades}, DeclHearts, 10},
		{"no-trump ace", Card{Ace, Spades}, DeclNoTrump, 19},
		{"no-trump jack", Card{Jack, Spades}, DeclNoTrump, 2},
		{"all-trump jack", Card{Jack, Clubs}, DeclAllTrump, 20},
		{"all-trump nine", Card{Nine, Diamonds}, DeclAllTrump, 14},
		{"all-trump ace", Card{Ace, Diamonds}, DeclAllTrump, 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CardPoints(tt.card, tt.decl); got != tt.expected {
				t.Fatalf("CardPoints(%s, %s) = %d, expected %d", tt.card, tt.decl, got, tt.expected)
			}
		})
	}
}

func TestDeckPoints(t *testing.T) {
	tests := []struct {
		decl     Declaration
		expected int
	}{
		{DeclSpades, 152},
		{DeclHearts, 152},
		{DeclDiamonds, 152},
		{DeclClubs, 152},
		{DeclNoTrump, 152},
		{DeclAllTrump, 248},
	}
	for _, tt := range tests {
		t.Run(tt.decl.String(), func(t *testing.T) {
			if got := DeckPoints(tt.decl); got != tt.expected {
				t.Fatalf("DeckPoints(%s) = %d, expected %d", tt.decl, got, tt.expected)
			}
		})
	}
}

func TestIsTrump(t *testing.T) {
	if !IsTrump(Spades, DeclSpades) {
		t.Fatal("spades should be trump under a spades contract")
	}
	if IsTrump(Hearts, DeclSpades) {
		t.Fatal("hearts should not be trump under a spades contract")
	}
	if IsTrump(Spades, DeclNoTrump) {
		t.Fatal("no suit is trump under no-trump")
	}
	if !IsTrump(Diamonds, DeclAllTrump) {
		t.Fatal("every suit is trump under all-trump")
	}
}
