package domain

import (
	"errors"
	"testing"
)

// doneRound builds a completed round with the deck split into the two won
// piles.
func doneRound(contract Contract, wonNS, wonWE []Card, lastTrick Seat) *Round {
	r := playRound(contract, [NumSeats][]Card{}, nil, contract.Seat)
	r.Phase = PhaseDone
	r.Won[TeamNorthSouth] = append([]Card(nil), wonNS...)
	r.Won[TeamEastWest] = append([]Card(nil), wonWE...)
	r.LastTrickWinner = &lastTrick
	r.Turn = lastTrick
	return r
}

func deckWithout(cards []Card) []Card {
	exclude := map[Card]bool{}
	for _, c := range cards {
		exclude[c] = true
	}
	var rest []Card
	for _, c := range NewDeck() {
		if !exclude[c] {
			rest = append(rest, c)
		}
	}
	return rest
}

func TestComputeScoresRequiresDoneRound(t *testing.T) {
	r := playRound(Contract{Seat: 0, Points: 80, Declaration: DeclSpades, Multiplier: 1}, [NumSeats][]Card{}, nil, 0)
	if _, err := r.ComputeScores(); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("error = %v, expected %v", err, ErrWrongPhase)
	}
}

func TestSettleContractFailure(t *testing.T) {
	// The bidding team collects a single plain trick worth 21 and the last
	// trick went to the defenders.
	bidders := []Card{{Ace, Hearts}, {Ten, Hearts}, {Seven, Hearts}, {Eight, Hearts}}
	r := doneRound(Contract{Seat: 0, Points: 80, Declaration: DeclSpades, Multiplier: 1},
		bidders, deckWithout(bidders), 1)

	score, err := r.ComputeScores()
	if err != nil {
		t.Fatal(err)
	}
	if score.Totals[TeamNorthSouth] != 21 || score.Totals[TeamEastWest] != 141 {
		t.Fatalf("totals = %v, expected 21/141", score.Totals)
	}

	settlement, err := r.SettleContract()
	if err != nil {
		t.Fatal(err)
	}
	if settlement.Success {
		t.Fatal("21 points cannot make an 80 contract")
	}
	if settlement.Awards != [NumTeams]int{0, 160} {
		t.Fatalf("awards = %v, expected 0/160", settlement.Awards)
	}
}

func TestSettleContractCoinchedStakes(t *testing.T) {
	tests := []struct {
		name       string
		multiplier int
		expected   [NumTeams]int
	}{
		{"coinched", 2, [NumTeams]int{0, 320}},
		{"surcoinched", 4, [NumTeams]int{0, 640}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := doneRound(Contract{Seat: 0, Points: 80, Declaration: DeclSpades, Multiplier: tt.multiplier},
				nil, NewDeck(), 1)
			settlement, err := r.SettleContract()
			if err != nil {
				t.Fatal(err)
			}
			if settlement.Success {
				t.Fatal("a whitewashed bidding team cannot make its contract")
			}
			if settlement.Awards != tt.expected {
				t.Fatalf("awards = %v, expected %v", settlement.Awards, tt.expected)
			}
		})
	}
}

func TestSettleContractSuccessScaledByMultiplier(t *testing.T) {
	// The bidding team takes everything under a coinched 120.
	r := doneRound(Contract{Seat: 1, Points: 120, Declaration: DeclHearts, Multiplier: 2},
		nil, NewDeck(), 1)
	settlement, err := r.SettleContract()
	if err != nil {
		t.Fatal(err)
	}
	if !settlement.Success {
		t.Fatal("162 points make a 120 contract")
	}
	if settlement.Awards != [NumTeams]int{0, 240} {
		t.Fatalf("awards = %v, expected 0/240", settlement.Awards)
	}
}

func TestSettleContractFloor(t *testing.T) {
	// All eight trumps plus three low hearts: 71 card points, 81 with the
	// last trick. That covers the 80 bid but not the 82 floor.
	bidders := append(suited(Spades),
		Card{King, Hearts}, Card{Queen, Hearts}, Card{Jack, Hearts})
	r := doneRound(Contract{Seat: 0, Points: 80, Declaration: DeclSpades, Multiplier: 1},
		bidders, deckWithout(bidders), 0)

	score, err := r.ComputeScores()
	if err != nil {
		t.Fatal(err)
	}
	if score.Totals[TeamNorthSouth] != 81 {
		t.Fatalf("bidders total = %d, expected 81", score.Totals[TeamNorthSouth])
	}

	settlement, err := r.SettleContract()
	if err != nil {
		t.Fatal(err)
	}
	if settlement.Success {
		t.Fatal("81 points stay under the 82 floor")
	}
	if settlement.Awards != [NumTeams]int{0, 160} {
		t.Fatalf("awards = %v, expected 0/160", settlement.Awards)
	}
}
