package domain

import (
	"errors"
	"math/rand"
	"testing"
)

func suited(s Suit) []Card {
	var out []Card
	for r := Seven; r <= Ace; r++ {
		out = append(out, Card{Rank: r, Suit: s})
	}
	return out
}

func TestNewRound(t *testing.T) {
	players := [NumSeats]string{"a", "b", "c", "d"}
	r := NewRound(players, Seat(1), rand.New(rand.NewSource(3)))

	if r.Phase != PhaseAuction {
		t.Fatalf("phase = %s, expected auction", r.Phase)
	}
	if r.Turn != 2 || r.Auction.Turn != 2 {
		t.Fatalf("opener = %d/%d, expected the seat left of the dealer", r.Turn, r.Auction.Turn)
	}
	for seat, hand := range r.Hands {
		if len(hand) != HandSize {
			t.Fatalf("seat %d holds %d cards", seat, len(hand))
		}
	}
	if seat, ok := r.SeatOf("c"); !ok || seat != 2 {
		t.Fatalf("SeatOf(c) = %d,%v", seat, ok)
	}
	if _, ok := r.SeatOf("nobody"); ok {
		t.Fatal("unknown player resolved to a seat")
	}
}

func TestRoundAuctionToPlay(t *testing.T) {
	r := NewRound([NumSeats]string{"a", "b", "c", "d"}, Seat(3), rand.New(rand.NewSource(3)))

	if _, err := r.PlayCard(0, r.Hands[0][0]); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("play during auction: error = %v, expected %v", err, ErrWrongPhase)
	}
	if err := r.ProposeBid(0, raise(90, DeclHearts)); err != nil {
		t.Fatal(err)
	}
	for _, seat := range []Seat{1, 2, 3} {
		if err := r.ProposeBid(seat, pass()); err != nil {
			t.Fatalf("seat %d pass: %v", seat, err)
		}
	}
	if r.Phase != PhasePlay {
		t.Fatalf("phase = %s, expected play", r.Phase)
	}
	if r.Turn != 0 {
		t.Fatalf("first leader = %d, expected the seat left of the dealer", r.Turn)
	}
	if r.Contract == nil || r.Contract.Points != 90 || r.Contract.Declaration != DeclHearts {
		t.Fatalf("contract = %+v", r.Contract)
	}
	if err := r.ProposeBid(1, raise(100, DeclSpades)); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("bid during play: error = %v, expected %v", err, ErrWrongPhase)
	}
}

func TestRoundRedeal(t *testing.T) {
	r := NewRound([NumSeats]string{"a", "b", "c", "d"}, Seat(0), rand.New(rand.NewSource(5)))
	for _, seat := range []Seat{1, 2, 3, 0} {
		if err := r.ProposeBid(seat, pass()); err != nil {
			t.Fatalf("seat %d pass: %v", seat, err)
		}
	}
	if !r.NeedsRedeal() {
		t.Fatal("four opening passes should force a redeal")
	}
	if r.Phase != PhaseAuction || r.Contract != nil {
		t.Fatalf("dead round: phase=%s contract=%+v", r.Phase, r.Contract)
	}
}

func TestRoundSurcoincheBeforeFirstCard(t *testing.T) {
	r := NewRound([NumSeats]string{"a", "b", "c", "d"}, Seat(3), rand.New(rand.NewSource(3)))
	if err := r.ProposeBid(0, raise(100, DeclSpades)); err != nil {
		t.Fatal(err)
	}
	if err := r.ProposeBid(1, BidProposal{Action: ActionCoinche}); err != nil {
		t.Fatal(err)
	}
	if r.Phase != PhasePlay || r.Contract.Multiplier != 2 {
		t.Fatalf("phase=%s multiplier=%d after coinche", r.Phase, r.Contract.Multiplier)
	}
	if err := r.ProposeBid(2, BidProposal{Action: ActionSurcoinche}); err != nil {
		t.Fatalf("surcoinche before the first card: %v", err)
	}
	if r.Contract.Multiplier != 4 {
		t.Fatalf("multiplier = %d, expected 4", r.Contract.Multiplier)
	}

	// The window closes with the first card.
	if _, err := r.PlayCard(0, r.Hands[0][0]); err != nil {
		t.Fatalf("first lead: %v", err)
	}
	err := r.ProposeBid(2, BidProposal{Action: ActionSurcoinche})
	if !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("late surcoinche: error = %v, expected %v", err, ErrWrongPhase)
	}
}

func TestRoundPlayThrough(t *testing.T) {
	hands := [NumSeats][]Card{
		suited(Spades), suited(Hearts), suited(Diamonds), suited(Clubs),
	}
	r := playRound(Contract{Seat: 0, Points: 80, Declaration: DeclSpades, Multiplier: 1}, hands, nil, 0)

	if _, err := r.PlayCard(1, Card{Seven, Hearts}); !errors.Is(err, ErrOutOfTurn) {
		t.Fatalf("out of turn: error = %v, expected %v", err, ErrOutOfTurn)
	}
	if _, err := r.PlayCard(0, Card{Seven, Hearts}); !errors.Is(err, ErrCardNotInHand) {
		t.Fatalf("foreign card: error = %v, expected %v", err, ErrCardNotInHand)
	}

	// Seat 0 holds every trump and wins all eight tricks.
	for trick := 0; trick < HandSize; trick++ {
		for _, seat := range []Seat{0, 1, 2, 3} {
			winner, err := r.PlayCard(seat, r.Hands[seat][0])
			if err != nil {
				t.Fatalf("trick %d seat %d: %v", trick, seat, err)
			}
			if seat != 3 {
				if winner != nil {
					t.Fatalf("trick %d: winner reported mid-trick", trick)
				}
				continue
			}
			if winner == nil || *winner != 0 {
				t.Fatalf("trick %d: winner = %v, expected seat 0", trick, winner)
			}
		}
	}

	if r.Phase != PhaseDone {
		t.Fatalf("phase = %s, expected done", r.Phase)
	}
	if len(r.Won[TeamNorthSouth]) != DeckSize || len(r.Won[TeamEastWest]) != 0 {
		t.Fatalf("won piles = %d/%d", len(r.Won[TeamNorthSouth]), len(r.Won[TeamEastWest]))
	}

	score, err := r.ComputeScores()
	if err != nil {
		t.Fatal(err)
	}
	if score.CardPoints[TeamNorthSouth] != 152 || score.CardPoints[TeamEastWest] != 0 {
		t.Fatalf("card points = %v", score.CardPoints)
	}
	if score.LastTrick != TeamNorthSouth || score.Totals[TeamNorthSouth] != 162 {
		t.Fatalf("totals = %v, last trick %s", score.Totals, score.LastTrick)
	}

	settlement, err := r.SettleContract()
	if err != nil {
		t.Fatal(err)
	}
	if !settlement.Success {
		t.Fatal("taking every card should make the contract")
	}
	if settlement.Awards != [NumTeams]int{80, 0} {
		t.Fatalf("awards = %v, expected 80/0", settlement.Awards)
	}

	if _, err := r.PlayCard(0, Card{Ace, Spades}); !errors.Is(err, ErrWrongPhase) {
		t.Fatalf("play after done: error = %v, expected %v", err, ErrWrongPhase)
	}
}

func TestRoundTrickWinnerLeadsNext(t *testing.T) {
	hands := [NumSeats][]Card{
		0: {{Seven, Hearts}, {Seven, Clubs}},
		1: {{Ace, Hearts}, {Eight, Clubs}},
		2: {{Eight, Hearts}, {Nine, Clubs}},
		3: {{Nine, Hearts}, {Ten, Clubs}},
	}
	r := playRound(Contract{Seat: 0, Points: 80, Declaration: DeclSpades, Multiplier: 1}, hands, nil, 0)

	plays := []struct {
		seat Seat
		card Card
	}{
		{0, Card{Seven, Hearts}},
		{1, Card{Ace, Hearts}},
		{2, Card{Eight, Hearts}},
		{3, Card{Nine, Hearts}},
	}
	var winner *Seat
	for _, p := range plays {
		var err error
		winner, err = r.PlayCard(p.seat, p.card)
		if err != nil {
			t.Fatalf("seat %d: %v", p.seat, err)
		}
	}
	if winner == nil || *winner != 1 {
		t.Fatalf("winner = %v, expected seat 1", winner)
	}
	if r.Turn != 1 {
		t.Fatalf("next leader = %d, expected the trick winner", r.Turn)
	}
	if len(r.Won[TeamEastWest]) != NumSeats {
		t.Fatalf("winning team collected %d cards", len(r.Won[TeamEastWest]))
	}
}

func TestRoundRejectionLeavesStateUntouched(t *testing.T) {
	hands := [NumSeats][]Card{
		1: {{King, Hearts}, {Ace, Spades}},
	}
	trick := []TrickPlay{{Seat: 0, Card: Card{Seven, Hearts}}}
	r := playRound(Contract{Seat: 0, Points: 80, Declaration: DeclClubs, Multiplier: 1}, hands, trick, 1)

	if _, err := r.PlayCard(1, Card{Ace, Spades}); err == nil {
		t.Fatal("expected a follow-suit rejection")
	}
	if len(r.Hands[1]) != 2 || len(r.Trick) != 1 || r.Turn != 1 {
		t.Fatal("rejected play must not alter the round")
	}
}
