package domain

import "math/rand"

// Round owns the full state of one deal: the auction, the trick-play state
// machine and the collected cards. It is single-writer; callers drive it one
// operation at a time and every operation either fully applies or rejects
// without side effects.
type Round struct {
	Players [NumSeats]string
	Dealer  Seat
	Phase   Phase
	Turn    Seat

	Hands   [NumSeats][]Card
	Auction *Auction

	// Contract is fixed once the auction resolves; nil before that.
	Contract *Contract

	Trick           []TrickPlay
	Won             [NumTeams][]Card
	LastTrickWinner *Seat
}

// NewRound shuffles, deals 8 cards to each seat starting left of the dealer
// and opens the auction with that same seat.
func NewRound(players [NumSeats]string, dealer Seat, rng *rand.Rand) *Round {
	deck := ShuffleDeck(NewDeck(), rng)
	opener := dealer.Next()
	return &Round{
		Players: players,
		Dealer:  dealer,
		Phase:   PhaseAuction,
		Turn:    opener,
		Hands:   Deal(deck, opener),
		Auction: NewAuction(opener),
	}
}

// SeatOf resolves a player identifier to its seat.
func (r *Round) SeatOf(playerID string) (Seat, bool) {
	for i, p := range r.Players {
		if p == playerID && p != "" {
			return Seat(i), true
		}
	}
	return 0, false
}

// NeedsRedeal reports whether the auction died with four passes and no
// raise. The caller is expected to start a fresh round with the dealer
// rotated one seat.
func (r *Round) NeedsRedeal() bool {
	return r.Auction.Finished && r.Auction.Redeal
}

// ProposeBid applies one auction action. When the auction resolves with a
// contract the round moves to the play phase with the seat left of the
// dealer leading the first trick.
//
// A surcoinche is additionally accepted at the very start of the play
// phase, before any card has been played: the coinche that enables it has
// already closed the auction.
func (r *Round) ProposeBid(seat Seat, p BidProposal) error {
	if r.Phase == PhasePlay && p.Action == ActionSurcoinche && r.noCardPlayed() {
		if err := r.Auction.Propose(seat, p); err != nil {
			return err
		}
		r.Contract = r.Auction.Contract()
		return nil
	}
	if r.Phase != PhaseAuction {
		return ErrWrongPhase
	}
	if err := r.Auction.Propose(seat, p); err != nil {
		return err
	}
	if r.Auction.Finished {
		if c := r.Auction.Contract(); c != nil {
			r.Contract = c
			r.Phase = PhasePlay
			r.Turn = r.Dealer.Next()
		}
		return nil
	}
	r.Turn = r.Auction.Turn
	return nil
}

func (r *Round) noCardPlayed() bool {
	return len(r.Trick) == 0 && len(r.Won[TeamNorthSouth]) == 0 && len(r.Won[TeamEastWest]) == 0
}

// PlayCard validates and applies one card play. When the play completes a
// trick the trick is resolved, its cards go to the winning team, the winner
// leads next and their seat is returned. The round reaches PhaseDone with
// the final trick.
func (r *Round) PlayCard(seat Seat, card Card) (*Seat, error) {
	if r.Phase != PhasePlay {
		return nil, ErrWrongPhase
	}
	if seat != r.Turn {
		return nil, ErrOutOfTurn
	}
	idx, ok := indexOfCard(r.Hands[seat], card)
	if !ok {
		return nil, ErrCardNotInHand
	}
	if err := r.validatePlay(seat, card); err != nil {
		return nil, err
	}

	hand := r.Hands[seat]
	r.Hands[seat] = append(hand[:idx], hand[idx+1:]...)
	r.Trick = append(r.Trick, TrickPlay{Seat: seat, Card: card})

	if len(r.Trick) < NumSeats {
		r.Turn = r.Turn.Next()
		return nil, nil
	}

	winner := r.Trick[winningPlayIndex(r.Trick, r.Contract.Declaration)].Seat
	team := winner.Team()
	for _, tp := range r.Trick {
		r.Won[team] = append(r.Won[team], tp.Card)
	}
	r.Trick = nil
	w := winner
	r.LastTrickWinner = &w
	r.Turn = winner

	if r.handsEmpty() {
		r.Phase = PhaseDone
	}
	return &w, nil
}

func (r *Round) handsEmpty() bool {
	for _, h := range r.Hands {
		if len(h) > 0 {
			return false
		}
	}
	return true
}

func indexOfCard(cards []Card, target Card) (int, bool) {
	for i, c := range cards {
		if c == target {
			return i, true
		}
	}
	return -1, false
}
