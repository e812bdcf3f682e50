package domain

// Auction is the bidding state machine. Proposals arrive strictly in seat
// order; the auction ends when three consecutive passes follow an
// established best raise, when all four seats pass without one (redeal), or
// immediately on a coinche.
type Auction struct {
	Bids           []Bid
	Turn           Seat
	Best           *Bid
	Passes         int
	CoincheSeat    *Seat
	SurcoincheSeat *Seat
	Finished       bool
	Redeal         bool
}

// NewAuction starts an auction with the given seat to act first.
func NewAuction(opener Seat) *Auction {
	return &Auction{Turn: opener}
}

// Propose applies one bidding action for seat. On rejection the auction is
// left untouched and the returned error names the reason.
//
// A surcoinche is exempt from the turn pointer: the coinche that enables it
// has already closed the auction, so it is validated against the contract
// sides instead (bidding team only, and never the preneur).
func (a *Auction) Propose(seat Seat, p BidProposal) error {
	if p.Action == ActionSurcoinche {
		return a.surcoinche(seat)
	}
	if a.Finished {
		return ErrAuctionFinished
	}
	if seat != a.Turn {
		return ErrOutOfTurn
	}

	switch p.Action {
	case ActionPass:
		a.Bids = append(a.Bids, Bid{Seat: seat, Action: ActionPass})
		a.Passes++
		switch {
		case a.Best != nil && a.Passes >= NumSeats-1:
			a.Finished = true
		case a.Best == nil && a.Passes >= NumSeats:
			a.Finished = true
			a.Redeal = true
		default:
			a.Turn = a.Turn.Next()
		}
		return nil

	case ActionRaise:
		if !p.Declaration.Valid() {
			return ErrInvalidBid
		}
		if p.Points < MinBidPoints || p.Points > MaxBidPoints || p.Points%BidStep != 0 {
			return ErrInvalidBid
		}
		if a.Best != nil && p.Points <= a.Best.Points {
			return ErrInvalidBid
		}
		bid := Bid{Seat: seat, Action: ActionRaise, Points: p.Points, Declaration: p.Declaration}
		a.Bids = append(a.Bids, bid)
		a.Best = &a.Bids[len(a.Bids)-1]
		a.Passes = 0
		a.Turn = a.Turn.Next()
		return nil

	case ActionCoinche:
		if a.Best == nil {
			return ErrNothingToCoinche
		}
		// Only the defending side may double.
		if seat.Team() == a.Best.Seat.Team() {
			return ErrNothingToCoinche
		}
		a.Bids = append(a.Bids, Bid{Seat: seat, Action: ActionCoinche})
		s := seat
		a.CoincheSeat = &s
		a.Finished = true
		return nil

	default:
		return ErrInvalidBid
	}
}

func (a *Auction) surcoinche(seat Seat) error {
	if a.CoincheSeat == nil || a.SurcoincheSeat != nil || a.Best == nil {
		return ErrNothingToSurcoinche
	}
	if seat.Team() != a.Best.Seat.Team() || seat == a.Best.Seat {
		return ErrNothingToSurcoinche
	}
	a.Bids = append(a.Bids, Bid{Seat: seat, Action: ActionSurcoinche})
	s := seat
	a.SurcoincheSeat = &s
	a.Finished = true
	return nil
}

// Multiplier returns the stake multiplier: 1 plain, 2 coinched, 4
// surcoinched.
func (a *Auction) Multiplier() int {
	m := 1
	if a.CoincheSeat != nil {
		m++
	}
	if a.SurcoincheSeat != nil {
		m += 2
	}
	return m
}

// Contract returns the resolved contract, or nil while the auction is open
// or when it died with four passes.
func (a *Auction) Contract() *Contract {
	if !a.Finished || a.Best == nil {
		return nil
	}
	return &Contract{
		Seat:        a.Best.Seat,
		Points:      a.Best.Points,
		Declaration: a.Best.Declaration,
		Multiplier:  a.Multiplier(),
	}
}
