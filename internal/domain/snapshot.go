package domain

import "fmt"

// Snapshot is the lossless, structurally-typed export of a Round, suitable
// for durable storage keyed by an opaque room identifier. Export, import
// and re-export yields identical values.
type Snapshot struct {
	Players         [NumSeats]string `json:"players"`
	Dealer          int              `json:"dealer"`
	Phase           Phase            `json:"phase"`
	Turn            int              `json:"turn"`
	Hands           [NumSeats][]Card `json:"hands"`
	Auction         AuctionSnapshot  `json:"auction"`
	Contract        *Contract        `json:"contract,omitempty"`
	Trick           []TrickPlay      `json:"trick,omitempty"`
	Won             [NumTeams][]Card `json:"won"`
	LastTrickWinner *int             `json:"last_trick_winner,omitempty"`
}

// AuctionSnapshot mirrors the Auction state. The best raise is not stored;
// it is recomputed from the bid history on restore.
type AuctionSnapshot struct {
	Bids       []Bid `json:"bids,omitempty"`
	Turn       int   `json:"turn"`
	Passes     int   `json:"passes"`
	Coinche    *int  `json:"coinche,omitempty"`
	Surcoinche *int  `json:"surcoinche,omitempty"`
	Finished   bool  `json:"finished"`
	Redeal     bool  `json:"redeal"`
}

// Snapshot exports the full round state.
func (r *Round) Snapshot() Snapshot {
	s := Snapshot{
		Players:         r.Players,
		Dealer:          int(r.Dealer),
		Phase:           r.Phase,
		Turn:            int(r.Turn),
		Contract:        cloneContract(r.Contract),
		Trick:           clonePlays(r.Trick),
		LastTrickWinner: seatToInt(r.LastTrickWinner),
	}
	for i := range r.Hands {
		s.Hands[i] = cloneCards(r.Hands[i])
	}
	for i := range r.Won {
		s.Won[i] = cloneCards(r.Won[i])
	}
	s.Auction = AuctionSnapshot{
		Bids:       append([]Bid(nil), r.Auction.Bids...),
		Turn:       int(r.Auction.Turn),
		Passes:     r.Auction.Passes,
		Coinche:    seatToInt(r.Auction.CoincheSeat),
		Surcoinche: seatToInt(r.Auction.SurcoincheSeat),
		Finished:   r.Auction.Finished,
		Redeal:     r.Auction.Redeal,
	}
	return s
}

// RestoreRound reconstructs a Round from a snapshot. Malformed snapshots
// are rejected as a whole; a partially-valid round is never produced.
func RestoreRound(s Snapshot) (*Round, error) {
	if err := validateSnapshot(s); err != nil {
		return nil, fmt.Errorf("invalid snapshot: %w", err)
	}

	auction := &Auction{
		Bids:           append([]Bid(nil), s.Auction.Bids...),
		Turn:           Seat(s.Auction.Turn),
		Passes:         s.Auction.Passes,
		CoincheSeat:    intToSeat(s.Auction.Coinche),
		SurcoincheSeat: intToSeat(s.Auction.Surcoinche),
		Finished:       s.Auction.Finished,
		Redeal:         s.Auction.Redeal,
	}
	for i := range auction.Bids {
		if auction.Bids[i].Action == ActionRaise {
			auction.Best = &auction.Bids[i]
		}
	}

	r := &Round{
		Players:         s.Players,
		Dealer:          Seat(s.Dealer),
		Phase:           s.Phase,
		Turn:            Seat(s.Turn),
		Auction:         auction,
		Contract:        cloneContract(s.Contract),
		Trick:           clonePlays(s.Trick),
		LastTrickWinner: intToSeat(s.LastTrickWinner),
	}
	for i := range s.Hands {
		r.Hands[i] = cloneCards(s.Hands[i])
	}
	for i := range s.Won {
		r.Won[i] = cloneCards(s.Won[i])
	}
	return r, nil
}

func validateSnapshot(s Snapshot) error {
	switch s.Phase {
	case PhaseAuction, PhasePlay, PhaseDone:
	default:
		return fmt.Errorf("unknown phase %q", s.Phase)
	}
	if !Seat(s.Dealer).Valid() || !Seat(s.Turn).Valid() || !Seat(s.Auction.Turn).Valid() {
		return fmt.Errorf("seat index out of range")
	}
	for _, p := range []*int{s.Auction.Coinche, s.Auction.Surcoinche, s.LastTrickWinner} {
		if p != nil && !Seat(*p).Valid() {
			return fmt.Errorf("seat index out of range")
		}
	}

	// Every card in the deck appears at most once across hands, the open
	// trick and the collected piles, and together they form the full deck.
	seen := map[Card]bool{}
	total := 0
	track := func(c Card) error {
		if !c.Valid() {
			return fmt.Errorf("unknown card rank=%d suit=%d", c.Rank, c.Suit)
		}
		if seen[c] {
			return fmt.Errorf("duplicate card %s", c)
		}
		seen[c] = true
		total++
		return nil
	}
	for _, hand := range s.Hands {
		for _, c := range hand {
			if err := track(c); err != nil {
				return err
			}
		}
	}
	for _, tp := range s.Trick {
		if !tp.Seat.Valid() {
			return fmt.Errorf("seat index out of range")
		}
		if err := track(tp.Card); err != nil {
			return err
		}
	}
	for _, pile := range s.Won {
		for _, c := range pile {
			if err := track(c); err != nil {
				return err
			}
		}
	}
	if total != DeckSize {
		return fmt.Errorf("expected %d cards, got %d", DeckSize, total)
	}
	if len(s.Trick) > NumSeats {
		return fmt.Errorf("trick holds %d plays", len(s.Trick))
	}

	if s.Phase != PhaseAuction {
		if s.Contract == nil {
			return fmt.Errorf("phase %s without a contract", s.Phase)
		}
		if !s.Contract.Declaration.Valid() || !s.Contract.Seat.Valid() {
			return fmt.Errorf("malformed contract")
		}
	}
	if s.Auction.Surcoinche != nil && s.Auction.Coinche == nil {
		return fmt.Errorf("surcoinche without coinche")
	}
	for _, b := range s.Auction.Bids {
		if !b.Seat.Valid() {
			return fmt.Errorf("seat index out of range")
		}
		if b.Action == ActionRaise && !b.Declaration.Valid() {
			return fmt.Errorf("raise with unknown declaration")
		}
	}
	return nil
}

func cloneCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	return append(make([]Card, 0, len(cards)), cards...)
}

func clonePlays(plays []TrickPlay) []TrickPlay {
	if plays == nil {
		return nil
	}
	return append(make([]TrickPlay, 0, len(plays)), plays...)
}

func cloneContract(c *Contract) *Contract {
	if c == nil {
		return nil
	}
	out := *c
	return &out
}

func seatToInt(s *Seat) *int {
	if s == nil {
		return nil
	}
	v := int(*s)
	return &v
}

func intToSeat(v *int) *Seat {
	if v == nil {
		return nil
	}
	s := Seat(*v)
	return &s
}
