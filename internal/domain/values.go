package domain

// Bid boundaries and scoring constants.
const (
	MinBidPoints = 80
	MaxBidPoints = 160
	BidStep      = 10

	// LastTrickBonus is added to the team that takes the final trick.
	LastTrickBonus = 10

	// ContractFloor is the minimum total the bidding team must reach for the
	// contract to succeed, regardless of a lower bid.
	ContractFloor = 82
)

// trumpPoints is the value table for the trump suit (and for every suit
// under an all-trump declaration).
func trumpPoints(r Rank) int {
	switch r {
	case Jack:
		return 20
	case Nine:
		return 14
	case Ace:
		return 11
	case Ten:
		return 10
	case King:
		return 4
	case Queen:
		return 3
	default:
		return 0
	}
}

// plainPoints is the value table for non-trump suits.
func plainPoints(r Rank) int {
	switch r {
	case Ace:
		return 11
	case Ten:
		return 10
	case King:
		return 4
	case Queen:
		return 3
	case Jack:
		return 2
	default:
		return 0
	}
}

// CardPoints returns the point value of a card under the given declaration.
// Suit contracts value the trump suit by the trump table and the rest by the
// plain table; no-trump revalues the Ace to 19; all-trump values every suit
// by the trump table.
func CardPoints(c Card, d Declaration) int {
	switch d {
	case DeclNoTrump:
		if c.Rank == Ace {
			return 19
		}
		return plainPoints(c.Rank)
	case DeclAllTrump:
		return trumpPoints(c.Rank)
	default:
		if t, ok := d.TrumpSuit(); ok && c.Suit == t {
			return trumpPoints(c.Rank)
		}
		return plainPoints(c.Rank)
	}
}

// IsTrump reports whether cards of suit s play as trump under d. Every suit
// is trump under all-trump; none is under no-trump.
func IsTrump(s Suit, d Declaration) bool {
	switch d {
	case DeclAllTrump:
		return true
	case DeclNoTrump:
		return false
	default:
		t, ok := d.TrumpSuit()
		return ok && s == t
	}
}

// DeckPoints returns the total card points in the deck under d, excluding
// the last-trick bonus: 152 for suit contracts and no-trump, 248 for
// all-trump. Both teams' collected points always sum to this.
func DeckPoints(d Declaration) int {
	total := 0
	for _, c := range NewDeck() {
		total += CardPoints(c, d)
	}
	return total
}
