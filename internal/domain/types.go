package domain

import "fmt"

// Suit is one of the four card suits.
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Rank is a card rank in the 32-card deck, ordered by the plain (non-trump)
// value table so that iteration order matches scoring order.
type Rank int

const (
	Seven Rank = iota
	Eight
	Nine
	Jack
	Queen
	King
	Ten
	Ace
)

func (r Rank) String() string {
	switch r {
	case Seven:
		return "7"
	case Eight:
		return "8"
	case Nine:
		return "9"
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ten:
		return "10"
	case Ace:
		return "A"
	default:
		return "?"
	}
}

// Card is a single playing card.
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

// Valid reports whether the card exists in the 32-card deck.
func (c Card) Valid() bool {
	return c.Rank >= Seven && c.Rank <= Ace && c.Suit >= Spades && c.Suit <= Clubs
}

// Seat is a position at the table, 0..3, cycling clockwise.
type Seat int

// NumSeats is the fixed table size.
const NumSeats = 4

// Next returns the seat that acts after s.
func (s Seat) Next() Seat {
	return (s + 1) % NumSeats
}

// Partner returns the seat sitting opposite s.
func (s Seat) Partner() Seat {
	return (s + 2) % NumSeats
}

// Team returns the partnership s belongs to. Seats 0 and 2 form one team,
// seats 1 and 3 the other.
func (s Seat) Team() Team {
	return Team(s % 2)
}

// Valid reports whether s is a real table position.
func (s Seat) Valid() bool {
	return s >= 0 && s < NumSeats
}

// Team identifies one of the two fixed partnerships.
type Team int

const (
	// TeamNorthSouth holds seats 0 and 2.
	TeamNorthSouth Team = iota
	// TeamEastWest holds seats 1 and 3.
	TeamEastWest
)

// NumTeams is the number of partnerships at the table.
const NumTeams = 2

// Other returns the opposing team.
func (t Team) Other() Team {
	return (t + 1) % NumTeams
}

func (t Team) String() string {
	switch t {
	case TeamNorthSouth:
		return "NS"
	case TeamEastWest:
		return "WE"
	default:
		return "?"
	}
}

// Declaration is the trump mode attached to a raise: one of the four suits,
// no-trump, or all-trump.
type Declaration int

const (
	DeclSpades Declaration = iota
	DeclHearts
	DeclDiamonds
	DeclClubs
	DeclNoTrump
	DeclAllTrump
)

// Valid reports whether d is one of the six accepted declarations.
func (d Declaration) Valid() bool {
	return d >= DeclSpades && d <= DeclAllTrump
}

// TrumpSuit returns the single elevated suit for suit declarations.
// No-trump and all-trump have no single trump suit.
func (d Declaration) TrumpSuit() (Suit, bool) {
	switch d {
	case DeclSpades:
		return Spades, true
	case DeclHearts:
		return Hearts, true
	case DeclDiamonds:
		return Diamonds, true
	case DeclClubs:
		return Clubs, true
	default:
		return 0, false
	}
}

func (d Declaration) String() string {
	switch d {
	case DeclNoTrump:
		return "NT"
	case DeclAllTrump:
		return "AT"
	default:
		if s, ok := d.TrumpSuit(); ok {
			return s.String()
		}
		return "?"
	}
}

// Phase is the lifecycle stage of a round.
type Phase string

const (
	// PhaseAuction is the bidding stage.
	PhaseAuction Phase = "auction"
	// PhasePlay is the trick-play stage.
	PhasePlay Phase = "play"
	// PhaseDone is reached once all 32 cards have been played.
	PhaseDone Phase = "done"
)

// BidAction is one of the four auction proposals.
type BidAction int

const (
	ActionPass BidAction = iota
	ActionRaise
	ActionCoinche
	ActionSurcoinche
)

func (a BidAction) String() string {
	switch a {
	case ActionPass:
		return "pass"
	case ActionRaise:
		return "raise"
	case ActionCoinche:
		return "coinche"
	case ActionSurcoinche:
		return "surcoinche"
	default:
		return "?"
	}
}

// Bid is one recorded auction proposal. Points and Declaration are only
// meaningful for raises.
type Bid struct {
	Seat        Seat        `json:"seat"`
	Action      BidAction   `json:"action"`
	Points      int         `json:"points,omitempty"`
	Declaration Declaration `json:"declaration,omitempty"`
}

// BidProposal is the caller-supplied side of a Bid.
type BidProposal struct {
	Action      BidAction
	Points      int
	Declaration Declaration
}

// Contract is the resolved outcome of an auction: the winning raise plus the
// stake multiplier derived from coinche/surcoinche.
type Contract struct {
	Seat        Seat        `json:"seat"`
	Points      int         `json:"points"`
	Declaration Declaration `json:"declaration"`
	Multiplier  int         `json:"multiplier"`
}

// TrickPlay is one card played into the current trick.
type TrickPlay struct {
	Seat Seat `json:"seat"`
	Card Card `json:"card"`
}
