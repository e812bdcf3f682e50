package bot

import (
	"coinche/internal/domain"
)

// Brain is the interface that all bot strategies must implement. Both
// methods receive the full round; strategies read only what an honest
// player could see plus their own hand.
type Brain interface {
	// ProposeBid decides the seat's auction action.
	ProposeBid(round *domain.Round, seat domain.Seat) (domain.BidProposal, error)
	// ChooseCard picks one of the seat's legal cards for the current trick.
	ChooseCard(round *domain.Round, seat domain.Seat) (domain.Card, error)
}
