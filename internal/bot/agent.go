package bot

import (
	"coinche/internal/domain"
)

// Agent represents an autonomous bot player.
type Agent struct {
	ID       string
	Name     string
	Strategy Brain
}

// Act asks the agent for its action in the round's current phase. During
// the auction it returns a bid proposal, during play a card.
func (a *Agent) Act(round *domain.Round) (*domain.BidProposal, *domain.Card, error) {
	seat, ok := round.SeatOf(a.ID)
	if !ok {
		return nil, nil, domain.ErrOutOfTurn
	}
	switch round.Phase {
	case domain.PhaseAuction:
		proposal, err := a.Strategy.ProposeBid(round, seat)
		if err != nil {
			return nil, nil, err
		}
		return &proposal, nil, nil
	case domain.PhasePlay:
		card, err := a.Strategy.ChooseCard(round, seat)
		if err != nil {
			return nil, nil, err
		}
		return nil, &card, nil
	default:
		return nil, nil, domain.ErrWrongPhase
	}
}
