package bot

import (
	"errors"
	"math/rand"

	"coinche/internal/domain"
)

var ErrNoLegalPlay = errors.New("no legal play available")

// RandomBot never bids and plays an arbitrary legal card. It exists as the
// easy difficulty and as the baseline the counting strategy is measured
// against.
type RandomBot struct {
	Rng *rand.Rand
}

func (b *RandomBot) ProposeBid(round *domain.Round, seat domain.Seat) (domain.BidProposal, error) {
	return domain.BidProposal{Action: domain.ActionPass}, nil
}

func (b *RandomBot) ChooseCard(round *domain.Round, seat domain.Seat) (domain.Card, error) {
	legal := round.LegalPlays(seat)
	if len(legal) == 0 {
		return domain.Card{}, ErrNoLegalPlay
	}
	if b.Rng == nil {
		return legal[0], nil
	}
	return legal[b.Rng.Intn(len(legal))], nil
}

// CountingBot weighs its hand under every declaration before bidding and
// plays by whether its side currently holds the trick.
type CountingBot struct {
	Tuning BotTuning
}

// NewCountingBot returns a counting strategy with the default tuning.
func NewCountingBot() *CountingBot {
	return &CountingBot{Tuning: DefaultTuning}
}

// handStrength estimates the hand under one declaration: its card points
// plus a bonus for trump length beyond three.
func (b *CountingBot) handStrength(hand []domain.Card, decl domain.Declaration) int {
	strength := 0
	trumps := 0
	for _, c := range hand {
		strength += domain.CardPoints(c, decl)
		if domain.IsTrump(c.Suit, decl) {
			trumps++
		}
	}
	if _, ok := decl.TrumpSuit(); ok && trumps > 3 {
		strength += (trumps - 3) * b.Tuning.TrumpLengthBonus
	}
	return strength
}

// bestDeclaration returns the declaration the hand is strongest under.
func (b *CountingBot) bestDeclaration(hand []domain.Card) (domain.Declaration, int) {
	best := domain.DeclSpades
	bestStrength := -1
	for d := domain.DeclSpades; d <= domain.DeclAllTrump; d++ {
		if s := b.handStrength(hand, d); s > bestStrength {
			best, bestStrength = d, s
		}
	}
	return best, bestStrength
}

func (b *CountingBot) ProposeBid(round *domain.Round, seat domain.Seat) (domain.BidProposal, error) {
	decl, strength := b.bestDeclaration(round.Hands[seat])
	best := round.Auction.Best

	if strength >= b.Tuning.OpeningThreshold {
		points := domain.MinBidPoints +
			(strength-b.Tuning.OpeningThreshold)/b.Tuning.StepStrength*domain.BidStep
		if points > domain.MaxBidPoints {
			points = domain.MaxBidPoints
		}
		switch {
		case best == nil:
			return domain.BidProposal{Action: domain.ActionRaise, Points: points, Declaration: decl}, nil
		case best.Seat.Team() == seat.Team():
			// Partner raises stand.
			return domain.BidProposal{Action: domain.ActionPass}, nil
		case points > best.Points:
			return domain.BidProposal{
				Action: domain.ActionRaise, Points: best.Points + domain.BidStep, Declaration: decl,
			}, nil
		}
	}

	// Double an opposing contract this hand can realistically defend down.
	if best != nil && best.Seat.Team() != seat.Team() &&
		strength >= b.Tuning.OpeningThreshold+b.Tuning.CoincheMargin {
		return domain.BidProposal{Action: domain.ActionCoinche}, nil
	}
	return domain.BidProposal{Action: domain.ActionPass}, nil
}

func (b *CountingBot) ChooseCard(round *domain.Round, seat domain.Seat) (domain.Card, error) {
	legal := round.LegalPlays(seat)
	if len(legal) == 0 {
		return domain.Card{}, ErrNoLegalPlay
	}
	decl := round.Contract.Declaration

	winner, open := round.CurrentWinner()
	if !open {
		// Leading: put out the strongest card.
		return highestCard(legal, decl), nil
	}
	if winner.Seat.Team() == seat.Team() {
		// Partner holds the trick; keep strong cards back.
		return lowestCard(legal, decl), nil
	}

	// Take the trick with the cheapest card that wins it, otherwise throw
	// the cheapest card away.
	var cheapest *domain.Card
	for i, c := range legal {
		after := append(append([]domain.TrickPlay(nil), round.Trick...),
			domain.TrickPlay{Seat: seat, Card: c})
		probe := &domain.Round{Trick: after, Contract: round.Contract}
		if w, _ := probe.CurrentWinner(); w.Seat != seat {
			continue
		}
		if cheapest == nil || domain.CardPoints(c, decl) < domain.CardPoints(*cheapest, decl) {
			cheapest = &legal[i]
		}
	}
	if cheapest != nil {
		return *cheapest, nil
	}
	return lowestCard(legal, decl), nil
}

func highestCard(cards []domain.Card, decl domain.Declaration) domain.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if domain.CardPoints(c, decl) > domain.CardPoints(best, decl) {
			best = c
		}
	}
	return best
}

func lowestCard(cards []domain.Card, decl domain.Declaration) domain.Card {
	best := cards[0]
	for _, c := range cards[1:] {
		if domain.CardPoints(c, decl) < domain.CardPoints(best, decl) {
			best = c
		}
	}
	return best
}
