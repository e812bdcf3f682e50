package app

import (
	"errors"
	"math/rand"
	"time"

	"coinche/internal/domain"
)

// Service contains coinche use-cases operating on domain state.
type Service struct {
	rng *rand.Rand
}

// NewService constructs a Service with provided rng or a time-seeded default.
func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

var (
	ErrNotInLobby    = errors.New("match not in lobby")
	ErrNoActiveRound = errors.New("no active round")
	ErrTooFewPlayers = errors.New("need four seated players to start")
	ErrUnknownPlayer = errors.New("player not found")
)

// StartRound deals a fresh round for the four seated players and emits a
// round_started broadcast followed by a private round_dealt event per seat.
// playerIDs is indexed by seat.
func (s *Service) StartRound(playerIDs [domain.NumSeats]string, dealer domain.Seat) (*domain.Round, []Event, error) {
	for _, userID := range playerIDs {
		if userID == "" {
			return nil, nil, ErrTooFewPlayers
		}
	}

	round := domain.NewRound(playerIDs, dealer, s.rng)

	events := make([]Event, 0, domain.NumSeats+1)
	events = append(events, Event{
		Kind: EventRoundStarted,
		Payload: RoundStartedPayload{
			Dealer: int(dealer),
			Opener: int(round.Turn),
		},
	})
	for seat, userID := range playerIDs {
		events = append(events, Event{
			Kind: EventRoundDealt,
			Payload: RoundDealtPayload{
				Seat:   seat,
				Dealer: int(dealer),
				Hand:   round.Hands[seat],
				Opener: int(round.Turn),
			},
			Recipients: []string{userID},
		})
	}
	return round, events, nil
}

// ProposeBid applies one auction action for the given user and emits the
// resulting events. Domain rejections pass through unchanged so the caller
// can relay the reason to the actor.
func (s *Service) ProposeBid(round *domain.Round, actorUserID string, proposal domain.BidProposal) ([]Event, error) {
	if round == nil {
		return nil, ErrNoActiveRound
	}
	seat, ok := round.SeatOf(actorUserID)
	if !ok {
		return nil, ErrUnknownPlayer
	}
	if err := round.ProposeBid(seat, proposal); err != nil {
		return nil, err
	}

	bids := round.Auction.Bids
	events := []Event{{
		Kind: EventBidPlaced,
		Payload: BidPlacedPayload{
			Bid:      bids[len(bids)-1],
			NextTurn: int(round.Turn),
		},
	}}

	switch {
	case round.NeedsRedeal():
		events = append(events, Event{
			Kind:    EventRedealRequired,
			Payload: RedealRequiredPayload{NextDealer: int(round.Dealer.Next())},
		})
	case round.Contract != nil:
		events = append(events, Event{
			Kind: EventAuctionFinished,
			Payload: AuctionFinishedPayload{
				Contract:  *round.Contract,
				FirstTurn: int(round.Dealer.Next()),
			},
		})
	}
	return events, nil
}

// PlayCard applies one card play for the given user. A completed trick adds
// a trick_won event; the final trick additionally settles the contract and
// emits round_ended.
func (s *Service) PlayCard(round *domain.Round, actorUserID string, card domain.Card) ([]Event, error) {
	if round == nil {
		return nil, ErrNoActiveRound
	}
	seat, ok := round.SeatOf(actorUserID)
	if !ok {
		return nil, ErrUnknownPlayer
	}
	winner, err := round.PlayCard(seat, card)
	if err != nil {
		return nil, err
	}

	events := []Event{{
		Kind: EventCardPlayed,
		Payload: CardPlayedPayload{
			Seat:     int(seat),
			Card:     card,
			NextTurn: int(round.Turn),
		},
	}}
	if winner != nil {
		events = append(events, Event{
			Kind: EventTrickWon,
			Payload: TrickWonPayload{
				Winner: int(*winner),
				Team:   int(winner.Team()),
			},
		})
	}

	if round.Phase == domain.PhaseDone {
		score, err := round.ComputeScores()
		if err != nil {
			return nil, err
		}
		settlement, err := round.SettleContract()
		if err != nil {
			return nil, err
		}
		events = append(events, Event{
			Kind: EventRoundEnded,
			Payload: RoundEndedPayload{
				Score:      score,
				Settlement: settlement,
			},
		})
	}
	return events, nil
}
