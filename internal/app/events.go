package app

import "coinche/internal/domain"

// EventKind identifies emitted domain events for Nakama dispatch.
type EventKind string

const (
	EventRoundStarted    EventKind = "round_started"
	EventRoundDealt      EventKind = "round_dealt"
	EventBidPlaced       EventKind = "bid_placed"
	EventAuctionFinished EventKind = "auction_finished"
	EventRedealRequired  EventKind = "redeal_required"
	EventCardPlayed      EventKind = "card_played"
	EventTrickWon        EventKind = "trick_won"
	EventRoundEnded      EventKind = "round_ended"
)

// Event is a domain/app event with optional targeted recipients.
type Event struct {
	Kind       EventKind
	Payload    any
	Recipients []string // user IDs; empty means broadcast
}

// RoundStartedPayload announces a fresh deal to the whole table.
type RoundStartedPayload struct {
	Dealer int `json:"dealer"`
	Opener int `json:"opener"`
}

// RoundDealtPayload is sent privately to each seat with its own hand.
type RoundDealtPayload struct {
	Seat   int           `json:"seat"`
	Dealer int           `json:"dealer"`
	Hand   []domain.Card `json:"hand"`
	Opener int           `json:"opener"`
}

type BidPlacedPayload struct {
	Bid      domain.Bid `json:"bid"`
	NextTurn int        `json:"next_turn"`
}

type AuctionFinishedPayload struct {
	Contract  domain.Contract `json:"contract"`
	FirstTurn int             `json:"first_turn"`
}

// RedealRequiredPayload signals four opening passes; the next deal rotates
// the dealer one seat.
type RedealRequiredPayload struct {
	NextDealer int `json:"next_dealer"`
}

type CardPlayedPayload struct {
	Seat     int         `json:"seat"`
	Card     domain.Card `json:"card"`
	NextTurn int         `json:"next_turn"`
}

type TrickWonPayload struct {
	Winner int `json:"winner"`
	Team   int `json:"team"`
}

type RoundEndedPayload struct {
	Score      domain.Score      `json:"score"`
	Settlement domain.Settlement `json:"settlement"`
}
