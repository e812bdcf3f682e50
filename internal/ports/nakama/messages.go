package nakama

import (
	"fmt"

	"coinche/internal/domain"
)

// Wire messages exchanged with clients. Everything is JSON; card, bid and
// score shapes reuse the domain's own JSON forms.

// ProposeBidRequest is the client payload for OpProposeBid.
type ProposeBidRequest struct {
	Action      string `json:"action"` // pass | raise | coinche | surcoinche
	Points      int    `json:"points,omitempty"`
	Declaration int    `json:"declaration,omitempty"`
}

// Proposal converts the wire request into a domain proposal.
func (r ProposeBidRequest) Proposal() (domain.BidProposal, error) {
	var action domain.BidAction
	switch r.Action {
	case "pass":
		action = domain.ActionPass
	case "raise":
		action = domain.ActionRaise
	case "coinche":
		action = domain.ActionCoinche
	case "surcoinche":
		action = domain.ActionSurcoinche
	default:
		return domain.BidProposal{}, fmt.Errorf("unknown bid action %q", r.Action)
	}
	return domain.BidProposal{
		Action:      action,
		Points:      r.Points,
		Declaration: domain.Declaration(r.Declaration),
	}, nil
}

// PlayCardRequest is the client payload for OpPlayCard.
type PlayCardRequest struct {
	Card domain.Card `json:"card"`
}

// PlayerState describes one seat in the lobby snapshot.
type PlayerState struct {
	UserID      string `json:"user_id"`
	Seat        int    `json:"seat"`
	IsOwner     bool   `json:"is_owner"`
	IsBot       bool   `json:"is_bot"`
	DisplayName string `json:"display_name"`
}

// MatchStateMessage is broadcast whenever seating changes and on demand via
// OpQueryState.
type MatchStateMessage struct {
	Seats      []string      `json:"seats"`
	OwnerSeat  int           `json:"owner_seat"`
	Dealer     int           `json:"dealer"`
	Phase      string        `json:"phase"` // lobby | auction | play | done
	Players    []PlayerState `json:"players"`
	TeamScores [2]int        `json:"team_scores"`
	Turn       int           `json:"turn"`

	// Populated while a round is running so reconnecting clients can
	// redraw the table: the open trick and the standing contract.
	Trick    []domain.TrickPlay `json:"trick,omitempty"`
	Contract *domain.Contract   `json:"contract,omitempty"`
}

// RoundEndedMessage carries the round verdict plus the running match scores
// and settled chip movements.
type RoundEndedMessage struct {
	Score          domain.Score      `json:"score"`
	Settlement     domain.Settlement `json:"settlement"`
	TeamScores     [2]int            `json:"team_scores"`
	BalanceChanges map[string]int64  `json:"balance_changes"`
}

// MatchWonMessage announces that a team reached the target score.
type MatchWonMessage struct {
	Team       int    `json:"team"`
	TeamScores [2]int `json:"team_scores"`
}

// GameErrorMessage is sent privately to the actor whose request was
// rejected.
type GameErrorMessage struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// MatchLabel is the JSON label Nakama indexes for match listing.
type MatchLabel struct {
	Open  int    `json:"open"`
	Game  string `json:"game"`
	Phase string `json:"phase"`
}
