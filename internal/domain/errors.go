package domain

import "errors"

// Rejection reasons. Every engine operation either fully applies or returns
// one of these with the state untouched; callers relay the reason and may
// retry with a corrected action.
var (
	ErrOutOfTurn           = errors.New("not this seat's turn")
	ErrInvalidBid          = errors.New("invalid bid value")
	ErrAuctionFinished     = errors.New("auction already finished")
	ErrNothingToCoinche    = errors.New("nothing to coinche")
	ErrNothingToSurcoinche = errors.New("nothing to surcoinche")
	ErrWrongPhase          = errors.New("operation not valid in this phase")
	ErrCardNotInHand       = errors.New("card not in hand")
)

// PlayRule identifies which legality rule a rejected card play violated.
type PlayRule int

const (
	RuleFollowSuit PlayRule = iota
	RuleForcedTrump
	RuleOverTrump
)

func (r PlayRule) String() string {
	switch r {
	case RuleFollowSuit:
		return "must follow suit"
	case RuleForcedTrump:
		return "must play trump"
	case RuleOverTrump:
		return "must play a higher trump"
	default:
		return "illegal play"
	}
}

// IllegalPlayError rejects a card play that breaks a trick-play rule.
type IllegalPlayError struct {
	Rule PlayRule
}

func (e *IllegalPlayError) Error() string {
	return "illegal play: " + e.Rule.String()
}
