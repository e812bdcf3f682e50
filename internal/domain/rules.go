package domain

// beats reports whether candidate c takes the trick from the current best
// card b. Comparison follows the active valuation table: a trump beats any
// non-trump and a lower trump, and otherwise only a strictly higher card of
// the same suit wins. Under all-trump and no-trump there is no cross-suit
// trumping, so only lead-suit cards contend.
func beats(c, b Card, d Declaration) bool {
	if t, ok := d.TrumpSuit(); ok {
		switch {
		case c.Suit == t && b.Suit != t:
			return true
		case b.Suit == t && c.Suit != t:
			return false
		}
	}
	if c.Suit != b.Suit {
		return false
	}
	return CardPoints(c, d) > CardPoints(b, d)
}

// winningPlayIndex returns the index of the play currently holding the
// trick. The first card fixes the lead suit.
func winningPlayIndex(trick []TrickPlay, d Declaration) int {
	best := 0
	for i := 1; i < len(trick); i++ {
		if beats(trick[i].Card, trick[best].Card, d) {
			best = i
		}
	}
	return best
}

func hasSuit(hand []Card, s Suit) bool {
	for _, c := range hand {
		if c.Suit == s {
			return true
		}
	}
	return false
}

// holdsStronger reports whether hand contains a card of suit s strictly
// stronger than b under the active table.
func holdsStronger(hand []Card, s Suit, b Card, d Declaration) bool {
	for _, c := range hand {
		if c.Suit == s && CardPoints(c, d) > CardPoints(b, d) {
			return true
		}
	}
	return false
}

// bestOfSuit returns the strongest card of suit s already in the trick.
func bestOfSuit(trick []TrickPlay, s Suit, d Declaration) (Card, bool) {
	var best Card
	found := false
	for _, tp := range trick {
		if tp.Card.Suit != s {
			continue
		}
		if !found || CardPoints(tp.Card, d) > CardPoints(best, d) {
			best = tp.Card
			found = true
		}
	}
	return best, found
}

// CurrentWinner returns the play holding the open trick. ok is false while
// the trick is empty.
func (r *Round) CurrentWinner() (TrickPlay, bool) {
	if len(r.Trick) == 0 || r.Contract == nil {
		return TrickPlay{}, false
	}
	return r.Trick[winningPlayIndex(r.Trick, r.Contract.Declaration)], true
}

// validatePlay enforces the three trick-play rules against the cards
// already on the table and the seat's remaining hand. It never mutates
// state.
func (r *Round) validatePlay(seat Seat, card Card) error {
	if len(r.Trick) == 0 {
		return nil // any lead is legal
	}
	d := r.Contract.Declaration
	lead := r.Trick[0].Card.Suit
	hand := r.Hands[seat]

	if hasSuit(hand, lead) {
		if card.Suit != lead {
			return &IllegalPlayError{Rule: RuleFollowSuit}
		}
		// When the lead suit plays as trump the follower must climb over
		// the strongest trump on the table if able.
		if IsTrump(lead, d) {
			best, _ := bestOfSuit(r.Trick, lead, d)
			if CardPoints(card, d) < CardPoints(best, d) && holdsStronger(hand, lead, best, d) {
				return &IllegalPlayError{Rule: RuleOverTrump}
			}
		}
		return nil
	}

	// Void in the lead suit. Only suit contracts have a trump suit to force;
	// under all-trump every card already is trump and under no-trump none is.
	t, ok := r.Contract.Declaration.TrumpSuit()
	if !ok || !hasSuit(hand, t) {
		return nil
	}

	if card.Suit != t {
		// No obligation to trump over one's own partner. The current winner
		// is recomputed with the full trick resolution rule.
		winner := r.Trick[winningPlayIndex(r.Trick, d)].Seat
		if winner.Team() == seat.Team() {
			return nil
		}
		return &IllegalPlayError{Rule: RuleForcedTrump}
	}

	// Trumping in: a strictly lower trump is illegal while a higher one is
	// available.
	if best, found := bestOfSuit(r.Trick, t, d); found {
		if CardPoints(card, d) < CardPoints(best, d) && holdsStronger(hand, t, best, d) {
			return &IllegalPlayError{Rule: RuleOverTrump}
		}
	}
	return nil
}

// LegalPlays returns the cards seat may play into the current trick. It is
// the same predicate PlayCard enforces, exposed for external drivers.
func (r *Round) LegalPlays(seat Seat) []Card {
	if r.Phase != PhasePlay {
		return nil
	}
	var out []Card
	for _, c := range r.Hands[seat] {
		if r.validatePlay(seat, c) == nil {
			out = append(out, c)
		}
	}
	return out
}
