package domain

// Score holds the per-team totals for a completed round.
type Score struct {
	// CardPoints is each team's collected card value under the contract's
	// valuation table, excluding the last-trick bonus.
	CardPoints [NumTeams]int `json:"card_points"`
	// LastTrick is the team that took the final trick and the 10-point
	// bonus.
	LastTrick Team `json:"last_trick"`
	// Totals is CardPoints plus the bonus.
	Totals [NumTeams]int `json:"totals"`
}

// Settlement is the contract verdict for a completed round.
type Settlement struct {
	// Awards is the settled score per team: bid x multiplier to a
	// successful bidding team, otherwise 160 x multiplier to the defenders.
	Awards     [NumTeams]int `json:"awards"`
	Success    bool          `json:"success"`
	Multiplier int           `json:"multiplier"`
}

// ComputeScores totals each team's collected cards under the contract's
// valuation table and credits the last-trick bonus. Only valid once the
// round is done.
func (r *Round) ComputeScores() (Score, error) {
	if r.Phase != PhaseDone || r.Contract == nil || r.LastTrickWinner == nil {
		return Score{}, ErrWrongPhase
	}
	var score Score
	for team := TeamNorthSouth; team < NumTeams; team++ {
		for _, c := range r.Won[team] {
			score.CardPoints[team] += CardPoints(c, r.Contract.Declaration)
		}
	}
	score.LastTrick = r.LastTrickWinner.Team()
	score.Totals = score.CardPoints
	score.Totals[score.LastTrick] += LastTrickBonus
	return score, nil
}

// SettleContract decides the contract and distributes the stakes. The
// bidding team succeeds when its total reaches both the bid and the
// 82-point floor; otherwise the defenders collect 160, scaled by the
// coinche/surcoinche multiplier either way.
func (r *Round) SettleContract() (Settlement, error) {
	score, err := r.ComputeScores()
	if err != nil {
		return Settlement{}, err
	}
	bidders := r.Contract.Seat.Team()
	settlement := Settlement{
		Success:    score.Totals[bidders] >= r.Contract.Points && score.Totals[bidders] >= ContractFloor,
		Multiplier: r.Contract.Multiplier,
	}
	if settlement.Success {
		settlement.Awards[bidders] = r.Contract.Points * settlement.Multiplier
	} else {
		settlement.Awards[bidders.Other()] = MaxBidPoints * settlement.Multiplier
	}
	return settlement, nil
}
