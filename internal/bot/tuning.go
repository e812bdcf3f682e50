package bot

// BotTuning holds the thresholds the counting strategy bids with. Hand
// strength is the sum of hand card points under a candidate declaration
// plus the trump length bonus.
type BotTuning struct {
	// OpeningThreshold is the minimum hand strength to open at 80.
	OpeningThreshold int
	// StepStrength is the extra strength required per 10-point raise
	// above the minimum bid.
	StepStrength int
	// TrumpLengthBonus is added per trump card beyond the third.
	TrumpLengthBonus int
	// CoincheMargin is how far below its own opening threshold a hand must
	// sit before the bot doubles an opposing contract.
	CoincheMargin int
}

// DefaultTuning is calibrated so a bare average hand (a quarter of the
// deck's points) stays quiet.
var DefaultTuning = BotTuning{
	OpeningThreshold: 45,
	StepStrength:     8,
	TrumpLengthBonus: 6,
	CoincheMargin:    20,
}
