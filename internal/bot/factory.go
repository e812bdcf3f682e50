package bot

import (
	"fmt"
	"math/rand"
)

// BotLevel selects a strategy difficulty.
type BotLevel int

const (
	BotLevelEasy BotLevel = iota
	BotLevelSmart
)

// LevelFromDifficulty maps an identity difficulty string to a level.
func LevelFromDifficulty(difficulty string) BotLevel {
	if difficulty == "easy" {
		return BotLevelEasy
	}
	return BotLevelSmart
}

// NewAgent builds an agent for a provisioned bot identity, picking the
// strategy from its configured difficulty.
func NewAgent(userID string) (*Agent, error) {
	identity, ok := GetBotConfig(userID)
	if !ok {
		identity = BotIdentity{UserID: userID, Difficulty: "smart"}
	}
	brain, err := NewBrain(LevelFromDifficulty(identity.Difficulty), nil)
	if err != nil {
		return nil, err
	}
	return &Agent{
		ID:       userID,
		Name:     GetBotDisplayName(userID),
		Strategy: brain,
	}, nil
}

// NewBrain creates a new AI brain based on the specified level.
func NewBrain(level BotLevel, rng *rand.Rand) (Brain, error) {
	switch level {
	case BotLevelEasy:
		return &RandomBot{Rng: rng}, nil
	case BotLevelSmart:
		return NewCountingBot(), nil
	default:
		return nil, fmt.Errorf("unknown bot level: %d", level)
	}
}
