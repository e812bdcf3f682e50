package ports

import (
	"context"

	"coinche/internal/domain"
)

// RoundStorePort persists round snapshots keyed by match ID so a finished
// or interrupted round can be reconstructed later.
type RoundStorePort interface {
	// SaveRound writes the snapshot for the given match, replacing any
	// previous one.
	SaveRound(ctx context.Context, matchID string, snapshot domain.Snapshot) error

	// LoadRound reads the snapshot for the given match.
	// Returns found=false when no snapshot exists.
	LoadRound(ctx context.Context, matchID string) (domain.Snapshot, bool, error)

	// DeleteRound removes the stored snapshot for the given match.
	DeleteRound(ctx context.Context, matchID string) error
}
