package nakama

import (
	"context"
	"encoding/json"
	"fmt"

	"coinche/internal/domain"
	"coinche/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

const roundStoreCollection = "rounds"

// NakamaRoundStoreAdapter persists round snapshots under the system user so
// match handlers can recover an interrupted round.
type NakamaRoundStoreAdapter struct {
	nk runtime.NakamaModule
}

// NewNakamaRoundStoreAdapter creates a new round store adapter.
func NewNakamaRoundStoreAdapter(nk runtime.NakamaModule) *NakamaRoundStoreAdapter {
	return &NakamaRoundStoreAdapter{nk: nk}
}

// SaveRound writes the snapshot for the given match, replacing any previous one.
func (a *NakamaRoundStoreAdapter) SaveRound(ctx context.Context, matchID string, snapshot domain.Snapshot) error {
	value, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal round snapshot: %w", err)
	}

	writes := []*runtime.StorageWrite{
		{
			Collection:      roundStoreCollection,
			Key:             matchID,
			Value:           string(value),
			PermissionRead:  runtime.STORAGE_PERMISSION_NO_READ,
			PermissionWrite: runtime.STORAGE_PERMISSION_NO_WRITE,
		},
	}
	if _, err := a.nk.StorageWrite(ctx, writes); err != nil {
		return fmt.Errorf("failed to write round snapshot for match %s: %w", matchID, err)
	}
	return nil
}

// LoadRound reads the snapshot for the given match. Returns found=false when
// no snapshot exists.
func (a *NakamaRoundStoreAdapter) LoadRound(ctx context.Context, matchID string) (domain.Snapshot, bool, error) {
	reads := []*runtime.StorageRead{
		{
			Collection: roundStoreCollection,
			Key:        matchID,
		},
	}
	objects, err := a.nk.StorageRead(ctx, reads)
	if err != nil {
		return domain.Snapshot{}, false, fmt.Errorf("failed to read round snapshot for match %s: %w", matchID, err)
	}
	if len(objects) == 0 {
		return domain.Snapshot{}, false, nil
	}

	var snapshot domain.Snapshot
	if err := json.Unmarshal([]byte(objects[0].Value), &snapshot); err != nil {
		return domain.Snapshot{}, false, fmt.Errorf("failed to unmarshal round snapshot for match %s: %w", matchID, err)
	}
	return snapshot, true, nil
}

// DeleteRound removes the stored snapshot for the given match.
func (a *NakamaRoundStoreAdapter) DeleteRound(ctx context.Context, matchID string) error {
	deletes := []*runtime.StorageDelete{
		{
			Collection: roundStoreCollection,
			Key:        matchID,
		},
	}
	if err := a.nk.StorageDelete(ctx, deletes); err != nil {
		return fmt.Errorf("failed to delete round snapshot for match %s: %w", matchID, err)
	}
	return nil
}

var _ ports.RoundStorePort = (*NakamaRoundStoreAdapter)(nil)
