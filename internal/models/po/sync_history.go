package po

import (
	"time"

	"github.com/google/uuid"
)

// HistoryStatus is the state of a single sync attempt.
type HistoryStatus string

const (
	HistoryStatusRunning   HistoryStatus = "running"
	HistoryStatusCompleted HistoryStatus = "completed"
	HistoryStatusFailed    HistoryStatus = "failed"
)

// SyncHistory maps a row of educator_sync_history.
// One row is created per per-educator attempt and finalized when the attempt ends.
type SyncHistory struct {
	ID           uuid.UUID
	EducatorID   uuid.UUID
	Status       HistoryStatus
	StartedAt    time.Time
	CompletedAt  *time.Time
	VideosSynced int
	APIQuotaUsed int
	ErrorMessage *string
}
