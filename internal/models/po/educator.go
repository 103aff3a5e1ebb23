// Package po defines persistent objects used by the repository layer.
// Each type mirrors one table; services never expose them over the wire directly.
package po

import (
	"time"

	"github.com/google/uuid"
)

// SyncStatus is the educator-level sync bookkeeping state.
type SyncStatus string

const (
	SyncStatusPending    SyncStatus = "pending"     // never synced, or reset by an admin
	SyncStatusInProgress SyncStatus = "in_progress" // claimed by a running batch
	SyncStatusCompleted  SyncStatus = "completed"   // last attempt succeeded
	SyncStatusFailed     SyncStatus = "failed"      // last attempt failed, see LastSyncError
)

// Valid reports whether s is one of the known statuses.
func (s SyncStatus) Valid() bool {
	switch s {
	case SyncStatusPending, SyncStatusInProgress, SyncStatusCompleted, SyncStatusFailed:
		return true
	default:
		return false
	}
}

// SubscriberPoint is one element of the append-only subscriber history.
type SubscriberPoint struct {
	Count      int64     `json:"count"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Educator maps a row of the educators table.
// Rows are created out of band by admins; the sync job only mutates them.
type Educator struct {
	// ============================================
	// identity
	// ============================================
	ID          uuid.UUID `db:"id"`
	ChannelID   string    `db:"channel_id"`   // external YouTube channel id (UC...)
	DisplayName string    `db:"display_name"` // admin-entered name

	// ============================================
	// sync bookkeeping
	// ============================================
	SyncStatus    SyncStatus `db:"sync_status"`
	LastSyncedAt  *time.Time `db:"last_synced_at"` // watermark, nil before the first successful sync
	LastSyncError *string    `db:"last_sync_error"`

	// ============================================
	// aggregate channel stats
	// ============================================
	SubscriberCount   *int64            `db:"subscriber_count"`
	TotalViewCount    *int64            `db:"total_view_count"`
	TotalVideoCount   *int64            `db:"total_video_count"`
	Country           *string           `db:"country"`
	ChannelJoinedAt   *time.Time        `db:"channel_joined_at"`
	SubscriberHistory []SubscriberPoint `db:"subscriber_history"`

	// derived upload cadence, nil until at least two videos are stored
	AvgUploadFrequencyDays *float64 `db:"avg_upload_frequency_days"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
