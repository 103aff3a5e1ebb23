// Package vo defines view objects returned by the service layer.
package vo

import (
	"time"

	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/models/po"

	"github.com/google/uuid"
)

// EducatorSyncResult summarizes one per-educator attempt.
type EducatorSyncResult struct {
	EducatorID   uuid.UUID        `json:"educator_id"`
	ChannelID    string           `json:"channel_id"`
	HistoryID    uuid.UUID        `json:"history_id"`
	Status       po.HistoryStatus `json:"status"`
	VideosSynced int              `json:"videos_synced"`
	QuotaUsed    int              `json:"api_quota_used"`
	Error        string           `json:"error,omitempty"`
	StartedAt    time.Time        `json:"started_at"`
	CompletedAt  time.Time        `json:"completed_at"`
}

// Failed reports whether the attempt ended in failure.
func (r *EducatorSyncResult) Failed() bool {
	return r != nil && r.Status == po.HistoryStatusFailed
}

// SyncBatchReport aggregates the outcome of one orchestrator invocation.
type SyncBatchReport struct {
	Results   []*EducatorSyncResult `json:"results"`
	Succeeded int                   `json:"succeeded"`
	Failed    int                   `json:"failed"`
	StartedAt time.Time             `json:"started_at"`
	Duration  time.Duration         `json:"duration"`

	// Interrupted is set when the invocation context ended before every selected
	// educator was attempted; Skipped counts the ones left for the next run.
	Interrupted bool `json:"interrupted,omitempty"`
	Skipped     int  `json:"skipped,omitempty"`
}

// Add appends a result and updates the counters.
func (r *SyncBatchReport) Add(res *EducatorSyncResult) {
	if res == nil {
		return
	}
	r.Results = append(r.Results, res)
	if res.Failed() {
		r.Failed++
		return
	}
	r.Succeeded++
}

// Processed returns how many educators were attempted.
func (r *SyncBatchReport) Processed() int {
	return len(r.Results)
}
