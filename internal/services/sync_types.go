package services

import (
	"context"
	"fmt"
	"time"

	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/clients/youtube"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/models/po"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/models/vo"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/repositories"

	"github.com/google/uuid"
)

const (
	defaultBatchSize     = 5
	defaultStaleAfter    = 24 * time.Hour
	defaultCadenceWindow = 50
)

// SyncConfig is the explicit configuration handed to the orchestrator at construction.
// Credentials are consumed by the wiring that builds the platform client and the pool.
type SyncConfig struct {
	PlatformAPIKey  string
	StoreURL        string
	StoreCredential string

	BatchSize     int           // educators claimed per invocation
	StaleAfter    time.Duration // watermark age that makes an educator due again
	CadenceWindow int           // newest videos considered for upload cadence
}

// Validate checks the required credentials.
func (c SyncConfig) Validate() error {
	if c.PlatformAPIKey == "" {
		return fmt.Errorf("sync config: platform api key is required")
	}
	if c.StoreURL == "" {
		return fmt.Errorf("sync config: store url is required")
	}
	return nil
}

func (c SyncConfig) withDefaults() SyncConfig {
	if c.BatchSize <= 0 {
		c.BatchSize = defaultBatchSize
	}
	if c.StaleAfter <= 0 {
		c.StaleAfter = defaultStaleAfter
	}
	if c.CadenceWindow <= 0 {
		c.CadenceWindow = defaultCadenceWindow
	}
	return c
}

// EducatorStore is the educator persistence the orchestrator needs.
type EducatorStore interface {
	ListDueForSync(ctx context.Context, staleBefore time.Time, limit int) ([]*po.Educator, error)
	MarkInProgress(ctx context.Context, id uuid.UUID) error
	MarkCompleted(ctx context.Context, id uuid.UUID, syncedAt time.Time) error
	MarkFailed(ctx context.Context, id uuid.UUID, message string) error
	UpdateChannelStats(ctx context.Context, id uuid.UUID, in repositories.ChannelStatsUpdate) error
	UpdateUploadFrequency(ctx context.Context, id uuid.UUID, avgDays *float64) error
}

// VideoStore is the video persistence the writer needs.
type VideoStore interface {
	Upsert(ctx context.Context, v *po.Video) error
	ListRecentPublishedAt(ctx context.Context, channelID string, limit int) ([]time.Time, error)
}

// EngagementStore appends engagement snapshots.
type EngagementStore interface {
	Append(ctx context.Context, snap *po.EngagementSnapshot) error
}

// SyncHistoryStore records per-attempt history rows.
type SyncHistoryStore interface {
	Start(ctx context.Context, educatorID uuid.UUID, startedAt time.Time) (*po.SyncHistory, error)
	Complete(ctx context.Context, id uuid.UUID, videosSynced, quotaUsed int, completedAt time.Time) error
	Fail(ctx context.Context, id uuid.UUID, message string, quotaUsed int, completedAt time.Time) error
}

// ChannelPlatform is the external video platform.
type ChannelPlatform interface {
	FetchChannelStats(ctx context.Context, channelID string) (*youtube.ChannelStats, error)
	ResolveUploadsPlaylist(ctx context.Context, channelID string) (string, error)
	ListVideoIDsSince(ctx context.Context, playlistID string, since *time.Time) ([]string, error)
	FetchVideoDetails(ctx context.Context, ids []string) ([]youtube.VideoDetail, error)
}

// SyncEventPublisher announces per-educator outcomes. Optional.
type SyncEventPublisher interface {
	PublishSyncResult(ctx context.Context, result *vo.EducatorSyncResult) error
}

var (
	_ EducatorStore    = (*repositories.EducatorRepository)(nil)
	_ VideoStore       = (*repositories.VideoRepository)(nil)
	_ EngagementStore  = (*repositories.EngagementHistoryRepository)(nil)
	_ SyncHistoryStore = (*repositories.SyncHistoryRepository)(nil)
	_ ChannelPlatform  = (*youtube.Client)(nil)
)
