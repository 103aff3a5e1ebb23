package services

import (
	"context"
	"fmt"
	"time"

	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/clients/youtube"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/models/po"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/repositories"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
)

// StatsWriter persists fetched platform data.
//
// Writes are issued one statement at a time without a surrounding transaction; a
// failure part way leaves the earlier writes in place.
type StatsWriter struct {
	educators  EducatorStore
	videos     VideoStore
	engagement EngagementStore
	log        *log.Helper
	now        func() time.Time
}

// NewStatsWriter constructs a StatsWriter.
func NewStatsWriter(educators EducatorStore, videos VideoStore, engagement EngagementStore, logger log.Logger) *StatsWriter {
	return &StatsWriter{
		educators:  educators,
		videos:     videos,
		engagement: engagement,
		log:        log.NewHelper(logger),
		now:        time.Now,
	}
}

// WriteChannelStats updates the educator aggregates and appends one subscriber history point.
func (w *StatsWriter) WriteChannelStats(ctx context.Context, educatorID uuid.UUID, stats *youtube.ChannelStats) error {
	if stats == nil {
		return fmt.Errorf("write channel stats: stats are required")
	}
	return w.educators.UpdateChannelStats(ctx, educatorID, repositories.ChannelStatsUpdate{
		SubscriberCount: stats.SubscriberCount,
		TotalViewCount:  stats.ViewCount,
		TotalVideoCount: stats.VideoCount,
		Country:         stats.Country,
		ChannelJoinedAt: stats.PublishedAt,
		RecordedAt:      w.now().UTC(),
	})
}

// WriteVideos upserts each video and appends one engagement snapshot per video.
// It returns how many videos were fully written before the first error.
func (w *StatsWriter) WriteVideos(ctx context.Context, channelID string, details []youtube.VideoDetail) (int, error) {
	written := 0
	for i := range details {
		video := videoFromDetail(channelID, &details[i])
		if err := w.videos.Upsert(ctx, video); err != nil {
			return written, fmt.Errorf("write video %s: %w", video.VideoID, err)
		}
		snap := &po.EngagementSnapshot{
			VideoID:      video.VideoID,
			ViewCount:    video.ViewCount,
			LikeCount:    video.LikeCount,
			CommentCount: video.CommentCount,
		}
		if err := w.engagement.Append(ctx, snap); err != nil {
			return written, fmt.Errorf("write engagement snapshot %s: %w", video.VideoID, err)
		}
		written++
	}
	w.log.WithContext(ctx).Debugf("stats writer: channel=%s videos=%d", channelID, written)
	return written, nil
}

func videoFromDetail(channelID string, d *youtube.VideoDetail) *po.Video {
	v := &po.Video{
		VideoID:         d.ID,
		ChannelID:       d.ChannelID,
		Title:           d.Title,
		Description:     d.Description,
		Tags:            append([]string(nil), d.Tags...),
		CategoryID:      optionalString(d.CategoryID),
		DefaultLanguage: optionalString(d.DefaultLanguage),
		Duration:        d.Duration,
		DurationSeconds: d.DurationSeconds,
		ViewCount:       d.ViewCount,
		LikeCount:       d.LikeCount,
		CommentCount:    d.CommentCount,
		HasCaptions:     d.HasCaptions,
		PublishedAt:     d.PublishedAt,
	}
	if v.ChannelID == "" {
		v.ChannelID = channelID
	}
	if len(d.Thumbnails) > 0 {
		v.Thumbnails = po.Thumbnails(d.Thumbnails)
	}
	return v
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
