package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/models/po"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// VideoRepository maintains educator_videos, keyed by the external video id.
type VideoRepository struct {
	db  *pgxpool.Pool
	log *log.Helper
}

// NewVideoRepository 构造 VideoRepository。
func NewVideoRepository(db *pgxpool.Pool, logger log.Logger) *VideoRepository {
	return &VideoRepository{
		db:  db,
		log: log.NewHelper(logger),
	}
}

// Upsert inserts the video or overwrites every non-key column of the existing row.
// Re-running with identical input never creates a second row.
func (r *VideoRepository) Upsert(ctx context.Context, v *po.Video) error {
	if v == nil || v.VideoID == "" {
		return fmt.Errorf("upsert video: video_id is required")
	}
	thumbs, err := jsonbParam(thumbnailsOrNil(v.Thumbnails))
	if err != nil {
		return err
	}
	tags := v.Tags
	if tags == nil {
		tags = []string{}
	}

	query := `
		INSERT INTO educator_videos (
			video_id, channel_id, title, description, tags,
			category_id, default_language, duration, duration_seconds, thumbnails,
			view_count, like_count, comment_count, has_captions, published_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::jsonb, $11, $12, $13, $14, $15, now())
		ON CONFLICT (video_id) DO UPDATE SET
			channel_id = EXCLUDED.channel_id,
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			tags = EXCLUDED.tags,
			category_id = EXCLUDED.category_id,
			default_language = EXCLUDED.default_language,
			duration = EXCLUDED.duration,
			duration_seconds = EXCLUDED.duration_seconds,
			thumbnails = EXCLUDED.thumbnails,
			view_count = EXCLUDED.view_count,
			like_count = EXCLUDED.like_count,
			comment_count = EXCLUDED.comment_count,
			has_captions = EXCLUDED.has_captions,
			published_at = EXCLUDED.published_at,
			updated_at = now()
		RETURNING updated_at
	`
	err = r.db.QueryRow(ctx, query,
		v.VideoID,
		v.ChannelID,
		v.Title,
		v.Description,
		tags,
		textFromPtr(v.CategoryID),
		textFromPtr(v.DefaultLanguage),
		v.Duration,
		int8FromPtr(v.DurationSeconds),
		thumbs,
		v.ViewCount,
		v.LikeCount,
		v.CommentCount,
		v.HasCaptions,
		timestamptzFromPtr(v.PublishedAt),
	).Scan(&v.UpdatedAt)
	if err != nil {
		r.log.WithContext(ctx).Errorf("Upsert video failed: video_id=%s err=%v", v.VideoID, err)
		return fmt.Errorf("upsert video: %w", err)
	}
	return nil
}

// Get loads one video by its external id.
func (r *VideoRepository) Get(ctx context.Context, videoID string) (*po.Video, error) {
	query := `
		SELECT
			video_id, channel_id, title, description, tags,
			category_id, default_language, duration, duration_seconds, thumbnails,
			view_count, like_count, comment_count, has_captions, published_at, updated_at
		FROM educator_videos
		WHERE video_id = $1
	`
	var (
		v      po.Video
		thumbs map[string]string
	)
	err := r.db.QueryRow(ctx, query, videoID).Scan(
		&v.VideoID, &v.ChannelID, &v.Title, &v.Description, &v.Tags,
		&v.CategoryID, &v.DefaultLanguage, &v.Duration, &v.DurationSeconds, &thumbs,
		&v.ViewCount, &v.LikeCount, &v.CommentCount, &v.HasCaptions, &v.PublishedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVideoNotFound
		}
		return nil, fmt.Errorf("query video: %w", err)
	}
	v.Thumbnails = thumbs
	v.PublishedAt = utcPtr(v.PublishedAt)
	return &v, nil
}

// CountByChannel returns the number of stored videos for a channel.
func (r *VideoRepository) CountByChannel(ctx context.Context, channelID string) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM educator_videos WHERE channel_id = $1`, channelID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count channel videos: %w", err)
	}
	return n, nil
}

// ListRecentPublishedAt returns publish timestamps of the channel's newest videos,
// newest first.
func (r *VideoRepository) ListRecentPublishedAt(ctx context.Context, channelID string, limit int) ([]time.Time, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.Query(ctx, `
		SELECT published_at
		FROM educator_videos
		WHERE channel_id = $1 AND published_at IS NOT NULL
		ORDER BY published_at DESC
		LIMIT $2
	`, channelID, limit)
	if err != nil {
		r.log.WithContext(ctx).Errorf("ListRecentPublishedAt failed: %v", err)
		return nil, fmt.Errorf("query published_at: %w", err)
	}
	defer rows.Close()

	var out []time.Time
	for rows.Next() {
		var ts time.Time
		if err := rows.Scan(&ts); err != nil {
			return nil, fmt.Errorf("scan published_at: %w", err)
		}
		out = append(out, ts.UTC())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate published_at rows: %w", err)
	}
	return out, nil
}

func thumbnailsOrNil(t po.Thumbnails) any {
	if len(t) == 0 {
		return nil
	}
	return map[string]string(t)
}
