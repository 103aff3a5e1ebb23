package repositories

import (
	"context"
	"fmt"

	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/models/po"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/jackc/pgx/v5/pgxpool"
)

// EngagementHistoryRepository appends rows to video_engagement_history.
// Rows are never updated or deleted here.
type EngagementHistoryRepository struct {
	db  *pgxpool.Pool
	log *log.Helper
}

// NewEngagementHistoryRepository 构造 EngagementHistoryRepository。
func NewEngagementHistoryRepository(db *pgxpool.Pool, logger log.Logger) *EngagementHistoryRepository {
	return &EngagementHistoryRepository{
		db:  db,
		log: log.NewHelper(logger),
	}
}

// Append inserts one snapshot; captured_at is assigned by the database.
func (r *EngagementHistoryRepository) Append(ctx context.Context, snap *po.EngagementSnapshot) error {
	if snap == nil || snap.VideoID == "" {
		return fmt.Errorf("append engagement snapshot: video_id is required")
	}
	err := r.db.QueryRow(ctx, `
		INSERT INTO video_engagement_history (video_id, view_count, like_count, comment_count)
		VALUES ($1, $2, $3, $4)
		RETURNING id, captured_at
	`, snap.VideoID, snap.ViewCount, snap.LikeCount, snap.CommentCount).Scan(&snap.ID, &snap.CapturedAt)
	if err != nil {
		r.log.WithContext(ctx).Errorf("Append engagement snapshot failed: video_id=%s err=%v", snap.VideoID, err)
		return fmt.Errorf("insert engagement snapshot: %w", err)
	}
	return nil
}

// ListByVideo returns every snapshot for a video, oldest first.
func (r *EngagementHistoryRepository) ListByVideo(ctx context.Context, videoID string) ([]*po.EngagementSnapshot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, video_id, view_count, like_count, comment_count, captured_at
		FROM video_engagement_history
		WHERE video_id = $1
		ORDER BY captured_at ASC, id ASC
	`, videoID)
	if err != nil {
		return nil, fmt.Errorf("query engagement history: %w", err)
	}
	defer rows.Close()

	var out []*po.EngagementSnapshot
	for rows.Next() {
		var s po.EngagementSnapshot
		if err := rows.Scan(&s.ID, &s.VideoID, &s.ViewCount, &s.LikeCount, &s.CommentCount, &s.CapturedAt); err != nil {
			return nil, fmt.Errorf("scan engagement snapshot: %w", err)
		}
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate engagement history: %w", err)
	}
	return out, nil
}

// CountByVideo returns how many snapshots exist for a video.
func (r *EngagementHistoryRepository) CountByVideo(ctx context.Context, videoID string) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM video_engagement_history WHERE video_id = $1`, videoID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count engagement history: %w", err)
	}
	return n, nil
}
