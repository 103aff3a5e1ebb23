package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/models/po"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const educatorColumns = `
	id, channel_id, display_name,
	sync_status, last_synced_at, last_sync_error,
	subscriber_count, total_view_count, total_video_count,
	country, channel_joined_at, subscriber_history,
	avg_upload_frequency_days, created_at, updated_at`

// ChannelStatsUpdate carries the aggregate columns written after a channel stats fetch.
type ChannelStatsUpdate struct {
	SubscriberCount int64
	TotalViewCount  int64
	TotalVideoCount int64
	Country         string
	ChannelJoinedAt *time.Time
	RecordedAt      time.Time
}

// EducatorRepository 维护 educators 表（同步状态、水位线与频道聚合统计）。
type EducatorRepository struct {
	db  *pgxpool.Pool
	log *log.Helper
}

// NewEducatorRepository 构造 EducatorRepository，通过 Wire 注入连接池。
func NewEducatorRepository(db *pgxpool.Pool, logger log.Logger) *EducatorRepository {
	return &EducatorRepository{
		db:  db,
		log: log.NewHelper(logger),
	}
}

// ListDueForSync 返回至多 limit 个待同步的 educator。
//
// 选择条件：sync_status = 'pending' 或 last_synced_at 早于 staleBefore；
// 排序：last_synced_at 升序，从未同步过的（NULL）排在最前。
func (r *EducatorRepository) ListDueForSync(ctx context.Context, staleBefore time.Time, limit int) ([]*po.Educator, error) {
	if limit <= 0 {
		limit = 5
	}

	query := `
		SELECT` + educatorColumns + `
		FROM educators
		WHERE sync_status = $1 OR last_synced_at < $2
		ORDER BY last_synced_at ASC NULLS FIRST, id ASC
		LIMIT $3
	`
	rows, err := r.db.Query(ctx, query, string(po.SyncStatusPending), staleBefore.UTC(), limit)
	if err != nil {
		r.log.WithContext(ctx).Errorf("ListDueForSync failed: %v", err)
		return nil, fmt.Errorf("query due educators: %w", err)
	}
	defer rows.Close()

	var educators []*po.Educator
	for rows.Next() {
		e, err := scanEducator(rows)
		if err != nil {
			return nil, fmt.Errorf("scan educator row: %w", err)
		}
		educators = append(educators, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate educator rows: %w", err)
	}
	return educators, nil
}

// Get loads a single educator.
func (r *EducatorRepository) Get(ctx context.Context, id uuid.UUID) (*po.Educator, error) {
	query := `SELECT` + educatorColumns + ` FROM educators WHERE id = $1`
	e, err := scanEducator(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEducatorNotFound
		}
		return nil, fmt.Errorf("query educator: %w", err)
	}
	return e, nil
}

// MarkInProgress flips the educator to in_progress ahead of a sync attempt.
func (r *EducatorRepository) MarkInProgress(ctx context.Context, id uuid.UUID) error {
	return r.setStatus(ctx, "mark educator in progress", `
		UPDATE educators
		SET sync_status = $2, updated_at = now()
		WHERE id = $1
	`, id, string(po.SyncStatusInProgress))
}

// MarkCompleted records a successful attempt and advances the watermark.
func (r *EducatorRepository) MarkCompleted(ctx context.Context, id uuid.UUID, syncedAt time.Time) error {
	return r.setStatus(ctx, "mark educator completed", `
		UPDATE educators
		SET sync_status = $2, last_synced_at = $3, last_sync_error = NULL, updated_at = now()
		WHERE id = $1
	`, id, string(po.SyncStatusCompleted), timestamptzFromTime(syncedAt))
}

// MarkFailed records a failed attempt. The watermark is left untouched.
func (r *EducatorRepository) MarkFailed(ctx context.Context, id uuid.UUID, message string) error {
	if message == "" {
		message = "unknown error"
	}
	return r.setStatus(ctx, "mark educator failed", `
		UPDATE educators
		SET sync_status = $2, last_sync_error = $3, updated_at = now()
		WHERE id = $1
	`, id, string(po.SyncStatusFailed), message)
}

// UpdateChannelStats overwrites the aggregate columns in place and appends one
// element to subscriber_history.
func (r *EducatorRepository) UpdateChannelStats(ctx context.Context, id uuid.UUID, in ChannelStatsUpdate) error {
	recordedAt := in.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}
	point, err := jsonbParam([]po.SubscriberPoint{{Count: in.SubscriberCount, RecordedAt: recordedAt.UTC()}})
	if err != nil {
		return err
	}

	query := `
		UPDATE educators
		SET
			subscriber_count = $2,
			total_view_count = $3,
			total_video_count = $4,
			country = $5,
			channel_joined_at = $6,
			subscriber_history = COALESCE(subscriber_history, '[]'::jsonb) || $7::jsonb,
			updated_at = now()
		WHERE id = $1
	`
	tag, err := r.db.Exec(ctx, query,
		id,
		in.SubscriberCount,
		in.TotalViewCount,
		in.TotalVideoCount,
		textFromString(in.Country),
		timestamptzFromPtr(in.ChannelJoinedAt),
		point,
	)
	if err != nil {
		r.log.WithContext(ctx).Errorf("UpdateChannelStats failed: educator_id=%s err=%v", id, err)
		return fmt.Errorf("update educator channel stats: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEducatorNotFound
	}
	return nil
}

// UpdateUploadFrequency stores the derived upload cadence; nil clears it.
func (r *EducatorRepository) UpdateUploadFrequency(ctx context.Context, id uuid.UUID, avgDays *float64) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE educators
		SET avg_upload_frequency_days = $2, updated_at = now()
		WHERE id = $1
	`, id, avgDays)
	if err != nil {
		return fmt.Errorf("update educator upload frequency: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEducatorNotFound
	}
	return nil
}

func (r *EducatorRepository) setStatus(ctx context.Context, op, query string, args ...any) error {
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.log.WithContext(ctx).Errorf("%s failed: %v", op, err)
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEducatorNotFound
	}
	return nil
}

func scanEducator(row pgx.Row) (*po.Educator, error) {
	var (
		e       po.Educator
		status  string
		history []po.SubscriberPoint
	)
	err := row.Scan(
		&e.ID, &e.ChannelID, &e.DisplayName,
		&status, &e.LastSyncedAt, &e.LastSyncError,
		&e.SubscriberCount, &e.TotalViewCount, &e.TotalVideoCount,
		&e.Country, &e.ChannelJoinedAt, &history,
		&e.AvgUploadFrequencyDays, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.SyncStatus = po.SyncStatus(status)
	e.SubscriberHistory = history
	e.LastSyncedAt = utcPtr(e.LastSyncedAt)
	e.ChannelJoinedAt = utcPtr(e.ChannelJoinedAt)
	return &e, nil
}
