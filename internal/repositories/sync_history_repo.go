package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/models/po"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SyncHistoryRepository keeps the per-attempt audit trail in educator_sync_history.
type SyncHistoryRepository struct {
	db  *pgxpool.Pool
	log *log.Helper
}

// NewSyncHistoryRepository 构造 SyncHistoryRepository。
func NewSyncHistoryRepository(db *pgxpool.Pool, logger log.Logger) *SyncHistoryRepository {
	return &SyncHistoryRepository{
		db:  db,
		log: log.NewHelper(logger),
	}
}

// Start 插入一条 running 状态的同步记录。
func (r *SyncHistoryRepository) Start(ctx context.Context, educatorID uuid.UUID, startedAt time.Time) (*po.SyncHistory, error) {
	h := &po.SyncHistory{
		ID:         uuid.New(),
		EducatorID: educatorID,
		Status:     po.HistoryStatusRunning,
		StartedAt:  startedAt.UTC(),
	}
	_, err := r.db.Exec(ctx, `
		INSERT INTO educator_sync_history (id, educator_id, status, started_at, videos_synced, api_quota_used)
		VALUES ($1, $2, $3, $4, 0, 0)
	`, h.ID, h.EducatorID, string(h.Status), h.StartedAt)
	if err != nil {
		r.log.WithContext(ctx).Errorf("Start sync history failed: educator_id=%s err=%v", educatorID, err)
		return nil, fmt.Errorf("insert sync history: %w", err)
	}
	return h, nil
}

// Complete 将记录标记为 completed，写入视频数与配额消耗。
func (r *SyncHistoryRepository) Complete(ctx context.Context, id uuid.UUID, videosSynced, quotaUsed int, completedAt time.Time) error {
	return r.finish(ctx, id, po.HistoryStatusCompleted, videosSynced, quotaUsed, nil, completedAt)
}

// Fail 将记录标记为 failed 并保存错误信息。
//
// 错误处理：
//   - 没有匹配的行 → ErrHistoryNotFound
func (r *SyncHistoryRepository) Fail(ctx context.Context, id uuid.UUID, message string, quotaUsed int, completedAt time.Time) error {
	return r.finish(ctx, id, po.HistoryStatusFailed, 0, quotaUsed, &message, completedAt)
}

func (r *SyncHistoryRepository) finish(ctx context.Context, id uuid.UUID, status po.HistoryStatus, videosSynced, quotaUsed int, message *string, completedAt time.Time) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE educator_sync_history
		SET status = $2, videos_synced = $3, api_quota_used = $4, error_message = $5, completed_at = $6
		WHERE id = $1
	`, id, string(status), videosSynced, quotaUsed, textFromPtr(message), timestamptzFromTime(completedAt))
	if err != nil {
		r.log.WithContext(ctx).Errorf("finish sync history failed: id=%s status=%s err=%v", id, status, err)
		return fmt.Errorf("update sync history: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrHistoryNotFound
	}
	return nil
}

// ListByEducator returns the educator's attempts, newest first.
func (r *SyncHistoryRepository) ListByEducator(ctx context.Context, educatorID uuid.UUID) ([]*po.SyncHistory, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, educator_id, status, started_at, completed_at, videos_synced, api_quota_used, error_message
		FROM educator_sync_history
		WHERE educator_id = $1
		ORDER BY started_at DESC, id
	`, educatorID)
	if err != nil {
		return nil, fmt.Errorf("query sync history: %w", err)
	}
	defer rows.Close()

	var out []*po.SyncHistory
	for rows.Next() {
		var (
			h      po.SyncHistory
			status string
		)
		if err := rows.Scan(&h.ID, &h.EducatorID, &status, &h.StartedAt, &h.CompletedAt, &h.VideosSynced, &h.APIQuotaUsed, &h.ErrorMessage); err != nil {
			return nil, fmt.Errorf("scan sync history: %w", err)
		}
		h.Status = po.HistoryStatus(status)
		out = append(out, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sync history: %w", err)
	}
	return out, nil
}
