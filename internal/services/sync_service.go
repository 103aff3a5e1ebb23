package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/clients/youtube"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/models/po"
	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/models/vo"

	"github.com/go-kratos/kratos/v2/log"
	"go.opentelemetry.io/otel"
)

const finalizeTimeout = 10 * time.Second

// SyncServiceParams injects the orchestrator dependencies.
type SyncServiceParams struct {
	Config    SyncConfig
	Educators EducatorStore
	Videos    VideoStore
	History   SyncHistoryStore
	Platform  ChannelPlatform
	Writer    *StatsWriter
	Events    SyncEventPublisher
	Logger    log.Logger
}

// SyncService claims a bounded batch of due educators and mirrors their channels,
// one educator at a time.
type SyncService struct {
	cfg       SyncConfig
	educators EducatorStore
	videos    VideoStore
	history   SyncHistoryStore
	platform  ChannelPlatform
	writer    *StatsWriter
	events    SyncEventPublisher
	metrics   *syncMetrics
	log       *log.Helper
	now       func() time.Time
}

// NewSyncService validates params and builds the orchestrator.
func NewSyncService(params SyncServiceParams) (*SyncService, error) {
	if err := params.Config.Validate(); err != nil {
		return nil, err
	}
	if params.Educators == nil {
		return nil, fmt.Errorf("sync: educator store is required")
	}
	if params.Videos == nil {
		return nil, fmt.Errorf("sync: video store is required")
	}
	if params.History == nil {
		return nil, fmt.Errorf("sync: history store is required")
	}
	if params.Platform == nil {
		return nil, fmt.Errorf("sync: platform client is required")
	}
	if params.Writer == nil {
		return nil, fmt.Errorf("sync: stats writer is required")
	}
	helper := log.NewHelper(params.Logger)
	return &SyncService{
		cfg:       params.Config.withDefaults(),
		educators: params.Educators,
		videos:    params.Videos,
		history:   params.History,
		platform:  params.Platform,
		writer:    params.Writer,
		events:    params.Events,
		metrics:   newSyncMetrics(otel.GetMeterProvider().Meter("educator-sync"), helper),
		log:       helper,
		now:       time.Now,
	}, nil
}

// WithClock replaces the time source, for tests.
func (s *SyncService) WithClock(fn func() time.Time) {
	if fn == nil {
		return
	}
	s.now = fn
	if s.writer != nil {
		s.writer.now = fn
	}
}

// RunBatch selects the due educators and syncs each of them sequentially.
// Only a failing selection aborts the invocation; per-educator failures are recorded
// and the batch moves on. A cancelled ctx stops the batch before the next educator
// and the partial report is returned with Interrupted set.
func (s *SyncService) RunBatch(ctx context.Context) (*vo.SyncBatchReport, error) {
	started := s.now().UTC()
	report := &vo.SyncBatchReport{StartedAt: started}

	staleBefore := started.Add(-s.cfg.StaleAfter)
	educators, err := s.educators.ListDueForSync(ctx, staleBefore, s.cfg.BatchSize)
	if err != nil {
		s.log.WithContext(ctx).Errorw("msg", "select educators for sync failed", "error", err)
		return nil, fmt.Errorf("select educators: %w", err)
	}
	if len(educators) > s.cfg.BatchSize {
		educators = educators[:s.cfg.BatchSize]
	}

	s.log.WithContext(ctx).Infow("msg", "sync batch started", "educators", len(educators))
	for _, educator := range educators {
		if err := ctx.Err(); err != nil {
			report.Interrupted = true
			report.Skipped = len(educators) - report.Processed()
			s.log.WithContext(ctx).Warnw("msg", "sync batch interrupted", "skipped", report.Skipped, "error", err)
			break
		}
		report.Add(s.SyncEducator(ctx, educator))
	}
	report.Duration = s.now().Sub(started)
	s.metrics.recordBatch(context.WithoutCancel(ctx), report.Duration)

	s.log.WithContext(ctx).Infow(
		"msg", "sync batch finished",
		"processed", report.Processed(),
		"succeeded", report.Succeeded,
		"failed", report.Failed,
		"interrupted", report.Interrupted,
	)
	return report, nil
}

// SyncEducator 执行单个 educator 的同步，不返回 error：结果记录在同步历史、
// educator 状态以及返回的 result 中。
//
// 流程：
// 1. 创建 running 历史记录，educator 置为 in_progress
// 2. 拉取频道统计并写入，解析 uploads 播放列表
// 3. 列出水位线之后的新视频，拉取详情并 upsert（含互动快照）
// 4. 成功：educator 置为 completed 并推进水位线，历史记录置为 completed
// 5. 失败：历史记录置为 failed，educator 置为 failed，水位线不变
func (s *SyncService) SyncEducator(ctx context.Context, educator *po.Educator) *vo.EducatorSyncResult {
	started := s.now().UTC()
	result := &vo.EducatorSyncResult{
		EducatorID: educator.ID,
		ChannelID:  educator.ChannelID,
		StartedAt:  started,
	}
	logger := s.log.WithContext(ctx)

	// 1. 历史记录与 in_progress
	history, err := s.history.Start(ctx, educator.ID, started)
	if err != nil {
		s.fail(ctx, educator, result, nil, 0, fmt.Errorf("start sync history: %w", err))
		return result
	}
	result.HistoryID = history.ID

	if err := s.educators.MarkInProgress(ctx, educator.ID); err != nil {
		s.fail(ctx, educator, result, history, 0, fmt.Errorf("mark in progress: %w", err))
		return result
	}

	// 2-3. 拉取与写入，配额随 ctx 记账
	trackedCtx, quota := youtube.TrackQuota(ctx)
	synced, err := s.syncChannel(trackedCtx, educator)
	if err != nil {
		s.fail(ctx, educator, result, history, quota.Used(), err)
		return result
	}

	// 4. 先落 educator 状态，历史记录跟随它
	fctx, cancel := finalizeContext(ctx)
	defer cancel()
	if err := s.educators.MarkCompleted(fctx, educator.ID, started); err != nil {
		s.fail(ctx, educator, result, history, quota.Used(), fmt.Errorf("mark completed: %w", err))
		return result
	}

	completed := s.now().UTC()
	result.Status = po.HistoryStatusCompleted
	result.VideosSynced = synced
	result.QuotaUsed = quota.Used()
	result.CompletedAt = completed
	if err := s.history.Complete(fctx, history.ID, synced, result.QuotaUsed, completed); err != nil {
		logger.Warnw("msg", "finalize sync history failed", "educator_id", educator.ID, "error", err)
		result.Error = fmt.Sprintf("complete sync history: %v", err)
	}
	s.metrics.recordSuccess(ctx, synced, result.QuotaUsed)
	s.publish(fctx, result)

	logger.Infow(
		"msg", "educator synced",
		"educator_id", educator.ID,
		"channel_id", educator.ChannelID,
		"videos_synced", synced,
		"api_quota_used", result.QuotaUsed,
	)
	return result
}

// syncChannel runs the fetch/write chain for one educator and returns the number of
// videos written.
func (s *SyncService) syncChannel(ctx context.Context, educator *po.Educator) (int, error) {
	stats, err := s.platform.FetchChannelStats(ctx, educator.ChannelID)
	if err != nil {
		return 0, fmt.Errorf("fetch channel stats: %w", err)
	}
	if err := s.writer.WriteChannelStats(ctx, educator.ID, stats); err != nil {
		return 0, fmt.Errorf("write channel stats: %w", err)
	}

	playlistID, err := s.platform.ResolveUploadsPlaylist(ctx, educator.ChannelID)
	if err != nil {
		return 0, fmt.Errorf("resolve uploads playlist: %w", err)
	}
	ids, err := s.platform.ListVideoIDsSince(ctx, playlistID, educator.LastSyncedAt)
	if err != nil {
		return 0, fmt.Errorf("list new videos: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	details, err := s.platform.FetchVideoDetails(ctx, ids)
	if err != nil {
		return 0, fmt.Errorf("fetch video details: %w", err)
	}
	written, err := s.writer.WriteVideos(ctx, educator.ChannelID, details)
	if err != nil {
		return written, err
	}

	if written > 0 {
		if err := s.refreshUploadCadence(ctx, educator); err != nil {
			return written, err
		}
	}
	return written, nil
}

func (s *SyncService) refreshUploadCadence(ctx context.Context, educator *po.Educator) error {
	published, err := s.videos.ListRecentPublishedAt(ctx, educator.ChannelID, s.cfg.CadenceWindow)
	if err != nil {
		return fmt.Errorf("load upload cadence: %w", err)
	}
	if err := s.educators.UpdateUploadFrequency(ctx, educator.ID, AverageUploadGapDays(published)); err != nil {
		return fmt.Errorf("write upload cadence: %w", err)
	}
	return nil
}

func (s *SyncService) fail(ctx context.Context, educator *po.Educator, result *vo.EducatorSyncResult, history *po.SyncHistory, quotaUsed int, cause error) {
	logger := s.log.WithContext(ctx)
	message := cause.Error()
	completed := s.now().UTC()

	// The attempt may have died with ctx; the bookkeeping must still land.
	fctx, cancel := finalizeContext(ctx)
	defer cancel()
	if history != nil {
		if err := s.history.Fail(fctx, history.ID, message, quotaUsed, completed); err != nil {
			logger.Warnw("msg", "record failed sync history failed", "educator_id", educator.ID, "error", err)
		}
	}
	if err := s.educators.MarkFailed(fctx, educator.ID, message); err != nil {
		logger.Warnw("msg", "mark educator failed failed", "educator_id", educator.ID, "error", err)
	}

	result.Status = po.HistoryStatusFailed
	result.Error = message
	result.QuotaUsed = quotaUsed
	result.CompletedAt = completed
	s.metrics.recordFailure(ctx, quotaUsed)
	s.publish(fctx, result)

	logger.Errorw(
		"msg", "educator sync failed",
		"educator_id", educator.ID,
		"channel_id", educator.ChannelID,
		"error", message,
	)
}

// finalizeContext detaches the status writes from the attempt's deadline and gives
// them a bound of their own.
func finalizeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), finalizeTimeout)
}

func (s *SyncService) publish(ctx context.Context, result *vo.EducatorSyncResult) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishSyncResult(ctx, result); err != nil {
		s.log.WithContext(ctx).Warnw("msg", "publish sync event failed", "educator_id", result.EducatorID, "error", err)
	}
}

// AverageUploadGapDays returns the mean gap in days between consecutive publish
// timestamps, rounded to two decimals. Fewer than two timestamps yield nil.
func AverageUploadGapDays(published []time.Time) *float64 {
	if len(published) < 2 {
		return nil
	}
	sorted := append([]time.Time(nil), published...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	span := sorted[len(sorted)-1].Sub(sorted[0])
	days := span.Hours() / 24 / float64(len(sorted)-1)
	days = math.Round(days*100) / 100
	return &days
}
