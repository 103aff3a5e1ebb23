package services

import (
	"context"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricNameEducatorSuccess = "ytsync_educator_success_total"
	metricNameEducatorFailure = "ytsync_educator_failure_total"
	metricNameVideosSynced    = "ytsync_videos_synced_total"
	metricNameQuotaUnits      = "ytsync_quota_units_total"
	metricNameBatchDuration   = "ytsync_batch_duration_ms"
)

type syncMetrics struct {
	success  metric.Int64Counter
	failure  metric.Int64Counter
	videos   metric.Int64Counter
	quota    metric.Int64Counter
	duration metric.Float64Histogram
	enabled  bool
}

func newSyncMetrics(meter metric.Meter, helper *log.Helper) *syncMetrics {
	m := &syncMetrics{}
	if meter == nil {
		return m
	}

	var err error
	if m.success, err = meter.Int64Counter(metricNameEducatorSuccess,
		metric.WithDescription("Number of educator syncs that completed")); err != nil {
		helper.Warnf("sync metrics: register success counter: %v", err)
		return m
	}
	if m.failure, err = meter.Int64Counter(metricNameEducatorFailure,
		metric.WithDescription("Number of educator syncs that failed")); err != nil {
		helper.Warnf("sync metrics: register failure counter: %v", err)
	}
	if m.videos, err = meter.Int64Counter(metricNameVideosSynced,
		metric.WithDescription("Number of videos upserted by the sync job")); err != nil {
		helper.Warnf("sync metrics: register videos counter: %v", err)
	}
	if m.quota, err = meter.Int64Counter(metricNameQuotaUnits,
		metric.WithDescription("YouTube Data API quota units consumed")); err != nil {
		helper.Warnf("sync metrics: register quota counter: %v", err)
	}
	if m.duration, err = meter.Float64Histogram(metricNameBatchDuration,
		metric.WithDescription("Wall time of one sync batch"), metric.WithUnit("ms")); err != nil {
		helper.Warnf("sync metrics: register duration histogram: %v", err)
	}
	m.enabled = true
	return m
}

func (m *syncMetrics) recordSuccess(ctx context.Context, videos, quota int) {
	if m == nil || !m.enabled {
		return
	}
	attrs := metric.WithAttributes(attribute.String("outcome", "completed"))
	if m.success != nil {
		m.success.Add(ctx, 1)
	}
	if m.videos != nil {
		m.videos.Add(ctx, int64(videos))
	}
	if m.quota != nil {
		m.quota.Add(ctx, int64(quota), attrs)
	}
}

func (m *syncMetrics) recordFailure(ctx context.Context, quota int) {
	if m == nil || !m.enabled {
		return
	}
	if m.failure != nil {
		m.failure.Add(ctx, 1)
	}
	if m.quota != nil {
		m.quota.Add(ctx, int64(quota), metric.WithAttributes(attribute.String("outcome", "failed")))
	}
}

func (m *syncMetrics) recordBatch(ctx context.Context, d time.Duration) {
	if m == nil || !m.enabled || m.duration == nil {
		return
	}
	m.duration.Record(ctx, float64(d.Milliseconds()))
}
