package youtube

import (
	"context"
	"sync/atomic"
)

// Quota cost per call, in YouTube Data API units.
const (
	costChannelsList      = 1
	costPlaylistItemsList = 1
	costVideosList        = 1
)

// QuotaTracker accumulates the units spent by calls issued with a tracked context.
type QuotaTracker struct {
	units atomic.Int64
}

// Used returns the units spent so far.
func (q *QuotaTracker) Used() int {
	if q == nil {
		return 0
	}
	return int(q.units.Load())
}

func (q *QuotaTracker) add(units int) {
	if q == nil {
		return
	}
	q.units.Add(int64(units))
}

type quotaKey struct{}

// TrackQuota returns a context whose calls are accounted on the returned tracker.
func TrackQuota(ctx context.Context) (context.Context, *QuotaTracker) {
	tracker := &QuotaTracker{}
	return context.WithValue(ctx, quotaKey{}, tracker), tracker
}

func quotaFrom(ctx context.Context) *QuotaTracker {
	if ctx == nil {
		return nil
	}
	tracker, _ := ctx.Value(quotaKey{}).(*QuotaTracker)
	return tracker
}
