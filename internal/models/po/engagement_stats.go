package po

import "time"

// EngagementSnapshot is one append-only row of video_engagement_history.
// A new row is written on every sync pass, even when the counts did not change.
type EngagementSnapshot struct {
	ID           int64
	VideoID      string
	ViewCount    int64
	LikeCount    int64
	CommentCount int64
	CapturedAt   time.Time
}
