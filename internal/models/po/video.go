package po

import "time"

// Thumbnails holds the thumbnail URLs keyed by YouTube size name (default, medium, high, ...).
type Thumbnails map[string]string

// Video maps a row of educator_videos, keyed by the external YouTube video id.
// Re-syncing a video overwrites its statistics in place; the time dimension lives in
// video_engagement_history.
type Video struct {
	// ============================================
	// identity
	// ============================================
	VideoID   string `db:"video_id"`   // primary key, stable across syncs
	ChannelID string `db:"channel_id"` // owning channel

	// ============================================
	// descriptive fields
	// ============================================
	Title           string   `db:"title"`
	Description     string   `db:"description"`
	Tags            []string `db:"tags"`
	CategoryID      *string  `db:"category_id"`
	DefaultLanguage *string  `db:"default_language"`

	// ============================================
	// media fields
	// ============================================
	Duration        string     `db:"duration"`         // raw ISO-8601 value, e.g. PT4M13S
	DurationSeconds *int64     `db:"duration_seconds"` // parsed duration, nil when unparsable
	Thumbnails      Thumbnails `db:"thumbnails"`

	// ============================================
	// point-in-time statistics
	// ============================================
	ViewCount    int64 `db:"view_count"`
	LikeCount    int64 `db:"like_count"`
	CommentCount int64 `db:"comment_count"`

	HasCaptions bool       `db:"has_captions"`
	PublishedAt *time.Time `db:"published_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}
