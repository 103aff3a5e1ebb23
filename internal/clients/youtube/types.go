package youtube

import "time"

// ChannelStats is the validated channels.list statistics/snippet projection.
type ChannelStats struct {
	ChannelID             string
	Title                 string
	SubscriberCount       int64
	HiddenSubscriberCount bool
	ViewCount             int64
	VideoCount            int64
	Country               string
	PublishedAt           *time.Time
}

// PlaylistItem is one entry of an uploads playlist page.
type PlaylistItem struct {
	VideoID     string
	PublishedAt time.Time
}

// VideoDetail is the validated videos.list projection.
type VideoDetail struct {
	ID              string
	ChannelID       string
	Title           string
	Description     string
	Tags            []string
	CategoryID      string
	DefaultLanguage string
	Duration        string
	DurationSeconds *int64
	Thumbnails      map[string]string
	ViewCount       int64
	LikeCount       int64
	CommentCount    int64
	HasCaptions     bool
	PublishedAt     *time.Time
}
