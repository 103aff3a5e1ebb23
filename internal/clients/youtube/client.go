// Package youtube wraps the YouTube Data API v3 calls used by the educator sync job.
//
// Every exported call validates the raw API payload and narrows it into the typed
// projections in types.go before returning. Calls are single-shot: no retry and no
// rate limiting, failures propagate to the caller unclassified.
package youtube

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

const (
	// maxPageSize is the platform cap for playlistItems.list and videos.list ids.
	maxPageSize = 50
)

// Config configures the API client.
type Config struct {
	APIKey     string
	Endpoint   string        // overrides https://youtube.googleapis.com/ (tests, proxies)
	HTTPClient *http.Client  // optional, replaces API key transport when set
	Timeout    time.Duration // applied to the default transport only
}

// Client issues channel, playlist and video calls against the platform.
type Client struct {
	svc *yt.Service
	log *log.Helper
}

// NewClient builds a Client from cfg.
func NewClient(ctx context.Context, cfg Config, logger log.Logger) (*Client, error) {
	var opts []option.ClientOption
	switch {
	case cfg.HTTPClient != nil:
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	case cfg.APIKey != "" && cfg.Timeout > 0:
		opts = append(opts, option.WithHTTPClient(&http.Client{
			Timeout:   cfg.Timeout,
			Transport: &apiKeyTransport{key: cfg.APIKey, base: http.DefaultTransport},
		}))
	case cfg.APIKey != "":
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	default:
		return nil, fmt.Errorf("youtube: api key is required")
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	svc, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &Client{
		svc: svc,
		log: log.NewHelper(logger),
	}, nil
}

// FetchChannelStats returns aggregate statistics for a channel.
func (c *Client) FetchChannelStats(ctx context.Context, channelID string) (*ChannelStats, error) {
	channelID, err := normalizeChannelID(channelID)
	if err != nil {
		return nil, err
	}

	resp, err := c.svc.Channels.List([]string{"snippet", "statistics"}).
		Id(channelID).
		Context(ctx).
		Do()
	quotaFrom(ctx).add(costChannelsList)
	if err != nil {
		return nil, wrapAPIError("channels.list", err)
	}
	if len(resp.Items) == 0 {
		return nil, &APIError{Op: "channels.list", Err: fmt.Errorf("%w: %s", ErrChannelNotFound, channelID)}
	}

	ch := resp.Items[0]
	if ch.Statistics == nil {
		return nil, &APIError{Op: "channels.list", Err: fmt.Errorf("%w: statistics missing for %s", ErrInvalidResponse, channelID)}
	}

	stats := &ChannelStats{
		ChannelID:             ch.Id,
		SubscriberCount:       clampInt64(ch.Statistics.SubscriberCount),
		HiddenSubscriberCount: ch.Statistics.HiddenSubscriberCount,
		ViewCount:             clampInt64(ch.Statistics.ViewCount),
		VideoCount:            clampInt64(ch.Statistics.VideoCount),
	}
	if stats.ChannelID == "" {
		stats.ChannelID = channelID
	}
	if ch.Snippet != nil {
		stats.Title = ch.Snippet.Title
		stats.Country = ch.Snippet.Country
		stats.PublishedAt = parseTimestamp(ch.Snippet.PublishedAt)
	}

	c.log.WithContext(ctx).Debugf("youtube channel stats: channel=%s subscribers=%d videos=%d", channelID, stats.SubscriberCount, stats.VideoCount)
	return stats, nil
}

func normalizeChannelID(channelID string) (string, error) {
	channelID = strings.TrimSpace(channelID)
	if channelID == "" {
		return "", fmt.Errorf("%w: empty channel id", ErrInvalidResponse)
	}
	return channelID, nil
}

// ResolveUploadsPlaylist maps a channel id to its "uploads" playlist id.
func (c *Client) ResolveUploadsPlaylist(ctx context.Context, channelID string) (string, error) {
	channelID, err := normalizeChannelID(channelID)
	if err != nil {
		return "", err
	}

	resp, err := c.svc.Channels.List([]string{"contentDetails"}).
		Id(channelID).
		Context(ctx).
		Do()
	quotaFrom(ctx).add(costChannelsList)
	if err != nil {
		return "", wrapAPIError("channels.list", err)
	}
	if len(resp.Items) == 0 {
		return "", &APIError{Op: "channels.list", Err: fmt.Errorf("%w: %s", ErrChannelNotFound, channelID)}
	}

	details := resp.Items[0].ContentDetails
	if details == nil || details.RelatedPlaylists == nil || details.RelatedPlaylists.Uploads == "" {
		return "", &APIError{Op: "channels.list", Err: fmt.Errorf("%w: uploads playlist missing for %s", ErrInvalidResponse, channelID)}
	}
	return details.RelatedPlaylists.Uploads, nil
}

// ListVideoIDsSince returns the ids of uploads published strictly after since.
// A nil since returns every id on the page.
//
// Only the first page (at most 50 items, newest first) is read. Uploads beyond that
// page are not revisited once the watermark advances.
// TODO: follow NextPageToken until an item at or before since is seen.
func (c *Client) ListVideoIDsSince(ctx context.Context, playlistID string, since *time.Time) ([]string, error) {
	resp, err := c.svc.PlaylistItems.List([]string{"contentDetails", "snippet"}).
		PlaylistId(playlistID).
		MaxResults(maxPageSize).
		Context(ctx).
		Do()
	quotaFrom(ctx).add(costPlaylistItemsList)
	if err != nil {
		return nil, wrapAPIError("playlistItems.list", err)
	}

	ids := make([]string, 0, len(resp.Items))
	seen := make(map[string]struct{}, len(resp.Items))
	for _, item := range resp.Items {
		entry, ok := narrowPlaylistItem(item)
		if !ok {
			c.log.WithContext(ctx).Warnf("youtube playlist item skipped: playlist=%s", playlistID)
			continue
		}
		if since != nil && !entry.PublishedAt.After(*since) {
			continue
		}
		if _, dup := seen[entry.VideoID]; dup {
			continue
		}
		seen[entry.VideoID] = struct{}{}
		ids = append(ids, entry.VideoID)
	}
	return ids, nil
}

// FetchVideoDetails returns full metadata and statistics for ids.
// ids are requested in batches of 50, one call per batch.
func (c *Client) FetchVideoDetails(ctx context.Context, ids []string) ([]VideoDetail, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	details := make([]VideoDetail, 0, len(ids))
	for start := 0; start < len(ids); start += maxPageSize {
		end := start + maxPageSize
		if end > len(ids) {
			end = len(ids)
		}
		resp, err := c.svc.Videos.List([]string{"snippet", "contentDetails", "statistics"}).
			Id(ids[start:end]...).
			Context(ctx).
			Do()
		quotaFrom(ctx).add(costVideosList)
		if err != nil {
			return nil, wrapAPIError("videos.list", err)
		}
		for _, item := range resp.Items {
			detail, err := narrowVideo(item)
			if err != nil {
				return nil, &APIError{Op: "videos.list", Err: err}
			}
			details = append(details, detail)
		}
	}
	return details, nil
}

func narrowPlaylistItem(item *yt.PlaylistItem) (PlaylistItem, bool) {
	if item == nil || item.ContentDetails == nil || item.ContentDetails.VideoId == "" {
		return PlaylistItem{}, false
	}
	published := parseTimestamp(item.ContentDetails.VideoPublishedAt)
	if published == nil && item.Snippet != nil {
		published = parseTimestamp(item.Snippet.PublishedAt)
	}
	if published == nil {
		return PlaylistItem{}, false
	}
	return PlaylistItem{VideoID: item.ContentDetails.VideoId, PublishedAt: *published}, true
}

func narrowVideo(item *yt.Video) (VideoDetail, error) {
	if item == nil || item.Id == "" {
		return VideoDetail{}, fmt.Errorf("%w: video without id", ErrInvalidResponse)
	}
	if item.Snippet == nil {
		return VideoDetail{}, fmt.Errorf("%w: snippet missing for %s", ErrInvalidResponse, item.Id)
	}

	detail := VideoDetail{
		ID:          item.Id,
		ChannelID:   item.Snippet.ChannelId,
		Title:       item.Snippet.Title,
		Description: item.Snippet.Description,
		Tags:        append([]string(nil), item.Snippet.Tags...),
		CategoryID:  item.Snippet.CategoryId,
		PublishedAt: parseTimestamp(item.Snippet.PublishedAt),
		Thumbnails:  thumbnailURLs(item.Snippet.Thumbnails),
	}
	detail.DefaultLanguage = item.Snippet.DefaultLanguage
	if detail.DefaultLanguage == "" {
		detail.DefaultLanguage = item.Snippet.DefaultAudioLanguage
	}
	if cd := item.ContentDetails; cd != nil {
		detail.Duration = cd.Duration
		detail.HasCaptions = strings.EqualFold(cd.Caption, "true")
		if cd.Duration != "" {
			if secs, err := ParseDuration(cd.Duration); err == nil {
				detail.DurationSeconds = &secs
			}
		}
	}
	if st := item.Statistics; st != nil {
		detail.ViewCount = clampInt64(st.ViewCount)
		detail.LikeCount = clampInt64(st.LikeCount)
		detail.CommentCount = clampInt64(st.CommentCount)
	}
	return detail, nil
}

func thumbnailURLs(t *yt.ThumbnailDetails) map[string]string {
	if t == nil {
		return nil
	}
	out := make(map[string]string, 5)
	add := func(name string, th *yt.Thumbnail) {
		if th != nil && th.Url != "" {
			out[name] = th.Url
		}
	}
	add("default", t.Default)
	add("medium", t.Medium)
	add("high", t.High)
	add("standard", t.Standard)
	add("maxres", t.Maxres)
	if len(out) == 0 {
		return nil
	}
	return out
}

func parseTimestamp(value string) *time.Time {
	if value == "" {
		return nil
	}
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil
	}
	ts = ts.UTC()
	return &ts
}

func clampInt64(v uint64) int64 {
	if v > math.MaxInt64 {
		return math.MaxInt64
	}
	return int64(v)
}

// apiKeyTransport appends the key query parameter; option.WithAPIKey is ignored
// once a custom http.Client is supplied.
type apiKeyTransport struct {
	key  string
	base http.RoundTripper
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	q := clone.URL.Query()
	q.Set("key", t.key)
	clone.URL.RawQuery = q.Encode()
	return t.base.RoundTrip(clone)
}
