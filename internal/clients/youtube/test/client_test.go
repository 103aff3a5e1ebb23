package youtube_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/samsiso/siso-agency-onboarding-app-main-sub009/internal/clients/youtube"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/require"
)

type fakePlatform struct {
	mu       sync.Mutex
	calls    map[string]int
	videoIDs [][]string

	channels      map[string]any
	playlistItems map[string]any
	videos        map[string]any
	failVideos    bool
}

func newFakePlatform() *fakePlatform {
	return &fakePlatform{calls: map[string]int{}}
}

func (f *fakePlatform) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.calls[r.URL.Path]++
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/youtube/v3/channels":
		_ = json.NewEncoder(w).Encode(f.channels)
	case "/youtube/v3/playlistItems":
		_ = json.NewEncoder(w).Encode(f.playlistItems)
	case "/youtube/v3/videos":
		if f.failVideos {
			w.WriteHeader(http.StatusForbidden)
			_, _ = io.WriteString(w, `{"error":{"code":403,"message":"quotaExceeded","errors":[{"reason":"quotaExceeded"}]}}`)
			return
		}
		ids := r.URL.Query()["id"]
		if len(ids) == 1 && strings.Contains(ids[0], ",") {
			ids = strings.Split(ids[0], ",")
		}
		f.mu.Lock()
		f.videoIDs = append(f.videoIDs, ids)
		f.mu.Unlock()
		_ = json.NewEncoder(w).Encode(f.videos)
	default:
		http.NotFound(w, r)
	}
}

func newClient(t *testing.T, platform *fakePlatform) *youtube.Client {
	t.Helper()
	srv := httptest.NewServer(platform)
	t.Cleanup(srv.Close)

	client, err := youtube.NewClient(context.Background(), youtube.Config{
		Endpoint:   srv.URL + "/",
		HTTPClient: srv.Client(),
	}, log.NewStdLogger(io.Discard))
	require.NoError(t, err)
	return client
}

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := youtube.NewClient(context.Background(), youtube.Config{}, log.NewStdLogger(io.Discard))
	require.Error(t, err)
}

func TestFetchChannelStats(t *testing.T) {
	platform := newFakePlatform()
	platform.channels = map[string]any{
		"items": []any{map[string]any{
			"id": "UCabc",
			"snippet": map[string]any{
				"title":       "Teaching Channel",
				"country":     "GB",
				"publishedAt": "2015-01-02T03:04:05Z",
			},
			"statistics": map[string]any{
				"subscriberCount": "1200",
				"viewCount":       "50000",
				"videoCount":      "42",
			},
		}},
	}
	client := newClient(t, platform)

	ctx, quota := youtube.TrackQuota(context.Background())
	stats, err := client.FetchChannelStats(ctx, "UCabc")
	require.NoError(t, err)
	require.Equal(t, "UCabc", stats.ChannelID)
	require.EqualValues(t, 1200, stats.SubscriberCount)
	require.EqualValues(t, 50000, stats.ViewCount)
	require.EqualValues(t, 42, stats.VideoCount)
	require.Equal(t, "GB", stats.Country)
	require.NotNil(t, stats.PublishedAt)
	require.True(t, stats.PublishedAt.Equal(time.Date(2015, 1, 2, 3, 4, 5, 0, time.UTC)))
	require.Equal(t, 1, quota.Used())
}

func TestFetchChannelStatsNotFound(t *testing.T) {
	platform := newFakePlatform()
	platform.channels = map[string]any{"items": []any{}}
	client := newClient(t, platform)

	_, err := client.FetchChannelStats(context.Background(), "UCmissing")
	require.Error(t, err)
	require.True(t, errors.Is(err, youtube.ErrChannelNotFound))

	var apiErr *youtube.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, "channels.list", apiErr.Op)
}

func TestResolveUploadsPlaylist(t *testing.T) {
	platform := newFakePlatform()
	platform.channels = map[string]any{
		"items": []any{map[string]any{
			"id": "UCabc",
			"contentDetails": map[string]any{
				"relatedPlaylists": map[string]any{"uploads": "UUabc"},
			},
		}},
	}
	client := newClient(t, platform)

	playlistID, err := client.ResolveUploadsPlaylist(context.Background(), "UCabc")
	require.NoError(t, err)
	require.Equal(t, "UUabc", playlistID)
}

func TestResolveUploadsPlaylistMissing(t *testing.T) {
	platform := newFakePlatform()
	platform.channels = map[string]any{
		"items": []any{map[string]any{"id": "UCabc"}},
	}
	client := newClient(t, platform)

	_, err := client.ResolveUploadsPlaylist(context.Background(), "UCabc")
	require.ErrorIs(t, err, youtube.ErrInvalidResponse)
}

func TestChannelLookupsRejectBlankIDs(t *testing.T) {
	platform := newFakePlatform()
	client := newClient(t, platform)

	_, err := client.FetchChannelStats(context.Background(), "  ")
	require.ErrorIs(t, err, youtube.ErrInvalidResponse)

	_, err = client.ResolveUploadsPlaylist(context.Background(), "\t")
	require.ErrorIs(t, err, youtube.ErrInvalidResponse)

	require.Zero(t, platform.calls["/youtube/v3/channels"])
}

func TestResolveUploadsPlaylistTrimsChannelID(t *testing.T) {
	platform := newFakePlatform()
	platform.channels = map[string]any{
		"items": []any{map[string]any{
			"id": "UCabc",
			"contentDetails": map[string]any{
				"relatedPlaylists": map[string]any{"uploads": "UUabc"},
			},
		}},
	}
	client := newClient(t, platform)

	playlistID, err := client.ResolveUploadsPlaylist(context.Background(), " UCabc ")
	require.NoError(t, err)
	require.Equal(t, "UUabc", playlistID)
}

func TestListVideoIDsSinceFiltersByWatermark(t *testing.T) {
	platform := newFakePlatform()
	platform.playlistItems = map[string]any{
		"items": []any{
			map[string]any{"contentDetails": map[string]any{"videoId": "new2", "videoPublishedAt": "2024-05-03T00:00:00Z"}},
			map[string]any{"contentDetails": map[string]any{"videoId": "new1", "videoPublishedAt": "2024-05-02T00:00:00Z"}},
			map[string]any{"contentDetails": map[string]any{"videoId": "edge", "videoPublishedAt": "2024-05-01T00:00:00Z"}},
			map[string]any{"contentDetails": map[string]any{"videoId": "old", "videoPublishedAt": "2024-04-01T00:00:00Z"}},
			map[string]any{"contentDetails": map[string]any{"videoId": "snippetOnly"}, "snippet": map[string]any{"publishedAt": "2024-05-04T00:00:00Z"}},
			map[string]any{"contentDetails": map[string]any{}},
		},
	}
	client := newClient(t, platform)

	since := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	ids, err := client.ListVideoIDsSince(context.Background(), "UUabc", &since)
	require.NoError(t, err)
	require.Equal(t, []string{"new2", "new1", "snippetOnly"}, ids)

	all, err := client.ListVideoIDsSince(context.Background(), "UUabc", nil)
	require.NoError(t, err)
	require.Len(t, all, 5)
}

func TestFetchVideoDetailsBatchesIDs(t *testing.T) {
	platform := newFakePlatform()
	platform.videos = map[string]any{
		"items": []any{map[string]any{
			"id": "vid1",
			"snippet": map[string]any{
				"channelId":   "UCabc",
				"title":       "Lesson 1",
				"description": "Intro",
				"tags":        []string{"go", "sync"},
				"categoryId":  "27",
				"publishedAt": "2024-05-02T10:00:00Z",
				"thumbnails": map[string]any{
					"default": map[string]any{"url": "https://i.ytimg.com/vi/vid1/default.jpg"},
					"high":    map[string]any{"url": "https://i.ytimg.com/vi/vid1/hqdefault.jpg"},
				},
				"defaultAudioLanguage": "en",
			},
			"contentDetails": map[string]any{"duration": "PT1H2M3S", "caption": "true"},
			"statistics":     map[string]any{"viewCount": "100", "likeCount": "10", "commentCount": "3"},
		}},
	}
	client := newClient(t, platform)

	ids := make([]string, 0, 120)
	for i := 0; i < 120; i++ {
		ids = append(ids, "vid"+strings.Repeat("x", i%3))
	}

	ctx, quota := youtube.TrackQuota(context.Background())
	details, err := client.FetchVideoDetails(ctx, ids)
	require.NoError(t, err)
	require.Equal(t, 3, quota.Used())
	require.Len(t, platform.videoIDs, 3)
	require.Len(t, platform.videoIDs[0], 50)
	require.Len(t, platform.videoIDs[2], 20)

	require.Len(t, details, 3)
	d := details[0]
	require.Equal(t, "vid1", d.ID)
	require.Equal(t, "UCabc", d.ChannelID)
	require.Equal(t, []string{"go", "sync"}, d.Tags)
	require.Equal(t, "en", d.DefaultLanguage)
	require.True(t, d.HasCaptions)
	require.NotNil(t, d.DurationSeconds)
	require.EqualValues(t, 3723, *d.DurationSeconds)
	require.EqualValues(t, 100, d.ViewCount)
	require.EqualValues(t, 10, d.LikeCount)
	require.EqualValues(t, 3, d.CommentCount)
	require.Equal(t, "https://i.ytimg.com/vi/vid1/hqdefault.jpg", d.Thumbnails["high"])
}

func TestFetchVideoDetailsEmptyInput(t *testing.T) {
	platform := newFakePlatform()
	client := newClient(t, platform)

	details, err := client.FetchVideoDetails(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, details)
	require.Zero(t, platform.calls["/youtube/v3/videos"])
}

func TestFetchVideoDetailsPropagatesAPIError(t *testing.T) {
	platform := newFakePlatform()
	platform.failVideos = true
	client := newClient(t, platform)

	_, err := client.FetchVideoDetails(context.Background(), []string{"vid1"})
	require.Error(t, err)

	var apiErr *youtube.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	require.Equal(t, "videos.list", apiErr.Op)
}
