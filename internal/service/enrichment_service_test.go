package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"vidyamitra_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testEnrichmentConfig has no API keys, so lookups are disabled and never
// touch the network.
func testEnrichmentConfig() config.EnrichmentConfig {
	return config.EnrichmentConfig{}
}

func TestSearchVideosDisabledWithoutKey(t *testing.T) {
	svc := NewEnrichmentService(testEnrichmentConfig(), nil)
	assert.Nil(t, svc.SearchVideos(context.Background(), "golang"))
}

func TestSearchImageDisabledWithoutKey(t *testing.T) {
	svc := NewEnrichmentService(testEnrichmentConfig(), nil)
	assert.Empty(t, svc.SearchImage(context.Background(), "golang"))
}

func TestSearchVideos(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "golang tutorial", r.URL.Query().Get("q"))
		assert.Equal(t, "3", r.URL.Query().Get("maxResults"))
		w.Write([]byte(`{"items": [
			{"id": {"videoId": "abc123"}, "snippet": {"title": "Go in 30 minutes"}},
			{"id": {"videoId": ""}, "snippet": {"title": "not a video"}},
			{"id": {"videoId": "def456"}, "snippet": {"title": "Go concurrency"}}
		]}`))
	}))
	defer srv.Close()

	svc := NewEnrichmentService(config.EnrichmentConfig{YouTubeAPIKey: "yt-key"}, nil)
	svc.youtubeBaseURL = srv.URL

	videos := svc.SearchVideos(context.Background(), "golang")
	require.Len(t, videos, 2, "entries without a video id are dropped")
	assert.Equal(t, "Go in 30 minutes", videos[0].Title)
	assert.Equal(t, "abc123", videos[0].VideoID)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc123", videos[0].URL)
}

func TestUpdateConfigRotatesKeys(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "rotated-key", r.URL.Query().Get("key"))
		w.Write([]byte(`{"items": [{"id": {"videoId": "abc123"}, "snippet": {"title": "Go in 30 minutes"}}]}`))
	}))
	defer srv.Close()

	// Starts without a key, so lookups are disabled.
	svc := NewEnrichmentService(testEnrichmentConfig(), nil)
	svc.youtubeBaseURL = srv.URL
	require.Nil(t, svc.SearchVideos(context.Background(), "golang"))

	// A config reload supplies a key; the same instance starts serving.
	svc.UpdateConfig(config.EnrichmentConfig{YouTubeAPIKey: "rotated-key"})
	videos := svc.SearchVideos(context.Background(), "golang")
	require.Len(t, videos, 1)
	assert.Equal(t, "abc123", videos[0].VideoID)
}

func TestSearchVideosUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer srv.Close()

	svc := NewEnrichmentService(config.EnrichmentConfig{YouTubeAPIKey: "yt-key"}, nil)
	svc.youtubeBaseURL = srv.URL

	assert.Nil(t, svc.SearchVideos(context.Background(), "golang"))
}

func TestSearchImage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "px-key", r.Header.Get("Authorization"))
		assert.Equal(t, "landscape", r.URL.Query().Get("orientation"))
		w.Write([]byte(`{"photos": [{"src": {"medium": "https://img.example/go.jpg"}}]}`))
	}))
	defer srv.Close()

	svc := NewEnrichmentService(config.EnrichmentConfig{PexelsAPIKey: "px-key"}, nil)
	svc.pexelsBaseURL = srv.URL

	assert.Equal(t, "https://img.example/go.jpg", svc.SearchImage(context.Background(), "golang"))
}

func TestSearchImageNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"photos": []}`))
	}))
	defer srv.Close()

	svc := NewEnrichmentService(config.EnrichmentConfig{PexelsAPIKey: "px-key"}, nil)
	svc.pexelsBaseURL = srv.URL

	assert.Empty(t, svc.SearchImage(context.Background(), "golang"))
}
