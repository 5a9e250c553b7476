package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"vidyamitra_backend/internal/config"
	"vidyamitra_backend/internal/model"
	"vidyamitra_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	enrichmentCacheTTL = 6 * time.Hour
	maxVideoResults    = 3
)

// EnrichmentService attaches YouTube tutorials and a Pexels header image to
// generated roadmaps and training plans. Everything here is best-effort: a
// missing API key, a failed lookup or an absent Redis all degrade to empty
// results, never to an error surfaced to the caller.
type EnrichmentService struct {
	mu     sync.RWMutex
	config config.EnrichmentConfig

	redis  *redis.Client
	client *http.Client

	youtubeBaseURL string
	pexelsBaseURL  string
}

func NewEnrichmentService(cfg config.EnrichmentConfig, rdb *redis.Client) *EnrichmentService {
	return &EnrichmentService{
		config:         cfg,
		redis:          rdb,
		client:         &http.Client{Timeout: 15 * time.Second},
		youtubeBaseURL: "https://www.googleapis.com/youtube/v3",
		pexelsBaseURL:  "https://api.pexels.com/v1",
	}
}

// UpdateConfig swaps the API keys at runtime, for config hot reload. Lookups
// already in flight finish with the keys they started with.
func (s *EnrichmentService) UpdateConfig(cfg config.EnrichmentConfig) {
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
}

func (s *EnrichmentService) snapshot() config.EnrichmentConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// SearchVideos returns up to three tutorial videos for a query.
func (s *EnrichmentService) SearchVideos(ctx context.Context, query string) []model.RecommendedVideo {
	cfg := s.snapshot()
	if cfg.YouTubeAPIKey == "" {
		return nil
	}

	cacheKey := "enrich:videos:" + query
	var videos []model.RecommendedVideo
	if s.cacheGet(ctx, cacheKey, &videos) {
		return videos
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query+" tutorial")
	params.Set("type", "video")
	params.Set("maxResults", fmt.Sprintf("%d", maxVideoResults))
	params.Set("key", cfg.YouTubeAPIKey)

	var result struct {
		Items []struct {
			ID struct {
				VideoID string `json:"videoId"`
			} `json:"id"`
			Snippet struct {
				Title string `json:"title"`
			} `json:"snippet"`
		} `json:"items"`
	}
	if err := s.getJSON(ctx, s.youtubeBaseURL+"/search?"+params.Encode(), nil, &result); err != nil {
		logger.Log.Warn("youtube search failed", zap.String("query", query), zap.Error(err))
		return nil
	}

	for _, item := range result.Items {
		if item.ID.VideoID == "" {
			continue
		}
		videos = append(videos, model.RecommendedVideo{
			Title:   item.Snippet.Title,
			VideoID: item.ID.VideoID,
			URL:     "https://www.youtube.com/watch?v=" + item.ID.VideoID,
		})
	}

	s.cacheSet(ctx, cacheKey, videos)
	return videos
}

// SearchImage returns a landscape header image URL for a query, or "".
func (s *EnrichmentService) SearchImage(ctx context.Context, query string) string {
	cfg := s.snapshot()
	if cfg.PexelsAPIKey == "" {
		return ""
	}

	cacheKey := "enrich:image:" + query
	var imageURL string
	if s.cacheGet(ctx, cacheKey, &imageURL) {
		return imageURL
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("orientation", "landscape")
	params.Set("per_page", "1")

	var result struct {
		Photos []struct {
			Src struct {
				Medium string `json:"medium"`
			} `json:"src"`
		} `json:"photos"`
	}
	headers := map[string]string{"Authorization": cfg.PexelsAPIKey}
	if err := s.getJSON(ctx, s.pexelsBaseURL+"/search?"+params.Encode(), headers, &result); err != nil {
		logger.Log.Warn("pexels search failed", zap.String("query", query), zap.Error(err))
		return ""
	}

	if len(result.Photos) > 0 {
		imageURL = result.Photos[0].Src.Medium
	}
	s.cacheSet(ctx, cacheKey, imageURL)
	return imageURL
}

func (s *EnrichmentService) getJSON(ctx context.Context, rawURL string, headers map[string]string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func (s *EnrichmentService) cacheGet(ctx context.Context, key string, out interface{}) bool {
	if s.redis == nil {
		return false
	}
	data, err := s.redis.Get(ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(data, out) == nil
}

func (s *EnrichmentService) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, key, data, enrichmentCacheTTL).Err(); err != nil {
		logger.Log.Warn("enrichment cache write failed", zap.String("key", key), zap.Error(err))
	}
}
