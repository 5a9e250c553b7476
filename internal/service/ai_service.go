package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"vidyamitra_backend/internal/config"
	"vidyamitra_backend/internal/util"
	"vidyamitra_backend/pkg/logger"
	"vidyamitra_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// AIService talks to an OpenAI-compatible chat-completions endpoint. All
// structured content in the system (interview questions, quizzes, roadmaps,
// evaluations) comes through GenerateJSON; free-form text through Chat.
type AIService struct {
	mu     sync.RWMutex
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: 90 * time.Second},
	}
}

// UpdateConfig swaps the endpoint settings, letting the API key or model be
// rotated without a restart. In-flight requests finish on the old settings.
func (s *AIService) UpdateConfig(cfg config.AIConfig) {
	s.mu.Lock()
	s.config = cfg
	s.mu.Unlock()
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Schema is implemented by every payload type GenerateJSON can fill. Validate
// rejects structurally valid JSON that is semantically unusable, such as an
// empty question list.
type Schema interface {
	Validate() error
}

// Chat sends one prompt and returns the raw completion text.
func (s *AIService) Chat(ctx context.Context, systemPrompt, prompt string) (string, error) {
	raw, err := s.complete(ctx, systemPrompt, prompt)
	if err != nil {
		monitoring.GenerationCounter.WithLabelValues("chat", "error").Inc()
		return "", err
	}
	monitoring.GenerationCounter.WithLabelValues("chat", "success").Inc()
	return raw, nil
}

// GenerateJSON asks the model for JSON matching out's shape and decodes into
// it. Markdown code fences around the payload are tolerated. Any transport
// failure, parse failure or Validate rejection surfaces as
// util.ErrGenerationFailed; callers never see a half-filled out.
func (s *AIService) GenerateJSON(ctx context.Context, kind, systemPrompt, prompt string, out Schema) error {
	raw, err := s.complete(ctx, systemPrompt, prompt)
	if err != nil {
		monitoring.GenerationCounter.WithLabelValues(kind, "error").Inc()
		return fmt.Errorf("%w: %v", util.ErrGenerationFailed, err)
	}

	cleaned := stripCodeFences(raw)
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		monitoring.GenerationCounter.WithLabelValues(kind, "invalid").Inc()
		logger.Log.Warn("AI returned unparseable JSON",
			zap.String("kind", kind), zap.String("raw", truncate(raw, 500)), zap.Error(err))
		return fmt.Errorf("%w: invalid JSON: %v", util.ErrGenerationFailed, err)
	}
	if err := out.Validate(); err != nil {
		monitoring.GenerationCounter.WithLabelValues(kind, "invalid").Inc()
		logger.Log.Warn("AI returned JSON that failed validation",
			zap.String("kind", kind), zap.Error(err))
		return fmt.Errorf("%w: %v", util.ErrGenerationFailed, err)
	}

	monitoring.GenerationCounter.WithLabelValues(kind, "success").Inc()
	return nil
}

func (s *AIService) complete(ctx context.Context, systemPrompt, prompt string) (string, error) {
	s.mu.RLock()
	cfg := s.config
	s.mu.RUnlock()

	messages := []AIChatMessage{}
	if systemPrompt != "" {
		messages = append(messages, AIChatMessage{Role: "system", Content: systemPrompt})
	}
	messages = append(messages, AIChatMessage{Role: "user", Content: prompt})

	reqBody := ChatCompletionRequest{
		Model:    cfg.Model,
		Messages: messages,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", cfg.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API error (status %d): %s", resp.StatusCode, truncate(string(body), 500))
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}
	if result.Error != nil {
		return "", fmt.Errorf("AI API error: %s", result.Error.Message)
	}
	if len(result.Choices) == 0 {
		return "", fmt.Errorf("AI returned no choices")
	}

	return result.Choices[0].Message.Content, nil
}

// stripCodeFences unwraps ```json ... ``` (or bare ```) around a payload.
// Models add the fence even when told not to.
func stripCodeFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if !strings.HasPrefix(cleaned, "```") {
		return cleaned
	}
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(strings.TrimSpace(cleaned), "```")
	return strings.TrimSpace(cleaned)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
