package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"newscanvas/internal/config"
	"newscanvas/internal/ports"
)

const (
	maxDirectiveChars = 160
	maxCaptionChars   = 160
)

// GrokClient implements ports.TextGenerator against an OpenAI-compatible
// chat-completions API (xAI by default).
type GrokClient struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
}

var _ ports.TextGenerator = (*GrokClient)(nil)

// NewGrokClient builds a client from configuration.
func NewGrokClient(cfg config.XAIConfig) *GrokClient {
	return &GrokClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.ChatModel,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

// GenerateImageDirective asks the model for a dense photorealistic image
// prompt seeded by the article summary. The length bound is stated in the
// instruction; the model's output is not re-validated.
func (c *GrokClient) GenerateImageDirective(ctx context.Context, summary string) (string, error) {
	system := "Image prompt engineer. Output: dense, photorealistic prompts."
	user := fmt.Sprintf(
		"News: '%s'\n\nGenerate hyperrealistic image prompt. Requirements: photographic quality, sharp focus, professional lighting, sharp details. Max %d chars. Output prompt only.",
		summary, maxDirectiveChars)

	return c.complete(ctx, system, user)
}

// GenerateCaption asks the model for a short past-tense caption, including
// the source URL only when the model judges it valuable.
func (c *GrokClient) GenerateCaption(ctx context.Context, summary, sourceURL string) (string, error) {
	system := "Tweet writer. Include article URLs for deals, guides, resources, breaking news. Concise, standalone, journalistic."
	user := fmt.Sprintf(
		"News: '%s'\nURL: %s\n\nSummarize as tweet. Include URL when valuable (deals, guides, breaking news, resources). Style: casual journalistic. Tense: past/summary. No CTAs. Max %d chars including URL.",
		summary, sourceURL, maxCaptionChars)

	return c.complete(ctx, system, user)
}

func (c *GrokClient) complete(ctx context.Context, system, user string) (string, error) {
	if c.apiKey == "" || c.baseURL == "" || c.model == "" {
		return "", fmt.Errorf("text generation client misconfigured")
	}

	body, err := json.Marshal(map[string]any{
		"model": c.model,
		"messages": []map[string]string{
			{"role": "system", "content": system},
			{"role": "user", "content": user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal completion payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("complete: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("completion error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("decode completion: %w", err)
	}

	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}
