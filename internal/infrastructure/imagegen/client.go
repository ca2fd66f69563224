package imagegen

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

// Client renders images via an OpenAI-compatible image-generation API.
type Client struct {
	baseURL    string
	model      string
	apiKey     string
	httpClient *http.Client
}

var _ ports.ImageGenerator = (*Client)(nil)

// NewClient builds an image client from configuration.
func NewClient(cfg config.XAIConfig) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		model:   cfg.ImageModel,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// Render requests exactly one image for the directive and returns the URL of
// the rendered result. An empty directive is rejected locally without a call.
func (c *Client) Render(ctx context.Context, directive string) (string, error) {
	if directive == "" {
		return "", fmt.Errorf("empty image directive")
	}
	if c.apiKey == "" || c.baseURL == "" || c.model == "" {
		return "", fmt.Errorf("image generation client misconfigured")
	}

	body, err := json.Marshal(map[string]any{
		"model":  c.model,
		"prompt": directive,
		"n":      1,
	})
	if err != nil {
		return "", fmt.Errorf("marshal image payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/images/generations", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("render image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("image generation error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var generated struct {
		Data []struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&generated); err != nil {
		return "", fmt.Errorf("decode image response: %w", err)
	}

	if len(generated.Data) == 0 || generated.Data[0].URL == "" {
		return "", fmt.Errorf("image generation returned no result")
	}

	return generated.Data[0].URL, nil
}
