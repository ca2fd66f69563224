package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"newscanvas/internal/config"
	"newscanvas/internal/domain"
	"newscanvas/internal/ports"
)

// Client fetches ranked top headlines from a NewsAPI-compatible provider.
type Client struct {
	endpoint string
	country  string
	category string
	apiKey   string
	http     *http.Client
}

var _ ports.NewsSource = (*Client)(nil)

// NewClient builds a headline client from configuration.
func NewClient(cfg config.NewsConfig) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		country:  cfg.Country,
		category: cfg.Category,
		apiKey:   cfg.APIKey,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

// TopHeadlines returns the provider's current ranked list for the configured
// country and category, in the order the provider returned it.
func (c *Client) TopHeadlines(ctx context.Context) ([]domain.Article, error) {
	params := url.Values{}
	params.Set("country", c.country)
	params.Set("category", c.category)
	params.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch headlines: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news provider error: %s", resp.Status)
	}

	var payload struct {
		Articles []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
		} `json:"articles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode headlines: %w", err)
	}

	articles := make([]domain.Article, 0, len(payload.Articles))
	for _, item := range payload.Articles {
		articles = append(articles, domain.Article{
			Title:       item.Title,
			URL:         item.URL,
			Description: item.Description,
		})
	}

	return articles, nil
}
