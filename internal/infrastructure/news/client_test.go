package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"newscanvas/internal/config"
)

func newTestClient(serverURL string) *Client {
	return NewClient(config.NewsConfig{
		Endpoint: serverURL,
		Country:  "us",
		Category: "technology",
		APIKey:   "test-key",
	})
}

func TestTopHeadlines(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("country") != "us" || q.Get("category") != "technology" {
			t.Errorf("unexpected query: %s", r.URL.RawQuery)
		}
		if q.Get("apiKey") != "test-key" {
			t.Errorf("missing api key in query: %s", r.URL.RawQuery)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"articles":[
			{"title":"News Title","url":"https://news.com","description":"News Description"},
			{"title":"No URL"}
		]}`))
	}))
	defer server.Close()

	articles, err := newTestClient(server.URL).TopHeadlines(context.Background())
	if err != nil {
		t.Fatalf("TopHeadlines returned error: %v", err)
	}

	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
	if articles[0].Title != "News Title" || articles[0].URL != "https://news.com" {
		t.Fatalf("unexpected first article: %+v", articles[0])
	}
	if articles[1].URL != "" {
		t.Fatalf("expected empty url to survive decoding as empty, got %q", articles[1].URL)
	}
}

func TestTopHeadlinesEmptyList(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"articles":[]}`))
	}))
	defer server.Close()

	articles, err := newTestClient(server.URL).TopHeadlines(context.Background())
	if err != nil {
		t.Fatalf("TopHeadlines returned error: %v", err)
	}
	if len(articles) != 0 {
		t.Fatalf("expected no articles, got %d", len(articles))
	}
}

func TestTopHeadlinesHTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	if _, err := newTestClient(server.URL).TopHeadlines(context.Background()); err == nil {
		t.Fatal("expected error on non-2xx response")
	}
}

func TestTopHeadlinesMalformedBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	if _, err := newTestClient(server.URL).TopHeadlines(context.Background()); err == nil {
		t.Fatal("expected error on malformed body")
	}
}
