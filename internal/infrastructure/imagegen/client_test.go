package imagegen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"newscanvas/internal/config"
)

func newTestClient(serverURL string) *Client {
	return NewClient(config.XAIConfig{
		BaseURL:    serverURL,
		ImageModel: "test-image-model",
		APIKey:     "test-key",
	})
}

func TestRender(t *testing.T) {
	t.Parallel()

	var payload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/images/generations" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"data":[{"url":"https://images.example/render.png"}]}`))
	}))
	defer server.Close()

	url, err := newTestClient(server.URL).Render(context.Background(), "a neon datacenter")
	if err != nil {
		t.Fatalf("Render returned error: %v", err)
	}

	if url != "https://images.example/render.png" {
		t.Fatalf("unexpected url: %q", url)
	}
	if payload["prompt"] != "a neon datacenter" {
		t.Fatalf("unexpected prompt: %v", payload["prompt"])
	}
	if n, ok := payload["n"].(float64); !ok || n != 1 {
		t.Fatalf("expected exactly one image requested, got %v", payload["n"])
	}
}

func TestRenderEmptyDirectiveSkipsCall(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	if _, err := newTestClient(server.URL).Render(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty directive")
	}
	if calls.Load() != 0 {
		t.Fatalf("expected no HTTP call for empty directive, got %d", calls.Load())
	}
}

func TestRenderHTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "content policy", http.StatusBadRequest)
	}))
	defer server.Close()

	if _, err := newTestClient(server.URL).Render(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error on non-2xx response")
	}
}

func TestRenderNoData(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer server.Close()

	if _, err := newTestClient(server.URL).Render(context.Background(), "prompt"); err == nil {
		t.Fatal("expected error when response carries no image")
	}
}
