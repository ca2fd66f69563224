package twitter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/dghubble/oauth1"

	"newscanvas/internal/config"
	"newscanvas/internal/ports"
)

const (
	defaultUploadEndpoint = "https://upload.twitter.com/1.1/media/upload.json"
	defaultTweetEndpoint  = "https://api.twitter.com/2/tweets"
)

// Publisher posts image tweets through the platform's v1.1 media-upload and
// v2 tweet-create endpoints, signing every call with OAuth 1.0a user context.
type Publisher struct {
	uploadEndpoint string
	tweetEndpoint  string
	apiClient      *http.Client
	imageClient    *http.Client
}

var _ ports.Publisher = (*Publisher)(nil)

// NewPublisher builds a signing client from the credential set.
func NewPublisher(cfg config.TwitterConfig) *Publisher {
	oauthCfg := oauth1.NewConfig(cfg.ConsumerKey, cfg.ConsumerSecret)
	token := oauth1.NewToken(cfg.AccessToken, cfg.AccessTokenSecret)

	apiClient := oauthCfg.Client(oauth1.NoContext, token)
	apiClient.Timeout = 15 * time.Second

	return &Publisher{
		uploadEndpoint: defaultUploadEndpoint,
		tweetEndpoint:  defaultTweetEndpoint,
		apiClient:      apiClient,
		// Binary image downloads need more headroom than the metadata calls.
		imageClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Publish downloads the rendered image, uploads it as media, and creates a
// post carrying the caption with the media attached. It returns the created
// post id. A failure at any step fails the whole publish; an already-uploaded
// media id is not cleaned up if tweet creation fails afterwards.
func (p *Publisher) Publish(ctx context.Context, caption, imageURL string) (string, error) {
	image, err := p.fetchImage(ctx, imageURL)
	if err != nil {
		return "", fmt.Errorf("fetch image: %w", err)
	}

	mediaID, err := p.uploadMedia(ctx, image)
	if err != nil {
		return "", fmt.Errorf("upload media: %w", err)
	}

	postID, err := p.createTweet(ctx, tweetRequest{
		Text:  caption,
		Media: &tweetMedia{MediaIDs: []string{mediaID}},
	})
	if err != nil {
		return "", fmt.Errorf("create post: %w", err)
	}

	return postID, nil
}

// ReplyWithSource threads a source-attribution reply under an existing post.
func (p *Publisher) ReplyWithSource(ctx context.Context, postID, title, sourceURL string) error {
	_, err := p.createTweet(ctx, tweetRequest{
		Text:  fmt.Sprintf("[SOURCE]: %s %s", title, sourceURL),
		Reply: &tweetReply{InReplyToTweetID: postID},
	})
	if err != nil {
		return fmt.Errorf("reply with source: %w", err)
	}
	return nil
}

func (p *Publisher) fetchImage(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	resp, err := p.imageClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}

func (p *Publisher) uploadMedia(ctx context.Context, image []byte) (string, error) {
	var form bytes.Buffer
	writer := multipart.NewWriter(&form)

	part, err := writer.CreateFormFile("media", "image.jpg")
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return "", fmt.Errorf("write form file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.uploadEndpoint, &form)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := p.apiClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("media upload error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var media struct {
		MediaIDString string `json:"media_id_string"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&media); err != nil {
		return "", fmt.Errorf("decode upload response: %w", err)
	}

	if media.MediaIDString == "" {
		return "", fmt.Errorf("media upload returned no id")
	}

	return media.MediaIDString, nil
}

type tweetRequest struct {
	Text  string      `json:"text"`
	Media *tweetMedia `json:"media,omitempty"`
	Reply *tweetReply `json:"reply,omitempty"`
}

type tweetMedia struct {
	MediaIDs []string `json:"media_ids"`
}

type tweetReply struct {
	InReplyToTweetID string `json:"in_reply_to_tweet_id"`
}

func (p *Publisher) createTweet(ctx context.Context, payload tweetRequest) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal tweet payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tweetEndpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.apiClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("tweet error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	var created struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("decode tweet response: %w", err)
	}

	if created.Data.ID == "" {
		return "", fmt.Errorf("tweet response missing id")
	}

	return created.Data.ID, nil
}
