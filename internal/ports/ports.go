package ports

import (
	"context"
	"time"

	"newscanvas/internal/domain"
)

// NewsSource pulls the current ranked headline list from the news provider.
type NewsSource interface {
	TopHeadlines(ctx context.Context) ([]domain.Article, error)
}

// TextGenerator turns an article summary into publishable text fragments.
type TextGenerator interface {
	GenerateImageDirective(ctx context.Context, summary string) (string, error)
	GenerateCaption(ctx context.Context, summary, sourceURL string) (string, error)
}

// ImageGenerator renders an image for a directive and returns its URL.
type ImageGenerator interface {
	Render(ctx context.Context, directive string) (string, error)
}

// Publisher uploads media and creates posts on the social platform.
type Publisher interface {
	Publish(ctx context.Context, caption, imageURL string) (string, error)
	ReplyWithSource(ctx context.Context, postID, title, sourceURL string) error
}

// Scheduler controls when pipeline runs execute in daemon mode.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
