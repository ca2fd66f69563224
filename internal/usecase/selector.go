package usecase

import (
	"context"
	"log/slog"

	"newscanvas/internal/domain"
	"newscanvas/internal/history"
	"newscanvas/internal/ports"
)

// Selector picks the first unposted article from the provider's ranked list.
type Selector struct {
	source ports.NewsSource
	logger *slog.Logger
}

// NewSelector wires the headline source.
func NewSelector(source ports.NewsSource, logger *slog.Logger) *Selector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Selector{source: source, logger: logger}
}

// SelectCandidate scans the list in provider order and returns the first
// article whose URL is non-empty and not yet in history. Items without a URL
// can never be deduplicated, so they are skipped rather than risk reposting.
// A nil result means no candidate: fetch failure, an empty list, or every
// item already posted — three distinct log conditions, one outcome.
func (s *Selector) SelectCandidate(ctx context.Context, h history.History) *domain.Article {
	articles, err := s.source.TopHeadlines(ctx)
	if err != nil {
		s.logger.Error("fetch headlines failed", "error", err)
		return nil
	}

	if len(articles) == 0 {
		s.logger.Warn("no articles in provider response")
		return nil
	}

	for _, article := range articles {
		if article.URL == "" {
			continue
		}
		if history.Contains(h, article.URL) {
			continue
		}
		s.logger.Info("found unposted article", "title", article.Title, "url", article.URL)
		return &article
	}

	s.logger.Warn("all articles already posted")
	return nil
}
