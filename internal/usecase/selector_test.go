package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"newscanvas/internal/domain"
	"newscanvas/internal/history"
)

func TestSelectCandidateFirstUnposted(t *testing.T) {
	t.Parallel()

	source := &fakeSource{articles: []domain.Article{
		{Title: "News Title", URL: "https://news.com", Description: "News Description"},
	}}
	selector := NewSelector(source, discardLogger())

	candidate := selector.SelectCandidate(context.Background(), history.History{})
	if candidate == nil {
		t.Fatal("expected a candidate, got nil")
	}
	if candidate.URL != "https://news.com" {
		t.Fatalf("unexpected url: %s", candidate.URL)
	}
	if candidate.Summary() != "News Description" {
		t.Fatalf("unexpected summary: %s", candidate.Summary())
	}
}

func TestSelectCandidateSkipsPosted(t *testing.T) {
	t.Parallel()

	source := &fakeSource{articles: []domain.Article{
		{Title: "Old", URL: "https://a.com"},
		{Title: "B", URL: "https://b.com", Description: "d"},
	}}
	selector := NewSelector(source, discardLogger())

	h := history.History{"https://a.com": time.Now()}
	candidate := selector.SelectCandidate(context.Background(), h)
	if candidate == nil {
		t.Fatal("expected a candidate, got nil")
	}
	if candidate.URL != "https://b.com" {
		t.Fatalf("expected https://b.com, got %s", candidate.URL)
	}
}

func TestSelectCandidateSkipsItemsWithoutURL(t *testing.T) {
	t.Parallel()

	source := &fakeSource{articles: []domain.Article{
		{Title: "No link"},
		{Title: "Linked", URL: "https://linked.com"},
	}}
	selector := NewSelector(source, discardLogger())

	candidate := selector.SelectCandidate(context.Background(), history.History{})
	if candidate == nil {
		t.Fatal("expected a candidate, got nil")
	}
	if candidate.URL != "https://linked.com" {
		t.Fatalf("expected https://linked.com, got %s", candidate.URL)
	}
}

func TestSelectCandidateEmptyListYieldsNone(t *testing.T) {
	t.Parallel()

	selector := NewSelector(&fakeSource{articles: []domain.Article{}}, discardLogger())

	if candidate := selector.SelectCandidate(context.Background(), history.History{}); candidate != nil {
		t.Fatalf("expected no candidate, got %v", candidate)
	}
}

func TestSelectCandidateAllPostedYieldsNone(t *testing.T) {
	t.Parallel()

	source := &fakeSource{articles: []domain.Article{
		{Title: "A", URL: "https://a.com"},
		{Title: "B", URL: "https://b.com"},
	}}
	selector := NewSelector(source, discardLogger())

	h := history.History{
		"https://a.com": time.Now(),
		"https://b.com": time.Now(),
	}
	if candidate := selector.SelectCandidate(context.Background(), h); candidate != nil {
		t.Fatalf("expected no candidate, got %v", candidate)
	}
}

func TestSelectCandidateFetchFailureYieldsNone(t *testing.T) {
	t.Parallel()

	selector := NewSelector(&fakeSource{err: errors.New("boom")}, discardLogger())

	if candidate := selector.SelectCandidate(context.Background(), history.History{}); candidate != nil {
		t.Fatalf("expected no candidate, got %v", candidate)
	}
}

func TestSelectCandidateSummaryFallsBackToTitle(t *testing.T) {
	t.Parallel()

	source := &fakeSource{articles: []domain.Article{
		{Title: "Title Only", URL: "https://t.com"},
	}}
	selector := NewSelector(source, discardLogger())

	candidate := selector.SelectCandidate(context.Background(), history.History{})
	if candidate == nil {
		t.Fatal("expected a candidate, got nil")
	}
	if candidate.Summary() != "Title Only" {
		t.Fatalf("expected title fallback, got %s", candidate.Summary())
	}
}
