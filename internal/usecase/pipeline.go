package usecase

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"newscanvas/internal/history"
	"newscanvas/internal/ports"
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	Selector        *Selector
	TextGen         ports.TextGenerator
	ImageGen        ports.ImageGenerator
	Publisher       ports.Publisher
	Store           *history.Store
	RetentionDays   int
	PostSourceReply bool
	Logger          *slog.Logger
}

// Pipeline runs the select -> generate -> render -> caption -> publish ->
// record workflow once per invocation. Every stage after selection aborts the
// run on failure; history is only written after a confirmed publish.
type Pipeline struct {
	selector        *Selector
	textGen         ports.TextGenerator
	imageGen        ports.ImageGenerator
	publisher       ports.Publisher
	store           *history.Store
	retentionDays   int
	postSourceReply bool
	logger          *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		selector:        deps.Selector,
		textGen:         deps.TextGen,
		imageGen:        deps.ImageGen,
		publisher:       deps.Publisher,
		store:           deps.Store,
		retentionDays:   deps.RetentionDays,
		postSourceReply: deps.PostSourceReply,
		logger:          logger,
	}
}

// Run executes one pipeline pass. Stage failures end the run quietly (logged,
// no history mutation); a wrapping scheduler sees a clean return either way.
func (p *Pipeline) Run(ctx context.Context, now time.Time) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("pipeline panicked", "panic", r, "stack", string(debug.Stack()))
		}
	}()

	hist := history.Prune(p.store.Load(), p.retentionDays, now)
	p.logger.Info("history loaded", "tracked", len(hist))

	candidate := p.selector.SelectCandidate(ctx, hist)
	if candidate == nil {
		p.logger.Warn("no unposted article found, ending run")
		return
	}

	summary := candidate.Summary()

	directive, err := p.textGen.GenerateImageDirective(ctx, summary)
	if err != nil {
		p.logger.Error("image directive generation failed, ending run", "error", err)
		return
	}
	p.logger.Info("image directive generated", "directive", directive)

	imageURL, err := p.imageGen.Render(ctx, directive)
	if err != nil {
		p.logger.Error("image rendering failed, ending run", "error", err)
		return
	}
	p.logger.Info("image rendered", "url", imageURL)

	caption, err := p.textGen.GenerateCaption(ctx, summary, candidate.URL)
	if err != nil {
		p.logger.Error("caption generation failed, ending run", "error", err)
		return
	}
	p.logger.Info("caption generated", "caption", caption)

	postID, err := p.publisher.Publish(ctx, caption, imageURL)
	if err != nil {
		p.logger.Error("publish failed, ending run", "error", err)
		return
	}
	p.logger.Info("post published", "post_id", postID)

	if p.postSourceReply {
		if err := p.publisher.ReplyWithSource(ctx, postID, candidate.Title, candidate.URL); err != nil {
			// Attribution is auxiliary; the post itself already succeeded.
			p.logger.Warn("source reply failed", "post_id", postID, "error", err)
		}
	}

	hist = history.Mark(hist, candidate.URL, now)
	if err := p.store.Save(hist); err != nil {
		// The post is out; losing the record only risks a later duplicate.
		p.logger.Error("save history failed", "error", err)
		return
	}

	p.logger.Info("article recorded as posted", "url", candidate.URL)
}
