package app

import (
	"context"
	"log/slog"
	"time"

	"newscanvas/internal/config"
	"newscanvas/internal/history"
	"newscanvas/internal/infrastructure/imagegen"
	"newscanvas/internal/infrastructure/llm"
	"newscanvas/internal/infrastructure/news"
	"newscanvas/internal/infrastructure/scheduler"
	"newscanvas/internal/infrastructure/twitter"
	"newscanvas/internal/logging"
	"newscanvas/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
}

// New builds a runnable application instance with all collaborators attached.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	store := history.NewStore(cfg.History.Path, baseLogger.With("component", "history"))

	selector := usecase.NewSelector(
		news.NewClient(cfg.News),
		baseLogger.With("component", "selector"),
	)

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Selector:        selector,
		TextGen:         llm.NewGrokClient(cfg.XAI),
		ImageGen:        imagegen.NewClient(cfg.XAI),
		Publisher:       twitter.NewPublisher(cfg.Twitter),
		Store:           store,
		RetentionDays:   cfg.History.RetentionDays,
		PostSourceReply: cfg.Twitter.PostSourceReply,
		Logger:          baseLogger.With("component", "pipeline"),
	})

	return &Application{cfg: cfg, pipeline: pipeline}
}

// Run performs a single pipeline execution.
func (a *Application) Run(ctx context.Context) {
	if a.pipeline == nil {
		return
	}

	now := time.Now().In(a.cfg.Scheduler.Location())
	a.pipeline.Run(ctx, now)
}

// RunDaemon keeps the process alive and executes the pipeline on the
// configured cron schedule until the context is cancelled.
func (a *Application) RunDaemon(ctx context.Context) error {
	driver := scheduler.NewCronScheduler(a.cfg.Scheduler.CronExpression, a.cfg.Scheduler.Location())
	sched := usecase.NewScheduler(driver, a.pipeline)

	if err := sched.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return sched.Stop(stopCtx)
}
