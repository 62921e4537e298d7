package app

import (
	"bufio"
	"context"
	"errors"
	"io"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"news-ticker/internal/domain/ports"
)

// Feed is the part of the ticker feed driven by the application.
type Feed interface {
	Refresh(ctx context.Context) bool
	Open(ctx context.Context, position int) error
	Restore()
	Wait()
}

// MetricsServer serves metrics until its context is cancelled.
type MetricsServer interface {
	Run(ctx context.Context) error
}

var errQuit = errors.New("quit requested")

// App manages the lifecycle of the ticker: the initial load, scheduled
// refreshes, operator commands and the optional metrics endpoint.
type App struct {
	cron     *cron.Cron
	feed     Feed
	logger   ports.Logger
	schedule string
	commands io.Reader
	metrics  MetricsServer
}

// New constructs an App instance. metrics may be nil.
func New(feed Feed, logger ports.Logger, schedule string, commands io.Reader, metrics MetricsServer) *App {
	return &App{
		cron:     cron.New(),
		feed:     feed,
		logger:   logger,
		schedule: schedule,
		commands: commands,
		metrics:  metrics,
	}
}

// Run loads the picks immediately and then serves refreshes until ctx is
// cancelled or the operator quits.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	if err := a.scheduleRefresh(gctx); err != nil {
		return err
	}

	a.logger.Info(gctx, "loading editors picks")
	a.feed.Refresh(gctx)

	if a.schedule != "" {
		a.logger.Info(gctx, "starting scheduler", "cron", a.schedule)
		a.cron.Start()
	}

	if a.metrics != nil {
		g.Go(func() error {
			return a.metrics.Run(gctx)
		})
	}
	g.Go(func() error {
		return a.readCommands(gctx)
	})

	err := g.Wait()

	stopCtx := a.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-time.After(5 * time.Second):
	}
	a.feed.Wait()
	a.logger.Info(context.Background(), "ticker stopped")

	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

func (a *App) scheduleRefresh(ctx context.Context) error {
	if a.schedule == "" {
		return nil
	}
	_, err := a.cron.AddFunc(a.schedule, func() {
		if !a.feed.Refresh(ctx) {
			a.logger.Info(ctx, "scheduled refresh skipped, cycle in flight")
		}
	})
	if err != nil {
		return err
	}
	return nil
}

func (a *App) readCommands(ctx context.Context) error {
	if a.commands == nil {
		<-ctx.Done()
		return nil
	}

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(a.commands)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				lines = nil
				continue
			}
			if err := a.execute(ctx, line); err != nil {
				return err
			}
		}
	}
}

func (a *App) execute(ctx context.Context, line string) error {
	cmd, err := parseCommand(line)
	if err != nil {
		a.logger.Info(ctx, "invalid command", "input", line, "error", err)
		return nil
	}

	switch cmd.kind {
	case commandNone:
	case commandQuit:
		return errQuit
	case commandRefresh:
		if !a.feed.Refresh(ctx) {
			a.logger.Info(ctx, "refresh ignored, still loading")
		}
	case commandPrint:
		a.feed.Restore()
	case commandOpen:
		if err := a.feed.Open(ctx, cmd.position); err != nil {
			a.logger.Info(ctx, "cannot open article", "error", err)
		}
	}
	return nil
}
