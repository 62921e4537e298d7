package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"news-ticker/internal/domain/model"
	"news-ticker/internal/domain/neterr"
	"news-ticker/internal/domain/ports"
)

// DefaultLookbackDays is how far back the editor's picks are requested.
const DefaultLookbackDays = 7

var (
	// ErrCycleInFlight is returned when a cycle is requested while another one runs.
	ErrCycleInFlight = errors.New("fetch cycle already in flight")
	// ErrNoArticle is returned when a display position does not hold an article.
	ErrNoArticle = errors.New("no article at position")
)

// TickerFeedConfig controls the pacing and lookback of every cycle.
type TickerFeedConfig struct {
	Delay        time.Duration
	LookbackDays int
}

// TickerFeed runs fetch cycles and owns the newest-first display buffer.
type TickerFeed struct {
	fetcher      *PicksFetcher
	connectivity ports.ConnectivityChecker
	presenter    ports.Presenter
	opener       ports.LinkOpener
	logger       ports.Logger
	clock        Clock
	delay        time.Duration
	lookbackDays int

	inFlight atomic.Bool
	cycles   sync.WaitGroup

	mu     sync.Mutex
	buffer []model.Article
}

// NewTickerFeed constructs a TickerFeed.
func NewTickerFeed(
	fetcher *PicksFetcher,
	connectivity ports.ConnectivityChecker,
	presenter ports.Presenter,
	opener ports.LinkOpener,
	logger ports.Logger,
	clock Clock,
	cfg TickerFeedConfig,
) *TickerFeed {
	if clock == nil {
		clock = SystemClock()
	}
	if cfg.Delay < 0 {
		cfg.Delay = DefaultTickerDelay
	}
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = DefaultLookbackDays
	}
	return &TickerFeed{
		fetcher:      fetcher,
		connectivity: connectivity,
		presenter:    presenter,
		opener:       opener,
		logger:       logger,
		clock:        clock,
		delay:        cfg.Delay,
		lookbackDays: cfg.LookbackDays,
	}
}

// Loading reports whether a cycle is currently in flight.
func (f *TickerFeed) Loading() bool {
	return f.inFlight.Load()
}

// Refresh starts a new cycle in the background. It returns false without
// touching the display buffer when a cycle is already running.
func (f *TickerFeed) Refresh(ctx context.Context) bool {
	if !f.inFlight.CompareAndSwap(false, true) {
		f.logger.Info(ctx, "refresh ignored, cycle in flight")
		return false
	}

	f.cycles.Add(1)
	go func() {
		defer f.cycles.Done()
		if err := f.runCycle(ctx); err != nil && !errors.Is(err, context.Canceled) {
			f.logger.Error(ctx, "fetch cycle failed", "error", err)
		}
	}()
	return true
}

// RunCycle runs one cycle on the calling goroutine.
func (f *TickerFeed) RunCycle(ctx context.Context) error {
	if !f.inFlight.CompareAndSwap(false, true) {
		return ErrCycleInFlight
	}
	return f.runCycle(ctx)
}

// Wait blocks until every background cycle has returned.
func (f *TickerFeed) Wait() {
	f.cycles.Wait()
}

// Snapshot returns a copy of the display buffer, newest first.
func (f *TickerFeed) Snapshot() []model.Article {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

// Restore republishes the current display buffer.
func (f *TickerFeed) Restore() {
	f.presenter.Publish(f.Snapshot())
}

// Open launches the article shown at the 1-based position. Launch failures
// are logged and otherwise ignored.
func (f *TickerFeed) Open(ctx context.Context, position int) error {
	f.mu.Lock()
	if position < 1 || position > len(f.buffer) {
		f.mu.Unlock()
		return fmt.Errorf("%w %d", ErrNoArticle, position)
	}
	article := f.buffer[position-1]
	f.mu.Unlock()

	if err := f.opener.Open(article.URL); err != nil {
		f.logger.Error(ctx, "open article failed", "id", article.ID, "error", err)
	}
	return nil
}

func (f *TickerFeed) runCycle(ctx context.Context) error {
	defer f.inFlight.Store(false)

	if !f.connectivity.Connected(ctx) {
		f.presenter.Message(neterr.CategoryNoConnectivity, neterr.CategoryNoConnectivity.Message())
		f.presenter.Loading(false)
		return nil
	}

	f.mu.Lock()
	f.buffer = f.buffer[:0:0]
	cleared := f.snapshotLocked()
	f.mu.Unlock()
	f.presenter.Publish(cleared)

	fromDate := FromDate(f.clock.Now(), f.lookbackDays)
	ticker := NewTicker(func(ctx context.Context) (model.Batch, error) {
		return f.fetcher.Fetch(ctx, fromDate)
	}, f.delay, f.clock)

	start := f.clock.Now()
	err := ticker.Run(ctx, &cycleObserver{feed: f, ctx: ctx})
	f.logger.Info(ctx, "fetch cycle ended",
		"state", ticker.State().String(),
		"emitted", ticker.Position(),
		"duration", f.clock.Now().Sub(start),
	)
	return err
}

func (f *TickerFeed) snapshotLocked() []model.Article {
	out := make([]model.Article, len(f.buffer))
	copy(out, f.buffer)
	return out
}

// cycleObserver translates ticker signals into presenter updates.
type cycleObserver struct {
	feed *TickerFeed
	ctx  context.Context
}

func (o *cycleObserver) LoadingStarted() {
	o.feed.presenter.Loading(true)
}

func (o *cycleObserver) ItemEmitted(article model.Article) {
	f := o.feed
	f.mu.Lock()
	f.buffer = append(f.buffer, model.Article{})
	copy(f.buffer[1:], f.buffer[:len(f.buffer)-1])
	f.buffer[0] = article
	snapshot := f.snapshotLocked()
	f.mu.Unlock()

	f.presenter.Publish(snapshot)
	f.presenter.ScrollToTop()
}

func (o *cycleObserver) LoadingFinished() {
	o.feed.presenter.Loading(false)
}

func (o *cycleObserver) Failed(err error) {
	category, message := neterr.Describe(err)
	o.feed.logger.Error(o.ctx, "editors picks unavailable", "category", category.String(), "error", err)
	o.feed.presenter.Message(category, message)
	o.feed.presenter.Loading(false)
}
