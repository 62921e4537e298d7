package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"news-ticker/internal/domain/model"
)

// DefaultTickerDelay is the pause between two revealed articles.
const DefaultTickerDelay = 2 * time.Second

// ErrTickerSpent is returned when Run is called on a ticker that already ran.
var ErrTickerSpent = errors.New("ticker already ran")

// TickerState is a step of the reveal state machine.
type TickerState int

const (
	TickerIdle TickerState = iota
	TickerLoading
	TickerEmitting
	TickerPacing
	TickerCompleted
	TickerFailed
	TickerCancelled
)

func (s TickerState) String() string {
	switch s {
	case TickerIdle:
		return "idle"
	case TickerLoading:
		return "loading"
	case TickerEmitting:
		return "emitting"
	case TickerPacing:
		return "pacing"
	case TickerCompleted:
		return "completed"
	case TickerFailed:
		return "failed"
	case TickerCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can happen from s.
func (s TickerState) Terminal() bool {
	return s == TickerCompleted || s == TickerFailed || s == TickerCancelled
}

// TickerObserver receives the signals of one reveal cycle. ItemEmitted is
// called synchronously; the next item is not scheduled before it returns.
type TickerObserver interface {
	LoadingStarted()
	ItemEmitted(article model.Article)
	LoadingFinished()
	Failed(err error)
}

// BatchSource produces the batch to reveal.
type BatchSource func(ctx context.Context) (model.Batch, error)

// BatchOf adapts an already fetched batch into a BatchSource.
func BatchOf(batch model.Batch) BatchSource {
	return func(context.Context) (model.Batch, error) {
		return batch, nil
	}
}

// Ticker reveals the articles of one batch one at a time.
// A Ticker runs at most once; create a new one for every cycle.
type Ticker struct {
	source BatchSource
	delay  time.Duration
	clock  Clock

	mu       sync.Mutex
	state    TickerState
	position int
}

// NewTicker constructs a Ticker in the idle state.
func NewTicker(source BatchSource, delay time.Duration, clock Clock) *Ticker {
	if delay < 0 {
		delay = 0
	}
	if clock == nil {
		clock = SystemClock()
	}
	return &Ticker{
		source: source,
		delay:  delay,
		clock:  clock,
		state:  TickerIdle,
	}
}

// State returns the current state of the machine.
func (t *Ticker) State() TickerState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Position returns how many articles have been emitted so far.
func (t *Ticker) Position() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.position
}

// Run drives the machine to a terminal state. It returns ctx.Err() when
// cancelled and the source error when the fetch failed.
func (t *Ticker) Run(ctx context.Context, observer TickerObserver) error {
	if !t.transition(TickerIdle, TickerLoading) {
		return ErrTickerSpent
	}

	if err := ctx.Err(); err != nil {
		t.set(TickerCancelled)
		return err
	}

	observer.LoadingStarted()

	batch, err := t.source(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		t.set(TickerCancelled)
		return ctxErr
	}
	if err != nil {
		t.set(TickerFailed)
		observer.Failed(err)
		return err
	}

	items := batch.Items()
	for i, article := range items {
		if i > 0 {
			t.set(TickerPacing)
			if err := t.pause(ctx); err != nil {
				t.set(TickerCancelled)
				return err
			}
		}

		if err := ctx.Err(); err != nil {
			t.set(TickerCancelled)
			return err
		}

		t.emitting()
		observer.ItemEmitted(article)
	}

	if err := ctx.Err(); err != nil {
		t.set(TickerCancelled)
		return err
	}

	t.set(TickerCompleted)
	observer.LoadingFinished()
	return nil
}

func (t *Ticker) pause(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.clock.After(t.delay):
		return nil
	}
}

func (t *Ticker) emitting() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = TickerEmitting
	t.position++
}

func (t *Ticker) set(state TickerState) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = state
}

func (t *Ticker) transition(from, to TickerState) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != from {
		return false
	}
	t.state = to
	return true
}
