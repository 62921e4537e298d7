package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"news-ticker/internal/domain/model"
	"news-ticker/internal/domain/neterr"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) FetchEditorsPicks(ctx context.Context, fromDate string) ([]model.Article, error) {
	args := m.Called(ctx, fromDate)
	articles, _ := args.Get(0).([]model.Article)
	return articles, args.Error(1)
}

// fakeClock fires the first fireFirst waits immediately and blocks every
// later one until the context is cancelled.
type fakeClock struct {
	mu        sync.Mutex
	now       time.Time
	waits     []time.Duration
	fireFirst int
	blocked   chan struct{}
}

func newFakeClock(now time.Time, fireFirst int) *fakeClock {
	return &fakeClock{now: now, fireFirst: fireFirst, blocked: make(chan struct{}, 16)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.waits = append(c.waits, d)
	if c.fireFirst < 0 || len(c.waits) <= c.fireFirst {
		ch := make(chan time.Time, 1)
		ch <- c.now.Add(d)
		return ch
	}
	c.blocked <- struct{}{}
	return make(chan time.Time)
}

func (c *fakeClock) Waits() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]time.Duration, len(c.waits))
	copy(out, c.waits)
	return out
}

type recordingObserver struct {
	mu     sync.Mutex
	events []string
	items  []model.Article
	err    error
}

func (o *recordingObserver) LoadingStarted() {
	o.record("started")
}

func (o *recordingObserver) ItemEmitted(article model.Article) {
	o.mu.Lock()
	o.items = append(o.items, article)
	o.mu.Unlock()
	o.record("item:" + article.ID)
}

func (o *recordingObserver) LoadingFinished() {
	o.record("finished")
}

func (o *recordingObserver) Failed(err error) {
	o.mu.Lock()
	o.err = err
	o.mu.Unlock()
	o.record("failed")
}

func (o *recordingObserver) record(event string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
}

func (o *recordingObserver) Events() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.events...)
}

type recordingPresenter struct {
	mu        sync.Mutex
	events    []string
	published [][]model.Article
	messages  []neterr.Category
}

func (p *recordingPresenter) Loading(active bool) {
	p.record(fmt.Sprintf("loading:%t", active))
}

func (p *recordingPresenter) Publish(articles []model.Article) {
	p.mu.Lock()
	p.published = append(p.published, articles)
	p.mu.Unlock()
	p.record(fmt.Sprintf("publish:%d", len(articles)))
}

func (p *recordingPresenter) ScrollToTop() {
	p.record("scroll")
}

func (p *recordingPresenter) Message(category neterr.Category, message string) {
	p.mu.Lock()
	p.messages = append(p.messages, category)
	p.mu.Unlock()
	p.record("message:" + category.String())
}

func (p *recordingPresenter) record(event string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
}

func (p *recordingPresenter) Events() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.events...)
}

func (p *recordingPresenter) LastPublished() []model.Article {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.published) == 0 {
		return nil
	}
	return p.published[len(p.published)-1]
}

type staticConnectivity bool

func (c staticConnectivity) Connected(context.Context) bool {
	return bool(c)
}

type recordingOpener struct {
	urls []string
	err  error
}

func (o *recordingOpener) Open(url string) error {
	o.urls = append(o.urls, url)
	return o.err
}

func article(id string) model.Article {
	return model.Article{
		ID:          id,
		SectionID:   "world",
		SectionName: "World news",
		Title:       "Title " + id,
		URL:         "https://www.theguardian.com/" + id,
	}
}
