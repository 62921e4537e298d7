package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}

type fakeFeed struct {
	mu    sync.Mutex
	calls []string
}

func (f *fakeFeed) Refresh(context.Context) bool {
	f.record("refresh")
	return true
}

func (f *fakeFeed) Open(_ context.Context, position int) error {
	f.record(fmt.Sprintf("open:%d", position))
	if position > 5 {
		return errors.New("no article")
	}
	return nil
}

func (f *fakeFeed) Restore() {
	f.record("restore")
}

func (f *fakeFeed) Wait() {
	f.record("wait")
}

func (f *fakeFeed) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeFeed) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type fakeMetrics struct {
	err     error
	stopped chan struct{}
}

func (m *fakeMetrics) Run(ctx context.Context) error {
	if m.err != nil {
		return m.err
	}
	<-ctx.Done()
	close(m.stopped)
	return nil
}

func TestRunExecutesCommandsUntilQuit(t *testing.T) {
	feed := &fakeFeed{}
	metrics := &fakeMetrics{stopped: make(chan struct{})}
	commands := strings.NewReader("r\n\nopen 2\nbogus\no 9\np\nq\nr\n")

	err := New(feed, nopLogger{}, "", commands, metrics).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"refresh", "refresh", "open:2", "open:9", "restore", "wait"}, feed.Calls())
	select {
	case <-metrics.stopped:
	default:
		t.Fatal("metrics server still running")
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	feed := &fakeFeed{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- New(feed, nopLogger{}, "@every 1h", nil, nil).Run(ctx)
	}()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.Equal(t, []string{"refresh", "wait"}, feed.Calls())
}

func TestRunKeepsGoingAfterCommandsEOF(t *testing.T) {
	feed := &fakeFeed{}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := New(feed, nopLogger{}, "", strings.NewReader("p\n"), nil).Run(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"refresh", "restore", "wait"}, feed.Calls())
}

func TestRunRejectsInvalidSchedule(t *testing.T) {
	err := New(&fakeFeed{}, nopLogger{}, "not a cron", nil, nil).Run(context.Background())

	assert.Error(t, err)
}

func TestRunReturnsMetricsError(t *testing.T) {
	boom := errors.New("address in use")

	err := New(&fakeFeed{}, nopLogger{}, "", nil, &fakeMetrics{err: boom}).Run(context.Background())

	assert.ErrorIs(t, err, boom)
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input string
		want  command
		err   bool
	}{
		{input: "", want: command{kind: commandNone}},
		{input: "  R ", want: command{kind: commandRefresh}},
		{input: "refresh", want: command{kind: commandRefresh}},
		{input: "o 3", want: command{kind: commandOpen, position: 3}},
		{input: "open 12", want: command{kind: commandOpen, position: 12}},
		{input: "print", want: command{kind: commandPrint}},
		{input: "exit", want: command{kind: commandQuit}},
		{input: "o", err: true},
		{input: "o zero", err: true},
		{input: "o 0", err: true},
		{input: "dance", err: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseCommand(tt.input)
			if tt.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
