package events

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chanPoller feeds PollEvent from a channel; closing it ends input
type chanPoller struct {
	events chan tcell.Event
}

func newChanPoller() *chanPoller {
	return &chanPoller{events: make(chan tcell.Event, 16)}
}

func (p *chanPoller) PollEvent() tcell.Event {
	ev, ok := <-p.events
	if !ok {
		return nil
	}
	return ev
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func startSource(t *testing.T, poller Poller, period time.Duration) (*Queue, context.CancelFunc) {
	t.Helper()
	q := NewQueue()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	NewSource(NewSourceArg{Poller: poller, Queue: q, Logger: testLogger(), TickPeriod: period}).Start(ctx)
	return q, cancel
}

func TestNewSource_Validation(t *testing.T) {
	q := NewQueue()
	p := newChanPoller()
	logger := testLogger()

	assert.Panics(t, func() { NewSource(NewSourceArg{Queue: q, Logger: logger}) })
	assert.Panics(t, func() { NewSource(NewSourceArg{Poller: p, Logger: logger}) })
	assert.Panics(t, func() { NewSource(NewSourceArg{Poller: p, Queue: q}) })

	s := NewSource(NewSourceArg{Poller: p, Queue: q, Logger: logger})
	assert.Equal(t, DefaultTickPeriod, s.TickPeriod())
	assert.Equal(t, 200*time.Millisecond, s.TickPeriod())
}

func TestSource_EmitsTicksAtCadence(t *testing.T) {
	period := 20 * time.Millisecond
	q, _ := startSource(t, newChanPoller(), period)

	start := time.Now()
	for i := 0; i < 5; i++ {
		ev, err := receiveWithin(t, q, time.Second)
		require.NoError(t, err)
		assert.Equal(t, KindTick, ev.Kind)
	}
	elapsed := time.Since(start)

	// Five ticks need at least five periods; generous upper bound for slow CI
	assert.GreaterOrEqual(t, elapsed, 5*period-2*time.Millisecond)
	assert.Less(t, elapsed, 50*period)
}

func TestSource_ForwardsKeysImmediately(t *testing.T) {
	poller := newChanPoller()
	q, _ := startSource(t, poller, time.Hour)

	poller.events <- tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)
	poller.events <- tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone)
	poller.events <- tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)

	want := []Event{
		KeyPress(Key{Code: tcell.KeyUp}),
		KeyPress(RuneKey('w')),
		KeyPress(Key{Code: tcell.KeyEscape}),
	}
	for _, w := range want {
		ev, err := receiveWithin(t, q, 200*time.Millisecond)
		require.NoError(t, err)
		assert.Equal(t, w, ev)
	}
}

func TestSource_IgnoresNonKeyEvents(t *testing.T) {
	poller := newChanPoller()
	q, _ := startSource(t, poller, time.Hour)

	poller.events <- tcell.NewEventResize(80, 24)
	poller.events <- tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone)

	ev, err := receiveWithin(t, q, 200*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, KeyPress(Key{Code: tcell.KeyDown}), ev)
	assert.Equal(t, 0, q.Len())
}

func TestSource_KeyDoesNotResetTickDeadline(t *testing.T) {
	period := 60 * time.Millisecond
	poller := newChanPoller()
	q, _ := startSource(t, poller, period)

	start := time.Now()
	// Keep typing faster than the tick period; ticks must still arrive on schedule
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		for {
			select {
			case <-stop:
				return
			case <-time.After(10 * time.Millisecond):
				select {
				case poller.events <- tcell.NewEventKey(tcell.KeyRune, 'w', tcell.ModNone):
				default:
				}
			}
		}
	}()

	for {
		ev, err := receiveWithin(t, q, time.Second)
		require.NoError(t, err)
		if ev.Kind == KindTick {
			break
		}
	}
	assert.Less(t, time.Since(start), 5*period, "tick was starved by key presses")
}

func TestSource_InputClosedClosesQueue(t *testing.T) {
	poller := newChanPoller()
	q, _ := startSource(t, poller, time.Hour)

	close(poller.events)

	_, err := receiveWithin(t, q, 500*time.Millisecond)
	assert.ErrorIs(t, err, ErrQueueClosed)
	assert.ErrorIs(t, err, ErrInputClosed)
}

func TestSource_InputErrorClosesQueue(t *testing.T) {
	poller := newChanPoller()
	q, _ := startSource(t, poller, time.Hour)

	poller.events <- tcell.NewEventError(io.ErrUnexpectedEOF)

	_, err := receiveWithin(t, q, 500*time.Millisecond)
	assert.ErrorIs(t, err, ErrQueueClosed)
	assert.Contains(t, err.Error(), io.ErrUnexpectedEOF.Error())
}

func TestSource_SimulationScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	q, cancel := startSource(t, screen, time.Hour)

	screen.InjectKey(tcell.KeyRune, ' ', tcell.ModNone)

	ev, err := receiveWithin(t, q, 500*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, KeyPress(RuneKey(' ')), ev)

	cancel()
	screen.Fini()
}
