package events

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lowaak/workout-tool/internal/go_func_utils"
)

// DefaultTickPeriod is the fixed cadence of Tick events
const DefaultTickPeriod = 200 * time.Millisecond

// ErrInputClosed indicates the input device stopped delivering events
var ErrInputClosed = errors.New("input closed")

// Poller is the blocking input side of a terminal. tcell.Screen satisfies it.
type Poller interface {
	// PollEvent blocks until an event is available; nil means no more events
	PollEvent() tcell.Event
}

// Source merges keyboard input and a fixed-rate tick into a single Queue
type Source struct {
	poller     Poller
	queue      *Queue
	logger     *log.Logger
	tickPeriod time.Duration
	now        func() time.Time

	keys     chan Key
	failures chan error
}

// NewSourceArg holds the arguments for creating a new Source
type NewSourceArg struct {
	Poller Poller
	Queue  *Queue
	Logger *log.Logger
	// TickPeriod overrides DefaultTickPeriod when positive
	TickPeriod time.Duration
}

// NewSource creates a Source. Nothing runs until Start is called.
func NewSource(args NewSourceArg) *Source {
	if args.Poller == nil {
		panic("Source: poller cannot be nil")
	}
	if args.Queue == nil {
		panic("Source: queue cannot be nil")
	}
	if args.Logger == nil {
		panic("Source: logger cannot be nil")
	}
	period := args.TickPeriod
	if period <= 0 {
		period = DefaultTickPeriod
	}
	return &Source{
		poller:     args.Poller,
		queue:      args.Queue,
		logger:     args.Logger,
		tickPeriod: period,
		now:        time.Now,
		keys:       make(chan Key),
		failures:   make(chan error, 1),
	}
}

// TickPeriod returns the cadence this Source emits Tick events at
func (s *Source) TickPeriod() time.Duration {
	return s.tickPeriod
}

// Start launches the input reader and the multiplexing worker. Neither stops
// on its own; cancelling ctx stops the worker, and the reader exits once the
// poller returns nil.
func (s *Source) Start(ctx context.Context) {
	go_func_utils.SafeGo(s.logger, "EventSource input reader", func() { s.readInput(ctx) })
	go_func_utils.SafeGo(s.logger, "EventSource", func() { s.run(ctx) })
}

// readInput blocks on the poller and forwards key events to the worker.
// Non-key events (resize, mouse, paste) are not part of the event stream.
func (s *Source) readInput(ctx context.Context) {
	for {
		ev := s.poller.PollEvent()
		switch e := ev.(type) {
		case nil:
			s.fail(ErrInputClosed)
			return
		case *tcell.EventError:
			s.fail(e)
			return
		case *tcell.EventKey:
			select {
			case s.keys <- KeyFromTcell(e):
			case <-ctx.Done():
				return
			}
		}
	}
}

func (s *Source) fail(err error) {
	select {
	case s.failures <- err:
	default:
	}
}

// run is the worker loop. Every iteration pushes exactly one event, except
// when the timer fires early and no deadline has been reached yet.
func (s *Source) run(ctx context.Context) {
	next := s.now().Add(s.tickPeriod)
	timer := time.NewTimer(s.tickPeriod)
	defer timer.Stop()

	for {
		timeout := next.Sub(s.now())
		if timeout <= 0 {
			// Deadline already passed: the tick wins so a burst of keys cannot starve it
			if !s.emit(Tick()) {
				return
			}
			next = s.now().Add(s.tickPeriod)
			continue
		}

		timer.Reset(timeout)
		select {
		case <-ctx.Done():
			return
		case err := <-s.failures:
			s.logger.Printf("EventSource: input failed: %v", err)
			s.queue.Close(fmt.Errorf("poll input: %w", err))
			return
		case key := <-s.keys:
			timer.Stop()
			if !s.emit(KeyPress(key)) {
				return
			}
			continue
		case <-timer.C:
		}

		now := s.now()
		if !now.Before(next) {
			if !s.emit(Tick()) {
				return
			}
			next = now.Add(s.tickPeriod)
		}
	}
}

func (s *Source) emit(ev Event) bool {
	if !s.queue.Push(ev) {
		s.logger.Printf("EventSource: queue closed, dropping %s and stopping", ev)
		return false
	}
	return true
}
