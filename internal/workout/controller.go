package workout

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/lowaak/workout-tool/internal/events"
)

// Controller is the render/update loop. It owns the AppState exclusively and
// is the only consumer of the event queue.
type Controller struct {
	state    AppState
	splits   []Split
	queue    *events.Queue
	renderer Renderer
	terminal Terminal
	logger   *log.Logger
	now      func() time.Time
}

// NewControllerArg holds the arguments for creating a new Controller
type NewControllerArg struct {
	Queue    *events.Queue
	Renderer Renderer
	Terminal Terminal
	Logger   *log.Logger
	// Splits defaults to AllSplits
	Splits []Split
	// Now defaults to time.Now
	Now func() time.Time
}

// NewController creates a Controller with the initial AppState
func NewController(args NewControllerArg) *Controller {
	if args.Queue == nil {
		panic("Controller: queue cannot be nil")
	}
	if args.Renderer == nil {
		panic("Controller: renderer cannot be nil")
	}
	if args.Terminal == nil {
		panic("Controller: terminal cannot be nil")
	}
	if args.Logger == nil {
		panic("Controller: logger cannot be nil")
	}
	splits := args.Splits
	if len(splits) == 0 {
		splits = AllSplits
	}
	now := args.Now
	if now == nil {
		now = time.Now
	}

	return &Controller{
		state:    NewAppState(now(), len(splits)),
		splits:   splits,
		queue:    args.Queue,
		renderer: args.Renderer,
		terminal: args.Terminal,
		logger:   args.Logger,
		now:      now,
	}
}

// State returns a copy of the current state
func (c *Controller) State() AppState {
	return c.state
}

// Snapshot builds the view of the current state at now
func (c *Controller) Snapshot(now time.Time) Snapshot {
	split := c.splits[c.state.SelectedSplit]
	return Snapshot{
		SplitIndex: c.state.SelectedSplit,
		Splits:     c.splits,
		Exercises:  split.ExerciseText(),
		SetCounter: c.state.SetCounter,
		Paused:     c.state.Paused,
		Elapsed:    c.state.Elapsed(now),
	}
}

// Run renders, waits for the next event, applies it, and repeats until an exit
// key is processed. The terminal is torn down before Run returns nil; every
// error return is fatal and leaves teardown to the caller.
func (c *Controller) Run(ctx context.Context) error {
	c.logger.Printf("Controller: Starting on split %s", c.splits[c.state.SelectedSplit].Name)

	for {
		if err := c.renderer.Render(c.Snapshot(c.now())); err != nil {
			return fmt.Errorf("render: %w", err)
		}

		ev, err := c.queue.Receive(ctx)
		if err != nil {
			return fmt.Errorf("receive event: %w", err)
		}

		t := c.state.Apply(ev, c.now())
		if t.Changed {
			c.logTransition(t)
		}

		if t.Exit {
			c.logger.Printf("Controller: Exit requested, %s", c.summary())
			if err := c.terminal.Teardown(); err != nil {
				return fmt.Errorf("teardown terminal: %w", err)
			}
			return nil
		}
	}
}

func (c *Controller) logTransition(t Transition) {
	switch t.Action {
	case ActionSplitUp, ActionSplitDown:
		c.logger.Printf("Controller: %s -> split %s", t.Action, c.splits[c.state.SelectedSplit].Name)
	case ActionIncrement, ActionDecrement:
		c.logger.Printf("Controller: %s -> %d sets", t.Action, c.state.SetCounter)
	case ActionToggleTimer:
		if c.state.Paused {
			c.logger.Printf("Controller: Timer paused")
		} else {
			c.logger.Printf("Controller: Timer running")
		}
	}
}

func (c *Controller) summary() string {
	timer := "running"
	if c.state.Paused {
		timer = "paused"
	}
	return fmt.Sprintf("split=%s sets=%d timer=%s", c.splits[c.state.SelectedSplit].Name, c.state.SetCounter, timer)
}
