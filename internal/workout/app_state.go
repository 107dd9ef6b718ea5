package workout

import (
	"math"
	"time"

	"github.com/lowaak/workout-tool/internal/events"
)

// AppState is the whole mutable state of a session. It is a plain value owned
// by the Controller; nothing else reads or writes it concurrently.
type AppState struct {
	SelectedSplit int       // Always in [0, splitCount)
	SetCounter    uint32    // Never below zero, saturates at math.MaxUint32
	Paused        bool      // Timer starts paused
	SessionOrigin time.Time // Elapsed time is measured from here

	splitCount int
}

// Transition describes what applying one event did to the state
type Transition struct {
	Action  Action
	Exit    bool
	Changed bool
}

// NewAppState returns the initial state: first split, no sets, timer paused
func NewAppState(now time.Time, splitCount int) AppState {
	if splitCount <= 0 {
		panic("AppState: splitCount must be positive")
	}
	return AppState{
		SelectedSplit: 0,
		SetCounter:    0,
		Paused:        true,
		SessionOrigin: now,
		splitCount:    splitCount,
	}
}

// SplitCount returns the number of selectable splits
func (s AppState) SplitCount() int {
	return s.splitCount
}

// Elapsed is the time shown on the timer. While paused every tick re-stamps
// the origin, so this stays at (about) zero.
func (s AppState) Elapsed(now time.Time) time.Duration {
	elapsed := now.Sub(s.SessionOrigin)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// Apply mutates the state for a single event received at now
func (s *AppState) Apply(ev events.Event, now time.Time) Transition {
	switch ev.Kind {
	case events.KindTick:
		if s.Paused {
			s.SessionOrigin = now
		}
		return Transition{}
	case events.KindKeyPress:
		return s.applyAction(GetActionByKey(ev.Key), now)
	default:
		return Transition{}
	}
}

func (s *AppState) applyAction(action Action, now time.Time) Transition {
	t := Transition{Action: action}

	switch action {
	case ActionExit:
		t.Exit = true

	case ActionSplitUp:
		if s.SelectedSplit <= 0 {
			s.SelectedSplit = s.splitCount - 1
		} else {
			s.SelectedSplit--
		}
		t.Changed = true

	case ActionSplitDown:
		if s.SelectedSplit >= s.splitCount-1 {
			s.SelectedSplit = 0
		} else {
			s.SelectedSplit++
		}
		t.Changed = true

	case ActionIncrement:
		if s.SetCounter < math.MaxUint32 {
			s.SetCounter++
			t.Changed = true
		}

	case ActionDecrement:
		if s.SetCounter > 0 {
			s.SetCounter--
			t.Changed = true
		}

	case ActionToggleTimer:
		s.Paused = !s.Paused
		s.SessionOrigin = now
		t.Changed = true
	}

	return t
}
