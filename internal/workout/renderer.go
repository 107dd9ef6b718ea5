package workout

import "time"

// Snapshot is the read-only view of AppState handed to a Renderer
type Snapshot struct {
	SplitIndex int
	Splits     []Split // The full rotation, for the split list
	Exercises  string  // Exercises of the selected split, one per line
	SetCounter uint32
	Paused     bool
	Elapsed    time.Duration
}

// ElapsedSeconds is the whole-second value shown on the timer
func (s Snapshot) ElapsedSeconds() int64 {
	return int64(s.Elapsed / time.Second)
}

// Renderer draws a Snapshot. It has no way to change the state it is shown.
type Renderer interface {
	Render(snapshot Snapshot) error
}

// Terminal is the screen lifecycle the Controller needs on exit
type Terminal interface {
	// Teardown restores the terminal; calling it more than once is safe
	Teardown() error
}
