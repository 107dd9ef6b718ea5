package workout

import (
	"fmt"
	"log"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// TcellTerminal owns the tcell screen for the lifetime of the session:
// raw mode, alternate screen, mouse capture and cursor visibility.
type TcellTerminal struct {
	screen tcell.Screen
	mouse  bool
	logger *log.Logger

	teardownOnce sync.Once
	teardownErr  error
}

// NewTcellTerminal initialises screen and switches it into dashboard mode.
// A failure here is fatal for the caller: there is nothing to draw on.
func NewTcellTerminal(screen tcell.Screen, mouse bool, logger *log.Logger) (*TcellTerminal, error) {
	if screen == nil {
		panic("TcellTerminal: screen cannot be nil")
	}
	if logger == nil {
		panic("TcellTerminal: logger cannot be nil")
	}

	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	if mouse {
		screen.EnableMouse()
	}
	screen.HideCursor()
	screen.Clear()

	w, h := screen.Size()
	logger.Printf("Terminal: Initialised %dx%d (mouse=%t)", w, h, mouse)

	return &TcellTerminal{
		screen: screen,
		mouse:  mouse,
		logger: logger,
	}, nil
}

// Screen returns the underlying screen for rendering and input polling
func (t *TcellTerminal) Screen() tcell.Screen {
	return t.screen
}

// Teardown restores the terminal. Only the first call has effect.
func (t *TcellTerminal) Teardown() error {
	t.teardownOnce.Do(func() {
		t.teardownErr = t.restore()
		if t.teardownErr != nil {
			t.logger.Printf("Terminal: Teardown failed: %v", t.teardownErr)
		} else {
			t.logger.Println("Terminal: Restored")
		}
	})
	return t.teardownErr
}

func (t *TcellTerminal) restore() (err error) {
	// Fini has no error return; surface a backend panic as an error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("restore terminal: %v", r)
		}
	}()

	if t.mouse {
		t.screen.DisableMouse()
	}
	t.screen.ShowCursor(0, 0)
	t.screen.Fini()
	return nil
}
