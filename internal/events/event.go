package events

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// Kind tags which variant an Event carries
type Kind int

const (
	KindKeyPress Kind = iota // A key was pressed; Key holds the code
	KindTick                 // The tick period elapsed
)

// Key identifies a pressed key. Rune is only meaningful when Code is tcell.KeyRune.
type Key struct {
	Code tcell.Key
	Rune rune
}

// Event is the single tagged type carried from the Source to the Controller
type Event struct {
	Kind Kind
	Key  Key
}

// KeyPress builds a key press event
func KeyPress(key Key) Event {
	return Event{Kind: KindKeyPress, Key: key}
}

// RuneKey is shorthand for a printable key
func RuneKey(r rune) Key {
	return Key{Code: tcell.KeyRune, Rune: r}
}

// Tick builds a tick event
func Tick() Event {
	return Event{Kind: KindTick}
}

// KeyFromTcell converts a tcell key event, dropping modifiers
func KeyFromTcell(ev *tcell.EventKey) Key {
	if ev.Key() == tcell.KeyRune {
		return RuneKey(ev.Rune())
	}
	return Key{Code: ev.Key()}
}

func (k Key) String() string {
	if k.Code == tcell.KeyRune {
		if k.Rune == ' ' {
			return "Space"
		}
		return string(k.Rune)
	}
	if name, ok := tcell.KeyNames[k.Code]; ok {
		return name
	}
	return fmt.Sprintf("Key[%d]", k.Code)
}

func (e Event) String() string {
	switch e.Kind {
	case KindKeyPress:
		return "KeyPress(" + e.Key.String() + ")"
	case KindTick:
		return "Tick"
	default:
		return fmt.Sprintf("Event[%d]", e.Kind)
	}
}
