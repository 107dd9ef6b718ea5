package workout

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lowaak/workout-tool/internal/events"
)

// Split is a named group of exercises trained together
type Split struct {
	Name      string
	Exercises []string
}

// ExerciseText returns the exercises one per line, as shown in the Exercises panel
func (s Split) ExerciseText() string {
	return strings.Join(s.Exercises, "\n")
}

// AllSplits defines the rotation in display order
var AllSplits = []Split{
	{
		Name:      "Pull",
		Exercises: []string{"Chin-Ups", "Rows", "Bicep Curls", "Hanging"},
	},
	{
		Name:      "Push",
		Exercises: []string{"Dips", "Push-Ups", "Lateral Raises"},
	},
	{
		Name:      "Legs",
		Exercises: []string{"Squats", "Nordic Curls", "Calf Raises", "Leg Raises"},
	},
	{
		Name:      "Accs",
		Exercises: []string{"Romanian Deadlifts", "External Rotation", "Resting Deep-Squat"},
	},
}

// Action is the logical meaning of a key press
type Action int

const (
	ActionNone        Action = iota // Unbound key, ignored
	ActionExit                      // Leave the dashboard
	ActionSplitUp                   // Previous split, wrapping to the last
	ActionSplitDown                 // Next split, wrapping to the first
	ActionIncrement                 // One more set
	ActionDecrement                 // One fewer set, floored at zero
	ActionToggleTimer               // Pause or resume, restarting the timer
)

func (a Action) String() string {
	switch a {
	case ActionExit:
		return "exit"
	case ActionSplitUp:
		return "split up"
	case ActionSplitDown:
		return "split down"
	case ActionIncrement:
		return "increment"
	case ActionDecrement:
		return "decrement"
	case ActionToggleTimer:
		return "toggle timer"
	default:
		return "none"
	}
}

// KeyBinding ties a physical key to an Action
type KeyBinding struct {
	Key         events.Key
	Action      Action
	DisplayName string // Label used in the key hint line
}

// AllKeyBindings is the fixed keyboard mapping
var AllKeyBindings = []KeyBinding{
	{Key: events.Key{Code: tcell.KeyEscape}, Action: ActionExit, DisplayName: "Esc"},
	{Key: events.Key{Code: tcell.KeyUp}, Action: ActionSplitUp, DisplayName: "↑"},
	{Key: events.Key{Code: tcell.KeyDown}, Action: ActionSplitDown, DisplayName: "↓"},
	{Key: events.RuneKey('w'), Action: ActionIncrement, DisplayName: "w"},
	{Key: events.RuneKey('s'), Action: ActionDecrement, DisplayName: "s"},
	{Key: events.RuneKey(' '), Action: ActionToggleTimer, DisplayName: "Space"},
}

// GetActionByKey returns the action bound to key, or ActionNone
func GetActionByKey(key events.Key) Action {
	for _, binding := range AllKeyBindings {
		if binding.Key == key {
			return binding.Action
		}
	}
	return ActionNone
}

// GetKeyBinding returns the binding for a given action
func GetKeyBinding(action Action) (KeyBinding, bool) {
	for _, binding := range AllKeyBindings {
		if binding.Action == action {
			return binding, true
		}
	}
	return KeyBinding{}, false
}
