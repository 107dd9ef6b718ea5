package workout

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"

	"github.com/lowaak/workout-tool/internal/events"
)

func TestGetActionByKey(t *testing.T) {
	cases := []struct {
		key  events.Key
		want Action
	}{
		{events.Key{Code: tcell.KeyEscape}, ActionExit},
		{events.Key{Code: tcell.KeyUp}, ActionSplitUp},
		{events.Key{Code: tcell.KeyDown}, ActionSplitDown},
		{events.RuneKey('w'), ActionIncrement},
		{events.RuneKey('s'), ActionDecrement},
		{events.RuneKey(' '), ActionToggleTimer},
		{events.RuneKey('q'), ActionNone},
		{events.Key{Code: tcell.KeyEnter}, ActionNone},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, GetActionByKey(tc.key), tc.key.String())
	}
}

func TestKeyBindings_Unique(t *testing.T) {
	seenKeys := make(map[events.Key]bool)
	seenActions := make(map[Action]bool)
	for _, binding := range AllKeyBindings {
		assert.False(t, seenKeys[binding.Key], "duplicate key %s", binding.Key)
		assert.False(t, seenActions[binding.Action], "duplicate action %s", binding.Action)
		assert.NotEqual(t, ActionNone, binding.Action)
		seenKeys[binding.Key] = true
		seenActions[binding.Action] = true
	}

	_, ok := GetKeyBinding(ActionNone)
	assert.False(t, ok)
}

func TestAllSplits(t *testing.T) {
	names := make([]string, 0, len(AllSplits))
	for _, split := range AllSplits {
		names = append(names, split.Name)
		assert.NotEmpty(t, split.Exercises, split.Name)
	}
	assert.Equal(t, []string{"Pull", "Push", "Legs", "Accs"}, names)
	assert.Equal(t, "Chin-Ups\nRows\nBicep Curls\nHanging", AllSplits[0].ExerciseText())
}

func TestKeyHintLine(t *testing.T) {
	assert.Equal(t, "↑/↓ Split  |  w/s Sets  |  Space Timer  |  Esc Quit", keyHintLine())
}
