package workout

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// TviewRenderer implements Renderer by laying out tview primitives and drawing
// them straight onto a tcell screen. There is no tview.Application: the
// Controller owns the loop and calls Render once per event.
type TviewRenderer struct {
	screen tcell.Screen
	logger *log.Logger

	root         *tview.Flex
	titleView    *tview.TextView
	splitList    *tview.List
	exerciseView *tview.TextView
	counterView  *tview.TextView
	timerView    *tview.TextView

	splitNames []string // Items currently in splitList
	lastWidth  int
	lastHeight int
}

// NewTviewRenderer builds the dashboard layout:
//
//	+-------------------- title --------------------+
//	| Split | Exercises |        Set Counter        |
//	|       |           |---------------------------|
//	|       |           |           Timer           |
//	+-------+-----------+---------------------------+
func NewTviewRenderer(screen tcell.Screen, title string, logger *log.Logger) *TviewRenderer {
	if screen == nil {
		panic("TviewRenderer: screen cannot be nil")
	}
	if logger == nil {
		panic("TviewRenderer: logger cannot be nil")
	}

	r := &TviewRenderer{
		screen: screen,
		logger: logger,
	}

	r.titleView = tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetText(title + "\n" + keyHintLine())
	r.titleView.SetTextColor(tcell.ColorWhite)
	r.titleView.SetBorder(true)

	r.splitList = tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true).
		SetMainTextStyle(tcell.StyleDefault.Foreground(tcell.ColorWhite)).
		SetSelectedStyle(tcell.StyleDefault.Background(tcell.ColorBlue).Foreground(tcell.ColorBlack).Bold(true))
	r.splitList.SetBorder(true).SetTitle(" Split ")

	r.exerciseView = tview.NewTextView()
	r.exerciseView.SetTextColor(tcell.ColorWhite)
	r.exerciseView.SetBorder(true).SetTitle(" Exercises ")

	r.counterView = tview.NewTextView().SetTextAlign(tview.AlignCenter)
	r.counterView.SetTextColor(tcell.ColorWhite)
	r.counterView.SetBorder(true).SetTitle(" Set Counter ")

	r.timerView = tview.NewTextView().SetTextAlign(tview.AlignCenter)
	r.timerView.SetTextColor(tcell.ColorWhite)
	r.timerView.SetBorder(true).SetTitle(" Timer ")

	// Right column: counter above timer, half each
	rightColumn := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(r.counterView, 0, 1, false).
		AddItem(r.timerView, 0, 1, false)

	// Body: split list 25%, exercises 25%, right column the rest
	body := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(r.splitList, 0, 1, false).
		AddItem(r.exerciseView, 0, 1, false).
		AddItem(rightColumn, 0, 2, false)

	r.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(r.titleView, 4, 0, false).
		AddItem(body, 0, 1, false)

	return r
}

// Render draws snapshot and flushes it to the terminal
func (r *TviewRenderer) Render(snapshot Snapshot) error {
	if snapshot.SplitIndex < 0 || snapshot.SplitIndex >= len(snapshot.Splits) {
		return fmt.Errorf("split index %d out of range [0,%d)", snapshot.SplitIndex, len(snapshot.Splits))
	}

	r.setSplitList(snapshot.Splits)
	r.splitList.SetCurrentItem(snapshot.SplitIndex)
	r.exerciseView.SetText(snapshot.Exercises)
	r.counterView.SetText(strconv.FormatUint(uint64(snapshot.SetCounter), 10))
	r.timerView.SetText(strconv.FormatInt(snapshot.ElapsedSeconds(), 10))
	if snapshot.Paused {
		r.timerView.SetTitle(" Timer (paused) ")
	} else {
		r.timerView.SetTitle(" Timer ")
	}

	width, height := r.screen.Size()
	if width != r.lastWidth || height != r.lastHeight {
		if r.lastWidth != 0 || r.lastHeight != 0 {
			r.logger.Printf("TviewRenderer: Resized to %dx%d", width, height)
		}
		r.lastWidth, r.lastHeight = width, height
		r.screen.Sync()
	}

	r.screen.Clear()
	r.root.SetRect(0, 0, width, height)
	r.root.Draw(r.screen)
	r.screen.Show()
	return nil
}

// setSplitList repopulates the list only when the split names change
func (r *TviewRenderer) setSplitList(splits []Split) {
	if len(splits) == len(r.splitNames) {
		same := true
		for i, split := range splits {
			if split.Name != r.splitNames[i] {
				same = false
				break
			}
		}
		if same {
			return
		}
	}

	r.splitList.Clear()
	r.splitNames = r.splitNames[:0]
	for _, split := range splits {
		r.splitList.AddItem(split.Name, "", 0, nil)
		r.splitNames = append(r.splitNames, split.Name)
	}
}

// keyHintLine lists the fixed bindings, e.g. "↑/↓ Split  |  w/s Sets  |  Space Timer  |  Esc Quit"
func keyHintLine() string {
	label := func(action Action) string {
		if binding, ok := GetKeyBinding(action); ok {
			return binding.DisplayName
		}
		return "?"
	}
	parts := []string{
		label(ActionSplitUp) + "/" + label(ActionSplitDown) + " Split",
		label(ActionIncrement) + "/" + label(ActionDecrement) + " Sets",
		label(ActionToggleTimer) + " Timer",
		label(ActionExit) + " Quit",
	}
	return strings.Join(parts, "  |  ")
}
