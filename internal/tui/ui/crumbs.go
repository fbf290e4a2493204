package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// Crumbs shows the page stack on the left and, on the right, how many
// navigation events have fired. Messages with a persist count survive that
// many of them, so the counter makes the countdown visible.
type Crumbs struct {
	*tview.Flex
	trail   *tview.TextView
	counter *tview.TextView
	theme   *Theme
}

// NewCrumbs creates a new breadcrumb bar.
func NewCrumbs(theme *Theme) *Crumbs {
	trail := tview.NewTextView().SetDynamicColors(true)
	trail.SetBackgroundColor(theme.BgColor)
	counter := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignRight)
	counter.SetBackgroundColor(theme.BgColor)

	return &Crumbs{
		Flex: tview.NewFlex().
			AddItem(trail, 0, 1, false).
			AddItem(counter, 20, 0, false),
		trail:   trail,
		counter: counter,
		theme:   theme,
	}
}

// Update renders the trail for stack and the navigation count.
func (c *Crumbs) Update(stack []string, navigations int) {
	c.trail.Clear()
	c.counter.Clear()

	parts := make([]string, 0, len(stack))
	for i, name := range stack {
		fg, bg, attr := c.theme.CrumbInactiveFg, c.theme.CrumbInactiveBg, ""
		if i == len(stack)-1 {
			fg, bg, attr = c.theme.CrumbActiveFg, c.theme.CrumbActiveBg, "b"
		}
		parts = append(parts, fmt.Sprintf("[%s:%s:%s] %s [-:-:-]",
			colorName(fg), colorName(bg), attr, tview.Escape(name)))
	}
	_, _ = fmt.Fprint(c.trail, strings.Join(parts, " > "))
	_, _ = fmt.Fprintf(c.counter, "[%s]navigations [%s::b]%d[-:-:-] ",
		colorName(c.theme.FgColor), colorName(c.theme.CounterColor), navigations)
}

// Text returns the rendered trail and counter without color tags.
func (c *Crumbs) Text() (trail, counter string) {
	return c.trail.GetText(true), c.counter.GetText(true)
}

// colorName returns a tview-compatible color name string.
func colorName(c tcell.Color) string {
	for name, val := range tcell.ColorNames {
		if val == c {
			return name
		}
	}
	return fmt.Sprintf("#%06x", c.Hex())
}
