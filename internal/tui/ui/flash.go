package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/flash/internal/flash"
	"github.com/rivo/tview"
)

// FlashBar renders one scope's flash messages, one row per message in
// display order. Selecting a row (Enter) or pressing x dismisses it.
type FlashBar struct {
	*tview.Table
	theme *Theme
	scope flash.Scope
	msgs  []*flash.Message
}

// NewFlashBar creates a flash bar for the given scope.
func NewFlashBar(theme *Theme, scope flash.Scope) *FlashBar {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetBorders(false)
	table.SetBackgroundColor(theme.BgColor)
	table.SetSelectedStyle(tcell.StyleDefault.
		Foreground(theme.TableCursorFg).
		Background(theme.TableCursorBg))

	fb := &FlashBar{
		Table: table,
		theme: theme,
		scope: scope,
	}
	table.SetSelectedFunc(func(row, _ int) {
		fb.Dismiss(row)
	})
	table.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyRune && event.Rune() == 'x' {
			row, _ := table.GetSelection()
			fb.Dismiss(row)
			return nil
		}
		return event
	})
	return fb
}

// Scope returns the scope this bar renders.
func (fb *FlashBar) Scope() flash.Scope {
	return fb.scope
}

// Update renders msgs. Content is sanitized before it reaches the table.
func (fb *FlashBar) Update(msgs []*flash.Message) {
	fb.msgs = msgs
	fb.Clear()

	for row, m := range msgs {
		color := fb.theme.FlashColor(m.Category())
		fb.SetCell(row, 0, tview.NewTableCell(fmt.Sprintf(" %s ", tview.Escape(m.Category()))).
			SetTextColor(color).
			SetAttributes(tcell.AttrBold))
		fb.SetCell(row, 1, tview.NewTableCell(SanitizeFlash(m.Content())).
			SetTextColor(color).
			SetExpansion(1))
		fb.SetCell(row, 2, tview.NewTableCell(" x ").
			SetTextColor(fb.theme.MenuKeyColor))
	}
	if len(msgs) > 0 {
		row, _ := fb.GetSelection()
		if row >= len(msgs) {
			fb.Select(len(msgs)-1, 0)
		}
	}
}

// Len returns the number of rendered messages.
func (fb *FlashBar) Len() int {
	return len(fb.msgs)
}

// Dismiss removes the message shown on the given row.
func (fb *FlashBar) Dismiss(row int) {
	if row < 0 || row >= len(fb.msgs) {
		return
	}
	fb.msgs[row].Remove()
}
