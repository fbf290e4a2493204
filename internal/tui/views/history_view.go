package views

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/matheus3301/flash/internal/history"
	"github.com/matheus3301/flash/internal/tui/ui"
	"github.com/rivo/tview"
)

// HistoryView lists recorded flash lifecycle events, newest first.
type HistoryView struct {
	*tview.Table
	theme   *ui.Theme
	load    func() ([]history.Entry, error)
	entries []history.Entry
	now     func() time.Time
}

// NewHistoryView creates the history table. load may be nil when history
// is disabled.
func NewHistoryView(theme *ui.Theme, load func() ([]history.Entry, error)) *HistoryView {
	table := tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0).
		SetBorders(false)
	table.SetBorder(true)
	table.SetBorderColor(theme.BorderColor)
	table.SetBackgroundColor(theme.BgColor)
	table.SetTitle(" History ")
	table.SetTitleColor(theme.TitleColor)

	return &HistoryView{
		Table: table,
		theme: theme,
		load:  load,
		now:   time.Now,
	}
}

// Name implements ui.Component.
func (hv *HistoryView) Name() string { return "history" }

// Start reloads the entries.
func (hv *HistoryView) Start() {
	if hv.load == nil {
		hv.showMessage("history is disabled")
		return
	}
	entries, err := hv.load()
	if err != nil {
		hv.showMessage("load failed: " + err.Error())
		return
	}
	hv.Update(entries)
}

// Stop implements ui.Component.
func (hv *HistoryView) Stop() {}

// Hints implements ui.Component.
func (hv *HistoryView) Hints() []ui.MenuHint { return nil }

// Update renders entries.
func (hv *HistoryView) Update(entries []history.Entry) {
	hv.entries = entries
	hv.Clear()

	headers := []string{" When", " Event", " Scope", " Type", " Message"}
	for col, h := range headers {
		hv.SetCell(0, col, tview.NewTableCell(h).
			SetSelectable(false).
			SetTextColor(hv.theme.TableHeaderFg))
	}

	for i, e := range entries {
		row := i + 1
		event := e.Event
		if e.Reason != "" {
			event = fmt.Sprintf("%s (%s)", e.Event, e.Reason)
		}
		color := hv.theme.FlashColor(e.Category)
		hv.SetCell(row, 0, tview.NewTableCell(" "+humanize.RelTime(e.At, hv.now(), "ago", "from now")).SetMaxWidth(16))
		hv.SetCell(row, 1, tview.NewTableCell(" "+event).SetMaxWidth(22))
		hv.SetCell(row, 2, tview.NewTableCell(" "+tview.Escape(e.Scope)).SetMaxWidth(12))
		hv.SetCell(row, 3, tview.NewTableCell(" "+tview.Escape(e.Category)).SetTextColor(color).SetMaxWidth(10))
		hv.SetCell(row, 4, tview.NewTableCell(" "+ui.SanitizeFlash(e.Content)).SetExpansion(1))
	}
}

// Len returns the number of rendered entries.
func (hv *HistoryView) Len() int {
	return len(hv.entries)
}

func (hv *HistoryView) showMessage(msg string) {
	hv.entries = nil
	hv.Clear()
	hv.SetCell(0, 0, tview.NewTableCell(" "+tview.Escape(msg)).SetSelectable(false))
}
