package views

import (
	"fmt"

	"github.com/matheus3301/flash/internal/flash"
	"github.com/matheus3301/flash/internal/tui/ui"
	"github.com/rivo/tview"
)

// HomeView is the landing page. It explains the demo bindings and shows the
// effective flash defaults.
type HomeView struct {
	*tview.TextView
	theme *ui.Theme
	cfg   flash.Config
}

// NewHomeView creates the landing page.
func NewHomeView(theme *ui.Theme, cfg flash.Config) *HomeView {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true)
	tv.SetBorder(true)
	tv.SetBorderColor(theme.BorderColor)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetTextColor(theme.FgColor)
	tv.SetTitle(" Home ")
	tv.SetTitleColor(theme.TitleColor)

	hv := &HomeView{TextView: tv, theme: theme, cfg: cfg}
	hv.render()
	return hv
}

// Name implements ui.Component.
func (hv *HomeView) Name() string { return "home" }

// Start implements ui.Component.
func (hv *HomeView) Start() {}

// Stop implements ui.Component.
func (hv *HomeView) Stop() {}

// Hints implements ui.Component.
func (hv *HomeView) Hints() []ui.MenuHint { return nil }

func (hv *HomeView) render() {
	hv.Clear()
	_, _ = fmt.Fprintf(hv, "[::b]Flash messages[-:-:-]\n\n")
	_, _ = fmt.Fprintf(hv, "Messages expire after [::b]%s[-:-:-] unless given their own duration,\n", hv.cfg.DefaultDuration)
	_, _ = fmt.Fprintf(hv, "and disappear on the next [::b]%s[-:-:-] event unless they persist.\n\n", tview.Escape(hv.cfg.NavigationEvent))
	_, _ = fmt.Fprintln(hv, "Add a few messages, then switch pages to watch them go.")
	_, _ = fmt.Fprintln(hv, "Tab focuses the flash bar; Enter or x dismisses the selected message.")
	_, _ = fmt.Fprintln(hv, "Sidebar messages live in their own scope and are reset separately.")
}
