package ui

import (
	"fmt"

	"github.com/rivo/tview"
)

// Logo is the header banner.
type Logo struct {
	*tview.TextView
	theme *Theme
}

// NewLogo creates the banner. subtitle is shown under the art, usually the
// navigation event the core listens for.
func NewLogo(theme *Theme, subtitle string) *Logo {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetBorderPadding(0, 0, 1, 0)

	l := &Logo{TextView: tv, theme: theme}
	l.render(subtitle)
	return l
}

func (l *Logo) render(subtitle string) {
	title := colorName(l.theme.TitleColor)
	fg := colorName(l.theme.FgColor)

	_, _ = fmt.Fprintf(l,
		"[%s::b]╔═╗╦  ╔═╗╔═╗╦ ╦[-:-:-]\n"+
			"[%s::b]╠╣ ║  ╠═╣╚═╗╠═╣[-:-:-]\n"+
			"[%s::b]╚  ╩═╝╩ ╩╚═╝╩ ╩[-:-:-]\n"+
			"[%s]on %s[-:-:-]",
		title, title, title, fg, tview.Escape(subtitle),
	)
}
