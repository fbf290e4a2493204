package ui

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"
)

// Menu is the bottom hint line.
type Menu struct {
	*tview.TextView
	theme *Theme
}

// NewMenu creates a new menu hint bar.
func NewMenu(theme *Theme) *Menu {
	tv := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetTextAlign(tview.AlignLeft)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetBorderPadding(0, 0, 1, 0)

	return &Menu{
		TextView: tv,
		theme:    theme,
	}
}

// Update renders the current page's hints followed by the global ones,
// separated by a bar. Either group may be empty.
func (m *Menu) Update(page, global []MenuHint) {
	m.Clear()

	groups := make([]string, 0, 2)
	for _, hints := range [][]MenuHint{page, global} {
		if len(hints) > 0 {
			groups = append(groups, m.render(hints))
		}
	}
	_, _ = fmt.Fprint(m, strings.Join(groups, fmt.Sprintf("  [%s]│[-]  ", colorName(m.theme.BorderColor))))
}

func (m *Menu) render(hints []MenuHint) string {
	keyColor := colorName(m.theme.MenuKeyColor)
	numColor := colorName(m.theme.NumericKeyColor)

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		kc := keyColor
		if h.Numeric {
			kc = numColor
		}
		parts = append(parts, fmt.Sprintf("[%s::b]<%s>[-:-:-] %s", kc, tview.Escape(h.Key), tview.Escape(h.Description)))
	}
	return strings.Join(parts, " ")
}
