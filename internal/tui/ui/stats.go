package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/rivo/tview"
)

// ScopeCount is the number of live messages in one scope.
type ScopeCount struct {
	Scope string
	Count int
}

// StatsData is a point-in-time view of the flash service.
type StatsData struct {
	Scopes    []ScopeCount
	Listeners int
	Uptime    time.Duration
}

// Stats displays flash service counters in the header.
type Stats struct {
	*tview.TextView
	theme *Theme
}

// NewStats creates the stats panel.
func NewStats(theme *Theme) *Stats {
	tv := tview.NewTextView().
		SetDynamicColors(true)
	tv.SetBackgroundColor(theme.BgColor)
	tv.SetBorderPadding(0, 0, 1, 1)

	return &Stats{TextView: tv, theme: theme}
}

// Update renders data. A nil data clears the panel.
func (s *Stats) Update(data *StatsData) {
	s.Clear()
	if data == nil {
		return
	}

	fg := colorName(s.theme.FgColor)
	counter := colorName(s.theme.CounterColor)

	total := 0
	parts := make([]string, 0, len(data.Scopes))
	for _, sc := range data.Scopes {
		total += sc.Count
		parts = append(parts, fmt.Sprintf("%s=%d", tview.Escape(sc.Scope), sc.Count))
	}

	_, _ = fmt.Fprintf(s,
		"[%s::b]Active:[-:-:-]    [%s]%d[-]\n"+
			"[%s::b]Scopes:[-:-:-]    [%s]%s[-]\n"+
			"[%s::b]Listeners:[-:-:-] [%s]%d[-]\n"+
			"[%s::b]Uptime:[-:-:-]    [%s]%s[-]",
		fg, counter, total,
		fg, counter, strings.Join(parts, " "),
		fg, counter, data.Listeners,
		fg, counter, formatDuration(data.Uptime),
	)
}

func formatDuration(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%ds", int(d.Seconds()))
}
