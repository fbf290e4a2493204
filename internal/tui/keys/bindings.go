package keys

import (
	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/flash/internal/tui/ui"
)

// Action represents a keybinding action.
type Action struct {
	Key         tcell.Key
	Rune        rune
	Label       string
	Description string
	Handler     func()
	Visible     bool
}

// Matches returns true if the event matches this action.
func (a *Action) Matches(ev *tcell.EventKey) bool {
	if a.Key != tcell.KeyRune {
		return ev.Key() == a.Key
	}
	return ev.Key() == tcell.KeyRune && ev.Rune() == a.Rune
}

// Hint returns the menu hint for this action.
func (a *Action) Hint() ui.MenuHint {
	label := a.Label
	if label == "" {
		label = string(a.Rune)
	}
	return ui.MenuHint{
		Key:         label,
		Description: a.Description,
		Numeric:     a.Key == tcell.KeyRune && a.Rune >= '0' && a.Rune <= '9',
	}
}

// Registry holds keybindings organized by view, in registration order.
type Registry struct {
	global []*Action
	views  map[string][]*Action
}

// NewRegistry creates a new keybinding registry.
func NewRegistry() *Registry {
	return &Registry{
		views: make(map[string][]*Action),
	}
}

// AddGlobal registers a binding active on every view.
func (r *Registry) AddGlobal(action *Action) {
	r.global = append(r.global, action)
}

// AddView registers a view-specific binding.
func (r *Registry) AddView(view string, action *Action) {
	r.views[view] = append(r.views[view], action)
}

// Hints returns the visible hints for view, in registration order.
func (r *Registry) Hints(view string) []ui.MenuHint {
	return visibleHints(r.views[view])
}

// GlobalHints returns the visible global hints, in registration order.
func (r *Registry) GlobalHints() []ui.MenuHint {
	return visibleHints(r.global)
}

func visibleHints(actions []*Action) []ui.MenuHint {
	var hints []ui.MenuHint
	for _, a := range actions {
		if a.Visible {
			hints = append(hints, a.Hint())
		}
	}
	return hints
}

// HandleEvent dispatches a key event to the first matching action for the view.
// Returns true if a handler matched.
func (r *Registry) HandleEvent(view string, ev *tcell.EventKey) bool {
	for _, a := range r.views[view] {
		if a.Matches(ev) {
			a.Handler()
			return true
		}
	}
	for _, a := range r.global {
		if a.Matches(ev) {
			a.Handler()
			return true
		}
	}
	return false
}
