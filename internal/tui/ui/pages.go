package ui

import (
	"github.com/matheus3301/flash/internal/bus"
	"github.com/rivo/tview"
)

// Navigation is the payload of the navigation-completed event.
type Navigation struct {
	From  string
	To    string
	Stack []string
}

// Pages is a stack-based page manager wrapping tview.Pages.
// It provides push/pop semantics and announces every completed page change
// on the bus under the configured navigation event kind.
type Pages struct {
	*tview.Pages
	stack    []string
	navs     int
	onChange func(stack []string)
	bus      *bus.Bus
	event    string
}

// NewPages creates a new stack-based page manager. b may be nil.
func NewPages(b *bus.Bus, event string) *Pages {
	return &Pages{
		Pages: tview.NewPages(),
		bus:   b,
		event: event,
	}
}

// SetOnChange sets a callback that fires when the stack changes.
func (p *Pages) SetOnChange(fn func(stack []string)) {
	p.onChange = fn
}

// Push adds a page to the top of the stack and shows it.
// Pushing the page that is already on top does nothing.
func (p *Pages) Push(name string) {
	from := p.Current()
	if from == name {
		return
	}
	if from != "" {
		p.HidePage(from)
	}
	p.stack = append(p.stack, name)
	p.ShowPage(name)
	p.SendToFront(name)
	p.notify(from)
}

// Pop removes the top page and shows the previous one. The last page is
// never popped. Returns the name of the popped page, or empty.
func (p *Pages) Pop() string {
	if len(p.stack) < 2 {
		return ""
	}
	top := p.stack[len(p.stack)-1]
	p.HidePage(top)
	p.stack = p.stack[:len(p.stack)-1]
	current := p.stack[len(p.stack)-1]
	p.ShowPage(current)
	p.SendToFront(current)
	p.notify(top)
	return top
}

// Current returns the name of the current (top) page.
func (p *Pages) Current() string {
	if len(p.stack) == 0 {
		return ""
	}
	return p.stack[len(p.stack)-1]
}

// Stack returns a copy of the current page stack.
func (p *Pages) Stack() []string {
	s := make([]string, len(p.stack))
	copy(s, p.stack)
	return s
}

// Depth returns the current stack depth.
func (p *Pages) Depth() int {
	return len(p.stack)
}

// Reset clears the stack and shows only the given page.
func (p *Pages) Reset(name string) {
	from := p.Current()
	for _, n := range p.stack {
		p.HidePage(n)
	}
	p.stack = []string{name}
	p.ShowPage(name)
	p.SendToFront(name)
	p.notify(from)
}

// Navigations returns how many page changes have been announced.
func (p *Pages) Navigations() int {
	return p.navs
}

func (p *Pages) notify(from string) {
	stack := p.Stack()
	// Showing the first page is not a navigation.
	if from != "" {
		p.navs++
	}
	if p.onChange != nil {
		p.onChange(stack)
	}
	if p.bus != nil && p.event != "" && from != "" {
		p.bus.Emit(p.event, Navigation{From: from, To: p.Current(), Stack: stack})
	}
}
