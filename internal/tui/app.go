package tui

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/flash/internal/bus"
	"github.com/matheus3301/flash/internal/flash"
	"github.com/matheus3301/flash/internal/history"
	"github.com/matheus3301/flash/internal/tui/keys"
	"github.com/matheus3301/flash/internal/tui/ui"
	"github.com/matheus3301/flash/internal/tui/views"
	"github.com/rivo/tview"
	"go.uber.org/zap"
)

// Page names.
const (
	PageHome    = "home"
	PageCompose = "compose"
	PageHistory = "history"
)

const historyLimit = 200

// App is the demo TUI: a page stack that emits navigation events, a global
// flash bar under the pages and a sidebar flash bar with its own scope.
type App struct {
	app      *tview.Application
	theme    *ui.Theme
	root     *tview.Flex
	pages    *ui.Pages
	header   *tview.Flex
	stats    *ui.Stats
	prompt   *ui.Prompt
	crumbs   *ui.Crumbs
	menu     *ui.Menu
	flashBar *ui.FlashBar
	sideBar  *ui.FlashBar
	views    map[string]ui.Component
	registry *keys.Registry
	svc      *flash.Service
	bus      *bus.Bus
	logger   *zap.Logger
	current  string
	started  time.Time
	ctx      context.Context
	cancel   context.CancelFunc
}

// NewApp creates the TUI application. hist may be nil when history is disabled.
func NewApp(svc *flash.Service, b *bus.Bus, hist *history.DB, logger *zap.Logger) *App {
	ctx, cancel := context.WithCancel(context.Background())
	theme := ui.DefaultTheme()

	var loadHistory func() ([]history.Entry, error)
	if hist != nil {
		loadHistory = func() ([]history.Entry, error) { return hist.Recent(historyLimit) }
	}

	a := &App{
		app:      tview.NewApplication(),
		theme:    theme,
		pages:    ui.NewPages(b, svc.Watcher().Event()),
		stats:    ui.NewStats(theme),
		prompt:   ui.NewPrompt(theme),
		crumbs:   ui.NewCrumbs(theme),
		menu:     ui.NewMenu(theme),
		flashBar: ui.NewFlashBar(theme, flash.GlobalScope),
		sideBar:  ui.NewFlashBar(theme, views.SidebarScope),
		registry: keys.NewRegistry(),
		svc:      svc,
		bus:      b,
		logger:   logger,
		started:  time.Now(),
		ctx:      ctx,
		cancel:   cancel,
	}

	compose := views.NewComposeView(theme)
	compose.SetOnAdd(func(content string, opts flash.Options) {
		svc.Add(content, opts)
	})
	compose.SetOnError(func(err error) {
		svc.Err(err)
	})

	a.prompt.SetOnSubmit(func(scope, text string) {
		svc.Add(text, flash.Options{Scope: flash.Scope(scope)})
		a.hidePrompt()
	})
	a.prompt.SetOnCancel(a.hidePrompt)

	a.views = map[string]ui.Component{
		PageHome:    views.NewHomeView(theme, svc.Config()),
		PageCompose: compose,
		PageHistory: views.NewHistoryView(theme, loadHistory),
	}

	a.setupBindings()
	a.setupLayout()
	return a
}

func (a *App) setupBindings() {
	a.registry.AddGlobal(&keys.Action{
		Key: tcell.KeyRune, Rune: '1', Description: "home", Visible: true,
		Handler: func() { a.pages.Reset(PageHome) },
	})
	a.registry.AddGlobal(&keys.Action{
		Key: tcell.KeyRune, Rune: '2', Description: "compose", Visible: true,
		Handler: func() { a.pages.Push(PageCompose) },
	})
	a.registry.AddGlobal(&keys.Action{
		Key: tcell.KeyRune, Rune: '3', Description: "history", Visible: true,
		Handler: func() { a.pages.Push(PageHistory) },
	})
	a.registry.AddGlobal(&keys.Action{
		Key: tcell.KeyEscape, Label: "esc", Description: "back", Visible: true,
		Handler: func() { a.pages.Pop() },
	})
	a.registry.AddGlobal(&keys.Action{
		Key: tcell.KeyRune, Rune: 's', Description: "saved", Visible: true,
		Handler: func() { a.svc.Add("Saved successfully", flash.Options{Type: "success"}) },
	})
	a.registry.AddGlobal(&keys.Action{
		Key: tcell.KeyRune, Rune: 'w', Description: "warn", Visible: true,
		Handler: func() { a.svc.Warn("Unsaved changes will be lost") },
	})
	a.registry.AddGlobal(&keys.Action{
		Key: tcell.KeyRune, Rune: 'e', Description: "error", Visible: true,
		Handler: func() { a.svc.Err(errors.New("could not reach the server")) },
	})
	a.registry.AddGlobal(&keys.Action{
		Key: tcell.KeyRune, Rune: 'p', Description: "persist", Visible: true,
		Handler: func() {
			a.svc.Add("This message survives one page change", flash.Options{Type: flash.CategoryInfo, Persist: 1})
		},
	})
	a.registry.AddGlobal(&keys.Action{
		Key: tcell.KeyRune, Rune: 'b', Description: "sidebar", Visible: true,
		Handler: func() { a.svc.Add("Sidebar note", flash.Options{Scope: views.SidebarScope}) },
	})
	a.registry.AddGlobal(&keys.Action{
		Key: tcell.KeyRune, Rune: ':', Description: "quick flash", Visible: true,
		Handler: func() { a.showPrompt(flash.GlobalScope) },
	})
	a.registry.AddGlobal(&keys.Action{
		Key: tcell.KeyRune, Rune: '+', Description: "quick sidebar", Visible: false,
		Handler: func() { a.showPrompt(views.SidebarScope) },
	})
	a.registry.AddGlobal(&keys.Action{
		Key: tcell.KeyRune, Rune: 'd', Description: "dismiss", Visible: true,
		Handler: func() { a.flashBar.Dismiss(0) },
	})
	a.registry.AddGlobal(&keys.Action{
		Key: tcell.KeyRune, Rune: 'r', Description: "reset", Visible: true,
		Handler: func() { a.svc.Reset(flash.GlobalScope) },
	})
	a.registry.AddGlobal(&keys.Action{
		Key: tcell.KeyRune, Rune: 'R', Description: "reset sidebar", Visible: true,
		Handler: func() { a.svc.Reset(views.SidebarScope) },
	})
	a.registry.AddGlobal(&keys.Action{
		Key: tcell.KeyRune, Rune: 'q', Description: "quit", Visible: true,
		Handler: func() { a.Stop() },
	})
}

func (a *App) setupLayout() {
	for name, v := range a.views {
		a.pages.AddPage(name, v, true, false)
	}
	a.pages.SetOnChange(a.onPageChange)

	a.sideBar.SetBorder(true).
		SetTitle(" " + string(views.SidebarScope) + " ").
		SetBorderColor(a.theme.BorderColor)

	body := tview.NewFlex().
		AddItem(a.pages, 0, 1, true).
		AddItem(a.sideBar, 36, 0, false)

	a.header = tview.NewFlex().
		AddItem(ui.NewLogo(a.theme, a.svc.Watcher().Event()), 24, 0, false).
		AddItem(a.stats, 0, 1, false)

	a.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(a.header, 4, 0, false).
		AddItem(a.crumbs, 1, 0, false).
		AddItem(body, 0, 1, true).
		AddItem(a.flashBar, 0, 0, false).
		AddItem(a.prompt, 0, 0, false).
		AddItem(a.menu, 1, 0, false)

	a.app.SetRoot(a.root, true)
	a.app.SetInputCapture(a.handleKey)
}

func (a *App) handleKey(event *tcell.EventKey) *tcell.EventKey {
	// The prompt keeps every key; it closes itself on Enter or Escape.
	if a.promptActive() {
		return event
	}
	// Form widgets keep every key except Escape.
	if a.current == PageCompose && a.views[PageCompose].HasFocus() && event.Key() != tcell.KeyEscape {
		return event
	}
	if event.Key() == tcell.KeyTab {
		a.toggleFlashFocus()
		return nil
	}

	if a.registry.HandleEvent(a.current, event) {
		return nil
	}
	return event
}

func (a *App) showPrompt(scope flash.Scope) {
	a.prompt.Activate(string(scope))
	a.root.ResizeItem(a.prompt, 3, 0)
	a.app.SetFocus(a.prompt)
}

func (a *App) hidePrompt() {
	a.root.ResizeItem(a.prompt, 0, 0)
	a.app.SetFocus(a.views[a.current])
}

func (a *App) promptActive() bool {
	return a.prompt.HasFocus()
}

func (a *App) toggleFlashFocus() {
	if a.app.GetFocus() == a.flashBar || a.flashBar.Len() == 0 {
		a.app.SetFocus(a.views[a.current])
		return
	}
	a.app.SetFocus(a.flashBar)
}

func (a *App) onPageChange(stack []string) {
	next := stack[len(stack)-1]
	if prev, ok := a.views[a.current]; ok && a.current != next {
		prev.Stop()
	}
	a.current = next
	a.crumbs.Update(stack, a.pages.Navigations())

	v := a.views[next]
	v.Start()
	a.menu.Update(append(v.Hints(), a.registry.Hints(next)...), a.registry.GlobalHints())
	a.app.SetFocus(v)
	a.logger.Debug("page shown", zap.Strings("stack", stack))
}

// refreshFlash redraws both flash bars from the service. Must run on the
// tview event loop.
func (a *App) refreshFlash() {
	a.flashBar.Update(a.svc.Messages(flash.GlobalScope))
	a.root.ResizeItem(a.flashBar, a.flashBar.Len(), 0)
	a.sideBar.Update(a.svc.Messages(views.SidebarScope))
	a.stats.Update(a.statsData())

	if a.flashBar.Len() == 0 && a.app.GetFocus() == a.flashBar {
		a.app.SetFocus(a.views[a.current])
	}
}

func (a *App) statsData() *ui.StatsData {
	scopes := a.svc.Scopes()
	data := &ui.StatsData{
		Scopes:    make([]ui.ScopeCount, 0, len(scopes)),
		Listeners: a.svc.Watcher().Len(),
		Uptime:    time.Since(a.started),
	}
	for _, sc := range scopes {
		data.Scopes = append(data.Scopes, ui.ScopeCount{Scope: string(sc), Count: a.svc.Len(sc)})
	}
	return data
}

func (a *App) watchFlash() {
	ch, unsub := a.bus.Subscribe(bus.FlashNamespace, 64)
	go func() {
		defer unsub()
		for {
			select {
			case _, ok := <-ch:
				if !ok {
					return
				}
				a.app.QueueUpdateDraw(a.refreshFlash)
			case <-a.ctx.Done():
				return
			}
		}
	}()
}

// Run starts the TUI application and blocks until it exits.
func (a *App) Run() error {
	a.pages.Reset(PageHome)
	a.refreshFlash()
	a.watchFlash()
	return a.app.Run()
}

// Stop gracefully shuts down the TUI.
func (a *App) Stop() {
	a.cancel()
	a.app.Stop()
}
