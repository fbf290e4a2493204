package flash

import (
	"context"
	"sync"

	"github.com/matheus3301/flash/internal/bus"
	"go.uber.org/zap"
)

// DefaultNavigationEvent is the event kind that signals a completed navigation.
const DefaultNavigationEvent = "routeChangeSuccess"

// Listener reacts to a navigation event. It returns true once it has nothing
// left to do, after which the watcher stops calling it.
type Listener func() (done bool)

// NavigationWatcher fans navigation-completed events out to per-message
// listeners. Messages never unregister their listener; a listener whose
// message is gone reports done and is pruned after the dispatch.
type NavigationWatcher struct {
	event  string
	bus    *bus.Bus
	logger *zap.Logger
	stop   func()

	dispatchMu sync.Mutex
	mu         sync.Mutex
	listeners  []Listener
}

// NewNavigationWatcher creates a watcher for the given event kind. An empty
// event selects DefaultNavigationEvent. b may be nil when events are fed
// through Dispatch directly.
func NewNavigationWatcher(event string, b *bus.Bus, logger *zap.Logger) *NavigationWatcher {
	if event == "" {
		event = DefaultNavigationEvent
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NavigationWatcher{
		event:  event,
		bus:    b,
		logger: logger,
	}
}

// Event returns the watched event kind.
func (w *NavigationWatcher) Event() string {
	return w.event
}

// Register adds a listener. It is safe to call from within a listener.
func (w *NavigationWatcher) Register(l Listener) {
	w.mu.Lock()
	w.listeners = append(w.listeners, l)
	w.mu.Unlock()
}

// Len returns the number of live listeners.
func (w *NavigationWatcher) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.listeners)
}

// Dispatch delivers one event. Kinds other than the watched event are ignored.
// Listeners run without w.mu held, so they may take other locks freely.
func (w *NavigationWatcher) Dispatch(kind string) {
	if kind != w.event {
		return
	}
	w.dispatchMu.Lock()
	defer w.dispatchMu.Unlock()

	w.mu.Lock()
	snapshot := w.listeners[:len(w.listeners):len(w.listeners)]
	w.mu.Unlock()

	live := make([]Listener, 0, len(snapshot))
	for _, l := range snapshot {
		if !l() {
			live = append(live, l)
		}
	}

	w.mu.Lock()
	// Keep listeners registered while this dispatch was running.
	w.listeners = append(live, w.listeners[len(snapshot):]...)
	n := len(w.listeners)
	w.mu.Unlock()

	w.logger.Debug("navigation dispatched",
		zap.String("event", kind),
		zap.Int("notified", len(snapshot)),
		zap.Int("live", n))
}

// Start registers the watcher on the bus for the watched event. Delivery
// is synchronous, so no navigation is lost to a full buffer and a persist
// count of any size is honored. The registration ends when ctx is done or
// Stop is called.
func (w *NavigationWatcher) Start(ctx context.Context) {
	if w.bus == nil {
		return
	}
	remove := w.bus.Handle(w.event, func(evt bus.Event) {
		w.Dispatch(evt.Kind)
	})
	stop := context.AfterFunc(ctx, remove)
	w.stop = func() {
		stop()
		remove()
	}
}

// Stop ends the bus registration made by Start.
func (w *NavigationWatcher) Stop() {
	if w.stop != nil {
		w.stop()
	}
}
