package flash

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/matheus3301/flash/internal/bus"
	"go.uber.org/zap"
)

const (
	DefaultDuration = 5 * time.Second
	DefaultType     = "alert"
)

// Categories used by the Info, Warn and Err helpers.
const (
	CategoryInfo  = "info"
	CategoryWarn  = "warn"
	CategoryError = "error"
)

// Config holds process-wide defaults. Zero fields take the package defaults.
type Config struct {
	DefaultDuration time.Duration
	DefaultType     string
	NavigationEvent string
}

// DefaultConfig returns the package defaults.
func DefaultConfig() Config {
	return Config{
		DefaultDuration: DefaultDuration,
		DefaultType:     DefaultType,
		NavigationEvent: DefaultNavigationEvent,
	}
}

func (c Config) withDefaults() Config {
	if c.DefaultDuration <= 0 {
		c.DefaultDuration = DefaultDuration
	}
	if c.DefaultType == "" {
		c.DefaultType = DefaultType
	}
	if c.NavigationEvent == "" {
		c.NavigationEvent = DefaultNavigationEvent
	}
	return c
}

// Options customizes a single message. Zero fields fall back to the
// service configuration and GlobalScope.
type Options struct {
	Duration time.Duration
	Type     string
	Persist  int
	Scope    Scope
}

// Added is the payload of bus.KindFlashAdded.
type Added struct {
	Message *Message
}

// RemovedEvent is the payload of bus.KindFlashRemoved.
type RemovedEvent struct {
	Message *Message
	Reason  RemovalReason
}

// ResetEvent is the payload of bus.KindFlashReset.
type ResetEvent struct {
	Scope   Scope
	Cleared int
}

// Service is the entry point for adding and removing flash messages.
//
// All mutations (API calls, timer expiry and navigation steps) run to
// completion under one mutex, so message state is never observed half
// updated. Events are published after the mutex is released.
type Service struct {
	mu      sync.Mutex
	cfg     Config
	store   *Store
	sched   Scheduler
	watcher *NavigationWatcher
	bus     *bus.Bus
	logger  *zap.Logger
	now     func() time.Time
}

// NewService creates a flash service. A nil sched uses SystemScheduler, a nil
// watcher gets one built for cfg.NavigationEvent, and a nil bus disables
// event publishing.
func NewService(cfg Config, sched Scheduler, watcher *NavigationWatcher, b *bus.Bus, logger *zap.Logger) *Service {
	cfg = cfg.withDefaults()
	if logger == nil {
		logger = zap.NewNop()
	}
	if sched == nil {
		sched = SystemScheduler{}
	}
	if watcher == nil {
		watcher = NewNavigationWatcher(cfg.NavigationEvent, b, logger)
	}
	return &Service{
		cfg:     cfg,
		store:   NewStore(),
		sched:   sched,
		watcher: watcher,
		bus:     b,
		logger:  logger,
		now:     time.Now,
	}
}

// Config returns the effective configuration.
func (s *Service) Config() Config {
	return s.cfg
}

// Watcher returns the navigation watcher messages register with.
func (s *Service) Watcher() *NavigationWatcher {
	return s.watcher
}

// Add creates a message and shows it. An active message with the same
// content in the same scope is replaced. The returned message can be
// removed with Remove.
func (s *Service) Add(content string, opts Options) *Message {
	m := &Message{
		id:        uuid.NewString(),
		content:   content,
		category:  opts.Type,
		duration:  opts.Duration,
		persist:   max(opts.Persist, 0),
		scope:     opts.Scope.orGlobal(),
		createdAt: s.now(),
		svc:       s,
		state:     Pending,
	}
	if m.category == "" {
		m.category = s.cfg.DefaultType
	}
	if m.duration <= 0 {
		m.duration = s.cfg.DefaultDuration
	}

	s.mu.Lock()
	replaced := s.store.find(m.scope, content)
	if replaced != nil && !s.removeLocked(replaced) {
		replaced = nil
	}
	s.initLocked(m)
	s.store.append(m)
	s.mu.Unlock()

	if replaced != nil {
		s.removed(replaced, ReasonReplaced)
	}
	s.logger.Debug("flash added", messageField(m))
	s.publish(bus.KindFlashAdded, Added{Message: m})
	return m
}

// Info adds a message with the info category.
func (s *Service) Info(content string) *Message {
	return s.Add(content, Options{Type: CategoryInfo})
}

// Warn adds a message with the warn category.
func (s *Service) Warn(content string) *Message {
	return s.Add(content, Options{Type: CategoryWarn})
}

// Err adds a message with the error category.
func (s *Service) Err(err error) *Message {
	return s.Add(err.Error(), Options{Type: CategoryError})
}

// Reset clears every message in scope. The empty scope means GlobalScope.
// Pending timers are canceled and navigation listeners become no-ops.
func (s *Service) Reset(scope Scope) {
	scope = scope.orGlobal()

	s.mu.Lock()
	cleared := s.store.clear(scope)
	for _, m := range cleared {
		m.setState(Removed)
		m.cancelTimer()
	}
	s.mu.Unlock()

	if len(cleared) == 0 {
		return
	}
	for _, m := range cleared {
		s.publish(bus.KindFlashRemoved, RemovedEvent{Message: m, Reason: ReasonReset})
	}
	s.logger.Debug("flash scope reset", zap.String("scope", string(scope)), zap.Int("cleared", len(cleared)))
	s.publish(bus.KindFlashReset, ResetEvent{Scope: scope, Cleared: len(cleared)})
}

// Messages returns the scope's active messages in display order.
func (s *Service) Messages(scope Scope) []*Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Messages(scope)
}

// Len returns the number of active messages in scope.
func (s *Service) Len(scope Scope) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Len(scope)
}

// Scopes returns every scope that currently has an entry.
func (s *Service) Scopes() []Scope {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Scopes()
}

// initLocked activates m: it starts the expiry timer and registers the
// navigation listener. m survives persist navigations and is removed on the
// next one; each survived navigation restarts the timer.
func (s *Service) initLocked(m *Message) {
	m.setState(Active)
	m.navLeft = m.persist + 1
	s.startTimeoutLocked(m)
	s.watcher.Register(func() bool {
		return s.navigate(m)
	})
}

// startTimeoutLocked replaces m's timer. A timer that fires after being
// replaced sees a newer generation and does nothing.
func (s *Service) startTimeoutLocked(m *Message) {
	m.cancelTimer()
	m.gen++
	gen := m.gen
	m.timer = s.sched.Schedule(m.duration, func() {
		s.expire(m, gen)
	})
}

func (s *Service) removeLocked(m *Message) bool {
	if !m.setState(Removed) {
		return false
	}
	m.cancelTimer()
	s.store.remove(m)
	return true
}

func (s *Service) remove(m *Message, reason RemovalReason) {
	s.mu.Lock()
	ok := s.removeLocked(m)
	s.mu.Unlock()
	if ok {
		s.removed(m, reason)
	}
}

func (s *Service) expire(m *Message, gen uint64) {
	s.mu.Lock()
	if m.gen != gen {
		s.mu.Unlock()
		return
	}
	m.timer = nil
	ok := s.removeLocked(m)
	s.mu.Unlock()
	if ok {
		s.removed(m, ReasonExpired)
	}
}

// navigate handles one navigation for m and reports whether its listener
// is finished.
func (s *Service) navigate(m *Message) bool {
	s.mu.Lock()
	if m.state != Active {
		s.mu.Unlock()
		return true
	}
	m.navLeft--
	if m.navLeft > 0 {
		s.startTimeoutLocked(m)
		s.mu.Unlock()
		return false
	}
	s.removeLocked(m)
	s.mu.Unlock()
	s.removed(m, ReasonNavigated)
	return true
}

func (s *Service) removed(m *Message, reason RemovalReason) {
	s.logger.Debug("flash removed", messageField(m), zap.String("reason", string(reason)))
	s.publish(bus.KindFlashRemoved, RemovedEvent{Message: m, Reason: reason})
}

func (s *Service) publish(kind string, payload any) {
	if s.bus == nil {
		return
	}
	s.bus.Emit(kind, payload)
}
