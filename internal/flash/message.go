package flash

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Message is a single flash notification.
//
// Identity is the pointer: two messages with the same content are still
// different messages. Fields other than the lifecycle state never change
// after Add returns.
type Message struct {
	id        string
	content   string
	category  string
	duration  time.Duration
	persist   int
	scope     Scope
	createdAt time.Time
	svc       *Service

	// Guarded by svc.mu.
	state   State
	timer   Timer
	gen     uint64
	navLeft int
}

// ID returns the message's unique id.
func (m *Message) ID() string { return m.id }

// Content returns the display text. It may contain markup and must be
// sanitized before rendering.
func (m *Message) Content() string { return m.content }

// Category returns the styling tag, e.g. "alert".
func (m *Message) Category() string { return m.category }

// Duration returns the time from (re)scheduling to expiry.
func (m *Message) Duration() time.Duration { return m.duration }

// Persist returns how many navigations the message survives.
func (m *Message) Persist() int { return m.persist }

// Scope returns the scope the message belongs to.
func (m *Message) Scope() Scope { return m.scope }

// CreatedAt returns when the message was added.
func (m *Message) CreatedAt() time.Time { return m.createdAt }

// State returns the current lifecycle state.
func (m *Message) State() State {
	m.svc.mu.Lock()
	defer m.svc.mu.Unlock()
	return m.state
}

// Remove dismisses the message. Calling it on a message that is already
// gone is a no-op.
func (m *Message) Remove() {
	m.svc.remove(m, ReasonDismissed)
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (m *Message) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("id", m.id)
	enc.AddString("scope", string(m.scope))
	enc.AddString("category", m.category)
	enc.AddDuration("duration", m.duration)
	if m.persist > 0 {
		enc.AddInt("persist", m.persist)
	}
	return nil
}

func (m *Message) setState(to State) bool {
	if !m.state.canTransition(to) {
		return false
	}
	m.state = to
	return true
}

func (m *Message) cancelTimer() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

func messageField(m *Message) zap.Field {
	return zap.Object("message", m)
}
