package history

import (
	"context"

	"github.com/matheus3301/flash/internal/bus"
	"github.com/matheus3301/flash/internal/flash"
	"go.uber.org/zap"
)

// Recorder persists flash lifecycle events from the bus.
type Recorder struct {
	db     *DB
	bus    *bus.Bus
	logger *zap.Logger
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRecorder creates a recorder writing to db.
func NewRecorder(db *DB, b *bus.Bus, logger *zap.Logger) *Recorder {
	return &Recorder{
		db:     db,
		bus:    b,
		logger: logger,
	}
}

// Start subscribes to flash.* events on the bus.
func (r *Recorder) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})
	ch, unsub := r.bus.Subscribe(bus.FlashNamespace, 256)

	go func() {
		defer close(r.done)
		defer unsub()
		for {
			select {
			case evt, ok := <-ch:
				if !ok {
					return
				}
				r.handleEvent(evt)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the recorder and waits for the event loop to exit.
func (r *Recorder) Stop() {
	if r.cancel == nil {
		return
	}
	r.cancel()
	<-r.done
}

func (r *Recorder) handleEvent(evt bus.Event) {
	var e *Entry
	switch p := evt.Payload.(type) {
	case flash.Added:
		e = entryFor(p.Message, EventAdded, "")
	case flash.RemovedEvent:
		e = entryFor(p.Message, EventRemoved, string(p.Reason))
	default:
		return
	}
	e.At = evt.Timestamp
	if err := r.db.Record(e); err != nil {
		r.logger.Error("failed to record flash event", zap.Error(err), zap.String("message_id", e.MessageID))
	}
}

func entryFor(m *flash.Message, event, reason string) *Entry {
	return &Entry{
		MessageID: m.ID(),
		Scope:     string(m.Scope()),
		Category:  m.Category(),
		Content:   m.Content(),
		Event:     event,
		Reason:    reason,
	}
}
