package bus

import "time"

// Event kinds published by the flash service. Navigation event kinds are
// configurable and not listed here.
const (
	KindFlashAdded   = "flash.added"
	KindFlashRemoved = "flash.removed"
	KindFlashReset   = "flash.reset"

	// FlashNamespace matches every flash.* event.
	FlashNamespace = "flash."
)

// Event represents a domain event published on the bus.
type Event struct {
	Kind      string
	Timestamp time.Time
	Payload   any
}

// NewEvent stamps an event with the current time.
func NewEvent(kind string, payload any) Event {
	return Event{Kind: kind, Timestamp: time.Now(), Payload: payload}
}
