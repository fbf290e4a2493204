package flash

import "slices"

// State is a message lifecycle state.
type State string

const (
	Pending State = "PENDING"
	Active  State = "ACTIVE"
	Removed State = "REMOVED"
)

// validTransitions defines allowed lifecycle transitions. Removed is terminal.
var validTransitions = map[State][]State{
	Pending: {Active},
	Active:  {Removed},
}

func (s State) canTransition(to State) bool {
	return slices.Contains(validTransitions[s], to)
}

// RemovalReason records what removed a message.
type RemovalReason string

const (
	ReasonExpired   RemovalReason = "expired"
	ReasonNavigated RemovalReason = "navigated"
	ReasonDismissed RemovalReason = "dismissed"
	ReasonReplaced  RemovalReason = "replaced"
	ReasonReset     RemovalReason = "reset"
)
