package flash

import (
	"maps"
	"slices"
)

// Scope identifies an isolated message list.
type Scope string

// GlobalScope is the default scope. It always exists.
const GlobalScope Scope = "global"

func (s Scope) orGlobal() Scope {
	if s == "" {
		return GlobalScope
	}
	return s
}

// Store maps scopes to their active messages in display order.
//
// A scope entry exists only while it holds at least one message, except
// GlobalScope which is never torn down. Store is not safe for concurrent
// use; Service serializes all access.
type Store struct {
	scopes map[Scope][]*Message
}

// NewStore creates a store holding an empty global scope.
func NewStore() *Store {
	return &Store{
		scopes: map[Scope][]*Message{GlobalScope: nil},
	}
}

// Messages returns a copy of the scope's messages in display order.
func (s *Store) Messages(scope Scope) []*Message {
	return slices.Clone(s.scopes[scope.orGlobal()])
}

// Len returns the number of messages in the scope.
func (s *Store) Len(scope Scope) int {
	return len(s.scopes[scope.orGlobal()])
}

// Has reports whether the scope has an entry.
func (s *Store) Has(scope Scope) bool {
	_, ok := s.scopes[scope.orGlobal()]
	return ok
}

// Scopes returns every scope with an entry, sorted.
func (s *Store) Scopes() []Scope {
	return slices.Sorted(maps.Keys(s.scopes))
}

func (s *Store) find(scope Scope, content string) *Message {
	for _, m := range s.scopes[scope] {
		if m.content == content {
			return m
		}
	}
	return nil
}

func (s *Store) append(m *Message) {
	s.scopes[m.scope] = append(s.scopes[m.scope], m)
}

// remove deletes m by identity and drops an emptied non-global scope.
func (s *Store) remove(m *Message) bool {
	msgs := s.scopes[m.scope]
	i := slices.Index(msgs, m)
	if i < 0 {
		return false
	}
	msgs = slices.Delete(msgs, i, i+1)
	if len(msgs) == 0 && m.scope != GlobalScope {
		delete(s.scopes, m.scope)
		return true
	}
	s.scopes[m.scope] = msgs
	return true
}

// clear empties the scope and returns what it held.
func (s *Store) clear(scope Scope) []*Message {
	msgs, ok := s.scopes[scope]
	if !ok {
		return nil
	}
	if scope == GlobalScope {
		s.scopes[scope] = nil
	} else {
		delete(s.scopes, scope)
	}
	return msgs
}
