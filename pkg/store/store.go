// Package store holds the per-session conversation state.
package store

import (
	"sync"

	"github.com/dskvich/game-analyst/pkg/domain"
)

// Store is a passive container for one ConversationState. It performs no
// validation; the conversation controller owns the invariants.
type Store struct {
	mu    sync.RWMutex
	state domain.ConversationState
}

func New(seed ...domain.Message) *Store {
	history := make([]domain.Message, 0, len(seed))
	history = append(history, seed...)

	return &Store{state: domain.ConversationState{History: history}}
}

func (s *Store) SetDocument(doc domain.DocumentContext) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Document = &doc
}

// ClearDocument drops the current document, if any.
func (s *Store) ClearDocument() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Document = nil
}

func (s *Store) AppendMessage(m domain.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.History = append(s.state.History, m)
}

// BeginRequest marks a completion call as in flight. It reports false, and
// changes nothing, when one already is.
func (s *Store) BeginRequest() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.PendingRequest {
		return false
	}
	s.state.PendingRequest = true
	return true
}

func (s *Store) EndRequest() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.PendingRequest = false
}

// Snapshot returns a copy that later mutations do not affect.
func (s *Store) Snapshot() domain.ConversationState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Clone()
}
