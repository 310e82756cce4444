package repository

import (
	"sync"
	"time"

	"github.com/dskvich/game-analyst/pkg/conversation"
)

type sessionEntry struct {
	controller *conversation.Controller
	lastUpdate time.Time
}

// sessionRepository keeps live sessions in memory. A session idle for longer
// than the TTL is evicted and its in-flight call, if any, cancelled.
type sessionRepository struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	ttl      time.Duration
	now      func() time.Time
}

func NewSessionRepository(ttl time.Duration) *sessionRepository {
	return &sessionRepository{
		sessions: make(map[string]*sessionEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (r *sessionRepository) Save(id string, controller *conversation.Controller) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[id] = &sessionEntry{
		controller: controller,
		lastUpdate: r.now(),
	}
}

// GetByID returns the session and refreshes its idle timer.
func (r *sessionRepository) GetByID(id string) (*conversation.Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[id]
	if !ok {
		return nil, false
	}

	if r.expired(entry) {
		delete(r.sessions, id)
		entry.controller.Cancel()
		return nil, false
	}

	entry.lastUpdate = r.now()
	return entry.controller, true
}

func (r *sessionRepository) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.sessions[id]
	if !ok {
		return false
	}

	delete(r.sessions, id)
	entry.controller.Cancel()
	return true
}

// EvictExpired drops every idle session and reports how many were removed.
func (r *sessionRepository) EvictExpired() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	evicted := 0
	for id, entry := range r.sessions {
		if r.expired(entry) {
			delete(r.sessions, id)
			entry.controller.Cancel()
			evicted++
		}
	}
	return evicted
}

func (r *sessionRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}

func (r *sessionRepository) expired(entry *sessionEntry) bool {
	return r.ttl > 0 && r.now().Sub(entry.lastUpdate) > r.ttl
}
