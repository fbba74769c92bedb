package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/weather-lookup/internal/session"
)

var (
	// ErrNotFound is returned when no session exists for a given id.
	ErrNotFound = errors.New("session not found")
)

type entry struct {
	controller *session.Controller
	lastSeen   time.Time
}

// MemoryStore is a concurrency-safe in-memory registry of lookup sessions.
type MemoryStore struct {
	mu sync.RWMutex

	// key: session id
	data map[string]*entry

	// retention configuration
	maxSessions int           // max number of live sessions (0 = unlimited)
	maxAge      time.Duration // idle time after which Prune drops a session (0 = never)

	now func() time.Time
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxSessions is <= 0, it is treated as unlimited.
func NewMemoryStore(maxSessions int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		data:        make(map[string]*entry),
		maxSessions: maxSessions,
		maxAge:      maxAge,
		now:         time.Now,
	}
}

// Create registers c under a new random id and returns the id. When the store
// is full the least recently used session is evicted.
func (s *MemoryStore) Create(c *session.Controller) string {
	id := uuid.NewString()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.maxSessions > 0 && len(s.data) >= s.maxSessions {
		s.evictOldestLocked()
	}
	s.data[id] = &entry{controller: c, lastSeen: s.now()}
	return id
}

// Get returns the controller for id and marks the session as used.
func (s *MemoryStore) Get(id string) (*session.Controller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.lastSeen = s.now()
	return e.controller, nil
}

// Delete removes the session and cancels its in-flight fetch.
func (s *MemoryStore) Delete(id string) error {
	s.mu.Lock()
	e, ok := s.data[id]
	delete(s.data, id)
	s.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	e.controller.Close()
	return nil
}

// Prune drops sessions idle for longer than maxAge and returns how many were removed.
func (s *MemoryStore) Prune() int {
	if s.maxAge <= 0 {
		return 0
	}

	cutoff := s.now().Add(-s.maxAge)
	var expired []*session.Controller

	s.mu.Lock()
	for id, e := range s.data {
		if e.lastSeen.Before(cutoff) {
			expired = append(expired, e.controller)
			delete(s.data, id)
		}
	}
	s.mu.Unlock()

	for _, c := range expired {
		c.Close()
	}
	return len(expired)
}

// Len returns the number of live sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func (s *MemoryStore) evictOldestLocked() {
	var (
		oldestID string
		oldest   *entry
	)
	for id, e := range s.data {
		if oldest == nil || e.lastSeen.Before(oldest.lastSeen) {
			oldestID, oldest = id, e
		}
	}
	if oldest != nil {
		delete(s.data, oldestID)
		oldest.controller.Close()
	}
}
