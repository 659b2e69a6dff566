package session

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/b0ase/path402/apps/assetroom/internal/metrics"
)

// Factory builds a fresh session for a new id.
type Factory func(id string) *Session

// Registry maps session ids to live sessions. Entries expire after ttl or
// when the registry is full; evicted sessions are closed.
type Registry struct {
	cache   *expirable.LRU[string, *Session]
	factory Factory
}

// NewRegistry creates a registry holding at most size sessions.
func NewRegistry(size int, ttl time.Duration, factory Factory) *Registry {
	if size <= 0 {
		size = 1024
	}
	onEvict := func(id string, s *Session) {
		s.Close()
		metrics.SessionsActive.Dec()
		log.Printf("[session] Evicted %s", s.shortID())
	}
	return &Registry{
		cache:   expirable.NewLRU[string, *Session](size, onEvict, ttl),
		factory: factory,
	}
}

// Create starts a new session under a random id.
func (r *Registry) Create() *Session {
	id := uuid.NewString()
	s := r.factory(id)
	r.cache.Add(id, s)
	metrics.SessionsActive.Inc()
	return s
}

// Get returns a live session by id.
func (r *Registry) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	return r.cache.Get(id)
}

// GetOrCreate returns the session for id, or a new one when id is unknown
// or expired. created reports which.
func (r *Registry) GetOrCreate(id string) (s *Session, created bool) {
	if s, ok := r.Get(id); ok {
		return s, false
	}
	return r.Create(), true
}

// Len is the number of live sessions.
func (r *Registry) Len() int {
	return r.cache.Len()
}

// Close evicts and closes every session.
func (r *Registry) Close() {
	r.cache.Purge()
}
