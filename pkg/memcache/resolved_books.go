package memcache

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry struct {
	id        uuid.UUID
	expiresAt time.Time
}

// ResolvedBooks caches book ids by normalized "title|author" key so repeated
// resolutions inside one scraping run skip the database tiers entirely.
type ResolvedBooks struct {
	mu   sync.RWMutex
	ttl  time.Duration
	data map[string]entry
}

func NewResolvedBooks(ttl time.Duration) *ResolvedBooks {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &ResolvedBooks{
		ttl:  ttl,
		data: make(map[string]entry),
	}
}

func Key(title, author string) string {
	return title + "|" + author
}

func (s *ResolvedBooks) Get(key string) (uuid.UUID, bool) {
	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return uuid.Nil, false
	}
	if time.Now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.data, key)
		s.mu.Unlock()
		return uuid.Nil, false
	}
	return e.id, true
}

func (s *ResolvedBooks) Set(key string, id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = entry{id: id, expiresAt: time.Now().Add(s.ttl)}
}
