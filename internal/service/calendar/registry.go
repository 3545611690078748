package calendar

import (
	"sync"
	"time"

	"github.com/cmlabs-hris/leave-calendar-go/internal/domain/calendar"
	"github.com/google/uuid"
)

// Registry keeps the live sessions of the service, keyed by session id.
type Registry struct {
	cfg SessionConfig
	ttl time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewRegistry(cfg SessionConfig, ttl time.Duration) *Registry {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Renderer == nil {
		cfg.Renderer = NewRenderer(cfg.Now)
	}
	return &Registry{
		cfg:      cfg,
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
}

// Create starts a session in the year view of the current year and kicks off
// its first fetch.
func (r *Registry) Create(locale calendar.Locale) *Session {
	s := newSession(uuid.New().String(), locale, r.cfg)

	r.mu.Lock()
	r.sessions[s.id] = s
	r.mu.Unlock()
	return s
}

func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, calendar.ErrSessionNotFound
	}
	return s, nil
}

func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return calendar.ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// SweepIdle drops sessions not accessed for the registry TTL and returns
// their ids. A non-positive TTL disables sweeping.
func (r *Registry) SweepIdle() []string {
	if r.ttl <= 0 {
		return nil
	}
	now := r.cfg.Now()

	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []string
	for id, s := range r.sessions {
		if s.idleSince(now) >= r.ttl {
			delete(r.sessions, id)
			removed = append(removed, id)
		}
	}
	return removed
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
