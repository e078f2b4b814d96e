package wizard

import (
	"errors"
	"sync"
	"time"

	"github.com/Domenick1991/skyjourney/internal/domain"
	"github.com/google/uuid"
)

var ErrSessionNotFound = errors.New("booking session not found")

type session struct {
	wizard   *Wizard
	lastSeen time.Time
}

// Registry keeps live wizards keyed by session id. Sessions idle for longer
// than the configured TTL are dropped by Sweep.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*session
	idleTTL  time.Duration
	now      func() time.Time
}

type RegistryOption func(*Registry)

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) {
		r.now = now
	}
}

func NewRegistry(idleTTL time.Duration, opts ...RegistryOption) *Registry {
	r := &Registry{
		sessions: make(map[string]*session),
		idleTTL:  idleTTL,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) Open(flight *domain.Flight, passengerCount int) (string, State, error) {
	w, err := New(flight, passengerCount)
	if err != nil {
		return "", State{}, err
	}

	id := uuid.NewString()
	r.mu.Lock()
	r.sessions[id] = &session{wizard: w, lastSeen: r.now()}
	r.mu.Unlock()
	return id, w.Snapshot(), nil
}

// Do runs fn against the session's wizard under the registry lock and
// returns the resulting snapshot.
func (r *Registry) Do(id string, fn func(*Wizard) error) (State, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return State{}, ErrSessionNotFound
	}
	s.lastSeen = r.now()
	if fn != nil {
		if err := fn(s.wizard); err != nil {
			return s.wizard.Snapshot(), err
		}
	}
	return s.wizard.Snapshot(), nil
}

// Submit submits the session's wizard and forgets the session on success.
func (r *Registry) Submit(id string) (domain.Handoff, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return domain.Handoff{}, ErrSessionNotFound
	}
	s.lastSeen = r.now()
	h, err := s.wizard.Submit()
	if err != nil {
		return domain.Handoff{}, err
	}
	delete(r.sessions, id)
	return h, nil
}

func (r *Registry) Discard(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.sessions[id]
	delete(r.sessions, id)
	return ok
}

// Sweep removes sessions idle since before now-idleTTL and reports how many
// were dropped. A non-positive TTL disables expiry.
func (r *Registry) Sweep(now time.Time) int {
	if r.idleTTL <= 0 {
		return 0
	}
	deadline := now.Add(-r.idleTTL)

	r.mu.Lock()
	defer r.mu.Unlock()

	dropped := 0
	for id, s := range r.sessions {
		if s.lastSeen.Before(deadline) {
			delete(r.sessions, id)
			dropped++
		}
	}
	return dropped
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
