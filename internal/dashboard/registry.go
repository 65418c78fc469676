package dashboard

import (
	"sync"

	"github.com/google/uuid"
)

// Sessions keeps the live sessions of the HTTP API by id.
type Sessions struct {
	svc *Service

	mu sync.RWMutex
	m  map[string]*Session
}

func NewSessions(svc *Service) *Sessions {
	return &Sessions{svc: svc, m: make(map[string]*Session)}
}

func (r *Sessions) Create() (string, *Session) {
	id := uuid.NewString()
	s := NewSession(r.svc)
	r.mu.Lock()
	r.m[id] = s
	r.mu.Unlock()
	return id, s
}

func (r *Sessions) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.m[id]
	return s, ok
}

func (r *Sessions) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.m[id]
	delete(r.m, id)
	return ok
}

func (r *Sessions) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.m)
}
