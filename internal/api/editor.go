package api

import (
	"sync"

	"github.com/kalambet/calico/internal/setup"
	"github.com/kalambet/calico/internal/storage"
)

// Editor serializes access to one session shared by the HTTP and MCP
// front ends.
type Editor struct {
	mu      sync.Mutex
	session *setup.Session
	store   *storage.Store
}

// NewEditor wraps s. store may be nil, which disables profiles.
func NewEditor(s *setup.Session, store *storage.Store) *Editor {
	return &Editor{session: s, store: store}
}

// Do runs fn while holding the session lock.
func (e *Editor) Do(fn func(s *setup.Session) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.session)
}

// Store returns the profile store, or nil.
func (e *Editor) Store() *storage.Store { return e.store }
