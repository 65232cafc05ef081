// Package session holds the approver's credentials and keeps the in-memory copy
// reconciled with the persisted one.
package session

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"

	"github.com/SumanHE17/tripdesk/internal/logging"
)

// Credentials are the Basic-auth username and password.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Complete reports whether both username and password are set.
func (c Credentials) Complete() bool {
	return c.Username != "" && c.Password != ""
}

// AuthHeader returns the Authorization header value for these credentials.
func (c Credentials) AuthHeader() string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(c.Username+":"+c.Password))
}

// Store persists credentials between runs.
type Store interface {
	Load() (Credentials, error)
	Save(Credentials) error
	Clear() error
}

// Session is the explicitly passed auth state. Components that need the
// Authorization header take a *Session (or its Credentials) as a parameter.
type Session struct {
	mu    sync.RWMutex
	creds Credentials
	store Store
}

// New creates a session seeded with in-memory credentials. store may be nil.
func New(store Store, initial Credentials) *Session {
	return &Session{store: store, creds: initial}
}

// Credentials returns the current in-memory credentials.
func (s *Session) Credentials() Credentials {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.creds
}

// Login replaces the in-memory credentials and persists them. The in-memory
// copy is updated even if persisting fails.
func (s *Session) Login(creds Credentials) error {
	s.mu.Lock()
	s.creds = creds
	store := s.store
	s.mu.Unlock()

	if store == nil {
		return nil
	}
	if err := store.Save(creds); err != nil {
		return fmt.Errorf("persisting credentials: %w", err)
	}
	return nil
}

// Logout clears the in-memory and persisted credentials.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.creds = Credentials{}
	store := s.store
	s.mu.Unlock()

	if store == nil {
		return nil
	}
	if err := store.Clear(); err != nil {
		return fmt.Errorf("clearing credentials: %w", err)
	}
	return nil
}

// Bootstrap reconciles persisted credentials with memory: when both stored
// fields are present and differ from memory, it logs in with them. It reports
// whether a login happened. A missing store or incomplete stored credentials
// is a silent no-op; a store read error is returned so callers can surface it
// without blocking startup.
func (s *Session) Bootstrap(ctx context.Context) (bool, error) {
	if s.store == nil {
		return false, nil
	}

	log := logging.FromContext(ctx)

	stored, err := s.store.Load()
	if err != nil {
		log.Warn().Ctx(ctx).Str("component", "session").Err(err).Msg("could not read stored credentials")
		return false, fmt.Errorf("reading stored credentials: %w", err)
	}

	if !stored.Complete() {
		return false, nil
	}
	if stored == s.Credentials() {
		return false, nil
	}

	s.mu.Lock()
	s.creds = stored
	s.mu.Unlock()

	log.Debug().Ctx(ctx).Str("component", "session").Str("username", stored.Username).
		Msg("restored stored credentials")
	return true, nil
}
