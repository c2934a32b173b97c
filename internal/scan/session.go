package scan

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSessionNotFound  = errors.New("scan session not found")
	ErrSessionSuspended = errors.New("scan session is suspended")
)

type SessionState string

const (
	StateReady     SessionState = "ready"
	StateSuspended SessionState = "suspended"
)

// Session is one scanning surface. The camera polls on a fixed interval,
// so the same physical QR code is delivered on several consecutive ticks;
// suspending after a successful decode guarantees at most one allocation
// attempt per physical scan until the operator resumes.
type Session struct {
	ID         string       `json:"id"`
	State      SessionState `json:"state"`
	CreatedAt  time.Time    `json:"created_at"`
	LastScanAt time.Time    `json:"last_scan_at"`
}

// SessionManager tracks scan sessions in memory. Sessions are ephemeral
// operator state, not ledger state, so process-local storage is enough.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewSessionManager() *SessionManager {
	return &SessionManager{
		sessions: make(map[string]*Session),
	}
}

func (m *SessionManager) Create() Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := &Session{
		ID:        uuid.New().String(),
		State:     StateReady,
		CreatedAt: time.Now(),
	}
	m.sessions[s.ID] = s

	return *s
}

// Begin records a scan tick. It fails while the session is suspended, so
// repeated camera polls of the same code never produce a second attempt.
func (m *SessionManager) Begin(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	if s.State == StateSuspended {
		return ErrSessionSuspended
	}

	s.LastScanAt = time.Now()

	return nil
}

// Suspend releases the camera after a successful decode.
func (m *SessionManager) Suspend(id string) error {
	return m.setState(id, StateSuspended)
}

// Resume puts the session back into ready state on explicit operator
// action. Resuming a ready session is a no-op.
func (m *SessionManager) Resume(id string) error {
	return m.setState(id, StateReady)
}

func (m *SessionManager) Get(id string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}

	return *s, nil
}

func (m *SessionManager) setState(id string, state SessionState) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return ErrSessionNotFound
	}
	s.State = state

	return nil
}
