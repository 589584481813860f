package router

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/northbeam/website/pkg/core"
	"github.com/northbeam/website/pkg/transport"
)

// ErrSessionLimit is returned when MaxSessions live page views are connected.
var ErrSessionLimit = errors.New("live session limit reached")

// Session binds one connected page view to its component instance.
type Session struct {
	// ID uniquely identifies the session.
	ID string

	// SocketID is the ID of the associated socket.
	SocketID string

	// Route is the live route the page view was opened on.
	Route *LiveRoute

	// Component is this page view's component instance.
	Component core.Component

	// Transport is the page view's message stream.
	Transport transport.Transport

	// Params are the URL parameters of the page view.
	Params core.Params

	// Session holds request-derived session data.
	Session core.Session

	// CreatedAt is when the socket connected.
	CreatedAt time.Time

	lastActivity  atomic.Int64
	mounted       atomic.Bool
	joinRef       atomic.Value
	terminateOnce sync.Once
}

func newSession(socketID string, route *LiveRoute, comp core.Component, t transport.Transport, params core.Params, session core.Session) *Session {
	now := time.Now()
	s := &Session{
		ID:        uuid.NewString(),
		SocketID:  socketID,
		Route:     route,
		Component: comp,
		Transport: t,
		Params:    params,
		Session:   session,
		CreatedAt: now,
	}
	s.lastActivity.Store(now.UnixNano())
	s.joinRef.Store("")
	return s
}

// UpdateActivity records activity on the session.
func (s *Session) UpdateActivity() {
	s.lastActivity.Store(time.Now().UnixNano())
}

// LastActivity returns the time of the last message.
func (s *Session) LastActivity() time.Time {
	return time.Unix(0, s.lastActivity.Load())
}

// IsMounted reports whether the component has been mounted.
func (s *Session) IsMounted() bool {
	return s.mounted.Load()
}

// JoinRef returns the join reference the client used.
func (s *Session) JoinRef() string {
	return s.joinRef.Load().(string)
}

// terminate calls Terminate on a mounted component exactly once.
func (s *Session) terminate(fn func()) {
	s.terminateOnce.Do(func() {
		if s.IsMounted() {
			fn()
		}
	})
}

// SessionManager tracks all connected page views.
type SessionManager struct {
	sessions    map[string]*Session
	bySocket    map[string]*Session
	maxSessions int
	mu          sync.RWMutex
}

// NewSessionManager creates a manager. A maxSessions of zero means no limit.
func NewSessionManager(maxSessions int) *SessionManager {
	return &SessionManager{
		sessions:    make(map[string]*Session),
		bySocket:    make(map[string]*Session),
		maxSessions: maxSessions,
	}
}

// Create registers a new session.
func (m *SessionManager) Create(socketID string, route *LiveRoute, comp core.Component, t transport.Transport, params core.Params, session core.Session) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxSessions > 0 && len(m.sessions) >= m.maxSessions {
		return nil, ErrSessionLimit
	}

	s := newSession(socketID, route, comp, t, params, session)
	m.sessions[s.ID] = s
	m.bySocket[socketID] = s

	return s, nil
}

// Get returns a session by ID.
func (m *SessionManager) Get(sessionID string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[sessionID]
	return s, ok
}

// GetBySocket returns a session by socket ID.
func (m *SessionManager) GetBySocket(socketID string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.bySocket[socketID]
	return s, ok
}

// Remove unregisters a session.
func (m *SessionManager) Remove(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[sessionID]; ok {
		delete(m.bySocket, s.SocketID)
		delete(m.sessions, sessionID)
	}
}

// Count returns the number of sessions.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Expired returns sessions idle for longer than ttl. They stay registered
// until their message loop exits.
func (m *SessionManager) Expired(ttl time.Duration) []*Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	now := time.Now()
	var out []*Session
	for _, s := range m.sessions {
		if now.Sub(s.LastActivity()) > ttl {
			out = append(out, s)
		}
	}
	return out
}
