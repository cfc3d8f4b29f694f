// Package service provides business logic for the assistant platform.
package service

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hearthline/estate-assistant/internal/session"
	"github.com/hearthline/estate-assistant/pkg/logger"
	"github.com/hearthline/estate-assistant/pkg/metrics"
)

// welcomeText seeds every new session's transcript.
const welcomeText = "Hello! I'm your real estate assistant. How can I help you today?"

// ErrSessionNotFound is returned for unknown or torn-down sessions.
var ErrSessionNotFound = errors.New("session not found")

// SessionManager creates, resolves and tears down conversation sessions.
// Sessions are held in memory: each owns its transcript exclusively and
// dies with the process.
type SessionManager struct {
	composer session.Composer
	sink     session.Sink
	logger   *logger.Logger

	mu       sync.RWMutex
	sessions map[string]*session.Session
}

// NewSessionManager creates a new session manager. sink may be nil.
func NewSessionManager(comp session.Composer, sink session.Sink, log *logger.Logger) *SessionManager {
	return &SessionManager{
		composer: comp,
		sink:     sink,
		logger:   log,
		sessions: make(map[string]*session.Session),
	}
}

// Create opens a new session seeded with the assistant greeting.
func (m *SessionManager) Create() *session.Session {
	id := uuid.Must(uuid.NewV7()).String()

	opts := []session.Option{}
	if m.sink != nil {
		opts = append(opts, session.WithSink(m.sink))
	}

	sess := session.New(id, m.composer, m.logger.WithSession(id), opts...)
	sess.Seed(welcomeText)

	m.mu.Lock()
	m.sessions[id] = sess
	m.mu.Unlock()

	metrics.SessionsActive.Inc()
	m.logger.Info("session created", zap.String("session_id", id))

	return sess
}

// Get resolves a live session by ID.
func (m *SessionManager) Get(id string) (*session.Session, error) {
	m.mu.RLock()
	sess, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// Delete tears down a session and forgets it.
func (m *SessionManager) Delete(id string) error {
	m.mu.Lock()
	sess, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}

	sess.Close()
	metrics.SessionsActive.Dec()
	m.logger.Info("session deleted", zap.String("session_id", id))

	return nil
}

// Shutdown tears down every live session.
func (m *SessionManager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, sess := range m.sessions {
		sess.Close()
		delete(m.sessions, id)
		metrics.SessionsActive.Dec()
	}
}
