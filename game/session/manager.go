package session

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/algoquest/gridpath/game/engine"
	"github.com/algoquest/gridpath/game/service"
)

var (
	ErrSessionNotFound      = errors.New("game session not found")
	ErrSessionAlreadyExists = errors.New("game session already exists")
	ErrInvalidSessionID     = errors.New("invalid game session ID")
)

// Manager handles game session lifecycle
type Manager struct {
	sessions    map[string]*service.Session
	persistence SessionPersistence
	mu          sync.RWMutex
}

// NewManager creates a new in-memory session manager
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*service.Session),
	}
}

// NewManagerWithPersistence creates a session manager backed by storage
func NewManagerWithPersistence(persistence SessionPersistence) *Manager {
	return &Manager{
		sessions:    make(map[string]*service.Session),
		persistence: persistence,
	}
}

// Create creates a new session with the given ID and configuration. An empty
// ID gets a generated one; a nil seed means a time-seeded game.
func (m *Manager) Create(id string, cfg engine.Config, seed *int64) (*service.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		id = m.generateSessionID()
	} else {
		id = strings.ToLower(id)
		if !ValidSessionID(id) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidSessionID, id)
		}
	}

	if m.sessionExists(id) {
		return nil, fmt.Errorf("%w: %s", ErrSessionAlreadyExists, id)
	}

	var game *engine.Game
	var err error
	if seed != nil {
		game, err = engine.NewSeededGame(cfg, *seed)
	} else {
		game, err = engine.NewGame(cfg)
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sess := &service.Session{
		ID:             id,
		Game:           game,
		CreatedAt:      now,
		LastAccessedAt: now,
	}
	m.sessions[id] = sess

	if m.persistence != nil {
		if err := m.persistence.SaveSession(sess); err != nil {
			log.Printf("[SESSION] Failed to persist new session %s: %v", id, err)
		}
	}
	return sess, nil
}

// Get retrieves a session by ID, falling back to storage for sessions not in
// memory (a restarted server picks games back up on first access)
func (m *Manager) Get(id string) (*service.Session, error) {
	key := strings.ToLower(id)

	m.mu.RLock()
	sess, ok := m.sessions[key]
	m.mu.RUnlock()
	if ok {
		return sess, nil
	}

	if m.persistence != nil && m.persistence.Exists(key) {
		sess, err := m.persistence.LoadSession(key)
		if err != nil {
			return nil, fmt.Errorf("failed to load persisted session: %w", err)
		}
		m.mu.Lock()
		// Another goroutine may have loaded it in the meantime
		if cached, ok := m.sessions[key]; ok {
			sess = cached
		} else {
			m.sessions[key] = sess
		}
		m.mu.Unlock()
		return sess, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
}

// List returns all in-memory sessions
func (m *Manager) List() []*service.Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*service.Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		result = append(result, sess)
	}
	return result
}

// Delete removes a session from memory and storage
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(id)
	_, inMemory := m.sessions[key]
	delete(m.sessions, key)

	if m.persistence != nil && m.persistence.Exists(key) {
		if err := m.persistence.DeleteSession(key); err != nil {
			return fmt.Errorf("failed to delete persisted session: %w", err)
		}
		return nil
	}
	if !inMemory {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return nil
}

// Touch updates the last accessed time for a session
func (m *Manager) Touch(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[strings.ToLower(id)]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	sess.LastAccessedAt = time.Now()
	return nil
}

// Save writes one session to storage
func (m *Manager) Save(id string) error {
	if m.persistence == nil {
		return nil
	}

	m.mu.RLock()
	sess, ok := m.sessions[strings.ToLower(id)]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return m.persistence.SaveSession(sess)
}

// CleanupExpired removes sessions idle longer than maxAge from memory and
// returns how many were removed. Persisted copies survive and reload on the
// next access.
func (m *Manager) CleanupExpired(maxAge time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for id, sess := range m.sessions {
		if sess.LastAccessedAt.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// PruneOrphans drops in-memory sessions whose storage files have been
// deleted out from under the server, so removing a session file on disk
// takes effect without a restart. Returns how many were dropped.
func (m *Manager) PruneOrphans() int {
	if m.persistence == nil {
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	pruned := 0
	for id := range m.sessions {
		if !m.persistence.Exists(id) {
			delete(m.sessions, id)
			pruned++
		}
	}
	return pruned
}

// Count returns the number of in-memory sessions
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// LoadPersisted loads all stored sessions into memory, skipping any that
// fail to restore
func (m *Manager) LoadPersisted() error {
	if m.persistence == nil {
		return nil
	}

	sessions, err := m.persistence.LoadAllSessions()
	if err != nil {
		return fmt.Errorf("failed to load persisted sessions: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	loaded := 0
	for _, sess := range sessions {
		key := strings.ToLower(sess.ID)
		if _, ok := m.sessions[key]; ok {
			continue
		}
		m.sessions[key] = sess
		loaded++
	}
	if loaded > 0 {
		log.Printf("[SESSION] Restored %d persisted sessions", loaded)
	}
	return nil
}

// SaveAll writes every in-memory session to storage
func (m *Manager) SaveAll() error {
	if m.persistence == nil {
		return nil
	}

	m.mu.RLock()
	sessions := make([]*service.Session, 0, len(m.sessions))
	for _, sess := range m.sessions {
		sessions = append(sessions, sess)
	}
	m.mu.RUnlock()

	failed := 0
	for _, sess := range sessions {
		if err := m.persistence.SaveSession(sess); err != nil {
			log.Printf("[SESSION] Failed to save session %s: %v", sess.ID, err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("failed to save %d of %d sessions", failed, len(sessions))
	}
	return nil
}

// generateSessionID returns an unused random 4-character hex ID
func (m *Manager) generateSessionID() string {
	for {
		b := make([]byte, 2)
		rand.Read(b)
		id := hex.EncodeToString(b)
		if !m.sessionExists(id) {
			return id
		}
	}
}

// sessionExists checks memory and storage under the manager lock
func (m *Manager) sessionExists(id string) bool {
	if _, ok := m.sessions[id]; ok {
		return true
	}
	return m.persistence != nil && m.persistence.Exists(id)
}

// ValidSessionID reports whether an ID is safe to use as a session key and
// storage filename: 1-32 characters from [a-z0-9_-]
func ValidSessionID(id string) bool {
	if len(id) == 0 || len(id) > 32 {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}
