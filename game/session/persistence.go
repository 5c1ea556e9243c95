package session

import (
	"encoding/json"
	"time"

	"github.com/algoquest/gridpath/game/engine"
	"github.com/algoquest/gridpath/game/service"
)

// SessionPersistence defines the interface for persisting game sessions
type SessionPersistence interface {
	// SaveSession persists a session to storage
	SaveSession(sess *service.Session) error

	// LoadSession retrieves a session from storage by ID
	LoadSession(id string) (*service.Session, error)

	// LoadAllSessions retrieves every persisted session
	LoadAllSessions() ([]*service.Session, error)

	// DeleteSession removes a session from storage
	DeleteSession(id string) error

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// PersistedSession is the JSON structure written per session: the session
// bookkeeping plus the serialized engine state
type PersistedSession struct {
	ID             string               `json:"id"`
	CreatedAt      time.Time            `json:"created_at"`
	LastAccessedAt time.Time            `json:"last_accessed_at"`
	MoveCount      int                  `json:"move_count"`
	Config         engine.Config        `json:"config"`
	State          json.RawMessage      `json:"state"`
	History        []service.MoveRecord `json:"history,omitempty"`
}
