package session

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/algoquest/gridpath/game/engine"
	"github.com/algoquest/gridpath/game/service"
)

// FilePersistence implements SessionPersistence with one JSON file per
// session containing the serialized engine state and session bookkeeping
type FilePersistence struct {
	sessionsDir string
}

// NewFilePersistence creates a file-based session persistence layer,
// creating the directory if needed
func NewFilePersistence(sessionsDir string) (*FilePersistence, error) {
	if err := os.MkdirAll(sessionsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}
	return &FilePersistence{sessionsDir: sessionsDir}, nil
}

// SaveSession persists a session to a JSON file
func (fp *FilePersistence) SaveSession(sess *service.Session) error {
	if sess == nil {
		return fmt.Errorf("session cannot be nil")
	}
	if !ValidSessionID(sess.ID) {
		return fmt.Errorf("%w: %q", ErrInvalidSessionID, sess.ID)
	}

	stateJSON, err := sess.Game.Serialize()
	if err != nil {
		return fmt.Errorf("failed to serialize game state: %w", err)
	}

	data := PersistedSession{
		ID:             sess.ID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		MoveCount:      sess.MoveCount,
		Config:         sess.Game.Config(),
		State:          stateJSON,
		History:        sess.History,
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}
	if err := os.WriteFile(fp.filePath(sess.ID), jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// LoadSession restores a session from its JSON file
func (fp *FilePersistence) LoadSession(id string) (*service.Session, error) {
	if !ValidSessionID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSessionID, id)
	}

	jsonData, err := os.ReadFile(fp.filePath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var data PersistedSession
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session %s: %w", id, err)
	}
	return fp.restore(data)
}

// LoadAllSessions restores every session file in the directory. Files that
// fail to restore are skipped with a warning rather than blocking startup.
func (fp *FilePersistence) LoadAllSessions() ([]*service.Session, error) {
	entries, err := os.ReadDir(fp.sessionsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	sessions := make([]*service.Session, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		sess, err := fp.LoadSession(id)
		if err != nil {
			log.Printf("[SESSION] Skipping unreadable session file %s: %v", entry.Name(), err)
			continue
		}
		sessions = append(sessions, sess)
	}
	return sessions, nil
}

// DeleteSession removes a session file
func (fp *FilePersistence) DeleteSession(id string) error {
	if !fp.Exists(id) {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err := os.Remove(fp.filePath(id)); err != nil {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// Exists checks if a session file exists
func (fp *FilePersistence) Exists(id string) bool {
	if !ValidSessionID(id) {
		return false
	}
	_, err := os.Stat(fp.filePath(id))
	return err == nil
}

// restore rebuilds a live session from its persisted form
func (fp *FilePersistence) restore(data PersistedSession) (*service.Session, error) {
	game, err := engine.NewGame(data.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild game for session %s: %w", data.ID, err)
	}

	state, err := engine.Deserialize(data.State)
	if err != nil {
		return nil, fmt.Errorf("session %s has a corrupt state: %w", data.ID, err)
	}
	if err := game.Restore(state); err != nil {
		return nil, fmt.Errorf("failed to restore state for session %s: %w", data.ID, err)
	}

	createdAt := data.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	lastAccessed := data.LastAccessedAt
	if lastAccessed.IsZero() {
		lastAccessed = createdAt
	}

	return &service.Session{
		ID:             data.ID,
		Game:           game,
		CreatedAt:      createdAt,
		LastAccessedAt: lastAccessed,
		MoveCount:      data.MoveCount,
		History:        data.History,
	}, nil
}

// filePath returns the storage path for a session ID
func (fp *FilePersistence) filePath(id string) string {
	return filepath.Join(fp.sessionsDir, id+".json")
}
