package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/algoquest/gridpath/game/engine"
	"github.com/algoquest/gridpath/game/service"
)

var (
	ErrPackNotFound = errors.New("level pack not found")
	ErrInvalidPack  = errors.New("invalid level pack")
)

// Manager loads and caches custom level packs from a directory. A pack is a
// JSON file holding a name and a list of levels in catalog format.
type Manager struct {
	packDir string
	packs   map[string]*service.Pack
	mu      sync.RWMutex
}

// NewManager creates a level pack manager over an existing directory
func NewManager(packDir string) (*Manager, error) {
	if _, err := os.Stat(packDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("level pack directory does not exist: %s", packDir)
	}
	return &Manager{
		packDir: packDir,
		packs:   make(map[string]*service.Pack),
	}, nil
}

// LoadPack loads a pack by ID (its filename without extension)
func (m *Manager) LoadPack(packID string) (*service.Pack, error) {
	m.mu.RLock()
	if pack, ok := m.packs[packID]; ok {
		m.mu.RUnlock()
		return pack, nil
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring the write lock
	if pack, ok := m.packs[packID]; ok {
		return pack, nil
	}

	if !ValidPackID(packID) {
		return nil, fmt.Errorf("%w: %q", ErrPackNotFound, packID)
	}

	data, err := os.ReadFile(m.packPath(packID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrPackNotFound, packID)
		}
		return nil, fmt.Errorf("failed to read pack file: %w", err)
	}

	var pack service.Pack
	if err := json.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPack, err)
	}
	if err := ValidatePack(&pack); err != nil {
		return nil, err
	}

	m.packs[packID] = &pack
	return &pack, nil
}

// ListPacks returns information about every pack in the directory, skipping
// files that fail to load
func (m *Manager) ListPacks() ([]*service.PackInfo, error) {
	entries, err := os.ReadDir(m.packDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read pack directory: %w", err)
	}

	packs := make([]*service.PackInfo, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		packID := strings.TrimSuffix(entry.Name(), ".json")
		pack, err := m.LoadPack(packID)
		if err != nil {
			continue
		}
		packs = append(packs, &service.PackInfo{
			PackID:      packID,
			Name:        pack.Name,
			Description: pack.Description,
			LevelCount:  len(pack.Levels),
		})
	}
	return packs, nil
}

// SavePack validates a pack and writes it to disk
func (m *Manager) SavePack(packID string, pack *service.Pack) error {
	if !ValidPackID(packID) {
		return fmt.Errorf("%w: bad pack ID %q", ErrInvalidPack, packID)
	}
	if err := ValidatePack(pack); err != nil {
		return err
	}

	data, err := json.MarshalIndent(pack, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal pack: %w", err)
	}
	if err := os.WriteFile(m.packPath(packID), data, 0644); err != nil {
		return fmt.Errorf("failed to write pack file: %w", err)
	}

	m.mu.Lock()
	m.packs[packID] = pack
	m.mu.Unlock()
	return nil
}

// RefreshCache drops all cached packs so the next load rereads disk
func (m *Manager) RefreshCache() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.packs = make(map[string]*service.Pack)
}

// ValidatePack checks a pack's shape and every level in it
func ValidatePack(pack *service.Pack) error {
	if pack == nil {
		return fmt.Errorf("%w: pack is nil", ErrInvalidPack)
	}
	if pack.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPack)
	}
	if len(pack.Levels) == 0 {
		return fmt.Errorf("%w: pack has no levels", ErrInvalidPack)
	}
	for i, lvl := range pack.Levels {
		if err := engine.ValidateLevel(lvl); err != nil {
			return fmt.Errorf("%w: level %d (%s): %v", ErrInvalidPack, i+1, lvl.Name, err)
		}
	}
	return nil
}

// ValidPackID reports whether a pack ID is safe to use as a filename:
// 1-64 characters from [A-Za-z0-9_-]
func ValidPackID(packID string) bool {
	if len(packID) == 0 || len(packID) > 64 {
		return false
	}
	for _, r := range packID {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}

// packPath returns the file path for a pack ID
func (m *Manager) packPath(packID string) string {
	return filepath.Join(m.packDir, packID+".json")
}
