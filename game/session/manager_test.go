package session

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/algoquest/gridpath/game/engine"
)

func testConfig() engine.Config {
	return engine.Config{Width: 10, Height: 8, Mode: engine.Sandbox}
}

func TestNewManager(t *testing.T) {
	manager := NewManager()
	if manager == nil {
		t.Fatal("Expected manager to be created")
	}
	if manager.Count() != 0 {
		t.Errorf("Expected empty manager, got %d sessions", manager.Count())
	}
}

func TestManager_Create(t *testing.T) {
	manager := NewManager()

	sess, err := manager.Create("test-game", testConfig(), nil)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	if sess.ID != "test-game" {
		t.Errorf("Expected ID test-game, got %s", sess.ID)
	}
	if sess.Game == nil {
		t.Fatal("Expected session to carry a game")
	}
	if sess.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}
	if manager.Count() != 1 {
		t.Errorf("Expected 1 session, got %d", manager.Count())
	}
}

func TestManager_Create_GeneratedID(t *testing.T) {
	manager := NewManager()

	sess, err := manager.Create("", testConfig(), nil)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	if sess.ID == "" {
		t.Fatal("Expected a generated ID")
	}
	if !ValidSessionID(sess.ID) {
		t.Errorf("Generated ID %q is not a valid session ID", sess.ID)
	}
}

func TestManager_Create_LowercasesID(t *testing.T) {
	manager := NewManager()

	sess, err := manager.Create("MyGame", testConfig(), nil)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	if sess.ID != "mygame" {
		t.Errorf("Expected lowercased ID mygame, got %s", sess.ID)
	}
}

func TestManager_Create_Duplicate(t *testing.T) {
	manager := NewManager()

	if _, err := manager.Create("dup", testConfig(), nil); err != nil {
		t.Fatalf("Failed to create first session: %v", err)
	}

	_, err := manager.Create("dup", testConfig(), nil)
	if !errors.Is(err, ErrSessionAlreadyExists) {
		t.Errorf("Expected ErrSessionAlreadyExists, got %v", err)
	}
}

func TestManager_Create_InvalidID(t *testing.T) {
	manager := NewManager()

	invalidIDs := []string{
		"has space",
		"semi;colon",
		"dot.dot",
		strings.Repeat("x", 33),
	}
	for _, id := range invalidIDs {
		_, err := manager.Create(id, testConfig(), nil)
		if !errors.Is(err, ErrInvalidSessionID) {
			t.Errorf("Expected ErrInvalidSessionID for %q, got %v", id, err)
		}
	}
}

func TestManager_Create_InvalidConfig(t *testing.T) {
	manager := NewManager()

	_, err := manager.Create("bad-config", engine.Config{Width: 2, Height: 2}, nil)
	if err == nil {
		t.Error("Expected error for grid below the minimum size")
	}
	if manager.Count() != 0 {
		t.Errorf("Expected no sessions after failed create, got %d", manager.Count())
	}
}

func TestManager_Create_SeededGamesMatch(t *testing.T) {
	manager := NewManager()
	seed := int64(42)

	sessA, err := manager.Create("seed-a", testConfig(), &seed)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	sessB, err := manager.Create("seed-b", testConfig(), &seed)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	// The same seed must produce the same maze
	if _, err := sessA.Game.Move(engine.MoveRequest{Action: engine.ActionGenerateMaze}); err != nil {
		t.Fatalf("Failed to generate maze: %v", err)
	}
	if _, err := sessB.Game.Move(engine.MoveRequest{Action: engine.ActionGenerateMaze}); err != nil {
		t.Fatalf("Failed to generate maze: %v", err)
	}

	dataA, err := sessA.Game.Serialize()
	if err != nil {
		t.Fatalf("Failed to serialize game: %v", err)
	}
	dataB, err := sessB.Game.Serialize()
	if err != nil {
		t.Fatalf("Failed to serialize game: %v", err)
	}

	if !bytes.Equal(dataA, dataB) {
		t.Error("Expected identical mazes from the same seed")
	}
}

func TestManager_Get(t *testing.T) {
	manager := NewManager()

	created, err := manager.Create("fetch-me", testConfig(), nil)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	sess, err := manager.Get("fetch-me")
	if err != nil {
		t.Fatalf("Failed to get session: %v", err)
	}
	if sess != created {
		t.Error("Expected Get to return the created session")
	}
}

func TestManager_Get_CaseInsensitive(t *testing.T) {
	manager := NewManager()

	if _, err := manager.Create("lower", testConfig(), nil); err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	if _, err := manager.Get("LOWER"); err != nil {
		t.Errorf("Expected case-insensitive lookup to succeed, got %v", err)
	}
}

func TestManager_Get_NotFound(t *testing.T) {
	manager := NewManager()

	_, err := manager.Get("missing")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_List(t *testing.T) {
	manager := NewManager()

	for _, id := range []string{"one", "two", "three"} {
		if _, err := manager.Create(id, testConfig(), nil); err != nil {
			t.Fatalf("Failed to create session %s: %v", id, err)
		}
	}

	sessions := manager.List()
	if len(sessions) != 3 {
		t.Errorf("Expected 3 sessions, got %d", len(sessions))
	}

	ids := make(map[string]bool)
	for _, sess := range sessions {
		ids[sess.ID] = true
	}
	for _, id := range []string{"one", "two", "three"} {
		if !ids[id] {
			t.Errorf("Expected session %s in list", id)
		}
	}
}

func TestManager_Delete(t *testing.T) {
	manager := NewManager()

	if _, err := manager.Create("doomed", testConfig(), nil); err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	if err := manager.Delete("doomed"); err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}

	if _, err := manager.Get("doomed"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected session to be gone, got %v", err)
	}
	if manager.Count() != 0 {
		t.Errorf("Expected 0 sessions, got %d", manager.Count())
	}
}

func TestManager_Delete_NotFound(t *testing.T) {
	manager := NewManager()

	if err := manager.Delete("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_Touch(t *testing.T) {
	manager := NewManager()

	sess, err := manager.Create("touch-me", testConfig(), nil)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	before := sess.LastAccessedAt
	time.Sleep(10 * time.Millisecond)

	if err := manager.Touch("touch-me"); err != nil {
		t.Fatalf("Failed to touch session: %v", err)
	}

	if !sess.LastAccessedAt.After(before) {
		t.Error("Expected Touch to advance LastAccessedAt")
	}
}

func TestManager_Touch_NotFound(t *testing.T) {
	manager := NewManager()

	if err := manager.Touch("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestManager_CleanupExpired(t *testing.T) {
	manager := NewManager()

	fresh, err := manager.Create("fresh", testConfig(), nil)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	stale, err := manager.Create("stale", testConfig(), nil)
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	stale.LastAccessedAt = time.Now().Add(-2 * time.Hour)

	removed := manager.CleanupExpired(1 * time.Hour)
	if removed != 1 {
		t.Errorf("Expected 1 session removed, got %d", removed)
	}

	if _, err := manager.Get(fresh.ID); err != nil {
		t.Errorf("Expected fresh session to survive, got %v", err)
	}
	if _, err := manager.Get(stale.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected stale session to be removed, got %v", err)
	}
}

func TestManager_CleanupExpired_NothingToDo(t *testing.T) {
	manager := NewManager()

	if _, err := manager.Create("young", testConfig(), nil); err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}

	if removed := manager.CleanupExpired(1 * time.Hour); removed != 0 {
		t.Errorf("Expected 0 sessions removed, got %d", removed)
	}
}

func TestManager_ConcurrentAccess(t *testing.T) {
	manager := NewManager()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess, err := manager.Create("", testConfig(), nil)
			if err != nil {
				t.Errorf("Concurrent create failed: %v", err)
				return
			}
			if _, err := manager.Get(sess.ID); err != nil {
				t.Errorf("Concurrent get failed: %v", err)
			}
			manager.Touch(sess.ID)
			manager.List()
		}()
	}
	wg.Wait()

	if manager.Count() != 10 {
		t.Errorf("Expected 10 sessions after concurrent creates, got %d", manager.Count())
	}
}

func TestValidSessionID(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{"abc", true},
		{"game-1", true},
		{"game_2", true},
		{"a1b2c3", true},
		{"x", true},
		{strings.Repeat("a", 32), true},
		{"", false},
		{strings.Repeat("a", 33), false},
		{"UPPER", false},
		{"has space", false},
		{"dot.json", false},
		{"path/traversal", false},
		{"semi;colon", false},
	}

	for _, tt := range tests {
		if got := ValidSessionID(tt.id); got != tt.valid {
			t.Errorf("ValidSessionID(%q) = %v, want %v", tt.id, got, tt.valid)
		}
	}
}
