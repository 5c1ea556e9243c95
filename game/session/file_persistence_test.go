package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/algoquest/gridpath/game/engine"
	"github.com/algoquest/gridpath/game/service"
)

func testSession(t *testing.T, id string) *service.Session {
	t.Helper()
	game, err := engine.NewGame(testConfig())
	if err != nil {
		t.Fatalf("Failed to create game: %v", err)
	}
	now := time.Now()
	return &service.Session{
		ID:             id,
		Game:           game,
		CreatedAt:      now,
		LastAccessedAt: now,
	}
}

func TestNewFilePersistence_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "sessions")

	if _, err := NewFilePersistence(dir); err != nil {
		t.Fatalf("Failed to create persistence: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("Expected sessions directory to exist: %v", err)
	}
	if !info.IsDir() {
		t.Error("Expected sessions path to be a directory")
	}
}

func TestFilePersistence_SaveAndLoad(t *testing.T) {
	persistence := testPersistence(t)

	sess := testSession(t, "roundtrip")
	sess.MoveCount = 3
	sess.History = []service.MoveRecord{
		{Seq: 1, Request: engine.MoveRequest{Action: engine.ActionSetStart}, Success: true, Timestamp: time.Now()},
	}

	if err := persistence.SaveSession(sess); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	loaded, err := persistence.LoadSession("roundtrip")
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}

	if loaded.ID != "roundtrip" {
		t.Errorf("Expected ID roundtrip, got %s", loaded.ID)
	}
	if loaded.MoveCount != 3 {
		t.Errorf("Expected move count 3, got %d", loaded.MoveCount)
	}
	if len(loaded.History) != 1 {
		t.Errorf("Expected 1 history record, got %d", len(loaded.History))
	}

	state := loaded.Game.State()
	if state.Grid.Width != 10 || state.Grid.Height != 8 {
		t.Errorf("Expected 10x8 grid, got %dx%d", state.Grid.Width, state.Grid.Height)
	}
}

func TestFilePersistence_PreservesGameState(t *testing.T) {
	persistence := testPersistence(t)

	sess := testSession(t, "stateful")
	moves := []engine.MoveRequest{
		{Action: engine.ActionSetCell, Row: intPtr(2), Col: intPtr(3), CellType: engine.Wall},
		{Action: engine.ActionSetCell, Row: intPtr(4), Col: intPtr(4), CellType: engine.Water},
		{Action: engine.ActionSetStart, Row: intPtr(0), Col: intPtr(0)},
		{Action: engine.ActionSetGoal, Row: intPtr(7), Col: intPtr(9)},
	}
	for _, req := range moves {
		if _, err := sess.Game.Move(req); err != nil {
			t.Fatalf("Failed to apply %s: %v", req.Action, err)
		}
	}

	if err := persistence.SaveSession(sess); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	loaded, err := persistence.LoadSession("stateful")
	if err != nil {
		t.Fatalf("Failed to load session: %v", err)
	}

	state := loaded.Game.State()
	if state.Grid.Cells[2][3].Type != engine.Wall {
		t.Error("Expected wall at (2,3) after reload")
	}
	if state.Grid.Cells[4][4].Type != engine.Water {
		t.Error("Expected water at (4,4) after reload")
	}
	if state.Start == nil || state.Start.Row != 0 || state.Start.Col != 0 {
		t.Errorf("Expected start at (0,0), got %v", state.Start)
	}
	if state.Goal == nil || state.Goal.Row != 7 || state.Goal.Col != 9 {
		t.Errorf("Expected goal at (7,9), got %v", state.Goal)
	}

	// The restored game must still be playable
	if _, err := loaded.Game.Move(engine.MoveRequest{Action: engine.ActionFindPath}); err != nil {
		t.Errorf("Expected restored game to accept moves, got %v", err)
	}
}

func TestFilePersistence_SaveNilSession(t *testing.T) {
	persistence := testPersistence(t)

	if err := persistence.SaveSession(nil); err == nil {
		t.Error("Expected error for nil session")
	}
}

func TestFilePersistence_SaveInvalidID(t *testing.T) {
	persistence := testPersistence(t)

	sess := testSession(t, "../escape")
	if err := persistence.SaveSession(sess); !errors.Is(err, ErrInvalidSessionID) {
		t.Errorf("Expected ErrInvalidSessionID, got %v", err)
	}
}

func TestFilePersistence_LoadMissing(t *testing.T) {
	persistence := testPersistence(t)

	_, err := persistence.LoadSession("missing")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestFilePersistence_LoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	persistence, err := NewFilePersistence(dir)
	if err != nil {
		t.Fatalf("Failed to create persistence: %v", err)
	}

	corruptPath := filepath.Join(dir, "corrupt.json")
	if err := os.WriteFile(corruptPath, []byte("{not json"), 0644); err != nil {
		t.Fatalf("Failed to write corrupt file: %v", err)
	}

	if _, err := persistence.LoadSession("corrupt"); err == nil {
		t.Error("Expected error for corrupt session file")
	}
}

func TestFilePersistence_LoadAllSkipsCorrupt(t *testing.T) {
	dir := t.TempDir()
	persistence, err := NewFilePersistence(dir)
	if err != nil {
		t.Fatalf("Failed to create persistence: %v", err)
	}

	if err := persistence.SaveSession(testSession(t, "good-one")); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}
	if err := persistence.SaveSession(testSession(t, "good-two")); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("oops"), 0644); err != nil {
		t.Fatalf("Failed to write broken file: %v", err)
	}
	// Non-JSON files are ignored entirely
	if err := os.WriteFile(filepath.Join(dir, "README.txt"), []byte("notes"), 0644); err != nil {
		t.Fatalf("Failed to write text file: %v", err)
	}

	sessions, err := persistence.LoadAllSessions()
	if err != nil {
		t.Fatalf("Failed to load sessions: %v", err)
	}

	if len(sessions) != 2 {
		t.Errorf("Expected 2 loadable sessions, got %d", len(sessions))
	}
}

func TestFilePersistence_Delete(t *testing.T) {
	persistence := testPersistence(t)

	if err := persistence.SaveSession(testSession(t, "doomed")); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}

	if err := persistence.DeleteSession("doomed"); err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}

	if persistence.Exists("doomed") {
		t.Error("Expected session to be gone after delete")
	}
}

func TestFilePersistence_DeleteMissing(t *testing.T) {
	persistence := testPersistence(t)

	if err := persistence.DeleteSession("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("Expected ErrSessionNotFound, got %v", err)
	}
}

func TestFilePersistence_Exists(t *testing.T) {
	persistence := testPersistence(t)

	if persistence.Exists("nope") {
		t.Error("Expected Exists to be false for missing session")
	}
	if persistence.Exists("../../etc/passwd") {
		t.Error("Expected Exists to be false for invalid ID")
	}

	if err := persistence.SaveSession(testSession(t, "real")); err != nil {
		t.Fatalf("Failed to save session: %v", err)
	}
	if !persistence.Exists("real") {
		t.Error("Expected Exists to be true for saved session")
	}
}
