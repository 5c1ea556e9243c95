package service

import (
	"time"

	"github.com/algoquest/gridpath/game/engine"
)

// CreateGameRequest configures a new game. Zero fields fall back to the
// engine defaults: a medium sandbox on level 1.
type CreateGameRequest struct {
	ID         string            `json:"id,omitempty"` // Optional caller-chosen game ID
	Mode       engine.Mode       `json:"mode,omitempty"`
	Difficulty engine.Difficulty `json:"difficulty,omitempty"`
	Width      int               `json:"width,omitempty"`
	Height     int               `json:"height,omitempty"`
	Level      int               `json:"level,omitempty"`
	Seed       *int64            `json:"seed,omitempty"` // Fixes maze generation for reproducible games
}

// Config converts the request into an engine configuration
func (r CreateGameRequest) Config() engine.Config {
	return engine.Config{
		Mode:       r.Mode,
		Difficulty: r.Difficulty,
		Width:      r.Width,
		Height:     r.Height,
		Level:      r.Level,
	}
}

// GameInfo describes one game session
type GameInfo struct {
	ID             string        `json:"id"`
	CreatedAt      time.Time     `json:"created_at"`
	LastAccessedAt time.Time     `json:"last_accessed_at"`
	MoveCount      int           `json:"move_count"`
	State          engine.State  `json:"state"`
	Config         engine.Config `json:"config"`
}

// ScoreInfo grades the search a move just ran
type ScoreInfo struct {
	Stars  int         `json:"stars"`
	Points int         `json:"points"`
	Bonus  int         `json:"bonus,omitempty"`
	Mode   engine.Mode `json:"mode"` // Which grading formula applied
}

// GameEvent is a notable moment produced by a move, for clients that narrate
// the game (the web UI activity feed, MCP text output)
type GameEvent struct {
	Type      string           `json:"type"` // "path_found", "path_not_found", "level_loaded", "maze_generated", "level_won", "grid_cleared"
	Message   string           `json:"message"`
	Timestamp time.Time        `json:"timestamp"`
	Position  *engine.Position `json:"position,omitempty"`
}

// MoveResult is the outcome of one applied move
type MoveResult struct {
	State  engine.State `json:"state"`
	Events []GameEvent  `json:"events,omitempty"`
	Score  *ScoreInfo   `json:"score,omitempty"`
	Won    bool         `json:"won"`
}

// BulkStep records the outcome of one move inside a bulk call
type BulkStep struct {
	Index   int           `json:"index"` // 1-based position in the request
	Action  engine.Action `json:"action"`
	Success bool          `json:"success"`
	Error   string        `json:"error,omitempty"`
}

// BulkMoveResult is the outcome of a sequence of moves. Failed moves do not
// stop the sequence; the engine leaves the state untouched on error, so the
// remaining moves still apply to a consistent game.
type BulkMoveResult struct {
	RequestedMoves int          `json:"requested_moves"`
	MovesExecuted  int          `json:"moves_executed"`
	MovesFailed    int          `json:"moves_failed"`
	Success        bool         `json:"success"` // True when every move applied
	Truncated      bool         `json:"truncated,omitempty"`
	Limit          int          `json:"limit,omitempty"`
	State          engine.State `json:"state"`
	Events         []GameEvent  `json:"events"`
	Steps          []BulkStep   `json:"steps"`
	Score          *ScoreInfo   `json:"score,omitempty"`
	Won            bool         `json:"won"`
}

// MoveRecord is one entry in a session's move history
type MoveRecord struct {
	Seq       int                `json:"seq"`
	Request   engine.MoveRequest `json:"request"`
	Success   bool               `json:"success"`
	Error     string             `json:"error,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []MoveRecord `json:"moves"`
	TotalMoves  int          `json:"total_moves"`
	Page        int          `json:"page"`
	PageSize    int          `json:"page_size"`
	TotalPages  int          `json:"total_pages"`
	HasNext     bool         `json:"has_next"`
	HasPrevious bool         `json:"has_previous"`
}

// PackInfo summarizes a level pack on disk
type PackInfo struct {
	PackID      string `json:"pack_id"` // Filename without extension
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	LevelCount  int    `json:"level_count"`
}

// Pack is a set of custom levels in catalog format
type Pack struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Levels      []engine.Level `json:"levels"`
}
