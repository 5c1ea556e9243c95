package service

import (
	"context"
	"time"

	"github.com/algoquest/gridpath/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Game lifecycle
	CreateGame(ctx context.Context, req CreateGameRequest) (*GameInfo, error)
	GetGame(ctx context.Context, gameID string) (*GameInfo, error)
	ListGames(ctx context.Context) ([]*GameInfo, error)
	DeleteGame(ctx context.Context, gameID string) error

	// Play
	Move(ctx context.Context, gameID string, req engine.MoveRequest) (*MoveResult, error)
	BulkMove(ctx context.Context, gameID string, reqs []engine.MoveRequest) (*BulkMoveResult, error)
	Reset(ctx context.Context, gameID string) (engine.State, error)

	// State
	GetState(ctx context.Context, gameID string) (engine.State, error)
	GetHistory(ctx context.Context, gameID string, opts HistoryOptions) (*HistoryResponse, error)

	// Level catalog and packs
	ListLevels(ctx context.Context) ([]engine.Level, error)
	GetLevel(ctx context.Context, number int) (engine.Level, error)
	ListPacks(ctx context.Context) ([]*PackInfo, error)
	GetPack(ctx context.Context, packID string) (*Pack, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, cfg engine.Config, seed *int64) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	Touch(id string) error
	Save(id string) error
}

// PackManager handles custom level pack loading
type PackManager interface {
	LoadPack(packID string) (*Pack, error)
	ListPacks() ([]*PackInfo, error)
	SavePack(packID string, pack *Pack) error
}

// Session couples one engine game with its bookkeeping. The service layer
// serializes access; Session itself carries no lock.
type Session struct {
	ID             string
	Game           *engine.Game
	CreatedAt      time.Time
	LastAccessedAt time.Time
	MoveCount      int
	History        []MoveRecord
}
