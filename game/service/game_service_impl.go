package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/algoquest/gridpath/game/engine"
)

// maxHistoryEntries bounds the per-session move history ring
const maxHistoryEntries = 500

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	packs    PackManager
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance. The pack manager may be
// nil when no custom level directory is configured.
func NewGameService(sessions SessionManager, packs PackManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		packs:    packs,
	}
}

// CreateGame creates a new game session
func (s *gameServiceImpl) CreateGame(ctx context.Context, req CreateGameRequest) (*GameInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Create(req.ID, req.Config(), req.Seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}
	return gameInfo(sess), nil
}

// GetGame retrieves game session information
func (s *gameServiceImpl) GetGame(ctx context.Context, gameID string) (*GameInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(gameID)
	if err != nil {
		return nil, err
	}
	s.sessions.Touch(gameID)
	return gameInfo(sess), nil
}

// ListGames returns all active game sessions
func (s *gameServiceImpl) ListGames(ctx context.Context) ([]*GameInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*GameInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, gameInfo(sess))
	}
	return result, nil
}

// DeleteGame removes a game session
func (s *gameServiceImpl) DeleteGame(ctx context.Context, gameID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(gameID)
}

// Move applies a single move to a game
func (s *gameServiceImpl) Move(ctx context.Context, gameID string, req engine.MoveRequest) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(gameID)
	if err != nil {
		return nil, err
	}
	s.sessions.Touch(gameID)

	state, moveErr := sess.Game.Move(req)
	recordMove(sess, req, moveErr)
	if moveErr != nil {
		s.sessions.Save(gameID)
		return nil, moveErr
	}

	result := &MoveResult{
		State:  state,
		Events: moveEvents(req, state),
		Score:  scoreInfo(state),
		Won:    state.Won(),
	}

	if err := s.sessions.Save(gameID); err != nil {
		return nil, fmt.Errorf("move applied but persistence failed: %w", err)
	}
	return result, nil
}

// BulkMove applies a sequence of moves. A failed move leaves the game
// unchanged, so the sequence keeps going; each step's outcome is reported.
func (s *gameServiceImpl) BulkMove(ctx context.Context, gameID string, reqs []engine.MoveRequest) (*BulkMoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(gameID)
	if err != nil {
		return nil, err
	}
	s.sessions.Touch(gameID)

	result := &BulkMoveResult{
		RequestedMoves: len(reqs),
		Events:         make([]GameEvent, 0),
		Steps:          make([]BulkStep, 0, len(reqs)),
	}
	if len(reqs) > engine.MaxBulkMoves {
		result.Truncated = true
		result.Limit = engine.MaxBulkMoves
		reqs = reqs[:engine.MaxBulkMoves]
	}

	state := sess.Game.State()
	for i, req := range reqs {
		next, moveErr := sess.Game.Move(req)
		recordMove(sess, req, moveErr)

		step := BulkStep{Index: i + 1, Action: req.Action, Success: moveErr == nil}
		if moveErr != nil {
			step.Error = moveErr.Error()
			result.MovesFailed++
		} else {
			state = next
			result.MovesExecuted++
			result.Events = append(result.Events, moveEvents(req, next)...)
		}
		result.Steps = append(result.Steps, step)
	}

	result.Success = result.MovesFailed == 0
	result.State = state
	result.Score = scoreInfo(state)
	result.Won = state.Won()

	if err := s.sessions.Save(gameID); err != nil {
		return nil, fmt.Errorf("moves applied but persistence failed: %w", err)
	}
	return result, nil
}

// Reset rebuilds a game from its creation config
func (s *gameServiceImpl) Reset(ctx context.Context, gameID string) (engine.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(gameID)
	if err != nil {
		return engine.State{}, err
	}
	s.sessions.Touch(gameID)

	state, err := sess.Game.Reset()
	if err != nil {
		return engine.State{}, err
	}
	s.sessions.Save(gameID)
	return state, nil
}

// GetState retrieves the current game state
func (s *gameServiceImpl) GetState(ctx context.Context, gameID string) (engine.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(gameID)
	if err != nil {
		return engine.State{}, err
	}
	s.sessions.Touch(gameID)
	return sess.Game.State(), nil
}

// GetHistory returns paginated move history, most recent first by default
func (s *gameServiceImpl) GetHistory(ctx context.Context, gameID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(gameID)
	if err != nil {
		return nil, err
	}

	history := sess.History
	total := len(history)

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order == "" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	moves := make([]MoveRecord, 0, opts.Limit)
	if opts.Order == "desc" {
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else if start < total {
		moves = append(moves, history[start:end]...)
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListLevels returns the built-in level catalog
func (s *gameServiceImpl) ListLevels(ctx context.Context) ([]engine.Level, error) {
	levels := make([]engine.Level, len(engine.Levels))
	copy(levels, engine.Levels)
	return levels, nil
}

// GetLevel returns one catalog level by its 1-based number
func (s *gameServiceImpl) GetLevel(ctx context.Context, number int) (engine.Level, error) {
	return engine.LevelByNumber(number)
}

// ListPacks returns the custom level packs on disk
func (s *gameServiceImpl) ListPacks(ctx context.Context) ([]*PackInfo, error) {
	if s.packs == nil {
		return []*PackInfo{}, nil
	}
	return s.packs.ListPacks()
}

// GetPack loads one custom level pack
func (s *gameServiceImpl) GetPack(ctx context.Context, packID string) (*Pack, error) {
	if s.packs == nil {
		return nil, fmt.Errorf("no level pack directory configured")
	}
	return s.packs.LoadPack(packID)
}

// gameInfo builds the session's public description
func gameInfo(sess *Session) *GameInfo {
	return &GameInfo{
		ID:             sess.ID,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		MoveCount:      sess.MoveCount,
		State:          sess.Game.State(),
		Config:         sess.Game.Config(),
	}
}

// recordMove appends one request to the session history ring
func recordMove(sess *Session, req engine.MoveRequest, err error) {
	sess.MoveCount++
	rec := MoveRecord{
		Seq:       sess.MoveCount,
		Request:   req,
		Success:   err == nil,
		Timestamp: time.Now(),
	}
	if err != nil {
		rec.Error = err.Error()
	}
	sess.History = append(sess.History, rec)
	if len(sess.History) > maxHistoryEntries {
		sess.History = sess.History[len(sess.History)-maxHistoryEntries:]
	}
}

// scoreInfo grades the state's last search, nil when nothing to grade
func scoreInfo(state engine.State) *ScoreInfo {
	score := engine.ScoreState(state)
	if score == nil {
		return nil
	}
	mode := engine.Sandbox
	if state.ParCost > 0 && state.ParNodes > 0 {
		mode = engine.Challenge
	}
	return &ScoreInfo{Stars: score.Stars, Points: score.Points, Bonus: score.Bonus, Mode: mode}
}

// moveEvents narrates what a successful move did
func moveEvents(req engine.MoveRequest, state engine.State) []GameEvent {
	now := time.Now()

	switch req.Action {
	case engine.ActionFindPath:
		r := state.LastResult
		if r == nil {
			return nil
		}
		if !r.PathFound {
			return []GameEvent{{
				Type:      "path_not_found",
				Message:   fmt.Sprintf("%s explored %d cells but found no path", r.Algorithm, r.NodesExpanded),
				Timestamp: now,
			}}
		}
		events := []GameEvent{{
			Type:      "path_found",
			Message:   fmt.Sprintf("%s found a %d-cell path costing %d (expanded %d cells)", r.Algorithm, r.PathLength, r.PathCost, r.NodesExpanded),
			Timestamp: now,
			Position:  state.Goal,
		}}
		if state.Mode == engine.Challenge {
			events = append(events, GameEvent{
				Type:      "level_won",
				Message:   fmt.Sprintf("Level %d solved: %s", state.LevelIndex, state.LevelName),
				Timestamp: now,
			})
		}
		return events

	case engine.ActionLoadLevel, engine.ActionNextLevel:
		return []GameEvent{{
			Type:      "level_loaded",
			Message:   fmt.Sprintf("Loaded level %d: %s", state.LevelIndex, state.LevelName),
			Timestamp: now,
			Position:  state.Start,
		}}

	case engine.ActionGenerateMaze:
		return []GameEvent{{
			Type:      "maze_generated",
			Message:   fmt.Sprintf("Generated a %dx%d maze", state.Grid.Width, state.Grid.Height),
			Timestamp: now,
			Position:  state.Start,
		}}

	case engine.ActionClear:
		return []GameEvent{{
			Type:      "grid_cleared",
			Message:   "Grid cleared",
			Timestamp: now,
		}}
	}
	return nil
}
