package engine

import (
	"fmt"
	"math/rand"
	"time"
)

// MazeLevelName labels a generated maze in the level metadata
const MazeLevelName = "Random Maze"

// Apply executes one move against a state and returns the resulting state.
// On success the returned State is a fresh value and the input is untouched;
// on failure the input State comes back unchanged beside the error. The rng
// drives maze generation and may be nil, in which case a time-seeded source
// is used.
func Apply(s State, req MoveRequest, rng *rand.Rand) (State, error) {
	switch req.Action {
	case ActionSetCell:
		return applySetCell(s, req)
	case ActionSetStart:
		return applyPlaceMarker(s, req, Start)
	case ActionSetGoal:
		return applyPlaceMarker(s, req, Goal)
	case ActionFindPath:
		return applyFindPath(s, req)
	case ActionClear:
		return applyClear(s)
	case ActionGenerateMaze:
		return applyGenerateMaze(s, req, rng)
	case ActionLoadLevel:
		return applyLoadLevel(s, req)
	case ActionNextLevel:
		return applyNextLevel(s)
	}
	return s, fmt.Errorf("%w: %q", ErrUnknownAction, req.Action)
}

// requirePosition extracts and bounds-checks the row/col of a request
func requirePosition(s State, req MoveRequest) (Position, error) {
	if req.Row == nil || req.Col == nil {
		return Position{}, fmt.Errorf("%w: row and col are required for %s", ErrMissingParameters, req.Action)
	}
	p := Position{Row: *req.Row, Col: *req.Col}
	if !s.Grid.InBounds(p) {
		return Position{}, fmt.Errorf("%w: (%d,%d) on a %dx%d grid", ErrOutOfBounds, p.Row, p.Col, s.Grid.Height, s.Grid.Width)
	}
	return p, nil
}

func applySetCell(s State, req MoveRequest) (State, error) {
	if req.CellType == "" {
		return s, fmt.Errorf("%w: cell_type is required for set_cell", ErrMissingParameters)
	}
	if !ValidCellType(req.CellType) {
		return s, fmt.Errorf("%w: unknown cell_type %q", ErrMissingParameters, req.CellType)
	}
	// Start and goal stay unique, so placing them goes through the marker path
	if req.CellType == Start || req.CellType == Goal {
		return applyPlaceMarker(s, req, req.CellType)
	}

	p, err := requirePosition(s, req)
	if err != nil {
		return s, err
	}

	next := s.Clone()
	if next.Start != nil && *next.Start == p {
		next.Start = nil
	}
	if next.Goal != nil && *next.Goal == p {
		next.Goal = nil
	}
	next.Grid.SetType(p, req.CellType)
	clearLastResult(&next)
	return next, nil
}

func applyPlaceMarker(s State, req MoveRequest, marker CellType) (State, error) {
	p, err := requirePosition(s, req)
	if err != nil {
		return s, err
	}

	next := s.Clone()
	// A marker occupies exactly one cell; the old one reverts to empty
	if prev := next.Grid.FindCell(marker); prev != nil {
		next.Grid.SetType(*prev, Empty)
	}
	if next.Start != nil && *next.Start == p {
		next.Start = nil
	}
	if next.Goal != nil && *next.Goal == p {
		next.Goal = nil
	}
	next.Grid.SetType(p, marker)
	if marker == Start {
		next.Start = &Position{Row: p.Row, Col: p.Col}
	} else {
		next.Goal = &Position{Row: p.Row, Col: p.Col}
	}
	clearLastResult(&next)
	return next, nil
}

func applyFindPath(s State, req MoveRequest) (State, error) {
	algo := s.Algorithm
	if req.Algorithm != "" {
		algo = req.Algorithm
	}
	if !ValidAlgorithm(algo) {
		return s, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algo)
	}
	if s.Start == nil || s.Goal == nil {
		return s, fmt.Errorf("%w: place both before running find_path", ErrMissingStartOrGoal)
	}

	result, err := RunSearch(algo, s.Grid, *s.Start, *s.Goal)
	if err != nil {
		return s, err
	}

	next := s.Clone()
	next.Algorithm = algo
	next.Grid.MarkSearchResult(result.expanded, result.Path)
	next.LastResult = &RunSummary{
		Algorithm:     algo,
		PathFound:     result.Found(),
		PathLength:    len(result.Path),
		PathCost:      result.TotalCost,
		NodesExpanded: result.NodesExpanded,
		Path:          result.Path,
	}
	return next, nil
}

func applyClear(s State) (State, error) {
	if s.Mode == Challenge && s.LevelIndex >= 1 {
		// Clearing a challenge restores the pristine level; wiping its walls
		// would let any path beat par
		lvl, err := LevelByNumber(s.LevelIndex)
		if err != nil {
			return s, err
		}
		next := stateFromLevel(lvl, s.Mode, s.Algorithm)
		return next, nil
	}

	return State{
		Grid:      NewGrid(s.Grid.Width, s.Grid.Height),
		Algorithm: s.Algorithm,
		Mode:      s.Mode,
	}, nil
}

func applyGenerateMaze(s State, req MoveRequest, rng *rand.Rand) (State, error) {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	width, height := s.Grid.Width, s.Grid.Height
	if req.Width != nil {
		width = *req.Width
	}
	if req.Height != nil {
		height = *req.Height
	}

	grid := CarveMaze(width, height, rng)
	return State{
		Grid:      grid,
		Start:     grid.FindCell(Start),
		Goal:      grid.FindCell(Goal),
		Algorithm: s.Algorithm,
		Mode:      s.Mode,
		LevelName: MazeLevelName,
	}, nil
}

func applyLoadLevel(s State, req MoveRequest) (State, error) {
	if req.Level == nil {
		return s, fmt.Errorf("%w: level is required for load_level", ErrMissingParameters)
	}
	lvl, err := LevelByNumber(*req.Level)
	if err != nil {
		return s, err
	}
	return stateFromLevel(lvl, s.Mode, s.Algorithm), nil
}

func applyNextLevel(s State) (State, error) {
	if s.Mode != Challenge {
		return s, fmt.Errorf("%w: next_level only advances challenge games", ErrNotInChallengeMode)
	}
	if s.LevelIndex >= LevelCount() {
		return s, fmt.Errorf("%w: already at level %d of %d", ErrNoMoreLevels, s.LevelIndex, LevelCount())
	}
	lvl, err := LevelByNumber(s.LevelIndex + 1)
	if err != nil {
		return s, err
	}
	return stateFromLevel(lvl, s.Mode, s.Algorithm), nil
}

// stateFromLevel builds a fresh state on a parsed catalog level
func stateFromLevel(lvl Level, mode Mode, algo Algorithm) State {
	grid, start, goal := ParseLevel(lvl)
	return State{
		Grid:       grid,
		Start:      start,
		Goal:       goal,
		Algorithm:  algo,
		Mode:       mode,
		LevelIndex: lvl.ID,
		LevelName:  lvl.Name,
		ParCost:    lvl.ParCost,
		ParNodes:   lvl.ParNodes,
	}
}

// clearLastResult drops the previous search outcome and its grid markings
func clearLastResult(s *State) {
	s.LastResult = nil
	s.Grid.ResetSearchFlags()
}
