package engine

// CellType represents different types of grid cells
type CellType string

const (
	Empty CellType = "empty"
	Wall  CellType = "wall"
	Start CellType = "start"
	Goal  CellType = "goal"
	Mud   CellType = "mud"
	Water CellType = "water"

	// Validation constants
	MinGridSize         = 5
	MaxGridSize         = 50
	MaxBulkMoves        = 50
	WebSocketBufferSize = 256

	// WallCost marks impassable terrain; never used in arithmetic
	WallCost = 1 << 30
)

// Movement cost per cell type. Walls are impassable.
var cellCosts = map[CellType]int{
	Empty: 1,
	Start: 1,
	Goal:  1,
	Mud:   5,
	Water: 10,
	Wall:  WallCost,
}

// CostOf returns the movement cost of entering a cell of the given type.
// Unknown types cost the same as walls.
func CostOf(t CellType) int {
	if cost, ok := cellCosts[t]; ok {
		return cost
	}
	return WallCost
}

// IsPassable reports whether a cell of the given type can be entered
func IsPassable(t CellType) bool {
	return CostOf(t) != WallCost
}

// ValidCellType reports whether t is one of the known cell types
func ValidCellType(t CellType) bool {
	_, ok := cellCosts[t]
	return ok
}

// Cell represents a single grid cell
type Cell struct {
	Type    CellType `json:"type"`
	Visited bool     `json:"visited,omitempty"` // Expanded by the last search
	InPath  bool     `json:"in_path,omitempty"` // On the last found path
}

// Position represents row,col coordinates on the grid
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Algorithm identifies one of the supported search algorithms
type Algorithm string

const (
	BFS      Algorithm = "bfs"
	Dijkstra Algorithm = "dijkstra"
	AStar    Algorithm = "astar"
)

// ValidAlgorithm reports whether a is a supported algorithm tag
func ValidAlgorithm(a Algorithm) bool {
	switch a {
	case BFS, Dijkstra, AStar:
		return true
	}
	return false
}

// Mode represents the play mode of a game
type Mode string

const (
	Sandbox   Mode = "sandbox"
	Challenge Mode = "challenge"
)

// ValidMode reports whether m is a supported mode tag
func ValidMode(m Mode) bool {
	return m == Sandbox || m == Challenge
}

// Difficulty selects a preset grid size for sandbox games
type Difficulty string

const (
	Easy   Difficulty = "easy"
	Medium Difficulty = "medium"
	Hard   Difficulty = "hard"
)

// SearchResult is the output of one algorithm run. Path runs from start to
// goal inclusive and is empty when the goal is unreachable.
type SearchResult struct {
	Path          []Position `json:"path"`
	NodesExpanded int        `json:"nodes_expanded"`
	TotalCost     int        `json:"total_cost"`

	expanded map[Position]bool // cells dequeued, kept for visualization
}

// Found reports whether the search reached the goal
func (r SearchResult) Found() bool {
	return len(r.Path) > 0
}

// RunSummary captures the outcome of the most recent find_path move
type RunSummary struct {
	Algorithm     Algorithm  `json:"algorithm"`
	PathFound     bool       `json:"path_found"`
	PathLength    int        `json:"path_length"`
	PathCost      int        `json:"path_cost"`
	NodesExpanded int        `json:"nodes_expanded"`
	Path          []Position `json:"path"`
}

// State is the externally visible snapshot of one game. Moves never mutate
// a State in place; Apply returns a fresh value and leaves its input intact.
type State struct {
	Grid       Grid        `json:"grid"`
	Start      *Position   `json:"start,omitempty"`
	Goal       *Position   `json:"goal,omitempty"`
	Algorithm  Algorithm   `json:"algorithm"`
	Mode       Mode        `json:"mode"`
	LevelIndex int         `json:"level_index"` // 1-based catalog number, 0 = custom grid
	LevelName  string      `json:"level_name,omitempty"`
	ParCost    int         `json:"par_cost,omitempty"`
	ParNodes   int         `json:"par_nodes,omitempty"`
	LastResult *RunSummary `json:"last_result,omitempty"`
}

// Won reports whether the last search found a path, which completes the level
func (s State) Won() bool {
	return s.LastResult != nil && s.LastResult.PathFound
}

// Clone returns a deep copy of the state
func (s State) Clone() State {
	out := s
	out.Grid = s.Grid.Clone()
	if s.Start != nil {
		p := *s.Start
		out.Start = &p
	}
	if s.Goal != nil {
		p := *s.Goal
		out.Goal = &p
	}
	if s.LastResult != nil {
		r := *s.LastResult
		r.Path = make([]Position, len(s.LastResult.Path))
		copy(r.Path, s.LastResult.Path)
		out.LastResult = &r
	}
	return out
}

// Action identifies one move dispatcher action
type Action string

const (
	ActionSetCell      Action = "set_cell"
	ActionSetStart     Action = "set_start"
	ActionSetGoal      Action = "set_goal"
	ActionFindPath     Action = "find_path"
	ActionClear        Action = "clear"
	ActionGenerateMaze Action = "generate_maze"
	ActionLoadLevel    Action = "load_level"
	ActionNextLevel    Action = "next_level"
)

// MoveRequest is one discrete action applied to a State. Optional fields are
// pointers so that zero values (row 0, col 0) stay distinguishable from absent.
type MoveRequest struct {
	Action    Action    `json:"action"`
	Row       *int      `json:"row,omitempty"`
	Col       *int      `json:"col,omitempty"`
	CellType  CellType  `json:"cell_type,omitempty"`
	Algorithm Algorithm `json:"algorithm,omitempty"`
	Level     *int      `json:"level,omitempty"`
	Width     *int      `json:"width,omitempty"`
	Height    *int      `json:"height,omitempty"`
}

// Config controls the initial State of a new game
type Config struct {
	Width      int        `json:"width,omitempty"`
	Height     int        `json:"height,omitempty"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
	Level      int        `json:"level,omitempty"`
	Mode       Mode       `json:"mode,omitempty"`
}
