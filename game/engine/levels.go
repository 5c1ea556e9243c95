package engine

import "fmt"

// Level is one immutable catalog entry. Map rows use one symbol per cell:
// '.' empty, '#' wall, '~' mud, '≈' water, 'S' start, 'G' goal. Short rows
// and trailing whitespace read as empty cells.
type Level struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Hint        string     `json:"hint,omitempty"`
	Width       int        `json:"width"`
	Height      int        `json:"height"`
	Map         []string   `json:"map"`
	ParCost     int        `json:"par_cost"`
	ParNodes    int        `json:"par_nodes"`
	Difficulty  Difficulty `json:"difficulty"`
}

// Levels is the fixed challenge catalog, ordered by difficulty
var Levels = []Level{
	{
		ID:          1,
		Name:        "First Steps",
		Description: "A straight shot across open ground. Watch how each algorithm explores.",
		Hint:        "Every algorithm finds the same path here. Compare how many cells they expand.",
		Width:       10,
		Height:      5,
		Map: []string{
			"..........",
			"..........",
			"S........G",
			"..........",
			"..........",
		},
		ParCost:    9,
		ParNodes:   25,
		Difficulty: Easy,
	},
	{
		ID:          2,
		Name:        "Around the Block",
		Description: "A walled compound sits between you and the goal.",
		Hint:        "There is no way through the pocket. Over or under costs the same.",
		Width:       12,
		Height:      7,
		Map: []string{
			"............",
			"............",
			"...######...",
			"S..#....#..G",
			"...######...",
			"............",
			"............",
		},
		ParCost:    15,
		ParNodes:   55,
		Difficulty: Easy,
	},
	{
		ID:          3,
		Name:        "Muddy Meadow",
		Description: "A band of mud crosses the field. Through it or around it?",
		Hint:        "Two mud cells cost ten. Count the extra steps the dry route takes.",
		Width:       12,
		Height:      7,
		Map: []string{
			"............",
			".....~~.....",
			".....~~.....",
			"S....~~....G",
			".....~~.....",
			".....~~.....",
			"............",
		},
		ParCost:    17,
		ParNodes:   85,
		Difficulty: Easy,
	},
	{
		ID:          4,
		Name:        "River Crossing",
		Description: "A river runs the full height of the map, but there is a bridge.",
		Hint:        "Swimming costs ten per cell. The bridge is further but far cheaper.",
		Width:       12,
		Height:      8,
		Map: []string{
			"......≈≈....",
			"......≈≈....",
			"S.....≈≈...G",
			"......≈≈....",
			"......≈≈....",
			"......≈≈....",
			"............",
			"......≈≈....",
		},
		ParCost:    19,
		ParNodes:   70,
		Difficulty: Medium,
	},
	{
		ID:          5,
		Name:        "The Serpentine",
		Description: "Four walls with alternating gaps. One long snake of a corridor.",
		Hint:        "The gaps alternate top and bottom. No shortcut exists.",
		Width:       13,
		Height:      9,
		Map: []string{
			"S.#.....#....",
			"..#.....#....",
			"..#..#..#..#.",
			"..#..#..#..#.",
			"..#..#..#..#.",
			"..#..#..#..#.",
			"..#..#..#..#.",
			".....#.....#.",
			".....#.....#G",
		},
		ParCost:    44,
		ParNodes:   90,
		Difficulty: Medium,
	},
	{
		ID:          6,
		Name:        "Swamp Trek",
		Description: "A wide mud field with a water ditch on its south side.",
		Hint:        "The south bank is one row closer than the north.",
		Width:       16,
		Height:      10,
		Map: []string{
			"................",
			"......####......",
			"...~~~####~~~...",
			"...~~~~~~~~~~...",
			"S..~~~~~~~~~~..G",
			"...~~~~~~~~~~...",
			"......≈≈≈≈......",
			"................",
			"................",
			"................",
		},
		ParCost:    21,
		ParNodes:   95,
		Difficulty: Medium,
	},
	{
		ID:          7,
		Name:        "The Labyrinth",
		Description: "A longer serpentine. Watch Dijkstra flood it while A* threads it.",
		Hint:        "Five walls this time. Settle in for the ride.",
		Width:       17,
		Height:      11,
		Map: []string{
			"S.#.....#.....#..",
			"..#.....#.....#..",
			"..#..#..#..#..#..",
			"..#..#..#..#..#..",
			"..#..#..#..#..#..",
			"..#..#..#..#..#..",
			"..#..#..#..#..#..",
			"..#..#..#..#..#..",
			"..#..#..#..#..#..",
			".....#.....#.....",
			".....#.....#....G",
		},
		ParCost:    58,
		ParNodes:   135,
		Difficulty: Hard,
	},
	{
		ID:          8,
		Name:        "The Causeway",
		Description: "A lake too wide to swim, crossed by a single muddy causeway.",
		Hint:        "Six mud cells beat six water cells by half.",
		Width:       16,
		Height:      10,
		Map: []string{
			".....≈≈≈≈≈≈.....",
			".....≈≈≈≈≈≈.....",
			".....~~~~~~.....",
			".....≈≈≈≈≈≈.....",
			".....≈≈≈≈≈≈.....",
			"S....≈≈≈≈≈≈....G",
			".....≈≈≈≈≈≈.....",
			".....≈≈≈≈≈≈.....",
			".....≈≈≈≈≈≈.....",
			".....≈≈≈≈≈≈.....",
		},
		ParCost:    45,
		ParNodes:   120,
		Difficulty: Hard,
	},
	{
		ID:          9,
		Name:        "Fork in the Road",
		Description: "One wall, two gaps. The north gap is guarded by mud, and a pond blocks the middle.",
		Hint:        "Price both forks before you commit.",
		Width:       16,
		Height:      11,
		Map: []string{
			"........#.......",
			"........#.......",
			".......~.~......",
			"........#.......",
			"........#.......",
			"S..≈≈≈..#......G",
			"...≈≈≈..#.......",
			"........#.......",
			"........#.......",
			"................",
			"........#.......",
		},
		ParCost:    23,
		ParNodes:   140,
		Difficulty: Hard,
	},
	{
		ID:          10,
		Name:        "The Gauntlet",
		Description: "Everything at once: a serpentine with a mud belt and a flooded corridor.",
		Hint:        "The terrain is forced. Par only forgives the one mud and one water you must cross.",
		Width:       20,
		Height:      12,
		Map: []string{
			"S..#.......#........",
			"...#.......#........",
			"...#...#...#...#....",
			"...#...#...#...#....",
			"...#...#...#...#....",
			"...#~~~#...#...#....",
			"...#...#≈≈≈#...#....",
			"...#...#...#...#....",
			"...#...#...#...#....",
			"...#...#...#...#....",
			".......#.......#....",
			".......#.......#...G",
		},
		ParCost:    79,
		ParNodes:   200,
		Difficulty: Hard,
	},
}

// LevelCount returns the number of catalog levels
func LevelCount() int {
	return len(Levels)
}

// LevelByNumber returns the catalog level with the given 1-based number
func LevelByNumber(n int) (Level, error) {
	if n < 1 || n > len(Levels) {
		return Level{}, fmt.Errorf("%w: %d (levels run 1-%d)", ErrInvalidLevel, n, len(Levels))
	}
	return Levels[n-1], nil
}

// ParseLevel scans a level map into a grid plus start and goal positions.
// Parsing is deterministic: unknown symbols and missing cells read as empty,
// and only the first start and goal symbols count.
func ParseLevel(lvl Level) (Grid, *Position, *Position) {
	g := NewGrid(lvl.Width, lvl.Height)
	var start, goal *Position

	for row := 0; row < lvl.Height; row++ {
		var symbols []rune
		if row < len(lvl.Map) {
			symbols = []rune(lvl.Map[row])
		}
		for col := 0; col < lvl.Width; col++ {
			t := Empty
			if col < len(symbols) {
				t = TypeForSymbol(symbols[col])
			}
			switch t {
			case Start:
				if start != nil {
					t = Empty
				} else {
					start = &Position{Row: row, Col: col}
				}
			case Goal:
				if goal != nil {
					t = Empty
				} else {
					goal = &Position{Row: row, Col: col}
				}
			}
			g.Cells[row][col] = Cell{Type: t}
		}
	}
	return g, start, goal
}

// ValidateLevel checks that a level definition is playable: sane dimensions,
// exactly one start and one goal, rows that fit the declared size, pars that
// are at least the straight-line lower bound, and a reachable goal.
func ValidateLevel(lvl Level) error {
	if lvl.Width < MinGridSize || lvl.Width > MaxGridSize {
		return fmt.Errorf("level %d: width %d outside %d-%d", lvl.ID, lvl.Width, MinGridSize, MaxGridSize)
	}
	if lvl.Height < MinGridSize || lvl.Height > MaxGridSize {
		return fmt.Errorf("level %d: height %d outside %d-%d", lvl.ID, lvl.Height, MinGridSize, MaxGridSize)
	}
	if lvl.Name == "" {
		return fmt.Errorf("level %d: name is required", lvl.ID)
	}
	if len(lvl.Map) > lvl.Height {
		return fmt.Errorf("level %d: map has %d rows, height is %d", lvl.ID, len(lvl.Map), lvl.Height)
	}
	for i, row := range lvl.Map {
		if n := len([]rune(row)); n > lvl.Width {
			return fmt.Errorf("level %d: map row %d has %d cells, width is %d", lvl.ID, i, n, lvl.Width)
		}
	}

	starts, goals := 0, 0
	for _, row := range lvl.Map {
		for _, r := range row {
			switch r {
			case 'S':
				starts++
			case 'G':
				goals++
			}
		}
	}
	if starts != 1 {
		return fmt.Errorf("level %d: found %d start cells, want exactly 1", lvl.ID, starts)
	}
	if goals != 1 {
		return fmt.Errorf("level %d: found %d goal cells, want exactly 1", lvl.ID, goals)
	}

	grid, start, goal := ParseLevel(lvl)
	if result := RunBFS(grid, *start, *goal); !result.Found() {
		return fmt.Errorf("level %d: goal is unreachable from start", lvl.ID)
	}
	if floor := ManhattanDistance(*start, *goal); lvl.ParCost < floor {
		return fmt.Errorf("level %d: par cost %d below straight-line minimum %d", lvl.ID, lvl.ParCost, floor)
	}
	if lvl.ParNodes < 1 {
		return fmt.Errorf("level %d: par nodes must be positive", lvl.ID)
	}
	return nil
}
