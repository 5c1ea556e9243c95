package engine

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestCarveMazeAlwaysConnectsStartToGoal(t *testing.T) {
	sizes := []int{5, 6, 7, 8, 10, 11, 12, 15, 16, 20}
	for _, w := range sizes {
		for _, h := range sizes {
			for seed := int64(0); seed < 5; seed++ {
				g := CarveMaze(w, h, rand.New(rand.NewSource(seed)))
				start := g.FindCell(Start)
				goal := g.FindCell(Goal)
				if start == nil || goal == nil {
					t.Fatalf("%dx%d seed %d: maze missing start or goal", w, h, seed)
				}
				if !RunBFS(g, *start, *goal).Found() {
					t.Errorf("%dx%d seed %d: goal unreachable from start", w, h, seed)
				}
			}
		}
	}
}

func TestCarveMazePlacesMarkers(t *testing.T) {
	g := CarveMaze(12, 9, rand.New(rand.NewSource(7)))
	if g.Width != 12 || g.Height != 9 {
		t.Fatalf("Expected 12x9 grid, got %dx%d", g.Width, g.Height)
	}
	if got := g.TypeAt(Position{Row: 1, Col: 1}); got != Start {
		t.Errorf("Expected start at (1,1), got %s", got)
	}
	if got := g.TypeAt(Position{Row: 7, Col: 10}); got != Goal {
		t.Errorf("Expected goal at (7,10), got %s", got)
	}
}

func TestCarveMazeIsDeterministicPerSeed(t *testing.T) {
	a := CarveMaze(15, 11, rand.New(rand.NewSource(42)))
	b := CarveMaze(15, 11, rand.New(rand.NewSource(42)))
	if !reflect.DeepEqual(a, b) {
		t.Error("Same seed produced different mazes")
	}

	c := CarveMaze(15, 11, rand.New(rand.NewSource(43)))
	if reflect.DeepEqual(a, c) {
		t.Error("Different seeds produced identical mazes")
	}
}

func TestCarveMazeClampsDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		wantW, wantH  int
	}{
		{"below minimum", 2, 3, MinGridSize, MinGridSize},
		{"zero", 0, 0, MinGridSize, MinGridSize},
		{"above maximum", 80, 99, MaxGridSize, MaxGridSize},
		{"in range", 14, 9, 14, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := CarveMaze(tt.width, tt.height, rand.New(rand.NewSource(1)))
			if g.Width != tt.wantW || g.Height != tt.wantH {
				t.Errorf("Expected %dx%d, got %dx%d", tt.wantW, tt.wantH, g.Width, g.Height)
			}
		})
	}
}

func TestCarveMazeKeepsBorderWalls(t *testing.T) {
	g := CarveMaze(16, 12, rand.New(rand.NewSource(3)))
	for col := 0; col < g.Width; col++ {
		if g.TypeAt(Position{Row: 0, Col: col}) != Wall {
			t.Errorf("Expected wall at (0,%d)", col)
		}
		if g.TypeAt(Position{Row: g.Height - 1, Col: col}) != Wall {
			t.Errorf("Expected wall at (%d,%d)", g.Height-1, col)
		}
	}
	for row := 0; row < g.Height; row++ {
		if g.TypeAt(Position{Row: row, Col: 0}) != Wall {
			t.Errorf("Expected wall at (%d,0)", row)
		}
		if g.TypeAt(Position{Row: row, Col: g.Width - 1}) != Wall {
			t.Errorf("Expected wall at (%d,%d)", row, g.Width-1)
		}
	}
}

func TestCarveMazeTerrainMix(t *testing.T) {
	// Terrain replaces carved corridor cells, so every mud and water cell
	// must be passable and off the border. A 30x20 maze is large enough
	// that at least some terrain lands with this seed.
	g := CarveMaze(30, 20, rand.New(rand.NewSource(11)))
	terrain := 0
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			p := Position{Row: row, Col: col}
			ct := g.TypeAt(p)
			if ct != Mud && ct != Water {
				continue
			}
			terrain++
			if row == 0 || col == 0 || row == g.Height-1 || col == g.Width-1 {
				t.Errorf("Terrain on the border at (%d,%d)", row, col)
			}
		}
	}
	if terrain == 0 {
		t.Error("Expected some mud or water in a 30x20 maze")
	}
}

func TestCarveMazeNilRNG(t *testing.T) {
	g := CarveMaze(10, 10, nil)
	start := g.FindCell(Start)
	goal := g.FindCell(Goal)
	if start == nil || goal == nil {
		t.Fatal("Maze with default RNG missing start or goal")
	}
	if !RunBFS(g, *start, *goal).Found() {
		t.Error("Maze with default RNG has unreachable goal")
	}
}
